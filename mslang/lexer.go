package mslang

import (
	"strconv"
	"strings"
	"unicode"
)

type lexer struct {
	src   *Source
	runes []rune
	idx   int
	pure  bool

	currPos Pos

	tokens   []Token
	buf      strings.Builder
	bufStart Pos

	inQuote      bool
	inSmartQuote bool
	quoteStart   Pos

	inComment    bool
	blockComment bool
	commentStart Pos

	inOptVar    bool
	inCommand   bool
	inMultiline bool
}

// Lex splits the source into tokens.
// In alias mode (pure == false) every line starts in command state: the first bare '='
// on the line terminates the header.
func Lex(src *Source, pure bool) ([]Token, error) {
	content := src.Content
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	l := &lexer{
		src:       src,
		runes:     []rune(content),
		pure:      pure,
		inCommand: !pure,
		currPos: Pos{
			Source: src,
			Line:   1,
			Column: 1,
		},
	}
	if err := l.scan(); err != nil {
		return nil, err
	}
	tokens := classify(l.tokens)
	if pure {
		if err := checkSymbols(tokens); err != nil {
			return nil, err
		}
	}
	return tokens, nil
}

func (l *lexer) peek(offset int) rune {
	i := l.idx + offset
	if i < 0 || i >= len(l.runes) {
		return 0
	}
	return l.runes[i]
}

func (l *lexer) advance(n int) {
	for range n {
		if l.idx >= len(l.runes) {
			return
		}
		if l.runes[l.idx] == '\n' {
			l.currPos.Line++
			l.currPos.Column = 1
		} else {
			l.currPos.Column++
		}
		l.idx++
	}
}

func (l *lexer) appendBuf(s string) {
	if l.buf.Len() == 0 {
		l.bufStart = l.currPos
	}
	l.buf.WriteString(s)
}

// flush emits the pending literal buffer as an unclassified token.
func (l *lexer) flush() {
	if l.buf.Len() == 0 {
		return
	}
	l.tokens = append(l.tokens, Token{
		Kind: TokenUnknown,
		Text: l.buf.String(),
		Pos:  l.bufStart,
	})
	l.buf.Reset()
}

func (l *lexer) emit(kind TokenKind, text string) {
	l.flush()
	l.tokens = append(l.tokens, Token{
		Kind: kind,
		Text: text,
		Pos:  l.currPos,
	})
}

type operator struct {
	text string
	kind TokenKind
}

// longest first
var operators = []operator{
	{"<<<", TokenMultilineEnd},
	{">>>", TokenMultilineStart},
	{"===", TokenStrictEquals},
	{"!==", TokenStrictNotEquals},
	{"+=", TokenPlusAssign},
	{"-=", TokenMinusAssign},
	{"*=", TokenMultiplyAssign},
	{"/=", TokenDivideAssign},
	{".=", TokenConcatAssign},
	{"->", TokenDereference},
	{"++", TokenIncrement},
	{"--", TokenDecrement},
	{"**", TokenExponential},
	{">=", TokenGTE},
	{"<=", TokenLTE},
	{"==", TokenEquals},
	{"!=", TokenNotEquals},
	{"&&", TokenLogicalAnd},
	{"||", TokenLogicalOr},
	{"::", TokenDereference},
	{"..", TokenSlice},
	{"%", TokenModulo},
	{"*", TokenMultiply},
	{"+", TokenPlus},
	{"-", TokenMinus},
	{"<", TokenLT},
	{">", TokenGT},
	{"!", TokenLogicalNot},
	{"{", TokenLCurly},
	{"}", TokenRCurly},
	{"]", TokenRSquare},
	{":", TokenLabel},
	{",", TokenComma},
	{")", TokenFuncEnd},
	{";", TokenSemicolon},
}

func (l *lexer) hasPrefix(s string) bool {
	for i, r := range s {
		if l.peek(i) != r {
			return false
		}
	}
	return true
}

func (l *lexer) scan() error {
	for l.idx < len(l.runes) {
		c := l.peek(0)
		c2 := l.peek(1)

		if !l.inQuote {
			if l.inComment {
				if l.blockComment && c == '*' && c2 == '/' {
					l.inComment = false
					l.blockComment = false
					l.advance(2)
					continue
				}
				if !l.blockComment && c == '\n' {
					// the newline ends the comment and is swallowed with it
					l.inComment = false
					l.newline()
					l.advance(1)
					continue
				}
				if c == '\n' {
					l.newline()
				}
				l.advance(1)
				continue
			}
			if c == '/' && c2 == '*' {
				l.startComment(true)
				l.advance(2)
				continue
			}
			if c == '#' || (c == '/' && c2 == '/') {
				l.startComment(false)
				l.advance(1)
				continue
			}
		}

		if l.inQuote {
			if err := l.scanQuoted(c, c2); err != nil {
				return err
			}
			continue
		}

		if l.scanOperator() {
			continue
		}

		switch {

		case c == '/' && !unicode.IsLetter(c2):
			l.emit(TokenDivide, "/")
			l.advance(1)

		case c == '.' && !unicode.IsDigit(c2):
			l.emit(TokenConcat, ".")
			l.advance(1)

		case c == '[':
			l.emit(TokenLSquare, "[")
			l.inOptVar = true
			l.advance(1)

		case c == '=':
			if l.inCommand {
				if l.inOptVar {
					l.emit(TokenOptVarAssign, "=")
				} else {
					l.emit(TokenAliasEnd, "=")
					l.inCommand = false
				}
			} else {
				l.emit(TokenAssign, "=")
			}
			l.advance(1)

		case c == '(':
			l.openParen()
			l.advance(1)

		case c == '\n':
			l.emit(TokenNewline, "\n")
			l.newline()
			l.advance(1)

		case unicode.IsSpace(c):
			l.flush()
			if len(l.tokens) > 0 && l.tokens[len(l.tokens)-1].Kind != TokenWhitespace {
				l.tokens = append(l.tokens, Token{
					Kind: TokenWhitespace,
					Text: " ",
					Pos:  l.currPos,
				})
			}
			l.advance(1)

		case c == '\'' || c == '"':
			l.flush()
			l.inQuote = true
			l.inSmartQuote = c == '"'
			l.quoteStart = l.currPos
			l.advance(1)

		case c == '\\':
			l.emit(TokenSeparator, "\\")
			l.advance(1)

		default:
			l.appendBuf(string(c))
			l.advance(1)

		}
	}

	if l.inQuote {
		if l.inSmartQuote {
			return errorf(ErrLex, l.quoteStart,
				"unended string literal, the last double quote was started on line %d", l.quoteStart.Line)
		}
		return errorf(ErrLex, l.quoteStart,
			"unended string literal, the last single quote was started on line %d", l.quoteStart.Line)
	}
	if l.inComment && l.blockComment {
		return errorf(ErrLex, l.commentStart,
			"unended block comment, the comment was started on line %d", l.commentStart.Line)
	}
	l.flush()
	return nil
}

func (l *lexer) startComment(block bool) {
	l.inComment = true
	l.blockComment = block
	l.commentStart = l.currPos
}

// newline resets the command state for the next line in alias mode.
func (l *lexer) newline() {
	if !l.inMultiline && !l.pure {
		l.inCommand = true
	}
}

func (l *lexer) scanOperator() bool {
	for _, op := range operators {
		if !l.hasPrefix(op.text) {
			continue
		}
		l.emit(op.kind, op.text)
		switch op.kind {
		case TokenMultilineStart:
			l.inMultiline = true
		case TokenMultilineEnd:
			l.inMultiline = false
		case TokenRSquare:
			l.inOptVar = false
		}
		l.advance(len([]rune(op.text)))
		return true
	}
	return false
}

// openParen handles '(': the pending literal, or the previous literal token, becomes the
// function name. Without one, the parenthesis is a grouping and gets an implicit autoconcat.
func (l *lexer) openParen() {
	if l.buf.Len() > 0 {
		l.tokens = append(l.tokens, Token{
			Kind: TokenFuncName,
			Text: l.buf.String(),
			Pos:  l.bufStart,
		})
		l.buf.Reset()
	} else {
		i := len(l.tokens) - 1
		for i >= 0 && l.tokens[i].Kind == TokenWhitespace {
			i--
		}
		if i >= 0 && l.tokens[i].Kind == TokenUnknown {
			l.tokens[i].Kind = TokenFuncName
			l.tokens = l.tokens[:i+1]
		} else {
			l.tokens = append(l.tokens, Token{
				Kind: TokenFuncName,
				Text: AutoconcatFunction,
				Pos:  l.currPos,
			})
		}
	}
	l.tokens = append(l.tokens, Token{
		Kind: TokenFuncStart,
		Text: "(",
		Pos:  l.currPos,
	})
}

func (l *lexer) scanQuoted(c, c2 rune) error {
	switch {

	case c == '\'' && !l.inSmartQuote, c == '"' && l.inSmartQuote:
		kind := TokenString
		if l.inSmartQuote {
			kind = TokenSmartString
		}
		l.tokens = append(l.tokens, Token{
			Kind: kind,
			Text: l.buf.String(),
			Pos:  l.quoteStart,
		})
		l.buf.Reset()
		l.inQuote = false
		l.inSmartQuote = false
		l.advance(1)

	case c == '\\':
		pos := l.currPos
		switch c2 {
		case '\\':
			l.buf.WriteString("\\")
		case '\'':
			l.buf.WriteString("'")
		case '"':
			l.buf.WriteString("\"")
		case 'n':
			l.buf.WriteString("\n")
		case 'r':
			l.buf.WriteString("\r")
		case 't':
			l.buf.WriteString("\t")
		case '@':
			if !l.inSmartQuote {
				return errorf(ErrLex, pos, "the escape sequence \\@ is only allowed in double quoted strings")
			}
			l.buf.WriteString("\\@")
		case 'u':
			var hex strings.Builder
			for i := range 4 {
				hex.WriteRune(l.peek(2 + i))
			}
			code, err := strconv.ParseUint(hex.String(), 16, 32)
			if err != nil {
				return errorf(ErrLex, pos, "unrecognized unicode escape sequence after \\u: %q", hex.String())
			}
			l.buf.WriteRune(rune(code))
			l.advance(4)
		default:
			return errorf(ErrLex, pos, "the escape sequence \\%s is not a recognized escape sequence", escapeDisplay(c2))
		}
		l.advance(2)

	default:
		if c == '\n' {
			l.newline()
		}
		l.buf.WriteRune(c)
		l.advance(1)

	}
	return nil
}

func escapeDisplay(r rune) string {
	switch r {
	case 0:
		return "<EOF>"
	case '\n':
		return "<newline>"
	}
	return string(r)
}
