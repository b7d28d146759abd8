package mslang

import (
	"github.com/dlclark/regexp2"
)

var (
	commandPattern   = regexp2.MustCompile(`^/.*$`, regexp2.Singleline)
	variablePattern  = regexp2.MustCompile(`^\$[a-zA-Z0-9_]+$`, regexp2.None)
	ivariablePattern = regexp2.MustCompile(`^@[a-zA-Z0-9_]+$`, regexp2.None)
)

func matches(re *regexp2.Regexp, s string) bool {
	ok, err := re.MatchString(s)
	if err != nil {
		// only timeouts return errors, and no timeout is set
		panic(err)
	}
	return ok
}

// classify resolves unclassified literals and absorbs unary signs into the literal that
// follows them.
func classify(tokens []Token) []Token {
	ret := make([]Token, 0, len(tokens))
	for _, t := range tokens {
		if t.Kind == TokenUnknown {
			n := len(ret)
			if n > 0 && ret[n-1].Kind.IsPlusMinus() && absorbsSign(t.Text) {
				prev2 := TokenInvalid
				if n > 1 {
					prev2 = ret[n-2].Kind
				}
				if !prev2.IsIdentifierLike() {
					sign := ret[n-1]
					ret = ret[:n-1]
					t.Text = sign.Text + t.Text
					t.Pos = sign.Pos
				}
			}
			t.Kind = literalKind(t.Text)
		}
		ret = append(ret, t)
	}
	return ret
}

// absorbsSign reports whether a literal can carry a sign. Variables never do.
func absorbsSign(text string) bool {
	if text == "" {
		return false
	}
	switch text[0] {
	case '$', '@', '/':
		return false
	}
	return true
}

func literalKind(text string) TokenKind {
	switch {
	case matches(commandPattern, text):
		return TokenCommand
	case text == "\\":
		return TokenSeparator
	case matches(variablePattern, text):
		return TokenVariable
	case matches(ivariablePattern, text):
		return TokenIVariable
	case text == "$":
		return TokenFinalVar
	}
	return TokenLiteral
}

// checkSymbols rejects binary operators that have no operand on one side.
func checkSymbols(tokens []Token) error {
	for i, t := range tokens {
		if !t.Kind.IsSymbol() || t.Kind.IsUnary() {
			continue
		}
		prev := TokenInvalid
		if i > 0 {
			prev = tokens[i-1].Kind
		}
		next := TokenInvalid
		if i+1 < len(tokens) {
			next = tokens[i+1].Kind
		}
		if next.IsUnary() {
			continue
		}
		if prev == TokenFuncStart || prev == TokenComma ||
			next == TokenFuncEnd || next == TokenComma ||
			prev.IsSymbol() || next.IsSymbol() {
			return errorf(ErrStructural, t.Pos, "unexpected symbol (%s)", t.Text)
		}
	}
	return nil
}
