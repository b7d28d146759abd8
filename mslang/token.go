package mslang

type Token struct {
	Kind TokenKind
	Text string
	Pos  Pos
}

type TokenKind uint8

const (
	TokenInvalid TokenKind = iota
	TokenUnknown
	TokenWhitespace
	TokenNewline

	TokenLiteral
	TokenString
	TokenSmartString
	TokenIdentifier
	TokenCommand
	TokenVariable
	TokenIVariable
	TokenFinalVar

	TokenFuncName
	TokenFuncStart
	TokenFuncEnd
	TokenComma
	TokenBraceComma
	TokenLCurly
	TokenRCurly
	TokenLSquare
	TokenRSquare
	TokenSemicolon

	TokenAliasEnd
	TokenOptVarAssign
	TokenMultilineStart
	TokenMultilineEnd
	TokenSeparator

	TokenSlice
	TokenLabel
	TokenDereference

	TokenPlus
	TokenMinus
	TokenMultiply
	TokenDivide
	TokenModulo
	TokenExponential
	TokenIncrement
	TokenDecrement
	TokenConcat

	TokenAssign
	TokenPlusAssign
	TokenMinusAssign
	TokenMultiplyAssign
	TokenDivideAssign
	TokenConcatAssign

	TokenEquals
	TokenNotEquals
	TokenStrictEquals
	TokenStrictNotEquals
	TokenLT
	TokenGT
	TokenLTE
	TokenGTE

	TokenLogicalAnd
	TokenLogicalOr
	TokenLogicalNot
)

var tokenKindNames = [...]string{
	TokenInvalid:         "invalid",
	TokenUnknown:         "unknown",
	TokenWhitespace:      "whitespace",
	TokenNewline:         "newline",
	TokenLiteral:         "literal",
	TokenString:          "string",
	TokenSmartString:     "smart string",
	TokenIdentifier:      "identifier",
	TokenCommand:         "command",
	TokenVariable:        "variable",
	TokenIVariable:       "ivariable",
	TokenFinalVar:        "final var",
	TokenFuncName:        "function name",
	TokenFuncStart:       "(",
	TokenFuncEnd:         ")",
	TokenComma:           ",",
	TokenBraceComma:      "){",
	TokenLCurly:          "{",
	TokenRCurly:          "}",
	TokenLSquare:         "[",
	TokenRSquare:         "]",
	TokenSemicolon:       ";",
	TokenAliasEnd:        "alias end",
	TokenOptVarAssign:    "option assign",
	TokenMultilineStart:  ">>>",
	TokenMultilineEnd:    "<<<",
	TokenSeparator:       "\\",
	TokenSlice:           "..",
	TokenLabel:           ":",
	TokenDereference:     "dereference",
	TokenPlus:            "+",
	TokenMinus:           "-",
	TokenMultiply:        "*",
	TokenDivide:          "/",
	TokenModulo:          "%",
	TokenExponential:     "**",
	TokenIncrement:       "++",
	TokenDecrement:       "--",
	TokenConcat:          ".",
	TokenAssign:          "=",
	TokenPlusAssign:      "+=",
	TokenMinusAssign:     "-=",
	TokenMultiplyAssign:  "*=",
	TokenDivideAssign:    "/=",
	TokenConcatAssign:    ".=",
	TokenEquals:          "==",
	TokenNotEquals:       "!=",
	TokenStrictEquals:    "===",
	TokenStrictNotEquals: "!==",
	TokenLT:              "<",
	TokenGT:              ">",
	TokenLTE:             "<=",
	TokenGTE:             ">=",
	TokenLogicalAnd:      "&&",
	TokenLogicalOr:       "||",
	TokenLogicalNot:      "!",
}

func (k TokenKind) String() string {
	if int(k) < len(tokenKindNames) && tokenKindNames[k] != "" {
		return tokenKindNames[k]
	}
	return "invalid"
}

// IsSymbol reports operator tokens that become Symbol nodes.
func (k TokenKind) IsSymbol() bool {
	return k >= TokenPlus && k <= TokenLogicalNot
}

// IsUnary reports symbols that may appear without a left operand.
func (k TokenKind) IsUnary() bool {
	switch k {
	case TokenPlus, TokenMinus, TokenLogicalNot, TokenIncrement, TokenDecrement:
		return true
	}
	return false
}

func (k TokenKind) IsPlusMinus() bool {
	return k == TokenPlus || k == TokenMinus
}

func (k TokenKind) IsWhitespace() bool {
	return k == TokenWhitespace || k == TokenNewline
}

// IsSeparator reports tokens that end an argument or an index expression.
func (k TokenKind) IsSeparator() bool {
	switch k {
	case TokenComma, TokenBraceComma, TokenFuncStart, TokenFuncEnd,
		TokenLSquare, TokenRSquare, TokenSemicolon:
		return true
	}
	return false
}

func (k TokenKind) IsAtomicLiteral() bool {
	return k == TokenLiteral || k == TokenString
}

// IsIdentifierLike reports tokens that can be the left operand of a binary operator.
// A sign after such a token is an operator, not part of a number.
func (k TokenKind) IsIdentifierLike() bool {
	switch k {
	case TokenUnknown, TokenLiteral, TokenString, TokenSmartString, TokenCommand,
		TokenVariable, TokenIVariable, TokenFinalVar, TokenFuncEnd, TokenRSquare,
		TokenIncrement, TokenDecrement:
		return true
	}
	return false
}
