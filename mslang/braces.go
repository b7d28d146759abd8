package mslang

// normalizeBraces rewrites brace blocks into call syntax:
//
//	} else if (  ->  , elseif
//	} else {     ->  , else
//	) {          ->  brace comma
//	}            ->  )
func normalizeBraces(tokens []Token) ([]Token, error) {
	// next significant token index, skipping whitespace
	next := func(i int) int {
		for i++; i < len(tokens); i++ {
			if !tokens[i].Kind.IsWhitespace() {
				return i
			}
		}
		return -1
	}
	kindAt := func(i int) TokenKind {
		if i < 0 {
			return TokenInvalid
		}
		return tokens[i].Kind
	}
	isElse := func(i int) bool {
		return kindAt(i) == TokenLiteral && tokens[i].Text == "else"
	}

	ret := make([]Token, 0, len(tokens))
	depth := 0
	for i := 0; i < len(tokens); i++ {
		t := tokens[i]

		switch t.Kind {

		case TokenRCurly:
			i2 := next(i)
			i3 := next(i2)
			i4 := next(i3)

			if isElse(i2) && kindAt(i3) == TokenFuncName && tokens[i3].Text == "if" && kindAt(i4) == TokenFuncStart {
				ret = append(ret,
					Token{Kind: TokenComma, Text: ",", Pos: t.Pos},
					Token{Kind: TokenIdentifier, Text: "elseif", Pos: tokens[i2].Pos},
				)
				depth--
				i = i4
				continue
			}

			if isElse(i2) && kindAt(i3) == TokenLCurly {
				ret = append(ret,
					Token{Kind: TokenComma, Text: ",", Pos: t.Pos},
					Token{Kind: TokenIdentifier, Text: "else", Pos: tokens[i2].Pos},
				)
				i = i3
				continue
			}

			ret = append(ret, Token{Kind: TokenFuncEnd, Text: ")", Pos: t.Pos})
			depth--
			if depth < 0 {
				return nil, errorf(ErrStructural, t.Pos, "unexpected right curly brace")
			}
			continue

		case TokenFuncEnd:
			if i2 := next(i); kindAt(i2) == TokenLCurly {
				ret = append(ret, Token{Kind: TokenBraceComma, Text: ",", Pos: t.Pos})
				depth++
				i = i2
				continue
			}

		}

		ret = append(ret, t)
	}

	if depth > 0 {
		pos := Pos{}
		if len(tokens) > 0 {
			pos = tokens[len(tokens)-1].Pos
		}
		return nil, errorf(ErrStructural, pos, "unclosed code block, check for a missing right curly brace")
	}

	return ret, nil
}
