package mslang

// Unit is one compilation unit. In pure mode the header is empty.
type Unit struct {
	Header []Token
	Body   []Token

	Tree        *Node
	Diagnostics []Diagnostic
}

// Split groups alias mode tokens into units. Each unit is a header terminated by the
// alias end token and a body running to the end of the line.
func Split(tokens []Token) ([]*Unit, error) {
	if len(tokens) == 0 {
		return nil, nil
	}

	tokens = collapseNewlines(tokens)

	tokens, err := joinMultilines(tokens)
	if err != nil {
		return nil, err
	}

	tokens = joinContinuations(tokens)

	var units []*Unit
	var header, body []Token
	inHeader := true
	for _, t := range tokens {
		if inHeader {
			if t.Kind == TokenAliasEnd {
				inHeader = false
			} else {
				header = append(header, t)
			}
			continue
		}

		if t.Kind != TokenNewline {
			body = append(body, t)
			continue
		}

		if err := checkHeader(header); err != nil {
			return nil, err
		}
		units = append(units, &Unit{
			Header: header,
			Body:   body,
		})
		header = nil
		body = nil
		inHeader = true
	}

	if !inHeader {
		if err := checkHeader(header); err != nil {
			return nil, err
		}
		units = append(units, &Unit{
			Header: header,
			Body:   body,
		})
	} else {
		for _, t := range header {
			if t.Kind != TokenNewline {
				return nil, errorf(ErrStructural, t.Pos, "unexpected token: %s", t.Text)
			}
		}
	}

	return units, nil
}

// collapseNewlines drops whitespace, merges newline runs, and drops a leading newline.
func collapseNewlines(tokens []Token) []Token {
	ret := make([]Token, 0, len(tokens))
	for _, t := range tokens {
		if t.Kind == TokenWhitespace {
			continue
		}
		if t.Kind == TokenNewline && len(ret) > 0 && ret[len(ret)-1].Kind == TokenNewline {
			continue
		}
		ret = append(ret, t)
	}
	if len(ret) > 0 && ret[0].Kind == TokenNewline {
		ret = ret[1:]
	}
	return ret
}

// joinMultilines removes the newlines of = >>> ... <<< bodies along with the markers.
func joinMultilines(tokens []Token) ([]Token, error) {
	ret := make([]Token, 0, len(tokens))
	inside := false
	var start Token
	for i := 0; i < len(tokens); i++ {
		t := tokens[i]

		if t.Kind == TokenAliasEnd && i+1 < len(tokens) && tokens[i+1].Kind == TokenMultilineStart {
			if inside {
				return nil, errorf(ErrStructural, tokens[i+1].Pos,
					"did not expect a multiline start symbol here, is a multiline end symbol missing above this line?")
			}
			inside = true
			start = tokens[i+1]
			ret = append(ret, t)
			i++
			continue
		}

		switch t.Kind {
		case TokenMultilineEnd:
			if !inside {
				return nil, errorf(ErrStructural, t.Pos,
					"found multiline end symbol, and no multiline start found")
			}
			inside = false
			continue
		case TokenMultilineStart:
			if inside {
				return nil, errorf(ErrStructural, t.Pos,
					"did not expect a multiline start symbol here, is a multiline end symbol missing above this line?")
			}
			return nil, errorf(ErrStructural, t.Pos,
				"multiline symbol must follow the alias end token")
		}

		if inside && t.Kind == TokenNewline {
			continue
		}
		ret = append(ret, t)
	}

	if inside {
		return nil, errorf(ErrStructural, start.Pos,
			"expecting a multiline end symbol, but the multiline alias started on line %d is missing one", start.Pos.Line)
	}

	return ret, nil
}

// joinContinuations drops newlines escaped by a trailing backslash.
func joinContinuations(tokens []Token) []Token {
	ret := make([]Token, 0, len(tokens))
	for i := 0; i < len(tokens); i++ {
		t := tokens[i]
		ret = append(ret, t)
		if t.Kind == TokenSeparator && i+1 < len(tokens) && tokens[i+1].Kind == TokenNewline {
			i++
		}
	}
	return ret
}

// checkHeader rejects headers that carry a dangling line without an alias end.
func checkHeader(header []Token) error {
	for j := len(header) - 1; j > 0; j-- {
		if header[j].Kind == TokenNewline && header[j-1].Kind != TokenNewline {
			return errorf(ErrStructural, header[j-1].Pos, "unexpected token: %s", header[j-1].Text)
		}
	}
	return nil
}
