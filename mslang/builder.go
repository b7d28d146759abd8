package mslang

import (
	"errors"
)

// Build turns the body tokens of a unit into a parse tree rooted at an implicit
// __autoconcat__ call whose children are the top level expressions.
func Build(body []Token, registry Registry) (*Node, error) {
	tokens, err := normalizeBraces(body)
	if err != nil {
		return nil, err
	}

	significant := make([]Token, 0, len(tokens))
	for _, t := range tokens {
		switch t.Kind {
		case TokenWhitespace, TokenNewline, TokenSemicolon, TokenSeparator, TokenLCurly:
			continue
		}
		significant = append(significant, t)
	}

	pos := Pos{}
	if len(significant) > 0 {
		pos = significant[0].Pos
	}
	b := &builder{
		tokens:   significant,
		registry: registry,
	}
	b.push(NewCall(AutoconcatFunction, pos))
	if err := b.run(); err != nil {
		return nil, err
	}
	return b.frames[0].node, nil
}

// frame is an in progress call. The node is owned by the frame until it is popped.
type frame struct {
	node *Node
	// pending counts the children added since the last argument separator
	pending int
	braces  bool
}

// bracket marks an open [ by the index of the array expression in its frame.
type bracket struct {
	frame *frame
	index int
	pos   Pos
}

type builder struct {
	tokens   []Token
	idx      int
	registry Registry

	frames   []*frame
	brackets []bracket
	parens   int
}

func (b *builder) push(node *Node) {
	b.frames = append(b.frames, &frame{
		node: node,
	})
}

func (b *builder) top() *frame {
	return b.frames[len(b.frames)-1]
}

// at returns the token at offset from the current one, or an invalid token.
func (b *builder) at(offset int) Token {
	i := b.idx + offset
	if i < 0 || i >= len(b.tokens) {
		return Token{}
	}
	return b.tokens[i]
}

// add appends a child to the open call.
func (b *builder) add(node *Node) {
	f := b.top()
	f.node.AddChild(node)
	f.pending++
}

// flush groups the children pending since the last separator into an autoconcat call.
func (b *builder) flush(f *frame) {
	if f.pending <= 1 {
		return
	}
	children := f.node.Children
	at := len(children) - f.pending
	if at < 0 {
		at = 0
	}
	grouped := make([]*Node, len(children)-at)
	copy(grouped, children[at:])
	group := NewCall(AutoconcatFunction, grouped[0].Pos, grouped...)
	f.node.Children = append(children[:at], group)
}

func (b *builder) run() error {
	for ; b.idx < len(b.tokens); b.idx++ {
		if err := b.step(b.tokens[b.idx]); err != nil {
			return err
		}
	}

	last := Pos{}
	if len(b.tokens) > 0 {
		last = b.tokens[len(b.tokens)-1].Pos
	}
	if len(b.brackets) != 0 {
		return errorf(ErrStructural, b.brackets[len(b.brackets)-1].pos, "mismatched square brackets")
	}
	if b.parens != 0 || len(b.frames) != 1 {
		return errorf(ErrStructural, last, "mismatched parenthesis")
	}
	return nil
}

func (b *builder) step(t Token) error {
	next := b.at(1)

	// labels
	if next.Kind == TokenLabel && t.Kind != TokenLabel {
		var key Value
		switch {
		case t.Kind == TokenIVariable:
			key = IVariable{Name: t.Text}
		case !t.Kind.IsAtomicLiteral():
			return errorf(ErrStructural, t.Pos, "invalid label specified")
		case t.Kind == TokenString:
			key = String(t.Text)
		default:
			key = ResolveLiteral(t.Text)
		}
		b.add(NewNode(Label{Key: key}, t.Pos))
		b.idx++
		return nil
	}
	if t.Kind == TokenLabel {
		f := b.top()
		if n := len(f.node.Children); n > 0 && f.pending > 0 {
			if s, ok := f.node.Children[n-1].Value.(Slice); ok {
				f.node.Children[n-1].Value = Label{Key: s}
				return nil
			}
		}
		return errorf(ErrStructural, t.Pos, "invalid label specified")
	}

	switch t.Kind {

	case TokenLSquare:
		f := b.top()
		if f.pending == 0 || len(f.node.Children) == 0 {
			return errorf(ErrStructural, t.Pos, "brackets are illegal here")
		}
		b.brackets = append(b.brackets, bracket{
			frame: f,
			index: len(f.node.Children) - 1,
			pos:   t.Pos,
		})
		return nil

	case TokenRSquare:
		return b.closeBracket(t)

	case TokenSmartString:
		b.add(NewCall(SmartStringFunction, t.Pos, NewNode(String(t.Text), t.Pos)))
		return nil

	case TokenDereference:
		return errorf(ErrStructural, t.Pos,
			"the '%s' symbol is not currently allowed in raw strings, you must quote all symbols", t.Text)

	case TokenFuncName:
		node := NewCall(t.Text, t.Pos)
		b.top().node.AddChild(node)
		b.push(node)
		return nil

	case TokenFuncStart:
		if b.at(-1).Kind != TokenFuncName {
			return errorf(ErrStructural, t.Pos, "unexpected parenthesis")
		}
		b.parens++
		return nil

	case TokenFuncEnd:
		return b.closeCall(t)

	case TokenComma, TokenBraceComma:
		f := b.top()
		if len(b.brackets) > 0 && b.brackets[len(b.brackets)-1].frame == f {
			return errorf(ErrStructural, t.Pos, "unexpected comma inside brackets")
		}
		if t.Kind == TokenBraceComma {
			f.braces = true
		}
		b.flush(f)
		f.pending = 0
		return nil

	case TokenSlice:
		// empty start, like [..3] or [..]
		text := ".."
		switch n := b.at(1); {
		case n.Kind == TokenInvalid || n.Kind.IsSeparator():
		case n.Kind.IsPlusMinus():
			text += n.Text + b.at(2).Text
			b.idx += 2
		default:
			text += n.Text
			b.idx++
		}
		return b.addSlice(text, t.Pos)

	}

	if next.Kind == TokenSlice {
		return b.slice(t)
	}

	switch t.Kind {
	case TokenLiteral:
		b.add(NewNode(ResolveLiteral(t.Text), t.Pos))
	case TokenString, TokenCommand:
		b.add(NewNode(String(t.Text), t.Pos))
	case TokenIdentifier:
		b.add(NewNode(PreIdentifier{Name: t.Text}, t.Pos))
	case TokenIVariable:
		b.add(NewNode(IVariable{Name: t.Text}, t.Pos))
	case TokenVariable, TokenFinalVar:
		b.add(NewNode(Variable{
			Name:  t.Text,
			Final: t.Kind == TokenFinalVar,
		}, t.Pos))
	default:
		if t.Kind.IsSymbol() {
			b.add(NewNode(Symbol{Kind: t.Kind, Text: t.Text}, t.Pos))
		}
	}
	return nil
}

// slice handles t followed by a slice operator: a.. or a..b, with optional signs.
func (b *builder) slice(t Token) error {
	f := b.top()
	modifier := ""
	if prev := b.at(-1); prev.Kind.IsPlusMinus() {
		if n := len(f.node.Children); n > 0 && f.pending > 0 {
			if sym, ok := f.node.Children[n-1].Value.(Symbol); ok && sym.Kind == prev.Kind {
				modifier = prev.Text
				f.node.Children = f.node.Children[:n-1]
				f.pending--
			}
		}
	}

	end := b.at(2)
	if end.Kind == TokenInvalid || end.Kind.IsSeparator() {
		// empty end
		b.idx++
		return b.addSlice(modifier+t.Text+"..", t.Pos)
	}

	text := modifier + t.Text + ".."
	if end.Kind.IsPlusMinus() {
		text += end.Text + b.at(3).Text
		b.idx += 3
	} else {
		text += end.Text
		b.idx += 2
	}
	return b.addSlice(text, t.Pos)
}

func (b *builder) addSlice(text string, pos Pos) error {
	s, err := ParseSlice(text, pos)
	if err != nil {
		var runtimeErr *RuntimeError
		if errors.As(err, &runtimeErr) {
			return errorf(ErrStructural, pos, "%s", runtimeErr.Message)
		}
		return err
	}
	b.add(NewNode(s, pos))
	return nil
}

// closeBracket rewrites array[index] into array_get(array, index).
func (b *builder) closeBracket(t Token) error {
	if len(b.brackets) == 0 {
		return errorf(ErrStructural, t.Pos, "mismatched square bracket")
	}
	mark := b.brackets[len(b.brackets)-1]
	b.brackets = b.brackets[:len(b.brackets)-1]

	f := b.top()
	if mark.frame != f || mark.index >= len(f.node.Children) {
		return errorf(ErrStructural, t.Pos, "mismatched square bracket")
	}

	array := f.node.Children[mark.index]
	rest := f.node.Children[mark.index+1:]

	var index *Node
	switch {
	case b.at(-1).Kind == TokenLSquare:
		index = NewNode(FullSlice, t.Pos)
	case len(rest) == 0:
		return errorf(ErrStructural, t.Pos, "brackets are illegal here")
	case len(rest) == 1:
		index = rest[0]
	default:
		grouped := make([]*Node, len(rest))
		copy(grouped, rest)
		index = NewCall(AutoconcatFunction, grouped[0].Pos, grouped...)
	}

	f.pending -= len(rest)
	if f.pending < 1 {
		f.pending = 1
	}
	f.node.Children = append(f.node.Children[:mark.index], NewCall(ArrayGetFunction, array.Pos, array, index))
	return nil
}

func (b *builder) closeCall(t Token) error {
	if b.parens <= 0 || len(b.frames) < 2 {
		return errorf(ErrStructural, t.Pos, "unexpected parenthesis")
	}
	for _, mark := range b.brackets {
		if mark.frame == b.top() {
			return errorf(ErrStructural, mark.pos, "mismatched square bracket")
		}
	}
	b.parens--

	f := b.top()
	b.frames = b.frames[:len(b.frames)-1]

	if f.braces {
		name, _ := f.node.CallName()
		fn, ok := b.registry.Resolve(name)
		if !ok {
			return errorf(ErrStructural, t.Pos, "could not find function %s", name)
		}
		if !fn.AllowBraces {
			return errorf(ErrStructural, t.Pos, "improper use of braces with %s()", name)
		}
	}

	b.flush(f)
	b.top().pending++
	return nil
}
