package mslang

import (
	"strconv"
	"strings"
)

// Node is a parse tree node. Each node exclusively owns its children.
type Node struct {
	Value    Value
	Children []*Node
	Pos      Pos

	// Optimized is set once the optimizer has visited the node.
	Optimized bool
	// WasIdentifier marks calls rewritten from a bare identifier, like else.
	WasIdentifier bool
}

func NewNode(value Value, pos Pos, children ...*Node) *Node {
	return &Node{
		Value:    value,
		Pos:      pos,
		Children: children,
	}
}

func NewCall(name string, pos Pos, children ...*Node) *Node {
	return NewNode(Call{Name: name}, pos, children...)
}

// CallName returns the function name if the node is a call.
func (n *Node) CallName() (string, bool) {
	call, ok := n.Value.(Call)
	if !ok {
		return "", false
	}
	return call.Name, true
}

func (n *Node) IsCall(name string) bool {
	got, ok := n.CallName()
	return ok && got == name
}

func (n *Node) AddChild(child *Node) {
	n.Children = append(n.Children, child)
}

// replace takes over the content of other in place, so references to n stay valid.
func (n *Node) replace(other *Node) {
	n.Value = other.Value
	n.Children = other.Children
	n.Optimized = other.Optimized
	n.WasIdentifier = other.WasIdentifier
	if other.Pos.Line > 0 {
		n.Pos = other.Pos
	}
}

// Clone returns a deep copy with optimization marks cleared.
func (n *Node) Clone() *Node {
	ret := &Node{
		Value:         n.Value,
		Pos:           n.Pos,
		WasIdentifier: n.WasIdentifier,
	}
	if len(n.Children) > 0 {
		ret.Children = make([]*Node, 0, len(n.Children))
		for _, child := range n.Children {
			ret.Children = append(ret.Children, child.Clone())
		}
	}
	return ret
}

// Walk visits nodes depth first, stopping the descent when fn returns false.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// Dump renders the tree as an s-expression.
func (n *Node) Dump() string {
	var sb strings.Builder
	n.dump(&sb)
	return sb.String()
}

func (n *Node) dump(sb *strings.Builder) {
	switch v := n.Value.(type) {
	case Call:
		sb.WriteString(v.Name)
		sb.WriteString("(")
		for i, child := range n.Children {
			if i > 0 {
				sb.WriteString(", ")
			}
			child.dump(sb)
		}
		sb.WriteString(")")
		return
	case String:
		sb.WriteString(strconv.Quote(string(v)))
	case Label:
		if s, ok := v.Key.(String); ok {
			sb.WriteString(strconv.Quote(string(s)))
		} else {
			sb.WriteString(v.Key.String())
		}
		sb.WriteString(":")
	case nil:
		sb.WriteString("<nil>")
	default:
		sb.WriteString(v.String())
	}
}
