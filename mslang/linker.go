package mslang

import (
	"github.com/dlclark/regexp2"
)

// private procedure references, a single leading underscore
var procedurePattern = regexp2.MustCompile(`^_[^_]`, regexp2.None)

func isProcedureName(name string) bool {
	return matches(procedurePattern, name)
}

// Link resolves every call against the registry and checks argument counts.
func Link(root *Node, registry Registry) error {
	if name, ok := root.CallName(); ok {
		if err := linkCall(root, name, registry); err != nil {
			return err
		}
		if fn, ok := registry.Resolve(name); ok && fn.NoLinking {
			return nil
		}
	}
	return linkChildren(root, registry)
}

func linkChildren(node *Node, registry Registry) error {
	for _, child := range node.Children {
		name, ok := child.CallName()
		if !ok {
			continue
		}
		if err := linkCall(child, name, registry); err != nil {
			return err
		}
		if fn, ok := registry.Resolve(name); ok && fn.NoLinking {
			continue
		}
		if err := linkChildren(child, registry); err != nil {
			return err
		}
	}
	return nil
}

func linkCall(node *Node, name string, registry Registry) error {
	if isProcedureName(name) {
		return nil
	}
	fn, ok := registry.Resolve(name)
	if !ok {
		return errorf(ErrUnresolvedFunction, node.Pos, "no function named %s", name)
	}
	if !fn.Arity.Accepts(len(node.Children)) {
		return errorf(ErrArityMismatch, node.Pos,
			"incorrect number of arguments passed to %s, expecting %s but got %d",
			name, fn.Arity, len(node.Children))
	}
	return nil
}
