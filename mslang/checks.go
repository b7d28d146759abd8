package mslang

import (
	"strings"
)

// CheckBreaks rejects break calls that leave more loops than enclose them.
// Unbreakable constructs, like procedures and closures, reset the count.
func CheckBreaks(root *Node, registry Registry) error {
	return checkBreaks(root, registry, 0, "")
}

func checkBreaks(node *Node, registry Registry, loops int64, unbreakable string) error {
	name, ok := node.CallName()
	if !ok {
		return nil
	}

	if strings.HasPrefix(name, "_") {
		for _, child := range node.Children {
			if err := checkBreaks(child, registry, loops, unbreakable); err != nil {
				return err
			}
		}
		return nil
	}

	fn, ok := registry.Resolve(name)
	if ok {
		if fn.NoLinking {
			return nil
		}

		if name == BreakFunction {
			count := int64(1)
			if len(node.Children) == 1 {
				n, ok := node.Children[0].Value.(Int)
				if !ok {
					// dynamic count, checked at run time
					return nil
				}
				count = int64(n)
			}
			if count <= loops {
				return nil
			}
			if loops == 0 {
				if unbreakable == "" {
					return errorf(ErrBreakDepth, node.Pos, "the break() function can only break out of loops")
				}
				return errorf(ErrBreakDepth, node.Pos,
					"the break() function can only break out of loops, but an attempt to break out of a %s was detected", unbreakable)
			}
			return errorf(ErrBreakDepth, node.Pos,
				"too many breaks detected, check your loop nesting and set the break count to an appropriate value")
		}

		if fn.Unbreakable {
			loops = 0
			unbreakable = name
		} else if fn.Breakable {
			loops++
		}
	}

	for _, child := range node.Children {
		if err := checkBreaks(child, registry, loops, unbreakable); err != nil {
			return err
		}
	}
	return nil
}

// CheckLabels rejects labels with dynamic keys or with children.
func CheckLabels(root *Node) error {
	var err error
	root.Walk(func(n *Node) bool {
		if err != nil {
			return false
		}
		label, ok := n.Value.(Label)
		if !ok {
			return true
		}
		switch label.Key.(type) {
		case IVariable, Slice:
		default:
			if label.Key == nil || !IsConstant(label.Key) {
				err = errorf(ErrLabel, n.Pos, "labels must be constant values or indirect variables")
				return false
			}
		}
		if len(n.Children) > 0 {
			err = errorf(ErrLabel, n.Pos, "label %s can not have arguments", label.Key)
			return false
		}
		return true
	})
	return err
}
