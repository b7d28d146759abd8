package msbuiltins

import (
	"github.com/reusee/mscript/mslang"
)

var loop = mslang.Capabilities{
	Breakable:   true,
	AllowBraces: true,
	SpecialExec: true,
}

var terminal = mslang.Capabilities{
	Options: mslang.Terminal,
}

func controlFunctions() []*mslang.Function {
	return []*mslang.Function{
		{
			Name:  "if",
			Arity: mslang.Between(2, 3),
			Capabilities: mslang.Capabilities{
				Options:     mslang.OptimizeDynamic,
				AllowBraces: true,
				SpecialExec: true,
			},
			OptimizeDynamic: optimizeIf,
		},

		{
			Name:  "ifelse",
			Arity: mslang.AnyArity,
			Capabilities: mslang.Capabilities{
				Options:     mslang.OptimizeDynamic,
				AllowBraces: true,
				SpecialExec: true,
			},
			OptimizeDynamic: optimizeIf,
		},

		{Name: "for", Arity: mslang.Exactly(4), Capabilities: loop},
		{Name: "foreach", Arity: mslang.Between(2, 4), Capabilities: loop},
		{Name: "while", Arity: mslang.Between(1, 2), Capabilities: loop},
		{Name: "dowhile", Arity: mslang.Exactly(2), Capabilities: loop},

		{Name: mslang.BreakFunction, Arity: mslang.Between(0, 1), Capabilities: terminal},
		{Name: "continue", Arity: mslang.Between(0, 1), Capabilities: terminal},
		{Name: mslang.ReturnFunction, Arity: mslang.Between(0, 1), Capabilities: terminal},
		{Name: "die", Arity: mslang.AnyArity, Capabilities: terminal},

		{
			Name:  "proc",
			Arity: mslang.AnyArity,
			Capabilities: mslang.Capabilities{
				DefinesProcedure: true,
				Unbreakable:      true,
				AllowBraces:      true,
				SpecialExec:      true,
			},
		},

		{
			Name:  "closure",
			Arity: mslang.AnyArity,
			Capabilities: mslang.Capabilities{
				Unbreakable: true,
				AllowBraces: true,
				SpecialExec: true,
			},
		},
	}
}

// optimizeIf attaches else and elseif clauses, then drops branches with constant conditions.
func optimizeIf(pos mslang.Pos, children []*mslang.Node, _ mslang.FileOptions) (mslang.Rewrite, error) {
	args, changed, err := attachClauses(pos, children)
	if err != nil {
		return mslang.Rewrite{}, err
	}
	if changed {
		return replaceIf(pos, args), nil
	}

	var out []*mslang.Node
	i := 0
	for ; i+1 < len(children); i += 2 {
		cond, body := children[i], children[i+1]
		if !mslang.IsConstant(cond.Value) {
			out = append(out, cond, body)
			continue
		}
		changed = true
		if !asBool(cond.Value) {
			continue
		}
		if len(out) == 0 {
			return mslang.Rewrite{
				Kind: mslang.Replace,
				Node: body,
			}, nil
		}
		// the rest is unreachable, the body becomes the else branch
		return replaceIf(pos, append(out, body)), nil
	}

	if i < len(children) {
		otherwise := children[i]
		if len(out) == 0 {
			return mslang.Rewrite{
				Kind: mslang.Replace,
				Node: otherwise,
			}, nil
		}
		out = append(out, otherwise)
	}

	if len(out) == 0 {
		return mslang.Rewrite{
			Kind: mslang.Remove,
		}, nil
	}
	if !changed {
		return mslang.Rewrite{}, nil
	}
	return replaceIf(pos, out), nil
}

func attachClauses(pos mslang.Pos, children []*mslang.Node) (ret []*mslang.Node, changed bool, err error) {
	for i, child := range children {
		if !child.WasIdentifier {
			ret = append(ret, child)
			continue
		}
		name, _ := child.CallName()
		switch name {

		case "else":
			if i != len(children)-1 {
				return nil, false, mslang.NewRuntimeError(child.Pos, "else must be the last clause of if")
			}

		case "elseif":

		default:
			ret = append(ret, child)
			continue
		}

		if len(child.Children) != 1 {
			return nil, false, mslang.NewRuntimeError(child.Pos, "%s expects one argument", name)
		}
		ret = append(ret, child.Children[0])
		changed = true
	}
	return
}

func replaceIf(pos mslang.Pos, args []*mslang.Node) mslang.Rewrite {
	name := "if"
	if len(args) > 3 {
		name = "ifelse"
	}
	return mslang.Rewrite{
		Kind: mslang.Replace,
		Node: mslang.NewCall(name, pos, args...),
	}
}
