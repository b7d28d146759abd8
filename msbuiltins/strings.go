package msbuiltins

import (
	"strings"

	"github.com/reusee/mscript/mslang"
	"github.com/samber/lo"
)

func stringFunctions() []*mslang.Function {
	return []*mslang.Function{
		{
			Name:         "concat",
			Arity:        mslang.AnyArity,
			Capabilities: foldable,
			Exec: func(pos mslang.Pos, args []mslang.Value) (mslang.Value, error) {
				return mslang.String(strings.Join(lo.Map(args, stringArg), "")), nil
			},
		},

		{
			Name:         "sconcat",
			Arity:        mslang.AnyArity,
			Capabilities: foldable,
			Exec: func(pos mslang.Pos, args []mslang.Value) (mslang.Value, error) {
				return mslang.String(strings.Join(lo.Map(args, stringArg), " ")), nil
			},
		},

		{
			Name:         "to_upper",
			Arity:        mslang.Exactly(1),
			Capabilities: foldable,
			Exec: func(pos mslang.Pos, args []mslang.Value) (mslang.Value, error) {
				return mslang.String(strings.ToUpper(asString(args[0]))), nil
			},
		},

		{
			Name:         "to_lower",
			Arity:        mslang.Exactly(1),
			Capabilities: foldable,
			Exec: func(pos mslang.Pos, args []mslang.Value) (mslang.Value, error) {
				return mslang.String(strings.ToLower(asString(args[0]))), nil
			},
		},

		{
			Name:  mslang.SmartStringFunction,
			Arity: mslang.Exactly(1),
			Capabilities: mslang.Capabilities{
				Options: mslang.OptimizeConstant,
			},
			Optimize: func(pos mslang.Pos, args []mslang.Value) (mslang.Value, error) {
				s, ok := args[0].(mslang.String)
				if !ok {
					return nil, nil
				}
				if hasInterpolation(string(s)) {
					// resolved at execution time
					return nil, nil
				}
				return mslang.String(strings.ReplaceAll(string(s), `\@`, "@")), nil
			},
		},

		// side effects
		{Name: "msg", Arity: mslang.AnyArity},
		{Name: "rand", Arity: mslang.Between(0, 2)},

		// children are kept as written
		{
			Name:  "quote",
			Arity: mslang.AnyArity,
			Capabilities: mslang.Capabilities{
				NoLinking: true,
			},
		},
	}
}

func stringArg(v mslang.Value, _ int) string {
	return asString(v)
}

// hasInterpolation reports an @ that is not escaped.
func hasInterpolation(s string) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			if i+1 < len(s) && s[i+1] == '@' {
				i++
			}
		case '@':
			return true
		}
	}
	return false
}
