package msbuiltins

import (
	"github.com/reusee/mscript/mslang"
)

func dataFunctions() []*mslang.Function {
	return []*mslang.Function{
		{Name: mslang.AssignFunction, Arity: mslang.Between(2, 3)},
		{Name: "array", Arity: mslang.AnyArity},
		{Name: "centry", Arity: mslang.Exactly(2)},
		{Name: mslang.NoopFunction, Arity: mslang.AnyArity},

		{
			Name:  mslang.ArrayGetFunction,
			Arity: mslang.Between(2, 3),
			Capabilities: mslang.Capabilities{
				Options:             mslang.OptimizeConstant,
				PreResolveVariables: true,
			},
			Optimize: func(pos mslang.Pos, args []mslang.Value) (mslang.Value, error) {
				// only strings are constant, arrays are built at execution time
				s, ok := args[0].(mslang.String)
				if !ok {
					return nil, nil
				}
				return index([]rune(string(s)), args[1], pos)
			},
		},
	}
}

func index(runes []rune, idx mslang.Value, pos mslang.Pos) (mslang.Value, error) {
	n := int64(len(runes))
	resolve := func(i int64) int64 {
		if i < 0 {
			return n + i
		}
		return i
	}

	switch idx := idx.(type) {

	case mslang.Slice:
		// bounds are inclusive
		start, end := resolve(idx.Start), resolve(idx.End)
		if n == 0 || start > end {
			return mslang.String(""), nil
		}
		if start < 0 || end >= n {
			return nil, mslang.NewRuntimeError(pos, "slice %s is out of range for a string of length %d", idx, n)
		}
		return mslang.String(string(runes[start : end+1])), nil

	default:
		i, ok := asInt(idx)
		if !ok {
			return nil, mslang.NewRuntimeError(pos, "expecting an integer index, but got %q", asString(idx))
		}
		i = resolve(i)
		if i < 0 || i >= n {
			return nil, mslang.NewRuntimeError(pos, "index %d is out of range for a string of length %d", i, n)
		}
		return mslang.String(string(runes[i])), nil

	}
}
