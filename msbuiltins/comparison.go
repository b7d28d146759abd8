package msbuiltins

import (
	"github.com/reusee/mscript/mslang"
	"github.com/samber/lo"
)

func comparisonFunctions() []*mslang.Function {
	return []*mslang.Function{
		compare("equals", func(a, b mslang.Value) (bool, error) {
			return equals(a, b), nil
		}),
		compare("nequals", func(a, b mslang.Value) (bool, error) {
			return !equals(a, b), nil
		}),
		compare("sequals", func(a, b mslang.Value) (bool, error) {
			return a == b, nil
		}),
		compare("snequals", func(a, b mslang.Value) (bool, error) {
			return a != b, nil
		}),
		compare("lt", order(func(c int) bool { return c < 0 })),
		compare("gt", order(func(c int) bool { return c > 0 })),
		compare("lte", order(func(c int) bool { return c <= 0 })),
		compare("gte", order(func(c int) bool { return c >= 0 })),

		{
			Name:         "and",
			Arity:        mslang.AnyArity,
			Capabilities: foldable,
			Exec: func(pos mslang.Pos, args []mslang.Value) (mslang.Value, error) {
				return mslang.Bool(lo.EveryBy(args, asBool)), nil
			},
		},

		{
			Name:         "or",
			Arity:        mslang.AnyArity,
			Capabilities: foldable,
			Exec: func(pos mslang.Pos, args []mslang.Value) (mslang.Value, error) {
				return mslang.Bool(lo.SomeBy(args, asBool)), nil
			},
		},

		{
			Name:         "not",
			Arity:        mslang.Exactly(1),
			Capabilities: foldable,
			Exec: func(pos mslang.Pos, args []mslang.Value) (mslang.Value, error) {
				return mslang.Bool(!asBool(args[0])), nil
			},
		},
	}
}

func compare(name string, fn func(a, b mslang.Value) (bool, error)) *mslang.Function {
	return &mslang.Function{
		Name:         name,
		Arity:        mslang.Exactly(2),
		Capabilities: foldable,
		Exec: func(pos mslang.Pos, args []mslang.Value) (mslang.Value, error) {
			ok, err := fn(args[0], args[1])
			if err != nil {
				return nil, mslang.NewRuntimeError(pos, "%s: %v", name, err)
			}
			return mslang.Bool(ok), nil
		},
	}
}

// equals compares numbers numerically, booleans by truth, and everything else as strings.
func equals(a, b mslang.Value) bool {
	_, aBool := a.(mslang.Bool)
	_, bBool := b.(mslang.Bool)
	if aBool || bBool {
		return asBool(a) == asBool(b)
	}
	if af, ok := asFloat(a); ok {
		if bf, ok := asFloat(b); ok {
			return af == bf
		}
	}
	return asString(a) == asString(b)
}

type orderError struct {
	a, b mslang.Value
}

func (o orderError) Error() string {
	return "can not compare " + asString(o.a) + " and " + asString(o.b)
}

func order(pred func(int) bool) func(a, b mslang.Value) (bool, error) {
	return func(a, b mslang.Value) (bool, error) {
		if af, ok := asFloat(a); ok {
			if bf, ok := asFloat(b); ok {
				switch {
				case af < bf:
					return pred(-1), nil
				case af > bf:
					return pred(1), nil
				}
				return pred(0), nil
			}
		}
		as, aok := a.(mslang.String)
		bs, bok := b.(mslang.String)
		if aok && bok {
			switch {
			case as < bs:
				return pred(-1), nil
			case as > bs:
				return pred(1), nil
			}
			return pred(0), nil
		}
		return false, orderError{a, b}
	}
}
