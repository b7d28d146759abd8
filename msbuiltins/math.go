package msbuiltins

import (
	"math"

	"github.com/reusee/mscript/mslang"
	"github.com/samber/lo"
)

var foldable = mslang.Capabilities{
	Options:             mslang.ConstantOffline,
	PreResolveVariables: true,
}

func mathFunctions() []*mslang.Function {
	return []*mslang.Function{
		{
			Name:         "add",
			Arity:        mslang.AnyArity,
			Capabilities: foldable,
			Exec: func(pos mslang.Pos, args []mslang.Value) (mslang.Value, error) {
				return arith(pos, "add", args,
					func(a, b int64) (int64, error) {
						return a + b, nil
					},
					func(a, b float64) float64 {
						return a + b
					},
				)
			},
		},

		{
			Name:         "subtract",
			Arity:        mslang.AnyArity,
			Capabilities: foldable,
			Exec: func(pos mslang.Pos, args []mslang.Value) (mslang.Value, error) {
				return arith(pos, "subtract", args,
					func(a, b int64) (int64, error) {
						return a - b, nil
					},
					func(a, b float64) float64 {
						return a - b
					},
				)
			},
		},

		{
			Name:         "multiply",
			Arity:        mslang.AnyArity,
			Capabilities: foldable,
			Exec: func(pos mslang.Pos, args []mslang.Value) (mslang.Value, error) {
				return arith(pos, "multiply", args,
					func(a, b int64) (int64, error) {
						return a * b, nil
					},
					func(a, b float64) float64 {
						return a * b
					},
				)
			},
		},

		{
			Name:         "divide",
			Arity:        mslang.AnyArity,
			Capabilities: foldable,
			Exec: func(pos mslang.Pos, args []mslang.Value) (mslang.Value, error) {
				nums, ok := floats(args)
				if !ok || len(nums) == 0 {
					return nil, mslang.NewRuntimeError(pos, "divide expects numbers")
				}
				ret := nums[0]
				for _, n := range nums[1:] {
					if n == 0 {
						return nil, mslang.NewRuntimeError(pos, "division by zero")
					}
					ret /= n
				}
				_, isInts := ints(args)
				return number(ret, isInts), nil
			},
		},

		{
			Name:         "modulo",
			Arity:        mslang.Exactly(2),
			Capabilities: foldable,
			Exec: func(pos mslang.Pos, args []mslang.Value) (mslang.Value, error) {
				return arith(pos, "modulo", args,
					func(a, b int64) (int64, error) {
						if b == 0 {
							return 0, mslang.NewRuntimeError(pos, "modulo by zero")
						}
						return a % b, nil
					},
					math.Mod,
				)
			},
		},

		{
			Name:         "pow",
			Arity:        mslang.Exactly(2),
			Capabilities: foldable,
			Exec: func(pos mslang.Pos, args []mslang.Value) (mslang.Value, error) {
				nums, ok := floats(args)
				if !ok {
					return nil, mslang.NewRuntimeError(pos, "pow expects numbers")
				}
				_, isInts := ints(args)
				return number(math.Pow(nums[0], nums[1]), isInts && nums[1] >= 0), nil
			},
		},

		{
			Name:         "neg",
			Arity:        mslang.Exactly(1),
			Capabilities: foldable,
			Exec: func(pos mslang.Pos, args []mslang.Value) (mslang.Value, error) {
				if i, ok := asInt(args[0]); ok {
					return mslang.Int(-i), nil
				}
				if f, ok := asFloat(args[0]); ok {
					return mslang.Double(-f), nil
				}
				return nil, mslang.NewRuntimeError(pos, "neg expects a number, but got %q", asString(args[0]))
			},
		},

		// the operand is a variable, so these only run at execution time
		{Name: "inc", Arity: mslang.Between(1, 2)},
		{Name: "dec", Arity: mslang.Between(1, 2)},
		{Name: "postinc", Arity: mslang.Between(1, 2)},
		{Name: "postdec", Arity: mslang.Between(1, 2)},
	}
}

func ints(args []mslang.Value) ([]int64, bool) {
	if !lo.EveryBy(args, func(v mslang.Value) bool {
		_, ok := asInt(v)
		return ok
	}) {
		return nil, false
	}
	return lo.Map(args, func(v mslang.Value, _ int) int64 {
		i, _ := asInt(v)
		return i
	}), true
}

func floats(args []mslang.Value) ([]float64, bool) {
	if !lo.EveryBy(args, func(v mslang.Value) bool {
		_, ok := asFloat(v)
		return ok
	}) {
		return nil, false
	}
	return lo.Map(args, func(v mslang.Value, _ int) float64 {
		f, _ := asFloat(v)
		return f
	}), true
}

// arith left folds the arguments, in integers when every argument is one.
func arith(
	pos mslang.Pos,
	name string,
	args []mslang.Value,
	intOp func(a, b int64) (int64, error),
	floatOp func(a, b float64) float64,
) (mslang.Value, error) {
	if len(args) == 0 {
		return nil, mslang.NewRuntimeError(pos, "%s expects at least one argument", name)
	}

	if nums, ok := ints(args); ok {
		ret := nums[0]
		for _, n := range nums[1:] {
			var err error
			ret, err = intOp(ret, n)
			if err != nil {
				return nil, err
			}
		}
		return mslang.Int(ret), nil
	}

	if nums, ok := floats(args); ok {
		return mslang.Double(lo.Reduce(nums[1:], func(agg float64, n float64, _ int) float64 {
			return floatOp(agg, n)
		}, nums[0])), nil
	}

	bad, _ := lo.Find(args, func(v mslang.Value) bool {
		_, ok := asFloat(v)
		return !ok
	})
	return nil, mslang.NewRuntimeError(pos, "%s expects numbers, but got %q", name, asString(bad))
}
