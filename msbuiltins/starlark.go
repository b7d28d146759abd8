package msbuiltins

import (
	"fmt"
	"math"

	"github.com/reusee/e5"
	"github.com/reusee/mscript/mslang"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

var wrap = e5.Wrap.With(e5.WrapStacktrace)

// LoadStarlark runs a starlark file and defines each of its global functions as a
// compile time evaluable function. src is passed to starlark.ExecFileOptions, nil reads
// the file. Builtins can not be redefined.
func LoadStarlark(registry mslang.MapRegistry, filename string, src any) error {
	thread := &starlark.Thread{
		Name: filename,
	}
	globals, err := starlark.ExecFileOptions(&syntax.FileOptions{}, thread, filename, src, nil)
	if err != nil {
		return wrap(err)
	}

	for name, value := range globals {
		fn, ok := value.(*starlark.Function)
		if !ok {
			continue
		}
		if _, ok := registry.Resolve(name); ok {
			return wrap(fmt.Errorf("%s: function %s is already defined", filename, name))
		}
		registry.Define(&mslang.Function{
			Name:         name,
			Arity:        starlarkArity(fn),
			Capabilities: foldable,
			Exec:         starlarkExec(fn),
		})
	}

	return nil
}

func starlarkArity(fn *starlark.Function) mslang.Arity {
	if fn.HasVarargs() {
		return mslang.AnyArity
	}
	positional := fn.NumParams() - fn.NumKwonlyParams()
	if fn.HasKwargs() {
		positional--
	}
	required := 0
	for i := range positional {
		if fn.ParamDefault(i) == nil {
			required++
		}
	}
	return mslang.Between(required, positional)
}

func starlarkExec(fn *starlark.Function) func(mslang.Pos, []mslang.Value) (mslang.Value, error) {
	return func(pos mslang.Pos, args []mslang.Value) (mslang.Value, error) {
		thread := &starlark.Thread{
			Name: fn.Name(),
		}
		starlarkArgs := make(starlark.Tuple, 0, len(args))
		for _, arg := range args {
			v, err := toStarlark(arg)
			if err != nil {
				return nil, mslang.NewRuntimeError(pos, "%s: %v", fn.Name(), err)
			}
			starlarkArgs = append(starlarkArgs, v)
		}
		ret, err := starlark.Call(thread, fn, starlarkArgs, nil)
		if err != nil {
			return nil, mslang.NewRuntimeError(pos, "%s: %v", fn.Name(), err)
		}
		v, err := fromStarlark(ret)
		if err != nil {
			return nil, mslang.NewRuntimeError(pos, "%s: %v", fn.Name(), err)
		}
		return v, nil
	}
}

func toStarlark(v mslang.Value) (starlark.Value, error) {
	switch v := v.(type) {
	case mslang.Null:
		return starlark.None, nil
	case mslang.Bool:
		return starlark.Bool(v), nil
	case mslang.Int:
		return starlark.MakeInt64(int64(v)), nil
	case mslang.Double:
		return starlark.Float(v), nil
	case mslang.String:
		return starlark.String(v), nil
	}
	return nil, fmt.Errorf("can not pass %T to starlark", v)
}

func fromStarlark(v starlark.Value) (mslang.Value, error) {
	switch v := v.(type) {
	case starlark.NoneType:
		return mslang.Null{}, nil
	case starlark.Bool:
		return mslang.Bool(v), nil
	case starlark.Int:
		i, ok := v.Int64()
		if !ok {
			return nil, fmt.Errorf("integer %s out of range", v)
		}
		return mslang.Int(i), nil
	case starlark.Float:
		if math.IsNaN(float64(v)) {
			return nil, fmt.Errorf("NaN result")
		}
		return mslang.Double(v), nil
	case starlark.String:
		return mslang.String(v), nil
	}
	return nil, fmt.Errorf("unsupported starlark result type %s", v.Type())
}
