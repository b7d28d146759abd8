package msbuiltins

import "github.com/reusee/mscript/mslang"

// New returns a registry with every builtin function defined.
func New() mslang.MapRegistry {
	registry := make(mslang.MapRegistry)
	for _, fns := range [][]*mslang.Function{
		autoconcatFunctions(),
		mathFunctions(),
		comparisonFunctions(),
		stringFunctions(),
		dataFunctions(),
		controlFunctions(),
	} {
		registry.Define(fns...)
	}
	return registry
}
