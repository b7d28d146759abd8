package cmds

import "github.com/samber/lo"

func Var[T any](name string) *T {
	var value T

	// set
	Define(name, Func(func(v T) {
		value = v
	}))

	// set zero
	var zero T
	Define(name+".", Func(func() {
		value = zero
	}))

	return &value
}

func Switch(name string) *bool {
	var value bool

	// set true
	Define(name, Func(func() {
		value = true
	}))

	// set false
	Define("!"+name, Func(func() {
		value = false
	}))

	return &value
}

// OptionalSwitch is like Switch, but the value stays nil unless one of the forms is given.
func OptionalSwitch(name string) **bool {
	var value *bool

	Define(name, Func(func() {
		value = lo.ToPtr(true)
	}))

	Define("!"+name, Func(func() {
		value = lo.ToPtr(false)
	}))

	return &value
}

func Collect[T any](name string) *[]T {
	var value []T
	// append
	Define(name, Func(func(v T) {
		value = append(value, v)
	}))
	return &value
}

// Rest collects the arguments that do not name a command, like input files.
func Rest[T any]() *[]T {
	var value []T
	GlobalExecutor.Rest(Func(func(v T) {
		value = append(value, v)
	}))
	return &value
}
