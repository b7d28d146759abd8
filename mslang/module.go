package mslang

import (
	"github.com/reusee/dscope"
	"github.com/reusee/mscript/logs"
	"github.com/reusee/mscript/modes"
)

type Module struct {
	dscope.Module
	Logs logs.Module
}

func (Module) Compiler(
	registry Registry,
	options FileOptions,
	logger logs.Logger,
	newSpan logs.NewSpan,
	mode modes.Mode,
) *Compiler {
	return &Compiler{
		Registry: registry,
		Options:  options,
		Logger:   logger,
		NewSpan:  newSpan,
		Mode:     mode,
	}
}
