package main

import (
	"github.com/reusee/dscope"
	"github.com/reusee/e5"
	"github.com/reusee/mscript/debugs"
	"github.com/reusee/mscript/msbuiltins"
	"github.com/reusee/mscript/msconfigs"
	"github.com/reusee/mscript/mslang"
)

type Module struct {
	dscope.Module
	Lang     mslang.Module
	Builtins msbuiltins.Module
	Configs  msconfigs.Module
	Debugs   debugs.Module
}

var wrap = e5.Wrap.With(e5.WrapStacktrace)

func ce(err error) {
	if err != nil {
		panic(wrap(err))
	}
}
