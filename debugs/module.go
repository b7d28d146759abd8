package debugs

import (
	"github.com/reusee/dscope"
	"github.com/reusee/e5"
	"github.com/reusee/mscript/logs"
)

type Module struct {
	dscope.Module
	Logs logs.Module
}

var wrap = e5.Wrap.With(e5.WrapStacktrace)
