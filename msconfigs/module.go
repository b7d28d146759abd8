package msconfigs

import (
	"github.com/reusee/dscope"
	"github.com/reusee/mscript/logs"
)

type Module struct {
	dscope.Module
	Logs logs.Module
}
