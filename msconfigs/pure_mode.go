package msconfigs

import (
	"github.com/reusee/mscript/cmds"
	"github.com/reusee/mscript/configs"
	"github.com/samber/lo"
)

// PureMode compiles each file as a single unit.
type PureMode bool

var pureFlag = cmds.OptionalSwitch("-pure")

func (Module) PureMode(
	loader configs.Loader,
) PureMode {
	return PureMode(lo.FromPtr(lo.CoalesceOrEmpty(
		*pureFlag,
		configs.First[*bool](loader, "pure"),
	)))
}
