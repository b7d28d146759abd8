package msconfigs

import (
	"runtime"

	"github.com/reusee/mscript/cmds"
	"github.com/reusee/mscript/configs"
	"github.com/samber/lo"
)

// Parallel is the number of files compiled concurrently.
type Parallel int

var parallelFlag = cmds.Var[int]("-j")

func (Module) Parallel(
	loader configs.Loader,
) Parallel {
	return Parallel(lo.CoalesceOrEmpty(
		max(*parallelFlag, 0),
		configs.First[int](loader, "parallel"),
		runtime.NumCPU(),
	))
}
