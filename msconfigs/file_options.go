package msconfigs

import (
	"fmt"
	"maps"
	"strings"

	"github.com/reusee/mscript/cmds"
	"github.com/reusee/mscript/configs"
	"github.com/reusee/mscript/mslang"
)

var optionFlags = cmds.Collect[string]("-option")

// FileOptions merges the options of config files with -option key=value flags.
// Flags override files, and earlier files override later ones.
func (Module) FileOptions(
	loader configs.Loader,
) mslang.FileOptions {
	ret := make(mslang.FileOptions)

	var fromFiles []map[string]string
	for options := range configs.All[map[string]string](loader, "options") {
		fromFiles = append(fromFiles, options)
	}
	for i := len(fromFiles) - 1; i >= 0; i-- {
		maps.Copy(ret, fromFiles[i])
	}

	for _, flag := range *optionFlags {
		key, value, ok := strings.Cut(flag, "=")
		if !ok {
			panic(wrap(fmt.Errorf("bad option %q, expecting key=value", flag)))
		}
		ret[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}

	return ret
}
