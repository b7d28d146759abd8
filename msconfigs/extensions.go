package msconfigs

import (
	"github.com/reusee/e5"
	"github.com/reusee/mscript/cmds"
	"github.com/reusee/mscript/configs"
	"github.com/samber/lo"
)

var wrap = e5.Wrap.With(e5.WrapStacktrace)

// Extensions lists starlark files whose functions are added to the registry.
type Extensions []string

var extensionFlags = cmds.Collect[string]("-ext")

func (Module) Extensions(
	loader configs.Loader,
) Extensions {
	ret := append(Extensions(nil), *extensionFlags...)
	for paths := range configs.All[[]string](loader, "extensions") {
		ret = append(ret, paths...)
	}
	return lo.Uniq(ret)
}
