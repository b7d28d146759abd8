package msbuiltins

import (
	"github.com/reusee/dscope"
	"github.com/reusee/mscript/logs"
	"github.com/reusee/mscript/msconfigs"
	"github.com/reusee/mscript/mslang"
)

type Module struct {
	dscope.Module
	Configs msconfigs.Module
}

func ce(err error) {
	if err != nil {
		panic(wrap(err))
	}
}

// Registry provides the builtins plus the functions of the configured extensions.
func (Module) Registry(
	extensions msconfigs.Extensions,
	logger logs.Logger,
) mslang.Registry {
	registry := New()
	for _, path := range extensions {
		ce(LoadStarlark(registry, path, nil))
		logger.Info("extension loaded", "path", path)
	}
	return registry
}
