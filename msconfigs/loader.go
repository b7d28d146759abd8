package msconfigs

import (
	_ "embed"
	"os"

	"github.com/reusee/mscript/configs"
	"github.com/reusee/mscript/logs"
)

//go:embed schema.cue
var schema string

var filenames = []string{
	"msc.cue",
	".msc.cue",
}

func (Module) ConfigsLoader(
	logger logs.Logger,
) configs.Loader {
	var dirs []string
	if dir, err := os.Getwd(); err == nil {
		dirs = append(dirs, dir)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, dir)
	}
	dirs = append(dirs, "/etc")

	paths := configs.Search(dirs, filenames...)
	if len(paths) > 0 {
		logger.Info("config file",
			"paths", paths,
		)
	}
	return configs.NewLoader(paths, schema)
}
