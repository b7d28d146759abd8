package logs

import (
	"io"
	"os"

	"github.com/reusee/mscript/cmds"
)

type Writer io.Writer

// text logs are appended to the file instead of stderr
var logFileFlag = cmds.Var[string]("-log-file")

func (Module) Writer() Writer {
	if *logFileFlag == "" {
		return os.Stderr
	}
	f, err := os.OpenFile(*logFileFlag, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		// logging is not set up yet
		panic(err)
	}
	return f
}
