package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/reusee/dscope"
	"github.com/reusee/mscript/cmds"
	"github.com/reusee/mscript/debugs"
	"github.com/reusee/mscript/logs"
	"github.com/reusee/mscript/modes"
	"github.com/reusee/mscript/mslang"
)

var (
	dumpFlag = cmds.Switch("-dump")
	tapFlag  = cmds.Switch("-tap")
	files    = cmds.Rest[string]()

	// starlark file run against the results, like -tap without the REPL
	scriptFlag = cmds.Var[string]("-script")
)

func main() {
	ce(cmds.Execute(os.Args[1:]))
	if len(*files) == 0 {
		cmds.PrintUsage()
		os.Exit(2)
	}
	ctx := context.Background()

	failed := false
	dscope.New(
		new(Module),
		modes.ForProduction(),
	).Call(func(
		compileFiles CompileFiles,
		tap debugs.Tap,
		runScript debugs.RunScript,
	) {
		results, err := compileFiles(ctx, *files)
		ce(err)

		units := make(map[string][]*mslang.Unit)
		errs := make(map[string]string)
		for _, result := range results {
			units[result.Path] = result.Units
			if result.Err != nil {
				failed = true
				errs[result.Path] = result.Err.Error()
				if span, ok := logs.SpanOf(result.Err); ok {
					errs[result.Path] += " (span " + string(span) + ")"
				}
				fmt.Fprintf(os.Stderr, "%s: %v\n", result.Path, result.Err)
			}
			if *dumpFlag {
				for _, unit := range result.Units {
					dump(result.Path, unit)
				}
			}
		}

		globals := map[string]any{
			"units":  units,
			"errors": errs,
		}
		if *scriptFlag != "" {
			if err := runScript(ctx, *scriptFlag, nil, globals); err != nil {
				failed = true
				fmt.Fprintf(os.Stderr, "%s: %v\n", *scriptFlag, err)
			}
		}
		if *tapFlag {
			tap(ctx, "msc", globals)
		}
	})

	if failed {
		os.Exit(1)
	}
}

func dump(path string, unit *mslang.Unit) {
	if unit.Tree == nil {
		return
	}
	var sb strings.Builder
	sb.WriteString(path)
	sb.WriteString(": ")
	if len(unit.Header) > 0 {
		for _, t := range unit.Header {
			sb.WriteString(t.Text)
			sb.WriteString(" ")
		}
		sb.WriteString("= ")
	}
	sb.WriteString(unit.Tree.Dump())
	for _, d := range unit.Diagnostics {
		sb.WriteString("\n\twarning: ")
		sb.WriteString(d.String())
	}
	fmt.Println(sb.String())
}
