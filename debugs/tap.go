package debugs

import (
	"context"
	"maps"
	"slices"

	"github.com/reusee/mscript/logs"
	"go.starlark.net/repl"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

var fileOptions = &syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
}

func predeclared(globals map[string]any) starlark.StringDict {
	ret := make(starlark.StringDict, len(globals))
	for name, value := range globals {
		ret[name] = toStarlarkValue(value)
	}
	return ret
}

// Tap opens a starlark REPL on stdin with globals converted to starlark values.
// Compiled units are exposed as dicts with header, tree and diagnostics keys.
type Tap func(ctx context.Context, what string, globals map[string]any)

func (Module) Tap(
	logger logs.Logger,
) Tap {
	return func(ctx context.Context, what string, globals map[string]any) {
		logger.InfoContext(ctx, "tap",
			"what", what,
			"globals", slices.Sorted(maps.Keys(globals)),
		)
		defer logger.InfoContext(ctx, "tap end", "what", what)

		thread := &starlark.Thread{
			Name: what,
		}
		repl.REPLOptions(fileOptions, thread, predeclared(globals))
	}
}

// RunScript executes a starlark file against the same globals Tap exposes.
// src is passed to starlark, nil reads filename.
type RunScript func(ctx context.Context, filename string, src any, globals map[string]any) error

func (Module) RunScript(
	logger logs.Logger,
) RunScript {
	return func(ctx context.Context, filename string, src any, globals map[string]any) error {
		thread := &starlark.Thread{
			Name: filename,
			Print: func(_ *starlark.Thread, msg string) {
				logger.InfoContext(ctx, msg, "script", filename)
			},
		}
		if _, err := starlark.ExecFileOptions(fileOptions, thread, filename, src, predeclared(globals)); err != nil {
			return logs.WrapSpan(ctx, wrap(err))
		}
		return nil
	}
}
