package main

import (
	"context"
	"os"

	"github.com/reusee/mscript/logs"
	"github.com/reusee/mscript/msconfigs"
	"github.com/reusee/mscript/mslang"
	"golang.org/x/sync/errgroup"
)

type Result struct {
	Path  string
	Units []*mslang.Unit
	// Err holds the compile errors of the file. Other units may still have trees.
	Err error
}

// CompileFiles compiles files concurrently. Compile errors are reported per file in
// the results, a file that can not be read fails the whole batch.
type CompileFiles func(ctx context.Context, paths []string) ([]Result, error)

func (Module) CompileFiles(
	compiler *mslang.Compiler,
	pure msconfigs.PureMode,
	parallel msconfigs.Parallel,
	logger logs.Logger,
	newSpan logs.NewSpan,
) CompileFiles {
	return func(ctx context.Context, paths []string) ([]Result, error) {
		ctx, _ = newSpan(ctx, "", "files", len(paths), "parallel", int(parallel))
		results := make([]Result, len(paths))
		group, ctx := errgroup.WithContext(ctx)
		group.SetLimit(max(int(parallel), 1))
		for i, path := range paths {
			group.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				content, err := os.ReadFile(path)
				if err != nil {
					return wrap(err)
				}
				units, err := compiler.Compile(ctx, mslang.NewSource(path, string(content)), bool(pure))
				results[i] = Result{
					Path:  path,
					Units: units,
					Err:   err,
				}
				if err != nil {
					logger.DebugContext(ctx, "compile failed", "path", path, "error", err)
				}
				return nil
			})
		}
		if err := group.Wait(); err != nil {
			return nil, err
		}
		return results, nil
	}
}
