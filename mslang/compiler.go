package mslang

import (
	"context"
	"errors"
	"log/slog"

	"github.com/reusee/mscript/logs"
	"github.com/reusee/mscript/modes"
)

// Compiler runs the front end pipeline: lex, split, build, optimize, link and check.
type Compiler struct {
	Registry Registry
	Options  FileOptions
	Logger   *slog.Logger
	NewSpan  logs.NewSpan
	// in development mode every optimized tree is optimized again from scratch
	// and compared to the first result
	Mode modes.Mode
}

// Compile compiles every unit of the source. Units are independent: a unit that
// fails to compile is reported in the joined error and the others keep their trees.
// Errors carry the span of the source when NewSpan is set.
func (c *Compiler) Compile(ctx context.Context, src *Source, pure bool) ([]*Unit, error) {
	if c.NewSpan != nil {
		ctx, _ = c.NewSpan(ctx, "", "source", src.Name)
	}
	c.debug(ctx, "compile", "source", src.Name, "pure", pure)

	tokens, err := Lex(src, pure)
	if err != nil {
		return nil, logs.WrapSpan(ctx, err)
	}

	var units []*Unit
	if pure {
		units = []*Unit{
			{Body: tokens},
		}
	} else {
		units, err = Split(tokens)
		if err != nil {
			return nil, logs.WrapSpan(ctx, err)
		}
	}

	var errs []error
	for _, unit := range units {
		if err := c.CompileUnit(ctx, unit); err != nil {
			errs = append(errs, err)
		}
	}
	return units, logs.WrapSpan(ctx, errors.Join(errs...))
}

// CompileUnit builds and optimizes the tree of one unit.
func (c *Compiler) CompileUnit(ctx context.Context, unit *Unit) error {
	tree, err := Build(unit.Body, c.Registry)
	if err != nil {
		return err
	}

	optimizer := NewOptimizer(c.Registry, c.Options, c.Logger)
	err = optimizer.Optimize(tree, NewScopeStack())
	unit.Diagnostics = optimizer.Diagnostics
	if err != nil {
		return err
	}

	if err := Link(tree, c.Registry); err != nil {
		return err
	}
	if err := CheckLabels(tree); err != nil {
		return err
	}
	if err := CheckBreaks(tree, c.Registry); err != nil {
		return err
	}

	unit.Tree = tree
	c.debug(ctx, "unit compiled", "tree", tree.Dump())
	if c.Mode == modes.ModeDevelopment {
		c.verify(ctx, tree)
	}
	return nil
}

func (c *Compiler) verify(ctx context.Context, tree *Node) {
	again := tree.Clone()
	if err := NewOptimizer(c.Registry, c.Options, nil).Optimize(again, NewScopeStack()); err != nil {
		c.warn(ctx, "optimized tree fails to optimize again", "error", err)
		return
	}
	if a, b := tree.Dump(), again.Dump(); a != b {
		c.warn(ctx, "optimization is not stable", "first", a, "second", b)
	}
}

func (c *Compiler) warn(ctx context.Context, msg string, args ...any) {
	if c.Logger == nil {
		return
	}
	c.Logger.WarnContext(ctx, msg, args...)
}

func (c *Compiler) debug(ctx context.Context, msg string, args ...any) {
	if c.Logger == nil {
		return
	}
	c.Logger.DebugContext(ctx, msg, args...)
}
