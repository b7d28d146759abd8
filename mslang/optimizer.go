package mslang

import (
	"log/slog"
	"strings"
)

// Diagnostic is a non fatal compiler message.
type Diagnostic struct {
	Pos     Pos
	Message string
}

func (d Diagnostic) String() string {
	return d.Message + " at " + d.Pos.String()
}

// Optimizer folds constants, truncates unreachable code and inlines procedures.
// An Optimizer is used for one unit and is not safe for concurrent use.
type Optimizer struct {
	Registry Registry
	Options  FileOptions
	Logger   *slog.Logger

	Diagnostics []Diagnostic

	inlining map[*Procedure]bool
}

func NewOptimizer(registry Registry, options FileOptions, logger *slog.Logger) *Optimizer {
	return &Optimizer{
		Registry: registry,
		Options:  options,
		Logger:   logger,
	}
}

// Optimize rewrites the tree in place. Nodes already marked optimized are skipped.
func (o *Optimizer) Optimize(node *Node, scopes *ScopeStack) error {
	if scopes == nil {
		scopes = NewScopeStack()
	}
	return o.optimize(node, scopes)
}

func (o *Optimizer) warn(pos Pos, msg string) {
	o.Diagnostics = append(o.Diagnostics, Diagnostic{
		Pos:     pos,
		Message: msg,
	})
	if o.Logger != nil {
		o.Logger.Warn(msg,
			"pos", pos.String(),
		)
	}
}

func (o *Optimizer) optimize(node *Node, scopes *ScopeStack) error {
	if node.Optimized {
		return nil
	}
	name, ok := node.CallName()
	if !ok {
		return nil
	}

	fn, known := o.Registry.Resolve(name)
	if known && fn.NoLinking {
		return nil
	}

	defines := known && fn.DefinesProcedure
	if defines {
		scopes.Push()
		defer func() {
			if defines {
				scopes.Pop()
			}
		}()
	}

	if !known || !fn.SpecialExec {
		o.truncate(node)
	}

	fullyStatic := true
	hasIVars := false
	for _, child := range node.Children {
		if _, ok := child.Value.(Call); ok {
			if err := o.optimize(child, scopes); err != nil {
				return err
			}
		}
		switch child.Value.(type) {
		case IVariable:
			hasIVars = true
		default:
			if !IsConstant(child.Value) {
				fullyStatic = false
			}
		}
	}
	node.Optimized = true

	if !known {
		// a procedure call, or a name left for runtime resolution
		proc, ok := scopes.Lookup(name)
		if !ok {
			return nil
		}
		v, ok, err := o.inline(proc, node.Children, scopes)
		if err != nil {
			return foldingError(err, node.Pos)
		}
		if ok {
			node.Value = v
			node.Children = nil
		}
		return nil
	}

	if defines {
		scopes.Pop()
		defines = false
		if proc, ok := newProcedure(node); ok {
			scopes.Define(proc)
		}
	}

	if fn.Options.Has(OptimizeDynamic) && fn.OptimizeDynamic != nil {
		rewrite, err := fn.OptimizeDynamic(node.Pos, node.Children, o.Options)
		if err != nil {
			return foldingError(err, node.Pos)
		}

		switch rewrite.Kind {

		case PullUp:
			if len(node.Children) == 0 {
				node.Value = Call{Name: NoopFunction}
				break
			}
			node.replace(node.Children[0])
			if err := o.optimize(node, scopes); err != nil {
				return err
			}
			node.Optimized = true

		case Remove:
			node.Value = Call{Name: NoopFunction}
			node.Children = nil

		case Replace:
			if rewrite.Node == nil {
				break
			}
			node.replace(rewrite.Node)
			if err := o.optimize(node, scopes); err != nil {
				return err
			}
			node.Optimized = true
			if rewrite.MadeStatic {
				fullyStatic = true
				hasIVars = false
			}

		}
	}

	if !fullyStatic {
		return nil
	}
	if fn.PreResolveVariables && hasIVars {
		return nil
	}

	// a rewrite may have changed the call, which then was optimized on its own
	if current, ok := node.CallName(); !ok || current != name {
		return nil
	}
	// reported by the linker
	if !fn.Arity.Accepts(len(node.Children)) {
		return nil
	}

	var fold func(Pos, []Value) (Value, error)
	switch {
	case fn.Options.Has(ConstantOffline) && fn.Exec != nil:
		fold = fn.Exec
	case fn.Options.Has(OptimizeConstant) && fn.Optimize != nil:
		fold = fn.Optimize
	default:
		return nil
	}

	args := make([]Value, 0, len(node.Children))
	for _, child := range node.Children {
		args = append(args, child.Value)
	}
	result, err := fold(node.Pos, args)
	if err != nil {
		return foldingError(err, node.Pos)
	}
	if result == nil {
		// validation only
		return nil
	}
	node.Value = result
	node.Children = nil

	return nil
}

// truncate drops the siblings following a terminal call.
func (o *Optimizer) truncate(node *Node) {
	for i, child := range node.Children {
		name, ok := child.CallName()
		if !ok || strings.HasPrefix(name, "_") {
			continue
		}
		fn, ok := o.Registry.Resolve(name)
		if !ok || !fn.Options.Has(Terminal) {
			continue
		}
		if i+1 < len(node.Children) {
			o.warn(node.Children[i+1].Pos, "unreachable code, consider removing this code")
			node.Children = node.Children[:i+1]
		}
		return
	}
}
