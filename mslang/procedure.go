package mslang

// Procedure is a user defined function known at compile time.
type Procedure struct {
	Name   string
	Params []Param
	Body   *Node
	Pos    Pos
}

type Param struct {
	Name string
	// Default is nil when the parameter has no default
	Default Value
}

// newProcedure reads a definition of the form proc(name, params..., body).
// Parameters are @x or assign(@x, constant). It reports false for definitions
// that can not be inlined.
func newProcedure(node *Node) (*Procedure, bool) {
	if len(node.Children) < 2 {
		return nil, false
	}

	nameNode := node.Children[0]
	if !IsConstant(nameNode.Value) || len(nameNode.Children) > 0 {
		return nil, false
	}
	proc := &Procedure{
		Name: nameNode.Value.String(),
		Body: node.Children[len(node.Children)-1],
		Pos:  node.Pos,
	}

	for _, child := range node.Children[1 : len(node.Children)-1] {
		switch v := child.Value.(type) {

		case IVariable:
			proc.Params = append(proc.Params, Param{
				Name: v.Name,
			})

		case Call:
			if v.Name != AssignFunction || len(child.Children) != 2 {
				return nil, false
			}
			ivar, ok := child.Children[0].Value.(IVariable)
			if !ok {
				return nil, false
			}
			def := child.Children[1]
			if !IsConstant(def.Value) || len(def.Children) > 0 {
				return nil, false
			}
			proc.Params = append(proc.Params, Param{
				Name:    ivar.Name,
				Default: def.Value,
			})

		default:
			return nil, false
		}
	}

	return proc, true
}

// bind maps parameter names to argument values. Missing arguments take the default, or null.
func (p *Procedure) bind(args []*Node) (map[string]Value, bool) {
	if len(args) > len(p.Params) {
		return nil, false
	}
	ret := make(map[string]Value, len(p.Params))
	for i, param := range p.Params {
		if i < len(args) {
			arg := args[i]
			if !IsConstant(arg.Value) || len(arg.Children) > 0 {
				return nil, false
			}
			ret[param.Name] = arg.Value
			continue
		}
		if param.Default != nil {
			ret[param.Name] = param.Default
		} else {
			ret[param.Name] = Null{}
		}
	}
	return ret, true
}

// substitute replaces bound indirect variables in a fresh copy of the body.
// Nested procedure definitions keep their own parameters.
func substitute(node *Node, bindings map[string]Value, registry Registry) {
	node.Walk(func(n *Node) bool {
		if ivar, ok := n.Value.(IVariable); ok {
			if v, ok := bindings[ivar.Name]; ok {
				n.Value = v
				n.Children = nil
			}
			return false
		}
		if name, ok := n.CallName(); ok {
			if fn, ok := registry.Resolve(name); ok && fn.DefinesProcedure {
				return false
			}
		}
		return true
	})
}

// inline evaluates a call to proc at compile time. It reports false when the
// result is not a constant.
func (o *Optimizer) inline(proc *Procedure, args []*Node, scopes *ScopeStack) (Value, bool, error) {
	if o.inlining[proc] {
		return nil, false, nil
	}
	bindings, ok := proc.bind(args)
	if !ok {
		return nil, false, nil
	}

	if o.inlining == nil {
		o.inlining = make(map[*Procedure]bool)
	}
	o.inlining[proc] = true
	defer delete(o.inlining, proc)

	body := proc.Body.Clone()
	substitute(body, bindings, o.Registry)
	if err := o.optimize(body, scopes); err != nil {
		return nil, false, err
	}

	if body.IsCall(ReturnFunction) && len(body.Children) == 1 {
		body = body.Children[0]
	}
	if !IsConstant(body.Value) || len(body.Children) > 0 {
		return nil, false, nil
	}
	return body.Value, true, nil
}
