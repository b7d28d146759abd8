package msbuiltins

import (
	"slices"

	"github.com/reusee/mscript/mslang"
	"github.com/samber/lo"
)

// AutoconcatOption is the file option that selects the function joining juxtaposed
// expressions. The default is sconcat.
const AutoconcatOption = "autoconcat"

func autoconcatFunctions() []*mslang.Function {
	return []*mslang.Function{
		{
			Name:  mslang.AutoconcatFunction,
			Arity: mslang.AnyArity,
			Capabilities: mslang.Capabilities{
				Options: mslang.OptimizeDynamic,
			},
			OptimizeDynamic: optimizeAutoconcat,
		},
	}
}

// binary operators by precedence, tightest first
var binaryLevels = [][]mslang.TokenKind{
	{mslang.TokenExponential},
	{mslang.TokenMultiply, mslang.TokenDivide, mslang.TokenModulo},
	{mslang.TokenPlus, mslang.TokenMinus, mslang.TokenConcat},
	{mslang.TokenLT, mslang.TokenGT, mslang.TokenLTE, mslang.TokenGTE},
	{mslang.TokenEquals, mslang.TokenNotEquals, mslang.TokenStrictEquals, mslang.TokenStrictNotEquals},
	{mslang.TokenLogicalAnd},
	{mslang.TokenLogicalOr},
}

var binaryFunctions = map[mslang.TokenKind]string{
	mslang.TokenExponential:     "pow",
	mslang.TokenMultiply:        "multiply",
	mslang.TokenDivide:          "divide",
	mslang.TokenModulo:          "modulo",
	mslang.TokenPlus:            "add",
	mslang.TokenMinus:           "subtract",
	mslang.TokenConcat:          "concat",
	mslang.TokenLT:              "lt",
	mslang.TokenGT:              "gt",
	mslang.TokenLTE:             "lte",
	mslang.TokenGTE:             "gte",
	mslang.TokenEquals:          "equals",
	mslang.TokenNotEquals:       "nequals",
	mslang.TokenStrictEquals:    "sequals",
	mslang.TokenStrictNotEquals: "snequals",
	mslang.TokenLogicalAnd:      "and",
	mslang.TokenLogicalOr:       "or",
}

var compoundAssignments = map[mslang.TokenKind]string{
	mslang.TokenPlusAssign:     "add",
	mslang.TokenMinusAssign:    "subtract",
	mslang.TokenMultiplyAssign: "multiply",
	mslang.TokenDivideAssign:   "divide",
	mslang.TokenConcatAssign:   "concat",
}

var unaryFunctions = map[mslang.TokenKind]string{
	mslang.TokenMinus:      "neg",
	mslang.TokenLogicalNot: "not",
	mslang.TokenIncrement:  "inc",
	mslang.TokenDecrement:  "dec",
}

// optimizeAutoconcat turns a juxtaposed expression list into calls: identifiers take
// the expressions after them, labels become entries, then assignments, unary and
// binary operators are applied. What is left is joined by sconcat.
func optimizeAutoconcat(pos mslang.Pos, children []*mslang.Node, options mslang.FileOptions) (mslang.Rewrite, error) {
	c := &autoconcat{
		join: "sconcat",
	}
	if name := options.Get(AutoconcatOption); name != "" {
		c.join = name
	}

	nodes, err := c.reduce(pos, slices.Clone(children))
	if err != nil {
		return mslang.Rewrite{}, err
	}

	switch len(nodes) {
	case 0:
		return mslang.Rewrite{
			Kind: mslang.Remove,
		}, nil
	case 1:
		return mslang.Rewrite{
			Kind: mslang.Replace,
			Node: nodes[0],
		}, nil
	}
	return mslang.Rewrite{
		Kind: mslang.Replace,
		Node: mslang.NewCall(c.join, pos, nodes...),
	}, nil
}

type autoconcat struct {
	join string
}

func symbolOf(node *mslang.Node) (mslang.Symbol, bool) {
	sym, ok := node.Value.(mslang.Symbol)
	return sym, ok
}

func isSymbol(node *mslang.Node) bool {
	_, ok := symbolOf(node)
	return ok
}

// group joins several expressions into one.
func (c *autoconcat) group(pos mslang.Pos, nodes []*mslang.Node) *mslang.Node {
	if len(nodes) == 1 {
		return nodes[0]
	}
	return mslang.NewCall(c.join, pos, nodes...)
}

func (c *autoconcat) reduce(pos mslang.Pos, nodes []*mslang.Node) ([]*mslang.Node, error) {
	if len(nodes) == 0 {
		return nil, nil
	}

	// identifiers, like else
	if i := slices.IndexFunc(nodes, func(n *mslang.Node) bool {
		_, ok := n.Value.(mslang.PreIdentifier)
		return ok
	}); i >= 0 {
		ident := nodes[i]
		return c.split(pos, nodes, i, func(rest []*mslang.Node) (*mslang.Node, error) {
			if len(rest) == 0 {
				return nil, mslang.NewRuntimeError(ident.Pos, "unexpected identifier %s", ident.Value)
			}
			call := mslang.NewCall(ident.Value.String(), ident.Pos, c.group(rest[0].Pos, rest))
			call.WasIdentifier = true
			return call, nil
		})
	}

	nodes = slices.Clone(nodes)

	// labels, right to left so that nested labels nest
	for i := len(nodes) - 1; i >= 0; i-- {
		label := nodes[i]
		if _, ok := label.Value.(mslang.Label); !ok {
			continue
		}
		end := operandEnd(nodes, i+1)
		if end == i+1 {
			return nil, mslang.NewRuntimeError(label.Pos, "label %s has no value", label.Value)
		}
		value, err := c.expression(nodes[i+1 : end])
		if err != nil {
			return nil, err
		}
		nodes = slices.Replace(nodes, i, end, mslang.NewCall("centry", label.Pos, label, value))
	}

	// assignments, right to left so that chains nest
	for i := len(nodes) - 1; i >= 0; i-- {
		op := nodes[i]
		sym, ok := symbolOf(op)
		if !ok || !isAssignment(sym.Kind) {
			continue
		}
		if i == 0 || isSymbol(nodes[i-1]) {
			return nil, mslang.NewRuntimeError(op.Pos, "missing left side of assignment")
		}
		end := operandEnd(nodes, i+1)
		if end == i+1 {
			return nil, mslang.NewRuntimeError(op.Pos, "missing right side of assignment")
		}
		right, err := c.expression(nodes[i+1 : end])
		if err != nil {
			return nil, err
		}
		left := nodes[i-1]
		if name, ok := compoundAssignments[sym.Kind]; ok {
			right = mslang.NewCall(name, op.Pos, left.Clone(), right)
		}
		nodes = slices.Replace(nodes, i-1, end, mslang.NewCall(mslang.AssignFunction, op.Pos, left, right))
		i--
	}

	return c.operators(nodes)
}

func isAssignment(kind mslang.TokenKind) bool {
	_, compound := compoundAssignments[kind]
	return compound || kind == mslang.TokenAssign
}

// operandEnd returns the end of the expression starting at start: an operand with
// its unary operators, followed by any binary operator and operand pairs.
func operandEnd(nodes []*mslang.Node, start int) int {
	i := start
	for {
		for i < len(nodes) {
			sym, ok := symbolOf(nodes[i])
			if !ok || !sym.Kind.IsUnary() {
				break
			}
			i++
		}
		if i >= len(nodes) || isSymbol(nodes[i]) {
			return i
		}
		i++
		for i < len(nodes) {
			sym, ok := symbolOf(nodes[i])
			if !ok || (sym.Kind != mslang.TokenIncrement && sym.Kind != mslang.TokenDecrement) {
				break
			}
			i++
		}
		if i >= len(nodes) {
			return i
		}
		sym, ok := symbolOf(nodes[i])
		if !ok {
			return i
		}
		if _, binary := binaryFunctions[sym.Kind]; !binary {
			return i
		}
		i++
	}
}

// expression reduces the operators of one expression.
func (c *autoconcat) expression(nodes []*mslang.Node) (*mslang.Node, error) {
	reduced, err := c.operators(nodes)
	if err != nil {
		return nil, err
	}
	if len(reduced) == 0 {
		return nil, mslang.NewRuntimeError(nodes[0].Pos, "missing operand")
	}
	return c.group(reduced[0].Pos, reduced), nil
}

// split reduces the nodes before i and builds one node from the nodes after i.
func (c *autoconcat) split(
	pos mslang.Pos,
	nodes []*mslang.Node,
	i int,
	build func(rest []*mslang.Node) (*mslang.Node, error),
) ([]*mslang.Node, error) {
	prefix, err := c.reduce(pos, nodes[:i])
	if err != nil {
		return nil, err
	}
	rest, err := c.reduce(pos, nodes[i+1:])
	if err != nil {
		return nil, err
	}
	node, err := build(rest)
	if err != nil {
		return nil, err
	}
	return append(prefix, node), nil
}

func (c *autoconcat) operators(nodes []*mslang.Node) ([]*mslang.Node, error) {
	nodes = slices.Clone(nodes)

	// postfix increments
	for i := 1; i < len(nodes); i++ {
		sym, ok := symbolOf(nodes[i])
		if !ok || (sym.Kind != mslang.TokenIncrement && sym.Kind != mslang.TokenDecrement) {
			continue
		}
		if isSymbol(nodes[i-1]) {
			continue
		}
		name := "postinc"
		if sym.Kind == mslang.TokenDecrement {
			name = "postdec"
		}
		call := mslang.NewCall(name, nodes[i].Pos, nodes[i-1])
		nodes = slices.Replace(nodes, i-1, i+1, call)
		i--
	}

	// prefix operators, right to left so they nest
	for i := len(nodes) - 2; i >= 0; i-- {
		sym, ok := symbolOf(nodes[i])
		if !ok || !sym.Kind.IsUnary() || isSymbol(nodes[i+1]) {
			continue
		}
		if sym.Kind != mslang.TokenLogicalNot && i > 0 && !isSymbol(nodes[i-1]) {
			// binary
			continue
		}
		operand := nodes[i+1]
		if sym.Kind == mslang.TokenPlus {
			nodes = slices.Delete(nodes, i, i+1)
			continue
		}
		call := mslang.NewCall(unaryFunctions[sym.Kind], nodes[i].Pos, operand)
		nodes = slices.Replace(nodes, i, i+2, call)
	}

	for _, level := range binaryLevels {
		var err error
		if level[0] == mslang.TokenExponential {
			nodes, err = c.binaryRight(nodes, level)
		} else {
			nodes, err = c.binaryLeft(nodes, level)
		}
		if err != nil {
			return nil, err
		}
	}

	if n, ok := lo.Find(nodes, isSymbol); ok {
		return nil, mslang.NewRuntimeError(n.Pos, "unexpected symbol %s", n.Value)
	}
	return nodes, nil
}

func (c *autoconcat) binaryLeft(nodes []*mslang.Node, level []mslang.TokenKind) ([]*mslang.Node, error) {
	for i := 0; i < len(nodes); i++ {
		sym, ok := symbolOf(nodes[i])
		if !ok || !slices.Contains(level, sym.Kind) {
			continue
		}
		call, err := c.binary(nodes, i, sym)
		if err != nil {
			return nil, err
		}
		nodes = slices.Replace(nodes, i-1, i+2, call)
		i--
	}
	return nodes, nil
}

func (c *autoconcat) binaryRight(nodes []*mslang.Node, level []mslang.TokenKind) ([]*mslang.Node, error) {
	for i := len(nodes) - 1; i >= 0; i-- {
		sym, ok := symbolOf(nodes[i])
		if !ok || !slices.Contains(level, sym.Kind) {
			continue
		}
		call, err := c.binary(nodes, i, sym)
		if err != nil {
			return nil, err
		}
		nodes = slices.Replace(nodes, i-1, i+2, call)
		i--
	}
	return nodes, nil
}

func (c *autoconcat) binary(nodes []*mslang.Node, i int, sym mslang.Symbol) (*mslang.Node, error) {
	if i == 0 || i == len(nodes)-1 || isSymbol(nodes[i-1]) || isSymbol(nodes[i+1]) {
		return nil, mslang.NewRuntimeError(nodes[i].Pos, "unexpected symbol %s", sym.Text)
	}
	return mslang.NewCall(binaryFunctions[sym.Kind], nodes[i].Pos, nodes[i-1], nodes[i+1]), nil
}
