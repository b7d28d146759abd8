package mslang

import (
	"strconv"
	"strings"

	"github.com/samber/lo"
)

const (
	AutoconcatFunction  = "__autoconcat__"
	ArrayGetFunction    = "array_get"
	SmartStringFunction = "smart_string"
	AssignFunction      = "assign"
	BreakFunction       = "break"
	ReturnFunction      = "return"
	NoopFunction        = "p"
)

// Registry resolves function names to builtin functions. It is read only during compilation.
type Registry interface {
	Resolve(name string) (*Function, bool)
}

type Function struct {
	Name  string
	Arity Arity
	Capabilities

	// Optimize folds constant arguments. Used with OptimizeConstant.
	Optimize func(pos Pos, args []Value) (Value, error)
	// Exec runs the function offline. Used with ConstantOffline.
	Exec func(pos Pos, args []Value) (Value, error)
	// OptimizeDynamic rewrites the call structurally. Used with OptimizeDynamic.
	OptimizeDynamic func(pos Pos, children []*Node, options FileOptions) (Rewrite, error)
}

type OptimizationOption uint8

const (
	// OptimizeConstant functions fold through Optimize when all arguments are constant.
	OptimizeConstant OptimizationOption = 1 << iota
	// ConstantOffline functions are safe to Exec at compile time.
	ConstantOffline
	// OptimizeDynamic functions rewrite their call site through OptimizeDynamic.
	OptimizeDynamic
	// Terminal functions make every following sibling unreachable.
	Terminal
)

func (o OptimizationOption) Has(option OptimizationOption) bool {
	return o&option != 0
}

type Capabilities struct {
	Options OptimizationOption

	// NoLinking stops linking and optimization at this call.
	NoLinking bool
	// Breakable constructs can be left with break.
	Breakable bool
	// Unbreakable constructs reset the break depth for their subtree.
	Unbreakable bool
	// SpecialExec marks branching functions that evaluate their children selectively.
	SpecialExec bool
	// PreResolveVariables functions can not run with unresolved indirect variables.
	PreResolveVariables bool
	// AllowBraces permits the f(...){ ... } call syntax.
	AllowBraces bool
	// DefinesProcedure marks the procedure definition function.
	DefinesProcedure bool
}

// Arity is the set of accepted argument counts.
type Arity struct {
	Counts    []int
	Unbounded bool
}

func Exactly(counts ...int) Arity {
	return Arity{
		Counts: counts,
	}
}

// Between accepts min to max arguments, inclusive.
func Between(min, max int) Arity {
	return Arity{
		Counts: lo.RangeFrom(min, max-min+1),
	}
}

var AnyArity = Arity{
	Unbounded: true,
}

func (a Arity) Accepts(n int) bool {
	if a.Unbounded {
		return true
	}
	return lo.Contains(a.Counts, n)
}

func (a Arity) String() string {
	if a.Unbounded {
		return "any number of"
	}
	return strings.Join(lo.Map(a.Counts, func(n int, _ int) string {
		return strconv.Itoa(n)
	}), " or ")
}

type RewriteKind uint8

const (
	// NoChange means the rewrite only validated the call.
	NoChange RewriteKind = iota
	// PullUp replaces the call with its first child.
	PullUp
	// Remove replaces the call with a no-op.
	Remove
	// Replace replaces the call with Rewrite.Node.
	Replace
)

type Rewrite struct {
	Kind RewriteKind
	Node *Node
	// MadeStatic reports that the rewritten call has only constant arguments.
	MadeStatic bool
}

// FileOptions holds per file compiler directives.
type FileOptions map[string]string

func (f FileOptions) Get(key string) string {
	return f[key]
}

// MapRegistry is a Registry backed by a map.
type MapRegistry map[string]*Function

var _ Registry = MapRegistry{}

func (m MapRegistry) Resolve(name string) (*Function, bool) {
	fn, ok := m[name]
	return fn, ok
}

func (m MapRegistry) Define(fns ...*Function) {
	for _, fn := range fns {
		m[fn.Name] = fn
	}
}
