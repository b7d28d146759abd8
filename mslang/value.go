package mslang

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dlclark/regexp2"
)

// Value is the payload of a parse tree node.
type Value interface {
	// Dynamic reports whether the value is only known at execution time.
	Dynamic() bool
	// String returns the script level string form.
	String() string
}

type Call struct {
	Name string
}

func (c Call) Dynamic() bool  { return true }
func (c Call) String() string { return c.Name }

type String string

func (s String) Dynamic() bool  { return false }
func (s String) String() string { return string(s) }

type Int int64

func (i Int) Dynamic() bool  { return false }
func (i Int) String() string { return strconv.FormatInt(int64(i), 10) }

type Double float64

func (d Double) Dynamic() bool  { return false }
func (d Double) String() string { return strconv.FormatFloat(float64(d), 'f', -1, 64) }

type Bool bool

func (b Bool) Dynamic() bool  { return false }
func (b Bool) String() string { return strconv.FormatBool(bool(b)) }

type Null struct{}

func (Null) Dynamic() bool  { return false }
func (Null) String() string { return "null" }

// Variable is a $name reference, bound before execution. The bare $ is final.
type Variable struct {
	Name  string
	Final bool
}

func (v Variable) Dynamic() bool  { return true }
func (v Variable) String() string { return v.Name }

// IVariable is an @name reference resolved against the execution environment.
type IVariable struct {
	Name string
}

func (v IVariable) Dynamic() bool  { return true }
func (v IVariable) String() string { return v.Name }

// Label is the key of an associative entry or a named argument.
type Label struct {
	Key Value
}

func (l Label) Dynamic() bool  { return l.Key.Dynamic() }
func (l Label) String() string { return l.Key.String() }

// Slice is an index range. Missing bounds default to 0 and -1.
type Slice struct {
	Start int64
	End   int64
}

func (s Slice) Dynamic() bool  { return false }
func (s Slice) String() string { return fmt.Sprintf("%d..%d", s.Start, s.End) }

var FullSlice = Slice{Start: 0, End: -1}

// ParseSlice parses slice notation like "1..3", "..-1" or "2..".
func ParseSlice(text string, pos Pos) (Slice, error) {
	ret := FullSlice
	start, end, ok := strings.Cut(text, "..")
	if !ok {
		return ret, NewRuntimeError(pos, "invalid slice notation %q", text)
	}
	if start != "" {
		n, err := strconv.ParseInt(start, 10, 64)
		if err != nil {
			return ret, NewRuntimeError(pos, "invalid slice start %q", start)
		}
		ret.Start = n
	}
	if end != "" {
		n, err := strconv.ParseInt(end, 10, 64)
		if err != nil {
			return ret, NewRuntimeError(pos, "invalid slice end %q", end)
		}
		ret.End = n
	}
	return ret, nil
}

type Symbol struct {
	Kind TokenKind
	Text string
}

func (s Symbol) Dynamic() bool  { return false }
func (s Symbol) String() string { return s.Text }

// PreIdentifier is a bare keyword like else, waiting to be attached to the node after it.
type PreIdentifier struct {
	Name string
}

func (p PreIdentifier) Dynamic() bool  { return false }
func (p PreIdentifier) String() string { return p.Name }

var decimalPattern = regexp2.MustCompile(`^[+-]?(\d+\.\d*|\.\d+|\d+)([eE][+-]?\d+)?$`, regexp2.None)

// ResolveLiteral maps bare literal text to a keyword, a number or a string.
func ResolveLiteral(text string) Value {
	switch text {
	case "null":
		return Null{}
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	}
	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		return Int(i)
	}
	if matches(decimalPattern, text) {
		if d, err := strconv.ParseFloat(text, 64); err == nil {
			return Double(d)
		}
	}
	return String(text)
}

// IsConstant reports values that can be passed to compile time evaluation.
func IsConstant(v Value) bool {
	switch v.(type) {
	case Call, Variable, IVariable, Symbol, PreIdentifier:
		return false
	}
	return !v.Dynamic()
}
