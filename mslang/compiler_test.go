package mslang_test

import (
	"context"
	"errors"
	"testing"

	"github.com/reusee/mscript/msbuiltins"
	"github.com/reusee/mscript/mslang"
)

func compile(t *testing.T, src string, pure bool, options mslang.FileOptions) ([]*mslang.Unit, error) {
	t.Helper()
	compiler := &mslang.Compiler{
		Registry: msbuiltins.New(),
		Options:  options,
	}
	return compiler.Compile(context.Background(), mslang.NewSource("test.ms", src), pure)
}

func TestCompilePure(t *testing.T) {
	for _, c := range []struct {
		src     string
		options mslang.FileOptions
		want    string
	}{
		{`msg(1 + 2 * 3)`, nil, `msg(7)`},
		{`msg(10 - 4 - 3)`, nil, `msg(3)`},
		{`msg(1 < 2)`, nil, `msg(true)`},
		{`msg("hello")`, nil, `msg("hello")`},
		{`msg("hi @name")`, nil, `msg(smart_string("hi @name"))`},
		{`msg(to_upper('x'))`, nil, `msg("X")`},
		{`@a = 1 + 2`, nil, `assign(@a, 3)`},
		{`@a += 2`, nil, `assign(@a, add(@a, 2))`},
		{`if(true) { msg(1) } else { msg(2) }`, nil, `msg(1)`},
		{`if(false) { msg(1) } else { msg(2) }`, nil, `msg(2)`},
		{`if(@a) { msg(1) }`, nil, `if(@a, msg(1))`},
		{`'a' 'b'`, nil, `"a b"`},
		{`'a' 'b'`, mslang.FileOptions{msbuiltins.AutoconcatOption: "concat"}, `"ab"`},
		{`msg(@a) msg(@b)`, nil, `sconcat(msg(@a), msg(@b))`},
	} {
		units, err := compile(t, c.src, true, c.options)
		if err != nil {
			t.Fatalf("%s: %v", c.src, err)
		}
		if len(units) != 1 {
			t.Fatalf("%s: got %v", c.src, len(units))
		}
		if got := units[0].Tree.Dump(); got != c.want {
			t.Fatalf("%s: got %v", c.src, got)
		}
	}
}

func TestCompileErrors(t *testing.T) {
	for _, c := range []struct {
		src  string
		kind error
	}{
		{`msg(1`, mslang.ErrStructural},
		{`nope(1)`, mslang.ErrUnresolvedFunction},
		{`msg(1 / 0)`, mslang.ErrFolding},
		{`for(1, 2, 3) { break(2) }`, mslang.ErrBreakDepth},
		{`msg(to_upper())`, mslang.ErrArityMismatch},
	} {
		_, err := compile(t, c.src, true, nil)
		if !errors.Is(err, c.kind) {
			t.Fatalf("%s: got %v", c.src, err)
		}
	}
}

func TestCompileUnits(t *testing.T) {
	units, err := compile(t, "/foo = nope()\n/bar = msg(1)\n", false, nil)
	if !errors.Is(err, mslang.ErrUnresolvedFunction) {
		t.Fatalf("got %v", err)
	}
	if len(units) != 2 {
		t.Fatalf("got %v", len(units))
	}
	if units[0].Tree != nil {
		t.Fatal()
	}
	if got := units[1].Tree.Dump(); got != "msg(1)" {
		t.Fatalf("got %v", got)
	}
	if len(units[1].Header) != 1 || units[1].Header[0].Text != "/bar" {
		t.Fatalf("got %v", units[1].Header)
	}
}

func TestCompileDiagnostics(t *testing.T) {
	units, err := compile(t, `msg(1) die() msg(2)`, true, nil)
	if err != nil {
		t.Fatal(err)
	}
	unit := units[0]
	if len(unit.Diagnostics) != 1 {
		t.Fatalf("got %v", unit.Diagnostics)
	}
	if got := unit.Tree.Dump(); got != "sconcat(msg(1), die())" {
		t.Fatalf("got %v", got)
	}
}
