package mslang

import (
	"errors"
	"strings"
	"testing"
)

func TestBuild(t *testing.T) {
	for _, c := range []struct {
		src  string
		want string
	}{
		{`msg(1, 2)`, `__autoconcat__(msg(1, 2))`},
		{`msg(1 2)`, `__autoconcat__(msg(__autoconcat__(1, 2)))`},
		{`msg()`, `__autoconcat__(msg())`},
		{`'a' "b"`, `__autoconcat__("a", smart_string("b"))`},
		{`1 + 2`, `__autoconcat__(1, +, 2)`},
		{`(1 + 2) * 3`, `__autoconcat__(__autoconcat__(__autoconcat__(1, +, 2)), *, 3)`},
		{`msg(1); msg(2)`, `__autoconcat__(msg(1), msg(2))`},
		{`@a[1]`, `__autoconcat__(array_get(@a, 1))`},
		{`@a[]`, `__autoconcat__(array_get(@a, 0..-1))`},
		{`@a[1..2]`, `__autoconcat__(array_get(@a, 1..2))`},
		{`@a[1..]`, `__autoconcat__(array_get(@a, 1..-1))`},
		{`@a[..2]`, `__autoconcat__(array_get(@a, 0..2))`},
		{`@a[-2..-1]`, `__autoconcat__(array_get(@a, -2..-1))`},
		{`@a[@i + 1]`, `__autoconcat__(array_get(@a, __autoconcat__(@i, +, 1)))`},
		{`@a[1][2]`, `__autoconcat__(array_get(array_get(@a, 1), 2))`},
		{`msg(@a[0], 1)`, `msg(array_get(@a, 0), 1)`},
		{`msg(a: 1)`, `msg(__autoconcat__("a":, 1))`},
		{`msg(@k: 1, 2: 3)`, `msg(__autoconcat__(@k:, 1), __autoconcat__(2:, 3))`},
		{`msg(1..2: 3)`, `msg(__autoconcat__(1..2:, 3))`},
		{`msg($x, $)`, `msg($x, $)`},
		{`for(1, 2, 3) { msg(1) }`, `__autoconcat__(for(1, 2, 3, msg(1)))`},
		{`if(@a) { msg(1) } else { msg(2) }`, `__autoconcat__(if(@a, msg(1), __autoconcat__(else, msg(2))))`},
		{
			`if(@a) { msg(1) } else if(@b) { msg(2) } else { msg(3) }`,
			`__autoconcat__(if(@a, msg(1), __autoconcat__(elseif, @b), msg(2), __autoconcat__(else, msg(3))))`,
		},
		{`proc(_f, @x) { return(@x) }`, `__autoconcat__(proc("_f", @x, return(@x)))`},
	} {
		tree := build(t, c.src)
		got := tree.Dump()
		if !strings.HasPrefix(c.want, AutoconcatFunction) {
			// single top level call
			if len(tree.Children) != 1 {
				t.Fatalf("%s: got %v", c.src, got)
			}
			got = tree.Children[0].Dump()
		}
		if got != c.want {
			t.Fatalf("%s: got %v", c.src, got)
		}
	}
}

func TestBuildPositions(t *testing.T) {
	tree := build(t, "msg(1,\n  @a)")
	call := tree.Children[0]
	if call.Pos.Line != 1 || call.Pos.Column != 1 {
		t.Fatalf("got %v", call.Pos)
	}
	ivar := call.Children[1]
	if ivar.Pos.Line != 2 || ivar.Pos.Column != 3 {
		t.Fatalf("got %v", ivar.Pos)
	}
}

func TestBuildErrors(t *testing.T) {
	for _, c := range []struct {
		src string
		msg string
	}{
		{`msg(1`, "mismatched parenthesis"},
		{`msg(1))`, "unexpected parenthesis"},
		{`msg(1) }`, "unexpected right curly brace"},
		{`for(1, 2, 3) { msg(1)`, "unclosed code block"},
		{`@a[1`, "mismatched square brackets"},
		{`@a 1]`, "mismatched square bracket"},
		{`msg([1])`, "brackets are illegal here"},
		{`msg(@a[1, 2])`, "unexpected comma inside brackets"},
		{`msg(@a[msg(1])`, "mismatched square bracket"},
		{`@a -> b`, "symbol is not currently allowed"},
		{`msg(1) { msg(2) }`, "improper use of braces with msg()"},
		{`nope(1) { msg(2) }`, "could not find function nope"},
		{`msg(: 1)`, "invalid label specified"},
		{`msg($x: 1)`, "invalid label specified"},
		{`msg(1..x)`, "invalid slice end"},
	} {
		tokens, err := Lex(testSource(c.src), true)
		if err != nil {
			t.Fatalf("%s: %v", c.src, err)
		}
		_, err = Build(tokens, testRegistry())
		if err == nil {
			t.Fatalf("%s: should fail", c.src)
		}
		if !errors.Is(err, ErrStructural) {
			t.Fatalf("%s: got %v", c.src, err)
		}
		if !strings.Contains(err.Error(), c.msg) {
			t.Fatalf("%s: got %v", c.src, err)
		}
	}
}
