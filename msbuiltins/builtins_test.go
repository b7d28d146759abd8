package msbuiltins

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/reusee/mscript/mslang"
)

func compile(registry mslang.Registry, src string) (*mslang.Node, error) {
	compiler := &mslang.Compiler{
		Registry: registry,
	}
	units, err := compiler.Compile(context.Background(), mslang.NewSource("test.ms", src), true)
	if err != nil {
		return nil, err
	}
	return units[0].Tree, nil
}

func TestOperators(t *testing.T) {
	for _, c := range []struct {
		src  string
		want string
	}{
		{`@a + @b * @c`, `add(@a, multiply(@b, @c))`},
		{`@a * (@b + @c)`, `multiply(@a, add(@b, @c))`},
		{`@a - @b - @c`, `subtract(subtract(@a, @b), @c)`},
		{`@a ** @b ** @c`, `pow(@a, pow(@b, @c))`},
		{`!@a && @b || @c`, `or(and(not(@a), @b), @c)`},
		{`-@a`, `neg(@a)`},
		{`@a++`, `postinc(@a)`},
		{`@x = @y = 1`, `assign(@x, assign(@y, 1))`},
		{`@x -= 1`, `assign(@x, subtract(@x, 1))`},
		{`@a . 'b'`, `concat(@a, "b")`},
		{`@a < @b == @c`, `equals(lt(@a, @b), @c)`},
		{"@x = 1\nmsg(@x)", `sconcat(assign(@x, 1), msg(@x))`},
		{`@x = 1 + 2 msg(@x)`, `sconcat(assign(@x, 3), msg(@x))`},
		{`@x += 1 msg(@x)`, `sconcat(assign(@x, add(@x, 1)), msg(@x))`},
		{`@x = -@y * 2 msg(@x)`, `sconcat(assign(@x, multiply(neg(@y), 2)), msg(@x))`},
		{`@x = @y++ @z = 2`, `sconcat(assign(@x, postinc(@y)), assign(@z, 2))`},
		{`if(@c) { @x = 1 msg(@x) }`, `if(@c, sconcat(assign(@x, 1), msg(@x)))`},
	} {
		tree, err := compile(New(), c.src)
		if err != nil {
			t.Fatalf("%s: %v", c.src, err)
		}
		if got := tree.Dump(); got != c.want {
			t.Fatalf("%s: got %v", c.src, got)
		}
	}
}

func TestAutoconcatRewrites(t *testing.T) {
	pos := mslang.Pos{Line: 1, Column: 1}
	node := func(v mslang.Value) *mslang.Node {
		return mslang.NewNode(v, pos)
	}
	sym := func(kind mslang.TokenKind, text string) *mslang.Node {
		return node(mslang.Symbol{Kind: kind, Text: text})
	}

	rewrite, err := optimizeAutoconcat(pos, []*mslang.Node{
		node(mslang.Label{Key: mslang.String("a")}),
		node(mslang.Int(1)),
		node(mslang.Int(2)),
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if rewrite.Kind != mslang.Replace || rewrite.Node.Dump() != `sconcat(centry("a":, 1), 2)` {
		t.Fatalf("got %v", rewrite.Node.Dump())
	}

	rewrite, err = optimizeAutoconcat(pos, []*mslang.Node{
		node(mslang.Label{Key: mslang.String("a")}),
		node(mslang.Int(1)),
		sym(mslang.TokenPlus, "+"),
		node(mslang.Int(2)),
		node(mslang.Label{Key: mslang.String("b")}),
		node(mslang.Int(3)),
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if rewrite.Node.Dump() != `sconcat(centry("a":, add(1, 2)), centry("b":, 3))` {
		t.Fatalf("got %v", rewrite.Node.Dump())
	}

	rewrite, err = optimizeAutoconcat(pos, []*mslang.Node{
		node(mslang.PreIdentifier{Name: "else"}),
		node(mslang.Int(1)),
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if rewrite.Node.Dump() != `else(1)` || !rewrite.Node.WasIdentifier {
		t.Fatalf("got %v", rewrite.Node.Dump())
	}

	rewrite, err = optimizeAutoconcat(pos, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if rewrite.Kind != mslang.Remove {
		t.Fatalf("got %v", rewrite.Kind)
	}

	for _, c := range []struct {
		nodes []*mslang.Node
		msg   string
	}{
		{
			[]*mslang.Node{sym(mslang.TokenAssign, "="), node(mslang.Int(1))},
			"missing left side of assignment",
		},
		{
			[]*mslang.Node{node(mslang.IVariable{Name: "@a"}), sym(mslang.TokenAssign, "=")},
			"missing right side of assignment",
		},
		{
			[]*mslang.Node{node(mslang.Int(1)), sym(mslang.TokenMultiply, "*")},
			"unexpected symbol *",
		},
		{
			[]*mslang.Node{node(mslang.Int(1)), node(mslang.PreIdentifier{Name: "else"})},
			"unexpected identifier else",
		},
		{
			[]*mslang.Node{node(mslang.Label{Key: mslang.String("a")})},
			"label a has no value",
		},
	} {
		_, err := optimizeAutoconcat(pos, c.nodes, nil)
		if err == nil || !strings.Contains(err.Error(), c.msg) {
			t.Fatalf("got %v", err)
		}
	}
}

func TestIf(t *testing.T) {
	for _, c := range []struct {
		src  string
		want string
	}{
		{`if(true) { msg(1) }`, `msg(1)`},
		{`if(false) { msg(1) }`, `p()`},
		{`if(1 > 2) { msg(1) } else { msg(2) }`, `msg(2)`},
		{
			`if(@a) { msg(1) } else if(true) { msg(2) } else { msg(3) }`,
			`if(@a, msg(1), msg(2))`,
		},
		{
			`if(@a) { msg(1) } else if(false) { msg(2) } else { msg(3) }`,
			`if(@a, msg(1), msg(3))`,
		},
		{
			`if(@a) { msg(1) } else if(@b) { msg(2) }`,
			`ifelse(@a, msg(1), @b, msg(2))`,
		},
		{
			`if(@a) { msg(1) } else if(@b) { msg(2) } else { msg(3) }`,
			`ifelse(@a, msg(1), @b, msg(2), msg(3))`,
		},
	} {
		tree, err := compile(New(), c.src)
		if err != nil {
			t.Fatalf("%s: %v", c.src, err)
		}
		if got := tree.Dump(); got != c.want {
			t.Fatalf("%s: got %v", c.src, got)
		}
	}
}

func TestFolding(t *testing.T) {
	for _, c := range []struct {
		src  string
		want string
	}{
		{`msg(6 / 2)`, `msg(3)`},
		{`msg(7 / 2)`, `msg(3.5)`},
		{`msg(7 % 3)`, `msg(1)`},
		{`msg(2 ** 10)`, `msg(1024)`},
		{`msg(1 == '1')`, `msg(true)`},
		{`msg(1 === '1')`, `msg(false)`},
		{`msg(2 >= 3)`, `msg(false)`},
		{`msg('a' < 'b')`, `msg(true)`},
		{`msg('a' . 'b')`, `msg("ab")`},
		{`msg(to_lower('AB'))`, `msg("ab")`},
		{`msg(1 2 3)`, `msg("1 2 3")`},
		{`msg(1 + @a)`, `msg(add(1, @a))`},
	} {
		tree, err := compile(New(), c.src)
		if err != nil {
			t.Fatalf("%s: %v", c.src, err)
		}
		if got := tree.Dump(); got != c.want {
			t.Fatalf("%s: got %v", c.src, got)
		}
	}
}

func TestFoldingErrors(t *testing.T) {
	for _, c := range []struct {
		src string
		msg string
	}{
		{`msg(1 / 0)`, "division by zero"},
		{`msg(1 % 0)`, "modulo by zero"},
		{`msg(1 + 'a')`, `add expects numbers, but got "a"`},
		{`msg(1 < 'a')`, "can not compare 1 and a"},
	} {
		_, err := compile(New(), c.src)
		if !errors.Is(err, mslang.ErrFolding) {
			t.Fatalf("%s: got %v", c.src, err)
		}
		if !strings.Contains(err.Error(), c.msg) {
			t.Fatalf("%s: got %v", c.src, err)
		}
	}
}

func TestArrayGet(t *testing.T) {
	fn, ok := New().Resolve(mslang.ArrayGetFunction)
	if !ok {
		t.Fatal()
	}
	pos := mslang.Pos{Line: 1, Column: 1}
	for _, c := range []struct {
		args []mslang.Value
		want mslang.Value
	}{
		{[]mslang.Value{mslang.String("hello"), mslang.Int(1)}, mslang.String("e")},
		{[]mslang.Value{mslang.String("hello"), mslang.Int(-1)}, mslang.String("o")},
		{[]mslang.Value{mslang.String("hello"), mslang.Slice{Start: 1, End: -1}}, mslang.String("ello")},
		{[]mslang.Value{mslang.String("hello"), mslang.Slice{Start: 1, End: 2}}, mslang.String("el")},
		{[]mslang.Value{mslang.String("hello"), mslang.Slice{Start: 3, End: 1}}, mslang.String("")},
		{[]mslang.Value{mslang.String("你好"), mslang.Int(1)}, mslang.String("好")},
		{[]mslang.Value{mslang.Int(1), mslang.Int(1)}, nil},
	} {
		got, err := fn.Optimize(pos, c.args)
		if err != nil {
			t.Fatal(err)
		}
		if got != c.want {
			t.Fatalf("got %v", got)
		}
	}

	for _, idx := range []mslang.Value{
		mslang.Int(5),
		mslang.Int(-6),
		mslang.String("x"),
		mslang.Slice{Start: 0, End: 5},
	} {
		if _, err := fn.Optimize(pos, []mslang.Value{mslang.String("hello"), idx}); err == nil {
			t.Fatalf("should fail: %v", idx)
		}
	}
}

func TestSmartString(t *testing.T) {
	fn, ok := New().Resolve(mslang.SmartStringFunction)
	if !ok {
		t.Fatal()
	}
	for _, c := range []struct {
		arg  string
		want mslang.Value
	}{
		{"plain", mslang.String("plain")},
		{`mail\@example`, mslang.String("mail@example")},
		{"hi @name", nil},
	} {
		got, err := fn.Optimize(mslang.Pos{}, []mslang.Value{mslang.String(c.arg)})
		if err != nil {
			t.Fatal(err)
		}
		if got != c.want {
			t.Fatalf("%s: got %v", c.arg, got)
		}
	}
}
