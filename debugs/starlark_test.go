package debugs

import (
	"testing"

	"github.com/reusee/mscript/mslang"
	"go.starlark.net/starlark"
)

func TestToStarlarkValue(t *testing.T) {
	type myString string

	testCases := []struct {
		name     string
		input    any
		expected starlark.Value
	}{
		{"nil", nil, starlark.None},
		{"bool", true, starlark.True},
		{"bytes", []byte("abc"), starlark.Bytes("abc")},
		{"string", "hello", starlark.String("hello")},
		{"named string", myString("hello"), starlark.String("hello")},
		{"int", 42, starlark.MakeInt(42)},
		{"int8", int8(42), starlark.MakeInt(42)},
		{"uint16", uint16(42), starlark.MakeInt(42)},
		{"float64", 3.14, starlark.Float(3.14)},
		{"[]int", []int{1, 2}, starlark.NewList([]starlark.Value{starlark.MakeInt(1), starlark.MakeInt(2)})},
		{"map[int]bool", map[int]bool{1: true}, func() starlark.Value {
			d := starlark.NewDict(1)
			d.SetKey(starlark.MakeInt(1), starlark.True)
			return d
		}()},
		{"nil pointer", (*int)(nil), starlark.None},
		{"pointer", new(int), starlark.MakeInt(0)},

		{"null", mslang.Null{}, starlark.None},
		{"ms bool", mslang.Bool(false), starlark.False},
		{"ms int", mslang.Int(-3), starlark.MakeInt(-3)},
		{"ms double", mslang.Double(0.5), starlark.Float(0.5)},
		{"ms string", mslang.String("foo"), starlark.String("foo")},
		{"call", mslang.Call{Name: "add"}, starlark.String("add")},
		{"slice", mslang.Slice{Start: 1, End: -1}, starlark.String("1..-1")},
		{"ivariable", mslang.IVariable{Name: "@x"}, starlark.String("@x")},
		{"nil node", (*mslang.Node)(nil), starlark.None},
		{"diagnostic", mslang.Diagnostic{Message: "foo"}, starlark.String("foo at <unknown>:0:0")},
		{"token", mslang.Token{Kind: mslang.TokenComma, Text: ","}, starlark.Tuple{
			starlark.String(","),
			starlark.String(","),
			starlark.String("<unknown>:0:0"),
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual := toStarlarkValue(tc.input)
			equal, err := starlark.Equal(actual, tc.expected)
			if err != nil {
				t.Fatalf("comparison failed: %v", err)
			}
			if !equal {
				t.Fatalf("got %v, want %v", actual, tc.expected)
			}
		})
	}

	t.Run("panic on unsupported type", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Fatal("should panic")
			}
		}()
		toStarlarkValue(make(chan bool))
	})
}

func TestNodeValue(t *testing.T) {
	src := mslang.NewSource("test.ms", "add(1, @x)")
	node := mslang.NewCall("add", mslang.Pos{Source: src, Line: 1, Column: 1},
		mslang.NewNode(mslang.Int(1), mslang.Pos{Source: src, Line: 1, Column: 5}),
		mslang.NewNode(mslang.IVariable{Name: "@x"}, mslang.Pos{Source: src, Line: 1, Column: 8}),
	)
	d, ok := toStarlarkValue(node).(*starlark.Dict)
	if !ok {
		t.Fatal()
	}

	get := func(d *starlark.Dict, key string) starlark.Value {
		v, found, err := d.Get(starlark.String(key))
		if err != nil || !found {
			t.Fatalf("no %s", key)
		}
		return v
	}

	if v := get(d, "kind"); v != starlark.String("Call") {
		t.Fatalf("got %v", v)
	}
	if v := get(d, "pos"); v != starlark.String("test.ms:1:1") {
		t.Fatalf("got %v", v)
	}
	if v := get(d, "dump"); v != starlark.String("add(1, @x)") {
		t.Fatalf("got %v", v)
	}
	children := get(d, "children").(*starlark.List)
	if children.Len() != 2 {
		t.Fatalf("got %v", children.Len())
	}
	second := children.Index(1).(*starlark.Dict)
	if v := get(second, "kind"); v != starlark.String("IVariable") {
		t.Fatalf("got %v", v)
	}
	if v := get(second, "value"); v != starlark.String("@x") {
		t.Fatalf("got %v", v)
	}

	unit := &mslang.Unit{Tree: node}
	ud := toStarlarkValue(unit).(*starlark.Dict)
	if ok, err := starlark.Equal(get(ud, "tokens"), starlark.MakeInt(0)); err != nil || !ok {
		t.Fatalf("got %v", get(ud, "tokens"))
	}
	if _, ok := get(ud, "tree").(*starlark.Dict); !ok {
		t.Fatal()
	}
}
