package debugs

import (
	"fmt"
	"reflect"

	"github.com/reusee/mscript/mslang"
	"github.com/reusee/starlarkutil"
	"go.starlark.net/starlark"
)

// toStarlarkValue converts compiler results and plain Go values for the REPL.
// Nodes and units become dicts, other language values become their starlark
// counterparts or their source text.
func toStarlarkValue(v any) starlark.Value {
	switch v := v.(type) {

	case nil:
		return starlark.None
	case starlark.Value:
		return v

	case mslang.Null:
		return starlark.None
	case mslang.Bool:
		return starlark.Bool(v)
	case mslang.Int:
		return starlark.MakeInt64(int64(v))
	case mslang.Double:
		return starlark.Float(v)
	case mslang.String:
		return starlark.String(v)
	case mslang.Value:
		return starlark.String(v.String())

	case *mslang.Node:
		if v == nil {
			return starlark.None
		}
		return nodeValue(v)
	case *mslang.Unit:
		if v == nil {
			return starlark.None
		}
		return unitValue(v)
	case mslang.Pos:
		return starlark.String(v.String())
	case mslang.Diagnostic:
		return starlark.String(v.String())
	case mslang.Token:
		return starlark.Tuple{
			starlark.String(v.Kind.String()),
			starlark.String(v.Text),
			starlark.String(v.Pos.String()),
		}
	case error:
		return starlark.String(v.Error())

	case []byte:
		return starlark.Bytes(v)
	}

	value := reflect.ValueOf(v)
	switch value.Kind() {

	case reflect.Bool:
		return starlark.Bool(value.Bool())
	case reflect.String:
		return starlark.String(value.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return starlark.MakeInt64(value.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return starlark.MakeUint64(value.Uint())
	case reflect.Float32, reflect.Float64:
		return starlark.Float(value.Float())

	case reflect.Slice, reflect.Array:
		elems := make([]starlark.Value, value.Len())
		for i := range elems {
			elems[i] = toStarlarkValue(value.Index(i).Interface())
		}
		return starlark.NewList(elems)

	case reflect.Map:
		d := starlark.NewDict(value.Len())
		iter := value.MapRange()
		for iter.Next() {
			d.SetKey(
				toStarlarkValue(iter.Key().Interface()),
				toStarlarkValue(iter.Value().Interface()),
			)
		}
		return d

	case reflect.Pointer, reflect.Interface:
		elem := value.Elem()
		if !elem.IsValid() {
			return starlark.None
		}
		return toStarlarkValue(elem.Interface())

	case reflect.Func:
		return starlarkutil.MakeFunc("", v)

	}

	panic(fmt.Errorf("unsupported type for starlark: %T", v))
}

func nodeValue(node *mslang.Node) *starlark.Dict {
	d := starlark.NewDict(5)
	kind := reflect.TypeOf(node.Value)
	if kind != nil {
		d.SetKey(starlark.String("kind"), starlark.String(kind.Name()))
	}
	d.SetKey(starlark.String("value"), toStarlarkValue(node.Value))
	d.SetKey(starlark.String("pos"), starlark.String(node.Pos.String()))
	children := make([]starlark.Value, 0, len(node.Children))
	for _, child := range node.Children {
		children = append(children, nodeValue(child))
	}
	d.SetKey(starlark.String("children"), starlark.NewList(children))
	d.SetKey(starlark.String("dump"), starlark.String(node.Dump()))
	return d
}

func unitValue(unit *mslang.Unit) *starlark.Dict {
	d := starlark.NewDict(4)
	d.SetKey(starlark.String("header"), toStarlarkValue(unit.Header))
	d.SetKey(starlark.String("tree"), toStarlarkValue(unit.Tree))
	d.SetKey(starlark.String("diagnostics"), toStarlarkValue(unit.Diagnostics))
	d.SetKey(starlark.String("tokens"), starlark.MakeInt(len(unit.Body)))
	return d
}
