package msbuiltins

import (
	"strconv"
	"strings"

	"github.com/reusee/mscript/mslang"
)

func asInt(v mslang.Value) (int64, bool) {
	switch v := v.(type) {
	case mslang.Int:
		return int64(v), true
	case mslang.String:
		i, err := strconv.ParseInt(strings.TrimSpace(string(v)), 10, 64)
		if err == nil {
			return i, true
		}
	}
	return 0, false
}

func asFloat(v mslang.Value) (float64, bool) {
	switch v := v.(type) {
	case mslang.Double:
		return float64(v), true
	case mslang.Int:
		return float64(v), true
	case mslang.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(string(v)), 64)
		if err == nil {
			return f, true
		}
	}
	return 0, false
}

func asBool(v mslang.Value) bool {
	switch v := v.(type) {
	case mslang.Bool:
		return bool(v)
	case mslang.Null:
		return false
	case mslang.Int:
		return v != 0
	case mslang.Double:
		return v != 0
	case mslang.String:
		return v != "" && v != "false"
	}
	return true
}

func asString(v mslang.Value) string {
	if v == nil {
		return "null"
	}
	return v.String()
}

// number returns an Int when the float is integral and the operands were ints.
func number(f float64, ints bool) mslang.Value {
	if ints && f == float64(int64(f)) {
		return mslang.Int(int64(f))
	}
	return mslang.Double(f)
}
