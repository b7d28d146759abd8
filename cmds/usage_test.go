package cmds

import (
	"bytes"
	"strings"
	"testing"
)

func TestUsage(t *testing.T) {
	executor := NewExecutor()
	executor.Define("foo", Sub(map[string]*Command{
		"bar": Func(func() {
		}).Desc("BAR"),
		"baz": Sub(map[string]*Command{
			"qux": Func(func() {}).Desc("QUX"),
		}).Desc("BAZ"),
	}).Desc("FOO"))
	executor.Define("-j", Func(func(int) {}).Desc("jobs"))
	executor.Define("-out", Func(func(string, *bool) {}))

	buf := new(bytes.Buffer)
	executor.WriteUsage(buf)
	out := buf.String()
	for _, want := range []string{
		"--help, -h, -help, help\tprint this usage",
		"foo\tFOO",
		"  bar\tBAR",
		"  baz\tBAZ",
		"    qux\tQUX",
		"-j int\tjobs",
		"-out string [bool]\n",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("got %v", out)
		}
	}
}
