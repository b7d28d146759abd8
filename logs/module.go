package logs

import "github.com/reusee/dscope"

type Module struct {
	dscope.Module
}

// Span identifies one unit of work in log records, usually the compilation of a file.
type Span string

type spanKey struct{}

var SpanKey spanKey
