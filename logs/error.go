package logs

import (
	"context"
	"errors"
)

// SpanError ties an error to the span it was raised in, for matching it with log records.
type SpanError struct {
	Err  error
	Span Span
}

func (s SpanError) Error() string {
	return s.Err.Error()
}

func (s SpanError) Unwrap() error {
	return s.Err
}

// WrapSpan attaches the span of ctx to err. Errors already carrying a span are kept.
func WrapSpan(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	v := ctx.Value(SpanKey)
	if v == nil {
		return err
	}
	if _, ok := SpanOf(err); ok {
		return err
	}
	return SpanError{
		Err:  err,
		Span: v.(Span),
	}
}

func SpanOf(err error) (Span, bool) {
	var spanErr SpanError
	if !errors.As(err, &spanErr) {
		return "", false
	}
	return spanErr.Span, true
}
