package logs

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/reusee/dscope"
)

func TestNewSpan(t *testing.T) {
	level.Set(slog.LevelDebug)
	defer level.Set(slog.LevelInfo)

	buf := new(bytes.Buffer)
	dscope.New(new(Module)).Fork(
		func() Writer {
			return buf
		},
	).Call(func(
		newSpan NewSpan,
	) {
		ctx := context.Background()

		ctx1, span1 := newSpan(ctx, "", "source", "foo.ms")
		ctx11, span11 := newSpan(ctx1, "")
		_, span12 := newSpan(ctx11, span1)

		var lines []string
		for line := range strings.Lines(buf.String()) {
			if strings.Contains(line, "msg=span") {
				lines = append(lines, line)
			}
		}
		if len(lines) != 3 {
			t.Fatalf("got %v", lines)
		}
		for _, c := range []struct {
			line int
			want string
		}{
			{0, "logs.span=" + string(span1)},
			{0, "source=foo.ms"},
			{1, "logs.span=" + string(span11)},
			{1, "parent=" + string(span1)},
			{2, "logs.span=" + string(span12)},
			{2, "parent=" + string(span1)},
			{2, "creator=" + string(span11)},
		} {
			if !strings.Contains(lines[c.line], c.want) {
				t.Fatalf("got %v", lines[c.line])
			}
		}
	})
}

func TestWrapSpan(t *testing.T) {
	err := WrapSpan(context.Background(), context.Canceled)
	if err != context.Canceled {
		t.Fatalf("got %v", err)
	}

	ctx := context.WithValue(context.Background(), SpanKey, Span("foo"))
	err = WrapSpan(ctx, context.Canceled)
	if !errors.Is(err, context.Canceled) || err.Error() != context.Canceled.Error() {
		t.Fatalf("got %v", err)
	}
	if span, ok := SpanOf(err); !ok || span != "foo" {
		t.Fatalf("got %v", span)
	}

	// the innermost span is kept
	ctx = context.WithValue(ctx, SpanKey, Span("bar"))
	if span, _ := SpanOf(WrapSpan(ctx, err)); span != "foo" {
		t.Fatalf("got %v", span)
	}

	if WrapSpan(ctx, nil) != nil {
		t.Fatal()
	}
}
