package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"go.opentelemetry.io/otel/attribute"
)

func TestTelemetry(t *testing.T) {
	tel := NewTelemetry(t)

	_, span := tel.Tracer().Start(context.Background(), "op")
	span.SetAttributes(attribute.Int("n", 3), attribute.String("s", "x"))
	span.End()

	counter, err := tel.Meter().Int64Counter("hits")
	if err != nil {
		t.Fatal(err)
	}
	counter.Add(context.Background(), 2)
	counter.Add(context.Background(), 3)

	spans := tel.Spans.Ended()
	if len(spans) != 1 || spans[0].Name() != "op" {
		t.Fatalf("unexpected spans %v", spans)
	}
	attrs := SpanAttrs(spans[0])
	if attrs["n"] != "3" || attrs["s"] != "x" {
		t.Errorf("unexpected attributes %v", attrs)
	}
	if got := tel.Sum(t, "hits"); got != 5 {
		t.Errorf("hits = %d, want 5", got)
	}
	if got := tel.Sum(t, "misses"); got != 0 {
		t.Errorf("misses = %d, want 0", got)
	}
}

func TestWriteFile(t *testing.T) {
	path := WriteFile(t, "a/b.yaml", "x: 1\n")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "x: 1\n" || filepath.Base(path) != "b.yaml" {
		t.Errorf("unexpected file %s: %q", path, data)
	}
}
