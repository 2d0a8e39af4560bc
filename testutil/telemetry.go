package testutil

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

// Telemetry records spans and metrics in memory.
type Telemetry struct {
	Spans  *tracetest.SpanRecorder
	Reader *sdkmetric.ManualReader

	tp *sdktrace.TracerProvider
	mp *sdkmetric.MeterProvider
}

// NewTelemetry creates in-memory tracer and meter providers. They are not
// installed globally.
func NewTelemetry(t testing.TB) *Telemetry {
	t.Helper()

	tel := &Telemetry{
		Spans:  tracetest.NewSpanRecorder(),
		Reader: sdkmetric.NewManualReader(),
	}
	tel.tp = sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(tel.Spans))
	tel.mp = sdkmetric.NewMeterProvider(sdkmetric.WithReader(tel.Reader))

	t.Cleanup(func() {
		ctx := context.Background()
		_ = tel.tp.Shutdown(ctx)
		_ = tel.mp.Shutdown(ctx)
	})
	return tel
}

// Tracer returns a tracer whose spans land in Spans.
func (tel *Telemetry) Tracer() trace.Tracer {
	return tel.tp.Tracer("test")
}

// Meter returns a meter read by Reader.
func (tel *Telemetry) Meter() metric.Meter {
	return tel.mp.Meter("test")
}

// Collect reads every metric recorded so far.
func (tel *Telemetry) Collect(t testing.TB) metricdata.ResourceMetrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := tel.Reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("collect metrics: %v", err)
	}
	return rm
}

// Sum returns the total of an int64 counter across all attribute sets.
func (tel *Telemetry) Sum(t testing.TB, name string) int64 {
	t.Helper()
	return SumOf(tel.Collect(t), name)
}

// SumOf totals an int64 counter in collected metrics.
func SumOf(rm metricdata.ResourceMetrics, name string) int64 {
	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			if sum, ok := m.Data.(metricdata.Sum[int64]); ok {
				for _, dp := range sum.DataPoints {
					total += dp.Value
				}
			}
		}
	}
	return total
}

// SpanAttrs renders a span's attributes as strings keyed by name.
func SpanAttrs(span sdktrace.ReadOnlySpan) map[string]string {
	attrs := make(map[string]string, len(span.Attributes()))
	for _, kv := range span.Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	return attrs
}
