package observability

import (
	"context"
	"testing"
	"time"

	"go.opentelemetry.io/otel/metric/noop"

	"github.com/kbukum/lego/testutil"
)

func TestDefaultTracerConfig(t *testing.T) {
	cfg := DefaultTracerConfig("test-service")

	if cfg.ServiceName != "test-service" {
		t.Errorf("expected ServiceName 'test-service', got %s", cfg.ServiceName)
	}
	if cfg.Endpoint != "" {
		t.Errorf("expected no endpoint by default, got %s", cfg.Endpoint)
	}
	if cfg.SampleRate != 1.0 {
		t.Errorf("expected SampleRate 1.0, got %f", cfg.SampleRate)
	}
}

func TestDefaultMeterConfig(t *testing.T) {
	cfg := DefaultMeterConfig("test-service")
	if cfg.Interval != 15*time.Second {
		t.Errorf("expected Interval 15s, got %v", cfg.Interval)
	}
}

func TestInitTracer_NoEndpoint(t *testing.T) {
	ctx := context.Background()
	tp, err := InitTracer(ctx, DefaultTracerConfig("lego-test"))
	if err != nil {
		t.Fatalf("InitTracer failed: %v", err)
	}
	defer tp.Shutdown(ctx)

	_, span := StartSpan(ctx, SpanQueryRun)
	if !span.SpanContext().IsValid() {
		t.Error("expected a recording span from the installed provider")
	}
	span.End()
}

func TestInitMeter_NoEndpoint(t *testing.T) {
	ctx := context.Background()
	cfg := DefaultMeterConfig("lego-test")
	mp, err := InitMeter(ctx, cfg)
	if err != nil {
		t.Fatalf("InitMeter failed: %v", err)
	}
	defer mp.Shutdown(ctx)

	if _, err := NewQueryMetrics(Meter("")); err != nil {
		t.Fatalf("NewQueryMetrics failed: %v", err)
	}
}

func TestSampler(t *testing.T) {
	tests := []struct {
		rate float64
		want string
	}{
		{1.0, "AlwaysOnSampler"},
		{2.0, "AlwaysOnSampler"},
		{0, "AlwaysOffSampler"},
		{-1, "AlwaysOffSampler"},
	}
	for _, tc := range tests {
		if got := sampler(tc.rate).Description(); got != tc.want {
			t.Errorf("sampler(%v) = %s, want %s", tc.rate, got, tc.want)
		}
	}
}

func TestNewQueryMetrics_Noop(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	metrics, err := NewQueryMetrics(meter)
	if err != nil {
		t.Fatalf("unexpected error creating metrics: %v", err)
	}

	ctx := context.Background()
	metrics.RecordRun(ctx, StatusOK, 10, 2, 5*time.Millisecond)
	metrics.RecordStep(ctx, "limit")
	metrics.RecordError(ctx, "INVALID_TRANSFORMATION")
}

func TestQueryMetrics_Recorded(t *testing.T) {
	tel := testutil.NewTelemetry(t)
	ctx := context.Background()

	metrics, err := NewQueryMetrics(tel.Meter())
	if err != nil {
		t.Fatalf("NewQueryMetrics failed: %v", err)
	}
	metrics.RecordRun(ctx, StatusOK, 10, 2, time.Millisecond)
	metrics.RecordRun(ctx, StatusOK, 4, 4, time.Millisecond)
	metrics.RecordError(ctx, "INVALID_INPUT")

	if runs := tel.Sum(t, "query.runs"); runs != 2 {
		t.Errorf("expected query.runs=2, got %d", runs)
	}
	if errs := tel.Sum(t, "query.errors"); errs != 1 {
		t.Errorf("expected query.errors=1, got %d", errs)
	}
}

func TestConfig_DefaultsAndValidate(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.SampleRate != 1.0 || cfg.Interval != 15*time.Second {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	cfg.SampleRate = 1.5
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for sample rate above 1")
	}

	tc := Config{Endpoint: "collector:4318", SampleRate: 0.5}.Tracer("lego", "1.0.0", "staging")
	if tc.Endpoint != "collector:4318" || tc.SampleRate != 0.5 || tc.Environment != "staging" {
		t.Errorf("unexpected tracer config %+v", tc)
	}
	mc := Config{Interval: time.Second}.Meter("lego", "1.0.0", "staging")
	if mc.Interval != time.Second || mc.ServiceName != "lego" {
		t.Errorf("unexpected meter config %+v", mc)
	}
}
