package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/lego/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the service.
	ServiceName string
	// ServiceVersion is the version of the service.
	ServiceVersion string
	// Environment is the deployment environment.
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port. Empty disables export.
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns defaults that keep metrics in-process.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "dev",
		Environment:    "development",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the OpenTelemetry meter provider and installs it
// globally. Returns a MeterProvider that should be shut down on exit.
func InitMeter(ctx context.Context, config MeterConfig) (*sdkmetric.MeterProvider, error) {
	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	opts := []sdkmetric.Option{sdkmetric.WithResource(res)}

	if config.Endpoint != "" {
		exporterOpts := []otlpmetrichttp.Option{
			otlpmetrichttp.WithEndpoint(config.Endpoint),
		}
		if config.Insecure {
			exporterOpts = append(exporterOpts, otlpmetrichttp.WithInsecure())
		}
		exporter, err := otlpmetrichttp.New(ctx, exporterOpts...)
		if err != nil {
			return nil, fmt.Errorf("creating metric exporter: %w", err)
		}

		readerOpts := []sdkmetric.PeriodicReaderOption{}
		if config.Interval > 0 {
			readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
		}
		opts = append(opts, sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)))
	}

	mp := sdkmetric.NewMeterProvider(opts...)

	otel.SetMeterProvider(mp)

	logger.Debug("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	if name == "" {
		name = defaultTracerName
	}
	return otel.Meter(name)
}

// QueryMetrics holds the instruments recorded for every query run.
type QueryMetrics struct {
	runTotal   metric.Int64Counter
	runErrors  metric.Int64Counter
	duration   metric.Float64Histogram
	recordsIn  metric.Int64Histogram
	recordsOut metric.Int64Histogram
	stepsTotal metric.Int64Counter
}

// NewQueryMetrics creates query instruments on the given meter.
func NewQueryMetrics(meter metric.Meter) (*QueryMetrics, error) {
	runTotal, err := meter.Int64Counter("query.runs",
		metric.WithDescription("Total number of query runs"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating query.runs counter: %w", err)
	}

	runErrors, err := meter.Int64Counter("query.errors",
		metric.WithDescription("Query runs rejected or failed, by error code"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating query.errors counter: %w", err)
	}

	duration, err := meter.Float64Histogram("query.duration",
		metric.WithDescription("Duration of query runs in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating query.duration histogram: %w", err)
	}

	recordsIn, err := meter.Int64Histogram("query.records.in",
		metric.WithDescription("Records handed to a query run"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating query.records.in histogram: %w", err)
	}

	recordsOut, err := meter.Int64Histogram("query.records.out",
		metric.WithDescription("Records returned by a query run"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating query.records.out histogram: %w", err)
	}

	stepsTotal, err := meter.Int64Counter("query.steps",
		metric.WithDescription("Transformations applied, by kind"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating query.steps counter: %w", err)
	}

	return &QueryMetrics{
		runTotal:   runTotal,
		runErrors:  runErrors,
		duration:   duration,
		recordsIn:  recordsIn,
		recordsOut: recordsOut,
		stepsTotal: stepsTotal,
	}, nil
}

// RecordRun records a finished query run.
func (m *QueryMetrics) RecordRun(ctx context.Context, status string, in, out int, duration time.Duration) {
	attrs := metric.WithAttributes(attribute.String(AttrStatus, status))
	m.runTotal.Add(ctx, 1, attrs)
	m.duration.Record(ctx, duration.Seconds(), attrs)
	m.recordsIn.Record(ctx, int64(in))
	if status == StatusOK {
		m.recordsOut.Record(ctx, int64(out))
	}
}

// RecordStep counts one applied transformation of the given kind.
func (m *QueryMetrics) RecordStep(ctx context.Context, kind string) {
	m.stepsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}

// RecordError counts a failed run by error code.
func (m *QueryMetrics) RecordError(ctx context.Context, code string) {
	m.runErrors.Add(ctx, 1, metric.WithAttributes(attribute.String(AttrErrorCode, code)))
}
