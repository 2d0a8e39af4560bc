// Package observability provides OpenTelemetry tracing and metrics for
// query runs.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("lego"))
//	defer tp.Shutdown(ctx)
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("lego"))
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewQueryMetrics(observability.Meter("lego"))
//	metrics.RecordRun(ctx, observability.StatusOK, 12, 3, duration)
//
// When no OTLP endpoint is configured the providers are created without an
// exporter, so spans and metrics stay in-process.
package observability
