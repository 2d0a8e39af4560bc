// Package testutil provides test harnesses shared by lego packages.
//
//	tel := testutil.NewTelemetry(t)
//	metrics, _ := observability.NewQueryMetrics(tel.Meter())
//	runner := query.NewRunner(query.WithTracer(tel.Tracer()), query.WithMetrics(metrics))
//	...
//	if tel.Sum(t, "query.runs") != 1 { ... }
//
// Providers and temporary files are released through t.Cleanup.
package testutil
