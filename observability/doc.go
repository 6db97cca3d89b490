// Package observability provides the OpenTelemetry instruments used by the
// dikit container and helpers to export them over OTLP/HTTP.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("my-service"))
//	defer tp.Shutdown(ctx)
//	c := di.New(di.WithTracer(observability.Tracer()))
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("my-service"))
//	defer mp.Shutdown(ctx)
//	c := di.New(di.WithMeter(observability.Meter()))
//
// Singleton realization runs inside a "di.construct" span; resolutions,
// realizations, construction durations and duplicate registrations are
// recorded as metrics.
package observability
