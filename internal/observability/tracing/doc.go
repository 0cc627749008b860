// Package tracing provides OpenTelemetry tracing integration.
//
// Init installs the global tracer provider. When an OTLP endpoint is
// configured spans are exported over gRPC; otherwise they are still created
// so trace ids propagate and appear in logs and the X-Trace-Id header.
//
// Example usage:
//
//	shutdown, err := tracing.Init(ctx, tracing.Config{ServiceName: "game-history"})
//	defer shutdown(ctx)
//
//	ctx, span := tracing.GetTracer().Start(ctx, "GetPage")
//	defer span.End()
package tracing
