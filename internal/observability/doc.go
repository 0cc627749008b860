// Package observability groups the logging, metrics and tracing infrastructure
// shared by the API server and the record store adapters.
//
// Subpackages:
//   - logging: Structured logging utilities with slog
//   - metrics: Prometheus metrics registry and recorders
//   - tracing: OpenTelemetry tracer provider, spans and HTTP middleware
package observability
