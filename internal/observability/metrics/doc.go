// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes the service metrics:
//   - HTTP request metrics (duration, count, size)
//   - Record store metrics (query duration and outcome per backend)
//   - Game recording outcomes
//
// All metrics are registered with the Prometheus default registry
// and exposed via the /metrics endpoint.
//
// Example usage:
//
//	start := time.Now()
//	records, err := repo.Search(ctx, q)
//	metrics.RecordStoreQuery("postgres", "search", time.Since(start), err)
package metrics
