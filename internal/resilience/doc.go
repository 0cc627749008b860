// Package resilience provides fault tolerance for calls to the record store.
//
// The package supports:
//   - A circuit breaker that decorates the game record repository
//   - Retry with exponential backoff and jitter, used while waiting for the store at startup
//
// Usage Example:
//
//	repo = circuitbreaker.NewRepository(repo, circuitbreaker.StoreConfig())
//
//	err := retry.WithBackoff(ctx, retry.StoreConfig(), func() error {
//	    return pinger.Ping(ctx)
//	})
package resilience
