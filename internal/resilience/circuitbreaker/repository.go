package circuitbreaker

import (
	"context"

	"game-history/internal/domain/entity"
	"game-history/internal/repository"
)

// Repository decorates a GameRecordRepository with circuit breaker protection.
// When the circuit is open, calls fail immediately without reaching the store.
type Repository struct {
	cb   *CircuitBreaker
	next repository.GameRecordRepository
}

var _ repository.GameRecordRepository = (*Repository)(nil)

// NewRepository wraps next with a breaker built from cfg.
func NewRepository(next repository.GameRecordRepository, cfg Config) *Repository {
	return &Repository{cb: New(cfg), next: next}
}

// Create stores the record through the breaker.
func (r *Repository) Create(ctx context.Context, record *entity.GameRecord) error {
	_, err := r.cb.Execute(func() (interface{}, error) {
		return nil, r.next.Create(ctx, record)
	})
	return err
}

// Search queries the store through the breaker.
func (r *Repository) Search(ctx context.Context, q repository.GameRecordQuery) ([]*entity.GameRecord, error) {
	result, err := r.cb.Execute(func() (interface{}, error) {
		return r.next.Search(ctx, q)
	})
	if err != nil {
		return nil, err
	}
	return result.([]*entity.GameRecord), nil
}

// Ping forwards to the wrapped repository without counting toward the breaker,
// so readiness probes keep reporting the real store state.
func (r *Repository) Ping(ctx context.Context) error {
	if p, ok := r.next.(repository.Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

// Breaker exposes the underlying circuit breaker for health reporting.
func (r *Repository) Breaker() *CircuitBreaker {
	return r.cb
}
