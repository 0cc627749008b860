package repository

import (
	"context"
	"time"

	"game-history/internal/domain/entity"
)

// SortOrder is the order a query returns records in.
// Records are ordered by creation time, then by ID for records sharing a timestamp.
type SortOrder int

const (
	// SortDescending returns the newest records first.
	SortDescending SortOrder = iota
	// SortAscending returns the oldest records first.
	SortAscending
)

// String returns the order name used in logs and store queries.
func (o SortOrder) String() string {
	if o == SortAscending {
		return "asc"
	}
	return "desc"
}

// Bound is an exclusive position in the (created_at, id) ordering.
type Bound struct {
	CreatedAt time.Time
	ID        string
}

// GameRecordQuery selects the records a player took part in.
//
// Before and After are strict bounds: a record equal to the bound is never returned.
// A record is before the bound if it was created earlier, or at the same instant
// with a smaller ID.
type GameRecordQuery struct {
	PlayerID string
	Before   *Bound // Optional: only records strictly before this position
	After    *Bound // Optional: only records strictly after this position
	Order    SortOrder
	Limit    int // Maximum number of rows, must be positive
}

// GameRecordRepository stores immutable game records.
type GameRecordRepository interface {
	// Create stores a new record.
	// Returns entity.ErrDuplicateRecord if a record with the same ID exists.
	Create(ctx context.Context, record *entity.GameRecord) error
	// Search returns the records matching the query in the requested order.
	// No matching records is not an error.
	Search(ctx context.Context, q GameRecordQuery) ([]*entity.GameRecord, error)
}

// Pinger is implemented by repositories that can report backend reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Less reports whether record r sorts before bound b in ascending order.
// Adapters that filter in memory use it to apply Before/After bounds.
func Less(r *entity.GameRecord, b Bound) bool {
	if r.CreatedAt.Equal(b.CreatedAt) {
		return r.ID < b.ID
	}
	return r.CreatedAt.Before(b.CreatedAt)
}

// Greater reports whether record r sorts after bound b in ascending order.
func Greater(r *entity.GameRecord, b Bound) bool {
	if r.CreatedAt.Equal(b.CreatedAt) {
		return r.ID > b.ID
	}
	return r.CreatedAt.After(b.CreatedAt)
}
