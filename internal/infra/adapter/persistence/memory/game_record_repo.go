// Package memory provides an in-process implementation of the game record repository.
// It is used for local development and as the reference store in tests.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"game-history/internal/domain/entity"
	"game-history/internal/repository"
)

// GameRecordRepo keeps records in memory, indexed by player.
type GameRecordRepo struct {
	mu       sync.RWMutex
	byID     map[string]*entity.GameRecord
	byPlayer map[string][]*entity.GameRecord
}

// NewGameRecordRepo creates an empty in-memory repository.
func NewGameRecordRepo() *GameRecordRepo {
	return &GameRecordRepo{
		byID:     make(map[string]*entity.GameRecord),
		byPlayer: make(map[string][]*entity.GameRecord),
	}
}

var _ repository.GameRecordRepository = (*GameRecordRepo)(nil)

// Create stores a copy of the record.
func (repo *GameRecordRepo) Create(ctx context.Context, record *entity.GameRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, ok := repo.byID[record.ID]; ok {
		return fmt.Errorf("Create: %w", entity.ErrDuplicateRecord)
	}

	stored := clone(record)
	stored.CreatedAt = stored.CreatedAt.UTC()
	repo.byID[stored.ID] = stored

	seen := make(map[string]struct{}, len(stored.Players))
	for _, id := range stored.PlayerIDs() {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		repo.byPlayer[id] = append(repo.byPlayer[id], stored)
	}
	return nil
}

// Search filters the player's records by the query bounds, sorts and truncates them.
func (repo *GameRecordRepo) Search(ctx context.Context, q repository.GameRecordQuery) ([]*entity.GameRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if q.Limit <= 0 {
		return nil, fmt.Errorf("Search: limit must be positive, got %d", q.Limit)
	}

	repo.mu.RLock()
	candidates := slices.Clone(repo.byPlayer[q.PlayerID])
	repo.mu.RUnlock()

	matched := make([]*entity.GameRecord, 0, len(candidates))
	for _, r := range candidates {
		if q.Before != nil && !repository.Less(r, *q.Before) {
			continue
		}
		if q.After != nil && !repository.Greater(r, *q.After) {
			continue
		}
		matched = append(matched, r)
	}

	slices.SortFunc(matched, func(a, b *entity.GameRecord) int {
		c := compare(a, b)
		if q.Order == repository.SortDescending {
			return -c
		}
		return c
	})

	if len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}

	out := make([]*entity.GameRecord, len(matched))
	for i, r := range matched {
		out[i] = clone(r)
	}
	return out, nil
}

// Ping always succeeds.
func (repo *GameRecordRepo) Ping(context.Context) error {
	return nil
}

// Len returns the number of stored records.
func (repo *GameRecordRepo) Len() int {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	return len(repo.byID)
}

func compare(a, b *entity.GameRecord) int {
	if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
		return c
	}
	switch {
	case a.ID < b.ID:
		return -1
	case a.ID > b.ID:
		return 1
	}
	return 0
}

// clone copies the record and its player list. GameData is shared; it is
// treated as read-only once stored.
func clone(r *entity.GameRecord) *entity.GameRecord {
	c := *r
	c.Players = slices.Clone(r.Players)
	return &c
}
