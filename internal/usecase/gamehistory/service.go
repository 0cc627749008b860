package gamehistory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"game-history/internal/common/pagination"
	"game-history/internal/domain/entity"
	"game-history/internal/observability/logging"
	"game-history/internal/observability/metrics"
	"game-history/internal/observability/tracing"
	"game-history/internal/repository"
	"game-history/internal/resilience/circuitbreaker"
)

// Page is one page of a player's history, newest record first.
type Page = pagination.CursorPage[*entity.GameRecord]

// RecordInput represents the input parameters for recording a finished game.
type RecordInput struct {
	ID          string
	Players     []entity.GamePlayer
	WinningTeam string
	GameData    entity.GameData
	CreatedAt   time.Time
}

// Service provides the game history use cases.
// It validates input, queries the repository with one extra look-ahead row,
// and turns the result into a page with resumption cursors.
type Service struct {
	Repo       repository.GameRecordRepository
	Pagination pagination.Config
	// QueryTimeout bounds a single store call. Zero means no bound beyond the caller's context.
	QueryTimeout time.Duration
	// Backend labels store metrics.
	Backend string
}

// RecordGame validates and stores a finished game.
// Returns an entity.ValidationError for invalid input and wraps
// entity.ErrDuplicateRecord if the id is already taken.
func (s *Service) RecordGame(ctx context.Context, in RecordInput) (*entity.GameRecord, error) {
	ctx, span := tracing.GetTracer().Start(ctx, "gamehistory.RecordGame")
	var err error
	defer func() { tracing.EndSpan(span, err) }()

	record := &entity.GameRecord{
		ID:          in.ID,
		Players:     in.Players,
		CreatedAt:   in.CreatedAt.UTC(),
		WinningTeam: in.WinningTeam,
		GameData:    in.GameData,
	}
	if err = record.Validate(); err != nil {
		metrics.RecordGameRecorded("invalid")
		return nil, err
	}
	span.SetAttributes(attribute.String("game.id", record.ID), attribute.Int("game.players", len(record.Players)))

	err = s.withStore(ctx, "create", func(ctx context.Context) error {
		return s.Repo.Create(ctx, record)
	})
	switch {
	case errors.Is(err, entity.ErrDuplicateRecord):
		metrics.RecordGameRecorded("duplicate")
		return nil, fmt.Errorf("record game %s: %w", record.ID, err)
	case err != nil:
		metrics.RecordGameRecorded("failure")
		return nil, fmt.Errorf("record game %s: %w", record.ID, err)
	}

	metrics.RecordGameRecorded("created")
	logging.FromContext(ctx).Debug("game recorded",
		"game_id", record.ID,
		"players", len(record.Players))
	return record, nil
}

// GetFirstPage returns the newest count records of a player.
// The page carries a next cursor when older records exist and never a previous cursor.
func (s *Service) GetFirstPage(ctx context.Context, playerID string, count int) (Page, error) {
	ctx, span := tracing.GetTracer().Start(ctx, "gamehistory.GetFirstPage")
	var err error
	defer func() { tracing.EndSpan(span, err) }()

	if playerID == "" {
		err = &entity.ValidationError{Field: "playerId", Message: "is required"}
		return Page{}, err
	}
	if err = pagination.ValidateCount(count, s.Pagination); err != nil {
		return Page{}, err
	}
	span.SetAttributes(attribute.String("player.id", playerID), attribute.Int("page.count", count))

	req := pagination.FirstPage(playerID, count)
	var page Page
	page, err = s.fetch(ctx, req, repository.GameRecordQuery{
		PlayerID: playerID,
		Order:    repository.SortDescending,
		Limit:    count + 1,
	})
	return page, err
}

// GetPage resumes pagination from a cursor token.
// Returns an error wrapping pagination.ErrMalformedCursor if the token cannot be
// decoded and pagination.ErrInvalidCount if its page size is out of range.
func (s *Service) GetPage(ctx context.Context, token string) (Page, error) {
	ctx, span := tracing.GetTracer().Start(ctx, "gamehistory.GetPage")
	var err error
	defer func() { tracing.EndSpan(span, err) }()

	var cursor pagination.Cursor
	if cursor, err = pagination.Decode(token); err != nil {
		return Page{}, err
	}
	if err = pagination.ValidateCount(cursor.Count, s.Pagination); err != nil {
		return Page{}, err
	}
	span.SetAttributes(
		attribute.String("player.id", cursor.PlayerID),
		attribute.String("page.direction", string(cursor.Direction)),
		attribute.Int("page.count", cursor.Count),
	)

	bound := &repository.Bound{CreatedAt: cursor.Pivot.Time, ID: cursor.Pivot.ID}
	q := repository.GameRecordQuery{PlayerID: cursor.PlayerID, Limit: cursor.Count + 1}
	if cursor.Direction == pagination.DirectionNext {
		q.Before = bound
		q.Order = repository.SortDescending
	} else {
		q.After = bound
		q.Order = repository.SortAscending
	}

	var page Page
	page, err = s.fetch(ctx, pagination.FromCursor(cursor), q)
	return page, err
}

func (s *Service) fetch(ctx context.Context, req pagination.Request, q repository.GameRecordQuery) (Page, error) {
	var rows []*entity.GameRecord
	err := s.withStore(ctx, "search", func(ctx context.Context) error {
		var err error
		rows, err = s.Repo.Search(ctx, q)
		return err
	})
	if err != nil {
		return Page{}, fmt.Errorf("search history of %s: %w", q.PlayerID, err)
	}
	metrics.RecordRowsReturned(s.backend(), len(rows))
	return pagination.Assemble(rows, req, recordKey), nil
}

// withStore runs a store call under the query timeout and records its metrics.
// Failures other than the caller giving up or a domain outcome are reported
// as ErrStoreUnavailable.
func (s *Service) withStore(ctx context.Context, operation string, call func(context.Context) error) error {
	callCtx := ctx
	if s.QueryTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.QueryTimeout)
		defer cancel()
	}

	start := time.Now()
	err := call(callCtx)
	metrics.RecordStoreQuery(s.backend(), operation, time.Since(start), err)

	switch {
	case err == nil:
		return nil
	case errors.Is(err, entity.ErrDuplicateRecord):
		return err
	case ctx.Err() != nil:
		return ctx.Err()
	case circuitbreaker.IsRejection(err):
		// The breaker already logged the trip; one line per refused call would flood.
		logging.FromContext(ctx).Debug("record store call rejected by circuit breaker",
			"backend", s.backend(),
			"operation", operation)
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	default:
		logging.FromContext(ctx).Warn("record store call failed",
			"backend", s.backend(),
			"operation", operation,
			"error", err)
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
}

func (s *Service) backend() string {
	if s.Backend == "" {
		return "unknown"
	}
	return s.Backend
}

func recordKey(r *entity.GameRecord) pagination.Pivot {
	return pagination.Pivot{Time: r.CreatedAt, ID: r.ID}
}
