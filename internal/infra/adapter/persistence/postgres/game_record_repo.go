package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"game-history/internal/domain/entity"
	"game-history/internal/repository"
)

// uniqueViolation is the SQLSTATE for unique_violation.
const uniqueViolation = "23505"

type GameRecordRepo struct {
	db           *sql.DB
	queryBuilder *GameRecordQueryBuilder
}

func NewGameRecordRepo(db *sql.DB) *GameRecordRepo {
	return &GameRecordRepo{
		db:           db,
		queryBuilder: NewGameRecordQueryBuilder(),
	}
}

var _ repository.GameRecordRepository = (*GameRecordRepo)(nil)

func (repo *GameRecordRepo) Create(ctx context.Context, record *entity.GameRecord) error {
	players, err := json.Marshal(record.Players)
	if err != nil {
		return fmt.Errorf("Create: marshal players: %w", err)
	}
	gameData, err := marshalGameData(record.GameData)
	if err != nil {
		return fmt.Errorf("Create: marshal game data: %w", err)
	}

	const query = `
INSERT INTO game_records (id, players, created_at, winning_team, game_data)
VALUES ($1, $2::jsonb, $3, $4, $5::jsonb)`
	_, err = repo.db.ExecContext(ctx, query,
		record.ID, string(players), record.CreatedAt.UTC(), record.WinningTeam, gameData)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("Create: %w", entity.ErrDuplicateRecord)
		}
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *GameRecordRepo) Search(ctx context.Context, q repository.GameRecordQuery) ([]*entity.GameRecord, error) {
	if q.Limit <= 0 {
		return nil, fmt.Errorf("Search: limit must be positive, got %d", q.Limit)
	}

	query, args := repo.queryBuilder.BuildSelectQuery(q)
	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("Search: %w", err)
	}
	defer func() { _ = rows.Close() }()

	records := make([]*entity.GameRecord, 0, q.Limit)
	for rows.Next() {
		record, err := scanGameRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("Search: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("Search: rows.Err: %w", err)
	}
	return records, nil
}

func (repo *GameRecordRepo) Ping(ctx context.Context) error {
	return repo.db.PingContext(ctx)
}

func scanGameRecord(rows *sql.Rows) (*entity.GameRecord, error) {
	var (
		record   entity.GameRecord
		players  []byte
		gameData []byte
		winning  sql.NullString
	)
	if err := rows.Scan(&record.ID, &players, &record.CreatedAt, &winning, &gameData); err != nil {
		return nil, fmt.Errorf("Scan: %w", err)
	}
	if err := json.Unmarshal(players, &record.Players); err != nil {
		return nil, fmt.Errorf("decode players of %s: %w", record.ID, err)
	}
	if len(gameData) > 0 {
		if err := json.Unmarshal(gameData, &record.GameData); err != nil {
			return nil, fmt.Errorf("decode game data of %s: %w", record.ID, err)
		}
	}
	record.WinningTeam = winning.String
	record.CreatedAt = record.CreatedAt.UTC()
	return &record, nil
}

// marshalGameData returns nil for an absent payload so the column stays NULL.
func marshalGameData(data entity.GameData) (any, error) {
	if data == nil {
		return nil, nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}
