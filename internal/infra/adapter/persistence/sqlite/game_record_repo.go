package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"game-history/internal/domain/entity"
	"game-history/internal/repository"
)

// GameRecordRepo implements the GameRecordRepository interface using SQLite.
type GameRecordRepo struct {
	db           *sql.DB
	queryBuilder *GameRecordQueryBuilder
}

// NewGameRecordRepo creates a new SQLite-backed game record repository.
func NewGameRecordRepo(db *sql.DB) *GameRecordRepo {
	return &GameRecordRepo{db: db, queryBuilder: NewGameRecordQueryBuilder()}
}

var _ repository.GameRecordRepository = (*GameRecordRepo)(nil)

// Create inserts a record. A primary key conflict maps to entity.ErrDuplicateRecord.
func (repo *GameRecordRepo) Create(ctx context.Context, record *entity.GameRecord) error {
	players, err := json.Marshal(record.Players)
	if err != nil {
		return fmt.Errorf("Create: marshal players: %w", err)
	}
	var gameData sql.NullString
	if record.GameData != nil {
		b, err := json.Marshal(record.GameData)
		if err != nil {
			return fmt.Errorf("Create: marshal game data: %w", err)
		}
		gameData = sql.NullString{String: string(b), Valid: true}
	}

	const query = `
INSERT INTO game_records (id, players, created_at, winning_team, game_data)
VALUES (?, ?, ?, ?, ?)`
	_, err = repo.db.ExecContext(ctx, query,
		record.ID, string(players), record.CreatedAt.UnixNano(), record.WinningTeam, gameData)
	if err != nil {
		if isConstraintViolation(err) {
			return fmt.Errorf("Create: %w", entity.ErrDuplicateRecord)
		}
		return fmt.Errorf("Create: ExecContext: %w", err)
	}
	return nil
}

// Search returns a player's records within the query bounds.
func (repo *GameRecordRepo) Search(ctx context.Context, q repository.GameRecordQuery) ([]*entity.GameRecord, error) {
	if q.Limit <= 0 {
		return nil, fmt.Errorf("Search: limit must be positive, got %d", q.Limit)
	}

	query, args := repo.queryBuilder.BuildSelectQuery(q)
	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("Search: QueryContext: %w", err)
	}
	defer func() { _ = rows.Close() }()

	records := make([]*entity.GameRecord, 0, q.Limit)
	for rows.Next() {
		var (
			record   entity.GameRecord
			players  string
			nanos    int64
			winning  sql.NullString
			gameData sql.NullString
		)
		if err := rows.Scan(&record.ID, &players, &nanos, &winning, &gameData); err != nil {
			return nil, fmt.Errorf("Search: Scan: %w", err)
		}
		if err := json.Unmarshal([]byte(players), &record.Players); err != nil {
			return nil, fmt.Errorf("Search: decode players of %s: %w", record.ID, err)
		}
		if gameData.Valid {
			if err := json.Unmarshal([]byte(gameData.String), &record.GameData); err != nil {
				return nil, fmt.Errorf("Search: decode game data of %s: %w", record.ID, err)
			}
		}
		record.CreatedAt = time.Unix(0, nanos).UTC()
		record.WinningTeam = winning.String
		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("Search: rows.Err: %w", err)
	}
	return records, nil
}

// Ping checks the database connection.
func (repo *GameRecordRepo) Ping(ctx context.Context) error {
	return repo.db.PingContext(ctx)
}

func isConstraintViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey ||
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}
