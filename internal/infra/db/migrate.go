package db

import (
	"context"
	"database/sql"
	"fmt"
)

var schemas = map[Dialect][]string{
	DialectPostgres: {
		`
CREATE TABLE IF NOT EXISTS game_records (
    id           TEXT PRIMARY KEY,
    players      JSONB NOT NULL,
    created_at   TIMESTAMPTZ NOT NULL,
    winning_team TEXT,
    game_data    JSONB
)`,
		// players @> '[{"id": ...}]'
		`CREATE INDEX IF NOT EXISTS idx_game_records_players ON game_records USING gin(players jsonb_path_ops)`,
		// keyset order
		`CREATE INDEX IF NOT EXISTS idx_game_records_created_at_id ON game_records(created_at DESC, id DESC)`,
	},
	DialectSQLite: {
		`
CREATE TABLE IF NOT EXISTS game_records (
    id           TEXT PRIMARY KEY,
    players      TEXT NOT NULL CHECK (json_valid(players)),
    created_at   INTEGER NOT NULL,
    winning_team TEXT,
    game_data    TEXT
)`,
		`CREATE INDEX IF NOT EXISTS idx_game_records_created_at_id ON game_records(created_at, id)`,
	},
}

// MigrateUp creates the game_records table and its indexes if they do not exist.
func MigrateUp(ctx context.Context, db *sql.DB, dialect Dialect) error {
	stmts, ok := schemas[dialect]
	if !ok {
		return fmt.Errorf("migrate: unsupported SQL dialect %q", string(dialect))
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate %s: %w", dialect, err)
		}
	}
	return nil
}
