// Package postgres provides PostgreSQL implementations of repository interfaces.
package postgres

import (
	"encoding/json"
	"fmt"
	"strings"

	"game-history/internal/repository"
)

const selectColumns = `id, players, created_at, winning_team, game_data`

// GameRecordQueryBuilder builds the keyset query for game record search.
// It uses JSONB containment for the player filter and row-value comparison
// on (created_at, id) for the page bounds, with numbered placeholders ($1, $2, ...).
type GameRecordQueryBuilder struct{}

// NewGameRecordQueryBuilder creates a new query builder instance.
func NewGameRecordQueryBuilder() *GameRecordQueryBuilder {
	return &GameRecordQueryBuilder{}
}

// BuildWhereClause builds the WHERE clause and its arguments.
// The player filter is always present; bounds are added when set.
func (qb *GameRecordQueryBuilder) BuildWhereClause(q repository.GameRecordQuery) (clause string, args []any) {
	// players @> '[{"id": "..."}]' is served by the GIN index on players
	contains, _ := json.Marshal([]map[string]string{{"id": q.PlayerID}})
	conditions := []string{"players @> $1::jsonb"}
	args = append(args, string(contains))
	paramIndex := 2

	if q.Before != nil {
		conditions = append(conditions, fmt.Sprintf("(created_at, id) < ($%d, $%d)", paramIndex, paramIndex+1))
		args = append(args, q.Before.CreatedAt.UTC(), q.Before.ID)
		paramIndex += 2
	}
	if q.After != nil {
		conditions = append(conditions, fmt.Sprintf("(created_at, id) > ($%d, $%d)", paramIndex, paramIndex+1))
		args = append(args, q.After.CreatedAt.UTC(), q.After.ID)
	}

	return "WHERE " + strings.Join(conditions, " AND "), args
}

// BuildSelectQuery builds the full SELECT with ordering and limit.
func (qb *GameRecordQueryBuilder) BuildSelectQuery(q repository.GameRecordQuery) (query string, args []any) {
	where, args := qb.BuildWhereClause(q)
	dir := "DESC"
	if q.Order == repository.SortAscending {
		dir = "ASC"
	}
	args = append(args, q.Limit)
	query = fmt.Sprintf(`
SELECT %s
FROM game_records
%s
ORDER BY created_at %s, id %s
LIMIT $%d`, selectColumns, where, dir, dir, len(args))
	return query, args
}
