// Package sqlite provides SQLite implementations of repository interfaces.
// Timestamps are stored as Unix nanoseconds so ordering and bounds are exact.
package sqlite

import (
	"strings"

	"game-history/internal/repository"
)

// GameRecordQueryBuilder builds the keyset query for game record search.
type GameRecordQueryBuilder struct{}

// NewGameRecordQueryBuilder creates a new query builder instance.
func NewGameRecordQueryBuilder() *GameRecordQueryBuilder {
	return &GameRecordQueryBuilder{}
}

// BuildWhereClause builds WHERE clause and arguments for a player's records.
// Players are matched through json_each over the players array; bounds use
// row-value comparison on (created_at, id).
func (qb *GameRecordQueryBuilder) BuildWhereClause(q repository.GameRecordQuery) (clause string, args []interface{}) {
	conditions := []string{
		"EXISTS (SELECT 1 FROM json_each(game_records.players) WHERE json_extract(json_each.value, '$.id') = ?)",
	}
	args = append(args, q.PlayerID)

	if q.Before != nil {
		conditions = append(conditions, "(created_at, id) < (?, ?)")
		args = append(args, q.Before.CreatedAt.UnixNano(), q.Before.ID)
	}
	if q.After != nil {
		conditions = append(conditions, "(created_at, id) > (?, ?)")
		args = append(args, q.After.CreatedAt.UnixNano(), q.After.ID)
	}

	return "WHERE " + strings.Join(conditions, " AND "), args
}

// BuildSelectQuery builds the full SELECT with ordering and limit.
func (qb *GameRecordQueryBuilder) BuildSelectQuery(q repository.GameRecordQuery) (query string, args []interface{}) {
	where, args := qb.BuildWhereClause(q)
	dir := " DESC"
	if q.Order == repository.SortAscending {
		dir = " ASC"
	}
	args = append(args, q.Limit)
	query = `
SELECT id, players, created_at, winning_team, game_data
FROM game_records
` + where + `
ORDER BY created_at` + dir + `, id` + dir + `
LIMIT ?`
	return query, args
}
