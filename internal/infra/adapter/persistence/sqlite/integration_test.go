package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"game-history/internal/domain/entity"
	"game-history/internal/infra/adapter/persistence/sqlite"
	"game-history/internal/infra/db"
	"game-history/internal/repository"
)

func TestGameRecordRepo_InMemoryDatabase(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping sqlite integration test in short mode")
	}

	ctx := context.Background()
	conn, err := db.Open(db.DialectSQLite, ":memory:", db.ConnectionConfig{})
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()
	require.NoError(t, db.MigrateUp(ctx, conn, db.DialectSQLite))

	repo := sqlite.NewGameRecordRepo(conn)
	base := time.Date(2025, 5, 5, 0, 0, 0, 0, time.UTC)
	for _, r := range []*entity.GameRecord{
		{ID: "a", Players: []entity.GamePlayer{{ID: "p1"}, {ID: "p2"}}, CreatedAt: base},
		{ID: "b", Players: []entity.GamePlayer{{ID: "p1"}}, CreatedAt: base.Add(time.Nanosecond)},
		{ID: "c", Players: []entity.GamePlayer{{ID: "p1"}}, CreatedAt: base.Add(time.Nanosecond)},
		{ID: "d", Players: []entity.GamePlayer{{ID: "p2"}}, CreatedAt: base.Add(time.Second)},
	} {
		require.NoError(t, repo.Create(ctx, r))
	}

	err = repo.Create(ctx, &entity.GameRecord{ID: "a", Players: []entity.GamePlayer{{ID: "p3"}}, CreatedAt: base})
	assert.True(t, errors.Is(err, entity.ErrDuplicateRecord), "got %v", err)

	got, err := repo.Search(ctx, repository.GameRecordQuery{PlayerID: "p1", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b", "a"}, recordIDs(got))

	got, err = repo.Search(ctx, repository.GameRecordQuery{
		PlayerID: "p1",
		Before:   &repository.Bound{CreatedAt: base.Add(time.Nanosecond), ID: "c"},
		Limit:    10,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, recordIDs(got))

	got, err = repo.Search(ctx, repository.GameRecordQuery{
		PlayerID: "p1",
		After:    &repository.Bound{CreatedAt: base, ID: "a"},
		Order:    repository.SortAscending,
		Limit:    1,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, recordIDs(got))
	assert.Equal(t, base.Add(time.Nanosecond), got[0].CreatedAt)
}

func recordIDs(records []*entity.GameRecord) []string {
	ids := make([]string, len(records))
	for i, r := range records {
		ids[i] = r.ID
	}
	return ids
}
