package mongodb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"game-history/internal/domain/entity"
	"game-history/internal/repository"
)

var created = time.Date(2025, 9, 1, 18, 0, 0, 123456789, time.UTC)

func TestBuildFilter(t *testing.T) {
	before := repository.Bound{CreatedAt: created, ID: "g5"}
	after := repository.Bound{CreatedAt: created.Add(-time.Hour), ID: "g1"}

	tests := []struct {
		name  string
		query repository.GameRecordQuery
		want  bson.D
	}{
		{
			name:  "player only",
			query: repository.GameRecordQuery{PlayerID: "alice"},
			want:  bson.D{{Key: "players.id", Value: "alice"}},
		},
		{
			name:  "before",
			query: repository.GameRecordQuery{PlayerID: "alice", Before: &before},
			want: bson.D{
				{Key: "players.id", Value: "alice"},
				{Key: "$and", Value: bson.A{keyset("$lt", before)}},
			},
		},
		{
			name:  "both bounds",
			query: repository.GameRecordQuery{PlayerID: "alice", Before: &before, After: &after},
			want: bson.D{
				{Key: "players.id", Value: "alice"},
				{Key: "$and", Value: bson.A{keyset("$lt", before), keyset("$gt", after)}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, buildFilter(tt.query)); diff != "" {
				t.Errorf("filter mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestKeyset(t *testing.T) {
	got := keyset("$gt", repository.Bound{CreatedAt: created, ID: "g7"})
	want := bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "created_ns", Value: bson.D{{Key: "$gt", Value: created.UnixNano()}}}},
		bson.D{
			{Key: "created_ns", Value: created.UnixNano()},
			{Key: "_id", Value: bson.D{{Key: "$gt", Value: "g7"}}},
		},
	}}}
	assert.Equal(t, want, got)
}

func TestBuildSort(t *testing.T) {
	assert.Equal(t, bson.D{{Key: "created_ns", Value: -1}, {Key: "_id", Value: -1}}, buildSort(repository.SortDescending))
	assert.Equal(t, bson.D{{Key: "created_ns", Value: 1}, {Key: "_id", Value: 1}}, buildSort(repository.SortAscending))
}

func TestDocumentRoundTrip(t *testing.T) {
	r := &entity.GameRecord{
		ID:          "g1",
		Players:     []entity.GamePlayer{{ID: "alice", Team: "red"}},
		CreatedAt:   created,
		WinningTeam: "red",
		GameData:    entity.GameData{"rounds": 3},
	}
	doc := toDocument(r)
	assert.Equal(t, created.UnixNano(), doc.CreatedNS)
	assert.Equal(t, r, doc.toEntity())
}

func TestGameRecordRepo_Mock(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		repo := NewGameRecordRepo(mt.Coll)
		err := repo.Create(context.Background(), &entity.GameRecord{
			ID: "g1", Players: []entity.GamePlayer{{ID: "alice"}}, CreatedAt: created,
		})
		require.NoError(mt, err)
	})

	mt.Run("create duplicate", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index: 0, Code: 11000, Message: "duplicate key error",
		}))

		repo := NewGameRecordRepo(mt.Coll)
		err := repo.Create(context.Background(), &entity.GameRecord{
			ID: "g1", Players: []entity.GamePlayer{{ID: "alice"}}, CreatedAt: created,
		})
		assert.True(mt, errors.Is(err, entity.ErrDuplicateRecord), "got %v", err)
	})

	mt.Run("search", func(mt *mtest.T) {
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{
				{Key: "_id", Value: "g2"},
				{Key: "players", Value: bson.A{bson.D{{Key: "id", Value: "alice"}, {Key: "team", Value: "red"}}}},
				{Key: "created_at", Value: created},
				{Key: "created_ns", Value: created.UnixNano()},
				{Key: "winning_team", Value: "red"},
				{Key: "game_data", Value: bson.D{{Key: "score", Value: bson.D{{Key: "red", Value: int32(3)}}}}},
			},
		))

		repo := NewGameRecordRepo(mt.Coll)
		got, err := repo.Search(context.Background(), repository.GameRecordQuery{PlayerID: "alice", Limit: 2})
		require.NoError(mt, err)
		require.Len(mt, got, 1)

		assert.Equal(mt, "g2", got[0].ID)
		assert.Equal(mt, created, got[0].CreatedAt)
		assert.Equal(mt, []entity.GamePlayer{{ID: "alice", Team: "red"}}, got[0].Players)
		assert.Equal(mt, entity.GameData{"score": bson.M{"red": int32(3)}}, got[0].GameData)
	})

	mt.Run("search invalid limit", func(mt *mtest.T) {
		repo := NewGameRecordRepo(mt.Coll)
		_, err := repo.Search(context.Background(), repository.GameRecordQuery{PlayerID: "alice"})
		assert.Error(mt, err)
	})
}
