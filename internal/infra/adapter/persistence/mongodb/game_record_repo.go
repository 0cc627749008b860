// Package mongodb provides a MongoDB implementation of the game record repository.
//
// Records are stored one document per game with the record id as _id. BSON dates
// only keep milliseconds, so ordering and bounds use a separate created_ns field
// holding Unix nanoseconds.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"game-history/internal/domain/entity"
	"game-history/internal/repository"
)

const (
	fieldID        = "_id"
	fieldPlayerID  = "players.id"
	fieldCreatedNS = "created_ns"
)

type gameRecordDocument struct {
	ID          string              `bson:"_id"`
	Players     []entity.GamePlayer `bson:"players"`
	CreatedAt   time.Time           `bson:"created_at"`
	CreatedNS   int64               `bson:"created_ns"`
	WinningTeam string              `bson:"winning_team,omitempty"`
	GameData    map[string]any      `bson:"game_data,omitempty"`
}

func toDocument(r *entity.GameRecord) gameRecordDocument {
	return gameRecordDocument{
		ID:          r.ID,
		Players:     r.Players,
		CreatedAt:   r.CreatedAt.UTC(),
		CreatedNS:   r.CreatedAt.UnixNano(),
		WinningTeam: r.WinningTeam,
		GameData:    r.GameData,
	}
}

func (d gameRecordDocument) toEntity() *entity.GameRecord {
	return &entity.GameRecord{
		ID:          d.ID,
		Players:     d.Players,
		CreatedAt:   time.Unix(0, d.CreatedNS).UTC(),
		WinningTeam: d.WinningTeam,
		GameData:    d.GameData,
	}
}

// GameRecordRepo stores game records in a MongoDB collection.
type GameRecordRepo struct {
	collection *mongo.Collection
}

var _ repository.GameRecordRepository = (*GameRecordRepo)(nil)

// NewGameRecordRepo wraps the collection. Nested game data decodes as maps
// rather than ordered documents so it serialises back to plain JSON objects.
func NewGameRecordRepo(coll *mongo.Collection) *GameRecordRepo {
	opts := options.Collection().SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})
	return &GameRecordRepo{collection: coll.Database().Collection(coll.Name(), opts)}
}

// Connect dials the server and returns a repository on database.collection.
func Connect(ctx context.Context, uri, database, collection string) (*GameRecordRepo, *mongo.Client, error) {
	if uri == "" {
		return nil, nil, errors.New("mongodb: URI is empty")
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("mongodb connect: %w", err)
	}
	return NewGameRecordRepo(client.Database(database).Collection(collection)), client, nil
}

// EnsureIndexes creates the player keyset index.
func (repo *GameRecordRepo) EnsureIndexes(ctx context.Context) error {
	_, err := repo.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: fieldPlayerID, Value: 1},
			{Key: fieldCreatedNS, Value: -1},
			{Key: fieldID, Value: -1},
		},
		Options: options.Index().SetName("idx_players_created"),
	})
	if err != nil {
		return fmt.Errorf("EnsureIndexes: %w", err)
	}
	return nil
}

func (repo *GameRecordRepo) Create(ctx context.Context, record *entity.GameRecord) error {
	if _, err := repo.collection.InsertOne(ctx, toDocument(record)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
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

	opts := options.Find().
		SetSort(buildSort(q.Order)).
		SetLimit(int64(q.Limit))

	cursor, err := repo.collection.Find(ctx, buildFilter(q), opts)
	if err != nil {
		return nil, fmt.Errorf("Search: %w", err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	var docs []gameRecordDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("Search: decode: %w", err)
	}

	records := make([]*entity.GameRecord, len(docs))
	for i, d := range docs {
		records[i] = d.toEntity()
	}
	return records, nil
}

func (repo *GameRecordRepo) Ping(ctx context.Context) error {
	return repo.collection.Database().Client().Ping(ctx, readpref.Primary())
}

// buildFilter matches the player and applies the (created_ns, _id) bounds.
func buildFilter(q repository.GameRecordQuery) bson.D {
	filter := bson.D{{Key: fieldPlayerID, Value: q.PlayerID}}

	var bounds bson.A
	if q.Before != nil {
		bounds = append(bounds, keyset("$lt", *q.Before))
	}
	if q.After != nil {
		bounds = append(bounds, keyset("$gt", *q.After))
	}
	if len(bounds) > 0 {
		filter = append(filter, bson.E{Key: "$and", Value: bounds})
	}
	return filter
}

// keyset expresses (created_ns, _id) <op> (b.CreatedAt, b.ID).
func keyset(op string, b repository.Bound) bson.D {
	ns := b.CreatedAt.UnixNano()
	return bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: fieldCreatedNS, Value: bson.D{{Key: op, Value: ns}}}},
		bson.D{
			{Key: fieldCreatedNS, Value: ns},
			{Key: fieldID, Value: bson.D{{Key: op, Value: b.ID}}},
		},
	}}}
}

func buildSort(order repository.SortOrder) bson.D {
	dir := -1
	if order == repository.SortAscending {
		dir = 1
	}
	return bson.D{{Key: fieldCreatedNS, Value: dir}, {Key: fieldID, Value: dir}}
}
