// Package elasticsearch stores game records in an Elasticsearch index.
//
// The index mapping is created lazily on first use: timestamps are mapped as
// date_nanos and every string (player ids, teams, game data) as keyword.
package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"game-history/internal/domain/entity"
	"game-history/internal/repository"
	"game-history/internal/resilience/retry"
)

// DefaultIndex is the index used when none is configured.
const DefaultIndex = "gamehistory"

// Config holds the connection settings for the adapter.
type Config struct {
	Addresses []string `yaml:"addresses"`
	Username  string   `yaml:"username"`
	Password  string   `yaml:"-"`
	Index     string   `yaml:"index"`
	// Refresh is passed to index requests ("", "true", "false" or "wait_for").
	Refresh string `yaml:"refresh"`
}

type gameRecordDocument struct {
	ID          string              `json:"id"`
	Players     []entity.GamePlayer `json:"players"`
	CreatedAt   string              `json:"created_at"`
	WinningTeam string              `json:"winning_team,omitempty"`
	GameData    entity.GameData     `json:"game_data,omitempty"`
}

// GameRecordRepo implements repository.GameRecordRepository on Elasticsearch.
type GameRecordRepo struct {
	client      *elasticsearch.Client
	index       string
	refresh     string
	mappingDone atomic.Bool
}

var _ repository.GameRecordRepository = (*GameRecordRepo)(nil)

// NewGameRecordRepo creates the client. No request is made until first use.
func NewGameRecordRepo(cfg Config) (*GameRecordRepo, error) {
	if len(cfg.Addresses) == 0 {
		return nil, errors.New("elasticsearch: no addresses configured")
	}
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cfg.Addresses,
		Username:  cfg.Username,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("elasticsearch client creation error: %w", err)
	}
	index := cfg.Index
	if index == "" {
		index = DefaultIndex
	}
	return &GameRecordRepo{client: es, index: index, refresh: cfg.Refresh}, nil
}

// indexMapping mirrors how records were mapped historically: a date template
// for the creation time and keyword for all other strings.
var indexMapping = map[string]any{
	"mappings": map[string]any{
		"dynamic_templates": []any{
			map[string]any{"dates": map[string]any{
				"match":   "created_at",
				"mapping": map[string]any{"type": "date_nanos"},
			}},
			map[string]any{"strings": map[string]any{
				"match_mapping_type": "string",
				"mapping":            map[string]any{"type": "keyword"},
			}},
		},
	},
}

// ensureMapping creates the index once per process. Concurrent first calls may
// both try; the loser gets resource_already_exists_exception.
func (repo *GameRecordRepo) ensureMapping(ctx context.Context) error {
	if repo.mappingDone.Load() {
		return nil
	}

	body, _ := json.Marshal(indexMapping)
	res, err := esapi.IndicesCreateRequest{
		Index: repo.index,
		Body:  bytes.NewReader(body),
	}.Do(ctx, repo.client)
	if err != nil {
		return fmt.Errorf("create index %s: %w", repo.index, err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		reason := errorType(res.Body)
		if reason != "resource_already_exists_exception" {
			return fmt.Errorf("create index %s: %s %s", repo.index, res.Status(), reason)
		}
	}
	repo.mappingDone.CompareAndSwap(false, true)
	return nil
}

func (repo *GameRecordRepo) Create(ctx context.Context, record *entity.GameRecord) error {
	if err := repo.ensureMapping(ctx); err != nil {
		return fmt.Errorf("Create: %w", err)
	}

	body, err := json.Marshal(gameRecordDocument{
		ID:          record.ID,
		Players:     record.Players,
		CreatedAt:   record.CreatedAt.UTC().Format(time.RFC3339Nano),
		WinningTeam: record.WinningTeam,
		GameData:    record.GameData,
	})
	if err != nil {
		return fmt.Errorf("Create: encode: %w", err)
	}

	res, err := esapi.IndexRequest{
		Index:      repo.index,
		DocumentID: record.ID,
		Body:       bytes.NewReader(body),
		OpType:     "create",
		Refresh:    repo.refresh,
	}.Do(ctx, repo.client)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode == http.StatusConflict {
		return fmt.Errorf("Create: %w", entity.ErrDuplicateRecord)
	}
	if res.IsError() {
		return fmt.Errorf("Create: elasticsearch indexing error: %s %s", res.Status(), errorType(res.Body))
	}
	return nil
}

func (repo *GameRecordRepo) Search(ctx context.Context, q repository.GameRecordQuery) ([]*entity.GameRecord, error) {
	if q.Limit <= 0 {
		return nil, fmt.Errorf("Search: limit must be positive, got %d", q.Limit)
	}
	if err := repo.ensureMapping(ctx); err != nil {
		return nil, fmt.Errorf("Search: %w", err)
	}

	body, err := json.Marshal(buildSearchBody(q))
	if err != nil {
		return nil, fmt.Errorf("Search: encode query: %w", err)
	}

	res, err := repo.client.Search(
		repo.client.Search.WithContext(ctx),
		repo.client.Search.WithIndex(repo.index),
		repo.client.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, fmt.Errorf("Search: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		return nil, fmt.Errorf("Search: elasticsearch search error: %s %s", res.Status(), errorType(res.Body))
	}

	var sr struct {
		Hits struct {
			Hits []struct {
				Source gameRecordDocument `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("Search: elasticsearch parsing error: %w", err)
	}

	records := make([]*entity.GameRecord, 0, len(sr.Hits.Hits))
	for _, hit := range sr.Hits.Hits {
		doc := hit.Source
		createdAt, err := time.Parse(time.RFC3339Nano, doc.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("Search: created_at of %s: %w", doc.ID, err)
		}
		records = append(records, &entity.GameRecord{
			ID:          doc.ID,
			Players:     doc.Players,
			CreatedAt:   createdAt.UTC(),
			WinningTeam: doc.WinningTeam,
			GameData:    doc.GameData,
		})
	}
	return records, nil
}

// Ping checks that the cluster answers.
func (repo *GameRecordRepo) Ping(ctx context.Context) error {
	res, err := repo.client.Ping(repo.client.Ping.WithContext(ctx))
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return &retry.HTTPError{StatusCode: res.StatusCode, Message: "elasticsearch ping: " + res.Status()}
	}
	return nil
}

// buildSearchBody builds a bool query on players.id with (created_at, id) bounds.
func buildSearchBody(q repository.GameRecordQuery) map[string]any {
	must := []any{
		map[string]any{"term": map[string]any{"players.id": q.PlayerID}},
	}
	if q.Before != nil {
		must = append(must, keyset("lt", *q.Before))
	}
	if q.After != nil {
		must = append(must, keyset("gt", *q.After))
	}

	order := q.Order.String()
	return map[string]any{
		"size":  q.Limit,
		"query": map[string]any{"bool": map[string]any{"must": must}},
		"sort": []any{
			map[string]any{"created_at": map[string]any{"order": order}},
			map[string]any{"id": map[string]any{"order": order}},
		},
	}
}

// keyset matches records strictly on the op side of the bound.
func keyset(op string, b repository.Bound) map[string]any {
	ts := b.CreatedAt.UTC().Format(time.RFC3339Nano)
	return map[string]any{"bool": map[string]any{
		"minimum_should_match": 1,
		"should": []any{
			map[string]any{"range": map[string]any{"created_at": map[string]any{op: ts}}},
			map[string]any{"bool": map[string]any{"must": []any{
				map[string]any{"term": map[string]any{"created_at": ts}},
				map[string]any{"range": map[string]any{"id": map[string]any{op: b.ID}}},
			}}},
		},
	}}
}

// errorType extracts error.type from an error response body.
func errorType(body io.Reader) string {
	var e struct {
		Error struct {
			Type string `json:"type"`
		} `json:"error"`
	}
	if err := json.NewDecoder(body).Decode(&e); err != nil {
		return ""
	}
	return e.Error.Type
}
