package elasticsearch

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"game-history/internal/domain/entity"
	"game-history/internal/repository"
)

var created = time.Date(2025, 4, 2, 9, 30, 0, 5, time.UTC)

type fakeCluster struct {
	mu          sync.Mutex
	indexCalls  atomic.Int32
	indexExists bool
	docs        map[string][]byte
	lastQuery   map[string]any
	searchHits  []string
}

func newFakeCluster(t *testing.T) (*fakeCluster, *GameRecordRepo) {
	t.Helper()
	fc := &fakeCluster{docs: map[string][]byte{}}
	srv := httptest.NewServer(fc)
	t.Cleanup(srv.Close)

	repo, err := NewGameRecordRepo(Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return fc, repo
}

func (fc *fakeCluster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")
	body, _ := io.ReadAll(r.Body)

	fc.mu.Lock()
	defer fc.mu.Unlock()

	switch {
	case r.Method == http.MethodPut && r.URL.Path == "/gamehistory":
		fc.indexCalls.Add(1)
		if fc.indexExists {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{"error":{"type":"resource_already_exists_exception"},"status":400}`)
			return
		}
		fc.indexExists = true
		_, _ = io.WriteString(w, `{"acknowledged":true}`)

	case r.Method == http.MethodPut && strings.HasPrefix(r.URL.Path, "/gamehistory/_doc/"):
		id := strings.TrimPrefix(r.URL.Path, "/gamehistory/_doc/")
		if _, ok := fc.docs[id]; ok {
			w.WriteHeader(http.StatusConflict)
			_, _ = io.WriteString(w, `{"error":{"type":"version_conflict_engine_exception"},"status":409}`)
			return
		}
		fc.docs[id] = body
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"result":"created"}`)

	case strings.HasSuffix(r.URL.Path, "/_search"):
		_ = json.Unmarshal(body, &fc.lastQuery)
		hits := make([]string, 0, len(fc.searchHits))
		for _, id := range fc.searchHits {
			hits = append(hits, `{"_source":`+string(fc.docs[id])+`}`)
		}
		_, _ = io.WriteString(w, `{"hits":{"hits":[`+strings.Join(hits, ",")+`]}}`)

	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error":{"type":"unexpected"}}`)
	}
}

func TestNewGameRecordRepo_NoAddresses(t *testing.T) {
	_, err := NewGameRecordRepo(Config{})
	assert.Error(t, err)
}

func TestGameRecordRepo_CreateAndSearch(t *testing.T) {
	fc, repo := newFakeCluster(t)
	ctx := context.Background()

	record := &entity.GameRecord{
		ID:          "g1",
		Players:     []entity.GamePlayer{{ID: "alice", Team: "red"}, {ID: "bob", Team: "blue"}},
		CreatedAt:   created,
		WinningTeam: "red",
		GameData:    entity.GameData{"map": "arena"},
	}
	require.NoError(t, repo.Create(ctx, record))

	err := repo.Create(ctx, record)
	assert.True(t, errors.Is(err, entity.ErrDuplicateRecord), "got %v", err)

	fc.mu.Lock()
	fc.searchHits = []string{"g1"}
	fc.mu.Unlock()
	got, err := repo.Search(ctx, repository.GameRecordQuery{PlayerID: "alice", Limit: 3})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, record, got[0])

	assert.Equal(t, int32(1), fc.indexCalls.Load(), "mapping is created once")
	fc.mu.Lock()
	defer fc.mu.Unlock()
	assert.EqualValues(t, 3, fc.lastQuery["size"])
}

func TestGameRecordRepo_IndexAlreadyExists(t *testing.T) {
	fc, repo := newFakeCluster(t)
	fc.indexExists = true

	_, err := repo.Search(context.Background(), repository.GameRecordQuery{PlayerID: "alice", Limit: 1})
	require.NoError(t, err)
	assert.True(t, repo.mappingDone.Load())
}

func TestBuildSearchBody(t *testing.T) {
	q := repository.GameRecordQuery{
		PlayerID: "alice",
		Before:   &repository.Bound{CreatedAt: created, ID: "g9"},
		Order:    repository.SortDescending,
		Limit:    5,
	}

	raw, err := json.Marshal(buildSearchBody(q))
	require.NoError(t, err)

	want := `{
		"query": {"bool": {"must": [
			{"term": {"players.id": "alice"}},
			{"bool": {
				"minimum_should_match": 1,
				"should": [
					{"range": {"created_at": {"lt": "2025-04-02T09:30:00.000000005Z"}}},
					{"bool": {"must": [
						{"term": {"created_at": "2025-04-02T09:30:00.000000005Z"}},
						{"range": {"id": {"lt": "g9"}}}
					]}}
				]
			}}
		]}},
		"size": 5,
		"sort": [
			{"created_at": {"order": "desc"}},
			{"id": {"order": "desc"}}
		]
	}`
	assert.JSONEq(t, want, string(raw))
}

func TestBuildSearchBody_Ascending(t *testing.T) {
	body := buildSearchBody(repository.GameRecordQuery{
		PlayerID: "alice",
		After:    &repository.Bound{CreatedAt: created, ID: "g1"},
		Order:    repository.SortAscending,
		Limit:    2,
	})

	raw, err := json.Marshal(body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"gt":"g1"`)
	assert.Contains(t, string(raw), `{"created_at":{"order":"asc"}}`)
}
