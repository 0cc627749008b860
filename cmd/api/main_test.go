package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"game-history/internal/config"
	"game-history/internal/infra/adapter/persistence/memory"
)

/* ─── ヘルパ ─── */

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	cfg := config.Default()
	cfg.Auth.JWTSecret = "0123456789abcdef0123456789abcdef-test-secret"
	cfg.Auth.ProtectReads = true

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return setupServer(logger, cfg, memory.NewGameRecordRepo(), "test").Handler
}

/* ─── ルーティング ─── */

func TestSetupServer_SwaggerDocIsPublic(t *testing.T) {
	h := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var doc struct {
		Info struct {
			Title string `json:"title"`
		} `json:"info"`
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "Game History API", doc.Info.Title)
	assert.Contains(t, doc.Paths["/games"], "post")
	assert.Contains(t, doc.Paths["/players/{playerID}/games"], "get")
	assert.Contains(t, doc.Paths["/games/history"], "get")
}

func TestSetupServer_ProtectedRoutesStillRequireToken(t *testing.T) {
	h := newTestHandler(t)

	for _, tc := range []struct {
		method, path string
	}{
		{http.MethodPost, "/games"},
		{http.MethodGet, "/players/alice/games"},
		{http.MethodGet, "/games/history?cursor=x"},
	} {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestSetupServer_Health(t *testing.T) {
	h := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/live", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
