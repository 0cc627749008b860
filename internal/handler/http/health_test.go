package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/* ─── ヘルパ ─── */

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

type stubBreaker struct{ state gobreaker.State }

func (s stubBreaker) Name() string            { return "record-store" }
func (s stubBreaker) State() gobreaker.State { return s.state }

func decodeHealth(t *testing.T, rec *httptest.ResponseRecorder) HealthResponse {
	t.Helper()
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

/* ─── HealthHandler ─── */

func TestHealthHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		handler        *HealthHandler
		expectedStatus int
		expectedState  string
	}{
		{
			name:           "healthy store",
			handler:        &HealthHandler{Store: stubPinger{}, Backend: "memory"},
			expectedStatus: http.StatusOK,
			expectedState:  "healthy",
		},
		{
			name:           "store down",
			handler:        &HealthHandler{Store: stubPinger{err: errors.New("dial tcp: refused")}, Backend: "postgres"},
			expectedStatus: http.StatusServiceUnavailable,
			expectedState:  "unhealthy",
		},
		{
			name:           "store not configured",
			handler:        &HealthHandler{},
			expectedStatus: http.StatusServiceUnavailable,
			expectedState:  "unhealthy",
		},
		{
			name:           "open breaker degrades",
			handler:        &HealthHandler{Store: stubPinger{}, Breaker: stubBreaker{state: gobreaker.StateOpen}},
			expectedStatus: http.StatusOK,
			expectedState:  "degraded",
		},
		{
			name:           "closed breaker",
			handler:        &HealthHandler{Store: stubPinger{}, Breaker: stubBreaker{state: gobreaker.StateClosed}},
			expectedStatus: http.StatusOK,
			expectedState:  "healthy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.handler.Version = "test-version"
			rec := httptest.NewRecorder()
			tt.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, "no-cache, no-store, must-revalidate", rec.Header().Get("Cache-Control"))

			resp := decodeHealth(t, rec)
			assert.Equal(t, tt.expectedState, resp.Status)
			assert.Equal(t, "test-version", resp.Version)
			assert.Contains(t, resp.Checks, "store")
		})
	}
}

func TestHealthHandler_DoesNotLeakStoreError(t *testing.T) {
	h := &HealthHandler{Store: stubPinger{err: errors.New("postgres://u:secret@db failed")}}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.NotContains(t, rec.Body.String(), "secret")
}

/* ─── ReadyHandler / LiveHandler ─── */

func TestReadyHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name     string
		store    stubPinger
		nilStore bool
		want     int
	}{
		{"ready", stubPinger{}, false, http.StatusOK},
		{"store down", stubPinger{err: errors.New("timeout")}, false, http.StatusServiceUnavailable},
		{"not configured", stubPinger{}, true, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &ReadyHandler{Store: tt.store}
			if tt.nilStore {
				h.Store = nil
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestLiveHandler_ServeHTTP(t *testing.T) {
	rec := httptest.NewRecorder()
	(&LiveHandler{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/live", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alive", rec.Body.String())
}
