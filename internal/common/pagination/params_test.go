package pagination_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"game-history/internal/common/pagination"
)

func TestParseQueryParams(t *testing.T) {
	t.Parallel()

	config := pagination.Config{
		DefaultLimit: 20,
		MaxLimit:     100,
	}

	tests := []struct {
		name      string
		query     string
		want      pagination.Params
		wantError bool
	}{
		{
			name:  "no parameters (use defaults)",
			query: "",
			want:  pagination.Params{Limit: 20},
		},
		{
			name:  "valid limit",
			query: "limit=50",
			want:  pagination.Params{Limit: 50},
		},
		{
			name:  "limit at maximum",
			query: "limit=100",
			want:  pagination.Params{Limit: 100},
		},
		{
			name:  "cursor present",
			query: "cursor=abc",
			want:  pagination.Params{Limit: 20, Cursor: "abc"},
		},
		{
			name:  "cursor ignores limit",
			query: "cursor=abc&limit=notanumber",
			want:  pagination.Params{Limit: 20, Cursor: "abc"},
		},
		{
			name:      "zero limit",
			query:     "limit=0",
			wantError: true,
		},
		{
			name:      "negative limit",
			query:     "limit=-5",
			wantError: true,
		},
		{
			name:      "limit exceeds maximum",
			query:     "limit=101",
			wantError: true,
		},
		{
			name:      "non-numeric limit",
			query:     "limit=abc",
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/players/p1/games?"+tt.query, nil)
			got, err := pagination.ParseQueryParams(req, config)

			if tt.wantError {
				if err == nil {
					t.Fatalf("ParseQueryParams() expected error, got nil")
				}
				if !errors.Is(err, pagination.ErrInvalidCount) {
					t.Errorf("ParseQueryParams() error = %v, want ErrInvalidCount", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseQueryParams() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseQueryParams() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
