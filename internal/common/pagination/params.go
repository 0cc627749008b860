package pagination

import (
	"fmt"
	"net/http"
	"strconv"
)

// Params represents cursor pagination query parameters from an HTTP request.
type Params struct {
	Limit  int    // Items per page, only used for the first page
	Cursor string // Opaque token, empty for the first page
}

// ParseQueryParams parses pagination parameters from HTTP request query string.
// Returns Params with defaults if parameters are missing.
//
// Query parameters:
//   - limit: Items per page (must be between 1 and config.MaxLimit)
//   - cursor: Token returned by a previous page
//
// A cursor carries its own page size, so limit is ignored when a cursor is present.
func ParseQueryParams(r *http.Request, config Config) (Params, error) {
	params := Params{
		Limit:  config.DefaultLimit,
		Cursor: r.URL.Query().Get("cursor"),
	}

	if params.Cursor != "" {
		return params, nil
	}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 || (config.MaxLimit > 0 && limit > config.MaxLimit) {
			return params, fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalidCount, config.MaxLimit)
		}
		params.Limit = limit
	}

	return params, nil
}
