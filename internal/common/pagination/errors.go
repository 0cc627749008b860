package pagination

import "errors"

var (
	// ErrMalformedCursor indicates that a cursor token could not be decoded.
	// Tokens are client-supplied, so every decode failure maps to this error.
	ErrMalformedCursor = errors.New("invalid cursor: malformed token")

	// ErrInvalidCount indicates a non-positive or over-limit page size,
	// whether supplied directly or decoded from a cursor.
	ErrInvalidCount = errors.New("invalid page size")
)
