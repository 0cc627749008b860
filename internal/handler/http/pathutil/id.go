// Package pathutil extracts and normalizes URL path segments.
package pathutil

import (
	"errors"
	"net/http"
	"unicode"
)

// maxIDLength matches the identifier bound of stored records.
const maxIDLength = 256

// ErrInvalidID is returned when the ID in the URL path is invalid.
var ErrInvalidID = errors.New("invalid id")

// PathID returns the named path wildcard of a ServeMux route.
// Empty, oversized or control-character values are rejected with ErrInvalidID.
//
//	mux.HandleFunc("GET /players/{playerID}/games", h)
//	id, err := pathutil.PathID(r, "playerID")
func PathID(r *http.Request, name string) (string, error) {
	id := r.PathValue(name)
	if id == "" || len(id) > maxIDLength {
		return "", ErrInvalidID
	}
	for _, c := range id {
		if unicode.IsControl(c) {
			return "", ErrInvalidID
		}
	}
	return id, nil
}
