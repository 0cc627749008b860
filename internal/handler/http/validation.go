package http

import (
	"net/http"
)

const (
	// maxAuthorizationHeader bounds the Authorization header. JWTs are well below 1KB.
	maxAuthorizationHeader = 8192
	// maxPathLength bounds the request path.
	maxPathLength = 2048
	// maxCursorParam bounds the raw cursor query parameter before decoding.
	maxCursorParam = 4096
)

// InputValidation returns middleware that validates and limits request inputs.
// It enforces limits on:
// - Authorization header size (8KB)
// - URI path length (2KB)
// - cursor query parameter length (4KB)
// - Request body size (maxBodyBytes)
func InputValidation(maxBodyBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(r.Header.Get("Authorization")) > maxAuthorizationHeader {
				writeJSONError(w, http.StatusBadRequest, "authorization header too large")
				return
			}

			if len(r.URL.Path) > maxPathLength {
				writeJSONError(w, http.StatusRequestURITooLong, "URI too long")
				return
			}

			if len(r.URL.Query().Get("cursor")) > maxCursorParam {
				writeJSONError(w, http.StatusRequestURITooLong, "cursor too long")
				return
			}

			if maxBodyBytes > 0 {
				r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeJSONError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write([]byte(`{"error":"` + msg + `"}`))
}
