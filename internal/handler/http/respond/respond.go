// Package respond provides utilities for sending HTTP responses in JSON format.
// It includes error handling with sanitization to prevent leaking sensitive information.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
)

// safeErrors are message fragments that mark an error as safe to show to clients.
var safeErrors = []string{
	"required",
	"invalid",
	"malformed",
	"not found",
	"already exists",
	"must be",
	"must not",
	"cannot be",
	"too long",
	"unauthorized",
	"forbidden",
	"rate limit",
}

// JSON writes a JSON response with the given status code and data.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// headers are already sent
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// Error writes a JSON error response with the given status code and error message.
func Error(w http.ResponseWriter, code int, err error) {
	JSON(w, code, map[string]string{"error": err.Error()})
}

// SafeError sanitizes error messages before returning them to users.
// Internal errors (e.g., store errors) are returned as "internal server error",
// with details logged for debugging. Validation errors are returned as-is.
// 5xx responses never carry the original message.
func SafeError(w http.ResponseWriter, code int, err error) {
	if err == nil {
		return
	}

	msg := err.Error()
	if code < 500 && isSafe(msg) {
		JSON(w, code, map[string]string{"error": msg})
		return
	}

	slog.Default().Error("request failed",
		slog.String("status", http.StatusText(code)),
		slog.Int("code", code),
		slog.String("error", SanitizeError(err)))

	public := "internal server error"
	if code != http.StatusInternalServerError && code >= 500 {
		public = strings.ToLower(http.StatusText(code))
	}
	JSON(w, code, map[string]string{"error": public})
}

func isSafe(msg string) bool {
	lower := strings.ToLower(msg)
	for _, safe := range safeErrors {
		if strings.Contains(lower, safe) {
			return true
		}
	}
	return false
}
