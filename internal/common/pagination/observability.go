package pagination

import (
	"log/slog"
	"time"
)

// LogRequest logs a pagination request with structured fields.
// The cursor token itself is not logged, only whether one was supplied.
func LogRequest(logger *slog.Logger, requestID, playerID string, params Params) {
	logger.Info("Paginated request",
		"request_id", requestID,
		"player_id", playerID,
		"limit", params.Limit,
		"has_cursor", params.Cursor != "")
}

// LogResponse logs a pagination response with duration and status.
func LogResponse(logger *slog.Logger, requestID string, meta Metadata, returnedCount int, duration time.Duration, statusCode int) {
	logger.Info("Paginated response",
		"request_id", requestID,
		"limit", meta.Limit,
		"returned_count", returnedCount,
		"has_next", meta.HasNext,
		"has_previous", meta.HasPrev,
		"duration_ms", duration.Milliseconds(),
		"status", statusCode)
}

// LogError logs a pagination error with structured fields.
func LogError(logger *slog.Logger, requestID string, params Params, err error, errorType string) {
	logger.Error("Pagination error",
		"request_id", requestID,
		"limit", params.Limit,
		"has_cursor", params.Cursor != "",
		"error", err.Error(),
		"error_type", errorType)
}
