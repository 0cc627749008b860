package gamehistory

import (
	"context"
	"errors"
	"net/http"

	"game-history/internal/common/pagination"
	"game-history/internal/domain/entity"
	"game-history/internal/handler/http/pathutil"
	histUC "game-history/internal/usecase/gamehistory"
)

// retryAfterSeconds is advertised when the record store is unavailable.
const retryAfterSeconds = "5"

// errorStatus maps a service error to an HTTP status and a metrics error type.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, pagination.ErrMalformedCursor):
		return http.StatusBadRequest, "cursor"
	case errors.Is(err, pagination.ErrInvalidCount),
		errors.Is(err, entity.ErrInvalidInput),
		errors.Is(err, pathutil.ErrInvalidID):
		return http.StatusBadRequest, "validation"
	case errors.Is(err, entity.ErrDuplicateRecord):
		return http.StatusConflict, "duplicate"
	case errors.Is(err, histUC.ErrStoreUnavailable),
		errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, "store"
	default:
		return http.StatusInternalServerError, "internal"
	}
}
