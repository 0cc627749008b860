package gamehistory

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"game-history/internal/domain/entity"
	"game-history/internal/handler/http/auth"
	"game-history/internal/handler/http/respond"
	"game-history/internal/observability/logging"
	histUC "game-history/internal/usecase/gamehistory"

	"github.com/google/uuid"
)

// Recorder stores finished games.
type Recorder interface {
	RecordGame(ctx context.Context, in histUC.RecordInput) (*entity.GameRecord, error)
}

// RecordHandler handles POST /games.
type RecordHandler struct {
	Svc    Recorder
	Logger *slog.Logger

	// NewID and Now default to uuid.NewString and time.Now.
	NewID func() string
	Now   func() time.Time
}

// ServeHTTP records a finished game.
// @Summary      対戦結果の記録
// @Description  終了した対戦を1件記録します。id と created_at は省略時にサーバ側で採番されます。
// @Tags         games
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        game body RecordRequest true "対戦結果"
// @Success      201 {object} DTO "記録された対戦"
// @Failure      400 {string} string "Bad request - invalid input"
// @Failure      401 {string} string "Authentication required"
// @Failure      403 {string} string "Forbidden - recorder role required"
// @Failure      409 {string} string "Duplicate game id"
// @Failure      503 {string} string "Record store unavailable"
// @Router       /games [post]
func (h RecordHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.WithRequestID(ctx, loggerOrDefault(h.Logger))

	var req RecordRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respond.SafeError(w, http.StatusRequestEntityTooLarge, errors.New("request body must not exceed limit"))
			return
		}
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid JSON body"))
		return
	}

	in := histUC.RecordInput{
		ID:          req.ID,
		Players:     req.players(),
		WinningTeam: req.WinningTeam,
		GameData:    req.GameData,
	}
	if in.ID == "" {
		in.ID = h.newID()
	}
	if req.CreatedAt != nil {
		in.CreatedAt = *req.CreatedAt
	} else {
		in.CreatedAt = h.now()
	}

	record, err := h.Svc.RecordGame(ctx, in)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		status, errType := errorStatus(err)
		if status >= 500 {
			logger.Error("Failed to record game", "game_id", in.ID, "error", err.Error(), "error_type", errType)
		}
		if status == http.StatusServiceUnavailable {
			w.Header().Set("Retry-After", retryAfterSeconds)
		}
		respond.SafeError(w, status, err)
		return
	}

	user, _ := auth.UserFromContext(ctx)
	logger.Info("Game recorded",
		"game_id", record.ID,
		"players", len(record.Players),
		"recorded_by", user)

	respond.JSON(w, http.StatusCreated, toDTO(record))
}

func (h RecordHandler) newID() string {
	if h.NewID != nil {
		return h.NewID()
	}
	return uuid.NewString()
}

func (h RecordHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}
