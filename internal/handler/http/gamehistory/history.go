package gamehistory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"game-history/internal/common/pagination"
	"game-history/internal/handler/http/pathutil"
	"game-history/internal/handler/http/requestid"
	"game-history/internal/handler/http/respond"
	"game-history/internal/observability/logging"
	histUC "game-history/internal/usecase/gamehistory"
)

// Pager reads a player's history one page at a time.
type Pager interface {
	GetFirstPage(ctx context.Context, playerID string, count int) (histUC.Page, error)
	GetPage(ctx context.Context, token string) (histUC.Page, error)
}

var errCursorRequired = errors.New("cursor is required")

// PlayerHistoryHandler handles GET /players/{playerID}/games.
// Without a cursor it returns the newest page; with one it resumes, provided
// the cursor was issued for the same player.
type PlayerHistoryHandler struct {
	Svc           Pager
	PaginationCfg pagination.Config
	Logger        *slog.Logger
}

// ServeHTTP プレイヤーの対戦履歴取得
// @Summary      プレイヤーの対戦履歴取得（カーソルページネーション）
// @Description  新しい順に対戦履歴を返します。レスポンスの next / previous をカーソルとして渡すと前後のページを取得できます。
// @Tags         games
// @Produce      json
// @Param        playerID path     string true  "プレイヤーID"
// @Param        limit    query    int    false "1ページあたりの件数" default(20) minimum(1) maximum(100)
// @Param        cursor   query    string false "前回レスポンスのカーソル"
// @Success      200 {object} pagination.Response[DTO] "対戦履歴"
// @Failure      400 {string} string "Invalid limit or cursor"
// @Failure      503 {string} string "Record store unavailable"
// @Router       /players/{playerID}/games [get]
func (h PlayerHistoryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()
	logger := logging.WithRequestID(ctx, loggerOrDefault(h.Logger))

	playerID, err := pathutil.PathID(r, "playerID")
	if err != nil {
		writeError(ctx, w, logger, pagination.Params{}, pagination.DirectionFirst, fmt.Errorf("playerID: %w", err))
		return
	}

	params, err := pagination.ParseQueryParams(r, h.PaginationCfg)
	if err != nil {
		writeError(ctx, w, logger, params, pagination.DirectionFirst, err)
		return
	}
	pagination.LogRequest(logger, requestid.FromContext(ctx), playerID, params)

	if params.Cursor == "" {
		page, err := h.Svc.GetFirstPage(ctx, playerID, params.Limit)
		if err != nil {
			writeError(ctx, w, logger, params, pagination.DirectionFirst, err)
			return
		}
		writePage(ctx, w, logger, page, pagination.DirectionFirst, start)
		return
	}

	cursor, err := pagination.Decode(params.Cursor)
	if err != nil {
		writeError(ctx, w, logger, params, pagination.DirectionFirst, err)
		return
	}
	if cursor.PlayerID != playerID {
		writeError(ctx, w, logger, params, string(cursor.Direction),
			fmt.Errorf("%w: issued for another player", pagination.ErrMalformedCursor))
		return
	}

	page, err := h.Svc.GetPage(ctx, params.Cursor)
	if err != nil {
		writeError(ctx, w, logger, params, string(cursor.Direction), err)
		return
	}
	writePage(ctx, w, logger, page, string(cursor.Direction), start)
}

// ResumeHandler handles GET /games/history?cursor=TOKEN.
// The cursor carries the player and page size, so no other parameter is read.
type ResumeHandler struct {
	Svc    Pager
	Logger *slog.Logger
}

// ServeHTTP カーソルからの対戦履歴取得
// @Summary      カーソルからの対戦履歴取得
// @Description  next / previous カーソルが指すページを返します。
// @Tags         games
// @Produce      json
// @Param        cursor query    string true "前回レスポンスのカーソル"
// @Success      200 {object} pagination.Response[DTO] "対戦履歴"
// @Failure      400 {string} string "Missing or invalid cursor"
// @Failure      503 {string} string "Record store unavailable"
// @Router       /games/history [get]
func (h ResumeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()
	logger := logging.WithRequestID(ctx, loggerOrDefault(h.Logger))

	params := pagination.Params{Cursor: r.URL.Query().Get("cursor")}
	if params.Cursor == "" {
		writeError(ctx, w, logger, params, pagination.DirectionFirst,
			fmt.Errorf("%w: %w", pagination.ErrMalformedCursor, errCursorRequired))
		return
	}

	direction := "unknown"
	if c, err := pagination.Decode(params.Cursor); err == nil {
		direction = string(c.Direction)
		params.Limit = c.Count
		pagination.LogRequest(logger, requestid.FromContext(ctx), c.PlayerID, params)
	}

	page, err := h.Svc.GetPage(ctx, params.Cursor)
	if err != nil {
		writeError(ctx, w, logger, params, direction, err)
		return
	}
	writePage(ctx, w, logger, page, direction, start)
}

func writePage(ctx context.Context, w http.ResponseWriter, logger *slog.Logger, page histUC.Page, direction string, start time.Time) {
	meta := page.Metadata()
	response := pagination.NewResponse(toDTOs(page.Items), meta)

	duration := time.Since(start)
	pagination.RecordRequest(http.StatusOK, direction)
	pagination.RecordDuration("handler", duration.Seconds())
	pagination.RecordPageSize(len(page.Items))
	pagination.LogResponse(logger, requestid.FromContext(ctx), meta, len(page.Items), duration, http.StatusOK)

	respond.JSON(w, http.StatusOK, response)
}

func writeError(ctx context.Context, w http.ResponseWriter, logger *slog.Logger, params pagination.Params, direction string, err error) {
	if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
		// client went away
		return
	}

	status, errType := errorStatus(err)
	pagination.RecordRequest(status, direction)
	pagination.RecordError(errType)
	if status >= 500 {
		pagination.LogError(logger, requestid.FromContext(ctx), params, err, errType)
	} else {
		logger.Warn("Invalid pagination request", "error", err.Error(), "error_type", errType)
	}

	if status == http.StatusServiceUnavailable {
		w.Header().Set("Retry-After", retryAfterSeconds)
	}
	respond.SafeError(w, status, err)
}

func loggerOrDefault(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}
