package gamehistory

import (
	"log/slog"
	"net/http"

	"game-history/internal/common/pagination"
	histUC "game-history/internal/usecase/gamehistory"
)

// Register registers the game history routes with the given mux.
// Authentication is applied by the caller around the whole mux.
func Register(mux *http.ServeMux, svc *histUC.Service, paginationCfg pagination.Config, logger *slog.Logger) {
	mux.Handle("POST /games", RecordHandler{Svc: svc, Logger: logger})
	mux.Handle("GET /players/{playerID}/games", PlayerHistoryHandler{
		Svc:           svc,
		PaginationCfg: paginationCfg,
		Logger:        logger,
	})
	mux.Handle("GET /games/history", ResumeHandler{Svc: svc, Logger: logger})
}
