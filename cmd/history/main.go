// Package main provides a CLI command that pages through a player's game history.
// Usage: history -player ID [-limit N] [-cursor TOKEN] [-output json]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"game-history/internal/common/pagination"
	"game-history/internal/config"
	"game-history/internal/infra/store"
	"game-history/internal/observability/logging"
	histUC "game-history/internal/usecase/gamehistory"
)

// PageOutput represents the JSON output format for one page.
type PageOutput struct {
	Records  []RecordOutput `json:"records"`
	Next     string         `json:"next,omitempty"`
	Previous string         `json:"previous,omitempty"`
}

// RecordOutput represents a game record in the output.
type RecordOutput struct {
	ID          string    `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	WinningTeam string    `json:"winning_team,omitempty"`
	Players     []string  `json:"players"`
}

func main() {
	var (
		playerID     string
		limit        int
		cursor       string
		outputFormat string
	)
	flag.StringVar(&playerID, "player", "", "Player ID for the first page")
	flag.IntVar(&limit, "limit", 0, "Page size for the first page (default and cap from configuration)")
	flag.StringVar(&cursor, "cursor", "", "Resume from a cursor printed by a previous run")
	flag.StringVar(&outputFormat, "output", "text", "Output format: text or json")
	flag.Parse()

	if playerID == "" && cursor == "" {
		fmt.Fprintln(os.Stderr, "Error: -player or -cursor is required")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage: history -player ID [-limit N] [-cursor TOKEN] [-output json]")
		os.Exit(1)
	}

	_ = godotenv.Load()
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	logger := logging.NewLogger(os.Stderr, cfg.Log.Level, cfg.Log.Format)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	backend, closeStore, err := store.Open(ctx, logger, cfg.Store)
	if err != nil {
		logger.Error("failed to open record store", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "Error: Failed to open record store: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = closeStore(context.Background()) }()

	svc := &histUC.Service{
		Repo:         backend,
		Pagination:   cfg.Pagination,
		QueryTimeout: cfg.Store.QueryTimeout,
		Backend:      cfg.Store.Backend,
	}

	var page histUC.Page
	if cursor != "" {
		page, err = svc.GetPage(ctx, cursor)
	} else {
		params := pagination.Params{Limit: limit}.WithDefaults(cfg.Pagination)
		page, err = svc.GetFirstPage(ctx, playerID, params.Limit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	out := toOutput(page)
	if outputFormat == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}
	printText(out)
}

func toOutput(page histUC.Page) PageOutput {
	out := PageOutput{
		Records:  make([]RecordOutput, 0, len(page.Items)),
		Next:     page.Next,
		Previous: page.Previous,
	}
	for _, r := range page.Items {
		players := make([]string, 0, len(r.Players))
		for _, p := range r.Players {
			players = append(players, p.ID)
		}
		out.Records = append(out.Records, RecordOutput{
			ID:          r.ID,
			CreatedAt:   r.CreatedAt,
			WinningTeam: r.WinningTeam,
			Players:     players,
		})
	}
	return out
}

func printText(out PageOutput) {
	if len(out.Records) == 0 {
		fmt.Println("No games found.")
	}
	for _, r := range out.Records {
		fmt.Printf("%s  %s  winner=%s  players=%s\n",
			r.CreatedAt.Format(time.RFC3339), r.ID, r.WinningTeam, strings.Join(r.Players, ","))
	}
	if out.Previous != "" {
		fmt.Printf("\nnewer: -cursor %s\n", out.Previous)
	}
	if out.Next != "" {
		fmt.Printf("older: -cursor %s\n", out.Next)
	}
}
