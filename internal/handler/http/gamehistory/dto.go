// Package gamehistory provides HTTP handlers for recording games and paging
// through a player's game history.
package gamehistory

import (
	"time"

	"game-history/internal/domain/entity"
)

// PlayerDTO is one participant of a game.
type PlayerDTO struct {
	ID   string `json:"id" example:"alice"`
	Team string `json:"team,omitempty" example:"red"`
}

// DTO represents the JSON structure of a recorded game.
type DTO struct {
	ID          string          `json:"id" example:"9f1c2d7e-5b1a-4f8e-9a53-2f4d1b6c0e11"`
	Players     []PlayerDTO     `json:"players"`
	CreatedAt   time.Time       `json:"created_at" example:"2025-10-26T12:00:00Z"`
	WinningTeam string          `json:"winning_team,omitempty" example:"red"`
	GameData    entity.GameData `json:"game_data,omitempty"`
}

// RecordRequest is the body of POST /games.
// ID and CreatedAt are optional; the server fills them in when absent.
type RecordRequest struct {
	ID          string          `json:"id"`
	Players     []PlayerDTO     `json:"players"`
	CreatedAt   *time.Time      `json:"created_at"`
	WinningTeam string          `json:"winning_team"`
	GameData    entity.GameData `json:"game_data"`
}

func toDTO(r *entity.GameRecord) DTO {
	players := make([]PlayerDTO, 0, len(r.Players))
	for _, p := range r.Players {
		players = append(players, PlayerDTO{ID: p.ID, Team: p.Team})
	}
	return DTO{
		ID:          r.ID,
		Players:     players,
		CreatedAt:   r.CreatedAt,
		WinningTeam: r.WinningTeam,
		GameData:    r.GameData,
	}
}

func toDTOs(records []*entity.GameRecord) []DTO {
	dtos := make([]DTO, 0, len(records))
	for _, r := range records {
		dtos = append(dtos, toDTO(r))
	}
	return dtos
}

func (req RecordRequest) players() []entity.GamePlayer {
	players := make([]entity.GamePlayer, 0, len(req.Players))
	for _, p := range req.Players {
		players = append(players, entity.GamePlayer{ID: p.ID, Team: p.Team})
	}
	return players
}
