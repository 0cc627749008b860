// Package entity defines the core domain entities and validation logic for the application.
// It contains the game history record, the players that took part in a game, and the
// domain-specific errors returned when a record fails validation.
package entity

import "time"

// GamePlayer is one participant of a recorded game.
type GamePlayer struct {
	ID   string `json:"id" bson:"id"`
	Team string `json:"team" bson:"team"`
}

// GameData is the schema-free payload attached to a record.
// It is stored and returned without interpretation.
type GameData map[string]any

// GameRecord represents one completed game.
// Records are written once at game completion and never mutated afterwards.
type GameRecord struct {
	ID          string
	Players     []GamePlayer
	CreatedAt   time.Time
	WinningTeam string
	GameData    GameData
}

// HasPlayer reports whether the given player took part in the game.
func (r *GameRecord) HasPlayer(playerID string) bool {
	for _, p := range r.Players {
		if p.ID == playerID {
			return true
		}
	}
	return false
}

// PlayerIDs returns the identifiers of all participants in recorded order.
func (r *GameRecord) PlayerIDs() []string {
	ids := make([]string, 0, len(r.Players))
	for _, p := range r.Players {
		ids = append(ids, p.ID)
	}
	return ids
}
