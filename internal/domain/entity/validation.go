package entity

import (
	"fmt"
	"math"
	"time"
	"unicode/utf8"
)

const (
	// maxIDLength bounds record and player identifiers.
	maxIDLength = 256

	// maxPlayers bounds the participant list of a single game.
	maxPlayers = 1024
)

// CreatedAt must fit in an int64 Unix nanosecond count.
var (
	minCreatedAt = time.Unix(0, math.MinInt64).UTC()
	maxCreatedAt = time.Unix(0, math.MaxInt64).UTC()
)

// Validate checks that the record can be stored.
// It returns a ValidationError naming the first offending field.
func (r *GameRecord) Validate() error {
	if err := validateID("id", r.ID); err != nil {
		return err
	}
	if len(r.Players) == 0 {
		return &ValidationError{Field: "players", Message: "at least one player is required"}
	}
	if len(r.Players) > maxPlayers {
		return &ValidationError{
			Field:   "players",
			Message: fmt.Sprintf("must not exceed %d entries", maxPlayers),
		}
	}
	for i, p := range r.Players {
		if err := validateID(fmt.Sprintf("players[%d].id", i), p.ID); err != nil {
			return err
		}
	}
	if r.CreatedAt.IsZero() {
		return &ValidationError{Field: "createdAt", Message: "is required"}
	}
	if r.CreatedAt.Before(minCreatedAt) || r.CreatedAt.After(maxCreatedAt) {
		msg := fmt.Sprintf("must be between %s and %s",
			minCreatedAt.Format(time.RFC3339), maxCreatedAt.Format(time.RFC3339))
		return &ValidationError{Field: "createdAt", Message: msg}
	}
	return nil
}

func validateID(field, id string) error {
	if id == "" {
		return &ValidationError{Field: field, Message: "is required"}
	}
	if len(id) > maxIDLength {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must not exceed %d bytes", maxIDLength),
		}
	}
	if !utf8.ValidString(id) {
		return &ValidationError{Field: field, Message: "must be valid UTF-8"}
	}
	return nil
}
