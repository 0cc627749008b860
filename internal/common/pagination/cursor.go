package pagination

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"
)

// MaxTokenLength caps the size of an encoded cursor accepted by Decode.
const MaxTokenLength = 2048

// Direction tells a cursor which way to walk from its pivot.
type Direction string

const (
	// DirectionNext walks towards older records.
	DirectionNext Direction = "next"
	// DirectionPrevious walks towards newer records.
	DirectionPrevious Direction = "previous"
)

// IsValid reports whether d is a known direction.
func (d Direction) IsValid() bool {
	return d == DirectionNext || d == DirectionPrevious
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	if d == DirectionNext {
		return DirectionPrevious
	}
	return DirectionNext
}

// Pivot is the boundary record a cursor resumes from.
// Records sharing the same timestamp are ordered by ID.
type Pivot struct {
	Time time.Time
	ID   string
}

// Cursor is the resumption state of a paginated player query.
// A cursor is only meaningful for the player it was issued for.
type Cursor struct {
	Direction Direction
	PlayerID  string
	Pivot     Pivot
	Count     int
}

// cursorWire is the serialized form. Pointer fields let Decode tell a
// missing field apart from a zero value.
type cursorWire struct {
	Direction *string `json:"d"`
	PlayerID  *string `json:"p"`
	PivotTime *string `json:"t"`
	PivotID   *string `json:"i"`
	Count     *int    `json:"c"`
}

// Encode serializes the cursor into an opaque, URL-safe token.
func Encode(c Cursor) string {
	dir := string(c.Direction)
	ts := c.Pivot.Time.UTC().Format(time.RFC3339Nano)
	w := cursorWire{
		Direction: &dir,
		PlayerID:  &c.PlayerID,
		PivotTime: &ts,
		PivotID:   &c.Pivot.ID,
		Count:     &c.Count,
	}
	// strings and ints always marshal
	b, _ := json.Marshal(w)
	return base64.RawURLEncoding.EncodeToString(b)
}

// Decode parses a token produced by Encode.
// Any failure is reported as ErrMalformedCursor; Decode never panics on hostile input.
// The decoded count is not range-checked here.
func Decode(token string) (Cursor, error) {
	if token == "" {
		return Cursor{}, fmt.Errorf("%w: empty token", ErrMalformedCursor)
	}
	if len(token) > MaxTokenLength {
		return Cursor{}, fmt.Errorf("%w: token exceeds %d bytes", ErrMalformedCursor, MaxTokenLength)
	}

	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, fmt.Errorf("%w: %v", ErrMalformedCursor, err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()

	var w cursorWire
	if err := dec.Decode(&w); err != nil {
		return Cursor{}, fmt.Errorf("%w: %v", ErrMalformedCursor, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return Cursor{}, fmt.Errorf("%w: trailing data", ErrMalformedCursor)
	}

	return w.toCursor()
}

func (w cursorWire) toCursor() (Cursor, error) {
	switch {
	case w.Direction == nil:
		return Cursor{}, missingField("direction")
	case w.PlayerID == nil || *w.PlayerID == "":
		return Cursor{}, missingField("player")
	case w.PivotTime == nil:
		return Cursor{}, missingField("pivot time")
	case w.PivotID == nil || *w.PivotID == "":
		return Cursor{}, missingField("pivot id")
	case w.Count == nil:
		return Cursor{}, missingField("count")
	}

	dir := Direction(*w.Direction)
	if !dir.IsValid() {
		return Cursor{}, fmt.Errorf("%w: unknown direction %q", ErrMalformedCursor, *w.Direction)
	}

	ts, err := time.Parse(time.RFC3339Nano, *w.PivotTime)
	if err != nil {
		return Cursor{}, fmt.Errorf("%w: pivot time: %v", ErrMalformedCursor, err)
	}
	ts = ts.UTC()
	if y := ts.Year(); y < 1 || y > 9999 {
		return Cursor{}, fmt.Errorf("%w: pivot time out of range", ErrMalformedCursor)
	}

	return Cursor{
		Direction: dir,
		PlayerID:  *w.PlayerID,
		Pivot:     Pivot{Time: ts, ID: *w.PivotID},
		Count:     *w.Count,
	}, nil
}

func missingField(name string) error {
	return fmt.Errorf("%w: missing %s", ErrMalformedCursor, name)
}
