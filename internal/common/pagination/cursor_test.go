package pagination_test

import (
	"encoding/base64"
	"errors"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"game-history/internal/common/pagination"
)

func encodeJSON(s string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(s))
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	t.Parallel()

	cursors := []pagination.Cursor{
		{
			Direction: pagination.DirectionNext,
			PlayerID:  "player-1",
			Pivot:     pagination.Pivot{Time: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC), ID: "g1"},
			Count:     10,
		},
		{
			Direction: pagination.DirectionPrevious,
			PlayerID:  "プレイヤー",
			Pivot:     pagination.Pivot{Time: time.Date(2024, 12, 31, 23, 59, 59, 123456789, time.UTC), ID: "g/2?x=1"},
			Count:     1,
		},
		{
			Direction: pagination.DirectionNext,
			PlayerID:  `quote"and\backslash`,
			Pivot:     pagination.Pivot{Time: time.Unix(0, 1).UTC(), ID: "0"},
			Count:     0,
		},
		{
			Direction: pagination.DirectionPrevious,
			PlayerID:  "p",
			Pivot:     pagination.Pivot{Time: time.Date(1999, 6, 1, 0, 0, 0, 1, time.UTC), ID: "x"},
			Count:     -3,
		},
	}

	for _, c := range cursors {
		t.Run(string(c.Direction)+"/"+c.PlayerID, func(t *testing.T) {
			token := pagination.Encode(c)
			got, err := pagination.Decode(token)
			require.NoError(t, err)
			assert.Equal(t, c, got)
			assert.True(t, c.Pivot.Time.Equal(got.Pivot.Time))
		})
	}
}

func TestEncode_IsURLSafe(t *testing.T) {
	t.Parallel()

	token := pagination.Encode(pagination.Cursor{
		Direction: pagination.DirectionNext,
		PlayerID:  "???>>>~~~",
		Pivot:     pagination.Pivot{Time: time.Now().UTC(), ID: "id"},
		Count:     5,
	})

	assert.NotContains(t, token, "+")
	assert.NotContains(t, token, "/")
	assert.NotContains(t, token, "=")
	assert.NotContains(t, token, "player")
}

func TestEncode_NormalizesToUTC(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("JST", 9*60*60)
	pivot := time.Date(2025, 5, 5, 9, 0, 0, 500, loc)

	got, err := pagination.Decode(pagination.Encode(pagination.Cursor{
		Direction: pagination.DirectionNext,
		PlayerID:  "p",
		Pivot:     pagination.Pivot{Time: pivot, ID: "g"},
		Count:     3,
	}))
	require.NoError(t, err)
	assert.True(t, pivot.Equal(got.Pivot.Time))
	assert.Equal(t, time.UTC, got.Pivot.Time.Location())
}

func TestDecode_Malformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"not base64", "!!!not-base64!!!"},
		{"std base64 padding", base64.StdEncoding.EncodeToString([]byte(`{"d":"next"}`)) + "=="},
		{"not json", encodeJSON("hello world")},
		{"json array", encodeJSON(`[1,2,3]`)},
		{"json null", encodeJSON(`null`)},
		{"empty object", encodeJSON(`{}`)},
		{"missing direction", encodeJSON(`{"p":"a","t":"2025-01-01T00:00:00Z","i":"g","c":1}`)},
		{"missing player", encodeJSON(`{"d":"next","t":"2025-01-01T00:00:00Z","i":"g","c":1}`)},
		{"empty player", encodeJSON(`{"d":"next","p":"","t":"2025-01-01T00:00:00Z","i":"g","c":1}`)},
		{"missing time", encodeJSON(`{"d":"next","p":"a","i":"g","c":1}`)},
		{"missing pivot id", encodeJSON(`{"d":"next","p":"a","t":"2025-01-01T00:00:00Z","c":1}`)},
		{"missing count", encodeJSON(`{"d":"next","p":"a","t":"2025-01-01T00:00:00Z","i":"g"}`)},
		{"null count", encodeJSON(`{"d":"next","p":"a","t":"2025-01-01T00:00:00Z","i":"g","c":null}`)},
		{"string count", encodeJSON(`{"d":"next","p":"a","t":"2025-01-01T00:00:00Z","i":"g","c":"10"}`)},
		{"fractional count", encodeJSON(`{"d":"next","p":"a","t":"2025-01-01T00:00:00Z","i":"g","c":1.5}`)},
		{"overflowing count", encodeJSON(`{"d":"next","p":"a","t":"2025-01-01T00:00:00Z","i":"g","c":99999999999999999999999}`)},
		{"numeric player", encodeJSON(`{"d":"next","p":42,"t":"2025-01-01T00:00:00Z","i":"g","c":1}`)},
		{"unparseable time", encodeJSON(`{"d":"next","p":"a","t":"yesterday","i":"g","c":1}`)},
		{"numeric time", encodeJSON(`{"d":"next","p":"a","t":1700000000,"i":"g","c":1}`)},
		{"unknown direction", encodeJSON(`{"d":"sideways","p":"a","t":"2025-01-01T00:00:00Z","i":"g","c":1}`)},
		{"unknown field", encodeJSON(`{"d":"next","p":"a","t":"2025-01-01T00:00:00Z","i":"g","c":1,"x":true}`)},
		{"trailing data", encodeJSON(`{"d":"next","p":"a","t":"2025-01-01T00:00:00Z","i":"g","c":1}{}`)},
		{"too long", strings.Repeat("A", pagination.MaxTokenLength+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := pagination.Decode(tt.token)
			require.Error(t, err)
			assert.True(t, errors.Is(err, pagination.ErrMalformedCursor), "got %v", err)
		})
	}
}

func TestDecode_ArbitraryInputNeverPanics(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(42))
	valid := pagination.Encode(pagination.Cursor{
		Direction: pagination.DirectionNext,
		PlayerID:  "p",
		Pivot:     pagination.Pivot{Time: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), ID: "g"},
		Count:     10,
	})

	for i := 0; i < 2000; i++ {
		var token string
		if i%2 == 0 {
			b := make([]byte, rng.Intn(200))
			rng.Read(b)
			token = string(b)
		} else {
			// flip one character of a valid token
			b := []byte(valid)
			b[rng.Intn(len(b))] = byte(rng.Intn(256))
			token = string(b)
		}

		assert.NotPanics(t, func() {
			c, err := pagination.Decode(token)
			if err != nil {
				assert.ErrorIs(t, err, pagination.ErrMalformedCursor)
				return
			}
			assert.True(t, c.Direction.IsValid())
		})
	}
}

func FuzzDecode(f *testing.F) {
	f.Add("")
	f.Add(encodeJSON(`{"d":"next","p":"a","t":"2025-01-01T00:00:00Z","i":"g","c":1}`))
	f.Add(encodeJSON(`{"d":"previous"}`))

	f.Fuzz(func(t *testing.T, token string) {
		c, err := pagination.Decode(token)
		if err != nil {
			if !errors.Is(err, pagination.ErrMalformedCursor) {
				t.Fatalf("unexpected error type: %v", err)
			}
			return
		}
		again, err := pagination.Decode(pagination.Encode(c))
		if err != nil {
			t.Fatalf("re-decode failed: %v", err)
		}
		if again != c {
			t.Fatalf("round trip mismatch: %+v != %+v", again, c)
		}
	})
}

func TestDirection(t *testing.T) {
	t.Parallel()

	assert.True(t, pagination.DirectionNext.IsValid())
	assert.True(t, pagination.DirectionPrevious.IsValid())
	assert.False(t, pagination.Direction("").IsValid())
	assert.False(t, pagination.Direction("NEXT").IsValid())

	assert.Equal(t, pagination.DirectionPrevious, pagination.DirectionNext.Opposite())
	assert.Equal(t, pagination.DirectionNext, pagination.DirectionPrevious.Opposite())
}
