package pagination

// Request describes the page being assembled.
type Request struct {
	PlayerID  string
	Count     int
	Direction Direction
	// Resumed is true when the page was reached through a cursor. A resumed page
	// always has data on the side it came from, so it offers a cursor back.
	Resumed bool
}

// FirstPage returns the request for the newest page of a player's history.
func FirstPage(playerID string, count int) Request {
	return Request{PlayerID: playerID, Count: count, Direction: DirectionNext}
}

// FromCursor returns the request a decoded cursor resumes.
func FromCursor(c Cursor) Request {
	return Request{PlayerID: c.PlayerID, Count: c.Count, Direction: c.Direction, Resumed: true}
}

// CursorPage is one page of results plus the tokens to leave it.
// Items are always ordered newest first.
type CursorPage[T any] struct {
	Items    []T
	Next     string
	Previous string
	Limit    int
}

// Metadata converts the page cursors into response metadata.
func (p CursorPage[T]) Metadata() Metadata {
	return Metadata{
		Next:     p.Next,
		Previous: p.Previous,
		Limit:    p.Limit,
		HasNext:  p.Next != "",
		HasPrev:  p.Previous != "",
	}
}

// KeyFunc extracts the ordering key of an item.
type KeyFunc[T any] func(T) Pivot

// Assemble builds the caller-visible page from the raw rows of a count+1 query.
//
// The cursor in the direction of travel is emitted only when the extra look-ahead
// row proved more data exists. The opposite cursor is emitted for resumed pages.
// An empty page carries no cursors.
func Assemble[T any](rows []T, req Request, key KeyFunc[T]) CursorPage[T] {
	items, hasMore := Window(rows, req.Count, req.Direction)
	page := CursorPage[T]{Items: items, Limit: req.Count}
	if len(items) == 0 {
		return page
	}

	newest := key(items[0])
	oldest := key(items[len(items)-1])

	wantNext := req.Direction == DirectionNext && hasMore ||
		req.Direction == DirectionPrevious && req.Resumed
	wantPrev := req.Direction == DirectionPrevious && hasMore ||
		req.Direction == DirectionNext && req.Resumed

	if wantNext {
		page.Next = Encode(Cursor{
			Direction: DirectionNext,
			PlayerID:  req.PlayerID,
			Pivot:     oldest,
			Count:     req.Count,
		})
	}
	if wantPrev {
		page.Previous = Encode(Cursor{
			Direction: DirectionPrevious,
			PlayerID:  req.PlayerID,
			Pivot:     newest,
			Count:     req.Count,
		})
	}
	return page
}
