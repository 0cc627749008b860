package pagination

// Window trims a look-ahead result set to the visible page.
//
// rows must be ordered nearest-to-pivot first, which is how the store returns them
// for a query of limit count+1: newest first when walking DirectionNext, oldest first
// when walking DirectionPrevious. The extra look-ahead row, if present, is the one
// furthest from the pivot and is dropped before the page is put in newest-first order.
//
// hasMore reports whether the store returned more than count rows.
// The input slice is never modified.
func Window[T any](rows []T, count int, dir Direction) (page []T, hasMore bool) {
	if count < 0 {
		count = 0
	}
	n := len(rows)
	if n > count {
		n = count
		hasMore = true
	}

	page = make([]T, n)
	if dir == DirectionPrevious {
		for i := 0; i < n; i++ {
			page[i] = rows[n-1-i]
		}
		return page, hasMore
	}
	copy(page, rows[:n])
	return page, hasMore
}
