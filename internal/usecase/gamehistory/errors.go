// Package gamehistory provides the use cases for recording games and paging
// through a player's game history.
package gamehistory

import "errors"

// ErrStoreUnavailable indicates that the record store could not serve a request.
// The underlying store error stays in the chain, so errors.Is works for both.
var ErrStoreUnavailable = errors.New("record store unavailable")
