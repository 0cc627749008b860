package pagination

// Response is a generic paginated response wrapper.
// T is the type of data items (e.g., GameRecordDTO).
//
// Example usage:
//
//	response := pagination.NewResponse(dtos, page.Metadata())
//	// response is of type pagination.Response[GameRecordDTO]
type Response[T any] struct {
	Data       []T      `json:"data"`       // Array of data items for the current page
	Pagination Metadata `json:"pagination"` // Cursor tokens and page size
}

// NewResponse creates a new paginated response with data and metadata.
// A nil data slice is rendered as an empty JSON array.
func NewResponse[T any](data []T, metadata Metadata) Response[T] {
	if data == nil {
		data = make([]T, 0)
	}
	return Response[T]{
		Data:       data,
		Pagination: metadata,
	}
}
