package pagination

// Metadata contains cursor pagination metadata included in API responses.
type Metadata struct {
	Next     string `json:"next,omitempty"`     // Token for the next (older) page
	Previous string `json:"previous,omitempty"` // Token for the previous (newer) page
	Limit    int    `json:"limit"`              // Items per page
	HasNext  bool   `json:"has_next"`
	HasPrev  bool   `json:"has_previous"`
}
