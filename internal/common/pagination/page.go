package pagination

// CursorPage is the response envelope for cursor-paginated endpoints.
// No total count is provided: keyset pagination makes no guarantee about the
// size of the remaining result set.
type CursorPage[T any] struct {
	Results  []T     `json:"results"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
}

// OffsetPage is the response envelope for page-number-paginated endpoints.
type OffsetPage[T any] struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// NewCursorPage creates a cursor page envelope.
func NewCursorPage[T any](results []T, next, previous *string) CursorPage[T] {
	return CursorPage[T]{Results: results, Next: next, Previous: previous}
}

// NewOffsetPage creates an offset page envelope.
func NewOffsetPage[T any](results []T, count int64, next, previous *string) OffsetPage[T] {
	return OffsetPage[T]{Count: count, Next: next, Previous: previous, Results: results}
}
