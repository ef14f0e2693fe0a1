package pagination

import (
	"errors"
	"net/url"
	"strconv"
)

// ErrPageOutOfRange is returned when a requested page number lies beyond the
// last page of a non-empty result set. Page 1 of an empty set is valid.
var ErrPageOutOfRange = errors.New("invalid page: not found")

// Strategy names used in logs and metrics.
const (
	StrategyCursor = "cursor"
	StrategyOffset = "offset"
)

// OffsetStrategy implements page-number pagination with a total count.
// Paging state is entirely client-held (the page number); subject to skew
// under concurrent writes, which is accepted for this strategy.
type OffsetStrategy struct {
	Config Config
}

// Offset returns the database OFFSET for the requested page.
func (s OffsetStrategy) Offset(params PageParams) int {
	return CalculateOffset(params.Page, params.PageSize)
}

// Validate rejects page numbers beyond the last available page.
// Out-of-range pages are reported, not silently clamped.
func (s OffsetStrategy) Validate(params PageParams, total int64) error {
	if params.Page > CalculateTotalPages(total, params.PageSize) {
		return ErrPageOutOfRange
	}
	return nil
}

// Nav builds the next/previous links for the current page, null at the
// boundaries. Links are relative URLs preserving all other query parameters.
func (s OffsetStrategy) Nav(requestURL *url.URL, params PageParams, total int64) (next, previous *string) {
	totalPages := CalculateTotalPages(total, params.PageSize)
	if params.Page < totalPages {
		next = pageLink(requestURL, params.Page+1)
	}
	if params.Page > 1 {
		previous = pageLink(requestURL, params.Page-1)
	}
	return next, previous
}

// CursorStrategy implements keyset pagination over the created_at DESC,
// id DESC ordering. The continuation token encodes the boundary ordering-key
// value, so the cursor is immune to skew from inserts and deletes before it.
// No total count is provided.
type CursorStrategy struct {
	Config Config
}

// Edge identifies the ordering key of a row at a page boundary, in display
// order (first = newest on the page, last = oldest).
type Edge struct {
	CreatedAtMicro int64
	ID             int64
}

// Nav builds the next/previous links from the fetched window.
//
// hasMore reports whether the repository returned one row beyond the page
// size in fetch order: past the oldest row when paging forward, past the
// newest row when serving a reverse (previous-page) cursor. first and last
// are nil for an empty page.
func (s CursorStrategy) Nav(requestURL *url.URL, cursor *Cursor, hasMore bool, first, last *Edge) (next, previous *string) {
	reverse := cursor != nil && cursor.Reverse

	if first == nil || last == nil {
		// Nothing on this page. The cursor position itself still marks a
		// valid boundary to navigate back across.
		if cursor == nil {
			return nil, nil
		}
		back := Cursor{CreatedAtMicro: cursor.CreatedAtMicro, ID: cursor.ID, Reverse: !cursor.Reverse}
		if reverse {
			return cursorLink(requestURL, back.Encode()), nil
		}
		return nil, cursorLink(requestURL, back.Encode())
	}

	if reverse {
		// The page we navigated back from always exists below this one.
		next = cursorLink(requestURL, Cursor{CreatedAtMicro: last.CreatedAtMicro, ID: last.ID}.Encode())
		if hasMore {
			previous = cursorLink(requestURL, Cursor{CreatedAtMicro: first.CreatedAtMicro, ID: first.ID, Reverse: true}.Encode())
		}
		return next, previous
	}

	if hasMore {
		next = cursorLink(requestURL, Cursor{CreatedAtMicro: last.CreatedAtMicro, ID: last.ID}.Encode())
	}
	if cursor != nil {
		previous = cursorLink(requestURL, Cursor{CreatedAtMicro: first.CreatedAtMicro, ID: first.ID, Reverse: true}.Encode())
	}
	return next, previous
}

// pageLink returns a relative URL for the given page, preserving all other
// query parameters. Page 1 omits the page parameter.
func pageLink(requestURL *url.URL, page int) *string {
	q := requestURL.Query()
	if page <= 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(page))
	}
	link := requestURL.Path + "?" + q.Encode()
	return &link
}

// cursorLink returns a relative URL carrying the given cursor token.
func cursorLink(requestURL *url.URL, token string) *string {
	q := requestURL.Query()
	q.Set("cursor", token)
	link := requestURL.Path + "?" + q.Encode()
	return &link
}
