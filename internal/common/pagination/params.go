package pagination

import (
	"fmt"
	"net/http"
	"strconv"
)

// PageParams represents offset pagination parameters from an HTTP request.
type PageParams struct {
	Page     int // 1-based page number
	PageSize int // Items per page
}

// CursorParams represents cursor pagination parameters from an HTTP request.
type CursorParams struct {
	Cursor   *Cursor // nil means first page
	PageSize int     // Items per page
}

// ParsePageParams parses offset pagination parameters from the query string.
//
// Query parameters:
//   - page: Page number (must be a positive integer; invalid values are an error)
//   - page_size: Items per page; non-numeric or < 1 falls back to the default,
//     values above config.MaxPageSize are clamped to the ceiling.
//
// page_size is forgiving while page is strict: a garbage page number has no
// meaningful interpretation, a garbage page size does.
func ParsePageParams(r *http.Request, config Config) (PageParams, error) {
	params := PageParams{
		Page:     config.DefaultPage,
		PageSize: parsePageSize(r, config),
	}

	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 1 {
			return params, fmt.Errorf("invalid query parameter: page must be a positive integer")
		}
		params.Page = page
	}

	return params, nil
}

// ParseCursorParams parses cursor pagination parameters from the query string.
//
// Query parameters:
//   - cursor: Opaque continuation token; malformed tokens are an error.
//   - page_size: Same fallback and clamping rules as ParsePageParams.
func ParseCursorParams(r *http.Request, config Config) (CursorParams, error) {
	params := CursorParams{
		PageSize: parsePageSize(r, config),
	}

	if token := r.URL.Query().Get("cursor"); token != "" {
		cursor, err := DecodeCursor(token)
		if err != nil {
			return params, fmt.Errorf("invalid query parameter: %w", err)
		}
		params.Cursor = &cursor
	}

	return params, nil
}

// parsePageSize applies the fallback-then-clamp rules shared by both strategies.
func parsePageSize(r *http.Request, config Config) int {
	sizeStr := r.URL.Query().Get("page_size")
	if sizeStr == "" {
		return config.DefaultPageSize
	}
	size, err := strconv.Atoi(sizeStr)
	if err != nil || size < 1 {
		return config.DefaultPageSize
	}
	if size > config.MaxPageSize {
		return config.MaxPageSize
	}
	return size
}
