package pagination

import (
	"encoding/base64"
	"encoding/json"
	"errors"
)

// ErrInvalidCursor is returned when a cursor token cannot be decoded.
var ErrInvalidCursor = errors.New("invalid cursor")

// Cursor is the decoded form of an opaque continuation token for keyset
// pagination over the created_at DESC, id DESC ordering.
//
// The token encodes the last-seen ordering-key value (created_at with
// microsecond precision plus the surrogate id as tiebreaker) and a direction
// flag, which is enough to resume deterministically even when records are
// inserted or deleted between requests.
type Cursor struct {
	CreatedAtMicro int64 `json:"c"`
	ID             int64 `json:"i"`
	// Reverse marks a "previous page" cursor: rows after the position in
	// ascending order, re-reversed for display.
	Reverse bool `json:"r,omitempty"`
}

// Encode serializes the cursor into an opaque URL-safe token.
func (c Cursor) Encode() string {
	raw, _ := json.Marshal(c)
	return base64.RawURLEncoding.EncodeToString(raw)
}

// DecodeCursor parses an opaque token produced by Encode.
// Returns ErrInvalidCursor for malformed input.
func DecodeCursor(token string) (Cursor, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, ErrInvalidCursor
	}
	var c Cursor
	if err := json.Unmarshal(raw, &c); err != nil {
		return Cursor{}, ErrInvalidCursor
	}
	return c, nil
}
