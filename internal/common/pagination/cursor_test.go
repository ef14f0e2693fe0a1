package pagination_test

import (
	"errors"
	"testing"

	"storyfeed/internal/common/pagination"
)

func TestCursorRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		cursor pagination.Cursor
	}{
		{
			name:   "forward cursor",
			cursor: pagination.Cursor{CreatedAtMicro: 1735689600000000, ID: 42},
		},
		{
			name:   "reverse cursor",
			cursor: pagination.Cursor{CreatedAtMicro: 1735689600000000, ID: 42, Reverse: true},
		},
		{
			name:   "zero values",
			cursor: pagination.Cursor{},
		},
		{
			name:   "negative timestamp",
			cursor: pagination.Cursor{CreatedAtMicro: -1, ID: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := tt.cursor.Encode()
			got, err := pagination.DecodeCursor(token)
			if err != nil {
				t.Fatalf("DecodeCursor() error = %v", err)
			}
			if got != tt.cursor {
				t.Errorf("DecodeCursor() = %+v, want %+v", got, tt.cursor)
			}
		})
	}
}

func TestDecodeCursor_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		token string
	}{
		{name: "not base64", token: "!!!not-base64!!!"},
		{name: "base64 but not JSON", token: "bm90LWpzb24"},
		{name: "standard encoding with padding", token: "eyJjIjoxfQ=="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := pagination.DecodeCursor(tt.token)
			if !errors.Is(err, pagination.ErrInvalidCursor) {
				t.Errorf("DecodeCursor(%q) error = %v, want ErrInvalidCursor", tt.token, err)
			}
		})
	}
}

func TestCursorTokenIsURLSafe(t *testing.T) {
	t.Parallel()

	cursor := pagination.Cursor{CreatedAtMicro: 1735689600123456, ID: 999, Reverse: true}
	token := cursor.Encode()

	for _, r := range token {
		if r == '+' || r == '/' || r == '=' {
			t.Errorf("token %q contains URL-unsafe character %q", token, r)
		}
	}
}

func BenchmarkCursorEncode(b *testing.B) {
	cursor := pagination.Cursor{CreatedAtMicro: 1735689600000000, ID: 42}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = cursor.Encode()
	}
}
