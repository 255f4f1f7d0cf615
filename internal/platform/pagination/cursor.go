// Package pagination implements opaque cursors and RFC 8288 Link headers
// over in-memory lists.
package pagination

import (
	"encoding/base64"
	"errors"
	"strings"
)

// Cursor errors.
var (
	ErrInvalidCursor = errors.New("invalid cursor format")
	ErrCursorKind    = errors.New("cursor kind mismatch")
	ErrUnknownCursor = errors.New("cursor references unknown entry")
)

// Cursor points just after the entry whose key is After. An empty After
// points at the start.
type Cursor struct {
	Kind  string
	After string
}

// Encode returns the URL-safe opaque form.
func (c Cursor) Encode() string {
	return base64.RawURLEncoding.EncodeToString([]byte(c.Kind + ":" + c.After))
}

// DecodeCursor parses Encode's output. The empty string is the zero cursor.
func DecodeCursor(s string) (Cursor, error) {
	if s == "" {
		return Cursor{}, nil
	}
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return Cursor{}, ErrInvalidCursor
	}
	kind, after, ok := strings.Cut(string(b), ":")
	if !ok {
		return Cursor{}, ErrInvalidCursor
	}
	return Cursor{Kind: kind, After: after}, nil
}
