// Package pagination implements the opaque cursor scheme used by the product
// catalog listing: pages are keyed on (created_at, id) so newly created rows
// never shift an open cursor.
package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultLimit is the page size when the caller does not send a limit.
	DefaultLimit = 25
	// MaxLimit caps how many rows a single listing request can pull.
	MaxLimit = 100
)

// Params carries the listing inputs from the HTTP layer. Cursor is the raw
// query-string value, still encoded.
type Params struct {
	Limit  int
	Cursor string
}

// Cursor is the decoded page position: the created_at and id of the last row
// the previous page returned.
type Cursor struct {
	CreatedAt time.Time
	ID        uuid.UUID
}

// NormalizeLimit clamps the requested limit into [1, MaxLimit], substituting
// DefaultLimit when unset.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// LimitWithBuffer adds one row to the normalized limit; the extra row signals
// that another page exists without a second count query.
func LimitWithBuffer(limit int) int {
	return NormalizeLimit(limit) + 1
}

// EncodeCursor serializes a row position into the opaque string handed to
// clients.
func EncodeCursor(cursor Cursor) string {
	payload := fmt.Sprintf("%s|%s", cursor.CreatedAt.UTC().Format(time.RFC3339Nano), cursor.ID.String())
	return base64.StdEncoding.EncodeToString([]byte(payload))
}

// ParseCursor decodes a client-supplied cursor. An empty value means "first
// page" and yields a nil cursor with no error.
func ParseCursor(value string) (*Cursor, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}

	decoded, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("decode cursor: %w", err)
	}
	rawTime, rawID, found := strings.Cut(string(decoded), "|")
	if !found {
		return nil, fmt.Errorf("invalid cursor format")
	}

	t, err := time.Parse(time.RFC3339Nano, rawTime)
	if err != nil {
		return nil, fmt.Errorf("invalid cursor timestamp: %w", err)
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("invalid cursor id: %w", err)
	}
	return &Cursor{
		CreatedAt: t,
		ID:        id,
	}, nil
}
