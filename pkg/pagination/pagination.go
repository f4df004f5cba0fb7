// Package pagination provides page based offsets for the catalog and
// keyset cursors for history listings.
package pagination

import (
	"encoding/base64"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 12
	// MaxLimit caps how many rows any query can request.
	MaxLimit = 100
)

// Page is a 1-based page request.
type Page struct {
	Number int
	Limit  int
}

// ParsePage reads page/limit query values. Missing or invalid values fall
// back to page 1 and defaultLimit.
func ParsePage(page, limit string, defaultLimit int) Page {
	p := Page{Number: 1, Limit: defaultLimit}
	if n, err := strconv.Atoi(strings.TrimSpace(page)); err == nil && n > 0 {
		p.Number = n
	}
	if n, err := strconv.Atoi(strings.TrimSpace(limit)); err == nil && n > 0 {
		p.Limit = n
	}
	p.Limit = NormalizeLimit(p.Limit)
	return p
}

// Offset is the number of rows skipped before this page.
func (p Page) Offset() int {
	if p.Number < 1 {
		return 0
	}
	return (p.Number - 1) * p.Limit
}

// TotalPages returns ceil(total/limit).
func (p Page) TotalPages(total int64) int {
	if p.Limit <= 0 || total <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(p.Limit)))
}

// NormalizeLimit enforces the default and maximum limits.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// LimitWithBuffer returns the normalized limit plus one to detect the next page.
func LimitWithBuffer(limit int) int {
	return NormalizeLimit(limit) + 1
}

// Cursor is the keyset position of a (created_at, id) ordered listing.
type Cursor struct {
	CreatedAt time.Time
	ID        uuid.UUID
}

// EncodeCursor builds an opaque cursor string.
func EncodeCursor(cursor Cursor) string {
	payload := cursor.CreatedAt.UTC().Format(time.RFC3339Nano) + "|" + cursor.ID.String()
	return base64.RawURLEncoding.EncodeToString([]byte(payload))
}

// ParseCursor decodes the cursor string. An empty value yields nil.
func ParseCursor(value string) (*Cursor, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	decoded, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("decode cursor: %w", err)
	}
	createdAt, id, ok := strings.Cut(string(decoded), "|")
	if !ok {
		return nil, fmt.Errorf("invalid cursor format")
	}
	t, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("invalid cursor timestamp: %w", err)
	}
	parsedID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid cursor id: %w", err)
	}
	return &Cursor{CreatedAt: t, ID: parsedID}, nil
}
