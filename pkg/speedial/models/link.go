package models

import (
	"strconv"
	"time"
)

// DefaultCategory is assigned when a link is created or updated without one.
const DefaultCategory = "General"

// Link represents a single speed-dial bookmark. The JSON field names match
// the persisted data file, so the same struct is used on the wire and on disk.
type Link struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	Category  string `json:"category"`
	Username  string `json:"username"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// NewID returns a timestamp-derived identifier for a new link. Uniqueness
// within a process is good enough; a collision degrades to last-write-wins
// on update rather than corrupting the store.
func NewID(now time.Time) string {
	return strconv.FormatInt(now.UnixNano(), 10)
}

// Timestamp formats a creation/update time the way the data file stores it.
func Timestamp(now time.Time) string {
	return now.UTC().Format(time.RFC3339)
}
