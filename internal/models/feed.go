package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// FeedItem represents one cached post.
//
// An item in the cache always reflects either the last confirmed server
// state, or a server state overlaid with exactly the optimistic deltas of
// still-pending actions that target it.
type FeedItem struct {
	CreatedAt     time.Time `json:"created_at"`
	ID            string    `json:"id"`        // ID stable identifier; locally-created items carry a temporary local id until confirmed
	AuthorID      string    `json:"author_id"` // AuthorID weak reference to the author, looked up, never owned
	Content       string    `json:"content"`
	CommentTexts  []string  `json:"comment_texts,omitempty"`
	Likes         int       `json:"likes"`
	Comments      int       `json:"comments"`
	Revision      int64     `json:"revision"` // Revision server-assigned version used to detect staleness
	LikedByViewer bool      `json:"liked_by_viewer"`
}

// NewerThan reports whether the item carries a strictly newer server
// revision than other.
func (i *FeedItem) NewerThan(other *FeedItem) bool {
	return i.Revision > other.Revision
}

// Clone returns a deep copy of the item. Used for rollback snapshots so
// later mutations do not leak into the saved state.
func (i *FeedItem) Clone() *FeedItem {
	c := *i
	if i.CommentTexts != nil {
		c.CommentTexts = make([]string, len(i.CommentTexts))
		copy(c.CommentTexts, i.CommentTexts)
	}
	return &c
}

const localIDPrefix = "local-"

// NewLocalID generates a temporary identifier for an optimistically
// created item. The server assigns the real id on confirmation.
func NewLocalID() string {
	return localIDPrefix + uuid.New().String()
}

// IsLocalID reports whether id is a client-generated temporary id.
func IsLocalID(id string) bool {
	return strings.HasPrefix(id, localIDPrefix)
}
