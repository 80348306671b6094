package storage

import (
	"context"

	"github.com/iudanet/feedsync/internal/models"
)

//go:generate moq -out cachestore_mock.go . CacheStore

// CacheStore holds the last-known-good snapshot of feed items, keyed by
// item id. The sync coordinator is the sole writer; everything else only
// reads.
type CacheStore interface {
	// Put stores or fully overwrites an item. Idempotent upsert.
	Put(ctx context.Context, item *models.FeedItem) error

	// Get retrieves an item by id.
	// Returns ErrItemNotFound if the item doesn't exist.
	Get(ctx context.Context, id string) (*models.FeedItem, error)

	// List returns all cached items in recency order, newest first.
	List(ctx context.Context) ([]*models.FeedItem, error)

	// Remove deletes an item. No error if absent.
	Remove(ctx context.Context, id string) error

	// Available reports whether the persistent medium is usable. When it
	// is not, all operations degrade to in-memory behavior for the
	// session instead of failing.
	Available() bool
}
