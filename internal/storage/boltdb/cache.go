package boltdb

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"go.etcd.io/bbolt"

	"github.com/iudanet/feedsync/internal/models"
	"github.com/iudanet/feedsync/internal/storage"
)

// Put stores or fully overwrites a feed item.
func (s *Storage) Put(ctx context.Context, item *models.FeedItem) error {
	if item == nil || item.ID == "" {
		return fmt.Errorf("feed item must have an id")
	}

	s.mu.Lock()
	s.items.Add(item.ID, item.Clone())
	persist := s.available()
	s.mu.Unlock()

	if !persist {
		return nil
	}

	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("failed to marshal feed item: %w", err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketFeed).Put([]byte(item.ID), data)
	})
	if err != nil {
		s.mu.Lock()
		s.degrade("put", err)
		s.mu.Unlock()
	}
	return nil
}

// Get retrieves a feed item by id.
func (s *Storage) Get(ctx context.Context, id string) (*models.FeedItem, error) {
	s.mu.RLock()
	if item, ok := s.items.Get(id); ok {
		defer s.mu.RUnlock()
		return item.Clone(), nil
	}
	persist := s.available()
	s.mu.RUnlock()

	if !persist {
		return nil, storage.ErrItemNotFound
	}

	var item *models.FeedItem
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketFeed).Get([]byte(id))
		if data == nil {
			return storage.ErrItemNotFound
		}
		item = &models.FeedItem{}
		if err := json.Unmarshal(data, item); err != nil {
			return fmt.Errorf("failed to unmarshal feed item: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Warm the in-memory mirror for the next read.
	s.mu.Lock()
	s.items.Add(id, item.Clone())
	s.mu.Unlock()

	return item, nil
}

// List returns all cached items, newest first.
func (s *Storage) List(ctx context.Context) ([]*models.FeedItem, error) {
	var items []*models.FeedItem

	s.mu.RLock()
	persist := s.available()
	if !persist {
		for _, id := range s.items.Keys() {
			if item, ok := s.items.Peek(id); ok {
				items = append(items, item.Clone())
			}
		}
	}
	s.mu.RUnlock()

	if persist {
		err := s.db.View(func(tx *bbolt.Tx) error {
			return tx.Bucket(bucketFeed).ForEach(func(k, v []byte) error {
				var item models.FeedItem
				if err := json.Unmarshal(v, &item); err != nil {
					return fmt.Errorf("failed to unmarshal feed item: %w", err)
				}
				items = append(items, &item)
				return nil
			})
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list feed items: %w", err)
		}
	}

	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].ID > items[j].ID
	})

	return items, nil
}

// Remove deletes a feed item. No error if absent.
func (s *Storage) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	s.items.Remove(id)
	persist := s.available()
	s.mu.Unlock()

	if !persist {
		return nil
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketFeed).Delete([]byte(id))
	})
	if err != nil {
		s.mu.Lock()
		s.degrade("remove", err)
		s.mu.Unlock()
	}
	return nil
}
