// Package view is the read projection of the feed: items exactly as the
// sync coordinator has left them in the cache, plus display formatting.
// Optimistic-update visibility is implicit in cache content; there is no
// shadow state to merge.
package view

import (
	"context"
	"fmt"
	"io"
	"text/template"

	"github.com/iudanet/feedsync/internal/models"
	"github.com/iudanet/feedsync/internal/storage"
)

// Model reads the feed for display. It never mutates the cache; all
// mutations go through the engine's submit operations.
type Model struct {
	store storage.CacheStore
}

// New creates a feed view model over the cache store.
func New(store storage.CacheStore) *Model {
	return &Model{store: store}
}

// CurrentView returns the cached feed items in display order, newest
// first.
func (m *Model) CurrentView(ctx context.Context) ([]*models.FeedItem, error) {
	items, err := m.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read feed: %w", err)
	}
	return items, nil
}

// Render writes the current feed as text to w.
func (m *Model) Render(ctx context.Context, w io.Writer) error {
	items, err := m.CurrentView(ctx)
	if err != nil {
		return err
	}

	tmpl, err := template.New("feed").Parse(feedTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse feed template: %w", err)
	}
	if err := tmpl.Execute(w, items); err != nil {
		return fmt.Errorf("failed to render feed: %w", err)
	}
	return nil
}
