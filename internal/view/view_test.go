package view

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/feedsync/internal/models"
	"github.com/iudanet/feedsync/internal/storage/boltdb"
)

func newTestStore(t *testing.T) *boltdb.Storage {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := boltdb.Open(filepath.Join(t.TempDir(), "view_test.db"), logger)
	t.Cleanup(func() { require.NoError(t, store.Close()) })
	return store
}

func TestModel_CurrentView(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	base := time.Now().UTC()
	require.NoError(t, store.Put(ctx, &models.FeedItem{ID: "old", Content: "old post", CreatedAt: base.Add(-time.Hour)}))
	require.NoError(t, store.Put(ctx, &models.FeedItem{ID: "new", Content: "new post", CreatedAt: base}))

	m := New(store)
	items, err := m.CurrentView(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "new", items[0].ID)
	assert.Equal(t, "old", items[1].ID)
}

func TestModel_RenderEmpty(t *testing.T) {
	m := New(newTestStore(t))

	var buf bytes.Buffer
	require.NoError(t, m.Render(context.Background(), &buf))
	assert.Contains(t, buf.String(), "No posts cached yet")
}

func TestModel_Render(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	require.NoError(t, store.Put(ctx, &models.FeedItem{
		ID:            "post-1",
		AuthorID:      "ann",
		Content:       "hello world",
		Likes:         3,
		Comments:      1,
		CommentTexts:  []string{"nice"},
		LikedByViewer: true,
		CreatedAt:     time.Now().UTC(),
	}))

	m := New(store)
	var buf bytes.Buffer
	require.NoError(t, m.Render(ctx, &buf))

	out := buf.String()
	assert.Contains(t, out, "post-1")
	assert.Contains(t, out, "hello world")
	assert.Contains(t, out, "Likes: 3 (liked)")
	assert.Contains(t, out, "> nice")
}
