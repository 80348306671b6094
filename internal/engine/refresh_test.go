package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/feedsync/internal/models"
	"github.com/iudanet/feedsync/internal/remote"
	"github.com/iudanet/feedsync/internal/storage"
)

func serverItem(id string, revision int64, content string) *models.FeedItem {
	return &models.FeedItem{
		ID:        id,
		AuthorID:  "author-2",
		Content:   content,
		Likes:     10,
		Revision:  revision,
		CreatedAt: time.Now().UTC(),
	}
}

func TestRefresh_OfflineNoOp(t *testing.T) {
	ctx := context.Background()
	svc := &remote.ServiceMock{}
	eng, _, _ := newTestEngine(t, svc, false, Config{})

	require.NoError(t, eng.Refresh(ctx))
	assert.Empty(t, svc.FetchFeedCalls())
}

func TestRefresh_CachesFetchedItems(t *testing.T) {
	ctx := context.Background()
	svc := &remote.ServiceMock{
		FetchFeedFunc: func(ctx context.Context) ([]*models.FeedItem, error) {
			return []*models.FeedItem{
				serverItem("post-1", 1, "first"),
				serverItem("post-2", 1, "second"),
			}, nil
		},
	}
	eng, store, _ := newTestEngine(t, svc, true, Config{})

	require.NoError(t, eng.Refresh(ctx))

	items, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestRefresh_DoesNotResurrectPendingDelete(t *testing.T) {
	ctx := context.Background()
	svc := &remote.ServiceMock{
		FetchFeedFunc: func(ctx context.Context) ([]*models.FeedItem, error) {
			// The server has not processed the delete yet.
			return []*models.FeedItem{serverItem("post-1", 2, "still here")}, nil
		},
	}
	eng, store, _ := newTestEngine(t, svc, true, Config{})
	seedItem(t, store, "post-1")

	require.NoError(t, eng.SubmitDelete(ctx, "post-1"))
	require.NoError(t, eng.Refresh(ctx))

	_, err := store.Get(ctx, "post-1")
	assert.ErrorIs(t, err, storage.ErrItemNotFound)
}

func TestRefresh_OverlaysPendingEdit(t *testing.T) {
	ctx := context.Background()
	svc := &remote.ServiceMock{
		FetchFeedFunc: func(ctx context.Context) ([]*models.FeedItem, error) {
			return []*models.FeedItem{serverItem("post-1", 3, "server content")}, nil
		},
	}
	eng, store, _ := newTestEngine(t, svc, true, Config{})
	seedItem(t, store, "post-1")

	_, err := eng.SubmitEdit(ctx, "post-1", "local edit")
	require.NoError(t, err)

	require.NoError(t, eng.Refresh(ctx))

	// Server revision is adopted but the unsynced edit stays visible.
	cached, err := store.Get(ctx, "post-1")
	require.NoError(t, err)
	assert.Equal(t, "local edit", cached.Content)
	assert.Equal(t, int64(3), cached.Revision)
	assert.Equal(t, 10, cached.Likes)
}

func TestRefresh_OverlaysPendingLikeAndComment(t *testing.T) {
	ctx := context.Background()
	svc := &remote.ServiceMock{
		FetchFeedFunc: func(ctx context.Context) ([]*models.FeedItem, error) {
			return []*models.FeedItem{serverItem("post-1", 2, "content")}, nil
		},
	}
	eng, store, _ := newTestEngine(t, svc, true, Config{})
	seedItem(t, store, "post-1")

	_, err := eng.SubmitLike(ctx, "post-1")
	require.NoError(t, err)
	_, err = eng.SubmitComment(ctx, "post-1", "pending comment")
	require.NoError(t, err)

	require.NoError(t, eng.Refresh(ctx))

	cached, err := store.Get(ctx, "post-1")
	require.NoError(t, err)
	assert.True(t, cached.LikedByViewer)
	assert.Equal(t, 11, cached.Likes)
	assert.Contains(t, cached.CommentTexts, "pending comment")
	assert.Equal(t, 1, cached.Comments)
}

func TestRefresh_KeepsNewerLocalRevision(t *testing.T) {
	ctx := context.Background()
	svc := &remote.ServiceMock{
		FetchFeedFunc: func(ctx context.Context) ([]*models.FeedItem, error) {
			return []*models.FeedItem{serverItem("post-1", 3, "stale feed data")}, nil
		},
	}
	eng, store, _ := newTestEngine(t, svc, true, Config{})

	local := serverItem("post-1", 5, "reconciled content")
	require.NoError(t, store.Put(ctx, local))

	require.NoError(t, eng.Refresh(ctx))

	cached, err := store.Get(ctx, "post-1")
	require.NoError(t, err)
	assert.Equal(t, "reconciled content", cached.Content)
	assert.Equal(t, int64(5), cached.Revision)
}
