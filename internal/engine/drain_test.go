package engine

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/feedsync/internal/models"
	"github.com/iudanet/feedsync/internal/remote"
	"github.com/iudanet/feedsync/internal/storage"
)

func serverError(code int, msg string) error {
	return &remote.Error{StatusCode: code, Message: msg}
}

func TestDrain_OfflineSkipped(t *testing.T) {
	ctx := context.Background()
	svc := &remote.ServiceMock{}
	eng, store, _ := newTestEngine(t, svc, false, Config{})
	seedItem(t, store, "post-1")

	_, err := eng.SubmitLike(ctx, "post-1")
	require.NoError(t, err)

	result, err := eng.Drain(ctx)
	require.NoError(t, err)
	assert.True(t, result.Skipped)
	assert.Len(t, pendingActions(t, store), 1)
	assert.Empty(t, svc.ToggleLikeCalls())
}

func TestDrain_ConfirmsEditWithLatestContent(t *testing.T) {
	ctx := context.Background()
	svc := &remote.ServiceMock{
		UpdatePostFunc: func(ctx context.Context, postID, content string) (*models.FeedItem, error) {
			return &models.FeedItem{
				ID:       postID,
				Content:  content,
				Likes:    5,
				Revision: 2,
			}, nil
		},
	}
	eng, store, _ := newTestEngine(t, svc, true, Config{})
	seedItem(t, store, "post-1")

	// Three edits while the server was unreachable coalesce into a single
	// request with the final content.
	_, err := eng.SubmitEdit(ctx, "post-1", "draft one")
	require.NoError(t, err)
	_, err = eng.SubmitEdit(ctx, "post-1", "draft two")
	require.NoError(t, err)
	_, err = eng.SubmitEdit(ctx, "post-1", "final text")
	require.NoError(t, err)

	result, err := eng.Drain(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Attempted)
	assert.Equal(t, 1, result.Confirmed)

	calls := svc.UpdatePostCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "final text", calls[0].Content)

	assert.Empty(t, pendingActions(t, store))
	cached, err := store.Get(ctx, "post-1")
	require.NoError(t, err)
	assert.Equal(t, "final text", cached.Content)
	assert.Equal(t, int64(2), cached.Revision)
}

func TestDrain_ConfirmLikeAdoptsServerCounts(t *testing.T) {
	ctx := context.Background()
	svc := &remote.ServiceMock{
		ToggleLikeFunc: func(ctx context.Context, postID string) (*remote.LikeResult, error) {
			return &remote.LikeResult{Liked: true, LikeCount: 42}, nil
		},
	}
	eng, store, _ := newTestEngine(t, svc, true, Config{})
	seedItem(t, store, "post-1")

	_, err := eng.SubmitLike(ctx, "post-1")
	require.NoError(t, err)

	_, err = eng.Drain(ctx)
	require.NoError(t, err)

	// Other users liked too; the server count wins over the local +1.
	cached, err := store.Get(ctx, "post-1")
	require.NoError(t, err)
	assert.True(t, cached.LikedByViewer)
	assert.Equal(t, 42, cached.Likes)
}

func TestDrain_TransientFailureRetriesInPlace(t *testing.T) {
	ctx := context.Background()
	svc := &remote.ServiceMock{
		UpdatePostFunc: func(ctx context.Context, postID, content string) (*models.FeedItem, error) {
			return nil, serverError(http.StatusServiceUnavailable, "maintenance")
		},
	}
	eng, store, _ := newTestEngine(t, svc, true, Config{})
	seedItem(t, store, "post-1")

	_, err := eng.SubmitEdit(ctx, "post-1", "edited")
	require.NoError(t, err)

	var events []FailureEvent
	eng.OnFailure(func(ev FailureEvent) { events = append(events, ev) })

	result, err := eng.Drain(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Retried)
	assert.Equal(t, 0, result.Abandoned)
	assert.Empty(t, events)

	// The action stays queued with its failure recorded, and the
	// optimistic content stays visible.
	actions := pendingActions(t, store)
	require.Len(t, actions, 1)
	assert.Equal(t, 1, actions[0].RetryCount)
	assert.NotEmpty(t, actions[0].LastError)

	cached, err := store.Get(ctx, "post-1")
	require.NoError(t, err)
	assert.Equal(t, "edited", cached.Content)
}

func TestDrain_RetryExhaustionRollsBack(t *testing.T) {
	ctx := context.Background()
	svc := &remote.ServiceMock{
		UpdatePostFunc: func(ctx context.Context, postID, content string) (*models.FeedItem, error) {
			return nil, serverError(http.StatusInternalServerError, "boom")
		},
	}
	eng, store, _ := newTestEngine(t, svc, true, Config{MaxRetries: 2})
	seedItem(t, store, "post-1")

	_, err := eng.SubmitEdit(ctx, "post-1", "edited")
	require.NoError(t, err)

	var events []FailureEvent
	eng.OnFailure(func(ev FailureEvent) { events = append(events, ev) })

	// Budget of 2: two failed passes retry, the third abandons.
	for i := 0; i < 2; i++ {
		result, err := eng.Drain(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, result.Retried)
	}
	result, err := eng.Drain(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Abandoned)

	require.Len(t, events, 1)
	assert.True(t, events[0].Abandoned)
	assert.Equal(t, models.ActionUpdate, events[0].Kind)

	// Rolled back to the last confirmed content, queue empty, and no
	// further traffic on subsequent passes.
	cached, err := store.Get(ctx, "post-1")
	require.NoError(t, err)
	assert.Equal(t, "original content", cached.Content)
	assert.Empty(t, pendingActions(t, store))

	callsBefore := len(svc.UpdatePostCalls())
	_, err = eng.Drain(ctx)
	require.NoError(t, err)
	assert.Len(t, svc.UpdatePostCalls(), callsBefore)
}

func TestDrain_PermanentFailureAbandonsImmediately(t *testing.T) {
	ctx := context.Background()
	svc := &remote.ServiceMock{
		UpdatePostFunc: func(ctx context.Context, postID, content string) (*models.FeedItem, error) {
			return nil, serverError(http.StatusForbidden, "not your post")
		},
	}
	eng, store, _ := newTestEngine(t, svc, true, Config{})
	seedItem(t, store, "post-1")

	_, err := eng.SubmitEdit(ctx, "post-1", "edited")
	require.NoError(t, err)

	var events []FailureEvent
	eng.OnFailure(func(ev FailureEvent) { events = append(events, ev) })

	result, err := eng.Drain(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Abandoned)
	assert.Len(t, svc.UpdatePostCalls(), 1)

	require.Len(t, events, 1)
	assert.False(t, events[0].Abandoned)

	cached, err := store.Get(ctx, "post-1")
	require.NoError(t, err)
	assert.Equal(t, "original content", cached.Content)
}

func TestDrain_TransientFailureBlocksSameTargetOnly(t *testing.T) {
	ctx := context.Background()
	svc := &remote.ServiceMock{
		UpdatePostFunc: func(ctx context.Context, postID, content string) (*models.FeedItem, error) {
			return nil, serverError(http.StatusInternalServerError, "boom")
		},
		ToggleLikeFunc: func(ctx context.Context, postID string) (*remote.LikeResult, error) {
			return &remote.LikeResult{Liked: true, LikeCount: 1}, nil
		},
	}
	eng, store, _ := newTestEngine(t, svc, true, Config{})
	seedItem(t, store, "post-1")
	seedItem(t, store, "post-2")

	_, err := eng.SubmitEdit(ctx, "post-1", "edited")
	require.NoError(t, err)
	_, err = eng.SubmitComment(ctx, "post-1", "held back")
	require.NoError(t, err)
	_, err = eng.SubmitLike(ctx, "post-2")
	require.NoError(t, err)

	result, err := eng.Drain(ctx)
	require.NoError(t, err)

	// The comment on post-1 must wait for the failed edit, preserving
	// per-target order. post-2 is unaffected.
	assert.Equal(t, 2, result.Attempted)
	assert.Equal(t, 1, result.Retried)
	assert.Equal(t, 1, result.Confirmed)
	assert.Empty(t, svc.AddCommentCalls())
	assert.Len(t, svc.ToggleLikeCalls(), 1)
}

func TestDrain_CreateConfirmRemapsDependents(t *testing.T) {
	ctx := context.Background()
	svc := &remote.ServiceMock{
		CreatePostFunc: func(ctx context.Context, content string) (*models.FeedItem, error) {
			return &models.FeedItem{
				ID:        "srv-1",
				Content:   content,
				Revision:  1,
				CreatedAt: time.Now().UTC(),
			}, nil
		},
		AddCommentFunc: func(ctx context.Context, postID, text string) (*remote.CommentRecord, error) {
			return &remote.CommentRecord{ID: "c-1", PostID: postID, Text: text, CommentCount: 1}, nil
		},
	}
	eng, store, _ := newTestEngine(t, svc, true, Config{})

	item, err := eng.SubmitCreate(ctx, "new post")
	require.NoError(t, err)
	localID := item.ID
	_, err = eng.SubmitComment(ctx, localID, "self comment")
	require.NoError(t, err)

	result, err := eng.Drain(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Confirmed)

	// The comment went out against the server-assigned id.
	comments := svc.AddCommentCalls()
	require.Len(t, comments, 1)
	assert.Equal(t, "srv-1", comments[0].PostID)

	// Cache now holds the server item; the local placeholder is gone.
	_, err = store.Get(ctx, localID)
	assert.ErrorIs(t, err, storage.ErrItemNotFound)
	cached, err := store.Get(ctx, "srv-1")
	require.NoError(t, err)
	assert.Equal(t, "new post", cached.Content)

	assert.Empty(t, pendingActions(t, store))
}

func TestDrain_CreatePermanentFailureDropsPostAndDependents(t *testing.T) {
	ctx := context.Background()
	svc := &remote.ServiceMock{
		CreatePostFunc: func(ctx context.Context, content string) (*models.FeedItem, error) {
			return nil, serverError(http.StatusUnprocessableEntity, "content policy")
		},
	}
	eng, store, _ := newTestEngine(t, svc, true, Config{})

	item, err := eng.SubmitCreate(ctx, "rejected post")
	require.NoError(t, err)
	_, err = eng.SubmitComment(ctx, item.ID, "comment on doomed post")
	require.NoError(t, err)

	var events []FailureEvent
	eng.OnFailure(func(ev FailureEvent) { events = append(events, ev) })

	result, err := eng.Drain(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Abandoned)

	// The optimistic post and everything queued against it are gone, and
	// the dependent comment never produced a request.
	_, err = store.Get(ctx, item.ID)
	assert.ErrorIs(t, err, storage.ErrItemNotFound)
	assert.Empty(t, pendingActions(t, store))
	assert.Empty(t, svc.AddCommentCalls())
	require.Len(t, events, 1)
	assert.Equal(t, models.ActionCreate, events[0].Kind)
}

func TestDrain_SingleFlight(t *testing.T) {
	ctx := context.Background()
	eng, _, _ := newTestEngine(t, &remote.ServiceMock{}, true, Config{})

	// Simulate a pass already in flight; an overlapping trigger collapses
	// into it instead of double-sending.
	require.True(t, eng.draining.CompareAndSwap(false, true))
	result, err := eng.Drain(ctx)
	require.NoError(t, err)
	assert.True(t, result.Skipped)
	eng.draining.Store(false)

	result, err = eng.Drain(ctx)
	require.NoError(t, err)
	assert.False(t, result.Skipped)
}

func TestDrain_DeleteConfirmed(t *testing.T) {
	ctx := context.Background()
	svc := &remote.ServiceMock{
		DeletePostFunc: func(ctx context.Context, postID string) error {
			return nil
		},
	}
	eng, store, _ := newTestEngine(t, svc, true, Config{})
	seedItem(t, store, "post-1")

	require.NoError(t, eng.SubmitDelete(ctx, "post-1"))

	result, err := eng.Drain(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Confirmed)

	calls := svc.DeletePostCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "post-1", calls[0].PostID)
	assert.Empty(t, pendingActions(t, store))
}

func TestDrain_DeleteAbandonedRestoresItem(t *testing.T) {
	ctx := context.Background()
	svc := &remote.ServiceMock{
		DeletePostFunc: func(ctx context.Context, postID string) error {
			return serverError(http.StatusForbidden, "not your post")
		},
	}
	eng, store, _ := newTestEngine(t, svc, true, Config{})
	seedItem(t, store, "post-1")

	require.NoError(t, eng.SubmitDelete(ctx, "post-1"))
	_, err := store.Get(ctx, "post-1")
	require.ErrorIs(t, err, storage.ErrItemNotFound)

	_, err = eng.Drain(ctx)
	require.NoError(t, err)

	// The server refused the delete; the post comes back.
	cached, err := store.Get(ctx, "post-1")
	require.NoError(t, err)
	assert.Equal(t, "original content", cached.Content)
}
