package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/iudanet/feedsync/internal/models"
	"github.com/iudanet/feedsync/internal/validation"
)

// The submit operations apply the optimistic change to the cache and
// enqueue the matching pending action. They return as soon as the local
// state is updated and never block on the network; the only synchronous
// rejections are unknown ids and invalid content.

// SubmitLike flips the viewer's like on an item and adjusts the counter.
// The queued action carries the resulting desired state, not a delta, so
// retries converge. Liking and unliking before a sync cancels out to
// zero network calls.
func (e *Engine) SubmitLike(ctx context.Context, itemID string) (*models.FeedItem, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	item, err := e.store.Get(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("submit like: %w", err)
	}

	snapshot := item.Clone()
	desired := !item.LikedByViewer
	item.LikedByViewer = desired
	if desired {
		item.Likes++
	} else if item.Likes > 0 {
		item.Likes--
	}
	if err := e.store.Put(ctx, item); err != nil {
		return nil, fmt.Errorf("submit like: %w", err)
	}

	payload, err := models.EncodePayload(models.LikePayload{Liked: desired})
	if err != nil {
		return nil, err
	}

	existing, err := e.findPending(ctx, models.ActionLike, itemID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		// Coalesce into the already-queued like. If the desired state is
		// back to the last confirmed one, the round trip is moot.
		base, ok := e.rollbacks[existing.ActionID]
		if ok && base.item != nil && base.item.LikedByViewer == desired {
			_ = e.queue.Delete(ctx, existing.ActionID)
			delete(e.rollbacks, existing.ActionID)
			return item, nil
		}
		if err := e.queue.Replace(ctx, existing.ActionID, payload); err != nil {
			return nil, fmt.Errorf("submit like: %w", err)
		}
		return item, nil
	}

	actionID, err := e.queue.Enqueue(ctx, &models.PendingAction{
		Kind:     models.ActionLike,
		TargetID: itemID,
		Payload:  payload,
	})
	if err != nil {
		return nil, fmt.Errorf("submit like: %w", err)
	}
	e.rollbacks[actionID] = rollback{item: snapshot}

	return item, nil
}

// SubmitEdit overwrites the content of an item. A second edit before the
// first one syncs replaces the queued action in place, so only one
// server request is ever sent for a run of edits.
func (e *Engine) SubmitEdit(ctx context.Context, itemID, content string) (*models.FeedItem, error) {
	if err := validation.ValidatePostContent(content); err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	item, err := e.store.Get(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("submit edit: %w", err)
	}

	snapshot := item.Clone()
	item.Content = content
	if err := e.store.Put(ctx, item); err != nil {
		return nil, fmt.Errorf("submit edit: %w", err)
	}

	payload, err := models.EncodePayload(models.UpdatePayload{Content: content})
	if err != nil {
		return nil, err
	}

	existing, err := e.findPending(ctx, models.ActionUpdate, itemID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		// Same action id, new payload, retry count reset. The original
		// rollback still points at the last confirmed content.
		if err := e.queue.Replace(ctx, existing.ActionID, payload); err != nil {
			return nil, fmt.Errorf("submit edit: %w", err)
		}
		return item, nil
	}

	actionID, err := e.queue.Enqueue(ctx, &models.PendingAction{
		Kind:     models.ActionUpdate,
		TargetID: itemID,
		Payload:  payload,
	})
	if err != nil {
		return nil, fmt.Errorf("submit edit: %w", err)
	}
	e.rollbacks[actionID] = rollback{item: snapshot}

	return item, nil
}

// SubmitDelete removes an item from the cache and queues the deletion.
// Any other pending actions for the item are cancelled as moot. Deleting
// an item whose Create has not reached the server yet cancels the Create
// instead of queuing a Delete.
func (e *Engine) SubmitDelete(ctx context.Context, itemID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	item, err := e.store.Get(ctx, itemID)
	if err != nil {
		return fmt.Errorf("submit delete: %w", err)
	}
	snapshot := item.Clone()

	actions, err := e.queue.Pending(ctx)
	if err != nil {
		return fmt.Errorf("submit delete: %w", err)
	}

	pendingCreate := false
	for _, a := range actions {
		if a.TargetID != itemID {
			continue
		}
		// Revert the superseded action's optimistic delta in the rollback
		// snapshot, so undoing the delete restores confirmed state.
		rb, ok := e.rollbacks[a.ActionID]
		switch a.Kind {
		case models.ActionCreate:
			pendingCreate = true
		case models.ActionUpdate:
			if ok && rb.item != nil {
				snapshot.Content = rb.item.Content
			}
		case models.ActionLike:
			if ok && rb.item != nil {
				snapshot.LikedByViewer = rb.item.LikedByViewer
				snapshot.Likes = rb.item.Likes
			}
		case models.ActionComment:
			if ok {
				removeComment(snapshot, rb.commentText)
			}
		}
		_ = e.queue.Delete(ctx, a.ActionID)
		delete(e.rollbacks, a.ActionID)
	}

	if err := e.store.Remove(ctx, itemID); err != nil {
		return fmt.Errorf("submit delete: %w", err)
	}

	if pendingCreate {
		// The item never existed server-side; nothing to delete there.
		e.logger.Debug("cancelled unsynced create", "item_id", itemID)
		return nil
	}

	actionID, err := e.queue.Enqueue(ctx, &models.PendingAction{
		Kind:     models.ActionDelete,
		TargetID: itemID,
	})
	if err != nil {
		return fmt.Errorf("submit delete: %w", err)
	}
	e.rollbacks[actionID] = rollback{item: snapshot}

	return nil
}

// SubmitComment appends a comment to an item. Comments are append-only
// and never coalesced; each one is an independent pending action.
func (e *Engine) SubmitComment(ctx context.Context, itemID, text string) (*models.FeedItem, error) {
	if err := validation.ValidateCommentText(text); err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	item, err := e.store.Get(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("submit comment: %w", err)
	}

	item.CommentTexts = append(item.CommentTexts, text)
	item.Comments++
	if err := e.store.Put(ctx, item); err != nil {
		return nil, fmt.Errorf("submit comment: %w", err)
	}

	payload, err := models.EncodePayload(models.CommentPayload{Text: text})
	if err != nil {
		return nil, err
	}

	actionID, err := e.queue.Enqueue(ctx, &models.PendingAction{
		Kind:     models.ActionComment,
		TargetID: itemID,
		Payload:  payload,
	})
	if err != nil {
		return nil, fmt.Errorf("submit comment: %w", err)
	}
	e.rollbacks[actionID] = rollback{commentText: text}

	return item, nil
}

// SubmitCreate inserts a new post under a temporary local id. The server
// assigns the real id on confirmation, and queued actions referencing
// the local id are retargeted then.
func (e *Engine) SubmitCreate(ctx context.Context, content string) (*models.FeedItem, error) {
	if err := validation.ValidatePostContent(content); err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	item := &models.FeedItem{
		ID:        models.NewLocalID(),
		Content:   content,
		CreatedAt: time.Now(),
	}
	if err := e.store.Put(ctx, item); err != nil {
		return nil, fmt.Errorf("submit create: %w", err)
	}

	payload, err := models.EncodePayload(models.CreatePayload{Content: content})
	if err != nil {
		return nil, err
	}

	actionID, err := e.queue.Enqueue(ctx, &models.PendingAction{
		Kind:     models.ActionCreate,
		TargetID: item.ID,
		Payload:  payload,
	})
	if err != nil {
		return nil, fmt.Errorf("submit create: %w", err)
	}
	e.rollbacks[actionID] = rollback{}

	return item, nil
}

// removeComment drops one occurrence of text from the item's comments
// and decrements the counter.
func removeComment(item *models.FeedItem, text string) {
	for i := len(item.CommentTexts) - 1; i >= 0; i-- {
		if item.CommentTexts[i] == text {
			item.CommentTexts = append(item.CommentTexts[:i], item.CommentTexts[i+1:]...)
			break
		}
	}
	if item.Comments > 0 {
		item.Comments--
	}
}
