package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/iudanet/feedsync/internal/models"
	"github.com/iudanet/feedsync/internal/remote"
)

// DrainResult reports what one drain pass did.
type DrainResult struct {
	Attempted int
	Confirmed int
	Retried   int
	Abandoned int
	// Skipped is true when the pass did not run at all: offline, or an
	// overlapping trigger found a drain already in flight.
	Skipped bool
}

// outcome carries the authoritative server data returned by a confirmed
// remote call, by action kind.
type outcome struct {
	item    *models.FeedItem
	like    *remote.LikeResult
	comment *remote.CommentRecord
}

// Drain attempts every pending action, in FIFO order, against the remote
// service. Actions on the same target are never reordered: a transient
// failure blocks the rest of that target's actions until the next pass.
// Drain never panics out of a failure; everything is converted into a
// retry, an abandonment or a rollback.
func (e *Engine) Drain(ctx context.Context) (*DrainResult, error) {
	result := &DrainResult{}

	if !e.monitor.State().Online() {
		e.logger.Debug("drain skipped, offline")
		result.Skipped = true
		return result, nil
	}

	// Duplicate connectivity events and timer overlap collapse into the
	// already-running pass; the queue state they would drain is the same.
	if !e.draining.CompareAndSwap(false, true) {
		result.Skipped = true
		return result, nil
	}
	defer e.draining.Store(false)

	actions, err := e.queue.Pending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending actions: %w", err)
	}
	if len(actions) == 0 {
		return result, nil
	}

	e.logger.Info("draining pending actions", "count", len(actions))

	blocked := make(map[string]bool)
	remap := make(map[string]string)

	for _, action := range actions {
		if blocked[action.TargetID] {
			continue
		}

		// A confirmed Create earlier in this pass may have resolved the
		// real id for actions queued against a local one.
		target := action.TargetID
		if realID, ok := remap[target]; ok {
			target = realID
		}

		result.Attempted++

		callCtx, cancel := context.WithTimeout(ctx, e.cfg.CallTimeout)
		out, callErr := e.dispatch(callCtx, action, target)
		cancel()

		if callErr == nil {
			e.confirm(ctx, action, target, out, actions, remap)
			result.Confirmed++
			continue
		}

		if remote.Classify(callErr) == remote.ClassPermanent {
			e.abandon(ctx, action, callErr, false)
			result.Abandoned++
			if action.Kind == models.ActionCreate {
				// Abandoning a Create dropped everything queued against its
				// local id; they are still in this pass's snapshot.
				blocked[action.TargetID] = true
			}
			continue
		}

		count, bumpErr := e.queue.BumpRetry(ctx, action.ActionID, callErr.Error())
		if bumpErr != nil {
			e.logger.Warn("failed to bump retry count",
				"action_id", action.ActionID, "error", bumpErr)
			blocked[action.TargetID] = true
			continue
		}
		if count > e.cfg.MaxRetries {
			e.abandon(ctx, action, callErr, true)
			result.Abandoned++
			if action.Kind == models.ActionCreate {
				blocked[action.TargetID] = true
			}
			continue
		}

		e.logger.Warn("action failed, will retry",
			"action_id", action.ActionID,
			"kind", action.Kind,
			"retry_count", count,
			"error", callErr)
		blocked[action.TargetID] = true
		result.Retried++
	}

	e.logger.Info("drain completed",
		"attempted", result.Attempted,
		"confirmed", result.Confirmed,
		"retried", result.Retried,
		"abandoned", result.Abandoned)

	return result, nil
}

// dispatch issues the remote call for one action.
func (e *Engine) dispatch(ctx context.Context, action *models.PendingAction, target string) (*outcome, error) {
	switch action.Kind {
	case models.ActionCreate:
		var p models.CreatePayload
		if err := action.DecodePayload(&p); err != nil {
			return nil, err
		}
		item, err := e.remote.CreatePost(ctx, p.Content)
		return &outcome{item: item}, err

	case models.ActionUpdate:
		var p models.UpdatePayload
		if err := action.DecodePayload(&p); err != nil {
			return nil, err
		}
		item, err := e.remote.UpdatePost(ctx, target, p.Content)
		return &outcome{item: item}, err

	case models.ActionDelete:
		return &outcome{}, e.remote.DeletePost(ctx, target)

	case models.ActionLike:
		res, err := e.remote.ToggleLike(ctx, target)
		return &outcome{like: res}, err

	case models.ActionComment:
		var p models.CommentPayload
		if err := action.DecodePayload(&p); err != nil {
			return nil, err
		}
		rec, err := e.remote.AddComment(ctx, target, p.Text)
		return &outcome{comment: rec}, err

	default:
		return nil, fmt.Errorf("unknown action kind: %s", action.Kind)
	}
}

// confirm removes a successful action and overwrites local state with
// the authoritative data the server returned. This is the
// reconciliation point where optimistic state becomes ground truth.
func (e *Engine) confirm(ctx context.Context, action *models.PendingAction, target string, out *outcome, all []*models.PendingAction, remap map[string]string) {
	_ = e.queue.Delete(ctx, action.ActionID)
	e.mu.Lock()
	delete(e.rollbacks, action.ActionID)
	e.mu.Unlock()

	switch action.Kind {
	case models.ActionCreate:
		if out.item == nil {
			break
		}
		// Swap the optimistic local entry for the server-assigned one and
		// retarget everything still queued against the local id.
		_ = e.store.Remove(ctx, action.TargetID)
		remap[action.TargetID] = out.item.ID
		for _, other := range all {
			if other.ActionID != action.ActionID && other.TargetID == action.TargetID {
				_ = e.queue.Retarget(ctx, other.ActionID, out.item.ID)
			}
		}
		_ = e.store.Put(ctx, e.applyOverlays(ctx, out.item))

	case models.ActionUpdate:
		if out.item != nil {
			_ = e.store.Put(ctx, e.applyOverlays(ctx, out.item))
		}

	case models.ActionDelete:
		// Already removed locally at submit time.

	case models.ActionLike:
		if out.like == nil {
			break
		}
		if item, err := e.store.Get(ctx, target); err == nil {
			item.LikedByViewer = out.like.Liked
			item.Likes = out.like.LikeCount
			_ = e.store.Put(ctx, item)
		}

	case models.ActionComment:
		if out.comment == nil {
			break
		}
		if item, err := e.store.Get(ctx, target); err == nil {
			if out.comment.CommentCount > 0 {
				item.Comments = out.comment.CommentCount
			}
			_ = e.store.Put(ctx, item)
		}
	}

	e.logger.Debug("action confirmed", "action_id", action.ActionID, "kind", action.Kind, "target_id", target)
}

// abandon removes a failed action, rolls the cache back to the saved
// pre-optimistic state and surfaces the failure.
func (e *Engine) abandon(ctx context.Context, action *models.PendingAction, cause error, exhausted bool) {
	_ = e.queue.Delete(ctx, action.ActionID)

	e.mu.Lock()
	rb, ok := e.rollbacks[action.ActionID]
	delete(e.rollbacks, action.ActionID)
	e.mu.Unlock()

	e.rollbackAction(ctx, action, rb, ok)

	e.logger.Warn("pending action abandoned",
		"action_id", action.ActionID,
		"kind", action.Kind,
		"target_id", action.TargetID,
		"retries_exhausted", exhausted,
		"error", cause)

	e.emitFailure(FailureEvent{
		ActionID:  action.ActionID,
		Kind:      action.Kind,
		TargetID:  action.TargetID,
		Reason:    cause.Error(),
		Abandoned: exhausted,
	})
}

// rollbackAction undoes the optimistic delta of one abandoned action.
func (e *Engine) rollbackAction(ctx context.Context, action *models.PendingAction, rb rollback, ok bool) {
	switch action.Kind {
	case models.ActionCreate:
		// The optimistic item never existed server-side: remove it
		// entirely rather than leaving an orphan with a local id, and
		// drop anything queued against it.
		_ = e.store.Remove(ctx, action.TargetID)
		actions, err := e.queue.Pending(ctx)
		if err != nil {
			return
		}
		for _, other := range actions {
			if other.TargetID == action.TargetID {
				_ = e.queue.Delete(ctx, other.ActionID)
				e.mu.Lock()
				delete(e.rollbacks, other.ActionID)
				e.mu.Unlock()
			}
		}

	case models.ActionUpdate:
		if !ok || rb.item == nil {
			return
		}
		if item, err := e.store.Get(ctx, action.TargetID); err == nil {
			item.Content = rb.item.Content
			_ = e.store.Put(ctx, item)
		}

	case models.ActionDelete:
		if ok && rb.item != nil {
			_ = e.store.Put(ctx, rb.item)
		}

	case models.ActionLike:
		if !ok || rb.item == nil {
			return
		}
		if item, err := e.store.Get(ctx, action.TargetID); err == nil {
			item.LikedByViewer = rb.item.LikedByViewer
			item.Likes = rb.item.Likes
			_ = e.store.Put(ctx, item)
		}

	case models.ActionComment:
		if !ok {
			return
		}
		if item, err := e.store.Get(ctx, action.TargetID); err == nil {
			removeComment(item, rb.commentText)
			_ = e.store.Put(ctx, item)
		}
	}
}

// Run is the background process: a drain and refresh on a fixed timer
// and on every Offline to Online transition, until ctx is done.
func (e *Engine) Run(ctx context.Context) error {
	restored := make(chan models.ConnectivityState, 1)
	e.monitor.OnTransition(func(s models.ConnectivityState) {
		if !s.Online() {
			return
		}
		select {
		case restored <- s:
		default:
		}
	})

	// Initial pass: cached data is already readable, this catches up in
	// the background.
	e.runOnce(ctx)

	ticker := time.NewTicker(e.cfg.DrainInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		case s := <-restored:
			e.logger.Info("connectivity restored, draining", "transition_id", s.TransitionID)
		}
		e.runOnce(ctx)
	}
}

func (e *Engine) runOnce(ctx context.Context) {
	if _, err := e.Drain(ctx); err != nil {
		e.logger.Warn("drain failed", "error", err)
	}
	if err := e.Refresh(ctx); err != nil {
		e.logger.Warn("refresh failed", "error", err)
	}
}
