package engine

import (
	"context"
	"fmt"

	"github.com/iudanet/feedsync/internal/models"
)

// Refresh pulls the authoritative feed and reconciles it into the cache.
// Reads are cache-first: callers keep showing cached data while this
// runs, and an offline refresh is a no-op. Server data only replaces an
// entry when its revision is not older than the cached one, and the
// optimistic deltas of still-pending actions are re-applied on top so
// the cache invariant holds.
func (e *Engine) Refresh(ctx context.Context) error {
	if !e.monitor.State().Online() {
		e.logger.Debug("refresh skipped, offline")
		return nil
	}

	items, err := e.remote.FetchFeed(ctx)
	if err != nil {
		return fmt.Errorf("feed refresh failed: %w", err)
	}

	pending, err := e.queue.Pending(ctx)
	if err != nil {
		return fmt.Errorf("feed refresh failed: %w", err)
	}
	byTarget := make(map[string][]*models.PendingAction)
	for _, a := range pending {
		byTarget[a.TargetID] = append(byTarget[a.TargetID], a)
	}

	updated := 0
	for _, server := range items {
		actions := byTarget[server.ID]
		if hasDelete(actions) {
			// Deleted locally; don't resurrect it from the server feed.
			continue
		}

		if local, err := e.store.Get(ctx, server.ID); err == nil && local.NewerThan(server) {
			// Stale feed data for an item we already reconciled.
			continue
		}

		item := server.Clone()
		applyActions(item, actions)
		if err := e.store.Put(ctx, item); err != nil {
			e.logger.Warn("failed to cache feed item", "item_id", server.ID, "error", err)
			continue
		}
		updated++
	}

	e.logger.Info("feed refreshed", "fetched", len(items), "updated", updated)
	return nil
}

// applyOverlays re-applies the deltas of all still-pending actions for
// the item on top of authoritative server state.
func (e *Engine) applyOverlays(ctx context.Context, item *models.FeedItem) *models.FeedItem {
	pending, err := e.queue.Pending(ctx)
	if err != nil {
		return item
	}
	var actions []*models.PendingAction
	for _, a := range pending {
		if a.TargetID == item.ID {
			actions = append(actions, a)
		}
	}
	out := item.Clone()
	applyActions(out, actions)
	return out
}

// applyActions overlays pending optimistic deltas onto a server item, in
// enqueue order.
func applyActions(item *models.FeedItem, actions []*models.PendingAction) {
	for _, a := range actions {
		switch a.Kind {
		case models.ActionUpdate:
			var p models.UpdatePayload
			if a.DecodePayload(&p) == nil {
				item.Content = p.Content
			}
		case models.ActionLike:
			var p models.LikePayload
			if a.DecodePayload(&p) == nil && p.Liked != item.LikedByViewer {
				item.LikedByViewer = p.Liked
				if p.Liked {
					item.Likes++
				} else if item.Likes > 0 {
					item.Likes--
				}
			}
		case models.ActionComment:
			var p models.CommentPayload
			if a.DecodePayload(&p) == nil {
				item.CommentTexts = append(item.CommentTexts, p.Text)
				item.Comments++
			}
		}
	}
}

func hasDelete(actions []*models.PendingAction) bool {
	for _, a := range actions {
		if a.Kind == models.ActionDelete {
			return true
		}
	}
	return false
}
