package boltdb

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"

	"github.com/iudanet/feedsync/internal/models"
	"github.com/iudanet/feedsync/internal/storage"
)

// The queue is held fully in memory (it is small and never evicted) and
// mirrored to the pendingActions bucket best-effort. Bucket keys are the
// big-endian sequence numbers, so a cursor walks the bucket in FIFO
// order across restarts.

// Enqueue appends an action to the pending queue and returns its id.
func (s *Storage) Enqueue(ctx context.Context, action *models.PendingAction) (string, error) {
	if action.ActionID == "" {
		action.ActionID = uuid.New().String()
	}
	if action.EnqueuedAt.IsZero() {
		action.EnqueuedAt = time.Now()
	}

	s.mu.Lock()
	s.seq++
	action.Seq = s.seq
	stored := *action
	s.queue = append(s.queue, &stored)
	s.mu.Unlock()

	s.persistAction(&stored)
	return action.ActionID, nil
}

// Pending returns all pending actions in FIFO enqueue order.
func (s *Storage) Pending(ctx context.Context) ([]*models.PendingAction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	actions := make([]*models.PendingAction, 0, len(s.queue))
	for _, a := range s.queue {
		copied := *a
		actions = append(actions, &copied)
	}
	return actions, nil
}

// Delete drops an action by id. Deleting an absent action is not an
// error, so confirming and abandoning stay idempotent.
func (s *Storage) Delete(ctx context.Context, actionID string) error {
	s.mu.Lock()
	var removed *models.PendingAction
	for i, a := range s.queue {
		if a.ActionID == actionID {
			removed = a
			s.queue = append(s.queue[:i], s.queue[i+1:]...)
			break
		}
	}
	persist := removed != nil && s.available()
	s.mu.Unlock()

	if !persist {
		return nil
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketActions).Delete(seqKey(removed.Seq))
	})
	if err != nil {
		s.mu.Lock()
		s.degrade("remove action", err)
		s.mu.Unlock()
	}
	return nil
}

// Replace swaps the payload of an existing action in place, resetting its
// retry count. Queue position and action id are preserved.
func (s *Storage) Replace(ctx context.Context, actionID string, payload json.RawMessage) error {
	return s.updateAction(actionID, func(a *models.PendingAction) {
		a.Payload = payload
		a.RetryCount = 0
		a.LastError = ""
	})
}

// Retarget rewrites the target id of an existing action.
func (s *Storage) Retarget(ctx context.Context, actionID, targetID string) error {
	return s.updateAction(actionID, func(a *models.PendingAction) {
		a.TargetID = targetID
	})
}

// BumpRetry increments the retry count of an action and returns the new
// value.
func (s *Storage) BumpRetry(ctx context.Context, actionID, reason string) (int, error) {
	var count int
	err := s.updateAction(actionID, func(a *models.PendingAction) {
		a.RetryCount++
		a.LastError = reason
		count = a.RetryCount
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// updateAction applies fn to the queued action with the given id and
// persists the result.
func (s *Storage) updateAction(actionID string, fn func(a *models.PendingAction)) error {
	s.mu.Lock()
	var updated *models.PendingAction
	for _, a := range s.queue {
		if a.ActionID == actionID {
			fn(a)
			copied := *a
			updated = &copied
			break
		}
	}
	s.mu.Unlock()

	if updated == nil {
		return storage.ErrActionNotFound
	}

	s.persistAction(updated)
	return nil
}

// persistAction mirrors one action to the pendingActions bucket.
func (s *Storage) persistAction(action *models.PendingAction) {
	s.mu.RLock()
	persist := s.available()
	s.mu.RUnlock()
	if !persist {
		return
	}

	data, err := json.Marshal(action)
	if err != nil {
		s.logger.Warn("failed to marshal pending action", "action_id", action.ActionID, "error", err)
		return
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketActions).Put(seqKey(action.Seq), data)
	})
	if err != nil {
		s.mu.Lock()
		s.degrade("persist action", err)
		s.mu.Unlock()
	}
}
