package storage

import (
	"context"
	"encoding/json"

	"github.com/iudanet/feedsync/internal/models"
)

//go:generate moq -out actionqueue_mock.go . ActionQueue

// ActionQueue is the persistent FIFO list of not-yet-confirmed mutations.
// It persists to the same medium as the cache store and degrades the same
// way when the medium is unavailable.
type ActionQueue interface {
	// Enqueue appends an action and returns its action id. Assigns the
	// id and enqueue timestamp when the caller left them empty.
	Enqueue(ctx context.Context, action *models.PendingAction) (string, error)

	// Pending returns all pending actions in FIFO enqueue order.
	Pending(ctx context.Context) ([]*models.PendingAction, error)

	// Delete drops an action by id. No error if absent.
	Delete(ctx context.Context, actionID string) error

	// Replace swaps the payload of an existing action in place, keeping
	// its id and queue position and resetting the retry count.
	// Returns ErrActionNotFound if the action doesn't exist.
	Replace(ctx context.Context, actionID string, payload json.RawMessage) error

	// Retarget rewrites the target id of an existing action. Used once a
	// pending Create resolves and the server-assigned id is known.
	Retarget(ctx context.Context, actionID, targetID string) error

	// BumpRetry increments the retry count, records the failure reason
	// and returns the new count. The caller compares it against the
	// retry budget to decide between re-queue and abandonment.
	BumpRetry(ctx context.Context, actionID, reason string) (int, error)
}
