package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// ActionKind identifies the type of a pending mutation.
type ActionKind string

const (
	ActionCreate  ActionKind = "create"
	ActionUpdate  ActionKind = "update"
	ActionDelete  ActionKind = "delete"
	ActionLike    ActionKind = "like"
	ActionComment ActionKind = "comment"
)

// Valid reports whether k is a known action kind.
func (k ActionKind) Valid() bool {
	switch k {
	case ActionCreate, ActionUpdate, ActionDelete, ActionLike, ActionComment:
		return true
	}
	return false
}

// PendingAction represents one user-initiated mutation that has not yet
// been confirmed by the server.
//
// At most one Delete may be pending per target; enqueuing a Delete
// supersedes any still-pending Update/Like/Comment for the same target.
type PendingAction struct {
	EnqueuedAt time.Time       `json:"enqueued_at"`
	ActionID   string          `json:"action_id"` // ActionID locally generated, unique, used for idempotent removal
	Kind       ActionKind      `json:"kind"`
	TargetID   string          `json:"target_id"` // TargetID a local id for Create until the server assigns the real one
	LastError  string          `json:"last_error,omitempty"`
	Payload    json.RawMessage `json:"payload"`
	Seq        uint64          `json:"seq"` // Seq queue sequence number, defines FIFO order
	RetryCount int             `json:"retry_count"`
}

// CreatePayload carries the content of an optimistic post creation.
type CreatePayload struct {
	Content string `json:"content"`
}

// UpdatePayload carries the full replacement content of an edit.
type UpdatePayload struct {
	Content string `json:"content"`
}

// LikePayload carries the resulting desired like state, not a delta, so
// out-of-order retries converge instead of compounding.
type LikePayload struct {
	Liked bool `json:"liked"`
}

// CommentPayload carries the text of one appended comment.
type CommentPayload struct {
	Text string `json:"text"`
}

// EncodePayload serializes a kind-specific payload for storage in a
// PendingAction.
func EncodePayload(p any) (json.RawMessage, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}
	return data, nil
}

// DecodePayload deserializes the action payload into dst.
func (a *PendingAction) DecodePayload(dst any) error {
	if err := json.Unmarshal(a.Payload, dst); err != nil {
		return fmt.Errorf("failed to unmarshal %s payload: %w", a.Kind, err)
	}
	return nil
}
