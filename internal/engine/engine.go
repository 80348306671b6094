// Package engine implements the offline-first sync coordinator: it
// applies user mutations optimistically to the local cache, queues them
// as pending actions, drains the queue against the remote feed service
// and reconciles local state with authoritative server responses.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/iudanet/feedsync/internal/connectivity"
	"github.com/iudanet/feedsync/internal/models"
	"github.com/iudanet/feedsync/internal/remote"
	"github.com/iudanet/feedsync/internal/storage"
)

const (
	defaultMaxRetries    = 3
	defaultDrainInterval = 30 * time.Second
	defaultCallTimeout   = 10 * time.Second
)

// Config tunes the engine's retry and scheduling behavior.
type Config struct {
	// MaxRetries is the transient-failure budget per pending action.
	MaxRetries int

	// DrainInterval is the period of the background drain/refresh loop.
	DrainInterval time.Duration

	// CallTimeout bounds each remote call attempt; expiry counts as a
	// transient failure.
	CallTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.MaxRetries <= 0 {
		c.MaxRetries = defaultMaxRetries
	}
	if c.DrainInterval <= 0 {
		c.DrainInterval = defaultDrainInterval
	}
	if c.CallTimeout <= 0 {
		c.CallTimeout = defaultCallTimeout
	}
	return c
}

// FailureEvent is surfaced to subscribers when a pending action is given
// up on, either after exhausting retries or on an explicit server
// rejection. The local optimistic state has already been rolled back
// when the event fires.
type FailureEvent struct {
	ActionID string
	Kind     models.ActionKind
	TargetID string
	Reason   string
	// Abandoned is true when the retry budget ran out, false when the
	// server rejected the action outright.
	Abandoned bool
}

// rollback is the saved pre-optimistic state for one pending action.
type rollback struct {
	// item is a snapshot taken before the optimistic change. Nil for
	// Create (rolling back a create means removing the item) and for
	// Comment (which only needs the text).
	item        *models.FeedItem
	commentText string
}

// Engine is the sync coordinator. It is the sole writer of the cache
// store and the action queue; the view model and the CLI only read.
type Engine struct {
	store   storage.CacheStore
	queue   storage.ActionQueue
	monitor *connectivity.Monitor
	remote  remote.Service
	logger  *slog.Logger
	cfg     Config

	mu        sync.Mutex
	rollbacks map[string]rollback
	onFailure []func(FailureEvent)

	draining atomic.Bool
}

// New creates a sync engine over the given storage, queue, connectivity
// monitor and remote service.
func New(
	store storage.CacheStore,
	queue storage.ActionQueue,
	monitor *connectivity.Monitor,
	remoteSvc remote.Service,
	logger *slog.Logger,
	cfg Config,
) *Engine {
	return &Engine{
		store:     store,
		queue:     queue,
		monitor:   monitor,
		remote:    remoteSvc,
		logger:    logger,
		cfg:       cfg.withDefaults(),
		rollbacks: make(map[string]rollback),
	}
}

// OnFailure registers a callback for abandonment and rejection events,
// for toast-style surfacing by the presentation layer.
func (e *Engine) OnFailure(fn func(FailureEvent)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onFailure = append(e.onFailure, fn)
}

func (e *Engine) emitFailure(ev FailureEvent) {
	e.mu.Lock()
	subs := make([]func(FailureEvent), len(e.onFailure))
	copy(subs, e.onFailure)
	e.mu.Unlock()

	for _, fn := range subs {
		fn(ev)
	}
}

// PendingCount returns the number of actions waiting for confirmation.
func (e *Engine) PendingCount(ctx context.Context) (int, error) {
	actions, err := e.queue.Pending(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get pending actions: %w", err)
	}
	return len(actions), nil
}

// findPending returns the queued action of the given kind targeting the
// item, or nil.
func (e *Engine) findPending(ctx context.Context, kind models.ActionKind, targetID string) (*models.PendingAction, error) {
	actions, err := e.queue.Pending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending actions: %w", err)
	}
	for _, a := range actions {
		if a.Kind == kind && a.TargetID == targetID {
			return a, nil
		}
	}
	return nil, nil
}
