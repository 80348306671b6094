package connectivity

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/iudanet/feedsync/internal/models"
)

// Probe reports whether the remote service is currently reachable.
type Probe func(ctx context.Context) bool

// Monitor is a two-state machine {Online, Offline} fed by reachability
// signals. Transitions are broadcast to subscribers exactly once per
// actual state change; repeated reports of the same state are dropped,
// since some platforms fire duplicate connectivity events.
type Monitor struct {
	probe  Probe
	logger *slog.Logger

	mu           sync.Mutex
	state        models.NetworkState
	transitionID uint64
	subs         []func(models.ConnectivityState)
}

// New creates a monitor, deriving the initial state from one probe call.
func New(ctx context.Context, probe Probe, logger *slog.Logger) *Monitor {
	state := models.StateOffline
	if probe(ctx) {
		state = models.StateOnline
	}

	logger.Info("connectivity monitor started", "state", state)

	return &Monitor{
		probe:  probe,
		logger: logger,
		state:  state,
	}
}

// State returns the current connectivity state.
func (m *Monitor) State() models.ConnectivityState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return models.ConnectivityState{State: m.state, TransitionID: m.transitionID}
}

// OnTransition registers a callback invoked with the new state whenever
// it changes. Callbacks never fire on no-op repeats.
func (m *Monitor) OnTransition(fn func(models.ConnectivityState)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs = append(m.subs, fn)
}

// Report feeds one reachability signal into the state machine.
func (m *Monitor) Report(online bool) {
	next := models.StateOffline
	if online {
		next = models.StateOnline
	}

	m.mu.Lock()
	if next == m.state {
		m.mu.Unlock()
		return
	}
	m.state = next
	m.transitionID++
	state := models.ConnectivityState{State: m.state, TransitionID: m.transitionID}
	subs := make([]func(models.ConnectivityState), len(m.subs))
	copy(subs, m.subs)
	m.mu.Unlock()

	m.logger.Info("connectivity changed", "state", state.State, "transition_id", state.TransitionID)

	for _, fn := range subs {
		fn(state)
	}
}

// Run probes reachability on a fixed interval until ctx is done.
func (m *Monitor) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			m.Report(m.probe(ctx))
		}
	}
}
