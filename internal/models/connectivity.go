package models

// NetworkState is one of the two reachability states of the remote
// service.
type NetworkState string

const (
	StateOnline  NetworkState = "online"
	StateOffline NetworkState = "offline"
)

// ConnectivityState is the current reachability plus a monotonically
// increasing transition id used to deduplicate overlapping platform
// events.
type ConnectivityState struct {
	State        NetworkState `json:"state"`
	TransitionID uint64       `json:"transition_id"`
}

// Online reports whether the remote service is currently reachable.
func (s ConnectivityState) Online() bool {
	return s.State == StateOnline
}
