package cluster

import "context"

// StateProvider returns a snapshot of node telemetry on demand.
//
// Implementations must return a non-empty node list within a bounded time or
// an explicit error. The returned slice is owned by the caller and must not
// be modified by the provider afterwards.
type StateProvider interface {
	ClusterState(ctx context.Context) (*State, error)
}

// Closer is implemented by providers holding resources that must be released
// on shutdown.
type Closer interface {
	Close() error
}
