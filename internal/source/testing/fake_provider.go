// Package testing provides test doubles for cluster state providers.
package testing

import (
	"context"
	"sync"
	"time"

	"github.com/rileyhilliard/clustertop/internal/cluster"
)

// Step is one scripted response: either a state or an error.
type Step struct {
	State *cluster.State
	Err   error
}

// FakeProvider replays scripted responses. Once the script is exhausted the
// last step repeats. An empty script returns an empty state.
type FakeProvider struct {
	mu sync.Mutex

	// Configuration
	Steps          []Step
	SimulatedDelay time.Duration // Honours ctx cancellation while waiting
	CloseErr       error

	// Call tracking
	Calls  int
	Closed bool

	next int
}

// NewFakeProvider creates a provider that returns the given states in order.
func NewFakeProvider(states ...*cluster.State) *FakeProvider {
	p := &FakeProvider{}
	for _, s := range states {
		p.Steps = append(p.Steps, Step{State: s})
	}
	return p
}

// NewFakeProviderWithNodes creates a provider that always returns nodes.
func NewFakeProviderWithNodes(nodes ...cluster.NodeSample) *FakeProvider {
	return NewFakeProvider(&cluster.State{Nodes: nodes})
}

// Push appends a state to the script.
func (p *FakeProvider) Push(state *cluster.State) *FakeProvider {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Steps = append(p.Steps, Step{State: state})
	return p
}

// PushError appends a failure to the script.
func (p *FakeProvider) PushError(err error) *FakeProvider {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Steps = append(p.Steps, Step{Err: err})
	return p
}

// ClusterState returns the next scripted response.
func (p *FakeProvider) ClusterState(ctx context.Context) (*cluster.State, error) {
	p.mu.Lock()
	p.Calls++
	delay := p.SimulatedDelay
	step := p.step()
	p.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if step.Err != nil {
		return nil, step.Err
	}
	if step.State == nil {
		return &cluster.State{}, nil
	}

	// Hand out a copy so callers can't mutate the script.
	nodes := make([]cluster.NodeSample, len(step.State.Nodes))
	copy(nodes, step.State.Nodes)
	return &cluster.State{Nodes: nodes}, nil
}

// step must be called with p.mu held.
func (p *FakeProvider) step() Step {
	if len(p.Steps) == 0 {
		return Step{}
	}
	idx := p.next
	if idx >= len(p.Steps) {
		idx = len(p.Steps) - 1
	} else {
		p.next++
	}
	return p.Steps[idx]
}

// Close records the call and returns CloseErr.
func (p *FakeProvider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Closed = true
	return p.CloseErr
}

// CallCount returns the number of ClusterState calls.
func (p *FakeProvider) CallCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.Calls
}

// WasClosed reports whether Close was called.
func (p *FakeProvider) WasClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.Closed
}

// Compile-time interface checks.
var (
	_ cluster.StateProvider = (*FakeProvider)(nil)
	_ cluster.Closer        = (*FakeProvider)(nil)
)
