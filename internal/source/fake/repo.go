// Package fake generates random but plausible cluster telemetry for demos
// and local development.
package fake

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/rileyhilliard/clustertop/internal/cluster"
	"github.com/rileyhilliard/clustertop/internal/errors"
)

// Default topology: one master and three workers.
const (
	DefaultMasters = 1
	DefaultWorkers = 3
)

// Per-role capacities and readiness odds.
type roleProfile struct {
	cores, memGB, diskGB, podsCapacity int
	readyWeight                        float64
}

var profiles = map[cluster.Role]roleProfile{
	cluster.RoleMaster: {cores: 4, memGB: 16, diskGB: 200, podsCapacity: 110, readyWeight: 0.95},
	cluster.RoleWorker: {cores: 8, memGB: 32, diskGB: 500, podsCapacity: 220, readyWeight: 0.90},
}

// Sample ranges, inclusive.
const (
	minPercent = 5
	maxPercent = 95
	minPods    = 5
	maxPods    = 25
	minLatency = 1
	maxLatency = 18
	minUptime  = 1000
	maxUptime  = 20000
)

// Options configures the generator.
type Options struct {
	// Seed makes the sequence reproducible. Zero seeds from the clock.
	Seed    int64
	Masters int
	Workers int
}

// Repo is a cluster.StateProvider producing a fresh random sample on every
// call. Safe for concurrent use.
type Repo struct {
	mu    sync.Mutex
	rnd   *rand.Rand
	nodes []nodeSpec
}

type nodeSpec struct {
	name string
	role cluster.Role
}

// New creates a generator. Negative node counts are rejected and a
// topology with no nodes at all falls back to the default.
func New(opts Options) (*Repo, error) {
	if opts.Masters < 0 || opts.Workers < 0 {
		return nil, errors.New(errors.ErrConfig,
			fmt.Sprintf("Invalid fake topology: %d masters, %d workers", opts.Masters, opts.Workers),
			"Node counts must be zero or more")
	}
	if opts.Masters == 0 && opts.Workers == 0 {
		opts.Masters, opts.Workers = DefaultMasters, DefaultWorkers
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	r := &Repo{rnd: rand.New(rand.NewSource(seed))}
	for i := 1; i <= opts.Masters; i++ {
		r.nodes = append(r.nodes, nodeSpec{name: fmt.Sprintf("master-%d", i), role: cluster.RoleMaster})
	}
	for i := 1; i <= opts.Workers; i++ {
		r.nodes = append(r.nodes, nodeSpec{name: fmt.Sprintf("worker-%d", i), role: cluster.RoleWorker})
	}
	return r, nil
}

// ClusterState returns one sample per configured node, masters first.
func (r *Repo) ClusterState(ctx context.Context) (*cluster.State, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]cluster.NodeSample, 0, len(r.nodes))
	for _, n := range r.nodes {
		out = append(out, r.generate(n))
	}
	return &cluster.State{Nodes: out}, nil
}

func (r *Repo) generate(n nodeSpec) cluster.NodeSample {
	p := profiles[n.role]

	status := cluster.StatusReady
	if r.rnd.Float64() >= p.readyWeight {
		status = cluster.StatusNotReady
	}

	return cluster.NodeSample{
		Name:         n.name,
		Role:         n.role,
		Status:       status,
		CPU:          r.between(minPercent, maxPercent),
		Memory:       r.between(minPercent, maxPercent),
		Disk:         r.between(minPercent, maxPercent),
		Pods:         r.between(minPods, min(maxPods, p.podsCapacity)),
		LatencyMS:    r.between(minLatency, maxLatency),
		UptimeS:      r.between(minUptime, maxUptime),
		CPUCores:     p.cores,
		MemGB:        p.memGB,
		DiskGB:       p.diskGB,
		PodsCapacity: p.podsCapacity,
	}
}

// between returns a uniform int in [lo, hi].
func (r *Repo) between(lo, hi int) int {
	return lo + r.rnd.Intn(hi-lo+1)
}

var _ cluster.StateProvider = (*Repo)(nil)
