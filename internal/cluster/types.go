package cluster

// Role is the function a node plays in the cluster.
type Role string

const (
	RoleMaster Role = "master"
	RoleWorker Role = "worker"
)

// Status is the readiness reported for a node.
type Status string

const (
	StatusReady    Status = "Ready"
	StatusNotReady Status = "NotReady"
)

// NodeSample is one node's telemetry for a single tick.
// Percentages are integers in [0,100].
type NodeSample struct {
	Name      string
	Role      Role
	Status    Status
	CPU       int
	Memory    int
	Disk      int
	Pods      int
	LatencyMS int
	UptimeS   int

	// Capacities
	CPUCores     int
	MemGB        int
	DiskGB       int
	PodsCapacity int
}

// Ready reports whether the node status is Ready.
func (n NodeSample) Ready() bool {
	return n.Status == StatusReady
}

// State is a complete snapshot returned by a StateProvider.
type State struct {
	Nodes []NodeSample
}

// Severity of an alert.
type Severity string

const (
	SeverityWarn Severity = "WARN"
	SeverityCrit Severity = "CRIT"
)

// Alert is a single condition derived from a node sample.
type Alert struct {
	Node     string
	Severity Severity
	Message  string
}

// Health is the coarse cluster-wide severity for a tick.
type Health int

const (
	HealthHealthy Health = iota
	HealthDegraded
	HealthCritical
)

// String returns the display name of the tier.
func (h Health) String() string {
	switch h {
	case HealthHealthy:
		return "HEALTHY"
	case HealthDegraded:
		return "DEGRADED"
	case HealthCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// Summary is the cluster-wide view derived from one tick of samples.
type Summary struct {
	TotalNodes int
	ReadyNodes int
	AvgCPU     int
	AvgMemory  int
	TotalPods  int

	MaxCPU        int
	MaxCPUNode    string
	MaxMemory     int
	MaxMemoryNode string

	UsedCores    float64
	TotalCores   int
	UsedMemGB    float64
	TotalMemGB   int
	PodsCapacity int

	NotReadyNames []string

	AlertsTotal int
	AlertsWarn  int
	AlertsCrit  int
	Health      Health

	// CPUTrend and MemTrend are attached by the render loop after the
	// trend buffers have been appended for this tick. Aggregate leaves them nil.
	CPUTrend []int
	MemTrend []int
}
