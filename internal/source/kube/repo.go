// Package kube reads node telemetry from a live Kubernetes cluster using the
// core API and the metrics.k8s.io API served by metrics-server.
package kube

import (
	"context"
	"math"
	"time"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	metricsv1beta1 "k8s.io/metrics/pkg/apis/metrics/v1beta1"
	metricsclient "k8s.io/metrics/pkg/client/clientset/versioned"

	"github.com/rileyhilliard/clustertop/internal/cluster"
	"github.com/rileyhilliard/clustertop/internal/errors"
	"github.com/rileyhilliard/clustertop/internal/logger"
)

// Labels marking control-plane nodes. The second is the pre-1.24 name.
const (
	labelControlPlane = "node-role.kubernetes.io/control-plane"
	labelMaster       = "node-role.kubernetes.io/master"
)

// Disk usage is not exposed by metrics.k8s.io. A node under DiskPressure is
// reported at this level so the disk alert fires.
const diskPressurePercent = 100

const gib = 1 << 30

// Options configures the client.
type Options struct {
	Kubeconfig string // empty uses in-cluster config, then default loading rules
	Context    string
	Timeout    time.Duration // per-request timeout, 0 for none
}

// Repo is a cluster.StateProvider backed by the Kubernetes API.
type Repo struct {
	core    kubernetes.Interface
	metrics metricsclient.Interface
	log     logger.Logger
	now     func() time.Time
}

// New connects to the cluster described by opts.
func New(opts Options, log logger.Logger) (*Repo, error) {
	cfg, err := loadRESTConfig(opts.Kubeconfig, opts.Context)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't load Kubernetes client config",
			"Check --kubeconfig and source.context, or run inside the cluster")
	}
	cfg.QPS = 30
	cfg.Burst = 60
	cfg.Timeout = opts.Timeout

	core, err := kubernetes.NewForConfig(cfg)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig, "Couldn't create Kubernetes client", "")
	}
	m, err := metricsclient.NewForConfig(cfg)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig, "Couldn't create metrics client", "")
	}
	return NewWithClients(core, m, log), nil
}

// NewWithClients wraps existing clientsets.
func NewWithClients(core kubernetes.Interface, m metricsclient.Interface, log logger.Logger) *Repo {
	if log == nil {
		log = logger.Noop()
	}
	return &Repo{core: core, metrics: m, log: log, now: time.Now}
}

func loadRESTConfig(kubeconfigPath, contextName string) (*rest.Config, error) {
	if kubeconfigPath == "" && contextName == "" {
		if cfg, err := rest.InClusterConfig(); err == nil {
			return cfg, nil
		}
	}
	loadingRules := clientcmd.NewDefaultClientConfigLoadingRules()
	loadingRules.ExplicitPath = kubeconfigPath
	overrides := &clientcmd.ConfigOverrides{}
	if contextName != "" {
		overrides.CurrentContext = contextName
	}
	return clientcmd.NewNonInteractiveDeferredLoadingClientConfig(loadingRules, overrides).ClientConfig()
}

// ClusterState lists nodes, their usage and running pods. A missing
// metrics API degrades to zero usage rather than failing the tick.
func (r *Repo) ClusterState(ctx context.Context) (*cluster.State, error) {
	start := r.now()
	nodes, err := r.core.CoreV1().Nodes().List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, errors.WrapSourceUnavailable(err)
	}
	latency := r.now().Sub(start)

	if len(nodes.Items) == 0 {
		return nil, errors.NewInvalidInput("Cluster reported no nodes")
	}

	usage := r.nodeUsage(ctx)
	pods := r.podCounts(ctx)

	out := make([]cluster.NodeSample, 0, len(nodes.Items))
	for i := range nodes.Items {
		out = append(out, r.sample(&nodes.Items[i], usage[nodes.Items[i].Name], pods[nodes.Items[i].Name], latency))
	}
	r.log.Debug("Listed nodes", "nodes", len(out), "with_usage", len(usage), "latency", latency)
	return &cluster.State{Nodes: out}, nil
}

func (r *Repo) nodeUsage(ctx context.Context) map[string]corev1.ResourceList {
	nms, err := r.metrics.MetricsV1beta1().NodeMetricses().List(ctx, metav1.ListOptions{})
	if err != nil {
		r.log.Debug("Node metrics unavailable", "error", err)
		nms = &metricsv1beta1.NodeMetricsList{}
	}
	usage := make(map[string]corev1.ResourceList, len(nms.Items))
	for _, m := range nms.Items {
		usage[m.Name] = m.Usage
	}
	return usage
}

// podCounts counts non-terminated pods per node with a single list call.
func (r *Repo) podCounts(ctx context.Context) map[string]int {
	counts := map[string]int{}
	pods, err := r.core.CoreV1().Pods("").List(ctx, metav1.ListOptions{})
	if err != nil {
		r.log.Debug("Pod list unavailable", "error", err)
		return counts
	}
	for _, p := range pods.Items {
		if p.Spec.NodeName == "" || p.Status.Phase == corev1.PodSucceeded || p.Status.Phase == corev1.PodFailed {
			continue
		}
		counts[p.Spec.NodeName]++
	}
	return counts
}

func (r *Repo) sample(n *corev1.Node, u corev1.ResourceList, pods int, latency time.Duration) cluster.NodeSample {
	s := cluster.NodeSample{
		Name:      n.Name,
		Role:      roleOf(n),
		Status:    statusOf(n),
		Pods:      pods,
		LatencyMS: int(latency / time.Millisecond),
		UptimeS:   r.uptime(n),

		CPUCores:     int(n.Status.Capacity.Cpu().Value()),
		MemGB:        int(n.Status.Capacity.Memory().Value() / gib),
		DiskGB:       int(n.Status.Capacity.StorageEphemeral().Value() / gib),
		PodsCapacity: int(n.Status.Allocatable.Pods().Value()),
	}

	if u != nil {
		if q, ok := u[corev1.ResourceCPU]; ok {
			s.CPU = percentOf(q.MilliValue(), n.Status.Allocatable.Cpu().MilliValue())
		}
		if q, ok := u[corev1.ResourceMemory]; ok {
			s.Memory = percentOf(q.Value(), n.Status.Allocatable.Memory().Value())
		}
	}
	if hasCondition(n, corev1.NodeDiskPressure) {
		s.Disk = diskPressurePercent
	}
	return s
}

// uptime is the time since the node last became Ready, falling back to its
// creation time.
func (r *Repo) uptime(n *corev1.Node) int {
	since := n.CreationTimestamp.Time
	for _, c := range n.Status.Conditions {
		if c.Type == corev1.NodeReady && c.Status == corev1.ConditionTrue && !c.LastTransitionTime.IsZero() {
			since = c.LastTransitionTime.Time
		}
	}
	if since.IsZero() {
		return 0
	}
	if d := r.now().Sub(since); d > 0 {
		return int(d / time.Second)
	}
	return 0
}

func roleOf(n *corev1.Node) cluster.Role {
	for _, l := range []string{labelControlPlane, labelMaster} {
		if _, ok := n.Labels[l]; ok {
			return cluster.RoleMaster
		}
	}
	return cluster.RoleWorker
}

func statusOf(n *corev1.Node) cluster.Status {
	if hasCondition(n, corev1.NodeReady) {
		return cluster.StatusReady
	}
	return cluster.StatusNotReady
}

func hasCondition(n *corev1.Node, t corev1.NodeConditionType) bool {
	for _, c := range n.Status.Conditions {
		if c.Type == t {
			return c.Status == corev1.ConditionTrue
		}
	}
	return false
}

// percentOf rounds used/total to an integer percent in [0,100].
func percentOf(used, total int64) int {
	if total <= 0 {
		return 0
	}
	p := int(math.Round(float64(used) * 100 / float64(total)))
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}

var _ cluster.StateProvider = (*Repo)(nil)
