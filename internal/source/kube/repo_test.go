package kube

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	k8sfake "k8s.io/client-go/kubernetes/fake"
	k8stesting "k8s.io/client-go/testing"
	metricsv1beta1 "k8s.io/metrics/pkg/apis/metrics/v1beta1"
	metricsfake "k8s.io/metrics/pkg/client/clientset/versioned/fake"

	"github.com/rileyhilliard/clustertop/internal/cluster"
	"github.com/rileyhilliard/clustertop/internal/errors"
)

var now = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

type nodeOpts struct {
	labels       map[string]string
	ready        bool
	diskPressure bool
	readySince   time.Time
}

func node(name string, o nodeOpts) *corev1.Node {
	readyStatus := corev1.ConditionFalse
	if o.ready {
		readyStatus = corev1.ConditionTrue
	}
	diskStatus := corev1.ConditionFalse
	if o.diskPressure {
		diskStatus = corev1.ConditionTrue
	}
	return &corev1.Node{
		ObjectMeta: metav1.ObjectMeta{
			Name:              name,
			Labels:            o.labels,
			CreationTimestamp: metav1.NewTime(now.Add(-24 * time.Hour)),
		},
		Status: corev1.NodeStatus{
			Capacity: corev1.ResourceList{
				corev1.ResourceCPU:              resource.MustParse("8"),
				corev1.ResourceMemory:           resource.MustParse("32Gi"),
				corev1.ResourceEphemeralStorage: resource.MustParse("500Gi"),
				corev1.ResourcePods:             resource.MustParse("220"),
			},
			Allocatable: corev1.ResourceList{
				corev1.ResourceCPU:    resource.MustParse("8"),
				corev1.ResourceMemory: resource.MustParse("32Gi"),
				corev1.ResourcePods:   resource.MustParse("110"),
			},
			Conditions: []corev1.NodeCondition{
				{Type: corev1.NodeReady, Status: readyStatus, LastTransitionTime: metav1.NewTime(o.readySince)},
				{Type: corev1.NodeDiskPressure, Status: diskStatus},
			},
		},
	}
}

func pod(name, nodeName string, phase corev1.PodPhase) *corev1.Pod {
	return &corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: "default"},
		Spec:       corev1.PodSpec{NodeName: nodeName},
		Status:     corev1.PodStatus{Phase: phase},
	}
}

func withNodeMetrics(items ...metricsv1beta1.NodeMetrics) *metricsfake.Clientset {
	mc := metricsfake.NewSimpleClientset()
	mc.PrependReactor("list", "nodes", func(k8stesting.Action) (bool, runtime.Object, error) {
		return true, &metricsv1beta1.NodeMetricsList{Items: items}, nil
	})
	return mc
}

func usage(name, cpu, mem string) metricsv1beta1.NodeMetrics {
	return metricsv1beta1.NodeMetrics{
		ObjectMeta: metav1.ObjectMeta{Name: name},
		Usage: corev1.ResourceList{
			corev1.ResourceCPU:    resource.MustParse(cpu),
			corev1.ResourceMemory: resource.MustParse(mem),
		},
	}
}

func newRepo(core *k8sfake.Clientset, mc *metricsfake.Clientset) *Repo {
	r := NewWithClients(core, mc, nil)
	r.now = func() time.Time { return now }
	return r
}

func TestClusterState_MapsNodes(t *testing.T) {
	core := k8sfake.NewSimpleClientset(
		node("cp-1", nodeOpts{labels: map[string]string{labelControlPlane: ""}, ready: true, readySince: now.Add(-time.Hour)}),
		node("w-1", nodeOpts{ready: false, diskPressure: true}),
		pod("a", "cp-1", corev1.PodRunning),
		pod("b", "w-1", corev1.PodRunning),
		pod("c", "w-1", corev1.PodPending),
		pod("d", "w-1", corev1.PodSucceeded),
		pod("e", "", corev1.PodPending),
	)
	mc := withNodeMetrics(usage("cp-1", "2", "8Gi"), usage("w-1", "7600m", "31Gi"))

	state, err := newRepo(core, mc).ClusterState(context.Background())
	require.NoError(t, err)
	require.Len(t, state.Nodes, 2)

	byName := map[string]cluster.NodeSample{}
	for _, n := range state.Nodes {
		byName[n.Name] = n
	}

	cp := byName["cp-1"]
	assert.Equal(t, cluster.RoleMaster, cp.Role)
	assert.Equal(t, cluster.StatusReady, cp.Status)
	assert.Equal(t, 25, cp.CPU)
	assert.Equal(t, 25, cp.Memory)
	assert.Equal(t, 0, cp.Disk)
	assert.Equal(t, 1, cp.Pods)
	assert.Equal(t, 3600, cp.UptimeS)
	assert.Equal(t, 8, cp.CPUCores)
	assert.Equal(t, 32, cp.MemGB)
	assert.Equal(t, 500, cp.DiskGB)
	assert.Equal(t, 110, cp.PodsCapacity)

	w := byName["w-1"]
	assert.Equal(t, cluster.RoleWorker, w.Role)
	assert.Equal(t, cluster.StatusNotReady, w.Status)
	assert.Equal(t, 95, w.CPU)
	assert.Equal(t, 97, w.Memory)
	assert.Equal(t, diskPressurePercent, w.Disk)
	assert.Equal(t, 2, w.Pods, "terminated and unscheduled pods are not counted")
	assert.Equal(t, 24*3600, w.UptimeS, "falls back to creation time")
}

func TestClusterState_MetricsUnavailable(t *testing.T) {
	core := k8sfake.NewSimpleClientset(node("w-1", nodeOpts{ready: true}))
	mc := metricsfake.NewSimpleClientset()
	mc.PrependReactor("list", "nodes", func(k8stesting.Action) (bool, runtime.Object, error) {
		return true, nil, stderrors.New("the server could not find the requested resource")
	})

	state, err := newRepo(core, mc).ClusterState(context.Background())
	require.NoError(t, err)
	require.Len(t, state.Nodes, 1)
	assert.Zero(t, state.Nodes[0].CPU)
	assert.Zero(t, state.Nodes[0].Memory)
}

func TestClusterState_NodeListFails(t *testing.T) {
	core := k8sfake.NewSimpleClientset()
	core.PrependReactor("list", "nodes", func(k8stesting.Action) (bool, runtime.Object, error) {
		return true, nil, stderrors.New("connection refused")
	})

	_, err := newRepo(core, withNodeMetrics()).ClusterState(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrSource))
	assert.Contains(t, errors.Summary(err), "connection refused")
}

func TestClusterState_NoNodes(t *testing.T) {
	_, err := newRepo(k8sfake.NewSimpleClientset(), withNodeMetrics()).ClusterState(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrInvalidInput))
}

func TestRoleOf(t *testing.T) {
	tests := []struct {
		name   string
		labels map[string]string
		want   cluster.Role
	}{
		{"control plane", map[string]string{labelControlPlane: ""}, cluster.RoleMaster},
		{"legacy master", map[string]string{labelMaster: "true"}, cluster.RoleMaster},
		{"worker", map[string]string{"node-role.kubernetes.io/worker": ""}, cluster.RoleWorker},
		{"no labels", nil, cluster.RoleWorker},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, roleOf(node("n", nodeOpts{labels: tt.labels})))
		})
	}
}

func TestPercentOf(t *testing.T) {
	tests := []struct {
		used, total int64
		want        int
	}{
		{0, 100, 0},
		{50, 100, 50},
		{1, 3, 33},
		{2, 3, 67},
		{150, 100, 100},
		{10, 0, 0},
		{-5, 100, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, percentOf(tt.used, tt.total), "%d/%d", tt.used, tt.total)
	}
}

func TestLoadRESTConfig_ExplicitMissingFile(t *testing.T) {
	_, err := New(Options{Kubeconfig: "/nonexistent/kubeconfig"}, nil)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}
