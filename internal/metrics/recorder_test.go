package metrics

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/clustertop/internal/cluster"
	"github.com/rileyhilliard/clustertop/internal/errors"
)

func TestRecorder_TickCompleted(t *testing.T) {
	r := NewRecorder()

	r.TickCompleted(cluster.Summary{
		TotalNodes: 4,
		ReadyNodes: 3,
		AvgCPU:     41,
		AvgMemory:  57,
		AlertsCrit: 2,
		AlertsWarn: 1,
		Health:     cluster.HealthCritical,
	}, 20*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.ticks))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.health))
	assert.Equal(t, 4.0, testutil.ToFloat64(r.nodes))
	assert.Equal(t, 3.0, testutil.ToFloat64(r.readyNodes))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.alerts.WithLabelValues("CRIT")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.alerts.WithLabelValues("WARN")))
	assert.Equal(t, 41.0, testutil.ToFloat64(r.avgCPU))
	assert.Equal(t, 57.0, testutil.ToFloat64(r.avgMemory))
	assert.Equal(t, 1, testutil.CollectAndCount(r.duration))
	assert.Greater(t, testutil.ToFloat64(r.lastSuccess), 0.0)
}

func TestRecorder_TickSkippedByReason(t *testing.T) {
	r := NewRecorder()

	r.TickSkipped(errors.ErrSource)
	r.TickSkipped(errors.ErrSource)
	r.TickSkipped(errors.ErrInvalidInput)

	expected := `
# HELP clustertop_tick_failures_total Ticks skipped, by reason.
# TYPE clustertop_tick_failures_total counter
clustertop_tick_failures_total{reason="INVALID_INPUT"} 1
clustertop_tick_failures_total{reason="SOURCE"} 2
`
	require.NoError(t, testutil.CollectAndCompare(r.skipped, strings.NewReader(expected)))
}

func TestRecorder_CapacityMismatch(t *testing.T) {
	r := NewRecorder()
	r.CapacityMismatch(12, 9)
	r.CapacityMismatch(12, 9)
	assert.Equal(t, 2.0, testutil.ToFloat64(r.mismatches))
}

func TestRecorder_HealthTracksLastTick(t *testing.T) {
	r := NewRecorder()
	r.TickCompleted(cluster.Summary{Health: cluster.HealthCritical}, 0)
	r.TickCompleted(cluster.Summary{Health: cluster.HealthHealthy}, 0)
	assert.Equal(t, 0.0, testutil.ToFloat64(r.health))
}

func TestServer_ServesMetrics(t *testing.T) {
	r := NewRecorder()
	r.TickSkipped(errors.ErrSource)

	srv, err := Listen("127.0.0.1:0", r, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx) }()

	resp, err := http.Get("http://" + srv.Addr() + "/metrics")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `clustertop_tick_failures_total{reason="SOURCE"} 1`)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestListen_AddressInUse(t *testing.T) {
	first, err := Listen("127.0.0.1:0", NewRecorder(), nil)
	require.NoError(t, err)
	defer first.listener.Close()

	_, err = Listen(first.Addr(), NewRecorder(), nil)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}
