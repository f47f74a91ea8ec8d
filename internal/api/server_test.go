package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftlock/syncenv/internal/api"
	"github.com/driftlock/syncenv/internal/telemetry"
	"github.com/driftlock/syncenv/pkg/monitor"
	"github.com/driftlock/syncenv/pkg/status"
)

func newTestMonitor(t *testing.T) *monitor.Manager {
	t.Helper()
	m := monitor.New(monitor.WithMonitoringOptions(0))
	t.Cleanup(m.Close)
	return m
}

func TestHealthEndpoint(t *testing.T) {
	t.Parallel()

	server := api.NewServer(newTestMonitor(t))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var response map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	assert.Equal(t, "healthy", response["status"])
}

func TestStatusEndpointMounted(t *testing.T) {
	t.Parallel()

	m := newTestMonitor(t)
	m.SetSyncEvent(status.SyncEventImporting)
	server := api.NewServer(m)

	req := httptest.NewRequest(http.MethodGet, "/v0/status", nil)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var env status.EnvironmentStatus
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	assert.Equal(t, status.SyncEventImporting, env.SyncEvent)
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()

	registry := promclient.NewRegistry()
	provider, err := telemetry.NewMeterProvider(
		telemetry.WithTelemetryConfig(&telemetry.Config{Enabled: true}),
		telemetry.WithPrometheusRegistry(registry),
	)
	require.NoError(t, err)

	metrics, err := telemetry.NewMonitorMetrics(provider)
	require.NoError(t, err)
	metrics.RecordStatusChange(context.Background(), "network")

	server := api.NewServer(newTestMonitor(t), api.WithPrometheusRegistry(registry))

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.Contains(rr.Body.String(), "syncenv_status_changes_total"))
}

func TestMetricsEndpointAbsentWithoutRegistry(t *testing.T) {
	t.Parallel()

	server := api.NewServer(newTestMonitor(t))

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestWithMiddlewares(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	counting := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			next.ServeHTTP(w, r)
		})
	}

	server := api.NewServer(newTestMonitor(t), api.WithMiddlewares(counting))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	server.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, int32(1), calls.Load())
}

func TestWaitEndpointRespectsRequestContext(t *testing.T) {
	t.Parallel()

	server := api.NewServer(newTestMonitor(t))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	req := httptest.NewRequest(http.MethodGet, "/v0/status/wait?timeout=10s", nil).WithContext(ctx)
	rr := httptest.NewRecorder()

	start := time.Now()
	server.ServeHTTP(rr, req)
	assert.Less(t, time.Since(start), 5*time.Second, "request context must bound the wait")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"ready":false}`, rr.Body.String())
}
