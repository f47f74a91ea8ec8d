package monitor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftlock/syncenv/pkg/status"
)

func readyManager(t *testing.T) *Manager {
	t.Helper()
	m := New(WithMonitoringOptions(0))
	t.Cleanup(m.Close)
	m.SetNetworkStatus(connectedWifi())
	m.SetAccountStatus(status.AccountAvailable())
	return m
}

func TestWaitUntilSyncReady_AlreadyReady(t *testing.T) {
	t.Parallel()

	m := readyManager(t)
	require.True(t, m.EnvironmentStatus().IsSyncReady())

	done := make(chan bool, 1)
	go func() { done <- m.WaitUntilSyncReady(context.Background()) }()

	select {
	case ok := <-done:
		assert.True(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("wait did not return on an already-ready environment")
	}
}

func TestWaitUntilSyncReady_BecomesReady(t *testing.T) {
	t.Parallel()

	m := New(WithMonitoringOptions(0))
	defer m.Close()

	done := make(chan bool, 1)
	go func() { done <- m.WaitUntilSyncReady(context.Background()) }()

	// Partial readiness must not release the waiter.
	m.SetNetworkStatus(connectedWifi())
	select {
	case <-done:
		t.Fatal("wait resolved before the environment was ready")
	case <-time.After(50 * time.Millisecond):
	}

	m.SetAccountStatus(status.AccountAvailable())
	select {
	case ok := <-done:
		assert.True(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("wait did not resolve after readiness was reached")
	}
}

func TestWaitUntilSyncReady_ContextCancelled(t *testing.T) {
	t.Parallel()

	m := New(WithMonitoringOptions(0))
	defer m.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan bool, 1)
	go func() { done <- m.WaitUntilSyncReady(ctx) }()

	cancel()
	select {
	case ok := <-done:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("wait did not observe context cancellation")
	}
}

func TestWaitUntilSyncReadyWithTimeout_ZeroTimeout(t *testing.T) {
	t.Parallel()

	m := New(WithMonitoringOptions(0))
	defer m.Close()

	start := time.Now()
	ok := m.WaitUntilSyncReadyWithTimeout(context.Background(), 0)
	assert.False(t, ok)
	assert.Less(t, time.Since(start), time.Second, "zero timeout must not hang")
}

func TestWaitUntilSyncReadyWithTimeout_ZeroTimeoutAlreadyReady(t *testing.T) {
	t.Parallel()

	m := readyManager(t)
	assert.True(t, m.WaitUntilSyncReadyWithTimeout(context.Background(), 0))
}

func TestWaitUntilSyncReadyWithTimeout_Expires(t *testing.T) {
	t.Parallel()

	m := New(WithMonitoringOptions(0))
	defer m.Close()

	assert.False(t, m.WaitUntilSyncReadyWithTimeout(context.Background(), 30*time.Millisecond))
}

func TestWaitUntilSyncReady_StopReleasesWaiter(t *testing.T) {
	t.Parallel()

	m := New(WithMonitoringOptions(0))
	defer m.Close()
	require.NoError(t, m.Start(context.Background()))

	done := make(chan bool, 1)
	go func() { done <- m.WaitUntilSyncReady(context.Background()) }()

	time.Sleep(50 * time.Millisecond) // let the waiter subscribe
	m.Stop()

	select {
	case ok := <-done:
		assert.False(t, ok, "a stopped manager cannot deliver readiness")
	case <-time.After(2 * time.Second):
		t.Fatal("wait did not observe manager stop")
	}
}
