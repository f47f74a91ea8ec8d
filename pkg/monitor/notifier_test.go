package monitor

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftlock/syncenv/pkg/status"
)

// recorder collects observer callback invocations for assertions
type recorder[T any] struct {
	mu     sync.Mutex
	values []T
}

func (r *recorder[T]) record(v T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = append(r.values, v)
}

func (r *recorder[T]) snapshot() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]T(nil), r.values...)
}

func TestNotifier_ObserverReceivesCurrentValueThenChanges(t *testing.T) {
	t.Parallel()

	m := New(WithMonitoringOptions(0))
	defer m.Close()
	n := NewNotifier(m)

	var rec recorder[status.SyncEvent]
	remove := n.OnSyncEventChange(rec.record)
	defer remove()

	got := rec.snapshot()
	require.Len(t, got, 1, "registration delivers the current value immediately")
	assert.Equal(t, status.SyncEventIdle, got[0])

	m.SetSyncEvent(status.SyncEventImporting)
	got = rec.snapshot()
	require.Len(t, got, 2)
	assert.Equal(t, status.SyncEventImporting, got[1])
}

func TestNotifier_RemovalStopsDelivery(t *testing.T) {
	t.Parallel()

	m := New(WithMonitoringOptions(0))
	defer m.Close()
	n := NewNotifier(m)

	var rec recorder[bool]
	remove := n.OnCloudDriveStatusChange(rec.record)

	m.SetCloudDriveAvailable(true)
	require.Len(t, rec.snapshot(), 2)

	remove()
	remove() // removing twice is harmless

	m.SetCloudDriveAvailable(false)
	assert.Len(t, rec.snapshot(), 2, "no delivery after removal")
}

func TestNotifier_EnvironmentObserverFiresPerFieldChange(t *testing.T) {
	t.Parallel()

	m := New(WithMonitoringOptions(0))
	defer m.Close()
	n := NewNotifier(m)

	var rec recorder[status.EnvironmentStatus]
	remove := n.OnEnvironmentStatusChange(rec.record)
	defer remove()

	m.SetNetworkStatus(connectedWifi())
	m.SetAccountStatus(status.AccountAvailable())

	got := rec.snapshot()
	require.Len(t, got, 3, "initial value plus one per field change")
	assert.False(t, got[0].IsSyncReady())
	assert.False(t, got[1].IsSyncReady())
	assert.True(t, got[2].IsSyncReady())
}

func TestNotifier_ObserversSurviveRestart(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := New(WithMonitoringOptions(0))
	defer m.Close()
	n := NewNotifier(m)

	var rec recorder[status.AccountStatus]
	remove := n.OnAccountStatusChange(rec.record)
	defer remove()

	require.NoError(t, n.Start(ctx))
	n.Stop()
	require.NoError(t, n.Start(ctx))

	m.SetAccountStatus(status.AccountAvailable())
	got := rec.snapshot()
	require.Len(t, got, 2)
	assert.True(t, got[1].Available)
	n.Stop()
}

func TestNotifier_SharesStateWithChannelFrontEnd(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := New(WithMonitoringOptions(0))
	defer m.Close()
	n := NewNotifier(m)
	require.Same(t, m, n.Manager())

	ch := m.NetworkStatusStream(ctx)
	recv(t, ch)

	var rec recorder[status.NetworkStatus]
	remove := n.OnNetworkStatusChange(rec.record)
	defer remove()

	m.SetNetworkStatus(connectedWifi())

	assert.True(t, recv(t, ch).IsConnected, "channel subscriber sees the change")
	got := rec.snapshot()
	require.Len(t, got, 2)
	assert.True(t, got[1].IsConnected, "callback observer sees the same change")
	assert.True(t, n.EnvironmentStatus().Network.IsConnected)
}
