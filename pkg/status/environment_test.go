package status_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/driftlock/syncenv/pkg/status"
)

func TestEnvironmentStatus_Default(t *testing.T) {
	t.Parallel()

	def := status.DefaultEnvironmentStatus()

	assert.False(t, def.Network.IsConnected)
	assert.Equal(t, status.AccountNotAvailable(status.ReasonCouldNotDetermine), def.Account)
	assert.Equal(t, status.SyncEventIdle, def.SyncEvent)
	assert.False(t, def.IsCloudDriveAvailable)

	assert.False(t, def.IsSyncReady())
	assert.False(t, def.IsCloudDriveReady())
	assert.False(t, def.IsSyncing())
	assert.False(t, def.IsSuitableForLargeTransfer())
}

func TestEnvironmentStatus_IsSyncReady_Exhaustive(t *testing.T) {
	t.Parallel()

	// All combinations of the three axes that feed the predicate.
	for _, connected := range []bool{false, true} {
		for _, available := range []bool{false, true} {
			for _, lowPower := range []bool{false, true} {
				name := fmt.Sprintf("connected=%t available=%t lowPower=%t", connected, available, lowPower)
				t.Run(name, func(t *testing.T) {
					t.Parallel()

					env := status.EnvironmentStatus{
						Network:   networkWith(connected, lowPower),
						SyncEvent: status.SyncEventIdle,
					}
					if available {
						env.Account = status.AccountAvailable()
					} else {
						env.Account = status.AccountNotAvailable(status.ReasonNoAccount)
					}

					want := connected && available && !lowPower
					assert.Equal(t, want, env.IsSyncReady())
				})
			}
		}
	}
}

func TestEnvironmentStatus_IsSyncing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		event status.SyncEvent
		want  bool
	}{
		{status.SyncEventImporting, true},
		{status.SyncEventExporting, true},
		{status.SyncEventSetup, true},
		{status.SyncEventIdle, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.event), func(t *testing.T) {
			t.Parallel()

			env := status.EnvironmentStatus{SyncEvent: tt.event}
			assert.Equal(t, tt.want, env.IsSyncing())
		})
	}
}

func TestEnvironmentStatus_IsSuitableForLargeTransfer(t *testing.T) {
	t.Parallel()

	for _, connected := range []bool{false, true} {
		for _, constrained := range []bool{false, true} {
			for _, expensive := range []bool{false, true} {
				name := fmt.Sprintf("connected=%t constrained=%t expensive=%t", connected, constrained, expensive)
				t.Run(name, func(t *testing.T) {
					t.Parallel()

					env := status.EnvironmentStatus{
						Network: status.NetworkStatus{
							IsConnected:   connected,
							IsConstrained: constrained,
							IsExpensive:   expensive,
						},
					}

					want := connected && !constrained && !expensive
					assert.Equal(t, want, env.IsSuitableForLargeTransfer())
				})
			}
		}
	}
}

func TestEnvironmentStatus_IsCloudDriveReady(t *testing.T) {
	t.Parallel()

	ready := status.EnvironmentStatus{
		Network:               networkWith(true, false),
		Account:               status.AccountAvailable(),
		SyncEvent:             status.SyncEventIdle,
		IsCloudDriveAvailable: true,
	}
	assert.True(t, ready.IsCloudDriveReady())

	noToken := ready
	noToken.IsCloudDriveAvailable = false
	assert.False(t, noToken.IsCloudDriveReady())

	offline := ready
	offline.Network = status.DisconnectedNetworkStatus()
	assert.False(t, offline.IsCloudDriveReady())
}

func TestEnvironmentStatus_SyncPhaseDoesNotGateReadiness(t *testing.T) {
	t.Parallel()

	env := status.EnvironmentStatus{
		Network:   networkWith(true, false),
		Account:   status.AccountAvailable(),
		SyncEvent: status.SyncEventExporting,
	}

	assert.True(t, env.IsSyncing())
	assert.True(t, env.IsSyncReady(), "an active sync phase must not affect readiness")
}

func TestAccountStatus_Equality(t *testing.T) {
	t.Parallel()

	assert.Equal(t, status.AccountAvailable(), status.AccountAvailable())
	assert.Equal(t,
		status.AccountNotAvailable(status.ReasonRestricted),
		status.AccountNotAvailable(status.ReasonRestricted))
	assert.NotEqual(t,
		status.AccountNotAvailable(status.ReasonRestricted),
		status.AccountNotAvailable(status.ReasonNoAccount))
	assert.NotEqual(t, status.AccountAvailable(), status.AccountNotAvailable(status.ReasonNoAccount))
}

func networkWith(connected, lowPower bool) status.NetworkStatus {
	ns := status.DisconnectedNetworkStatus()
	if connected {
		ns = status.NetworkStatusFromPath(true, []status.Interface{status.InterfaceWifi}, false, false, lowPower)
	} else {
		ns.IsLowPowerModeEnabled = lowPower
	}
	return ns
}
