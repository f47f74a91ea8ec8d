package status

// EnvironmentStatus is the composite snapshot across all monitored signals.
// It is recomputed on demand from the monitor's current per-signal values and
// never cached separately, so a read always reflects the latest write to each
// field. Consistency is per field, not a transactional multi-field snapshot.
type EnvironmentStatus struct {
	// Network is the current network path snapshot
	Network NetworkStatus `json:"network"`

	// Account is the current cloud account snapshot
	Account AccountStatus `json:"account"`

	// SyncEvent is the most recently observed sync-engine phase
	SyncEvent SyncEvent `json:"syncEvent"`

	// IsCloudDriveAvailable is true while a cloud-drive identity token is present
	IsCloudDriveAvailable bool `json:"isCloudDriveAvailable"`
}

// DefaultEnvironmentStatus returns the snapshot a monitor holds before any
// signal has been observed: disconnected, account undetermined, idle, no
// cloud drive.
func DefaultEnvironmentStatus() EnvironmentStatus {
	return EnvironmentStatus{
		Network:   DisconnectedNetworkStatus(),
		Account:   DefaultAccountStatus(),
		SyncEvent: SyncEventIdle,
	}
}

// IsSyncReady reports whether sync attempts are worth making: the network is
// connected, the account is available, and the device is not in low-power mode
func (e EnvironmentStatus) IsSyncReady() bool {
	return e.Network.IsConnected && e.Account.Available && !e.Network.IsLowPowerModeEnabled
}

// IsCloudDriveReady reports whether cloud-drive operations are worth making:
// sync readiness plus a present identity token
func (e EnvironmentStatus) IsCloudDriveReady() bool {
	return e.IsSyncReady() && e.IsCloudDriveAvailable
}

// IsSyncing reports whether the sync engine is actively working
func (e EnvironmentStatus) IsSyncing() bool {
	return e.SyncEvent.IsActive()
}

// IsSuitableForLargeTransfer reports whether the current path should carry
// bulk traffic: connected, not constrained, not expensive. Low-power mode
// deliberately does not gate this.
func (e EnvironmentStatus) IsSuitableForLargeTransfer() bool {
	return e.Network.IsConnected && !e.Network.IsConstrained && !e.Network.IsExpensive
}
