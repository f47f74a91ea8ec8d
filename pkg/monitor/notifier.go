package monitor

import (
	"context"

	"github.com/driftlock/syncenv/pkg/status"
)

// Notifier is the broadcast-style front-end over the same composition core,
// for callers that cannot consume channels (legacy call sites, UI bindings).
// Observers are plain callbacks; each registration immediately receives the
// current value, then every subsequent change.
//
// Callbacks run on the manager's update path and must return quickly.
type Notifier struct {
	m *Manager
}

// NewNotifier creates the callback front-end for an existing manager. Both
// front-ends share the manager's state and lifecycle; observers registered
// here coexist with channel subscribers.
func NewNotifier(m *Manager) *Notifier {
	return &Notifier{m: m}
}

// Manager returns the underlying composition core
func (n *Notifier) Manager() *Manager {
	return n.m
}

// Start delegates to the underlying manager
func (n *Notifier) Start(ctx context.Context) error {
	return n.m.Start(ctx)
}

// Stop delegates to the underlying manager. Registered observers survive a
// stop and keep firing after a restart; use the removal functions to detach.
func (n *Notifier) Stop() {
	n.m.Stop()
}

// EnvironmentStatus returns the current composite snapshot
func (n *Notifier) EnvironmentStatus() status.EnvironmentStatus {
	return n.m.EnvironmentStatus()
}

// OnNetworkStatusChange registers an observer for network snapshots.
// Returns a removal function.
func (n *Notifier) OnNetworkStatusChange(fn func(status.NetworkStatus)) func() {
	remove := n.m.networkL.Add(fn)
	fn(n.m.CheckNetworkStatus())
	return remove
}

// OnAccountStatusChange registers an observer for account snapshots.
// Returns a removal function.
func (n *Notifier) OnAccountStatusChange(fn func(status.AccountStatus)) func() {
	remove := n.m.accountL.Add(fn)
	fn(n.m.AccountStatus())
	return remove
}

// OnSyncEventChange registers an observer for sync-engine phases.
// Returns a removal function.
func (n *Notifier) OnSyncEventChange(fn func(status.SyncEvent)) func() {
	remove := n.m.eventL.Add(fn)
	fn(n.m.SyncEvent())
	return remove
}

// OnCloudDriveStatusChange registers an observer for cloud-drive
// availability flips. Returns a removal function.
func (n *Notifier) OnCloudDriveStatusChange(fn func(bool)) func() {
	remove := n.m.driveL.Add(fn)
	fn(n.m.IsCloudDriveAvailable())
	return remove
}

// OnEnvironmentStatusChange registers an observer for the composite status,
// fired once per underlying field change. Returns a removal function.
func (n *Notifier) OnEnvironmentStatusChange(fn func(status.EnvironmentStatus)) func() {
	remove := n.m.envL.Add(fn)
	fn(n.m.EnvironmentStatus())
	return remove
}
