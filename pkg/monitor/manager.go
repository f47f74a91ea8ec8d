// Package monitor composes heterogeneous platform signals — network path,
// cloud account, sync-engine phase, cloud-drive identity — into a single
// observable sync-environment status. It exposes the composite through pull
// accessors and push streams, with an idempotent start/stop lifecycle.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/driftlock/syncenv/internal/broadcast"
	"github.com/driftlock/syncenv/pkg/platform"
	"github.com/driftlock/syncenv/pkg/status"
)

// updateQueueSize is the depth of the internal update channel between the
// signal adapters and the run loop
const updateQueueSize = 64

// ErrClosed is returned by Start after the manager has been closed
var ErrClosed = errors.New("monitor: manager is closed")

// ErrNoAccountQuerier is returned by CheckAccountStatus when no account
// collaborator was configured
var ErrNoAccountQuerier = errors.New("monitor: no account querier configured")

// signalKind identifies one monitored signal
type signalKind string

const (
	signalNetwork    signalKind = "network"
	signalAccount    signalKind = "account"
	signalSyncEvent  signalKind = "syncEvent"
	signalCloudDrive signalKind = "cloudDrive"
)

// update is one typed status value travelling from an adapter to the run loop
type update struct {
	kind       signalKind
	network    status.NetworkStatus
	account    status.AccountStatus
	event      status.SyncEvent
	cloudDrive bool
}

// Manager is the single authoritative holder of the four current signal
// values. All field writes funnel through one apply path, so per-signal
// emission order matches notification arrival order.
//
// The zero Manager is not usable; construct with New.
type Manager struct {
	cfg *config

	// mu guards the four current values. Writes happen only in apply;
	// publishing occurs under the same critical section so seeded
	// subscriptions can never miss an intervening change.
	mu         sync.RWMutex
	network    status.NetworkStatus
	account    status.AccountStatus
	syncEvent  status.SyncEvent
	cloudDrive bool

	networkB *broadcast.Broadcaster[status.NetworkStatus]
	accountB *broadcast.Broadcaster[status.AccountStatus]
	eventB   *broadcast.Broadcaster[status.SyncEvent]
	driveB   *broadcast.Broadcaster[bool]
	envB     *broadcast.Broadcaster[status.EnvironmentStatus]

	networkL *broadcast.ListenerRegistry[status.NetworkStatus]
	accountL *broadcast.ListenerRegistry[status.AccountStatus]
	eventL   *broadcast.ListenerRegistry[status.SyncEvent]
	driveL   *broadcast.ListenerRegistry[bool]
	envL     *broadcast.ListenerRegistry[status.EnvironmentStatus]

	quotaFired atomic.Bool

	// lifecycleMu serializes Start/Stop/Close
	lifecycleMu sync.Mutex
	running     bool
	cancel      context.CancelFunc
	wg          *sync.WaitGroup

	closeOnce sync.Once
	closed    chan struct{}
}

// New creates a manager with the given options. The manager starts in the
// stopped state holding the documented default snapshot: network
// disconnected, account not-available (could-not-determine), sync event
// idle, cloud drive unavailable.
func New(opts ...Option) *Manager {
	cfg := newConfig(opts...)
	def := status.DefaultEnvironmentStatus()

	return &Manager{
		cfg:        cfg,
		network:    def.Network,
		account:    def.Account,
		syncEvent:  def.SyncEvent,
		cloudDrive: def.IsCloudDriveAvailable,

		networkB: broadcast.New[status.NetworkStatus](cfg.streamBufferSize),
		accountB: broadcast.New[status.AccountStatus](cfg.streamBufferSize),
		eventB:   broadcast.New[status.SyncEvent](cfg.streamBufferSize),
		driveB:   broadcast.New[bool](cfg.streamBufferSize),
		envB:     broadcast.New[status.EnvironmentStatus](cfg.streamBufferSize),

		networkL: broadcast.NewListenerRegistry[status.NetworkStatus](),
		accountL: broadcast.NewListenerRegistry[status.AccountStatus](),
		eventL:   broadcast.NewListenerRegistry[status.SyncEvent](),
		driveL:   broadcast.NewListenerRegistry[bool](),
		envL:     broadcast.NewListenerRegistry[status.EnvironmentStatus](),

		closed: make(chan struct{}),
	}
}

// Start activates the adapters selected by the configured monitoring
// options. Calling Start while already running performs a clean restart:
// existing subscriptions are stopped first. Start never fails because a
// collaborator is missing; unusable adapters are skipped with a log line.
func (m *Manager) Start(ctx context.Context) error {
	m.lifecycleMu.Lock()
	defer m.lifecycleMu.Unlock()

	select {
	case <-m.closed:
		return ErrClosed
	default:
	}

	m.stopLocked()

	sessionCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	updates := make(chan update, updateQueueSize)
	wg := &sync.WaitGroup{}
	m.wg = wg

	wg.Add(1)
	go func() {
		defer wg.Done()
		m.run(sessionCtx, updates)
	}()

	dispatch := func(u update) {
		select {
		case updates <- u:
		case <-sessionCtx.Done():
			// In-flight deliveries after Stop are dropped silently.
		}
	}

	opts := m.cfg.monitoringOptions
	if opts.Has(status.MonitorNetwork) {
		m.startNetworkAdapter(sessionCtx, wg, dispatch)
	}
	if opts.Has(status.MonitorAccount) {
		m.startAccountAdapter(sessionCtx, wg, dispatch)
	}
	if opts.Has(status.MonitorSyncEvent) {
		m.startSyncEventAdapter(sessionCtx, wg, dispatch)
	}
	if opts.Has(status.MonitorCloudDrive) {
		m.startCloudDriveAdapter(sessionCtx, wg, dispatch)
	}

	m.running = true
	m.cfg.logger.Debug("monitor started", "options", opts.String())
	return nil
}

// Stop cancels all active adapters and closes every open stream. Subscribers
// observe end-of-stream, not an error. Stopping a stopped manager is a no-op.
func (m *Manager) Stop() {
	m.lifecycleMu.Lock()
	defer m.lifecycleMu.Unlock()
	m.stopLocked()
}

// stopLocked requires lifecycleMu to be held
func (m *Manager) stopLocked() {
	if !m.running {
		return
	}

	m.cancel()
	m.wg.Wait()

	m.networkB.CloseSubscribers()
	m.accountB.CloseSubscribers()
	m.eventB.CloseSubscribers()
	m.driveB.CloseSubscribers()
	m.envB.CloseSubscribers()

	m.running = false
	m.cfg.logger.Debug("monitor stopped")
}

// Close stops the manager and releases it permanently. It is the safety net
// against a forgotten Stop: once the owner is done with the manager, Close
// guarantees the network monitor and every other adapter is torn down.
// A closed manager cannot be restarted.
func (m *Manager) Close() {
	m.Stop()
	m.closeOnce.Do(func() {
		close(m.closed)
	})
}

// IsRunning reports whether the manager currently has active adapters
func (m *Manager) IsRunning() bool {
	m.lifecycleMu.Lock()
	defer m.lifecycleMu.Unlock()
	return m.running
}

// run is the single-owner loop: every adapter-originated field write is
// applied here, in arrival order
func (m *Manager) run(ctx context.Context, updates <-chan update) {
	for {
		select {
		case <-ctx.Done():
			return
		case u := <-updates:
			m.apply(u)
		}
	}
}

// apply performs the single field-update path: dedup where applicable, field
// write, fan-out to the per-signal and combined subscriber sets, then the
// legacy listeners outside the lock.
func (m *Manager) apply(u update) {
	m.mu.Lock()

	switch u.kind {
	case signalNetwork:
		m.network = u.network
		m.networkB.Publish(u.network)
	case signalAccount:
		m.account = u.account
		m.accountB.Publish(u.account)
	case signalSyncEvent:
		m.syncEvent = u.event
		m.eventB.Publish(u.event)
	case signalCloudDrive:
		if m.cloudDrive == u.cloudDrive {
			// Identical signal: no stream events, no subscriber work.
			m.mu.Unlock()
			return
		}
		m.cloudDrive = u.cloudDrive
		m.driveB.Publish(u.cloudDrive)
	}

	env := m.environmentLocked()
	m.envB.Publish(env)
	m.mu.Unlock()

	ctx := context.Background()
	m.cfg.metrics.RecordStatusChange(ctx, string(u.kind))
	m.cfg.metrics.RecordSyncReady(ctx, env.IsSyncReady())

	switch u.kind {
	case signalNetwork:
		m.networkL.Notify(u.network)
	case signalAccount:
		m.accountL.Notify(u.account)
	case signalSyncEvent:
		m.eventL.Notify(u.event)
	case signalCloudDrive:
		m.driveL.Notify(u.cloudDrive)
	}
	m.envL.Notify(env)
}

// environmentLocked requires m.mu to be held
func (m *Manager) environmentLocked() status.EnvironmentStatus {
	return status.EnvironmentStatus{
		Network:               m.network,
		Account:               m.account,
		SyncEvent:             m.syncEvent,
		IsCloudDriveAvailable: m.cloudDrive,
	}
}

// EnvironmentStatus returns the composite snapshot recomputed from the four
// current signal values
func (m *Manager) EnvironmentStatus() status.EnvironmentStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.environmentLocked()
}

// CheckNetworkStatus returns the last-received network snapshot. It never
// queries the platform; real-time values come only from the push adapter.
func (m *Manager) CheckNetworkStatus() status.NetworkStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.network
}

// AccountStatus returns the cached account snapshot
func (m *Manager) AccountStatus() status.AccountStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.account
}

// SyncEvent returns the most recently observed sync-engine phase
func (m *Manager) SyncEvent() status.SyncEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.syncEvent
}

// IsCloudDriveAvailable returns the cached cloud-drive token presence
func (m *Manager) IsCloudDriveAvailable() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cloudDrive
}

// CheckAccountStatus queries the account collaborator once and republishes
// the mapped result. On query failure the cached status is left untouched
// and the error is returned: a failed query means "could not ask", not
// "account became unavailable".
//
// A check racing a background re-check is accepted: both apply their results
// in delivery order, last write wins.
func (m *Manager) CheckAccountStatus(ctx context.Context) (status.AccountStatus, error) {
	querier := m.cfg.accountQuerier
	if querier == nil {
		return status.AccountStatus{}, ErrNoAccountQuerier
	}

	state, err := querier.Query(ctx)
	if err != nil {
		return status.AccountStatus{}, fmt.Errorf("account status query failed: %w", err)
	}

	st := platform.AccountStatusFromState(state)
	m.apply(update{kind: signalAccount, account: st})
	return st, nil
}

// RefreshCloudDriveStatus forces a synchronous recheck of the identity
// token and republishes only if the boolean actually changed. Returns the
// current availability.
func (m *Manager) RefreshCloudDriveStatus() bool {
	src := m.cfg.tokenSource
	if src == nil {
		return m.IsCloudDriveAvailable()
	}

	present := src.TokenPresent()
	m.apply(update{kind: signalCloudDrive, cloudDrive: present})
	return present
}

// SetNetworkStatus applies a network snapshot through the regular
// field-update path. Intended for tests and for applications providing
// their own signal integration.
func (m *Manager) SetNetworkStatus(ns status.NetworkStatus) {
	m.apply(update{kind: signalNetwork, network: ns})
}

// SetAccountStatus applies an account snapshot through the regular
// field-update path. Intended for tests and custom integrations.
func (m *Manager) SetAccountStatus(as status.AccountStatus) {
	m.apply(update{kind: signalAccount, account: as})
}

// SetSyncEvent applies a sync-engine phase through the regular field-update
// path. Intended for tests and custom integrations.
func (m *Manager) SetSyncEvent(e status.SyncEvent) {
	m.apply(update{kind: signalSyncEvent, event: e})
}

// SetCloudDriveAvailable applies a cloud-drive availability flag through the
// regular field-update path, including its dedup check. Intended for tests
// and custom integrations.
func (m *Manager) SetCloudDriveAvailable(available bool) {
	m.apply(update{kind: signalCloudDrive, cloudDrive: available})
}

// handleQuotaExceeded fires the quota handler at most once per manager
// lifetime. The latch never auto-resets: the handler is assumed to trigger a
// user-facing flow that must be acknowledged before the app wants another
// notification.
func (m *Manager) handleQuotaExceeded(err error) {
	if !m.quotaFired.CompareAndSwap(false, true) {
		return
	}

	m.cfg.logger.Error("cloud storage quota exceeded", "error", err)
	if h := m.cfg.quotaHandler; h != nil {
		go h()
	}
}

// ResetQuotaExceededLatch re-arms the quota handler so it can fire again.
// Intended for tests exercising repeated quota scenarios.
func (m *Manager) ResetQuotaExceededLatch() {
	m.quotaFired.Store(false)
}

// WaitUntilSyncReady blocks until the environment becomes sync-ready or ctx
// is cancelled. Returns true as soon as readiness holds — immediately,
// without subscribing, when it already does.
func (m *Manager) WaitUntilSyncReady(ctx context.Context) bool {
	return m.waitUntilSyncReady(ctx, nil)
}

// WaitUntilSyncReadyWithTimeout is WaitUntilSyncReady bounded by a timeout.
// A zero timeout degenerates to an instant readiness check.
func (m *Manager) WaitUntilSyncReadyWithTimeout(ctx context.Context, timeout time.Duration) bool {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	return m.waitUntilSyncReady(ctx, timer.C)
}

// waitUntilSyncReady resolves on the first combined-stream update where
// readiness holds, or false once the deadline channel fires. A nil deadline
// waits indefinitely. The subscription never outlives the wait.
func (m *Manager) waitUntilSyncReady(ctx context.Context, deadline <-chan time.Time) bool {
	start := time.Now()
	record := func(ready bool) bool {
		m.cfg.metrics.RecordWaitDuration(context.Background(), time.Since(start), ready)
		return ready
	}

	if m.EnvironmentStatus().IsSyncReady() {
		return record(true)
	}

	m.mu.RLock()
	id, ch := m.envB.SubscribeSeeded(m.environmentLocked())
	m.mu.RUnlock()
	defer m.envB.Unsubscribe(id)

	for {
		select {
		case <-ctx.Done():
			return record(false)
		case <-deadline:
			return record(false)
		case env, ok := <-ch:
			if !ok {
				// Manager stopped; readiness will not arrive on this stream.
				return record(false)
			}
			if env.IsSyncReady() {
				return record(true)
			}
		}
	}
}

// NetworkStatusStream returns a stream that immediately yields the current
// network snapshot, then every subsequent change in arrival order. The
// stream ends when ctx is cancelled, the manager stops, or the manager is
// closed. Each call creates an independent subscription.
func (m *Manager) NetworkStatusStream(ctx context.Context) <-chan status.NetworkStatus {
	m.mu.RLock()
	id, ch := m.networkB.SubscribeSeeded(m.network)
	m.mu.RUnlock()
	m.reapOnDone(ctx, func() { m.networkB.Unsubscribe(id) })
	return ch
}

// AccountStatusStream returns a stream of account snapshots, current value
// first
func (m *Manager) AccountStatusStream(ctx context.Context) <-chan status.AccountStatus {
	m.mu.RLock()
	id, ch := m.accountB.SubscribeSeeded(m.account)
	m.mu.RUnlock()
	m.reapOnDone(ctx, func() { m.accountB.Unsubscribe(id) })
	return ch
}

// SyncEventStream returns a stream of sync-engine phases, current value first
func (m *Manager) SyncEventStream(ctx context.Context) <-chan status.SyncEvent {
	m.mu.RLock()
	id, ch := m.eventB.SubscribeSeeded(m.syncEvent)
	m.mu.RUnlock()
	m.reapOnDone(ctx, func() { m.eventB.Unsubscribe(id) })
	return ch
}

// CloudDriveStatusStream returns a stream of cloud-drive availability flips,
// current value first
func (m *Manager) CloudDriveStatusStream(ctx context.Context) <-chan bool {
	m.mu.RLock()
	id, ch := m.driveB.SubscribeSeeded(m.cloudDrive)
	m.mu.RUnlock()
	m.reapOnDone(ctx, func() { m.driveB.Unsubscribe(id) })
	return ch
}

// EnvironmentStatusStream returns a stream of composite snapshots: the
// current composite first, then one emission per underlying field change
func (m *Manager) EnvironmentStatusStream(ctx context.Context) <-chan status.EnvironmentStatus {
	m.mu.RLock()
	id, ch := m.envB.SubscribeSeeded(m.environmentLocked())
	m.mu.RUnlock()
	m.reapOnDone(ctx, func() { m.envB.Unsubscribe(id) })
	return ch
}

// reapOnDone unsubscribes when the consumer's ctx ends or the manager is
// closed, whichever comes first. Unsubscribing an already-closed
// subscription is harmless.
func (m *Manager) reapOnDone(ctx context.Context, unsubscribe func()) {
	go func() {
		select {
		case <-ctx.Done():
		case <-m.closed:
		}
		unsubscribe()
	}()
}
