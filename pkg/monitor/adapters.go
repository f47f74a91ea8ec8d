package monitor

import (
	"context"
	"log/slog"
	"sync"

	"github.com/tidwall/gjson"

	"github.com/driftlock/syncenv/pkg/platform"
	"github.com/driftlock/syncenv/pkg/status"
)

// The adapters are thin translators sharing one contract: subscribe to one
// external notification source, synthesize exactly one typed status value
// per raw notification, and hand it to the manager's single field-update
// path. Adapters never retry; a missed or malformed notification results in
// no status change (network, account) or an idle fallback (sync event).

// startNetworkAdapter launches the network path adapter. It re-evaluates on
// every path change and on every low-power-mode toggle; the latter reuses
// the last known path so the power flag is never stale.
func (m *Manager) startNetworkAdapter(ctx context.Context, wg *sync.WaitGroup, dispatch func(update)) {
	paths := m.cfg.pathMonitor
	if paths == nil {
		m.cfg.logger.Debug("network monitoring enabled but no path monitor configured, skipping")
		return
	}

	a := &networkAdapter{
		paths:  paths,
		power:  m.cfg.powerSource,
		logger: m.cfg.logger,
		emit: func(ns status.NetworkStatus) {
			dispatch(update{kind: signalNetwork, network: ns})
		},
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		a.run(ctx)
	}()
}

type networkAdapter struct {
	paths  platform.PathMonitor
	power  platform.PowerStateSource // may be nil
	logger *slog.Logger
	emit   func(status.NetworkStatus)
}

func (a *networkAdapter) run(ctx context.Context) {
	pathCh, err := a.paths.Updates(ctx)
	if err != nil {
		a.logger.Error("network path subscription failed", "error", err)
		return
	}

	var powerCh <-chan struct{}
	if a.power != nil {
		powerCh, err = a.power.Changes(ctx)
		if err != nil {
			a.logger.Error("power state subscription failed", "error", err)
			powerCh = nil
		}
	}

	// Seed from the synchronous snapshot so consumers do not wait for the
	// first change notification.
	lastPath := a.paths.CurrentPath()
	a.emit(a.translate(lastPath))

	for {
		select {
		case <-ctx.Done():
			return
		case p, ok := <-pathCh:
			if !ok {
				return
			}
			lastPath = p
			a.emit(a.translate(p))
		case _, ok := <-powerCh:
			if !ok {
				powerCh = nil
				continue
			}
			a.emit(a.translate(lastPath))
		}
	}
}

func (a *networkAdapter) translate(p platform.PathUpdate) status.NetworkStatus {
	lowPower := a.power != nil && a.power.IsLowPowerModeEnabled()
	return status.NetworkStatusFromPath(p.Satisfied, p.Interfaces, p.Constrained, p.Expensive, lowPower)
}

// startAccountAdapter launches the account adapter: one best-effort initial
// query, then a re-query on every account-changed notification.
func (m *Manager) startAccountAdapter(ctx context.Context, wg *sync.WaitGroup, dispatch func(update)) {
	querier := m.cfg.accountQuerier
	if querier == nil {
		m.cfg.logger.Debug("account monitoring enabled but no account querier configured, skipping")
		return
	}

	a := &accountAdapter{
		querier: querier,
		logger:  m.cfg.logger,
		emit: func(as status.AccountStatus) {
			dispatch(update{kind: signalAccount, account: as})
		},
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		a.run(ctx)
	}()
}

type accountAdapter struct {
	querier platform.AccountQuerier
	logger  *slog.Logger
	emit    func(status.AccountStatus)
}

func (a *accountAdapter) run(ctx context.Context) {
	changes, err := a.querier.Changes(ctx)
	if err != nil {
		a.logger.Error("account change subscription failed", "error", err)
		changes = nil
	}

	// Best-effort initial check; failure is only logged.
	a.check(ctx)

	if changes == nil {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-changes:
			if !ok {
				return
			}
			a.check(ctx)
		}
	}
}

// check re-queries and emits on success. A failed query leaves the prior
// cached value untouched: a transient failure must not falsely report the
// account as unavailable to gated sync logic.
func (a *accountAdapter) check(ctx context.Context) {
	state, err := a.querier.Query(ctx)
	if err != nil {
		a.logger.Error("account status query failed", "error", err)
		return
	}
	a.emit(platform.AccountStatusFromState(state))
}

// startSyncEventAdapter launches the sync-event adapter. Without a container
// identifier the signal stays idle forever; that is a silent no-op, not an
// error.
func (m *Manager) startSyncEventAdapter(ctx context.Context, wg *sync.WaitGroup, dispatch func(update)) {
	source := m.cfg.eventSource
	if source == nil {
		m.cfg.logger.Debug("sync-event monitoring enabled but no event source configured, skipping")
		return
	}
	if m.cfg.containerID == "" {
		m.cfg.logger.Debug("sync-event monitoring enabled but no container identifier configured, skipping")
		return
	}

	a := &syncEventAdapter{
		source:         source,
		containerID:    m.cfg.containerID,
		showEventInLog: m.cfg.showEventInLog,
		logger:         m.cfg.logger,
		emit: func(e status.SyncEvent) {
			dispatch(update{kind: signalSyncEvent, event: e})
		},
		onQuota: m.handleQuotaExceeded,
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		a.run(ctx)
	}()
}

type syncEventAdapter struct {
	source         platform.SyncEventSource
	containerID    string
	showEventInLog bool
	logger         *slog.Logger
	emit           func(status.SyncEvent)
	onQuota        func(error)
}

func (a *syncEventAdapter) run(ctx context.Context) {
	events, err := a.source.Events(ctx, a.containerID)
	if err != nil {
		a.logger.Error("sync event subscription failed", "error", err, "container", a.containerID)
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-events:
			if !ok {
				return
			}
			a.handle(n)
		}
	}
}

func (a *syncEventAdapter) handle(n platform.SyncEventNotification) {
	if a.showEventInLog {
		a.logger.Debug("sync event notification", "payload", string(n.Payload), "error", n.Err)
	}

	// Quota inspection happens regardless of phase and of parseability.
	if platform.IsQuotaExceeded(n.Err) {
		a.onQuota(n.Err)
	}

	a.emit(parseSyncEvent(n.Payload))
}

// parseSyncEvent maps a raw notification payload to a sync phase. Anything
// unparsable, unknown or finished reads as idle.
func parseSyncEvent(payload []byte) status.SyncEvent {
	if !gjson.ValidBytes(payload) {
		return status.SyncEventIdle
	}
	if gjson.GetBytes(payload, "finished").Bool() {
		return status.SyncEventIdle
	}

	switch gjson.GetBytes(payload, "type").String() {
	case "import":
		return status.SyncEventImporting
	case "export":
		return status.SyncEventExporting
	case "setup":
		return status.SyncEventSetup
	default:
		return status.SyncEventIdle
	}
}

// startCloudDriveAdapter launches the cloud-drive adapter: token presence at
// start, then a recheck on every identity-changed notification. The manager
// dedups, so only actual boolean flips reach subscribers.
func (m *Manager) startCloudDriveAdapter(ctx context.Context, wg *sync.WaitGroup, dispatch func(update)) {
	tokens := m.cfg.tokenSource
	if tokens == nil {
		m.cfg.logger.Debug("cloud-drive monitoring enabled but no token source configured, skipping")
		return
	}

	a := &cloudDriveAdapter{
		tokens: tokens,
		logger: m.cfg.logger,
		emit: func(present bool) {
			dispatch(update{kind: signalCloudDrive, cloudDrive: present})
		},
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		a.run(ctx)
	}()
}

type cloudDriveAdapter struct {
	tokens platform.UbiquityTokenSource
	logger *slog.Logger
	emit   func(bool)
}

func (a *cloudDriveAdapter) run(ctx context.Context) {
	changes, err := a.tokens.Changes(ctx)
	if err != nil {
		a.logger.Error("ubiquity identity subscription failed", "error", err)
		changes = nil
	}

	a.emit(a.tokens.TokenPresent())

	if changes == nil {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-changes:
			if !ok {
				return
			}
			a.emit(a.tokens.TokenPresent())
		}
	}
}
