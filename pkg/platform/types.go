// Package platform defines the contracts the monitor requires from the
// platform-specific detection primitives: account status queries, network
// path reports, sync-engine event notifications, power-state toggles and
// cloud-drive identity tokens.
//
// The primitives themselves are external collaborators. This package only
// specifies the shape of the signals they deliver; implementations live in
// the embedding application or in the platform/local package.
package platform

import (
	"context"

	"github.com/driftlock/syncenv/pkg/status"
)

// AccountState is the raw outcome of an account status query
type AccountState string

const (
	// AccountStateAvailable means the account can back sync operations
	AccountStateAvailable AccountState = "available"

	// AccountStateCouldNotDetermine means the platform could not determine the state
	AccountStateCouldNotDetermine AccountState = "couldNotDetermine"

	// AccountStateNoAccount means no account is signed in
	AccountStateNoAccount AccountState = "noAccount"

	// AccountStateRestricted means account access is restricted
	AccountStateRestricted AccountState = "restricted"

	// AccountStateTemporarilyUnavailable means the account is temporarily unavailable
	AccountStateTemporarilyUnavailable AccountState = "temporarilyUnavailable"
)

// PathUpdate is a raw network path report
type PathUpdate struct {
	// Satisfied is true when the platform considers the path usable
	Satisfied bool

	// Interfaces are the transports the path currently uses
	Interfaces []status.Interface

	// Constrained is true when the path is in data-saver mode
	Constrained bool

	// Expensive is true when the path is metered or otherwise costly
	Expensive bool
}

// SyncEventNotification is a raw sync-engine change notification. Payload is
// the notification body as delivered by the engine (JSON); parsing happens in
// the monitor's adapter, and an unparsable payload simply reads as idle.
type SyncEventNotification struct {
	// Payload is the raw notification body
	Payload []byte

	// Err is the error attached to the notification, if any
	Err error
}

// AccountQuerier queries the current cloud account state on demand.
//
//go:generate mockgen -destination=mocks/mock_platform.go -package=mocks -source=types.go AccountQuerier,PathMonitor,PowerStateSource,SyncEventSource,UbiquityTokenSource
type AccountQuerier interface {
	// Query returns the current account state. Errors indicate the query
	// itself could not complete, not that the account is unavailable.
	Query(ctx context.Context) (AccountState, error)

	// Changes returns a channel that receives an element whenever the
	// platform reports the account may have changed. The notification
	// carries no payload; the adapter re-queries. Closed when ctx is
	// cancelled.
	Changes(ctx context.Context) (<-chan struct{}, error)
}

// PathMonitor delivers network path reports
type PathMonitor interface {
	// CurrentPath returns the last known path synchronously. Used once at
	// adapter startup so the monitor does not wait for the first change.
	CurrentPath() PathUpdate

	// Updates returns a channel of path reports. The channel is closed when
	// ctx is cancelled.
	Updates(ctx context.Context) (<-chan PathUpdate, error)
}

// PowerStateSource reports device low-power mode
type PowerStateSource interface {
	// IsLowPowerModeEnabled returns the current low-power flag
	IsLowPowerModeEnabled() bool

	// Changes returns a channel that receives an element whenever the
	// low-power flag toggles. The notification carries no payload; the
	// adapter re-reads the flag. Closed when ctx is cancelled.
	Changes(ctx context.Context) (<-chan struct{}, error)
}

// SyncEventSource delivers sync-engine change notifications for a container
type SyncEventSource interface {
	// Events returns a channel of raw notifications for the given container
	// identifier. An empty identifier selects the platform default container.
	// Closed when ctx is cancelled.
	Events(ctx context.Context, containerID string) (<-chan SyncEventNotification, error)
}

// UbiquityTokenSource reports cloud-drive identity token presence
type UbiquityTokenSource interface {
	// TokenPresent returns whether an identity token currently exists
	TokenPresent() bool

	// Changes returns a channel that receives an element whenever the
	// identity may have changed. Closed when ctx is cancelled.
	Changes(ctx context.Context) (<-chan struct{}, error)
}

// AccountStatusFromState maps a raw query outcome to an account status value.
// Every non-available state maps to not-available with the matching reason;
// unknown states read as could-not-determine.
func AccountStatusFromState(state AccountState) status.AccountStatus {
	switch state {
	case AccountStateAvailable:
		return status.AccountAvailable()
	case AccountStateNoAccount:
		return status.AccountNotAvailable(status.ReasonNoAccount)
	case AccountStateRestricted:
		return status.AccountNotAvailable(status.ReasonRestricted)
	case AccountStateTemporarilyUnavailable:
		return status.AccountNotAvailable(status.ReasonTemporarilyUnavailable)
	default:
		return status.AccountNotAvailable(status.ReasonCouldNotDetermine)
	}
}
