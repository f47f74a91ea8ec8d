package status

// UnavailableReason explains why the cloud account is not usable
type UnavailableReason string

const (
	// ReasonCouldNotDetermine means the account state could not be determined
	ReasonCouldNotDetermine UnavailableReason = "couldNotDetermine"

	// ReasonNoAccount means no account is signed in on the device
	ReasonNoAccount UnavailableReason = "noAccount"

	// ReasonRestricted means the account exists but access is restricted
	ReasonRestricted UnavailableReason = "restricted"

	// ReasonTemporarilyUnavailable means the account is temporarily unavailable
	ReasonTemporarilyUnavailable UnavailableReason = "temporarilyUnavailable"
)

// AccountStatus is an immutable snapshot of cloud account availability.
// Two statuses compare equal iff both are available, or both are unavailable
// for the same reason.
type AccountStatus struct {
	// Available is true when the account can back sync operations
	Available bool `json:"available"`

	// Reason is set only when Available is false
	Reason UnavailableReason `json:"reason,omitempty"`
}

// AccountAvailable returns the available account status
func AccountAvailable() AccountStatus {
	return AccountStatus{Available: true}
}

// AccountNotAvailable returns an unavailable account status with the given reason
func AccountNotAvailable(reason UnavailableReason) AccountStatus {
	return AccountStatus{Reason: reason}
}

// DefaultAccountStatus returns the snapshot used before any account query has
// completed: not available, reason could-not-determine
func DefaultAccountStatus() AccountStatus {
	return AccountNotAvailable(ReasonCouldNotDetermine)
}
