package status

// SyncEvent represents the most recently observed phase of the underlying
// sync engine
type SyncEvent string

const (
	// SyncEventImporting means the engine is pulling remote changes
	SyncEventImporting SyncEvent = "importing"

	// SyncEventExporting means the engine is pushing local changes
	SyncEventExporting SyncEvent = "exporting"

	// SyncEventSetup means the engine is preparing the sync container
	SyncEventSetup SyncEvent = "setup"

	// SyncEventIdle means no sync activity is in progress. Idle is both the
	// initial value and the fallback whenever a phase notification cannot be
	// parsed or a phase-finish signal arrives.
	SyncEventIdle SyncEvent = "idle"
)

// IsActive reports whether the event denotes sync work in progress
func (e SyncEvent) IsActive() bool {
	switch e {
	case SyncEventImporting, SyncEventExporting, SyncEventSetup:
		return true
	default:
		return false
	}
}
