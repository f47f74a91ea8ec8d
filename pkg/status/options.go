package status

import "strings"

// MonitoringOptions is a bitset selecting which signal sources a monitor
// activates on start
type MonitoringOptions uint8

const (
	// MonitorNetwork activates the network path adapter
	MonitorNetwork MonitoringOptions = 1 << iota

	// MonitorAccount activates the account change adapter
	MonitorAccount

	// MonitorSyncEvent activates the sync-engine event adapter.
	// Without a configured container identifier the signal never leaves
	// idle; this is a silent no-op, not an error.
	MonitorSyncEvent

	// MonitorCloudDrive activates the cloud-drive identity adapter
	MonitorCloudDrive
)

// Named presets for common monitoring setups
const (
	// MonitorAll activates every adapter
	MonitorAll = MonitorNetwork | MonitorAccount | MonitorSyncEvent | MonitorCloudDrive

	// MonitorBasic activates network and account monitoring
	MonitorBasic = MonitorNetwork | MonitorAccount

	// MonitorDefault is the construction-time default: network, account and
	// cloud-drive monitoring
	MonitorDefault = MonitorNetwork | MonitorAccount | MonitorCloudDrive

	// MonitorSyncFocused activates network, account and sync-event monitoring
	MonitorSyncFocused = MonitorNetwork | MonitorAccount | MonitorSyncEvent
)

// Has reports whether all bits of opt are enabled
func (o MonitoringOptions) Has(opt MonitoringOptions) bool {
	return o&opt == opt
}

// String renders the enabled options as a comma-separated list
func (o MonitoringOptions) String() string {
	if o == 0 {
		return "none"
	}

	var parts []string
	if o.Has(MonitorNetwork) {
		parts = append(parts, "network")
	}
	if o.Has(MonitorAccount) {
		parts = append(parts, "account")
	}
	if o.Has(MonitorSyncEvent) {
		parts = append(parts, "syncEvent")
	}
	if o.Has(MonitorCloudDrive) {
		parts = append(parts, "cloudDrive")
	}
	return strings.Join(parts, ",")
}

// ParseMonitoringOptions maps a list of option names (or a preset name) to a
// bitset. Unknown names are ignored.
func ParseMonitoringOptions(names []string) MonitoringOptions {
	var opts MonitoringOptions
	for _, name := range names {
		switch strings.TrimSpace(name) {
		case "network":
			opts |= MonitorNetwork
		case "account":
			opts |= MonitorAccount
		case "syncEvent", "syncevent", "sync-event":
			opts |= MonitorSyncEvent
		case "cloudDrive", "clouddrive", "cloud-drive":
			opts |= MonitorCloudDrive
		case "all":
			opts |= MonitorAll
		case "basic":
			opts |= MonitorBasic
		case "default":
			opts |= MonitorDefault
		case "syncFocused", "syncfocused", "sync-focused":
			opts |= MonitorSyncFocused
		}
	}
	return opts
}
