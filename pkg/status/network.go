// Package status defines the immutable value types published by the
// sync-environment monitor: network, account, sync-event and composite
// environment snapshots, plus the monitoring options bitset.
package status

// Interface represents the dominant physical transport of a network path
type Interface string

const (
	// InterfaceWifi is a Wi-Fi transport
	InterfaceWifi Interface = "wifi"

	// InterfaceCellular is a cellular transport
	InterfaceCellular Interface = "cellular"

	// InterfaceWiredEthernet is a wired ethernet transport
	InterfaceWiredEthernet Interface = "wiredEthernet"

	// InterfaceLoopback is the loopback interface
	InterfaceLoopback Interface = "loopback"

	// InterfaceOther is any transport not covered by the specific values,
	// including virtual interfaces such as VPN tunnels
	InterfaceOther Interface = "other"
)

// interfacePriority orders interfaces for dominant-transport selection.
// Lower value wins.
var interfacePriority = map[Interface]int{
	InterfaceWifi:          0,
	InterfaceCellular:      1,
	InterfaceWiredEthernet: 2,
	InterfaceLoopback:      3,
	InterfaceOther:         4,
}

// IsPhysical reports whether the interface is a real link-layer transport.
// Loopback and virtual interfaces do not count: a path that is reachable
// only through them cannot carry sync traffic.
func (i Interface) IsPhysical() bool {
	switch i {
	case InterfaceWifi, InterfaceCellular, InterfaceWiredEthernet:
		return true
	default:
		return false
	}
}

// ConnectivityState indicates whether a network path is usable
type ConnectivityState string

const (
	// ConnectivityConnected means the path is satisfied through a physical interface
	ConnectivityConnected ConnectivityState = "connected"

	// ConnectivityDisconnected means no usable physical path exists
	ConnectivityDisconnected ConnectivityState = "disconnected"
)

// Connectivity describes the current network path. It never holds more than
// one interface: when several are present the dominant one is selected by
// priority (wifi > cellular > wiredEthernet > loopback > other).
type Connectivity struct {
	// State is connected or disconnected
	State ConnectivityState `json:"state"`

	// Interface is the dominant transport; empty when disconnected
	Interface Interface `json:"interface,omitempty"`
}

// ConnectedVia returns a connected Connectivity over the given interface
func ConnectedVia(iface Interface) Connectivity {
	return Connectivity{State: ConnectivityConnected, Interface: iface}
}

// Disconnected returns the disconnected Connectivity
func Disconnected() Connectivity {
	return Connectivity{State: ConnectivityDisconnected}
}

// IsConnected reports whether the connectivity is in the connected state
func (c Connectivity) IsConnected() bool {
	return c.State == ConnectivityConnected
}

// NetworkStatus is an immutable snapshot of the device network path.
// The zero value is fully disconnected with all flags false.
type NetworkStatus struct {
	// IsConnected is true iff Connectivity is in the connected state
	IsConnected bool `json:"isConnected"`

	// Connectivity holds the dominant transport
	Connectivity Connectivity `json:"connectivity"`

	// IsLowPowerModeEnabled is true while the device is in low-power mode
	IsLowPowerModeEnabled bool `json:"isLowPowerModeEnabled"`

	// IsConstrained is true when the path is in data-saver / constrained mode
	IsConstrained bool `json:"isConstrained"`

	// IsExpensive is true when the path is considered expensive (e.g. metered)
	IsExpensive bool `json:"isExpensive"`
}

// DisconnectedNetworkStatus returns the default network snapshot used before
// any path report has been observed
func DisconnectedNetworkStatus() NetworkStatus {
	return NetworkStatus{Connectivity: Disconnected()}
}

// NetworkStatusFromPath converts a raw path report into a NetworkStatus.
//
// A path counts as connected only when it is satisfied AND at least one
// physical interface (wifi, cellular, wired ethernet) is present among the
// reported interfaces. A satisfied path carried exclusively by virtual
// tunnels or loopback reports disconnected, because callers gate sync
// attempts on this flag and a tunnel without an underlying physical link
// would make those attempts fail silently.
func NetworkStatusFromPath(satisfied bool, interfaces []Interface, constrained, expensive, lowPower bool) NetworkStatus {
	connectivity := Disconnected()
	if satisfied {
		if dominant, ok := dominantPhysicalInterface(interfaces); ok {
			connectivity = ConnectedVia(dominant)
		}
	}

	return NetworkStatus{
		IsConnected:           connectivity.IsConnected(),
		Connectivity:          connectivity,
		IsLowPowerModeEnabled: lowPower,
		IsConstrained:         constrained,
		IsExpensive:           expensive,
	}
}

// dominantPhysicalInterface picks the highest-priority physical interface
// from the reported set. Returns false when no physical interface is present.
func dominantPhysicalInterface(interfaces []Interface) (Interface, bool) {
	best := InterfaceOther
	found := false
	for _, iface := range interfaces {
		if !iface.IsPhysical() {
			continue
		}
		if !found || interfacePriority[iface] < interfacePriority[best] {
			best = iface
			found = true
		}
	}
	return best, found
}
