// Package local provides host-level implementations of the platform signal
// contracts: an interface-polling path monitor, a file-based identity token
// source and an HTTP account querier. They are the defaults wired by the
// daemon; embedding applications with richer platform integrations supply
// their own.
package local

import (
	"context"
	"log/slog"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/driftlock/syncenv/pkg/platform"
	"github.com/driftlock/syncenv/pkg/status"
)

// netInterfaces is swapped in tests
var netInterfaces = net.Interfaces

// InterfacePathMonitor implements platform.PathMonitor by polling the host's
// network interfaces. It cannot observe constrained or expensive paths; both
// flags always read false.
type InterfacePathMonitor struct {
	interval time.Duration
	logger   *slog.Logger

	mu   sync.RWMutex
	last platform.PathUpdate
}

// NewInterfacePathMonitor creates a poller with the given interval. The
// initial snapshot is taken synchronously so CurrentPath is meaningful
// before the first tick.
func NewInterfacePathMonitor(interval time.Duration, logger *slog.Logger) *InterfacePathMonitor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	m := &InterfacePathMonitor{
		interval: interval,
		logger:   logger,
	}
	m.last = m.inspect()
	return m
}

// CurrentPath returns the last observed path snapshot
func (m *InterfacePathMonitor) CurrentPath() platform.PathUpdate {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.last
}

// Updates starts the poll loop and returns its report channel. Only ticks
// that change the observable path produce a report. The channel closes when
// ctx is cancelled.
func (m *InterfacePathMonitor) Updates(ctx context.Context) (<-chan platform.PathUpdate, error) {
	ch := make(chan platform.PathUpdate, 1)

	go func() {
		defer close(ch)
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				next := m.inspect()

				m.mu.Lock()
				changed := !pathEqual(m.last, next)
				m.last = next
				m.mu.Unlock()

				if !changed {
					continue
				}

				select {
				case ch <- next:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ch, nil
}

// inspect reads the host interfaces and synthesizes a path report
func (m *InterfacePathMonitor) inspect() platform.PathUpdate {
	ifaces, err := netInterfaces()
	if err != nil {
		m.logger.Error("interface inspection failed", "error", err)
		return platform.PathUpdate{}
	}

	var kinds []status.Interface
	seen := make(map[status.Interface]bool)
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		if iface.Flags&net.FlagRunning == 0 {
			continue
		}

		kind := classifyInterface(iface.Name)
		if !seen[kind] {
			seen[kind] = true
			kinds = append(kinds, kind)
		}
	}

	return platform.PathUpdate{
		Satisfied:  len(kinds) > 0,
		Interfaces: kinds,
	}
}

// classifyInterface maps a host interface name to a transport kind
func classifyInterface(name string) status.Interface {
	lower := strings.ToLower(name)
	switch {
	case strings.HasPrefix(lower, "wl"), strings.HasPrefix(lower, "wifi"), strings.HasPrefix(lower, "ath"):
		return status.InterfaceWifi
	case strings.HasPrefix(lower, "ww"), strings.HasPrefix(lower, "rmnet"), strings.HasPrefix(lower, "pdp"):
		return status.InterfaceCellular
	case strings.HasPrefix(lower, "tun"), strings.HasPrefix(lower, "tap"),
		strings.HasPrefix(lower, "utun"), strings.HasPrefix(lower, "wg"),
		strings.HasPrefix(lower, "ipsec"):
		// Tunnels are virtual transports and never count as physical links.
		return status.InterfaceOther
	case strings.HasPrefix(lower, "eth"), strings.HasPrefix(lower, "en"), strings.HasPrefix(lower, "em"):
		return status.InterfaceWiredEthernet
	default:
		return status.InterfaceOther
	}
}

// pathEqual compares two path reports field by field
func pathEqual(a, b platform.PathUpdate) bool {
	if a.Satisfied != b.Satisfied || a.Constrained != b.Constrained || a.Expensive != b.Expensive {
		return false
	}
	if len(a.Interfaces) != len(b.Interfaces) {
		return false
	}
	for i := range a.Interfaces {
		if a.Interfaces[i] != b.Interfaces[i] {
			return false
		}
	}
	return true
}
