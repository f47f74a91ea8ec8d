package local

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftlock/syncenv/pkg/platform"
	"github.com/driftlock/syncenv/pkg/status"
)

func TestClassifyInterface(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want status.Interface
	}{
		{"wlan0", status.InterfaceWifi},
		{"wlp3s0", status.InterfaceWifi},
		{"eth0", status.InterfaceWiredEthernet},
		{"enp0s31f6", status.InterfaceWiredEthernet},
		{"wwan0", status.InterfaceCellular},
		{"rmnet_data0", status.InterfaceCellular},
		{"tun0", status.InterfaceOther},
		{"wg0", status.InterfaceOther},
		{"utun3", status.InterfaceOther},
		{"docker0", status.InterfaceOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, classifyInterface(tt.name))
		})
	}
}

func TestPathEqual(t *testing.T) {
	t.Parallel()

	wifi := platform.PathUpdate{Satisfied: true, Interfaces: []status.Interface{status.InterfaceWifi}}

	assert.True(t, pathEqual(wifi, platform.PathUpdate{Satisfied: true, Interfaces: []status.Interface{status.InterfaceWifi}}))
	assert.False(t, pathEqual(wifi, platform.PathUpdate{Satisfied: false}))
	assert.False(t, pathEqual(wifi, platform.PathUpdate{
		Satisfied:  true,
		Interfaces: []status.Interface{status.InterfaceWiredEthernet},
	}))
	assert.False(t, pathEqual(wifi, platform.PathUpdate{Satisfied: true, Expensive: true,
		Interfaces: []status.Interface{status.InterfaceWifi}}))
}

func TestInterfacePathMonitor_Inspect(t *testing.T) {
	// Not parallel: swaps the package-level interface lister.
	orig := netInterfaces
	defer func() { netInterfaces = orig }()

	netInterfaces = func() ([]net.Interface, error) {
		return []net.Interface{
			{Name: "lo", Flags: net.FlagUp | net.FlagRunning | net.FlagLoopback},
			{Name: "wlan0", Flags: net.FlagUp | net.FlagRunning},
			{Name: "eth0", Flags: net.FlagUp}, // up but no carrier
			{Name: "tun0", Flags: net.FlagUp | net.FlagRunning},
		}, nil
	}

	m := NewInterfacePathMonitor(time.Minute, nil)
	path := m.CurrentPath()
	assert.True(t, path.Satisfied)
	assert.Equal(t, []status.Interface{status.InterfaceWifi, status.InterfaceOther}, path.Interfaces)
}

func TestInterfacePathMonitor_UpdatesOnChange(t *testing.T) {
	// Not parallel: swaps the package-level interface lister.
	orig := netInterfaces
	defer func() { netInterfaces = orig }()

	var up atomic.Bool
	netInterfaces = func() ([]net.Interface, error) {
		if !up.Load() {
			return nil, nil
		}
		return []net.Interface{
			{Name: "eth0", Flags: net.FlagUp | net.FlagRunning},
		}, nil
	}

	m := NewInterfacePathMonitor(10*time.Millisecond, nil)
	require.False(t, m.CurrentPath().Satisfied)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch, err := m.Updates(ctx)
	require.NoError(t, err)

	up.Store(true)
	select {
	case path := <-ch:
		assert.True(t, path.Satisfied)
		assert.Equal(t, []status.Interface{status.InterfaceWiredEthernet}, path.Interfaces)
	case <-time.After(2 * time.Second):
		t.Fatal("no path report after interface came up")
	}

	cancel()
	select {
	case _, ok := <-ch:
		assert.False(t, ok, "channel closes on cancellation")
	case <-time.After(2 * time.Second):
		t.Fatal("channel did not close")
	}
}

func TestFileTokenSource(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "token")
	s := NewFileTokenSource(path, 10*time.Millisecond, nil)
	assert.False(t, s.TokenPresent(), "no file, no token")

	// Empty files do not count as a token.
	require.NoError(t, os.WriteFile(path, nil, 0o600))
	assert.False(t, s.TokenPresent())

	require.NoError(t, os.WriteFile(path, []byte("tok"), 0o600))
	assert.True(t, s.TokenPresent())
}

func TestFileTokenSource_ChangesOnFlip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "token")
	s := NewFileTokenSource(path, 10*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch, err := s.Changes(ctx)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("tok"), 0o600))
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("no notification after token appeared")
	}

	require.NoError(t, os.Remove(path))
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("no notification after token disappeared")
	}
}

func TestHTTPAccountQuerier_Query(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		handler   http.HandlerFunc
		wantState platform.AccountState
		wantErr   bool
	}{
		{
			name: "available",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"state":"available"}`))
			},
			wantState: platform.AccountStateAvailable,
		},
		{
			name: "no account",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"state":"noAccount"}`))
			},
			wantState: platform.AccountStateNoAccount,
		},
		{
			name: "missing state field",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{}`))
			},
			wantErr: true,
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(tt.handler)
			defer server.Close()

			q := NewHTTPAccountQuerier(server.URL, time.Minute, nil)
			state, err := q.Query(context.Background())
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantState, state)
		})
	}
}

func TestHTTPAccountQuerier_ChangesOnStateFlip(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	state := `{"state":"available"}`
	setState := func(s string) {
		mu.Lock()
		defer mu.Unlock()
		state = s
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		_, _ = w.Write([]byte(state))
	}))
	defer server.Close()

	q := NewHTTPAccountQuerier(server.URL, 10*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch, err := q.Changes(ctx)
	require.NoError(t, err)

	// Stable state synthesizes no notifications.
	select {
	case <-ch:
		t.Fatal("notification without a state change")
	case <-time.After(100 * time.Millisecond):
	}

	setState(`{"state":"noAccount"}`)
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("no notification after state flip")
	}
}
