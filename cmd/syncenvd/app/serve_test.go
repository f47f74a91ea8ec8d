package app

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftlock/syncenv/internal/config"
)

func TestBuildMonitor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     *config.Config
		wantErr bool
	}{
		{
			name: "default options without sources",
			cfg:  &config.Config{},
		},
		{
			name: "all sources configured",
			cfg: &config.Config{
				Monitor: config.MonitorConfig{
					Options:          []string{"network", "account", "syncEvent", "cloudDrive"},
					ContainerID:      "iCloud.com.example.notes",
					StreamBufferSize: 8,
				},
				Sources: config.SourcesConfig{
					Network: &config.NetworkSourceConfig{PollInterval: "1m"},
					Account: &config.AccountSourceConfig{
						Endpoint: "https://account.example.com/v1/status",
					},
					CloudDrive: &config.CloudDriveSourceConfig{
						TokenPath: "/var/lib/syncenvd/token",
					},
				},
			},
		},
		{
			name: "invalid monitoring option",
			cfg: &config.Config{
				Monitor: config.MonitorConfig{
					Options: []string{"telepathy"},
				},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mgr, err := buildMonitor(tt.cfg, nil, slog.New(slog.DiscardHandler))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, mgr)
			defer mgr.Close()

			assert.False(t, mgr.IsRunning())
		})
	}
}

func TestNewRootCmd(t *testing.T) {
	root := NewRootCmd()
	require.NotNil(t, root)

	names := make(map[string]bool)
	for _, sub := range root.Commands() {
		names[sub.Name()] = true
	}
	assert.True(t, names["serve"])
	assert.True(t, names["version"])
}
