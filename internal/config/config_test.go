package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("RIDEPULSE_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "data/bookings.csv", cfg.Data.SnapshotPath)
	assert.True(t, cfg.Limits.Enabled)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("RIDEPULSE_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))
	t.Setenv("RIDEPULSE_SERVER_PORT", "9090")
	t.Setenv("RIDEPULSE_DATA_SNAPSHOT_PATH", "/srv/bookings.csv")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "/srv/bookings.csv", cfg.Data.SnapshotPath)
	assert.Equal(t, "/srv/bookings.csv", cfg.SnapshotPath())
}

func TestLoadYAMLFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "ridepulse.yaml")
	yamlData := `
server:
  port: 7070
data:
  snapshot_path: /var/data/uber.csv
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(configPath, []byte(yamlData), 0644))
	t.Setenv("RIDEPULSE_CONFIG", configPath)

	cfg, err := Load()
	require.NoError(t, err)

	// env defaults fill fields the file omits; file values survive merge
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "/var/data/uber.csv", cfg.Data.SnapshotPath)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "15s", cfg.Server.ReadTimeout.String())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "bad port",
			mutate:  func(c *Config) { c.Server.Port = -1 },
			wantErr: "invalid server port",
		},
		{
			name:    "missing snapshot path",
			mutate:  func(c *Config) { c.Data.SnapshotPath = "" },
			wantErr: "snapshot path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{}
			cfg.Server.Port = 8080
			cfg.Server.ReadTimeout = 1
			cfg.Server.WriteTimeout = 1
			cfg.Data.SnapshotPath = "data/bookings.csv"
			tt.mutate(&cfg)

			err := cfg.validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
