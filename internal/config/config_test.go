package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_FullFile(t *testing.T) {
	path := writeConfigFile(t, `
server:
  listen_addr: ":9000"
transport:
  enabled: true
  demo_mode: false
  home_location:
    latitude: 52.52
    longitude: 13.405
  arrival_buffer_minutes: 20
  max_travel_time_minutes: 75
  filter_enabled: true
  associations:
    bfv:
      enabled: false
    hfv:
      arrival_buffer_minutes: 30
  provider:
    base_url: "https://planner.example.com"
    api_key: "secret"
    request_timeout: "5s"
retry:
  max_attempts: 4
  initial_backoff: "100ms"
  max_backoff: "3s"
  jitter_factor: 0.1
cache:
  ttl: "168h"
  propagate_hits: true
  memory:
    enabled: true
    size_mb: 64
  redis:
    enabled: true
    addr: "localhost:6379"
    db: 2
    read_timeout: "1s"
`)

	cfg, err := LoadConfig(path, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.ListenAddr)
	assert.True(t, cfg.Transport.Enabled)
	require.NotNil(t, cfg.Transport.HomeLocation)
	assert.Equal(t, 52.52, cfg.Transport.HomeLocation.Latitude)
	assert.Equal(t, 20, cfg.Transport.ArrivalBufferMinutes)
	assert.Equal(t, 75, cfg.Transport.MaxTravelTimeMinutes)
	assert.Equal(t, "https://planner.example.com", cfg.Transport.Provider.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Transport.Provider.RequestTimeout.Std())

	assert.Equal(t, 4, cfg.Retry.MaxAttempts)
	assert.Equal(t, 100*time.Millisecond, cfg.Retry.InitialBackoff.Std())

	assert.Equal(t, 168*time.Hour, cfg.Cache.TTL.Std())
	assert.True(t, cfg.Cache.Memory.Enabled)
	assert.Equal(t, 64, cfg.Cache.Memory.SizeMB)
	assert.Equal(t, "localhost:6379", cfg.Cache.Redis.Addr)
	assert.Equal(t, 2, cfg.Cache.Redis.DB)
	// Defaults fill in what the file left out.
	assert.Equal(t, 2*time.Second, cfg.Cache.Redis.WriteTimeout.Std())
}

func TestLoadConfig_DefaultsApplied(t *testing.T) {
	path := writeConfigFile(t, `
transport:
  enabled: false
`)

	cfg, err := LoadConfig(path, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, ":8090", cfg.Server.ListenAddr)
	assert.Equal(t, 15, cfg.Transport.ArrivalBufferMinutes)
	assert.Equal(t, 90, cfg.Transport.MaxTravelTimeMinutes)
	assert.Equal(t, 10*time.Second, cfg.Transport.Provider.RequestTimeout.Std())
	assert.Equal(t, 3, cfg.Retry.MaxAttempts)
	assert.Equal(t, 200*time.Millisecond, cfg.Retry.InitialBackoff.Std())
	assert.Equal(t, 5*time.Second, cfg.Retry.MaxBackoff.Std())
	assert.Equal(t, 0.2, cfg.Retry.JitterFactor)
	assert.Equal(t, 720*time.Hour, cfg.Cache.TTL.Std())
	assert.Equal(t, 32, cfg.Cache.Memory.SizeMB)
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"), zap.NewNop())
	assert.Error(t, err)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := writeConfigFile(t, "transport: [not a mapping")

	_, err := LoadConfig(path, zap.NewNop())
	assert.Error(t, err)
}

func TestLoadConfig_InvalidDuration(t *testing.T) {
	path := writeConfigFile(t, `
cache:
  ttl: "thirty days"
`)

	_, err := LoadConfig(path, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid duration")
}

func TestLoadConfig_ValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "too many retry attempts",
			content: `
retry:
  max_attempts: 25
`,
		},
		{
			name: "jitter factor above one",
			content: `
retry:
  jitter_factor: 1.5
`,
		},
		{
			name: "negative arrival buffer",
			content: `
transport:
  arrival_buffer_minutes: -5
`,
		},
		{
			name: "malformed provider url",
			content: `
transport:
  provider:
    base_url: "not a url"
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfigFile(t, tt.content)
			_, err := LoadConfig(path, zap.NewNop())
			assert.Error(t, err)
		})
	}
}

func TestTransportConfig_AssociationOverrides(t *testing.T) {
	enabled := true
	disabled := false
	buffer := 30

	cfg := &TransportConfig{
		Enabled:              true,
		ArrivalBufferMinutes: 15,
		Associations: map[string]AssociationOverrides{
			"bfv": {Enabled: &disabled},
			"hfv": {ArrivalBufferMinutes: &buffer},
			"wfv": {Enabled: &enabled, ArrivalBufferMinutes: &buffer},
		},
	}

	assert.False(t, cfg.EnabledFor("bfv"))
	assert.True(t, cfg.EnabledFor("hfv"), "override without enabled falls back to global")
	assert.True(t, cfg.EnabledFor("wfv"))
	assert.True(t, cfg.EnabledFor("unknown"))
	assert.True(t, cfg.EnabledFor(""))

	assert.Equal(t, 15, cfg.ArrivalBufferFor("bfv"))
	assert.Equal(t, 30, cfg.ArrivalBufferFor("hfv"))
	assert.Equal(t, 15, cfg.ArrivalBufferFor("unknown"))
	assert.Equal(t, 15, cfg.ArrivalBufferFor(""))
}

func TestDuration_Std(t *testing.T) {
	d := Duration(90 * time.Second)
	assert.Equal(t, 90*time.Second, d.Std())
}
