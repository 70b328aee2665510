package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hzsync/hzsync-go/pkg/display"
)

const sample = `
backend: simulated
tolerance: 0.05
pulse_amount: 0.2
state_path: /tmp/hz/state.json
event_log: /tmp/hz/events.hlog
log_level: debug
pool_size: 4
xrandr:
  binary: /usr/bin/xrandr
  timeout: 2s
brightness:
  providers: [brightnessctl, gamma]
  backlight_device: intel_backlight
simulated:
  displays:
    - id: eDP-1
      name: Laptop
      current: {width: 2880, height: 1800, refresh_rate: 60}
      modes:
        - {width: 2880, height: 1800, refresh_rate: 60}
        - {width: 2880, height: 1800, refresh_rate: 120}
      brightness: 0.6
      accept_custom_timing: true
`

func TestParse(t *testing.T) {
	f, err := Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, BackendSimulated, f.Backend)
	assert.Equal(t, 0.05, f.Tolerance)
	assert.Equal(t, 0.2, f.PulseAmount)
	assert.Equal(t, "/tmp/hz/state.json", f.StatePath)
	assert.Equal(t, "/tmp/hz/events.hlog", f.EventLog)
	assert.Equal(t, "debug", f.LogLevel)
	assert.Equal(t, 4, f.PoolSize)
	assert.Equal(t, "/usr/bin/xrandr", f.Xrandr.Binary)
	assert.Equal(t, 2*time.Second, f.Xrandr.Timeout)
	assert.Equal(t, []string{ProviderBrightnessctl, ProviderGamma}, f.BrightnessProviders())
	assert.Equal(t, "intel_backlight", f.Brightness.BacklightDevice)

	require.NotNil(t, f.Simulated)
	require.Len(t, f.Simulated.Displays, 1)
	d := f.Simulated.Displays[0]
	assert.Equal(t, display.ID("eDP-1"), d.ID)
	assert.Equal(t, display.Mode{Width: 2880, Height: 1800, RefreshRate: 120}, d.Modes[1])
	assert.Equal(t, 0.6, d.Brightness)
	assert.True(t, d.AcceptCustomTiming)
}

func TestParseEmpty(t *testing.T) {
	f, err := Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, f.Backend)
	assert.Nil(t, f.Simulated)
	assert.Equal(t, DefaultProviders, f.BrightnessProviders())
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown backend", "backend: wayland"},
		{"negative tolerance", "tolerance: -1"},
		{"pulse amount above one", "pulse_amount: 1.5"},
		{"negative pool size", "pool_size: -2"},
		{"unknown provider", "brightness: {providers: [ddc]}"},
		{"display without id", "simulated: {displays: [{name: x}]}"},
		{"invalid mode", "simulated: {displays: [{id: a, modes: [{width: 0, height: 1, refresh_rate: 60}]}]}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestParseMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("backend: [unclosed"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalid)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hzsync.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, BackendSimulated, f.Backend)
}

func TestLoadEmptyPath(t *testing.T) {
	f, err := Load("")
	require.NoError(t, err)
	assert.NotNil(t, f)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
