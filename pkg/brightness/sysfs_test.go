package brightness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hzsync/hzsync-go/pkg/display"
)

func fakeBacklight(t *testing.T, name string, cur, maxLevel string) string {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "brightness"), []byte(cur+"\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "max_brightness"), []byte(maxLevel+"\n"), 0644))
	return root
}

func TestSysfsGetSet(t *testing.T) {
	root := fakeBacklight(t, "intel_backlight", "750", "1000")
	s := &Sysfs{Root: root}

	require.NoError(t, s.Probe("eDP-1"))

	level, err := s.Get("eDP-1")
	require.NoError(t, err)
	assert.InDelta(t, 0.75, level, 1e-9)

	require.NoError(t, s.Set("eDP-1", 0.3))

	data, err := os.ReadFile(filepath.Join(root, "intel_backlight", "brightness"))
	require.NoError(t, err)
	assert.Equal(t, "300", string(data))
}

func TestSysfsExternalDisplayUnsupported(t *testing.T) {
	s := &Sysfs{Root: fakeBacklight(t, "acpi_video0", "5", "10")}

	err := s.Probe("HDMI-1")
	assert.ErrorIs(t, err, display.ErrUnsupported)
}

func TestSysfsNoDevice(t *testing.T) {
	s := &Sysfs{Root: t.TempDir()}

	err := s.Probe("eDP-1")
	assert.ErrorIs(t, err, display.ErrUnsupported)
}

func TestSysfsNamedDevice(t *testing.T) {
	root := fakeBacklight(t, "amdgpu_bl0", "128", "255")
	s := &Sysfs{Root: root, Device: "amdgpu_bl0"}

	level, err := s.Get("eDP-1")
	require.NoError(t, err)
	assert.InDelta(t, 128.0/255.0, level, 1e-9)
}

func TestSysfsBadMax(t *testing.T) {
	s := &Sysfs{Root: fakeBacklight(t, "bl", "5", "0")}

	_, err := s.Get("eDP-1")
	assert.Error(t, err)
}
