package session

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hzsync/hzsync-go/pkg/display"
	"github.com/hzsync/hzsync-go/pkg/persistence"
)

func openTemp(t *testing.T) (*State, *persistence.StateStore) {
	t.Helper()
	store := persistence.NewStateStore(filepath.Join(t.TempDir(), "hzsync", "state.json"))
	return Open(store, Options{}), store
}

func TestRecordActiveSavesImmediately(t *testing.T) {
	s, store := openTemp(t)

	require.NoError(t, s.RecordActive("HDMI-1", 40))
	assert.True(t, s.IsActive("HDMI-1"))

	onDisk, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, onDisk)
	assert.Equal(t, 40.0, onDisk.TargetRefreshRates["HDMI-1"])
}

func TestClearRemovesRecordAndBrightness(t *testing.T) {
	s, store := openTemp(t)

	require.NoError(t, s.RecordActive("eDP-1", 40))
	require.NoError(t, s.RecordOriginalBrightness("eDP-1", 0.7))

	level, ok := s.OriginalBrightness("eDP-1")
	require.True(t, ok)
	assert.Equal(t, 0.7, level)

	require.NoError(t, s.Clear("eDP-1"))
	assert.False(t, s.IsActive("eDP-1"))
	_, ok = s.OriginalBrightness("eDP-1")
	assert.False(t, ok)

	onDisk, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, onDisk.TargetRefreshRates)
	assert.Empty(t, onDisk.OriginalBrightness)
}

func TestClearUnknownIsNoop(t *testing.T) {
	s, store := openTemp(t)

	require.NoError(t, s.Clear("nope"))

	onDisk, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, onDisk, "no write expected")
}

func TestReopenSeesPersistedState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	s := Open(persistence.NewStateStore(path), Options{})
	require.NoError(t, s.RecordActive("DP-1", 50))
	require.NoError(t, s.SetClickEnabled(true))
	require.NoError(t, s.SetBrightnessPulse(true, 0.3))

	again := Open(persistence.NewStateStore(path), Options{})
	assert.True(t, again.IsActive("DP-1"))
	assert.Equal(t, []display.ID{"DP-1"}, again.ActiveDisplays())

	snap := again.Snapshot()
	assert.True(t, snap.ClickSoundEnabled)
	assert.True(t, snap.BrightnessPulseEnabled)
	assert.Equal(t, 0.3, snap.BrightnessPulseAmount)
}

func TestMalformedFileLoadsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0644))

	s := Open(persistence.NewStateStore(path), Options{})

	snap := s.Snapshot()
	assert.Empty(t, snap.TargetRefreshRates)
	assert.Equal(t, persistence.DefaultPulseAmount, snap.BrightnessPulseAmount)

	// The next mutation overwrites the bad file.
	require.NoError(t, s.RecordActive("HDMI-1", 40))
	onDisk, err := persistence.NewStateStore(path).Load()
	require.NoError(t, err)
	assert.Equal(t, 40.0, onDisk.TargetRefreshRates["HDMI-1"])
}

type failingStore struct{}

func (failingStore) Load() (*persistence.Config, error) { return nil, nil }
func (failingStore) Save(*persistence.Config) error    { return errors.New("disk full") }

func TestSaveFailureKeepsMemoryState(t *testing.T) {
	s := Open(failingStore{}, Options{})

	err := s.RecordActive("HDMI-1", 40)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPersistenceFailed)
	assert.True(t, s.IsActive("HDMI-1"))

	rate, ok := s.ActiveRate("HDMI-1")
	require.True(t, ok)
	assert.Equal(t, 40.0, rate)
}

func TestSnapshotIsACopy(t *testing.T) {
	s, _ := openTemp(t)
	require.NoError(t, s.RecordActive("HDMI-1", 40))

	snap := s.Snapshot()
	snap.TargetRefreshRates["HDMI-1"] = 99

	rate, _ := s.ActiveRate("HDMI-1")
	assert.Equal(t, 40.0, rate)
}

func TestSetBrightnessPulseValidation(t *testing.T) {
	s, _ := openTemp(t)

	assert.Error(t, s.SetBrightnessPulse(true, 1.5))
	require.NoError(t, s.SetBrightnessPulse(true, 0))
	assert.Equal(t, persistence.DefaultPulseAmount, s.Snapshot().BrightnessPulseAmount)
}
