package persistence

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/hzsync/hzsync-go/pkg/version"
)

// StateVersion is the current version of the state file format.
const StateVersion = 1

// DefaultPulseAmount is the brightness pulse amount of a fresh state.
const DefaultPulseAmount = 0.1

// Config is the persisted runtime state.
type Config struct {
	// Version is the state file format version.
	Version int `json:"version"`

	// SavedAt is when the state was last saved.
	SavedAt time.Time `json:"savedAt"`

	// TargetRefreshRates maps display IDs with an active software session to
	// the emulated rate.
	TargetRefreshRates map[string]float64 `json:"targetRefreshRates"`

	// ClickSoundEnabled turns on the click action.
	ClickSoundEnabled bool `json:"clickSoundEnabled"`

	// BrightnessPulseEnabled turns on the brightness pulse action.
	BrightnessPulseEnabled bool `json:"brightnessPulseEnabled"`

	// BrightnessPulseAmount is the pulse delta in [0, 1].
	BrightnessPulseAmount float64 `json:"brightnessPulseAmount"`

	// OriginalBrightness maps display IDs to the level captured before
	// pulsing started.
	OriginalBrightness map[string]float64 `json:"originalBrightness,omitempty"`
}

// DefaultConfig returns the state used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Version:               StateVersion,
		TargetRefreshRates:    make(map[string]float64),
		BrightnessPulseAmount: DefaultPulseAmount,
	}
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	out := *c
	out.TargetRefreshRates = make(map[string]float64, len(c.TargetRefreshRates))
	for k, v := range c.TargetRefreshRates {
		out.TargetRefreshRates[k] = v
	}
	if c.OriginalBrightness != nil {
		out.OriginalBrightness = make(map[string]float64, len(c.OriginalBrightness))
		for k, v := range c.OriginalBrightness {
			out.OriginalBrightness[k] = v
		}
	}
	return &out
}

// normalize fills maps and defaults missing from older or hand-edited files.
func (c *Config) normalize() {
	if c.TargetRefreshRates == nil {
		c.TargetRefreshRates = make(map[string]float64)
	}
	if c.BrightnessPulseAmount <= 0 || c.BrightnessPulseAmount > 1 {
		c.BrightnessPulseAmount = DefaultPulseAmount
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/hzsync/state.json, falling back to
// ~/.config/hzsync/state.json.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "hzsync", "state.json"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	if home == "" {
		return "", errors.New("no home directory")
	}
	return filepath.Join(home, ".config", "hzsync", "state.json"), nil
}

// StateStore manages persistence of the state to a JSON file.
type StateStore struct {
	mu   sync.Mutex
	path string
}

// NewStateStore creates a new state store.
func NewStateStore(path string) *StateStore {
	return &StateStore{path: path}
}

// Path returns the state file path.
func (s *StateStore) Path() string {
	return s.path
}

// Save persists the state to disk, replacing the whole file.
func (s *StateStore) Save(state *Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Ensure parent directory exists
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	state.Version = StateVersion
	state.SavedAt = time.Now()

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0644)
}

// Load reads the state from disk.
// Returns nil, nil if the file doesn't exist (empty state).
func (s *StateStore) Load() (*Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	state := &Config{}
	if err := json.Unmarshal(data, state); err != nil {
		return nil, err
	}
	if err := version.CheckStateFormat(state.Version, StateVersion); err != nil {
		return nil, err
	}
	state.normalize()

	return state, nil
}

// Clear removes the state file.
func (s *StateStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
