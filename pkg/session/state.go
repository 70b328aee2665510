package session

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/hzsync/hzsync-go/pkg/display"
	"github.com/hzsync/hzsync-go/pkg/log"
	"github.com/hzsync/hzsync-go/pkg/persistence"
)

// ErrPersistenceFailed is returned when the state could not be saved.
var ErrPersistenceFailed = errors.New("persisting state failed")

// Store is the storage State writes through.
type Store interface {
	Load() (*persistence.Config, error)
	Save(*persistence.Config) error
}

// Options configures a State.
type Options struct {
	Logger *slog.Logger
	Events log.Logger
}

// State is the persisted record of active sessions and settings.
type State struct {
	mu     sync.Mutex
	store  Store
	cfg    *persistence.Config
	logger *slog.Logger
	events log.Logger
}

// Open loads the state from store. A missing file yields the default state.
// A malformed or unreadable file also yields the default state, with a
// warning.
func Open(store Store, opts Options) *State {
	s := &State{
		store:  store,
		logger: opts.Logger,
		events: log.OrNoop(opts.Events),
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}

	cfg, err := store.Load()
	switch {
	case err != nil:
		s.logger.Warn("state file unreadable, starting from defaults", "error", err)
		cfg = persistence.DefaultConfig()
	case cfg == nil:
		cfg = persistence.DefaultConfig()
	}
	s.cfg = cfg
	return s
}

// save writes the state. Called with mu held.
func (s *State) save() error {
	if err := s.store.Save(s.cfg); err != nil {
		s.logger.Warn("state not saved", "error", err)
		return fmt.Errorf("%w: %w", ErrPersistenceFailed, err)
	}
	return nil
}

func (s *State) emit(entity log.StateEntity, id display.ID, from, to, reason string, rate float64) {
	s.events.Log(log.Event{
		Timestamp: time.Now(),
		DisplayID: string(id),
		Layer:     log.LayerSession,
		Category:  log.CategoryState,
		StateChange: &log.StateChangeEvent{
			Entity:     entity,
			OldState:   from,
			NewState:   to,
			Reason:     reason,
			TargetRate: rate,
		},
	})
}

// RecordActive marks id as running a software session at rate.
func (s *State) RecordActive(id display.ID, rate float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, had := s.cfg.TargetRefreshRates[string(id)]
	s.cfg.TargetRefreshRates[string(id)] = rate

	from := "INACTIVE"
	if had {
		from = "ACTIVE@" + display.FormatRate(old)
	}
	s.emit(log.StateEntityPersisted, id, from, "ACTIVE@"+display.FormatRate(rate), "recorded", rate)
	return s.save()
}

// Clear removes the session record and captured brightness of id.
func (s *State) Clear(id display.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, had := s.cfg.TargetRefreshRates[string(id)]
	_, hadBrightness := s.cfg.OriginalBrightness[string(id)]
	if !had && !hadBrightness {
		return nil
	}
	delete(s.cfg.TargetRefreshRates, string(id))
	delete(s.cfg.OriginalBrightness, string(id))

	s.emit(log.StateEntityPersisted, id, "ACTIVE", "INACTIVE", "cleared", 0)
	return s.save()
}

// IsActive reports whether id has a recorded session.
func (s *State) IsActive(id display.ID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.cfg.TargetRefreshRates[string(id)]
	return ok
}

// ActiveRate returns the recorded rate of id.
func (s *State) ActiveRate(id display.ID) (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.cfg.TargetRefreshRates[string(id)]
	return r, ok
}

// ActiveDisplays returns the IDs with a recorded session, sorted.
func (s *State) ActiveDisplays() []display.ID {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]display.ID, 0, len(s.cfg.TargetRefreshRates))
	for id := range s.cfg.TargetRefreshRates {
		ids = append(ids, display.ID(id))
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Snapshot returns a deep copy of the state.
func (s *State) Snapshot() persistence.Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.cfg.Clone()
}

// SetClickEnabled toggles the click action.
func (s *State) SetClickEnabled(enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old := s.cfg.ClickSoundEnabled
	s.cfg.ClickSoundEnabled = enabled
	s.emit(log.StateEntitySettings, "", onOff("click", old), onOff("click", enabled), "settings", 0)
	return s.save()
}

// SetBrightnessPulse toggles the pulse action and sets its amount. A
// non-positive amount keeps the current one.
func (s *State) SetBrightnessPulse(enabled bool, amount float64) error {
	if amount > 1 {
		return fmt.Errorf("pulse amount %v out of range (0, 1]", amount)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	old := s.cfg.BrightnessPulseEnabled
	s.cfg.BrightnessPulseEnabled = enabled
	if amount > 0 {
		s.cfg.BrightnessPulseAmount = amount
	}
	s.emit(log.StateEntitySettings, "", onOff("pulse", old), onOff("pulse", enabled), "settings", 0)
	return s.save()
}

// RecordOriginalBrightness stores the level id had before pulsing.
func (s *State) RecordOriginalBrightness(id display.ID, level float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cfg.OriginalBrightness == nil {
		s.cfg.OriginalBrightness = make(map[string]float64)
	}
	s.cfg.OriginalBrightness[string(id)] = level
	return s.save()
}

// OriginalBrightness returns the recorded pre-pulse level of id.
func (s *State) OriginalBrightness(id display.ID) (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.cfg.OriginalBrightness[string(id)]
	return l, ok
}

func onOff(name string, on bool) string {
	if on {
		return name + "=on"
	}
	return name + "=off"
}
