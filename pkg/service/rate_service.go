package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/hzsync/hzsync-go/pkg/action"
	"github.com/hzsync/hzsync-go/pkg/apply"
	"github.com/hzsync/hzsync-go/pkg/brightness"
	"github.com/hzsync/hzsync-go/pkg/cadence"
	"github.com/hzsync/hzsync-go/pkg/display"
	"github.com/hzsync/hzsync-go/pkg/duration"
	"github.com/hzsync/hzsync-go/pkg/log"
	"github.com/hzsync/hzsync-go/pkg/mode"
	"github.com/hzsync/hzsync-go/pkg/session"
)

// Config configures a RateService.
type Config struct {
	// Backend is the display platform (required).
	Backend display.Backend

	// State is the persisted session record (required).
	State *session.State

	// Brightness controls display brightness for pulses (optional).
	Brightness brightness.Provider

	// Player plays click sounds (optional).
	Player action.Player

	// Driver runs software sessions. Default: a driver built from Logger,
	// Events and Beeper.
	Driver *cadence.Driver

	// Beeper substitutes for failed actions in the default driver.
	Beeper action.Beeper

	// Apply configures the mode applier. Default: apply.DefaultConfig().
	Apply *apply.Config

	// Tolerance is the default exact-match threshold.
	// Default: mode.DefaultTolerance.
	Tolerance float64

	// PoolSize bounds concurrent click playbacks per session.
	// Default: action.DefaultPoolSize.
	PoolSize int

	Logger *slog.Logger
	Events log.Logger
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Backend == nil {
		return fmt.Errorf("%w: backend is required", ErrInvalidConfig)
	}
	if c.State == nil {
		return fmt.Errorf("%w: state is required", ErrInvalidConfig)
	}
	if c.Tolerance < 0 {
		return fmt.Errorf("%w: negative tolerance", ErrInvalidConfig)
	}
	return nil
}

// RateService resolves, applies and emulates refresh rates.
type RateService struct {
	backend    display.Backend
	state      *session.State
	brightness brightness.Provider
	player     action.Player
	driver     *cadence.Driver
	applier    *apply.Applier
	timers     *duration.Manager
	tolerance  float64
	poolSize   int
	logger     *slog.Logger
	events     log.Logger

	// mu serializes SetRate/Reset so state and driver stay in step.
	mu sync.Mutex

	idleMu sync.Mutex
	idle   chan struct{}
}

// NewRateService creates a service.
func NewRateService(cfg Config) (*RateService, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	tol := cfg.Tolerance
	if tol == 0 {
		tol = mode.DefaultTolerance
	}

	applyCfg := apply.DefaultConfig()
	if cfg.Apply != nil {
		applyCfg = *cfg.Apply
	}
	if applyCfg.Logger == nil {
		applyCfg.Logger = logger
	}
	if applyCfg.Events == nil {
		applyCfg.Events = cfg.Events
	}

	driver := cfg.Driver
	if driver == nil {
		driver = cadence.NewDriver(cadence.Config{
			Logger: logger,
			Events: cfg.Events,
			Beeper: cfg.Beeper,
		})
	}

	idle := make(chan struct{})
	close(idle)

	s := &RateService{
		backend:    cfg.Backend,
		state:      cfg.State,
		brightness: cfg.Brightness,
		player:     cfg.Player,
		driver:     driver,
		applier:    apply.NewForBackend(cfg.Backend, applyCfg),
		timers:     duration.NewManager(),
		tolerance:  tol,
		poolSize:   cfg.PoolSize,
		logger:     logger,
		events:     log.OrNoop(cfg.Events),
		idle:       idle,
	}

	s.timers.OnExpiry(s.expireSession)

	return s, nil
}

// Driver returns the cadence driver.
func (s *RateService) Driver() *cadence.Driver {
	return s.driver
}

// State returns the persisted session record.
func (s *RateService) State() *session.State {
	return s.state
}

// Displays returns the active display IDs in platform order.
func (s *RateService) Displays() ([]display.ID, error) {
	ids, err := s.backend.ListActiveDisplays()
	if err != nil {
		if errors.Is(err, display.ErrDisplayUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", display.ErrDisplayUnavailable, err)
	}
	return ids, nil
}

// List describes every active display. Per-display failures are reported in
// DisplayInfo.Err and do not stop the listing.
func (s *RateService) List() ([]DisplayInfo, error) {
	ids, err := s.Displays()
	if err != nil {
		return nil, err
	}

	out := make([]DisplayInfo, 0, len(ids))
	for _, id := range ids {
		info := DisplayInfo{ID: id}
		cat, err := mode.Load(s.backend, id)
		if err != nil {
			info.Err = err
		} else {
			info.Current, info.HasCurrent = cat.Current()
			info.Rates = cat.Rates()
			info.Resolutions = cat.Resolutions()
			info.ModeCount = cat.Len()
			if cat.Empty() {
				info.Err = mode.ErrNoModesAvailable
			}
		}
		if sess, ok := s.driver.Session(id); ok {
			info.SoftwareRate = sess.TargetRate
		}
		out = append(out, info)
	}
	return out, nil
}

// Modes returns a fresh catalog for id.
func (s *RateService) Modes(id display.ID) (*mode.Catalog, error) {
	id, err := s.displayID(id)
	if err != nil {
		return nil, err
	}
	return mode.Load(s.backend, id)
}

// displayID returns id, or the first active display when id is empty.
func (s *RateService) displayID(id display.ID) (display.ID, error) {
	ids, err := s.Displays()
	if err != nil {
		return "", err
	}
	if len(ids) == 0 {
		return "", ErrNoDisplays
	}
	if id == "" {
		return ids[0], nil
	}
	for _, x := range ids {
		if x == id {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownDisplay, id)
}

// SetRate puts a display at the requested rate: in hardware when an exact
// mode can be applied, else by starting a software session.
func (s *RateService) SetRate(ctx context.Context, req SetRequest) (Outcome, error) {
	if err := req.Validate(); err != nil {
		return Outcome{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.displayID(req.DisplayID)
	if err != nil {
		return Outcome{}, err
	}
	req.DisplayID = id
	mreq := req.modeRequest(s.tolerance)
	out := Outcome{DisplayID: id}

	if !req.Software {
		cat, err := mode.Load(s.backend, id)
		if err != nil {
			return out, err
		}

		out.Resolved = mode.Resolve(cat, mreq)
		s.emitResolve(id, mreq, cat, out.Resolved)
		s.logger.Debug("resolved", "display_id", id, "target_hz", req.TargetRate, "match", out.Resolved.String())

		res, err := s.applier.Apply(ctx, id, cat, mreq, out.Resolved)
		switch {
		case err == nil && res.Exact:
			out.Applied = &res
			out.Note = fmt.Sprintf("%s: %s Hz in hardware (%s)", id, display.FormatRate(res.ActualRate), res.Note)
			// A hardware rate supersedes any software session.
			s.stopSoftware(id)
			return out, nil
		case err == nil:
			out.Applied = &res
		case errors.Is(err, mode.ErrNoModesAvailable):
			out.Note = fmt.Sprintf("%s: no rates available", id)
			return out, err
		case ctx.Err() != nil:
			return out, err
		default:
			out.ApplyErr = err
			s.logger.Info("hardware rate unavailable, using software cadence", "display_id", id, "target_hz", req.TargetRate, "error", err)
		}
	}

	info, err := s.startSoftware(id, req)
	if err != nil {
		return out, err
	}
	out.Software = &info
	out.Note = fmt.Sprintf("%s: %s Hz emulated in software (period %s, %d actions)",
		id, display.FormatRate(req.TargetRate), info.Period, len(info.Actions))
	if out.Applied != nil {
		out.Note += fmt.Sprintf("; hardware at %s Hz (%s)", display.FormatRate(out.Applied.ActualRate), out.Applied.Note)
	}
	return out, nil
}

// startSoftware arms and starts a session and records it. Called with mu
// held.
func (s *RateService) startSoftware(id display.ID, req SetRequest) (cadence.Info, error) {
	acts, pulse := s.buildActions(id)

	info, err := s.driver.Run(id, req.TargetRate, acts)
	if err != nil {
		return cadence.Info{}, err
	}
	s.markBusy()

	if pulse != nil {
		if level, ok := pulse.Original(); ok {
			if err := s.state.RecordOriginalBrightness(id, level); err != nil {
				s.logger.Warn("original brightness not persisted", "display_id", id, "error", err)
			}
		}
	}
	if err := s.state.RecordActive(id, req.TargetRate); err != nil {
		s.logger.Warn("session not persisted", "display_id", id, "error", err)
	}

	if req.Duration > 0 {
		if err := s.timers.SetTimer(id, info.ID, req.Duration, req.TargetRate); err != nil {
			s.logger.Warn("session timer not set", "display_id", id, "duration", req.Duration, "error", err)
		}
	} else {
		_ = s.timers.CancelTimer(id)
	}
	return info, nil
}

// buildActions creates the enabled actions for a new session of id.
func (s *RateService) buildActions(id display.ID) ([]action.Action, *action.BrightnessPulse) {
	snap := s.state.Snapshot()

	var (
		acts  []action.Action
		pulse *action.BrightnessPulse
	)
	if snap.ClickSoundEnabled {
		if s.player != nil {
			acts = append(acts, action.NewClick(s.player, action.NewPool(s.poolSize)))
		} else {
			s.logger.Warn("click enabled but no audio player available", "display_id", id)
		}
	}
	if snap.BrightnessPulseEnabled {
		if s.brightness != nil {
			pulse = action.NewBrightnessPulse(s.brightness, id, snap.BrightnessPulseAmount)
			acts = append(acts, pulse)
		} else {
			s.logger.Warn("brightness pulse enabled but no brightness control", "display_id", id)
		}
	}
	return acts, pulse
}

// stopSoftware tears down a live session of id, if any. Called with mu held.
func (s *RateService) stopSoftware(id display.ID) {
	if _, ok := s.driver.Session(id); !ok {
		return
	}
	if err := s.resetLocked(id); err != nil {
		s.logger.Warn("stop software session", "display_id", id, "error", err)
	}
}

// Reset stops the software session of id, restores its brightness and
// clears the persisted record. A record left by an earlier process is
// cleared too.
func (s *RateService) Reset(id display.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resetLocked(id)
}

// expireSession resets the timed session sessionID of id. An expiry that
// raced with a replacement of the session is ignored.
func (s *RateService) expireSession(id display.ID, rate float64, sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if info, ok := s.driver.Session(id); !ok || info.ID != sessionID {
		s.logger.Debug("stale session timer ignored", "display_id", id, "session_id", sessionID)
		return
	}
	s.logger.Info("timed session expired", "display_id", id, "target_hz", rate, "session_id", sessionID)
	if err := s.resetLocked(id); err != nil {
		s.logger.Warn("reset after expiry", "display_id", id, "error", err)
	}
}

func (s *RateService) resetLocked(id display.ID) error {
	_ = s.timers.CancelTimer(id)

	var errs []error
	err := s.driver.Reset(id)
	switch {
	case err == nil:
	case errors.Is(err, cadence.ErrNoSession):
		if !s.state.IsActive(id) {
			return fmt.Errorf("%w: %s", cadence.ErrNoSession, id)
		}
		// Left over from a process that did not shut down cleanly.
		if rerr := s.restoreRecordedBrightness(id); rerr != nil {
			errs = append(errs, rerr)
		}
	default:
		errs = append(errs, err)
	}

	if err := s.state.Clear(id); err != nil {
		errs = append(errs, err)
	}
	s.markIdleIfEmpty()

	s.logger.Info("software session reset", "display_id", id)
	return errors.Join(errs...)
}

func (s *RateService) restoreRecordedBrightness(id display.ID) error {
	level, ok := s.state.OriginalBrightness(id)
	if !ok {
		return nil
	}
	if s.brightness == nil {
		return fmt.Errorf("restore brightness of %s: %w", id, brightness.ErrNoProvider)
	}
	if err := s.brightness.Set(id, level); err != nil {
		return fmt.Errorf("restore brightness of %s: %w", id, err)
	}
	s.logger.Info("brightness restored", "display_id", id, "level", level)
	return nil
}

// ResetAll resets every live or recorded session.
func (s *RateService) ResetAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[display.ID]bool)
	var ids []display.ID
	for _, info := range s.driver.Sessions() {
		seen[info.DisplayID] = true
		ids = append(ids, info.DisplayID)
	}
	for _, id := range s.state.ActiveDisplays() {
		if !seen[id] {
			ids = append(ids, id)
		}
	}

	var errs []error
	for _, id := range ids {
		if err := s.resetLocked(id); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Shutdown stops all timers and sessions, restores brightness and persists
// the cleared state. It is best effort: every step runs even if an earlier
// one failed.
func (s *RateService) Shutdown() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.timers.CancelAll()

	live := s.driver.Sessions()
	var errs []error
	if err := s.driver.Shutdown(); err != nil {
		errs = append(errs, err)
	}
	for _, info := range live {
		if err := s.state.Clear(info.DisplayID); err != nil {
			errs = append(errs, err)
		}
	}
	s.markIdleIfEmpty()
	return errors.Join(errs...)
}

// SetClick enables or disables the click action for new sessions.
func (s *RateService) SetClick(enabled bool) error {
	return s.state.SetClickEnabled(enabled)
}

// SetPulse enables or disables the brightness pulse for new sessions.
func (s *RateService) SetPulse(enabled bool, amount float64) error {
	return s.state.SetBrightnessPulse(enabled, amount)
}

// Status returns live sessions, persisted state and timer deadlines.
func (s *RateService) Status() Status {
	st := Status{
		Sessions:  s.driver.Sessions(),
		Persisted: s.state.Snapshot(),
		Remaining: make(map[display.ID]time.Duration),
	}
	for _, info := range st.Sessions {
		if t := s.timers.GetTimer(info.DisplayID); t != nil {
			st.Remaining[info.DisplayID] = t.RemainingTime()
		}
	}
	return st
}

// Idle returns a channel that is closed while no software session runs.
func (s *RateService) Idle() <-chan struct{} {
	s.idleMu.Lock()
	defer s.idleMu.Unlock()
	return s.idle
}

func (s *RateService) markBusy() {
	s.idleMu.Lock()
	defer s.idleMu.Unlock()
	select {
	case <-s.idle:
		s.idle = make(chan struct{})
	default:
	}
}

func (s *RateService) markIdleIfEmpty() {
	if s.driver.Count() > 0 {
		return
	}
	s.idleMu.Lock()
	defer s.idleMu.Unlock()
	select {
	case <-s.idle:
	default:
		close(s.idle)
	}
}

func (s *RateService) emitResolve(id display.ID, req mode.Request, cat *mode.Catalog, r mode.Resolved) {
	ev := &log.ResolveEvent{
		TargetRate:  req.TargetRate,
		Tolerance:   req.EffectiveTolerance(),
		MatchKind:   r.Kind.String(),
		CatalogSize: cat.Len(),
	}
	if r.Found() {
		ev.Mode = &log.ModeInfo{Width: r.Mode.Width, Height: r.Mode.Height, RefreshRate: r.Mode.RefreshRate}
	}
	s.events.Log(log.Event{
		Timestamp: time.Now(),
		DisplayID: string(id),
		Layer:     log.LayerResolver,
		Category:  log.CategoryResolve,
		Resolve:   ev,
	})
}
