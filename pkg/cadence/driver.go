package cadence

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hzsync/hzsync-go/pkg/action"
	"github.com/hzsync/hzsync-go/pkg/display"
	"github.com/hzsync/hzsync-go/pkg/log"
)

// MaxRate is the highest rate a session accepts.
const MaxRate = 1000.0

// Config configures a Driver.
type Config struct {
	// Logger for operational output (optional).
	Logger *slog.Logger

	// Events receives session and tick events (optional).
	Events log.Logger

	// Beeper substitutes for failed actions (optional).
	Beeper action.Beeper

	// NewTicker creates session tickers. Default: NewRealTicker.
	NewTicker TickerFactory

	// Metrics records tick statistics (optional).
	Metrics *Metrics

	// Now returns the current time. Default: time.Now.
	Now func() time.Time
}

// Driver owns the software sessions, at most one per display.
type Driver struct {
	logger    *slog.Logger
	events    log.Logger
	beeper    action.Beeper
	newTicker TickerFactory
	metrics   *Metrics
	now       func() time.Time

	mu       sync.Mutex
	sessions map[display.ID]*Session
	closed   bool
}

// NewDriver creates a driver.
func NewDriver(cfg Config) *Driver {
	d := &Driver{
		logger:    cfg.Logger,
		events:    log.OrNoop(cfg.Events),
		beeper:    cfg.Beeper,
		newTicker: cfg.NewTicker,
		metrics:   cfg.Metrics,
		now:       cfg.Now,
		sessions:  make(map[display.ID]*Session),
	}
	if d.logger == nil {
		d.logger = slog.Default()
	}
	if d.newTicker == nil {
		d.newTicker = NewRealTicker
	}
	if d.now == nil {
		d.now = time.Now
	}
	return d
}

// ValidateRate checks that rate can drive a session.
func ValidateRate(rate float64) error {
	if math.IsNaN(rate) || math.IsInf(rate, 0) || rate <= 0 || rate > MaxRate {
		return fmt.Errorf("%w: %v", ErrInvalidRate, rate)
	}
	return nil
}

// Arm creates a session for id, replacing any existing one. Each action is
// armed in order; an action that fails to arm is dropped from the session.
func (d *Driver) Arm(id display.ID, rate float64, actions []action.Action) (Info, error) {
	if err := ValidateRate(rate); err != nil {
		return Info{}, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return Info{}, ErrDriverClosed
	}

	if old, ok := d.sessions[id]; ok {
		delete(d.sessions, id)
		if err := d.teardown(old, "replaced"); err != nil {
			d.logger.Warn("release of replaced session", "display_id", id, "error", err)
		}
	}

	s := &Session{
		ID:         uuid.NewString(),
		DisplayID:  id,
		TargetRate: rate,
		Period:     PeriodFor(rate),
		ArmedAt:    d.now(),
	}

	for _, a := range actions {
		if a == nil {
			continue
		}
		if err := d.invoke(s, a, "arm", 0, a.Arm); err != nil {
			continue
		}
		s.Actions = append(s.Actions, a)
	}

	s.state = StateArmed
	d.sessions[id] = s
	if d.metrics != nil {
		d.metrics.ActiveSessions.Inc()
	}

	d.logger.Info("software session armed",
		"display_id", id,
		"session_id", s.ID,
		"target_hz", rate,
		"period", s.Period,
		"actions", len(s.Actions),
	)
	d.emitState(s, StateIdle, StateArmed, "armed")
	return s.info(), nil
}

// Start begins ticking an armed session.
func (d *Driver) Start(id display.ID) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return ErrDriverClosed
	}
	s, ok := d.sessions[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoSession, id)
	}
	if st := s.currentState(); st != StateArmed {
		return fmt.Errorf("%w: %s is %s", ErrNotArmed, id, st)
	}

	s.ticker = d.newTicker(s.Period)
	s.stop = make(chan struct{})
	s.done = make(chan struct{})

	s.mu.Lock()
	s.state = StateRunning
	s.startedAt = d.now()
	s.mu.Unlock()

	go d.loop(s, s.ticker, s.stop, s.done)

	d.logger.Debug("software session started", "display_id", id, "session_id", s.ID)
	d.emitState(s, StateArmed, StateRunning, "started")
	return nil
}

// Run arms and starts a session.
func (d *Driver) Run(id display.ID, rate float64, actions []action.Action) (Info, error) {
	if _, err := d.Arm(id, rate, actions); err != nil {
		return Info{}, err
	}
	if err := d.Start(id); err != nil {
		return Info{}, err
	}
	return d.sessionInfo(id)
}

func (d *Driver) sessionInfo(id display.ID) (Info, error) {
	info, ok := d.Session(id)
	if !ok {
		return Info{}, fmt.Errorf("%w: %s", ErrNoSession, id)
	}
	return info, nil
}

// Reset tears down the session of id. Ticking has stopped and all actions
// have been released when Reset returns. The returned error joins release
// failures, or wraps ErrNoSession.
func (d *Driver) Reset(id display.ID) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	s, ok := d.sessions[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoSession, id)
	}
	delete(d.sessions, id)
	return d.teardown(s, "reset")
}

// Shutdown tears down every session and rejects further use.
func (d *Driver) Shutdown() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.closed = true

	ids := make([]display.ID, 0, len(d.sessions))
	for id := range d.sessions {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var errs []error
	for _, id := range ids {
		s := d.sessions[id]
		delete(d.sessions, id)
		if err := d.teardown(s, "shutdown"); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Session returns a view of the session of id.
func (d *Driver) Session(id display.ID) (Info, bool) {
	d.mu.Lock()
	s, ok := d.sessions[id]
	d.mu.Unlock()
	if !ok {
		return Info{}, false
	}
	return s.info(), true
}

// Sessions returns views of all sessions ordered by display ID.
func (d *Driver) Sessions() []Info {
	d.mu.Lock()
	list := make([]*Session, 0, len(d.sessions))
	for _, s := range d.sessions {
		list = append(list, s)
	}
	d.mu.Unlock()

	out := make([]Info, len(list))
	for i, s := range list {
		out[i] = s.info()
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayID < out[j].DisplayID })
	return out
}

// Count returns the number of sessions.
func (d *Driver) Count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.sessions)
}

// teardown stops ticking, joins the tick goroutine, then releases actions in
// reverse order. Called with d.mu held.
func (d *Driver) teardown(s *Session, reason string) error {
	if s.ticker != nil {
		close(s.stop)
		s.ticker.Stop()
		<-s.done
		s.ticker = nil
	}

	var errs []error
	for i := len(s.Actions) - 1; i >= 0; i-- {
		a := s.Actions[i]
		if err := d.invoke(s, a, "release", 0, a.Release); err != nil {
			errs = append(errs, err)
		}
	}

	old := s.setState(StateIdle)
	if d.metrics != nil {
		d.metrics.ActiveSessions.Dec()
	}

	info := s.info()
	d.logger.Info("software session stopped",
		"display_id", s.DisplayID,
		"session_id", s.ID,
		"reason", reason,
		"ticks", info.Ticks,
		"action_failures", info.ActionFailures,
	)
	d.events.Log(log.Event{
		Timestamp: d.now(),
		SessionID: s.ID,
		DisplayID: string(s.DisplayID),
		Layer:     log.LayerCadence,
		Category:  log.CategoryTick,
		Tick: &log.TickEvent{
			Ticks:          info.Ticks,
			ActionFailures: info.ActionFailures,
			Period:         s.Period,
			MaxLateness:    info.MaxLateness,
			Elapsed:        elapsed(info.StartedAt, d.now()),
		},
	})
	d.emitState(s, old, StateIdle, reason)
	return errors.Join(errs...)
}

func elapsed(start, now time.Time) time.Duration {
	if start.IsZero() {
		return 0
	}
	return now.Sub(start)
}

// loop is the tick goroutine. It never takes d.mu.
func (d *Driver) loop(s *Session, t Ticker, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	var seq uint64
	for {
		select {
		case <-stop:
			return
		case scheduled := <-t.C():
			// A stop that raced with a tick wins.
			select {
			case <-stop:
				return
			default:
			}
			seq++
			d.tick(s, seq, scheduled)
		}
	}
}

func (d *Driver) tick(s *Session, seq uint64, scheduled time.Time) {
	late := d.now().Sub(scheduled)
	if late < 0 {
		late = 0
	}

	s.mu.Lock()
	s.ticks = seq
	if late > s.maxLateness {
		s.maxLateness = late
	}
	s.mu.Unlock()

	if d.metrics != nil {
		d.metrics.TicksTotal.WithLabelValues(string(s.DisplayID)).Inc()
		d.metrics.TickLateness.Observe(late.Seconds())
	}

	for _, a := range s.Actions {
		_ = d.invoke(s, a, "tick", seq, func() error { return a.Tick(seq) })
	}
}

// invoke runs fn, converting errors and panics into an ActionError that is
// logged, counted and substituted by a beep.
func (d *Driver) invoke(s *Session, a action.Action, op string, seq uint64, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &ActionError{Action: a.Name(), DisplayID: s.DisplayID, Op: op, Seq: seq, Panic: r}
		}
		if err != nil {
			d.actionFailed(s, a, err)
		}
	}()

	if e := fn(); e != nil {
		return &ActionError{Action: a.Name(), DisplayID: s.DisplayID, Op: op, Seq: seq, Err: e}
	}
	return nil
}

func (d *Driver) actionFailed(s *Session, a action.Action, err error) {
	s.mu.Lock()
	s.failures++
	n := s.failures
	s.mu.Unlock()

	if d.metrics != nil {
		d.metrics.ActionFailuresTotal.WithLabelValues(string(s.DisplayID), a.Name()).Inc()
	}

	// First failure at warn; repeats at the tick rate would flood the log.
	level := slog.LevelDebug
	if n == 1 {
		level = slog.LevelWarn
	}
	d.logger.Log(context.Background(), level, "action failed",
		"display_id", s.DisplayID,
		"session_id", s.ID,
		"action", a.Name(),
		"failures", n,
		"error", err,
	)

	d.events.Log(log.Event{
		Timestamp: d.now(),
		SessionID: s.ID,
		DisplayID: string(s.DisplayID),
		Layer:     log.LayerCadence,
		Category:  log.CategoryError,
		Error: &log.ErrorEventData{
			Layer:   log.LayerCadence,
			Message: err.Error(),
			Kind:    "ACTION_FAILED",
			Context: a.Name(),
		},
	})

	if d.beeper != nil {
		if berr := d.beeper.Beep(); berr != nil {
			d.logger.Debug("fallback beep failed", "error", berr)
		}
	}
}

func (d *Driver) emitState(s *Session, from, to State, reason string) {
	d.events.Log(log.Event{
		Timestamp: d.now(),
		SessionID: s.ID,
		DisplayID: string(s.DisplayID),
		Layer:     log.LayerCadence,
		Category:  log.CategoryState,
		StateChange: &log.StateChangeEvent{
			Entity:     log.StateEntitySession,
			OldState:   from.String(),
			NewState:   to.String(),
			Reason:     reason,
			TargetRate: s.TargetRate,
		},
	})
}
