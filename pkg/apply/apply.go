package apply

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hzsync/hzsync-go/pkg/display"
	"github.com/hzsync/hzsync-go/pkg/log"
	"github.com/hzsync/hzsync-go/pkg/mode"
)

// ErrApplyFailed is returned when no step of the chain applied a mode.
var ErrApplyFailed = errors.New("apply failed")

// Step identifies a step of the escalation chain.
type Step uint8

const (
	// StepNone means no step ran.
	StepNone Step = iota

	// StepDirect commits the exact resolved mode.
	StepDirect

	// StepCustomTiming injects a synthetic timing.
	StepCustomTiming

	// StepStandard commits the closest advertised mode.
	StepStandard
)

// String returns the step name.
func (s Step) String() string {
	switch s {
	case StepNone:
		return "NONE"
	case StepDirect:
		return "DIRECT"
	case StepCustomTiming:
		return "CUSTOM_TIMING"
	case StepStandard:
		return "STANDARD"
	default:
		return "UNKNOWN"
	}
}

// Result describes an applied mode.
type Result struct {
	// ActualRate is the refresh rate the display runs at afterwards.
	ActualRate float64

	// Mode is the mode the display runs in afterwards.
	Mode display.Mode

	// Step is the step that produced the result.
	Step Step

	// Exact reports whether ActualRate is within tolerance of the request.
	Exact bool

	// Unchanged is set when the display already ran the mode and no
	// transaction was issued.
	Unchanged bool

	// Note is a human-readable summary.
	Note string
}

// Config configures an Applier.
type Config struct {
	// Permanence is the commit scope for transactions.
	Permanence display.Permanence

	// SkipCustomTiming disables step 2.
	SkipCustomTiming bool

	// Logger for operational output (optional).
	Logger *slog.Logger

	// Events receives structured apply events (optional).
	Events log.Logger
}

// DefaultConfig returns the default applier configuration.
func DefaultConfig() Config {
	return Config{
		Permanence: display.PermanencePermanent,
	}
}

// Applier runs the escalation chain against a display platform.
type Applier struct {
	enum     display.Enumerator
	conf     display.Configurator
	injector display.TimingInjector

	config Config
	logger *slog.Logger
	events log.Logger
}

// New creates an Applier. injector may be nil, which disables the custom
// timing step.
func New(enum display.Enumerator, conf display.Configurator, injector display.TimingInjector, config Config) *Applier {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Applier{
		enum:     enum,
		conf:     conf,
		injector: injector,
		config:   config,
		logger:   logger,
		events:   log.OrNoop(config.Events),
	}
}

// NewForBackend creates an Applier using all collaborators of b.
func NewForBackend(b display.Backend, config Config) *Applier {
	return New(b, b, b, config)
}

// Apply tries to put display id into the mode best matching req.
//
// cat must be a fresh catalog for id and resolved the resolver's outcome for
// req over cat. On failure the returned error wraps ErrApplyFailed, or
// mode.ErrNoModesAvailable when the catalog is empty.
func (a *Applier) Apply(ctx context.Context, id display.ID, cat *mode.Catalog, req mode.Request, resolved mode.Resolved) (Result, error) {
	if cat == nil || cat.Empty() {
		a.emit(id, req, Result{Step: StepNone, Note: "no rates available"}, false)
		return Result{Step: StepNone, Note: "no rates available"}, fmt.Errorf("%s: %w", id, mode.ErrNoModesAvailable)
	}

	var failures []error

	// Step 1: direct commit of the exact mode.
	if resolved.Kind == mode.MatchExact {
		res, err := a.commit(id, cat, req, resolved.Mode, StepDirect)
		if err == nil {
			return res, nil
		}
		failures = append(failures, err)
	}

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	// Step 2: forced custom timing.
	if !a.config.SkipCustomTiming && a.injector != nil {
		res, err := a.customTiming(id, cat, req, resolved)
		if err == nil {
			return res, nil
		}
		failures = append(failures, err)
	}

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	// Step 3: closest standard mode.
	std := mode.ResolveStandard(cat, req)
	if std.Found() {
		res, err := a.commit(id, cat, req, std.Mode, StepStandard)
		if err == nil {
			return res, nil
		}
		failures = append(failures, err)
	}

	return Result{Step: StepNone, Note: "no step applied a mode"},
		fmt.Errorf("%w: %s at %s Hz: %w", ErrApplyFailed, id, display.FormatRate(req.TargetRate), errors.Join(failures...))
}

// commit applies m in a single transaction, or reports the current mode when
// the display already runs m.
func (a *Applier) commit(id display.ID, cat *mode.Catalog, req mode.Request, m display.Mode, step Step) (Result, error) {
	res := Result{
		ActualRate: m.RefreshRate,
		Mode:       m,
		Step:       step,
		Exact:      req.Within(m.RefreshRate),
	}

	if cur, ok := cat.Current(); ok && cur == m {
		res.Unchanged = true
		res.Note = describe(res.Exact) + ", already current"
		a.logger.Debug("mode already current", "display_id", id, "mode", m.String(), "step", step.String())
		a.emit(id, req, res, true)
		return res, nil
	}

	if err := a.transact(id, m); err != nil {
		a.logger.Debug("commit failed", "display_id", id, "mode", m.String(), "step", step.String(), "error", err)
		a.emit(id, req, Result{Step: step, Note: err.Error()}, false)
		return Result{}, fmt.Errorf("%s: %w", step, err)
	}

	res.Note = describe(res.Exact)
	a.logger.Info("mode applied", "display_id", id, "mode", m.String(), "step", step.String(), "exact", res.Exact)
	a.emit(id, req, res, true)
	return res, nil
}

// transact runs begin/configure/commit, cancelling on any failure.
func (a *Applier) transact(id display.ID, m display.Mode) error {
	h, err := a.conf.BeginConfig()
	if err != nil {
		return fmt.Errorf("begin config: %w", err)
	}

	if err := a.conf.Configure(h, id, m); err != nil {
		a.cancel(h)
		return fmt.Errorf("configure %s: %w", m, err)
	}

	if err := a.conf.Commit(h, a.config.Permanence); err != nil {
		a.cancel(h)
		return fmt.Errorf("commit %s: %w", m, err)
	}
	return nil
}

func (a *Applier) cancel(h display.ConfigHandle) {
	if err := a.conf.Cancel(h); err != nil {
		a.logger.Debug("cancel config", "handle", h, "error", err)
	}
}

// customTiming injects a synthetic timing for the requested rate at the
// target resolution and confirms it with a fresh current-mode read.
func (a *Applier) customTiming(id display.ID, cat *mode.Catalog, req mode.Request, resolved mode.Resolved) (Result, error) {
	res := timingResolution(cat, req, resolved)
	t, err := display.ComputeTiming(res.Width, res.Height, req.TargetRate)
	if err != nil {
		a.emit(id, req, Result{Step: StepCustomTiming, Note: err.Error()}, false)
		return Result{}, fmt.Errorf("%s: %w", StepCustomTiming, err)
	}

	if err := a.injector.InjectTiming(id, t); err != nil {
		a.emit(id, req, Result{Step: StepCustomTiming, Note: err.Error()}, false)
		return Result{}, fmt.Errorf("%s: inject: %w", StepCustomTiming, err)
	}

	cur, ok, err := a.enum.CurrentMode(id)
	if err != nil {
		a.emit(id, req, Result{Step: StepCustomTiming, Note: err.Error()}, false)
		return Result{}, fmt.Errorf("%s: verify: %w", StepCustomTiming, err)
	}
	if !ok || !req.Within(cur.RefreshRate) {
		a.logger.Debug("custom timing not honored", "display_id", id, "modeline", t.Modeline())
		a.emit(id, req, Result{Step: StepCustomTiming, Note: "timing not honored"}, false)
		return Result{}, fmt.Errorf("%s: display did not accept %s Hz", StepCustomTiming, display.FormatRate(req.TargetRate))
	}

	r := Result{
		ActualRate: cur.RefreshRate,
		Mode:       cur,
		Step:       StepCustomTiming,
		Exact:      true,
		Note:       "exact, custom timing",
	}
	a.logger.Info("custom timing applied", "display_id", id, "mode", cur.String(), "pixel_clock_mhz", t.PixelClockMHz())
	a.emit(id, req, r, true)
	return r, nil
}

// timingResolution picks the resolution for a synthetic timing: the
// requested one, else the current one, else the resolved mode's.
func timingResolution(cat *mode.Catalog, req mode.Request, resolved mode.Resolved) display.Resolution {
	if r, ok := req.Preferred(); ok {
		return r
	}
	if cur, ok := cat.Current(); ok {
		return cur.Resolution()
	}
	if resolved.Found() {
		return resolved.Mode.Resolution()
	}
	return cat.Modes()[0].Resolution()
}

func describe(exact bool) string {
	if exact {
		return "exact"
	}
	return "closest available"
}

func (a *Applier) emit(id display.ID, req mode.Request, r Result, success bool) {
	ev := &log.ApplyEvent{
		Step:       r.Step.String(),
		TargetRate: req.TargetRate,
		Success:    success,
		Note:       r.Note,
	}
	if success {
		ev.ActualRate = r.ActualRate
		ev.Exact = r.Exact
	}
	a.events.Log(log.Event{
		Timestamp: time.Now(),
		DisplayID: string(id),
		Layer:     log.LayerApplier,
		Category:  log.CategoryApply,
		Apply:     ev,
	})
}
