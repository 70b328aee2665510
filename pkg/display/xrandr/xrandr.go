// Package xrandr implements the display backend for X11 using the xrandr tool.
//
// Mode lists and the current mode come from `xrandr --query`. Commits stage
// every output change of a transaction and issue them as one xrandr
// invocation so the server applies them together. Custom timing is injected
// by registering a modeline (--newmode/--addmode) and selecting it.
//
// xrandr changes last for the X session; PermanencePermanent is accepted but
// has no extra effect.
package xrandr

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/hzsync/hzsync-go/pkg/display"
)

// BackendName is the name reported by the xrandr backend.
const BackendName = "xrandr"

// DefaultTimeout bounds a single xrandr invocation.
const DefaultTimeout = 5 * time.Second

// Backend errors.
var (
	ErrUnknownHandle = errors.New("unknown configuration handle")
	ErrUnknownOutput = errors.New("unknown output")
)

// Runner executes an external command and returns its stdout.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Run executes the command and returns its standard output.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.Output()
	if err != nil {
		var ee *exec.ExitError
		if errors.As(err, &ee) && len(ee.Stderr) > 0 {
			return out, fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(ee.Stderr)))
		}
		return out, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}

// Config configures the backend.
type Config struct {
	// Binary is the xrandr executable. Default: "xrandr".
	Binary string

	// Timeout bounds each invocation. Default: DefaultTimeout.
	Timeout time.Duration

	Runner Runner
	Logger *slog.Logger
}

// Backend drives displays through xrandr.
type Backend struct {
	binary  string
	timeout time.Duration
	runner  Runner
	logger  *slog.Logger

	mu         sync.Mutex
	nextHandle display.ConfigHandle
	pending    map[display.ConfigHandle][]staged
}

type staged struct {
	id   display.ID
	mode display.Mode
}

// New creates an xrandr backend.
func New(cfg Config) *Backend {
	if cfg.Binary == "" {
		cfg.Binary = "xrandr"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Runner == nil {
		cfg.Runner = ExecRunner{}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Backend{
		binary:  cfg.Binary,
		timeout: cfg.Timeout,
		runner:  cfg.Runner,
		logger:  cfg.Logger,
		pending: make(map[display.ConfigHandle][]staged),
	}
}

// Name returns the backend name.
func (b *Backend) Name() string {
	return BackendName
}

func (b *Backend) run(args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()
	b.logger.Debug("xrandr", "args", strings.Join(args, " "))
	return b.runner.Run(ctx, b.binary, args...)
}

func (b *Backend) query(verbose bool) ([]*Output, error) {
	args := []string{"--query"}
	if verbose {
		args = []string{"--verbose"}
	}
	out, err := b.run(args...)
	if err != nil {
		return nil, &display.BackendError{Backend: BackendName, Op: "query", Err: errors.Join(display.ErrDisplayUnavailable, err)}
	}
	return ParseQuery(out), nil
}

func (b *Backend) output(op string, id display.ID, verbose bool) (*Output, error) {
	outputs, err := b.query(verbose)
	if err != nil {
		return nil, err
	}
	for _, o := range outputs {
		if o.Name == string(id) && o.Connected {
			return o, nil
		}
	}
	return nil, &display.BackendError{
		Backend: BackendName, Op: op, Display: id,
		Err: errors.Join(display.ErrDisplayUnavailable, ErrUnknownOutput),
	}
}

// ListActiveDisplays returns connected outputs that have a mode set.
func (b *Backend) ListActiveDisplays() ([]display.ID, error) {
	outputs, err := b.query(false)
	if err != nil {
		return nil, err
	}
	var ids []display.ID
	for _, o := range outputs {
		if o.Connected && o.Active {
			ids = append(ids, display.ID(o.Name))
		}
	}
	return ids, nil
}

// CurrentMode returns the mode marked with '*'.
func (b *Backend) CurrentMode(id display.ID) (display.Mode, bool, error) {
	o, err := b.output("current-mode", id, false)
	if err != nil {
		return display.Mode{}, false, err
	}
	return o.Current, o.HasCurrent(), nil
}

// AllModes returns every mode listed under the output.
func (b *Backend) AllModes(id display.ID) ([]display.Mode, error) {
	o, err := b.output("modes", id, false)
	if err != nil {
		return nil, err
	}
	return o.Modes, nil
}

// BeginConfig opens a transaction.
func (b *Backend) BeginConfig() (display.ConfigHandle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextHandle++
	b.pending[b.nextHandle] = nil
	return b.nextHandle, nil
}

// Configure stages an output mode change.
func (b *Backend) Configure(h display.ConfigHandle, id display.ID, m display.Mode) error {
	if !m.Valid() {
		return &display.BackendError{Backend: BackendName, Op: "configure", Display: id, Err: fmt.Errorf("invalid mode %s", m)}
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	list, ok := b.pending[h]
	if !ok {
		return &display.BackendError{Backend: BackendName, Op: "configure", Display: id, Err: ErrUnknownHandle}
	}
	b.pending[h] = append(list, staged{id: id, mode: m})
	return nil
}

// Commit issues all staged changes in a single xrandr call.
func (b *Backend) Commit(h display.ConfigHandle, p display.Permanence) error {
	b.mu.Lock()
	list, ok := b.pending[h]
	delete(b.pending, h)
	b.mu.Unlock()

	if !ok {
		return &display.BackendError{Backend: BackendName, Op: "commit", Err: ErrUnknownHandle}
	}
	if len(list) == 0 {
		return nil
	}

	var args []string
	for _, s := range list {
		args = append(args,
			"--output", string(s.id),
			"--mode", fmt.Sprintf("%dx%d", s.mode.Width, s.mode.Height),
			"--rate", strconv.FormatFloat(s.mode.RefreshRate, 'f', 2, 64),
		)
	}
	if _, err := b.run(args...); err != nil {
		return &display.BackendError{Backend: BackendName, Op: "commit", Err: err}
	}
	b.logger.Debug("xrandr commit", "outputs", len(list), "permanence", p.String())
	return nil
}

// Cancel drops a transaction.
func (b *Backend) Cancel(h display.ConfigHandle) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.pending[h]; !ok {
		return &display.BackendError{Backend: BackendName, Op: "cancel", Err: ErrUnknownHandle}
	}
	delete(b.pending, h)
	return nil
}

// ModeName returns the name used when registering a custom mode.
func ModeName(t display.Timing) string {
	return fmt.Sprintf("%dx%d_%.2f", t.ActiveWidth, t.ActiveHeight, t.RefreshRate)
}

// InjectTiming registers a modeline for t, attaches it to the output and
// selects it. The server or driver may still refuse the timing.
func (b *Backend) InjectTiming(id display.ID, t display.Timing) error {
	name := ModeName(t)
	newmode := append([]string{"--newmode", name}, strings.Fields(t.Modeline())...)
	if _, err := b.run(newmode...); err != nil {
		// The mode survives from an earlier attempt in this X session.
		b.logger.Debug("xrandr newmode failed, reusing existing mode", "mode", name, "error", err)
	}
	if _, err := b.run("--addmode", string(id), name); err != nil {
		return &display.BackendError{Backend: BackendName, Op: "addmode", Display: id, Err: err}
	}
	if _, err := b.run("--output", string(id), "--mode", name); err != nil {
		return &display.BackendError{Backend: BackendName, Op: "inject-timing", Display: id, Err: err}
	}
	return nil
}

var _ display.Backend = (*Backend)(nil)
