// Package simulated provides an in-memory display backend.
//
// It is used by tests and by the -simulate flag. Failure knobs let callers
// exercise every step of the mode applier's escalation chain.
package simulated

import (
	"errors"
	"fmt"
	"sync"

	"github.com/hzsync/hzsync-go/pkg/display"
)

// BackendName is the name reported by the simulated backend.
const BackendName = "simulated"

// Simulation errors.
var (
	ErrInjectedFailure = errors.New("injected failure")
	ErrUnknownHandle   = errors.New("unknown configuration handle")
)

type simDisplay struct {
	profile    Profile
	current    display.Mode
	hasCurrent bool
	brightness float64
}

// Backend is a simulated display platform.
type Backend struct {
	mu sync.Mutex

	order    []display.ID
	displays map[display.ID]*simDisplay

	nextHandle display.ConfigHandle
	pending    map[display.ConfigHandle]map[display.ID]display.Mode

	commits     int
	injections  []display.Timing
	brightnessW int

	// Failure knobs.
	FailList       bool
	FailBegin      bool
	FailConfigure  bool
	FailCommit     bool
	FailBrightness bool
	Unavailable    map[display.ID]bool
}

// New creates a backend from profiles. A nil profile set uses DefaultProfiles.
func New(p *Profiles) *Backend {
	if p == nil {
		p = DefaultProfiles()
	}
	b := &Backend{
		displays:    make(map[display.ID]*simDisplay),
		pending:     make(map[display.ConfigHandle]map[display.ID]display.Mode),
		Unavailable: make(map[display.ID]bool),
	}
	for _, prof := range p.Displays {
		level := prof.Brightness
		if level == 0 {
			level = 1
		}
		b.order = append(b.order, prof.ID)
		b.displays[prof.ID] = &simDisplay{
			profile:    prof,
			current:    prof.Current,
			hasCurrent: prof.Current.Valid(),
			brightness: level,
		}
	}
	return b
}

// Name returns the backend name.
func (b *Backend) Name() string {
	return BackendName
}

func (b *Backend) errorf(op string, id display.ID, err error) error {
	return &display.BackendError{Backend: BackendName, Op: op, Display: id, Err: err}
}

func (b *Backend) lookup(op string, id display.ID) (*simDisplay, error) {
	d, ok := b.displays[id]
	if !ok || b.Unavailable[id] {
		return nil, b.errorf(op, id, display.ErrDisplayUnavailable)
	}
	return d, nil
}

// ListActiveDisplays returns the profile display IDs in file order.
func (b *Backend) ListActiveDisplays() ([]display.ID, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.FailList {
		return nil, b.errorf("list", "", ErrInjectedFailure)
	}
	out := make([]display.ID, 0, len(b.order))
	for _, id := range b.order {
		if !b.Unavailable[id] {
			out = append(out, id)
		}
	}
	return out, nil
}

// CurrentMode returns the simulated current mode.
func (b *Backend) CurrentMode(id display.ID) (display.Mode, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	d, err := b.lookup("current-mode", id)
	if err != nil {
		return display.Mode{}, false, err
	}
	return d.current, d.hasCurrent, nil
}

// AllModes returns a copy of the display's modes.
func (b *Backend) AllModes(id display.ID) ([]display.Mode, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	d, err := b.lookup("modes", id)
	if err != nil {
		return nil, err
	}
	out := make([]display.Mode, len(d.profile.Modes))
	copy(out, d.profile.Modes)
	return out, nil
}

// BeginConfig opens a transaction.
func (b *Backend) BeginConfig() (display.ConfigHandle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.FailBegin {
		return 0, b.errorf("begin", "", ErrInjectedFailure)
	}
	b.nextHandle++
	b.pending[b.nextHandle] = make(map[display.ID]display.Mode)
	return b.nextHandle, nil
}

// Configure stages a mode. The mode must be one the display advertises.
func (b *Backend) Configure(h display.ConfigHandle, id display.ID, m display.Mode) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	staged, ok := b.pending[h]
	if !ok {
		return b.errorf("configure", id, ErrUnknownHandle)
	}
	d, err := b.lookup("configure", id)
	if err != nil {
		return err
	}
	if b.FailConfigure {
		return b.errorf("configure", id, ErrInjectedFailure)
	}
	if !hasMode(d.profile.Modes, m) {
		return b.errorf("configure", id, fmt.Errorf("mode %s not advertised", m))
	}
	staged[id] = m
	return nil
}

// Commit applies staged modes atomically.
func (b *Backend) Commit(h display.ConfigHandle, p display.Permanence) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	staged, ok := b.pending[h]
	if !ok {
		return b.errorf("commit", "", ErrUnknownHandle)
	}
	delete(b.pending, h)
	if b.FailCommit {
		return b.errorf("commit", "", ErrInjectedFailure)
	}
	for id, m := range staged {
		d := b.displays[id]
		d.current = m
		d.hasCurrent = true
	}
	b.commits++
	return nil
}

// Cancel drops a transaction.
func (b *Backend) Cancel(h display.ConfigHandle) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.pending[h]; !ok {
		return b.errorf("cancel", "", ErrUnknownHandle)
	}
	delete(b.pending, h)
	return nil
}

// InjectTiming records the timing. It only takes effect on displays whose
// profile accepts custom timing; otherwise it is silently ignored.
func (b *Backend) InjectTiming(id display.ID, t display.Timing) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	d, err := b.lookup("inject-timing", id)
	if err != nil {
		return err
	}
	b.injections = append(b.injections, t)
	if !d.profile.AcceptCustomTiming {
		return nil
	}
	m := display.Mode{Width: t.ActiveWidth, Height: t.ActiveHeight, RefreshRate: t.RefreshRate}
	if !hasMode(d.profile.Modes, m) {
		d.profile.Modes = append(d.profile.Modes, m)
	}
	d.current = m
	d.hasCurrent = true
	return nil
}

// Commits returns how many transactions were committed.
func (b *Backend) Commits() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.commits
}

// Injections returns the timings pushed through InjectTiming.
func (b *Backend) Injections() []display.Timing {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]display.Timing, len(b.injections))
	copy(out, b.injections)
	return out
}

// OpenTransactions returns the number of transactions not yet committed or
// cancelled.
func (b *Backend) OpenTransactions() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.pending)
}

func hasMode(modes []display.Mode, m display.Mode) bool {
	for _, x := range modes {
		if x == m {
			return true
		}
	}
	return false
}

var _ display.Backend = (*Backend)(nil)
