package display

import (
	"errors"
	"fmt"
	"math"
)

// Display errors.
var (
	// ErrDisplayUnavailable is returned when enumeration or a mode query fails.
	ErrDisplayUnavailable = errors.New("display unavailable")

	// ErrUnsupported is returned by backends that lack a capability.
	ErrUnsupported = errors.New("operation not supported by backend")
)

// ID identifies a display within a backend.
type ID string

// Mode is a hardware-advertised display configuration.
type Mode struct {
	Width       int     `json:"width" yaml:"width"`
	Height      int     `json:"height" yaml:"height"`
	RefreshRate float64 `json:"refresh_rate" yaml:"refresh_rate"`
}

// String returns the mode as "WxH@R".
func (m Mode) String() string {
	return fmt.Sprintf("%dx%d@%s", m.Width, m.Height, FormatRate(m.RefreshRate))
}

// Valid reports whether all fields are positive.
func (m Mode) Valid() bool {
	return m.Width > 0 && m.Height > 0 && m.RefreshRate > 0
}

// SameResolution reports whether m and o share width and height.
func (m Mode) SameResolution(o Mode) bool {
	return m.Width == o.Width && m.Height == o.Height
}

// Resolution is a width/height pair.
type Resolution struct {
	Width  int
	Height int
}

// String returns the resolution as "WxH".
func (r Resolution) String() string {
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}

// Resolution returns the mode's resolution.
func (m Mode) Resolution() Resolution {
	return Resolution{Width: m.Width, Height: m.Height}
}

// FormatRate renders a refresh rate without trailing zeros (60, 59.94).
func FormatRate(rate float64) string {
	if rate == math.Trunc(rate) {
		return fmt.Sprintf("%.0f", rate)
	}
	return fmt.Sprintf("%.2f", rate)
}

// Permanence selects how long a committed configuration lasts.
type Permanence uint8

const (
	// PermanenceSession lasts until logout.
	PermanenceSession Permanence = iota

	// PermanencePermanent survives restarts where the platform supports it.
	PermanencePermanent
)

// String returns the permanence name.
func (p Permanence) String() string {
	switch p {
	case PermanenceSession:
		return "SESSION"
	case PermanencePermanent:
		return "PERMANENT"
	default:
		return "UNKNOWN"
	}
}

// ConfigHandle is an open configuration transaction.
type ConfigHandle uint64

// Enumerator lists displays and their modes.
type Enumerator interface {
	// ListActiveDisplays returns active display IDs in platform order.
	ListActiveDisplays() ([]ID, error)

	// CurrentMode returns the display's current mode. ok is false when the
	// platform cannot report one.
	CurrentMode(id ID) (m Mode, ok bool, err error)

	// AllModes returns every mode the display advertises, in platform order.
	// A nil slice with a nil error means the query returned nothing.
	AllModes(id ID) ([]Mode, error)
}

// Configurator commits display modes transactionally.
type Configurator interface {
	// BeginConfig opens a configuration transaction.
	BeginConfig() (ConfigHandle, error)

	// Configure stages a mode for a display within the transaction.
	Configure(h ConfigHandle, id ID, m Mode) error

	// Commit applies all staged changes.
	Commit(h ConfigHandle, p Permanence) error

	// Cancel abandons the transaction without applying anything.
	Cancel(h ConfigHandle) error
}

// TimingInjector pushes synthetic timing through the platform's low-level
// display-property interface. Implementations may report success even when
// the hardware ignored the request.
type TimingInjector interface {
	InjectTiming(id ID, t Timing) error
}

// Backend bundles the collaborators a display platform provides.
type Backend interface {
	Enumerator
	Configurator
	TimingInjector

	// Name returns a short backend name for logs.
	Name() string
}

// BackendError wraps a failure from a platform call.
type BackendError struct {
	Backend string
	Op      string
	Display ID
	Err     error
}

func (e *BackendError) Error() string {
	if e.Display != "" {
		return fmt.Sprintf("%s: %s %s: %v", e.Backend, e.Op, e.Display, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Backend, e.Op, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}
