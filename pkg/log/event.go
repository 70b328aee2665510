package log

import (
	"time"
)

// Event is a captured occurrence in any layer.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID identifies the software cadence session (UUID), if any.
	SessionID string `cbor:"2,keyasint,omitempty"`

	// DisplayID is the display the event concerns.
	DisplayID string `cbor:"3,keyasint,omitempty"`

	// Layer where the event was captured.
	Layer Layer `cbor:"4,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"5,keyasint"`

	// Type-specific payload (one of these will be set).
	Resolve     *ResolveEvent     `cbor:"10,keyasint,omitempty"`
	Apply       *ApplyEvent       `cbor:"11,keyasint,omitempty"`
	StateChange *StateChangeEvent `cbor:"12,keyasint,omitempty"`
	Tick        *TickEvent        `cbor:"13,keyasint,omitempty"`
	Error       *ErrorEventData   `cbor:"14,keyasint,omitempty"`
}

// Layer indicates which component captured the event.
type Layer uint8

const (
	// LayerResolver is the rate resolver.
	LayerResolver Layer = 0
	// LayerApplier is the mode applier.
	LayerApplier Layer = 1
	// LayerCadence is the software cadence driver.
	LayerCadence Layer = 2
	// LayerSession is the persisted session state.
	LayerSession Layer = 3
)

// String returns the layer name.
func (l Layer) String() string {
	switch l {
	case LayerResolver:
		return "RESOLVER"
	case LayerApplier:
		return "APPLIER"
	case LayerCadence:
		return "CADENCE"
	case LayerSession:
		return "SESSION"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryResolve indicates a resolution outcome.
	CategoryResolve Category = 0
	// CategoryApply indicates an applier step.
	CategoryApply Category = 1
	// CategoryState indicates a state change.
	CategoryState Category = 2
	// CategoryTick indicates a tick summary.
	CategoryTick Category = 3
	// CategoryError indicates an error event.
	CategoryError Category = 4
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryResolve:
		return "RESOLVE"
	case CategoryApply:
		return "APPLY"
	case CategoryState:
		return "STATE"
	case CategoryTick:
		return "TICK"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ModeInfo is a display mode as recorded in events.
type ModeInfo struct {
	Width       int     `cbor:"1,keyasint"`
	Height      int     `cbor:"2,keyasint"`
	RefreshRate float64 `cbor:"3,keyasint"`
}

// ResolveEvent captures a rate resolution.
type ResolveEvent struct {
	// TargetRate is the requested rate in Hz.
	TargetRate float64 `cbor:"1,keyasint"`

	// Tolerance is the exact-match threshold used.
	Tolerance float64 `cbor:"2,keyasint"`

	// MatchKind is the resolver's match kind name.
	MatchKind string `cbor:"3,keyasint"`

	// Mode is the selected mode (nil for no match).
	Mode *ModeInfo `cbor:"4,keyasint,omitempty"`

	// CatalogSize is the number of modes considered.
	CatalogSize int `cbor:"5,keyasint"`
}

// ApplyEvent captures one step of the applier's escalation chain.
type ApplyEvent struct {
	// Step is the applier step name.
	Step string `cbor:"1,keyasint"`

	// TargetRate is the requested rate in Hz.
	TargetRate float64 `cbor:"2,keyasint"`

	// ActualRate is the rate after the step (zero on failure).
	ActualRate float64 `cbor:"3,keyasint,omitempty"`

	// Success reports whether the step produced an applied mode.
	Success bool `cbor:"4,keyasint"`

	// Exact reports whether ActualRate is within tolerance of TargetRate.
	Exact bool `cbor:"5,keyasint,omitempty"`

	// Note is the human-readable outcome.
	Note string `cbor:"6,keyasint,omitempty"`
}

// StateChangeEvent captures session lifecycle transitions.
type StateChangeEvent struct {
	// Entity being changed.
	Entity StateEntity `cbor:"1,keyasint"`

	// OldState is the previous state (may be empty).
	OldState string `cbor:"2,keyasint,omitempty"`

	// NewState is the new state.
	NewState string `cbor:"3,keyasint"`

	// Reason for the change (if available).
	Reason string `cbor:"4,keyasint,omitempty"`

	// TargetRate is the session's rate, when relevant.
	TargetRate float64 `cbor:"5,keyasint,omitempty"`
}

// StateEntity indicates what entity changed state.
type StateEntity uint8

const (
	// StateEntitySession indicates a cadence session state change.
	StateEntitySession StateEntity = 0
	// StateEntityPersisted indicates a persisted state change.
	StateEntityPersisted StateEntity = 1
	// StateEntitySettings indicates an action settings change.
	StateEntitySettings StateEntity = 2
)

// String returns the state entity name.
func (s StateEntity) String() string {
	switch s {
	case StateEntitySession:
		return "SESSION"
	case StateEntityPersisted:
		return "PERSISTED"
	case StateEntitySettings:
		return "SETTINGS"
	default:
		return "UNKNOWN"
	}
}

// TickEvent summarizes the ticks of a session.
type TickEvent struct {
	// Ticks is the number of ticks delivered.
	Ticks uint64 `cbor:"1,keyasint"`

	// ActionFailures is the number of failed action invocations.
	ActionFailures uint64 `cbor:"2,keyasint,omitempty"`

	// Period is the configured tick period.
	Period time.Duration `cbor:"3,keyasint"`

	// MaxLateness is the largest observed delay past a scheduled tick.
	MaxLateness time.Duration `cbor:"4,keyasint,omitempty"`

	// Elapsed is the time the session ran.
	Elapsed time.Duration `cbor:"5,keyasint,omitempty"`
}

// ErrorEventData captures errors at any layer.
type ErrorEventData struct {
	// Layer where the error occurred.
	Layer Layer `cbor:"1,keyasint"`

	// Message is the error message.
	Message string `cbor:"2,keyasint"`

	// Kind is the error kind, e.g. ACTION_FAILED.
	Kind string `cbor:"3,keyasint,omitempty"`

	// Context describes what operation was being performed.
	Context string `cbor:"4,keyasint,omitempty"`
}
