package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/hzsync/hzsync-go/pkg/apply"
	"github.com/hzsync/hzsync-go/pkg/cadence"
	"github.com/hzsync/hzsync-go/pkg/display"
	"github.com/hzsync/hzsync-go/pkg/mode"
	"github.com/hzsync/hzsync-go/pkg/persistence"
)

// Service errors.
var (
	ErrInvalidConfig  = errors.New("invalid configuration")
	ErrInvalidRequest = errors.New("invalid request")
	ErrNoDisplays     = errors.New("no active displays")
	ErrUnknownDisplay = errors.New("unknown display")
)

// SetRequest asks for a refresh rate on one display.
type SetRequest struct {
	// DisplayID selects the display. Empty means the first active display.
	DisplayID display.ID

	TargetRate float64

	// Width and Height optionally constrain the resolution.
	Width  int
	Height int

	// Tolerance is the exact-match threshold. Zero uses the service default.
	Tolerance float64

	// Software skips hardware application and emulates the rate directly.
	Software bool

	// Duration limits a software session. Zero means until reset.
	Duration time.Duration
}

// Validate checks the request fields.
func (r SetRequest) Validate() error {
	if err := r.modeRequest(0).Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	if (r.Width > 0) != (r.Height > 0) {
		return fmt.Errorf("%w: width and height must be given together", ErrInvalidRequest)
	}
	if r.Duration < 0 {
		return fmt.Errorf("%w: negative duration", ErrInvalidRequest)
	}
	return nil
}

func (r SetRequest) modeRequest(defaultTolerance float64) mode.Request {
	tol := r.Tolerance
	if tol == 0 {
		tol = defaultTolerance
	}
	return mode.Request{
		DisplayID:       r.DisplayID,
		TargetRate:      r.TargetRate,
		PreferredWidth:  r.Width,
		PreferredHeight: r.Height,
		Tolerance:       tol,
	}
}

// Outcome reports what SetRate did.
type Outcome struct {
	DisplayID display.ID

	// Resolved is the resolver's choice. Zero for software-only requests.
	Resolved mode.Resolved

	// Applied is set when the hardware mode changed or already matched.
	Applied *apply.Result

	// ApplyErr is the applier's failure that led to the software fallback.
	ApplyErr error

	// Software is set when a software session runs.
	Software *cadence.Info

	// Note is a one-line human-readable summary.
	Note string
}

// DisplayInfo summarizes one display for listing.
type DisplayInfo struct {
	ID          display.ID
	Current     display.Mode
	HasCurrent  bool
	Rates       []float64
	Resolutions []display.Resolution
	ModeCount   int

	// Err is set when the display's modes could not be read.
	Err error

	// SoftwareRate is the emulated rate of a running software session.
	SoftwareRate float64
}

// Status is a snapshot of live and persisted sessions.
type Status struct {
	Sessions  []cadence.Info
	Persisted persistence.Config

	// Remaining maps displays with a timed session to the time left.
	Remaining map[display.ID]time.Duration
}
