package action

import (
	"errors"
)

// Action errors.
var (
	// ErrNotArmed is returned by Tick before Arm succeeded.
	ErrNotArmed = errors.New("action not armed")

	// ErrNoPlayer is returned when no audio player is available.
	ErrNoPlayer = errors.New("no audio player available")
)

// Action is a periodic side effect driven by a cadence session.
type Action interface {
	// Name returns a short name for logs and metrics.
	Name() string

	// Arm captures the state Release restores.
	Arm() error

	// Tick performs the side effect for tick number seq, starting at 1.
	Tick(seq uint64) error

	// Release stops outstanding work and restores the armed state.
	Release() error
}
