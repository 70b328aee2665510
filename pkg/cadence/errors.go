package cadence

import (
	"errors"
	"fmt"

	"github.com/hzsync/hzsync-go/pkg/display"
)

// Driver errors.
var (
	// ErrActionFailed marks an action that returned an error or panicked.
	ErrActionFailed = errors.New("action failed")

	// ErrNoSession is returned when a display has no session.
	ErrNoSession = errors.New("no software session for display")

	// ErrInvalidRate is returned for non-positive or non-finite rates.
	ErrInvalidRate = errors.New("invalid cadence rate")

	// ErrNotArmed is returned by Start when the session is not armed.
	ErrNotArmed = errors.New("session not armed")

	// ErrDriverClosed is returned after Shutdown.
	ErrDriverClosed = errors.New("cadence driver shut down")
)

// ActionError describes a failed action invocation.
type ActionError struct {
	Action    string
	DisplayID display.ID
	Op        string

	// Seq is the tick number for tick failures, zero otherwise.
	Seq uint64

	// Err is the action's error. Nil when the action panicked.
	Err error

	// Panic holds the recovered value when the action panicked.
	Panic any
}

func (e *ActionError) Error() string {
	if e.Panic != nil {
		return fmt.Sprintf("action %s %s on %s panicked: %v", e.Action, e.Op, e.DisplayID, e.Panic)
	}
	return fmt.Sprintf("action %s %s on %s: %v", e.Action, e.Op, e.DisplayID, e.Err)
}

// Is reports ErrActionFailed as a match.
func (e *ActionError) Is(target error) bool {
	return target == ErrActionFailed
}

func (e *ActionError) Unwrap() error {
	return e.Err
}
