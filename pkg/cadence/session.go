package cadence

import (
	"sync"
	"time"

	"github.com/hzsync/hzsync-go/pkg/action"
	"github.com/hzsync/hzsync-go/pkg/display"
)

// State is a session's lifecycle state.
type State uint8

const (
	// StateIdle means no session exists or it was torn down.
	StateIdle State = iota

	// StateArmed means actions are armed but no ticker runs.
	StateArmed

	// StateRunning means the ticker drives the actions.
	StateRunning
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateArmed:
		return "ARMED"
	case StateRunning:
		return "RUNNING"
	default:
		return "UNKNOWN"
	}
}

// Session is the software cadence of one display. Fields other than the
// immutable identity are guarded by mu or owned by the tick goroutine.
type Session struct {
	ID         string
	DisplayID  display.ID
	TargetRate float64
	Period     time.Duration
	Actions    []action.Action
	ArmedAt    time.Time

	mu          sync.Mutex
	state       State
	startedAt   time.Time
	ticks       uint64
	failures    uint64
	maxLateness time.Duration

	ticker Ticker
	stop   chan struct{}
	done   chan struct{}
}

// Info is a point-in-time view of a session.
type Info struct {
	ID             string
	DisplayID      display.ID
	TargetRate     float64
	Period         time.Duration
	State          State
	Actions        []string
	ArmedAt        time.Time
	StartedAt      time.Time
	Ticks          uint64
	ActionFailures uint64
	MaxLateness    time.Duration
}

func (s *Session) info() Info {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, len(s.Actions))
	for i, a := range s.Actions {
		names[i] = a.Name()
	}
	return Info{
		ID:             s.ID,
		DisplayID:      s.DisplayID,
		TargetRate:     s.TargetRate,
		Period:         s.Period,
		State:          s.state,
		Actions:        names,
		ArmedAt:        s.ArmedAt,
		StartedAt:      s.startedAt,
		Ticks:          s.ticks,
		ActionFailures: s.failures,
		MaxLateness:    s.maxLateness,
	}
}

func (s *Session) setState(st State) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	old := s.state
	s.state = st
	return old
}

func (s *Session) currentState() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}
