package duration

import (
	"errors"
	"sync"
	"time"

	"github.com/hzsync/hzsync-go/pkg/display"
)

// Duration timer errors.
var (
	ErrTimerNotFound   = errors.New("timer not found")
	ErrInvalidDuration = errors.New("invalid duration")
)

// Duration limits.
const (
	// MinDuration is the minimum allowed duration (1 second).
	MinDuration = 1 * time.Second

	// MaxDuration is the maximum allowed duration (24 hours).
	MaxDuration = 24 * time.Hour
)

// Timer represents an active session timer.
type Timer struct {
	// DisplayID is the display whose session expires.
	DisplayID display.ID

	// StartTime is when the timer started.
	StartTime time.Time

	// Duration is the timer duration.
	Duration time.Duration

	// Rate is the emulated rate of the timed session.
	Rate float64

	// SessionID identifies the session the timer was set for.
	SessionID string

	// timer is the Go timer for automatic expiry
	timer *time.Timer
}

// ExpiresAt returns when the timer will expire.
func (t *Timer) ExpiresAt() time.Time {
	return t.StartTime.Add(t.Duration)
}

// RemainingTime returns time until expiry.
func (t *Timer) RemainingTime() time.Duration {
	remaining := t.Duration - time.Since(t.StartTime)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// IsExpired returns true if the timer has expired.
func (t *Timer) IsExpired() bool {
	return time.Since(t.StartTime) >= t.Duration
}

func (t *Timer) snapshot() *Timer {
	return &Timer{
		DisplayID: t.DisplayID,
		StartTime: t.StartTime,
		Duration:  t.Duration,
		Rate:      t.Rate,
		SessionID: t.SessionID,
	}
}

// Manager manages session timers, one per display.
type Manager struct {
	mu sync.RWMutex

	timers map[display.ID]*Timer

	// Callback when timer expires
	onExpiry func(id display.ID, rate float64, sessionID string)
}

// NewManager creates a new timer manager.
func NewManager() *Manager {
	return &Manager{
		timers: make(map[display.ID]*Timer),
	}
}

// Validate checks d against MinDuration and MaxDuration.
func Validate(d time.Duration) error {
	if d < MinDuration || d > MaxDuration {
		return ErrInvalidDuration
	}
	return nil
}

// SetTimer creates or replaces the timer of id for the session sessionID.
// The timer starts immediately.
func (m *Manager) SetTimer(id display.ID, sessionID string, d time.Duration, rate float64) error {
	if err := Validate(d); err != nil {
		return err
	}
	m.setTimer(id, sessionID, d, rate)
	return nil
}

func (m *Manager) setTimer(id display.ID, sessionID string, d time.Duration, rate float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Cancel existing timer if any
	if existing, exists := m.timers[id]; exists && existing.timer != nil {
		existing.timer.Stop()
	}

	t := &Timer{
		DisplayID: id,
		StartTime: time.Now(),
		Duration:  d,
		Rate:      rate,
		SessionID: sessionID,
	}
	t.timer = time.AfterFunc(d, func() {
		m.expireTimer(id, t)
	})
	m.timers[id] = t
}

// CancelTimer cancels a timer without triggering the expiry callback.
func (m *Manager) CancelTimer(id display.ID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, exists := m.timers[id]
	if !exists {
		return ErrTimerNotFound
	}
	if t.timer != nil {
		t.timer.Stop()
	}
	delete(m.timers, id)
	return nil
}

// CancelAll cancels every timer (e.g., on shutdown).
func (m *Manager) CancelAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, t := range m.timers {
		if t.timer != nil {
			t.timer.Stop()
		}
		delete(m.timers, id)
	}
}

// GetTimer returns a copy of the timer of id, or nil if not set.
func (m *Manager) GetTimer(id display.ID) *Timer {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if t, exists := m.timers[id]; exists {
		return t.snapshot()
	}
	return nil
}

// Count returns the number of active timers.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.timers)
}

// OnExpiry sets the callback for timer expiry.
func (m *Manager) OnExpiry(fn func(id display.ID, rate float64, sessionID string)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onExpiry = fn
}

// expireTimer handles expiry of t. A timer replaced after its AfterFunc
// fired is ignored.
func (m *Manager) expireTimer(id display.ID, t *Timer) {
	m.mu.Lock()

	current, exists := m.timers[id]
	if !exists || current != t {
		m.mu.Unlock()
		return
	}
	delete(m.timers, id)
	callback := m.onExpiry

	m.mu.Unlock()

	// Call callback outside lock
	if callback != nil {
		callback(id, t.Rate, t.SessionID)
	}
}
