package duration

import (
	"sync"
	"testing"
	"time"

	"github.com/hzsync/hzsync-go/pkg/display"
)

func TestTimerBasic(t *testing.T) {
	timer := &Timer{
		DisplayID: "HDMI-1",
		StartTime: time.Now(),
		Duration:  60 * time.Second,
		Rate:      40,
	}

	if timer.IsExpired() {
		t.Error("Timer should not be expired immediately")
	}

	remaining := timer.RemainingTime()
	if remaining < 59*time.Second || remaining > 60*time.Second {
		t.Errorf("RemainingTime() = %v, expected ~60s", remaining)
	}

	if timer.ExpiresAt() != timer.StartTime.Add(timer.Duration) {
		t.Errorf("ExpiresAt() = %v", timer.ExpiresAt())
	}
}

func TestTimerExpired(t *testing.T) {
	timer := &Timer{
		DisplayID: "HDMI-1",
		StartTime: time.Now().Add(-2 * time.Second),
		Duration:  1 * time.Second,
	}

	if !timer.IsExpired() {
		t.Error("Timer should be expired")
	}
	if timer.RemainingTime() != 0 {
		t.Errorf("RemainingTime() = %v, want 0 for expired timer", timer.RemainingTime())
	}
}

func TestManagerSetTimer(t *testing.T) {
	m := NewManager()
	defer m.CancelAll()

	if err := m.SetTimer("HDMI-1", "", 10*time.Minute, 40); err != nil {
		t.Fatalf("SetTimer() error = %v", err)
	}
	if m.Count() != 1 {
		t.Errorf("Count() = %d, want 1", m.Count())
	}

	got := m.GetTimer("HDMI-1")
	if got == nil {
		t.Fatal("GetTimer() returned nil")
	}
	if got.Rate != 40 || got.Duration != 10*time.Minute {
		t.Errorf("GetTimer() = %+v", got)
	}
	if m.GetTimer("DP-1") != nil {
		t.Error("GetTimer() for unknown display should be nil")
	}
}

func TestManagerInvalidDuration(t *testing.T) {
	m := NewManager()

	tests := []time.Duration{0, 500 * time.Millisecond, 25 * time.Hour}
	for _, d := range tests {
		if err := m.SetTimer("HDMI-1", "", d, 40); err != ErrInvalidDuration {
			t.Errorf("SetTimer(%v) error = %v, want ErrInvalidDuration", d, err)
		}
	}
	if m.Count() != 0 {
		t.Errorf("Count() = %d, want 0", m.Count())
	}
}

func TestManagerTimerReplacement(t *testing.T) {
	m := NewManager()
	defer m.CancelAll()

	_ = m.SetTimer("HDMI-1", "", 10*time.Minute, 40)
	_ = m.SetTimer("HDMI-1", "", 20*time.Minute, 50)

	if m.Count() != 1 {
		t.Errorf("Count() = %d, want 1", m.Count())
	}
	if got := m.GetTimer("HDMI-1"); got.Rate != 50 {
		t.Errorf("Rate = %v, want 50", got.Rate)
	}
}

func TestManagerCancelTimer(t *testing.T) {
	m := NewManager()

	_ = m.SetTimer("HDMI-1", "", 10*time.Minute, 40)

	if err := m.CancelTimer("HDMI-1"); err != nil {
		t.Errorf("CancelTimer() error = %v", err)
	}
	if err := m.CancelTimer("HDMI-1"); err != ErrTimerNotFound {
		t.Errorf("CancelTimer() error = %v, want ErrTimerNotFound", err)
	}
	if m.Count() != 0 {
		t.Errorf("Count() = %d, want 0", m.Count())
	}
}

func TestManagerTimerExpiry(t *testing.T) {
	m := NewManager()

	var mu sync.Mutex
	var expiredID display.ID
	var expiredRate float64
	var expiredSession string
	done := make(chan struct{})

	m.OnExpiry(func(id display.ID, rate float64, sessionID string) {
		mu.Lock()
		expiredID, expiredRate, expiredSession = id, rate, sessionID
		mu.Unlock()
		close(done)
	})

	m.setTimer("HDMI-1", "session-a", 20*time.Millisecond, 40)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expiry callback was not called")
	}

	mu.Lock()
	defer mu.Unlock()
	if expiredID != "HDMI-1" || expiredRate != 40 {
		t.Errorf("expired (%q, %v), want (HDMI-1, 40)", expiredID, expiredRate)
	}
	if expiredSession != "session-a" {
		t.Errorf("expired session = %q, want session-a", expiredSession)
	}
	if m.Count() != 0 {
		t.Errorf("Count() = %d after expiry, want 0", m.Count())
	}
}

func TestTimerReplacementCancelsCallback(t *testing.T) {
	m := NewManager()

	var mu sync.Mutex
	var rates []float64

	m.OnExpiry(func(id display.ID, rate float64, _ string) {
		mu.Lock()
		rates = append(rates, rate)
		mu.Unlock()
	})

	m.setTimer("HDMI-1", "", 60*time.Millisecond, 40)
	time.Sleep(20 * time.Millisecond)
	m.setTimer("HDMI-1", "", 150*time.Millisecond, 50)

	// Past the first timer's expiry.
	time.Sleep(80 * time.Millisecond)
	mu.Lock()
	if len(rates) != 0 {
		t.Errorf("replaced timer fired: %v", rates)
	}
	mu.Unlock()

	time.Sleep(150 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	if len(rates) != 1 || rates[0] != 50 {
		t.Errorf("expirations = %v, want [50]", rates)
	}
}

func TestCancelAllSuppressesCallbacks(t *testing.T) {
	m := NewManager()

	called := make(chan display.ID, 2)
	m.OnExpiry(func(id display.ID, rate float64, _ string) { called <- id })

	m.setTimer("HDMI-1", "", 30*time.Millisecond, 40)
	m.setTimer("DP-1", "", 30*time.Millisecond, 50)
	m.CancelAll()

	select {
	case id := <-called:
		t.Errorf("callback fired for %s after CancelAll", id)
	case <-time.After(80 * time.Millisecond):
	}
}
