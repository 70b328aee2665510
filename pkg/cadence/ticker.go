package cadence

import (
	"time"
)

// Ticker delivers ticks on C until stopped.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFactory creates a ticker with the given period.
type TickerFactory func(period time.Duration) Ticker

type realTicker struct {
	t *time.Ticker
}

func (r realTicker) C() <-chan time.Time {
	return r.t.C
}

func (r realTicker) Stop() {
	r.t.Stop()
}

// NewRealTicker returns a Ticker backed by time.Ticker.
func NewRealTicker(period time.Duration) Ticker {
	return realTicker{t: time.NewTicker(period)}
}

// PeriodFor returns the tick period for rate Hz, rounded to the nearest
// nanosecond.
func PeriodFor(rate float64) time.Duration {
	return time.Duration(float64(time.Second)/rate + 0.5)
}
