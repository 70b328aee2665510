package action

import (
	"fmt"
	"sync"

	"github.com/hzsync/hzsync-go/pkg/brightness"
	"github.com/hzsync/hzsync-go/pkg/display"
)

// DefaultPulseAmount is the brightness delta of a pulse.
const DefaultPulseAmount = 0.1

// BrightnessPulse changes a display's brightness by Amount on one tick and
// reverts it on the next. Release always restores the level read at Arm.
type BrightnessPulse struct {
	provider brightness.Provider
	id       display.ID
	amount   float64

	mu       sync.Mutex
	armed    bool
	original float64
	pulsed   bool
}

// NewBrightnessPulse creates a pulse action for display id. A non-positive
// amount uses DefaultPulseAmount.
func NewBrightnessPulse(provider brightness.Provider, id display.ID, amount float64) *BrightnessPulse {
	if amount <= 0 {
		amount = DefaultPulseAmount
	}
	return &BrightnessPulse{provider: provider, id: id, amount: brightness.Clamp(amount)}
}

// Name returns "brightness-pulse".
func (p *BrightnessPulse) Name() string {
	return "brightness-pulse"
}

// Arm reads and records the current level.
func (p *BrightnessPulse) Arm() error {
	level, err := p.provider.Get(p.id)
	if err != nil {
		return fmt.Errorf("read brightness of %s: %w", p.id, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.original = level
	p.armed = true
	p.pulsed = false
	return nil
}

// Original returns the level captured by Arm.
func (p *BrightnessPulse) Original() (float64, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.original, p.armed
}

// Pulsed reports whether the display is currently at the pulse level.
func (p *BrightnessPulse) Pulsed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pulsed
}

// pulseLevel moves toward whichever end has room for the full amount.
func (p *BrightnessPulse) pulseLevel() float64 {
	if p.original+p.amount <= 1 {
		return p.original + p.amount
	}
	return brightness.Clamp(p.original - p.amount)
}

// Tick alternates between the pulse level and the original level.
func (p *BrightnessPulse) Tick(uint64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.armed {
		return ErrNotArmed
	}

	target := p.pulseLevel()
	if p.pulsed {
		target = p.original
	}
	if err := p.provider.Set(p.id, target); err != nil {
		return fmt.Errorf("set brightness of %s: %w", p.id, err)
	}
	p.pulsed = !p.pulsed
	return nil
}

// Release restores the armed level.
func (p *BrightnessPulse) Release() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.armed {
		return nil
	}
	p.armed = false
	p.pulsed = false
	if err := p.provider.Set(p.id, p.original); err != nil {
		return fmt.Errorf("restore brightness of %s: %w", p.id, err)
	}
	return nil
}

var _ Action = (*BrightnessPulse)(nil)
