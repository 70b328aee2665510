package simulated

import (
	"github.com/hzsync/hzsync-go/pkg/display"
)

// Probe reports whether brightness can be controlled on id.
func (b *Backend) Probe(id display.ID) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.FailBrightness {
		return b.errorf("brightness-probe", id, ErrInjectedFailure)
	}
	_, err := b.lookup("brightness-probe", id)
	return err
}

// Get returns the simulated brightness level.
func (b *Backend) Get(id display.ID) (float64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.FailBrightness {
		return 0, b.errorf("brightness-get", id, ErrInjectedFailure)
	}
	d, err := b.lookup("brightness-get", id)
	if err != nil {
		return 0, err
	}
	return d.brightness, nil
}

// Set stores the simulated brightness level.
func (b *Backend) Set(id display.ID, level float64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.FailBrightness {
		return b.errorf("brightness-set", id, ErrInjectedFailure)
	}
	d, err := b.lookup("brightness-set", id)
	if err != nil {
		return err
	}
	d.brightness = level
	b.brightnessW++
	return nil
}

// BrightnessWrites returns how many Set calls succeeded.
func (b *Backend) BrightnessWrites() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.brightnessW
}
