package xrandr

import (
	"fmt"
	"strconv"

	"github.com/hzsync/hzsync-go/pkg/display"
)

// GammaBrightness controls perceived brightness through the output's gamma
// ramp (xrandr --brightness). It works on any X output but does not change
// the backlight.
type GammaBrightness struct {
	b *Backend
}

// NewGammaBrightness returns a gamma-based brightness provider.
func NewGammaBrightness(b *Backend) *GammaBrightness {
	return &GammaBrightness{b: b}
}

// Name returns the provider name.
func (g *GammaBrightness) Name() string {
	return "xrandr-gamma"
}

// Probe verifies the output exists and reports a brightness value.
func (g *GammaBrightness) Probe(id display.ID) error {
	_, err := g.Get(id)
	return err
}

// Get parses the "Brightness:" line from --verbose output.
func (g *GammaBrightness) Get(id display.ID) (float64, error) {
	o, err := g.b.output("brightness-get", id, true)
	if err != nil {
		return 0, err
	}
	if !o.HasBrightness {
		return 0, &display.BackendError{Backend: BackendName, Op: "brightness-get", Display: id, Err: display.ErrUnsupported}
	}
	return o.Brightness, nil
}

// Set applies a gamma brightness multiplier.
func (g *GammaBrightness) Set(id display.ID, level float64) error {
	if level < 0 || level > 1 {
		return fmt.Errorf("brightness %v out of range", level)
	}
	if _, err := g.b.run("--output", string(id), "--brightness", strconv.FormatFloat(level, 'f', 3, 64)); err != nil {
		return &display.BackendError{Backend: BackendName, Op: "brightness-set", Display: id, Err: err}
	}
	return nil
}
