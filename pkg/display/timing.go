package display

import (
	"fmt"
	"math"
)

// Blanking fractions by resolution class.
const (
	// WideThreshold is the minimum width for the wide blanking class.
	WideThreshold = 1920

	WideHBlank   = 0.20
	WideVBlank   = 0.05
	NarrowHBlank = 0.25
	NarrowVBlank = 0.08
)

// Timing holds synthetic timing parameters for a custom mode.
type Timing struct {
	ActiveWidth    int
	ActiveHeight   int
	BlankingWidth  int
	BlankingHeight int
	RefreshRate    float64

	// PixelClock is in Hz.
	PixelClock float64
}

// TotalWidth returns active plus blanking pixels per line.
func (t Timing) TotalWidth() int {
	return t.ActiveWidth + t.BlankingWidth
}

// TotalHeight returns active plus blanking lines per frame.
func (t Timing) TotalHeight() int {
	return t.ActiveHeight + t.BlankingHeight
}

// PixelClockMHz returns the pixel clock in MHz.
func (t Timing) PixelClockMHz() float64 {
	return t.PixelClock / 1e6
}

// ComputeTiming derives timing for width x height at rate.
func ComputeTiming(width, height int, rate float64) (Timing, error) {
	if width <= 0 || height <= 0 || rate <= 0 {
		return Timing{}, fmt.Errorf("invalid timing request %dx%d@%v", width, height, rate)
	}

	hFrac, vFrac := NarrowHBlank, NarrowVBlank
	if width >= WideThreshold {
		hFrac, vFrac = WideHBlank, WideVBlank
	}

	t := Timing{
		ActiveWidth:    width,
		ActiveHeight:   height,
		BlankingWidth:  int(math.Round(float64(width) * hFrac)),
		BlankingHeight: int(math.Round(float64(height) * vFrac)),
		RefreshRate:    rate,
	}
	t.PixelClock = float64(t.TotalWidth()) * float64(t.TotalHeight()) * rate
	return t, nil
}

// Modeline renders t as an X11 modeline body (without the name):
// clock hdisp hsyncstart hsyncend htotal vdisp vsyncstart vsyncend vtotal flags.
// Sync pulses sit in the middle of each blanking interval.
func (t Timing) Modeline() string {
	hSyncStart := t.ActiveWidth + t.BlankingWidth/4
	hSyncEnd := hSyncStart + t.BlankingWidth/2
	vSyncStart := t.ActiveHeight + t.BlankingHeight/4
	vSyncEnd := vSyncStart + max(1, t.BlankingHeight/2)
	return fmt.Sprintf("%.2f %d %d %d %d %d %d %d %d +HSync +VSync",
		t.PixelClockMHz(),
		t.ActiveWidth, hSyncStart, hSyncEnd, t.TotalWidth(),
		t.ActiveHeight, vSyncStart, vSyncEnd, t.TotalHeight())
}
