package brightness

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hzsync/hzsync-go/pkg/display"
)

// Brightness errors.
var (
	// ErrNoProvider is returned when no provider can control a display.
	ErrNoProvider = errors.New("no brightness provider available")

	// ErrOutOfRange is returned for levels outside [0, 1].
	ErrOutOfRange = errors.New("brightness level out of range")
)

// Provider controls the brightness of displays.
type Provider interface {
	// Name returns a short provider name for logs.
	Name() string

	// Probe returns nil when the provider can control id.
	Probe(id display.ID) error

	// Get returns the current level in [0, 1].
	Get(id display.ID) (float64, error)

	// Set applies a level in [0, 1].
	Set(id display.ID, level float64) error
}

// CheckLevel returns an error wrapping ErrOutOfRange when level is outside
// [0, 1].
func CheckLevel(level float64) error {
	if level < 0 || level > 1 || level != level {
		return fmt.Errorf("%w: %v", ErrOutOfRange, level)
	}
	return nil
}

// Clamp limits level to [0, 1].
func Clamp(level float64) float64 {
	switch {
	case level < 0:
		return 0
	case level > 1:
		return 1
	default:
		return level
	}
}

var internalPrefixes = []string{"eDP", "LVDS", "DSI"}

// IsInternal reports whether id names a built-in panel, the only kind a
// backlight device drives.
func IsInternal(id display.ID) bool {
	for _, p := range internalPrefixes {
		if strings.HasPrefix(string(id), p) {
			return true
		}
	}
	return false
}
