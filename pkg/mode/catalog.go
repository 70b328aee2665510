package mode

import (
	"errors"
	"fmt"
	"slices"

	"github.com/hzsync/hzsync-go/pkg/display"
)

// ErrNoModesAvailable is returned when a display advertises no modes.
var ErrNoModesAvailable = errors.New("no modes available")

// Source is the part of the display subsystem a catalog is built from.
type Source interface {
	CurrentMode(id display.ID) (display.Mode, bool, error)
	AllModes(id display.ID) ([]display.Mode, error)
}

// Catalog is an ordered snapshot of a display's modes.
type Catalog struct {
	DisplayID display.ID

	modes      []display.Mode
	current    display.Mode
	hasCurrent bool
}

// NewCatalog builds a catalog from modes in platform order. Invalid entries
// are dropped.
func NewCatalog(id display.ID, modes []display.Mode) *Catalog {
	c := &Catalog{DisplayID: id, modes: make([]display.Mode, 0, len(modes))}
	for _, m := range modes {
		if m.Valid() {
			c.modes = append(c.modes, m)
		}
	}
	return c
}

// WithCurrent records the display's current mode and returns c.
func (c *Catalog) WithCurrent(m display.Mode) *Catalog {
	if m.Valid() {
		c.current = m
		c.hasCurrent = true
	}
	return c
}

// Load fetches a fresh catalog for id. An empty mode list is not an error.
func Load(src Source, id display.ID) (*Catalog, error) {
	modes, err := src.AllModes(id)
	if err != nil {
		if errors.Is(err, display.ErrDisplayUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s: %w", display.ErrDisplayUnavailable, id, err)
	}

	c := NewCatalog(id, modes)

	cur, ok, err := src.CurrentMode(id)
	if err != nil {
		if errors.Is(err, display.ErrDisplayUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s: %w", display.ErrDisplayUnavailable, id, err)
	}
	if ok {
		c.WithCurrent(cur)
	}
	return c, nil
}

// Modes returns a copy of the modes in catalog order.
func (c *Catalog) Modes() []display.Mode {
	out := make([]display.Mode, len(c.modes))
	copy(out, c.modes)
	return out
}

// Len returns the number of modes.
func (c *Catalog) Len() int {
	return len(c.modes)
}

// Empty reports whether the catalog has no modes.
func (c *Catalog) Empty() bool {
	return len(c.modes) == 0
}

// Current returns the display's current mode, if known.
func (c *Catalog) Current() (display.Mode, bool) {
	return c.current, c.hasCurrent
}

// Rates returns the distinct refresh rates in ascending order.
func (c *Catalog) Rates() []float64 {
	seen := make(map[float64]bool)
	var rates []float64
	for _, m := range c.modes {
		if !seen[m.RefreshRate] {
			seen[m.RefreshRate] = true
			rates = append(rates, m.RefreshRate)
		}
	}
	slices.Sort(rates)
	return rates
}

// Resolutions returns the distinct resolutions in first-seen order.
func (c *Catalog) Resolutions() []display.Resolution {
	seen := make(map[display.Resolution]bool)
	var out []display.Resolution
	for _, m := range c.modes {
		r := m.Resolution()
		if !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}
	return out
}

// AtResolution returns the modes with the given resolution, in catalog order.
func (c *Catalog) AtResolution(r display.Resolution) []display.Mode {
	var out []display.Mode
	for _, m := range c.modes {
		if m.Resolution() == r {
			out = append(out, m)
		}
	}
	return out
}

// Contains reports whether m is in the catalog.
func (c *Catalog) Contains(m display.Mode) bool {
	return slices.Contains(c.modes, m)
}
