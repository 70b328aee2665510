package mode

import (
	"fmt"
	"math"

	"github.com/hzsync/hzsync-go/pkg/display"
)

// DefaultTolerance is the default maximum rate difference for an exact match.
const DefaultTolerance = 0.1

// MatchKind describes how a mode was selected.
type MatchKind uint8

const (
	// MatchNone means the catalog was empty.
	MatchNone MatchKind = iota

	// MatchExact means a mode within tolerance of the target rate.
	MatchExact

	// MatchClosestSameResolution means the closest rate at the preferred or
	// current resolution.
	MatchClosestSameResolution

	// MatchClosestAnyResolution means the closest rate at any resolution.
	MatchClosestAnyResolution
)

// String returns a human-readable match kind.
func (k MatchKind) String() string {
	switch k {
	case MatchNone:
		return "NONE"
	case MatchExact:
		return "EXACT"
	case MatchClosestSameResolution:
		return "CLOSEST_SAME_RESOLUTION"
	case MatchClosestAnyResolution:
		return "CLOSEST_ANY_RESOLUTION"
	default:
		return "UNKNOWN"
	}
}

// Request is a refresh rate request for one display.
type Request struct {
	DisplayID  display.ID
	TargetRate float64

	// PreferredWidth and PreferredHeight constrain the resolution. Zero
	// means unset; both must be set for the preference to apply.
	PreferredWidth  int
	PreferredHeight int

	// Tolerance is the exact-match threshold in Hz. Zero means
	// DefaultTolerance.
	Tolerance float64
}

// Validate checks the request fields.
func (r Request) Validate() error {
	if r.TargetRate <= 0 || math.IsNaN(r.TargetRate) || math.IsInf(r.TargetRate, 0) {
		return fmt.Errorf("target rate must be positive, got %v", r.TargetRate)
	}
	if r.Tolerance < 0 {
		return fmt.Errorf("tolerance must not be negative, got %v", r.Tolerance)
	}
	if r.PreferredWidth < 0 || r.PreferredHeight < 0 {
		return fmt.Errorf("preferred resolution must not be negative")
	}
	return nil
}

// EffectiveTolerance returns the tolerance with the default applied.
func (r Request) EffectiveTolerance() float64 {
	if r.Tolerance == 0 {
		return DefaultTolerance
	}
	return r.Tolerance
}

// Preferred returns the preferred resolution, if both dimensions are set.
func (r Request) Preferred() (display.Resolution, bool) {
	if r.PreferredWidth > 0 && r.PreferredHeight > 0 {
		return display.Resolution{Width: r.PreferredWidth, Height: r.PreferredHeight}, true
	}
	return display.Resolution{}, false
}

// Within reports whether rate is within the request's tolerance of the target.
func (r Request) Within(rate float64) bool {
	return math.Abs(rate-r.TargetRate) < r.EffectiveTolerance()
}

// Resolved is the outcome of a resolution. Mode is the zero value when Kind
// is MatchNone.
type Resolved struct {
	Mode display.Mode
	Kind MatchKind
}

// Found reports whether a mode was selected.
func (r Resolved) Found() bool {
	return r.Kind != MatchNone
}

// String returns e.g. "EXACT 1920x1080@120".
func (r Resolved) String() string {
	if !r.Found() {
		return r.Kind.String()
	}
	return fmt.Sprintf("%s %s", r.Kind, r.Mode)
}

// Resolve selects the best mode in c for req. It has no side effects.
func Resolve(c *Catalog, req Request) Resolved {
	if c.Empty() {
		return Resolved{Kind: MatchNone}
	}
	if m, ok := exact(c, req); ok {
		return Resolved{Mode: m, Kind: MatchExact}
	}
	return ResolveStandard(c, req)
}

// ResolveStandard runs the closest-mode steps only, skipping the exact pass.
func ResolveStandard(c *Catalog, req Request) Resolved {
	if c.Empty() {
		return Resolved{Kind: MatchNone}
	}

	res, ok := req.Preferred()
	if !ok {
		if cur, has := c.Current(); has {
			res, ok = cur.Resolution(), true
		}
	}
	if ok {
		if m, found := closest(c.AtResolution(res), req.TargetRate); found {
			return Resolved{Mode: m, Kind: MatchClosestSameResolution}
		}
	}

	m, _ := closest(c.modes, req.TargetRate)
	return Resolved{Mode: m, Kind: MatchClosestAnyResolution}
}

func exact(c *Catalog, req Request) (display.Mode, bool) {
	pref, hasPref := req.Preferred()

	var (
		first    display.Mode
		hasFirst bool
	)
	for _, m := range c.modes {
		if !req.Within(m.RefreshRate) {
			continue
		}
		if !hasPref {
			return m, true
		}
		if m.Resolution() == pref {
			return m, true
		}
		if !hasFirst {
			first, hasFirst = m, true
		}
	}
	return first, hasFirst
}

// closest returns the mode minimizing |rate - target|; the first mode wins
// ties.
func closest(modes []display.Mode, target float64) (display.Mode, bool) {
	var (
		best     display.Mode
		bestDist = math.Inf(1)
		found    bool
	)
	for _, m := range modes {
		d := math.Abs(m.RefreshRate - target)
		if d < bestDist {
			best, bestDist, found = m, d, true
		}
	}
	return best, found
}
