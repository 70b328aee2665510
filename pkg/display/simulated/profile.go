package simulated

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hzsync/hzsync-go/pkg/display"
)

// Profile describes one simulated display.
type Profile struct {
	ID      display.ID     `yaml:"id"`
	Name    string         `yaml:"name,omitempty"`
	Current display.Mode   `yaml:"current"`
	Modes   []display.Mode `yaml:"modes"`

	// Brightness is the initial level in [0,1]. Zero means 1.0.
	Brightness float64 `yaml:"brightness,omitempty"`

	// AcceptCustomTiming makes injected timings take effect. When false the
	// injection is silently ignored, like most real hardware.
	AcceptCustomTiming bool `yaml:"accept_custom_timing,omitempty"`
}

// Profiles is the top-level document of a profile file.
type Profiles struct {
	Displays []Profile `yaml:"displays"`
}

// ParseProfiles parses a YAML profile document.
func ParseProfiles(data []byte) (*Profiles, error) {
	var p Profiles
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse display profiles: %w", err)
	}
	for i, d := range p.Displays {
		if d.ID == "" {
			return nil, fmt.Errorf("display profile %d: id is required", i)
		}
		for _, m := range d.Modes {
			if !m.Valid() {
				return nil, fmt.Errorf("display profile %s: invalid mode %s", d.ID, m)
			}
		}
	}
	return &p, nil
}

// LoadProfiles reads a YAML profile file.
func LoadProfiles(path string) (*Profiles, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseProfiles(data)
}

// DefaultProfiles returns a two-display setup: a 1080p panel with 60/120 Hz
// and a 1440p monitor that only does 60 Hz.
func DefaultProfiles() *Profiles {
	return &Profiles{
		Displays: []Profile{
			{
				ID:      "sim-0",
				Name:    "Built-in Panel",
				Current: display.Mode{Width: 1920, Height: 1080, RefreshRate: 60},
				Modes: []display.Mode{
					{Width: 1920, Height: 1080, RefreshRate: 60},
					{Width: 1920, Height: 1080, RefreshRate: 120},
					{Width: 1280, Height: 720, RefreshRate: 60},
				},
				Brightness: 0.8,
			},
			{
				ID:      "sim-1",
				Name:    "External Monitor",
				Current: display.Mode{Width: 2560, Height: 1440, RefreshRate: 60},
				Modes: []display.Mode{
					{Width: 2560, Height: 1440, RefreshRate: 60},
					{Width: 1920, Height: 1080, RefreshRate: 60},
				},
				Brightness: 1.0,
			},
		},
	}
}
