// Package config loads the optional hzsync configuration file.
//
// The file is YAML. Every field is optional; command-line flags override the
// values it supplies.
//
//	backend: simulated
//	tolerance: 0.1
//	pulse_amount: 0.15
//	state_path: /var/lib/hzsync/state.json
//	event_log: /tmp/hzsync.hlog
//	log_level: debug
//	metrics_addr: 127.0.0.1:9310
//	brightness:
//	  providers: [sysfs, brightnessctl, gamma]
//	  backlight_device: intel_backlight
//	simulated:
//	  displays:
//	    - id: sim-0
//	      current: {width: 1920, height: 1080, refresh_rate: 60}
//	      modes:
//	        - {width: 1920, height: 1080, refresh_rate: 60}
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hzsync/hzsync-go/pkg/display/simulated"
)

// Backend names.
const (
	BackendAuto      = "auto"
	BackendXrandr    = "xrandr"
	BackendSimulated = "simulated"
)

// Brightness provider names, in default probe order.
const (
	ProviderSysfs         = "sysfs"
	ProviderBrightnessctl = "brightnessctl"
	ProviderGamma         = "gamma"
)

// DefaultProviders is the default brightness probe order.
var DefaultProviders = []string{ProviderSysfs, ProviderBrightnessctl, ProviderGamma}

// ErrInvalid is returned for a malformed configuration.
var ErrInvalid = errors.New("invalid configuration")

// File is the configuration file document.
type File struct {
	Backend     string  `yaml:"backend,omitempty"`
	Tolerance   float64 `yaml:"tolerance,omitempty"`
	PulseAmount float64 `yaml:"pulse_amount,omitempty"`
	StatePath   string  `yaml:"state_path,omitempty"`
	EventLog    string  `yaml:"event_log,omitempty"`
	LogLevel    string  `yaml:"log_level,omitempty"`
	MetricsAddr string  `yaml:"metrics_addr,omitempty"`

	// PoolSize bounds concurrent click playbacks per session.
	PoolSize int `yaml:"pool_size,omitempty"`

	Xrandr     Xrandr     `yaml:"xrandr,omitempty"`
	Brightness Brightness `yaml:"brightness,omitempty"`

	// Simulated describes the displays of the simulated backend.
	Simulated *simulated.Profiles `yaml:"simulated,omitempty"`
}

// Xrandr configures the xrandr backend.
type Xrandr struct {
	Binary  string        `yaml:"binary,omitempty"`
	Timeout time.Duration `yaml:"timeout,omitempty"`
}

// Brightness configures brightness control.
type Brightness struct {
	// Providers is the probe order. Empty means DefaultProviders.
	Providers []string `yaml:"providers,omitempty"`

	// BacklightDevice pins the sysfs and brightnessctl device.
	BacklightDevice string `yaml:"backlight_device,omitempty"`

	// BacklightRoot overrides /sys/class/backlight.
	BacklightRoot string `yaml:"backlight_root,omitempty"`
}

// Parse parses and validates a configuration document.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Load reads a configuration file. An empty path yields an empty File.
func Load(path string) (*File, error) {
	if path == "" {
		return &File{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Validate checks field ranges and names.
func (f *File) Validate() error {
	switch f.Backend {
	case "", BackendAuto, BackendXrandr, BackendSimulated:
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalid, f.Backend)
	}
	if f.Tolerance < 0 {
		return fmt.Errorf("%w: tolerance must not be negative", ErrInvalid)
	}
	if f.PulseAmount < 0 || f.PulseAmount > 1 {
		return fmt.Errorf("%w: pulse_amount must be in [0,1]", ErrInvalid)
	}
	if f.PoolSize < 0 {
		return fmt.Errorf("%w: pool_size must not be negative", ErrInvalid)
	}
	if f.Xrandr.Timeout < 0 {
		return fmt.Errorf("%w: xrandr timeout must not be negative", ErrInvalid)
	}
	for _, p := range f.Brightness.Providers {
		if !slices.Contains(DefaultProviders, p) {
			return fmt.Errorf("%w: unknown brightness provider %q", ErrInvalid, p)
		}
	}
	if f.Simulated != nil {
		for i, d := range f.Simulated.Displays {
			if d.ID == "" {
				return fmt.Errorf("%w: simulated display %d: id is required", ErrInvalid, i)
			}
			for _, m := range d.Modes {
				if !m.Valid() {
					return fmt.Errorf("%w: simulated display %s: invalid mode %s", ErrInvalid, d.ID, m)
				}
			}
		}
	}
	return nil
}

// BrightnessProviders returns the configured probe order.
func (f *File) BrightnessProviders() []string {
	if len(f.Brightness.Providers) == 0 {
		return DefaultProviders
	}
	return f.Brightness.Providers
}
