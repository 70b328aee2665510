package inspect

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/hzsync/hzsync-go/pkg/apply"
	"github.com/hzsync/hzsync-go/pkg/cadence"
	"github.com/hzsync/hzsync-go/pkg/display"
	"github.com/hzsync/hzsync-go/pkg/mode"
	"github.com/hzsync/hzsync-go/pkg/persistence"
	"github.com/hzsync/hzsync-go/pkg/service"
)

func TestFormatRates(t *testing.T) {
	tests := []struct {
		rates    []float64
		expected string
	}{
		{nil, "none"},
		{[]float64{60}, "60 Hz"},
		{[]float64{59.94, 60, 120}, "59.94, 60, 120 Hz"},
	}
	for _, tt := range tests {
		if got := FormatRates(tt.rates); got != tt.expected {
			t.Errorf("FormatRates(%v) = %q, want %q", tt.rates, got, tt.expected)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d        time.Duration
		expected string
	}{
		{0, "0s"},
		{25 * time.Millisecond, "25ms"},
		{16683350 * time.Nanosecond, "16.683ms"},
		{90*time.Second + 400*time.Millisecond, "1m30s"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.d); got != tt.expected {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.d, got, tt.expected)
		}
	}
}

func TestIndent(t *testing.T) {
	f := &Formatter{}
	if got := f.Indent(2, "x"); got != "    x" {
		t.Errorf("Indent = %q", got)
	}
	f.IndentWidth = 3
	if got := f.Indent(1, "x"); got != "   x" {
		t.Errorf("Indent = %q", got)
	}
}

func TestFormatDisplays(t *testing.T) {
	f := NewFormatter()
	out := f.FormatDisplays([]service.DisplayInfo{
		{
			ID:          "eDP-1",
			Current:     display.Mode{Width: 1920, Height: 1080, RefreshRate: 60},
			HasCurrent:  true,
			Rates:       []float64{60, 120},
			Resolutions: []display.Resolution{{Width: 1920, Height: 1080}},
			ModeCount:   2,
		},
		{ID: "HDMI-1", Err: errors.New("query failed")},
		{ID: "DP-1", Rates: []float64{60}, ModeCount: 1, SoftwareRate: 40},
	})

	for _, want := range []string{
		"eDP-1\n",
		"current:     1920x1080@60",
		"rates:       60, 120 Hz",
		"resolutions: 1920x1080",
		"HDMI-1\n  error: query failed",
		"current:     unknown",
		"software:    40 Hz",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	if got := f.FormatDisplays(nil); got != "No active displays.\n" {
		t.Errorf("empty listing = %q", got)
	}
}

func TestFormatCatalogMarksCurrent(t *testing.T) {
	c := mode.NewCatalog("eDP-1", []display.Mode{
		{Width: 1920, Height: 1080, RefreshRate: 60},
		{Width: 1920, Height: 1080, RefreshRate: 120},
	}).WithCurrent(display.Mode{Width: 1920, Height: 1080, RefreshRate: 120})

	out := NewFormatter().FormatCatalog(c)
	if !strings.Contains(out, "* 1920x1080@120") {
		t.Errorf("current mode not marked:\n%s", out)
	}
	if !strings.Contains(out, "  1920x1080@60") {
		t.Errorf("other mode missing:\n%s", out)
	}

	empty := NewFormatter().FormatCatalog(mode.NewCatalog("x", nil))
	if empty != "No rates available.\n" {
		t.Errorf("empty catalog = %q", empty)
	}
}

func TestFormatOutcome(t *testing.T) {
	out := NewFormatter().FormatOutcome(service.Outcome{
		DisplayID: "eDP-1",
		Resolved: mode.Resolved{
			Mode: display.Mode{Width: 1920, Height: 1080, RefreshRate: 60},
			Kind: mode.MatchClosestSameResolution,
		},
		Applied: &apply.Result{
			Mode: display.Mode{Width: 1920, Height: 1080, RefreshRate: 60},
			Step: apply.StepStandard,
		},
		Software: &cadence.Info{
			DisplayID:  "eDP-1",
			TargetRate: 40,
			Period:     25 * time.Millisecond,
			State:      cadence.StateRunning,
			Actions:    []string{"click"},
		},
		Note: "eDP-1: 40 Hz emulated in software",
	})

	for _, want := range []string{
		"eDP-1: 40 Hz emulated in software\n",
		"resolved: CLOSEST_SAME_RESOLUTION 1920x1080@60",
		"applied:  1920x1080@60 via STANDARD",
		"session:  40 Hz, period 25ms, RUNNING, actions: click",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatStatus(t *testing.T) {
	st := service.Status{
		Sessions: []cadence.Info{{
			ID:         "4b1c",
			DisplayID:  "eDP-1",
			TargetRate: 40,
			Period:     25 * time.Millisecond,
			State:      cadence.StateRunning,
			StartedAt:  time.Now(),
			Ticks:      12,
		}},
		Persisted: persistence.Config{
			TargetRefreshRates:     map[string]float64{"eDP-1": 40},
			OriginalBrightness:     map[string]float64{"eDP-1": 0.8},
			BrightnessPulseEnabled: true,
			BrightnessPulseAmount:  0.1,
		},
		Remaining: map[display.ID]time.Duration{"eDP-1": 5 * time.Minute},
	}

	out := NewFormatter().FormatStatus(st)
	for _, want := range []string{
		"eDP-1: 40 Hz, period 25ms, RUNNING, actions: none",
		"ticks:    12 (failures 0",
		"ends in:  5m0s",
		"eDP-1: 40 Hz (original brightness 80%)",
		"click:    off",
		"pulse:    on (amount 10%)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatStatusEmpty(t *testing.T) {
	out := NewFormatter().FormatStatus(service.Status{})
	if !strings.Contains(out, "No software sessions") || !strings.Contains(out, "no recorded sessions") {
		t.Errorf("unexpected output:\n%s", out)
	}
}
