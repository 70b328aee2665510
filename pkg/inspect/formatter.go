// Package inspect renders displays, modes and sessions as text for the
// command line and the interactive shell.
package inspect

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/hzsync/hzsync-go/pkg/cadence"
	"github.com/hzsync/hzsync-go/pkg/display"
	"github.com/hzsync/hzsync-go/pkg/mode"
	"github.com/hzsync/hzsync-go/pkg/service"
)

// Formatter formats inspection output.
type Formatter struct {
	// ShowModes lists every mode under each display.
	ShowModes bool

	// IndentWidth is the number of spaces per indent level.
	IndentWidth int
}

// NewFormatter creates a new Formatter with default settings.
func NewFormatter() *Formatter {
	return &Formatter{IndentWidth: 2}
}

// Indent returns the content with indentation.
func (f *Formatter) Indent(depth int, content string) string {
	width := f.IndentWidth
	if width == 0 {
		width = 2
	}
	return strings.Repeat(" ", depth*width) + content
}

// FormatRates joins rates as "60, 120 Hz".
func FormatRates(rates []float64) string {
	if len(rates) == 0 {
		return "none"
	}
	parts := make([]string, len(rates))
	for i, r := range rates {
		parts[i] = display.FormatRate(r)
	}
	return strings.Join(parts, ", ") + " Hz"
}

// FormatDuration rounds d for display.
func FormatDuration(d time.Duration) string {
	switch {
	case d <= 0:
		return "0s"
	case d < time.Second:
		return d.Round(time.Microsecond).String()
	default:
		return d.Round(time.Second).String()
	}
}

// FormatDisplays renders a display listing.
func (f *Formatter) FormatDisplays(infos []service.DisplayInfo) string {
	if len(infos) == 0 {
		return "No active displays.\n"
	}

	var sb strings.Builder
	for _, info := range infos {
		fmt.Fprintf(&sb, "%s\n", info.ID)
		if info.Err != nil {
			sb.WriteString(f.Indent(1, fmt.Sprintf("error: %v\n", info.Err)))
			continue
		}
		if info.HasCurrent {
			sb.WriteString(f.Indent(1, fmt.Sprintf("current:     %s\n", info.Current)))
		} else {
			sb.WriteString(f.Indent(1, "current:     unknown\n"))
		}
		sb.WriteString(f.Indent(1, fmt.Sprintf("rates:       %s\n", FormatRates(info.Rates))))

		res := make([]string, len(info.Resolutions))
		for i, r := range info.Resolutions {
			res[i] = r.String()
		}
		sb.WriteString(f.Indent(1, fmt.Sprintf("resolutions: %s\n", strings.Join(res, ", "))))
		sb.WriteString(f.Indent(1, fmt.Sprintf("modes:       %d\n", info.ModeCount)))
		if info.SoftwareRate > 0 {
			sb.WriteString(f.Indent(1, fmt.Sprintf("software:    %s Hz\n", display.FormatRate(info.SoftwareRate))))
		}
	}
	return sb.String()
}

// FormatCatalog renders every mode of a catalog, marking the current one.
func (f *Formatter) FormatCatalog(c *mode.Catalog) string {
	if c.Empty() {
		return "No rates available.\n"
	}
	cur, hasCur := c.Current()

	var sb strings.Builder
	for _, m := range c.Modes() {
		mark := " "
		if hasCur && m == cur {
			mark = "*"
		}
		sb.WriteString(f.Indent(1, fmt.Sprintf("%s %s\n", mark, m)))
	}
	return sb.String()
}

// FormatOutcome renders the result of a rate request.
func (f *Formatter) FormatOutcome(out service.Outcome) string {
	var sb strings.Builder
	sb.WriteString(out.Note + "\n")
	if out.Resolved.Found() {
		sb.WriteString(f.Indent(1, fmt.Sprintf("resolved: %s\n", out.Resolved)))
	}
	if out.Applied != nil {
		sb.WriteString(f.Indent(1, fmt.Sprintf("applied:  %s via %s\n", out.Applied.Mode, out.Applied.Step)))
	}
	if out.ApplyErr != nil {
		sb.WriteString(f.Indent(1, fmt.Sprintf("hardware: %v\n", out.ApplyErr)))
	}
	if out.Software != nil {
		sb.WriteString(f.Indent(1, fmt.Sprintf("session:  %s\n", f.sessionLine(*out.Software))))
	}
	return sb.String()
}

func (f *Formatter) sessionLine(info cadence.Info) string {
	acts := "none"
	if len(info.Actions) > 0 {
		acts = strings.Join(info.Actions, ", ")
	}
	return fmt.Sprintf("%s Hz, period %s, %s, actions: %s",
		display.FormatRate(info.TargetRate), FormatDuration(info.Period), info.State, acts)
}

// FormatSession renders one live session.
func (f *Formatter) FormatSession(info cadence.Info, remaining time.Duration) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s\n", info.DisplayID, f.sessionLine(info))
	sb.WriteString(f.Indent(1, fmt.Sprintf("session:  %s\n", info.ID)))
	if !info.StartedAt.IsZero() {
		sb.WriteString(f.Indent(1, fmt.Sprintf("ticks:    %d (failures %d, max lateness %s)\n",
			info.Ticks, info.ActionFailures, FormatDuration(info.MaxLateness))))
	}
	if remaining > 0 {
		sb.WriteString(f.Indent(1, fmt.Sprintf("ends in:  %s\n", FormatDuration(remaining))))
	}
	return sb.String()
}

// FormatStatus renders live sessions and the persisted state.
func (f *Formatter) FormatStatus(st service.Status) string {
	var sb strings.Builder

	if len(st.Sessions) == 0 {
		sb.WriteString("No software sessions in this process.\n")
	} else {
		for _, info := range st.Sessions {
			sb.WriteString(f.FormatSession(info, st.Remaining[info.DisplayID]))
		}
	}

	p := st.Persisted
	sb.WriteString("Persisted state:\n")
	if len(p.TargetRefreshRates) == 0 {
		sb.WriteString(f.Indent(1, "no recorded sessions\n"))
	} else {
		ids := make([]string, 0, len(p.TargetRefreshRates))
		for id := range p.TargetRefreshRates {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			line := fmt.Sprintf("%s: %s Hz", id, display.FormatRate(p.TargetRefreshRates[id]))
			if level, ok := p.OriginalBrightness[id]; ok {
				line += fmt.Sprintf(" (original brightness %.0f%%)", level*100)
			}
			sb.WriteString(f.Indent(1, line+"\n"))
		}
	}
	sb.WriteString(f.Indent(1, fmt.Sprintf("click:    %s\n", onOff(p.ClickSoundEnabled))))
	sb.WriteString(f.Indent(1, fmt.Sprintf("pulse:    %s (amount %.0f%%)\n", onOff(p.BrightnessPulseEnabled), p.BrightnessPulseAmount*100)))
	if !p.SavedAt.IsZero() {
		sb.WriteString(f.Indent(1, fmt.Sprintf("saved:    %s\n", p.SavedAt.Format(time.RFC3339))))
	}
	return sb.String()
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
