// Package commands implements the hzsync-log CLI commands.
package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/hzsync/hzsync-go/pkg/display"
	"github.com/hzsync/hzsync-go/pkg/log"
)

// ViewFilter specifies criteria for filtering events in the view command.
type ViewFilter struct {
	DisplayID string
	Layer     *log.Layer
	Category  *log.Category
}

// matches reports whether event passes the filter.
func (f ViewFilter) matches(event log.Event) bool {
	if f.DisplayID != "" && event.DisplayID != f.DisplayID {
		return false
	}
	if f.Layer != nil && event.Layer != *f.Layer {
		return false
	}
	if f.Category != nil && event.Category != *f.Category {
		return false
	}
	return true
}

// eventType returns a short label for the event payload.
func eventType(event log.Event) string {
	switch {
	case event.Resolve != nil:
		return "Resolve"
	case event.Apply != nil:
		return "Apply"
	case event.StateChange != nil:
		return "State"
	case event.Tick != nil:
		return "Ticks"
	case event.Error != nil:
		return "Error"
	default:
		return "Unknown"
	}
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// Header line: timestamp [session] display LAYER Type
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	sess := shortenID(event.SessionID)
	if sess == "" {
		sess = "-"
	}
	disp := event.DisplayID
	if disp == "" {
		disp = "-"
	}

	fmt.Fprintf(w, "%s [sess:%s] %s %s %s\n", ts, sess, disp, event.Layer.String(), eventType(event))

	switch {
	case event.Resolve != nil:
		formatResolveDetails(w, event.Resolve)
	case event.Apply != nil:
		formatApplyDetails(w, event.Apply)
	case event.StateChange != nil:
		formatStateChangeDetails(w, event.StateChange)
	case event.Tick != nil:
		formatTickDetails(w, event.Tick)
	case event.Error != nil:
		formatErrorDetails(w, event.Error)
	}

	fmt.Fprintln(w) // Blank line between events
}

// shortenID returns the first 8 characters of a session ID.
func shortenID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

func formatMode(m *log.ModeInfo) string {
	return display.Mode{Width: m.Width, Height: m.Height, RefreshRate: m.RefreshRate}.String()
}

func formatResolveDetails(w io.Writer, r *log.ResolveEvent) {
	fmt.Fprintf(w, "  Target: %s Hz (tolerance %v)\n", display.FormatRate(r.TargetRate), r.Tolerance)
	fmt.Fprintf(w, "  Match: %s", r.MatchKind)
	if r.Mode != nil {
		fmt.Fprintf(w, " %s", formatMode(r.Mode))
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Catalog: %d modes\n", r.CatalogSize)
}

func formatApplyDetails(w io.Writer, a *log.ApplyEvent) {
	result := "failed"
	if a.Success {
		result = "ok"
	}
	fmt.Fprintf(w, "  Step: %s (%s)\n", a.Step, result)
	fmt.Fprintf(w, "  Target: %s Hz", display.FormatRate(a.TargetRate))
	if a.ActualRate > 0 {
		fmt.Fprintf(w, "  Actual: %s Hz", display.FormatRate(a.ActualRate))
	}
	if a.Exact {
		fmt.Fprint(w, "  exact")
	}
	fmt.Fprintln(w)
	if a.Note != "" {
		fmt.Fprintf(w, "  Note: %s\n", a.Note)
	}
}

// formatStateChangeDetails writes state change details.
func formatStateChangeDetails(w io.Writer, sc *log.StateChangeEvent) {
	fmt.Fprintf(w, "  Entity: %s\n", sc.Entity.String())
	if sc.OldState != "" {
		fmt.Fprintf(w, "  %s -> %s\n", sc.OldState, sc.NewState)
	} else {
		fmt.Fprintf(w, "  -> %s\n", sc.NewState)
	}
	if sc.TargetRate > 0 {
		fmt.Fprintf(w, "  Rate: %s Hz\n", display.FormatRate(sc.TargetRate))
	}
	if sc.Reason != "" {
		fmt.Fprintf(w, "  Reason: %s\n", sc.Reason)
	}
}

func formatTickDetails(w io.Writer, t *log.TickEvent) {
	fmt.Fprintf(w, "  Ticks: %d  Failures: %d\n", t.Ticks, t.ActionFailures)
	fmt.Fprintf(w, "  Period: %s  Max lateness: %s\n", formatDuration(t.Period), formatDuration(t.MaxLateness))
	if t.Elapsed > 0 {
		fmt.Fprintf(w, "  Elapsed: %s\n", formatDuration(t.Elapsed))
	}
}

// formatErrorDetails writes error details.
func formatErrorDetails(w io.Writer, err *log.ErrorEventData) {
	fmt.Fprintf(w, "  Layer: %s\n", err.Layer.String())
	fmt.Fprintf(w, "  Message: %s\n", err.Message)
	if err.Kind != "" {
		fmt.Fprintf(w, "  Kind: %s\n", err.Kind)
	}
	if err.Context != "" {
		fmt.Fprintf(w, "  Context: %s\n", err.Context)
	}
}

// formatDuration formats a duration for display.
func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%.3fus", float64(d.Nanoseconds())/1000)
	}
	if d < time.Second {
		return fmt.Sprintf("%.3fms", float64(d.Microseconds())/1000)
	}
	return fmt.Sprintf("%.3fs", d.Seconds())
}

// ParseLayerFlag parses a layer string from command-line flag (case-insensitive).
func ParseLayerFlag(s string) (log.Layer, error) {
	return parseLayer(s)
}

// parseLayer parses a layer string (case-insensitive).
func parseLayer(s string) (log.Layer, error) {
	switch strings.ToLower(s) {
	case "resolver":
		return log.LayerResolver, nil
	case "applier":
		return log.LayerApplier, nil
	case "cadence":
		return log.LayerCadence, nil
	case "session":
		return log.LayerSession, nil
	default:
		return 0, fmt.Errorf("invalid layer: %s (must be resolver, applier, cadence, or session)", s)
	}
}

// ParseCategoryFlag parses a category string from command-line flag (case-insensitive).
func ParseCategoryFlag(s string) (log.Category, error) {
	return parseCategory(s)
}

// parseCategory parses a category string (case-insensitive).
func parseCategory(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "resolve":
		return log.CategoryResolve, nil
	case "apply":
		return log.CategoryApply, nil
	case "state":
		return log.CategoryState, nil
	case "tick":
		return log.CategoryTick, nil
	case "error":
		return log.CategoryError, nil
	default:
		return 0, fmt.Errorf("invalid category: %s (must be resolve, apply, state, tick, or error)", s)
	}
}

// RunView executes the view command.
func RunView(path string, filter ViewFilter, output io.Writer) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if !filter.matches(event) {
			continue
		}
		formatEvent(output, event)
	}

	return nil
}
