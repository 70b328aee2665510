package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/hzsync/hzsync-go/pkg/display"
	"github.com/hzsync/hzsync-go/pkg/log"
)

// Stats holds aggregate statistics about a log file.
type Stats struct {
	TotalEvents      int
	EventsByLayer    map[log.Layer]int
	EventsByCategory map[log.Category]int
	Sessions         map[string]*SessionStats
	ApplySteps       map[string]int
	ApplyFailures    int
	Errors           int
	TimeRange        struct {
		Start time.Time
		End   time.Time
	}
}

// SessionStats holds statistics for a single software session.
type SessionStats struct {
	DisplayID      string
	TargetRate     float64
	FirstSeen      time.Time
	LastSeen       time.Time
	Events         int
	Ticks          uint64
	ActionFailures uint64
	MaxLateness    time.Duration
}

// Collect reads the log file at path and aggregates its events.
func Collect(path string) (*Stats, error) {
	reader, err := log.NewReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		EventsByLayer:    make(map[log.Layer]int),
		EventsByCategory: make(map[log.Category]int),
		Sessions:         make(map[string]*SessionStats),
		ApplySteps:       make(map[string]int),
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read event: %w", err)
		}

		stats.TotalEvents++
		stats.EventsByLayer[event.Layer]++
		stats.EventsByCategory[event.Category]++

		// Track time range
		if stats.TimeRange.Start.IsZero() || event.Timestamp.Before(stats.TimeRange.Start) {
			stats.TimeRange.Start = event.Timestamp
		}
		if event.Timestamp.After(stats.TimeRange.End) {
			stats.TimeRange.End = event.Timestamp
		}

		if event.Apply != nil {
			if event.Apply.Success {
				stats.ApplySteps[event.Apply.Step]++
			} else {
				stats.ApplyFailures++
			}
		}
		if event.Error != nil {
			stats.Errors++
		}

		if event.SessionID == "" {
			continue
		}
		sess, ok := stats.Sessions[event.SessionID]
		if !ok {
			sess = &SessionStats{
				DisplayID: event.DisplayID,
				FirstSeen: event.Timestamp,
				LastSeen:  event.Timestamp,
			}
			stats.Sessions[event.SessionID] = sess
		}
		sess.Events++
		if event.Timestamp.After(sess.LastSeen) {
			sess.LastSeen = event.Timestamp
		}
		if event.StateChange != nil && event.StateChange.TargetRate > 0 {
			sess.TargetRate = event.StateChange.TargetRate
		}
		if t := event.Tick; t != nil {
			sess.Ticks += t.Ticks
			sess.ActionFailures += t.ActionFailures
			if t.MaxLateness > sess.MaxLateness {
				sess.MaxLateness = t.MaxLateness
			}
		}
	}
	return stats, nil
}

// RunStats analyzes the log file and prints statistics.
func RunStats(path string, w io.Writer) error {
	stats, err := Collect(path)
	if err != nil {
		return err
	}
	printStats(w, stats)
	return nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== hzsync Event Log Statistics ===")
	fmt.Fprintln(w)

	// Time range
	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Second))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Layer:")
	for _, layer := range []log.Layer{log.LayerResolver, log.LayerApplier, log.LayerCadence, log.LayerSession} {
		if count := stats.EventsByLayer[layer]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", layer.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Category:")
	for _, cat := range []log.Category{log.CategoryResolve, log.CategoryApply, log.CategoryState, log.CategoryTick, log.CategoryError} {
		if count := stats.EventsByCategory[cat]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", cat.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	if len(stats.ApplySteps) > 0 || stats.ApplyFailures > 0 {
		fmt.Fprintln(w, "Hardware Applies:")
		steps := make([]string, 0, len(stats.ApplySteps))
		for s := range stats.ApplySteps {
			steps = append(steps, s)
		}
		sort.Strings(steps)
		for _, s := range steps {
			fmt.Fprintf(w, "  %-14s %d\n", s+":", stats.ApplySteps[s])
		}
		if stats.ApplyFailures > 0 {
			fmt.Fprintf(w, "  %-14s %d\n", "failed:", stats.ApplyFailures)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Sessions: %d\n", len(stats.Sessions))
	if len(stats.Sessions) > 0 {
		type sessInfo struct {
			id    string
			stats *SessionStats
		}
		sessions := make([]sessInfo, 0, len(stats.Sessions))
		for id, ss := range stats.Sessions {
			sessions = append(sessions, sessInfo{id, ss})
		}
		sort.Slice(sessions, func(i, j int) bool {
			return sessions[i].stats.FirstSeen.Before(sessions[j].stats.FirstSeen)
		})

		fmt.Fprintln(w)
		for _, s := range sessions {
			duration := s.stats.LastSeen.Sub(s.stats.FirstSeen).Round(time.Millisecond)
			fmt.Fprintf(w, "  [%s] %s at %s Hz, %d events, duration %s\n",
				shortenID(s.id), s.stats.DisplayID, display.FormatRate(s.stats.TargetRate), s.stats.Events, duration)
			if s.stats.Ticks > 0 {
				fmt.Fprintf(w, "           Ticks: %d (failures %d, max lateness %s)\n",
					s.stats.Ticks, s.stats.ActionFailures, formatDuration(s.stats.MaxLateness))
			}
		}
	}

	if stats.Errors > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Errors: %d\n", stats.Errors)
	}
}
