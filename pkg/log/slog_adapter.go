package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes events to an slog.Logger.
// Useful for development when you want to see events in the console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at Debug level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("layer", event.Layer.String()),
		slog.String("category", event.Category.String()),
	}

	if event.DisplayID != "" {
		attrs = append(attrs, slog.String("display_id", event.DisplayID))
	}
	if event.SessionID != "" {
		attrs = append(attrs, slog.String("session_id", event.SessionID))
	}

	switch {
	case event.Resolve != nil:
		attrs = append(attrs,
			slog.Float64("target_hz", event.Resolve.TargetRate),
			slog.String("match", event.Resolve.MatchKind),
			slog.Int("catalog_size", event.Resolve.CatalogSize),
		)
		if m := event.Resolve.Mode; m != nil {
			attrs = append(attrs,
				slog.Int("width", m.Width),
				slog.Int("height", m.Height),
				slog.Float64("mode_hz", m.RefreshRate),
			)
		}
	case event.Apply != nil:
		attrs = append(attrs,
			slog.String("step", event.Apply.Step),
			slog.Float64("target_hz", event.Apply.TargetRate),
			slog.Bool("success", event.Apply.Success),
		)
		if event.Apply.Success {
			attrs = append(attrs,
				slog.Float64("actual_hz", event.Apply.ActualRate),
				slog.Bool("exact", event.Apply.Exact),
			)
		}
		if event.Apply.Note != "" {
			attrs = append(attrs, slog.String("note", event.Apply.Note))
		}
	case event.StateChange != nil:
		attrs = append(attrs,
			slog.String("entity", event.StateChange.Entity.String()),
			slog.String("old_state", event.StateChange.OldState),
			slog.String("new_state", event.StateChange.NewState),
		)
		if event.StateChange.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.StateChange.Reason))
		}
		if event.StateChange.TargetRate != 0 {
			attrs = append(attrs, slog.Float64("target_hz", event.StateChange.TargetRate))
		}
	case event.Tick != nil:
		attrs = append(attrs,
			slog.Uint64("ticks", event.Tick.Ticks),
			slog.Uint64("action_failures", event.Tick.ActionFailures),
			slog.Duration("period", event.Tick.Period),
			slog.Duration("max_lateness", event.Tick.MaxLateness),
		)
	case event.Error != nil:
		attrs = append(attrs,
			slog.String("error_layer", event.Error.Layer.String()),
			slog.String("error_msg", event.Error.Message),
		)
		if event.Error.Kind != "" {
			attrs = append(attrs, slog.String("error_kind", event.Error.Kind))
		}
		if event.Error.Context != "" {
			attrs = append(attrs, slog.String("error_context", event.Error.Context))
		}
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "event", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
