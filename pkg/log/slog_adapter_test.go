package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func newTestSlog(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestSlogAdapterApply(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewSlogAdapter(newTestSlog(&buf))

	adapter.Log(Event{
		Timestamp: time.Now(),
		DisplayID: "HDMI-1",
		Layer:     LayerApplier,
		Category:  CategoryApply,
		Apply:     &ApplyEvent{Step: "CUSTOM_TIMING", TargetRate: 50, ActualRate: 50, Success: true, Exact: true},
	})

	out := buf.String()
	for _, want := range []string{"layer=APPLIER", "category=APPLY", "display_id=HDMI-1", "step=CUSTOM_TIMING", "actual_hz=50", "exact=true"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %s", want, out)
		}
	}
}

func TestSlogAdapterError(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewSlogAdapter(newTestSlog(&buf))

	adapter.Log(Event{
		Timestamp: time.Now(),
		Layer:     LayerCadence,
		Category:  CategoryError,
		Error:     &ErrorEventData{Layer: LayerCadence, Message: "boom", Kind: "ACTION_FAILED"},
	})

	out := buf.String()
	if !strings.Contains(out, "error_msg=boom") || !strings.Contains(out, "error_kind=ACTION_FAILED") {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestSlogAdapterRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	NewSlogAdapter(logger).Log(Event{Timestamp: time.Now(), Layer: LayerSession, Category: CategoryState})

	if buf.Len() != 0 {
		t.Errorf("expected no output at info level, got %s", buf.String())
	}
}
