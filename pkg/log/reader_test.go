package log

import (
	"io"
	"path/filepath"
	"testing"
	"time"
)

func createTestLogFile(t *testing.T, events []Event) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "test.hlog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create test log: %v", err)
	}
	for _, e := range events {
		logger.Log(e)
	}
	logger.Close()

	return path
}

func readAll(t *testing.T, r *Reader) []Event {
	t.Helper()
	var read []Event
	for {
		event, err := r.Next()
		if err == io.EOF {
			return read
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		read = append(read, event)
	}
}

func TestReaderIteratesEvents(t *testing.T) {
	now := time.Now()
	events := []Event{
		{Timestamp: now, DisplayID: "HDMI-1", Layer: LayerResolver, Category: CategoryResolve},
		{Timestamp: now, DisplayID: "HDMI-1", Layer: LayerApplier, Category: CategoryApply},
		{Timestamp: now, DisplayID: "DP-1", Layer: LayerCadence, Category: CategoryState},
	}

	reader, err := NewReader(createTestLogFile(t, events))
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	read := readAll(t, reader)
	if len(read) != 3 {
		t.Fatalf("got %d events, want 3", len(read))
	}
	if read[2].DisplayID != "DP-1" || read[2].Layer != LayerCadence {
		t.Errorf("unexpected third event: %+v", read[2])
	}
}

func TestReaderFiltersByDisplay(t *testing.T) {
	now := time.Now()
	events := []Event{
		{Timestamp: now, DisplayID: "HDMI-1", Layer: LayerApplier},
		{Timestamp: now, DisplayID: "DP-1", Layer: LayerApplier},
		{Timestamp: now, DisplayID: "HDMI-1", Layer: LayerCadence},
	}

	reader, err := NewFilteredReader(createTestLogFile(t, events), Filter{DisplayID: "HDMI-1"})
	if err != nil {
		t.Fatalf("NewFilteredReader failed: %v", err)
	}
	defer reader.Close()

	if got := len(readAll(t, reader)); got != 2 {
		t.Errorf("got %d events, want 2", got)
	}
}

func TestFilterMatches(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	event := Event{
		Timestamp: base,
		SessionID: "s-1",
		DisplayID: "HDMI-1",
		Layer:     LayerCadence,
		Category:  CategoryTick,
	}

	layer := LayerCadence
	otherLayer := LayerSession
	category := CategoryTick
	otherCategory := CategoryError
	start := base.Add(-time.Minute)
	end := base.Add(time.Minute)
	atEvent := base

	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{"empty", Filter{}, true},
		{"session match", Filter{SessionID: "s-1"}, true},
		{"session mismatch", Filter{SessionID: "s-2"}, false},
		{"display mismatch", Filter{DisplayID: "DP-1"}, false},
		{"layer match", Filter{Layer: &layer}, true},
		{"layer mismatch", Filter{Layer: &otherLayer}, false},
		{"category match", Filter{Category: &category}, true},
		{"category mismatch", Filter{Category: &otherCategory}, false},
		{"inside range", Filter{TimeStart: &start, TimeEnd: &end}, true},
		{"start inclusive", Filter{TimeStart: &atEvent}, true},
		{"end exclusive", Filter{TimeEnd: &atEvent}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(event); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewReaderMissingFile(t *testing.T) {
	_, err := NewReader(filepath.Join(t.TempDir(), "missing.hlog"))
	if err == nil {
		t.Error("expected error for missing file")
	}
}
