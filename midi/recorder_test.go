package midi

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestRecorderWritesFile(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	rec := NewRecorder(clock)

	ch := Channel(2)
	rec.Send(ch.NoteOn(60, 100))
	now = now.Add(500 * time.Millisecond)
	rec.Send(ch.NoteOff(60))

	if rec.Events() != 2 {
		t.Fatalf("expected 2 events, got %d", rec.Events())
	}

	path := filepath.Join(t.TempDir(), "take.mid")
	if err := rec.WriteFile(path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(data) < 14 || string(data[:4]) != "MThd" {
		t.Fatalf("expected SMF header, got % X", data[:min(len(data), 8)])
	}
}

func TestPickOutNoPorts(t *testing.T) {
	if _, err := PickOut(nil, ""); err == nil {
		t.Fatalf("expected error for empty port list")
	}
}
