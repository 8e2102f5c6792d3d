package debug

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogDisabledWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	EnableWriter(&buf)
	Disable()

	Log("test", "hello %d", 1)
	Warn("test", "warned")

	if buf.Len() != 0 {
		t.Fatalf("expected no output after Disable, got %q", buf.String())
	}
}

func TestLogWritesCategory(t *testing.T) {
	var buf bytes.Buffer
	EnableWriter(&buf)
	defer Disable()

	Log("sched", "note %d expired", 60)
	Warn("midi", "send failed", "pitch", 61)

	out := buf.String()
	for _, want := range []string{"note 60 expired", "cat=sched", "send failed", "cat=midi", "pitch=61"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got %q", want, out)
		}
	}
}

func TestLogEvery(t *testing.T) {
	var buf bytes.Buffer
	EnableWriter(&buf)
	defer Disable()

	for i := 0; i < 6; i++ {
		LogEvery(3, "every-test", "tick")
	}

	if got := strings.Count(buf.String(), "tick (every 3"); got != 2 {
		t.Fatalf("expected 2 lines, got %d in %q", got, buf.String())
	}
}

func TestEnableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "debug.log")
	if err := Enable(path); err != nil {
		t.Fatalf("Enable: %v", err)
	}
	Log("file", "to disk")
	Disable()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "to disk") {
		t.Fatalf("expected log file to contain message, got %q", data)
	}
}

func TestEnableStderrRejectsBadLevel(t *testing.T) {
	if err := EnableStderr("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
	Disable()
}

func TestEnabledAndLogger(t *testing.T) {
	Disable()
	if Enabled() {
		t.Fatalf("expected logging off after Disable")
	}
	Logger().Error("dropped") // discard logger, never nil

	var buf bytes.Buffer
	EnableWriter(&buf)
	defer Disable()
	if !Enabled() {
		t.Fatalf("expected logging on after EnableWriter")
	}
	Logger().Error("engine stopped", "err", "boom")
	if !strings.Contains(buf.String(), "engine stopped") || !strings.Contains(buf.String(), "err=boom") {
		t.Fatalf("expected structured error line, got %q", buf.String())
	}
}
