package gesture

import (
	"testing"
	"time"
)

func TestDebouncerCooldown(t *testing.T) {
	start := t0.Add(-time.Hour)

	d := NewDebouncer(DefaultPinchThreshold, DefaultCooldown, 0, start)
	d.OnPinch(5, t0)
	if _, changed := d.OnPinch(5, t0.Add(500*time.Millisecond)); changed {
		t.Fatalf("expected second pinch within cooldown to be ignored")
	}
	if d.Program() != 1 {
		t.Fatalf("expected one increment, got program %d", d.Program())
	}

	d = NewDebouncer(DefaultPinchThreshold, DefaultCooldown, 0, start)
	d.OnPinch(5, t0)
	if _, changed := d.OnPinch(5, t0.Add(1100*time.Millisecond)); !changed {
		t.Fatalf("expected second pinch after cooldown to trigger")
	}
	if d.Program() != 2 {
		t.Fatalf("expected two increments, got program %d", d.Program())
	}
}

func TestDebouncerThreshold(t *testing.T) {
	d := NewDebouncer(10, time.Second, 0, t0.Add(-time.Hour))
	if _, changed := d.OnPinch(10, t0); changed {
		t.Fatalf("expected distance equal to threshold to be ignored")
	}
	if _, changed := d.OnPinch(9.99, t0); !changed {
		t.Fatalf("expected distance below threshold to trigger")
	}
}

func TestDebouncerCooldownFromStart(t *testing.T) {
	d := NewDebouncer(10, time.Second, 0, t0)
	if _, changed := d.OnPinch(1, t0.Add(999*time.Millisecond)); changed {
		t.Fatalf("expected cooldown to run from start")
	}
}

func TestDebouncerWraps(t *testing.T) {
	d := NewDebouncer(10, 0, 127, t0)
	p, changed := d.OnPinch(0, t0)
	if !changed || p != 0 {
		t.Fatalf("expected wrap to 0, got %d (changed=%v)", p, changed)
	}
}
