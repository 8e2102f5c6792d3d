package gesture

import (
	"testing"
	"time"
)

func TestRate(t *testing.T) {
	cases := []struct{ tilt, want float64 }{
		{0, 0.8},
		{0.5, 0.5},
		{-0.5, 0.5},
		{0.95, 0.1},
		{2, 0.1},
	}
	for _, c := range cases {
		if got := Rate(c.tilt); got < c.want-1e-9 || got > c.want+1e-9 {
			t.Fatalf("Rate(%v): expected %v, got %v", c.tilt, c.want, got)
		}
	}
}

func TestGateDelayAndMovement(t *testing.T) {
	g := NewGate(time.Second, t0)
	if got := g.Delay(0); got != 800*time.Millisecond {
		t.Fatalf("expected 800ms at flat hand, got %s", got)
	}

	pos := Position{X: 10, Y: 20}
	if g.Open(t0.Add(799*time.Millisecond), pos, 0) {
		t.Fatalf("expected gate closed before delay")
	}
	if !g.Open(t0.Add(800*time.Millisecond), pos, 0) {
		t.Fatalf("expected gate open at delay")
	}

	g.Observe(pos)
	if g.Open(t0.Add(time.Hour), Position{X: 10, Y: 20, Z: 99}, 0) {
		t.Fatalf("expected gate closed without x/y movement")
	}

	g.Fire(t0.Add(time.Second))
	if g.Open(t0.Add(time.Second+50*time.Millisecond), Position{X: 11, Y: 20}, 0.9) {
		t.Fatalf("expected gate closed within 100ms of last fire")
	}
	if !g.Open(t0.Add(time.Second+100*time.Millisecond), Position{X: 11, Y: 20}, 0.9) {
		t.Fatalf("expected gate open after tilted delay")
	}
}
