package gesture

import (
	"math"
	"time"
)

// DefaultBaseDelay is the emission interval at rate 1.
const DefaultBaseDelay = 1000 * time.Millisecond

// Rate maps palm tilt to a delay factor: flat hands play slowest.
func Rate(tilt float64) float64 {
	r := 1 - math.Abs(tilt)
	if math.IsNaN(r) {
		return 0.8
	}
	return math.Min(math.Max(r, 0.1), 0.8)
}

// Gate limits note emission to one per tilt-dependent delay, and only while
// the hand is moving.
type Gate struct {
	base     time.Duration
	lastFire time.Time
	lastX    int
	lastY    int
}

// NewGate starts the first interval at start.
func NewGate(base time.Duration, start time.Time) *Gate {
	return &Gate{base: base, lastFire: start}
}

// Delay returns the minimum interval for tilt.
func (g *Gate) Delay(tilt float64) time.Duration {
	return time.Duration(float64(g.base) * Rate(tilt))
}

// Open reports whether a note may be emitted now.
func (g *Gate) Open(now time.Time, pos Position, tilt float64) bool {
	moved := pos.X != g.lastX || pos.Y != g.lastY
	return moved && now.Sub(g.lastFire) >= g.Delay(tilt)
}

// Fire records an emission.
func (g *Gate) Fire(now time.Time) {
	g.lastFire = now
}

// Observe records the position seen this step.
func (g *Gate) Observe(pos Position) {
	g.lastX, g.lastY = pos.X, pos.Y
}

func (g *Gate) LastFire() time.Time { return g.lastFire }
