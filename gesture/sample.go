package gesture

import (
	"math"
	"time"
)

// Hand identifies which hand a sample came from.
type Hand int

const (
	HandUnknown Hand = iota
	HandLeft
	HandRight
)

func (h Hand) String() string {
	switch h {
	case HandLeft:
		return "left"
	case HandRight:
		return "right"
	}
	return "unknown"
}

// Sample is one tracking frame for one hand.
type Sample struct {
	X, Y, Z float64
	Tilt    float64 // palm roll, roughly [-1, 1]
	Pinch   float64 // thumb-index distance
	Hand    Hand
	Time    time.Time
}

// Valid reports whether the coordinates are finite.
func (s Sample) Valid() bool {
	return finite(s.X) && finite(s.Y) && finite(s.Z)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// SampleSource delivers samples. Next blocks for at most timeout and returns
// ErrTimeout when nothing arrived, io.EOF when the source is exhausted.
type SampleSource interface {
	Next(timeout time.Duration) (Sample, error)
}

// PointerSink moves the screen pointer.
type PointerSink interface {
	MoveTo(x, y int)
}

// NopPointer ignores pointer movement.
type NopPointer struct{}

func (NopPointer) MoveTo(int, int) {}
