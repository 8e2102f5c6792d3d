package source

import (
	"io"
	"time"

	"go-leapchord/gesture"
)

// Sweep moves a hand linearly from one corner of the tracking volume to the
// other. Timestamps advance by Interval from Start; with Realtime set, Next
// sleeps for Interval instead and stamps samples with the wall clock.
type Sweep struct {
	From, To gesture.Sample
	Steps    int
	Start    time.Time
	Interval time.Duration
	Realtime bool

	i int
}

// NewSweep sweeps x, y and z across the given ranges with a flat right hand.
func NewSweep(x, y, z gesture.Range, steps int, interval time.Duration, start time.Time) *Sweep {
	return &Sweep{
		From:     gesture.Sample{X: x.Min, Y: y.Min, Z: z.Min, Pinch: 100, Hand: gesture.HandRight},
		To:       gesture.Sample{X: x.Max, Y: y.Max, Z: z.Max, Pinch: 100, Hand: gesture.HandRight},
		Steps:    steps,
		Start:    start,
		Interval: interval,
	}
}

func (s *Sweep) Next(time.Duration) (gesture.Sample, error) {
	if s.i > s.Steps {
		return gesture.Sample{}, io.EOF
	}
	if s.Realtime && s.i > 0 {
		time.Sleep(s.Interval)
	}

	f := 1.0
	if s.Steps > 0 {
		f = float64(s.i) / float64(s.Steps)
	}
	out := gesture.Sample{
		X:     lerp(s.From.X, s.To.X, f),
		Y:     lerp(s.From.Y, s.To.Y, f),
		Z:     lerp(s.From.Z, s.To.Z, f),
		Tilt:  lerp(s.From.Tilt, s.To.Tilt, f),
		Pinch: lerp(s.From.Pinch, s.To.Pinch, f),
		Hand:  s.From.Hand,
		Time:  s.Start.Add(time.Duration(s.i) * s.Interval),
	}
	if s.Realtime {
		out.Time = time.Now()
	}
	s.i++
	return out, nil
}

func lerp(a, b, f float64) float64 {
	return a + (b-a)*f
}
