package gesture

import "time"

// Defaults for the pinch gesture
const (
	DefaultPinchThreshold = 10.0
	DefaultCooldown       = time.Second
)

// Debouncer turns pinches into program increments, at most one per cooldown.
type Debouncer struct {
	threshold   float64
	cooldown    time.Duration
	lastTrigger time.Time
	program     uint8
}

// NewDebouncer starts at program with the cooldown running from start.
func NewDebouncer(threshold float64, cooldown time.Duration, program uint8, start time.Time) *Debouncer {
	return &Debouncer{
		threshold:   threshold,
		cooldown:    cooldown,
		lastTrigger: start,
		program:     program & 0x7F,
	}
}

// OnPinch advances the program when distance is under the threshold and the
// cooldown has elapsed. It reports the (possibly new) program.
func (d *Debouncer) OnPinch(distance float64, now time.Time) (uint8, bool) {
	if !(distance < d.threshold) || now.Sub(d.lastTrigger) < d.cooldown {
		return d.program, false
	}
	return d.Advance(now), true
}

// Advance increments the program unconditionally and restarts the cooldown.
func (d *Debouncer) Advance(now time.Time) uint8 {
	d.program = (d.program + 1) % 128
	d.lastTrigger = now
	return d.program
}

func (d *Debouncer) Program() uint8 { return d.program }

func (d *Debouncer) LastTrigger() time.Time { return d.lastTrigger }
