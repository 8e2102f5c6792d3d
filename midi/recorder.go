package midi

import (
	"fmt"
	"sync"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// Recorder is a Sink that keeps every message with its arrival time and
// writes them out as a single-track Standard MIDI File.
type Recorder struct {
	mu     sync.Mutex
	ticks  smf.MetricTicks
	tempo  float64
	start  time.Time
	last   time.Time
	track  smf.Track
	events int
	clock  func() time.Time
}

// NewRecorder starts a recording at 120 BPM / 960 PPQ.
func NewRecorder(clock func() time.Time) *Recorder {
	if clock == nil {
		clock = time.Now
	}
	r := &Recorder{
		ticks: smf.MetricTicks(960),
		tempo: 120,
		clock: clock,
	}
	r.start = clock()
	r.last = r.start
	r.track.Add(0, smf.MetaTempo(r.tempo))
	return r
}

func (r *Recorder) Send(msg gomidi.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock()
	if now.Before(r.last) {
		now = r.last
	}
	delta := r.ticks.Ticks(r.tempo, now.Sub(r.last))
	r.last = now
	r.track.Add(delta, append([]byte(nil), msg...))
	r.events++
	return nil
}

// Events returns the number of recorded channel messages.
func (r *Recorder) Events() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events
}

// WriteFile closes the track and writes it to path.
func (r *Recorder) WriteFile(path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := smf.New()
	s.TimeFormat = r.ticks
	tr := append(smf.Track(nil), r.track...)
	tr.Close(0)
	if err := s.Add(tr); err != nil {
		return fmt.Errorf("add track: %w", err)
	}
	if err := s.WriteFile(path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
