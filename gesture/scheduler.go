package gesture

import (
	"sort"
	"time"

	"go-leapchord/debug"
	"go-leapchord/midi"

	gomidi "gitlab.com/gomidi/midi/v2"
)

// Default note lifetimes
const (
	DefaultMinDuration = 100 * time.Millisecond
	DefaultMaxDuration = 5000 * time.Millisecond
)

// Envelope is sent as CC1-CC4 ahead of every chord.
type Envelope struct {
	Attack, Decay, Sustain, Release uint8
}

// NoteEvent describes one scheduled chord.
type NoteEvent struct {
	Pitches   []uint8
	Velocity  uint8
	Program   uint8
	Envelope  Envelope
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Scheduler tracks sounding pitches and their off times. Every pitch is
// either absent (idle) or present with a single expiry.
type Scheduler struct {
	out     midi.Sink
	channel midi.Channel
	minDur  time.Duration
	maxDur  time.Duration

	active     map[uint8]time.Time
	sendErrors int
}

// NewScheduler creates a scheduler sending on channel (1-16).
func NewScheduler(out midi.Sink, channel midi.Channel, minDur, maxDur time.Duration) *Scheduler {
	if out == nil {
		out = midi.Discard{}
	}
	if maxDur < minDur {
		minDur, maxDur = maxDur, minDur
	}
	return &Scheduler{
		out:     out,
		channel: channel,
		minDur:  minDur,
		maxDur:  maxDur,
		active:  make(map[uint8]time.Time),
	}
}

// Duration is inversely linear in velocity: 0 -> maxDur, 127 -> minDur,
// computed in whole milliseconds.
func (s *Scheduler) Duration(velocity uint8) time.Duration {
	maxMs, minMs := s.maxDur.Milliseconds(), s.minDur.Milliseconds()
	d := time.Duration(maxMs-int64(velocity)*(maxMs-minMs)/127) * time.Millisecond
	if d < s.minDur {
		d = s.minDur
	}
	if d > s.maxDur {
		d = s.maxDur
	}
	return d
}

// NoteOn retires any requested pitch that is still sounding, then sends the
// program change, the envelope CCs and one note-on per pitch in order.
func (s *Scheduler) NoteOn(pitches []uint8, velocity, program uint8, env Envelope, now time.Time) NoteEvent {
	for _, p := range pitches {
		if _, ok := s.active[p]; ok {
			debug.Log("sched", "retrigger %s, retiring first", midi.PitchName(p))
			s.send(s.channel.NoteOff(p))
			delete(s.active, p)
		}
	}

	s.send(s.channel.ProgramChange(program))
	s.send(s.channel.ControlChange(midi.CCAttack, env.Attack))
	s.send(s.channel.ControlChange(midi.CCDecay, env.Decay))
	s.send(s.channel.ControlChange(midi.CCSustain, env.Sustain))
	s.send(s.channel.ControlChange(midi.CCRelease, env.Release))

	expires := now.Add(s.Duration(velocity))
	for _, p := range pitches {
		s.send(s.channel.NoteOn(p, velocity))
		s.active[p] = expires
	}

	if debug.Enabled() {
		debug.Log("sched", "chord %v vel=%d until +%s", midi.PitchNames(pitches), velocity, expires.Sub(now))
	}

	return NoteEvent{
		Pitches:   append([]uint8(nil), pitches...),
		Velocity:  velocity,
		Program:   program,
		Envelope:  env,
		IssuedAt:  now,
		ExpiresAt: expires,
	}
}

// ExpireDue sends note-off for every pitch whose expiry is at or before now
// and returns those pitches in ascending order.
func (s *Scheduler) ExpireDue(now time.Time) []uint8 {
	var due []uint8
	for p, exp := range s.active {
		if !now.Before(exp) {
			due = append(due, p)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool { return due[i] < due[j] })
	for _, p := range due {
		delete(s.active, p)
		s.send(s.channel.NoteOff(p))
	}
	if debug.Enabled() {
		debug.Log("sched", "expired %v, %d still sounding", midi.PitchNames(due), len(s.active))
	}
	return due
}

// ReleaseAll sends note-off for everything still sounding.
func (s *Scheduler) ReleaseAll() []uint8 {
	all := s.Active()
	for _, p := range all {
		delete(s.active, p)
		s.send(s.channel.NoteOff(p))
	}
	return all
}

// Forget drops all tracking without sending anything. Used after the channel
// was silenced by other means.
func (s *Scheduler) Forget() {
	clear(s.active)
}

// Sounding reports whether pitch is tracked.
func (s *Scheduler) Sounding(pitch uint8) bool {
	_, ok := s.active[pitch]
	return ok
}

// ExpiresAt returns the off time of a sounding pitch.
func (s *Scheduler) ExpiresAt(pitch uint8) (time.Time, bool) {
	t, ok := s.active[pitch]
	return t, ok
}

// Active returns the sounding pitches in ascending order.
func (s *Scheduler) Active() []uint8 {
	out := make([]uint8, 0, len(s.active))
	for p := range s.active {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (s *Scheduler) Len() int { return len(s.active) }

// SendErrors counts failed sends since creation.
func (s *Scheduler) SendErrors() int { return s.sendErrors }

// Emit sends extra messages on the scheduler's sink with the same
// best-effort policy.
func (s *Scheduler) Emit(msgs ...gomidi.Message) {
	for _, m := range msgs {
		s.send(m)
	}
}

// Channel returns the output channel.
func (s *Scheduler) Channel() midi.Channel { return s.channel }

// send is best effort: state has already moved on whether or not the
// message reached the wire.
func (s *Scheduler) send(msg gomidi.Message) {
	if err := s.out.Send(msg); err != nil {
		s.sendErrors++
		debug.Warn("sched", "send failed", "msg", msg.String(), "err", err)
	}
}
