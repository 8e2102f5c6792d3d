package gesture

import (
	"time"

	"go-leapchord/debug"
	"go-leapchord/midi"
)

// Options configures a Session. DefaultOptions is tuned for a Leap Motion
// controller above the desk.
type Options struct {
	BasePitch int
	Intervals []int
	Octaves   int

	Window  int
	X, Y, Z Range
	Hand    Hand // HandUnknown accepts any hand

	Channel     midi.Channel
	Program     uint8
	BaseDelay   time.Duration
	MinDuration time.Duration
	MaxDuration time.Duration
	Envelope    Envelope // Release is derived from the note duration
	Expression  bool     // send CC74/91/92/1 after each chord

	PinchThreshold float64
	Cooldown       time.Duration

	ScreenWidth  int
	ScreenHeight int
}

func DefaultOptions() Options {
	return Options{
		BasePitch:      42,
		Intervals:      append([]int(nil), MinorIntervals...),
		Octaves:        3,
		Window:         3,
		X:              Range{Min: -300, Max: 300},
		Y:              Range{Min: 500, Max: 220},
		Z:              Range{Min: -100, Max: 0},
		Hand:           HandRight,
		Channel:        2,
		BaseDelay:      DefaultBaseDelay,
		MinDuration:    DefaultMinDuration,
		MaxDuration:    DefaultMaxDuration,
		Envelope:       Envelope{Attack: 70, Decay: 100, Sustain: 80},
		Expression:     true,
		PinchThreshold: DefaultPinchThreshold,
		Cooldown:       DefaultCooldown,
		ScreenWidth:    1920,
		ScreenHeight:   1020,
	}
}

// StepResult reports what one pipeline step did.
type StepResult struct {
	Time     time.Time
	Hand     Hand
	Filtered bool // wrong hand, only expiry ran
	Invalid  bool // non-finite coordinates, position forced to zero
	Pinch    float64

	Position Position
	ScreenX  int
	ScreenY  int
	Rate     float64
	Delay    time.Duration

	Emitted  bool
	Mapping  Mapping
	Chord    []uint8
	Duration time.Duration

	Expired        []uint8
	ProgramChanged bool
	Program        uint8
}

// Snapshot is a copy of session state for display.
type Snapshot struct {
	Last      StepResult
	Scale     Scale
	Active    []uint8
	Program   uint8
	LastEvent NoteEvent

	Window     int // samples in the smoothing window
	WindowSize int

	// Waits measured from the last sample: until the gate may open again
	// and until a pinch is accepted. Zero once elapsed.
	NextChordIn  time.Duration
	PinchReadyIn time.Duration

	Steps          int
	Emissions      int
	InvalidSamples int
	ProgramChanges int
	SendErrors     int
}

// Session holds all per-run pipeline state. It is not safe for concurrent
// use; one loop owns it.
type Session struct {
	opts      Options
	mapper    *Mapper
	smoother  *Smoother
	gate      *Gate
	scheduler *Scheduler
	debouncer *Debouncer
	pointer   PointerSink

	last      StepResult
	lastEvent NoteEvent
	steps     int
	emissions int
	invalid   int
	changes   int
}

// NewSession validates opts and builds the pipeline. All returned errors
// wrap ErrConfig.
func NewSession(opts Options, out midi.Sink, pointer PointerSink, start time.Time) (*Session, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	scale, err := BuildScale(opts.BasePitch, opts.Intervals, opts.Octaves)
	if err != nil {
		return nil, err
	}
	mapper, err := NewMapper(scale, opts.BasePitch, opts.X, opts.Y, opts.Z)
	if err != nil {
		return nil, err
	}
	if pointer == nil {
		pointer = NopPointer{}
	}
	return &Session{
		opts:      opts,
		mapper:    mapper,
		smoother:  NewSmoother(opts.Window),
		gate:      NewGate(opts.BaseDelay, start),
		scheduler: NewScheduler(out, opts.Channel, opts.MinDuration, opts.MaxDuration),
		debouncer: NewDebouncer(opts.PinchThreshold, opts.Cooldown, opts.Program, start),
		pointer:   pointer,
	}, nil
}

func (o Options) validate() error {
	switch {
	case !o.Channel.Valid():
		return configErr("midi.channel", "must be 1-16, got %d", o.Channel)
	case o.Window < 1:
		return configErr("tracking.window", "must be at least 1, got %d", o.Window)
	case o.MinDuration <= 0 || o.MaxDuration < o.MinDuration:
		return configErr("timing", "need 0 < minDuration <= maxDuration, got %s / %s", o.MinDuration, o.MaxDuration)
	case o.BaseDelay < 0:
		return configErr("timing.baseDelayMs", "negative")
	case o.Cooldown < 0:
		return configErr("gesture.cooldownSec", "negative")
	case o.Program > 127:
		return configErr("midi.program", "must be 0-127, got %d", o.Program)
	case o.ScreenWidth < 0 || o.ScreenHeight < 0:
		return configErr("screen", "negative size")
	}
	return nil
}

// Start puts the synth on the configured program with a clean channel.
func (s *Session) Start() {
	s.changeInstrument(s.debouncer.Program())
}

// Step runs one sample through the pipeline.
func (s *Session) Step(sample Sample) StepResult {
	now := sample.Time
	r := StepResult{
		Time:    now,
		Hand:    sample.Hand,
		Pinch:   sample.Pinch,
		Program: s.debouncer.Program(),
	}
	s.steps++

	if s.opts.Hand != HandUnknown && sample.Hand != s.opts.Hand {
		r.Filtered = true
		r.Position = s.last.Position
		r.Expired = s.scheduler.ExpireDue(now)
		s.last = r
		return r
	}

	if sample.Valid() {
		s.smoother.Add(int(sample.X), int(sample.Y), int(sample.Z))
		r.Position = s.smoother.Position()
	} else {
		r.Invalid = true
		s.invalid++
		debug.LogEvery(50, "step", "invalid sample %v,%v,%v", sample.X, sample.Y, sample.Z)
	}

	r.ScreenX, r.ScreenY = ScreenPoint(r.Position, s.opts.X, s.opts.Y, s.opts.ScreenWidth, s.opts.ScreenHeight)
	s.pointer.MoveTo(r.ScreenX, r.ScreenY)

	r.Rate = Rate(sample.Tilt)
	r.Delay = s.gate.Delay(sample.Tilt)
	if s.gate.Open(now, r.Position, sample.Tilt) {
		s.emit(&r, now)
	}

	r.Expired = s.scheduler.ExpireDue(now)

	if program, changed := s.debouncer.OnPinch(sample.Pinch, now); changed {
		s.changeInstrument(program)
		r.ProgramChanged = true
		r.Program = program
	}

	s.gate.Observe(r.Position)
	s.last = r
	return r
}

func (s *Session) emit(r *StepResult, now time.Time) {
	m := s.mapper.Map(r.Position)
	chord := BuildChord(m.RootIndex, s.mapper.Scale())
	dur := s.scheduler.Duration(m.Velocity)
	release := s.releaseValue(dur)

	env := s.opts.Envelope
	env.Release = release
	s.lastEvent = s.scheduler.NoteOn(chord, m.Velocity, s.debouncer.Program(), env, now)

	if s.opts.Expression {
		ch := s.scheduler.Channel()
		s.scheduler.Emit(
			ch.ControlChange(midi.CCCutoff, m.Velocity),
			ch.ControlChange(midi.CCReverb, m.Velocity),
			ch.ControlChange(midi.CCTail, release),
			ch.ControlChange(midi.CCModulation, m.Depth),
		)
	}

	s.gate.Fire(now)
	s.emissions++

	r.Emitted = true
	r.Mapping = m
	r.Chord = chord
	r.Duration = dur
}

// releaseValue scales a note duration into a 0-127 controller value.
func (s *Session) releaseValue(d time.Duration) uint8 {
	if s.opts.MaxDuration <= 0 {
		return 0
	}
	v := int64(d) * 127 / int64(s.opts.MaxDuration)
	if v > 127 {
		v = 127
	}
	return uint8(v)
}

func (s *Session) changeInstrument(program uint8) {
	debug.Log("step", "instrument -> %d", program)
	s.scheduler.Emit(s.scheduler.Channel().InstrumentChange(program)...)
	s.scheduler.Forget()
	s.changes++
}

// Idle runs expiry alone, for steps without a sample.
func (s *Session) Idle(now time.Time) []uint8 {
	return s.scheduler.ExpireDue(now)
}

// Panic silences the channel and re-sends the current program.
func (s *Session) Panic() {
	s.changeInstrument(s.debouncer.Program())
}

// NextProgram advances the instrument as if a pinch had been accepted.
func (s *Session) NextProgram(now time.Time) uint8 {
	p := s.debouncer.Advance(now)
	s.changeInstrument(p)
	return p
}

// Close releases every sounding note.
func (s *Session) Close() []uint8 {
	return s.scheduler.ReleaseAll()
}

// Scale returns the permitted pitches, ascending.
func (s *Session) Scale() Scale {
	return s.mapper.Scale()
}

func (s *Session) Scheduler() *Scheduler {
	return s.scheduler
}

// Program is the current instrument.
func (s *Session) Program() uint8 {
	return s.debouncer.Program()
}

func (s *Session) Options() Options {
	return s.opts
}

func (s *Session) Smoother() *Smoother {
	return s.smoother
}

// remaining is how long after now the deadline lies, floored at zero.
func remaining(deadline, now time.Time) time.Duration {
	if now.IsZero() || !deadline.After(now) {
		return 0
	}
	return deadline.Sub(now)
}

func (s *Session) Snapshot() Snapshot {
	last := s.last
	last.Chord = append([]uint8(nil), last.Chord...)
	last.Expired = append([]uint8(nil), last.Expired...)
	ev := s.lastEvent
	ev.Pitches = append([]uint8(nil), ev.Pitches...)
	return Snapshot{
		Last:           last,
		Scale:          append(Scale(nil), s.mapper.Scale()...),
		Active:         s.scheduler.Active(),
		Program:        s.debouncer.Program(),
		LastEvent:      ev,
		Window:         s.smoother.Len(),
		WindowSize:     s.smoother.Size(),
		NextChordIn:    remaining(s.gate.LastFire().Add(last.Delay), last.Time),
		PinchReadyIn:   remaining(s.debouncer.LastTrigger().Add(s.opts.Cooldown), last.Time),
		Steps:          s.steps,
		Emissions:      s.emissions,
		InvalidSamples: s.invalid,
		ProgramChanges: s.changes,
		SendErrors:     s.scheduler.SendErrors(),
	}
}

// ScreenPoint maps tracker x/y linearly onto a w x h screen, truncating.
func ScreenPoint(p Position, x, y Range, w, h int) (int, int) {
	sx := (float64(p.X) - x.Min) / (x.Max - x.Min) * float64(w)
	sy := (float64(p.Y) - y.Min) / (y.Max - y.Min) * float64(h)
	return int(sx), int(sy)
}
