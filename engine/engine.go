package engine

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"go-leapchord/debug"
	"go-leapchord/gesture"
)

// Command is a request from outside the loop (UI, signals).
type Command int

const (
	CmdPanic Command = iota
	CmdNextProgram
)

// DefaultPollTimeout bounds each wait on the sample source.
const DefaultPollTimeout = 50 * time.Millisecond

// Engine drives a Session from a SampleSource. Only the Run goroutine touches
// the session; everything else goes through commands and snapshots.
type Engine struct {
	source      gesture.SampleSource
	session     *gesture.Session
	pollTimeout time.Duration
	maxSteps    int
	clock       func() time.Time

	// sample time minus clock time at the last sample, so idle expiry and
	// commands run on the source's timeline
	skew time.Duration

	commands chan Command

	mu   sync.RWMutex
	last gesture.Snapshot

	// Notify UI of updates (latest wins)
	UpdateChan chan gesture.Snapshot
}

// Option configures an Engine.
type Option func(*Engine)

// WithPollTimeout sets how long Run waits for a sample before idling.
func WithPollTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.pollTimeout = d
		}
	}
}

// WithMaxSteps stops Run after n samples (0 = unlimited).
func WithMaxSteps(n int) Option {
	return func(e *Engine) {
		if n >= 0 {
			e.maxSteps = n
		}
	}
}

// WithClock replaces time.Now for idle expiry and commands.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) {
		if clock != nil {
			e.clock = clock
		}
	}
}

// New wires a source to a session.
func New(src gesture.SampleSource, session *gesture.Session, opts ...Option) *Engine {
	e := &Engine{
		source:      src,
		session:     session,
		pollTimeout: DefaultPollTimeout,
		clock:       time.Now,
		commands:    make(chan Command, 8),
		UpdateChan:  make(chan gesture.Snapshot, 1),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.last = session.Snapshot()
	return e
}

// Send queues a command for the loop. It never blocks; a full queue drops it.
func (e *Engine) Send(cmd Command) bool {
	select {
	case e.commands <- cmd:
		return true
	default:
		return false
	}
}

// Snapshot returns the most recently published state.
func (e *Engine) Snapshot() gesture.Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.last
}

// Run starts the instrument, then processes samples until ctx is cancelled,
// the source is exhausted, or the step limit is reached. Sounding notes are
// released before it returns. io.EOF is not reported as an error.
func (e *Engine) Run(ctx context.Context) error {
	e.session.Start()
	e.publish()

	defer func() {
		released := e.session.Close()
		debug.Info("engine", "stopped", "released", len(released))
		e.publish()
		close(e.UpdateChan)
	}()

	steps := 0
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		e.drainCommands()

		sample, err := e.source.Next(e.pollTimeout)
		switch {
		case err == nil:
			e.skew = sample.Time.Sub(e.clock())
			e.session.Step(sample)
			steps++
		case errors.Is(err, gesture.ErrTimeout):
			e.session.Idle(e.now())
		case errors.Is(err, io.EOF):
			debug.Info("engine", "source exhausted", "steps", steps)
			return nil
		default:
			return err
		}

		e.publish()

		if e.maxSteps > 0 && steps >= e.maxSteps {
			debug.Info("engine", "step limit reached", "steps", steps)
			return nil
		}
	}
}

// now is the clock moved onto the timeline of the samples seen so far.
// Sources that stamp with the wall clock have no skew.
func (e *Engine) now() time.Time {
	return e.clock().Add(e.skew)
}

func (e *Engine) drainCommands() {
	for {
		select {
		case cmd := <-e.commands:
			switch cmd {
			case CmdPanic:
				debug.Info("engine", "panic")
				e.session.Panic()
			case CmdNextProgram:
				p := e.session.NextProgram(e.now())
				debug.Info("engine", "program advanced", "program", p)
			}
		default:
			return
		}
	}
}

func (e *Engine) publish() {
	snap := e.session.Snapshot()

	e.mu.Lock()
	e.last = snap
	e.mu.Unlock()

	// drop a stale snapshot so the newest always fits
	select {
	case <-e.UpdateChan:
	default:
	}
	select {
	case e.UpdateChan <- snap:
	default:
	}
}
