package midi

import (
	"fmt"
	"sync"

	gomidi "gitlab.com/gomidi/midi/v2"
)

// Sink receives outgoing MIDI messages. Implementations report transport
// failures per message; callers treat them as non-fatal.
type Sink interface {
	Send(msg gomidi.Message) error
}

// SendError wraps a transport failure with the message that was lost.
type SendError struct {
	Msg gomidi.Message
	Err error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("send %s: %v", e.Msg.String(), e.Err)
}

func (e *SendError) Unwrap() error {
	return e.Err
}

// SinkFunc adapts a send function (as returned by gomidi.SendTo) to Sink.
type SinkFunc func(msg gomidi.Message) error

func (f SinkFunc) Send(msg gomidi.Message) error {
	if err := f(msg); err != nil {
		return &SendError{Msg: msg, Err: err}
	}
	return nil
}

// Tee fans a message out to several sinks. Every sink sees every message;
// the first error is returned.
type Tee []Sink

func (t Tee) Send(msg gomidi.Message) error {
	var first error
	for _, s := range t {
		if s == nil {
			continue
		}
		if err := s.Send(msg); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Discard drops everything.
type Discard struct{}

func (Discard) Send(gomidi.Message) error { return nil }

// Capture records every message it is given. FailOn, when set, makes Send
// return an error for matching messages (after recording them).
type Capture struct {
	mu     sync.Mutex
	msgs   []gomidi.Message
	FailOn func(msg gomidi.Message) bool
}

func (c *Capture) Send(msg gomidi.Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	cp := make(gomidi.Message, len(msg))
	copy(cp, msg)
	c.msgs = append(c.msgs, cp)
	if c.FailOn != nil && c.FailOn(msg) {
		return &SendError{Msg: cp, Err: fmt.Errorf("injected failure")}
	}
	return nil
}

// Messages returns a copy of everything recorded so far.
func (c *Capture) Messages() []gomidi.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]gomidi.Message, len(c.msgs))
	copy(out, c.msgs)
	return out
}

// Reset forgets recorded messages.
func (c *Capture) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.msgs = nil
}
