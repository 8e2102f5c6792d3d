package midi

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go-leapchord/debug"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver
)

// ErrNoOutput is returned when no output port matches.
var ErrNoOutput = errors.New("no MIDI output port")

// scanTimeout bounds port enumeration (CoreMIDI can hang)
const scanTimeout = 3 * time.Second

// Ports that are never picked automatically
var excludedPatterns = []string{"midi through", "through port", "dummy"}

// OutPorts lists output ports, giving up after scanTimeout.
func OutPorts() ([]drivers.Out, error) {
	ch := make(chan []drivers.Out, 1)
	go func() {
		ch <- gomidi.GetOutPorts()
	}()

	select {
	case outs := <-ch:
		return outs, nil
	case <-time.After(scanTimeout):
		return nil, fmt.Errorf("listing MIDI outputs: timed out after %s", scanTimeout)
	}
}

// PickOut selects an output port. An empty name picks the first port that is
// not a virtual/system port; otherwise the first port whose name contains
// name (case-insensitive) wins.
func PickOut(outs []drivers.Out, name string) (drivers.Out, error) {
	want := strings.ToLower(name)
	for _, out := range outs {
		portName := strings.ToLower(out.String())
		if want == "" {
			if isExcluded(portName) {
				continue
			}
			return out, nil
		}
		if strings.Contains(portName, want) {
			return out, nil
		}
	}
	if name == "" {
		return nil, ErrNoOutput
	}
	return nil, fmt.Errorf("%w matching %q", ErrNoOutput, name)
}

func isExcluded(name string) bool {
	for _, pat := range excludedPatterns {
		if strings.Contains(name, pat) {
			return true
		}
	}
	return false
}

// PortSink sends to an opened output port.
type PortSink struct {
	name string
	port drivers.Out
	send func(msg gomidi.Message) error
	mu   sync.Mutex
}

// OpenOut finds and opens an output port by (partial) name.
func OpenOut(name string) (*PortSink, error) {
	outs, err := OutPorts()
	if err != nil {
		return nil, err
	}
	port, err := PickOut(outs, name)
	if err != nil {
		return nil, err
	}
	send, err := gomidi.SendTo(port)
	if err != nil {
		return nil, fmt.Errorf("open output %q: %w", port.String(), err)
	}
	debug.Info("midi", "output opened", "port", port.String())
	return &PortSink{name: port.String(), port: port, send: send}, nil
}

// Name returns the port name.
func (p *PortSink) Name() string {
	return p.name
}

func (p *PortSink) Send(msg gomidi.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.send == nil {
		return &SendError{Msg: msg, Err: errors.New("port closed")}
	}
	if err := p.send(msg); err != nil {
		return &SendError{Msg: msg, Err: err}
	}
	return nil
}

func (p *PortSink) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.send = nil
	if p.port != nil {
		debug.Info("midi", "output closed", "port", p.name)
		return p.port.Close()
	}
	return nil
}

// CloseDriver releases the registered MIDI driver.
func CloseDriver() {
	gomidi.CloseDriver()
}
