package source

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"go-leapchord/debug"
	"go-leapchord/gesture"
)

// ParseLine reads one "x y z tilt pinch [hand]" record. Fields may be
// separated by spaces, tabs or commas. ok is false for blank and comment lines.
func ParseLine(line string) (s gesture.Sample, ok bool, err error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return s, false, nil
	}
	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == ';'
	})
	if len(fields) < 5 || len(fields) > 6 {
		return s, false, fmt.Errorf("expected 5 or 6 fields, got %d", len(fields))
	}

	var vals [5]float64
	for i := range vals {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return s, false, fmt.Errorf("field %d: %w", i+1, err)
		}
		vals[i] = v
	}
	s = gesture.Sample{X: vals[0], Y: vals[1], Z: vals[2], Tilt: vals[3], Pinch: vals[4]}

	if len(fields) == 6 {
		switch strings.ToLower(fields[5]) {
		case "l", "left":
			s.Hand = gesture.HandLeft
		case "r", "right":
			s.Hand = gesture.HandRight
		default:
			return s, false, fmt.Errorf("unknown hand %q", fields[5])
		}
	}
	return s, true, nil
}

// LineSource turns a line-oriented stream into samples. A reader goroutine
// parses lines into a small buffer; Next waits on it with a timeout.
type LineSource struct {
	samples chan gesture.Sample
	clock   func() time.Time
	done    chan struct{}
	once    sync.Once

	mu      sync.Mutex
	err     error
	skipped int
	closer  io.Closer
}

// NewLineSource starts reading r. Samples are stamped with clock at arrival.
func NewLineSource(r io.Reader, clock func() time.Time) *LineSource {
	if clock == nil {
		clock = time.Now
	}
	ls := &LineSource{
		samples: make(chan gesture.Sample, 64),
		clock:   clock,
		done:    make(chan struct{}),
	}
	if c, ok := r.(io.Closer); ok {
		ls.closer = c
	}
	go ls.read(r)
	return ls
}

func (ls *LineSource) read(r io.Reader) {
	defer close(ls.samples)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		s, ok, err := ParseLine(scanner.Text())
		if err != nil {
			ls.mu.Lock()
			ls.skipped++
			ls.mu.Unlock()
			debug.Warn("source", "skipping malformed line", "line", lineNo, "err", err)
			continue
		}
		if !ok {
			continue
		}
		s.Time = ls.clock()
		select {
		case <-ls.done:
			return
		default:
		}
		select {
		case ls.samples <- s:
		case <-ls.done:
			return
		}
	}

	ls.mu.Lock()
	ls.err = scanner.Err()
	ls.mu.Unlock()
}

// Next returns the next sample, gesture.ErrTimeout, or io.EOF once the
// stream ended cleanly.
func (ls *LineSource) Next(timeout time.Duration) (gesture.Sample, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case s, ok := <-ls.samples:
		if !ok {
			ls.mu.Lock()
			defer ls.mu.Unlock()
			if ls.err != nil {
				return gesture.Sample{}, ls.err
			}
			return gesture.Sample{}, io.EOF
		}
		return s, nil
	case <-timer.C:
		return gesture.Sample{}, gesture.ErrTimeout
	}
}

// Skipped counts malformed lines.
func (ls *LineSource) Skipped() int {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return ls.skipped
}

// Close stops the reader goroutine and closes the underlying reader when it
// is closable. A reader blocked in Read (stdin) exits at its next line.
func (ls *LineSource) Close() error {
	ls.once.Do(func() { close(ls.done) })
	if ls.closer != nil {
		return ls.closer.Close()
	}
	return nil
}
