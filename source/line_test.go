package source

import (
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"go-leapchord/gesture"
)

func TestParseLine(t *testing.T) {
	cases := []struct {
		in   string
		ok   bool
		want gesture.Sample
	}{
		{"1 2 3 0.5 20", true, gesture.Sample{X: 1, Y: 2, Z: 3, Tilt: 0.5, Pinch: 20}},
		{"-10.5,300,-40,-0.2,5,R", true, gesture.Sample{X: -10.5, Y: 300, Z: -40, Tilt: -0.2, Pinch: 5, Hand: gesture.HandRight}},
		{"1\t2\t3\t0\t0\tleft", true, gesture.Sample{X: 1, Y: 2, Z: 3, Hand: gesture.HandLeft}},
		{"", false, gesture.Sample{}},
		{"# header", false, gesture.Sample{}},
	}
	for _, c := range cases {
		got, ok, err := ParseLine(c.in)
		if err != nil {
			t.Fatalf("ParseLine(%q): %v", c.in, err)
		}
		if ok != c.ok || got != c.want {
			t.Fatalf("ParseLine(%q): expected %+v ok=%v, got %+v ok=%v", c.in, c.want, c.ok, got, ok)
		}
	}
}

func TestParseLineNaN(t *testing.T) {
	s, ok, err := ParseLine("NaN 0 0 0 0")
	if err != nil || !ok {
		t.Fatalf("expected NaN to parse, got ok=%v err=%v", ok, err)
	}
	if s.Valid() {
		t.Fatalf("expected NaN sample to be invalid")
	}
}

func TestParseLineErrors(t *testing.T) {
	for _, in := range []string{"1 2 3", "1 2 3 4 5 6 7", "a 2 3 4 5", "1 2 3 4 5 up"} {
		if _, _, err := ParseLine(in); err == nil {
			t.Fatalf("ParseLine(%q): expected error", in)
		}
	}
}

func TestLineSource(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	input := "# x y z tilt pinch\n1 2 3 0 50\nbogus\n4 5 6 0 50 R\n"
	ls := NewLineSource(strings.NewReader(input), func() time.Time { return now })

	first, err := ls.Next(time.Second)
	if err != nil || first.X != 1 || !first.Time.Equal(now) {
		t.Fatalf("unexpected first sample %+v err=%v", first, err)
	}
	second, err := ls.Next(time.Second)
	if err != nil || second.X != 4 || second.Hand != gesture.HandRight {
		t.Fatalf("unexpected second sample %+v err=%v", second, err)
	}
	if _, err := ls.Next(time.Second); !errors.Is(err, io.EOF) {
		t.Fatalf("expected EOF, got %v", err)
	}
	if ls.Skipped() != 1 {
		t.Fatalf("expected 1 skipped line, got %d", ls.Skipped())
	}
}

func TestLineSourceTimeout(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()
	ls := NewLineSource(r, nil)
	if _, err := ls.Next(10 * time.Millisecond); !errors.Is(err, gesture.ErrTimeout) {
		t.Fatalf("expected timeout, got %v", err)
	}
}

func TestLineSourceCloseUnblocksFullBuffer(t *testing.T) {
	var input strings.Builder
	for i := 0; i < 200; i++ {
		input.WriteString("1 2 3 0 50\n")
	}
	ls := NewLineSource(strings.NewReader(input.String()), nil)

	deadline := time.Now().Add(2 * time.Second)
	for len(ls.samples) < cap(ls.samples) {
		if time.Now().After(deadline) {
			t.Fatalf("buffer never filled")
		}
		time.Sleep(time.Millisecond)
	}
	ls.Close()

	n := 0
	for {
		_, err := ls.Next(time.Second)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("expected buffered samples then EOF, got %v", err)
		}
		n++
	}
	if n != cap(ls.samples) {
		t.Fatalf("expected reader to stop at %d buffered samples, got %d", cap(ls.samples), n)
	}
}
