package midi

import (
	"bytes"
	"errors"
	"testing"

	gomidi "gitlab.com/gomidi/midi/v2"
)

func TestChannelEncoding(t *testing.T) {
	ch := Channel(2)
	tests := []struct {
		name string
		got  gomidi.Message
		want []byte
	}{
		{"program change", ch.ProgramChange(5), []byte{0xC1, 5}},
		{"note on", ch.NoteOn(60, 100), []byte{0x91, 60, 100}},
		{"note off", ch.NoteOff(60), []byte{0x81, 60, 0}},
		{"control change", ch.ControlChange(CCAttack, 70), []byte{0xB1, 1, 70}},
	}
	for _, tt := range tests {
		if !bytes.Equal(tt.got, tt.want) {
			t.Fatalf("%s: expected % X, got % X", tt.name, tt.want, []byte(tt.got))
		}
	}
}

func TestChannelBounds(t *testing.T) {
	if got := Channel(1).NoteOn(60, 1); got[0] != 0x90 {
		t.Fatalf("expected 0x90, got %#x", got[0])
	}
	if got := Channel(16).ControlChange(CCReverb, 1); got[0] != 0xBF {
		t.Fatalf("expected 0xBF, got %#x", got[0])
	}
	if Channel(0).Valid() || Channel(17).Valid() || !Channel(10).Valid() {
		t.Fatalf("channel validity wrong")
	}
}

func TestInstrumentChange(t *testing.T) {
	msgs := Channel(2).InstrumentChange(7)
	if len(msgs) != NumPitches+2 {
		t.Fatalf("expected %d messages, got %d", NumPitches+2, len(msgs))
	}
	for p := 0; p < NumPitches; p++ {
		want := []byte{0x81, byte(p), 0}
		if !bytes.Equal(msgs[p], want) {
			t.Fatalf("message %d: expected % X, got % X", p, want, []byte(msgs[p]))
		}
	}
	if !bytes.Equal(msgs[NumPitches], []byte{0xB1, 123, 0}) {
		t.Fatalf("expected all-notes-off CC, got % X", []byte(msgs[NumPitches]))
	}
	if !bytes.Equal(msgs[NumPitches+1], []byte{0xC1, 7}) {
		t.Fatalf("expected program change last, got % X", []byte(msgs[NumPitches+1]))
	}
}

func TestPitchName(t *testing.T) {
	cases := map[uint8]string{42: "F#2", 60: "C4", 0: "C-1", 76: "E5", 127: "G9"}
	for pitch, want := range cases {
		if got := PitchName(pitch); got != want {
			t.Fatalf("PitchName(%d): expected %s, got %s", pitch, want, got)
		}
	}
}

func TestTeeSendsToAllAndReturnsFirstError(t *testing.T) {
	failing := &Capture{FailOn: func(gomidi.Message) bool { return true }}
	ok := &Capture{}
	tee := Tee{failing, nil, ok}

	err := tee.Send(Channel(1).NoteOn(60, 90))
	var sendErr *SendError
	if !errors.As(err, &sendErr) {
		t.Fatalf("expected SendError, got %v", err)
	}
	if len(failing.Messages()) != 1 || len(ok.Messages()) != 1 {
		t.Fatalf("expected both sinks to see the message")
	}
}

func TestSinkFuncWrapsError(t *testing.T) {
	boom := errors.New("boom")
	s := SinkFunc(func(gomidi.Message) error { return boom })
	err := s.Send(Channel(1).NoteOff(1))
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped boom, got %v", err)
	}
}
