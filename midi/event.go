package midi

import (
	gomidi "gitlab.com/gomidi/midi/v2"
)

// Controller numbers used by the chord player
const (
	CCAttack      uint8 = 1
	CCDecay       uint8 = 2
	CCSustain     uint8 = 3
	CCRelease     uint8 = 4
	CCModulation  uint8 = 1
	CCCutoff      uint8 = 74
	CCReverb      uint8 = 91
	CCTail        uint8 = 92
	CCAllNotesOff uint8 = 123
)

// NumPitches is the number of pitches silenced on an instrument change (0..126).
const NumPitches = 127

// Channel is a 1-based MIDI channel (1-16).
type Channel uint8

// Valid reports whether c is in 1..16.
func (c Channel) Valid() bool {
	return c >= 1 && c <= 16
}

// wire returns the 0-based nibble that goes into the status byte.
func (c Channel) wire() uint8 {
	return uint8(c-1) & 0x0F
}

func (c Channel) NoteOn(pitch, velocity uint8) gomidi.Message {
	return gomidi.NoteOn(c.wire(), pitch&0x7F, velocity&0x7F)
}

func (c Channel) NoteOff(pitch uint8) gomidi.Message {
	return gomidi.NoteOffVelocity(c.wire(), pitch&0x7F, 0)
}

func (c Channel) ControlChange(controller, value uint8) gomidi.Message {
	return gomidi.ControlChange(c.wire(), controller&0x7F, value&0x7F)
}

func (c Channel) ProgramChange(program uint8) gomidi.Message {
	return gomidi.ProgramChange(c.wire(), program&0x7F)
}

// InstrumentChange returns the messages for a clean instrument switch:
// note-off for every pitch, all-notes-off CC, then the program change.
func (c Channel) InstrumentChange(program uint8) []gomidi.Message {
	msgs := make([]gomidi.Message, 0, NumPitches+2)
	for p := 0; p < NumPitches; p++ {
		msgs = append(msgs, c.NoteOff(uint8(p)))
	}
	msgs = append(msgs, c.ControlChange(CCAllNotesOff, 0))
	msgs = append(msgs, c.ProgramChange(program))
	return msgs
}
