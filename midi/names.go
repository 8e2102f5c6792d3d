package midi

import "fmt"

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// PitchName returns the scientific pitch name, e.g. 42 -> "F#2", 60 -> "C4".
func PitchName(pitch uint8) string {
	if pitch > 127 {
		return fmt.Sprintf("?%d", pitch)
	}
	return fmt.Sprintf("%s%d", noteNames[pitch%12], int(pitch/12)-1)
}

// PitchNames maps PitchName over pitches.
func PitchNames(pitches []uint8) []string {
	out := make([]string, len(pitches))
	for i, p := range pitches {
		out[i] = PitchName(p)
	}
	return out
}
