package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"go-leapchord/midi"
	"go-leapchord/theme"
)

// ScaleStrip renders one cell per scale pitch: root, sounding or idle.
// Octave boundaries (every 7 degrees) get an extra space.
func ScaleStrip(t *theme.Theme, scale []uint8, active []uint8, root uint8, hasRoot bool) string {
	sounding := make(map[uint8]bool, len(active))
	for _, p := range active {
		sounding[p] = true
	}

	idle := lipgloss.NewStyle().Foreground(t.Muted())
	on := lipgloss.NewStyle().Foreground(t.Active()).Bold(true)
	rootStyle := lipgloss.NewStyle().Foreground(t.Success()).Bold(true)

	var out strings.Builder
	for i, p := range scale {
		if i > 0 {
			out.WriteString(" ")
			if i%7 == 0 {
				out.WriteString(" ")
			}
		}
		switch {
		case hasRoot && p == root:
			out.WriteString(rootStyle.Render(string(t.Symbols.KeyRoot)))
		case sounding[p]:
			out.WriteString(on.Render(string(t.Symbols.KeySounding)))
		default:
			out.WriteString(idle.Render(string(t.Symbols.KeyIdle)))
		}
	}
	return out.String()
}

// NoteList renders pitches as names ("F#2 A2 C#3"), or a dash when empty.
func NoteList(t *theme.Theme, pitches []uint8) string {
	if len(pitches) == 0 {
		return lipgloss.NewStyle().Foreground(t.Muted()).Render("-")
	}
	return lipgloss.NewStyle().Foreground(t.Accent()).Render(strings.Join(midi.PitchNames(pitches), " "))
}

// Field renders "label  value" with a fixed label column.
func Field(t *theme.Theme, label, value string) string {
	l := lipgloss.NewStyle().Foreground(t.Muted()).Width(10).Render(label)
	return l + lipgloss.NewStyle().Foreground(t.FG()).Render(value)
}

// MeterField renders a labelled 0-127 meter with its number.
func MeterField(t *theme.Theme, label string, v uint8) string {
	bar := lipgloss.NewStyle().Foreground(t.Velocity(v)).Render(t.Meter(int(v), 127, 16))
	return Field(t, label, fmt.Sprintf("%s %3d", bar, v))
}
