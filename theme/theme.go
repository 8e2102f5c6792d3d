package theme

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Palette *Palette
	Symbols Symbols
}

type Symbols struct {
	// Scale strip
	KeyIdle     rune // · in scale, silent
	KeySounding rune // ● sounding
	KeyRoot     rune // ◆ root of the last chord

	// Meters
	MeterFull  rune // █
	MeterEmpty rune // ░

	Hand rune // ✋ tracked hand present
}

func New(palette *Palette) *Theme {
	if palette == nil {
		palette = DefaultPalette()
	}
	return &Theme{
		Palette: palette,
		Symbols: Symbols{
			KeyIdle:     '·',
			KeySounding: '●',
			KeyRoot:     '◆',

			MeterFull:  '█',
			MeterEmpty: '░',

			Hand: '✋',
		},
	}
}

// Color roles mapped to palette positions (0-1)
const (
	RoleBG      = 0.0
	RoleSurface = 0.1
	RoleMuted   = 0.25
	RoleFG      = 0.45
	RoleAccent  = 0.55
	RoleActive  = 0.65
	RoleWarning = 0.8
	RoleSuccess = 1.0
)

func (t *Theme) BG() lipgloss.Color      { return t.Color(RoleBG) }
func (t *Theme) Surface() lipgloss.Color { return t.Color(RoleSurface) }
func (t *Theme) FG() lipgloss.Color      { return t.Color(RoleFG) }
func (t *Theme) Accent() lipgloss.Color  { return t.Color(RoleAccent) }
func (t *Theme) Muted() lipgloss.Color   { return t.Color(RoleMuted) }
func (t *Theme) Active() lipgloss.Color  { return t.Color(RoleActive) }
func (t *Theme) Warning() lipgloss.Color { return t.Color(RoleWarning) }
func (t *Theme) Success() lipgloss.Color { return t.Color(RoleSuccess) }

// Color returns lipgloss color for any normalized value 0-1
func (t *Theme) Color(norm float64) lipgloss.Color {
	return toLipgloss(t.Palette.Lookup(norm))
}

// Velocity colors a 0-127 MIDI value along the upper half of the palette.
func (t *Theme) Velocity(v uint8) lipgloss.Color {
	return t.Color(0.5 + 0.5*float64(v)/127)
}

// Meter renders value/limit as a bar of width cells.
func (t *Theme) Meter(value, limit, width int) string {
	if width <= 0 {
		return ""
	}
	if limit <= 0 {
		limit = 1
	}
	filled := value * width / limit
	filled = min(max(filled, 0), width)
	bar := make([]rune, width)
	for i := range bar {
		if i < filled {
			bar[i] = t.Symbols.MeterFull
		} else {
			bar[i] = t.Symbols.MeterEmpty
		}
	}
	return string(bar)
}

func toLipgloss(c RGB) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2]))
}
