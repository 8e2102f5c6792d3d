package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"go-leapchord/engine"
	"go-leapchord/gesture"
	"go-leapchord/midi"
	"go-leapchord/theme"
	"go-leapchord/widgets"
)

// Info is static text shown in the header.
type Info struct {
	Source string
	Output string
}

type Model struct {
	Engine *engine.Engine
	Theme  *theme.Theme
	Info   Info

	snap     gesture.Snapshot
	played   gesture.Mapping // mapping of the last emitted chord
	hasPlay  bool
	keys     keyMap
	help     help.Model
	stopped  bool
	quitting bool
}

// UpdateMsg carries a fresh session snapshot.
type UpdateMsg gesture.Snapshot

// StoppedMsg is sent once the engine closes its update channel.
type StoppedMsg struct{}

func NewModel(eng *engine.Engine, th *theme.Theme, info Info) Model {
	return Model{
		Engine: eng,
		Theme:  th,
		Info:   info,
		snap:   eng.Snapshot(),
		keys:   defaultKeys(),
		help:   help.New(),
	}
}

func ListenForUpdates(eng *engine.Engine) tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-eng.UpdateChan
		if !ok {
			return StoppedMsg{}
		}
		return UpdateMsg(snap)
	}
}

func (m Model) Init() tea.Cmd {
	return ListenForUpdates(m.Engine)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Panic):
			m.Engine.Send(engine.CmdPanic)
		case key.Matches(msg, m.keys.Program):
			m.Engine.Send(engine.CmdNextProgram)
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

	case UpdateMsg:
		m.snap = gesture.Snapshot(msg)
		if m.snap.Last.Emitted {
			m.played, m.hasPlay = m.snap.Last.Mapping, true
		}
		return m, ListenForUpdates(m.Engine)

	case StoppedMsg:
		m.stopped = true
		m.snap = m.Engine.Snapshot()
		return m, tea.Quit
	}

	return m, nil
}

// wait renders a countdown, or "ready" once it has elapsed.
func wait(d time.Duration) string {
	if d <= 0 {
		return "ready"
	}
	return "in " + d.Round(10*time.Millisecond).String()
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	th := m.Theme
	snap := m.snap
	last := snap.Last

	headerStyle := lipgloss.NewStyle().Foreground(th.Accent()).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(th.Muted())
	warnStyle := lipgloss.NewStyle().Foreground(th.Warning())

	state := "LIVE"
	if m.stopped {
		state = "STOPPED"
	}
	header := headerStyle.Render(fmt.Sprintf("go-leapchord  %s  prog:%03d", state, snap.Program)) +
		dimStyle.Render(fmt.Sprintf("  %s → %s", m.Info.Source, m.Info.Output))

	hand := dimStyle.Render("no hand")
	switch {
	case last.Time.IsZero():
	case last.Filtered:
		hand = warnStyle.Render(fmt.Sprintf("%s hand ignored", last.Hand))
	case last.Invalid:
		hand = warnStyle.Render("invalid sample")
	default:
		hand = string(th.Symbols.Hand) + " " + last.Hand.String()
	}

	mapping := m.played
	lines := []string{
		header,
		"",
		widgets.ScaleStrip(th, snap.Scale, snap.Active, mapping.Root, m.hasPlay),
		"",
		widgets.Field(th, "hand", hand),
		widgets.Field(th, "position", fmt.Sprintf("x:%5d y:%5d z:%5d  window %d/%d",
			last.Position.X, last.Position.Y, last.Position.Z, snap.Window, snap.WindowSize)),
		widgets.Field(th, "screen", fmt.Sprintf("%4d,%4d", last.ScreenX, last.ScreenY)),
		widgets.Field(th, "pinch", fmt.Sprintf("%.1f  %s", last.Pinch, wait(snap.PinchReadyIn))),
		widgets.Field(th, "rate", fmt.Sprintf("%.2f  delay %s  next chord %s",
			last.Rate, last.Delay.Round(time.Millisecond), wait(snap.NextChordIn))),
		"",
		widgets.Field(th, "root", fmt.Sprintf("%s (raw %d)", midi.PitchName(mapping.Root), mapping.Raw)),
		widgets.MeterField(th, "velocity", mapping.Velocity),
		widgets.MeterField(th, "depth", mapping.Depth),
		widgets.Field(th, "chord", widgets.NoteList(th, snap.LastEvent.Pitches)),
		widgets.Field(th, "sounding", widgets.NoteList(th, snap.Active)),
		"",
		dimStyle.Render(fmt.Sprintf("steps %d  chords %d  invalid %d  changes %d  send errors %d",
			snap.Steps, snap.Emissions, snap.InvalidSamples, snap.ProgramChanges, snap.SendErrors)),
		"",
		m.help.View(m.keys),
	}

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(strings.Join(lines, "\n"))
	out.WriteString("\n")
	return out.String()
}
