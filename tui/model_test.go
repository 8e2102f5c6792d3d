package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"go-leapchord/engine"
	"go-leapchord/gesture"
	"go-leapchord/theme"
)

type idleSource struct{}

func (idleSource) Next(time.Duration) (gesture.Sample, error) {
	return gesture.Sample{}, gesture.ErrTimeout
}

func newModel(t *testing.T) (Model, *engine.Engine) {
	t.Helper()
	sess, err := gesture.NewSession(gesture.DefaultOptions(), nil, nil, time.Now())
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	eng := engine.New(idleSource{}, sess)
	return NewModel(eng, theme.New(nil), Info{Source: "sweep", Output: "none"}), eng
}

func TestViewShowsScaleAndCounters(t *testing.T) {
	m, _ := newModel(t)
	view := m.View()
	for _, want := range []string{"go-leapchord", "prog:000", "sweep", "steps 0", "velocity"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
}

func TestUpdateAppliesSnapshot(t *testing.T) {
	m, _ := newModel(t)
	snap := m.snap
	snap.Program = 7
	snap.Steps = 12
	next, cmd := m.Update(UpdateMsg(snap))
	if cmd == nil {
		t.Fatalf("expected to keep listening for updates")
	}
	view := next.(Model).View()
	if !strings.Contains(view, "prog:007") || !strings.Contains(view, "steps 12") {
		t.Fatalf("expected snapshot in view:\n%s", view)
	}
}

func TestKeysQueueCommands(t *testing.T) {
	m, _ := newModel(t)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	_, cmd := next.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestStoppedQuits(t *testing.T) {
	m, _ := newModel(t)
	next, cmd := m.Update(StoppedMsg{})
	if !next.(Model).stopped || cmd == nil {
		t.Fatalf("expected stopped model to quit")
	}
}

func TestViewKeepsLastChord(t *testing.T) {
	m, _ := newModel(t)
	snap := m.snap
	snap.Last = gesture.StepResult{Emitted: true, Mapping: gesture.Mapping{Root: 42, Velocity: 90}}
	next, _ := m.Update(UpdateMsg(snap))

	snap.Last = gesture.StepResult{}
	next, _ = next.Update(UpdateMsg(snap))
	if view := next.(Model).View(); !strings.Contains(view, "F#2") {
		t.Fatalf("expected last root to stay on screen:\n%s", view)
	}
}

func TestViewShowsWaits(t *testing.T) {
	m, _ := newModel(t)
	snap := m.snap
	snap.PinchReadyIn = 400 * time.Millisecond
	snap.Window, snap.WindowSize = 2, 3
	next, _ := m.Update(UpdateMsg(snap))
	view := next.(Model).View()
	for _, want := range []string{"in 400ms", "window 2/3", "next chord ready"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
}
