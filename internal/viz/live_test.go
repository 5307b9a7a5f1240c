package viz

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/lcsim/internal/sim"
)

func newTestModel(t *testing.T) (*Model, *sim.Controller) {
	t.Helper()
	c := defaultCircuit(t)
	ctrl, err := sim.NewController(sim.New(c, nil), 0.02, time.Hour, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m, err := NewModel(context.Background(), ctrl, c, Options{Density: 50, Periods: 1, Theme: "ocean"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(ctrl.Stop)
	return m, ctrl
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelStartStop(t *testing.T) {
	m, ctrl := newTestModel(t)
	if m.Theme().Name != "ocean" {
		t.Errorf("expected ocean theme, got %s", m.Theme().Name)
	}

	if cmd := m.Init(); cmd == nil {
		t.Error("expected a render tick command")
	}
	if !ctrl.Running() {
		t.Fatal("expected Init to start the controller")
	}

	m.Update(key(" "))
	if ctrl.Running() {
		t.Error("expected space to stop the controller")
	}
	if !strings.Contains(m.View(), "STOPPED") {
		t.Error("expected stopped status in view")
	}

	m.Update(key(" "))
	if !ctrl.Running() {
		t.Error("expected space to start the controller again")
	}

	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if ctrl.Running() {
		t.Error("expected quit to stop the controller")
	}
}

func TestModelStepAndReset(t *testing.T) {
	m, ctrl := newTestModel(t)

	m.Update(key("s"))
	m.Update(key("s"))
	if m.Frame().Step != 2 {
		t.Errorf("expected two single steps, got step %d", m.Frame().Step)
	}
	if len(m.Frame().Markers) != 20 {
		t.Errorf("expected 20 markers, got %d", len(m.Frame().Markers))
	}

	m.Update(key("r"))
	if ctrl.Time() != 0 || m.Frame().Time != 0 {
		t.Errorf("expected reset to zero time, got %v", m.Frame().Time)
	}
}

func TestModelKeysCycle(t *testing.T) {
	m, _ := newTestModel(t)

	m.Update(key("t"))
	if m.Theme().Name != "classic" {
		t.Errorf("expected theme to wrap to classic, got %s", m.Theme().Name)
	}

	for i := 0; i < 5; i++ {
		m.Update(key("g"))
	}
	if m.graphSel != -1 {
		t.Errorf("expected graph selection to wrap to all, got %d", m.graphSel)
	}

	m.Update(key("?"))
	if !strings.Contains(m.View(), "toggle this help") {
		t.Error("expected help text")
	}
}

func TestModelView(t *testing.T) {
	m, _ := newTestModel(t)
	for i := 0; i < 10; i++ {
		m.Update(key("s"))
	}
	m.Update(TickMsg(time.Now()))

	view := m.View()
	for _, want := range []string{"LC OSCILLATOR", "Voltage", "Omega", "Inductor Wl", "U, V", "q, C"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in view", want)
		}
	}
}

func TestLayered(t *testing.T) {
	base := NewCanvas(2, 1)
	top := NewCanvas(2, 1)
	base.Set(0, 0)
	top.Set(1, 1)

	out := Layered(base, top, KeyHint, KeyHint)
	if !strings.Contains(out, string(rune(0x2800|0x1|0x10))) {
		t.Errorf("expected union of both layers in first cell, got %q", out)
	}
}
