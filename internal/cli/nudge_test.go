package cli

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/stylebox/pkg/element"
	"github.com/matzehuels/stylebox/pkg/units"
)

func newTestElement() *element.Element {
	src := element.StyleSource{Raw: map[string]string{
		"left": "10px", "top": "20px", "width": "100px", "height": "50px",
	}}
	return element.FromStyle("box", src, units.Context{
		Container: units.Size{Width: 800, Height: 600},
		FontSize:  16, RootFontSize: 16,
	})
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// press feeds keys to m and returns the resulting model.
func press(t *testing.T, m NudgeModel, keys ...string) NudgeModel {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(keyMsg(k))
		m = next.(NudgeModel)
	}
	return m
}

func TestNudgeMove(t *testing.T) {
	m := press(t, NewNudgeModel(newTestElement(), nil), "right", "right", "]", "down", "h")

	if got := m.Element.Box.H.Value.Pixels(); got != 7 {
		t.Errorf("left = %v, want 7", got)
	}
	if got := m.Element.Box.V.Value.Pixels(); got != 25 {
		t.Errorf("top = %v, want 25", got)
	}
	if !m.Dirty {
		t.Error("Dirty = false after edits")
	}
}

func TestNudgeResize(t *testing.T) {
	m := press(t, NewNudgeModel(newTestElement(), nil), "s", "right", "down")
	if got := m.Element.Box.Width.Pixels(); got != 101 {
		t.Errorf("width = %v, want 101", got)
	}
	if got := m.Element.Box.Height.Pixels(); got != 51 {
		t.Errorf("height = %v, want 51", got)
	}

	// East handle: vertical arrows do nothing.
	m = press(t, m, "c", "down", "right")
	if m.handle().String() != "e" {
		t.Fatalf("handle = %s, want e", m.handle())
	}
	if got := m.Element.Box.Height.Pixels(); got != 51 {
		t.Errorf("height = %v, want 51 with the east handle", got)
	}
	if got := m.Element.Box.Width.Pixels(); got != 102 {
		t.Errorf("width = %v, want 102", got)
	}
}

func TestNudgeRotate(t *testing.T) {
	m := press(t, NewNudgeModel(newTestElement(), nil), "r", "right", "up", "]")
	if got := m.Element.Rotation(); got != 2 {
		t.Errorf("rotation = %v, want 2", got)
	}
	m = press(t, m, "left")
	if got := m.Element.Rotation(); got != -3 {
		t.Errorf("rotation = %v, want -3", got)
	}
}

func TestNudgeBackgroundAndLayer(t *testing.T) {
	m := press(t, NewNudgeModel(newTestElement(), nil), "b", "left", "up", "+", "+", "-")
	if got := m.Element.Background[0].Pixels(); got != -1 {
		t.Errorf("background x = %v, want -1", got)
	}
	if got := m.Element.Layer(); got != 1 {
		t.Errorf("layer = %d, want 1", got)
	}
}

func TestNudgeStepBounds(t *testing.T) {
	m := press(t, NewNudgeModel(newTestElement(), nil), "[", "[")
	if m.step() != 1 {
		t.Errorf("step = %v, want 1", m.step())
	}
	m = press(t, m, "]", "]", "]", "]", "]")
	if m.step() != 50 {
		t.Errorf("step = %v, want 50", m.step())
	}
}

func TestNudgeUndoRedo(t *testing.T) {
	m := press(t, NewNudgeModel(newTestElement(), nil), "right", "right")
	m = press(t, m, "u")
	if got := m.Element.Box.H.Value.Pixels(); got != 11 {
		t.Errorf("left after undo = %v, want 11", got)
	}
	if m.Status != "undone" {
		t.Errorf("Status = %q", m.Status)
	}
	m = press(t, m, "U")
	if got := m.Element.Box.H.Value.Pixels(); got != 12 {
		t.Errorf("left after redo = %v, want 12", got)
	}
	m = press(t, m, "u", "u", "u", "ctrl+r")
	if got := m.Element.Box.H.Value.Pixels(); got != 11 {
		t.Errorf("left = %v, want 11", got)
	}
}

func TestNudgeSave(t *testing.T) {
	m := press(t, NewNudgeModel(newTestElement(), nil), "right", "w")
	if m.Status != "nothing to save to" || !m.Dirty {
		t.Errorf("without save: Status = %q, Dirty = %v", m.Status, m.Dirty)
	}

	saves := 0
	m = NewNudgeModel(newTestElement(), func() error { saves++; return nil })
	m = press(t, m, "right", "w")
	if saves != 1 || m.Dirty || m.Status != "saved" {
		t.Errorf("save: calls = %d, Dirty = %v, Status = %q", saves, m.Dirty, m.Status)
	}

	m = NewNudgeModel(newTestElement(), func() error { return fmt.Errorf("disk full") })
	m = press(t, m, "right", "w")
	if m.Err == nil || !m.Dirty {
		t.Errorf("failed save: Err = %v, Dirty = %v", m.Err, m.Dirty)
	}
	if !strings.Contains(m.View(), "disk full") {
		t.Error("View() does not show the save error")
	}
}

func TestNudgeQuit(t *testing.T) {
	for _, k := range []string{"q", "esc"} {
		_, cmd := NewNudgeModel(newTestElement(), nil).Update(keyMsg(k))
		if cmd == nil {
			t.Fatalf("Update(%q) returned no command", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("Update(%q) command is not tea.Quit", k)
		}
	}
}

func TestNudgeView(t *testing.T) {
	m := press(t, NewNudgeModel(newTestElement(), nil), "s")
	view := m.View()
	for _, want := range []string{"#box", "resize", "handle se", "left: 10px;", "100px × 50px"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}
}

func TestNudgeIgnoresOtherMessages(t *testing.T) {
	m := NewNudgeModel(newTestElement(), nil)
	next, cmd := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	if cmd != nil || next.(NudgeModel).Dirty {
		t.Error("non-key message changed the model")
	}
}
