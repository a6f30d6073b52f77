package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestHeadlineListNavigation(t *testing.T) {
	m := newHeadlineListModel([]string{"first", "second", "third"})

	next, _ := m.Update(keyMsg("down"))
	m = next.(headlineListModel)
	if m.Cursor != 1 {
		t.Errorf("Cursor = %d after down, want 1", m.Cursor)
	}

	next, _ = m.Update(keyMsg("j"))
	m = next.(headlineListModel)
	if m.Cursor != 2 {
		t.Errorf("Cursor = %d after j, want 2", m.Cursor)
	}

	// Cursor clamps at the end
	next, _ = m.Update(keyMsg("down"))
	m = next.(headlineListModel)
	if m.Cursor != 2 {
		t.Errorf("Cursor = %d after down at end, want 2", m.Cursor)
	}

	next, _ = m.Update(keyMsg("up"))
	m = next.(headlineListModel)
	if m.Cursor != 1 {
		t.Errorf("Cursor = %d after up, want 1", m.Cursor)
	}
}

func TestHeadlineListSelect(t *testing.T) {
	m := newHeadlineListModel([]string{"first", "second"})

	next, _ := m.Update(keyMsg("down"))
	m = next.(headlineListModel)
	next, cmd := m.Update(keyMsg("enter"))
	m = next.(headlineListModel)

	if m.Selected != "second" {
		t.Errorf("Selected = %q, want %q", m.Selected, "second")
	}
	if cmd == nil {
		t.Error("enter should quit the program")
	}
}

func TestHeadlineListQuitWithoutSelection(t *testing.T) {
	m := newHeadlineListModel([]string{"first", "second"})

	next, cmd := m.Update(keyMsg("q"))
	m = next.(headlineListModel)

	if m.Selected != "" {
		t.Errorf("Selected = %q after quit, want empty", m.Selected)
	}
	if cmd == nil {
		t.Error("q should quit the program")
	}
}

func TestHeadlineListView(t *testing.T) {
	m := newHeadlineListModel([]string{"alpha headline", "beta headline"})

	view := m.View()
	if !strings.Contains(view, "alpha headline") || !strings.Contains(view, "beta headline") {
		t.Error("view should list all choices")
	}
	if !strings.Contains(view, "[1/2]") {
		t.Errorf("view should show position indicator, got:\n%s", view)
	}
}
