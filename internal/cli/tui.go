package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// headlineListModel - Interactive headline selection
// =============================================================================

// headlineListModel is the bubbletea model for picking a markdown headline.
type headlineListModel struct {
	Choices  []string
	Cursor   int
	Selected string
}

// newHeadlineListModel creates a headline picker over the given choices.
func newHeadlineListModel(choices []string) headlineListModel {
	return headlineListModel{Choices: choices}
}

func (m headlineListModel) Init() tea.Cmd {
	return nil
}

func (m headlineListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Choices)-1 {
				m.Cursor++
			}
		case "enter":
			if len(m.Choices) > 0 {
				m.Selected = m.Choices[m.Cursor]
			}
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m headlineListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Headline"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	for i, choice := range m.Choices {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		line := cursor + choice
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Choices))))

	return b.String()
}
