package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// MenuModel lets the user pick one item from a list.
type MenuModel struct {
	title  string
	items  []string
	cursor int
	chosen int
}

// NewMenuModel creates a menu. Nothing is chosen until enter is pressed.
func NewMenuModel(title string, items []string) MenuModel {
	return MenuModel{
		title:  title,
		items:  items,
		chosen: -1,
	}
}

// Init implements tea.Model
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(msg)
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "q", "esc", "ctrl+c":
		m.chosen = -1
		return m, tea.Quit

	case "j", "down":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
		return m, nil

	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "g", "home":
		m.cursor = 0
		return m, nil

	case "G", "end":
		m.cursor = len(m.items) - 1
		return m, nil

	case "enter", " ":
		if len(m.items) > 0 {
			m.chosen = m.cursor
			return m, tea.Quit
		}
		return m, nil

	default:
		// number keys pick an item directly
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if i := int(key[0] - '1'); i < len(m.items) {
				m.cursor = i
				m.chosen = i
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

// Chosen returns the picked index, or -1 when the menu was dismissed.
func (m MenuModel) Chosen() int {
	return m.chosen
}

// Cursor returns the highlighted index.
func (m MenuModel) Cursor() int {
	return m.cursor
}

// View implements tea.Model
func (m MenuModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")
	for i, item := range m.items {
		line := fmt.Sprintf("%d. %s", i+1, item)
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("› " + line))
		} else {
			b.WriteString("  " + taskNameStyle.Render(line))
		}
		b.WriteString("\n")
	}
	b.WriteString(footerStyle.Render("↑/↓ move • enter select • q quit"))
	b.WriteString("\n")
	return b.String()
}
