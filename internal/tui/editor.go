package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
)

// EditorModel edits a document in a textarea. Saving runs the validator and
// keeps the editor open with the error shown until the content passes.
type EditorModel struct {
	title    string
	area     textarea.Model
	validate func(string) error
	err      error
	saved    bool
}

// NewEditorModel creates an editor over initial. validate may be nil.
func NewEditorModel(title, initial string, validate func(string) error) EditorModel {
	ta := textarea.New()
	ta.SetWidth(72)
	ta.SetHeight(16)
	ta.CharLimit = 0
	ta.ShowLineNumbers = true
	ta.SetValue(initial)
	ta.Focus()

	if validate == nil {
		validate = func(string) error { return nil }
	}
	return EditorModel{
		title:    title,
		area:     ta,
		validate: validate,
	}
}

// Init implements tea.Model
func (m EditorModel) Init() tea.Cmd {
	return textarea.Blink
}

// Update implements tea.Model
func (m EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c":
			m.saved = false
			return m, tea.Quit
		case "ctrl+s":
			if err := m.validate(m.area.Value()); err != nil {
				m.err = err
				return m, nil
			}
			m.err = nil
			m.saved = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		if msg.Width > 4 {
			m.area.SetWidth(msg.Width - 4)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.area, cmd = m.area.Update(msg)
	return m, cmd
}

// Value returns the edited content.
func (m EditorModel) Value() string {
	return m.area.Value()
}

// Saved reports whether the content was saved rather than cancelled.
func (m EditorModel) Saved() bool {
	return m.saved
}

// Err returns the last validation error.
func (m EditorModel) Err() error {
	return m.err
}

// View implements tea.Model
func (m EditorModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(m.area.View())
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(errorStyle.Render("格式错误: " + m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(footerStyle.Render("ctrl+s save • esc cancel"))
	b.WriteString("\n")
	return b.String()
}
