package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Field is one input of a KeyFormModel.
type Field struct {
	Label  string
	Value  string
	Secret bool
}

// KeyFormModel collects a set of credentials.
type KeyFormModel struct {
	title     string
	labels    []string
	inputs    []textinput.Model
	focus     int
	submitted bool
}

// NewKeyFormModel creates a form with one text input per field.
func NewKeyFormModel(title string, fields []Field) KeyFormModel {
	m := KeyFormModel{title: title}
	for i, f := range fields {
		ti := textinput.New()
		ti.Placeholder = f.Label
		ti.SetValue(f.Value)
		ti.CharLimit = 256
		ti.Width = 48
		if f.Secret {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
		}
		if i == 0 {
			ti.Focus()
		}
		m.labels = append(m.labels, f.Label)
		m.inputs = append(m.inputs, ti)
	}
	return m
}

// Init implements tea.Model
func (m KeyFormModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (m KeyFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc", "ctrl+c":
			m.submitted = false
			return m, tea.Quit
		case "tab", "down":
			return m.setFocus(m.focus + 1)
		case "shift+tab", "up":
			return m.setFocus(m.focus - 1)
		case "enter":
			if m.focus == len(m.inputs)-1 {
				m.submitted = true
				return m, tea.Quit
			}
			return m.setFocus(m.focus + 1)
		}
	}

	if len(m.inputs) == 0 {
		return m, nil
	}
	inputs := make([]textinput.Model, len(m.inputs))
	copy(inputs, m.inputs)
	var cmd tea.Cmd
	inputs[m.focus], cmd = inputs[m.focus].Update(msg)
	m.inputs = inputs
	return m, cmd
}

// setFocus moves focus to i, wrapping around the form.
func (m KeyFormModel) setFocus(i int) (tea.Model, tea.Cmd) {
	n := len(m.inputs)
	if n == 0 {
		return m, nil
	}
	i = ((i % n) + n) % n

	inputs := make([]textinput.Model, n)
	copy(inputs, m.inputs)
	var cmd tea.Cmd
	for j := range inputs {
		if j == i {
			cmd = inputs[j].Focus()
		} else {
			inputs[j].Blur()
		}
	}
	m.inputs = inputs
	m.focus = i
	return m, cmd
}

// Values returns the input values in field order, trimmed.
func (m KeyFormModel) Values() []string {
	values := make([]string, len(m.inputs))
	for i, in := range m.inputs {
		values[i] = strings.TrimSpace(in.Value())
	}
	return values
}

// Submitted reports whether the form was submitted rather than cancelled.
func (m KeyFormModel) Submitted() bool {
	return m.submitted
}

// Focus returns the index of the focused input.
func (m KeyFormModel) Focus() int {
	return m.focus
}

// View implements tea.Model
func (m KeyFormModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")
	for i, in := range m.inputs {
		b.WriteString(labelStyle.Render(m.labels[i]))
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	b.WriteString(footerStyle.Render("tab next • enter save • esc cancel"))
	b.WriteString("\n")
	return b.String()
}
