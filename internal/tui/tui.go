// Package tui holds the interactive terminal screens: the widget menu, the
// document editor, the credential form and the update progress display.
package tui

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// ShouldUseTUI returns true if the TUI should be used based on environment.
func ShouldUseTUI() bool {
	// Check if stdout is a TTY
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return false
	}

	// Check for CI environment variables
	ciVars := []string{
		"CI",
		"GITHUB_ACTIONS",
		"JENKINS_URL",
		"TRAVIS",
		"CIRCLECI",
		"GITLAB_CI",
		"BUILDKITE",
	}

	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			return false
		}
	}

	return true
}

// SendEvent sends an event to the channel in a non-blocking manner.
func SendEvent(ch chan<- Event, e Event) {
	if ch == nil {
		return
	}
	select {
	case ch <- e:
	default:
		// Non-blocking send - drop event if channel is full
	}
}

// SendTaskEvent is a convenience function for sending task events.
func SendTaskEvent(ch chan<- Event, task TaskID, status TaskStatus, opts ...TaskEventOption) {
	e := TaskEvent{
		Task:   task,
		Status: status,
	}
	for _, opt := range opts {
		opt(&e)
	}
	SendEvent(ch, e)
}

// TaskEventOption is a functional option for TaskEvent.
type TaskEventOption func(*TaskEvent)

// WithMessage sets the message on a TaskEvent.
func WithMessage(msg string) TaskEventOption {
	return func(e *TaskEvent) {
		e.Message = msg
	}
}

// WithError sets the error on a TaskEvent.
func WithError(err error) TaskEventOption {
	return func(e *TaskEvent) {
		e.Error = err
	}
}

// RunProgress shows tasks until events is closed or a DoneEvent arrives.
func RunProgress(events <-chan Event, tasks []Task) error {
	// Don't use alt screen - render inline
	p := tea.NewProgram(NewModel(events, tasks))
	_, err := p.Run()
	return err
}

// RunMenu shows a menu and returns the chosen index, or -1 if dismissed.
func RunMenu(title string, items []string) (int, error) {
	final, err := tea.NewProgram(NewMenuModel(title, items)).Run()
	if err != nil {
		return -1, err
	}
	m, ok := final.(MenuModel)
	if !ok {
		return -1, fmt.Errorf("unexpected menu model %T", final)
	}
	return m.Chosen(), nil
}

// RunEditor edits initial until it passes validate. The bool is false when
// the user cancelled.
func RunEditor(title, initial string, validate func(string) error) (string, bool, error) {
	final, err := tea.NewProgram(NewEditorModel(title, initial, validate), tea.WithAltScreen()).Run()
	if err != nil {
		return "", false, err
	}
	m, ok := final.(EditorModel)
	if !ok {
		return "", false, fmt.Errorf("unexpected editor model %T", final)
	}
	return m.Value(), m.Saved(), nil
}

// RunKeyForm asks for fields and returns their values in order. The bool is
// false when the user cancelled.
func RunKeyForm(title string, fields []Field) ([]string, bool, error) {
	final, err := tea.NewProgram(NewKeyFormModel(title, fields)).Run()
	if err != nil {
		return nil, false, err
	}
	m, ok := final.(KeyFormModel)
	if !ok {
		return nil, false, fmt.Errorf("unexpected form model %T", final)
	}
	return m.Values(), m.Submitted(), nil
}
