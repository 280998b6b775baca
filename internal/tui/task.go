package tui

import (
	"fmt"
)

// Task is a single line in the progress display.
type Task struct {
	ID      TaskID
	Name    string
	Status  TaskStatus
	Message string
	Error   error
}

// NewTask creates a pending task.
func NewTask(id TaskID, name string) Task {
	return Task{
		ID:     id,
		Name:   name,
		Status: StatusPending,
	}
}

// Done reports whether the task reached a final status.
func (t Task) Done() bool {
	return t.Status == StatusComplete || t.Status == StatusError || t.Status == StatusSkipped
}

// View renders the task as a string.
func (t Task) View(spinnerFrame string) string {
	icon := StatusIcon(t.Status, spinnerFrame)

	var name string
	if t.Status == StatusPending {
		name = taskDimStyle.Render(t.Name)
	} else {
		name = taskNameStyle.Render(t.Name)
	}

	line := fmt.Sprintf("  %s %s", icon, name)
	if t.Message != "" {
		line += " " + messageStyle.Render(t.Message)
	}
	if t.Error != nil {
		line += " " + errorStyle.Render(t.Error.Error())
	}
	return line
}
