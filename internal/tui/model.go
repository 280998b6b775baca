package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Model is the Bubble Tea model for the update progress display.
type Model struct {
	tasks    []Task
	spinner  spinner.Model
	progress progress.Model
	events   <-chan Event
	done     bool
}

// doneMsg signals that the event channel was closed.
type doneMsg struct{}

// NewModel creates a progress model showing tasks, updated from events.
func NewModel(events <-chan Event, tasks []Task) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot

	p := progress.New(
		progress.WithScaledGradient("#60a5fa", "#1e3a8a"),
		progress.WithWidth(25),
		progress.WithoutPercentage(),
	)

	return Model{
		tasks:    tasks,
		spinner:  s,
		progress: p,
		events:   events,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		waitForEvent(m.events),
	)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		return m, cmd

	case TaskEvent:
		m = m.updateTask(msg)
		return m, tea.Batch(m.progress.SetPercent(m.Completed()), waitForEvent(m.events))

	case DoneEvent, doneMsg:
		m.done = true
		return m, tea.Quit
	}

	return m, nil
}

// updateTask applies a TaskEvent to its task.
func (m Model) updateTask(e TaskEvent) Model {
	tasks := make([]Task, len(m.tasks))
	copy(tasks, m.tasks)
	for i := range tasks {
		if tasks[i].ID != e.Task {
			continue
		}
		tasks[i].Status = e.Status
		if e.Message != "" {
			tasks[i].Message = e.Message
		}
		if e.Error != nil {
			tasks[i].Error = e.Error
		}
		break
	}
	m.tasks = tasks
	return m
}

// Completed returns the fraction of tasks in a final status.
func (m Model) Completed() float64 {
	if len(m.tasks) == 0 {
		return 1
	}
	n := 0
	for _, t := range m.tasks {
		if t.Done() {
			n++
		}
	}
	return float64(n) / float64(len(m.tasks))
}

// Tasks returns the current task states.
func (m Model) Tasks() []Task {
	return m.tasks
}

// View renders the model.
func (m Model) View() string {
	var s string
	for _, task := range m.tasks {
		s += task.View(m.spinner.View()) + "\n"
	}

	s += fmt.Sprintf("\n  %s %d%%\n", m.progress.ViewAs(m.Completed()), int(m.Completed()*100))

	if !m.done {
		s += footerStyle.Render("  Press Ctrl+C to cancel")
	}
	s += "\n"
	return s
}

// waitForEvent creates a command that waits for the next event.
func waitForEvent(events <-chan Event) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return doneMsg{}
		}
		return event
	}
}
