package tui

// TaskID identifies a task in the progress display. For updates it is the
// index of the script being downloaded.
type TaskID int

// TaskStatus represents the current status of a task.
type TaskStatus int

const (
	StatusPending TaskStatus = iota
	StatusRunning
	StatusComplete
	StatusError
	StatusSkipped
)

// Event is the interface for all TUI events.
type Event interface {
	isEvent()
}

// TaskEvent represents an update to a task's status.
type TaskEvent struct {
	Task    TaskID
	Status  TaskStatus
	Message string // Optional message, e.g. the stored path
	Error   error  // Error if status is StatusError
}

func (TaskEvent) isEvent() {}

// DoneEvent signals that all work is complete.
type DoneEvent struct{}

func (DoneEvent) isEvent() {}
