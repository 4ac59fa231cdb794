package timer

import "time"

// State is the timer engine state.
type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
)

// Session is a point-in-time copy of a user's timer.
type Session struct {
	State          State      `json:"state"`
	IsRunning      bool       `json:"is_running"`
	SelectedTaskID string     `json:"selected_task_id,omitempty"`
	StartTime      *time.Time `json:"start_time,omitempty"`
	ElapsedSeconds int64      `json:"elapsed_seconds"`
}
