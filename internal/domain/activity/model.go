package activity

import "time"

// ActivityType represents the type of activity event
type ActivityType string

const (
	TypeEntryCreated    ActivityType = "entry_created"
	TypeEntryUpdated    ActivityType = "entry_updated"
	TypeEntryDeleted    ActivityType = "entry_deleted"
	TypeTimerStarted    ActivityType = "timer_started"
	TypeTimerStopped    ActivityType = "timer_stopped"
	TypeTimerStopFailed ActivityType = "timer_stop_failed"
)

// ActivityEntry represents an event in the activity log
type ActivityEntry struct {
	ID           int64        `json:"id"`
	TenantID     string       `json:"tenant_id"`
	UserID       string       `json:"user_id"`
	EntryID      *string      `json:"entry_id,omitempty"`
	TaskID       *string      `json:"task_id,omitempty"`
	ActivityType ActivityType `json:"type"`
	Summary      string       `json:"summary"`
	Details      string       `json:"details,omitempty"` // JSON string
	CreatedAt    time.Time    `json:"created_at"`
}
