package entry

import "time"

// TimeEntry is the atomic unit of tracked work. Duration is authoritative and
// need not equal EndTime-StartTime.
type TimeEntry struct {
	ID          string     `json:"id"`
	TenantID    string     `json:"tenant_id"`
	TaskID      string     `json:"task_id,omitempty"`
	UserID      string     `json:"user_id"`
	ProjectID   string     `json:"project_id,omitempty"`
	Date        time.Time  `json:"date"` // attribution day, midnight UTC
	StartTime   time.Time  `json:"start_time"`
	EndTime     *time.Time `json:"end_time,omitempty"`
	Duration    int64      `json:"duration"` // seconds
	Description string     `json:"description,omitempty"`
	IsManual    bool       `json:"is_manual"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
