package aggregate

import (
	"time"

	"github.com/rpggio/timeledger/internal/domain/entry"
)

// NameFunc resolves an identifier to a display name.
type NameFunc func(id string) string

// Names resolves every display name a report needs.
type Names interface {
	ProjectName(id string) string
	TaskName(id string) string
	UserName(id string) string
}

// ProjectTimeAggregate is the time one user spent on one project.
type ProjectTimeAggregate struct {
	ProjectID     string            `json:"project_id"`
	ProjectName   string            `json:"project_name"`
	UserID        string            `json:"user_id"`
	UserName      string            `json:"user_name"`
	TotalDuration int64             `json:"total_duration"`
	Entries       []entry.TimeEntry `json:"entries"`
}

// TaskTimeAggregate is the time spent on one task.
type TaskTimeAggregate struct {
	TaskID        string            `json:"task_id"`
	TaskName      string            `json:"task_name"`
	ProjectID     string            `json:"project_id"`
	ProjectName   string            `json:"project_name"`
	TotalDuration int64             `json:"total_duration"`
	Entries       []entry.TimeEntry `json:"entries"`
}

// MemberShare is one user's contribution to a project.
type MemberShare struct {
	UserID        string  `json:"user_id"`
	UserName      string  `json:"user_name"`
	TotalDuration int64   `json:"total_duration"`
	Percentage    float64 `json:"percentage"`
}

// ProjectRollUp totals a project across its members.
type ProjectRollUp struct {
	ProjectID     string        `json:"project_id"`
	ProjectName   string        `json:"project_name"`
	TotalDuration int64         `json:"total_duration"`
	Percentage    float64       `json:"percentage"`
	Members       []MemberShare `json:"members"`
}

// TeamReport is the team view of a week: per-project roll-ups plus headline
// counts.
type TeamReport struct {
	ProjectCount  int             `json:"project_count"`
	MemberCount   int             `json:"member_count"`
	TotalDuration int64           `json:"total_duration"`
	Projects      []ProjectRollUp `json:"projects"`
}

// WeekTimesheet is the entries of a week and their total.
type WeekTimesheet struct {
	WeekStart     time.Time         `json:"week_start"`
	WeekEnd       time.Time         `json:"week_end"`
	Entries       []entry.TimeEntry `json:"entries"`
	TotalDuration int64             `json:"total_duration"`
}

// DayTimesheet is the entries of a day and their total.
type DayTimesheet struct {
	Date          time.Time         `json:"date"`
	Entries       []entry.TimeEntry `json:"entries"`
	TotalDuration int64             `json:"total_duration"`
}

// GridTask is one task row of a timesheet grid.
type GridTask struct {
	TaskID      string   `json:"task_id"`
	TaskName    string   `json:"task_name"`
	ProjectID   string   `json:"project_id"`
	ProjectName string   `json:"project_name"`
	DayTotals   [7]int64 `json:"day_totals"`
	Total       int64    `json:"total"`
}

// GridUser groups the task rows of one user.
type GridUser struct {
	UserID    string     `json:"user_id"`
	UserName  string     `json:"user_name"`
	Tasks     []GridTask `json:"tasks"`
	DayTotals [7]int64   `json:"day_totals"`
	Total     int64      `json:"total"`
}

// Grid is a week timesheet laid out as user, task and day.
type Grid struct {
	WeekStart time.Time   `json:"week_start"`
	Days      []time.Time `json:"days"`
	Users     []GridUser  `json:"users"`
	DayTotals [7]int64    `json:"day_totals"`
	Total     int64       `json:"total"`
}
