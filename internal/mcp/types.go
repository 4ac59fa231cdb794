package mcp

import (
	"time"

	"github.com/rpggio/timeledger/internal/domain/aggregate"
	"github.com/rpggio/timeledger/internal/domain/entry"
	"github.com/rpggio/timeledger/internal/domain/timer"
)

// ToolDefinition describes a callable tool
type ToolDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

type SelectTaskParams struct {
	TaskID string `json:"task_id"`
}

type StartTimerParams struct {
	TaskID string `json:"task_id,omitempty"`
}

type AddEntryParams struct {
	TaskID      string `json:"task_id,omitempty"`
	ProjectID   string `json:"project_id,omitempty"`
	UserID      string `json:"user_id,omitempty"`
	Date        string `json:"date,omitempty"`
	StartTime   string `json:"start_time,omitempty"`
	EndTime     string `json:"end_time,omitempty"`
	Duration    *int64 `json:"duration,omitempty"`
	Description string `json:"description,omitempty"`
}

type UpdateEntryParams struct {
	ID          string  `json:"id"`
	TaskID      *string `json:"task_id,omitempty"`
	ProjectID   *string `json:"project_id,omitempty"`
	UserID      *string `json:"user_id,omitempty"`
	Date        *string `json:"date,omitempty"`
	StartTime   *string `json:"start_time,omitempty"`
	EndTime     *string `json:"end_time,omitempty"`
	Duration    *int64  `json:"duration,omitempty"`
	Description *string `json:"description,omitempty"`
}

type EntryIDParams struct {
	ID string `json:"id"`
}

type SetWeekParams struct {
	Date string `json:"date"`
}

type WeekQueryParams struct {
	UserID string `json:"user_id,omitempty"`
}

type DayEntriesParams struct {
	Date   string `json:"date,omitempty"`
	UserID string `json:"user_id,omitempty"`
}

type ProjectTimeParams struct {
	ProjectID string `json:"project_id,omitempty"`
}

type CreateProjectParams struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type CreateTaskParams struct {
	ID        string `json:"id,omitempty"`
	ProjectID string `json:"project_id"`
	Title     string `json:"title"`
}

type CreateUserParams struct {
	ID          string `json:"id,omitempty"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email,omitempty"`
}

type GetRecentActivityParams struct {
	UserID  string  `json:"user_id,omitempty"`
	EntryID *string `json:"entry_id,omitempty"`
	TaskID  *string `json:"task_id,omitempty"`
	Type    string  `json:"type,omitempty"`
	Limit   int     `json:"limit,omitempty"`
	Offset  int     `json:"offset,omitempty"`
}

type TimerResponse struct {
	timer.Session
	Elapsed string `json:"elapsed"`
}

type StopTimerResponse struct {
	Entry entry.TimeEntry `json:"entry"`
	Timer TimerResponse   `json:"timer"`
}

type DeleteEntryResponse struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

type WeekResponse struct {
	WeekStart string   `json:"week_start"`
	WeekEnd   string   `json:"week_end"`
	Days      []string `json:"days"`
}

type TimesheetResponse struct {
	WeekStart     string            `json:"week_start"`
	WeekEnd       string            `json:"week_end"`
	Entries       []entry.TimeEntry `json:"entries"`
	TotalDuration int64             `json:"total_duration"`
	TotalHours    string            `json:"total_hours"`
}

type DaySheetResponse struct {
	Date          string            `json:"date"`
	Entries       []entry.TimeEntry `json:"entries"`
	TotalDuration int64             `json:"total_duration"`
	TotalHours    string            `json:"total_hours"`
}

type ProjectTimeResponse struct {
	WeekStart string                           `json:"week_start"`
	Buckets   []aggregate.ProjectTimeAggregate `json:"buckets"`
	Team      aggregate.TeamReport             `json:"team"`
}

type TaskSummaryResponse struct {
	WeekStart string                        `json:"week_start"`
	Tasks     []aggregate.TaskTimeAggregate `json:"tasks"`
	Total     int64                         `json:"total_duration"`
}

type ActivityEntryResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Type      string    `json:"type"`
	UserID    string    `json:"user_id,omitempty"`
	EntryID   *string   `json:"entry_id,omitempty"`
	TaskID    *string   `json:"task_id,omitempty"`
	Summary   string    `json:"summary"`
	Details   string    `json:"details,omitempty"`
}
