package entry

import (
	"fmt"
	"strings"
)

// ValidateAddInput validates fields required to create an entry.
func ValidateAddInput(req AddRequest) error {
	if strings.TrimSpace(req.UserID) == "" {
		return invalid("user_id is required")
	}
	if strings.TrimSpace(req.TaskID) == "" && strings.TrimSpace(req.ProjectID) == "" {
		return invalid("task_id or project_id is required")
	}
	if req.Date.IsZero() && req.StartTime.IsZero() {
		return invalid("date or start_time is required")
	}
	if req.Duration != nil {
		if *req.Duration < 0 {
			return invalid("duration must be non-negative")
		}
		return nil
	}
	if req.StartTime.IsZero() || req.EndTime == nil {
		return invalid("duration or start_time and end_time are required")
	}
	if req.EndTime.Before(req.StartTime) {
		return invalid("end_time is before start_time")
	}
	return nil
}

// ValidateEntry validates a complete entry, as produced by a merge on update.
func ValidateEntry(e *TimeEntry) error {
	if e.Duration < 0 {
		return invalid("duration must be non-negative")
	}
	if strings.TrimSpace(e.UserID) == "" {
		return invalid("user_id is required")
	}
	if strings.TrimSpace(e.TaskID) == "" && strings.TrimSpace(e.ProjectID) == "" {
		return invalid("task_id or project_id is required")
	}
	if e.Date.IsZero() {
		return invalid("date is required")
	}
	return nil
}

func invalid(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, reason)
}
