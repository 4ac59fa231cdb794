package aggregate

import (
	"context"
	"fmt"
	"time"

	"github.com/rpggio/timeledger/internal/domain/entry"
	"github.com/rpggio/timeledger/internal/domain/week"
)

// Ledger answers the window queries reports are built from.
type Ledger interface {
	QueryByWindow(ctx context.Context, tenantID string, start, end time.Time, userID string) ([]entry.TimeEntry, error)
	QueryByDay(ctx context.Context, tenantID string, date time.Time, userID string) ([]entry.TimeEntry, error)
}

// WeekEntries returns the entries of the cursor's week.
func WeekEntries(ctx context.Context, ledger Ledger, tenantID string, cursor *week.Cursor, userID string) ([]entry.TimeEntry, error) {
	start, end := cursor.CurrentWeekRange()
	entries, err := ledger.QueryByWindow(ctx, tenantID, start, end, userID)
	if err != nil {
		return nil, fmt.Errorf("querying week entries: %w", err)
	}
	return entries, nil
}

// DayEntries returns the entries attributed to date.
func DayEntries(ctx context.Context, ledger Ledger, tenantID string, date time.Time, userID string) ([]entry.TimeEntry, error) {
	entries, err := ledger.QueryByDay(ctx, tenantID, date, userID)
	if err != nil {
		return nil, fmt.Errorf("querying day entries: %w", err)
	}
	return entries, nil
}

// WeekSheet returns the cursor's week with its total.
func WeekSheet(ctx context.Context, ledger Ledger, tenantID string, cursor *week.Cursor, userID string) (*WeekTimesheet, error) {
	entries, err := WeekEntries(ctx, ledger, tenantID, cursor, userID)
	if err != nil {
		return nil, err
	}
	start, end := cursor.CurrentWeekRange()
	return &WeekTimesheet{
		WeekStart:     start,
		WeekEnd:       end,
		Entries:       entries,
		TotalDuration: TotalDuration(entries),
	}, nil
}

// DaySheet returns one day with its total.
func DaySheet(ctx context.Context, ledger Ledger, tenantID string, date time.Time, userID string) (*DayTimesheet, error) {
	entries, err := DayEntries(ctx, ledger, tenantID, date, userID)
	if err != nil {
		return nil, err
	}
	return &DayTimesheet{
		Date:          week.DayOf(date),
		Entries:       entries,
		TotalDuration: TotalDuration(entries),
	}, nil
}

// ProjectTimeByPerson groups the week's entries by user and project. A
// non-empty projectID keeps only that project.
func ProjectTimeByPerson(ctx context.Context, ledger Ledger, tenantID string, cursor *week.Cursor, projectID string, names Names) ([]ProjectTimeAggregate, error) {
	entries, err := WeekEntries(ctx, ledger, tenantID, cursor, "")
	if err != nil {
		return nil, err
	}
	if projectID != "" {
		entries = filter(entries, func(e entry.TimeEntry) bool { return e.ProjectID == projectID })
	}
	return GroupByUserAndProject(entries, names.ProjectName, names.UserName), nil
}

// TaskTimeSummary groups the week's entries by task, optionally for one user.
func TaskTimeSummary(ctx context.Context, ledger Ledger, tenantID string, cursor *week.Cursor, userID string, names Names) ([]TaskTimeAggregate, error) {
	entries, err := WeekEntries(ctx, ledger, tenantID, cursor, userID)
	if err != nil {
		return nil, err
	}
	return GroupByTask(entries, names.TaskName, names.ProjectName), nil
}

// BuildGrid lays entries out per user, task and day of the cursor's week.
// Entries outside the week are ignored. Rows appear in first-entry order.
func BuildGrid(entries []entry.TimeEntry, cursor *week.Cursor, names Names) Grid {
	start := cursor.WeekStart()
	grid := Grid{
		WeekStart: start,
		Days:      cursor.Days(),
		Users:     []GridUser{},
	}

	userIndex := make(map[string]int)
	taskIndex := make(map[string]map[string]int)
	for _, e := range entries {
		day := dayIndex(start, e.Date)
		if day < 0 {
			continue
		}

		u, ok := userIndex[e.UserID]
		if !ok {
			u = len(grid.Users)
			userIndex[e.UserID] = u
			taskIndex[e.UserID] = make(map[string]int)
			grid.Users = append(grid.Users, GridUser{
				UserID:   e.UserID,
				UserName: names.UserName(e.UserID),
				Tasks:    []GridTask{},
			})
		}
		user := &grid.Users[u]

		t, ok := taskIndex[e.UserID][e.TaskID]
		if !ok {
			t = len(user.Tasks)
			taskIndex[e.UserID][e.TaskID] = t
			user.Tasks = append(user.Tasks, GridTask{
				TaskID:      e.TaskID,
				TaskName:    names.TaskName(e.TaskID),
				ProjectID:   e.ProjectID,
				ProjectName: names.ProjectName(e.ProjectID),
			})
		}
		task := &user.Tasks[t]

		task.DayTotals[day] += e.Duration
		task.Total += e.Duration
		user.DayTotals[day] += e.Duration
		user.Total += e.Duration
		grid.DayTotals[day] += e.Duration
		grid.Total += e.Duration
	}
	return grid
}

func dayIndex(weekStart, date time.Time) int {
	day := week.DayOf(date)
	for i := 0; i < 7; i++ {
		if week.SameDay(day, weekStart.AddDate(0, 0, i)) {
			return i
		}
	}
	return -1
}

func filter(entries []entry.TimeEntry, keep func(entry.TimeEntry) bool) []entry.TimeEntry {
	out := make([]entry.TimeEntry, 0, len(entries))
	for _, e := range entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}
