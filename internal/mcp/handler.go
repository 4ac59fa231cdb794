package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rpggio/timeledger/internal/domain/activity"
	"github.com/rpggio/timeledger/internal/domain/aggregate"
	"github.com/rpggio/timeledger/internal/domain/directory"
	"github.com/rpggio/timeledger/internal/domain/entry"
	"github.com/rpggio/timeledger/internal/domain/session"
	"github.com/rpggio/timeledger/internal/domain/timer"
	"github.com/rpggio/timeledger/internal/domain/week"
)

// LedgerService defines time ledger operations needed by MCP.
type LedgerService interface {
	aggregate.Ledger
	Add(ctx context.Context, tenantID string, req entry.AddRequest) (*entry.TimeEntry, error)
	Update(ctx context.Context, tenantID string, req entry.UpdateRequest) (*entry.TimeEntry, error)
	Delete(ctx context.Context, tenantID, id string) error
	Get(ctx context.Context, tenantID, id string) (*entry.TimeEntry, error)
}

// DirectoryService defines directory operations needed by MCP.
type DirectoryService interface {
	CreateProject(ctx context.Context, tenantID string, req directory.CreateProjectRequest) (*directory.Project, error)
	CreateTask(ctx context.Context, tenantID string, req directory.CreateTaskRequest) (*directory.Task, error)
	CreateUser(ctx context.Context, tenantID string, req directory.CreateUserRequest) (*directory.User, error)
	Names(ctx context.Context, tenantID string) (*directory.Names, error)
}

// SessionManager hands out the per-user session holding the timer and week.
type SessionManager interface {
	Open(tenantID, userID string) (*session.Session, error)
}

// ActivityService defines activity operations needed by MCP.
type ActivityService interface {
	GetRecentActivity(ctx context.Context, tenantID string, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error)
}

// Services contains all domain services needed by MCP.
type Services struct {
	Ledger    LedgerService
	Directory DirectoryService
	Sessions  SessionManager
	Activity  ActivityService
}

// Handler dispatches tool calls to domain services. It backs both the MCP
// tools and the plain JSON-RPC endpoint.
type Handler struct {
	ledger    LedgerService
	directory DirectoryService
	sessions  SessionManager
	activity  ActivityService
}

// NewHandler creates a new MCP handler.
func NewHandler(services Services) *Handler {
	return &Handler{
		ledger:    services.Ledger,
		directory: services.Directory,
		sessions:  services.Sessions,
		activity:  services.Activity,
	}
}

// Handle runs method for the user identified by tenantID and userID. Domain
// errors come back as *APIError.
func (h *Handler) Handle(ctx context.Context, tenantID, userID, method string, params json.RawMessage) (any, error) {
	result, err := h.dispatch(ctx, tenantID, userID, method, params)
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

func (h *Handler) dispatch(ctx context.Context, tenantID, userID, method string, params json.RawMessage) (any, error) {
	switch method {
	case "select_task":
		var req SelectTaskParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		sess, err := h.sessions.Open(tenantID, userID)
		if err != nil {
			return nil, err
		}
		if err := sess.Timer.SelectTask(req.TaskID); err != nil {
			return nil, err
		}
		return timerResponse(sess.Timer.Snapshot()), nil
	case "start_timer":
		var req StartTimerParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		sess, err := h.sessions.Open(tenantID, userID)
		if err != nil {
			return nil, err
		}
		taskID := req.TaskID
		if taskID == "" {
			taskID = sess.Timer.Snapshot().SelectedTaskID
		}
		if err := sess.Timer.Start(ctx, taskID); err != nil {
			return nil, err
		}
		return timerResponse(sess.Timer.Snapshot()), nil
	case "stop_timer":
		sess, err := h.sessions.Open(tenantID, userID)
		if err != nil {
			return nil, err
		}
		recorded, err := sess.Timer.Stop(ctx)
		if err != nil {
			return nil, err
		}
		return StopTimerResponse{
			Entry: *recorded,
			Timer: timerResponse(sess.Timer.Snapshot()),
		}, nil
	case "get_timer":
		sess, err := h.sessions.Open(tenantID, userID)
		if err != nil {
			return nil, err
		}
		return timerResponse(sess.Timer.Snapshot()), nil
	case "add_entry":
		var req AddEntryParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		addReq, err := req.toRequest(userID)
		if err != nil {
			return nil, err
		}
		return h.ledger.Add(ctx, tenantID, addReq)
	case "update_entry":
		var req UpdateEntryParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		updateReq, err := req.toRequest()
		if err != nil {
			return nil, err
		}
		return h.ledger.Update(ctx, tenantID, updateReq)
	case "delete_entry":
		var req EntryIDParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		if err := h.ledger.Delete(ctx, tenantID, req.ID); err != nil {
			return nil, err
		}
		return DeleteEntryResponse{ID: req.ID, Deleted: true}, nil
	case "get_entry":
		var req EntryIDParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.ledger.Get(ctx, tenantID, req.ID)
	case "set_week":
		var req SetWeekParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		date, err := parseDate("date", req.Date)
		if err != nil {
			return nil, err
		}
		sess, err := h.sessions.Open(tenantID, userID)
		if err != nil {
			return nil, err
		}
		sess.SetWeek(date)
		return weekResponse(sess.Cursor()), nil
	case "next_week", "previous_week", "get_week":
		sess, err := h.sessions.Open(tenantID, userID)
		if err != nil {
			return nil, err
		}
		switch method {
		case "next_week":
			sess.NextWeek()
		case "previous_week":
			sess.PreviousWeek()
		}
		return weekResponse(sess.Cursor()), nil
	case "week_entries":
		var req WeekQueryParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		sess, err := h.sessions.Open(tenantID, userID)
		if err != nil {
			return nil, err
		}
		sheet, err := aggregate.WeekSheet(ctx, h.ledger, tenantID, sess.Cursor(), req.UserID)
		if err != nil {
			return nil, err
		}
		return TimesheetResponse{
			WeekStart:     week.FormatDate(sheet.WeekStart),
			WeekEnd:       week.FormatDate(sheet.WeekEnd),
			Entries:       sheet.Entries,
			TotalDuration: sheet.TotalDuration,
			TotalHours:    aggregate.FormatHours(sheet.TotalDuration),
		}, nil
	case "day_entries":
		var req DayEntriesParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		date := time.Now()
		if req.Date != "" {
			parsed, err := parseDate("date", req.Date)
			if err != nil {
				return nil, err
			}
			date = parsed
		}
		sheet, err := aggregate.DaySheet(ctx, h.ledger, tenantID, date, req.UserID)
		if err != nil {
			return nil, err
		}
		return DaySheetResponse{
			Date:          week.FormatDate(sheet.Date),
			Entries:       sheet.Entries,
			TotalDuration: sheet.TotalDuration,
			TotalHours:    aggregate.FormatHours(sheet.TotalDuration),
		}, nil
	case "project_time_by_person":
		var req ProjectTimeParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		sess, names, err := h.sessionAndNames(ctx, tenantID, userID)
		if err != nil {
			return nil, err
		}
		cursor := sess.Cursor()
		buckets, err := aggregate.ProjectTimeByPerson(ctx, h.ledger, tenantID, cursor, req.ProjectID, names)
		if err != nil {
			return nil, err
		}
		return ProjectTimeResponse{
			WeekStart: week.FormatDate(cursor.WeekStart()),
			Buckets:   buckets,
			Team:      aggregate.BuildTeamReport(buckets),
		}, nil
	case "task_time_summary":
		var req WeekQueryParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		sess, names, err := h.sessionAndNames(ctx, tenantID, userID)
		if err != nil {
			return nil, err
		}
		cursor := sess.Cursor()
		tasks, err := aggregate.TaskTimeSummary(ctx, h.ledger, tenantID, cursor, req.UserID, names)
		if err != nil {
			return nil, err
		}
		var total int64
		for _, task := range tasks {
			total += task.TotalDuration
		}
		return TaskSummaryResponse{
			WeekStart: week.FormatDate(cursor.WeekStart()),
			Tasks:     tasks,
			Total:     total,
		}, nil
	case "timesheet":
		var req WeekQueryParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		sess, names, err := h.sessionAndNames(ctx, tenantID, userID)
		if err != nil {
			return nil, err
		}
		cursor := sess.Cursor()
		entries, err := aggregate.WeekEntries(ctx, h.ledger, tenantID, cursor, req.UserID)
		if err != nil {
			return nil, err
		}
		return aggregate.BuildGrid(entries, cursor, names), nil
	case "create_project":
		var req CreateProjectParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.directory.CreateProject(ctx, tenantID, directory.CreateProjectRequest{
			ID:          req.ID,
			Name:        req.Name,
			Description: req.Description,
		})
	case "create_task":
		var req CreateTaskParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.directory.CreateTask(ctx, tenantID, directory.CreateTaskRequest{
			ID:        req.ID,
			ProjectID: req.ProjectID,
			Title:     req.Title,
		})
	case "create_user":
		var req CreateUserParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.directory.CreateUser(ctx, tenantID, directory.CreateUserRequest{
			ID:          req.ID,
			DisplayName: req.DisplayName,
			Email:       req.Email,
		})
	case "get_recent_activity":
		var req GetRecentActivityParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		opts := activity.ListActivityOptions{
			UserID:  req.UserID,
			EntryID: req.EntryID,
			TaskID:  req.TaskID,
			Limit:   req.Limit,
			Offset:  req.Offset,
		}
		if req.Type != "" {
			activityType := activity.ActivityType(req.Type)
			opts.ActivityType = &activityType
		}
		entries, err := h.activity.GetRecentActivity(ctx, tenantID, opts)
		if err != nil {
			return nil, err
		}
		resp := make([]ActivityEntryResponse, 0, len(entries))
		for _, e := range entries {
			resp = append(resp, ActivityEntryResponse{
				Timestamp: e.CreatedAt,
				Type:      string(e.ActivityType),
				UserID:    e.UserID,
				EntryID:   e.EntryID,
				TaskID:    e.TaskID,
				Summary:   e.Summary,
				Details:   e.Details,
			})
		}
		return resp, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, method)
	}
}

func (h *Handler) sessionAndNames(ctx context.Context, tenantID, userID string) (*session.Session, *directory.Names, error) {
	sess, err := h.sessions.Open(tenantID, userID)
	if err != nil {
		return nil, nil, err
	}
	names, err := h.directory.Names(ctx, tenantID)
	if err != nil {
		return nil, nil, err
	}
	return sess, names, nil
}

func (p AddEntryParams) toRequest(defaultUser string) (entry.AddRequest, error) {
	req := entry.AddRequest{
		TaskID:      p.TaskID,
		ProjectID:   p.ProjectID,
		UserID:      p.UserID,
		Duration:    p.Duration,
		Description: p.Description,
		IsManual:    true,
	}
	if req.UserID == "" {
		req.UserID = defaultUser
	}

	var err error
	if p.Date != "" {
		if req.Date, err = parseDate("date", p.Date); err != nil {
			return entry.AddRequest{}, err
		}
	}
	if p.StartTime != "" {
		if req.StartTime, err = parseTimestamp("start_time", p.StartTime); err != nil {
			return entry.AddRequest{}, err
		}
	}
	if p.EndTime != "" {
		end, err := parseTimestamp("end_time", p.EndTime)
		if err != nil {
			return entry.AddRequest{}, err
		}
		req.EndTime = &end
	}
	return req, nil
}

func (p UpdateEntryParams) toRequest() (entry.UpdateRequest, error) {
	req := entry.UpdateRequest{
		ID:          p.ID,
		TaskID:      p.TaskID,
		ProjectID:   p.ProjectID,
		UserID:      p.UserID,
		Duration:    p.Duration,
		Description: p.Description,
	}
	if p.Date != nil {
		date, err := parseDate("date", *p.Date)
		if err != nil {
			return entry.UpdateRequest{}, err
		}
		req.Date = &date
	}
	if p.StartTime != nil {
		start, err := parseTimestamp("start_time", *p.StartTime)
		if err != nil {
			return entry.UpdateRequest{}, err
		}
		req.StartTime = &start
	}
	if p.EndTime != nil {
		end, err := parseTimestamp("end_time", *p.EndTime)
		if err != nil {
			return entry.UpdateRequest{}, err
		}
		req.EndTime = &end
	}
	return req, nil
}

func timerResponse(snap timer.Session) TimerResponse {
	return TimerResponse{
		Session: snap,
		Elapsed: aggregate.FormatDuration(snap.ElapsedSeconds),
	}
}

func weekResponse(cursor *week.Cursor) WeekResponse {
	start, end := cursor.CurrentWeekRange()
	days := cursor.Days()
	resp := WeekResponse{
		WeekStart: week.FormatDate(start),
		WeekEnd:   week.FormatDate(end),
		Days:      make([]string, 0, len(days)),
	}
	for _, d := range days {
		resp.Days = append(resp.Days, week.FormatDate(d))
	}
	return resp
}

func decodeParams(params json.RawMessage, out any) error {
	if len(params) == 0 || string(params) == "null" {
		return nil
	}
	if err := json.Unmarshal(params, out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	return nil
}

func parseDate(field, value string) (time.Time, error) {
	date, err := week.ParseDate(strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be YYYY-MM-DD", ErrInvalidParams, field)
	}
	return date, nil
}

func parseTimestamp(field, value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be an RFC 3339 timestamp", ErrInvalidParams, field)
	}
	return t, nil
}
