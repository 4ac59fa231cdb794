package entry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/timeledger/internal/domain/activity"
	"github.com/rpggio/timeledger/internal/domain/week"
	"github.com/rpggio/timeledger/internal/repository"
)

// defaultStartHour is the time of day given to manual entries that only carry
// an attribution day.
const defaultStartHour = 9

// Service is the time ledger: it validates, stores and queries time entries.
type Service struct {
	entries    EntryRepository
	projects   ProjectResolver
	activities ActivityRepository
	now        func() time.Time
	logger     *slog.Logger
}

// NewService creates a new ledger service.
func NewService(
	entries EntryRepository,
	projects ProjectResolver,
	activities ActivityRepository,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		entries:    entries,
		projects:   projects,
		activities: activities,
		now:        time.Now,
		logger:     logger,
	}
}

// SetClock replaces the wall clock used for CreatedAt/UpdatedAt.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// AddRequest describes a new time entry. Duration is taken as given when set,
// otherwise computed from EndTime-StartTime.
type AddRequest struct {
	TaskID      string
	UserID      string
	ProjectID   string
	Date        time.Time
	StartTime   time.Time
	EndTime     *time.Time
	Duration    *int64
	Description string
	IsManual    bool
}

// UpdateRequest describes a partial entry update; nil fields are left as-is.
type UpdateRequest struct {
	ID          string
	TaskID      *string
	UserID      *string
	ProjectID   *string
	Date        *time.Time
	StartTime   *time.Time
	EndTime     *time.Time
	Duration    *int64
	Description *string
	IsManual    *bool
}

// Add validates and appends a new entry to the ledger.
func (s *Service) Add(ctx context.Context, tenantID string, req AddRequest) (*TimeEntry, error) {
	if err := ValidateAddInput(req); err != nil {
		return nil, err
	}

	projectID := req.ProjectID
	if projectID == "" {
		resolved, err := s.resolveProject(ctx, tenantID, req.TaskID)
		if err != nil {
			return nil, err
		}
		projectID = resolved
	}

	date := req.Date
	if date.IsZero() {
		date = req.StartTime
	}
	date = week.DayOf(date)

	start := req.StartTime
	if start.IsZero() {
		start = date.Add(defaultStartHour * time.Hour)
	}

	var duration int64
	if req.Duration != nil {
		duration = *req.Duration
	} else {
		duration = int64(req.EndTime.Sub(start) / time.Second)
	}

	end := req.EndTime
	if end == nil {
		computed := start.Add(time.Duration(duration) * time.Second)
		end = &computed
	}

	now := s.now()
	e := &TimeEntry{
		ID:          uuid.NewString(),
		TenantID:    tenantID,
		TaskID:      req.TaskID,
		UserID:      req.UserID,
		ProjectID:   projectID,
		Date:        date,
		StartTime:   start,
		EndTime:     end,
		Duration:    duration,
		Description: req.Description,
		IsManual:    req.IsManual,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.entries.Create(ctx, tenantID, e); err != nil {
		return nil, fmt.Errorf("creating entry: %w", err)
	}

	s.logger.Debug("time entry added", "tenant_id", tenantID, "entry_id", e.ID, "user_id", e.UserID, "duration", e.Duration, "manual", e.IsManual)
	s.logActivity(ctx, tenantID, e, activity.TypeEntryCreated, fmt.Sprintf("added %ds to %s", e.Duration, e.Date.Format(week.DateLayout)))

	return e, nil
}

// Update merges the non-nil fields of req into an existing entry. ID and
// CreatedAt never change; UpdatedAt is always refreshed.
func (s *Service) Update(ctx context.Context, tenantID string, req UpdateRequest) (*TimeEntry, error) {
	if req.ID == "" {
		return nil, ErrEntryNotFound
	}

	current, err := s.Get(ctx, tenantID, req.ID)
	if err != nil {
		return nil, err
	}

	updated := *current
	if req.TaskID != nil {
		updated.TaskID = *req.TaskID
		if req.ProjectID == nil && updated.TaskID != "" {
			resolved, err := s.resolveProject(ctx, tenantID, updated.TaskID)
			if err != nil {
				return nil, err
			}
			if resolved != "" {
				updated.ProjectID = resolved
			}
		}
	}
	if req.UserID != nil {
		updated.UserID = *req.UserID
	}
	if req.ProjectID != nil {
		updated.ProjectID = *req.ProjectID
	}
	if req.Date != nil {
		updated.Date = week.DayOf(*req.Date)
	}
	if req.StartTime != nil {
		updated.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		end := *req.EndTime
		updated.EndTime = &end
	}
	if req.Duration != nil {
		updated.Duration = *req.Duration
	}
	if req.Description != nil {
		updated.Description = *req.Description
	}
	if req.IsManual != nil {
		updated.IsManual = *req.IsManual
	}

	if err := ValidateEntry(&updated); err != nil {
		return nil, err
	}

	updated.ID = current.ID
	updated.CreatedAt = current.CreatedAt
	updated.UpdatedAt = s.now()

	if err := s.entries.Update(ctx, tenantID, &updated); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("updating entry: %w", err)
	}

	s.logActivity(ctx, tenantID, &updated, activity.TypeEntryUpdated, fmt.Sprintf("updated entry %s", updated.ID))

	return &updated, nil
}

// Delete removes an entry. Deleting an unknown ID fails with ErrEntryNotFound.
func (s *Service) Delete(ctx context.Context, tenantID, id string) error {
	current, err := s.Get(ctx, tenantID, id)
	if err != nil {
		return err
	}

	if err := s.entries.Delete(ctx, tenantID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrEntryNotFound
		}
		return fmt.Errorf("deleting entry: %w", err)
	}

	s.logActivity(ctx, tenantID, current, activity.TypeEntryDeleted, fmt.Sprintf("deleted entry %s", id))
	return nil
}

// Get returns an entry by ID.
func (s *Service) Get(ctx context.Context, tenantID, id string) (*TimeEntry, error) {
	e, err := s.entries.Get(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("getting entry: %w", err)
	}
	return e, nil
}

// QueryByWindow returns entries attributed to a day in [start, end], in
// insertion order. An empty userID matches every user.
func (s *Service) QueryByWindow(ctx context.Context, tenantID string, start, end time.Time, userID string) ([]TimeEntry, error) {
	from, to := week.DayOf(start), week.DayOf(end)
	if to.Before(from) {
		return []TimeEntry{}, nil
	}
	return s.List(ctx, tenantID, ListEntriesOptions{From: from, To: to, UserID: userID})
}

// QueryByDay returns entries attributed to the calendar day of date.
func (s *Service) QueryByDay(ctx context.Context, tenantID string, date time.Time, userID string) ([]TimeEntry, error) {
	return s.QueryByWindow(ctx, tenantID, date, date, userID)
}

// List returns entries matching opts.
func (s *Service) List(ctx context.Context, tenantID string, opts ListEntriesOptions) ([]TimeEntry, error) {
	entries, err := s.entries.List(ctx, tenantID, opts)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	if entries == nil {
		entries = []TimeEntry{}
	}
	return entries, nil
}

func (s *Service) resolveProject(ctx context.Context, tenantID, taskID string) (string, error) {
	if s.projects == nil || taskID == "" {
		return "", nil
	}
	projectID, err := s.projects.ResolveProject(ctx, tenantID, taskID)
	if err != nil {
		return "", fmt.Errorf("resolving project for task %s: %w", taskID, err)
	}
	return projectID, nil
}

func (s *Service) logActivity(ctx context.Context, tenantID string, e *TimeEntry, activityType activity.ActivityType, summary string) {
	if s.activities == nil {
		return
	}
	entryID := e.ID
	var taskID *string
	if e.TaskID != "" {
		id := e.TaskID
		taskID = &id
	}
	if err := s.activities.Log(ctx, tenantID, &activity.ActivityEntry{
		UserID:       e.UserID,
		EntryID:      &entryID,
		TaskID:       taskID,
		ActivityType: activityType,
		Summary:      summary,
	}); err != nil {
		s.logger.Warn("failed to log activity", "type", activityType, "entry_id", e.ID, "error", err)
	}
}
