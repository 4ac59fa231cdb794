package entry_test

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/timeledger/internal/domain/activity"
	"github.com/rpggio/timeledger/internal/domain/entry"
	"github.com/rpggio/timeledger/internal/repository"
	"github.com/rpggio/timeledger/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, time.March, 14, 17, 0, 0, 0, time.UTC)

func newLedger(entries *mocks.EntryRepository, projects *mocks.ProjectResolver, activities *mocks.ActivityRepository) *entry.Service {
	var resolver entry.ProjectResolver
	if projects != nil {
		resolver = projects
	}
	var activityRepo entry.ActivityRepository
	if activities != nil {
		activityRepo = activities
	}
	svc := entry.NewService(entries, resolver, activityRepo, nil)
	svc.SetClock(func() time.Time { return fixedNow })
	return svc
}

func int64Ptr(v int64) *int64 { return &v }

func stringPtr(v string) *string { return &v }

func TestLedger_Add_ResolvesProjectFromTask(t *testing.T) {
	ctx := context.Background()
	tenantID := "tenant1"

	entries := &mocks.EntryRepository{}
	projects := &mocks.ProjectResolver{}
	activities := &mocks.ActivityRepository{}

	projects.On("ResolveProject", ctx, tenantID, "task-1").Return("project-1", nil)
	entries.On("Create", ctx, tenantID, mock.AnythingOfType("*entry.TimeEntry")).Return(nil)
	activities.On("Log", ctx, tenantID, mock.MatchedBy(func(a *activity.ActivityEntry) bool {
		return a.ActivityType == activity.TypeEntryCreated && a.UserID == "u1"
	})).Return(nil)

	svc := newLedger(entries, projects, activities)
	start := time.Date(2024, time.March, 12, 10, 0, 0, 0, time.UTC)
	e, err := svc.Add(ctx, tenantID, entry.AddRequest{
		TaskID:    "task-1",
		UserID:    "u1",
		StartTime: start,
		Duration:  int64Ptr(1800),
		IsManual:  true,
	})
	require.NoError(t, err)
	require.NotEmpty(t, e.ID)
	require.Equal(t, "project-1", e.ProjectID)
	require.Equal(t, time.Date(2024, time.March, 12, 0, 0, 0, 0, time.UTC), e.Date)
	require.Equal(t, int64(1800), e.Duration)
	require.NotNil(t, e.EndTime)
	require.Equal(t, start.Add(30*time.Minute), *e.EndTime)
	require.Equal(t, fixedNow, e.CreatedAt)
	require.Equal(t, fixedNow, e.UpdatedAt)
	entries.AssertExpectations(t)
	activities.AssertExpectations(t)
}

func TestLedger_Add_ComputesDurationFromEndTime(t *testing.T) {
	ctx := context.Background()
	entries := &mocks.EntryRepository{}
	entries.On("Create", ctx, "tenant1", mock.Anything).Return(nil)

	svc := newLedger(entries, nil, nil)
	start := time.Date(2024, time.March, 12, 10, 0, 0, 0, time.UTC)
	end := start.Add(90 * time.Minute)
	e, err := svc.Add(ctx, "tenant1", entry.AddRequest{
		ProjectID: "p1",
		UserID:    "u1",
		StartTime: start,
		EndTime:   &end,
	})
	require.NoError(t, err)
	require.Equal(t, int64(5400), e.Duration)
	require.Empty(t, e.TaskID)
}

func TestLedger_Add_ManualDefaultsToNineAM(t *testing.T) {
	ctx := context.Background()
	entries := &mocks.EntryRepository{}
	entries.On("Create", ctx, "tenant1", mock.Anything).Return(nil)

	svc := newLedger(entries, nil, nil)
	day := time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)
	e, err := svc.Add(ctx, "tenant1", entry.AddRequest{
		ProjectID: "p1",
		UserID:    "u1",
		Date:      day,
		Duration:  int64Ptr(3600),
		IsManual:  true,
	})
	require.NoError(t, err)
	require.Equal(t, day, e.Date)
	require.Equal(t, day.Add(9*time.Hour), e.StartTime)
	require.Equal(t, day.Add(10*time.Hour), *e.EndTime)
}

func TestLedger_Add_BackdatedAttribution(t *testing.T) {
	ctx := context.Background()
	entries := &mocks.EntryRepository{}
	entries.On("Create", ctx, "tenant1", mock.Anything).Return(nil)

	svc := newLedger(entries, nil, nil)
	day := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	start := time.Date(2024, time.March, 14, 9, 0, 0, 0, time.UTC)
	e, err := svc.Add(ctx, "tenant1", entry.AddRequest{
		ProjectID: "p1",
		UserID:    "u1",
		Date:      day,
		StartTime: start,
		Duration:  int64Ptr(60),
	})
	require.NoError(t, err)
	require.Equal(t, day, e.Date)
	require.Equal(t, start, e.StartTime)
}

func TestLedger_Add_NegativeDurationRejected(t *testing.T) {
	entries := &mocks.EntryRepository{}
	svc := newLedger(entries, nil, nil)

	_, err := svc.Add(context.Background(), "tenant1", entry.AddRequest{
		TaskID:   "task-1",
		UserID:   "u1",
		Date:     fixedNow,
		Duration: int64Ptr(-5),
		IsManual: true,
	})
	require.ErrorIs(t, err, entry.ErrInvalidInput)
	entries.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestLedger_Add_MissingIdentifiers(t *testing.T) {
	svc := newLedger(&mocks.EntryRepository{}, nil, nil)
	ctx := context.Background()

	cases := map[string]entry.AddRequest{
		"no task or project": {UserID: "u1", Date: fixedNow, Duration: int64Ptr(10)},
		"no user":            {TaskID: "task-1", Date: fixedNow, Duration: int64Ptr(10)},
		"no date or start":   {TaskID: "task-1", UserID: "u1", Duration: int64Ptr(10)},
		"no duration or end": {TaskID: "task-1", UserID: "u1", StartTime: fixedNow},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Add(ctx, "tenant1", req)
			require.ErrorIs(t, err, entry.ErrInvalidInput)
		})
	}
}

func TestLedger_Add_EndBeforeStartRejected(t *testing.T) {
	svc := newLedger(&mocks.EntryRepository{}, nil, nil)
	end := fixedNow.Add(-time.Hour)

	_, err := svc.Add(context.Background(), "tenant1", entry.AddRequest{
		TaskID:    "task-1",
		UserID:    "u1",
		StartTime: fixedNow,
		EndTime:   &end,
	})
	require.ErrorIs(t, err, entry.ErrInvalidInput)
}

func TestLedger_Update_NotFound(t *testing.T) {
	ctx := context.Background()
	entries := &mocks.EntryRepository{}
	entries.On("Get", ctx, "tenant1", "nonexistent").Return((*entry.TimeEntry)(nil), repository.ErrNotFound)

	svc := newLedger(entries, nil, nil)
	_, err := svc.Update(ctx, "tenant1", entry.UpdateRequest{
		ID:       "nonexistent",
		Duration: int64Ptr(100),
	})
	require.ErrorIs(t, err, entry.ErrEntryNotFound)
	entries.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestLedger_Update_MergesAndKeepsIdentity(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2024, time.March, 11, 8, 0, 0, 0, time.UTC)
	current := &entry.TimeEntry{
		ID:          "e1",
		TenantID:    "tenant1",
		TaskID:      "task-1",
		UserID:      "u1",
		ProjectID:   "p1",
		Date:        time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC),
		StartTime:   created,
		Duration:    600,
		Description: "before",
		CreatedAt:   created,
		UpdatedAt:   created,
	}

	entries := &mocks.EntryRepository{}
	entries.On("Get", ctx, "tenant1", "e1").Return(current, nil)
	entries.On("Update", ctx, "tenant1", mock.AnythingOfType("*entry.TimeEntry")).Return(nil)

	svc := newLedger(entries, nil, nil)
	updated, err := svc.Update(ctx, "tenant1", entry.UpdateRequest{
		ID:          "e1",
		Duration:    int64Ptr(1200),
		Description: stringPtr("after"),
	})
	require.NoError(t, err)
	require.Equal(t, "e1", updated.ID)
	require.Equal(t, created, updated.CreatedAt)
	require.Equal(t, fixedNow, updated.UpdatedAt)
	require.Equal(t, int64(1200), updated.Duration)
	require.Equal(t, "after", updated.Description)
	require.Equal(t, "task-1", updated.TaskID)
	require.Equal(t, "before", current.Description, "stored entry must not be mutated in place")
}

func TestLedger_Update_TaskChangeResolvesProject(t *testing.T) {
	ctx := context.Background()
	current := &entry.TimeEntry{
		ID: "e1", TaskID: "task-1", UserID: "u1", ProjectID: "p1",
		Date: fixedNow, StartTime: fixedNow, Duration: 60,
	}

	entries := &mocks.EntryRepository{}
	projects := &mocks.ProjectResolver{}
	entries.On("Get", ctx, "tenant1", "e1").Return(current, nil)
	entries.On("Update", ctx, "tenant1", mock.Anything).Return(nil)
	projects.On("ResolveProject", ctx, "tenant1", "task-2").Return("p2", nil)

	svc := newLedger(entries, projects, nil)
	updated, err := svc.Update(ctx, "tenant1", entry.UpdateRequest{ID: "e1", TaskID: stringPtr("task-2")})
	require.NoError(t, err)
	require.Equal(t, "p2", updated.ProjectID)
}

func TestLedger_Update_NegativeDurationRejected(t *testing.T) {
	ctx := context.Background()
	entries := &mocks.EntryRepository{}
	entries.On("Get", ctx, "tenant1", "e1").Return(&entry.TimeEntry{
		ID: "e1", TaskID: "task-1", UserID: "u1", Date: fixedNow, Duration: 60,
	}, nil)

	svc := newLedger(entries, nil, nil)
	_, err := svc.Update(ctx, "tenant1", entry.UpdateRequest{ID: "e1", Duration: int64Ptr(-1)})
	require.ErrorIs(t, err, entry.ErrInvalidInput)
	entries.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestLedger_Delete(t *testing.T) {
	ctx := context.Background()
	entries := &mocks.EntryRepository{}
	activities := &mocks.ActivityRepository{}
	entries.On("Get", ctx, "tenant1", "e1").Return(&entry.TimeEntry{ID: "e1", UserID: "u1"}, nil)
	entries.On("Delete", ctx, "tenant1", "e1").Return(nil)
	entries.On("Get", ctx, "tenant1", "missing").Return((*entry.TimeEntry)(nil), repository.ErrNotFound)
	activities.On("Log", ctx, "tenant1", mock.MatchedBy(func(a *activity.ActivityEntry) bool {
		return a.ActivityType == activity.TypeEntryDeleted
	})).Return(nil)

	svc := newLedger(entries, nil, activities)
	require.NoError(t, svc.Delete(ctx, "tenant1", "e1"))
	require.ErrorIs(t, svc.Delete(ctx, "tenant1", "missing"), entry.ErrEntryNotFound)
	activities.AssertExpectations(t)
}

func TestLedger_QueryByWindow_NormalizesDays(t *testing.T) {
	ctx := context.Background()
	entries := &mocks.EntryRepository{}
	opts := entry.ListEntriesOptions{
		From:   time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC),
		To:     time.Date(2024, time.March, 17, 0, 0, 0, 0, time.UTC),
		UserID: "u1",
	}
	entries.On("List", ctx, "tenant1", opts).Return([]entry.TimeEntry{{ID: "e1"}}, nil)

	svc := newLedger(entries, nil, nil)
	result, err := svc.QueryByWindow(ctx, "tenant1",
		time.Date(2024, time.March, 11, 13, 0, 0, 0, time.UTC),
		time.Date(2024, time.March, 17, 23, 59, 0, 0, time.UTC),
		"u1")
	require.NoError(t, err)
	require.Len(t, result, 1)
}

func TestLedger_QueryByWindow_ReversedIsEmpty(t *testing.T) {
	entries := &mocks.EntryRepository{}
	svc := newLedger(entries, nil, nil)

	result, err := svc.QueryByWindow(context.Background(), "tenant1", fixedNow, fixedNow.AddDate(0, 0, -1), "")
	require.NoError(t, err)
	require.Empty(t, result)
	entries.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
}

func TestLedger_QueryByDay(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2024, time.March, 14, 0, 0, 0, 0, time.UTC)
	entries := &mocks.EntryRepository{}
	entries.On("List", ctx, "tenant1", entry.ListEntriesOptions{From: day, To: day}).Return(nil, nil)

	svc := newLedger(entries, nil, nil)
	result, err := svc.QueryByDay(ctx, "tenant1", fixedNow, "")
	require.NoError(t, err)
	require.NotNil(t, result)
	require.Empty(t, result)
}
