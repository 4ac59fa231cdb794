package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/timeledger/internal/domain/aggregate"
	"github.com/rpggio/timeledger/internal/domain/directory"
	"github.com/rpggio/timeledger/internal/domain/entry"
	"github.com/rpggio/timeledger/internal/domain/timer"
	"github.com/rpggio/timeledger/internal/domain/week"
	"github.com/stretchr/testify/require"
)

func newLedger(t *testing.T) (*entry.Service, *directory.Service) {
	t.Helper()
	db := NewTestDB(t)
	dirSvc := directory.NewService(NewDirectoryRepository(db), nil)
	ledger := entry.NewService(NewEntryRepository(db), dirSvc, NewActivityRepository(db), nil)
	return ledger, dirSvc
}

func TestLedger_ManualEntryResolvesProject(t *testing.T) {
	ctx := context.Background()
	ledger, dirSvc := newLedger(t)

	proj, err := dirSvc.CreateProject(ctx, "tenant1", directory.CreateProjectRequest{Name: "LogicFlow Rebuild"})
	require.NoError(t, err)
	task, err := dirSvc.CreateTask(ctx, "tenant1", directory.CreateTaskRequest{ProjectID: proj.ID, Title: "Design homepage"})
	require.NoError(t, err)

	duration := int64(5400)
	e, err := ledger.Add(ctx, "tenant1", entry.AddRequest{
		TaskID:   task.ID,
		UserID:   "u1",
		Date:     day(2024, 3, 1),
		Duration: &duration,
		IsManual: true,
	})
	require.NoError(t, err)
	require.Equal(t, proj.ID, e.ProjectID)

	stored, err := ledger.Get(ctx, "tenant1", e.ID)
	require.NoError(t, err)
	require.Equal(t, proj.ID, stored.ProjectID)
	require.Equal(t, 9, stored.StartTime.UTC().Hour())
}

func TestLedger_NegativeDurationLeavesLedgerUnchanged(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newLedger(t)

	negative := int64(-5)
	_, err := ledger.Add(ctx, "tenant1", entry.AddRequest{
		TaskID:   "t1",
		UserID:   "u1",
		Date:     day(2024, 3, 4),
		Duration: &negative,
		IsManual: true,
	})
	require.ErrorIs(t, err, entry.ErrInvalidInput)

	all, err := ledger.List(ctx, "tenant1", entry.ListEntriesOptions{})
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestLedger_UpdateUnknownLeavesLedgerUnchanged(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newLedger(t)

	duration := int64(60)
	_, err := ledger.Add(ctx, "tenant1", entry.AddRequest{TaskID: "t1", UserID: "u1", Date: day(2024, 3, 4), Duration: &duration})
	require.NoError(t, err)

	newDuration := int64(999)
	_, err = ledger.Update(ctx, "tenant1", entry.UpdateRequest{ID: "nonexistent", Duration: &newDuration})
	require.ErrorIs(t, err, entry.ErrEntryNotFound)

	all, err := ledger.List(ctx, "tenant1", entry.ListEntriesOptions{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, int64(60), all[0].Duration)

	require.ErrorIs(t, ledger.Delete(ctx, "tenant1", "nonexistent"), entry.ErrEntryNotFound)
}

func TestLedger_WeekWindowExcludesNeighbours(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newLedger(t)

	monday := day(2024, 3, 4)
	duration := int64(100)
	for offset := -1; offset <= 7; offset++ {
		_, err := ledger.Add(ctx, "tenant1", entry.AddRequest{
			TaskID:   "t1",
			UserID:   "u1",
			Date:     monday.AddDate(0, 0, offset),
			Duration: &duration,
		})
		require.NoError(t, err)
	}

	cursor := week.NewCursor(monday.AddDate(0, 0, 3))
	entries, err := aggregate.WeekEntries(ctx, ledger, "tenant1", cursor, "")
	require.NoError(t, err)
	require.Len(t, entries, 7)
	require.Equal(t, monday, entries[0].Date)
	require.Equal(t, monday.AddDate(0, 0, 6), entries[6].Date)

	dayEntries, err := aggregate.DayEntries(ctx, ledger, "tenant1", monday.Add(17*time.Hour), "")
	require.NoError(t, err)
	require.Len(t, dayEntries, 1)
}

func TestLedger_TimerStopWritesEntry(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newLedger(t)

	engine := timer.NewEngine("tenant1", "u1", ledger, nil, nil, nil)
	require.NoError(t, engine.Start(ctx, "t1"))
	for i := 0; i < 42; i++ {
		engine.Tick()
	}
	recorded, err := engine.Stop(ctx)
	require.NoError(t, err)

	stored, err := ledger.Get(ctx, "tenant1", recorded.ID)
	require.NoError(t, err)
	require.Equal(t, int64(42), stored.Duration)
	require.Equal(t, "t1", stored.TaskID)
	require.False(t, stored.IsManual)
	require.NotNil(t, stored.EndTime)
}
