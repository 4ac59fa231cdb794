package sqlite

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rpggio/timeledger/internal/domain/entry"
	"github.com/rpggio/timeledger/internal/repository"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTestEntry(id, userID string, date time.Time, duration int64) *entry.TimeEntry {
	start := date.Add(9 * time.Hour)
	end := start.Add(time.Duration(duration) * time.Second)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return &entry.TimeEntry{
		ID:        id,
		TaskID:    "t1",
		UserID:    userID,
		ProjectID: "p1",
		Date:      date,
		StartTime: start,
		EndTime:   &end,
		Duration:  duration,
		IsManual:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestEntryRepository_CreateGet(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewEntryRepository(db)

	e := newTestEntry("e1", "u1", day(2024, 3, 4), 5400)
	e.Description = "Homepage layout"
	require.NoError(t, repo.Create(ctx, "tenant1", e))

	got, err := repo.Get(ctx, "tenant1", "e1")
	require.NoError(t, err)
	require.Equal(t, "e1", got.ID)
	require.Equal(t, "tenant1", got.TenantID)
	require.Equal(t, "t1", got.TaskID)
	require.Equal(t, "p1", got.ProjectID)
	require.Equal(t, day(2024, 3, 4), got.Date)
	require.True(t, got.StartTime.Equal(e.StartTime))
	require.NotNil(t, got.EndTime)
	require.True(t, got.EndTime.Equal(*e.EndTime))
	require.Equal(t, int64(5400), got.Duration)
	require.Equal(t, "Homepage layout", got.Description)
	require.True(t, got.IsManual)

	_, err = repo.Get(ctx, "tenant2", "e1")
	require.ErrorIs(t, err, repository.ErrNotFound)

	require.ErrorIs(t, repo.Create(ctx, "tenant1", newTestEntry("e1", "u1", day(2024, 3, 4), 1)), repository.ErrConflict)
}

func TestEntryRepository_NilEndTime(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewEntryRepository(db)

	e := newTestEntry("e1", "u1", day(2024, 3, 4), 0)
	e.EndTime = nil
	require.NoError(t, repo.Create(ctx, "tenant1", e))

	got, err := repo.Get(ctx, "tenant1", "e1")
	require.NoError(t, err)
	require.Nil(t, got.EndTime)
}

func TestEntryRepository_UpdateDelete(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewEntryRepository(db)

	e := newTestEntry("e1", "u1", day(2024, 3, 4), 60)
	require.NoError(t, repo.Create(ctx, "tenant1", e))

	e.Duration = 120
	e.Date = day(2024, 3, 1)
	e.UpdatedAt = e.UpdatedAt.Add(time.Hour)
	require.NoError(t, repo.Update(ctx, "tenant1", e))

	got, err := repo.Get(ctx, "tenant1", "e1")
	require.NoError(t, err)
	require.Equal(t, int64(120), got.Duration)
	require.Equal(t, day(2024, 3, 1), got.Date)
	require.True(t, got.CreatedAt.Equal(e.CreatedAt))
	require.True(t, got.UpdatedAt.Equal(e.UpdatedAt))

	missing := newTestEntry("ghost", "u1", day(2024, 3, 4), 1)
	require.ErrorIs(t, repo.Update(ctx, "tenant1", missing), repository.ErrNotFound)

	require.NoError(t, repo.Delete(ctx, "tenant1", "e1"))
	require.ErrorIs(t, repo.Delete(ctx, "tenant1", "e1"), repository.ErrNotFound)
	_, err = repo.Get(ctx, "tenant1", "e1")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestEntryRepository_ListWindow(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewEntryRepository(db)

	monday := day(2024, 3, 4)
	require.NoError(t, repo.Create(ctx, "tenant1", newTestEntry("before", "u1", monday.AddDate(0, 0, -1), 1)))
	for i := 6; i >= 0; i-- {
		id := fmt.Sprintf("in-%d", i)
		require.NoError(t, repo.Create(ctx, "tenant1", newTestEntry(id, "u1", monday.AddDate(0, 0, i), 10)))
	}
	require.NoError(t, repo.Create(ctx, "tenant1", newTestEntry("after", "u1", monday.AddDate(0, 0, 7), 1)))

	entries, err := repo.List(ctx, "tenant1", entry.ListEntriesOptions{From: monday, To: monday.AddDate(0, 0, 6)})
	require.NoError(t, err)
	require.Len(t, entries, 7)
	for i, e := range entries {
		require.Equal(t, fmt.Sprintf("in-%d", 6-i), e.ID, "insertion order")
	}

	all, err := repo.List(ctx, "tenant1", entry.ListEntriesOptions{})
	require.NoError(t, err)
	require.Len(t, all, 9)
	require.Equal(t, "before", all[0].ID)
	require.Equal(t, "after", all[8].ID)
}

func TestEntryRepository_ListFilters(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewEntryRepository(db)

	e1 := newTestEntry("e1", "u1", day(2024, 3, 4), 10)
	e2 := newTestEntry("e2", "u2", day(2024, 3, 4), 20)
	e2.ProjectID = "p2"
	e2.TaskID = "t2"
	e3 := newTestEntry("e3", "u1", day(2024, 3, 5), 30)
	for _, e := range []*entry.TimeEntry{e1, e2, e3} {
		require.NoError(t, repo.Create(ctx, "tenant1", e))
	}
	require.NoError(t, repo.Create(ctx, "tenant2", newTestEntry("other", "u1", day(2024, 3, 4), 1)))

	byUser, err := repo.List(ctx, "tenant1", entry.ListEntriesOptions{UserID: "u1"})
	require.NoError(t, err)
	require.Len(t, byUser, 2)

	byProject, err := repo.List(ctx, "tenant1", entry.ListEntriesOptions{ProjectID: "p2"})
	require.NoError(t, err)
	require.Len(t, byProject, 1)
	require.Equal(t, "e2", byProject[0].ID)

	byTask, err := repo.List(ctx, "tenant1", entry.ListEntriesOptions{TaskID: "t1", From: day(2024, 3, 5), To: day(2024, 3, 5)})
	require.NoError(t, err)
	require.Len(t, byTask, 1)
	require.Equal(t, "e3", byTask[0].ID)

	none, err := repo.List(ctx, "tenant3", entry.ListEntriesOptions{})
	require.NoError(t, err)
	require.NotNil(t, none)
	require.Empty(t, none)
}
