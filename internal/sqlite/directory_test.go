package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/timeledger/internal/domain/directory"
	"github.com/rpggio/timeledger/internal/repository"
	"github.com/stretchr/testify/require"
)

func TestDirectoryRepository_ProjectsTasksUsers(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewDirectoryRepository(db)
	now := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

	require.NoError(t, repo.CreateProject(ctx, "tenant1", &directory.Project{ID: "p1", Name: "LogicFlow Rebuild", CreatedAt: now}))
	require.NoError(t, repo.CreateProject(ctx, "tenant1", &directory.Project{ID: "p2", Name: "Mobile App", CreatedAt: now.Add(time.Minute)}))
	require.NoError(t, repo.CreateTask(ctx, "tenant1", &directory.Task{ID: "t1", ProjectID: "p1", Title: "Design homepage", CreatedAt: now}))
	require.NoError(t, repo.CreateUser(ctx, "tenant1", &directory.User{ID: "u1", DisplayName: "John Doe", Email: "john@example.com", CreatedAt: now}))

	task, err := repo.GetTask(ctx, "tenant1", "t1")
	require.NoError(t, err)
	require.Equal(t, "p1", task.ProjectID)
	require.Equal(t, "Design homepage", task.Title)

	_, err = repo.GetTask(ctx, "tenant1", "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)
	_, err = repo.GetTask(ctx, "tenant2", "t1")
	require.ErrorIs(t, err, repository.ErrNotFound)

	projects, err := repo.ListProjects(ctx, "tenant1")
	require.NoError(t, err)
	require.Len(t, projects, 2)
	require.Equal(t, "p1", projects[0].ID)

	tasks, err := repo.ListTasks(ctx, "tenant1")
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	users, err := repo.ListUsers(ctx, "tenant1")
	require.NoError(t, err)
	require.Len(t, users, 1)
	require.Equal(t, "john@example.com", users[0].Email)

	empty, err := repo.ListProjects(ctx, "tenant2")
	require.NoError(t, err)
	require.Empty(t, empty)
}

func TestDirectoryRepository_Constraints(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewDirectoryRepository(db)
	now := time.Now()

	require.NoError(t, repo.CreateProject(ctx, "tenant1", &directory.Project{ID: "p1", Name: "Mobile App", CreatedAt: now}))
	require.ErrorIs(t,
		repo.CreateProject(ctx, "tenant1", &directory.Project{ID: "p1", Name: "Again", CreatedAt: now}),
		repository.ErrConflict)

	require.ErrorIs(t,
		repo.CreateTask(ctx, "tenant1", &directory.Task{ID: "t1", ProjectID: "missing", Title: "Orphan", CreatedAt: now}),
		repository.ErrForeignKeyViolation)
}
