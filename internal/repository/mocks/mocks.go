package mocks

import (
	"context"

	"github.com/rpggio/timeledger/internal/domain/activity"
	"github.com/rpggio/timeledger/internal/domain/directory"
	"github.com/rpggio/timeledger/internal/domain/entry"
	"github.com/stretchr/testify/mock"
)

// EntryRepository is a mock for entry.EntryRepository.
type EntryRepository struct {
	mock.Mock
}

func (m *EntryRepository) Create(ctx context.Context, tenantID string, e *entry.TimeEntry) error {
	args := m.Called(ctx, tenantID, e)
	return args.Error(0)
}

func (m *EntryRepository) Get(ctx context.Context, tenantID, id string) (*entry.TimeEntry, error) {
	args := m.Called(ctx, tenantID, id)
	if e, ok := args.Get(0).(*entry.TimeEntry); ok {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *EntryRepository) Update(ctx context.Context, tenantID string, e *entry.TimeEntry) error {
	args := m.Called(ctx, tenantID, e)
	return args.Error(0)
}

func (m *EntryRepository) Delete(ctx context.Context, tenantID, id string) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *EntryRepository) List(ctx context.Context, tenantID string, opts entry.ListEntriesOptions) ([]entry.TimeEntry, error) {
	args := m.Called(ctx, tenantID, opts)
	if list, ok := args.Get(0).([]entry.TimeEntry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// ProjectResolver is a mock for entry.ProjectResolver.
type ProjectResolver struct {
	mock.Mock
}

func (m *ProjectResolver) ResolveProject(ctx context.Context, tenantID, taskID string) (string, error) {
	args := m.Called(ctx, tenantID, taskID)
	return args.String(0), args.Error(1)
}

// EntryRecorder is a mock for timer.Recorder.
type EntryRecorder struct {
	mock.Mock
}

func (m *EntryRecorder) Add(ctx context.Context, tenantID string, req entry.AddRequest) (*entry.TimeEntry, error) {
	args := m.Called(ctx, tenantID, req)
	if e, ok := args.Get(0).(*entry.TimeEntry); ok {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}

// DirectoryRepository is a mock for directory.Repository.
type DirectoryRepository struct {
	mock.Mock
}

func (m *DirectoryRepository) CreateProject(ctx context.Context, tenantID string, proj *directory.Project) error {
	args := m.Called(ctx, tenantID, proj)
	return args.Error(0)
}

func (m *DirectoryRepository) CreateTask(ctx context.Context, tenantID string, task *directory.Task) error {
	args := m.Called(ctx, tenantID, task)
	return args.Error(0)
}

func (m *DirectoryRepository) CreateUser(ctx context.Context, tenantID string, user *directory.User) error {
	args := m.Called(ctx, tenantID, user)
	return args.Error(0)
}

func (m *DirectoryRepository) GetTask(ctx context.Context, tenantID, id string) (*directory.Task, error) {
	args := m.Called(ctx, tenantID, id)
	if task, ok := args.Get(0).(*directory.Task); ok {
		return task, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DirectoryRepository) ListProjects(ctx context.Context, tenantID string) ([]directory.Project, error) {
	args := m.Called(ctx, tenantID)
	if list, ok := args.Get(0).([]directory.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DirectoryRepository) ListTasks(ctx context.Context, tenantID string) ([]directory.Task, error) {
	args := m.Called(ctx, tenantID)
	if list, ok := args.Get(0).([]directory.Task); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DirectoryRepository) ListUsers(ctx context.Context, tenantID string) ([]directory.User, error) {
	args := m.Called(ctx, tenantID)
	if list, ok := args.Get(0).([]directory.User); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// ActivityRepository is a mock for activity.Repository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Log(ctx context.Context, tenantID string, entry *activity.ActivityEntry) error {
	args := m.Called(ctx, tenantID, entry)
	return args.Error(0)
}

func (m *ActivityRepository) List(ctx context.Context, tenantID string, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error) {
	args := m.Called(ctx, tenantID, opts)
	if list, ok := args.Get(0).([]activity.ActivityEntry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}
