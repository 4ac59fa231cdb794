package directory

import "context"

// Repository provides persistence for projects, tasks and users.
type Repository interface {
	CreateProject(ctx context.Context, tenantID string, proj *Project) error
	CreateTask(ctx context.Context, tenantID string, task *Task) error
	CreateUser(ctx context.Context, tenantID string, user *User) error
	GetTask(ctx context.Context, tenantID, id string) (*Task, error)
	ListProjects(ctx context.Context, tenantID string) ([]Project, error)
	ListTasks(ctx context.Context, tenantID string) ([]Task, error)
	ListUsers(ctx context.Context, tenantID string) ([]User, error)
}
