package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rpggio/timeledger/internal/domain/directory"
	"github.com/rpggio/timeledger/internal/repository"
)

// DirectoryRepository stores projects, tasks and users.
type DirectoryRepository struct {
	db *DB
}

// NewDirectoryRepository creates a new DirectoryRepository
func NewDirectoryRepository(db *DB) *DirectoryRepository {
	return &DirectoryRepository{db: db}
}

// CreateProject inserts a project
func (r *DirectoryRepository) CreateProject(ctx context.Context, tenantID string, proj *directory.Project) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO projects (id, tenant_id, name, description, created_at) VALUES (?, ?, ?, ?, ?)`,
		proj.ID, tenantID, proj.Name, proj.Description, proj.CreatedAt.UTC(),
	)
	if err != nil {
		return mapWriteError("project", err)
	}
	proj.TenantID = tenantID
	return nil
}

// CreateTask inserts a task; its project must exist.
func (r *DirectoryRepository) CreateTask(ctx context.Context, tenantID string, task *directory.Task) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (id, tenant_id, project_id, title, created_at) VALUES (?, ?, ?, ?, ?)`,
		task.ID, tenantID, task.ProjectID, task.Title, task.CreatedAt.UTC(),
	)
	if err != nil {
		return mapWriteError("task", err)
	}
	task.TenantID = tenantID
	return nil
}

// CreateUser inserts a user
func (r *DirectoryRepository) CreateUser(ctx context.Context, tenantID string, user *directory.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, tenant_id, display_name, email, created_at) VALUES (?, ?, ?, ?, ?)`,
		user.ID, tenantID, user.DisplayName, user.Email, user.CreatedAt.UTC(),
	)
	if err != nil {
		return mapWriteError("user", err)
	}
	user.TenantID = tenantID
	return nil
}

// GetTask retrieves a task by ID
func (r *DirectoryRepository) GetTask(ctx context.Context, tenantID, id string) (*directory.Task, error) {
	var task directory.Task
	err := r.db.QueryRowContext(ctx,
		`SELECT id, tenant_id, project_id, title, created_at FROM tasks WHERE id = ? AND tenant_id = ?`,
		id, tenantID,
	).Scan(&task.ID, &task.TenantID, &task.ProjectID, &task.Title, &task.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return &task, nil
}

// ListProjects returns the tenant's projects oldest first
func (r *DirectoryRepository) ListProjects(ctx context.Context, tenantID string) ([]directory.Project, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, tenant_id, name, description, created_at FROM projects WHERE tenant_id = ? ORDER BY created_at ASC, id ASC`,
		tenantID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	projects := []directory.Project{}
	for rows.Next() {
		var p directory.Project
		if err := rows.Scan(&p.ID, &p.TenantID, &p.Name, &p.Description, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}
	return projects, nil
}

// ListTasks returns the tenant's tasks oldest first
func (r *DirectoryRepository) ListTasks(ctx context.Context, tenantID string) ([]directory.Task, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, tenant_id, project_id, title, created_at FROM tasks WHERE tenant_id = ? ORDER BY created_at ASC, id ASC`,
		tenantID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []directory.Task{}
	for rows.Next() {
		var t directory.Task
		if err := rows.Scan(&t.ID, &t.TenantID, &t.ProjectID, &t.Title, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating task rows: %w", err)
	}
	return tasks, nil
}

// ListUsers returns the tenant's users oldest first
func (r *DirectoryRepository) ListUsers(ctx context.Context, tenantID string) ([]directory.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, tenant_id, display_name, email, created_at FROM users WHERE tenant_id = ? ORDER BY created_at ASC, id ASC`,
		tenantID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := []directory.User{}
	for rows.Next() {
		var u directory.User
		if err := rows.Scan(&u.ID, &u.TenantID, &u.DisplayName, &u.Email, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}
	return users, nil
}

func mapWriteError(kind string, err error) error {
	switch {
	case isUniqueViolation(err):
		return repository.ErrConflict
	case isForeignKeyViolation(err):
		return repository.ErrForeignKeyViolation
	default:
		return fmt.Errorf("failed to create %s: %w", kind, err)
	}
}
