package directory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/timeledger/internal/repository"
)

// Service gives the time engine read access to projects, tasks and users.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new directory service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// CreateProjectRequest defines project creation inputs.
type CreateProjectRequest struct {
	ID          string
	Name        string
	Description string
}

// CreateTaskRequest defines task creation inputs.
type CreateTaskRequest struct {
	ID        string
	ProjectID string
	Title     string
}

// CreateUserRequest defines user creation inputs.
type CreateUserRequest struct {
	ID          string
	DisplayName string
	Email       string
}

// CreateProject creates a new project.
func (s *Service) CreateProject(ctx context.Context, tenantID string, req CreateProjectRequest) (*Project, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrInvalidInput
	}

	proj := &Project{
		ID:          idOrNew(req.ID),
		TenantID:    tenantID,
		Name:        req.Name,
		Description: req.Description,
		CreatedAt:   time.Now(),
	}

	if err := s.repo.CreateProject(ctx, tenantID, proj); err != nil {
		return nil, mapCreateError("creating project", err)
	}
	return proj, nil
}

// CreateTask creates a task under an existing project.
func (s *Service) CreateTask(ctx context.Context, tenantID string, req CreateTaskRequest) (*Task, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.ProjectID) == "" {
		return nil, ErrInvalidInput
	}

	task := &Task{
		ID:        idOrNew(req.ID),
		TenantID:  tenantID,
		ProjectID: req.ProjectID,
		Title:     req.Title,
		CreatedAt: time.Now(),
	}

	if err := s.repo.CreateTask(ctx, tenantID, task); err != nil {
		if errors.Is(err, repository.ErrForeignKeyViolation) {
			return nil, ErrProjectNotFound
		}
		return nil, mapCreateError("creating task", err)
	}
	return task, nil
}

// CreateUser registers a user.
func (s *Service) CreateUser(ctx context.Context, tenantID string, req CreateUserRequest) (*User, error) {
	if strings.TrimSpace(req.DisplayName) == "" {
		return nil, ErrInvalidInput
	}

	user := &User{
		ID:          idOrNew(req.ID),
		TenantID:    tenantID,
		DisplayName: req.DisplayName,
		Email:       req.Email,
		CreatedAt:   time.Now(),
	}

	if err := s.repo.CreateUser(ctx, tenantID, user); err != nil {
		return nil, mapCreateError("creating user", err)
	}
	return user, nil
}

// ResolveProject returns the project a task belongs to, or an empty string if
// the task is unknown.
func (s *Service) ResolveProject(ctx context.Context, tenantID, taskID string) (string, error) {
	task, err := s.repo.GetTask(ctx, tenantID, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("getting task: %w", err)
	}
	return task.ProjectID, nil
}

// Names loads a display-name lookup for the tenant.
func (s *Service) Names(ctx context.Context, tenantID string) (*Names, error) {
	projects, err := s.repo.ListProjects(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	tasks, err := s.repo.ListTasks(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	users, err := s.repo.ListUsers(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return NewNames(projects, tasks, users), nil
}

func idOrNew(id string) string {
	if strings.TrimSpace(id) == "" {
		return uuid.NewString()
	}
	return id
}

func mapCreateError(action string, err error) error {
	if errors.Is(err, repository.ErrConflict) {
		return ErrDuplicate
	}
	return fmt.Errorf("%s: %w", action, err)
}
