package entry

import (
	"context"

	"github.com/rpggio/timeledger/internal/domain/activity"
)

// EntryRepository provides persistence for time entries. List returns entries
// in insertion order.
type EntryRepository interface {
	Create(ctx context.Context, tenantID string, e *TimeEntry) error
	Get(ctx context.Context, tenantID, id string) (*TimeEntry, error)
	Update(ctx context.Context, tenantID string, e *TimeEntry) error
	Delete(ctx context.Context, tenantID, id string) error
	List(ctx context.Context, tenantID string, opts ListEntriesOptions) ([]TimeEntry, error)
}

// ProjectResolver maps a task to its project. An unknown task resolves to an
// empty project ID.
type ProjectResolver interface {
	ResolveProject(ctx context.Context, tenantID, taskID string) (string, error)
}

// ActivityRepository logs ledger activities.
type ActivityRepository interface {
	Log(ctx context.Context, tenantID string, entry *activity.ActivityEntry) error
}
