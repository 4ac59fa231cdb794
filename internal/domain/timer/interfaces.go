package timer

import (
	"context"

	"github.com/rpggio/timeledger/internal/domain/activity"
	"github.com/rpggio/timeledger/internal/domain/entry"
)

// Recorder writes the entry derived from a stopped timer.
type Recorder interface {
	Add(ctx context.Context, tenantID string, req entry.AddRequest) (*entry.TimeEntry, error)
}

// ActivityRepository logs timer activities.
type ActivityRepository interface {
	Log(ctx context.Context, tenantID string, entry *activity.ActivityEntry) error
}

// Scheduler delivers tick once per elapsed second until cancel is called.
// Cancel must not block waiting for an in-flight tick.
type Scheduler interface {
	Schedule(tick func()) (cancel func())
}
