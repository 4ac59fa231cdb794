package timer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/rpggio/timeledger/internal/domain/activity"
	"github.com/rpggio/timeledger/internal/domain/entry"
)

// Engine is the per-user timer state machine. It performs no timing itself:
// ticks come from the Scheduler, or from direct Tick calls.
type Engine struct {
	mu sync.Mutex

	tenantID   string
	userID     string
	recorder   Recorder
	scheduler  Scheduler
	activities ActivityRepository
	now        func() time.Time
	logger     *slog.Logger

	running  bool
	selected string
	start    time.Time
	elapsed  int64

	// run increments on every Start and Stop; scheduled ticks carry the run
	// they were armed for and are dropped once it has moved on.
	run    uint64
	cancel func()
}

// NewEngine creates an idle engine for one user.
func NewEngine(
	tenantID, userID string,
	recorder Recorder,
	scheduler Scheduler,
	activities ActivityRepository,
	logger *slog.Logger,
) *Engine {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{
		tenantID:   tenantID,
		userID:     userID,
		recorder:   recorder,
		scheduler:  scheduler,
		activities: activities,
		now:        time.Now,
		logger:     logger,
	}
}

// SetClock replaces the wall clock used for start and end times.
func (e *Engine) SetClock(now func() time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.now = now
}

// UserID returns the user the engine records time for.
func (e *Engine) UserID() string {
	return e.userID
}

// SelectTask pre-selects the task for the next run. An empty taskID clears
// the selection.
func (e *Engine) SelectTask(taskID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.running {
		return fmt.Errorf("%w: cannot change task while running", ErrInvalidState)
	}
	if taskID != e.selected {
		e.elapsed = 0
	}
	e.selected = taskID
	return nil
}

// Start moves Idle to Running for taskID and arms the tick source.
func (e *Engine) Start(ctx context.Context, taskID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.running {
		return fmt.Errorf("%w: timer already running", ErrInvalidState)
	}
	if strings.TrimSpace(taskID) == "" {
		return fmt.Errorf("%w: task_id is required", ErrInvalidInput)
	}

	e.running = true
	e.selected = taskID
	e.start = e.now()
	e.elapsed = 0
	e.run++

	if e.scheduler != nil {
		run := e.run
		e.cancel = e.scheduler.Schedule(func() { e.scheduledTick(run) })
	}

	e.logger.Debug("timer started", "tenant_id", e.tenantID, "user_id", e.userID, "task_id", taskID)
	e.logActivity(ctx, nil, activity.TypeTimerStarted, fmt.Sprintf("started timer on %s", taskID))
	return nil
}

// Tick adds one second while Running. It is a no-op when Idle.
func (e *Engine) Tick() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.running {
		e.elapsed++
	}
}

func (e *Engine) scheduledTick(run uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.running && e.run == run {
		e.elapsed++
	}
}

// Stop records the elapsed time as one entry and moves Running to Idle. If
// the entry cannot be written the engine stays Running with its elapsed time
// intact and the error is returned.
func (e *Engine) Stop(ctx context.Context) (*entry.TimeEntry, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.running {
		return nil, fmt.Errorf("%w: timer is not running", ErrInvalidState)
	}

	end := e.now()
	duration := e.elapsed
	recorded, err := e.recorder.Add(ctx, e.tenantID, entry.AddRequest{
		TaskID:    e.selected,
		UserID:    e.userID,
		Date:      e.start,
		StartTime: e.start,
		EndTime:   &end,
		Duration:  &duration,
		IsManual:  false,
	})
	if err != nil {
		e.logger.Error("failed to record timer entry", "tenant_id", e.tenantID, "user_id", e.userID, "task_id", e.selected, "elapsed", duration, "error", err)
		e.logActivity(ctx, nil, activity.TypeTimerStopFailed, fmt.Sprintf("could not record %ds on %s", duration, e.selected))
		return nil, fmt.Errorf("recording timer entry: %w", err)
	}

	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	e.run++
	e.running = false
	e.start = time.Time{}
	e.elapsed = 0

	e.logger.Debug("timer stopped", "tenant_id", e.tenantID, "user_id", e.userID, "entry_id", recorded.ID, "duration", recorded.Duration)
	e.logActivity(ctx, &recorded.ID, activity.TypeTimerStopped, fmt.Sprintf("recorded %ds on %s", recorded.Duration, recorded.TaskID))
	return recorded, nil
}

// Snapshot returns a copy of the current timer session.
func (e *Engine) Snapshot() Session {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := Session{
		State:          StateIdle,
		IsRunning:      e.running,
		SelectedTaskID: e.selected,
		ElapsedSeconds: e.elapsed,
	}
	if e.running {
		start := e.start
		s.State = StateRunning
		s.StartTime = &start
	}
	return s
}

func (e *Engine) logActivity(ctx context.Context, entryID *string, activityType activity.ActivityType, summary string) {
	if e.activities == nil {
		return
	}
	var taskID *string
	if e.selected != "" {
		id := e.selected
		taskID = &id
	}
	if err := e.activities.Log(ctx, e.tenantID, &activity.ActivityEntry{
		UserID:       e.userID,
		EntryID:      entryID,
		TaskID:       taskID,
		ActivityType: activityType,
		Summary:      summary,
	}); err != nil {
		e.logger.Warn("failed to log activity", "type", activityType, "user_id", e.userID, "error", err)
	}
}
