package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rpggio/timeledger/internal/domain/timer"
)

type key struct {
	tenantID string
	userID   string
}

// Manager owns one session per tenant and user.
type Manager struct {
	mu       sync.Mutex
	sessions map[key]*Session

	recorder   timer.Recorder
	scheduler  timer.Scheduler
	activities timer.ActivityRepository
	now        func() time.Time
	logger     *slog.Logger
}

// NewManager creates a session manager. Every timer it creates records
// through recorder and is ticked by scheduler.
func NewManager(
	recorder timer.Recorder,
	scheduler timer.Scheduler,
	activities timer.ActivityRepository,
	logger *slog.Logger,
) *Manager {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Manager{
		sessions:   make(map[key]*Session),
		recorder:   recorder,
		scheduler:  scheduler,
		activities: activities,
		now:        time.Now,
		logger:     logger,
	}
}

// SetClock replaces the clock used for new sessions and their timers.
func (m *Manager) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

// Open returns the user's session, creating it on first use.
func (m *Manager) Open(tenantID, userID string) (*Session, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	k := key{tenantID: tenantID, userID: userID}
	if sess, ok := m.sessions[k]; ok {
		sess.Touch(now)
		return sess, nil
	}

	engine := timer.NewEngine(tenantID, userID, m.recorder, m.scheduler, m.activities, m.logger)
	engine.SetClock(m.now)
	sess := newSession(tenantID, userID, engine, now)
	m.sessions[k] = sess

	m.logger.Debug("session opened", "tenant_id", tenantID, "user_id", userID, "session_id", sess.ID)
	return sess, nil
}

// Get returns an open session.
func (m *Manager) Get(tenantID, userID string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[key{tenantID: tenantID, userID: userID}]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// List returns summaries of the tenant's open sessions ordered by user.
func (m *Manager) List(tenantID string) []Info {
	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.sessions))
	for k, sess := range m.sessions {
		if k.tenantID == tenantID {
			sessions = append(sessions, sess)
		}
	}
	m.mu.Unlock()

	infos := make([]Info, 0, len(sessions))
	for _, sess := range sessions {
		infos = append(infos, sess.Info())
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].UserID < infos[j].UserID })
	return infos
}

// Close ends a session. A running timer is stopped first so its elapsed time
// is recorded; if that fails the session stays open and the error is returned.
func (m *Manager) Close(ctx context.Context, tenantID, userID string) error {
	sess, err := m.Get(tenantID, userID)
	if err != nil {
		return err
	}

	if err := stopRunning(ctx, sess); err != nil {
		return err
	}

	m.mu.Lock()
	delete(m.sessions, key{tenantID: tenantID, userID: userID})
	m.mu.Unlock()

	m.logger.Debug("session closed", "tenant_id", tenantID, "user_id", userID, "session_id", sess.ID)
	return nil
}

// CloseAll closes every session, collecting the errors of those that could
// not record their running timer.
func (m *Manager) CloseAll(ctx context.Context) error {
	m.mu.Lock()
	keys := make([]key, 0, len(m.sessions))
	for k := range m.sessions {
		keys = append(keys, k)
	}
	m.mu.Unlock()

	var errs []error
	for _, k := range keys {
		if err := m.Close(ctx, k.tenantID, k.userID); err != nil && !errors.Is(err, ErrSessionNotFound) {
			m.logger.Error("failed to close session", "tenant_id", k.tenantID, "user_id", k.userID, "error", err)
			errs = append(errs, fmt.Errorf("closing session for %s: %w", k.userID, err))
		}
	}
	return errors.Join(errs...)
}

func stopRunning(ctx context.Context, sess *Session) error {
	if !sess.Timer.Snapshot().IsRunning {
		return nil
	}
	if _, err := sess.Timer.Stop(ctx); err != nil && !errors.Is(err, timer.ErrInvalidState) {
		return fmt.Errorf("stopping timer: %w", err)
	}
	return nil
}
