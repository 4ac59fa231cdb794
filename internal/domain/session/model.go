package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/timeledger/internal/domain/timer"
	"github.com/rpggio/timeledger/internal/domain/week"
)

// Session is the state owned by one user's session: a timer and the week
// being viewed.
type Session struct {
	ID        string
	TenantID  string
	UserID    string
	Timer     *timer.Engine
	CreatedAt time.Time

	mu           sync.Mutex
	week         *week.Cursor
	lastActivity time.Time
}

// Info summarizes a session for listing.
type Info struct {
	SessionID    string        `json:"session_id"`
	UserID       string        `json:"user_id"`
	WeekStart    string        `json:"week_start"`
	Timer        timer.Session `json:"timer"`
	CreatedAt    time.Time     `json:"created_at"`
	LastActivity time.Time     `json:"last_activity"`
}

func newSession(tenantID, userID string, engine *timer.Engine, now time.Time) *Session {
	return &Session{
		ID:           uuid.NewString(),
		TenantID:     tenantID,
		UserID:       userID,
		Timer:        engine,
		CreatedAt:    now,
		week:         week.NewCursor(now),
		lastActivity: now,
	}
}

// Cursor returns a copy of the week cursor.
func (s *Session) Cursor() *week.Cursor {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *s.week
	return &c
}

// SetWeek moves the cursor to the week containing date and returns its Monday.
func (s *Session) SetWeek(date time.Time) time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.week.SetWeek(date)
	return s.week.WeekStart()
}

// NextWeek advances the cursor by a week and returns the new Monday.
func (s *Session) NextWeek() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.week.NextWeek()
	return s.week.WeekStart()
}

// PreviousWeek moves the cursor back a week and returns the new Monday.
func (s *Session) PreviousWeek() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.week.PreviousWeek()
	return s.week.WeekStart()
}

// Touch records activity on the session.
func (s *Session) Touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActivity = now
}

// Info returns a listing summary of the session.
func (s *Session) Info() Info {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Info{
		SessionID:    s.ID,
		UserID:       s.UserID,
		WeekStart:    week.FormatDate(s.week.WeekStart()),
		Timer:        s.Timer.Snapshot(),
		CreatedAt:    s.CreatedAt,
		LastActivity: s.lastActivity,
	}
}
