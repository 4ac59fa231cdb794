// Package testserver starts the full HTTP stack over an in-memory database
// for end-to-end tests.
package testserver

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rpggio/timeledger/internal/domain/activity"
	"github.com/rpggio/timeledger/internal/domain/directory"
	"github.com/rpggio/timeledger/internal/domain/entry"
	"github.com/rpggio/timeledger/internal/domain/session"
	"github.com/rpggio/timeledger/internal/mcp"
	"github.com/rpggio/timeledger/internal/sqlite"
	"github.com/rpggio/timeledger/internal/transport"
	"github.com/stretchr/testify/require"
)

type TestServer struct {
	Server   *httptest.Server
	DB       *sqlite.DB
	Sessions *session.Manager
	Ledger   *entry.Service
	Token    string
	TenantID string
	UserID   string
}

// New starts a server whose /rpc endpoint accepts token as userID in
// tenantID. Timers are not ticked automatically; tests tick them through
// Sessions. now, when non-nil, replaces the wall clock.
func New(t *testing.T, token, tenantID, userID string, now func() time.Time) *TestServer {
	t.Helper()

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	entryRepo := sqlite.NewEntryRepository(db)
	directoryRepo := sqlite.NewDirectoryRepository(db)
	activityRepo := sqlite.NewActivityRepository(db)
	apiKeys := sqlite.NewAPIKeyRepository(db)

	directorySvc := directory.NewService(directoryRepo, nil)
	activitySvc := activity.NewService(activityRepo, nil)
	ledger := entry.NewService(entryRepo, directorySvc, activityRepo, nil)
	sessions := session.NewManager(ledger, nil, activityRepo, nil)
	if now != nil {
		ledger.SetClock(now)
		sessions.SetClock(now)
	}

	handler := mcp.NewHandler(mcp.Services{
		Ledger:    ledger,
		Directory: directorySvc,
		Sessions:  sessions,
		Activity:  activitySvc,
	})

	server := httptest.NewServer(transport.NewServer(handler, transport.Options{
		Identity: transport.AuthMiddleware(apiKeys),
	}))

	ts := &TestServer{
		Server:   server,
		DB:       db,
		Sessions: sessions,
		Ledger:   ledger,
		Token:    token,
		TenantID: tenantID,
		UserID:   userID,
	}

	require.NoError(t, ts.AddAPIKey(token, tenantID, userID))

	t.Cleanup(func() {
		server.Close()
		_ = sessions.CloseAll(context.Background())
		_ = db.Close()
	})

	return ts
}

// AddAPIKey registers another token.
func (ts *TestServer) AddAPIKey(token, tenantID, userID string) error {
	return sqlite.NewAPIKeyRepository(ts.DB).Create(context.Background(), token, tenantID, userID, "test")
}
