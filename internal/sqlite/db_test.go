package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// NewTestDB creates a new in-memory SQLite database for testing
func NewTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(":memory:")
	require.NoError(t, err, "failed to create test database")

	err = db.RunMigrations()
	require.NoError(t, err, "failed to run migrations")

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// TestMigrations verifies that migrations run successfully
func TestMigrations(t *testing.T) {
	db := NewTestDB(t)

	tables := []string{
		"projects",
		"tasks",
		"users",
		"time_entries",
		"activity_log",
		"api_keys",
	}

	for _, table := range tables {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count)
		require.NoError(t, err, "failed to query table %s", table)
		require.Equal(t, 1, count, "table %s not found", table)
	}
}

func TestMigrationsAreRepeatable(t *testing.T) {
	db := NewTestDB(t)
	require.NoError(t, db.RunMigrations())
}

// TestForeignKeys verifies that foreign key constraints are enabled
func TestForeignKeys(t *testing.T) {
	db := NewTestDB(t)

	var enabled int
	err := db.QueryRow("PRAGMA foreign_keys").Scan(&enabled)
	require.NoError(t, err)
	require.Equal(t, 1, enabled, "foreign keys not enabled")
}

func TestTimeEntriesTable_RejectsNegativeDuration(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	insert := `INSERT INTO time_entries (id, tenant_id, user_id, entry_date, start_time, duration, created_at, updated_at)
		VALUES (?, 'tenant1', 'u1', '2024-03-04', '2024-03-04 09:00:00', ?, '2024-03-04 09:00:00', '2024-03-04 09:00:00')`

	_, err := db.ExecContext(ctx, insert, "e1", 60)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, insert, "e2", -5)
	require.Error(t, err, "should fail with negative duration")

	_, err = db.ExecContext(ctx, insert, "e1", 10)
	require.Error(t, err, "should fail with duplicate id")
}

func TestTasksTable_RequiresProject(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	_, err := db.ExecContext(ctx,
		`INSERT INTO tasks (id, tenant_id, project_id, title) VALUES (?, ?, ?, ?)`,
		"t1", "tenant1", "missing", "Design")
	require.Error(t, err, "should fail with invalid project_id")
}
