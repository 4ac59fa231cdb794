package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rpggio/timeledger/internal/domain/entry"
	"github.com/rpggio/timeledger/internal/domain/week"
	"github.com/rpggio/timeledger/internal/repository"
)

// EntryRepository stores the time ledger in SQLite.
type EntryRepository struct {
	db *DB
}

// NewEntryRepository creates a new EntryRepository
func NewEntryRepository(db *DB) *EntryRepository {
	return &EntryRepository{db: db}
}

const entryColumns = `
	id, tenant_id, task_id, user_id, project_id, entry_date,
	start_time, end_time, duration, description, is_manual,
	created_at, updated_at
`

// Create inserts a new time entry
func (r *EntryRepository) Create(ctx context.Context, tenantID string, e *entry.TimeEntry) error {
	query := `
		INSERT INTO time_entries (` + entryColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		tenantID,
		e.TaskID,
		e.UserID,
		e.ProjectID,
		week.FormatDate(e.Date),
		e.StartTime.UTC(),
		nullTime(e.EndTime),
		e.Duration,
		e.Description,
		e.IsManual,
		e.CreatedAt.UTC(),
		e.UpdatedAt.UTC(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return fmt.Errorf("failed to create time entry: %w", err)
	}

	e.TenantID = tenantID
	return nil
}

// Get retrieves a time entry by ID
func (r *EntryRepository) Get(ctx context.Context, tenantID, id string) (*entry.TimeEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM time_entries WHERE id = ? AND tenant_id = ?`

	e, err := scanEntry(r.db.QueryRowContext(ctx, query, id, tenantID))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get time entry: %w", err)
	}
	return e, nil
}

// Update replaces every mutable column of an entry.
func (r *EntryRepository) Update(ctx context.Context, tenantID string, e *entry.TimeEntry) error {
	query := `
		UPDATE time_entries
		SET task_id = ?, user_id = ?, project_id = ?, entry_date = ?,
			start_time = ?, end_time = ?, duration = ?, description = ?,
			is_manual = ?, updated_at = ?
		WHERE id = ? AND tenant_id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		e.TaskID,
		e.UserID,
		e.ProjectID,
		week.FormatDate(e.Date),
		e.StartTime.UTC(),
		nullTime(e.EndTime),
		e.Duration,
		e.Description,
		e.IsManual,
		e.UpdatedAt.UTC(),
		e.ID,
		tenantID,
	)
	if err != nil {
		return fmt.Errorf("failed to update time entry: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a time entry
func (r *EntryRepository) Delete(ctx context.Context, tenantID, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM time_entries WHERE id = ? AND tenant_id = ?`, id, tenantID)
	if err != nil {
		return fmt.Errorf("failed to delete time entry: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// List returns entries matching opts in insertion order. From and To bound
// the attribution day inclusively; zero values leave that side open.
func (r *EntryRepository) List(ctx context.Context, tenantID string, opts entry.ListEntriesOptions) ([]entry.TimeEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM time_entries WHERE tenant_id = ?`
	args := []interface{}{tenantID}
	conditions := []string{}

	if !opts.From.IsZero() {
		conditions = append(conditions, "entry_date >= ?")
		args = append(args, week.FormatDate(opts.From))
	}
	if !opts.To.IsZero() {
		conditions = append(conditions, "entry_date <= ?")
		args = append(args, week.FormatDate(opts.To))
	}
	if opts.UserID != "" {
		conditions = append(conditions, "user_id = ?")
		args = append(args, opts.UserID)
	}
	if opts.ProjectID != "" {
		conditions = append(conditions, "project_id = ?")
		args = append(args, opts.ProjectID)
	}
	if opts.TaskID != "" {
		conditions = append(conditions, "task_id = ?")
		args = append(args, opts.TaskID)
	}

	if len(conditions) > 0 {
		query += " AND " + joinConditions(conditions)
	}
	query += " ORDER BY seq ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list time entries: %w", err)
	}
	defer rows.Close()

	entries := []entry.TimeEntry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan time entry: %w", err)
		}
		entries = append(entries, *e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating time entry rows: %w", err)
	}

	return entries, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*entry.TimeEntry, error) {
	var e entry.TimeEntry
	var date string
	var endTime sql.NullTime
	if err := row.Scan(
		&e.ID,
		&e.TenantID,
		&e.TaskID,
		&e.UserID,
		&e.ProjectID,
		&date,
		&e.StartTime,
		&endTime,
		&e.Duration,
		&e.Description,
		&e.IsManual,
		&e.CreatedAt,
		&e.UpdatedAt,
	); err != nil {
		return nil, err
	}

	day, err := week.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("parsing entry_date %q: %w", date, err)
	}
	e.Date = day
	if endTime.Valid {
		end := endTime.Time
		e.EndTime = &end
	}
	return &e, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}
