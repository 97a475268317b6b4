package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/acmercer/timekeep/internal/db"
	"github.com/acmercer/timekeep/internal/domain"
)

// SQLiteBreakActionRepo implements BreakActionRepo using a SQLite database.
type SQLiteBreakActionRepo struct {
	db db.DBTX
}

// NewSQLiteBreakActionRepo creates a new SQLiteBreakActionRepo.
func NewSQLiteBreakActionRepo(db db.DBTX) *SQLiteBreakActionRepo {
	return &SQLiteBreakActionRepo{db: db}
}

const actionSelect = `SELECT id, name, status, archived_at, created_at, updated_at FROM break_actions`

func (r *SQLiteBreakActionRepo) Create(ctx context.Context, a *domain.BreakAction) error {
	query := `INSERT INTO break_actions (id, name, status, archived_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		a.ID,
		a.Name,
		string(a.Status),
		nullableTimeToString(a.ArchivedAt, time.RFC3339),
		a.CreatedAt.Format(time.RFC3339),
		a.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting break action: %w", err)
	}
	return nil
}

func (r *SQLiteBreakActionRepo) GetByName(ctx context.Context, name string) (*domain.BreakAction, error) {
	query := actionSelect + ` WHERE name = ?`
	row := r.db.QueryRowContext(ctx, query, name)
	return scanActionRow(row.Scan, name)
}

func (r *SQLiteBreakActionRepo) List(ctx context.Context, includeArchived bool) ([]*domain.BreakAction, error) {
	query := actionSelect
	if !includeArchived {
		query += ` WHERE archived_at IS NULL`
	}
	query += ` ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing break actions: %w", err)
	}
	defer rows.Close()

	var actions []*domain.BreakAction
	for rows.Next() {
		a, err := scanActionRow(rows.Scan, "")
		if err != nil {
			return nil, err
		}
		actions = append(actions, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating break actions: %w", err)
	}
	return actions, nil
}

func (r *SQLiteBreakActionRepo) Archive(ctx context.Context, id string) error {
	now := nowUTC()
	query := `UPDATE break_actions SET status = 'archived', archived_at = ?, updated_at = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, now, now, id); err != nil {
		return fmt.Errorf("archiving break action: %w", err)
	}
	return nil
}

func (r *SQLiteBreakActionRepo) Unarchive(ctx context.Context, id string) error {
	query := `UPDATE break_actions SET status = 'active', archived_at = NULL, updated_at = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, nowUTC(), id); err != nil {
		return fmt.Errorf("unarchiving break action: %w", err)
	}
	return nil
}

func (r *SQLiteBreakActionRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM break_actions WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("deleting break action: %w", err)
	}
	return nil
}

func scanActionRow(scan func(...any) error, name string) (*domain.BreakAction, error) {
	var a domain.BreakAction
	var status string
	var archivedAt sql.NullString
	var createdAtStr, updatedAtStr string
	if err := scan(&a.ID, &a.Name, &status, &archivedAt, &createdAtStr, &updatedAtStr); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("break action %q: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning break action: %w", err)
	}
	a.Status = domain.EntityStatus(status)
	a.ArchivedAt = parseNullableTime(archivedAt, time.RFC3339)
	var err error
	if a.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if a.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &a, nil
}
