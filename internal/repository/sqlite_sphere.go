package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/acmercer/timekeep/internal/db"
	"github.com/acmercer/timekeep/internal/domain"
)

// SQLiteSphereRepo implements SphereRepo using a SQLite database.
type SQLiteSphereRepo struct {
	db db.DBTX
}

// NewSQLiteSphereRepo creates a new SQLiteSphereRepo.
func NewSQLiteSphereRepo(db db.DBTX) *SQLiteSphereRepo {
	return &SQLiteSphereRepo{db: db}
}

func (r *SQLiteSphereRepo) Create(ctx context.Context, s *domain.Sphere) error {
	query := `INSERT INTO spheres (id, name, status, archived_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.Name,
		string(s.Status),
		nullableTimeToString(s.ArchivedAt, time.RFC3339),
		s.CreatedAt.Format(time.RFC3339),
		s.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting sphere: %w", err)
	}
	return nil
}

func (r *SQLiteSphereRepo) GetByName(ctx context.Context, name string) (*domain.Sphere, error) {
	query := `SELECT id, name, status, archived_at, created_at, updated_at
		FROM spheres WHERE name = ?`
	row := r.db.QueryRowContext(ctx, query, name)

	var s domain.Sphere
	var status string
	var archivedAt sql.NullString
	var createdAtStr, updatedAtStr string
	if err := row.Scan(&s.ID, &s.Name, &status, &archivedAt, &createdAtStr, &updatedAtStr); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("sphere %q: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning sphere: %w", err)
	}
	return populateSphere(&s, status, archivedAt, createdAtStr, updatedAtStr)
}

func (r *SQLiteSphereRepo) List(ctx context.Context, includeArchived bool) ([]*domain.Sphere, error) {
	query := `SELECT id, name, status, archived_at, created_at, updated_at FROM spheres`
	if !includeArchived {
		query += ` WHERE archived_at IS NULL`
	}
	query += ` ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing spheres: %w", err)
	}
	defer rows.Close()

	var spheres []*domain.Sphere
	for rows.Next() {
		var s domain.Sphere
		var status string
		var archivedAt sql.NullString
		var createdAtStr, updatedAtStr string
		if err := rows.Scan(&s.ID, &s.Name, &status, &archivedAt, &createdAtStr, &updatedAtStr); err != nil {
			return nil, fmt.Errorf("scanning sphere row: %w", err)
		}
		sphere, err := populateSphere(&s, status, archivedAt, createdAtStr, updatedAtStr)
		if err != nil {
			return nil, err
		}
		spheres = append(spheres, sphere)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating spheres: %w", err)
	}
	return spheres, nil
}

func (r *SQLiteSphereRepo) Archive(ctx context.Context, id string) error {
	now := nowUTC()
	query := `UPDATE spheres SET status = 'archived', archived_at = ?, updated_at = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, now, now, id); err != nil {
		return fmt.Errorf("archiving sphere: %w", err)
	}
	return nil
}

func (r *SQLiteSphereRepo) Unarchive(ctx context.Context, id string) error {
	query := `UPDATE spheres SET status = 'active', archived_at = NULL, updated_at = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, nowUTC(), id); err != nil {
		return fmt.Errorf("unarchiving sphere: %w", err)
	}
	return nil
}

func (r *SQLiteSphereRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM spheres WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("deleting sphere: %w", err)
	}
	return nil
}

func populateSphere(s *domain.Sphere, status string, archivedAt sql.NullString, createdAtStr, updatedAtStr string) (*domain.Sphere, error) {
	s.Status = domain.EntityStatus(status)
	s.ArchivedAt = parseNullableTime(archivedAt, time.RFC3339)
	var err error
	if s.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if s.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return s, nil
}
