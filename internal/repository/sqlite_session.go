package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/acmercer/timekeep/internal/db"
	"github.com/acmercer/timekeep/internal/domain"
	"github.com/acmercer/timekeep/internal/record"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04:05"
)

// SQLiteSessionRepo implements SessionRepo using a SQLite database. The
// period list is stored as the legacy JSON record in the row; the summary
// columns are derived from it on every save.
type SQLiteSessionRepo struct {
	db db.DBTX
}

// NewSQLiteSessionRepo creates a new SQLiteSessionRepo.
func NewSQLiteSessionRepo(db db.DBTX) *SQLiteSessionRepo {
	return &SQLiteSessionRepo{db: db}
}

func (r *SQLiteSessionRepo) Create(ctx context.Context, s *domain.Session) error {
	rec, err := record.Encode(s.Periods)
	if err != nil {
		return fmt.Errorf("encoding period record: %w", err)
	}
	query := `INSERT INTO sessions (id, sphere, date, start_time, start_timestamp,
			end_time, end_timestamp, total_duration, active_duration, break_duration,
			record, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		s.ID,
		s.Sphere,
		s.Start.Format(dateLayout),
		s.Start.Format(clockLayout),
		unixSeconds(s.Start),
		endClock(s),
		endTimestamp(s),
		s.TotalDuration().Seconds(),
		s.ActiveDuration.Seconds(),
		s.DisplayBreakDuration().Seconds(),
		string(rec),
		s.CreatedAt.Format(time.RFC3339),
		s.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting session: %w", err)
	}
	return nil
}

func (r *SQLiteSessionRepo) Update(ctx context.Context, s *domain.Session) error {
	rec, err := record.Encode(s.Periods)
	if err != nil {
		return fmt.Errorf("encoding period record: %w", err)
	}
	query := `UPDATE sessions SET sphere = ?, date = ?, start_time = ?, start_timestamp = ?,
			end_time = ?, end_timestamp = ?, total_duration = ?, active_duration = ?,
			break_duration = ?, record = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		s.Sphere,
		s.Start.Format(dateLayout),
		s.Start.Format(clockLayout),
		unixSeconds(s.Start),
		endClock(s),
		endTimestamp(s),
		s.TotalDuration().Seconds(),
		s.ActiveDuration.Seconds(),
		s.DisplayBreakDuration().Seconds(),
		string(rec),
		nowUTC(),
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("updating session: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("session %s: %w", s.ID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteSessionRepo) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	query := sessionSelect + ` WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return r.scanSession(row)
}

func (r *SQLiteSessionRepo) ListRange(ctx context.Context, from, to time.Time) ([]*domain.Session, error) {
	query := sessionSelect + ` WHERE start_timestamp >= ? AND start_timestamp < ? ORDER BY start_timestamp`
	rows, err := r.db.QueryContext(ctx, query, unixSeconds(from), unixSeconds(to))
	if err != nil {
		return nil, fmt.Errorf("listing sessions by range: %w", err)
	}
	defer rows.Close()
	return r.scanSessions(rows)
}

func (r *SQLiteSessionRepo) ListAll(ctx context.Context) ([]*domain.Session, error) {
	query := sessionSelect + ` ORDER BY start_timestamp`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	defer rows.Close()
	return r.scanSessions(rows)
}

func (r *SQLiteSessionRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM sessions WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

const sessionSelect = `SELECT id, sphere, start_timestamp, end_timestamp, record, created_at, updated_at
	FROM sessions`

// scanSession scans a single session from a *sql.Row.
func (r *SQLiteSessionRepo) scanSession(row *sql.Row) (*domain.Session, error) {
	var s domain.Session
	var startTs, endTs float64
	var recStr, createdAtStr, updatedAtStr string

	err := row.Scan(&s.ID, &s.Sphere, &startTs, &endTs, &recStr, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("session: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning session: %w", err)
	}
	return r.populateSession(&s, startTs, endTs, recStr, createdAtStr, updatedAtStr)
}

// scanSessions scans multiple sessions from *sql.Rows.
func (r *SQLiteSessionRepo) scanSessions(rows *sql.Rows) ([]*domain.Session, error) {
	var sessions []*domain.Session
	for rows.Next() {
		var s domain.Session
		var startTs, endTs float64
		var recStr, createdAtStr, updatedAtStr string

		if err := rows.Scan(&s.ID, &s.Sphere, &startTs, &endTs, &recStr, &createdAtStr, &updatedAtStr); err != nil {
			return nil, fmt.Errorf("scanning session row: %w", err)
		}
		session, err := r.populateSession(&s, startTs, endTs, recStr, createdAtStr, updatedAtStr)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}
	return sessions, nil
}

// populateSession fills in parsed fields after scanning raw values. A
// malformed period record decodes to an empty list rather than failing the
// load.
func (r *SQLiteSessionRepo) populateSession(s *domain.Session, startTs, endTs float64, recStr, createdAtStr, updatedAtStr string) (*domain.Session, error) {
	s.Start = fromUnixSeconds(startTs)
	if endTs > 0 {
		s.End = fromUnixSeconds(endTs)
	}
	periods, err := record.Decode([]byte(recStr))
	if err != nil {
		periods = nil
	}
	s.Periods = periods
	s.RecomputeTotals()

	if s.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if s.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return s, nil
}

func endClock(s *domain.Session) string {
	if !s.Ended() {
		return ""
	}
	return s.End.Format(clockLayout)
}

func endTimestamp(s *domain.Session) float64 {
	if !s.Ended() {
		return 0
	}
	return unixSeconds(s.End)
}

func unixSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}

func fromUnixSeconds(sec float64) time.Time {
	ns := sec * float64(time.Second)
	return time.Unix(0, int64(ns)).UTC()
}
