package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS spheres (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL UNIQUE,
		status      TEXT NOT NULL DEFAULT 'active'
		            CHECK(status IN ('active','archived')),
		archived_at TEXT,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS projects (
		id          TEXT PRIMARY KEY,
		sphere_id   TEXT NOT NULL REFERENCES spheres(id) ON DELETE CASCADE,
		name        TEXT NOT NULL,
		status      TEXT NOT NULL DEFAULT 'active'
		            CHECK(status IN ('active','archived')),
		archived_at TEXT,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL,
		UNIQUE(sphere_id, name)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_projects_sphere ON projects(sphere_id)`,

	`CREATE TABLE IF NOT EXISTS break_actions (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL UNIQUE,
		status      TEXT NOT NULL DEFAULT 'active'
		            CHECK(status IN ('active','archived')),
		archived_at TEXT,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS sessions (
		id              TEXT PRIMARY KEY,
		sphere          TEXT NOT NULL DEFAULT '',
		date            TEXT NOT NULL,
		start_time      TEXT NOT NULL,
		start_timestamp REAL NOT NULL,
		end_time        TEXT NOT NULL DEFAULT '',
		end_timestamp   REAL NOT NULL DEFAULT 0,
		total_duration  REAL NOT NULL DEFAULT 0,
		active_duration REAL NOT NULL DEFAULT 0,
		break_duration  REAL NOT NULL DEFAULT 0,
		record          TEXT NOT NULL DEFAULT '',
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_sessions_date ON sessions(date)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_start ON sessions(start_timestamp)`,
}
