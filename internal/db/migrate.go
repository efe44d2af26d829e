package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are re-run on every open,
// so each one must be idempotent.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS employees (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL UNIQUE,
		created_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS override_drafts (
		id          TEXT PRIMARY KEY,
		report_date TEXT NOT NULL,
		worker      TEXT NOT NULL,
		quantity    INTEGER NOT NULL CHECK(quantity > 0),
		ewh         REAL NOT NULL DEFAULT 0 CHECK(ewh >= 0),
		created_at  TEXT NOT NULL,
		UNIQUE (report_date, worker)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_override_drafts_date ON override_drafts(report_date)`,
	`CREATE TABLE IF NOT EXISTS report_runs (
		id          TEXT PRIMARY KEY,
		mode        TEXT NOT NULL CHECK(mode IN ('daily','efficiency')),
		report_date TEXT NOT NULL,
		row_count   INTEGER NOT NULL DEFAULT 0,
		total_ewh   REAL NOT NULL DEFAULT 0,
		output_path TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_report_runs_created ON report_runs(created_at)`,
	// Diagnostics counters on report runs
	`ALTER TABLE report_runs ADD COLUMN dropped_events INTEGER NOT NULL DEFAULT 0`,
	`ALTER TABLE report_runs ADD COLUMN dropped_overrides INTEGER NOT NULL DEFAULT 0`,
}
