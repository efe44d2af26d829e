package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMigrate_UpgradePath_RunsWithoutCounters upgrades a database whose
// report_runs table predates the diagnostics counters. Existing rows survive
// and the new columns default to zero.
func TestMigrate_UpgradePath_RunsWithoutCounters(t *testing.T) {
	db, err := sql.Open("sqlite", MemoryPath)
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`CREATE TABLE report_runs (
		id          TEXT PRIMARY KEY,
		mode        TEXT NOT NULL CHECK(mode IN ('daily','efficiency')),
		report_date TEXT NOT NULL,
		row_count   INTEGER NOT NULL DEFAULT 0,
		total_ewh   REAL NOT NULL DEFAULT 0,
		output_path TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL
	)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO report_runs (id, mode, report_date, row_count, total_ewh, created_at)
		VALUES ('r1', 'daily', '2025-03-14', 4, 12.5, '2025-03-14T13:00:00Z')`)
	require.NoError(t, err)

	require.NoError(t, Migrate(db))

	var rowCount, droppedEvents, droppedOverrides int
	var total float64
	err = db.QueryRow(`SELECT row_count, total_ewh, dropped_events, dropped_overrides FROM report_runs WHERE id = 'r1'`).
		Scan(&rowCount, &total, &droppedEvents, &droppedOverrides)
	require.NoError(t, err)
	assert.Equal(t, 4, rowCount)
	assert.Equal(t, 12.5, total)
	assert.Zero(t, droppedEvents)
	assert.Zero(t, droppedOverrides)

	var name string
	require.NoError(t, db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='employees'`).Scan(&name))
}
