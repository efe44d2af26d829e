package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/obreport/internal/db"
	"github.com/alexanderramin/obreport/internal/domain"
)

// SQLiteReportRunRepo implements ReportRunRepo using a SQLite database.
type SQLiteReportRunRepo struct {
	db db.DBTX
}

func NewSQLiteReportRunRepo(conn db.DBTX) *SQLiteReportRunRepo {
	return &SQLiteReportRunRepo{db: conn}
}

const reportRunColumns = `id, mode, report_date, row_count, total_ewh, output_path,
	dropped_events, dropped_overrides, created_at`

func (r *SQLiteReportRunRepo) Create(ctx context.Context, run *domain.ReportRun) error {
	if !domain.ValidReportModes[string(run.Mode)] {
		return fmt.Errorf("inserting report run: unknown mode %q", run.Mode)
	}
	query := `INSERT INTO report_runs (` + reportRunColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		run.ID,
		string(run.Mode),
		run.ReportDate,
		run.RowCount,
		run.TotalEWH,
		run.OutputPath,
		run.DroppedEvents,
		run.DroppedOverrides,
		timeToString(run.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting report run: %w", err)
	}
	return nil
}

// ListRecent returns up to limit runs, newest first. A non-positive limit
// returns every run.
func (r *SQLiteReportRunRepo) ListRecent(ctx context.Context, limit int) ([]*domain.ReportRun, error) {
	if limit <= 0 {
		limit = -1
	}
	query := `SELECT ` + reportRunColumns + ` FROM report_runs ORDER BY created_at DESC, rowid DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing report runs: %w", err)
	}
	return scanRuns(rows)
}

func (r *SQLiteReportRunRepo) ListByDate(ctx context.Context, reportDate string) ([]*domain.ReportRun, error) {
	query := `SELECT ` + reportRunColumns + ` FROM report_runs WHERE report_date = ? ORDER BY created_at, rowid`
	rows, err := r.db.QueryContext(ctx, query, reportDate)
	if err != nil {
		return nil, fmt.Errorf("listing report runs for %s: %w", reportDate, err)
	}
	return scanRuns(rows)
}

func scanRuns(rows *sql.Rows) ([]*domain.ReportRun, error) {
	defer rows.Close()

	var out []*domain.ReportRun
	for rows.Next() {
		var run domain.ReportRun
		var mode, createdAt string
		err := rows.Scan(
			&run.ID,
			&mode,
			&run.ReportDate,
			&run.RowCount,
			&run.TotalEWH,
			&run.OutputPath,
			&run.DroppedEvents,
			&run.DroppedOverrides,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning report run: %w", err)
		}
		run.Mode = domain.ReportMode(mode)
		run.CreatedAt = parseStoredTime(createdAt)
		out = append(out, &run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating report runs: %w", err)
	}
	return out, nil
}
