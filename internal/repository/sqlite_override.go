package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/obreport/internal/db"
	"github.com/alexanderramin/obreport/internal/domain"
)

// SQLiteOverrideDraftRepo implements OverrideDraftRepo using a SQLite database.
type SQLiteOverrideDraftRepo struct {
	db db.DBTX
}

func NewSQLiteOverrideDraftRepo(conn db.DBTX) *SQLiteOverrideDraftRepo {
	return &SQLiteOverrideDraftRepo{db: conn}
}

func (r *SQLiteOverrideDraftRepo) Upsert(ctx context.Context, d *domain.OverrideDraft) error {
	query := `INSERT INTO override_drafts (id, report_date, worker, quantity, ewh, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (report_date, worker) DO UPDATE SET
			quantity = excluded.quantity,
			ewh = excluded.ewh`
	_, err := r.db.ExecContext(ctx, query,
		d.ID,
		d.ReportDate,
		d.Worker,
		d.Quantity,
		d.EWH,
		timeToString(d.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("upserting override draft: %w", err)
	}
	return nil
}

// ListByDate returns the drafts of reportDate in the order they were first saved.
func (r *SQLiteOverrideDraftRepo) ListByDate(ctx context.Context, reportDate string) ([]*domain.OverrideDraft, error) {
	query := `SELECT id, report_date, worker, quantity, ewh, created_at
		FROM override_drafts WHERE report_date = ? ORDER BY created_at, rowid`
	rows, err := r.db.QueryContext(ctx, query, reportDate)
	if err != nil {
		return nil, fmt.Errorf("listing override drafts: %w", err)
	}
	defer rows.Close()

	var out []*domain.OverrideDraft
	for rows.Next() {
		var d domain.OverrideDraft
		var createdAt string
		if err := rows.Scan(&d.ID, &d.ReportDate, &d.Worker, &d.Quantity, &d.EWH, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning override draft: %w", err)
		}
		d.CreatedAt = parseStoredTime(createdAt)
		out = append(out, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating override drafts: %w", err)
	}
	return out, nil
}

func (r *SQLiteOverrideDraftRepo) Delete(ctx context.Context, reportDate, worker string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM override_drafts WHERE report_date = ? AND worker = ?`, reportDate, worker)
	if err != nil {
		return fmt.Errorf("deleting override draft: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting override draft: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("override draft %s/%s: %w", reportDate, worker, ErrNotFound)
	}
	return nil
}

func (r *SQLiteOverrideDraftRepo) DeleteByDate(ctx context.Context, reportDate string) (int, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM override_drafts WHERE report_date = ?`, reportDate)
	if err != nil {
		return 0, fmt.Errorf("clearing override drafts: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("clearing override drafts: %w", err)
	}
	return int(n), nil
}
