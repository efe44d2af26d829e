package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/obreport/internal/db"
	"github.com/alexanderramin/obreport/internal/domain"
)

// SQLiteEmployeeRepo implements EmployeeRepo using a SQLite database.
type SQLiteEmployeeRepo struct {
	db db.DBTX
}

func NewSQLiteEmployeeRepo(conn db.DBTX) *SQLiteEmployeeRepo {
	return &SQLiteEmployeeRepo{db: conn}
}

func (r *SQLiteEmployeeRepo) Create(ctx context.Context, e *domain.Employee) error {
	query := `INSERT INTO employees (id, name, created_at) VALUES (?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, e.ID, e.Name, timeToString(e.CreatedAt))
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("employee %q: %w", e.Name, ErrDuplicate)
		}
		return fmt.Errorf("inserting employee: %w", err)
	}
	return nil
}

func (r *SQLiteEmployeeRepo) GetByName(ctx context.Context, name string) (*domain.Employee, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, created_at FROM employees WHERE name = ?`, name)

	var e domain.Employee
	var createdAt string
	if err := row.Scan(&e.ID, &e.Name, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("employee %q: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning employee: %w", err)
	}
	e.CreatedAt = parseStoredTime(createdAt)
	return &e, nil
}

func (r *SQLiteEmployeeRepo) List(ctx context.Context) ([]*domain.Employee, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, created_at FROM employees ORDER BY created_at, name`)
	if err != nil {
		return nil, fmt.Errorf("listing employees: %w", err)
	}
	defer rows.Close()

	var out []*domain.Employee
	for rows.Next() {
		var e domain.Employee
		var createdAt string
		if err := rows.Scan(&e.ID, &e.Name, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning employee row: %w", err)
		}
		e.CreatedAt = parseStoredTime(createdAt)
		out = append(out, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating employees: %w", err)
	}
	return out, nil
}

func (r *SQLiteEmployeeRepo) Delete(ctx context.Context, name string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM employees WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("deleting employee: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting employee: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("employee %q: %w", name, ErrNotFound)
	}
	return nil
}
