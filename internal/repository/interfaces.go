package repository

import (
	"context"

	"github.com/alexanderramin/obreport/internal/domain"
)

type EmployeeRepo interface {
	Create(ctx context.Context, e *domain.Employee) error
	GetByName(ctx context.Context, name string) (*domain.Employee, error)
	List(ctx context.Context) ([]*domain.Employee, error)
	Delete(ctx context.Context, name string) error
}

type OverrideDraftRepo interface {
	// Upsert stores d, replacing any draft for the same date and worker.
	Upsert(ctx context.Context, d *domain.OverrideDraft) error
	ListByDate(ctx context.Context, reportDate string) ([]*domain.OverrideDraft, error)
	Delete(ctx context.Context, reportDate, worker string) error
	DeleteByDate(ctx context.Context, reportDate string) (int, error)
}

type ReportRunRepo interface {
	Create(ctx context.Context, r *domain.ReportRun) error
	ListRecent(ctx context.Context, limit int) ([]*domain.ReportRun, error)
	ListByDate(ctx context.Context, reportDate string) ([]*domain.ReportRun, error)
}
