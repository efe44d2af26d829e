package service

import (
	"context"

	"github.com/alexanderramin/obreport/internal/app"
	"github.com/alexanderramin/obreport/internal/domain"
	"github.com/alexanderramin/obreport/internal/importer"
)

type ReportService interface {
	app.DailyReportUseCase
	app.EfficiencyReportUseCase
	app.BothReportsUseCase
	History(ctx context.Context, limit int) ([]*domain.ReportRun, error)
}

type EmployeeService interface {
	Add(ctx context.Context, name string) (*domain.Employee, error)
	List(ctx context.Context) ([]*domain.Employee, error)
	Remove(ctx context.Context, name string) error
}

type OverrideService interface {
	app.SaveOverrideUseCase
	List(ctx context.Context, reportDate string) ([]*domain.OverrideDraft, error)
	Remove(ctx context.Context, reportDate, worker string) error
	Clear(ctx context.Context, reportDate string) (int, error)
}

// EventLoader reads a picking/packing file pair. Either path may be empty.
type EventLoader interface {
	Load(ctx context.Context, pickingPath, packingPath string) (*importer.Batch, error)
}
