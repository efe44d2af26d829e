package app

import (
	"context"

	"github.com/alexanderramin/obreport/internal/domain"
)

type DailyReportUseCase interface {
	Daily(ctx context.Context, req ReportRequest) (*ReportResponse, error)
}

type EfficiencyReportUseCase interface {
	Efficiency(ctx context.Context, req ReportRequest) (*ReportResponse, error)
}

type BothReportsUseCase interface {
	Both(ctx context.Context, req ReportRequest) (*BothResponse, error)
}

type SaveOverrideUseCase interface {
	Save(ctx context.Context, reportDate string, o domain.PreshipmentOverride) (*domain.OverrideDraft, error)
}
