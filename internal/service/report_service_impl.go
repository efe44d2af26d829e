package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/alexanderramin/obreport/internal/app"
	"github.com/alexanderramin/obreport/internal/db"
	"github.com/alexanderramin/obreport/internal/domain"
	"github.com/alexanderramin/obreport/internal/ewh"
	"github.com/alexanderramin/obreport/internal/export"
	"github.com/alexanderramin/obreport/internal/importer"
	"github.com/alexanderramin/obreport/internal/repository"
)

// ReportSettings are the per-pass engine options and report constants.
type ReportSettings struct {
	Daily      ewh.Options
	Efficiency ewh.Options
	Location   *time.Location
	Department string
	Logger     *zap.Logger
}

func DefaultReportSettings() ReportSettings {
	return ReportSettings{
		Daily:      ewh.DefaultOptions(),
		Efficiency: ewh.DefaultOptions(),
		Location:   time.Local,
		Department: "OB",
	}
}

type reportService struct {
	loader   EventLoader
	drafts   repository.OverrideDraftRepo
	runs     repository.ReportRunRepo
	uow      db.UnitOfWork
	settings ReportSettings
	logger   *zap.Logger
	observer UseCaseObserver
}

func NewReportService(
	loader EventLoader,
	drafts repository.OverrideDraftRepo,
	runs repository.ReportRunRepo,
	uow db.UnitOfWork,
	settings ReportSettings,
	observers ...UseCaseObserver,
) ReportService {
	if settings.Location == nil {
		settings.Location = time.Local
	}
	logger := settings.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &reportService{
		loader:   loader,
		drafts:   drafts,
		runs:     runs,
		uow:      uow,
		settings: settings,
		logger:   logger,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *reportService) Daily(ctx context.Context, req app.ReportRequest) (resp *app.ReportResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"mode": string(domain.ModeDaily)}
	defer func() { observe(ctx, s.observer, "daily-report", startedAt, fields, err) }()

	batch, err := s.load(ctx, &req)
	if err != nil {
		return nil, err
	}
	return s.daily(ctx, req, batch, fields)
}

func (s *reportService) Efficiency(ctx context.Context, req app.ReportRequest) (resp *app.ReportResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"mode": string(domain.ModeEfficiency)}
	defer func() { observe(ctx, s.observer, "efficiency-report", startedAt, fields, err) }()

	batch, err := s.load(ctx, &req)
	if err != nil {
		return nil, err
	}
	return s.efficiency(ctx, req, batch, fields)
}

// Both runs the daily pass and then the efficiency pass over the same
// events. The passes share no aggregation state. Missing morning data only
// skips the efficiency report.
func (s *reportService) Both(ctx context.Context, req app.ReportRequest) (resp *app.BothResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"mode": "both"}
	defer func() { observe(ctx, s.observer, "both-reports", startedAt, fields, err) }()

	batch, err := s.load(ctx, &req)
	if err != nil {
		return nil, err
	}

	resp = &app.BothResponse{}
	if resp.Daily, err = s.daily(ctx, req, batch, fields); err != nil {
		return nil, err
	}
	resp.Efficiency, err = s.efficiency(ctx, req, batch, fields)
	if IsReportError(err, app.ReportErrNoMorningData) {
		resp.Warnings = append(resp.Warnings, "efficiency report skipped: "+err.Error())
		return resp, nil
	}
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *reportService) History(ctx context.Context, limit int) ([]*domain.ReportRun, error) {
	return s.runs.ListRecent(ctx, limit)
}

func (s *reportService) load(ctx context.Context, req *app.ReportRequest) (*importer.Batch, error) {
	if req.Format == "" {
		req.Format = app.FormatXLSX
	}
	if !app.ValidOutputFormats[req.Format] {
		return nil, &app.ReportError{Code: app.ReportErrInvalidRequest, Message: fmt.Sprintf("unknown output format %q", req.Format)}
	}
	if req.ReportDate != "" {
		if err := validateDate(req.ReportDate); err != nil {
			return nil, &app.ReportError{Code: app.ReportErrInvalidRequest, Message: err.Error()}
		}
	}
	if req.PickingPath == "" && req.PackingPath == "" {
		return &importer.Batch{}, nil
	}

	batch, err := s.loader.Load(ctx, req.PickingPath, req.PackingPath)
	if err != nil {
		return nil, fmt.Errorf("loading scan exports: %w", err)
	}
	for _, d := range batch.Diagnostics {
		s.logger.Warn("skipped export row", zap.String("diagnostic", d.String()))
	}
	return batch, nil
}

func (s *reportService) daily(ctx context.Context, req app.ReportRequest, batch *importer.Batch, fields map[string]any) (*app.ReportResponse, error) {
	now := s.now(req)
	date := s.reportDate(req, batch.Events, now)

	overrides, err := s.collectOverrides(ctx, req, date)
	if err != nil {
		return nil, err
	}
	fields["overrides"] = len(overrides)

	report, err := ewh.BuildDaily(batch.Events, overrides, s.settings.Daily)
	if errors.Is(err, ewh.ErrNoInput) {
		return nil, &app.ReportError{Code: app.ReportErrNoInput, Message: "no scan events and no preshipment overrides"}
	}
	if err != nil {
		return nil, err
	}

	resp := s.response(report, req, batch, date, now)
	fields["rows"] = len(resp.Rows)
	if err := s.finish(ctx, req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *reportService) efficiency(ctx context.Context, req app.ReportRequest, batch *importer.Batch, fields map[string]any) (*app.ReportResponse, error) {
	now := s.now(req)
	if len(batch.Events) == 0 {
		return nil, &app.ReportError{Code: app.ReportErrNoInput, Message: "no scan events"}
	}

	report, err := ewh.BuildEfficiency(batch.Events, s.settings.Efficiency, s.settings.Location)
	if errors.Is(err, ewh.ErrNoMorningData) {
		return nil, &app.ReportError{Code: app.ReportErrNoMorningData, Message: "no scan events before 12:00"}
	}
	if err != nil {
		return nil, err
	}

	date := s.reportDate(req, ewh.FilterMorning(batch.Events, s.settings.Location), now)
	resp := s.response(report, req, batch, date, now)
	fields["efficiency_rows"] = len(resp.Rows)
	if err := s.finish(ctx, req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// collectOverrides returns saved drafts, then file entries, then request
// overrides, in that order.
func (s *reportService) collectOverrides(ctx context.Context, req app.ReportRequest, date string) ([]domain.PreshipmentOverride, error) {
	var out []domain.PreshipmentOverride

	if !req.SkipDrafts && s.drafts != nil {
		drafts, err := s.drafts.ListByDate(ctx, date)
		if err != nil {
			return nil, fmt.Errorf("loading override drafts: %w", err)
		}
		for _, d := range drafts {
			out = append(out, d.Override())
		}
	}

	if req.OverrideFile != "" {
		file, err := importer.LoadOverrideFile(req.OverrideFile)
		if err != nil {
			return nil, &app.ReportError{Code: app.ReportErrInvalidOverride, Message: err.Error()}
		}
		if errs := importer.ValidateOverrideFile(file); len(errs) > 0 {
			return nil, invalidOverride(errs)
		}
		if file.Date != "" && file.Date != date {
			return nil, &app.ReportError{
				Code:    app.ReportErrInvalidOverride,
				Message: fmt.Sprintf("override file is for %s, report is for %s", file.Date, date),
			}
		}
		out = append(out, file.ToOverrides()...)
	}

	return append(out, req.Overrides...), nil
}

func (s *reportService) response(report *ewh.Report, req app.ReportRequest, batch *importer.Batch, date string, now time.Time) *app.ReportResponse {
	reportTime := req.ReportTime
	if reportTime == "" {
		reportTime = now.In(s.settings.Location).Format("15:04")
	}
	return &app.ReportResponse{
		Mode:             report.Mode,
		ReportDate:       date,
		ReportTime:       reportTime,
		Department:       s.settings.Department,
		Rows:             report.Rows,
		Events:           report.Events,
		DroppedEvents:    report.Dropped,
		DroppedOverrides: report.DroppedOverrides,
		Diagnostics:      diagnosticStrings(batch.Diagnostics),
	}
}

// finish writes the output file and records the run.
func (s *reportService) finish(ctx context.Context, req app.ReportRequest, resp *app.ReportResponse) error {
	if req.Format != app.FormatNone {
		dir := req.OutputDir
		if dir == "" {
			dir = "."
		}
		path := export.Path(dir, resp.Mode, resp.ReportDate, "."+string(req.Format))
		meta := export.Meta{
			Date:       resp.ReportDate,
			Time:       resp.ReportTime,
			Department: resp.Department,
			Location:   s.settings.Location,
		}
		if err := export.Save(path, resp.Mode, meta, resp.Rows); err != nil {
			return fmt.Errorf("writing %s report: %w", resp.Mode, err)
		}
		resp.OutputPath = path
	}

	run := &domain.ReportRun{
		ID:               uuid.New().String(),
		Mode:             resp.Mode,
		ReportDate:       resp.ReportDate,
		RowCount:         len(resp.Rows),
		TotalEWH:         resp.TotalEWH(),
		OutputPath:       resp.OutputPath,
		DroppedEvents:    resp.DroppedEvents,
		DroppedOverrides: resp.DroppedOverrides,
		CreatedAt:        time.Now().UTC(),
	}
	if s.uow != nil {
		err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			return repository.NewSQLiteReportRunRepo(tx).Create(ctx, run)
		})
		if err != nil {
			return fmt.Errorf("recording report run: %w", err)
		}
		resp.RunID = run.ID
	}

	s.logger.Info("report generated",
		zap.String("mode", string(resp.Mode)),
		zap.String("date", resp.ReportDate),
		zap.Int("rows", len(resp.Rows)),
		zap.Int("dropped_events", resp.DroppedEvents),
		zap.Int("dropped_overrides", resp.DroppedOverrides),
		zap.String("output", resp.OutputPath))
	return nil
}

func (s *reportService) now(req app.ReportRequest) time.Time {
	if req.Now != nil {
		return *req.Now
	}
	return time.Now()
}

// reportDate is the requested date, else the local date of the earliest
// scan, else today.
func (s *reportService) reportDate(req app.ReportRequest, events []domain.WorkEvent, now time.Time) string {
	if req.ReportDate != "" {
		return req.ReportDate
	}
	if first, ok := earliestScan(events); ok {
		return first.In(s.settings.Location).Format(repository.DateLayout)
	}
	return now.In(s.settings.Location).Format(repository.DateLayout)
}
