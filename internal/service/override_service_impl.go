package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/obreport/internal/db"
	"github.com/alexanderramin/obreport/internal/domain"
	"github.com/alexanderramin/obreport/internal/repository"
)

type overrideService struct {
	drafts   repository.OverrideDraftRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewOverrideService(drafts repository.OverrideDraftRepo, uow db.UnitOfWork, observers ...UseCaseObserver) OverrideService {
	return &overrideService{
		drafts:   drafts,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

// Save stores o as the draft of (reportDate, worker), replacing any earlier one.
func (s *overrideService) Save(ctx context.Context, reportDate string, o domain.PreshipmentOverride) (draft *domain.OverrideDraft, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"date": reportDate, "worker": o.Worker}
	defer func() { observe(ctx, s.observer, "save-override", startedAt, fields, err) }()

	if err = validateDate(reportDate); err != nil {
		return nil, err
	}
	o.Worker = strings.TrimSpace(o.Worker)
	if err = o.Validate(); err != nil {
		return nil, err
	}

	draft = &domain.OverrideDraft{
		ID:         uuid.New().String(),
		ReportDate: reportDate,
		Worker:     o.Worker,
		Quantity:   o.Quantity,
		EWH:        o.EWH,
		CreatedAt:  time.Now().UTC(),
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteOverrideDraftRepo(tx)
		if err := repo.Upsert(ctx, draft); err != nil {
			return err
		}
		saved, err := repo.ListByDate(ctx, reportDate)
		if err != nil {
			return err
		}
		for _, d := range saved {
			if d.Worker == draft.Worker {
				draft = d
				return nil
			}
		}
		return fmt.Errorf("override draft for %q: %w", draft.Worker, repository.ErrNotFound)
	})
	if err != nil {
		return nil, err
	}
	return draft, nil
}

func (s *overrideService) List(ctx context.Context, reportDate string) ([]*domain.OverrideDraft, error) {
	if err := validateDate(reportDate); err != nil {
		return nil, err
	}
	return s.drafts.ListByDate(ctx, reportDate)
}

func (s *overrideService) Remove(ctx context.Context, reportDate, worker string) error {
	return s.drafts.Delete(ctx, reportDate, strings.TrimSpace(worker))
}

func (s *overrideService) Clear(ctx context.Context, reportDate string) (int, error) {
	if err := validateDate(reportDate); err != nil {
		return 0, err
	}
	return s.drafts.DeleteByDate(ctx, reportDate)
}
