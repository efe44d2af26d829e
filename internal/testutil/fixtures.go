package testutil

import (
	"fmt"
	"time"

	"github.com/alexanderramin/obreport/internal/domain"
	"github.com/google/uuid"
)

// Day is the report date used by fixtures.
var Day = time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

// At returns Day at hour:minute UTC.
func At(hour, minute int) time.Time {
	return Day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

// Event options
type EventOption func(*domain.WorkEvent)

func WithCategory(c domain.Category) EventOption {
	return func(e *domain.WorkEvent) {
		e.Category = c
	}
}

func WithQuantity(q int) EventOption {
	return func(e *domain.WorkEvent) {
		e.Quantity = q
	}
}

func WithoutTimestamp() EventOption {
	return func(e *domain.WorkEvent) {
		e.Timestamp = nil
	}
}

func WithSource(src string) EventOption {
	return func(e *domain.WorkEvent) {
		e.Source = src
	}
}

// NewTestEvent returns a single-item pick_single event.
func NewTestEvent(worker string, ts time.Time, opts ...EventOption) domain.WorkEvent {
	e := domain.WorkEvent{
		Worker:    worker,
		Timestamp: &ts,
		Quantity:  1,
		Category:  domain.CategoryPickSingle,
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// NewTestEvents returns one event per timestamp.
func NewTestEvents(worker string, times []time.Time, opts ...EventOption) []domain.WorkEvent {
	out := make([]domain.WorkEvent, 0, len(times))
	for i, ts := range times {
		e := NewTestEvent(worker, ts, opts...)
		if e.Source == "" {
			e.Source = fmt.Sprintf("fixture:%d", i+2)
		}
		out = append(out, e)
	}
	return out
}

func NewTestEmployee(name string) *domain.Employee {
	return &domain.Employee{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
}

func NewTestOverrideDraft(reportDate, worker string, qty int, ewh float64) *domain.OverrideDraft {
	return &domain.OverrideDraft{
		ID:         uuid.New().String(),
		ReportDate: reportDate,
		Worker:     worker,
		Quantity:   qty,
		EWH:        ewh,
		CreatedAt:  time.Now().UTC(),
	}
}

// Run options
type RunOption func(*domain.ReportRun)

func WithRunCreatedAt(t time.Time) RunOption {
	return func(r *domain.ReportRun) {
		r.CreatedAt = t
	}
}

func WithRunOutput(path string) RunOption {
	return func(r *domain.ReportRun) {
		r.OutputPath = path
	}
}

func NewTestRun(mode domain.ReportMode, reportDate string, opts ...RunOption) *domain.ReportRun {
	r := &domain.ReportRun{
		ID:         uuid.New().String(),
		Mode:       mode,
		ReportDate: reportDate,
		RowCount:   3,
		TotalEWH:   7.5,
		CreatedAt:  time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}
