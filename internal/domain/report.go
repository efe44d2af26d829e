package domain

import (
	"errors"
	"fmt"
)

// CategorySummary holds the EWH/UPH figures of one worker in one category.
type CategorySummary struct {
	Category   Category
	Quantity   int
	EventCount int

	// EWHHours is the reported effective hours: PreciseHours, possibly compensated.
	EWHHours        float64
	PreciseHours    float64
	SimpleHours     float64
	Segments        []WorkSegment
	AnomalyDetected bool
	Compensated     bool

	// UPH is nil when EWHHours is zero.
	UPH *float64
}

// PreshipmentBlock is the manually entered preshipment part of a report row.
type PreshipmentBlock struct {
	Quantity int
	EWH      float64
	UPH      *float64
}

// WorkerReportRow is the per-worker line of a report.
type WorkerReportRow struct {
	Worker string
	// FirstSeen is the order in which the worker was first encountered.
	FirstSeen int

	Categories  map[Category]*CategorySummary
	PickCount   int
	PackCount   int
	TotalEWH    float64
	Preshipment *PreshipmentBlock
}

// NewWorkerReportRow returns an empty row for worker.
func NewWorkerReportRow(worker string, firstSeen int) *WorkerReportRow {
	return &WorkerReportRow{
		Worker:     worker,
		FirstSeen:  firstSeen,
		Categories: make(map[Category]*CategorySummary),
	}
}

// Category returns the summary for c, or nil when the worker has no events in c.
func (r *WorkerReportRow) Category(c Category) *CategorySummary {
	if r.Categories == nil {
		return nil
	}
	return r.Categories[c]
}

// HasScans reports whether the row carries any scan-derived category.
func (r *WorkerReportRow) HasScans() bool {
	return len(r.Categories) > 0
}

// PickingEWH is the combined single and multi picking EWH.
func (r *WorkerReportRow) PickingEWH() float64 {
	var total float64
	for _, c := range []Category{CategoryPickSingle, CategoryPickMulti} {
		if s := r.Category(c); s != nil {
			total += s.EWHHours
		}
	}
	return total
}

// PickingUPH is PickCount over PickingEWH, nil when no picking time was measured.
func (r *WorkerReportRow) PickingUPH() *float64 {
	return Ratio(float64(r.PickCount), r.PickingEWH())
}

// PackingUPH mirrors the pack category UPH.
func (r *WorkerReportRow) PackingUPH() *float64 {
	if s := r.Category(CategoryPack); s != nil {
		return s.UPH
	}
	return nil
}

// Ratio returns num/den, or nil when den is not positive.
func Ratio(num, den float64) *float64 {
	if den <= 0 {
		return nil
	}
	v := num / den
	return &v
}

var (
	ErrOverrideWorkerRequired = errors.New("override worker is required")
	ErrOverrideQuantity       = errors.New("override quantity must be positive")
	ErrOverrideNegativeEWH    = errors.New("override EWH must not be negative")
)

// PreshipmentOverride is a manually supplied preshipment figure for one worker.
type PreshipmentOverride struct {
	Worker   string
	Quantity int
	EWH      float64
}

func (o PreshipmentOverride) Validate() error {
	if o.Worker == "" {
		return ErrOverrideWorkerRequired
	}
	if o.Quantity <= 0 {
		return fmt.Errorf("%w: %s has %d", ErrOverrideQuantity, o.Worker, o.Quantity)
	}
	if o.EWH < 0 {
		return fmt.Errorf("%w: %s has %.2f", ErrOverrideNegativeEWH, o.Worker, o.EWH)
	}
	return nil
}
