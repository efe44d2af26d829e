package ewh

import (
	"fmt"
	"time"

	"github.com/alexanderramin/obreport/internal/domain"
)

// Report is the ordered outcome of one pass.
type Report struct {
	Mode domain.ReportMode
	Rows []domain.WorkerReportRow

	// Events is the number of events handed to the aggregator.
	Events           int
	Dropped          int
	DroppedOverrides int
	Processed        map[domain.Category]int
}

// TotalEWH sums the row totals.
func (r *Report) TotalEWH() float64 {
	var total float64
	for _, row := range r.Rows {
		total += row.TotalEWH
	}
	return total
}

// BuildDaily runs the full-day pass: aggregate every event, merge overrides,
// order. Compensation never applies to the daily figures.
func BuildDaily(events []domain.WorkEvent, overrides []domain.PreshipmentOverride, opts Options) (*Report, error) {
	if len(events) == 0 && len(overrides) == 0 {
		return nil, ErrNoInput
	}
	opts.Compensation = NoCompensation()

	agg, err := Aggregate(events, opts)
	if err != nil {
		return nil, fmt.Errorf("daily report: %w", err)
	}
	rows, err := MergeOverrides(agg, overrides, opts.Logger)
	if err != nil {
		return nil, fmt.Errorf("daily report: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrNoInput
	}

	return &Report{
		Mode:             domain.ModeDaily,
		Rows:             rows,
		Events:           len(events),
		Dropped:          agg.Dropped,
		DroppedOverrides: agg.DroppedOverrides,
		Processed:        agg.Processed,
	}, nil
}

// EfficiencyOptions returns opts with one threshold for every category.
func EfficiencyOptions(threshold time.Duration, compensation CompensationPolicy, opts Options) Options {
	opts.PickingThreshold = threshold
	opts.PackingThreshold = threshold
	opts.Compensation = compensation
	return opts
}

// BuildEfficiency runs the morning-only pass with opts as given, the
// compensation policy included. Overrides never take part.
func BuildEfficiency(events []domain.WorkEvent, opts Options, loc *time.Location) (*Report, error) {
	morning := FilterMorning(events, loc)
	if len(morning) == 0 {
		return nil, ErrNoMorningData
	}

	agg, err := Aggregate(morning, opts)
	if err != nil {
		return nil, fmt.Errorf("efficiency report: %w", err)
	}
	if agg.Len() == 0 {
		return nil, ErrNoMorningData
	}

	return &Report{
		Mode:      domain.ModeEfficiency,
		Rows:      Rows(agg),
		Events:    len(morning),
		Dropped:   agg.Dropped,
		Processed: agg.Processed,
	}, nil
}

// FilterMorning keeps valid events whose local hour falls in [0, 12).
// A nil location means time.Local.
func FilterMorning(events []domain.WorkEvent, loc *time.Location) []domain.WorkEvent {
	if loc == nil {
		loc = time.Local
	}
	out := make([]domain.WorkEvent, 0, len(events))
	for _, e := range events {
		if !e.Valid() {
			continue
		}
		if e.Timestamp.In(loc).Hour() < 12 {
			out = append(out, e)
		}
	}
	return out
}
