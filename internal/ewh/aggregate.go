package ewh

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/alexanderramin/obreport/internal/domain"
)

const DefaultGapThreshold = 5 * time.Minute

var (
	ErrNoInput       = errors.New("no scan events and no preshipment overrides")
	ErrNoMorningData = errors.New("no scan events before noon")
	ErrAlreadyMerged = errors.New("overrides already merged into this aggregation")
)

// Options configures one aggregation pass.
type Options struct {
	PickingThreshold time.Duration
	PackingThreshold time.Duration
	Compensation     CompensationPolicy
	// Logger receives progress diagnostics. Nil means no logging.
	Logger *zap.Logger
}

// DefaultOptions returns 5 minute thresholds and no compensation.
func DefaultOptions() Options {
	return Options{
		PickingThreshold: DefaultGapThreshold,
		PackingThreshold: DefaultGapThreshold,
		Compensation:     NoCompensation(),
	}
}

func (o Options) Validate() error {
	if o.PickingThreshold <= 0 {
		return fmt.Errorf("picking gap threshold must be positive, got %s", o.PickingThreshold)
	}
	if o.PackingThreshold <= 0 {
		return fmt.Errorf("packing gap threshold must be positive, got %s", o.PackingThreshold)
	}
	return o.Compensation.Validate()
}

func (o Options) thresholdFor(c domain.Category) time.Duration {
	if c == domain.CategoryPack {
		return o.PackingThreshold
	}
	return o.PickingThreshold
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// Aggregation is the per-worker result of one pass. It is built fresh per
// call and may be merged with overrides at most once.
type Aggregation struct {
	rows map[string]*domain.WorkerReportRow

	// Order lists workers in first-seen order.
	Order []string
	// Dropped counts events rejected as invalid.
	Dropped int
	// DroppedOverrides counts overrides rejected during the merge.
	DroppedOverrides int
	// Processed counts valid events per category.
	Processed map[domain.Category]int

	merged bool
}

// Row returns the aggregated row for worker, or nil.
func (a *Aggregation) Row(worker string) *domain.WorkerReportRow {
	if a == nil {
		return nil
	}
	return a.rows[worker]
}

func (a *Aggregation) Len() int {
	if a == nil {
		return 0
	}
	return len(a.Order)
}

// Merged reports whether overrides were already folded into a.
func (a *Aggregation) Merged() bool {
	return a != nil && a.merged
}

// snapshot copies the rows in first-seen order. Category summaries are
// shared; nothing downstream mutates them.
func (a *Aggregation) snapshot() []domain.WorkerReportRow {
	if a == nil {
		return nil
	}
	out := make([]domain.WorkerReportRow, 0, len(a.Order))
	for _, w := range a.Order {
		out = append(out, *a.rows[w])
	}
	return out
}

type group struct {
	times    []time.Time
	quantity int
	events   int
}

type workerGroups struct {
	firstSeen  int
	categories map[domain.Category]*group
	catOrder   []domain.Category
}

// Aggregate groups events by worker then category, segments each measured
// group and derives EWH, UPH and worker totals. Invalid events are dropped
// and counted. An empty event list yields an empty aggregation.
func Aggregate(events []domain.WorkEvent, opts Options) (*Aggregation, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("aggregate: %w", err)
	}
	log := opts.logger()

	agg := &Aggregation{
		rows:      make(map[string]*domain.WorkerReportRow),
		Processed: make(map[domain.Category]int),
	}

	grouped := make(map[string]*workerGroups)
	for _, e := range events {
		if !e.Valid() {
			agg.Dropped++
			log.Warn("dropping invalid scan event",
				zap.String("source", e.Source),
				zap.String("worker", e.Worker),
				zap.Bool("has_timestamp", e.Timestamp != nil))
			continue
		}
		wg, ok := grouped[e.Worker]
		if !ok {
			wg = &workerGroups{firstSeen: len(agg.Order), categories: make(map[domain.Category]*group)}
			grouped[e.Worker] = wg
			agg.Order = append(agg.Order, e.Worker)
		}
		g, ok := wg.categories[e.Category]
		if !ok {
			g = &group{}
			wg.categories[e.Category] = g
			wg.catOrder = append(wg.catOrder, e.Category)
		}
		g.times = append(g.times, *e.Timestamp)
		g.quantity += e.EffectiveQuantity()
		g.events++
		agg.Processed[e.Category]++
	}

	for _, c := range domain.AllCategories {
		if n := agg.Processed[c]; n > 0 {
			log.Info("processed scan events", zap.String("category", string(c)), zap.Int("records", n))
		}
	}

	for _, worker := range agg.Order {
		wg := grouped[worker]
		row := domain.NewWorkerReportRow(worker, wg.firstSeen)
		for _, c := range wg.catOrder {
			s := summarize(c, wg.categories[c], opts)
			row.Categories[c] = s
			if c.IsPicking() {
				row.PickCount += s.Quantity
			} else {
				row.PackCount += s.Quantity
			}
			row.TotalEWH += s.EWHHours
		}
		agg.rows[worker] = row

		for _, c := range domain.ReportCategories {
			s := row.Category(c)
			if s == nil {
				continue
			}
			fields := []zap.Field{
				zap.String("worker", worker),
				zap.String("category", string(c)),
				zap.Int("quantity", s.Quantity),
				zap.Float64("ewh", s.EWHHours),
				zap.Int("segments", len(s.Segments)),
			}
			if s.UPH != nil {
				fields = append(fields, zap.Float64("uph", *s.UPH))
			}
			log.Debug("worker category summary", fields...)
		}
	}

	return agg, nil
}

func summarize(c domain.Category, g *group, opts Options) *domain.CategorySummary {
	s := &domain.CategorySummary{
		Category:   c,
		Quantity:   g.quantity,
		EventCount: g.events,
	}
	// Unclassified picks only count toward the raw pick total.
	if !c.Measured() {
		return s
	}

	res := Segment(g.times, opts.thresholdFor(c))
	hours, compensated := opts.Compensation.Apply(res)

	s.PreciseHours = res.PreciseHours
	s.SimpleHours = res.SimpleHours
	s.Segments = res.Segments
	s.AnomalyDetected = res.AnomalyDetected
	s.EWHHours = hours
	s.Compensated = compensated
	s.UPH = domain.Ratio(float64(s.Quantity), hours)
	return s
}
