package importer

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/alexanderramin/obreport/internal/domain"
)

// Layout locates the fields of one export format by zero-based column.
// Single and Multi are -1 when the format has no classification columns.
type Layout struct {
	Name     string
	Quantity int
	Single   int
	Multi    int
	Worker   int
	Time     int
}

// PickingLayout: quantity I, single J, multi K, worker L, time M.
var PickingLayout = Layout{Name: "picking", Quantity: 8, Single: 9, Multi: 10, Worker: 11, Time: 12}

// PackingLayout: quantity H, worker V, time X.
var PackingLayout = Layout{Name: "packing", Quantity: 7, Single: -1, Multi: -1, Worker: 21, Time: 23}

// minCells is the row width needed to reach every column of l.
func (l Layout) minCells() int {
	return max(l.Quantity, l.Single, l.Multi, l.Worker, l.Time) + 1
}

// Diagnostic describes a row that was skipped.
type Diagnostic struct {
	Source string
	Row    int
	Reason string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%d: %s", d.Source, d.Row, d.Reason)
}

// Normalizer turns raw rows into work events.
type Normalizer struct {
	Location *time.Location
	Logger   *zap.Logger
}

func (n Normalizer) logger() *zap.Logger {
	if n.Logger == nil {
		return zap.NewNop()
	}
	return n.Logger
}

// Normalize converts rows of the given layout. The first row is a header.
// Rows too short to reach every column are ignored silently; rows without
// a worker or with an unresolvable timestamp become diagnostics.
func (n Normalizer) Normalize(rows [][]string, layout Layout, source string) ([]domain.WorkEvent, []Diagnostic) {
	log := n.logger()
	if len(rows) < 2 {
		return nil, nil
	}

	var events []domain.WorkEvent
	var diags []Diagnostic
	width := layout.minCells()

	for i, row := range rows[1:] {
		line := i + 2
		if len(row) < width {
			continue
		}
		worker := strings.TrimSpace(row[layout.Worker])
		rawTime := strings.TrimSpace(row[layout.Time])
		if worker == "" || rawTime == "" {
			if worker != "" || rawTime != "" {
				diags = append(diags, Diagnostic{Source: source, Row: line, Reason: "missing worker or time"})
			}
			continue
		}

		ts, err := ParseTimestamp(rawTime, n.Location)
		if err != nil {
			d := Diagnostic{Source: source, Row: line, Reason: err.Error()}
			diags = append(diags, d)
			log.Warn("dropping row", zap.String("source", source), zap.Int("row", line), zap.Error(err))
			continue
		}

		category := domain.CategoryPack
		if layout.Single >= 0 {
			category = domain.ClassifyPick(parseCount(row[layout.Single], 0), parseCount(row[layout.Multi], 0))
		}

		events = append(events, domain.WorkEvent{
			Worker:    worker,
			Timestamp: &ts,
			Quantity:  parseCount(row[layout.Quantity], 1),
			Category:  category,
			Source:    fmt.Sprintf("%s:%d", source, line),
		})
	}

	logRange(log, layout.Name, events)
	return events, diags
}

func logRange(log *zap.Logger, name string, events []domain.WorkEvent) {
	if len(events) == 0 {
		return
	}
	first, last := *events[0].Timestamp, *events[0].Timestamp
	for _, e := range events[1:] {
		if e.Timestamp.Before(first) {
			first = *e.Timestamp
		}
		if e.Timestamp.After(last) {
			last = *e.Timestamp
		}
	}
	log.Info("normalized export",
		zap.String("kind", name),
		zap.Int("events", len(events)),
		zap.String("date", first.Format("2006-01-02")),
		zap.String("from", first.Format("15:04")),
		zap.String("to", last.Format("15:04")))
}

// parseCount reads the leading integer of a cell. Missing, non-numeric and
// non-positive values give fallback.
func parseCount(raw string, fallback int) int {
	s := strings.TrimSpace(raw)
	if s == "" {
		return fallback
	}
	if n, err := strconv.Atoi(s); err == nil {
		return positiveOr(n, fallback)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return positiveOr(int(f), fallback)
	}
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return fallback
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return fallback
	}
	return positiveOr(n, fallback)
}

func positiveOr(n, fallback int) int {
	if n <= 0 {
		return fallback
	}
	return n
}
