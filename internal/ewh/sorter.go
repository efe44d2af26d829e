package ewh

import (
	"math"
	"sort"

	"github.com/alexanderramin/obreport/internal/domain"
)

// SortRows orders rows by the report rules:
// 1. TotalEWH: higher first (NaN counts as zero)
// 2. FirstSeen: earlier first
func SortRows(rows []domain.WorkerReportRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := totalOrZero(rows[i].TotalEWH), totalOrZero(rows[j].TotalEWH)
		if a != b {
			return a > b
		}
		return rows[i].FirstSeen < rows[j].FirstSeen
	})
}

// Rows returns the aggregated rows, without overrides, in report order.
func Rows(agg *Aggregation) []domain.WorkerReportRow {
	rows := agg.snapshot()
	SortRows(rows)
	return rows
}

func totalOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Round rounds v to places decimals, halves away from zero.
func Round(v float64, places int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
