// Package export lays report rows out as spreadsheet records and writes them
// as .xlsx workbooks or .csv files.
package export

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/obreport/internal/domain"
	"github.com/alexanderramin/obreport/internal/ewh"
)

// DailyHeaders is the column order of the daily report.
var DailyHeaders = []string{
	"Date", "TIME", "EWH", "department", "worker", "pick", "pack", "box",
	"Preshipment", "Packing UPH", "Picking UPH", "Preship UPH",
}

// EfficiencyHeaders is the header line repeated under each efficiency section.
var EfficiencyHeaders = []string{"Date", "", "Worker", "Qty", "EWH", "UPH", "Multi", "Remark"}

const (
	SectionPicking = "PICKING"
	SectionPacking = "PACKING"
)

// Meta carries the values every row of a report repeats.
type Meta struct {
	// Date is YYYY-MM-DD.
	Date       string
	Time       string
	Department string
	// Location renders segment times. Nil means time.Local.
	Location *time.Location
}

// DisplayDate renders Date as YYYY/MM/DD, the form the report columns use.
func (m Meta) DisplayDate() string {
	return strings.ReplaceAll(m.Date, "-", "/")
}

func (m Meta) location() *time.Location {
	if m.Location == nil {
		return time.Local
	}
	return m.Location
}

// FileName returns e.g. daily-20250314.xlsx. ext includes the dot.
func FileName(mode domain.ReportMode, date, ext string) string {
	return fmt.Sprintf("%s-%s%s", mode, strings.ReplaceAll(date, "-", ""), ext)
}

// Path joins dir and FileName.
func Path(dir string, mode domain.ReportMode, date, ext string) string {
	return filepath.Join(dir, FileName(mode, date, ext))
}

// DailyRecords returns one record per row in row order. Cells are strings,
// ints or float64s; undefined values are empty strings.
func DailyRecords(meta Meta, rows []domain.WorkerReportRow) [][]any {
	records := make([][]any, 0, len(rows))
	for i := range rows {
		r := &rows[i]
		var preQty, preUPH any = "", ""
		if r.Preshipment != nil {
			preQty = r.Preshipment.Quantity
			preUPH = rounded(r.Preshipment.UPH)
		}
		records = append(records, []any{
			meta.DisplayDate(),
			meta.Time,
			ewh.Round(r.TotalEWH, 2),
			meta.Department,
			r.Worker,
			countOrBlank(r.PickCount),
			countOrBlank(r.PackCount),
			"",
			preQty,
			rounded(r.PackingUPH()),
			rounded(r.PickingUPH()),
			preUPH,
		})
	}
	return records
}

// EfficiencyLine is one record of an efficiency section.
type EfficiencyLine struct {
	Worker   string
	Quantity int
	EWH      float64
	UPH      *float64
	Multi    bool
	Segments []domain.WorkSegment
}

// EfficiencyLines splits rows into the picking section (single then multi
// per worker) and the packing section. Categories without quantity are
// left out, so unknown-only workers never appear.
func EfficiencyLines(rows []domain.WorkerReportRow) (picking, packing []EfficiencyLine) {
	for i := range rows {
		r := &rows[i]
		for _, c := range []domain.Category{domain.CategoryPickSingle, domain.CategoryPickMulti} {
			if s := r.Category(c); s != nil && s.Quantity > 0 {
				picking = append(picking, lineFor(r.Worker, s, c == domain.CategoryPickMulti))
			}
		}
		if s := r.Category(domain.CategoryPack); s != nil && s.Quantity > 0 {
			packing = append(packing, lineFor(r.Worker, s, false))
		}
	}
	return picking, packing
}

func lineFor(worker string, s *domain.CategorySummary, multi bool) EfficiencyLine {
	return EfficiencyLine{
		Worker:   worker,
		Quantity: s.Quantity,
		EWH:      s.EWHHours,
		UPH:      s.UPH,
		Multi:    multi,
		Segments: s.Segments,
	}
}

// EfficiencyRecords lays out both sections with a blank record between them.
// It also returns the record indexes of the two section titles.
func EfficiencyRecords(meta Meta, rows []domain.WorkerReportRow) (records [][]any, titles []int) {
	picking, packing := EfficiencyLines(rows)
	blank := make([]any, len(EfficiencyHeaders))
	for i := range blank {
		blank[i] = ""
	}

	section := func(title string, lines []EfficiencyLine) {
		titles = append(titles, len(records))
		head := append([]any{title}, blank[1:]...)
		records = append(records, head, toAny(EfficiencyHeaders))
		for _, l := range lines {
			records = append(records, []any{
				meta.DisplayDate(),
				"",
				l.Worker,
				l.Quantity,
				ewh.Round(l.EWH, 2),
				rounded(l.UPH),
				yesNo(l.Multi),
				SegmentRemark(l.Segments, meta.location()),
			})
		}
	}

	section(SectionPicking, picking)
	records = append(records, blank)
	section(SectionPacking, packing)
	return records, titles
}

// SegmentRemark renders one "HH:MM-HH:MM (N min)" line per segment.
func SegmentRemark(segments []domain.WorkSegment, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	lines := make([]string, 0, len(segments))
	for _, s := range segments {
		lines = append(lines, fmt.Sprintf("%s-%s (%d min)",
			s.Start.In(loc).Format("15:04"),
			s.End.In(loc).Format("15:04"),
			int(math.Round(s.Duration().Minutes()))))
	}
	return strings.Join(lines, "\n")
}

func rounded(v *float64) any {
	if v == nil {
		return ""
	}
	return ewh.Round(*v, 2)
}

func countOrBlank(n int) any {
	if n <= 0 {
		return ""
	}
	return n
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

// cellString renders a record cell for text output.
func cellString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}
