package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/obreport/internal/app"
	"github.com/alexanderramin/obreport/internal/domain"
	"github.com/alexanderramin/obreport/internal/export"
)

// maxDiagnostics caps the diagnostics listed under a report.
const maxDiagnostics = 10

// maxWorkerWidth keeps free-text names from stretching the daily table.
const maxWorkerWidth = 24

var dailyAlign = []Align{AlignLeft, AlignRight, AlignRight, AlignRight, AlignRight, AlignRight, AlignRight, AlignRight}

// FormatDaily renders a daily report as a terminal table with its footer.
func FormatDaily(resp *app.ReportResponse) string {
	var b strings.Builder
	b.WriteString(reportTitle(resp))
	b.WriteString("\n\n")

	if len(resp.Rows) == 0 {
		b.WriteString(Dim("No rows."))
		b.WriteString("\n")
	} else {
		rows := make([][]string, 0, len(resp.Rows))
		for i := range resp.Rows {
			r := &resp.Rows[i]
			preQty, preUPH := Dim("-"), Dim("-")
			if r.Preshipment != nil {
				preQty = strconv.Itoa(r.Preshipment.Quantity)
				preUPH = OptFloat(r.Preshipment.UPH)
			}
			rows = append(rows, []string{
				Truncate(r.Worker, maxWorkerWidth),
				Hours(r.TotalEWH),
				Count(r.PickCount),
				Count(r.PackCount),
				preQty,
				OptFloat(r.PackingUPH()),
				OptFloat(r.PickingUPH()),
				preUPH,
			})
		}
		b.WriteString(RenderAlignedTable(
			[]string{"WORKER", "EWH", "PICK", "PACK", "PRESHIP", "PACK UPH", "PICK UPH", "PRESHIP UPH"},
			dailyAlign, rows))
	}

	b.WriteString("\n")
	b.WriteString(footer(resp))
	return b.String()
}

// FormatEfficiency renders the picking and packing sections of an
// efficiency report. Segment times are shown in loc.
func FormatEfficiency(resp *app.ReportResponse, loc *time.Location) string {
	var b strings.Builder
	b.WriteString(reportTitle(resp))
	b.WriteString("\n")

	picking, packing := export.EfficiencyLines(resp.Rows)
	section := func(title string, lines []export.EfficiencyLine) {
		b.WriteString("\n")
		b.WriteString(Header(title))
		b.WriteString("\n")
		if len(lines) == 0 {
			b.WriteString(Dim("No scans."))
			b.WriteString("\n")
			return
		}
		rows := make([][]string, 0, len(lines))
		for _, l := range lines {
			multi := Dim("no")
			if l.Multi {
				multi = StylePurple.Render("yes")
			}
			remark := strings.ReplaceAll(export.SegmentRemark(l.Segments, loc), "\n", ", ")
			if len(l.Segments) > 1 {
				remark = StyleYellow.Render(remark)
			}
			rows = append(rows, []string{
				l.Worker,
				strconv.Itoa(l.Quantity),
				Hours(l.EWH),
				OptFloat(l.UPH),
				multi,
				remark,
			})
		}
		b.WriteString(RenderAlignedTable(
			[]string{"WORKER", "QTY", "EWH", "UPH", "MULTI", "SEGMENTS"},
			[]Align{AlignLeft, AlignRight, AlignRight, AlignRight},
			rows))
	}
	section(export.SectionPicking, picking)
	section(export.SectionPacking, packing)

	b.WriteString("\n")
	b.WriteString(footer(resp))
	return b.String()
}

// FormatBoth renders the daily report, then the efficiency report or the
// reason it was skipped.
func FormatBoth(resp *app.BothResponse, loc *time.Location) string {
	var b strings.Builder
	if resp.Daily != nil {
		b.WriteString(FormatDaily(resp.Daily))
	}
	if resp.Efficiency != nil {
		b.WriteString("\n")
		b.WriteString(FormatEfficiency(resp.Efficiency, loc))
	}
	if len(resp.Warnings) > 0 {
		lines := make([]string, len(resp.Warnings))
		for i, w := range resp.Warnings {
			lines[i] = Warn(w)
		}
		b.WriteString("\n")
		b.WriteString(RenderBox("warnings", strings.Join(lines, "\n")))
		b.WriteString("\n")
	}
	return b.String()
}

func reportTitle(resp *app.ReportResponse) string {
	meta := []string{resp.ReportDate}
	if resp.Department != "" {
		meta = append(meta, resp.Department)
	}
	if resp.ReportTime != "" {
		meta = append(meta, resp.ReportTime)
	}
	return ModeBadge(string(resp.Mode)) + "  " + Bold(meta[0]) + Dim(strings.Join(append([]string{""}, meta[1:]...), " · "))
}

func footer(resp *app.ReportResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s workers  %s total EWH  %s scan events\n",
		Bold(strconv.Itoa(len(resp.Rows))),
		Bold(Hours(resp.TotalEWH())),
		Bold(strconv.Itoa(resp.Events)))

	if resp.DroppedEvents > 0 {
		b.WriteString(Warn(fmt.Sprintf("%d scan events dropped", resp.DroppedEvents)))
		b.WriteString("\n")
	}
	if resp.DroppedOverrides > 0 {
		b.WriteString(Warn(fmt.Sprintf("%d preshipment overrides dropped", resp.DroppedOverrides)))
		b.WriteString("\n")
	}
	for i, d := range resp.Diagnostics {
		if i == maxDiagnostics {
			b.WriteString(Dim(fmt.Sprintf("  … and %d more", len(resp.Diagnostics)-maxDiagnostics)))
			b.WriteString("\n")
			break
		}
		b.WriteString(Dim("  " + d))
		b.WriteString("\n")
	}

	if resp.OutputPath != "" {
		b.WriteString(Success("wrote " + resp.OutputPath))
	} else {
		b.WriteString(Dim("no file written"))
	}
	b.WriteString("\n")
	return b.String()
}

// FormatHistory lists recorded report runs, newest first.
func FormatHistory(runs []*domain.ReportRun) string {
	if len(runs) == 0 {
		return Dim("No reports generated yet.") + "\n"
	}
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		dropped := Dim("-")
		if r.DroppedEvents > 0 || r.DroppedOverrides > 0 {
			dropped = StyleYellow.Render(fmt.Sprintf("%d/%d", r.DroppedEvents, r.DroppedOverrides))
		}
		out := r.OutputPath
		if out == "" {
			out = Dim("(none)")
		}
		rows = append(rows, []string{
			TruncID(r.ID),
			ModeBadge(string(r.Mode)),
			r.ReportDate,
			strconv.Itoa(r.RowCount),
			Hours(r.TotalEWH),
			dropped,
			out,
			HumanTimestamp(r.CreatedAt),
		})
	}
	return RenderAlignedTable(
		[]string{"ID", "MODE", "DATE", "ROWS", "EWH", "DROPPED", "OUTPUT", "CREATED"},
		[]Align{AlignLeft, AlignLeft, AlignLeft, AlignRight, AlignRight, AlignRight},
		rows)
}
