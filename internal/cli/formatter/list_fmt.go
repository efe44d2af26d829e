package formatter

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/obreport/internal/domain"
)

func FormatEmployees(employees []*domain.Employee) string {
	if len(employees) == 0 {
		return Dim("No saved employees.") + "\n"
	}
	rows := make([][]string, 0, len(employees))
	for _, e := range employees {
		rows = append(rows, []string{e.Name, TruncID(e.ID), HumanTimestamp(e.CreatedAt)})
	}
	return RenderTable([]string{"NAME", "ID", "ADDED"}, rows)
}

// FormatDrafts lists the override drafts saved for reportDate with the UPH
// each would contribute.
func FormatDrafts(reportDate string, drafts []*domain.OverrideDraft) string {
	if len(drafts) == 0 {
		return Dim(fmt.Sprintf("No preshipment overrides saved for %s.", reportDate)) + "\n"
	}
	rows := make([][]string, 0, len(drafts))
	var qty int
	var hours float64
	for _, d := range drafts {
		qty += d.Quantity
		hours += d.EWH
		rows = append(rows, []string{
			d.Worker,
			strconv.Itoa(d.Quantity),
			Hours(d.EWH),
			OptFloat(domain.Ratio(float64(d.Quantity), d.EWH)),
		})
	}
	out := Header("Preshipment " + reportDate) + "\n"
	out += RenderAlignedTable([]string{"WORKER", "QTY", "EWH", "UPH"},
		[]Align{AlignLeft, AlignRight, AlignRight, AlignRight}, rows)
	out += Dim(fmt.Sprintf("%d overrides, %d units, %s h", len(drafts), qty, Hours(hours))) + "\n"
	return out
}
