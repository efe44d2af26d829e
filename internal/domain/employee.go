package domain

import "time"

type Employee struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// OverrideDraft is a preshipment override saved ahead of report generation.
type OverrideDraft struct {
	ID         string
	ReportDate string // YYYY-MM-DD
	Worker     string
	Quantity   int
	EWH        float64
	CreatedAt  time.Time
}

// Override converts the draft into the value merged into a report.
func (d *OverrideDraft) Override() PreshipmentOverride {
	return PreshipmentOverride{Worker: d.Worker, Quantity: d.Quantity, EWH: d.EWH}
}

// ReportRun records one generated report.
type ReportRun struct {
	ID         string
	Mode       ReportMode
	ReportDate string
	RowCount   int
	TotalEWH   float64
	OutputPath string

	DroppedEvents    int
	DroppedOverrides int
	CreatedAt        time.Time
}
