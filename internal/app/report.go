package app

import (
	"time"

	"github.com/alexanderramin/obreport/internal/domain"
)

type OutputFormat string

const (
	FormatXLSX OutputFormat = "xlsx"
	FormatCSV  OutputFormat = "csv"
	FormatNone OutputFormat = "none"
)

var ValidOutputFormats = map[OutputFormat]bool{
	FormatXLSX: true,
	FormatCSV:  true,
	FormatNone: true,
}

type ReportRequest struct {
	PickingPath string
	PackingPath string

	// ReportDate is YYYY-MM-DD. Empty derives it from the earliest scan.
	ReportDate string
	// ReportTime fills the TIME column. Empty uses the generation time.
	ReportTime string

	// Overrides are applied after saved drafts and the override file,
	// so a later entry for the same worker replaces the earlier block.
	Overrides    []domain.PreshipmentOverride
	OverrideFile string
	SkipDrafts   bool

	OutputDir string
	Format    OutputFormat
	Now       *time.Time
}

func NewReportRequest() ReportRequest {
	return ReportRequest{
		OutputDir: ".",
		Format:    FormatXLSX,
	}
}

type ReportResponse struct {
	Mode       domain.ReportMode
	ReportDate string
	ReportTime string
	Department string
	Rows       []domain.WorkerReportRow

	Events           int
	DroppedEvents    int
	DroppedOverrides int
	Diagnostics      []string

	OutputPath string
	RunID      string
}

// TotalEWH sums the row totals.
func (r *ReportResponse) TotalEWH() float64 {
	var total float64
	for _, row := range r.Rows {
		total += row.TotalEWH
	}
	return total
}

// BothResponse carries the daily and efficiency passes of one run.
// Efficiency is nil when the data has no morning scans.
type BothResponse struct {
	Daily      *ReportResponse
	Efficiency *ReportResponse
	Warnings   []string
}

type ReportErrorCode string

const (
	ReportErrNoInput         ReportErrorCode = "NO_INPUT"
	ReportErrNoMorningData   ReportErrorCode = "NO_MORNING_DATA"
	ReportErrInvalidOverride ReportErrorCode = "INVALID_OVERRIDE"
	ReportErrInvalidRequest  ReportErrorCode = "INVALID_REQUEST"
)

type ReportError struct {
	Code    ReportErrorCode
	Message string
}

func (e *ReportError) Error() string {
	return string(e.Code) + ": " + e.Message
}
