package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/obreport/internal/domain"
)

// WriteDailyCSV writes the header and one line per row.
func WriteDailyCSV(w io.Writer, meta Meta, rows []domain.WorkerReportRow) error {
	return writeCSV(w, append([][]any{toAny(DailyHeaders)}, DailyRecords(meta, rows)...))
}

// WriteEfficiencyCSV writes both sections; remark lines are joined with "; ".
func WriteEfficiencyCSV(w io.Writer, meta Meta, rows []domain.WorkerReportRow) error {
	records, _ := EfficiencyRecords(meta, rows)
	last := len(EfficiencyHeaders) - 1
	for _, rec := range records {
		if s, ok := rec[last].(string); ok {
			rec[last] = strings.ReplaceAll(s, "\n", "; ")
		}
	}
	return writeCSV(w, records)
}

func writeCSV(w io.Writer, records [][]any) error {
	cw := csv.NewWriter(w)
	for _, rec := range records {
		line := make([]string, len(rec))
		for i, v := range rec {
			line[i] = cellString(v)
		}
		if err := cw.Write(line); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Save writes a report of the given mode to path, choosing the format by
// extension (.xlsx or .csv).
func Save(path string, mode domain.ReportMode, meta Meta, rows []domain.WorkerReportRow) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		if mode == domain.ModeEfficiency {
			return WriteEfficiencyXLSX(path, meta, rows)
		}
		return WriteDailyXLSX(path, meta, rows)
	case ".csv":
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		write := WriteDailyCSV
		if mode == domain.ModeEfficiency {
			write = WriteEfficiencyCSV
		}
		if err := write(f, meta, rows); err != nil {
			f.Close()
			return fmt.Errorf("writing %s: %w", path, err)
		}
		return f.Close()
	default:
		return fmt.Errorf("unsupported output format %q", filepath.Ext(path))
	}
}
