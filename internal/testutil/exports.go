package testutil

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

// ScanLine is one data row of a picking or packing export.
type ScanLine struct {
	Worker   string
	Time     string
	Quantity int
	Multi    bool
}

// Scan returns a single-item line at "2025-03-14 HH:MM:00".
func Scan(worker string, hour, minute int) ScanLine {
	return ScanLine{Worker: worker, Time: At(hour, minute).Format("2006-01-02 15:04:05"), Quantity: 1}
}

// WritePickingCSV writes dir/picking.csv in the picking export column layout.
func WritePickingCSV(t *testing.T, dir string, lines ...ScanLine) string {
	t.Helper()
	records := [][]string{header(13)}
	for _, l := range lines {
		row := make([]string, 13)
		row[8] = strconv.Itoa(l.Quantity)
		row[9], row[10] = "1", "0"
		if l.Multi {
			row[9], row[10] = "0", "1"
		}
		row[11], row[12] = l.Worker, l.Time
		records = append(records, row)
	}
	return writeRecords(t, filepath.Join(dir, "picking.csv"), records)
}

// WritePackingCSV writes dir/packing.csv in the packing export column layout.
func WritePackingCSV(t *testing.T, dir string, lines ...ScanLine) string {
	t.Helper()
	records := [][]string{header(24)}
	for _, l := range lines {
		row := make([]string, 24)
		row[7] = strconv.Itoa(l.Quantity)
		row[21], row[23] = l.Worker, l.Time
		records = append(records, row)
	}
	return writeRecords(t, filepath.Join(dir, "packing.csv"), records)
}

func header(n int) []string {
	h := make([]string, n)
	for i := range h {
		h[i] = "col" + strconv.Itoa(i+1)
	}
	return h
}

func writeRecords(t *testing.T, path string, records [][]string) string {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating %s: %v", path, err)
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}
