package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/obreport/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// pickingRow builds a 13-cell picking row.
func pickingRow(qty, single, multi, worker, ts string) []string {
	row := make([]string, 13)
	row[8], row[9], row[10], row[11], row[12] = qty, single, multi, worker, ts
	return row
}

// packingRow builds a 24-cell packing row.
func packingRow(qty, worker, ts string) []string {
	row := make([]string, 24)
	row[7], row[21], row[23] = qty, worker, ts
	return row
}

func header(n int) []string {
	row := make([]string, n)
	for i := range row {
		row[i] = "col"
	}
	return row
}

func TestNormalize_Picking(t *testing.T) {
	rows := [][]string{
		header(13),
		pickingRow("3", "1", "0", "Alice", "2025-03-14 08:00:00"),
		pickingRow("", "0", "2", "Bob", "2025-03-14 08:01:00"),
		pickingRow("abc", "", "", "Cara", "2025-03-14 08:02:00"),
		pickingRow("2", "1", "0", "", "2025-03-14 08:03:00"),
		pickingRow("2", "1", "0", "Dan", "not a time"),
		{"too", "short"},
	}

	n := Normalizer{Location: time.UTC}
	events, diags := n.Normalize(rows, PickingLayout, "picking.csv")

	require.Len(t, events, 3)
	assert.Equal(t, "Alice", events[0].Worker)
	assert.Equal(t, 3, events[0].Quantity)
	assert.Equal(t, domain.CategoryPickSingle, events[0].Category)
	assert.Equal(t, "picking.csv:2", events[0].Source)

	assert.Equal(t, 1, events[1].Quantity)
	assert.Equal(t, domain.CategoryPickMulti, events[1].Category)
	assert.Equal(t, domain.CategoryPickUnknown, events[2].Category)
	assert.Equal(t, 1, events[2].Quantity)

	require.Len(t, diags, 2)
	assert.Equal(t, 5, diags[0].Row)
	assert.Equal(t, 6, diags[1].Row)
	assert.Contains(t, diags[1].String(), "picking.csv:6")
}

func TestNormalize_Packing(t *testing.T) {
	rows := [][]string{
		header(24),
		packingRow("4", "Eve", "45730.5"),
		packingRow("-1", "Eve", "45730.50069444444"),
	}

	n := Normalizer{Location: time.UTC}
	events, diags := n.Normalize(rows, PackingLayout, "packing.xlsx")

	assert.Empty(t, diags)
	require.Len(t, events, 2)
	assert.Equal(t, domain.CategoryPack, events[0].Category)
	assert.Equal(t, 4, events[0].Quantity)
	assert.Equal(t, 1, events[1].Quantity)
	assert.Equal(t, time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC), *events[0].Timestamp)
	assert.Equal(t, time.Date(2025, 3, 14, 12, 1, 0, 0, time.UTC), *events[1].Timestamp)
}

func TestNormalize_HeaderOnly(t *testing.T) {
	events, diags := Normalizer{}.Normalize([][]string{header(24)}, PackingLayout, "p.csv")
	assert.Empty(t, events)
	assert.Empty(t, diags)
}

func TestParseCount(t *testing.T) {
	assert.Equal(t, 5, parseCount("5", 1))
	assert.Equal(t, 3, parseCount("3.9", 1))
	assert.Equal(t, 12, parseCount("12pcs", 1))
	assert.Equal(t, 1, parseCount("", 1))
	assert.Equal(t, 1, parseCount("0", 1))
	assert.Equal(t, 0, parseCount("x", 0))
}

func TestReadRows_CSVWithBOM(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "packing.csv")
	content := "\ufeffid,name\n1,\"a, b\"\n2\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	rows, err := ReadRows(path)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "id", rows[0][0])
	assert.Equal(t, "a, b", rows[1][1])
	assert.Len(t, rows[2], 1)
}

func TestReadRows_Workbook(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "picking.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"h1", "h2"}))
	row := make([]interface{}, 13)
	row[8], row[9], row[11], row[12] = 2, 1, "Alice", 45730+1.0/3
	require.NoError(t, f.SetSheetRow(sheet, "A2", &row))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	rows, err := ReadRows(path)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	events, diags := Normalizer{Location: time.UTC}.Normalize(rows, PickingLayout, "picking.xlsx")
	assert.Empty(t, diags)
	require.Len(t, events, 1)
	assert.Equal(t, 2, events[0].Quantity)
	assert.Equal(t, domain.CategoryPickSingle, events[0].Category)
	assert.Equal(t, time.Date(2025, 3, 14, 8, 0, 0, 0, time.UTC), *events[0].Timestamp)
}

func TestReadRows_Unsupported(t *testing.T) {
	_, err := ReadRows("report.pdf")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func writeCSV(t *testing.T, dir, name string, rows [][]string) string {
	t.Helper()
	var b strings.Builder
	for _, r := range rows {
		b.WriteString(strings.Join(r, ","))
		b.WriteString("\n")
	}
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	return path
}
