package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/alexanderramin/obreport/internal/domain"
)

const (
	DailySheet      = "Daily"
	EfficiencySheet = "Efficiency"
)

var (
	thinBlack = borders("000000")
	thinGrey  = borders("D3D3D3")
	centered  = &excelize.Alignment{Horizontal: "center", Vertical: "center"}
)

func borders(color string) []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: color, Style: 1},
		{Type: "top", Color: color, Style: 1},
		{Type: "right", Color: color, Style: 1},
		{Type: "bottom", Color: color, Style: 1},
	}
}

type styles struct {
	header, cell, empty, title, remark int
}

func newStyles(f *excelize.File) (styles, error) {
	var s styles
	var err error
	if s.header, err = f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"000000"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF", Size: 12},
		Alignment: centered,
		Border:    thinBlack,
	}); err != nil {
		return s, err
	}
	if s.cell, err = f.NewStyle(&excelize.Style{Alignment: centered, Border: thinGrey}); err != nil {
		return s, err
	}
	if s.empty, err = f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"F5F5F5"}, Pattern: 1},
		Alignment: centered,
		Border:    thinGrey,
	}); err != nil {
		return s, err
	}
	if s.title, err = f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"0070C0"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF", Size: 14},
		Alignment: centered,
		Border:    thinBlack,
	}); err != nil {
		return s, err
	}
	s.remark, err = f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "top", WrapText: true},
		Border:    thinGrey,
	})
	return s, err
}

// WriteDailyXLSX writes the daily report as a single-sheet workbook.
func WriteDailyXLSX(path string, meta Meta, rows []domain.WorkerReportRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), DailySheet); err != nil {
		return err
	}
	st, err := newStyles(f)
	if err != nil {
		return fmt.Errorf("creating styles: %w", err)
	}

	records := append([][]any{toAny(DailyHeaders)}, DailyRecords(meta, rows)...)
	for i, rec := range records {
		row := i + 1
		if err := setRow(f, DailySheet, row, rec); err != nil {
			return err
		}
		for col, v := range rec {
			style := st.cell
			switch {
			case i == 0:
				style = st.header
			case isEmptyCell(v):
				style = st.empty
			}
			if err := styleCell(f, DailySheet, col+1, row, style); err != nil {
				return err
			}
		}
		height := 20.0
		if i == 0 {
			height = 25
		}
		if err := f.SetRowHeight(DailySheet, row, height); err != nil {
			return err
		}
	}

	for col, w := range columnWidths(records) {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(DailySheet, name, name, w); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

var efficiencyWidths = []float64{12, 10, 25, 10, 10, 10, 8, 50}

// WriteEfficiencyXLSX writes the PICKING and PACKING sections to one sheet.
func WriteEfficiencyXLSX(path string, meta Meta, rows []domain.WorkerReportRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), EfficiencySheet); err != nil {
		return err
	}
	st, err := newStyles(f)
	if err != nil {
		return fmt.Errorf("creating styles: %w", err)
	}

	records, titles := EfficiencyRecords(meta, rows)
	isTitle := make(map[int]bool, len(titles))
	for _, t := range titles {
		isTitle[t] = true
	}

	last := len(EfficiencyHeaders)
	for i, rec := range records {
		row := i + 1
		if err := setRow(f, EfficiencySheet, row, rec); err != nil {
			return err
		}
		switch {
		case isTitle[i]:
			from, _ := excelize.CoordinatesToCellName(1, row)
			to, _ := excelize.CoordinatesToCellName(last, row)
			if err := f.MergeCell(EfficiencySheet, from, to); err != nil {
				return err
			}
			if err := f.SetCellStyle(EfficiencySheet, from, to, st.title); err != nil {
				return err
			}
		case isTitle[i-1]:
			for col := 1; col <= last; col++ {
				if err := styleCell(f, EfficiencySheet, col, row, st.header); err != nil {
					return err
				}
			}
		case rec[0] != "":
			for col := 1; col <= last; col++ {
				style := st.cell
				if col == last {
					style = st.remark
				}
				if err := styleCell(f, EfficiencySheet, col, row, style); err != nil {
					return err
				}
			}
		}
	}

	for col, w := range efficiencyWidths {
		name, _ := excelize.ColumnNumberToName(col + 1)
		if err := f.SetColWidth(EfficiencySheet, name, name, w); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, rec []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &rec); err != nil {
		return fmt.Errorf("writing row %d: %w", row, err)
	}
	return nil
}

func styleCell(f *excelize.File, sheet string, col, row, style int) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, cell, cell, style)
}

func isEmptyCell(v any) bool {
	switch x := v.(type) {
	case string:
		return x == ""
	case int:
		return x == 0
	case float64:
		return x == 0
	}
	return v == nil
}

// columnWidths sizes each column to its widest value plus padding, within [10, 50].
func columnWidths(records [][]any) []float64 {
	var widths []float64
	for _, rec := range records {
		for col, v := range rec {
			for len(widths) <= col {
				widths = append(widths, 10)
			}
			w := float64(len([]rune(cellString(v))))
			widths[col] = max(widths[col], w)
		}
	}
	for i := range widths {
		widths[i] = min(widths[i]+2, 50)
	}
	return widths
}
