// Package report writes the xlsx workbooks the curriculum office distributes.
package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// Format selects the cell style for one value.
type Format int

const (
	// Text is left-aligned, top-anchored, wrapped.
	Text Format = iota
	// Counter is a whole number rendered with thousands separators.
	Counter
	// Decimal is a number rendered with one decimal place.
	Decimal
)

// Cell is one value with its display format.
type Cell struct {
	Value  any
	Format Format
}

// DefaultWidths are the column widths used by the transfer statistics
// workbook.
var DefaultWidths = []float64{8.0, 10.0, 10.0, 10.0, 20.0, 150.0}

// Workbook wraps an xlsx file with the named styles the reports share.
type Workbook struct {
	file *excelize.File

	header    int
	styles    map[Format]int
	highlight map[Format]int
}

// NewWorkbook creates an empty workbook with the report styles registered.
func NewWorkbook() (*Workbook, error) {
	f := excelize.NewFile()
	w := &Workbook{
		file:      f,
		styles:    make(map[Format]int),
		highlight: make(map[Format]int),
	}

	var err error
	w.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "top", WrapText: true},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}

	decimalFmt := "0.0"
	base := map[Format]excelize.Style{
		Text:    {Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "top", WrapText: true}},
		Counter: {Alignment: &excelize.Alignment{Horizontal: "right", Vertical: "top"}, NumFmt: 3},
		Decimal: {Alignment: &excelize.Alignment{Vertical: "top"}, CustomNumFmt: &decimalFmt},
	}
	// Problematic rows keep their format but get the highlight font.
	for format, style := range base {
		plain := style
		if w.styles[format], err = f.NewStyle(&plain); err != nil {
			return nil, fmt.Errorf("style %d: %w", format, err)
		}
		marked := style
		marked.Font = &excelize.Font{Bold: true, Color: "800080"}
		if w.highlight[format], err = f.NewStyle(&marked); err != nil {
			return nil, fmt.Errorf("highlight style %d: %w", format, err)
		}
	}
	return w, nil
}

// WriteSheet adds one sheet with a styled header row and the given body rows.
// problematic marks rows to render in the highlight font; it may be nil.
func (w *Workbook) WriteSheet(name string, headers []string, rows [][]Cell, problematic []bool) error {
	if _, err := w.file.NewSheet(name); err != nil {
		return fmt.Errorf("new sheet %s: %w", name, err)
	}

	for c, h := range headers {
		ref, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			return err
		}
		if err := w.file.SetCellValue(name, ref, h); err != nil {
			return fmt.Errorf("sheet %s header: %w", name, err)
		}
		if err := w.file.SetCellStyle(name, ref, ref, w.header); err != nil {
			return fmt.Errorf("sheet %s header style: %w", name, err)
		}
	}

	for r, row := range rows {
		mark := problematic != nil && problematic[r]
		for c, cell := range row {
			ref, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := w.file.SetCellValue(name, ref, cell.Value); err != nil {
				return fmt.Errorf("sheet %s cell %s: %w", name, ref, err)
			}
			style := w.styles[cell.Format]
			if mark {
				style = w.highlight[cell.Format]
			}
			if err := w.file.SetCellStyle(name, ref, ref, style); err != nil {
				return fmt.Errorf("sheet %s cell %s style: %w", name, ref, err)
			}
		}
	}
	return nil
}

// AdjustWidths sets the column widths on every sheet of the workbook.
func (w *Workbook) AdjustWidths(widths []float64) error {
	for _, sheet := range w.file.GetSheetList() {
		for i, width := range widths {
			col, err := excelize.ColumnNumberToName(i + 1)
			if err != nil {
				return err
			}
			if err := w.file.SetColWidth(sheet, col, col, width); err != nil {
				return fmt.Errorf("sheet %s column %s width: %w", sheet, col, err)
			}
		}
	}
	return nil
}

// Save drops the default empty sheet and writes the workbook to path,
// creating the directory when needed.
func (w *Workbook) Save(path string) error {
	if len(w.file.GetSheetList()) > 1 {
		if err := w.file.DeleteSheet("Sheet1"); err != nil {
			return fmt.Errorf("delete default sheet: %w", err)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	if err := w.file.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
