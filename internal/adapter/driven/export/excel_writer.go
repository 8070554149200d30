package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ExcelWriter is the SheetWriter that persists a workbook via excelize.
type ExcelWriter struct {
	file   *excelize.File
	sheets map[string]bool
}

// NewExcelWriter creates an ExcelWriter over a fresh workbook.
func NewExcelWriter() *ExcelWriter {
	return &ExcelWriter{
		file:   excelize.NewFile(),
		sheets: make(map[string]bool),
	}
}

// ensureSheet creates the sheet on first use. The workbook's default sheet
// is renamed for the first one so no empty "Sheet1" survives in the output.
func (w *ExcelWriter) ensureSheet(name string) error {
	if w.sheets[name] {
		return nil
	}
	if len(w.sheets) == 0 {
		if err := w.file.SetSheetName(w.file.GetSheetName(0), name); err != nil {
			return fmt.Errorf("error naming sheet %s: %w", name, err)
		}
	} else {
		if _, err := w.file.NewSheet(name); err != nil {
			return fmt.Errorf("error creating sheet %s: %w", name, err)
		}
	}
	w.sheets[name] = true
	return nil
}

// WriteBlock writes one caption row plus the block's header and data rows
// starting at captionRow.
func (w *ExcelWriter) WriteBlock(sheet, caption string, headers []string, rows [][]string, captionRow int) error {
	if err := w.ensureSheet(sheet); err != nil {
		return err
	}

	set := func(col, row int, value string) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return w.file.SetCellValue(sheet, cell, value)
	}

	if err := set(1, captionRow, caption); err != nil {
		return err
	}
	for i, header := range headers {
		if err := set(i+1, captionRow+1, header); err != nil {
			return err
		}
	}
	for r, row := range rows {
		for c, cell := range row {
			if err := set(c+1, captionRow+2+r, cell); err != nil {
				return err
			}
		}
	}
	return nil
}

// SetColumnWidth sets the display width of a zero-based column.
func (w *ExcelWriter) SetColumnWidth(sheet string, col int, width float64) error {
	if err := w.ensureSheet(sheet); err != nil {
		return err
	}
	name, err := excelize.ColumnNumberToName(col + 1)
	if err != nil {
		return err
	}
	return w.file.SetColWidth(sheet, name, name, width)
}

// Save writes the workbook to path and releases it on every exit path.
func (w *ExcelWriter) Save(path string) error {
	defer w.file.Close()
	if err := w.file.SaveAs(path); err != nil {
		return fmt.Errorf("error writing spreadsheet file: %w", err)
	}
	return nil
}
