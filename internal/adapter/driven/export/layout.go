package export

import (
	"unicode/utf8"

	"github.com/activitylens/activitylens/internal/domain/entity"
)

// SheetWriter receives the ordered write and sizing instructions produced
// by the Layout.
type SheetWriter interface {
	WriteBlock(sheet, caption string, headers []string, rows [][]string, captionRow int) error
	SetColumnWidth(sheet string, col int, width float64) error
}

const (
	minColumnWidth = 10
	maxColumnWidth = 50
)

// Layout packs report blocks onto sheets. Placement and sizing are two
// separate passes: a column's display width depends on content from every
// block sharing that column, so widths can only be set after all blocks on
// all sheets are written.
type Layout struct {
	writer SheetWriter
	order  []string
	widths map[string][]int
}

// NewLayout creates a Layout writing through the given SheetWriter.
func NewLayout(writer SheetWriter) *Layout {
	return &Layout{
		writer: writer,
		widths: make(map[string][]int),
	}
}

// PlaceSheet writes the sheet's blocks in order. Each block gets a caption
// row followed by its header row and data rows; one blank row separates it
// from the next block's caption. Empty blocks are skipped entirely and
// reserve no rows, so the next block behaves as if it were first.
func (l *Layout) PlaceSheet(sheet string, blocks []entity.ReportBlock) error {
	if _, seen := l.widths[sheet]; !seen {
		l.order = append(l.order, sheet)
		l.widths[sheet] = nil
	}

	captionRow := 1
	for _, block := range blocks {
		if block.Empty() {
			continue
		}
		if err := l.writer.WriteBlock(sheet, block.Caption, block.Headers, block.Rows, captionRow); err != nil {
			return err
		}
		l.measure(sheet, block)
		// Header sits under the caption, data under the header; the next
		// caption lands one blank row below the last data row.
		captionRow += len(block.Rows) + 3
	}
	return nil
}

// PlaceReport runs the write pass over every sheet, then the sizing pass.
func (l *Layout) PlaceReport(report entity.Report) error {
	for _, sheet := range report.Sheets {
		if err := l.PlaceSheet(sheet.Name, sheet.Blocks); err != nil {
			return err
		}
	}
	return l.SizeColumns()
}

// SizeColumns emits one sizing instruction per touched column:
// clamp(max rendered width + 2, 10, 50).
func (l *Layout) SizeColumns() error {
	for _, sheet := range l.order {
		for col, max := range l.widths[sheet] {
			if max == 0 {
				continue
			}
			width := max + 2
			if width < minColumnWidth {
				width = minColumnWidth
			}
			if width > maxColumnWidth {
				width = maxColumnWidth
			}
			if err := l.writer.SetColumnWidth(sheet, col, float64(width)); err != nil {
				return err
			}
		}
	}
	return nil
}

// measure folds the block's caption, headers and cells into the per-column
// maximum rendered widths for the sheet. The caption occupies column 0.
func (l *Layout) measure(sheet string, block entity.ReportBlock) {
	w := l.widths[sheet]
	update := func(col int, s string) {
		if s == "" {
			return
		}
		for len(w) <= col {
			w = append(w, 0)
		}
		if n := utf8.RuneCountInString(s); n > w[col] {
			w[col] = n
		}
	}

	update(0, block.Caption)
	for i, h := range block.Headers {
		update(i, h)
	}
	for _, row := range block.Rows {
		for i, cell := range row {
			update(i, cell)
		}
	}
	l.widths[sheet] = w
}
