package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/activitylens/activitylens/internal/domain/entity"
)

type writeCall struct {
	Sheet      string
	Caption    string
	Headers    []string
	Rows       [][]string
	CaptionRow int
}

type sizeCall struct {
	Sheet string
	Col   int
	Width float64
}

// recordingWriter captures the instruction stream the layout emits.
type recordingWriter struct {
	writes []writeCall
	sizes  []sizeCall
}

func (w *recordingWriter) WriteBlock(sheet, caption string, headers []string, rows [][]string, captionRow int) error {
	w.writes = append(w.writes, writeCall{sheet, caption, headers, rows, captionRow})
	return nil
}

func (w *recordingWriter) SetColumnWidth(sheet string, col int, width float64) error {
	w.sizes = append(w.sizes, sizeCall{sheet, col, width})
	return nil
}

func block(caption string, n int) entity.ReportBlock {
	rows := make([][]string, n)
	for i := range rows {
		rows[i] = []string{"track", "artist"}
	}
	return entity.ReportBlock{Caption: caption, Headers: []string{"Track", "Artist"}, Rows: rows}
}

func TestPlaceSheet_Offsets(t *testing.T) {
	t.Parallel()

	w := &recordingWriter{}
	l := NewLayout(w)

	require.NoError(t, l.PlaceSheet("All Time", []entity.ReportBlock{block("Top Tracks", 20), block("Top Artists", 5)}))

	require.Len(t, w.writes, 2)
	assert.Equal(t, 1, w.writes[0].CaptionRow)
	// 20 data rows: caption 1, header 2, data 3..22, blank 23, next caption 24.
	assert.Equal(t, 24, w.writes[1].CaptionRow)

	// Strictly below the previous block's last occupied row.
	firstDataStart := w.writes[0].CaptionRow + 1
	secondDataStart := w.writes[1].CaptionRow + 1
	assert.Greater(t, secondDataStart, firstDataStart+len(w.writes[0].Rows))
}

func TestPlaceSheet_EmptyBlockReservesNothing(t *testing.T) {
	t.Parallel()

	w := &recordingWriter{}
	l := NewLayout(w)
	require.NoError(t, l.PlaceSheet("2024", []entity.ReportBlock{
		{Caption: "Top Tracks", Headers: []string{"Track"}},
		block("Top Artists", 3),
	}))

	require.Len(t, w.writes, 1)
	assert.Equal(t, "Top Artists", w.writes[0].Caption)
	assert.Equal(t, 1, w.writes[0].CaptionRow)
}

func TestSizeColumns_ClampedWidthsAcrossBlocks(t *testing.T) {
	t.Parallel()

	w := &recordingWriter{}
	l := NewLayout(w)
	report := entity.Report{Sheets: []entity.ReportSheet{{
		Name: "All Time",
		Blocks: []entity.ReportBlock{
			{
				Caption: "short",
				Headers: []string{"A", "B"},
				Rows:    [][]string{{"x", "a considerably longer cell value than the first block had"}},
			},
			{
				Caption: "second",
				Headers: []string{"A", "B"},
				Rows:    [][]string{{"a twenty-two rune str", "y"}},
			},
		},
	}}}

	require.NoError(t, l.PlaceReport(report))
	require.Len(t, w.sizes, 2)

	byCol := map[int]float64{}
	for _, s := range w.sizes {
		assert.Equal(t, "All Time", s.Sheet)
		byCol[s.Col] = s.Width
	}
	// Column 0's longest content is 21 runes -> 23; column 1's longest is 57
	// runes -> 59, clamped to the 50 maximum.
	assert.Equal(t, float64(23), byCol[0])
	assert.Equal(t, float64(50), byCol[1])
}

func TestSizeColumns_MinimumWidth(t *testing.T) {
	t.Parallel()

	w := &recordingWriter{}
	l := NewLayout(w)
	require.NoError(t, l.PlaceSheet("S", []entity.ReportBlock{
		{Caption: "c", Headers: []string{"h"}, Rows: [][]string{{"v"}}},
	}))
	require.NoError(t, l.SizeColumns())

	require.Len(t, w.sizes, 1)
	assert.Equal(t, float64(minColumnWidth), w.sizes[0].Width)
}

func TestPlaceReport_MultipleSheets(t *testing.T) {
	t.Parallel()

	w := &recordingWriter{}
	l := NewLayout(w)
	report := entity.Report{Sheets: []entity.ReportSheet{
		{Name: "All Time", Blocks: []entity.ReportBlock{block("Top Tracks", 2)}},
		{Name: "2024", Blocks: []entity.ReportBlock{block("Top Tracks", 1)}},
	}}

	require.NoError(t, l.PlaceReport(report))
	require.Len(t, w.writes, 2)
	assert.Equal(t, "All Time", w.writes[0].Sheet)
	assert.Equal(t, "2024", w.writes[1].Sheet)
	assert.Equal(t, 1, w.writes[1].CaptionRow)
}
