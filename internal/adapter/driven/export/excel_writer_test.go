package export

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/activitylens/activitylens/internal/domain/entity"
)

func TestExcelWriter_RoundTrip(t *testing.T) {
	t.Parallel()

	report := entity.Report{Sheets: []entity.ReportSheet{
		{
			Name: "All Time",
			Blocks: []entity.ReportBlock{
				{
					Caption: "Top 2 Tracks (All Time)",
					Headers: []string{"Track", "Artist", "Plays"},
					Rows: [][]string{
						{"Song A", "Artist A", "3"},
						{"Song B", "Artist B", "2"},
					},
				},
				{
					Caption: "Top 1 Artists (All Time)",
					Headers: []string{"Artist", "Plays"},
					Rows:    [][]string{{"Artist A", "3"}},
				},
			},
		},
		{
			Name: "2024",
			Blocks: []entity.ReportBlock{
				{
					Caption: "Top 1 Tracks (2024)",
					Headers: []string{"Track", "Artist", "Plays"},
					Rows:    [][]string{{"Song B", "Artist B", "2"}},
				},
			},
		},
	}}

	writer := NewExcelWriter()
	layout := NewLayout(writer)
	require.NoError(t, layout.PlaceReport(report))

	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, writer.Save(path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	// No leftover default sheet.
	assert.ElementsMatch(t, []string{"All Time", "2024"}, f.GetSheetList())

	get := func(sheet, cell string) string {
		t.Helper()
		v, err := f.GetCellValue(sheet, cell)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "Top 2 Tracks (All Time)", get("All Time", "A1"))
	assert.Equal(t, "Track", get("All Time", "A2"))
	assert.Equal(t, "Song A", get("All Time", "A3"))
	assert.Equal(t, "Artist B", get("All Time", "B4"))

	// 2 data rows: second caption at 1+2+3 = 6.
	assert.Equal(t, "", get("All Time", "A5"))
	assert.Equal(t, "Top 1 Artists (All Time)", get("All Time", "A6"))
	assert.Equal(t, "Artist A", get("All Time", "A8"))

	assert.Equal(t, "Top 1 Tracks (2024)", get("2024", "A1"))
	assert.Equal(t, "Song B", get("2024", "A3"))

	// Column widths were applied and clamped to the minimum of 10.
	width, err := f.GetColWidth("All Time", "A")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, width, float64(minColumnWidth))
}
