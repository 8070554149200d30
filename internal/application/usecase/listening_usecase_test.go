package usecase

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/activitylens/activitylens/internal/domain/entity"
	"github.com/activitylens/activitylens/internal/shared/types"
)

// fakeConsole captures log lines and answers menus with the first option.
type fakeConsole struct {
	lines []string
}

func (c *fakeConsole) Print(a ...interface{})                  { c.lines = append(c.lines, fmt.Sprint(a...)) }
func (c *fakeConsole) Printf(f string, a ...interface{})       { c.lines = append(c.lines, fmt.Sprintf(f, a...)) }
func (c *fakeConsole) Println(a ...interface{})                { c.lines = append(c.lines, fmt.Sprintln(a...)) }
func (c *fakeConsole) LogInfo(f string, a ...interface{})      { c.Printf("INFO: "+f, a...) }
func (c *fakeConsole) LogWarning(f string, a ...interface{})   { c.Printf("WARN: "+f, a...) }
func (c *fakeConsole) LogError(f string, a ...interface{})     { c.Printf("ERROR: "+f, a...) }
func (c *fakeConsole) LogSuccess(f string, a ...interface{})   { c.Printf("OK: "+f, a...) }
func (c *fakeConsole) Status(string) types.StatusHandle        { return noopStatus{} }
func (c *fakeConsole) ProgressWithTotal(int) types.ProgressHandle {
	return noopProgress{}
}
func (c *fakeConsole) CreateTable() types.TableInterface             { return &fakeTable{} }
func (c *fakeConsole) DisplayYearlyBars(bars []types.YearlyPlayTime) { c.Printf("BARS: %d", len(bars)) }
func (c *fakeConsole) Select(prompt string, options []string) (string, error) {
	return options[0], nil
}

func (c *fakeConsole) output() string { return strings.Join(c.lines, "\n") }

type noopStatus struct{}

func (noopStatus) Update(string) {}
func (noopStatus) Stop()         {}

type noopProgress struct{}

func (noopProgress) Increment() {}
func (noopProgress) Stop()      {}

type fakeTable struct {
	rows int
}

func (t *fakeTable) AddColumn(string, ...interface{}) {}
func (t *fakeTable) AddRow(...interface{})            { t.rows++ }
func (t *fakeTable) Render() string                   { return fmt.Sprintf("table(%d rows)", t.rows) }

// fakeArchiveRepo serves canned entries without touching the filesystem.
type fakeArchiveRepo struct {
	entries   []map[string]any
	tree      map[string]any
	shardErrs []error
}

func (r *fakeArchiveRepo) FindArchive(pattern string) (string, error) {
	return "/data/export.zip", nil
}

func (r *fakeArchiveRepo) ListMatches(archivePath, pattern string) ([]string, error) {
	return []string{"Streaming_History_Audio_2023.json"}, nil
}

func (r *fakeArchiveRepo) LoadEntries(archivePath string, names []string) ([]map[string]any, []error, error) {
	return r.entries, r.shardErrs, nil
}

func (r *fakeArchiveRepo) LoadTree(archivePath string, names []string) (map[string]any, error) {
	return r.tree, nil
}

// fakeExportRepo records which formats were requested.
type fakeExportRepo struct {
	reports map[string]entity.Report
	fail    map[string]error
}

func newFakeExportRepo() *fakeExportRepo {
	return &fakeExportRepo{reports: make(map[string]entity.Report), fail: make(map[string]error)}
}

func (r *fakeExportRepo) export(format string, report entity.Report) (string, error) {
	if err := r.fail[format]; err != nil {
		return "", err
	}
	r.reports[format] = report
	return "/out/report." + format, nil
}

func (r *fakeExportRepo) ExportToExcel(report entity.Report, filename, outputDir string) (string, error) {
	return r.export("xlsx", report)
}

func (r *fakeExportRepo) ExportToCSV(report entity.Report, filename, outputDir string) (string, error) {
	return r.export("csv", report)
}

func (r *fakeExportRepo) ExportToJSON(report entity.Report, filename, outputDir string) (string, error) {
	return r.export("json", report)
}

func (r *fakeExportRepo) ExportToPDF(report entity.Report, filename, outputDir string) (string, error) {
	return r.export("pdf", report)
}

func TestRunListeningReportEndToEnd(t *testing.T) {
	t.Parallel()

	archiveRepo := &fakeArchiveRepo{
		entries: []map[string]any{
			{"endTime": "2023-01-15 10:30", "trackName": "Song A", "artistName": "Artist A", "msPlayed": float64(20000)},
			{"endTime": "2023-01-16 11:00", "trackName": "Song A", "artistName": "Artist A", "msPlayed": float64(10000)},
			{"endTime": "2023-02-01 09:00", "trackName": "Song A", "artistName": "Artist A", "msPlayed": float64(30000)},
		},
	}
	exportRepo := newFakeExportRepo()
	console := &fakeConsole{}
	uc := NewAnalyzerUseCase(archiveRepo, exportRepo, nil, console)

	err := uc.Run(context.Background(), &types.CLIArgs{
		Archive:    "./data/*.zip",
		Period:     "All Time",
		Top:        10,
		ExportTop:  20,
		ReportName: "listening",
		ReportType: []string{"xlsx", "json"},
	})
	require.NoError(t, err)

	// The 10s play is below the threshold and never reaches aggregation.
	assert.Contains(t, console.output(), "3 raw entries -> 2 valid plays")

	report, ok := exportRepo.reports["xlsx"]
	require.True(t, ok)
	require.Len(t, report.Sheets, 2)
	assert.Equal(t, "All Time", report.Sheets[0].Name)
	assert.Equal(t, "2023", report.Sheets[1].Name)

	tracks := report.Sheets[0].Blocks[0]
	require.Len(t, tracks.Rows, 1)
	assert.Equal(t, []string{"Song A", "Artist A", "2", "0 minutes (0.0 hours)"}, tracks.Rows[0])

	assert.Contains(t, exportRepo.reports, "json")
	assert.NotContains(t, exportRepo.reports, "csv")
}

func TestRunListeningReportSchemaMismatchIsNonFatal(t *testing.T) {
	t.Parallel()

	archiveRepo := &fakeArchiveRepo{
		entries: []map[string]any{
			{"episode_name": "Ep 1", "podcast": true},
		},
	}
	console := &fakeConsole{}
	uc := NewAnalyzerUseCase(archiveRepo, newFakeExportRepo(), nil, console)

	err := uc.Run(context.Background(), &types.CLIArgs{Archive: "./data/*.zip", Period: "All Time", Top: 10})
	require.NoError(t, err)
	assert.Contains(t, console.output(), "schema mismatch")
	assert.Contains(t, console.output(), "podcast history")
}

func TestRunListeningReportExportFailureKeepsGoing(t *testing.T) {
	t.Parallel()

	archiveRepo := &fakeArchiveRepo{
		entries: []map[string]any{
			{"endTime": "2023-01-15 10:30", "trackName": "Song A", "artistName": "Artist A", "msPlayed": float64(20000)},
		},
	}
	exportRepo := newFakeExportRepo()
	exportRepo.fail["xlsx"] = fmt.Errorf("spreadsheet backend unavailable")
	console := &fakeConsole{}
	uc := NewAnalyzerUseCase(archiveRepo, exportRepo, nil, console)

	err := uc.Run(context.Background(), &types.CLIArgs{
		Archive:    "./data/*.zip",
		Period:     "All Time",
		Top:        10,
		ExportTop:  20,
		ReportName: "listening",
		ReportType: []string{"xlsx", "csv"},
	})
	require.NoError(t, err)

	assert.Contains(t, console.output(), "Failed to export to Excel")
	assert.Contains(t, exportRepo.reports, "csv")
}

func TestBuildListeningReportSheetLayout(t *testing.T) {
	t.Parallel()

	records := []entity.ActivityRecord{
		record("Song A", "Artist X", 2023, 1_200_000),
		record("Song A", "Artist X", 2023, 1_200_000),
		record("Song B", "Artist Y", 2022, 1_800_000),
	}

	report := BuildListeningReport(ExportRequest{
		Records: records,
		Years:   YearsPresent(records),
		TopN:    20,
	})

	require.Len(t, report.Sheets, 3)
	assert.Equal(t, []string{"All Time", "2023", "2022"},
		[]string{report.Sheets[0].Name, report.Sheets[1].Name, report.Sheets[2].Name})

	allTime := report.Sheets[0]
	require.Len(t, allTime.Blocks, 2)
	assert.Equal(t, "Top 20 Tracks (All Time)", allTime.Blocks[0].Caption)
	assert.Equal(t, []string{"Track", "Artist", "Plays", "Play Time"}, allTime.Blocks[0].Headers)
	assert.Equal(t, "Top 20 Artists (All Time)", allTime.Blocks[1].Caption)
	assert.Equal(t, []string{"Artist", "Plays", "Play Time"}, allTime.Blocks[1].Headers)

	require.Len(t, allTime.Blocks[0].Rows, 2)
	assert.Equal(t, []string{"Song A", "Artist X", "2", "40 minutes (0.7 hours)"}, allTime.Blocks[0].Rows[0])

	sheet2022 := report.Sheets[2]
	require.Len(t, sheet2022.Blocks[0].Rows, 1)
	assert.Equal(t, "Song B", sheet2022.Blocks[0].Rows[0][0])
}

func TestSelectPeriodInvalidYear(t *testing.T) {
	t.Parallel()

	uc := NewAnalyzerUseCase(&fakeArchiveRepo{}, newFakeExportRepo(), nil, &fakeConsole{})
	records := []entity.ActivityRecord{record("Song A", "Artist X", 2023, 20000)}

	_, _, err := uc.selectPeriod(&types.CLIArgs{Period: "1999"}, records, []int{2023})
	assert.ErrorIs(t, err, types.ErrInvalidPeriod)

	_, _, err = uc.selectPeriod(&types.CLIArgs{Period: "whenever"}, records, []int{2023})
	assert.ErrorIs(t, err, types.ErrInvalidPeriod)

	name, subset, err := uc.selectPeriod(&types.CLIArgs{Period: "all"}, records, []int{2023})
	require.NoError(t, err)
	assert.Equal(t, "All Time", name)
	assert.Len(t, subset, 1)
}
