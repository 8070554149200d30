package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/activitylens/activitylens/internal/domain/entity"
	"github.com/activitylens/activitylens/internal/domain/repository"
	"github.com/activitylens/activitylens/internal/shared/types"
)

const (
	// DefaultStreamingPattern matches both StreamingHistoryX.json and
	// Streaming_History_Audio_*.json member names.
	DefaultStreamingPattern = "Streaming_History_*.json"

	// DefaultTreePattern matches the account-dump payload of social exports.
	DefaultTreePattern = "user_data*.json"

	allTimePeriod = "All Time"
)

// AnalyzerUseCase drives the full analysis: load, normalize, filter, rank,
// display and export.
type AnalyzerUseCase struct {
	archiveRepo repository.ArchiveRepository
	exportRepo  repository.ExportRepository
	configRepo  repository.ConfigRepository
	console     types.ConsoleInterface
}

// NewAnalyzerUseCase creates a new analyzer use case.
func NewAnalyzerUseCase(
	archiveRepo repository.ArchiveRepository,
	exportRepo repository.ExportRepository,
	configRepo repository.ConfigRepository,
	console types.ConsoleInterface,
) *AnalyzerUseCase {
	return &AnalyzerUseCase{
		archiveRepo: archiveRepo,
		exportRepo:  exportRepo,
		configRepo:  configRepo,
		console:     console,
	}
}

// Run dispatches to the social-export or streaming-history pipeline.
func (uc *AnalyzerUseCase) Run(ctx context.Context, args *types.CLIArgs) error {
	if args.Social {
		return uc.RunSocialReport(ctx, args)
	}
	return uc.RunListeningReport(ctx, args)
}

// ExportRequest carries the full normalized record set into the export
// step explicitly. Reports are recomputed from it on every request;
// nothing is cached between runs.
type ExportRequest struct {
	Records []entity.ActivityRecord
	Years   []int
	TopN    int
}

// RunListeningReport runs the streaming-history pipeline end to end.
// Container, decode and schema conditions are reported and end the run
// with an empty result; they are never returned as errors.
func (uc *AnalyzerUseCase) RunListeningReport(ctx context.Context, args *types.CLIArgs) error {
	uc.console.LogInfo("Analyzing streaming history from %s", args.Archive)

	archivePath, err := uc.archiveRepo.FindArchive(args.Archive)
	if err != nil {
		uc.console.LogError("Could not locate the export archive: %s", err)
		return nil
	}

	pattern := args.Pattern
	if pattern == "" {
		pattern = DefaultStreamingPattern
	}

	status := uc.console.Status(fmt.Sprintf("Scanning %s", archivePath))
	names, err := uc.archiveRepo.ListMatches(archivePath, pattern)
	status.Stop()
	if err != nil {
		uc.console.LogError("Could not read the export archive: %s", err)
		return nil
	}

	var entries []map[string]any
	var shardErrs []error
	progress := uc.console.ProgressWithTotal(len(names))
	for _, name := range names {
		shard, errs, err := uc.archiveRepo.LoadEntries(archivePath, []string{name})
		if err != nil {
			progress.Stop()
			uc.console.LogError("Could not load archive entries: %s", err)
			return nil
		}
		entries = append(entries, shard...)
		shardErrs = append(shardErrs, errs...)
		progress.Increment()
	}
	progress.Stop()
	for _, shardErr := range shardErrs {
		uc.console.LogWarning("Skipping unreadable shard: %s", shardErr)
	}
	if len(entries) == 0 {
		uc.console.LogWarning("No entries loaded from the JSON files in the archive")
		return nil
	}

	normalized, err := NormalizeEntries(entries)
	if err != nil {
		var schemaErr *types.SchemaError
		if errors.As(err, &schemaErr) {
			uc.console.LogError("%s", schemaErr)
			if HasEpisodeData(entries) {
				uc.console.LogWarning("Only podcast history found; track analysis is skipped")
			}
			return nil
		}
		return err
	}

	records, _ := FilterRecords(normalized)
	uc.console.LogInfo("Preprocessing: %d raw entries -> %d valid plays after filtering", len(entries), len(records))
	if len(records) == 0 {
		uc.console.LogWarning("No plays above the %ds threshold to analyze", entity.MinPlayedMS/1000)
		return nil
	}

	years := YearsPresent(records)
	periodName, periodRecords, err := uc.selectPeriod(args, records, years)
	if err != nil {
		uc.console.LogError("Invalid period selection: %s", err)
		return nil
	}

	uc.displayPeriod(periodName, periodRecords, args.Top)
	if periodName == allTimePeriod && len(years) > 1 {
		uc.console.DisplayYearlyBars(YearlyPlayTimes(records))
	}

	if args.ReportName != "" && len(args.ReportType) > 0 {
		report := BuildListeningReport(ExportRequest{
			Records: records,
			Years:   years,
			TopN:    args.ExportTop,
		})
		uc.exportReport(report, args)
	}

	return nil
}

// selectPeriod resolves the analysis period from the --period flag, asking
// through the interactive menu when no flag was given.
func (uc *AnalyzerUseCase) selectPeriod(args *types.CLIArgs, records []entity.ActivityRecord, years []int) (string, []entity.ActivityRecord, error) {
	period := args.Period
	if period == "" {
		options := []string{allTimePeriod}
		for _, year := range years {
			options = append(options, strconv.Itoa(year))
		}
		chosen, err := uc.console.Select("Choose a period to analyze", options)
		if err != nil {
			return "", nil, err
		}
		period = chosen
	}

	if period == allTimePeriod || strings.EqualFold(period, "all") {
		return allTimePeriod, records, nil
	}

	year, err := strconv.Atoi(period)
	if err != nil {
		return "", nil, types.ErrInvalidPeriod
	}
	subset := RecordsForYear(records, year)
	if len(subset) == 0 {
		return "", nil, types.ErrInvalidPeriod
	}
	return period, subset, nil
}

// displayPeriod renders the stats line and the top-N tables for one period.
func (uc *AnalyzerUseCase) displayPeriod(name string, records []entity.ActivityRecord, topN int) {
	stats := ComputePeriodStats(name, records)
	uc.console.Println()
	uc.console.LogInfo("%s: %d tracks - %d artists - %s",
		stats.Name, stats.UniqueTracks, stats.UniqueArtists, FormatPlayTime(float64(stats.TotalMS)))

	topTracks := TopTracks(records, topN)
	if len(topTracks) == 0 {
		uc.console.LogWarning("No top tracks for this period")
	} else {
		table := uc.console.CreateTable()
		table.AddColumn("#")
		table.AddColumn("Track")
		table.AddColumn("Artist")
		table.AddColumn("Plays")
		table.AddColumn("Play Time")
		for i, row := range topTracks {
			subject, actor := entity.SplitCompositeKey(row.Key)
			table.AddRow(i+1, truncate(subject, 30), actor, row.PlayCount, FormatPlayTime(float64(row.TotalMS)))
		}
		uc.console.Print(table.Render())
	}

	topArtists := TopArtists(records, topN)
	if len(topArtists) == 0 {
		uc.console.LogWarning("No top artists for this period")
	} else {
		table := uc.console.CreateTable()
		table.AddColumn("#")
		table.AddColumn("Artist")
		table.AddColumn("Plays")
		table.AddColumn("Play Time")
		for i, row := range topArtists {
			table.AddRow(i+1, row.Key, row.PlayCount, FormatPlayTime(float64(row.TotalMS)))
		}
		uc.console.Print(table.Render())
	}
}

// BuildListeningReport builds the multi-sheet spreadsheet report: one
// "All Time" sheet plus one sheet per calendar year present, newest first,
// each carrying a top-tracks block and a top-artists block.
func BuildListeningReport(req ExportRequest) entity.Report {
	sheets := []entity.ReportSheet{listeningSheet(allTimePeriod, req.Records, req.TopN)}
	for _, year := range req.Years {
		name := strconv.Itoa(year)
		sheets = append(sheets, listeningSheet(name, RecordsForYear(req.Records, year), req.TopN))
	}
	return entity.Report{Sheets: sheets}
}

func listeningSheet(name string, records []entity.ActivityRecord, topN int) entity.ReportSheet {
	return entity.ReportSheet{
		Name: name,
		Blocks: []entity.ReportBlock{
			tracksBlock(fmt.Sprintf("Top %d Tracks (%s)", topN, name), TopTracks(records, topN)),
			artistsBlock(fmt.Sprintf("Top %d Artists (%s)", topN, name), TopArtists(records, topN)),
		},
	}
}

func tracksBlock(caption string, rows []entity.RankedRow) entity.ReportBlock {
	block := entity.ReportBlock{
		Caption: caption,
		Headers: []string{"Track", "Artist", "Plays", "Play Time"},
	}
	for _, row := range rows {
		subject, actor := entity.SplitCompositeKey(row.Key)
		block.Rows = append(block.Rows, []string{
			subject, actor, strconv.Itoa(row.PlayCount), FormatPlayTime(float64(row.TotalMS)),
		})
	}
	return block
}

func artistsBlock(caption string, rows []entity.RankedRow) entity.ReportBlock {
	block := entity.ReportBlock{
		Caption: caption,
		Headers: []string{"Artist", "Plays", "Play Time"},
	}
	for _, row := range rows {
		block.Rows = append(block.Rows, []string{
			row.Key, strconv.Itoa(row.PlayCount), FormatPlayTime(float64(row.TotalMS)),
		})
	}
	return block
}

// exportReport writes the report in every requested format. Export
// failures are reported and skipped; the console report already shown is
// unaffected.
func (uc *AnalyzerUseCase) exportReport(report entity.Report, args *types.CLIArgs) {
	for _, reportType := range args.ReportType {
		switch reportType {
		case "xlsx":
			path, err := uc.exportRepo.ExportToExcel(report, args.ReportName, args.Dir)
			if err != nil {
				uc.console.LogError("Failed to export to Excel: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported to Excel: %s", path)
			}
		case "csv":
			path, err := uc.exportRepo.ExportToCSV(report, args.ReportName, args.Dir)
			if err != nil {
				uc.console.LogError("Failed to export to CSV: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported to CSV: %s", path)
			}
		case "json":
			path, err := uc.exportRepo.ExportToJSON(report, args.ReportName, args.Dir)
			if err != nil {
				uc.console.LogError("Failed to export to JSON: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported to JSON: %s", path)
			}
		case "pdf":
			path, err := uc.exportRepo.ExportToPDF(report, args.ReportName, args.Dir)
			if err != nil {
				uc.console.LogError("Failed to export to PDF: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported to PDF: %s", path)
			}
		default:
			uc.console.LogWarning("Unknown report type: %s", reportType)
		}
	}
}

// truncate shortens a display string to max runes with an ellipsis.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max-3]) + "..."
}
