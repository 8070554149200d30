package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/activitylens/activitylens/internal/domain/entity"
	"github.com/activitylens/activitylens/internal/domain/repository"
	"github.com/activitylens/activitylens/internal/shared/types"
	"github.com/jung-kurt/gofpdf"
)

// ExportRepositoryImpl implements the ExportRepository.
type ExportRepositoryImpl struct{}

// NewExportRepository creates a new ExportRepository implementation.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{}
}

// ExportToExcel writes the report as a multi-sheet workbook through the
// layout engine: every sheet's blocks are placed with computed offsets,
// then every column is sized across the whole sheet.
func (r *ExportRepositoryImpl) ExportToExcel(report entity.Report, filename, outputDir string) (string, error) {
	if !hasContent(report) {
		return "", types.ErrExportNothingToDo
	}
	outputFilename, err := generateFilename(filename, outputDir, "xlsx")
	if err != nil {
		return "", err
	}

	writer := NewExcelWriter()
	layout := NewLayout(writer)
	if err := layout.PlaceReport(report); err != nil {
		return "", fmt.Errorf("error laying out spreadsheet report: %w", err)
	}
	if err := writer.Save(outputFilename); err != nil {
		return "", err
	}

	return filepath.Abs(outputFilename)
}

// ExportToCSV flattens the report into one CSV: per sheet and block, a
// section row with "sheet: caption", the header row, the data rows, and a
// blank separator row.
func (r *ExportRepositoryImpl) ExportToCSV(report entity.Report, filename, outputDir string) (string, error) {
	if !hasContent(report) {
		return "", types.ErrExportNothingToDo
	}
	outputFilename, err := generateFilename(filename, outputDir, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	for _, sheet := range report.Sheets {
		for _, block := range sheet.Blocks {
			if block.Empty() {
				continue
			}
			if err := writer.Write([]string{fmt.Sprintf("%s: %s", sheet.Name, block.Caption)}); err != nil {
				return "", fmt.Errorf("error writing CSV section: %w", err)
			}
			if err := writer.Write(block.Headers); err != nil {
				return "", fmt.Errorf("error writing CSV header: %w", err)
			}
			for _, row := range block.Rows {
				if err := writer.Write(row); err != nil {
					return "", fmt.Errorf("error writing CSV record: %w", err)
				}
			}
			if err := writer.Write([]string{}); err != nil {
				return "", fmt.Errorf("error writing CSV separator: %w", err)
			}
		}
	}

	return filepath.Abs(outputFilename)
}

// ExportToJSON encodes the full report structure.
func (r *ExportRepositoryImpl) ExportToJSON(report entity.Report, filename, outputDir string) (string, error) {
	if !hasContent(report) {
		return "", types.ErrExportNothingToDo
	}
	outputFilename, err := generateFilename(filename, outputDir, "json")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return "", fmt.Errorf("error encoding JSON data: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// ExportToPDF renders one page per sheet with a section per block.
func (r *ExportRepositoryImpl) ExportToPDF(report entity.Report, filename, outputDir string) (string, error) {
	if !hasContent(report) {
		return "", types.ErrExportNothingToDo
	}
	outputFilename, err := generateFilename(filename, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	headerColor := [3]int{40, 40, 40}
	headerTextColor := [3]int{255, 255, 255}
	sectionTitleColor := [3]int{0, 0, 0}
	bodyTextColor := [3]int{50, 50, 50}
	lineColor := [3]int{200, 200, 200}

	drawSection := func(title string, content string) {
		if content == "" {
			return
		}
		pdf.SetFont("Arial", "B", 12)
		pdf.SetTextColor(sectionTitleColor[0], sectionTitleColor[1], sectionTitleColor[2])
		pdf.Cell(0, 8, tr(title))
		pdf.Ln(7)

		pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
		pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+190, pdf.GetY())
		pdf.Ln(4)

		pdf.SetFont("Arial", "", 9)
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
		pdf.MultiCell(190, 5, tr(content), "", "L", false)
		pdf.Ln(8)
	}

	for i, sheet := range report.Sheets {
		pdf.AddPage()

		pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
		pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 12, tr(fmt.Sprintf("  %s", sheet.Name)), "", 1, "L", true, 0, "")
		pdf.Ln(8)

		for _, block := range sheet.Blocks {
			if block.Empty() {
				continue
			}
			var content strings.Builder
			content.WriteString(strings.Join(block.Headers, " | "))
			content.WriteString("\n")
			for _, row := range block.Rows {
				content.WriteString(strings.Join(row, " | "))
				content.WriteString("\n")
			}
			drawSection(block.Caption, strings.TrimSpace(content.String()))
		}

		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		footerText := fmt.Sprintf("Generated by activitylens | %s", time.Now().Format("2006-01-02"))
		pdf.CellFormat(0, 10, tr(footerText), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 10, tr(fmt.Sprintf("Page %d", i+1)), "", 0, "R", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", fmt.Errorf("error writing PDF file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// hasContent reports whether any block in the report carries rows.
func hasContent(report entity.Report) bool {
	for _, sheet := range report.Sheets {
		for _, block := range sheet.Blocks {
			if !block.Empty() {
				return true
			}
		}
	}
	return false
}

// generateFilename builds a unique timestamped file name and makes sure
// the output directory exists.
func generateFilename(base, dir, ext string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.%s", base, timestamp, ext)
	return filepath.Join(dir, filename), nil
}
