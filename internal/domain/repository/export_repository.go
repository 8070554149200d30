package repository

import (
	"github.com/activitylens/activitylens/internal/domain/entity"
)

type ExportRepository interface {
	ExportToExcel(report entity.Report, filename string, outputDir string) (string, error)
	ExportToCSV(report entity.Report, filename string, outputDir string) (string, error)
	ExportToJSON(report entity.Report, filename string, outputDir string) (string, error)
	ExportToPDF(report entity.Report, filename string, outputDir string) (string, error)
}
