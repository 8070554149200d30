package main

import (
	"fmt"
	"os"

	"github.com/activitylens/activitylens/internal/adapter/driven/archive"
	"github.com/activitylens/activitylens/internal/adapter/driven/config"
	"github.com/activitylens/activitylens/internal/adapter/driven/export"
	"github.com/activitylens/activitylens/internal/adapter/driving/cli"
	"github.com/activitylens/activitylens/internal/application/usecase"
	"github.com/activitylens/activitylens/pkg/console"
	"github.com/activitylens/activitylens/pkg/version"
)

func main() {
	app := cli.NewCLIApp(version.Version)

	archiveRepo := archive.NewZipRepository()
	exportRepo := export.NewExportRepository()
	configRepo := config.NewConfigRepository()
	consoleImpl := console.NewConsole()

	analyzerUseCase := usecase.NewAnalyzerUseCase(
		archiveRepo,
		exportRepo,
		configRepo,
		consoleImpl,
	)

	app.SetAnalyzerUseCase(analyzerUseCase)
	app.SetConfigRepository(configRepo)

	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
