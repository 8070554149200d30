package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/activitylens/activitylens/internal/application/usecase"
	"github.com/activitylens/activitylens/internal/domain/repository"
	"github.com/activitylens/activitylens/internal/shared/types"
	"github.com/activitylens/activitylens/pkg/version"
)

// Default archive globs per export kind. Both expect the export dropped
// into a ./data directory next to the binary.
const (
	defaultStreamingArchive = "./data/my_spotify_data*.zip"
	defaultSocialArchive    = "./data/TikTok_Data_*.zip"
)

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd         *cobra.Command
	analyzerUseCase *usecase.AnalyzerUseCase
	configRepo      repository.ConfigRepository
	version         string
}

// NewCLIApp creates the CLI application and its flag set.
func NewCLIApp(versionStr string) *CLIApp {
	app := &CLIApp{
		version: versionStr,
	}

	formattedVersion := version.FormatVersion()

	rootCmd := &cobra.Command{
		Use:     "activitylens",
		Short:   "Activity-history export analyzer CLI",
		Version: formattedVersion,
		RunE:    app.runCommand,
	}

	rootCmd.SetVersionTemplate(`{{printf "ActivityLens version: %s\n" .Version}}`)

	rootCmd.PersistentFlags().StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	rootCmd.PersistentFlags().StringP("archive", "f", "", "Glob pattern of the export zip archive to analyze")
	rootCmd.PersistentFlags().String("pattern", "", "Member-name pattern of the JSON files inside the archive")
	rootCmd.PersistentFlags().Bool("social", false, "Analyze a social-app account export instead of streaming history")
	rootCmd.PersistentFlags().String("period", "", "Analysis period: \"all\" or a calendar year (default: interactive prompt)")
	rootCmd.PersistentFlags().IntP("top", "t", 10, "Number of ranked rows in the console report")
	rootCmd.PersistentFlags().Int("export-top", 20, "Number of ranked rows per block in exported reports")
	rootCmd.PersistentFlags().StringP("report-name", "n", "", "Specify the base name for the report file (without extension)")
	rootCmd.PersistentFlags().StringSliceP("report-type", "y", []string{"xlsx"}, "Specify report types: xlsx, csv, json, pdf")
	rootCmd.PersistentFlags().StringP("dir", "d", "", "Directory to save the report files (default: current directory)")

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// parseArgs parses command-line arguments into a CLIArgs struct and merges
// in the configuration file. Flags given explicitly win over file values.
func (app *CLIApp) parseArgs() (*types.CLIArgs, error) {
	flags := app.rootCmd.Flags()

	configFile, _ := flags.GetString("config-file")
	archive, _ := flags.GetString("archive")
	pattern, _ := flags.GetString("pattern")
	social, _ := flags.GetBool("social")
	period, _ := flags.GetString("period")
	top, _ := flags.GetInt("top")
	exportTop, _ := flags.GetInt("export-top")
	reportName, _ := flags.GetString("report-name")
	reportType, _ := flags.GetStringSlice("report-type")
	dir, _ := flags.GetString("dir")

	args := &types.CLIArgs{
		ConfigFile: configFile,
		Archive:    archive,
		Pattern:    pattern,
		Social:     social,
		Period:     period,
		Top:        top,
		ExportTop:  exportTop,
		ReportName: reportName,
		ReportType: reportType,
		Dir:        dir,
	}

	if configFile != "" && app.configRepo != nil {
		config, err := app.configRepo.LoadConfigFile(configFile)
		if err != nil {
			return nil, err
		}
		app.mergeConfig(args, config)
	}

	if args.Archive == "" {
		if args.Social {
			args.Archive = defaultSocialArchive
		} else {
			args.Archive = defaultStreamingArchive
		}
	}

	// Set default directory to current working directory if not specified
	if args.Dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		args.Dir = cwd
	} else {
		absDir, err := filepath.Abs(args.Dir)
		if err != nil {
			return nil, err
		}
		args.Dir = absDir
	}

	return args, nil
}

// mergeConfig fills unset arguments from the configuration file.
func (app *CLIApp) mergeConfig(args *types.CLIArgs, config *types.Config) {
	if args.Archive == "" {
		args.Archive = config.Archive
	}
	if args.Pattern == "" {
		args.Pattern = config.Pattern
	}
	if !args.Social {
		args.Social = config.Social
	}
	if !app.rootCmd.Flags().Changed("top") && config.Top > 0 {
		args.Top = config.Top
	}
	if !app.rootCmd.Flags().Changed("export-top") && config.ExportTop > 0 {
		args.ExportTop = config.ExportTop
	}
	if args.ReportName == "" {
		args.ReportName = config.ReportName
	}
	if !app.rootCmd.Flags().Changed("report-type") && len(config.ReportType) > 0 {
		args.ReportType = config.ReportType
	}
	if args.Dir == "" {
		args.Dir = config.Dir
	}
}

// runCommand is the main entry point of the CLI command.
func (app *CLIApp) runCommand(cmd *cobra.Command, args []string) error {
	displayWelcomeBanner(app.version)

	go version.CheckLatestVersion(app.version)

	cliArgs, err := app.parseArgs()
	if err != nil {
		return err
	}

	ctx := context.Background()
	return app.analyzerUseCase.Run(ctx, cliArgs)
}

// SetAnalyzerUseCase sets the analyzer use case for the CLI app.
func (app *CLIApp) SetAnalyzerUseCase(useCase *usecase.AnalyzerUseCase) {
	app.analyzerUseCase = useCase
}

// SetConfigRepository sets the configuration-file loader for the CLI app.
func (app *CLIApp) SetConfigRepository(repo repository.ConfigRepository) {
	app.configRepo = repo
}
