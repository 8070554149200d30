package types

// CLIArgs represents the command-line arguments.
type CLIArgs struct {
	ConfigFile string
	Archive    string
	Pattern    string
	Social     bool
	Period     string
	Top        int
	ExportTop  int
	ReportName string
	ReportType []string
	Dir        string
}
