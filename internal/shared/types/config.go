package types

// Config represents the application configuration that can be loaded from a file.
type Config struct {
	Archive    string   `json:"archive" yaml:"archive" toml:"archive"`
	Pattern    string   `json:"pattern" yaml:"pattern" toml:"pattern"`
	Social     bool     `json:"social" yaml:"social" toml:"social"`
	Top        int      `json:"top" yaml:"top" toml:"top"`
	ExportTop  int      `json:"export_top" yaml:"export_top" toml:"export_top"`
	ReportName string   `json:"report_name" yaml:"report_name" toml:"report_name"`
	ReportType []string `json:"report_type" yaml:"report_type" toml:"report_type"`
	Dir        string   `json:"dir" yaml:"dir" toml:"dir"`
}
