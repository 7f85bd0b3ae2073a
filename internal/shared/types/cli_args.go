package types

// CLIArgs represents the command-line arguments shared by every command.
type CLIArgs struct {
	ConfigFile string
	APIBaseURL string
	Debug      bool
	ReportName string
	ReportType []string
	Dir        string
}

// WantsReport reports whether the user asked for an exported report.
func (a *CLIArgs) WantsReport() bool {
	return a != nil && a.ReportName != "" && len(a.ReportType) > 0
}
