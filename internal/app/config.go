package app

// Output formats accepted by Config.Format.
const (
	FormatDotenv = "dotenv"
	FormatJSON   = "json"
	FormatYAML   = "yaml"
	FormatExport = "export"
)

// Config holds runtime configuration for the application.
type Config struct {
	// Files are env files ordered from most general to most specific.
	Files []string

	// Loading
	MissingOK    bool
	SingleQuotes bool

	// Output
	Format     string
	OutputPath string

	// Command, when set, is run with the loaded environment instead of
	// printing it.
	Command []string

	Verbose bool
}
