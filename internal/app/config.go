package app

// Config holds runtime configuration for the application.
type Config struct {
	// Dir is the working directory scanned for input documents.
	Dir string

	// Language selects the catalog for operator-facing diagnostics.
	Language string

	// Behavior
	Verbose       bool
	KeepGoing     bool
	SkipProcessed bool

	// ReportPath optionally receives a run summary; format follows the extension.
	ReportPath string
}

const (
	dirDefault      = "."
	languageDefault = "uk"
)

// DefaultConfig returns the zero-argument configuration.
func DefaultConfig() Config {
	return Config{Dir: dirDefault, Language: languageDefault}
}
