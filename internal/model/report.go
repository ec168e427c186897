package model

// ReportVersion is the current on-disk report format version.
const ReportVersion = 1

// Report is the persisted form of a check run, written by --output and read
// back by the view command.
type Report struct {
	Version     int          `yaml:"version"`
	Files       int          `yaml:"files"`
	Findings    []Finding    `yaml:"findings"`
	ParseErrors []ParseError `yaml:"parse_errors,omitempty"`
}
