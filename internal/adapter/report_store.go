package adapter

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	m "docreq.dev/pkg/docreq/internal/model"
)

// ReportStore persists check results so they can be inspected later with the
// view command or merged into other tooling.
type ReportStore interface {
	Save(path m.Path, report m.Report) error
	Load(path m.Path) (m.Report, error)
}

// YAMLReportStore stores reports as YAML documents on the local filesystem.
type YAMLReportStore struct{}

// NewReportStore constructs a YAMLReportStore.
func NewReportStore() *YAMLReportStore {
	return &YAMLReportStore{}
}

// Save writes the report to path, overwriting any previous report.
func (s *YAMLReportStore) Save(path m.Path, report m.Report) error {
	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	if err := os.WriteFile(string(path), data, 0o600); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	return nil
}

// Load reads a report previously written by Save.
func (s *YAMLReportStore) Load(path m.Path) (m.Report, error) {
	data, err := os.ReadFile(string(path))
	if err != nil {
		return m.Report{}, fmt.Errorf("failed to read report: %w", err)
	}

	var report m.Report
	if err := yaml.Unmarshal(data, &report); err != nil {
		return m.Report{}, fmt.Errorf("failed to decode report: %w", err)
	}

	if report.Version != m.ReportVersion {
		return m.Report{}, fmt.Errorf("unsupported report version %d", report.Version)
	}

	return report, nil
}
