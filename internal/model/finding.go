package model

import (
	"fmt"
	"sort"
)

// Finding reports one construct that lacks documentation.
type Finding struct {
	Path   Path   `yaml:"path"`
	Line   int    `yaml:"line"`
	Column int    `yaml:"column"`
	Name   string `yaml:"name"`

	// Offset lets embedders holding the originating token.FileSet map the
	// finding back onto the syntax tree. Not persisted.
	Offset int `yaml:"-"`
}

// String renders the finding in path:line:col form.
func (f Finding) String() string {
	if f.Line == 0 {
		return fmt.Sprintf("missing documentation for %s", f.Name)
	}

	return fmt.Sprintf("%s:%d:%d: missing documentation for %s", f.Path, f.Line, f.Column, f.Name)
}

// SortFindings orders findings by path, then position, then name. Final
// output must hold this order regardless of per-file completion order.
func SortFindings(findings []Finding) {
	sort.Slice(findings, func(i, j int) bool {
		a, b := findings[i], findings[j]
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Column != b.Column {
			return a.Column < b.Column
		}

		return a.Name < b.Name
	})
}

// ParseError records a file that could not be parsed. The file's findings
// are skipped; processing continues with the next file.
type ParseError struct {
	Path    Path   `yaml:"path"`
	Message string `yaml:"message"`
}

// FileSummary carries per-file facts the traversal collects alongside
// findings: the documentable construct count and the package clause state.
type FileSummary struct {
	Path              Path
	Constructs        int
	Package           string
	PackageDocumented bool
	PackagePos        Position
}

// FileStat is one row of the list output.
type FileStat struct {
	Path       Path
	Constructs int
	Missing    int
}

// CheckResult aggregates the outcome of one run.
type CheckResult struct {
	Findings    []Finding
	ParseErrors []ParseError
	Files       int
}
