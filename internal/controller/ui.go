// Package controller provides output adapters for displaying check results.
package controller

import (
	"context"
	"os"

	"golang.org/x/term"

	m "docreq.dev/pkg/docreq/internal/model"
)

// UI defines the interface for presenting check results. Implementations
// range from plain text to an interactive browser.
type UI interface {
	DisplayFindings(ctx context.Context, findings []m.Finding) error
	DisplayParseErrors(ctx context.Context, errs []m.ParseError)
	DisplayFileStats(ctx context.Context, stats []m.FileStat) error
}

// IsTTY reports whether the file is attached to a terminal.
func IsTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
