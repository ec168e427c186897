package controller

import (
	"bytes"
	"context"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "docreq.dev/pkg/docreq/internal/model"
)

// SimpleUI implements UI using the cobra Command's output streams.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayFindings prints one line per finding, in the order given.
func (s *SimpleUI) DisplayFindings(ctx context.Context, findings []m.Finding) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	for _, finding := range findings {
		s.cmd.Println(finding.String())
	}

	return nil
}

// DisplayParseErrors prints parse failures to the error stream.
func (s *SimpleUI) DisplayParseErrors(ctx context.Context, errs []m.ParseError) {
	if err := ctx.Err(); err != nil {
		return
	}

	for _, parseErr := range errs {
		s.cmd.PrintErrf("problem while parsing %s: %s\n", parseErr.Path, parseErr.Message)
	}
}

// DisplayFileStats renders the per-file construct table.
func (s *SimpleUI) DisplayFileStats(ctx context.Context, stats []m.FileStat) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.cmd.Printf("\n%s", renderStatsTable(stats))

	return nil
}

func renderStatsTable(stats []m.FileStat) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Constructs", "Missing"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER,
	})

	totalConstructs := 0
	totalMissing := 0

	for _, stat := range stats {
		table.Append([]string{
			string(stat.Path),
			fmt.Sprintf("%d", stat.Constructs),
			fmt.Sprintf("%d", stat.Missing),
		})

		totalConstructs += stat.Constructs
		totalMissing += stat.Missing
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(stats)),
		fmt.Sprintf("%d", totalConstructs),
		fmt.Sprintf("%d", totalMissing),
	})

	table.Render()

	return tableBuffer.String()
}
