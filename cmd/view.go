package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"docreq.dev/pkg/docreq/internal/controller"
	m "docreq.dev/pkg/docreq/internal/model"
)

var viewInteractiveFlag bool

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "View a previously saved findings report",
		Long:  "View a findings report previously written with --output.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			reportPath := m.Path(viper.GetString(outputConfigKey))
			if reportPath == "" {
				return fatal("no report file given; set --%s", outputFlagName)
			}

			report, err := reportStore.Load(reportPath)
			if err != nil {
				return fatal("%v", err)
			}

			if viewInteractiveFlag && controller.IsTTY(os.Stdout) {
				return controller.BrowseFindings(os.Stdout, report.Findings)
			}

			if err := ui.DisplayFindings(cmd.Context(), report.Findings); err != nil {
				return fatal("%v", err)
			}

			ui.DisplayParseErrors(cmd.Context(), report.ParseErrors)

			return nil
		},
	}

	cmd.Flags().BoolVarP(&viewInteractiveFlag, "interactive", "i", false,
		"browse findings in an interactive terminal UI")

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
