package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"docreq.dev/pkg/docreq/internal/domain"
)

const listLongDescription = `List source files with their documentable construct counts and how many
are missing documentation under the current policy.

` + pathArgsHelp

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [paths...]",
		Short: "List source files and construct counts",
		Long:  listLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig()
			if err != nil {
				return fatal("%v", err)
			}

			stats, err := checker.Estimate(cmd.Context(), domain.CheckArgs{
				Paths:    parsePaths(args),
				Config:   cfg,
				Parallel: viper.GetInt(parallelConfigKey),
			})
			if err != nil {
				return fatal("%v", err)
			}

			return ui.DisplayFileStats(cmd.Context(), stats)
		},
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
}
