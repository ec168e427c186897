package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"docreq.dev/pkg/docreq/internal/domain"
	m "docreq.dev/pkg/docreq/internal/model"
)

const checkLongDescription = `Check the given paths for declarations that lack documentation comments
and print one line per finding:

  path:line:col: missing documentation for <name>

Findings are ordered by file path, then source position. The exit code is
0 when everything is documented, 1 when findings exist, and 2 on fatal
conditions (bad pattern, missing input, parse failure).

` + pathArgsHelp

var checkParallelFlag int

// checkCmd represents the check command.
var checkCmd = newCheckCmd()

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Report declarations that lack documentation",
		Long:  checkLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig()
			if err != nil {
				return fatal("%v", err)
			}

			result, err := checker.Check(cmd.Context(), domain.CheckArgs{
				Paths:    parsePaths(args),
				Config:   cfg,
				Parallel: viper.GetInt(parallelConfigKey),
			})
			if err != nil {
				return fatal("%v", err)
			}

			if err := ui.DisplayFindings(cmd.Context(), result.Findings); err != nil {
				return fatal("%v", err)
			}

			ui.DisplayParseErrors(cmd.Context(), result.ParseErrors)

			if out := viper.GetString(outputConfigKey); out != "" {
				report := m.Report{
					Version:     m.ReportVersion,
					Files:       result.Files,
					Findings:    result.Findings,
					ParseErrors: result.ParseErrors,
				}

				if err := reportStore.Save(m.Path(out), report); err != nil {
					return fatal("%v", err)
				}
			}

			switch {
			case len(result.ParseErrors) > 0:
				return &exitError{code: 2}
			case len(result.Findings) > 0:
				return &exitError{code: 1}
			}

			return nil
		},
	}

	configureCheckFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func configureCheckFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&checkParallelFlag, parallelFlagName, "p",
		viper.GetInt(parallelConfigKey), "number of files checked concurrently")
	bindFlagToConfig(cmd.Flags().Lookup(parallelFlagName), parallelConfigKey)
}
