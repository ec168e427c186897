// Package cmd provides the root command and CLI setup for docreq.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"docreq.dev/pkg/docreq/internal/adapter"
	"docreq.dev/pkg/docreq/internal/controller"
	"docreq.dev/pkg/docreq/internal/domain"
	m "docreq.dev/pkg/docreq/internal/model"
)

var goFileAdapter adapter.GoFileAdapter
var fsAdapter adapter.SourceFSAdapter
var reportStore adapter.ReportStore
var checker domain.Workflow
var ui controller.UI

// Root-level flag variables shared by the commands that check files.
var excludeFlag string
var outputFlag string
var relativeFlag bool
var verboseFlag bool
var logFileFlag string

var dontRequireFlag string
var dontRequirePrivateFlag bool
var dontRequireNoargCtorFlag bool
var dontRequireTrivialPropsFlag bool
var dontRequireTypeFlag bool
var dontRequireFieldFlag bool
var dontRequireMethodFlag bool
var requirePackageInfoFlag bool

func init() {
	// Initialize shared dependencies.
	goFileAdapter = adapter.NewLocalGoFileAdapter()
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	reportStore = adapter.NewReportStore()
	checker = domain.NewWorkflow(goFileAdapter, fsAdapter)
	ui = controller.NewSimpleUI(rootCmd)
}

const pathArgsHelp = `Positional arguments are files or directories:
  - a directory is expanded to every .go file beneath it
  - no arguments means the current directory`

const rootLongDescription = `Docreq reports every documentable declaration in a Go source tree that
lacks a documentation comment: types, functions, methods, constructors,
struct fields, interface methods, package-level variables and constants,
and the package clause of package-information files.

It reports, never rewrites. Exemptions are explicit: regular-expression
name suppression, per-kind toggles, visibility toggles, and the trivial
accessor classifier.

` + pathArgsHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "docreq",
		Short:        "Require documentation comments on Go declarations",
		Long:         rootLongDescription,
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(verboseFlagName))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.StringVar(&excludeFlag, excludeFlagName, viper.GetString(excludeConfigKey),
		"skip files and directories whose path matches the regex")
	bindFlagToConfig(flags.Lookup(excludeFlagName), excludeConfigKey)

	flags.StringVarP(&outputFlag, outputFlagName, "o", viper.GetString(outputConfigKey),
		"write a YAML findings report to the given file")
	bindFlagToConfig(flags.Lookup(outputFlagName), outputConfigKey)

	flags.BoolVar(&relativeFlag, relativeFlagName, viper.GetBool(relativeConfigKey),
		"print paths relative to the working directory")
	bindFlagToConfig(flags.Lookup(relativeFlagName), relativeConfigKey)

	flags.BoolVar(&verboseFlag, verboseFlagName, viper.GetBool(logVerboseKey),
		"emit diagnostic tracing to the log file")
	bindFlagToConfig(flags.Lookup(verboseFlagName), logVerboseKey)

	flags.StringVar(&logFileFlag, logFileFlagName, viper.GetString(logFilenameKey),
		"log file location")
	bindFlagToConfig(flags.Lookup(logFileFlagName), logFilenameKey)

	flags.StringVar(&dontRequireFlag, dontRequireFlagName, viper.GetString(dontRequireConfigKey),
		"suppress reporting for simple names (packages: qualified names) matching the regex")
	bindFlagToConfig(flags.Lookup(dontRequireFlagName), dontRequireConfigKey)

	flags.BoolVar(&dontRequirePrivateFlag, dontRequirePrivateFlagName,
		viper.GetBool(dontRequirePrivateConfigKey), "skip unexported declarations")
	bindFlagToConfig(flags.Lookup(dontRequirePrivateFlagName), dontRequirePrivateConfigKey)

	flags.BoolVar(&dontRequireNoargCtorFlag, dontRequireNoargCtorFlagName,
		viper.GetBool(dontRequireNoargCtorConfigKey), "skip zero-argument constructor functions")
	bindFlagToConfig(flags.Lookup(dontRequireNoargCtorFlagName), dontRequireNoargCtorConfigKey)

	flags.BoolVar(&dontRequireTrivialPropsFlag, dontRequireTrivialPropsFlagName,
		viper.GetBool(dontRequireTrivialPropsConfigKey), "skip trivial getter and setter methods")
	bindFlagToConfig(flags.Lookup(dontRequireTrivialPropsFlagName), dontRequireTrivialPropsConfigKey)

	flags.BoolVar(&dontRequireTypeFlag, dontRequireTypeFlagName,
		viper.GetBool(dontRequireTypeConfigKey), "skip type declarations")
	bindFlagToConfig(flags.Lookup(dontRequireTypeFlagName), dontRequireTypeConfigKey)

	flags.BoolVar(&dontRequireFieldFlag, dontRequireFieldFlagName,
		viper.GetBool(dontRequireFieldConfigKey), "skip fields, variables, and constants")
	bindFlagToConfig(flags.Lookup(dontRequireFieldFlagName), dontRequireFieldConfigKey)

	flags.BoolVar(&dontRequireMethodFlag, dontRequireMethodFlagName,
		viper.GetBool(dontRequireMethodConfigKey), "skip functions, methods, and constructors")
	bindFlagToConfig(flags.Lookup(dontRequireMethodFlagName), dontRequireMethodConfigKey)

	flags.BoolVar(&requirePackageInfoFlag, requirePackageInfoFlagName,
		viper.GetBool(requirePackageInfoConfigKey),
		"additionally require package documentation in every scanned directory")
	bindFlagToConfig(flags.Lookup(requirePackageInfoFlagName), requirePackageInfoConfigKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// exitError carries a process exit code through cobra's error path. Findings
// exit 1; fatal conditions exit 2.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string {
	return e.msg
}

func fatal(format string, args ...any) *exitError {
	return &exitError{code: 2, msg: fmt.Sprintf(format, args...)}
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). The process exit code
// reflects the outcome: 0 clean, 1 findings, 2 fatal.
func Execute() {
	err := rootCmd.Execute()
	if err == nil {
		return
	}

	var exit *exitError
	if errors.As(err, &exit) {
		if exit.msg != "" {
			rootCmd.PrintErrln(exit.msg)
		}

		os.Exit(exit.code)
	}

	os.Exit(2)
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}

// buildConfig assembles the immutable policy record for one run. A malformed
// regex is a configuration error, reported before any traversal begins.
func buildConfig() (m.Config, error) {
	cfg := m.Config{
		DontRequirePrivate:           viper.GetBool(dontRequirePrivateConfigKey),
		DontRequireNoargConstructor:  viper.GetBool(dontRequireNoargCtorConfigKey),
		DontRequireTrivialProperties: viper.GetBool(dontRequireTrivialPropsConfigKey),
		DontRequireType:              viper.GetBool(dontRequireTypeConfigKey),
		DontRequireField:             viper.GetBool(dontRequireFieldConfigKey),
		DontRequireMethod:            viper.GetBool(dontRequireMethodConfigKey),
		RequirePackageInfo:           viper.GetBool(requirePackageInfoConfigKey),
		Relative:                     viper.GetBool(relativeConfigKey),
		Verbose:                      viper.GetBool(logVerboseKey),
	}

	var err error

	cfg.Exclude, err = compilePattern(viper.GetString(excludeConfigKey))
	if err != nil {
		return m.Config{}, fmt.Errorf("invalid --%s pattern: %w", excludeFlagName, err)
	}

	cfg.DontRequire, err = compilePattern(viper.GetString(dontRequireConfigKey))
	if err != nil {
		return m.Config{}, fmt.Errorf("invalid --%s pattern: %w", dontRequireFlagName, err)
	}

	return cfg, nil
}

func compilePattern(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, nil
	}

	return regexp.Compile(pattern)
}
