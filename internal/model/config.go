package model

import "regexp"

// Config holds the policy toggles for one run. It is built once from CLI
// input and read-only afterwards. A nil regexp matches nothing.
type Config struct {
	// Exclude skips files and directories whose path matches during discovery.
	Exclude *regexp.Regexp

	// DontRequire suppresses reporting for constructs whose simple name
	// matches. Package constructs match their fully-qualified name instead.
	DontRequire *regexp.Regexp

	DontRequirePrivate           bool
	DontRequireNoargConstructor  bool
	DontRequireTrivialProperties bool
	DontRequireType              bool
	DontRequireField             bool
	DontRequireMethod            bool

	// RequirePackageInfo additionally demands that every scanned directory
	// contain a file carrying package documentation.
	RequirePackageInfo bool

	// Relative prints paths relative to the working directory.
	Relative bool

	// Verbose emits per-decision diagnostic tracing.
	Verbose bool
}
