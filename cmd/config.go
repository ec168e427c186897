package cmd

import (
	"errors"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "docreq"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	excludeFlagName  = "exclude"
	outputFlagName   = "output"
	relativeFlagName = "relative"
	verboseFlagName  = "verbose"
	logFileFlagName  = "log-file"

	dontRequireFlagName             = "dont-require"
	dontRequirePrivateFlagName      = "dont-require-private"
	dontRequireNoargCtorFlagName    = "dont-require-noarg-constructor"
	dontRequireTrivialPropsFlagName = "dont-require-trivial-properties"
	dontRequireTypeFlagName         = "dont-require-type"
	dontRequireFieldFlagName        = "dont-require-field"
	dontRequireMethodFlagName       = "dont-require-method"
	requirePackageInfoFlagName      = "require-package-info"
	parallelFlagName                = "parallel"

	excludeConfigKey  = "paths.exclude"
	outputConfigKey   = "output"
	relativeConfigKey = "check.relative"
	parallelConfigKey = "check.parallel"

	dontRequireConfigKey             = "check.dont_require"
	dontRequirePrivateConfigKey      = "check.dont_require_private"
	dontRequireNoargCtorConfigKey    = "check.dont_require_noarg_constructor"
	dontRequireTrivialPropsConfigKey = "check.dont_require_trivial_properties"
	dontRequireTypeConfigKey         = "check.dont_require_type"
	dontRequireFieldConfigKey        = "check.dont_require_field"
	dontRequireMethodConfigKey       = "check.dont_require_method"
	requirePackageInfoConfigKey      = "check.require_package_info"

	defaultParallel = 1

	envPrefix = "DOCREQ"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".docreq.log"
	defaultLogLevel      = int(slog.LevelInfo)
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var globalLogger *slog.Logger

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(excludeConfigKey, "")
	viper.SetDefault(outputConfigKey, "")
	viper.SetDefault(relativeConfigKey, false)
	viper.SetDefault(parallelConfigKey, defaultParallel)

	viper.SetDefault(dontRequireConfigKey, "")
	viper.SetDefault(dontRequirePrivateConfigKey, false)
	viper.SetDefault(dontRequireNoargCtorConfigKey, false)
	viper.SetDefault(dontRequireTrivialPropsConfigKey, false)
	viper.SetDefault(dontRequireTypeConfigKey, false)
	viper.SetDefault(dontRequireFieldConfigKey, false)
	viper.SetDefault(dontRequireMethodConfigKey, false)
	viper.SetDefault(requirePackageInfoConfigKey, false)

	// Logging defaults (used by config/env and as fallbacks for flags).
	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return
		}

		return
	}
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Allow numeric slog levels as well (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger configures the global slog logger.
//
// By default it logs at Info; if verbose is true it logs at Debug, which is
// where traversal and policy decisions are traced.
func configureLogger(logPath string, verbose bool) {
	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFilenameKey)
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	var logLevel slog.Level
	if verbose {
		logLevel = slog.LevelDebug
	} else {
		logLevel = parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}
