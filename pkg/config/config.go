package config

import (
	"github.com/nimburion/i18nbuild/pkg/build"
	"github.com/nimburion/i18nbuild/pkg/i18n"
	"github.com/nimburion/i18nbuild/pkg/observability/logger"
	"github.com/nimburion/i18nbuild/pkg/observability/tracing"
)

// DefaultEnvPrefix prefixes every environment variable read by the loader.
const DefaultEnvPrefix = "I18NBUILD"

// Config is the configuration of the i18nbuild command line tool.
//
// Every leaf field declares its key (mapstructure), the environment variable suffix
// appended to the env prefix (env), the command line flag (flag) and its default.
type Config struct {
	Log        LogConfig        `mapstructure:"log"`
	Workspace  WorkspaceConfig  `mapstructure:"workspace"`
	Build      BuildConfig      `mapstructure:"build"`
	LocaleData LocaleDataConfig `mapstructure:"locale_data"`
	Temp       TempConfig       `mapstructure:"temp"`
	Tracing    TracingConfig    `mapstructure:"tracing"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level  string `mapstructure:"level" env:"LOG_LEVEL" flag:"log-level" default:"info" flag_usage:"log level (debug, info, warn, error)"`
	Format string `mapstructure:"format" env:"LOG_FORMAT" flag:"log-format" default:"text" flag_usage:"log format (text, json)"`
}

// WorkspaceConfig locates the workspace file and the project to build.
type WorkspaceConfig struct {
	File    string `mapstructure:"file" env:"WORKSPACE_FILE" flag:"workspace" default:"angular.json" flag_usage:"workspace file (JSON or YAML)"`
	Project string `mapstructure:"project" env:"WORKSPACE_PROJECT" flag:"project" flag_usage:"project name; defaults to the workspace default project"`
}

// BuildConfig selects the builder target.
type BuildConfig struct {
	Target        string `mapstructure:"target" env:"BUILD_TARGET" flag:"target" default:"build" flag_usage:"builder target"`
	Configuration string `mapstructure:"configuration" env:"BUILD_CONFIGURATION" flag:"configuration" flag_usage:"comma separated target configurations"`
}

// LocaleDataConfig locates the locale data of the runtime framework.
type LocaleDataConfig struct {
	Package   string `mapstructure:"package" env:"LOCALE_DATA_PACKAGE" flag:"locale-data-package" default:"@angular/common" flag_usage:"package shipping locale data"`
	Subdir    string `mapstructure:"subdir" env:"LOCALE_DATA_SUBDIR" default:"locales/global"`
	Extension string `mapstructure:"extension" env:"LOCALE_DATA_EXTENSION" default:".js"`
}

// TempConfig controls the temporary output directory of inlining builds.
type TempConfig struct {
	Root   string `mapstructure:"root" env:"TEMP_ROOT" flag:"temp-root" flag_usage:"parent of the temporary output directory"`
	Prefix string `mapstructure:"prefix" env:"TEMP_PREFIX" default:"angular-cli-i18n-"`
}

// TracingConfig controls span export to an OTLP collector.
type TracingConfig struct {
	Enabled    bool    `mapstructure:"enabled" env:"TRACING_ENABLED" flag:"tracing" default:"false" flag_usage:"export spans to an OTLP collector"`
	Endpoint   string  `mapstructure:"endpoint" env:"TRACING_ENDPOINT" flag:"tracing-endpoint" default:"localhost:4317" flag_usage:"OTLP gRPC collector endpoint"`
	SampleRate float64 `mapstructure:"sample_rate" env:"TRACING_SAMPLE_RATE" default:"1"`
}

// MetricsConfig controls the Prometheus textfile written after a run.
type MetricsConfig struct {
	Textfile string `mapstructure:"textfile" env:"METRICS_TEXTFILE" flag:"metrics-textfile" flag_usage:"write Prometheus metrics to this file after the run"`
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() *Config {
	return &Config{
		Log:       LogConfig{Level: string(logger.InfoLevel), Format: string(logger.TextFormat)},
		Workspace: WorkspaceConfig{File: "angular.json"},
		Build:     BuildConfig{Target: "build"},
		LocaleData: LocaleDataConfig{
			Package:   i18n.DefaultLocaleDataPackage,
			Subdir:    i18n.DefaultLocaleDataSubdir,
			Extension: i18n.DefaultLocaleDataExtension,
		},
		Temp:    TempConfig{Prefix: build.DefaultTempPrefix},
		Tracing: TracingConfig{Endpoint: "localhost:4317", SampleRate: 1},
	}
}

// LocaleDataOptions converts the locale data section for the locator.
func (c *Config) LocaleDataOptions() i18n.LocaleDataOptions {
	return i18n.LocaleDataOptions{
		Package:   c.LocaleData.Package,
		Subdir:    c.LocaleData.Subdir,
		Extension: c.LocaleData.Extension,
	}
}

// TracerConfig converts the tracing section for the tracer provider.
func (c *Config) TracerConfig(serviceName, serviceVersion string) tracing.TracerConfig {
	return tracing.TracerConfig{
		ServiceName:    serviceName,
		ServiceVersion: serviceVersion,
		Endpoint:       c.Tracing.Endpoint,
		SampleRate:     c.Tracing.SampleRate,
		Enabled:        c.Tracing.Enabled,
	}
}

// LoggerConfig converts the log section for the logger.
func (c *Config) LoggerConfig() logger.Config {
	level, err := logger.ParseLogLevel(c.Log.Level)
	if err != nil {
		level = logger.InfoLevel
	}
	format, err := logger.ParseLogFormat(c.Log.Format)
	if err != nil {
		format = logger.TextFormat
	}
	return logger.Config{Level: level, Format: format}
}
