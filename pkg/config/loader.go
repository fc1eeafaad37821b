package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Loader defines the interface for loading configuration
type Loader interface {
	Load() (*Config, error)
	Validate(*Config) error
}

// ViperLoader implements Loader using Viper for configuration management.
// Precedence: flags > environment > config file > defaults.
type ViperLoader struct {
	configFile string
	envPrefix  string
	flags      *pflag.FlagSet
	v          *viper.Viper
}

// NewViperLoader creates a new ViperLoader
// configFile: path to configuration file (optional, can be empty)
// envPrefix: prefix for environment variables (e.g., "I18NBUILD")
func NewViperLoader(configFile, envPrefix string) *ViperLoader {
	return &ViperLoader{
		configFile: configFile,
		envPrefix:  envPrefix,
	}
}

// WithFlags applies changed flags registered with RegisterFlags on top of the other sources.
func (l *ViperLoader) WithFlags(flags *pflag.FlagSet) *ViperLoader {
	l.flags = flags
	return l
}

// ConfigFile returns the path to the config file that was loaded, or empty string if none.
func (l *ViperLoader) ConfigFile() string {
	return l.configFile
}

// AllSettings returns the effective merged settings of the last Load.
func (l *ViperLoader) AllSettings() map[string]interface{} {
	if l == nil || l.v == nil {
		return map[string]interface{}{}
	}
	return l.v.AllSettings()
}

// Load loads and validates the configuration.
func (l *ViperLoader) Load() (*Config, error) {
	l.v = viper.New()
	cfg := &Config{}

	if err := applyDefaults(l.v, cfg); err != nil {
		return nil, err
	}

	if l.configFile != "" {
		l.v.SetConfigFile(l.configFile)
		if err := l.v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", l.configFile, err)
		}
	}

	if err := bindEnv(l.v, cfg, l.prefixedEnv); err != nil {
		return nil, err
	}

	if l.flags != nil {
		if err := applyFlags(l.v, l.flags, cfg); err != nil {
			return nil, err
		}
	}

	if err := l.v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := l.Validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate validates the configuration and returns every problem found.
func (l *ViperLoader) Validate(cfg *Config) error {
	return cfg.Validate()
}

func (l *ViperLoader) prefixedEnv(suffix string) string {
	prefix := strings.TrimSpace(l.envPrefix)
	if prefix == "" {
		prefix = DefaultEnvPrefix
	}
	return fmt.Sprintf("%s_%s", strings.ToUpper(prefix), suffix)
}

func applyDefaults(v *viper.Viper, target interface{}) error {
	fields, err := collectConfigFields(target)
	if err != nil {
		return err
	}
	for _, field := range fields {
		defaultValue, err := parseStringByType(field.Default, field.Type)
		if err != nil {
			return fmt.Errorf("default of %s: %w", field.Key, err)
		}
		v.SetDefault(field.Key, defaultValue)
	}
	return nil
}

func bindEnv(v *viper.Viper, target interface{}, prefixed func(string) string) error {
	fields, err := collectConfigFields(target)
	if err != nil {
		return err
	}
	for _, field := range fields {
		if len(field.Env) == 0 {
			continue
		}
		args := []string{field.Key}
		for _, suffix := range field.Env {
			args = append(args, prefixed(suffix))
		}
		if err := v.BindEnv(args...); err != nil {
			return err
		}
	}
	return nil
}

func applyFlags(v *viper.Viper, flags *pflag.FlagSet, target interface{}) error {
	fields, err := collectConfigFields(target)
	if err != nil {
		return err
	}
	for _, field := range fields {
		if field.Flag == "" {
			continue
		}
		flag := flags.Lookup(field.Flag)
		if flag == nil || !flag.Changed {
			continue
		}

		parsed, err := parseStringByType(flag.Value.String(), field.Type)
		if err != nil {
			return fmt.Errorf("invalid value for --%s: %w", field.Flag, err)
		}
		v.Set(field.Key, parsed)
	}
	return nil
}

var errNilConfig = errors.New("config is nil")
