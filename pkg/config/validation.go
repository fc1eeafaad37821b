package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/nimburion/i18nbuild/pkg/observability/logger"
)

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c == nil {
		return errNilConfig
	}
	var errs []error

	if _, err := logger.ParseLogLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if _, err := logger.ParseLogFormat(c.Log.Format); err != nil {
		errs = append(errs, fmt.Errorf("log.format: %w", err))
	}
	if strings.TrimSpace(c.Workspace.File) == "" {
		errs = append(errs, errors.New("workspace.file is required"))
	}
	if strings.TrimSpace(c.Build.Target) == "" {
		errs = append(errs, errors.New("build.target is required"))
	}
	if c.Tracing.SampleRate < 0 || c.Tracing.SampleRate > 1 {
		errs = append(errs, fmt.Errorf("tracing.sample_rate must be between 0 and 1: %v", c.Tracing.SampleRate))
	}
	if c.Tracing.Enabled && strings.TrimSpace(c.Tracing.Endpoint) == "" {
		errs = append(errs, errors.New("tracing.endpoint is required when tracing is enabled"))
	}
	if strings.ContainsAny(c.Temp.Prefix, `/\`) {
		errs = append(errs, fmt.Errorf("temp.prefix must not contain a path separator: %s", c.Temp.Prefix))
	}

	return errors.Join(errs...)
}

// String returns the full configuration as a formatted string
func (c *Config) String() string {
	return formatStruct(reflect.ValueOf(c).Elem(), "")
}

func formatStruct(v reflect.Value, prefix string) string {
	var sb strings.Builder
	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		value := v.Field(i)

		if !value.CanInterface() {
			continue
		}

		fieldName := field.Name
		if tag := field.Tag.Get("mapstructure"); tag != "" && tag != "-" {
			fieldName = tag
		}

		switch value.Kind() {
		case reflect.Struct:
			sb.WriteString(fmt.Sprintf("%s%s:\n", prefix, fieldName))
			sb.WriteString(formatStruct(value, prefix+"  "))
		default:
			sb.WriteString(fmt.Sprintf("%s%s: %v\n", prefix, fieldName, value.Interface()))
		}
	}

	return sb.String()
}
