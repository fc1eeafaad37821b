// Package build resolves the i18n configuration of one build invocation.
//
// ConfigureI18nBuild is the entry point. It reads the project metadata through a
// MetadataProvider, normalizes it into an i18n.Registry, reconciles the deprecated
// single-locale options, resolves locale data, loads and merges translations and
// finally adjusts the build options (output path, legacy options) for the
// selected compilation mode.
package build

import (
	"fmt"
	"reflect"

	"github.com/go-viper/mapstructure/v2"

	"github.com/nimburion/i18nbuild/pkg/i18n"
)

// Options are the build options that take part in i18n resolution.
// Empty strings mean the option was not supplied.
type Options struct {
	Localize i18n.Inline `json:"localize" mapstructure:"localize"`

	// Deprecated single-locale options.
	I18nLocale string `json:"i18nLocale,omitempty" mapstructure:"i18nLocale"`
	I18nFile   string `json:"i18nFile,omitempty" mapstructure:"i18nFile"`
	I18nFormat string `json:"i18nFormat,omitempty" mapstructure:"i18nFormat"`

	TSConfig   string `json:"tsConfig,omitempty" mapstructure:"tsConfig"`
	OutputPath string `json:"outputPath" mapstructure:"outputPath"`

	// Extra holds the remaining build options untouched.
	Extra map[string]any `json:"-" mapstructure:",remain"`
}

// Clone returns a copy that shares no mutable state with o.
func (o Options) Clone() Options {
	out := o
	if o.Extra != nil {
		out.Extra = make(map[string]any, len(o.Extra))
		for key, value := range o.Extra {
			out.Extra[key] = value
		}
	}
	return out
}

// ClearDeprecated drops the deprecated single-locale options.
func (o *Options) ClearDeprecated() {
	o.I18nLocale = ""
	o.I18nFile = ""
	o.I18nFormat = ""
}

// DeprecatedOptions lists the names of the deprecated options that are set.
func (o Options) DeprecatedOptions() []string {
	var names []string
	if o.I18nLocale != "" {
		names = append(names, "i18nLocale")
	}
	if o.I18nFormat != "" {
		names = append(names, "i18nFormat")
	}
	if o.I18nFile != "" {
		names = append(names, "i18nFile")
	}
	return names
}

// Map renders the options, extra options included, as a plain map.
func (o Options) Map() map[string]any {
	out := make(map[string]any, len(o.Extra)+6)
	for key, value := range o.Extra {
		out[key] = value
	}
	if o.Localize.IsSet() {
		out["localize"] = o.Localize
	}
	set := func(key, value string) {
		if value != "" {
			out[key] = value
		}
	}
	set("i18nLocale", o.I18nLocale)
	set("i18nFile", o.I18nFile)
	set("i18nFormat", o.I18nFormat)
	set("tsConfig", o.TSConfig)
	set("outputPath", o.OutputPath)
	return out
}

var inlineType = reflect.TypeOf(i18n.Inline{})

// DecodeOptions decodes raw build options, as found in a workspace file, into Options.
func DecodeOptions(raw map[string]any) (Options, error) {
	var out Options
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: localizeHook,
		Result:     &out,
	})
	if err != nil {
		return Options{}, fmt.Errorf("create options decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return Options{}, fmt.Errorf("decode build options: %w", err)
	}
	return out, nil
}

func localizeHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != inlineType {
		return data, nil
	}
	inline, ok := i18n.InlineFromValue(data)
	if !ok {
		return nil, fmt.Errorf("option 'localize' must be a boolean or a list of locales, got %T", data)
	}
	return inline, nil
}
