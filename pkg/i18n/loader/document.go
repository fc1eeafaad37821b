package loader

import (
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"go.yaml.in/yaml/v3"

	"github.com/nimburion/i18nbuild/pkg/i18n"
)

// YAMLParser reads {locale, translations} documents written in YAML.
type YAMLParser struct{}

// TOMLParser reads {locale, translations} documents written in TOML.
type TOMLParser struct{}

// Format implements Parser.
func (YAMLParser) Format() string { return "yaml" }

// CanParse implements Parser.
func (YAMLParser) CanParse(path string, contents []byte, diags *Diagnostics) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		return false
	}
	var payload map[string]interface{}
	if err := yaml.Unmarshal(contents, &payload); err != nil {
		diags.Warn("File is not a YAML mapping: %v", err)
		return false
	}
	return hasTranslationsObject(payload, diags)
}

// Parse implements Parser.
func (YAMLParser) Parse(path string, contents []byte, diags *Diagnostics) (string, map[string]i18n.Message) {
	var payload map[string]interface{}
	if err := yaml.Unmarshal(contents, &payload); err != nil {
		diags.Error("Invalid YAML translation file: %v", err)
		return "", nil
	}
	return documentMessages(payload, diags)
}

// Format implements Parser.
func (TOMLParser) Format() string { return "toml" }

// CanParse implements Parser.
func (TOMLParser) CanParse(path string, contents []byte, diags *Diagnostics) bool {
	if strings.ToLower(filepath.Ext(path)) != ".toml" {
		return false
	}
	var payload map[string]interface{}
	if err := toml.Unmarshal(contents, &payload); err != nil {
		diags.Warn("File is not a TOML document: %v", err)
		return false
	}
	return hasTranslationsObject(payload, diags)
}

// Parse implements Parser.
func (TOMLParser) Parse(path string, contents []byte, diags *Diagnostics) (string, map[string]i18n.Message) {
	var payload map[string]interface{}
	meta, err := toml.Decode(string(contents), &payload)
	if err != nil {
		diags.Error("Invalid TOML translation file: %v", err)
		return "", nil
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		diags.Warn("Ignored %d undecoded TOML keys.", len(undecoded))
	}
	return documentMessages(payload, diags)
}
