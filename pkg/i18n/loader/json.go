package loader

import (
	"encoding/json"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nimburion/i18nbuild/pkg/i18n"
)

// JSONParser reads the {"locale": ..., "translations": {...}} JSON format.
type JSONParser struct{}

// ARBParser reads Application Resource Bundle files.
type ARBParser struct{}

// Format implements Parser.
func (JSONParser) Format() string { return "json" }

// CanParse implements Parser.
func (JSONParser) CanParse(path string, contents []byte, diags *Diagnostics) bool {
	if strings.ToLower(filepath.Ext(path)) != ".json" {
		return false
	}
	payload, ok := decodeJSONObject(contents, diags)
	if !ok {
		return false
	}
	return hasTranslationsObject(payload, diags)
}

// Parse implements Parser.
func (JSONParser) Parse(path string, contents []byte, diags *Diagnostics) (string, map[string]i18n.Message) {
	var payload map[string]interface{}
	if err := json.Unmarshal(contents, &payload); err != nil {
		diags.Error("Invalid JSON translation file: %v", err)
		return "", nil
	}
	return documentMessages(payload, diags)
}

// Format implements Parser.
func (ARBParser) Format() string { return "arb" }

// CanParse implements Parser.
func (ARBParser) CanParse(path string, contents []byte, diags *Diagnostics) bool {
	if strings.ToLower(filepath.Ext(path)) != ".arb" {
		return false
	}
	payload, ok := decodeJSONObject(contents, diags)
	if !ok {
		return false
	}
	if _, ok := payload["@@locale"]; !ok {
		diags.Warn("ARB files must declare \"@@locale\".")
		return false
	}
	return true
}

// Parse implements Parser.
func (ARBParser) Parse(path string, contents []byte, diags *Diagnostics) (string, map[string]i18n.Message) {
	var payload map[string]interface{}
	if err := json.Unmarshal(contents, &payload); err != nil {
		diags.Error("Invalid ARB file: %v", err)
		return "", nil
	}
	locale, _ := payload["@@locale"].(string)
	messages := map[string]i18n.Message{}
	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if strings.HasPrefix(key, "@") {
			continue
		}
		text, ok := payload[key].(string)
		if !ok {
			diags.Error("ARB message '%s' must be a string.", key)
			continue
		}
		messages[key] = newMessage(text)
	}
	return locale, messages
}

func decodeJSONObject(contents []byte, diags *Diagnostics) (map[string]interface{}, bool) {
	var payload map[string]interface{}
	if err := json.Unmarshal(contents, &payload); err != nil {
		diags.Warn("File is not a JSON object: %v", err)
		return nil, false
	}
	return payload, true
}

// hasTranslationsObject checks the shape shared by the JSON, YAML and TOML formats.
func hasTranslationsObject(payload map[string]interface{}, diags *Diagnostics) bool {
	raw, ok := payload["translations"]
	if !ok {
		diags.Warn("Missing \"translations\" property.")
		return false
	}
	if _, ok := raw.(map[string]interface{}); !ok {
		diags.Warn("The \"translations\" property must be an object.")
		return false
	}
	return true
}

// documentMessages extracts locale and flattened translations from a decoded
// {locale, translations} document.
func documentMessages(payload map[string]interface{}, diags *Diagnostics) (string, map[string]i18n.Message) {
	locale := ""
	if raw, ok := payload["locale"]; ok {
		s, isString := raw.(string)
		if !isString {
			diags.Warn("The \"locale\" property must be a string; it was ignored.")
		}
		locale = s
	}
	translations, ok := payload["translations"].(map[string]interface{})
	if !ok {
		diags.Error("The \"translations\" property must be an object.")
		return locale, nil
	}
	flat := i18n.FlattenMessages(translations, "")
	messages := make(map[string]i18n.Message, len(flat))
	for id, msg := range flat {
		messages[id] = newMessage(msg.Text)
	}
	return locale, messages
}
