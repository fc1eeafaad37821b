// Package configschema publishes JSON Schemas for the inputs of the i18n build
// resolver: the tool configuration file and the "i18n" field of a project.
package configschema

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/nimburion/i18nbuild/pkg/config"
)

// ConfigSchema returns the JSON Schema of the tool configuration file with the
// defaults of config.DefaultConfig injected.
func ConfigSchema() (*jsonschema.Schema, error) {
	return ConfigSchemaWithDefaults(nil)
}

// ConfigSchemaWithDefaults builds the schema and injects defaults.
// If defaults is nil, config.DefaultConfig() is used.
func ConfigSchemaWithDefaults(defaults *config.Config) (*jsonschema.Schema, error) {
	configType := reflect.TypeOf(config.Config{})
	schema, err := jsonschema.ForType(configType, &jsonschema.ForOptions{IgnoreInvalidTypes: true})
	if err != nil {
		return nil, fmt.Errorf("build config schema: %w", err)
	}
	applyFieldNames(schema, configType)

	if defaults == nil {
		defaults = config.DefaultConfig()
	}
	injectDefaults(schema, reflect.ValueOf(defaults))
	pruneRequiredWithDefaults(schema)

	schema.Title = "i18nbuild Configuration"
	schema.Description = "Schema for the i18nbuild configuration file."
	schema.Schema = "https://json-schema.org/draft/2020-12/schema"
	return schema, nil
}

func applyFieldNames(schema *jsonschema.Schema, t reflect.Type) {
	if schema == nil || t == nil {
		return
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct || len(schema.Properties) == 0 {
		return
	}

	nameMap := make(map[string]string)
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		jsonName, omit := jsonFieldName(field)
		if omit {
			continue
		}
		desired := fieldKeyName(field)
		nameMap[jsonName] = desired
		if prop, ok := schema.Properties[jsonName]; ok {
			delete(schema.Properties, jsonName)
			schema.Properties[desired] = prop
			applyFieldNames(prop, field.Type)
		}
	}

	schema.Required = renameAll(schema.Required, nameMap)
	schema.PropertyOrder = renameAll(schema.PropertyOrder, nameMap)
}

func renameAll(names []string, nameMap map[string]string) []string {
	if len(names) == 0 {
		return names
	}
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if mapped, ok := nameMap[name]; ok {
			name = mapped
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

func injectDefaults(schema *jsonschema.Schema, value reflect.Value) {
	if schema == nil || !value.IsValid() {
		return
	}
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return
		}
		value = value.Elem()
	}

	if value.Kind() != reflect.Struct {
		if schema.Default == nil {
			if raw, err := json.Marshal(value.Interface()); err == nil {
				schema.Default = raw
			}
		}
		return
	}

	t := value.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		if prop, ok := schema.Properties[fieldKeyName(field)]; ok {
			injectDefaults(prop, value.Field(i))
		}
	}
}

func pruneRequiredWithDefaults(schema *jsonschema.Schema) {
	if schema == nil {
		return
	}
	for _, prop := range schema.Properties {
		pruneRequiredWithDefaults(prop)
	}
	if len(schema.Required) == 0 || len(schema.Properties) == 0 {
		return
	}
	kept := make([]string, 0, len(schema.Required))
	for _, name := range schema.Required {
		prop := schema.Properties[name]
		if prop == nil || (prop.Default == nil && prop.Type != "object") {
			kept = append(kept, name)
		}
	}
	schema.Required = kept
}

func fieldKeyName(field reflect.StructField) string {
	if tag, ok := tagName(field.Tag.Get("mapstructure")); ok {
		return tag
	}
	return toSnakeCase(field.Name)
}

func tagName(tag string) (string, bool) {
	if tag == "" {
		return "", false
	}
	name := strings.Split(tag, ",")[0]
	if name == "" || name == "-" {
		return "", false
	}
	return name, true
}

func jsonFieldName(field reflect.StructField) (string, bool) {
	if !field.IsExported() {
		return "", true
	}
	name := field.Name
	if tag, ok := field.Tag.Lookup("json"); ok {
		tagName, _, found := strings.Cut(tag, ",")
		if tagName == "-" && !found {
			return "", true
		}
		if tagName != "" {
			name = tagName
		}
	}
	return name, false
}

func toSnakeCase(value string) string {
	var b strings.Builder
	b.Grow(len(value) + 8)
	for i, r := range value {
		if i > 0 && unicode.IsUpper(r) && !unicode.IsUpper(rune(value[i-1])) {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
