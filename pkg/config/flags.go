package config

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode"

	"github.com/spf13/pflag"
)

// RegisterFlags registers a flag for every Config field carrying a flag tag.
func RegisterFlags(flags *pflag.FlagSet) error {
	return RegisterFlagsFromStruct(flags, &Config{})
}

// RegisterFlagsFromStruct registers flags for the tagged leaf fields of target.
func RegisterFlagsFromStruct(flags *pflag.FlagSet, target interface{}) error {
	fields, err := collectConfigFields(target)
	if err != nil {
		return err
	}

	for _, field := range fields {
		if field.Flag == "" {
			continue
		}
		usage := field.Usage
		if usage == "" {
			usage = "configuration override"
		}
		defaultValue, err := parseStringByType(field.Default, field.Type)
		if err != nil {
			return err
		}

		switch field.Type.Kind() {
		case reflect.String:
			flags.String(field.Flag, defaultValue.(string), usage)
		case reflect.Bool:
			flags.Bool(field.Flag, defaultValue.(bool), usage)
		case reflect.Float64:
			flags.Float64(field.Flag, defaultValue.(float64), usage)
		case reflect.Slice:
			flags.StringSlice(field.Flag, defaultValue.([]string), usage)
		}
	}

	return nil
}

type configField struct {
	Key     string
	Env     []string
	Flag    string
	Default string
	Usage   string
	Type    reflect.Type
}

func collectConfigFields(target interface{}) ([]configField, error) {
	value := reflect.ValueOf(target)
	if value.Kind() != reflect.Ptr || value.IsNil() {
		return nil, fmt.Errorf("config target must be a non-nil pointer")
	}
	elem := value.Elem()
	if elem.Kind() != reflect.Struct {
		return nil, fmt.Errorf("config target must point to a struct")
	}

	fields := make([]configField, 0, elem.NumField())
	collectFieldsRecursive(elem.Type(), "", &fields)
	return fields, nil
}

func collectFieldsRecursive(structType reflect.Type, prefix string, out *[]configField) {
	for index := 0; index < structType.NumField(); index++ {
		field := structType.Field(index)
		if field.PkgPath != "" {
			continue
		}
		mapKey, skip := parseMapstructureTag(field.Tag.Get("mapstructure"))
		if skip {
			continue
		}
		if mapKey == "" {
			mapKey = toSnakeCase(field.Name)
		}

		fullKey := mapKey
		if prefix != "" {
			fullKey = prefix + "." + mapKey
		}

		if field.Type.Kind() == reflect.Struct {
			collectFieldsRecursive(field.Type, fullKey, out)
			continue
		}

		*out = append(*out, configField{
			Key:     fullKey,
			Env:     parseListTag(field.Tag.Get("env")),
			Flag:    strings.TrimSpace(field.Tag.Get("flag")),
			Default: strings.TrimSpace(field.Tag.Get("default")),
			Usage:   strings.TrimSpace(field.Tag.Get("flag_usage")),
			Type:    field.Type,
		})
	}
}

func parseStringByType(value string, fieldType reflect.Type) (interface{}, error) {
	trimmed := strings.TrimSpace(value)
	switch fieldType.Kind() {
	case reflect.String:
		return trimmed, nil
	case reflect.Bool:
		if trimmed == "" {
			return false, nil
		}
		return strconv.ParseBool(trimmed)
	case reflect.Float64:
		if trimmed == "" {
			return float64(0), nil
		}
		return strconv.ParseFloat(trimmed, 64)
	case reflect.Slice:
		if fieldType.Elem().Kind() == reflect.String {
			return parseStringSlice(trimmed), nil
		}
	}
	return nil, fmt.Errorf("unsupported field type %s", fieldType.String())
}

func parseStringSlice(raw string) []string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return []string{}
	}

	normalized := strings.TrimPrefix(strings.TrimSuffix(trimmed, "]"), "[")
	normalized = strings.NewReplacer(",", " ", ";", " ", "\n", " ", "\t", " ").Replace(normalized)
	return strings.Fields(normalized)
}

func parseMapstructureTag(tag string) (string, bool) {
	trimmed := strings.TrimSpace(tag)
	if trimmed == "" {
		return "", false
	}
	key := strings.TrimSpace(strings.Split(trimmed, ",")[0])
	if key == "-" {
		return "", true
	}
	return key, false
}

func parseListTag(tag string) []string {
	trimmed := strings.TrimSpace(tag)
	if trimmed == "" {
		return nil
	}
	rawParts := strings.Split(trimmed, ",")
	result := make([]string, 0, len(rawParts))
	for _, part := range rawParts {
		if value := strings.TrimSpace(part); value != "" {
			result = append(result, value)
		}
	}
	return result
}

func toSnakeCase(input string) string {
	if input == "" {
		return input
	}
	var out strings.Builder
	out.Grow(len(input) + 8)
	for index, runeValue := range input {
		if index > 0 && isWordBoundary(input, index, runeValue) {
			out.WriteByte('_')
		}
		out.WriteRune(unicode.ToLower(runeValue))
	}
	return out.String()
}

func isWordBoundary(value string, index int, r rune) bool {
	if !unicode.IsUpper(r) {
		return false
	}
	prev := rune(value[index-1])
	if unicode.IsUpper(prev) {
		if index+1 < len(value) {
			return unicode.IsLower(rune(value[index+1]))
		}
		return false
	}
	return true
}
