package i18n

import (
	"strconv"
	"strings"
)

type inlineMode int

const (
	inlineUnset inlineMode = iota
	inlineNone
	inlineAll
	inlineList
)

// Inline is the localize directive of a build: unset, a boolean, or an explicit locale list.
// The zero value is unset.
type Inline struct {
	mode    inlineMode
	locales []string
}

// InlineUnset is the directive of a build that did not pass one.
var InlineUnset = Inline{}

// InlineAll inlines the source locale and every declared locale.
func InlineAll() Inline { return Inline{mode: inlineAll} }

// InlineNone is the boolean false directive.
func InlineNone() Inline { return Inline{mode: inlineNone} }

// InlineLocales inlines exactly the listed locales.
func InlineLocales(locales ...string) Inline {
	out := make([]string, len(locales))
	copy(out, locales)
	return Inline{mode: inlineList, locales: out}
}

// ParseInline parses the textual form used by flags and environment variables:
// "" is unset, "true"/"false" are booleans, anything else is a comma separated list.
func ParseInline(raw string) Inline {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return InlineUnset
	}
	if b, err := strconv.ParseBool(raw); err == nil {
		if b {
			return InlineAll()
		}
		return InlineNone()
	}
	var locales []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			locales = append(locales, part)
		}
	}
	return InlineLocales(locales...)
}

// IsSet reports whether the directive was supplied.
func (i Inline) IsSet() bool { return i.mode != inlineUnset }

// IsAll reports whether the directive is boolean true.
func (i Inline) IsAll() bool { return i.mode == inlineAll }

// IsEmpty reports whether a supplied directive selects no locale (false or an empty list).
func (i Inline) IsEmpty() bool {
	return i.mode == inlineNone || (i.mode == inlineList && len(i.locales) == 0)
}

// Locales returns the explicit locale list.
func (i Inline) Locales() []string {
	out := make([]string, len(i.locales))
	copy(out, i.locales)
	return out
}

// String renders the directive in the form accepted by ParseInline.
func (i Inline) String() string {
	switch i.mode {
	case inlineAll:
		return "true"
	case inlineNone:
		return "false"
	case inlineList:
		return strings.Join(i.locales, ",")
	}
	return ""
}

// MarshalJSON renders true, false, a list, or null.
func (i Inline) MarshalJSON() ([]byte, error) {
	switch i.mode {
	case inlineAll:
		return []byte("true"), nil
	case inlineNone:
		return []byte("false"), nil
	case inlineList:
		quoted := make([]string, 0, len(i.locales))
		for _, locale := range i.locales {
			quoted = append(quoted, strconv.Quote(locale))
		}
		return []byte("[" + strings.Join(quoted, ",") + "]"), nil
	}
	return []byte("null"), nil
}

// MarshalYAML renders the same shapes as MarshalJSON.
func (i Inline) MarshalYAML() (any, error) {
	switch i.mode {
	case inlineAll:
		return true, nil
	case inlineNone:
		return false, nil
	case inlineList:
		return i.Locales(), nil
	}
	return nil, nil
}

// InlineFromValue converts a decoded localize value (nil, bool, or list of strings).
func InlineFromValue(value any) (Inline, bool) {
	switch v := value.(type) {
	case nil:
		return InlineUnset, true
	case bool:
		if v {
			return InlineAll(), true
		}
		return InlineNone(), true
	case []string:
		return InlineLocales(v...), true
	case []any:
		locales := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return InlineUnset, false
			}
			locales = append(locales, s)
		}
		return InlineLocales(locales...), true
	case string:
		return ParseInline(v), true
	}
	return InlineUnset, false
}

// CreateOptions normalizes the project metadata into a Registry.
//
// metadata is the raw project object (an *Object or map[string]any) holding an
// optional "i18n" field. Locales are processed in document order for *Object and
// in sorted order for plain maps.
func CreateOptions(metadata any, inline Inline) (*Registry, error) {
	project, _ := asObject(metadata)

	var cfg *Object
	if raw, ok := project.Get("i18n"); ok {
		obj, isObj := asObject(raw)
		if !isObj {
			return nil, Errorf(ErrMalformedI18n, "Project i18n field is malformed. Expected an object.")
		}
		cfg = obj
	}

	registry := &Registry{SourceLocale: DefaultSourceLocale}

	rawSourceLocale, hasSourceLocale := cfg.Get("sourceLocale")
	var sourceBaseHref *string
	if hasSourceLocale {
		if obj, isObj := asObject(rawSourceLocale); isObj {
			code, hasCode := obj.Get("code")
			if !hasCode {
				return nil, Errorf(ErrMalformedSourceLocale, "Project i18n sourceLocale field is malformed. Expected a string.")
			}
			rawSourceLocale = code
			if href, present := obj.Get("baseHref"); present {
				s, isString := href.(string)
				if !isString {
					return nil, Errorf(ErrMalformedSourceLocaleBaseHref,
						"Project i18n sourceLocale baseHref field is malformed. Expected a string.")
				}
				sourceBaseHref = &s
			}
		}
		s, isString := rawSourceLocale.(string)
		if !isString {
			return nil, Errorf(ErrMalformedSourceLocale, "Project i18n sourceLocale field is malformed. Expected a string.")
		}
		registry.SourceLocale = s
		registry.HasDefinedSourceLocale = true
	}
	registry.SetLocale(registry.SourceLocale, &LocaleEntry{BaseHref: sourceBaseHref})

	if raw, ok := cfg.Get("locales"); ok {
		locales, isObj := asObject(raw)
		if !isObj {
			return nil, Errorf(ErrMalformedLocales, "Project i18n locales field is malformed. Expected an object.")
		}
		for _, locale := range locales.Keys() {
			options, _ := locales.Get(locale)
			entry, err := normalizeLocaleEntry(locale, options)
			if err != nil {
				return nil, err
			}
			if locale == registry.SourceLocale {
				return nil, Errorf(ErrSourceLocaleTranslated,
					"An i18n locale ('%s') cannot both be a source locale and provide a translation.", locale).
					WithParams(Params{"locale": locale})
			}
			registry.SetLocale(locale, entry)
		}
	}

	switch inline.mode {
	case inlineAll:
		registry.AddInline(registry.SourceLocale)
		for _, locale := range registry.order {
			registry.AddInline(locale)
		}
	case inlineList:
		for _, locale := range inline.locales {
			if !registry.HasLocale(locale) {
				return nil, Errorf(ErrUndefinedLocale, "Requested locale '%s' is not defined for the project.", locale).
					WithParams(Params{"locale": locale})
			}
			registry.AddInline(locale)
		}
	}

	return registry, nil
}

func normalizeLocaleEntry(locale string, options any) (*LocaleEntry, error) {
	entry := &LocaleEntry{}

	var files []string
	if obj, isObj := asObject(options); isObj {
		translation, _ := obj.Get("translation")
		normalized, err := normalizeTranslationFileOption(translation, locale, false)
		if err != nil {
			return nil, err
		}
		files = normalized
		if href, present := obj.Get("baseHref"); present && href != nil {
			s, isString := href.(string)
			if !isString {
				return nil, Errorf(ErrMalformedBaseHref,
					"Project i18n locales baseHref field value for '%s' is malformed. Expected a string.", locale).
					WithParams(Params{"locale": locale})
			}
			entry.BaseHref = &s
		}
	} else {
		normalized, err := normalizeTranslationFileOption(options, locale, true)
		if err != nil {
			return nil, err
		}
		files = normalized
	}

	entry.Files = make([]*TranslationFile, 0, len(files))
	for _, file := range files {
		entry.Files = append(entry.Files, &TranslationFile{Path: file})
	}
	return entry, nil
}

func normalizeTranslationFileOption(option any, locale string, expectObject bool) ([]string, error) {
	switch v := option.(type) {
	case string:
		return []string{v}, nil
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out, nil
	case []any:
		out := make([]string, 0, len(v))
		valid := true
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				valid = false
				break
			}
			out = append(out, s)
		}
		if valid {
			return out, nil
		}
	}

	expected := "Expected a string or array of strings."
	if expectObject {
		expected = "Expected a string, array of strings, or object."
	}
	return nil, Errorf(ErrMalformedTranslation,
		"Project i18n locales translation field value for '%s' is malformed. %s", locale, expected).
		WithParams(Params{"locale": locale})
}
