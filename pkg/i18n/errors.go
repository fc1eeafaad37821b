package i18n

import (
	"fmt"
	"sort"
)

// Kind classifies configuration failures.
type Kind string

const (
	// KindSchema marks a configuration value with the wrong shape.
	KindSchema Kind = "schema"
	// KindConflict marks values that are individually valid but contradict each other.
	KindConflict Kind = "conflict"
	// KindCapability marks a request the active compilation mode cannot honour.
	KindCapability Kind = "capability"
	// KindResource marks a file or directory that is missing or unreadable.
	KindResource Kind = "resource"
)

// Params carries the values that identify the offending field, locale or file.
type Params map[string]interface{}

// Error is the failure contract of the resolver:
// stable code + kind + params + human readable message + optional wrapped cause.
//
// Errors match each other by code, so errors.Is(err, ErrUndefinedLocale) works
// for every error created from that sentinel.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Params  Params
	Cause   error
}

// Schema errors.
var (
	ErrMalformedI18n                 = &Error{Kind: KindSchema, Code: "i18n.malformed"}
	ErrMalformedSourceLocale         = &Error{Kind: KindSchema, Code: "i18n.source_locale.malformed"}
	ErrMalformedSourceLocaleBaseHref = &Error{Kind: KindSchema, Code: "i18n.source_locale.base_href.malformed"}
	ErrMalformedLocales              = &Error{Kind: KindSchema, Code: "i18n.locales.malformed"}
	ErrMalformedTranslation          = &Error{Kind: KindSchema, Code: "i18n.locales.translation.malformed"}
	ErrMalformedBaseHref             = &Error{Kind: KindSchema, Code: "i18n.locales.base_href.malformed"}
	ErrMissingTarget                 = &Error{Kind: KindSchema, Code: "build.target.missing"}
)

// Semantic conflicts.
var (
	ErrSourceLocaleTranslated = &Error{Kind: KindConflict, Code: "i18n.source_locale.translated"}
	ErrUndefinedLocale        = &Error{Kind: KindConflict, Code: "i18n.locale.undefined"}
	ErrFileWithoutLocale      = &Error{Kind: KindConflict, Code: "i18n.deprecated.file_without_locale"}
)

// Capability conflicts.
var (
	ErrMultipleLocalesUnsupported = &Error{Kind: KindCapability, Code: "i18n.legacy.multiple_locales"}
	ErrMultipleFilesUnsupported   = &Error{Kind: KindCapability, Code: "i18n.legacy.multiple_files"}
	ErrMixedFormats               = &Error{Kind: KindCapability, Code: "i18n.translation.mixed_formats"}
)

// Resource errors.
var (
	ErrLocaleDataNotFound = &Error{Kind: KindResource, Code: "i18n.locale_data.not_found"}
	ErrTranslationParse   = &Error{Kind: KindResource, Code: "i18n.translation.parse"}
	ErrTranslationRead    = &Error{Kind: KindResource, Code: "i18n.translation.read"}
)

// Errorf creates an error with the kind and code of sentinel and a formatted message.
func Errorf(sentinel *Error, format string, args ...interface{}) *Error {
	return &Error{
		Kind:    sentinel.Kind,
		Code:    sentinel.Code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	label := e.Code
	if e.Message != "" {
		label = e.Message
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", label, e.Cause)
	}
	return label
}

// Unwrap exposes the wrapped cause for errors.Is / errors.As.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is reports whether target carries the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Code == t.Code
}

// WithParams attaches identifying values.
func (e *Error) WithParams(params Params) *Error {
	if e == nil {
		return nil
	}
	e.Params = cloneParams(params)
	return e
}

// WithCause wraps an underlying error.
func (e *Error) WithCause(cause error) *Error {
	if e == nil {
		return nil
	}
	e.Cause = cause
	return e
}

// CanonicalParams returns the param keys in deterministic order.
func CanonicalParams(params Params) []string {
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func cloneParams(params Params) Params {
	if len(params) == 0 {
		return nil
	}
	out := make(Params, len(params))
	for key, value := range params {
		out[key] = value
	}
	return out
}
