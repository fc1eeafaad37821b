package i18n

import (
	"fmt"
)

// DefaultSourceLocale is the source locale assumed when a project declares none.
const DefaultSourceLocale = "en-US"

// TranslationFile references one translation resource of a locale.
// Format and Integrity are filled in once the file has been loaded.
type TranslationFile struct {
	Path      string `json:"path" yaml:"path"`
	Format    string `json:"format,omitempty" yaml:"format,omitempty"`
	Integrity string `json:"integrity,omitempty" yaml:"integrity,omitempty"`
}

// Message is the content of one translatable unit.
type Message struct {
	Text         string   `json:"text"`
	Placeholders []string `json:"placeholders,omitempty"`
}

// LocaleEntry describes one locale of the project.
type LocaleEntry struct {
	Files []*TranslationFile `json:"files"`
	// BaseHref is nil when the locale does not override the base href.
	BaseHref *string `json:"baseHref,omitempty"`
	// DataPath is empty until locale data has been resolved.
	DataPath string `json:"dataPath,omitempty"`
	// Translation is nil until translation files have been merged.
	Translation map[string]Message `json:"translation,omitempty"`
}

// FilePaths returns the translation file paths in declaration order.
func (e *LocaleEntry) FilePaths() []string {
	if e == nil {
		return nil
	}
	out := make([]string, 0, len(e.Files))
	for _, file := range e.Files {
		out = append(out, file.Path)
	}
	return out
}

// Registry is the canonical locale configuration of one build invocation.
//
// A registry is built by CreateOptions, optionally handed to MergeDeprecatedOptions
// and then enriched by the build configurator. Each pass receives the registry and
// returns it; it is never shared between goroutines.
type Registry struct {
	SourceLocale           string
	HasDefinedSourceLocale bool
	// FlatOutput is set by the deprecated single-locale options only.
	FlatOutput bool
	// VECompatLocale is the single locale selected for the legacy compilation mode.
	VECompatLocale string

	order   []string
	locales map[string]*LocaleEntry
	inline  []string
}

// NewRegistry creates a registry holding only an empty entry for sourceLocale.
func NewRegistry(sourceLocale string) *Registry {
	if sourceLocale == "" {
		sourceLocale = DefaultSourceLocale
	}
	r := &Registry{
		SourceLocale: sourceLocale,
		locales:      map[string]*LocaleEntry{},
	}
	r.SetLocale(sourceLocale, &LocaleEntry{})
	return r
}

// Locales returns the locale tags in processing order.
func (r *Registry) Locales() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Locale returns the entry for tag, or nil.
func (r *Registry) Locale(tag string) *LocaleEntry {
	return r.locales[tag]
}

// HasLocale reports whether tag is the source locale or a declared locale.
func (r *Registry) HasLocale(tag string) bool {
	if tag == r.SourceLocale {
		return true
	}
	_, ok := r.locales[tag]
	return ok
}

// SetLocale registers or replaces the entry of tag. Replaced tags keep their position.
func (r *Registry) SetLocale(tag string, entry *LocaleEntry) {
	if r.locales == nil {
		r.locales = map[string]*LocaleEntry{}
	}
	if entry == nil {
		entry = &LocaleEntry{}
	}
	if _, exists := r.locales[tag]; !exists {
		r.order = append(r.order, tag)
	}
	r.locales[tag] = entry
}

// InlineLocales returns the locales marked for inlining, in insertion order.
func (r *Registry) InlineLocales() []string {
	out := make([]string, len(r.inline))
	copy(out, r.inline)
	return out
}

// IsInline reports whether tag is marked for inlining.
func (r *Registry) IsInline(tag string) bool {
	for _, item := range r.inline {
		if item == tag {
			return true
		}
	}
	return false
}

// AddInline marks tag for inlining. Adding a tag twice is a no-op.
func (r *Registry) AddInline(tag string) {
	if r.IsInline(tag) {
		return
	}
	r.inline = append(r.inline, tag)
}

// ClearInline removes every inline mark.
func (r *Registry) ClearInline() {
	r.inline = nil
}

// ShouldInline reports whether at least one locale produces its own localized output.
func (r *Registry) ShouldInline() bool {
	return len(r.inline) > 0
}

// Validate checks the structural invariants of the registry.
func (r *Registry) Validate() error {
	source := r.locales[r.SourceLocale]
	if source == nil {
		return fmt.Errorf("registry has no entry for source locale %q", r.SourceLocale)
	}
	if len(source.Files) > 0 {
		return Errorf(ErrSourceLocaleTranslated,
			"An i18n locale ('%s') cannot both be a source locale and provide a translation.", r.SourceLocale).
			WithParams(Params{"locale": r.SourceLocale})
	}
	for _, tag := range r.inline {
		if !r.HasLocale(tag) {
			return fmt.Errorf("inline locale %q is not defined in the registry", tag)
		}
	}
	return nil
}

// Snapshot is a serializable view of the registry.
type Snapshot struct {
	SourceLocale           string           `json:"sourceLocale" yaml:"sourceLocale"`
	HasDefinedSourceLocale bool             `json:"hasDefinedSourceLocale" yaml:"hasDefinedSourceLocale"`
	Locales                []LocaleSnapshot `json:"locales" yaml:"locales"`
	InlineLocales          []string         `json:"inlineLocales" yaml:"inlineLocales"`
	ShouldInline           bool             `json:"shouldInline" yaml:"shouldInline"`
	FlatOutput             bool             `json:"flatOutput,omitempty" yaml:"flatOutput,omitempty"`
	VECompatLocale         string           `json:"veCompatLocale,omitempty" yaml:"veCompatLocale,omitempty"`
}

// LocaleSnapshot is a serializable view of one locale entry.
type LocaleSnapshot struct {
	Locale   string            `json:"locale" yaml:"locale"`
	Files    []TranslationFile `json:"files" yaml:"files"`
	BaseHref *string           `json:"baseHref,omitempty" yaml:"baseHref,omitempty"`
	DataPath string            `json:"dataPath,omitempty" yaml:"dataPath,omitempty"`
	Messages int               `json:"messages" yaml:"messages"`
}

// Snapshot returns the registry in processing order without message bodies.
func (r *Registry) Snapshot() Snapshot {
	snap := Snapshot{
		SourceLocale:           r.SourceLocale,
		HasDefinedSourceLocale: r.HasDefinedSourceLocale,
		InlineLocales:          r.InlineLocales(),
		ShouldInline:           r.ShouldInline(),
		FlatOutput:             r.FlatOutput,
		VECompatLocale:         r.VECompatLocale,
	}
	for _, tag := range r.order {
		entry := r.locales[tag]
		files := make([]TranslationFile, 0, len(entry.Files))
		for _, file := range entry.Files {
			files = append(files, *file)
		}
		snap.Locales = append(snap.Locales, LocaleSnapshot{
			Locale:   tag,
			Files:    files,
			BaseHref: entry.BaseHref,
			DataPath: entry.DataPath,
			Messages: len(entry.Translation),
		})
	}
	return snap
}
