package i18n

// MergeDeprecatedOptions folds the deprecated single-locale options into the registry.
// Empty strings mean the option was not supplied.
//
// A locale without a file becomes the new source locale. A locale with a file is
// registered as a translated locale with exactly that file. Either way the build is
// narrowed to that one locale and its output is not nested under a locale directory.
func MergeDeprecatedOptions(registry *Registry, locale, file string) (*Registry, error) {
	if file != "" && locale == "" {
		return nil, Errorf(ErrFileWithoutLocale, "Option 'i18nFile' cannot be used without the 'i18nLocale' option.")
	}
	if locale == "" {
		return registry, nil
	}

	registry.ClearInline()
	registry.AddInline(locale)

	empty := ""
	if file != "" {
		registry.SetLocale(locale, &LocaleEntry{
			Files:    []*TranslationFile{{Path: file}},
			BaseHref: &empty,
		})
	} else {
		registry.SourceLocale = locale
		registry.SetLocale(locale, &LocaleEntry{
			Files:    []*TranslationFile{},
			BaseHref: &empty,
		})
	}
	registry.FlatOutput = true

	return registry, nil
}
