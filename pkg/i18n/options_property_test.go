package i18n

import (
	"errors"
	"sort"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// genLocaleTags generates small sets of distinct, lower-case locale tags.
func genLocaleTags() gopter.Gen {
	return gen.SliceOfN(4, gen.OneConstOf("fr", "de", "it", "es", "ja", "pt-BR", "zh-Hant")).
		Map(func(tags []string) []string {
			seen := map[string]struct{}{}
			out := []string{}
			for _, tag := range tags {
				if _, ok := seen[tag]; ok {
					continue
				}
				seen[tag] = struct{}{}
				out = append(out, tag)
			}
			return out
		})
}

func translationValue(shape int, tag string) any {
	switch shape % 3 {
	case 0:
		return tag + ".xlf"
	case 1:
		return []any{tag + ".1.xlf", tag + ".2.xlf"}
	}
	return map[string]any{"translation": tag + ".json"}
}

func metadataFor(source string, tags []string, shape int) map[string]any {
	locales := map[string]any{}
	for _, tag := range tags {
		locales[tag] = translationValue(shape, tag)
	}
	return projectWithI18n(map[string]any{"sourceLocale": source, "locales": locales})
}

// Property: every valid registry holds the source locale and inline locales are known locales.
func TestProperty_RegistryInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("source entry exists and inline set is a subset of known locales", prop.ForAll(
		func(tags []string, shape int, inlineAll bool) bool {
			inline := InlineLocales(tags...)
			if inlineAll {
				inline = InlineAll()
			}
			reg, err := CreateOptions(metadataFor("en", tags, shape), inline)
			if err != nil {
				t.Logf("unexpected error: %v", err)
				return false
			}
			if reg.Locale(reg.SourceLocale) == nil {
				return false
			}
			return reg.Validate() == nil
		},
		genLocaleTags(),
		gen.IntRange(0, 2),
		gen.Bool(),
	))

	properties.TestingRun(t)
}

// Property: inline true selects exactly the source locale plus every declared locale.
func TestProperty_InlineAllSelectsEveryLocale(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("inline all equals {source} ∪ locales", prop.ForAll(
		func(tags []string, shape int) bool {
			reg, err := CreateOptions(metadataFor("en", tags, shape), InlineAll())
			if err != nil {
				return false
			}
			want := append([]string{"en"}, tags...)
			got := reg.InlineLocales()
			sort.Strings(want)
			sort.Strings(got)
			if len(want) != len(got) {
				return false
			}
			for i := range want {
				if want[i] != got[i] {
					return false
				}
			}
			return true
		},
		genLocaleTags(),
		gen.IntRange(0, 2),
	))

	properties.TestingRun(t)
}

// Property: declaring the source locale inside locales always fails, whatever the value shape.
func TestProperty_SourceLocaleCannotBeTranslated(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("source locale in locales is a conflict", prop.ForAll(
		func(tags []string, shape int) bool {
			source := "en"
			_, err := CreateOptions(metadataFor(source, append(tags, source), shape), InlineUnset)
			return errors.Is(err, ErrSourceLocaleTranslated)
		},
		genLocaleTags(),
		gen.IntRange(0, 2),
	))

	properties.TestingRun(t)
}

// Property: an inline locale that is neither source nor declared always fails.
func TestProperty_UnknownInlineLocaleFails(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("unknown inline locale is rejected", prop.ForAll(
		func(tags []string, unknown string) bool {
			_, err := CreateOptions(metadataFor("en", tags, 0), InlineLocales(append(tags, "x"+unknown)...))
			return errors.Is(err, ErrUndefinedLocale)
		},
		genLocaleTags(),
		gen.Identifier(),
	))

	properties.TestingRun(t)
}
