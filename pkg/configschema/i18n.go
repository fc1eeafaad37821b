package configschema

import (
	"fmt"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/nimburion/i18nbuild/pkg/i18n"
)

// LocalePattern matches the BCP 47 shapes accepted as locale identifiers.
const LocalePattern = `^[a-zA-Z]{2,3}(-[a-zA-Z]{4})?(-([a-zA-Z]{2}|[0-9]{3}))?(-[a-zA-Z]{5,8})?(-x(-[a-zA-Z0-9]{1,8})+)?$`

var resolvedI18nSchema = sync.OnceValues(func() (*jsonschema.Resolved, error) {
	return ProjectI18nSchema().Resolve(nil)
})

// ProjectI18nSchema returns the JSON Schema of the "i18n" field of a project.
// Every call builds a fresh tree; nodes are never shared.
func ProjectI18nSchema() *jsonschema.Schema {
	translation := func() []*jsonschema.Schema {
		return []*jsonschema.Schema{
			{Type: "string", Description: "Translation file path relative to the workspace root."},
			{
				Type:        "array",
				Description: "Translation file paths merged in order; later files win.",
				Items:       &jsonschema.Schema{Type: "string"},
				UniqueItems: true,
			},
		}
	}
	baseHref := func() *jsonschema.Schema {
		return &jsonschema.Schema{Type: "string", Description: "HTML base HREF of the locale."}
	}

	localeEntry := &jsonschema.Schema{
		OneOf: append(translation(), &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"translation": {OneOf: translation()},
				"baseHref":    baseHref(),
			},
			Required:             []string{"translation"},
			AdditionalProperties: falseSchema(),
		}),
	}

	return &jsonschema.Schema{
		Schema:      "https://json-schema.org/draft/2020-12/schema",
		Title:       "Project i18n",
		Description: "Internationalization options of a workspace project.",
		Type:        "object",
		Properties: map[string]*jsonschema.Schema{
			"sourceLocale": {
				OneOf: []*jsonschema.Schema{
					{Type: "string", Pattern: LocalePattern, Description: "Locale of the source messages."},
					{
						Type: "object",
						Properties: map[string]*jsonschema.Schema{
							"code":     {Type: "string", Pattern: LocalePattern},
							"baseHref": baseHref(),
						},
						Required:             []string{"code"},
						AdditionalProperties: falseSchema(),
					},
				},
			},
			"locales": {
				Type:                 "object",
				Description:          "Translated locales keyed by locale identifier.",
				PropertyNames:        &jsonschema.Schema{Pattern: LocalePattern},
				AdditionalProperties: localeEntry,
			},
		},
		AdditionalProperties: falseSchema(),
	}
}

// ValidateProjectI18n checks the "i18n" field of a project object against
// ProjectI18nSchema. A project without the field is valid.
func ValidateProjectI18n(metadata any) error {
	project, ok := i18n.ToPlain(metadata).(map[string]any)
	if !ok {
		return fmt.Errorf("project metadata must be an object, got %T", metadata)
	}
	field, present := project["i18n"]
	if !present {
		return nil
	}

	resolved, err := resolvedI18nSchema()
	if err != nil {
		return fmt.Errorf("resolve i18n schema: %w", err)
	}
	if err := resolved.Validate(field); err != nil {
		return fmt.Errorf("project i18n field: %w", err)
	}
	return nil
}

func falseSchema() *jsonschema.Schema {
	return &jsonschema.Schema{Not: &jsonschema.Schema{}}
}
