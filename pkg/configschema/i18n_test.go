package configschema

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/nimburion/i18nbuild/pkg/i18n"
)

func TestProjectI18nSchema_Resolves(t *testing.T) {
	schema := ProjectI18nSchema()
	if _, err := schema.Resolve(nil); err != nil {
		t.Fatalf("resolve schema: %v", err)
	}
	for _, key := range []string{"sourceLocale", "locales"} {
		if _, ok := schema.Properties[key]; !ok {
			t.Fatalf("expected %s property", key)
		}
	}
	if _, err := json.Marshal(schema); err != nil {
		t.Fatalf("marshal schema: %v", err)
	}
}

func TestValidateProjectI18n(t *testing.T) {
	tests := []struct {
		name    string
		project any
		wantErr string
	}{
		{name: "no i18n field", project: map[string]any{"root": ""}},
		{name: "null i18n field", project: map[string]any{"i18n": nil}, wantErr: "project i18n field"},
		{
			name:    "null source locale",
			project: map[string]any{"i18n": map[string]any{"sourceLocale": nil}},
			wantErr: "project i18n field",
		},
		{
			name:    "null locales",
			project: map[string]any{"i18n": map[string]any{"locales": nil}},
			wantErr: "project i18n field",
		},
		{
			name: "string forms",
			project: map[string]any{"i18n": map[string]any{
				"sourceLocale": "en-US",
				"locales": map[string]any{
					"fr":    "src/locale/messages.fr.xlf",
					"de-CH": []any{"a.xlf", "b.xlf"},
				},
			}},
		},
		{
			name: "object forms",
			project: map[string]any{"i18n": map[string]any{
				"sourceLocale": map[string]any{"code": "en", "baseHref": "/en/"},
				"locales": map[string]any{
					"fr": map[string]any{"translation": "fr.xlf", "baseHref": ""},
				},
			}},
		},
		{name: "i18n not an object", project: map[string]any{"i18n": "fr"}, wantErr: "project i18n field"},
		{
			name:    "numeric source locale",
			project: map[string]any{"i18n": map[string]any{"sourceLocale": 42}},
			wantErr: "project i18n field",
		},
		{
			name: "invalid locale key",
			project: map[string]any{"i18n": map[string]any{
				"locales": map[string]any{"not a locale": "x.xlf"},
			}},
			wantErr: "project i18n field",
		},
		{
			name: "object without translation",
			project: map[string]any{"i18n": map[string]any{
				"locales": map[string]any{"fr": map[string]any{"baseHref": "/fr/"}},
			}},
			wantErr: "project i18n field",
		},
		{
			name: "unknown property",
			project: map[string]any{"i18n": map[string]any{
				"locale": "fr",
			}},
			wantErr: "project i18n field",
		},
		{name: "not an object", project: "app", wantErr: "must be an object"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProjectI18n(tt.project)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("ValidateProjectI18n() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("ValidateProjectI18n() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateProjectI18n_OrderedObject(t *testing.T) {
	project := i18n.NewObject()
	locales := i18n.NewObject()
	locales.Set("fr", []any{"fr.xlf"})
	cfg := i18n.NewObject()
	cfg.Set("sourceLocale", "en")
	cfg.Set("locales", locales)
	project.Set("i18n", cfg)

	if err := ValidateProjectI18n(project); err != nil {
		t.Fatalf("ValidateProjectI18n() error = %v", err)
	}
}
