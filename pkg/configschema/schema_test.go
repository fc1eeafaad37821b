package configschema

import (
	"encoding/json"
	"testing"

	"github.com/nimburion/i18nbuild/pkg/config"
)

func TestConfigSchema_UsesMapstructureKeys(t *testing.T) {
	schema, err := ConfigSchema()
	if err != nil {
		t.Fatalf("build schema: %v", err)
	}

	for _, key := range []string{"log", "workspace", "build", "locale_data", "temp", "tracing", "metrics"} {
		if _, ok := schema.Properties[key]; !ok {
			t.Fatalf("expected %s root key in generated schema", key)
		}
	}
	if _, ok := schema.Properties["LocaleData"]; ok {
		t.Fatal("did not expect Go field name as root key")
	}
	if _, ok := schema.Properties["locale_data"].Properties["package"]; !ok {
		t.Fatal("expected locale_data.package property")
	}
}

func TestConfigSchema_InjectsDefaults(t *testing.T) {
	schema, err := ConfigSchema()
	if err != nil {
		t.Fatalf("build schema: %v", err)
	}

	level := schema.Properties["log"].Properties["level"]
	if string(level.Default) != `"info"` {
		t.Fatalf("log.level default = %s, want \"info\"", level.Default)
	}
	if len(schema.Required) != 0 {
		t.Fatalf("expected no required root keys, got %v", schema.Required)
	}
	if len(schema.Properties["workspace"].Required) != 0 {
		t.Fatalf("expected defaulted workspace keys to be optional, got %v", schema.Properties["workspace"].Required)
	}
}

func TestConfigSchemaWithDefaults(t *testing.T) {
	defaults := config.DefaultConfig()
	defaults.Workspace.File = "workspace.yaml"

	schema, err := ConfigSchemaWithDefaults(defaults)
	if err != nil {
		t.Fatalf("build schema: %v", err)
	}
	if got := string(schema.Properties["workspace"].Properties["file"].Default); got != `"workspace.yaml"` {
		t.Fatalf("workspace.file default = %s", got)
	}
	if _, err := json.Marshal(schema); err != nil {
		t.Fatalf("marshal schema: %v", err)
	}
}

func TestToSnakeCase(t *testing.T) {
	tests := map[string]string{
		"Log":        "log",
		"LocaleData": "locale_data",
		"TempRoot":   "temp_root",
	}
	for input, want := range tests {
		if got := toSnakeCase(input); got != want {
			t.Errorf("toSnakeCase(%q) = %q, want %q", input, got, want)
		}
	}
}
