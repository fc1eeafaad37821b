package config

import (
	"strings"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr []string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Log.Level = "trace" },
			wantErr: []string{"log.level"},
		},
		{
			name: "missing workspace and target",
			mutate: func(c *Config) {
				c.Workspace.File = " "
				c.Build.Target = ""
			},
			wantErr: []string{"workspace.file is required", "build.target is required"},
		},
		{
			name:    "prefix with separator",
			mutate:  func(c *Config) { c.Temp.Prefix = "out/i18n-" },
			wantErr: []string{"temp.prefix"},
		},
		{
			name:    "sample rate out of range",
			mutate:  func(c *Config) { c.Tracing.SampleRate = 1.5 },
			wantErr: []string{"tracing.sample_rate"},
		},
		{
			name: "tracing without endpoint",
			mutate: func(c *Config) {
				c.Tracing.Enabled = true
				c.Tracing.Endpoint = ""
			},
			wantErr: []string{"tracing.endpoint is required"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if len(tt.wantErr) == 0 {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() error = nil, want %v", tt.wantErr)
			}
			for _, want := range tt.wantErr {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("Validate() error = %q, want it to contain %q", err, want)
				}
			}
		})
	}

	var nilConfig *Config
	if err := nilConfig.Validate(); err == nil {
		t.Errorf("nil config must not validate")
	}
}

func TestConfig_String(t *testing.T) {
	out := DefaultConfig().String()
	for _, want := range []string{"log:\n", "  level: info\n", "locale_data:\n", "  package: @angular/common\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("String() missing %q in:\n%s", want, out)
		}
	}
}

func TestConfig_Conversions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LocaleData.Package = "@acme/locales"
	if got := cfg.LocaleDataOptions().Package; got != "@acme/locales" {
		t.Errorf("LocaleDataOptions().Package = %q", got)
	}

	cfg.Tracing.Enabled = true
	tc := cfg.TracerConfig("i18nbuild", "v1.2.3")
	if !tc.Enabled || tc.Endpoint != "localhost:4317" || tc.SampleRate != 1 || tc.ServiceName != "i18nbuild" || tc.ServiceVersion != "v1.2.3" {
		t.Errorf("TracerConfig() = %+v", tc)
	}

	cfg.Log.Level = "debug"
	cfg.Log.Format = "bogus"
	lc := cfg.LoggerConfig()
	if lc.Level != "debug" {
		t.Errorf("LoggerConfig().Level = %q, want debug", lc.Level)
	}
	if lc.Format != "text" {
		t.Errorf("LoggerConfig().Format = %q, want text fallback", lc.Format)
	}
}
