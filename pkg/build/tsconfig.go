package build

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"github.com/tailscale/hujson"
)

const maxExtendsDepth = 16

// CompilerOptions are the compiler capability flags relevant to i18n.
type CompilerOptions struct {
	// EnableIvy selects the modern compilation mode.
	EnableIvy bool
	// EnableI18nLegacyMessageIDFormat keeps legacy message IDs, which requires a
	// single translation format for the whole build.
	EnableI18nLegacyMessageIDFormat bool
}

// DefaultCompilerOptions returns the flags of a configuration that sets neither.
func DefaultCompilerOptions() CompilerOptions {
	return CompilerOptions{
		EnableIvy:                       true,
		EnableI18nLegacyMessageIDFormat: true,
	}
}

// ReadCompilerConfig reads angularCompilerOptions from a tsconfig file. path is
// relative to workspaceRoot. Comments and trailing commas are accepted and
// "extends" chains are followed, the extending file winning. An empty path yields
// the defaults.
func ReadCompilerConfig(path, workspaceRoot string) (CompilerOptions, error) {
	opts := DefaultCompilerOptions()
	if strings.TrimSpace(path) == "" {
		return opts, nil
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(workspaceRoot, path)
	}

	v := viper.New()
	if err := mergeTSConfig(v, path, 0); err != nil {
		return opts, err
	}

	if v.IsSet("angularCompilerOptions.enableIvy") {
		opts.EnableIvy = v.GetBool("angularCompilerOptions.enableIvy")
	}
	if v.IsSet("angularCompilerOptions.enableI18nLegacyMessageIdFormat") {
		opts.EnableI18nLegacyMessageIDFormat = v.GetBool("angularCompilerOptions.enableI18nLegacyMessageIdFormat")
	}
	return opts, nil
}

// mergeTSConfig merges the chain rooted at path into v, bases first.
func mergeTSConfig(v *viper.Viper, path string, depth int) error {
	if depth > maxExtendsDepth {
		return fmt.Errorf("tsconfig extends chain is too deep at %s", path)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read tsconfig %s: %w", path, err)
	}

	standard, err := hujson.Standardize(raw)
	if err != nil {
		return fmt.Errorf("parse tsconfig %s: %w", path, err)
	}
	file := viper.New()
	file.SetConfigType("json")
	if err := file.ReadConfig(bytes.NewReader(standard)); err != nil {
		return fmt.Errorf("parse tsconfig %s: %w", path, err)
	}

	if base := file.GetString("extends"); base != "" {
		if err := mergeTSConfig(v, extendsPath(filepath.Dir(path), base), depth+1); err != nil {
			return err
		}
	}
	return v.MergeConfigMap(file.AllSettings())
}

// extendsPath resolves an "extends" reference against the directory of the
// extending file. A path that does not exist is retried with ".json" appended.
func extendsPath(dir, base string) string {
	if !filepath.IsAbs(base) {
		base = filepath.Join(dir, base)
	}
	if strings.HasSuffix(base, ".json") || fileExists(base) {
		return base
	}
	if fileExists(base + ".json") {
		return base + ".json"
	}
	return base
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
