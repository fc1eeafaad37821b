package i18n

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/text/language"
)

const (
	// DefaultLocaleDataPackage is the framework package shipping locale data.
	DefaultLocaleDataPackage = "@angular/common"
	// DefaultLocaleDataSubdir is the folder of the package holding one file per locale.
	DefaultLocaleDataSubdir = "locales/global"
	// DefaultLocaleDataExtension is the extension of a locale data file.
	DefaultLocaleDataExtension = ".js"

	// sourceLocaleAlias is the locale data shipped for the default source locale
	// by framework versions that have no plain en-US file.
	sourceLocaleAlias = "en-US-POSIX"
)

var privateUseSubtags = regexp.MustCompile(`-x(-[a-zA-Z0-9]{1,8})+$`)

// LocaleDataOptions locates the locale data shipped with the runtime framework.
type LocaleDataOptions struct {
	Package   string `mapstructure:"package"`
	Subdir    string `mapstructure:"subdir"`
	Extension string `mapstructure:"extension"`
}

// DefaultLocaleDataOptions returns the framework defaults.
func DefaultLocaleDataOptions() LocaleDataOptions {
	return LocaleDataOptions{
		Package:   DefaultLocaleDataPackage,
		Subdir:    DefaultLocaleDataSubdir,
		Extension: DefaultLocaleDataExtension,
	}
}

func (o LocaleDataOptions) withDefaults() LocaleDataOptions {
	def := DefaultLocaleDataOptions()
	if strings.TrimSpace(o.Package) == "" {
		o.Package = def.Package
	}
	if strings.TrimSpace(o.Subdir) == "" {
		o.Subdir = def.Subdir
	}
	if strings.TrimSpace(o.Extension) == "" {
		o.Extension = def.Extension
	}
	if !strings.HasPrefix(o.Extension, ".") {
		o.Extension = "." + o.Extension
	}
	return o
}

// FindLocaleDataBasePath resolves the framework package from projectRoot the way node
// resolves modules (walking up through node_modules folders) and returns its locale
// data folder.
func FindLocaleDataBasePath(projectRoot string, opts LocaleDataOptions) (string, error) {
	opts = opts.withDefaults()
	notFound := func(cause error) error {
		e := Errorf(ErrLocaleDataNotFound,
			"Unable to find locale data within '%s'. Please ensure '%s' is installed.", opts.Package, opts.Package).
			WithParams(Params{"package": opts.Package, "project_root": projectRoot})
		if cause != nil {
			e = e.WithCause(cause)
		}
		return e
	}

	pkgDir, err := resolvePackageDir(projectRoot, opts.Package)
	if err != nil {
		return "", notFound(err)
	}
	localesPath := filepath.Join(pkgDir, filepath.FromSlash(opts.Subdir))
	info, err := os.Stat(localesPath)
	if err != nil || !info.IsDir() {
		return "", notFound(nil)
	}
	return localesPath, nil
}

func resolvePackageDir(from, pkg string) (string, error) {
	dir, err := filepath.Abs(from)
	if err != nil {
		return "", fmt.Errorf("resolve project root: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "node_modules", filepath.FromSlash(pkg))
		manifest := filepath.Join(candidate, "package.json")
		if raw, err := os.ReadFile(manifest); err == nil {
			if !json.Valid(raw) {
				return "", fmt.Errorf("invalid package manifest %s", manifest)
			}
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("package %s not found from %s", pkg, from)
		}
		dir = parent
	}
}

// FindLocaleDataPath returns the locale data file of locale inside basePath, or ""
// when there is none. Private use subtags are ignored; the default source locale falls
// back once to its platform alias.
func FindLocaleDataPath(locale, basePath string) string {
	return findLocaleDataPath(locale, basePath, DefaultLocaleDataExtension)
}

func findLocaleDataPath(locale, basePath, ext string) string {
	scrubbed := privateUseSubtags.ReplaceAllString(locale, "")
	localeDataPath := filepath.Join(basePath, scrubbed+ext)
	if !fileExists(localeDataPath) {
		if scrubbed == DefaultSourceLocale {
			return findLocaleDataPath(sourceLocaleAlias, basePath, ext)
		}
		return ""
	}
	return localeDataPath
}

// ResolveLocaleData looks up locale data for locale and, failing that, for its
// lower-cased primary language subtag. viaSubtag is true when only the second
// lookup succeeded.
func ResolveLocaleData(locale, basePath string, opts LocaleDataOptions) (path string, viaSubtag bool) {
	opts = opts.withDefaults()
	if path = findLocaleDataPath(locale, basePath, opts.Extension); path != "" {
		return path, false
	}
	if primary := PrimarySubtag(locale); primary != "" {
		if path = findLocaleDataPath(primary, basePath, opts.Extension); path != "" {
			return path, true
		}
	}
	return "", false
}

// PrimarySubtag returns the lower-cased language subtag of locale.
func PrimarySubtag(locale string) string {
	if tag, err := language.Raw.Parse(locale); err == nil {
		if base, confidence := tag.Base(); confidence != language.No {
			if s := base.String(); s != "" && s != "und" {
				return s
			}
		}
	}
	first, _, _ := strings.Cut(locale, "-")
	return strings.ToLower(first)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
