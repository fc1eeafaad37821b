package i18n

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeLocaleData(t *testing.T, dir string, locales ...string) {
	t.Helper()
	for _, locale := range locales {
		if err := os.WriteFile(filepath.Join(dir, locale+".js"), []byte("// "+locale), 0o644); err != nil {
			t.Fatalf("write locale data: %v", err)
		}
	}
}

func TestFindLocaleDataPath(t *testing.T) {
	dir := t.TempDir()
	writeLocaleData(t, dir, "en-US", "fr", "de-CH")

	cases := []struct {
		locale string
		want   string
	}{
		{"en-US", "en-US.js"},
		{"en-US-x-foo", "en-US.js"},
		{"de-CH-x-abc-defghijk", "de-CH.js"},
		{"fr", "fr.js"},
		{"fr-CA", ""},
		{"it", ""},
	}
	for _, tc := range cases {
		got := FindLocaleDataPath(tc.locale, dir)
		want := ""
		if tc.want != "" {
			want = filepath.Join(dir, tc.want)
		}
		if got != want {
			t.Fatalf("%s: expected %q, got %q", tc.locale, want, got)
		}
	}
}

func TestFindLocaleDataPath_SourceLocaleAlias(t *testing.T) {
	dir := t.TempDir()
	writeLocaleData(t, dir, "en-US-POSIX")

	if got := FindLocaleDataPath("en-US", dir); got != filepath.Join(dir, "en-US-POSIX.js") {
		t.Fatalf("expected alias lookup, got %q", got)
	}
	if got := FindLocaleDataPath("en-US-x-test", dir); got != filepath.Join(dir, "en-US-POSIX.js") {
		t.Fatalf("expected alias lookup after scrubbing, got %q", got)
	}
	// only the default source locale has an alias
	writeLocaleData(t, dir, "fr-POSIX")
	if got := FindLocaleDataPath("fr", dir); got != "" {
		t.Fatalf("expected no alias for fr, got %q", got)
	}
}

func TestResolveLocaleData_PrimarySubtagFallback(t *testing.T) {
	dir := t.TempDir()
	writeLocaleData(t, dir, "fr", "de-AT")

	path, viaSubtag := ResolveLocaleData("fr-CA", dir, LocaleDataOptions{})
	if path != filepath.Join(dir, "fr.js") || !viaSubtag {
		t.Fatalf("expected subtag fallback, got %q (%v)", path, viaSubtag)
	}
	path, viaSubtag = ResolveLocaleData("FR-ca", dir, LocaleDataOptions{})
	if path != filepath.Join(dir, "fr.js") || !viaSubtag {
		t.Fatalf("expected lower-cased subtag fallback, got %q (%v)", path, viaSubtag)
	}
	path, viaSubtag = ResolveLocaleData("de-AT", dir, LocaleDataOptions{})
	if path != filepath.Join(dir, "de-AT.js") || viaSubtag {
		t.Fatalf("expected direct hit, got %q (%v)", path, viaSubtag)
	}
	if path, _ = ResolveLocaleData("ja-JP", dir, LocaleDataOptions{}); path != "" {
		t.Fatalf("expected no locale data, got %q", path)
	}
}

func TestResolveLocaleData_CustomExtension(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "fr.mjs"), []byte(""), 0o644); err != nil {
		t.Fatal(err)
	}
	path, _ := ResolveLocaleData("fr", dir, LocaleDataOptions{Extension: "mjs"})
	if path != filepath.Join(dir, "fr.mjs") {
		t.Fatalf("unexpected path %q", path)
	}
}

func TestPrimarySubtag(t *testing.T) {
	cases := map[string]string{
		"en-US":       "en",
		"zh-Hant-TW":  "zh",
		"FR":          "fr",
		"en-US-x-foo": "en",
	}
	for locale, want := range cases {
		if got := PrimarySubtag(locale); got != want {
			t.Fatalf("%s: expected %q, got %q", locale, want, got)
		}
	}
}

func installFramework(t *testing.T, root string, withLocales bool) string {
	t.Helper()
	pkgDir := filepath.Join(root, "node_modules", "@angular", "common")
	if err := os.MkdirAll(pkgDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(pkgDir, "package.json"), []byte(`{"name":"@angular/common"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	localesDir := filepath.Join(pkgDir, "locales", "global")
	if withLocales {
		if err := os.MkdirAll(localesDir, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	return localesDir
}

func TestFindLocaleDataBasePath(t *testing.T) {
	workspace := t.TempDir()
	want := installFramework(t, workspace, true)
	projectRoot := filepath.Join(workspace, "projects", "app")
	if err := os.MkdirAll(projectRoot, 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := FindLocaleDataBasePath(projectRoot, DefaultLocaleDataOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestFindLocaleDataBasePath_Missing(t *testing.T) {
	t.Run("package not installed", func(t *testing.T) {
		_, err := FindLocaleDataBasePath(t.TempDir(), LocaleDataOptions{Package: "@example/not-installed"})
		if !errors.Is(err, ErrLocaleDataNotFound) {
			t.Fatalf("expected ErrLocaleDataNotFound, got %v", err)
		}
	})
	t.Run("locales folder missing", func(t *testing.T) {
		workspace := t.TempDir()
		installFramework(t, workspace, false)
		_, err := FindLocaleDataBasePath(workspace, LocaleDataOptions{})
		if !errors.Is(err, ErrLocaleDataNotFound) {
			t.Fatalf("expected ErrLocaleDataNotFound, got %v", err)
		}
		if err.Error() != "Unable to find locale data within '@angular/common'. Please ensure '@angular/common' is installed." {
			t.Fatalf("unexpected message %q", err.Error())
		}
	})
}
