package build

import (
	"context"
	"strings"

	"github.com/nimburion/i18nbuild/pkg/i18n"
	"github.com/nimburion/i18nbuild/pkg/i18n/loader"
	"github.com/nimburion/i18nbuild/pkg/observability/logger"
)

// Target identifies the builder target of a build invocation.
type Target struct {
	Project       string
	Target        string
	Configuration string
}

// String renders the target as project:target[:configuration].
func (t Target) String() string {
	parts := []string{t.Project, t.Target}
	if t.Configuration != "" {
		parts = append(parts, t.Configuration)
	}
	return strings.Join(parts, ":")
}

// MetadataProvider returns the raw project metadata of a target: an object holding
// the project "root" and an optional "i18n" field.
type MetadataProvider interface {
	ProjectMetadata(ctx context.Context, target Target) (any, error)
}

// MetadataProviderFunc adapts a function to MetadataProvider.
type MetadataProviderFunc func(ctx context.Context, target Target) (any, error)

// ProjectMetadata implements MetadataProvider.
func (f MetadataProviderFunc) ProjectMetadata(ctx context.Context, target Target) (any, error) {
	return f(ctx, target)
}

// CompilerConfigReader reads the compiler capability flags from a compiler
// configuration file.
type CompilerConfigReader func(path, workspaceRoot string) (CompilerOptions, error)

// TranslationLoader loads one translation file.
type TranslationLoader interface {
	Load(path string) (*loader.Result, error)
}

// LoaderFactory creates the translation loader. It is called at most once per build,
// and only when a locale actually has translation files.
type LoaderFactory func(ctx context.Context) (TranslationLoader, error)

// DefaultLoaderFactory creates a loader with every built-in format.
func DefaultLoaderFactory(context.Context) (TranslationLoader, error) {
	return loader.New(), nil
}

// BuilderContext carries the collaborators of a build invocation.
// Nil collaborators are replaced with defaults.
type BuilderContext struct {
	Target        *Target
	WorkspaceRoot string
	Metadata      MetadataProvider
	Logger        logger.Logger

	CompilerConfig CompilerConfigReader
	NewLoader      LoaderFactory
	LocaleData     i18n.LocaleDataOptions

	// TempRoot is the parent of the temporary output directory; empty means os.TempDir().
	TempRoot string
	// TempPrefix names the temporary output directory; empty means DefaultTempPrefix.
	TempPrefix string
}

func (b BuilderContext) withDefaults() BuilderContext {
	if b.Logger == nil {
		b.Logger = logger.NewNop()
	}
	if b.CompilerConfig == nil {
		b.CompilerConfig = ReadCompilerConfig
	}
	if b.NewLoader == nil {
		b.NewLoader = DefaultLoaderFactory
	}
	if b.TempPrefix == "" {
		b.TempPrefix = DefaultTempPrefix
	}
	return b
}
