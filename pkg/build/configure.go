package build

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/nimburion/i18nbuild/pkg/i18n"
	"github.com/nimburion/i18nbuild/pkg/i18n/loader"
	"github.com/nimburion/i18nbuild/pkg/observability/logger"
	"github.com/nimburion/i18nbuild/pkg/observability/metrics"
	"github.com/nimburion/i18nbuild/pkg/observability/tracing"
)

// Result is the resolved configuration of a build invocation.
type Result struct {
	Options Options
	I18n    *i18n.Registry
	// TempOutput is the directory Options.OutputPath points at when locales are
	// inlined; nil otherwise.
	TempOutput *TempOutputDir
}

// Close releases the temporary output directory, if any.
func (r *Result) Close() error {
	if r == nil {
		return nil
	}
	return r.TempOutput.Close()
}

// ConfigureI18nBuild resolves the i18n configuration of a build and returns the
// adjusted build options together with the locale registry. On error nothing is
// returned and no temporary directory is left behind.
func ConfigureI18nBuild(ctx context.Context, bctx BuilderContext, options Options) (*Result, error) {
	if bctx.Target == nil {
		return nil, i18n.Errorf(i18n.ErrMissingTarget, "The builder requires a target.")
	}
	if bctx.Metadata == nil {
		return nil, errors.New("the builder requires a project metadata provider")
	}

	start := time.Now()
	ctx, span := tracing.StartSpan(ctx, tracing.SpanOperationConfigure, tracing.WithTarget(bctx.Target.String()))
	defer span.End()

	result, err := configure(ctx, bctx.withDefaults(), options)
	if err != nil {
		tracing.RecordError(span, err)
		metrics.ObserveConfigure(metrics.OutcomeError, time.Since(start))
		return nil, err
	}
	tracing.RecordSuccess(span)
	metrics.ObserveConfigure(metrics.OutcomeSuccess, time.Since(start))
	metrics.SetInlinedLocales(len(result.I18n.InlineLocales()))
	return result, nil
}

func configure(ctx context.Context, bctx BuilderContext, options Options) (*Result, error) {
	log := bctx.Logger.WithContext(ctx)

	buildOptions := options.Clone()

	compilerOptions, err := bctx.CompilerConfig(buildOptions.TSConfig, bctx.WorkspaceRoot)
	if err != nil {
		return nil, err
	}
	usingIvy := compilerOptions.EnableIvy

	metadata, err := bctx.Metadata.ProjectMetadata(ctx, *bctx.Target)
	if err != nil {
		return nil, fmt.Errorf("read project metadata for %s: %w", bctx.Target, err)
	}

	registry, err := i18n.CreateOptions(metadata, buildOptions.Localize)
	if err != nil {
		return nil, err
	}

	switch {
	case !buildOptions.Localize.IsSet() && usingIvy:
		registry, err = i18n.MergeDeprecatedOptions(registry, buildOptions.I18nLocale, buildOptions.I18nFile)
		if err != nil {
			return nil, err
		}
	case buildOptions.Localize.IsSet() && !usingIvy:
		if buildOptions.Localize.IsAll() || len(buildOptions.Localize.Locales()) > 1 {
			return nil, i18n.Errorf(i18n.ErrMultipleLocalesUnsupported,
				"Localization with multiple locales in one build is not supported with View Engine.")
		}
		for _, name := range buildOptions.DeprecatedOptions() {
			log.Warn(fmt.Sprintf("Option 'localize' and deprecated '%s' found.  Using 'localize'.", name))
		}
		if buildOptions.Localize.IsEmpty() {
			buildOptions.ClearDeprecated()
		}
	}

	// the modern mode never consumes the deprecated options
	if usingIvy {
		buildOptions.ClearDeprecated()
	}

	if !registry.ShouldInline() && !registry.HasDefinedSourceLocale {
		return &Result{Options: buildOptions, I18n: registry}, nil
	}

	projectRoot := filepath.Join(bctx.WorkspaceRoot, projectRootOf(metadata))
	localeDataBasePath, err := i18n.FindLocaleDataBasePath(projectRoot, bctx.LocaleData)
	if err != nil {
		return nil, err
	}

	r := &resolver{
		bctx:            bctx,
		log:             log,
		compilerOptions: compilerOptions,
		registry:        registry,
		options:         &buildOptions,
		localeDataPath:  localeDataBasePath,
	}
	for _, locale := range registry.Locales() {
		if !registry.IsInline(locale) && locale != registry.SourceLocale {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := r.resolveLocale(ctx, locale); err != nil {
			return nil, err
		}
	}

	result := &Result{Options: buildOptions, I18n: registry}
	if registry.ShouldInline() {
		tempOutput, err := NewTempOutputDir(bctx.TempRoot, bctx.TempPrefix)
		if err != nil {
			return nil, err
		}
		result.Options.OutputPath = tempOutput.Path()
		result.TempOutput = tempOutput
		log.Debug("build output redirected for inlining", "output_path", tempOutput.Path())
	}
	return result, nil
}

// resolver carries the state of the per-locale pass.
type resolver struct {
	bctx            BuilderContext
	log             logger.Logger
	compilerOptions CompilerOptions
	registry        *i18n.Registry
	options         *Options
	localeDataPath  string

	loader      TranslationLoader
	usedFormats []string
}

func (r *resolver) resolveLocale(ctx context.Context, locale string) (err error) {
	ctx, span := tracing.StartSpan(ctx, tracing.SpanOperationLocale, tracing.WithLocale(locale))
	defer func() {
		tracing.RecordError(span, err)
		span.End()
	}()

	desc := r.registry.Locale(locale)

	dataPath, viaSubtag := i18n.ResolveLocaleData(locale, r.localeDataPath, r.bctx.LocaleData)
	switch {
	case dataPath == "":
		metrics.RecordLocaleDataFallback(metrics.FallbackMissing)
		r.log.Warn(fmt.Sprintf("Locale data for '%s' cannot be found.  No locale data will be included for this locale.", locale))
	case viaSubtag:
		metrics.RecordLocaleDataFallback(metrics.FallbackSubtag)
		r.log.Warn(fmt.Sprintf("Locale data for '%s' cannot be found.  Using locale data for '%s'.", locale, i18n.PrimarySubtag(locale)))
		desc.DataPath = dataPath
	default:
		desc.DataPath = dataPath
	}

	if len(desc.Files) == 0 {
		return nil
	}

	if r.loader == nil {
		l, err := r.bctx.NewLoader(ctx)
		if err != nil {
			return fmt.Errorf("create translation loader: %w", err)
		}
		r.loader = l
	}

	for _, file := range desc.Files {
		if err := r.loadFile(ctx, locale, desc, file); err != nil {
			return err
		}
	}

	if len(r.usedFormats) > 0 {
		r.options.I18nFormat = r.usedFormats[0]
	}

	if !r.compilerOptions.EnableIvy {
		return r.applyLegacyLocale()
	}
	return nil
}

func (r *resolver) loadFile(ctx context.Context, locale string, desc *i18n.LocaleEntry, file *i18n.TranslationFile) (err error) {
	_, span := tracing.StartSpan(ctx, tracing.SpanOperationLoad, tracing.WithLocale(locale), tracing.WithFile(file.Path))
	defer func() {
		tracing.RecordError(span, err)
		span.End()
	}()

	result, err := r.loader.Load(filepath.Join(r.bctx.WorkspaceRoot, file.Path))
	if err != nil {
		return i18n.Errorf(i18n.ErrTranslationRead, "Unable to read translation file '%s'.", file.Path).
			WithParams(i18n.Params{"file": file.Path, "locale": locale}).
			WithCause(err)
	}

	for _, diagnostic := range result.Diagnostics.Messages {
		if diagnostic.Type == loader.DiagnosticError {
			return i18n.Errorf(i18n.ErrTranslationParse,
				"Error parsing translation file '%s': %s", file.Path, diagnostic.Message).
				WithParams(i18n.Params{"file": file.Path, "locale": locale})
		}
		r.log.Warn(fmt.Sprintf("WARNING [%s]: %s", file.Path, diagnostic.Message))
	}

	if result.Locale != "" && result.Locale != locale {
		r.log.Warn(fmt.Sprintf("WARNING [%s]: File target locale ('%s') does not match configured locale ('%s')",
			file.Path, result.Locale, locale))
	}

	r.addFormat(result.Format)
	if len(r.usedFormats) > 1 && r.compilerOptions.EnableI18nLegacyMessageIDFormat {
		return i18n.Errorf(i18n.ErrMixedFormats,
			"Localization currently only supports using one type of translation file format for the entire application.").
			WithParams(i18n.Params{"formats": append([]string(nil), r.usedFormats...)})
	}

	file.Format = result.Format
	file.Integrity = result.Integrity
	metrics.RecordTranslationFile(result.Format, len(result.Translations))

	i18n.MergeTranslations(desc, file.Path, result.Translations, func(msg string) { r.log.Warn(msg) })
	return nil
}

func (r *resolver) addFormat(format string) {
	for _, seen := range r.usedFormats {
		if seen == format {
			return
		}
	}
	r.usedFormats = append(r.usedFormats, format)
}

// applyLegacyLocale narrows the build to the single locale the legacy compilation
// mode can produce and moves it out of the inlining pipeline.
func (r *resolver) applyLegacyLocale() error {
	inline := r.registry.InlineLocales()
	if len(inline) == 0 {
		return nil
	}
	locale := inline[0]
	r.registry.VECompatLocale = locale
	r.options.I18nLocale = locale

	if locale != r.registry.SourceLocale {
		entry := r.registry.Locale(locale)
		if len(entry.Files) > 1 {
			return i18n.Errorf(i18n.ErrMultipleFilesUnsupported,
				"Localization with View Engine only supports using a single translation file per locale.").
				WithParams(i18n.Params{"locale": locale})
		}
		if len(entry.Files) == 1 {
			r.options.I18nFile = entry.Files[0].Path
		}
	}

	r.registry.ClearInline()
	r.options.OutputPath = filepath.Join(r.options.OutputPath, locale)
	return nil
}

func projectRootOf(metadata any) string {
	var root any
	switch m := metadata.(type) {
	case *i18n.Object:
		root, _ = m.Get("root")
	case map[string]any:
		root = m["root"]
	}
	s, _ := root.(string)
	return s
}
