// Package cli builds the i18nbuild command tree.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	yaml "go.yaml.in/yaml/v3"

	"github.com/nimburion/i18nbuild/pkg/build"
	"github.com/nimburion/i18nbuild/pkg/config"
	"github.com/nimburion/i18nbuild/pkg/configschema"
	"github.com/nimburion/i18nbuild/pkg/i18n"
	"github.com/nimburion/i18nbuild/pkg/observability/logger"
	"github.com/nimburion/i18nbuild/pkg/version"
)

// Output formats of the commands printing documents.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// CommandOptions configures the root command.
type CommandOptions struct {
	Name       string
	ConfigPath string
	EnvPrefix  string

	// Stdout receives command output; Stderr receives logs. Both default to the
	// process streams.
	Stdout io.Writer
	Stderr io.Writer
}

// NewRootCommand returns the i18nbuild command tree.
func NewRootCommand(opts CommandOptions) *cobra.Command {
	if opts.Name == "" {
		opts.Name = version.Tool
	}
	if opts.EnvPrefix == "" {
		opts.EnvPrefix = config.DefaultEnvPrefix
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	rootCmd := &cobra.Command{
		Use:           opts.Name,
		Short:         "Resolve the i18n configuration of a workspace build",
		Version:       version.Current().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(opts.Stdout)
	rootCmd.SetErr(opts.Stderr)

	var cfgPath string
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config-file", "c", opts.ConfigPath, "config file path")
	if err := config.RegisterFlags(rootCmd.PersistentFlags()); err != nil {
		fmt.Fprintf(opts.Stderr, "failed to register config flags: %v\n", err)
		os.Exit(1)
	}

	session := func(flags *pflag.FlagSet) (*config.Config, logger.Logger, error) {
		return LoadConfigAndLogger(cfgPath, opts.EnvPrefix, flags, opts.Stderr)
	}

	rootCmd.AddCommand(
		newResolveCommand(session, opts.Stdout),
		newSchemaCommand(session, opts.Stdout),
		newConfigCommand(&cfgPath, opts.EnvPrefix, opts.Stdout),
		newVersionCommand(opts.Stdout),
	)

	rootCmd.CompletionOptions.DisableDefaultCmd = false
	rootCmd.InitDefaultCompletionCmd()
	return rootCmd
}

type sessionFunc func(flags *pflag.FlagSet) (*config.Config, logger.Logger, error)

// resolveOutput is the document printed by the resolve command.
type resolveOutput struct {
	BuildID    string         `json:"buildId" yaml:"buildId"`
	Target     string         `json:"target" yaml:"target"`
	Options    map[string]any `json:"options" yaml:"options"`
	I18n       i18n.Snapshot  `json:"i18n" yaml:"i18n"`
	TempOutput string         `json:"tempOutput,omitempty" yaml:"tempOutput,omitempty"`
}

func newResolveCommand(session sessionFunc, stdout io.Writer) *cobra.Command {
	var (
		localize   string
		i18nLocale string
		i18nFile   string
		i18nFormat string
		outputPath string
		tsConfig   string
		keepTemp   bool
		format     string
	)

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve the i18n build options of a project target",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			cfg, log, err := session(cmd.Flags())
			if err != nil {
				return err
			}

			buildID := uuid.NewString()
			ctx := logger.ContextWithBuildID(commandContext(cmd), buildID)

			workspace, err := build.NewWorkspaceProvider(cfg.Workspace.File)
			if err != nil {
				return err
			}
			target, err := resolveTarget(cfg, workspace)
			if err != nil {
				return err
			}

			finish, err := startTelemetry(ctx, cfg, log, buildID, target.String())
			if err != nil {
				return err
			}
			defer finish()

			options, err := workspace.BuildOptions(target)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("localize") {
				options.Localize = i18n.ParseInline(localize)
			}
			overrideString(flags, "i18n-locale", i18nLocale, &options.I18nLocale)
			overrideString(flags, "i18n-file", i18nFile, &options.I18nFile)
			overrideString(flags, "i18n-format", i18nFormat, &options.I18nFormat)
			overrideString(flags, "output-path", outputPath, &options.OutputPath)
			overrideString(flags, "ts-config", tsConfig, &options.TSConfig)

			log.WithContext(ctx).Debug("resolving i18n build options", "target", target.String())

			result, err := build.ConfigureI18nBuild(ctx, build.BuilderContext{
				Target:        &target,
				WorkspaceRoot: workspace.Root(),
				Metadata:      workspace,
				Logger:        log,
				LocaleData:    cfg.LocaleDataOptions(),
				TempRoot:      cfg.Temp.Root,
				TempPrefix:    cfg.Temp.Prefix,
			}, options)
			if err != nil {
				return err
			}
			if !keepTemp {
				result.TempOutput.RemoveOnExit()
				defer result.Close()
			}

			return writeDocument(stdout, format, resolveOutput{
				BuildID:    buildID,
				Target:     target.String(),
				Options:    result.Options.Map(),
				I18n:       result.I18n.Snapshot(),
				TempOutput: result.TempOutput.Path(),
			})
		},
	}

	cmd.Flags().StringVar(&localize, "localize", "", "locales to inline: true, false, or a comma separated list")
	cmd.Flags().StringVar(&i18nLocale, "i18n-locale", "", "deprecated single locale option")
	cmd.Flags().StringVar(&i18nFile, "i18n-file", "", "deprecated single translation file option")
	cmd.Flags().StringVar(&i18nFormat, "i18n-format", "", "deprecated translation format option")
	cmd.Flags().StringVar(&outputPath, "output-path", "", "build output path override")
	cmd.Flags().StringVar(&tsConfig, "ts-config", "", "TypeScript configuration override")
	cmd.Flags().BoolVar(&keepTemp, "keep-temp", false, "keep the temporary output directory after printing")
	cmd.Flags().StringVarP(&format, "format", "o", FormatJSON, "output format (json, yaml)")
	return cmd
}

func newSchemaCommand(session sessionFunc, stdout io.Writer) *cobra.Command {
	var (
		validate     bool
		configSchema bool
	)

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print or check the JSON Schema of the project i18n field",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !validate {
				if configSchema {
					schema, err := configschema.ConfigSchema()
					if err != nil {
						return err
					}
					return writeDocument(stdout, FormatJSON, schema)
				}
				return writeDocument(stdout, FormatJSON, configschema.ProjectI18nSchema())
			}

			cfg, _, err := session(cmd.Flags())
			if err != nil {
				return err
			}
			workspace, err := build.NewWorkspaceProvider(cfg.Workspace.File)
			if err != nil {
				return err
			}
			target, err := resolveTarget(cfg, workspace)
			if err != nil {
				return err
			}
			metadata, err := workspace.ProjectMetadata(commandContext(cmd), target)
			if err != nil {
				return err
			}
			if err := configschema.ValidateProjectI18n(metadata); err != nil {
				return err
			}
			registry, err := i18n.CreateOptions(metadata, i18n.InlineUnset)
			if err != nil {
				return err
			}
			if err := registry.Validate(); err != nil {
				return err
			}
			fmt.Fprintf(stdout, "project '%s' i18n configuration is valid (%d locales)\n",
				target.Project, len(registry.Locales()))
			return nil
		},
	}
	cmd.Flags().BoolVar(&validate, "validate", false, "validate the i18n field of the selected project")
	cmd.Flags().BoolVar(&configSchema, "config", false, "print the schema of the configuration file instead")
	return cmd
}

func newConfigCommand(cfgPath *string, envPrefix string, stdout io.Writer) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management commands",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := config.NewViperLoader(*cfgPath, envPrefix).WithFlags(cmd.Flags()).Load(); err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			fmt.Fprintln(stdout, "configuration is valid")
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loader := config.NewViperLoader(*cfgPath, envPrefix).WithFlags(cmd.Flags())
			if _, err := loader.Load(); err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			formatted, err := formatSettings(loader.AllSettings())
			if err != nil {
				return err
			}
			fmt.Fprint(stdout, formatted)
			return nil
		},
	})
	return configCmd
}

func newVersionCommand(stdout io.Writer) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.Current()
			if format != "" {
				if err := checkFormat(format); err != nil {
					return err
				}
				return writeDocument(stdout, format, info)
			}
			fmt.Fprintf(stdout, "Tool:       %s\n", info.Tool)
			fmt.Fprintf(stdout, "Version:    %s\n", info.Version)
			fmt.Fprintf(stdout, "Commit:     %s\n", info.Commit)
			fmt.Fprintf(stdout, "Build Time: %s\n", info.BuildTime)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "o", "", "output format (json, yaml); plain text when empty")
	return cmd
}

// LoadConfigAndLogger loads the configuration and builds the logger writing to logOut.
func LoadConfigAndLogger(cfgPath, envPrefix string, flags *pflag.FlagSet, logOut io.Writer) (*config.Config, logger.Logger, error) {
	cfg, err := config.NewViperLoader(cfgPath, envPrefix).WithFlags(flags).Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	logCfg := cfg.LoggerConfig()
	logCfg.Output = logOut
	log, err := logger.NewZapLogger(logCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("create logger: %w", err)
	}

	logConfigIfDebug(log, cfg)
	return cfg, log, nil
}

// Execute runs the command and exits with status 1 on error.
func Execute(cmd *cobra.Command) {
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), formatError(err))
		os.Exit(1)
	}
}

func formatError(err error) string {
	var i18nErr *i18n.Error
	if errors.As(err, &i18nErr) {
		return fmt.Sprintf("Error [%s]: %s", i18nErr.Code, err.Error())
	}
	return "Error: " + err.Error()
}

func resolveTarget(cfg *config.Config, workspace *build.WorkspaceProvider) (build.Target, error) {
	project := strings.TrimSpace(cfg.Workspace.Project)
	if project == "" {
		project = workspace.DefaultProject()
	}
	if project == "" {
		return build.Target{}, fmt.Errorf("no project selected and workspace defines %d projects; use --project", len(workspace.Projects()))
	}
	return build.Target{
		Project:       project,
		Target:        cfg.Build.Target,
		Configuration: cfg.Build.Configuration,
	}, nil
}

func overrideString(flags *pflag.FlagSet, name, value string, dst *string) {
	if flags.Changed(name) {
		*dst = value
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func checkFormat(format string) error {
	switch format {
	case FormatJSON, FormatYAML:
		return nil
	}
	return fmt.Errorf("unsupported output format %q (expected %s or %s)", format, FormatJSON, FormatYAML)
}

func writeDocument(w io.Writer, format string, document any) error {
	switch format {
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(document); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return encoder.Close()
	default:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(document); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	}
}

func formatSettings(settings map[string]interface{}) (string, error) {
	if settings == nil {
		return "{}\n", nil
	}
	data, err := yaml.Marshal(settings)
	if err != nil {
		return "", fmt.Errorf("marshal config: %w", err)
	}
	return string(data), nil
}

func logConfigIfDebug(log logger.Logger, cfg *config.Config) {
	if log == nil || cfg == nil {
		return
	}
	if !strings.EqualFold(cfg.Log.Level, string(logger.DebugLevel)) {
		return
	}
	log.Debug("effective configuration", "config", cfg.String())
}
