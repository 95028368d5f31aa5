// Package main provides the CLI entry point for tidyfmt.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/AntoineGS/tidyfmt/internal/config"
	"github.com/AntoineGS/tidyfmt/internal/manager"
	tmpl "github.com/AntoineGS/tidyfmt/internal/template"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var version = "dev"

var (
	configPath   string // Override from --config flag
	colorMode    string
	verbose      bool
	templatePath string
	inputs       []string
	noGlobs      bool
	noTrim       bool
	outputPath   string
	check        bool
	dumpFormat   string
	forceInit    bool
)

func main() {
	rootCmd := newRootCmd()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, describeError(err))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "tidyfmt",
		Version: version,
		Short:   "Render a template against the contents of a set of files",
		Long: `tidyfmt loads a set of input files, given as paths or glob patterns,
and renders a Go text/template against them.

Templates see a single value:
  {{ range .files }}{{ .name }} {{ .path }} {{ .contents }}{{ end }}

Defaults for glob handling, trimming and color can be stored in
~/.config/tidyfmt/config.yaml (run 'tidyfmt init' to create it).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if verbose {
				slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
					Level: slog.LevelDebug,
				})))
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Use this app config file instead of ~/.config/tidyfmt/config.yaml")
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", "", "Colorize diffs: auto, always or never (default from app config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	formatCmd := &cobra.Command{
		Use:   "format --template <path> [--input <path-or-glob>]... [path-or-glob]...",
		Short: "Render a template against input files",
		Long: `Render a template against input files and print the result.

Each input is tried as a glob pattern (*, **, ?, [class], {a,b}) first. Inputs that
are not valid patterns are used as literal paths. Use --no-globs to treat every
input as a literal path. Inputs may be given with --input or as arguments.`,
		RunE: runFormat,
	}
	formatCmd.Flags().StringVarP(&templatePath, "template", "t", "", "Template file to render")
	formatCmd.Flags().StringArrayVarP(&inputs, "input", "i", nil, "File paths or glob patterns (repeatable)")
	formatCmd.Flags().BoolVar(&noGlobs, "no-globs", false, "Treat every input as a literal file path")
	formatCmd.Flags().BoolVar(&noTrim, "no-trim", false, "Keep leading and trailing whitespace of file contents")
	formatCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the result to this file instead of stdout")
	formatCmd.Flags().BoolVar(&check, "check", false, "Fail with a diff if --output is not up to date, without writing it")
	_ = formatCmd.MarkFlagRequired("template")

	contextCmd := &cobra.Command{
		Use:   "context [--input <path-or-glob>]... [path-or-glob]...",
		Short: "Print the data a template would receive",
		Long:  `Resolve and load input files and print the resulting template context as YAML or JSON.`,
		RunE:  runContext,
	}
	contextCmd.Flags().StringArrayVarP(&inputs, "input", "i", nil, "File paths or glob patterns (repeatable)")
	contextCmd.Flags().BoolVar(&noGlobs, "no-globs", false, "Treat every input as a literal file path")
	contextCmd.Flags().BoolVar(&noTrim, "no-trim", false, "Keep leading and trailing whitespace of file contents")
	contextCmd.Flags().StringVarP(&dumpFormat, "format", "f", "yaml", "Output format: yaml or json")

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default app configuration",
		Long: `Write ~/.config/tidyfmt/config.yaml (or the --config path) with default values.
An existing file is left alone unless --force is given.`,
		Args: cobra.NoArgs,
		RunE: runInit,
	}
	initCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite an existing app configuration")

	rootCmd.AddCommand(formatCmd, contextCmd, initCmd)

	return rootCmd
}

// loadAppConfig reads the app config from --config or the default location.
func loadAppConfig() (*config.AppConfig, error) {
	if configPath != "" {
		return config.LoadAppConfigFrom(configPath)
	}

	return config.LoadAppConfig()
}

// resolveSettings applies the --no-globs and --no-trim flags on top of the
// app config defaults.
func resolveSettings(appCfg *config.AppConfig) config.Settings {
	settings := appCfg.Settings()

	return settings.
		WithAllowGlobs(settings.AllowGlobs && !noGlobs).
		WithTrimContents(settings.TrimContents && !noTrim)
}

// applyColor picks the lipgloss color profile used for diffs.
func applyColor(appCfg *config.AppConfig, w io.Writer) error {
	mode := appCfg.Color
	if colorMode != "" {
		mode = colorMode
	}

	switch mode {
	case config.ColorNever:
		lipgloss.SetColorProfile(termenv.Ascii)
	case config.ColorAlways:
		lipgloss.SetColorProfile(termenv.ANSI256)
	case config.ColorAuto:
		lipgloss.SetColorProfile(termenv.NewOutput(w).EnvColorProfile())
	default:
		return config.NewFieldError("color", mode, config.ErrInvalidConfig)
	}

	return nil
}

func createManager() (*manager.Manager, error) {
	appCfg, err := loadAppConfig()
	if err != nil {
		return nil, err
	}

	if err := applyColor(appCfg, os.Stderr); err != nil {
		return nil, err
	}

	mgr, err := manager.New(resolveSettings(appCfg))
	if err != nil {
		return nil, err
	}

	return mgr.WithVerbose(verbose), nil
}

// collectInputs merges --input values and positional arguments, in that order.
func collectInputs(args []string) error {
	inputs = append(inputs, args...)
	if len(inputs) == 0 {
		return errors.New("at least one input is required (--input or positional argument)")
	}

	return nil
}

func runFormat(_ *cobra.Command, args []string) error {
	if err := collectInputs(args); err != nil {
		return err
	}

	if check && outputPath == "" {
		return manager.ErrNoOutputPath
	}

	mgr, err := createManager()
	if err != nil {
		return err
	}

	return runFormatWithManager(mgr, os.Stderr)
}

func runFormatWithManager(m manager.TemplateFormatter, diffOut io.Writer) error {
	rendered, err := m.Format(templatePath, inputs)
	if err != nil {
		return err
	}

	if check {
		diff, err := m.Check(rendered, outputPath)
		if diff != "" {
			fmt.Fprint(diffOut, diff)
		}
		return err
	}

	return m.Emit(rendered, outputPath)
}

func runContext(cmd *cobra.Command, args []string) error {
	if err := collectInputs(args); err != nil {
		return err
	}

	mgr, err := createManager()
	if err != nil {
		return err
	}

	return runContextWithManager(mgr, cmd.OutOrStdout())
}

func runContextWithManager(m manager.Populator, w io.Writer) error {
	ctx, err := m.Populate(inputs)
	if err != nil {
		return err
	}

	switch dumpFormat {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(ctx.Object()); err != nil {
			return fmt.Errorf("encoding context: %w", err)
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(ctx.Object()); err != nil {
			return fmt.Errorf("encoding context: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q (must be 'yaml' or 'json')", dumpFormat)
	}
}

func runInit(cmd *cobra.Command, _ []string) error {
	path := configPath
	if path == "" {
		path = config.AppConfigPath()
		if path == "" {
			return fmt.Errorf("cannot determine home directory; pass --config")
		}
	}

	if _, err := os.Stat(path); err == nil && !forceInit {
		return fmt.Errorf("app config already exists at %s (use --force to overwrite)", path)
	}

	if err := config.SaveAppConfigTo(config.DefaultAppConfig(), path); err != nil {
		return fmt.Errorf("saving app config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "App configuration saved to %s\n", path)

	return nil
}

// describeError turns an error into the message printed before exiting.
func describeError(err error) string {
	var tErr *tmpl.Error
	if errors.As(err, &tErr) {
		switch tErr.Kind {
		case tmpl.KindPattern:
			return fmt.Sprintf("Failed to expand input pattern: %v", err)
		case tmpl.KindNotFound, tmpl.KindIO, tmpl.KindDecode, tmpl.KindInvalidPath:
			return fmt.Sprintf("Failed to read input(s): %v", err)
		case tmpl.KindRender:
			return fmt.Sprintf("Failed to process template: %v", err)
		}
	}

	if errors.Is(err, manager.ErrOutputDrift) {
		return fmt.Sprintf("Output is out of date: %v", err)
	}

	return fmt.Sprintf("Failed: %v", err)
}
