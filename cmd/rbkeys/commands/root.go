// Package commands implements CLI command handlers for rbkeys.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/rbkeys/pkg/config"
	"github.com/Sumatoshi-tech/rbkeys/pkg/observability"
	"github.com/Sumatoshi-tech/rbkeys/pkg/render"
	"github.com/Sumatoshi-tech/rbkeys/pkg/version"
)

// GlobalOptions holds the persistent flags shared by every command.
type GlobalOptions struct {
	ConfigPath string
	Verbose    bool
	Quiet      bool
	LogJSON    bool
}

// NewRootCommand builds the rbkeys command tree.
func NewRootCommand() *cobra.Command {
	global := &GlobalOptions{}

	rootCmd := &cobra.Command{
		Use:   "rbkeys",
		Short: "rbkeys - a red-black tree of integer keys",
		Long: `rbkeys keeps a set of unique 64-bit integer keys in a red-black tree.

Commands:
  run       Execute tree commands from a file or interactively
  demo      Build and print the demo tree
  bench     Time insert, search and remove over generated key sets
  version   Show version information`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&global.ConfigPath, "config", "", "config file (default: rbkeys.yaml in ., ./config or $HOME/.rbkeys)")
	flags.BoolVarP(&global.Verbose, "verbose", "v", false, "verbose output")
	flags.BoolVarP(&global.Quiet, "quiet", "q", false, "suppress output")
	flags.BoolVar(&global.LogJSON, "log-json", false, "write logs as JSON")

	rootCmd.AddCommand(NewRunCommand(global))
	rootCmd.AddCommand(NewDemoCommand(global))
	rootCmd.AddCommand(NewBenchCommand(global))
	rootCmd.AddCommand(NewVersionCommand())

	return rootCmd
}

// NewVersionCommand creates the version command.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "rbkeys %s\n", version.String())
		},
	}
}

// renderFlags are the output flags of commands that print the tree.
type renderFlags struct {
	format string
	color  string
	indent int
}

func (rf *renderFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&rf.format, "format", "f", config.DefaultRenderFormat, "tree format: text, json, yaml")
	cmd.Flags().StringVar(&rf.color, "color", config.DefaultRenderColor, "color mode: auto, always, never")
	cmd.Flags().IntVar(&rf.indent, "indent", config.DefaultRenderIndent, "spaces per tree level in text output")
}

// apply copies explicitly set flags over the loaded configuration.
func (rf *renderFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("format") {
		cfg.Render.Format = rf.format
	}

	if cmd.Flags().Changed("color") {
		cfg.Render.Color = rf.color
	}

	if cmd.Flags().Changed("indent") {
		cfg.Render.Indent = rf.indent
	}
}

// renderSettings resolves the configured format and options for out.
func renderSettings(cfg *config.Config, out io.Writer) (render.Format, render.Options, error) {
	format, err := render.ParseFormat(cfg.Render.Format)
	if err != nil {
		return "", render.Options{}, err
	}

	return format, render.Options{
		Indent: cfg.Render.Indent,
		Color:  cfg.Render.UseColor(isTerminal(out)),
	}, nil
}

func isTerminal(w any) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// environment is the per-invocation configuration and telemetry.
type environment struct {
	cfg       *config.Config
	providers observability.Providers
	metrics   *observability.REDMetrics
	logger    *slog.Logger
}

// loadConfig reads the configuration file and environment.
func loadConfig(global *GlobalOptions) (*config.Config, error) {
	cfg, err := config.LoadConfig(global.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return cfg, nil
}

// newEnvironment validates cfg after flag overrides and starts telemetry.
// Prometheus enables the in-process scrape handler.
func newEnvironment(
	cmd *cobra.Command, global *GlobalOptions, cfg *config.Config, mode observability.AppMode, prometheus bool,
) (*environment, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	level, err := cfg.Logging.SlogLevel()
	if err != nil {
		return nil, err
	}

	switch {
	case global.Verbose:
		level = slog.LevelDebug
	case global.Quiet:
		level = slog.LevelError
	}

	obsCfg := observability.DefaultConfig()
	obsCfg.ServiceVersion = version.Version
	obsCfg.Environment = cfg.Metrics.Environment
	obsCfg.Mode = mode
	obsCfg.OTLPEndpoint = cfg.Metrics.OTLPEndpoint
	obsCfg.OTLPHeaders = observability.ParseOTLPHeaders(cfg.Metrics.OTLPHeaders)
	obsCfg.OTLPInsecure = cfg.Metrics.OTLPInsecure
	obsCfg.Prometheus = prometheus
	obsCfg.LogLevel = level
	obsCfg.LogJSON = global.LogJSON || cfg.Logging.Format == config.LogFormatJSON
	obsCfg.LogOutput = cmd.ErrOrStderr()

	providers, err := observability.Init(obsCfg)
	if err != nil {
		return nil, fmt.Errorf("init observability: %w", err)
	}

	metrics, err := observability.NewREDMetrics(providers.Meter)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("create metrics: %w", err), providers.Shutdown(context.Background()))
	}

	return &environment{
		cfg:       cfg,
		providers: providers,
		metrics:   metrics,
		logger:    providers.Logger,
	}, nil
}

func (env *environment) shutdown(ctx context.Context) error {
	err := env.providers.Shutdown(context.WithoutCancel(ctx))
	if err != nil {
		return fmt.Errorf("shutdown observability: %w", err)
	}

	return nil
}
