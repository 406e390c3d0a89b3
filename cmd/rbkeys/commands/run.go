package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/rbkeys/internal/session"
	"github.com/Sumatoshi-tech/rbkeys/pkg/observability"
)

// stdinPath names standard input as a script.
const stdinPath = "-"

// RunCommand holds the flags of the run command.
type RunCommand struct {
	global      *GlobalOptions
	render      renderFlags
	metricsAddr string
}

// NewRunCommand creates the run command.
func NewRunCommand(global *GlobalOptions) *cobra.Command {
	rc := &RunCommand{global: global}

	cobraCmd := &cobra.Command{
		Use:   "run [file]",
		Short: "Execute tree commands from a file or interactively",
		Long: `Execute tree commands, one per line, from a file.

Without a file, commands are read from standard input: interactively with a
menu and prompt when it is a terminal, as a script otherwise. Use "-" to
force script mode on standard input.

Type "help" at the prompt for the command list.`,
		Args: cobra.MaximumNArgs(1),
		RunE: rc.Run,
	}

	rc.render.register(cobraCmd)
	cobraCmd.Flags().StringVar(&rc.metricsAddr, "metrics-addr", "",
		"serve Prometheus metrics on this address while running (e.g. :9464)")

	return cobraCmd
}

// Run executes the run command.
func (rc *RunCommand) Run(cobraCmd *cobra.Command, args []string) (err error) {
	cfg, err := loadConfig(rc.global)
	if err != nil {
		return err
	}

	rc.render.apply(cobraCmd, cfg)

	if cobraCmd.Flags().Changed("metrics-addr") {
		cfg.Metrics.Addr = rc.metricsAddr
	}

	env, err := newEnvironment(cobraCmd, rc.global, cfg, observability.ModeRun, cfg.Metrics.Addr != "")
	if err != nil {
		return err
	}

	ctx := cobraCmd.Context()

	defer func() { err = errors.Join(err, env.shutdown(ctx)) }()

	input, interactive, closeInput, err := openInput(cobraCmd, args)
	if err != nil {
		return err
	}
	defer closeInput()

	out := cobraCmd.OutOrStdout()

	format, renderOpts, err := renderSettings(cfg, out)
	if err != nil {
		return err
	}

	sess := session.New(session.Options{
		Output:      out,
		Logger:      env.logger,
		Tracer:      env.providers.Tracer,
		Metrics:     env.metrics,
		Format:      format,
		Render:      renderOpts,
		Interactive: interactive,
	})
	defer sess.Close()

	if cfg.Metrics.Addr == "" {
		return sess.Run(ctx, input)
	}

	return runWithMetrics(ctx, env, cfg.Metrics.Addr, func(runCtx context.Context) error {
		return sess.Run(runCtx, input)
	})
}

// runWithMetrics serves the scrape endpoint for the duration of fn.
func runWithMetrics(ctx context.Context, env *environment, addr string, fn func(context.Context) error) error {
	srv, err := observability.ListenMetrics(addr, env.providers.MetricsHandler, env.logger)
	if err != nil {
		return err
	}

	serveCtx, cancel := context.WithCancel(ctx)
	serveErr := make(chan error, 1)

	go func() { serveErr <- srv.Serve(serveCtx) }()

	runErr := fn(ctx)

	cancel()

	return errors.Join(runErr, <-serveErr)
}

func openInput(cobraCmd *cobra.Command, args []string) (io.Reader, bool, func(), error) {
	noop := func() {}

	if len(args) == 0 {
		in := cobraCmd.InOrStdin()

		return in, isTerminal(in), noop, nil
	}

	if args[0] == stdinPath {
		return cobraCmd.InOrStdin(), false, noop, nil
	}

	f, err := os.Open(args[0])
	if err != nil {
		return nil, false, nil, fmt.Errorf("open script: %w", err)
	}

	return f, false, func() { f.Close() }, nil
}
