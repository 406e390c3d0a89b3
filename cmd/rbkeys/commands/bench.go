package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/rbkeys/internal/bench"
	"github.com/Sumatoshi-tech/rbkeys/pkg/observability"
)

// BenchCommand holds the flags of the bench command.
type BenchCommand struct {
	global *GlobalOptions
	sizes  []int
	orders []string
	seed   int64
	plot   string
}

// NewBenchCommand creates the bench command.
func NewBenchCommand(global *GlobalOptions) *cobra.Command {
	bc := &BenchCommand{global: global}

	cobraCmd := &cobra.Command{
		Use:   "bench",
		Short: "Time insert, search and remove over generated key sets",
		Long: `Time insert, search and remove of keys 0..n-1 fed in shuffled, sorted
and reversed order. Invariants are verified after every phase.`,
		Args: cobra.NoArgs,
		RunE: bc.Run,
	}

	flags := cobraCmd.Flags()
	flags.IntSliceVar(&bc.sizes, "sizes", nil, "key counts to time (default from config)")
	flags.StringSliceVar(&bc.orders, "orders", nil, "key orders: shuffled, sorted, reversed (default from config)")
	flags.Int64Var(&bc.seed, "seed", 0, "seed for shuffled keys (default from config)")
	flags.StringVar(&bc.plot, "plot", "", "write an HTML chart of the results to this file")

	return cobraCmd
}

// Run executes the bench command.
func (bc *BenchCommand) Run(cobraCmd *cobra.Command, _ []string) (err error) {
	cfg, err := loadConfig(bc.global)
	if err != nil {
		return err
	}

	flags := cobraCmd.Flags()

	if flags.Changed("sizes") {
		cfg.Bench.Sizes = bc.sizes
	}

	if flags.Changed("orders") {
		cfg.Bench.Orders = bc.orders
	}

	if flags.Changed("seed") {
		cfg.Bench.Seed = bc.seed
	}

	env, err := newEnvironment(cobraCmd, bc.global, cfg, observability.ModeBench, false)
	if err != nil {
		return err
	}

	ctx := cobraCmd.Context()

	defer func() { err = errors.Join(err, env.shutdown(ctx)) }()

	orders := make([]bench.Order, 0, len(cfg.Bench.Orders))

	for _, name := range cfg.Bench.Orders {
		order, parseErr := bench.ParseOrder(name)
		if parseErr != nil {
			return parseErr
		}

		orders = append(orders, order)
	}

	ctx, span := env.providers.Tracer.Start(ctx, "rbkeys.bench")
	defer span.End()

	results, err := bench.Run(ctx, bench.Config{
		Sizes:  cfg.Bench.Sizes,
		Orders: orders,
		Seed:   cfg.Bench.Seed,
		Logger: env.logger,
	})
	if err != nil {
		return err
	}

	for _, res := range results {
		env.metrics.RecordOperation(ctx, "bench.insert", observability.StatusOK, res.Insert)
		env.metrics.RecordOperation(ctx, "bench.search", observability.StatusOK, res.Search)
		env.metrics.RecordOperation(ctx, "bench.remove", observability.StatusOK, res.Remove)
	}

	fmt.Fprintln(cobraCmd.OutOrStdout(), bench.Table(results))

	if bc.plot == "" {
		return nil
	}

	return writePlot(bc.plot, results)
}

func writePlot(path string, results []bench.Result) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create plot: %w", err)
	}

	defer func() { err = errors.Join(err, f.Close()) }()

	return bench.Plot(f, results)
}
