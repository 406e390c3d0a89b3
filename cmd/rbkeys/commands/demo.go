package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/rbkeys/pkg/observability"
	"github.com/Sumatoshi-tech/rbkeys/pkg/rbtree"
	"github.com/Sumatoshi-tech/rbkeys/pkg/render"
)

// DemoKeys is the insertion sequence printed by the demo command.
var DemoKeys = []int64{4, 2, 1, 3, 6, 5, 7, 9, 8, 0, -1, 10}

// DemoCommand holds the flags of the demo command.
type DemoCommand struct {
	global *GlobalOptions
	render renderFlags
	keys   []int64
}

// NewDemoCommand creates the demo command.
func NewDemoCommand(global *GlobalOptions) *cobra.Command {
	dc := &DemoCommand{global: global}

	cobraCmd := &cobra.Command{
		Use:   "demo",
		Short: "Build and print the demo tree",
		Args:  cobra.NoArgs,
		RunE:  dc.Run,
	}

	dc.render.register(cobraCmd)
	cobraCmd.Flags().Int64SliceVar(&dc.keys, "keys", DemoKeys, "keys to insert, in order")

	return cobraCmd
}

// Run executes the demo command.
func (dc *DemoCommand) Run(cobraCmd *cobra.Command, _ []string) (err error) {
	cfg, err := loadConfig(dc.global)
	if err != nil {
		return err
	}

	dc.render.apply(cobraCmd, cfg)

	env, err := newEnvironment(cobraCmd, dc.global, cfg, observability.ModeDemo, false)
	if err != nil {
		return err
	}

	ctx := cobraCmd.Context()

	defer func() { err = errors.Join(err, env.shutdown(ctx)) }()

	out := cobraCmd.OutOrStdout()

	format, renderOpts, err := renderSettings(cfg, out)
	if err != nil {
		return err
	}

	tree := rbtree.New()
	defer tree.Teardown()

	for _, key := range dc.keys {
		tree.Insert(key)
	}

	err = tree.Verify()
	if err != nil {
		return fmt.Errorf("demo tree: %w", err)
	}

	env.logger.DebugContext(ctx, "demo tree built",
		"keys", tree.Len(), "height", tree.Height(), "black_height", tree.BlackHeight())

	return render.Write(out, format, tree.Traverse(), renderOpts)
}
