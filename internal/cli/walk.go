package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/hgx/internal/dynamics"
	"github.com/roach88/hgx/internal/ident"
)

// WalkOptions holds flags for the walk command.
type WalkOptions struct {
	*RootOptions
	Start string
	Steps int
	Seed  uint64
}

// NewWalkCommand creates the walk command.
func NewWalkCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &WalkOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "walk <file>",
		Short: "Run a random walk",
		Long: `Walk the hypergraph from --start. Each step moves to a neighbor
with probability proportional to the orders of the shared edges, less one.
The walk stops early at a node without neighbors.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return byIDs(rootOpts,
				func() error { return runWalk[int](opts, args[0], cmd) },
				func() error { return runWalk[string](opts, args[0], cmd) },
			)
		},
	}

	cmd.Flags().StringVar(&opts.Start, "start", "", "start node")
	cmd.Flags().IntVar(&opts.Steps, "steps", 10, "number of steps")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 1, "random seed")
	_ = cmd.MarkFlagRequired("start")

	return cmd
}

func runWalk[N ident.ID](opts *WalkOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	start, err := parseID[N](opts.Start)
	if err != nil {
		return formatter.Fail(ErrCodeInvalidFlag, ExitCommandError, "invalid --start", err)
	}

	h, err := loadGraph[N](opts.RootOptions, path)
	if err != nil {
		return failLoad(formatter, err)
	}

	walk, err := dynamics.RandomWalk(h, start, opts.Steps, newRand(opts.Seed))
	if err != nil {
		return formatter.Fail(ErrCodeGeneric, ExitFailure, "walk", err)
	}

	if formatter.Format == "json" {
		return formatter.Success(walk)
	}
	parts := make([]string, len(walk))
	for i, n := range walk {
		parts[i] = fmt.Sprint(n)
	}
	fmt.Fprintln(formatter.Writer, strings.Join(parts, " -> "))
	return nil
}
