package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/hgx/internal/ident"
)

// NewConvertCommand creates the convert command.
func NewConvertCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <in> <out>",
		Short: "Convert a hypergraph file between formats",
		Long: `Read a hypergraph file and write it in the format of the output
extension (.json, .yaml, .yml, .msgpack, .mp). CUE files can be read but
not written. The document is rebuilt on the way, so invalid edges are
rejected and duplicates collapse.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return byIDs(rootOpts,
				func() error { return runConvert[int](rootOpts, args[0], args[1], cmd) },
				func() error { return runConvert[string](rootOpts, args[0], args[1], cmd) },
			)
		},
	}
	return cmd
}

func runConvert[N ident.ID](opts *RootOptions, in, out string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	h, err := loadGraph[N](opts, in)
	if err != nil {
		return failLoad(formatter, err)
	}
	return emitGraph(opts, formatter, out, h)
}
