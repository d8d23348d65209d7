package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/hgx/internal/hypergraph"
	"github.com/roach88/hgx/internal/ident"
)

// InfoResult is the structural summary printed by the info command.
type InfoResult struct {
	Nodes      int         `json:"nodes"`
	Edges      int         `json:"edges"`
	Weighted   bool        `json:"weighted"`
	Uniform    bool        `json:"uniform"`
	Connected  bool        `json:"connected"`
	MaxOrder   int         `json:"max_order"`
	Orders     map[int]int `json:"orders"`
	Components int         `json:"components"`
}

// NewInfoCommand creates the info command.
func NewInfoCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <file>",
		Short: "Summarize a hypergraph",
		Long: `Print node and edge counts, the distribution of edge orders,
and whether the hypergraph is uniform and connected.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return byIDs(rootOpts,
				func() error { return runInfo[int](rootOpts, args[0], cmd) },
				func() error { return runInfo[string](rootOpts, args[0], cmd) },
			)
		},
	}
	return cmd
}

func runInfo[N ident.ID](opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	h, err := loadGraph[N](opts, path)
	if err != nil {
		return failLoad(formatter, err)
	}

	result := summarize(h)
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	w := formatter.Writer
	fmt.Fprintln(w, h.String())
	fmt.Fprintf(w, "Max order: %d\n", result.MaxOrder)
	fmt.Fprintf(w, "Uniform: %s\n", yesNo(result.Uniform))
	fmt.Fprintf(w, "Connected: %s\n", yesNo(result.Connected))
	fmt.Fprintf(w, "Components: %d\n", result.Components)
	return nil
}

func summarize[N ident.ID](h *hypergraph.Hypergraph[N]) InfoResult {
	return InfoResult{
		Nodes:      h.NumNodes(),
		Edges:      h.NumEdges(),
		Weighted:   h.IsWeighted(),
		Uniform:    h.IsUniform(),
		Connected:  h.IsConnected(),
		MaxOrder:   h.MaxOrder(),
		Orders:     h.OrderDistribution(),
		Components: len(h.ConnectedComponents()),
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
