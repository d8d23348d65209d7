package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/hgx/internal/ident"
	"github.com/roach88/hgx/internal/measures"
)

// DegreeOptions holds flags for the degree command.
type DegreeOptions struct {
	*RootOptions
	Order int    // only count edges of this order; 0 counts all
	Node  string // report a single node
}

// NodeDegree is one row of the degree command output.
type NodeDegree[N ident.ID] struct {
	Node   N   `json:"node"`
	Degree int `json:"degree"`
}

// NewDegreeCommand creates the degree command.
func NewDegreeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DegreeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "degree <file>",
		Short: "Print node degrees",
		Long: `Print the degree of every node, ascending by node id.

With --order only edges of that order are counted. With --node a single
node is reported and a missing node is an error.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return byIDs(rootOpts,
				func() error { return runDegree[int](opts, args[0], cmd) },
				func() error { return runDegree[string](opts, args[0], cmd) },
			)
		},
	}

	cmd.Flags().IntVar(&opts.Order, "order", 0, "only count edges of this order (0 = all)")
	cmd.Flags().StringVar(&opts.Node, "node", "", "report a single node")

	return cmd
}

func runDegree[N ident.ID](opts *DegreeOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	if opts.Order < 0 {
		return formatter.Fail(ErrCodeInvalidFlag, ExitCommandError, fmt.Sprintf("invalid --order %d", opts.Order), nil)
	}

	h, err := loadGraph[N](opts.RootOptions, path)
	if err != nil {
		return failLoad(formatter, err)
	}

	var rows []NodeDegree[N]
	if opts.Node != "" {
		n, err := parseID[N](opts.Node)
		if err != nil {
			return formatter.Fail(ErrCodeInvalidFlag, ExitCommandError, "invalid --node", err)
		}
		var d int
		if opts.Order == 0 {
			d, err = h.Degree(n)
		} else {
			d, err = h.DegreeOfOrder(n, opts.Order)
		}
		if err != nil {
			return formatter.Fail(ErrCodeGeneric, ExitFailure, "degree", err)
		}
		rows = []NodeDegree[N]{{Node: n, Degree: d}}
	} else {
		seq := measures.DegreeSequence(h, opts.Order)
		rows = make([]NodeDegree[N], 0, len(seq))
		for _, n := range h.Nodes() {
			rows = append(rows, NodeDegree[N]{Node: n, Degree: seq[n]})
		}
	}

	if formatter.Format == "json" {
		return formatter.Success(rows)
	}
	for _, r := range rows {
		fmt.Fprintf(formatter.Writer, "%v\t%d\n", r.Node, r.Degree)
	}
	return nil
}
