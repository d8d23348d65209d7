package cli

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/hgx/internal/ident"
	"github.com/roach88/hgx/internal/measures"
)

// Centrality measures accepted by --measure.
const (
	MeasureCEC          = "cec"
	MeasureZEC          = "zec"
	MeasureSBetweenness = "sbetweenness"
	MeasureSCloseness   = "scloseness"
)

// ValidMeasures lists the accepted --measure values.
var ValidMeasures = []string{MeasureCEC, MeasureZEC, MeasureSBetweenness, MeasureSCloseness}

// CentralityOptions holds flags for the centrality command.
type CentralityOptions struct {
	*RootOptions
	Measure string
	S       float64 // line graph threshold for the s-measures
	Tol     float64 // convergence tolerance for the eigen measures
	MaxIter int     // iteration budget for the eigen measures
}

// Score is one row of centrality output. ID is a node for the eigen
// measures and an edge key for the s-measures.
type Score struct {
	ID    any     `json:"id"`
	Score float64 `json:"score"`
}

// NewCentralityCommand creates the centrality command.
func NewCentralityCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CentralityOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "centrality <file>",
		Short: "Compute centrality scores",
		Long: `Compute centrality scores.

Measures:
  cec           clique eigenvector centrality of nodes (uniform, connected)
  zec           Z-eigenvector centrality of nodes (uniform, connected)
  sbetweenness  betweenness of edges in the s-line graph
  scloseness    closeness of edges in the s-line graph

Node scores are listed by node id, edge scores by edge key.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return byIDs(rootOpts,
				func() error { return runCentrality[int](opts, args[0], cmd) },
				func() error { return runCentrality[string](opts, args[0], cmd) },
			)
		},
	}

	cmd.Flags().StringVar(&opts.Measure, "measure", MeasureCEC, "measure (cec|zec|sbetweenness|scloseness)")
	cmd.Flags().Float64Var(&opts.S, "s", 1, "minimum shared nodes for s-line graph links")
	cmd.Flags().Float64Var(&opts.Tol, "tol", 1e-6, "convergence tolerance")
	cmd.Flags().IntVar(&opts.MaxIter, "max-iter", 1000, "maximum iterations")

	return cmd
}

func runCentrality[N ident.ID](opts *CentralityOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	if !slices.Contains(ValidMeasures, opts.Measure) {
		return formatter.Fail(ErrCodeInvalidFlag, ExitCommandError,
			fmt.Sprintf("invalid measure %q: must be one of %v", opts.Measure, ValidMeasures), nil)
	}

	h, err := loadGraph[N](opts.RootOptions, path)
	if err != nil {
		return failLoad(formatter, err)
	}

	var scores []Score
	switch opts.Measure {
	case MeasureCEC, MeasureZEC:
		var byNode map[N]float64
		if opts.Measure == MeasureCEC {
			byNode, err = measures.CECCentrality(h, opts.Tol, opts.MaxIter)
		} else {
			byNode, err = measures.ZECCentrality(h, opts.Tol, opts.MaxIter)
		}
		if err != nil {
			return failMeasure(formatter, opts.Measure, err)
		}
		for _, n := range h.Nodes() {
			scores = append(scores, Score{ID: n, Score: byNode[n]})
		}
	default:
		var byEdge map[ident.Key]float64
		if opts.Measure == MeasureSBetweenness {
			byEdge = measures.SBetweenness(h, opts.S)
		} else {
			byEdge = measures.SCloseness(h, opts.S)
		}
		for key, v := range byEdge {
			scores = append(scores, Score{ID: key, Score: v})
		}
		slices.SortFunc(scores, func(a, b Score) int {
			return cmp.Compare(a.ID.(ident.Key), b.ID.(ident.Key))
		})
	}

	if formatter.Format == "json" {
		return formatter.Success(scores)
	}
	for _, s := range scores {
		fmt.Fprintf(formatter.Writer, "%v\t%.6f\n", s.ID, s.Score)
	}
	return nil
}

func failMeasure(formatter *OutputFormatter, measure string, err error) error {
	switch {
	case errors.Is(err, measures.ErrNotUniform),
		errors.Is(err, measures.ErrNotConnected),
		errors.Is(err, measures.ErrNoConvergence):
		return formatter.Fail(ErrCodeMeasure, ExitFailure, measure, err)
	}
	return formatter.Fail(ErrCodeGeneric, ExitFailure, measure, err)
}
