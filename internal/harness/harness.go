package harness

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"gopkg.in/yaml.v3"

	"github.com/roach88/hgx/internal/codec"
	"github.com/roach88/hgx/internal/hypergraph"
	"github.com/roach88/hgx/internal/ident"
)

// OutcomeOK marks a step that succeeded.
const OutcomeOK = "ok"

// TraceEvent records one executed step.
type TraceEvent struct {
	Seq     int    `json:"seq"`
	Op      string `json:"op"`
	Outcome string `json:"outcome"` // OutcomeOK or the error code
	Nodes   int    `json:"nodes"`
	Edges   int    `json:"edges"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every step behaved as expected, every invariant
	// held and every assertion matched.
	Pass bool `json:"pass"`

	// Trace has one event per step, in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains failure messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Final is the *codec.Document of the final hypergraph.
	Final any `json:"final"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Option configures a run.
type Option func(*runConfig)

type runConfig struct {
	logger *slog.Logger
}

// WithLogger sets the logger for step records. Runs are silent by default.
func WithLogger(l *slog.Logger) Option {
	return func(c *runConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// Run executes a scenario and returns the result.
//
// A step that behaves unexpectedly, a broken invariant, or a failed
// assertion is reported in Result.Errors. The returned error is reserved
// for scenarios that cannot be executed at all, such as arguments that
// are not valid node ids.
func Run(scenario *Scenario, opts ...Option) (*Result, error) {
	cfg := runConfig{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&cfg)
	}

	switch scenario.IDs {
	case "", IDsInt:
		return run[int](scenario, cfg)
	case IDsString:
		return run[string](scenario, cfg)
	default:
		return nil, fmt.Errorf("unsupported ids %q", scenario.IDs)
	}
}

// runner holds the hypergraph a scenario mutates. Each step replaces or
// mutates graph in place.
type runner[N ident.ID] struct {
	graph  *hypergraph.Hypergraph[N]
	logger *slog.Logger
}

// plan is a step with its arguments converted to node ids.
type plan[N ident.ID] struct {
	Step
	edges [][]N
	edge  []N
	nodes []N
	node  N
}

func run[N ident.ID](scenario *Scenario, cfg runConfig) (*Result, error) {
	plans := make([]plan[N], len(scenario.Steps))
	for i, st := range scenario.Steps {
		p, err := compileStep[N](st)
		if err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i, st.Op, err)
		}
		plans[i] = p
	}

	empty, err := hypergraph.New[N](nil, false, nil, hypergraph.WithMetrics(false), hypergraph.WithLogger(cfg.logger))
	if err != nil {
		return nil, fmt.Errorf("create hypergraph: %w", err)
	}
	r := &runner[N]{graph: empty, logger: cfg.logger}

	result := NewResult()
	for i, p := range plans {
		stepErr := r.apply(p)

		outcome := OutcomeOK
		if stepErr != nil {
			outcome = errorCode(stepErr)
		}
		result.Trace = append(result.Trace, TraceEvent{
			Seq:     i + 1,
			Op:      p.Op,
			Outcome: outcome,
			Nodes:   r.graph.NumNodes(),
			Edges:   r.graph.NumEdges(),
		})

		switch {
		case p.ExpectError == "" && stepErr != nil:
			result.AddError(fmt.Sprintf("step %d (%s): unexpected error: %v", i, p.Op, stepErr))
		case p.ExpectError != "" && stepErr == nil:
			result.AddError(fmt.Sprintf("step %d (%s): expected %s, got success", i, p.Op, p.ExpectError))
		case p.ExpectError != "" && outcome != p.ExpectError:
			result.AddError(fmt.Sprintf("step %d (%s): expected %s, got %s: %v", i, p.Op, p.ExpectError, outcome, stepErr))
		}

		if err := r.graph.CheckInvariants(); err != nil {
			result.AddError(fmt.Sprintf("step %d (%s): invariant violated: %v", i, p.Op, err))
		}

		r.logger.Debug("step completed",
			"step", i,
			"op", p.Op,
			"outcome", outcome,
			"nodes", r.graph.NumNodes(),
			"edges", r.graph.NumEdges(),
		)
	}

	for _, msg := range evaluateAssertions(r.graph, scenario.Assertions, result.Trace) {
		result.AddError(msg)
	}
	result.Final = codec.FromHypergraph(r.graph)
	return result, nil
}

func compileStep[N ident.ID](st Step) (plan[N], error) {
	p := plan[N]{Step: st}
	var err error
	if st.Edges != nil {
		if p.edges, err = convert[[][]N](st.Edges); err != nil {
			return p, fmt.Errorf("edges: %w", err)
		}
	}
	if st.Edge != nil {
		if p.edge, err = convert[[]N](st.Edge); err != nil {
			return p, fmt.Errorf("edge: %w", err)
		}
	}
	if st.Nodes != nil {
		if p.nodes, err = convert[[]N](st.Nodes); err != nil {
			return p, fmt.Errorf("nodes: %w", err)
		}
	}
	if st.Node != nil {
		if p.node, err = convert[N](st.Node); err != nil {
			return p, fmt.Errorf("node: %w", err)
		}
	}
	return p, nil
}

func (r *runner[N]) apply(p plan[N]) error {
	h := r.graph
	switch p.Op {
	case OpNew:
		weights := p.Weights
		if !p.Weighted {
			weights = nil
		}
		g, err := hypergraph.New(p.edges, p.Weighted, weights, hypergraph.WithMetrics(false), hypergraph.WithLogger(r.logger))
		if err != nil {
			return err
		}
		r.graph = g
		return nil
	case OpAddNode:
		return h.AddNode(p.node, p.Meta)
	case OpAddNodes:
		return h.AddNodes(p.nodes)
	case OpAddEdges:
		metas := make([]hypergraph.Meta, len(p.Metas))
		for i, m := range p.Metas {
			metas[i] = m
		}
		return h.AddEdges(p.edges, p.Weights, metas...)
	case OpSetWeight:
		return h.SetWeight(p.edge, *p.Weight)
	case OpRemoveEdge:
		return h.RemoveEdge(p.edge)
	case OpRemoveEdges:
		return h.RemoveEdges(p.edges)
	case OpRemoveNode:
		return h.RemoveNode(p.node, p.KeepEdges)
	case OpRemoveNodes:
		return h.RemoveNodes(p.nodes, p.KeepEdges)
	case OpSubgraphByOrders:
		r.graph = h.SubhypergraphByOrders(p.Orders, p.KeepNodes)
		return nil
	default:
		return fmt.Errorf("unknown op %q", p.Op)
	}
}

// errorCode returns the hypergraph error code of err, or "ERROR" for
// anything else.
func errorCode(err error) string {
	var he *hypergraph.Error
	if errors.As(err, &he) {
		return string(he.Code)
	}
	return "ERROR"
}

// convert re-decodes a YAML-parsed value into T, so that one scenario
// format serves every node id type.
func convert[T any](v any) (T, error) {
	var out T
	data, err := yaml.Marshal(v)
	if err != nil {
		return out, err
	}
	if err := yaml.Unmarshal(data, &out); err != nil {
		return out, err
	}
	return out, nil
}
