package harness

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/roach88/hgx/internal/hypergraph"
	"github.com/roach88/hgx/internal/ident"
)

// weightTolerance absorbs float formatting noise in YAML weights.
const weightTolerance = 1e-9

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Steps that led to the final state
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nSteps:\n")
		for _, event := range e.Trace {
			fmt.Fprintf(&buf, "  [%d] %s -> %s (%d nodes, %d edges)\n",
				event.Seq, event.Op, event.Outcome, event.Nodes, event.Edges)
		}
	}
	return buf.String()
}

// evaluateAssertions checks every assertion against h and returns one
// message per failure.
func evaluateAssertions[N ident.ID](h *hypergraph.Hypergraph[N], assertions []Assertion, trace []TraceEvent) []string {
	var errs []string
	for i, a := range assertions {
		if err := evaluate(h, a, trace); err != nil {
			errs = append(errs, fmt.Sprintf("assertion[%d]: %v", i, err))
		}
	}
	return errs
}

func evaluate[N ident.ID](h *hypergraph.Hypergraph[N], a Assertion, trace []TraceEvent) error {
	fail := func(expected, actual any) error {
		return &AssertionError{
			Type:     a.Type,
			Expected: fmt.Sprint(expected),
			Actual:   fmt.Sprint(actual),
			Trace:    trace,
		}
	}

	switch a.Type {
	case AssertNodes:
		want, err := convert[[]N](a.Expect)
		if err != nil {
			return fmt.Errorf("nodes: %w", err)
		}
		slices.Sort(want)
		if got := h.Nodes(); !slices.Equal(got, want) {
			return fail(want, got)
		}

	case AssertEdges:
		want, err := convert[[][]N](a.Expect)
		if err != nil {
			return fmt.Errorf("edges: %w", err)
		}
		want = canonicalEdges(want)
		got := h.Edges()
		if !slices.EqualFunc(got, want, func(x, y []N) bool { return slices.Equal(x, y) }) {
			return fail(want, got)
		}

	case AssertNumNodes, AssertNumEdges:
		want, err := convert[int](a.Expect)
		if err != nil {
			return fmt.Errorf("%s: %w", a.Type, err)
		}
		got := h.NumNodes()
		if a.Type == AssertNumEdges {
			got = h.NumEdges()
		}
		if got != want {
			return fail(want, got)
		}

	case AssertDegree:
		node, err := convert[N](a.Node)
		if err != nil {
			return fmt.Errorf("degree node: %w", err)
		}
		want, err := convert[int](a.Expect)
		if err != nil {
			return fmt.Errorf("degree: %w", err)
		}
		got, err := h.Degree(node)
		if err != nil {
			return fail(fmt.Sprintf("degree(%v) = %d", node, want), err)
		}
		if got != want {
			return fail(fmt.Sprintf("degree(%v) = %d", node, want), got)
		}

	case AssertOrder:
		edge, err := convert[[]N](a.Edge)
		if err != nil {
			return fmt.Errorf("order edge: %w", err)
		}
		want, err := convert[int](a.Expect)
		if err != nil {
			return fmt.Errorf("order: %w", err)
		}
		got, err := h.Order(edge)
		if err != nil {
			return fail(fmt.Sprintf("order(%v) = %d", edge, want), err)
		}
		if got != want {
			return fail(fmt.Sprintf("order(%v) = %d", edge, want), got)
		}

	case AssertWeight:
		edge, err := convert[[]N](a.Edge)
		if err != nil {
			return fmt.Errorf("weight edge: %w", err)
		}
		want, err := convert[float64](a.Expect)
		if err != nil {
			return fmt.Errorf("weight: %w", err)
		}
		got, err := h.Weight(edge)
		if err != nil {
			return fail(fmt.Sprintf("weight(%v) = %g", edge, want), err)
		}
		if math.Abs(got-want) > weightTolerance {
			return fail(fmt.Sprintf("weight(%v) = %g", edge, want), got)
		}

	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
	return nil
}

// canonicalEdges sorts and de-duplicates each member list, then sorts
// the lists, matching the order of Hypergraph.Edges.
func canonicalEdges[N ident.ID](edges [][]N) [][]N {
	out := make([][]N, len(edges))
	for i, e := range edges {
		c := slices.Clone(e)
		slices.Sort(c)
		out[i] = slices.Compact(c)
	}
	slices.SortFunc(out, func(a, b []N) int { return slices.Compare(a, b) })
	return out
}
