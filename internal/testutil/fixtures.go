package testutil

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/hgx/internal/hypergraph"
	"github.com/roach88/hgx/internal/ident"
)

// SampleEdges returns the five-edge sample used throughout the tests:
// orders 2, 2, 5, 4 and 3 over nodes 1..8.
func SampleEdges() [][]int {
	return [][]int{{1, 2}, {2, 3}, {4, 3, 5, 6, 8}, {2, 3, 5, 6}, {7, 4, 6}}
}

// SampleWeights returns weights aligned with SampleEdges.
func SampleWeights() []float64 {
	return []float64{1.0, 2.0, 1.0, 3.0, 1}
}

// NewSample builds the unweighted sample hypergraph with metrics off.
func NewSample(t testing.TB) *hypergraph.Hypergraph[int] {
	t.Helper()
	h, err := hypergraph.New(SampleEdges(), false, nil, hypergraph.WithMetrics(false))
	require.NoError(t, err)
	return h
}

// NewWeightedSample builds the weighted sample hypergraph with metrics off.
func NewWeightedSample(t testing.TB) *hypergraph.Hypergraph[int] {
	t.Helper()
	h, err := hypergraph.New(SampleEdges(), true, SampleWeights(), hypergraph.WithMetrics(false))
	require.NoError(t, err)
	return h
}

// NewHypergraph builds a hypergraph from edges with metrics off.
func NewHypergraph[N ident.ID](t testing.TB, edges [][]N) *hypergraph.Hypergraph[N] {
	t.Helper()
	h, err := hypergraph.New(edges, false, nil, hypergraph.WithMetrics(false))
	require.NoError(t, err)
	return h
}

// RequireInvariants fails the test if any synchronized view of h has
// drifted from the others.
func RequireInvariants[N ident.ID](t testing.TB, h *hypergraph.Hypergraph[N]) {
	t.Helper()
	require.NoError(t, h.CheckInvariants())
}

// RequireEdges asserts that h holds exactly want. Each edge in want may
// be given in any member order.
func RequireEdges[N ident.ID](t testing.TB, h *hypergraph.Hypergraph[N], want [][]N) {
	t.Helper()
	canon := make([][]N, len(want))
	for i, e := range want {
		c := slices.Clone(e)
		slices.Sort(c)
		canon[i] = slices.Compact(c)
	}
	slices.SortFunc(canon, func(a, b []N) int { return slices.Compare(a, b) })
	require.Equal(t, canon, h.Edges())
}
