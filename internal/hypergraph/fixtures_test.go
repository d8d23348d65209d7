package hypergraph

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var sampleEdges = [][]int{{1, 2}, {2, 3}, {4, 3, 5, 6, 8}, {2, 3, 5, 6}, {7, 4, 6}}

var sampleWeights = []float64{1.0, 2.0, 1.0, 3.0, 1}

func newSample(t *testing.T) *Hypergraph[int] {
	t.Helper()
	h, err := New(sampleEdges, false, nil, WithMetrics(false))
	require.NoError(t, err)
	return h
}

func newWeightedSample(t *testing.T) *Hypergraph[int] {
	t.Helper()
	h, err := New(sampleEdges, true, sampleWeights, WithMetrics(false))
	require.NoError(t, err)
	return h
}

func requireValid(t *testing.T, h interface{ CheckInvariants() error }) {
	t.Helper()
	require.NoError(t, h.CheckInvariants())
}
