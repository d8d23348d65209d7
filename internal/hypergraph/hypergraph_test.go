package hypergraph

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/hgx/internal/ident"
)

func TestNewSample(t *testing.T) {
	h := newSample(t)
	requireValid(t, h)

	assert.Equal(t, 8, h.NumNodes())
	assert.Equal(t, 5, h.NumEdges())
	assert.False(t, h.IsWeighted())
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8}, h.Nodes())
	assert.Equal(t, [][]int{{1, 2}, {2, 3}, {2, 3, 5, 6}, {3, 4, 5, 6, 8}, {4, 6, 7}}, h.Edges())
}

func TestNewEmpty(t *testing.T) {
	h, err := New[string](nil, false, nil)
	require.NoError(t, err)
	requireValid(t, h)
	assert.Zero(t, h.NumNodes())
	assert.Zero(t, h.NumEdges())
	assert.Empty(t, h.Nodes())
	assert.Empty(t, h.Edges())
}

func TestNewWeighted(t *testing.T) {
	h := newWeightedSample(t)
	requireValid(t, h)

	w, err := h.Weight([]int{6, 5, 3, 2})
	require.NoError(t, err)
	assert.Equal(t, 3.0, w)
}

func TestNewUnweightedIgnoresWeights(t *testing.T) {
	h, err := New([][]int{{1, 2}}, false, []float64{7, 8, 9}, WithMetrics(false))
	require.NoError(t, err)

	w, err := h.Weight([]int{1, 2})
	require.NoError(t, err)
	assert.Equal(t, 1.0, w)
}

func TestNewDuplicatesCollapseLastWeightWins(t *testing.T) {
	h, err := New([][]int{{1, 2}, {2, 1}, {1, 2, 2}}, true, []float64{1, 2, 5}, WithMetrics(false))
	require.NoError(t, err)
	requireValid(t, h)

	assert.Equal(t, 1, h.NumEdges())
	w, err := h.Weight([]int{1, 2})
	require.NoError(t, err)
	assert.Equal(t, 5.0, w)
}

func TestNewDimensionMismatch(t *testing.T) {
	h, err := New(sampleEdges, true, []float64{1, 2}, WithMetrics(false))
	require.Error(t, err)
	assert.Nil(t, h)
	assert.True(t, IsDimensionMismatch(err))
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestNewInvalidEdge(t *testing.T) {
	h, err := New([][]int{{1, 2}, {3, 3}}, false, nil, WithMetrics(false))
	require.Error(t, err)
	assert.Nil(t, h)
	assert.True(t, IsInvalidEdge(err))
	assert.ErrorIs(t, err, ident.ErrTooFewMembers)

	var he *Error
	require.True(t, errors.As(err, &he))
	assert.Equal(t, "New", he.Op)
	assert.Equal(t, "1", he.Details["index"])
}

func TestNewInvalidStringID(t *testing.T) {
	_, err := New([][]string{{"a", "\xff"}}, false, nil, WithMetrics(false))
	require.Error(t, err)
	assert.True(t, IsInvalidArgument(err))
}

func TestString(t *testing.T) {
	h := newSample(t)
	expected := "Hypergraph with 8 nodes and 5 edges (unweighted).\n" +
		"Distribution of hyperedge orders: {2: 2, 3: 1, 4: 1, 5: 1}"
	assert.Equal(t, expected, h.String())

	w := newWeightedSample(t)
	assert.Contains(t, w.String(), "(weighted).")

	empty, err := New[int](nil, true, nil)
	require.NoError(t, err)
	assert.Equal(t, "Hypergraph with 0 nodes and 0 edges (weighted).\nDistribution of hyperedge orders: {}", empty.String())
}

func TestCheckInvariantsDetectsCorruption(t *testing.T) {
	h := newSample(t)
	delete(h.weights, ident.KeyOf([]int{1, 2}))
	assert.Error(t, h.CheckInvariants())

	h = newSample(t)
	delete(h.nodes, 8)
	assert.Error(t, h.CheckInvariants())

	h = newSample(t)
	h.index.unlink(ident.KeyOf([]int{2, 3}), []int{3})
	assert.Error(t, h.CheckInvariants())
}
