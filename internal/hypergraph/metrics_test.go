package hypergraph

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperationMetrics(t *testing.T) {
	success := OperationsTotal.WithLabelValues("RemoveEdge", "success")
	failure := OperationsTotal.WithLabelValues("RemoveEdge", "error")
	beforeOK := testutil.ToFloat64(success)
	beforeErr := testutil.ToFloat64(failure)

	h, err := New([][]int{{1, 2}, {2, 3}}, false, nil)
	require.NoError(t, err)
	require.NoError(t, h.RemoveEdge([]int{1, 2}))
	require.Error(t, h.RemoveEdge([]int{1, 2}))

	assert.Equal(t, beforeOK+1, testutil.ToFloat64(success))
	assert.Equal(t, beforeErr+1, testutil.ToFloat64(failure))
}

func TestCascadeMetrics(t *testing.T) {
	before := testutil.ToFloat64(CascadeRemovedEdges)
	beforeDropped := testutil.ToFloat64(ShrunkEdges.WithLabelValues("dropped"))

	h, err := New([][]int{{1, 2}, {1, 3}, {1, 4, 5}}, false, nil)
	require.NoError(t, err)
	require.NoError(t, h.Clone().RemoveNode(1, false))
	require.NoError(t, h.RemoveNode(1, true))

	assert.Equal(t, before+3, testutil.ToFloat64(CascadeRemovedEdges))
	assert.Equal(t, beforeDropped+2, testutil.ToFloat64(ShrunkEdges.WithLabelValues("dropped")))
}

func TestMetricsDisabled(t *testing.T) {
	c := OperationsTotal.WithLabelValues("SetWeight", "error")
	before := testutil.ToFloat64(c)

	h, err := New([][]int{{1, 2}}, false, nil, WithMetrics(false))
	require.NoError(t, err)
	require.Error(t, h.SetWeight([]int{1, 2}, 2))

	assert.Equal(t, before, testutil.ToFloat64(c))
}
