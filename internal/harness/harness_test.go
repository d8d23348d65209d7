package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/hgx/internal/codec"
)

func TestRun_MinimalScenario(t *testing.T) {
	scenario := &Scenario{
		Name:        "minimal",
		Description: "Minimal test scenario",
		Steps: []Step{
			{Op: OpNew, Edges: [][]any{{1, 2}, {2, 3}}},
		},
		Assertions: []Assertion{
			{Type: AssertNumEdges, Expect: 2},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.True(t, result.Pass)
	assert.Empty(t, result.Errors)
	require.Len(t, result.Trace, 1)
	assert.Equal(t, TraceEvent{Seq: 1, Op: OpNew, Outcome: OutcomeOK, Nodes: 3, Edges: 2}, result.Trace[0])

	doc, ok := result.Final.(*codec.Document[int])
	require.True(t, ok)
	assert.Len(t, doc.Edges, 2)
}

func TestRun_StartsEmpty(t *testing.T) {
	scenario := &Scenario{
		Name:        "empty",
		Description: "Steps run against an empty unweighted hypergraph",
		Steps: []Step{
			{Op: OpAddEdges, Edges: [][]any{{1, 2}}},
			{Op: OpAddNode, Node: 5, Meta: map[string]any{"k": "v"}},
		},
		Assertions: []Assertion{
			{Type: AssertNodes, Expect: []any{5, 2, 1}},
			{Type: AssertWeight, Edge: []any{2, 1}, Expect: 1.0},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, result.Errors)
}

func TestRun_UnexpectedErrorFails(t *testing.T) {
	scenario := &Scenario{
		Name:        "unexpected",
		Description: "An error without expect_error fails the run",
		Steps: []Step{
			{Op: OpRemoveEdge, Edge: []any{1, 2}},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "unexpected error")
	assert.Equal(t, "NOT_FOUND", result.Trace[0].Outcome)
}

func TestRun_ExpectedErrorMismatch(t *testing.T) {
	scenario := &Scenario{
		Name:        "mismatch",
		Description: "expect_error must match the actual code",
		Steps: []Step{
			{Op: OpNew, Edges: [][]any{{1, 2}}},
			{Op: OpRemoveNode, Node: 1, ExpectError: "INVALID_EDGE"},
			{Op: OpRemoveNode, Node: 2, ExpectError: "NOT_FOUND"},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0], "expected INVALID_EDGE, got success")
	assert.Contains(t, result.Errors[1], "expected NOT_FOUND, got success")
}

func TestRun_DimensionMismatch(t *testing.T) {
	scenario := &Scenario{
		Name:        "dimension",
		Description: "Weighted hypergraphs need one weight per edge",
		Steps: []Step{
			{Op: OpNew, Weighted: true, Edges: [][]any{{1, 2}}, Weights: []float64{2}},
			{Op: OpAddEdges, Edges: [][]any{{2, 3}, {3, 4}}, Weights: []float64{1}, ExpectError: "DIMENSION_MISMATCH"},
			{Op: OpSetWeight, Edge: []any{1, 2}, Weight: ptr(7.5)},
		},
		Assertions: []Assertion{
			{Type: AssertNumEdges, Expect: 1},
			{Type: AssertWeight, Edge: []any{1, 2}, Expect: 7.5},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, result.Errors)
}

func TestRun_SubgraphReplacesCurrent(t *testing.T) {
	scenario := &Scenario{
		Name:        "subgraph",
		Description: "subgraph_by_orders replaces the current hypergraph",
		Steps: []Step{
			{Op: OpNew, Edges: [][]any{{1, 2}, {1, 2, 3}}},
			{Op: OpSubgraphByOrders, Orders: []int{3}, KeepNodes: false},
			{Op: OpRemoveNodes, Nodes: []any{1, 2}, KeepEdges: true},
		},
		Assertions: []Assertion{
			{Type: AssertNodes, Expect: []any{3}},
			{Type: AssertEdges, Expect: []any{}},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, result.Errors)
	assert.Equal(t, TraceEvent{Seq: 2, Op: OpSubgraphByOrders, Outcome: OutcomeOK, Nodes: 3, Edges: 1}, result.Trace[1])
}

func TestRun_StringIDs(t *testing.T) {
	scenario := &Scenario{
		Name:        "strings",
		Description: "String node ids",
		IDs:         IDsString,
		Steps: []Step{
			{Op: OpNew, Edges: [][]any{{"b", "a"}, {"c", "a", "b"}}},
			{Op: OpRemoveEdges, Edges: [][]any{{"a", "b"}}},
		},
		Assertions: []Assertion{
			{Type: AssertEdges, Expect: []any{[]any{"c", "b", "a"}}},
			{Type: AssertDegree, Node: "c", Expect: 1},
			{Type: AssertOrder, Edge: []any{"a", "b", "c"}, Expect: 3},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, result.Errors)

	_, ok := result.Final.(*codec.Document[string])
	assert.True(t, ok)
}

func TestRun_BadArgumentIsExecutionError(t *testing.T) {
	scenario := &Scenario{
		Name:        "bad",
		Description: "Arguments that are not node ids abort the run",
		Steps: []Step{
			{Op: OpAddNode, Node: map[string]any{"not": "an id"}},
		},
	}

	_, err := Run(scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "step 0 (add_node)")
}

func TestRun_FailedAssertionsReportTrace(t *testing.T) {
	scenario := &Scenario{
		Name:        "failing",
		Description: "Assertion failures carry the step trace",
		Steps: []Step{
			{Op: OpNew, Edges: [][]any{{1, 2}}},
		},
		Assertions: []Assertion{
			{Type: AssertDegree, Node: 1, Expect: 3},
			{Type: AssertDegree, Node: 9, Expect: 0},
			{Type: AssertOrder, Edge: []any{1, 2}, Expect: 2},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0], "Assertion failed: degree")
	assert.Contains(t, result.Errors[0], "[1] new -> ok (2 nodes, 1 edges)")
	assert.Contains(t, result.Errors[1], "not found")
}

func TestRun_TestdataScenarios(t *testing.T) {
	files, err := FindScenarios("testdata/scenarios", "")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			scenario, err := LoadScenario(file)
			require.NoError(t, err)

			result, err := Run(scenario)
			require.NoError(t, err)
			assert.True(t, result.Pass, result.Errors)
		})
	}
}

func TestRunWithGolden(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/shrink_collision.yaml")
	require.NoError(t, err)

	result, err := RunWithGolden(t, scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, result.Errors)
}

func TestMarshalSnapshot_Deterministic(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/subgraph_orders.yaml")
	require.NoError(t, err)

	a, err := Run(scenario)
	require.NoError(t, err)
	b, err := Run(scenario)
	require.NoError(t, err)

	da, err := MarshalSnapshot(scenario.Name, a)
	require.NoError(t, err)
	db, err := MarshalSnapshot(scenario.Name, b)
	require.NoError(t, err)
	assert.Equal(t, string(da), string(db))
}

func TestRunSuite(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	bad := filepath.Join(dir, "bad.yaml")
	broken := filepath.Join(dir, "broken.yml")

	require.NoError(t, os.WriteFile(good, []byte(`
name: good
description: passes
steps:
  - op: new
    edges: [[1, 2]]
assertions:
  - type: num_edges
    expect: 1
`), 0644))
	require.NoError(t, os.WriteFile(bad, []byte(`
name: bad
description: fails an assertion
steps:
  - op: new
    edges: [[1, 2]]
assertions:
  - type: num_edges
    expect: 4
`), 0644))
	require.NoError(t, os.WriteFile(broken, []byte("name: [unclosed"), 0644))

	files, err := FindScenarios(dir, "")
	require.NoError(t, err)
	require.Equal(t, []string{bad, broken, good}, files)

	suite := RunSuite(files, SuiteOptions{})
	assert.Equal(t, 3, suite.Total)
	assert.Equal(t, 1, suite.Passed)
	assert.Equal(t, 2, suite.Failed)
	assert.Equal(t, "broken.yml", suite.Scenarios[1].Name)
	assert.Contains(t, suite.Scenarios[1].Errors[0], "failed to load scenario")

	// Update writes golden files; a second plain run compares against them.
	suite = RunSuite([]string{good}, SuiteOptions{Update: true})
	require.Equal(t, 1, suite.Passed)
	assert.Equal(t, "updated", suite.Scenarios[0].Golden)
	assert.FileExists(t, GoldenPath(good))

	suite = RunSuite([]string{good}, SuiteOptions{})
	require.Equal(t, 1, suite.Passed)
	assert.Equal(t, "match", suite.Scenarios[0].Golden)

	require.NoError(t, os.WriteFile(GoldenPath(good), []byte("{}\n"), 0644))
	suite = RunSuite([]string{good}, SuiteOptions{})
	assert.Equal(t, 1, suite.Failed)
	assert.Contains(t, suite.Scenarios[0].Errors[0], "does not match golden file")
}

func TestFindScenarios_Filter(t *testing.T) {
	files, err := FindScenarios("testdata/scenarios", "shrink*")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join("testdata", "scenarios", "shrink_collision.yaml")}, files)

	_, err = FindScenarios("testdata/scenarios", "[")
	assert.Error(t, err)
}

func TestGoldenPath(t *testing.T) {
	assert.Equal(t, filepath.Join("s", "golden", "x.golden"), GoldenPath(filepath.Join("s", "x.yaml")))
}

func ptr(f float64) *float64 { return &f }
