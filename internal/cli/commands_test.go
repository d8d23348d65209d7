package cli

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/hgx/internal/codec"
	"github.com/roach88/hgx/internal/testutil"
)

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestInfoText(t *testing.T) {
	out, _, err := execute(t, "info", sampleFile(t))
	require.NoError(t, err)
	newGoldie(t).Assert(t, "info_text", []byte(out))
}

func TestInfoJSON(t *testing.T) {
	out, _, err := execute(t, "info", sampleFile(t), "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   InfoResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, InfoResult{
		Nodes:      8,
		Edges:      5,
		Uniform:    false,
		Connected:  true,
		MaxOrder:   5,
		Orders:     map[int]int{2: 2, 3: 1, 4: 1, 5: 1},
		Components: 1,
	}, resp.Data)
}

func TestInfoStringIDs(t *testing.T) {
	h := testutil.NewHypergraph(t, [][]string{{"a", "b"}, {"c", "d"}})
	path := writeGraphFile(t, "strings.yaml", h)

	out, _, err := execute(t, "info", path, "--ids", "string", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"components":2`)
	assert.Contains(t, out, `"uniform":true`)
}

func TestInfoMissingFile(t *testing.T) {
	out, _, err := execute(t, "info", filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E005]: file not found")
}

func TestInfoInvalidEdge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"weighted":false,"edges":[{"members":[1,1]}]}`), 0644))

	out, _, err := execute(t, "info", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Error [E102]")
}

func TestInfoUnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "net.txt")
	require.NoError(t, os.WriteFile(path, []byte("1 2"), 0644))

	out, _, err := execute(t, "info", path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E004]")
}

func TestDegreeText(t *testing.T) {
	out, _, err := execute(t, "degree", sampleFile(t))
	require.NoError(t, err)
	newGoldie(t).Assert(t, "degree_text", []byte(out))
}

func TestDegreeByOrder(t *testing.T) {
	out, _, err := execute(t, "degree", sampleFile(t), "--order", "2", "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Data []NodeDegree[int] `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Data, 8)
	assert.Equal(t, NodeDegree[int]{Node: 2, Degree: 2}, resp.Data[1])
	assert.Equal(t, NodeDegree[int]{Node: 8, Degree: 0}, resp.Data[7])
}

func TestDegreeSingleNode(t *testing.T) {
	out, _, err := execute(t, "degree", sampleFile(t), "--node", "6")
	require.NoError(t, err)
	assert.Equal(t, "6\t3\n", out)

	out, _, err = execute(t, "degree", sampleFile(t), "--node", "42")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Error [E103]")

	_, _, err = execute(t, "degree", sampleFile(t), "--node", "x")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestSubgraphByOrders(t *testing.T) {
	in := sampleFile(t)
	outPath := filepath.Join(t.TempDir(), "pairs.yaml")

	out, _, err := execute(t, "subgraph", in, "--orders", "2", "-o", outPath)
	require.NoError(t, err)
	assert.Equal(t, "✓ Wrote 3 nodes and 2 edges to "+outPath+"\n", out)

	h := readGraphFile[int](t, outPath)
	testutil.RequireEdges(t, h, [][]int{{1, 2}, {2, 3}})

	_, _, err = execute(t, "subgraph", in, "--orders", "2", "--keep-nodes", "-o", outPath)
	require.NoError(t, err)
	h = readGraphFile[int](t, outPath)
	assert.Equal(t, 8, h.NumNodes())
	assert.Equal(t, 2, h.NumEdges())
}

func TestSubgraphByNodesToStdout(t *testing.T) {
	out, _, err := execute(t, "subgraph", sampleFile(t), "--nodes", "2,3,5,6")
	require.NoError(t, err)

	doc, err := codec.Decode[int](strings.NewReader(out), codec.FormatJSON)
	require.NoError(t, err)
	h, err := doc.Build()
	require.NoError(t, err)
	testutil.RequireEdges(t, h, [][]int{{2, 3}, {2, 3, 5, 6}})
}

func TestSubgraphLargest(t *testing.T) {
	h := testutil.NewHypergraph(t, [][]int{{1, 2}, {2, 3}, {10, 11}})
	in := writeGraphFile(t, "split.json", h)

	out, _, err := execute(t, "subgraph", in, "--largest", "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Data codec.Document[int] `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Data.Edges, 2)
	assert.Equal(t, []int{1, 2}, resp.Data.Edges[0].Members)
}

func TestSubgraphSelectorRequired(t *testing.T) {
	in := sampleFile(t)

	_, _, err := execute(t, "subgraph", in)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	_, _, err = execute(t, "subgraph", in, "--orders", "2", "--largest")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one of")
}

func TestSubgraphUnknownNode(t *testing.T) {
	out, _, err := execute(t, "subgraph", sampleFile(t), "--nodes", "1,99")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Error [E103]")
}

func TestConvertFormats(t *testing.T) {
	h := testutil.NewWeightedSample(t)
	in := writeGraphFile(t, "sample.json", h)
	dir := t.TempDir()

	for _, name := range []string{"sample.yaml", "sample.msgpack"} {
		t.Run(name, func(t *testing.T) {
			outPath := filepath.Join(dir, name)
			_, _, err := execute(t, "convert", in, outPath)
			require.NoError(t, err)

			got := readGraphFile[int](t, outPath)
			assert.Equal(t, h.String(), got.String())
			w, err := got.Weight([]int{2, 3, 5, 6})
			require.NoError(t, err)
			assert.Equal(t, 3.0, w)
		})
	}
}

func TestConvertToCUEIsRejected(t *testing.T) {
	out, _, err := execute(t, "convert", sampleFile(t), filepath.Join(t.TempDir(), "out.cue"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E007]")
}

func TestGenerateDeterministic(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.json")
	b := filepath.Join(dir, "b.json")

	_, _, err := execute(t, "generate", "--nodes", "20", "--edges", "2:15,3:5", "--seed", "7", "-o", a)
	require.NoError(t, err)
	_, _, err = execute(t, "generate", "--nodes", "20", "--edges", "2:15,3:5", "--seed", "7", "-o", b)
	require.NoError(t, err)

	da, err := os.ReadFile(a)
	require.NoError(t, err)
	db, err := os.ReadFile(b)
	require.NoError(t, err)
	assert.Equal(t, string(da), string(db))

	h := readGraphFile[int](t, a)
	assert.Equal(t, 20, h.NumNodes())
	assert.LessOrEqual(t, h.NumEdgesOfOrder(2, false), 15)
	assert.LessOrEqual(t, h.NumEdgesOfOrder(3, false), 5)
	assert.Zero(t, h.NumEdgesOfOrder(4, false))
}

func TestGenerateGrow(t *testing.T) {
	in := sampleFile(t)
	outPath := filepath.Join(t.TempDir(), "grown.json")

	_, _, err := execute(t, "generate", "--from", in, "--edges", "4:3", "-o", outPath)
	require.NoError(t, err)

	h := readGraphFile[int](t, outPath)
	assert.Equal(t, 8, h.NumEdges())
	assert.Equal(t, 4, h.NumEdgesOfOrder(4, false))
}

func TestGenerateBadEdges(t *testing.T) {
	for _, arg := range []string{"2", "x:1", "2:-1", "2:y"} {
		_, _, err := execute(t, "generate", "--nodes", "5", "--edges", arg)
		require.Error(t, err, arg)
		assert.Equal(t, ExitCommandError, GetExitCode(err), arg)
	}

	// order larger than the node count
	_, _, err := execute(t, "generate", "--nodes", "3", "--edges", "4:1")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestParseEdgeCounts(t *testing.T) {
	got, err := parseEdgeCounts(" 2:10, 3:5,2:1")
	require.NoError(t, err)
	assert.Equal(t, map[int]int{2: 11, 3: 5}, got)

	got, err = parseEdgeCounts("")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCentralityCEC(t *testing.T) {
	h := testutil.NewHypergraph(t, [][]int{{1, 2}, {2, 3}, {1, 3}})
	in := writeGraphFile(t, "triangle.json", h)

	out, _, err := execute(t, "centrality", in, "--measure", "cec", "--tol", "1e-9", "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Data []struct {
			ID    int     `json:"id"`
			Score float64 `json:"score"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Data, 3)
	for i, row := range resp.Data {
		assert.Equal(t, i+1, row.ID)
		assert.InDelta(t, 1/math.Sqrt(3), row.Score, 1e-6)
	}
}

func TestCentralityNotUniform(t *testing.T) {
	out, _, err := execute(t, "centrality", sampleFile(t), "--measure", "zec")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Error [E110]")
}

func TestCentralitySCloseness(t *testing.T) {
	h := testutil.NewHypergraph(t, [][]int{{1, 2}, {2, 3}, {3, 4}})
	in := writeGraphFile(t, "chain.json", h)

	out, _, err := execute(t, "centrality", in, "--measure", "scloseness")
	require.NoError(t, err)
	assert.Equal(t, "[1,2]\t0.666667\n[2,3]\t1.000000\n[3,4]\t0.666667\n", out)
}

func TestCentralityUnknownMeasure(t *testing.T) {
	_, _, err := execute(t, "centrality", sampleFile(t), "--measure", "pagerank")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "invalid measure")
}

func TestWalk(t *testing.T) {
	in := sampleFile(t)

	out, _, err := execute(t, "walk", in, "--start", "1", "--steps", "5", "--seed", "3")
	require.NoError(t, err)
	// node 1 only neighbors node 2
	assert.True(t, strings.HasPrefix(out, "1 -> 2"), out)
	assert.Len(t, strings.Split(strings.TrimSpace(out), " -> "), 6)

	again, _, err := execute(t, "walk", in, "--start", "1", "--steps", "5", "--seed", "3")
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func TestWalkErrors(t *testing.T) {
	in := sampleFile(t)

	out, _, err := execute(t, "walk", in, "--start", "99")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Error [E103]")

	_, _, err = execute(t, "walk", in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "start" not set`)
}
