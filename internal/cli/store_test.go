package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/hgx/internal/store"
	"github.com/roach88/hgx/internal/testutil"
)

func TestSaveLoadSQLite(t *testing.T) {
	in := writeGraphFile(t, "sample.json", testutil.NewWeightedSample(t))
	db := filepath.Join(t.TempDir(), "graphs.db")

	out, _, err := execute(t, "save", in, "--name", "sample", "--db", db, "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   SaveResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "sample", resp.Data.Name)
	assert.Equal(t, BackendSQLite, resp.Data.Backend)
	assert.NotEmpty(t, resp.Data.ID)
	assert.Equal(t, 8, resp.Data.Nodes)
	assert.Equal(t, 5, resp.Data.Edges)

	outPath := filepath.Join(t.TempDir(), "loaded.yaml")
	_, _, err = execute(t, "load", "--name", "sample", "--db", db, "-o", outPath)
	require.NoError(t, err)

	h := readGraphFile[int](t, outPath)
	assert.Equal(t, testutil.NewWeightedSample(t).String(), h.String())
	w, err := h.Weight([]int{2, 3})
	require.NoError(t, err)
	assert.Equal(t, 2.0, w)
}

func TestSaveLoadBadger(t *testing.T) {
	in := writeGraphFile(t, "strings.json", testutil.NewHypergraph(t, [][]string{{"a", "b"}, {"b", "c", "d"}}))
	dir := filepath.Join(t.TempDir(), "snaps")

	out, _, err := execute(t, "save", in, "--ids", "string", "--name", "s", "--backend", "badger", "--db", dir)
	require.NoError(t, err)
	assert.Equal(t, "✓ Saved s (4 nodes, 2 edges)\n", out)

	outPath := filepath.Join(t.TempDir(), "loaded.json")
	_, _, err = execute(t, "load", "--ids", "string", "--name", "s", "--backend", "badger", "--db", dir, "-o", outPath)
	require.NoError(t, err)
	h := readGraphFile[string](t, outPath)
	testutil.RequireEdges(t, h, [][]string{{"a", "b"}, {"b", "c", "d"}})

	out, _, err = execute(t, "list", "--backend", "badger", "--db", dir)
	require.NoError(t, err)
	assert.Equal(t, "s\n", out)
}

func TestSaveUsesEnvDB(t *testing.T) {
	db := filepath.Join(t.TempDir(), "env.db")
	t.Setenv(EnvDB, db)

	_, _, err := execute(t, "save", sampleFile(t), "--name", "from-env")
	require.NoError(t, err)

	s, err := store.Open(db)
	require.NoError(t, err)
	defer s.Close()
	graphs, err := s.List(t.Context())
	require.NoError(t, err)
	require.Len(t, graphs, 1)
	assert.Equal(t, "from-env", graphs[0].Name)
}

func TestLoadNotFound(t *testing.T) {
	db := filepath.Join(t.TempDir(), "graphs.db")

	out, _, err := execute(t, "load", "--name", "nope", "--db", db)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E005]")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestLoadIDKindMismatch(t *testing.T) {
	db := filepath.Join(t.TempDir(), "graphs.db")
	_, _, err := execute(t, "save", sampleFile(t), "--name", "ints", "--db", db)
	require.NoError(t, err)

	out, _, err := execute(t, "load", "--ids", "string", "--name", "ints", "--db", db)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "stores int ids")
}

func TestListAndDeleteSQLite(t *testing.T) {
	db := filepath.Join(t.TempDir(), "graphs.db")
	in := sampleFile(t)

	for _, name := range []string{"zeta", "alpha"} {
		_, _, err := execute(t, "save", in, "--name", name, "--db", db)
		require.NoError(t, err)
	}

	out, _, err := execute(t, "list", "--db", db)
	require.NoError(t, err)
	assert.Equal(t, "alpha\tint ids\t8 nodes\t5 edges\nzeta\tint ids\t8 nodes\t5 edges\n", out)

	out, _, err = execute(t, "delete", "--name", "alpha", "--db", db)
	require.NoError(t, err)
	assert.Equal(t, "✓ Deleted alpha\n", out)

	out, _, err = execute(t, "list", "--db", db, "--format", "json")
	require.NoError(t, err)
	var resp struct {
		Data []store.GraphInfo `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "zeta", resp.Data[0].Name)

	_, _, err = execute(t, "delete", "--name", "alpha", "--db", db)
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestEdgesContainingCommand(t *testing.T) {
	db := filepath.Join(t.TempDir(), "graphs.db")
	_, _, err := execute(t, "save", sampleFile(t), "--name", "sample", "--db", db)
	require.NoError(t, err)

	out, _, err := execute(t, "edges", "--name", "sample", "--node", "3", "--db", db)
	require.NoError(t, err)
	assert.Equal(t, "[2,3]\n[2,3,5,6]\n[3,4,5,6,8]\n", out)

	_, _, err = execute(t, "edges", "--name", "sample", "--node", "3", "--db", db, "--backend", "badger")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires the sqlite backend")
}

func TestInvalidBackend(t *testing.T) {
	_, _, err := execute(t, "list", "--backend", "postgres", "--db", filepath.Join(t.TempDir(), "x"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), `invalid backend "postgres"`)
}
