package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/hgx/internal/codec"
	"github.com/roach88/hgx/internal/hypergraph"
	"github.com/roach88/hgx/internal/ident"
	"github.com/roach88/hgx/internal/testutil"
)

// execute runs the root command with args and returns stdout, stderr
// and the command error.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root := NewRootCommand()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

// writeGraphFile writes h to name inside a temp dir and returns the path.
func writeGraphFile[N ident.ID](t *testing.T, name string, h *hypergraph.Hypergraph[N]) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, codec.WriteFile(path, codec.FromHypergraph(h)))
	return path
}

// sampleFile writes the unweighted sample hypergraph as JSON.
func sampleFile(t *testing.T) string {
	t.Helper()
	return writeGraphFile(t, "sample.json", testutil.NewSample(t))
}

// readGraphFile decodes the file at path.
func readGraphFile[N ident.ID](t *testing.T, path string) *hypergraph.Hypergraph[N] {
	t.Helper()
	doc, err := codec.ReadFile[N](path)
	require.NoError(t, err)
	h, err := doc.Build(hypergraph.WithMetrics(false))
	require.NoError(t, err)
	return h
}
