package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/hgx/internal/codec"
	"github.com/roach88/hgx/internal/hypergraph"
)

// createTestStore creates a new store in a temp dir for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestSnapshots creates an in-memory snapshot store.
func createTestSnapshots(t *testing.T) *Snapshots {
	t.Helper()
	s, err := OpenSnapshots("", true)
	if err != nil {
		t.Fatalf("OpenSnapshots() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// sampleDocument returns the weighted sample graph with some metadata.
func sampleDocument(t *testing.T) *codec.Document[int] {
	t.Helper()
	h, err := hypergraph.New(
		[][]int{{1, 2}, {2, 3}, {4, 3, 5, 6, 8}, {2, 3, 5, 6}, {7, 4, 6}},
		true,
		[]float64{1.0, 2.0, 1.0, 3.0, 1},
		hypergraph.WithMetrics(false),
	)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if err := h.AddNode(3, hypergraph.Meta{"type": "node", "name": "three"}); err != nil {
		t.Fatalf("AddNode() failed: %v", err)
	}
	if err := h.SetEdgeMeta([]int{4, 6, 7}, hypergraph.Meta{"label": "tri"}); err != nil {
		t.Fatalf("SetEdgeMeta() failed: %v", err)
	}
	return codec.FromHypergraph(h)
}
