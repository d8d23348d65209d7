// Package dynamics runs random processes over a hypergraph.
package dynamics

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"

	"github.com/roach88/hgx/internal/hypergraph"
	"github.com/roach88/hgx/internal/ident"
)

// TransitionMatrix returns the row-stochastic transition matrix of the
// random walk on h, with rows and columns addressed through the returned
// encoder. Every edge of order k adds k-1 to the weight of each pair of
// its members. Rows of isolated nodes stay zero. An empty hypergraph
// returns a nil matrix.
func TransitionMatrix[N ident.ID](h *hypergraph.Hypergraph[N]) (*mat.Dense, *ident.Encoder[N]) {
	enc := ident.NewEncoder(h.Nodes())
	n := enc.Len()
	if n == 0 {
		return nil, enc
	}

	t := mat.NewDense(n, n, nil)
	for _, edge := range h.Edges() {
		w := float64(len(edge) - 1)
		for i := 0; i < len(edge); i++ {
			for j := i + 1; j < len(edge); j++ {
				u, _ := enc.Transform(edge[i])
				v, _ := enc.Transform(edge[j])
				t.Set(u, v, t.At(u, v)+w)
				t.Set(v, u, t.At(v, u)+w)
			}
		}
	}

	for i := 0; i < n; i++ {
		row := t.RawRowView(i)
		var sum float64
		for _, v := range row {
			sum += v
		}
		if sum == 0 {
			continue
		}
		for j := range row {
			row[j] /= sum
		}
	}
	return t, enc
}

// maxPrealloc bounds the path capacity reserved up front.
const maxPrealloc = 1 << 12

// RandomWalk walks steps transitions from start and returns the visited
// nodes, start included. The walk stops early at a node without
// neighbors.
func RandomWalk[N ident.ID](h *hypergraph.Hypergraph[N], start N, steps int, rng *rand.Rand) ([]N, error) {
	if !h.HasNode(start) {
		return nil, fmt.Errorf("random walk start %v: %w", start, hypergraph.ErrNotFound)
	}
	if steps < 0 {
		return nil, fmt.Errorf("random walk steps %d: %w", steps, hypergraph.ErrInvalidArgument)
	}

	t, enc := TransitionMatrix(h)
	cur, _ := enc.Transform(start)
	path := make([]N, 0, min(steps, maxPrealloc)+1)
	path = append(path, start)

	for s := 0; s < steps; s++ {
		row := t.RawRowView(cur)
		r := rng.Float64()
		next := -1
		var acc float64
		for j, p := range row {
			if p == 0 {
				continue
			}
			acc += p
			next = j
			if r < acc {
				break
			}
		}
		if next < 0 {
			break
		}
		cur = next
		n, _ := enc.InverseTransform(cur)
		path = append(path, n)
	}
	return path, nil
}
