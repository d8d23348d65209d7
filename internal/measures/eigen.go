package measures

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/roach88/hgx/internal/hypergraph"
	"github.com/roach88/hgx/internal/ident"
)

func requireUniformConnected[N ident.ID](h *hypergraph.Hypergraph[N]) error {
	if !h.IsUniform() {
		return ErrNotUniform
	}
	if !h.IsConnected() {
		return ErrNotConnected
	}
	return nil
}

// CECCentrality returns the clique eigenvector centrality of a uniform,
// connected hypergraph: the dominant eigenvector (unit 2-norm) of the
// clique expansion adjacency matrix, found by power iteration.
func CECCentrality[N ident.ID](h *hypergraph.Hypergraph[N], tol float64, maxIter int) (map[N]float64, error) {
	if err := requireUniformConnected(h); err != nil {
		return nil, err
	}

	enc := ident.NewEncoder(h.Nodes())
	n := enc.Len()
	w := mat.NewDense(n, n, nil)
	for _, edge := range h.Edges() {
		for i := 0; i < len(edge); i++ {
			for j := i + 1; j < len(edge); j++ {
				a, _ := enc.Transform(edge[i])
				b, _ := enc.Transform(edge[j])
				w.Set(a, b, w.At(a, b)+1)
				w.Set(b, a, w.At(b, a)+1)
			}
		}
	}

	x, err := powerIteration(w, tol, maxIter)
	if err != nil {
		return nil, err
	}
	return decode(enc, x), nil
}

// powerIteration finds the dominant eigenvector of w starting from the
// normalized all-ones vector.
func powerIteration(w *mat.Dense, tol float64, maxIter int) (*mat.VecDense, error) {
	n, _ := w.Dims()
	x := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		x.SetVec(i, 1)
	}
	x.ScaleVec(1/mat.Norm(x, 2), x)

	y := mat.NewVecDense(n, nil)
	diff := mat.NewVecDense(n, nil)
	for k := 0; k < maxIter; k++ {
		y.MulVec(w, x)
		norm := mat.Norm(y, 2)
		if norm == 0 {
			return nil, fmt.Errorf("%w: zero vector at iteration %d", ErrNoConvergence, k)
		}
		y.ScaleVec(1/norm, y)
		diff.SubVec(x, y)
		res := mat.Norm(diff, 2)
		x.CopyVec(y)
		if res <= tol {
			return x, nil
		}
	}
	return nil, fmt.Errorf("%w: power iteration after %d iterations", ErrNoConvergence, maxIter)
}

// ZECCentrality returns the Z-eigenvector centrality of a uniform,
// connected hypergraph. Each iteration gives every node the sum, over
// its edges, of the product of the current scores of the edge's
// members, then normalizes to unit sum. The start vector is uniform.
func ZECCentrality[N ident.ID](h *hypergraph.Hypergraph[N], tol float64, maxIter int) (map[N]float64, error) {
	if err := requireUniformConnected(h); err != nil {
		return nil, err
	}

	enc := ident.NewEncoder(h.Nodes())
	n := enc.Len()
	edges := make([][]int, 0, h.NumEdges())
	for _, edge := range h.Edges() {
		idx := make([]int, len(edge))
		for i, m := range edge {
			idx[i], _ = enc.Transform(m)
		}
		edges = append(edges, idx)
	}

	x := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		x.SetVec(i, 1/float64(n))
	}
	next := mat.NewVecDense(n, nil)
	diff := mat.NewVecDense(n, nil)

	for k := 0; k < maxIter; k++ {
		next.Zero()
		for _, edge := range edges {
			prod := 1.0
			for _, i := range edge {
				prod *= x.AtVec(i)
			}
			for _, i := range edge {
				next.SetVec(i, next.AtVec(i)+prod)
			}
		}
		sum := mat.Sum(next)
		if sum == 0 {
			return nil, fmt.Errorf("%w: zero vector at iteration %d", ErrNoConvergence, k)
		}
		next.ScaleVec(1/sum, next)
		diff.SubVec(x, next)
		res := mat.Norm(diff, 2)
		x.CopyVec(next)
		if res <= tol {
			return decode(enc, x), nil
		}
	}
	return nil, fmt.Errorf("%w: z-eigenvector after %d iterations", ErrNoConvergence, maxIter)
}

func decode[N ident.ID](enc *ident.Encoder[N], x *mat.VecDense) map[N]float64 {
	out := make(map[N]float64, enc.Len())
	for i := 0; i < enc.Len(); i++ {
		n, _ := enc.InverseTransform(i)
		out[n] = x.AtVec(i)
	}
	return out
}
