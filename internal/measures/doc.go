// Package measures computes structural statistics over a hypergraph:
// degree sequences, edge similarity, line graph s-centralities and
// eigenvector centralities for uniform hypergraphs.
//
// Graph algorithms run on gonum graphs built from the hypergraph; dense
// linear algebra uses gonum/mat. Nodes are mapped to matrix rows with an
// ident.Encoder in ascending id order, so results are deterministic.
package measures

import "errors"

var (
	// ErrNotUniform is returned when a measure needs every edge to have the same order.
	ErrNotUniform = errors.New("measures: hypergraph is not uniform")

	// ErrNotConnected is returned when a measure needs a single connected component.
	ErrNotConnected = errors.New("measures: hypergraph is not connected")

	// ErrNoConvergence is returned when an iterative method exhausts its iteration budget.
	ErrNoConvergence = errors.New("measures: iteration did not converge")
)
