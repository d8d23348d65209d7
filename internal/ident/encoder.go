package ident

import "slices"

// Encoder maps node identifiers to dense indexes 0..n-1 in ascending id
// order. Matrix based measures use it to address rows and columns.
type Encoder[N ID] struct {
	index map[N]int
	nodes []N
}

// NewEncoder builds an encoder over nodes. Duplicates are ignored.
func NewEncoder[N ID](nodes []N) *Encoder[N] {
	sorted := slices.Clone(nodes)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	e := &Encoder[N]{
		index: make(map[N]int, len(sorted)),
		nodes: sorted,
	}
	for i, n := range sorted {
		e.index[n] = i
	}
	return e
}

// Len returns the number of encoded nodes.
func (e *Encoder[N]) Len() int {
	return len(e.nodes)
}

// Transform returns the index of n.
func (e *Encoder[N]) Transform(n N) (int, bool) {
	i, ok := e.index[n]
	return i, ok
}

// InverseTransform returns the node at index i.
func (e *Encoder[N]) InverseTransform(i int) (N, bool) {
	if i < 0 || i >= len(e.nodes) {
		var zero N
		return zero, false
	}
	return e.nodes[i], true
}

// Mapping returns a copy of the node to index mapping.
func (e *Encoder[N]) Mapping() map[N]int {
	out := make(map[N]int, len(e.index))
	for n, i := range e.index {
		out[n] = i
	}
	return out
}
