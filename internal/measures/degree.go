package measures

import (
	"github.com/roach88/hgx/internal/hypergraph"
	"github.com/roach88/hgx/internal/ident"
)

// DegreeSequence returns the degree of every node. An order of 0 counts
// edges of every order.
func DegreeSequence[N ident.ID](h *hypergraph.Hypergraph[N], order int) map[N]int {
	out := make(map[N]int, h.NumNodes())
	for _, n := range h.Nodes() {
		var d int
		if order == 0 {
			d, _ = h.Degree(n)
		} else {
			d, _ = h.DegreeOfOrder(n, order)
		}
		out[n] = d
	}
	return out
}

// DegreeDistribution returns how many nodes have each degree.
func DegreeDistribution[N ident.ID](h *hypergraph.Hypergraph[N], order int) map[int]int {
	out := make(map[int]int)
	for _, d := range DegreeSequence(h, order) {
		out[d]++
	}
	return out
}
