package hypergraph

import (
	"slices"
)

// Clone returns a fully independent copy of h.
func (h *Hypergraph[N]) Clone() *Hypergraph[N] {
	out := newEmpty[N](h.weighted, h.cfg)
	for n := range h.nodes {
		out.putNode(n)
	}
	for n, meta := range h.nodeMeta {
		out.nodeMeta[n] = meta.Clone()
	}
	for key, members := range h.edges {
		out.putEdge(key, slices.Clone(members), h.weights[key], nil)
	}
	for key, meta := range h.edgeMeta {
		out.edgeMeta[key] = meta.Clone()
	}
	return out
}

// SubhypergraphByOrders returns a new hypergraph with the edges whose
// order is in orders, with their weights and metadata.
//
// With keepNodes the result has every node of h (with metadata);
// otherwise only the members of retained edges. The result shares no
// state with h.
func (h *Hypergraph[N]) SubhypergraphByOrders(orders []int, keepNodes bool) *Hypergraph[N] {
	out := newEmpty[N](h.weighted, h.cfg)
	if keepNodes {
		for n := range h.nodes {
			out.putNode(n)
		}
	}
	for _, order := range orders {
		for key := range h.byOrder[order] {
			out.putEdge(key, slices.Clone(h.edges[key]), h.weights[key], nil)
			if meta := h.edgeMeta[key]; meta != nil {
				out.edgeMeta[key] = meta.Clone()
			}
		}
	}
	out.copyNodeMetaFrom(h)
	return out
}

// Subhypergraph returns the hypergraph induced by nodes: every listed
// node plus the edges whose members all lie in nodes. Unknown nodes fail
// with NOT_FOUND.
func (h *Hypergraph[N]) Subhypergraph(nodes []N) (*Hypergraph[N], error) {
	keep := make(map[N]struct{}, len(nodes))
	for _, n := range nodes {
		if _, ok := h.nodes[n]; !ok {
			return nil, newNotFoundError("Subhypergraph", "node", n)
		}
		keep[n] = struct{}{}
	}
	return h.induced(keep), nil
}

// LargestComponent returns the subhypergraph induced by the largest
// connected component. An empty hypergraph yields an empty copy.
func (h *Hypergraph[N]) LargestComponent() *Hypergraph[N] {
	components := h.ConnectedComponents()
	keep := make(map[N]struct{})
	if len(components) > 0 {
		for _, n := range components[0] {
			keep[n] = struct{}{}
		}
	}
	return h.induced(keep)
}

func (h *Hypergraph[N]) induced(keep map[N]struct{}) *Hypergraph[N] {
	out := newEmpty[N](h.weighted, h.cfg)
	for n := range keep {
		out.putNode(n)
	}

	// only edges incident to a kept node can qualify
	for n := range keep {
		for key := range h.index.sets[n] {
			if _, done := out.edges[key]; done {
				continue
			}
			members := h.edges[key]
			inside := true
			for _, m := range members {
				if _, ok := keep[m]; !ok {
					inside = false
					break
				}
			}
			if !inside {
				continue
			}
			out.putEdge(key, slices.Clone(members), h.weights[key], nil)
			if meta := h.edgeMeta[key]; meta != nil {
				out.edgeMeta[key] = meta.Clone()
			}
		}
	}
	out.copyNodeMetaFrom(h)
	return out
}

// copyNodeMetaFrom copies metadata of every node of h present in src.
func (h *Hypergraph[N]) copyNodeMetaFrom(src *Hypergraph[N]) {
	for n := range h.nodes {
		if meta := src.nodeMeta[n]; meta != nil {
			h.nodeMeta[n] = meta.Clone()
		}
	}
}
