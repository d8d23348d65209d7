package hypergraph

import (
	"maps"
	"slices"

	"github.com/roach88/hgx/internal/ident"
)

// Nodes returns all nodes in ascending order.
func (h *Hypergraph[N]) Nodes() []N {
	return slices.Sorted(maps.Keys(h.nodes))
}

// NodesWithMeta returns all nodes in ascending order with copies of
// their metadata. Nodes without metadata carry an empty Meta.
func (h *Hypergraph[N]) NodesWithMeta() []NodeEntry[N] {
	nodes := h.Nodes()
	out := make([]NodeEntry[N], len(nodes))
	for i, n := range nodes {
		meta := h.nodeMeta[n].Clone()
		if meta == nil {
			meta = Meta{}
		}
		out[i] = NodeEntry[N]{ID: n, Meta: meta}
	}
	return out
}

// Edges returns copies of all member lists, sorted lexicographically.
func (h *Hypergraph[N]) Edges() [][]N {
	out := make([][]N, 0, len(h.edges))
	for _, members := range h.edges {
		out = append(out, slices.Clone(members))
	}
	sortEdges(out)
	return out
}

// EdgesWithMeta returns every edge with weight and a copy of its
// metadata, in the same order as Edges.
func (h *Hypergraph[N]) EdgesWithMeta() []EdgeEntry[N] {
	edges := h.Edges()
	out := make([]EdgeEntry[N], len(edges))
	for i, members := range edges {
		key := ident.KeyOf(members)
		meta := h.edgeMeta[key].Clone()
		if meta == nil {
			meta = Meta{}
		}
		out[i] = EdgeEntry[N]{
			Key:     key,
			Members: members,
			Weight:  h.weights[key],
			Meta:    meta,
		}
	}
	return out
}

func sortEdges[N ident.ID](edges [][]N) {
	slices.SortFunc(edges, func(a, b []N) int {
		return slices.Compare(a, b)
	})
}

// Degree returns the number of edges containing n.
func (h *Hypergraph[N]) Degree(n N) (int, error) {
	if _, ok := h.nodes[n]; !ok {
		return 0, newNotFoundError("Degree", "node", n)
	}
	return h.index.degree(n), nil
}

// DegreeOfOrder returns the number of edges of the given order containing n.
func (h *Hypergraph[N]) DegreeOfOrder(n N, order int) (int, error) {
	if _, ok := h.nodes[n]; !ok {
		return 0, newNotFoundError("DegreeOfOrder", "node", n)
	}
	count := 0
	for key := range h.index.sets[n] {
		if len(h.edges[key]) == order {
			count++
		}
	}
	return count, nil
}

// Order returns the number of distinct members of an existing edge.
func (h *Hypergraph[N]) Order(members []N) (int, error) {
	key, err := h.lookup("Order", members)
	if err != nil {
		return 0, err
	}
	return len(h.edges[key]), nil
}

// HasNode reports whether n is a node.
func (h *Hypergraph[N]) HasNode(n N) bool {
	_, ok := h.nodes[n]
	return ok
}

// HasEdge reports whether an edge with these members exists.
// Invalid member lists simply report false.
func (h *Hypergraph[N]) HasEdge(members []N) bool {
	key, _, err := ident.MakeKey(members)
	if err != nil {
		return false
	}
	_, ok := h.edges[key]
	return ok
}

// NumNodes returns the number of nodes.
func (h *Hypergraph[N]) NumNodes() int {
	return len(h.nodes)
}

// NumEdges returns the number of edges.
func (h *Hypergraph[N]) NumEdges() int {
	return len(h.edges)
}

// NumEdgesOfOrder counts edges of exactly order, or of every order up to
// and including order when upTo is set.
func (h *Hypergraph[N]) NumEdgesOfOrder(order int, upTo bool) int {
	if !upTo {
		return len(h.byOrder[order])
	}
	count := 0
	for o, set := range h.byOrder {
		if o <= order {
			count += len(set)
		}
	}
	return count
}

// IsWeighted reports whether edges carry explicit weights.
func (h *Hypergraph[N]) IsWeighted() bool {
	return h.weighted
}

// IsUniform reports whether every edge has the same order.
// An empty hypergraph is not uniform.
func (h *Hypergraph[N]) IsUniform() bool {
	return len(h.byOrder) == 1
}

// MaxOrder returns the largest edge order, or 0 without edges.
func (h *Hypergraph[N]) MaxOrder() int {
	top := 0
	for o := range h.byOrder {
		top = max(top, o)
	}
	return top
}

// Orders returns the order of every edge, ascending.
func (h *Hypergraph[N]) Orders() []int {
	out := make([]int, 0, len(h.edges))
	for _, o := range slices.Sorted(maps.Keys(h.byOrder)) {
		for range h.byOrder[o] {
			out = append(out, o)
		}
	}
	return out
}

// OrderDistribution returns the number of edges per order.
func (h *Hypergraph[N]) OrderDistribution() map[int]int {
	out := make(map[int]int, len(h.byOrder))
	for o, set := range h.byOrder {
		out[o] = len(set)
	}
	return out
}

// IncidentEdges returns the edges containing n, sorted like Edges.
// An order of 0 selects every order.
func (h *Hypergraph[N]) IncidentEdges(n N, order int) ([][]N, error) {
	if _, ok := h.nodes[n]; !ok {
		return nil, newNotFoundError("IncidentEdges", "node", n)
	}
	out := make([][]N, 0, h.index.degree(n))
	for key := range h.index.sets[n] {
		members := h.edges[key]
		if order == 0 || len(members) == order {
			out = append(out, slices.Clone(members))
		}
	}
	sortEdges(out)
	return out, nil
}

// Neighbors returns the nodes sharing at least one edge with n, ascending.
// An order of 0 considers edges of every order.
func (h *Hypergraph[N]) Neighbors(n N, order int) ([]N, error) {
	if _, ok := h.nodes[n]; !ok {
		return nil, newNotFoundError("Neighbors", "node", n)
	}
	seen := make(map[N]struct{})
	for key := range h.index.sets[n] {
		members := h.edges[key]
		if order != 0 && len(members) != order {
			continue
		}
		for _, m := range members {
			if m != n {
				seen[m] = struct{}{}
			}
		}
	}
	return slices.Sorted(maps.Keys(seen)), nil
}

// ConnectedComponents partitions the nodes into components connected
// through shared edges. Isolated nodes form singleton components. Each
// component is sorted; components are ordered by size, largest first,
// ties broken by their smallest node.
func (h *Hypergraph[N]) ConnectedComponents() [][]N {
	visited := make(map[N]struct{}, len(h.nodes))
	var components [][]N

	for _, start := range h.Nodes() {
		if _, ok := visited[start]; ok {
			continue
		}
		visited[start] = struct{}{}
		component := []N{start}
		queue := []N{start}
		for len(queue) > 0 {
			n := queue[0]
			queue = queue[1:]
			for key := range h.index.sets[n] {
				for _, m := range h.edges[key] {
					if _, ok := visited[m]; ok {
						continue
					}
					visited[m] = struct{}{}
					component = append(component, m)
					queue = append(queue, m)
				}
			}
		}
		slices.Sort(component)
		components = append(components, component)
	}

	slices.SortStableFunc(components, func(a, b []N) int {
		return len(b) - len(a)
	})
	return components
}

// IsConnected reports whether the hypergraph has exactly one component.
func (h *Hypergraph[N]) IsConnected() bool {
	return len(h.ConnectedComponents()) == 1
}
