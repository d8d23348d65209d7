package measures

import (
	"math"

	"gonum.org/v1/gonum/graph/network"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/roach88/hgx/internal/hypergraph"
	"github.com/roach88/hgx/internal/ident"
)

// Metric selects how two hyperedges are compared in a line graph.
type Metric string

const (
	MetricIntersection Metric = "intersection"
	MetricJaccard      Metric = "jaccard"
)

// LineGraph is the graph whose nodes are the hyperedges of a hypergraph.
// Node i of Graph is Edges[i]; Edges follows Hypergraph.Edges order.
type LineGraph[N ident.ID] struct {
	Graph *simple.WeightedUndirectedGraph
	Edges [][]N
}

// NewLineGraph links two hyperedges when their similarity under metric
// is at least s. With weighted the link weight is the similarity,
// otherwise 1. Unknown metrics fall back to intersection.
func NewLineGraph[N ident.ID](h *hypergraph.Hypergraph[N], s float64, metric Metric, weighted bool) *LineGraph[N] {
	edges := h.Edges()
	g := simple.NewWeightedUndirectedGraph(0, math.Inf(1))
	for i := range edges {
		g.AddNode(simple.Node(int64(i)))
	}

	for i := 0; i < len(edges); i++ {
		for j := i + 1; j < len(edges); j++ {
			var sim float64
			switch metric {
			case MetricJaccard:
				sim = JaccardSimilarity(edges[i], edges[j])
			default:
				sim = float64(Intersection(edges[i], edges[j]))
			}
			if sim < s {
				continue
			}
			w := 1.0
			if weighted {
				w = sim
			}
			g.SetWeightedEdge(simple.WeightedEdge{
				F: simple.Node(int64(i)),
				T: simple.Node(int64(j)),
				W: w,
			})
		}
	}
	return &LineGraph[N]{Graph: g, Edges: edges}
}

// keyed converts a per line graph node result into a per edge key result.
func (lg *LineGraph[N]) keyed(values map[int64]float64) map[ident.Key]float64 {
	out := make(map[ident.Key]float64, len(lg.Edges))
	for i, members := range lg.Edges {
		out[ident.KeyOf(members)] = values[int64(i)]
	}
	return out
}

// SBetweenness returns the normalized betweenness centrality of every
// hyperedge in the s-line graph (intersection metric, unit weights).
// Values are scaled by 1/((n-1)(n-2)); with fewer than three edges every
// value is 0.
func SBetweenness[N ident.ID](h *hypergraph.Hypergraph[N], s float64) map[ident.Key]float64 {
	lg := NewLineGraph(h, s, MetricIntersection, false)
	n := len(lg.Edges)

	raw := network.Betweenness(lg.Graph)
	scaled := make(map[int64]float64, n)
	if n > 2 {
		scale := 1 / float64((n-1)*(n-2))
		for id, v := range raw {
			scaled[id] = v * scale
		}
	}
	return lg.keyed(scaled)
}

// SCloseness returns the closeness centrality of every hyperedge in the
// s-line graph, scaled by the share of reachable edges so that
// disconnected line graphs stay comparable:
//
//	C(v) = (r-1)/(n-1) * (r-1)/sum(d(v,u))
//
// where r is the size of v's component. Isolated edges score 0.
func SCloseness[N ident.ID](h *hypergraph.Hypergraph[N], s float64) map[ident.Key]float64 {
	lg := NewLineGraph(h, s, MetricIntersection, false)
	n := len(lg.Edges)

	reach := make(map[int64]int, n)
	for _, component := range topo.ConnectedComponents(lg.Graph) {
		for _, node := range component {
			reach[node.ID()] = len(component)
		}
	}

	raw := network.Closeness(lg.Graph, path.DijkstraAllPaths(lg.Graph))
	out := make(map[int64]float64, n)
	for id, c := range raw {
		r := float64(reach[id])
		if r <= 1 || math.IsInf(c, 0) || math.IsNaN(c) {
			out[id] = 0
			continue
		}
		out[id] = (r - 1) / float64(n-1) * (r - 1) * c
	}
	return lg.keyed(out)
}
