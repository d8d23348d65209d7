// Package generate builds random hypergraphs and grows existing ones
// with random edges. Every function takes an explicit *rand.Rand so
// callers control reproducibility.
package generate

import (
	"fmt"
	"maps"
	"math/big"
	"math/rand/v2"
	"slices"

	"github.com/roach88/hgx/internal/hypergraph"
	"github.com/roach88/hgx/internal/ident"
)

// Random returns an unweighted hypergraph on nodes 0..numNodes-1. For
// every entry of edgesByOrder it draws count edges of that order, each
// a uniform sample of distinct nodes. Repeated draws collapse, so an
// order may end up with fewer than count edges.
func Random(numNodes int, edgesByOrder map[int]int, rng *rand.Rand, opts ...hypergraph.Option) (*hypergraph.Hypergraph[int], error) {
	if numNodes < 0 {
		return nil, fmt.Errorf("node count %d: %w", numNodes, hypergraph.ErrInvalidArgument)
	}
	nodes := make([]int, numNodes)
	for i := range nodes {
		nodes[i] = i
	}

	h, err := hypergraph.New[int](nil, false, nil, opts...)
	if err != nil {
		return nil, err
	}
	if err := h.AddNodes(nodes); err != nil {
		return nil, err
	}

	for _, order := range slices.Sorted(maps.Keys(edgesByOrder)) {
		count := edgesByOrder[order]
		if err := checkOrder(order, numNodes); err != nil {
			return nil, err
		}
		if count < 0 {
			return nil, fmt.Errorf("edge count %d for order %d: %w", count, order, hypergraph.ErrInvalidArgument)
		}
		edges := make([][]int, count)
		for i := range edges {
			edges[i] = sample(nodes, order, rng)
		}
		if err := h.AddEdges(edges, nil); err != nil {
			return nil, err
		}
	}
	return h, nil
}

// AddRandomEdge adds one edge of the given order drawn from the existing
// nodes and returns its members. The edge may already exist, in which
// case the hypergraph is unchanged.
func AddRandomEdge[N ident.ID](h *hypergraph.Hypergraph[N], order int, rng *rand.Rand) ([]N, error) {
	nodes := h.Nodes()
	if err := checkOrder(order, len(nodes)); err != nil {
		return nil, err
	}
	edge := sample(nodes, order, rng)
	if err := h.AddEdge(edge); err != nil {
		return nil, err
	}
	return edge, nil
}

// AddRandomEdges adds count distinct edges of the given order that are
// not yet in h. It fails with INVALID_ARGUMENT when fewer than count
// such edges exist.
func AddRandomEdges[N ident.ID](h *hypergraph.Hypergraph[N], count, order int, rng *rand.Rand) ([][]N, error) {
	nodes := h.Nodes()
	if err := checkOrder(order, len(nodes)); err != nil {
		return nil, err
	}
	if count < 0 {
		return nil, fmt.Errorf("edge count %d: %w", count, hypergraph.ErrInvalidArgument)
	}

	possible := new(big.Int).Binomial(int64(len(nodes)), int64(order))
	free := possible.Sub(possible, big.NewInt(int64(h.NumEdgesOfOrder(order, false))))
	if free.Cmp(big.NewInt(int64(count))) < 0 {
		return nil, fmt.Errorf("only %s new edges of order %d exist, want %d: %w",
			free.String(), order, count, hypergraph.ErrInvalidArgument)
	}

	seen := make(map[ident.Key]struct{}, count)
	edges := make([][]N, 0, count)
	for len(edges) < count {
		edge := sample(nodes, order, rng)
		key := ident.KeyOf(edge)
		if _, dup := seen[key]; dup || h.HasEdge(edge) {
			continue
		}
		seen[key] = struct{}{}
		edges = append(edges, edge)
	}

	if err := h.AddEdges(edges, nil); err != nil {
		return nil, err
	}
	return edges, nil
}

func checkOrder(order, numNodes int) error {
	if order < ident.MinOrder || order > numNodes {
		return fmt.Errorf("order %d with %d nodes: %w", order, numNodes, hypergraph.ErrInvalidArgument)
	}
	return nil
}

// sample draws k distinct elements of pool by a partial Fisher-Yates
// shuffle and returns them sorted.
func sample[N ident.ID](pool []N, k int, rng *rand.Rand) []N {
	buf := slices.Clone(pool)
	for i := 0; i < k; i++ {
		j := i + rng.IntN(len(buf)-i)
		buf[i], buf[j] = buf[j], buf[i]
	}
	out := buf[:k]
	slices.Sort(out)
	return out
}
