package hypergraph

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/roach88/hgx/internal/ident"
)

// Hypergraph is an in-memory hypergraph over node identifiers of type N.
type Hypergraph[N ident.ID] struct {
	weighted bool

	nodes    map[N]struct{}
	edges    map[ident.Key][]N
	byOrder  map[int]map[ident.Key]struct{}
	weights  map[ident.Key]float64
	nodeMeta map[N]Meta
	edgeMeta map[ident.Key]Meta
	index    *incidence[N]

	cfg    config
	logger *slog.Logger
}

// NodeEntry is a node together with a copy of its metadata.
type NodeEntry[N ident.ID] struct {
	ID   N
	Meta Meta
}

// EdgeEntry is an edge snapshot: canonical key, sorted members, weight
// and a copy of its metadata.
type EdgeEntry[N ident.ID] struct {
	Key     ident.Key
	Members []N
	Weight  float64
	Meta    Meta
}

// canonEdge is a validated edge awaiting commit.
type canonEdge[N ident.ID] struct {
	key     ident.Key
	members []N
}

func newEmpty[N ident.ID](weighted bool, cfg config) *Hypergraph[N] {
	return &Hypergraph[N]{
		weighted: weighted,
		nodes:    make(map[N]struct{}),
		edges:    make(map[ident.Key][]N),
		byOrder:  make(map[int]map[ident.Key]struct{}),
		weights:  make(map[ident.Key]float64),
		nodeMeta: make(map[N]Meta),
		edgeMeta: make(map[ident.Key]Meta),
		index:    newIncidence[N](),
		cfg:      cfg,
		logger:   cfg.logger,
	}
}

// New builds a hypergraph from an edge list.
//
// On a weighted hypergraph weights[i] is the weight of edges[i] and the
// lengths must match (DIMENSION_MISMATCH). On an unweighted hypergraph
// weights is ignored and every edge weighs 1.0. Duplicate edges collapse
// into one; the last weight wins. An invalid entry fails the whole call
// and no hypergraph is returned.
func New[N ident.ID](edges [][]N, weighted bool, weights []float64, opts ...Option) (_ *Hypergraph[N], err error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	h := newEmpty[N](weighted, cfg)
	defer func() { h.observe("New", err) }()

	if weighted && len(weights) != len(edges) {
		return nil, newDimensionError("New", "weights", len(edges), len(weights))
	}
	prepared, err := prepareEdges("New", edges)
	if err != nil {
		return nil, err
	}

	for i, e := range prepared {
		w := 1.0
		if weighted {
			w = weights[i]
		}
		h.putEdge(e.key, e.members, w, nil)
	}
	return h, nil
}

// prepareEdges canonicalizes a batch without touching any store.
func prepareEdges[N ident.ID](op string, edges [][]N) ([]canonEdge[N], error) {
	out := make([]canonEdge[N], len(edges))
	for i, members := range edges {
		key, sorted, err := ident.MakeKey(members)
		if err != nil {
			return nil, fromIdent(op, err, i)
		}
		out[i] = canonEdge[N]{key: key, members: sorted}
	}
	return out, nil
}

// lookup canonicalizes members and requires the edge to exist.
func (h *Hypergraph[N]) lookup(op string, members []N) (ident.Key, error) {
	key, _, err := ident.MakeKey(members)
	if err != nil {
		return "", fromIdent(op, err, -1)
	}
	if _, ok := h.edges[key]; !ok {
		return "", newNotFoundError(op, "edge", key)
	}
	return key, nil
}

func (h *Hypergraph[N]) putNode(n N) {
	h.nodes[n] = struct{}{}
}

// putEdge inserts a new edge or updates an existing one. Weight is always
// overwritten; metadata only when meta is non-nil.
func (h *Hypergraph[N]) putEdge(key ident.Key, members []N, w float64, meta Meta) {
	if _, exists := h.edges[key]; !exists {
		for _, m := range members {
			h.putNode(m)
		}
		h.edges[key] = members
		order := len(members)
		set := h.byOrder[order]
		if set == nil {
			set = make(map[ident.Key]struct{})
			h.byOrder[order] = set
		}
		set[key] = struct{}{}
		h.index.link(key, members)
		if h.cfg.metrics {
			EdgeOrder.Observe(float64(order))
		}
	}
	h.weights[key] = w
	if meta != nil {
		h.setEdgeMeta(key, meta)
	}
}

// dropEdge removes an edge from every view except the node set.
func (h *Hypergraph[N]) dropEdge(key ident.Key) {
	members := h.edges[key]
	order := len(members)
	h.index.unlink(key, members)
	if set := h.byOrder[order]; set != nil {
		delete(set, key)
		if len(set) == 0 {
			delete(h.byOrder, order)
		}
	}
	delete(h.edges, key)
	delete(h.weights, key)
	delete(h.edgeMeta, key)
}

func (h *Hypergraph[N]) observe(op string, err error) {
	if h == nil || !h.cfg.metrics {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	OperationsTotal.WithLabelValues(op, status).Inc()
}

// String returns a deterministic structural summary, for example:
//
//	Hypergraph with 8 nodes and 5 edges (unweighted).
//	Distribution of hyperedge orders: {2: 2, 3: 1, 4: 1, 5: 1}
func (h *Hypergraph[N]) String() string {
	kind := "unweighted"
	if h.weighted {
		kind = "weighted"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Hypergraph with %d nodes and %d edges (%s).\n", len(h.nodes), len(h.edges), kind)
	b.WriteString("Distribution of hyperedge orders: {")
	for i, order := range slices.Sorted(maps.Keys(h.byOrder)) {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%d: %d", order, len(h.byOrder[order]))
	}
	b.WriteString("}")
	return b.String()
}

// CheckInvariants verifies every synchronized view by full scan.
// It returns the first violation found, or nil.
func (h *Hypergraph[N]) CheckInvariants() error {
	indexed := 0
	for key, members := range h.edges {
		if len(members) < ident.MinOrder {
			return fmt.Errorf("edge %s has order %d", key, len(members))
		}
		if ident.KeyOf(members) != key {
			return fmt.Errorf("edge %s stored under non-canonical key", key)
		}
		for _, m := range members {
			if _, ok := h.nodes[m]; !ok {
				return fmt.Errorf("edge %s member %v is not a node", key, m)
			}
			if !h.index.has(m, key) {
				return fmt.Errorf("edge %s missing from incidence of %v", key, m)
			}
		}
		indexed += len(members)
		if _, ok := h.weights[key]; !ok {
			return fmt.Errorf("edge %s has no weight", key)
		}
		if _, ok := h.byOrder[len(members)][key]; !ok {
			return fmt.Errorf("edge %s missing from order index", key)
		}
	}

	if len(h.weights) != len(h.edges) {
		return fmt.Errorf("weight table has %d entries for %d edges", len(h.weights), len(h.edges))
	}
	for key := range h.edgeMeta {
		if _, ok := h.edges[key]; !ok {
			return fmt.Errorf("metadata for unknown edge %s", key)
		}
	}
	for n := range h.nodeMeta {
		if _, ok := h.nodes[n]; !ok {
			return fmt.Errorf("metadata for unknown node %v", n)
		}
	}

	ordered := 0
	for order, set := range h.byOrder {
		if len(set) == 0 {
			return fmt.Errorf("empty order index entry for order %d", order)
		}
		for key := range set {
			if members, ok := h.edges[key]; !ok || len(members) != order {
				return fmt.Errorf("order index lists %s under order %d", key, order)
			}
		}
		ordered += len(set)
	}
	if ordered != len(h.edges) {
		return fmt.Errorf("order index has %d keys for %d edges", ordered, len(h.edges))
	}

	linked := 0
	for n, set := range h.index.sets {
		if len(set) == 0 {
			return fmt.Errorf("empty incidence set for %v", n)
		}
		if _, ok := h.nodes[n]; !ok {
			return fmt.Errorf("incidence entry for unknown node %v", n)
		}
		for key := range set {
			if !slices.Contains(h.edges[key], n) {
				return fmt.Errorf("incidence of %v lists %s which does not contain it", n, key)
			}
		}
		linked += len(set)
	}
	if linked != indexed {
		return fmt.Errorf("incidence has %d links, edges have %d memberships", linked, indexed)
	}
	return nil
}
