package hypergraph

import "github.com/roach88/hgx/internal/ident"

// AddNode adds n with optional metadata. Adding an existing node merges
// meta into its metadata key by key.
func (h *Hypergraph[N]) AddNode(n N, meta Meta) (err error) {
	defer func() { h.observe("AddNode", err) }()

	if err := ident.Validate(n); err != nil {
		return fromIdent("AddNode", err, -1)
	}
	h.putNode(n)
	h.mergeNodeMeta(n, meta)
	return nil
}

// AddNodes adds every node in nodes. Nothing is added if any id is invalid.
func (h *Hypergraph[N]) AddNodes(nodes []N) (err error) {
	defer func() { h.observe("AddNodes", err) }()

	for i, n := range nodes {
		if err := ident.Validate(n); err != nil {
			return fromIdent("AddNodes", err, i)
		}
	}
	for _, n := range nodes {
		h.putNode(n)
	}
	return nil
}

// AddEdges adds a batch of edges.
//
// The whole batch is validated before anything is committed. On a
// weighted hypergraph len(weights) must equal len(edges); on an
// unweighted one weights must be nil. When metas is given it must have
// one entry per edge; a nil entry leaves existing metadata untouched.
// Existing edges are updated: the last weight wins and supplied metadata
// replaces the old.
func (h *Hypergraph[N]) AddEdges(edges [][]N, weights []float64, metas ...Meta) (err error) {
	defer func() { h.observe("AddEdges", err) }()

	if h.weighted {
		if len(weights) != len(edges) {
			return newDimensionError("AddEdges", "weights", len(edges), len(weights))
		}
	} else if weights != nil {
		return newArgumentError("AddEdges", "weights given for an unweighted hypergraph")
	}
	if len(metas) > 0 && len(metas) != len(edges) {
		return newDimensionError("AddEdges", "metadata", len(edges), len(metas))
	}

	prepared, err := prepareEdges("AddEdges", edges)
	if err != nil {
		return err
	}

	for i, e := range prepared {
		w := 1.0
		if h.weighted {
			w = weights[i]
		}
		var meta Meta
		if len(metas) > 0 {
			meta = metas[i]
		}
		h.putEdge(e.key, e.members, w, meta)
	}
	return nil
}

// AddEdge adds a single edge. See WithWeight and WithMeta.
func (h *Hypergraph[N]) AddEdge(members []N, opts ...EdgeOption) (err error) {
	defer func() { h.observe("AddEdge", err) }()

	var ec edgeConfig
	for _, opt := range opts {
		opt(&ec)
	}
	if ec.weight != nil && !h.weighted {
		return newArgumentError("AddEdge", "weight given for an unweighted hypergraph")
	}

	key, sorted, err := ident.MakeKey(members)
	if err != nil {
		return fromIdent("AddEdge", err, -1)
	}
	w := 1.0
	if ec.weight != nil {
		w = *ec.weight
	}
	h.putEdge(key, sorted, w, ec.meta)
	return nil
}

// RemoveEdge removes the edge with the given members. Member nodes stay.
func (h *Hypergraph[N]) RemoveEdge(members []N) (err error) {
	defer func() { h.observe("RemoveEdge", err) }()

	key, err := h.lookup("RemoveEdge", members)
	if err != nil {
		return err
	}
	h.dropEdge(key)
	return nil
}

// RemoveEdges removes a batch of edges. If any edge is invalid or absent
// nothing is removed.
func (h *Hypergraph[N]) RemoveEdges(edges [][]N) (err error) {
	defer func() { h.observe("RemoveEdges", err) }()

	prepared, err := prepareEdges("RemoveEdges", edges)
	if err != nil {
		return err
	}
	for _, e := range prepared {
		if _, ok := h.edges[e.key]; !ok {
			return newNotFoundError("RemoveEdges", "edge", e.key)
		}
	}
	for _, e := range prepared {
		if _, ok := h.edges[e.key]; ok {
			h.dropEdge(e.key)
		}
	}
	return nil
}

// RemoveNode removes n.
//
// With keepEdges false every incident edge is deleted too (cascade).
// With keepEdges true n is removed from each incident edge instead
// (shrink): edges left with fewer than two members are deleted, the rest
// move to their new key carrying weight and metadata. When the new key
// already exists the moved edge's weight and metadata overwrite it.
func (h *Hypergraph[N]) RemoveNode(n N, keepEdges bool) (err error) {
	defer func() { h.observe("RemoveNode", err) }()

	if _, ok := h.nodes[n]; !ok {
		return newNotFoundError("RemoveNode", "node", n)
	}
	h.removeNode(n, keepEdges)
	return nil
}

// RemoveNodes removes every node in nodes with the same policy as
// RemoveNode. Nothing is removed if any node is absent.
func (h *Hypergraph[N]) RemoveNodes(nodes []N, keepEdges bool) (err error) {
	defer func() { h.observe("RemoveNodes", err) }()

	for _, n := range nodes {
		if _, ok := h.nodes[n]; !ok {
			return newNotFoundError("RemoveNodes", "node", n)
		}
	}
	for _, n := range nodes {
		if _, ok := h.nodes[n]; ok {
			h.removeNode(n, keepEdges)
		}
	}
	return nil
}

func (h *Hypergraph[N]) removeNode(n N, keepEdges bool) {
	keys := h.index.keys(n)
	if keepEdges {
		h.shrink(n, keys)
	} else {
		for _, key := range keys {
			h.dropEdge(key)
		}
		if len(keys) > 0 {
			h.logger.Debug("cascade removed incident edges",
				"node", n,
				"edges", len(keys),
			)
			if h.cfg.metrics {
				CascadeRemovedEdges.Add(float64(len(keys)))
			}
		}
	}
	delete(h.nodes, n)
	delete(h.nodeMeta, n)
}

// shrink removes n from each edge in keys, processed in key order.
func (h *Hypergraph[N]) shrink(n N, keys []ident.Key) {
	for _, key := range keys {
		members := h.edges[key]
		w := h.weights[key]
		meta := h.edgeMeta[key]
		h.dropEdge(key)

		rest := ident.Without(members, n)
		if len(rest) < ident.MinOrder {
			h.logger.Debug("shrink dropped edge below minimum order",
				"node", n,
				"edge", key,
			)
			h.countShrink("dropped")
			continue
		}

		newKey := ident.KeyOf(rest)
		outcome := "migrated"
		if _, exists := h.edges[newKey]; exists {
			outcome = "merged"
			delete(h.edgeMeta, newKey)
		}
		h.putEdge(newKey, rest, w, nil)
		if meta != nil {
			h.edgeMeta[newKey] = meta
		}
		h.logger.Debug("shrink moved edge",
			"node", n,
			"from", key,
			"to", newKey,
			"outcome", outcome,
		)
		h.countShrink(outcome)
	}
}

func (h *Hypergraph[N]) countShrink(outcome string) {
	if h.cfg.metrics {
		ShrunkEdges.WithLabelValues(outcome).Inc()
	}
}
