package codec

import (
	"fmt"

	"github.com/roach88/hgx/internal/hypergraph"
	"github.com/roach88/hgx/internal/ident"
)

// Document is the serializable form of a hypergraph.
type Document[N ident.ID] struct {
	Weighted bool         `json:"weighted" yaml:"weighted" msgpack:"weighted"`
	Nodes    []NodeDoc[N] `json:"nodes,omitempty" yaml:"nodes,omitempty" msgpack:"nodes,omitempty"`
	Edges    []EdgeDoc[N] `json:"edges" yaml:"edges" msgpack:"edges"`
}

// NodeDoc is a node with optional metadata.
type NodeDoc[N ident.ID] struct {
	ID   N               `json:"id" yaml:"id" msgpack:"id"`
	Meta hypergraph.Meta `json:"meta,omitempty" yaml:"meta,omitempty" msgpack:"meta,omitempty"`
}

// EdgeDoc is an edge. A missing weight means 1.0.
type EdgeDoc[N ident.ID] struct {
	Members []N             `json:"members" yaml:"members,flow" msgpack:"members"`
	Weight  *float64        `json:"weight,omitempty" yaml:"weight,omitempty" msgpack:"weight,omitempty"`
	Meta    hypergraph.Meta `json:"meta,omitempty" yaml:"meta,omitempty" msgpack:"meta,omitempty"`
}

// FromHypergraph captures h as a Document. Nodes and edges appear in
// the sorted snapshot order; weights are written only for weighted
// hypergraphs.
func FromHypergraph[N ident.ID](h *hypergraph.Hypergraph[N]) *Document[N] {
	doc := &Document[N]{Weighted: h.IsWeighted()}

	for _, n := range h.NodesWithMeta() {
		nd := NodeDoc[N]{ID: n.ID}
		if len(n.Meta) > 0 {
			nd.Meta = n.Meta
		}
		doc.Nodes = append(doc.Nodes, nd)
	}

	doc.Edges = make([]EdgeDoc[N], 0, h.NumEdges())
	for _, e := range h.EdgesWithMeta() {
		ed := EdgeDoc[N]{Members: e.Members}
		if doc.Weighted {
			w := e.Weight
			ed.Weight = &w
		}
		if len(e.Meta) > 0 {
			ed.Meta = e.Meta
		}
		doc.Edges = append(doc.Edges, ed)
	}
	return doc
}

// Build reconstructs the hypergraph described by the document.
func (d *Document[N]) Build(opts ...hypergraph.Option) (*hypergraph.Hypergraph[N], error) {
	edges := make([][]N, len(d.Edges))
	var weights []float64
	if d.Weighted {
		weights = make([]float64, len(d.Edges))
	}
	for i, e := range d.Edges {
		edges[i] = e.Members
		if d.Weighted {
			weights[i] = 1.0
			if e.Weight != nil {
				weights[i] = *e.Weight
			}
		}
	}

	h, err := hypergraph.New(edges, d.Weighted, weights, opts...)
	if err != nil {
		return nil, fmt.Errorf("build edges: %w", err)
	}

	for _, n := range d.Nodes {
		if err := h.AddNode(n.ID, n.Meta); err != nil {
			return nil, fmt.Errorf("build node %v: %w", n.ID, err)
		}
	}
	for i, e := range d.Edges {
		if len(e.Meta) == 0 {
			continue
		}
		if err := h.SetEdgeMeta(e.Members, e.Meta); err != nil {
			return nil, fmt.Errorf("build edge %d metadata: %w", i, err)
		}
	}
	return h, nil
}
