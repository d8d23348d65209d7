package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/hgx/internal/codec"
	"github.com/roach88/hgx/internal/ident"
)

// GraphInfo summarizes a stored graph.
type GraphInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Weighted bool   `json:"weighted"`
	IDKind   string `json:"id_kind"`
	Nodes    int    `json:"nodes"`
	Edges    int    `json:"edges"`
}

// List returns every stored graph ordered by name.
func (s *Store) List(ctx context.Context) ([]GraphInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT g.id, g.name, g.weighted, g.id_kind,
			(SELECT COUNT(*) FROM nodes n WHERE n.graph_id = g.id),
			(SELECT COUNT(*) FROM edges e WHERE e.graph_id = g.id)
		FROM graphs g
		ORDER BY g.name COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list graphs: %w", err)
	}
	defer rows.Close()

	infos := []GraphInfo{}
	for rows.Next() {
		var gi GraphInfo
		if err := rows.Scan(&gi.ID, &gi.Name, &gi.Weighted, &gi.IDKind, &gi.Nodes, &gi.Edges); err != nil {
			return nil, fmt.Errorf("scan graph: %w", err)
		}
		infos = append(infos, gi)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list graphs: %w", err)
	}
	return infos, nil
}

// lookupGraph resolves a name to its id and checks the stored id kind
// against N.
func lookupGraph[N ident.ID](ctx context.Context, s *Store, name string) (string, bool, error) {
	var (
		id       string
		weighted bool
		kind     string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, weighted, id_kind FROM graphs WHERE name = ?
	`, name).Scan(&id, &weighted, &kind)
	if err == sql.ErrNoRows {
		return "", false, fmt.Errorf("graph %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return "", false, fmt.Errorf("graph %q: %w", name, err)
	}
	if want := idKind[N](); kind != want {
		return "", false, fmt.Errorf("graph %q stores %s ids, requested %s", name, kind, want)
	}
	return id, weighted, nil
}

// Load reads the named graph back as a document. Nodes and edges come
// back in their saved order.
func Load[N ident.ID](ctx context.Context, s *Store, name string) (*codec.Document[N], error) {
	graphID, weighted, err := lookupGraph[N](ctx, s, name)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}

	doc := &codec.Document[N]{Weighted: weighted}
	if doc.Nodes, err = readNodes[N](ctx, s, graphID); err != nil {
		return nil, fmt.Errorf("load %q: %w", name, err)
	}
	if doc.Edges, err = readEdges[N](ctx, s, graphID); err != nil {
		return nil, fmt.Errorf("load %q: %w", name, err)
	}
	return doc, nil
}

func readNodes[N ident.ID](ctx context.Context, s *Store, graphID string) ([]codec.NodeDoc[N], error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT node, meta FROM nodes
		WHERE graph_id = ?
		ORDER BY seq ASC, node COLLATE BINARY ASC
	`, graphID)
	if err != nil {
		return nil, fmt.Errorf("query nodes: %w", err)
	}
	defer rows.Close()

	var nodes []codec.NodeDoc[N]
	for rows.Next() {
		var (
			text string
			meta sql.NullString
		)
		if err := rows.Scan(&text, &meta); err != nil {
			return nil, fmt.Errorf("scan node: %w", err)
		}
		id, err := unmarshalID[N](text)
		if err != nil {
			return nil, err
		}
		m, err := unmarshalMeta(meta)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, codec.NodeDoc[N]{ID: id, Meta: m})
	}
	return nodes, rows.Err()
}

func readEdges[N ident.ID](ctx context.Context, s *Store, graphID string) ([]codec.EdgeDoc[N], error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT edge_key, weight, meta FROM edges
		WHERE graph_id = ?
		ORDER BY seq ASC, edge_hash COLLATE BINARY ASC
	`, graphID)
	if err != nil {
		return nil, fmt.Errorf("query edges: %w", err)
	}
	defer rows.Close()

	edges := []codec.EdgeDoc[N]{}
	for rows.Next() {
		var (
			key    string
			weight sql.NullFloat64
			meta   sql.NullString
		)
		if err := rows.Scan(&key, &weight, &meta); err != nil {
			return nil, fmt.Errorf("scan edge: %w", err)
		}
		members, err := unmarshalMembers[N](key)
		if err != nil {
			return nil, err
		}
		m, err := unmarshalMeta(meta)
		if err != nil {
			return nil, err
		}
		ed := codec.EdgeDoc[N]{Members: members, Meta: m}
		if weight.Valid {
			w := weight.Float64
			ed.Weight = &w
		}
		edges = append(edges, ed)
	}
	return edges, rows.Err()
}

// EdgesContaining returns the stored edges of the named graph that
// contain n, as sorted member lists in saved order.
func EdgesContaining[N ident.ID](ctx context.Context, s *Store, name string, n N) ([][]N, error) {
	graphID, _, err := lookupGraph[N](ctx, s, name)
	if err != nil {
		return nil, fmt.Errorf("edges containing: %w", err)
	}
	node, err := marshalID(n)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT e.edge_key FROM edges e
		JOIN edge_members m ON m.graph_id = e.graph_id AND m.edge_hash = e.edge_hash
		WHERE e.graph_id = ? AND m.node = ?
		ORDER BY e.seq ASC, e.edge_hash COLLATE BINARY ASC
	`, graphID, node)
	if err != nil {
		return nil, fmt.Errorf("query edges containing %s: %w", node, err)
	}
	defer rows.Close()

	out := [][]N{}
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scan edge: %w", err)
		}
		members, err := unmarshalMembers[N](key)
		if err != nil {
			return nil, err
		}
		out = append(out, members)
	}
	return out, rows.Err()
}
