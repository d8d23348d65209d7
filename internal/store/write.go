package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/roach88/hgx/internal/codec"
	"github.com/roach88/hgx/internal/ident"
)

// Save stores doc under name, replacing any graph with that name, in a
// single transaction. It returns the new graph id (UUIDv7).
//
// Edges are canonicalized before storage; a document with an invalid
// edge is rejected and nothing is written. Duplicate edges collapse and
// the last occurrence wins, matching hypergraph.New.
func Save[N ident.ID](ctx context.Context, s *Store, name string, doc *codec.Document[N]) (string, error) {
	if name == "" {
		return "", fmt.Errorf("save graph: empty name")
	}

	graphID := uuid.Must(uuid.NewV7()).String()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("save graph: begin: %w", err)
	}
	defer tx.Rollback()

	if err := deleteGraph(ctx, tx, name); err != nil {
		return "", fmt.Errorf("save graph: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO graphs (id, name, weighted, id_kind)
		VALUES (?, ?, ?, ?)
	`, graphID, name, doc.Weighted, idKind[N]())
	if err != nil {
		return "", fmt.Errorf("save graph: insert graph: %w", err)
	}

	if err := writeNodes(ctx, tx, graphID, doc); err != nil {
		return "", fmt.Errorf("save graph: %w", err)
	}
	if err := writeEdges(ctx, tx, graphID, doc); err != nil {
		return "", fmt.Errorf("save graph: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("save graph: commit: %w", err)
	}
	return graphID, nil
}

func writeNodes[N ident.ID](ctx context.Context, tx *sql.Tx, graphID string, doc *codec.Document[N]) error {
	for i, n := range doc.Nodes {
		node, err := marshalID(n.ID)
		if err != nil {
			return err
		}
		meta, err := marshalMeta(n.Meta)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO nodes (graph_id, node, meta, seq)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(graph_id, node) DO UPDATE SET meta = excluded.meta
		`, graphID, node, meta, i)
		if err != nil {
			return fmt.Errorf("insert node %s: %w", node, err)
		}
	}
	return nil
}

func writeEdges[N ident.ID](ctx context.Context, tx *sql.Tx, graphID string, doc *codec.Document[N]) error {
	for i, e := range doc.Edges {
		key, members, err := ident.MakeKey(e.Members)
		if err != nil {
			return fmt.Errorf("edge %d: %w", i, err)
		}
		hash := ident.Hash(key)
		meta, err := marshalMeta(e.Meta)
		if err != nil {
			return err
		}
		var weight sql.NullFloat64
		if e.Weight != nil {
			weight = sql.NullFloat64{Float64: *e.Weight, Valid: true}
		}

		// a repeated edge replaces the earlier row and its members
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM edge_members WHERE graph_id = ? AND edge_hash = ?
		`, graphID, hash); err != nil {
			return fmt.Errorf("clear edge %s: %w", key, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO edges (graph_id, edge_hash, edge_key, ord, weight, meta, seq)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(graph_id, edge_hash) DO UPDATE SET
				weight = excluded.weight, meta = excluded.meta, seq = excluded.seq
		`, graphID, hash, string(key), len(members), weight, meta, i)
		if err != nil {
			return fmt.Errorf("insert edge %s: %w", key, err)
		}

		for pos, m := range members {
			node, err := marshalID(m)
			if err != nil {
				return err
			}
			_, err = tx.ExecContext(ctx, `
				INSERT INTO edge_members (graph_id, edge_hash, position, node)
				VALUES (?, ?, ?, ?)
			`, graphID, hash, pos, node)
			if err != nil {
				return fmt.Errorf("insert member of %s: %w", key, err)
			}
		}
	}
	return nil
}

// Delete removes the named graph. Returns ErrNotFound if it does not exist.
func (s *Store) Delete(ctx context.Context, name string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("delete graph: begin: %w", err)
	}
	defer tx.Rollback()

	var id string
	err = tx.QueryRowContext(ctx, `SELECT id FROM graphs WHERE name = ?`, name).Scan(&id)
	if err == sql.ErrNoRows {
		return fmt.Errorf("delete graph %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("delete graph: %w", err)
	}

	if err := deleteGraph(ctx, tx, name); err != nil {
		return fmt.Errorf("delete graph: %w", err)
	}
	return tx.Commit()
}

// deleteGraph removes every row of the named graph, child tables first,
// so it does not rely on foreign key cascades.
func deleteGraph(ctx context.Context, tx *sql.Tx, name string) error {
	stmts := []string{
		`DELETE FROM edge_members WHERE graph_id IN (SELECT id FROM graphs WHERE name = ?)`,
		`DELETE FROM edges WHERE graph_id IN (SELECT id FROM graphs WHERE name = ?)`,
		`DELETE FROM nodes WHERE graph_id IN (SELECT id FROM graphs WHERE name = ?)`,
		`DELETE FROM graphs WHERE name = ?`,
	}
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt, name); err != nil {
			return fmt.Errorf("delete %q: %w", name, err)
		}
	}
	return nil
}
