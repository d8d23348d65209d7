// Package store persists hypergraph documents.
//
// Two backends are provided:
//   - Store: SQLite, one row set per named graph (graphs, nodes, edges,
//     edge_members), queryable by node membership
//   - Snapshots: BadgerDB, one MessagePack blob per named graph
//
// Both store codec.Document values, never live hypergraphs, so the
// in-memory structure carries no durability semantics of its own.
//
// # Identity
//
// Graph ids are UUIDv7. Edges are addressed by their canonical key and
// its domain-separated content hash (ident.Hash), so the same edge has
// the same hash in every graph and every process.
//
// # Deterministic Query Results
//
// Every multi-row query orders by an explicit column (seq for edges,
// node text for nodes, name for graphs) so loads are reproducible.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store

import "errors"

// ErrNotFound is returned when a named graph does not exist.
var ErrNotFound = errors.New("store: graph not found")
