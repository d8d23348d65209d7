// Package hypergraph implements the in-memory hypergraph store.
//
// A Hypergraph holds nodes and hyperedges (edges joining any number of
// nodes) together with a weight per edge and optional metadata for nodes
// and edges. Every public operation leaves these synchronized views
// consistent:
//
//   - node set: every edge member is a node
//   - edge set: canonical key to sorted member list, one entry per key
//   - order index: order to the keys of that order
//   - weight table: exactly one weight per edge key
//   - metadata tables: node and edge metadata, deep-copied in and out
//   - incidence index: node to the keys of the edges containing it
//
// Edges are identified by their canonical key (see ident.Key), so member
// order and repetition never create distinct edges. Re-adding an existing
// edge updates its weight and, when metadata is supplied, its metadata.
//
// Operations validate before they mutate. A failing call returns a
// *Error and leaves the store unchanged.
//
// The store is not safe for concurrent mutation. Concurrent read-only
// calls are safe when no mutation is in flight; callers that share an
// instance across goroutines wrap it in their own lock.
package hypergraph
