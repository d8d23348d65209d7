// Package harness runs hypergraph scenarios: scripted sequences of
// mutations and extractions with expected outcomes.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	ids: int            # or string; default int
//	steps:
//	  - op: new
//	    weighted: true
//	    edges: [[1, 2], [2, 3]]
//	    weights: [1.0, 2.0]
//	  - op: remove_node
//	    node: 2
//	    keep_edges: true
//	  - op: remove_edge
//	    edge: [1, 9]
//	    expect_error: NOT_FOUND
//	assertions:
//	  - type: edges
//	    expect: [[1, 3]]
//	  - type: degree
//	    node: 3
//	    expect: 1
//
// # Step Operations
//
//   - new: replace the current hypergraph (edges, weighted, weights)
//   - add_node: add or merge one node (node, meta)
//   - add_nodes: add several nodes (nodes)
//   - add_edges: add a batch of edges (edges, weights, metas)
//   - set_weight: set the weight of one edge (edge, weight)
//   - remove_edge / remove_edges: remove one edge or a batch (edge, edges)
//   - remove_node / remove_nodes: remove nodes (node, nodes, keep_edges)
//   - subgraph_by_orders: replace the current hypergraph with the
//     extraction (orders, keep_nodes)
//
// A step with expect_error must fail with that error code
// (DIMENSION_MISMATCH, INVALID_EDGE, NOT_FOUND, INVALID_ARGUMENT); any
// other step must succeed. Structural invariants are checked after every
// step, whether it succeeded or not.
//
// # Assertion Types
//
//   - nodes: exact node set
//   - edges: exact edge set, members in any order
//   - num_nodes, num_edges: counts
//   - degree: degree of node
//   - order: order of edge
//   - weight: weight of edge
//
// # Deterministic Output
//
// Every run of a scenario produces the same trace and final document, so
// the JSON snapshot can be compared against a golden file:
//
//	go test ./internal/harness -update
package harness
