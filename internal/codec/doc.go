// Package codec reads and writes hypergraphs as documents.
//
// A Document is the serializable form of a hypergraph: the weighted
// flag, every node with its metadata, and every edge with members,
// weight and metadata. Documents round-trip through JSON, YAML and
// MessagePack. CUE documents can be read (and are validated against an
// embedded schema) but not written.
//
// Documents are always rebuilt through hypergraph.New, so every load
// goes through the same validation as programmatic construction.
package codec
