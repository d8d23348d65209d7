// Package ident defines node identifiers and canonical edge keys for hgx.
//
// This package is the leaf of the module: every other internal package
// imports ident; ident imports nothing internal.
//
// Key design constraints:
//   - Node identifiers are integers or strings (see ID), hashable and totally ordered
//   - An edge key is derived only from the sorted, de-duplicated member list, so
//     member order and repetition in the input never change an edge's identity
//   - Keys are text (JSON array syntax) and usable as map keys and SQL columns
//   - String identifiers must be valid UTF-8 so that encoding is injective
package ident
