// Package testutil provides shared fixtures for hgx tests: the sample
// hypergraph used across packages, invariant assertions, and seeded
// random sources so generated graphs are reproducible.
package testutil
