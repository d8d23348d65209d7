package hypergraph

import (
	"maps"
	"slices"

	"github.com/roach88/hgx/internal/ident"
)

// incidence maps each node to the keys of the edges containing it.
// Only nodes with at least one incident edge have an entry.
type incidence[N ident.ID] struct {
	sets map[N]map[ident.Key]struct{}
}

func newIncidence[N ident.ID]() *incidence[N] {
	return &incidence[N]{sets: make(map[N]map[ident.Key]struct{})}
}

// link records key under every member.
func (x *incidence[N]) link(key ident.Key, members []N) {
	for _, m := range members {
		set := x.sets[m]
		if set == nil {
			set = make(map[ident.Key]struct{})
			x.sets[m] = set
		}
		set[key] = struct{}{}
	}
}

// unlink removes key from every member and drops emptied sets.
func (x *incidence[N]) unlink(key ident.Key, members []N) {
	for _, m := range members {
		set := x.sets[m]
		delete(set, key)
		if len(set) == 0 {
			delete(x.sets, m)
		}
	}
}

func (x *incidence[N]) degree(n N) int {
	return len(x.sets[n])
}

// keys returns the incident keys of n in ascending order.
func (x *incidence[N]) keys(n N) []ident.Key {
	return slices.Sorted(maps.Keys(x.sets[n]))
}

func (x *incidence[N]) has(n N, key ident.Key) bool {
	_, ok := x.sets[n][key]
	return ok
}

func (x *incidence[N]) size() int {
	return len(x.sets)
}
