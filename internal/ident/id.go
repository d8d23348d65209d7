package ident

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"unicode/utf8"
)

// ID is the constraint satisfied by node identifiers.
// Every type in the set is comparable and ordered, which the edge key
// canonicalization relies on.
type ID interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~string
}

var (
	// ErrTooFewMembers is returned when an edge has fewer than two distinct members.
	ErrTooFewMembers = errors.New("ident: edge needs at least 2 distinct members")

	// ErrInvalidID is returned for identifiers that cannot be encoded
	// unambiguously (string ids that are not valid UTF-8).
	ErrInvalidID = errors.New("ident: invalid node id")
)

// MinOrder is the smallest order a stored edge may have.
const MinOrder = 2

// Validate checks that n can take part in a canonical key.
func Validate[N ID](n N) error {
	v := reflect.ValueOf(n)
	if v.Kind() == reflect.String && !utf8.ValidString(v.String()) {
		return fmt.Errorf("%w: %q is not valid UTF-8", ErrInvalidID, v.String())
	}
	return nil
}

// Canonical returns the sorted, de-duplicated copy of members.
// The input slice is never modified.
func Canonical[N ID](members []N) ([]N, error) {
	if len(members) == 0 {
		return nil, fmt.Errorf("%w: empty member list", ErrTooFewMembers)
	}
	for _, m := range members {
		if err := Validate(m); err != nil {
			return nil, err
		}
	}

	out := slices.Clone(members)
	slices.Sort(out)
	out = slices.Compact(out)

	if len(out) < MinOrder {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewMembers, len(out))
	}
	return out, nil
}

// Without returns sorted minus n. sorted must already be canonical.
// The result may have fewer than MinOrder members; callers decide what
// that means.
func Without[N ID](sorted []N, n N) []N {
	out := make([]N, 0, len(sorted))
	for _, m := range sorted {
		if m != n {
			out = append(out, m)
		}
	}
	return out
}
