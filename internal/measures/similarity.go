package measures

import "github.com/roach88/hgx/internal/ident"

func toSet[N ident.ID](members []N) map[N]struct{} {
	set := make(map[N]struct{}, len(members))
	for _, m := range members {
		set[m] = struct{}{}
	}
	return set
}

// Intersection returns the number of distinct members shared by a and b.
func Intersection[N ident.ID](a, b []N) int {
	sa, sb := toSet(a), toSet(b)
	if len(sb) < len(sa) {
		sa, sb = sb, sa
	}
	count := 0
	for m := range sa {
		if _, ok := sb[m]; ok {
			count++
		}
	}
	return count
}

// JaccardSimilarity returns |a ∩ b| / |a ∪ b|. Two empty sets have
// similarity 0.
func JaccardSimilarity[N ident.ID](a, b []N) float64 {
	inter := Intersection(a, b)
	union := len(toSet(a)) + len(toSet(b)) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// JaccardDistance returns 1 - JaccardSimilarity(a, b).
func JaccardDistance[N ident.ID](a, b []N) float64 {
	return 1 - JaccardSimilarity(a, b)
}
