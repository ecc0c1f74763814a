package colocate

import (
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"golang.org/x/exp/slices"
)

// FeatureCount maps each feature type to the number of instances bearing
// it (§3). Established once after load and read-only thereafter.
type FeatureCount map[FeatureType]int

// countFeatures establishes FeatureCount and the finite feature universe F
// from an instance collection.
func countFeatures(set *InstanceSet) FeatureCount {
	counts := make(FeatureCount)
	for _, ref := range set.All() {
		counts[set.Get(ref).Type]++
	}
	return counts
}

// featureUniverse returns F, the finite set of feature types observed,
// as a mapset.Set; featureSort reads it back as the slice it sorts.
func featureUniverse(counts FeatureCount) mapset.Set[FeatureType] {
	s := mapset.NewThreadUnsafeSet[FeatureType]()
	for f := range counts {
		s.Add(f)
	}
	return s
}

// featureSort implements the rarity order of §3: a ≺ b iff count(a) <
// count(b), ties broken lexicographically. Returns F sorted ascending by
// rarity, i.e. the rarest feature first.
func featureSort(counts FeatureCount) []FeatureType {
	universe := featureUniverse(counts)
	features := universe.ToSlice()
	slices.SortFunc(features, func(a, b FeatureType) int {
		if ca, cb := counts[a], counts[b]; ca != cb {
			return ca - cb
		}
		return strings.Compare(string(a), string(b))
	})
	return features
}

// RarityOrder is the total order on F described in §3. It is built once
// from FeatureCount and is read-only thereafter.
type RarityOrder struct {
	order []FeatureType
	rank  map[FeatureType]int
}

// NewRarityOrder builds the rarity order for the given feature counts.
func NewRarityOrder(counts FeatureCount) RarityOrder {
	order := featureSort(counts)
	rank := make(map[FeatureType]int, len(order))
	for i, f := range order {
		rank[f] = i
	}
	return RarityOrder{order: order, rank: rank}
}

// Order returns F sorted ascending by rarity (rarest first).
func (r RarityOrder) Order() []FeatureType { return r.order }

// Len returns |F|.
func (r RarityOrder) Len() int { return len(r.order) }

// Rank returns f's position in the rarity order, or false if f ∉ F.
func (r RarityOrder) Rank(f FeatureType) (int, bool) {
	rank, ok := r.rank[f]
	return rank, ok
}

// Less reports whether a ≺ b under the rarity order.
func (r RarityOrder) Less(a, b FeatureType) bool {
	ra, oka := r.rank[a]
	rb, okb := r.rank[b]
	if !oka || !okb {
		return false
	}
	return ra < rb
}

// FMin returns the rarest feature overall, f_min(F).
func (r RarityOrder) FMin() FeatureType { return r.order[0] }

// Colocation is a non-empty, rarity-ordered list of distinct feature
// types (§3). Two colocations are equal iff their lists are equal.
type Colocation struct {
	features []FeatureType
}

// NewColocation builds a Colocation from an arbitrary slice of feature
// types, canonicalizing it into ascending rarity order and rejecting
// duplicates, which would violate invariant 1 of §3.
func NewColocation(ro RarityOrder, features []FeatureType) (Colocation, error) {
	if len(features) == 0 {
		return Colocation{}, invariantViolation("colocation has no members")
	}
	sorted := make([]FeatureType, len(features))
	copy(sorted, features)
	slices.SortFunc(sorted, func(a, b FeatureType) int {
		ra, _ := ro.Rank(a)
		rb, _ := ro.Rank(b)
		return ra - rb
	})
	for i := 1; i < len(sorted); i++ {
		if sorted[i] == sorted[i-1] {
			return Colocation{}, invariantViolation("colocation has duplicate feature %q", sorted[i])
		}
	}
	return Colocation{features: sorted}, nil
}

// Features returns the rarity-ordered, distinct member list.
func (c Colocation) Features() []FeatureType { return c.features }

// Len returns k, the colocation's size.
func (c Colocation) Len() int { return len(c.features) }

// FMin returns f_min(C), the rarest member (the first element).
func (c Colocation) FMin() FeatureType { return c.features[0] }

// FMax returns f_max(C), the most common member (the last element).
func (c Colocation) FMax() FeatureType { return c.features[len(c.features)-1] }

// Contains reports whether f is a member of C.
func (c Colocation) Contains(f FeatureType) bool {
	for _, m := range c.features {
		if m == f {
			return true
		}
	}
	return false
}

// Key returns a canonical, comparable string identifying this colocation,
// suitable for use as a map key (e.g. T_{k-1}, P_{k-1} lookups). Because
// Features is always rarity-ordered, two equal colocations always produce
// the same key.
func (c Colocation) Key() string {
	parts := make([]string, len(c.features))
	for i, f := range c.features {
		parts[i] = string(f)
	}
	return strings.Join(parts, "\x1f")
}

// WithoutIndex returns the (k-1)-colocation obtained by removing the
// member at position idx, preserving rarity order.
func (c Colocation) WithoutIndex(idx int) Colocation {
	out := make([]FeatureType, 0, len(c.features)-1)
	for i, f := range c.features {
		if i != idx {
			out = append(out, f)
		}
	}
	return Colocation{features: out}
}

// String renders the colocation as "{A,B,C}" for logging and diagnostics.
func (c Colocation) String() string {
	parts := make([]string, len(c.features))
	for i, f := range c.features {
		parts[i] = string(f)
	}
	return "{" + strings.Join(parts, ",") + "}"
}
