package colocate

import "golang.org/x/exp/maps"

// OrderedStar is the per-center neighbor index described in §3: for a
// center instance o of type c, a mapping type → neighbors, holding every
// neighbor o' whose type strictly follows c in rarity order. Because the
// relation is directed by rarity, each undirected pair contributes to
// exactly one star — the one centered at the rarer-typed endpoint.
type OrderedStar struct {
	Center    InstanceRef
	neighbors map[FeatureType][]InstanceRef
}

func newOrderedStar(center InstanceRef) *OrderedStar {
	return &OrderedStar{Center: center, neighbors: make(map[FeatureType][]InstanceRef)}
}

// Neighbors returns o's neighbors of the given type, or nil if none.
func (s *OrderedStar) Neighbors(f FeatureType) []InstanceRef { return s.neighbors[f] }

// Types returns the feature types present in this star, in no particular
// order; NRTree construction is responsible for rarity-ordering them.
func (s *OrderedStar) Types() []FeatureType {
	return maps.Keys(s.neighbors)
}

func (s *OrderedStar) add(f FeatureType, neighbor InstanceRef) {
	s.neighbors[f] = append(s.neighbors[f], neighbor)
}

// NeighborhoodMap is the mapping type → list of OrderedStar described in
// §4.3: every instance's ordered star, grouped by the center's own type.
type NeighborhoodMap struct {
	byType map[FeatureType][]*OrderedStar
	byRef  map[InstanceRef]*OrderedStar
}

// BuildNeighborhoodMap constructs the NeighborhoodMap from the GridIndex's
// neighbor pairs (§4.3). Equal-type pairs are never produced by GridIndex,
// so every pair here is handled by exactly one of the two branches.
func BuildNeighborhoodMap(set *InstanceSet, pairs []NeighborPair, ro RarityOrder) (*NeighborhoodMap, error) {
	nm := &NeighborhoodMap{
		byType: make(map[FeatureType][]*OrderedStar),
		byRef:  make(map[InstanceRef]*OrderedStar),
	}

	for _, pair := range pairs {
		a, b := set.Get(pair.A), set.Get(pair.B)
		if a.Type == b.Type {
			return nil, invariantViolation("neighbor pair %s-%s has equal types %q", a.ID, b.ID, a.Type)
		}
		switch {
		case ro.Less(a.Type, b.Type):
			nm.starFor(pair.A, a.Type).add(b.Type, pair.B)
		case ro.Less(b.Type, a.Type):
			nm.starFor(pair.B, b.Type).add(a.Type, pair.A)
		default:
			return nil, invariantViolation("neighbor pair %s-%s has incomparable types", a.ID, b.ID)
		}
	}
	return nm, nil
}

// starFor returns the center's OrderedStar, creating and registering it
// under its own feature type on first use.
func (nm *NeighborhoodMap) starFor(center InstanceRef, centerType FeatureType) *OrderedStar {
	if star, ok := nm.byRef[center]; ok {
		return star
	}
	star := newOrderedStar(center)
	nm.byRef[center] = star
	nm.byType[centerType] = append(nm.byType[centerType], star)
	return star
}

// StarsOfType returns every OrderedStar centered on an instance of type f.
func (nm *NeighborhoodMap) StarsOfType(f FeatureType) []*OrderedStar { return nm.byType[f] }

// StarOf returns the OrderedStar centered on ref, or nil if ref has no
// neighbors whose type follows its own in rarity order (an empty star,
// not tracked).
func (nm *NeighborhoodMap) StarOf(ref InstanceRef) *OrderedStar { return nm.byRef[ref] }
