package colocate

import (
	"sort"

	"github.com/RoaringBitmap/roaring"
	"github.com/bits-and-blooms/bitset"
	"github.com/kelindar/intmap"
)

// NRTree is the four-level Ordered Neighborhood Relation tree of §3/§4.4:
// L1 one node per feature type (rarity order), L2 one node per instance of
// that type, L3 one node per neighbor feature type in the center's star
// (rarity order again), L4 a leaf holding the neighbor instance list.
// Immutable and safe for concurrent lookups once built.
type NRTree struct {
	ro RarityOrder
	l1 map[FeatureType]*nrL1Node
}

type nrL1Node struct {
	featureType FeatureType
	centerOrder []InstanceRef
	centerIndex *intmap.Map
	l2          []*nrL2Node
}

type nrL2Node struct {
	center   InstanceRef
	present  *bitset.BitSet // bit r set iff a neighbor of rarity-rank r exists
	leaves   map[FeatureType]*roaring.Bitmap
}

// BuildNRTree walks the NeighborhoodMap per §4.4's construction order: L1
// in rarity order, centers within an L1 bucket sorted by instance id (the
// deterministic secondary order §9 permits), and each center's neighbor
// feature types in rarity order.
func BuildNRTree(set *InstanceSet, ro RarityOrder, nm *NeighborhoodMap) (*NRTree, error) {
	tree := &NRTree{ro: ro, l1: make(map[FeatureType]*nrL1Node)}

	for _, featureType := range ro.Order() {
		stars := nm.StarsOfType(featureType)
		sort.Slice(stars, func(i, j int) bool {
			return set.Get(stars[i].Center).ID < set.Get(stars[j].Center).ID
		})

		node := &nrL1Node{
			featureType: featureType,
			centerOrder: make([]InstanceRef, len(stars)),
			centerIndex: intmap.New(len(stars)+1, 0.80),
			l2:          make([]*nrL2Node, len(stars)),
		}

		for i, star := range stars {
			l2, err := buildL2(ro, star)
			if err != nil {
				return nil, err
			}
			node.centerOrder[i] = star.Center
			node.centerIndex.Store(uint32(star.Center), uint32(i))
			node.l2[i] = l2
		}

		tree.l1[featureType] = node
	}

	return tree, nil
}

// buildL2 builds one center's L3/L4 levels: a rarity-rank presence bitset
// for O(1) "does this star have type f" checks, and one roaring.Bitmap
// leaf per neighbor feature type holding the neighbor InstanceRefs.
func buildL2(ro RarityOrder, star *OrderedStar) (*nrL2Node, error) {
	node := &nrL2Node{
		center:  star.Center,
		present: bitset.New(uint(ro.Len())),
		leaves:  make(map[FeatureType]*roaring.Bitmap),
	}

	for _, f := range star.Types() {
		rank, ok := ro.Rank(f)
		if !ok {
			return nil, invariantViolation("star of %d has neighbor of unknown type %q", star.Center, f)
		}
		node.present.Set(uint(rank))

		bm := roaring.New()
		for _, ref := range star.Neighbors(f) {
			bm.Add(uint32(ref))
		}
		node.leaves[f] = bm
	}

	return node, nil
}

// Neighbors implements §4.4's lookup: neighbors(o, f) descends
// L1(type(o)) → L2(o) → L3(f) → L4 in four bounded steps, returning an
// empty list if any level misses.
func (t *NRTree) Neighbors(set *InstanceSet, o InstanceRef, f FeatureType) []InstanceRef {
	inst := set.Get(o)
	l1, ok := t.l1[inst.Type]
	if !ok {
		return nil
	}
	pos, ok := l1.centerIndex.Load(uint32(o))
	if !ok {
		return nil
	}
	l2 := l1.l2[pos]

	rank, ok := t.ro.Rank(f)
	if !ok || !l2.present.Test(uint(rank)) {
		return nil
	}
	bm, ok := l2.leaves[f]
	if !ok {
		return nil
	}
	arr := bm.ToArray()
	out := make([]InstanceRef, len(arr))
	for i, v := range arr {
		out[i] = InstanceRef(v)
	}
	return out
}

// NeighborBitmap returns the raw roaring.Bitmap backing neighbors(o, f),
// or nil if there are none. TableInstanceBuilder intersects these
// directly instead of re-materializing []InstanceRef per lookup.
func (t *NRTree) NeighborBitmap(o InstanceRef, centerType FeatureType, f FeatureType) *roaring.Bitmap {
	l1, ok := t.l1[centerType]
	if !ok {
		return nil
	}
	pos, ok := l1.centerIndex.Load(uint32(o))
	if !ok {
		return nil
	}
	l2 := l1.l2[pos]
	rank, ok := t.ro.Rank(f)
	if !ok || !l2.present.Test(uint(rank)) {
		return nil
	}
	return l2.leaves[f]
}
