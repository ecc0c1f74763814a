package colocate

import "github.com/RoaringBitmap/roaring"

// Row is an ordered tuple of instance references whose positions correspond
// to a colocation's rarity-ordered feature list (§3 "ColocationInstance").
type Row []InstanceRef

// RowTable is T(C), the set of rows satisfying colocation C, keyed by the
// colocation's canonical Key() so the driver can hand T_{k-1} to the next
// level's TableInstanceBuilder call by lookup rather than by recomputation.
type RowTable map[string][]Row

// seedRowTable builds T_1 (§4.8 Init): one row per instance, keyed by its
// singleton colocation.
func seedRowTable(set *InstanceSet, ro RarityOrder) RowTable {
	byType := make(map[FeatureType][]Row)
	for _, ref := range set.All() {
		t := set.Get(ref).Type
		byType[t] = append(byType[t], Row{ref})
	}
	table := make(RowTable, len(byType))
	for _, f := range ro.Order() {
		c, err := NewColocation(ro, []FeatureType{f})
		if err != nil {
			continue
		}
		table[c.Key()] = byType[f]
	}
	return table
}

// TableInstanceBuilder implements §4.7: for each filtered k-candidate,
// split into prefix = C[0..k-1] and newFeature = C[k-1], look up T(prefix)
// in prev, and extend every row of T(prefix) with the intersection of the
// NRTree neighbor leaves of newFeature across the row's members.
//
// cancel, if non-nil, is checked once per candidate (§5 "between stages
// and after each candidate in the builder — never mid-intersection"); on
// cancellation the rows accumulated for prior candidates are returned
// alongside a nil error, and later candidates are left absent from out.
func TableInstanceBuilder(tree *NRTree, prev RowTable, candidates []Colocation, workers int, cancel <-chan struct{}) (RowTable, error) {
	out := make(RowTable, len(candidates))
	for _, c := range candidates {
		if builderCancelled(cancel) {
			return out, nil
		}
		if c.Len() < 2 {
			return nil, invariantViolation("TableInstanceBuilder called on colocation of size %d", c.Len())
		}
		members := c.Features()
		newFeature := members[len(members)-1]
		prefix, err := NewColocation(tree.ro, members[:len(members)-1])
		if err != nil {
			return nil, err
		}
		rows := prev[prefix.Key()]
		if len(rows) == 0 {
			out[c.Key()] = nil
			continue
		}

		var extended []Row
		if workers > 1 && len(rows) > 1 {
			extended = extendRowsParallel(tree, prefix, rows, newFeature, workers)
		} else {
			for _, r := range rows {
				extended = append(extended, extendRow(tree, prefix, r, newFeature)...)
			}
		}
		out[c.Key()] = extended
	}
	return out, nil
}

// builderCancelled reports whether cancel has fired, without blocking.
func builderCancelled(cancel <-chan struct{}) bool {
	if cancel == nil {
		return false
	}
	select {
	case <-cancel:
		return true
	default:
		return false
	}
}

// extendRow computes S(r, f) = intersection of neighbors(r[i], f) over
// every member of row r, then emits r ⧺ [o] for each o in the intersection
// (§4.7). The intersection is computed over the NRTree's roaring.Bitmap
// leaves directly as a running roaring And, with early exit once it is
// empty.
func extendRow(tree *NRTree, prefix Colocation, r Row, f FeatureType) []Row {
	members := prefix.Features()
	bitmaps := make([]*roaring.Bitmap, 0, len(r))
	for i, ref := range r {
		bm := tree.NeighborBitmap(ref, members[i], f)
		if bm == nil || bm.IsEmpty() {
			return nil
		}
		bitmaps = append(bitmaps, bm)
	}

	result := bitmaps[0].Clone()
	for _, bm := range bitmaps[1:] {
		result.And(bm)
		if result.IsEmpty() {
			return nil
		}
	}

	out := make([]Row, 0, result.GetCardinality())
	it := result.Iterator()
	for it.HasNext() {
		o := InstanceRef(it.Next())
		row := make(Row, len(r)+1)
		copy(row, r)
		row[len(r)] = o
		out = append(out, row)
	}
	return out
}
