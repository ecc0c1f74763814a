package colocate

import (
	"gonum.org/v1/gonum/floats"
)

// NeighborPair is an unordered pair of different-type instances within the
// neighborhood threshold d (§3). GridIndex never emits a pair twice or a
// self-pair.
type NeighborPair struct {
	A, B InstanceRef
}

// cellKey identifies a grid cell by its integer coordinates.
type cellKey struct {
	cx, cy int
}

// forwardOffsets are the four "forward" neighbor cells visited from each
// cell so that every unordered cell pair is considered exactly once (§4.1).
var forwardOffsets = [4]cellKey{{1, -1}, {1, 0}, {1, 1}, {0, 1}}

// GridIndex computes the set of cross-type neighbor pairs within distance
// d of one another (§4.1). n == 0 returns an empty result. d <= 0 is a
// configuration error the core rejects defensively (§7).
func GridIndex(set *InstanceSet, d float64, workers int) ([]NeighborPair, error) {
	if d <= 0 {
		return nil, configInvalidf("neighborDistance must be > 0, got %v", d)
	}
	refs := set.All()
	if len(refs) == 0 {
		return nil, nil
	}

	minX, minY := boundingBoxOrigin(set, refs)
	cells := bucketIntoCells(set, refs, d, minX, minY)

	keys := make([]cellKey, 0, len(cells))
	for k := range cells {
		keys = append(keys, k)
	}

	if workers <= 1 || len(keys) <= 1 {
		return joinCells(set, cells, keys, d), nil
	}
	return joinCellsParallel(set, cells, keys, d, workers), nil
}

// boundingBoxOrigin computes the lower-left corner (minX, minY) of the
// instance set's bounding box; that corner anchors the grid's cell
// coordinate system (§4.1).
func boundingBoxOrigin(set *InstanceSet, refs []InstanceRef) (minX, minY float64) {
	first := set.Get(refs[0])
	minX, minY = first.X(), first.Y()
	for _, ref := range refs[1:] {
		inst := set.Get(ref)
		if x := inst.X(); x < minX {
			minX = x
		}
		if y := inst.Y(); y < minY {
			minY = y
		}
	}
	return
}

// bucketIntoCells places every instance into its grid cell, cell side d.
func bucketIntoCells(set *InstanceSet, refs []InstanceRef, d, minX, minY float64) map[cellKey][]InstanceRef {
	cells := make(map[cellKey][]InstanceRef)
	for _, ref := range refs {
		inst := set.Get(ref)
		cx := int((inst.X() - minX) / d)
		cy := int((inst.Y() - minY) / d)
		key := cellKey{cx, cy}
		cells[key] = append(cells[key], ref)
	}
	return cells
}

// joinCells enumerates intra-cell pairs and pairs with the four forward
// neighbor cells, emitting a pair iff types differ and distance <= d.
func joinCells(set *InstanceSet, cells map[cellKey][]InstanceRef, keys []cellKey, d float64) []NeighborPair {
	var out []NeighborPair
	for _, key := range keys {
		out = append(out, pairsForCell(set, cells, key, d)...)
	}
	return out
}

// pairsForCell computes the neighbor pairs contributed by one grid cell:
// its own intra-cell pairs plus pairs against its four forward neighbors.
func pairsForCell(set *InstanceSet, cells map[cellKey][]InstanceRef, key cellKey, d float64) []NeighborPair {
	var out []NeighborPair
	members := cells[key]

	for i := 0; i < len(members); i++ {
		for j := i + 1; j < len(members); j++ {
			if pair, ok := tryPair(set, members[i], members[j], d); ok {
				out = append(out, pair)
			}
		}
	}

	for _, off := range forwardOffsets {
		other, ok := cells[cellKey{key.cx + off.cx, key.cy + off.cy}]
		if !ok {
			continue
		}
		for _, a := range members {
			for _, b := range other {
				if pair, ok := tryPair(set, a, b, d); ok {
					out = append(out, pair)
				}
			}
		}
	}
	return out
}

// tryPair emits (a,b) iff their types differ and their Euclidean distance,
// computed with gonum/floats.Distance, does not exceed d.
func tryPair(set *InstanceSet, a, b InstanceRef, d float64) (NeighborPair, bool) {
	ia, ib := set.Get(a), set.Get(b)
	if ia.Type == ib.Type {
		return NeighborPair{}, false
	}
	dist := floats.Distance([]float64{ia.X(), ia.Y()}, []float64{ib.X(), ib.Y()}, 2)
	if dist > d {
		return NeighborPair{}, false
	}
	return NeighborPair{A: a, B: b}, true
}
