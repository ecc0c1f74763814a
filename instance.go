package colocate

import (
	"math"

	"github.com/twpayne/go-geom"
)

// FeatureType is an opaque symbol with a total lexicographic order (§3).
// The convention in input data is that it is a single letter (A, B, C, ...)
// but the core treats any non-empty string as a valid type.
type FeatureType string

// Instance is an immutable georeferenced record (§3). Id is globally
// unique within the collection it belongs to; Type is authoritative even
// when the loader convention derives it from the first character of Id.
type Instance struct {
	ID    string
	Type  FeatureType
	Point *geom.Point
}

// NewInstance constructs an Instance, rejecting the malformed records
// described in §6 ("non-finite coordinates or empty id/type").
func NewInstance(id string, typ FeatureType, x, y float64) (Instance, error) {
	if id == "" {
		return Instance{}, inputMalformedf("instance has empty id")
	}
	if typ == "" {
		return Instance{}, inputMalformedf("instance %q has empty type", id)
	}
	if !isFinite(x) || !isFinite(y) {
		return Instance{}, inputMalformedf("instance %q has non-finite coordinates (%v, %v)", id, x, y)
	}
	return Instance{
		ID:    id,
		Type:  typ,
		Point: geom.NewPointFlat(geom.XY, []float64{x, y}),
	}, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// X returns the instance's first coordinate.
func (i Instance) X() float64 { return i.Point.X() }

// Y returns the instance's second coordinate.
func (i Instance) Y() float64 { return i.Point.Y() }

// InstanceRef is a stable back-reference into an InstanceSet: an index into
// its flat, append-only collection (§3, §9 "Ownership / lifetime").
type InstanceRef int

// InstanceSet is the single append-only collection every other structure
// (NeighborhoodMap, NRTree, row tuples in every T(C)) refers into by
// InstanceRef. It is immutable once constructed.
type InstanceSet struct {
	instances []Instance
	idIndex   map[string]InstanceRef
}

// NewInstanceSet builds the flat owning sequence described in §3. It
// rejects duplicate ids per the Open Question decision in §9 ("the
// implementation should reject duplicates during load rather than
// tolerate them") — the loader collaborator is expected to have already
// enforced this, but the core re-checks defensively, the same way it
// defensively rejects d <= 0 (§7).
func NewInstanceSet(instances []Instance) (*InstanceSet, error) {
	idIndex := make(map[string]InstanceRef, len(instances))
	for i, inst := range instances {
		if _, exists := idIndex[inst.ID]; exists {
			return nil, inputMalformedf("duplicate instance id %q", inst.ID)
		}
		idIndex[inst.ID] = InstanceRef(i)
	}
	out := make([]Instance, len(instances))
	copy(out, instances)
	return &InstanceSet{instances: out, idIndex: idIndex}, nil
}

// Len returns the number of instances in the set.
func (s *InstanceSet) Len() int { return len(s.instances) }

// Get resolves a back-reference to its Instance.
func (s *InstanceSet) Get(ref InstanceRef) Instance { return s.instances[ref] }

// All returns every back-reference in collection order.
func (s *InstanceSet) All() []InstanceRef {
	refs := make([]InstanceRef, len(s.instances))
	for i := range s.instances {
		refs[i] = InstanceRef(i)
	}
	return refs
}

// RefByID resolves an instance id to its back-reference, if present.
func (s *InstanceSet) RefByID(id string) (InstanceRef, bool) {
	ref, ok := s.idIndex[id]
	return ref, ok
}
