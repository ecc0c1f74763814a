package colocate

import "testing"

func buildFixture(t *testing.T, instances []Instance, d float64) (*InstanceSet, RarityOrder, FeatureCount, *NRTree) {
	t.Helper()
	set, err := NewInstanceSet(instances)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	counts := countFeatures(set)
	ro := NewRarityOrder(counts)
	pairs, err := GridIndex(set, d, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	nm, err := BuildNeighborhoodMap(set, pairs, ro)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tree, err := BuildNRTree(set, ro, nm)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return set, ro, counts, tree
}

func TestTableInstanceBuilder_ExtendsPrefixRows(t *testing.T) {
	a1, _ := NewInstance("A1", "A", 0, 0)
	b1, _ := NewInstance("B1", "B", 1, 0)
	c1, _ := NewInstance("C1", "C", 0, 1)

	set, ro, _, tree := buildFixture(t, []Instance{a1, b1, c1}, 2)
	refA1, _ := set.RefByID("A1")
	refB1, _ := set.RefByID("B1")
	refC1, _ := set.RefByID("C1")

	prefix, _ := NewColocation(ro, []FeatureType{"A", "B"})
	prevTable := RowTable{prefix.Key(): {{refA1, refB1}}}

	full, _ := NewColocation(ro, []FeatureType{"A", "B", "C"})
	out, err := TableInstanceBuilder(tree, prevTable, []Colocation{full}, 1, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rows := out[full.Key()]
	if len(rows) != 1 {
		t.Fatalf("expected 1 extended row, got %d", len(rows))
	}
	if rows[0][2] != refC1 {
		t.Errorf("expected extension to C1, got %v", rows[0])
	}
}

func TestTableInstanceBuilder_CancellationBeforeFirstCandidateYieldsNothing(t *testing.T) {
	a1, _ := NewInstance("A1", "A", 0, 0)
	b1, _ := NewInstance("B1", "B", 1, 0)
	c1, _ := NewInstance("C1", "C", 0, 1)
	d1, _ := NewInstance("D1", "D", 1, 1)

	set, ro, _, tree := buildFixture(t, []Instance{a1, b1, c1, d1}, 2)
	refA1, _ := set.RefByID("A1")
	refB1, _ := set.RefByID("B1")

	prefix, _ := NewColocation(ro, []FeatureType{"A", "B"})
	prevTable := RowTable{prefix.Key(): {{refA1, refB1}}}

	fullC, _ := NewColocation(ro, []FeatureType{"A", "B", "C"})
	fullD, _ := NewColocation(ro, []FeatureType{"A", "B", "D"})

	cancel := make(chan struct{})
	close(cancel)

	out, err := TableInstanceBuilder(tree, prevTable, []Colocation{fullC, fullD}, 1, cancel)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("expected cancellation before the first candidate to yield no entries, got %v", out)
	}
}

func TestTableInstanceBuilder_EmptyCandidateListYieldsEmptyTable(t *testing.T) {
	a1, _ := NewInstance("A1", "A", 0, 0)
	set, ro, _, tree := buildFixture(t, []Instance{a1}, 2)
	_ = set

	full, _ := NewColocation(ro, []FeatureType{"A"})
	out, err := TableInstanceBuilder(tree, RowTable{}, nil, 1, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("expected no entries for empty candidate list, got %v", out)
	}
	_ = full
}
