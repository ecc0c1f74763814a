package colocate

import "testing"

func TestCandidateFilter_NoPruningAtKTwo(t *testing.T) {
	counts := FeatureCount{"A": 100, "B": 10}
	ro := NewRarityOrder(counts)
	c, _ := NewColocation(ro, []FeatureType{"A", "B"})

	out, err := CandidateFilter([]Colocation{c}, nil, nil, 0.5, counts, 1.0, ro)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 {
		t.Errorf("expected candidate to pass through unfiltered at k=2, got %v", out)
	}
}

func TestCandidateFilter_Lemma2DropsMissingSubset(t *testing.T) {
	counts := FeatureCount{"A": 100, "B": 10, "C": 50}
	ro := NewRarityOrder(counts)
	// Rarity order [B, C, A]; candidate {B,C,A}.
	c, _ := NewColocation(ro, []FeatureType{"A", "B", "C"})

	// Only {B,C} prevalent from the previous level, not {B,A}.
	bc, _ := NewColocation(ro, []FeatureType{"B", "C"})

	out, err := CandidateFilter([]Colocation{c}, []Colocation{bc}, RowTable{}, 0.5, counts, 1.0, ro)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("expected candidate pruned by Lemma 2, got %v", out)
	}
}

// Scenario E (§8): a candidate whose f_min-free subset's Lemma-3 upper
// bound falls below min_prev is pruned without ever reaching
// TableInstanceBuilder.
func TestCandidateFilter_Lemma3PrunesLowUpperBound(t *testing.T) {
	counts := FeatureCount{"A": 100, "B": 10, "C": 50}
	ro := NewRarityOrder(counts)
	c, _ := NewColocation(ro, []FeatureType{"A", "B", "C"})

	bc, _ := NewColocation(ro, []FeatureType{"B", "C"})
	ba, _ := NewColocation(ro, []FeatureType{"B", "A"})
	ca, _ := NewColocation(ro, []FeatureType{"C", "A"})

	// S_0 = {C,A} (f_min-free subset). A single low-participation row
	// keeps PI(S_0) tiny, so PI(S_0)*w(f_max) is far below min_prev.
	prevTable := RowTable{
		ca.Key(): {{0, 1}},
	}

	out, err := CandidateFilter([]Colocation{c}, []Colocation{bc, ba, ca}, prevTable, 0.99, counts, 1.0, ro)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("expected candidate pruned by Lemma 3, got %v", out)
	}
}
