package colocate

import "testing"

func TestCandidateGen_JoinsSharedPrefix(t *testing.T) {
	counts := FeatureCount{"A": 100, "B": 10, "C": 50}
	ro := NewRarityOrder(counts)
	// Rarity order: [B, C, A].
	cb, _ := NewColocation(ro, []FeatureType{"B", "C"})
	ca, _ := NewColocation(ro, []FeatureType{"B", "A"})

	cands, err := CandidateGen([]Colocation{cb, ca}, ro)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cands) != 1 {
		t.Fatalf("expected 1 candidate, got %d: %v", len(cands), cands)
	}
	if cands[0].String() != "{B,C,A}" {
		t.Errorf("expected {B,C,A}, got %v", cands[0])
	}
}

func TestCandidateGen_EveryCandidateIsDistinctAndAscending(t *testing.T) {
	counts := FeatureCount{"A": 100, "B": 10, "C": 50, "D": 5}
	ro := NewRarityOrder(counts)
	singles, err := singletons(ro)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cands, err := CandidateGen(singles, ro)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, c := range cands {
		if c.Len() != 2 {
			t.Errorf("expected 2-candidates, got %d", c.Len())
		}
		seen := map[FeatureType]bool{}
		for _, f := range c.Features() {
			if seen[f] {
				t.Errorf("duplicate feature in candidate %v", c)
			}
			seen[f] = true
		}
	}
}

func TestCandidateGen_NoSharedPrefixProducesNothing(t *testing.T) {
	counts := FeatureCount{"A": 100, "B": 10, "C": 50, "D": 5}
	ro := NewRarityOrder(counts)
	c1, _ := NewColocation(ro, []FeatureType{"D", "C"})
	c2, _ := NewColocation(ro, []FeatureType{"B", "A"})

	cands, err := CandidateGen([]Colocation{c1, c2}, ro)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cands) != 0 {
		t.Errorf("expected no candidates, got %v", cands)
	}
}
