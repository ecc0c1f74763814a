package colocate

import (
	"math"
	"testing"
)

const floatTol = 1e-9

func almostEqual(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

// Scenario B (§8): counts {A:10,B:20,C:40}, δ = 8/3 ≈ 2.6667.
func TestDelta_ScenarioB(t *testing.T) {
	counts := FeatureCount{"A": 10, "B": 20, "C": 40}
	ro := NewRarityOrder(counts)
	got := delta(ro, counts)
	want := 8.0 / 3.0
	if !almostEqual(got, want, 1e-6) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestDelta_FewerThanTwoFeatures(t *testing.T) {
	counts := FeatureCount{"A": 10}
	ro := NewRarityOrder(counts)
	if got := delta(ro, counts); got != 0 {
		t.Errorf("expected 0, got %v", got)
	}
}

func TestRareIntensity_FMinIsAlwaysOne(t *testing.T) {
	counts := FeatureCount{"A": 100, "B": 10}
	ro := NewRarityOrder(counts)
	c, _ := NewColocation(ro, []FeatureType{"A", "B"})
	if ri := rareIntensity(c.FMin(), c, counts, 1.0); ri != 1 {
		t.Errorf("expected RI(f_min) = 1, got %v", ri)
	}
}

func TestRareIntensity_NonMemberIsZero(t *testing.T) {
	counts := FeatureCount{"A": 100, "B": 10}
	ro := NewRarityOrder(counts)
	c, _ := NewColocation(ro, []FeatureType{"A", "B"})
	if ri := rareIntensity("C", c, counts, 1.0); ri != 0 {
		t.Errorf("expected 0 for non-member, got %v", ri)
	}
}

func TestWeight_SentinelZeroWhenRIVanishes(t *testing.T) {
	counts := FeatureCount{"A": 1000, "B": 10}
	ro := NewRarityOrder(counts)
	c, _ := NewColocation(ro, []FeatureType{"A", "B"})
	// A tiny δ makes RI(A,C) collapse to ~0, triggering the sentinel.
	if w := weight("A", c, counts, 1e-6); w != 0 {
		t.Errorf("expected sentinel 0, got %v", w)
	}
}

// Scenario C (§8): A1=(0,0),B1=(1,0),A2=(10,10),B2=(10,11), d=2.
// T({A,B}) = {[A1,B1],[A2,B2]}, PR(A)=PR(B)=1.0, RI=1.0, WPI=1.0.
func TestScenarioC_TwoFeaturePair(t *testing.T) {
	a1, _ := NewInstance("A1", "A", 0, 0)
	b1, _ := NewInstance("B1", "B", 1, 0)
	a2, _ := NewInstance("A2", "A", 10, 10)
	b2, _ := NewInstance("B2", "B", 10, 11)
	set, err := NewInstanceSet([]Instance{a1, b1, a2, b2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	counts := countFeatures(set)
	ro := NewRarityOrder(counts)
	d := delta(ro, counts)

	pairs, err := GridIndex(set, 2, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pairs) != 2 {
		t.Fatalf("expected 2 neighbor pairs, got %d", len(pairs))
	}

	nm, err := BuildNeighborhoodMap(set, pairs, ro)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c, _ := NewColocation(ro, []FeatureType{"A", "B"})
	refA1, _ := set.RefByID("A1")
	refB1, _ := set.RefByID("B1")
	refA2, _ := set.RefByID("A2")
	refB2, _ := set.RefByID("B2")

	members := c.Features()
	var rows []Row
	for _, star := range nm.StarsOfType(members[0]) {
		for _, n := range star.Neighbors(members[1]) {
			rows = append(rows, Row{star.Center, n})
		}
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	wantRows := map[[2]InstanceRef]bool{
		{refA1, refB1}: true,
		{refA2, refB2}: true,
	}
	for _, r := range rows {
		if !wantRows[[2]InstanceRef{r[0], r[1]}] {
			t.Errorf("unexpected row %v", r)
		}
	}

	pr := participationRatio("A", c, rows, counts)
	if !almostEqual(pr, 1.0, floatTol) {
		t.Errorf("expected PR(A)=1.0, got %v", pr)
	}
	wpi := weightedParticipationIndex(c, rows, counts, d)
	if !almostEqual(wpi, 1.0, floatTol) {
		t.Errorf("expected WPI=1.0, got %v", wpi)
	}
}
