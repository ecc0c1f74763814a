package colocate

import "testing"

func TestNewInstance_RejectsEmptyID(t *testing.T) {
	if _, err := NewInstance("", "A", 0, 0); err == nil {
		t.Errorf("expected error for empty id")
	}
}

func TestNewInstance_RejectsEmptyType(t *testing.T) {
	if _, err := NewInstance("a1", "", 0, 0); err == nil {
		t.Errorf("expected error for empty type")
	}
}

func TestNewInstance_RejectsNonFiniteCoordinates(t *testing.T) {
	cases := [][2]float64{
		{posInf(), 0},
		{0, posInf()},
		{nan(), 0},
	}
	for _, c := range cases {
		if _, err := NewInstance("a1", "A", c[0], c[1]); err == nil {
			t.Errorf("expected error for coordinates %v", c)
		}
	}
}

func TestNewInstance_XY(t *testing.T) {
	inst, err := NewInstance("a1", "A", 3, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inst.X() != 3 || inst.Y() != 4 {
		t.Errorf("expected (3,4), got (%v,%v)", inst.X(), inst.Y())
	}
}

func TestNewInstanceSet_RejectsDuplicateID(t *testing.T) {
	a1, _ := NewInstance("a1", "A", 0, 0)
	a2, _ := NewInstance("a1", "A", 1, 1)
	if _, err := NewInstanceSet([]Instance{a1, a2}); err == nil {
		t.Errorf("expected error for duplicate id")
	}
}

func TestInstanceSet_RefByID(t *testing.T) {
	a1, _ := NewInstance("a1", "A", 0, 0)
	b1, _ := NewInstance("b1", "B", 1, 1)
	set, err := NewInstanceSet([]Instance{a1, b1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ref, ok := set.RefByID("b1")
	if !ok {
		t.Fatalf("expected to find b1")
	}
	if set.Get(ref).ID != "b1" {
		t.Errorf("expected b1, got %v", set.Get(ref).ID)
	}
	if _, ok := set.RefByID("missing"); ok {
		t.Errorf("expected missing id to be absent")
	}
}

func posInf() float64 { v := 1.0; return v / zero() }
func nan() float64    { return zero() / zero() }
func zero() float64   { return 0 }
