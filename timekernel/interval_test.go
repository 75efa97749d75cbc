package timekernel

import "testing"

func TestInterval_ContainsRespectsHalfOpenRight(t *testing.T) {
	lower, _ := NewInstant(TAI, mustDT(2020, 1, 1, 0, 0, 0), nil)
	upper, _ := NewInstant(TAI, mustDT(2020, 1, 2, 0, 0, 0), nil)
	iv, err := NewInterval(lower, upper, HalfOpenRight)
	if err != nil {
		t.Fatal(err)
	}
	inLower, _ := iv.Contains(lower)
	inUpper, _ := iv.Contains(upper)
	if !inLower {
		t.Fatal("lower bound should be included")
	}
	if inUpper {
		t.Fatal("upper bound should be excluded")
	}
}

func TestInterval_GenerateGridStepsEvenly(t *testing.T) {
	lower, _ := NewInstant(TAI, mustDT(2020, 1, 1, 0, 0, 0), nil)
	upper, _ := NewInstant(TAI, mustDT(2020, 1, 1, 0, 10, 0), nil)
	iv, err := NewInterval(lower, upper, Closed)
	if err != nil {
		t.Fatal(err)
	}
	grid, err := iv.GenerateGrid(Minutes(5))
	if err != nil {
		t.Fatal(err)
	}
	if len(grid) != 3 {
		t.Fatalf("got %d points, want 3", len(grid))
	}
}

func TestInterval_RejectsInvertedBounds(t *testing.T) {
	lower, _ := NewInstant(TAI, mustDT(2020, 1, 2, 0, 0, 0), nil)
	upper, _ := NewInstant(TAI, mustDT(2020, 1, 1, 0, 0, 0), nil)
	if _, err := NewInterval(lower, upper, Closed); err == nil {
		t.Fatal("expected error for lower after upper")
	}
}
