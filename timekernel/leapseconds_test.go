package timekernel

import "testing"

func TestLeapSeconds_PostRangeExtrapolatesLastOffset(t *testing.T) {
	civil := civilNs(mustDT(2030, 1, 1, 0, 0, 0))
	dat, err := dATAtUTC(civil)
	if err != nil {
		t.Fatal(err)
	}
	if dat != 37 {
		t.Fatalf("got %d, want 37 (last table offset)", dat)
	}
}

func TestLeapSeconds_PreRangeRejected(t *testing.T) {
	civil := civilNs(mustDT(1971, 1, 1, 0, 0, 0))
	if _, err := dATAtUTC(civil); err == nil {
		t.Fatal("expected range error before table start")
	}
}

func TestLeapSeconds_TableStartInclusive(t *testing.T) {
	civil := civilNs(mustDT(1972, 1, 1, 0, 0, 0))
	dat, err := dATAtUTC(civil)
	if err != nil {
		t.Fatal(err)
	}
	if dat != 10 {
		t.Fatalf("got %d, want 10", dat)
	}
}

func TestScale_UnwiredScaleRejected(t *testing.T) {
	_, err := NewInstant(TDB, mustDT(2020, 1, 1, 0, 0, 0), nil)
	if err == nil {
		t.Fatal("expected NotImplemented for TDB")
	}
}

func TestScale_String(t *testing.T) {
	if UTC.String() != "UTC" {
		t.Fatalf("got %q", UTC.String())
	}
}
