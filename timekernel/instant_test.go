package timekernel

import "testing"

func mustDT(y, mo, d, h, mi, s int) DateTime {
	date, err := NewDate(y, mo, d)
	if err != nil {
		panic(err)
	}
	t, err := NewClockTime(h, mi, s, 0, 0, 0)
	if err != nil {
		panic(err)
	}
	return DateTime{Date: date, Time: t}
}

func TestInstant_LeapSecondBoundaryUTCToTAI(t *testing.T) {
	before, err := NewInstant(UTC, mustDT(2016, 12, 31, 23, 59, 59), nil)
	if err != nil {
		t.Fatal(err)
	}
	taiBefore, err := before.DateTime(TAI, nil)
	if err != nil {
		t.Fatal(err)
	}
	gotBefore, _ := taiBefore.Format(DateTimeStandard)
	wantBefore, _ := mustDT(2017, 1, 1, 0, 0, 35).Format(DateTimeStandard)
	if gotBefore != wantBefore {
		t.Fatalf("got %q, want %q", gotBefore, wantBefore)
	}

	at, err := NewInstant(UTC, mustDT(2017, 1, 1, 0, 0, 0), nil)
	if err != nil {
		t.Fatal(err)
	}
	taiAt, err := at.DateTime(TAI, nil)
	if err != nil {
		t.Fatal(err)
	}
	gotAt, _ := taiAt.Format(DateTimeStandard)
	wantAt, _ := mustDT(2017, 1, 1, 0, 0, 37).Format(DateTimeStandard)
	if gotAt != wantAt {
		t.Fatalf("got %q, want %q", gotAt, wantAt)
	}
}

func TestInstant_TAIToUTCInverseAcrossLeapSecond(t *testing.T) {
	tai, err := NewInstant(TAI, mustDT(2017, 1, 1, 0, 0, 37), nil)
	if err != nil {
		t.Fatal(err)
	}
	utc, err := tai.DateTime(UTC, nil)
	if err != nil {
		t.Fatal(err)
	}
	got, _ := utc.Format(DateTimeStandard)
	want, _ := mustDT(2017, 1, 1, 0, 0, 0).Format(DateTimeStandard)
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestInstant_TTToTAIFixedOffset(t *testing.T) {
	tt, err := NewInstant(TT, mustDT(2020, 6, 1, 12, 0, 0), nil)
	if err != nil {
		t.Fatal(err)
	}
	tai, err := tt.DateTime(TAI, nil)
	if err != nil {
		t.Fatal(err)
	}
	d, err := Seconds(32.184).InNanoseconds()
	if err != nil {
		t.Fatal(err)
	}
	expectedTAI := civilNs(mustDT(2020, 6, 1, 12, 0, 0)) - d
	if civilNs(tai) != expectedTAI {
		t.Fatalf("got civil ns %d, want %d", civilNs(tai), expectedTAI)
	}
}

func TestInstant_EpochRoundTrip(t *testing.T) {
	i, err := NewInstant(TT, Epoch, nil)
	if err != nil {
		t.Fatal(err)
	}
	back, err := i.DateTime(TT, nil)
	if err != nil {
		t.Fatal(err)
	}
	if back != Epoch {
		t.Fatalf("got %v, want %v", back, Epoch)
	}
}

func TestInstant_AddSubRoundTrip(t *testing.T) {
	i, err := NewInstant(TAI, mustDT(2020, 1, 1, 0, 0, 0), nil)
	if err != nil {
		t.Fatal(err)
	}
	shifted, err := i.Add(Seconds(3600))
	if err != nil {
		t.Fatal(err)
	}
	back, err := shifted.Sub(i)
	if err != nil {
		t.Fatal(err)
	}
	eq, err := back.Equal(Seconds(3600))
	if err != nil || !eq {
		t.Fatalf("round trip mismatch: %v %v", back, err)
	}
}

func TestInstant_UndefinedPropagates(t *testing.T) {
	u := UndefinedInstant()
	if u.IsDefined() {
		t.Fatal("zero value should be undefined")
	}
	if _, err := u.DateTime(TAI, nil); err == nil {
		t.Fatal("expected error converting undefined instant")
	}
}

func TestInstant_PreLeapTableRangeRejected(t *testing.T) {
	_, err := NewInstant(UTC, mustDT(1960, 1, 1, 0, 0, 0), nil)
	if err == nil {
		t.Fatal("expected range error before 1972 leap table start")
	}
}
