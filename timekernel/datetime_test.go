package timekernel

import (
	"math"
	"testing"
)

func TestDateTime_JulianDateOfUnixEpoch(t *testing.T) {
	dt := DateTime{Date: Date{1970, 1, 1}, Time: ClockTime{}}
	jd := dt.JulianDate()
	if math.Abs(jd-unixEpochJD) > 1e-9 {
		t.Fatalf("got %v, want %v", jd, unixEpochJD)
	}
}

func TestDateTime_JulianDateRoundTrip(t *testing.T) {
	dt := DateTime{Date: Date{2017, 1, 1}, Time: ClockTime{Hour: 6, Minute: 30}}
	jd := dt.JulianDate()
	back, err := FromJulianDate(jd)
	if err != nil {
		t.Fatal(err)
	}
	if back.Date != dt.Date || back.Time.Hour != dt.Time.Hour || back.Time.Minute != dt.Time.Minute {
		t.Fatalf("round trip mismatch: got %v, want %v", back, dt)
	}
}

func TestDateTime_ModifiedJulianDateOffset(t *testing.T) {
	dt := DateTime{Date: Date{2000, 1, 1}, Time: ClockTime{}}
	if math.Abs(dt.JulianDate()-dt.ModifiedJulianDate()-mjdOffset) > 1e-9 {
		t.Fatal("MJD must be JD - 2400000.5")
	}
}

func TestDateTime_FormatAndParseStandard(t *testing.T) {
	dt := DateTime{Date: Date{2023, 6, 15}, Time: ClockTime{Hour: 12, Minute: 34, Second: 56, Millisecond: 1, Microsecond: 2, Nanosecond: 3}}
	s, err := dt.Format(DateTimeStandard)
	if err != nil {
		t.Fatal(err)
	}
	if s != "2023-06-15 12:34:56.001.002.003" {
		t.Fatalf("got %q", s)
	}
	back, err := ParseDateTime(s, DateTimeStandard)
	if err != nil {
		t.Fatal(err)
	}
	if back != dt {
		t.Fatalf("round trip mismatch: got %v, want %v", back, dt)
	}
}

func TestDateTime_FormatAndParseISO8601(t *testing.T) {
	dt := DateTime{Date: Date{2023, 6, 15}, Time: ClockTime{Hour: 12, Minute: 34, Second: 56}}
	s, err := dt.Format(DateTimeISO8601)
	if err != nil {
		t.Fatal(err)
	}
	if s != "2023-06-15T12:34:56.000000000Z" {
		t.Fatalf("got %q", s)
	}
	back, err := ParseDateTime(s, DateTimeISO8601)
	if err != nil {
		t.Fatal(err)
	}
	if back != dt {
		t.Fatalf("round trip mismatch: got %v, want %v", back, dt)
	}
}

func TestDateTime_FormatAndParseSTK(t *testing.T) {
	dt := DateTime{Date: Date{2023, 1, 5}, Time: ClockTime{Hour: 1, Minute: 2, Second: 3}}
	s, err := dt.Format(DateTimeSTK)
	if err != nil {
		t.Fatal(err)
	}
	if s != "5 Jan 2023 01:02:03.000000000" {
		t.Fatalf("got %q", s)
	}
	back, err := ParseDateTime(s, DateTimeSTK)
	if err != nil {
		t.Fatal(err)
	}
	if back != dt {
		t.Fatalf("round trip mismatch: got %v, want %v", back, dt)
	}
}

func TestDateTime_JulianDateOutOfRangeRejected(t *testing.T) {
	_, err := FromJulianDate(-1e9)
	if err == nil {
		t.Fatal("expected error for JD far outside representable year range")
	}
}
