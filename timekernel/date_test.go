package timekernel

import "testing"

func TestDate_RejectsOutOfRangeYear(t *testing.T) {
	if _, err := NewDate(MinYear-1, 1, 1); err == nil {
		t.Fatal("expected error for year below MinYear")
	}
	if _, err := NewDate(MaxYear+1, 1, 1); err == nil {
		t.Fatal("expected error for year above MaxYear")
	}
}

func TestDate_RejectsInvalidLeapDay(t *testing.T) {
	if _, err := NewDate(2019, 2, 29); err == nil {
		t.Fatal("2019 is not a leap year, expected error")
	}
	if _, err := NewDate(2020, 2, 29); err != nil {
		t.Fatalf("2020 is a leap year, expected success: %v", err)
	}
}

func TestDate_DaysSinceUnixEpochRoundTrip(t *testing.T) {
	cases := []Date{
		{1970, 1, 1},
		{2000, 1, 1},
		{2017, 1, 1},
		{1969, 12, 31},
		{1400, 1, 1},
		{9999, 12, 31},
	}
	for _, d := range cases {
		days := d.DaysSinceUnixEpoch()
		back := DateFromDaysSinceUnixEpoch(days)
		if back != d {
			t.Fatalf("round trip mismatch for %v: got %v (days=%d)", d, back, days)
		}
	}
}

func TestDate_UnixEpochIsDayZero(t *testing.T) {
	d := Date{1970, 1, 1}
	if got := d.DaysSinceUnixEpoch(); got != 0 {
		t.Fatalf("got %d, want 0", got)
	}
}
