package timekernel

import "testing"

func TestClockTime_RejectsOutOfRangeFields(t *testing.T) {
	if _, err := NewClockTime(24, 0, 0, 0, 0, 0); err == nil {
		t.Fatal("expected error for hour 24")
	}
	if _, err := NewClockTime(0, 60, 0, 0, 0, 0); err == nil {
		t.Fatal("expected error for minute 60")
	}
}

func TestClockTime_NanosecondOfDayRoundTrip(t *testing.T) {
	c, err := NewClockTime(23, 59, 59, 999, 999, 999)
	if err != nil {
		t.Fatal(err)
	}
	ns := c.NanosecondOfDay()
	if ns != nsPerDay-1 {
		t.Fatalf("got %d, want %d", ns, nsPerDay-1)
	}
	back := ClockTimeFromNanosecondOfDay(ns)
	if back != c {
		t.Fatalf("round trip mismatch: got %v", back)
	}
}

func TestClockTime_Midnight(t *testing.T) {
	c, _ := NewClockTime(0, 0, 0, 0, 0, 0)
	if c.NanosecondOfDay() != 0 {
		t.Fatalf("midnight should be ns 0")
	}
}
