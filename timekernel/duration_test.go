package timekernel

import "testing"

func TestDuration_ISO8601FormatOmitsZeroComponents(t *testing.T) {
	d, err := Seconds(3).Add(Minutes(2))
	if err != nil {
		t.Fatal(err)
	}
	d, err = d.Add(Milliseconds(456))
	if err != nil {
		t.Fatal(err)
	}
	got, err := d.Format(ISO8601)
	if err != nil {
		t.Fatal(err)
	}
	if got != "PT2M3.456S" {
		t.Fatalf("got %q, want PT2M3.456S", got)
	}
}

func TestDuration_StandardFormatRoundTrip(t *testing.T) {
	d, _ := Hours(5).Add(Minutes(30))
	s, err := d.Format(Standard)
	if err != nil {
		t.Fatal(err)
	}
	if s != "05:30:00" {
		t.Fatalf("got %q, want 05:30:00", s)
	}
	parsed, err := ParseDuration(s)
	if err != nil {
		t.Fatal(err)
	}
	eq, err := parsed.Equal(d)
	if err != nil || !eq {
		t.Fatalf("round trip mismatch: %v %v", parsed, err)
	}
}

func TestDuration_ISO8601ZeroIsPT0S(t *testing.T) {
	d := Seconds(0)
	s, err := d.Format(ISO8601)
	if err != nil {
		t.Fatal(err)
	}
	if s != "PT0S" {
		t.Fatalf("got %q, want PT0S", s)
	}
}

func TestDuration_ISO8601ParseRoundTrip(t *testing.T) {
	original := "P1DT2H3M4.005006007S"
	d, err := ParseDuration(original)
	if err != nil {
		t.Fatal(err)
	}
	s, err := d.Format(ISO8601)
	if err != nil {
		t.Fatal(err)
	}
	if s != original {
		t.Fatalf("got %q, want %q", s, original)
	}
}

func TestDuration_NegativeRoundTrip(t *testing.T) {
	d := Seconds(-90)
	s, err := d.Format(Standard)
	if err != nil {
		t.Fatal(err)
	}
	if s != "-01:30" {
		t.Fatalf("got %q, want -01:30", s)
	}
	parsed, err := ParseDuration(s)
	if err != nil {
		t.Fatal(err)
	}
	eq, _ := parsed.Equal(d)
	if !eq {
		t.Fatalf("round trip mismatch: %v", parsed)
	}
}

func TestDuration_UndefinedPropagates(t *testing.T) {
	u := UndefinedDuration()
	if u.IsDefined() {
		t.Fatal("zero value should be undefined")
	}
	if _, err := u.InSeconds(); err == nil {
		t.Fatal("expected error on undefined duration")
	}
}
