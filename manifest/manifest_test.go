package manifest

import (
	"strings"
	"testing"
)

const sampleManifest = `{
  "entries": [
    {"name": "bulletin-a", "remote_url": "https://example.test/ser7.dat", "last_update": "2026-01-15T00:00:00Z", "update_cadence": "P1D"},
    {"name": "cssi-space-weather", "remote_url": "https://example.test/SW-All.csv", "last_update": "2026-01-15T00:00:00Z", "update_cadence": "P1D"}
  ]
}`

func TestParse(t *testing.T) {
	m, err := Parse(strings.NewReader(sampleManifest))
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(m.Entries))
	}
	url, err := m.GetRemoteURL("bulletin-a")
	if err != nil {
		t.Fatal(err)
	}
	if url != "https://example.test/ser7.dat" {
		t.Fatalf("got url %q", url)
	}
}

func TestGetRemoteURL_UnknownNameFails(t *testing.T) {
	m, err := Parse(strings.NewReader(sampleManifest))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.GetRemoteURL("nonexistent"); err == nil {
		t.Fatal("expected error for unknown manifest entry")
	}
}

func TestManager_LoadAndLookup(t *testing.T) {
	m := NewManager(t.TempDir(), nil, 0)
	if err := m.Load(strings.NewReader(sampleManifest)); err != nil {
		t.Fatal(err)
	}
	ts, err := m.GetLastUpdateTimestamp("cssi-space-weather")
	if err != nil {
		t.Fatal(err)
	}
	if ts != "2026-01-15T00:00:00Z" {
		t.Fatalf("got timestamp %q", ts)
	}
}

func TestParse_AggregatesMultipleValidationFailures(t *testing.T) {
	bad := `{
	  "entries": [
	    {"name": "", "remote_url": "https://example.test/a"},
	    {"name": "b", "remote_url": ""}
	  ]
	}`
	_, err := Parse(strings.NewReader(bad))
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "empty name") || !strings.Contains(msg, "\"b\" has no remote_url") {
		t.Fatalf("expected both validation failures reported, got: %s", msg)
	}
}

func TestManager_NoManifestLoadedFails(t *testing.T) {
	m := NewManager(t.TempDir(), nil, 0)
	if _, err := m.GetRemoteURL("bulletin-a"); err == nil {
		t.Fatal("expected error when no manifest is loaded")
	}
}
