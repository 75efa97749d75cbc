package eop

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/ostkgo/physics/manifest"
	"github.com/ostkgo/physics/timekernel"
)

// fakeDownloader writes a fixed body to a file under destDir instead of
// making a real network request, standing in for HTTPDownloader in tests.
type fakeDownloader struct {
	body string
}

func (f fakeDownloader) Download(url, destDir string) (string, error) {
	dest := filepath.Join(destDir, "data.dat")
	return dest, os.WriteFile(dest, []byte(f.body), 0o644)
}

const sampleBulletinA = `
 2026  1  3 61038 I  0.123456 0.000010  0.234567 0.000010  I -0.123456 0.000020
 2026  1  4 61039 I  0.124000 0.000010  0.235000 0.000010  I -0.123000 0.000020
 2026  1  5 61040 P  0.125000  0.236000 P -0.122500
 2026  1  6 61041 P  0.126000  0.237000 P -0.122000
`

func TestParseBulletinA(t *testing.T) {
	b, err := ParseBulletinA(strings.NewReader(sampleBulletinA))
	if err != nil {
		t.Fatal(err)
	}
	if len(b.Observations) != 2 {
		t.Fatalf("got %d observations, want 2", len(b.Observations))
	}
	if len(b.Predictions) != 2 {
		t.Fatalf("got %d predictions, want 2", len(b.Predictions))
	}
	if b.Observations[0].MJD != 61038 {
		t.Fatalf("got MJD %d, want 61038", b.Observations[0].MJD)
	}
	if b.Observations[0].UT1MinusUTC != -0.123456 {
		t.Fatalf("got UT1-UTC %v, want -0.123456", b.Observations[0].UT1MinusUTC)
	}
	if b.Predictions[1].MJD != 61041 {
		t.Fatalf("got prediction MJD %d, want 61041", b.Predictions[1].MJD)
	}
}

func TestParseBulletinA_Empty(t *testing.T) {
	if _, err := ParseBulletinA(strings.NewReader("not a data file\njust text\n")); err == nil {
		t.Fatal("expected error for a file with no matching rows")
	}
}

// placeAt overwrites line[offset:offset+len(s)] with s, padding line with
// spaces as needed. Used to build a fixed-column finals2000A.data test row
// without hand-counting literal whitespace.
func placeAt(line []byte, offset int, s string) []byte {
	for len(line) < offset+len(s) {
		line = append(line, ' ')
	}
	copy(line[offset:], s)
	return line
}

func buildFinalsLine(mjd int, pmx, pmy, dut1, lod float64) string {
	line := make([]byte, 90)
	for i := range line {
		line[i] = ' '
	}
	line = placeAt(line, 7, strconv.Itoa(mjd))
	line = placeAt(line, 19, strconv.FormatFloat(pmx, 'f', 6, 64))
	line = placeAt(line, 37, strconv.FormatFloat(pmy, 'f', 6, 64))
	line = placeAt(line, 58, strconv.FormatFloat(dut1, 'f', 7, 64))
	line = placeAt(line, 79, strconv.FormatFloat(lod, 'f', 4, 64))
	return string(line)
}

func TestParseFinals2000A(t *testing.T) {
	line1 := buildFinalsLine(61038, 0.1, 0.2, 0.05, 1.5)
	line2 := buildFinalsLine(61039, 0.11, 0.21, 0.06, 1.6)
	f, err := ParseFinals2000A(strings.NewReader(line1 + "\n" + line2 + "\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(f.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(f.Rows))
	}
	if f.Rows[0].MJD != 61038 {
		t.Fatalf("got MJD %d, want 61038", f.Rows[0].MJD)
	}
	if f.Rows[0].PMX != 0.1 || f.Rows[0].PMY != 0.2 {
		t.Fatalf("got pmx/pmy %v/%v, want 0.1/0.2", f.Rows[0].PMX, f.Rows[0].PMY)
	}
}

func TestManager_CascadingLookup(t *testing.T) {
	m := NewManager(t.TempDir(), nil, 0)
	if err := m.LoadBulletinA(strings.NewReader(sampleBulletinA)); err != nil {
		t.Fatal(err)
	}

	dt, err := timekernel.FromModifiedJulianDate(61038.5)
	if err != nil {
		t.Fatal(err)
	}
	instant, err := timekernel.NewInstant(timekernel.UTC, dt, nil)
	if err != nil {
		t.Fatal(err)
	}

	x, y, err := m.GetPolarMotionAt(instant)
	if err != nil {
		t.Fatal(err)
	}
	if x <= 0.123456 || x >= 0.124000 {
		t.Fatalf("interpolated x=%v not between bracketing rows", x)
	}
	if y <= 0.234567 || y >= 0.235000 {
		t.Fatalf("interpolated y=%v not between bracketing rows", y)
	}
}

func TestManager_DUT1AtUTC_ImplementsUT1Provider(t *testing.T) {
	m := NewManager(t.TempDir(), nil, 0)
	if err := m.LoadBulletinA(strings.NewReader(sampleBulletinA)); err != nil {
		t.Fatal(err)
	}
	var _ timekernel.UT1Provider = m

	dt, err := timekernel.FromModifiedJulianDate(61038.0)
	if err != nil {
		t.Fatal(err)
	}
	i, err := timekernel.NewInstant(timekernel.UT1, dt, m)
	if err != nil {
		t.Fatal(err)
	}
	if !i.IsDefined() {
		t.Fatal("expected defined instant")
	}
}

func TestManager_FetchLatestBulletinA_ResolvesViaManifest(t *testing.T) {
	man := manifest.NewManager(t.TempDir(), nil, 0)
	manifestJSON := `{"entries":[{"name":"bulletin-a","remote_url":"https://example.test/ser7.dat","last_update":"2026-01-15T00:00:00Z","update_cadence":"P1D"}]}`
	if err := man.Load(strings.NewReader(manifestJSON)); err != nil {
		t.Fatal(err)
	}

	m := NewManager(t.TempDir(), fakeDownloader{body: sampleBulletinA}, 5*time.Second)
	if err := m.FetchLatestBulletinA(man); err != nil {
		t.Fatal(err)
	}

	dt, err := timekernel.FromModifiedJulianDate(61038.0)
	if err != nil {
		t.Fatal(err)
	}
	instant, err := timekernel.NewInstant(timekernel.UTC, dt, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := m.GetPolarMotionAt(instant); err != nil {
		t.Fatalf("expected manifest-resolved fetch to load usable data: %v", err)
	}
}

func TestManager_FetchLatestBulletinA_NoManifestFails(t *testing.T) {
	m := NewManager(t.TempDir(), fakeDownloader{body: sampleBulletinA}, 5)
	if err := m.FetchLatestBulletinA(nil); err == nil {
		t.Fatal("expected error with no manifest.Manager configured")
	}
}

func TestManager_FetchLatestBulletinA_UnknownManifestEntryFails(t *testing.T) {
	man := manifest.NewManager(t.TempDir(), nil, 0)
	if err := man.Load(strings.NewReader(`{"entries":[]}`)); err != nil {
		t.Fatal(err)
	}
	m := NewManager(t.TempDir(), fakeDownloader{body: sampleBulletinA}, 5)
	if err := m.FetchLatestBulletinA(man); err == nil {
		t.Fatal("expected error when the manifest has no bulletin-a entry")
	}
}

func TestManager_NoDataReturnsDataUnavailable(t *testing.T) {
	m := NewManager(t.TempDir(), nil, 0)
	dt, err := timekernel.FromModifiedJulianDate(61038.0)
	if err != nil {
		t.Fatal(err)
	}
	instant, err := timekernel.NewInstant(timekernel.UTC, dt, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := m.GetPolarMotionAt(instant); err == nil {
		t.Fatal("expected error when no EOP data is loaded")
	}
}
