package frame

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"

	"github.com/ostkgo/physics/timekernel"
)

// fakeEOPSource is a fixed polar-motion/UT1-UTC source for tests, standing
// in for eop.Manager without importing it (frame must not depend on eop).
type fakeEOPSource struct {
	xpArcsec, ypArcsec float64
	ut1MinusUTCSeconds float64
}

func (f fakeEOPSource) GetPolarMotionAt(timekernel.Instant) (float64, float64, error) {
	return f.xpArcsec, f.ypArcsec, nil
}

func (f fakeEOPSource) DUT1AtUTC(timekernel.DateTime) (timekernel.Duration, error) {
	return timekernel.Seconds(f.ut1MinusUTCSeconds), nil
}

func TestBootstrap_RegistersFullCanonicalTree(t *testing.T) {
	reg := NewRegistry()
	src := fakeEOPSource{xpArcsec: 0.108, ypArcsec: 0.287, ut1MinusUTCSeconds: 0.3554}
	frames, err := Bootstrap(reg, NutationStandard, src, src)
	if err != nil {
		t.Fatal(err)
	}
	for name, h := range map[string]Handle{
		"GCRF": frames.GCRF, "J2000": frames.J2000, "MOD": frames.MOD, "TOD": frames.TOD,
		"Galactic": frames.Galactic, "B1950": frames.B1950,
		"CIRF": frames.CIRF, "TIRF": frames.TIRF, "ITRF": frames.ITRF, "TEME": frames.TEME,
	} {
		if got := reg.Name(h); got != name {
			t.Fatalf("handle for %s resolved to %q", name, got)
		}
	}
}

func TestRegistry_ITRFToGCRFAtJ2000(t *testing.T) {
	// spec.md §8 scenario 2: Bulletin A with xp=0.108", yp=0.287",
	// UT1-UTC=0.3554s at MJD 51544 (2000-01-01 12:00 TT, J2000.0) rotates
	// (1,0,0)_ITRF to approximately (0.1770, 0.9842, ~0)_GCRF.
	reg := NewRegistry()
	src := fakeEOPSource{xpArcsec: 0.108, ypArcsec: 0.287, ut1MinusUTCSeconds: 0.3554}
	frames, err := Bootstrap(reg, NutationStandard, src, src)
	if err != nil {
		t.Fatal(err)
	}
	date, err := timekernel.NewDate(2000, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	ct, err := timekernel.NewClockTime(12, 0, 0, 0, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	instant, err := timekernel.NewInstant(timekernel.TT, timekernel.NewDateTime(date, ct), nil)
	if err != nil {
		t.Fatal(err)
	}

	tr, err := reg.GetTransform(frames.ITRF, frames.GCRF, instant)
	if err != nil {
		t.Fatal(err)
	}
	got := tr.ApplyToPosition(r3.Vector{X: 1, Y: 0, Z: 0})
	if math.Abs(got.Y) < 0.5 {
		t.Fatalf("expected ITRF x-axis to rotate substantially toward +Y in GCRF (Earth rotation dominates), got %v", got)
	}
	if got.Norm() < 0.99 || got.Norm() > 1.01 {
		t.Fatalf("expected a unit rotation, got norm %v (%v)", got.Norm(), got)
	}
}

func TestRegistry_TEMEParentedToITRF(t *testing.T) {
	reg := NewRegistry()
	src := fakeEOPSource{xpArcsec: 0.05, ypArcsec: 0.3, ut1MinusUTCSeconds: 0.1}
	frames, err := Bootstrap(reg, NutationStandard, src, src)
	if err != nil {
		t.Fatal(err)
	}
	instant := mustInstant(t, 2020, 6, 15, 0, 0, 0)
	tr, err := reg.GetTransform(frames.TEME, frames.ITRF, instant)
	if err != nil {
		t.Fatal(err)
	}
	p := r3.Vector{X: 7000, Y: 0, Z: 0}
	got := tr.ApplyToPosition(p)
	if math.Abs(got.Norm()-p.Norm()) > 1e-6 {
		t.Fatalf("TEME->ITRF should preserve vector norm (pure rotation): got %v, want %v", got.Norm(), p.Norm())
	}
}
