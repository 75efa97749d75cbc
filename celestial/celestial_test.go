package celestial

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"

	"github.com/ostkgo/physics/frame"
	"github.com/ostkgo/physics/timekernel"
	"github.com/ostkgo/physics/units"
)

// bindTestFrame attaches c to a fresh registry with a single identity root
// frame, so tests can exercise the frame-aware facade methods without
// caring about a real rotation — the ITRF/GCRF-driven conversions are
// exercised separately by frame's own tests and by environment's.
func bindTestFrame(t *testing.T, c *Celestial) frame.Handle {
	t.Helper()
	reg := frame.NewRegistry()
	root, err := reg.RegisterRoot("TestBodyFixed")
	if err != nil {
		t.Fatal(err)
	}
	c.BindFrame(reg, root)
	return root
}

func mustTestInstant(t *testing.T) timekernel.Instant {
	t.Helper()
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
	return instant
}

func TestSpherical_AccelerationAt(t *testing.T) {
	model := Spherical{GM: EarthGM}
	position := r3.Vector{X: EarthEquatorialRadius, Y: 0, Z: 0}
	acc, err := model.AccelerationAt(position)
	if err != nil {
		t.Fatal(err)
	}
	want := -EarthGM / (EarthEquatorialRadius * EarthEquatorialRadius)
	if math.Abs(acc.X-want) > 1e-6 {
		t.Fatalf("got acc.X=%v, want %v", acc.X, want)
	}
	if acc.Y != 0 || acc.Z != 0 {
		t.Fatalf("expected zero Y/Z component, got %v", acc)
	}
}

func TestSpherical_AtOrigin(t *testing.T) {
	model := Spherical{GM: EarthGM}
	acc, err := model.AccelerationAt(r3.Vector{})
	if err != nil {
		t.Fatal(err)
	}
	if acc.Norm() != 0 {
		t.Fatalf("expected zero acceleration at origin, got %v", acc)
	}
}

func TestWGS84_EquatorialPointMassDominates(t *testing.T) {
	model := NewEarthWGS84()
	position := r3.Vector{X: EarthEquatorialRadius + 500000, Y: 0, Z: 0}
	acc, err := model.AccelerationAt(position)
	if err != nil {
		t.Fatal(err)
	}
	pointMass := Spherical{GM: EarthGM}
	pmAcc, _ := pointMass.AccelerationAt(position)
	if math.Abs(acc.X-pmAcc.X)/math.Abs(pmAcc.X) > 0.01 {
		t.Fatalf("J2 perturbation too large relative to point mass: got %v, point mass %v", acc.X, pmAcc.X)
	}
}

func TestWGS84_PolarAxisZNonzero(t *testing.T) {
	model := NewEarthWGS84()
	position := r3.Vector{X: 0, Y: 0, Z: EarthEquatorialRadius + 500000}
	acc, err := model.AccelerationAt(position)
	if err != nil {
		t.Fatal(err)
	}
	if acc.Z >= 0 {
		t.Fatalf("expected net downward (negative) acceleration along polar axis, got %v", acc.Z)
	}
}

func TestDipole_FieldAt(t *testing.T) {
	d := Dipole{Moment: r3.Vector{X: 0, Y: 0, Z: 8e22}}
	field, err := d.FieldAt(r3.Vector{X: 0, Y: 0, Z: EarthEquatorialRadius})
	if err != nil {
		t.Fatal(err)
	}
	if field.Z <= 0 {
		t.Fatalf("expected positive field along dipole axis, got %v", field)
	}
}

func TestDipole_AtOriginFails(t *testing.T) {
	d := Dipole{Moment: r3.Vector{Z: 1}}
	if _, err := d.FieldAt(r3.Vector{}); err == nil {
		t.Fatal("expected error at origin")
	}
}

func TestExponentialAtmosphere_SeaLevel(t *testing.T) {
	atmo := NewEarthExponentialAtmosphere()
	density, err := atmo.DensityAt(0)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(density-EarthSeaLevelDensity) > 1e-9 {
		t.Fatalf("got density %v, want %v", density, EarthSeaLevelDensity)
	}
}

func TestExponentialAtmosphere_DecreasesWithAltitude(t *testing.T) {
	atmo := NewEarthExponentialAtmosphere()
	low, err := atmo.DensityAt(1000)
	if err != nil {
		t.Fatal(err)
	}
	high, err := atmo.DensityAt(50000)
	if err != nil {
		t.Fatal(err)
	}
	if high >= low {
		t.Fatalf("expected density to decrease with altitude: low=%v high=%v", low, high)
	}
}

func TestExponentialAtmosphere_NegativeAltitudeFails(t *testing.T) {
	atmo := NewEarthExponentialAtmosphere()
	if _, err := atmo.DensityAt(-1); err == nil {
		t.Fatal("expected error for negative altitude")
	}
}

func TestNRLMSISE00_ScalesWithActivity(t *testing.T) {
	fallback := NewEarthExponentialAtmosphere()
	quiet := NRLMSISE00{Fallback: fallback, F107: 70, F107Avg: 70}
	active := NRLMSISE00{Fallback: fallback, F107: 200, F107Avg: 70}

	quietDensity, err := quiet.DensityAt(400000)
	if err != nil {
		t.Fatal(err)
	}
	activeDensity, err := active.DensityAt(400000)
	if err != nil {
		t.Fatal(err)
	}
	if activeDensity <= quietDensity {
		t.Fatalf("expected higher density under higher solar activity: quiet=%v active=%v", quietDensity, activeDensity)
	}
}

func TestCelestial_Earth(t *testing.T) {
	earth := Earth()
	bodyFrame := bindTestFrame(t, earth)
	instant := mustTestInstant(t)

	acc, err := earth.GravitationalAccelerationAt(instant, r3.Vector{X: EarthEquatorialRadius + 400000, Y: 0, Z: 0}, bodyFrame)
	if err != nil {
		t.Fatal(err)
	}
	if acc.Norm() == 0 {
		t.Fatal("expected nonzero gravitational acceleration")
	}
	if acc.Frame != bodyFrame {
		t.Fatalf("expected result tagged with body frame %v, got %v", bodyFrame, acc.Frame)
	}

	density, err := earth.AtmosphericDensityAtAltitude(400000)
	if err != nil {
		t.Fatal(err)
	}
	if density <= 0 {
		t.Fatal("expected positive atmospheric density")
	}

	atPosition, err := earth.AtmosphericDensityAt(instant, r3.Vector{X: EarthEquatorialRadius + 400000, Y: 0, Z: 0}, bodyFrame)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(atPosition.Value-density) > 1.0 {
		t.Fatalf("expected position-based density to roughly match altitude-based density: got %v, want ~%v", atPosition.Value, density)
	}

	if _, err := earth.MagneticFieldAt(instant, r3.Vector{X: EarthEquatorialRadius}, bodyFrame); err == nil {
		t.Fatal("expected DataUnavailable for unmodeled magnetic field")
	}
}

func TestCelestial_GravitationalAccelerationAt_UnboundFails(t *testing.T) {
	earth := Earth()
	instant := mustTestInstant(t)
	if _, err := earth.GravitationalAccelerationAt(instant, r3.Vector{X: EarthEquatorialRadius}, frame.NoParent); err == nil {
		t.Fatal("expected InvalidState for an unbound Celestial")
	}
}

func TestCelestial_GeodeticRadiusAt(t *testing.T) {
	earth := Earth()
	equatorial := earth.GeodeticRadiusAt(0)
	polar := earth.GeodeticRadiusAt(math.Pi / 2)
	if equatorial <= polar {
		t.Fatalf("expected equatorial radius > polar radius: equatorial=%v polar=%v", equatorial, polar)
	}
	if math.Abs(equatorial-EarthEquatorialRadius) > 1.0 {
		t.Fatalf("got equatorial radius %v, want ~%v", equatorial, EarthEquatorialRadius)
	}
}

func TestCelestial_EquatorialRadiusQuantity(t *testing.T) {
	earth := Earth()
	q := earth.EquatorialRadiusQuantity()
	if !q.IsDefined() {
		t.Fatal("expected defined quantity")
	}
	km, err := q.In(units.Kilometer)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(km-6378.137) > 1e-6 {
		t.Fatalf("got %v km, want ~6378.137", km)
	}
}

func TestCelestial_AtmosphericDensityAtAltitudeQuantity(t *testing.T) {
	earth := Earth()
	altitude := units.NewQuantity(400, units.Kilometer)
	density, err := earth.AtmosphericDensityAtAltitudeQuantity(altitude)
	if err != nil {
		t.Fatal(err)
	}
	direct, err := earth.AtmosphericDensityAtAltitude(400000)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(density-direct) > 1e-12 {
		t.Fatalf("got %v, want %v", density, direct)
	}
}

func TestCelestial_AtmosphericDensityAtAltitudeQuantity_UndefinedFails(t *testing.T) {
	earth := Earth()
	if _, err := earth.AtmosphericDensityAtAltitudeQuantity(units.Undefined()); err == nil {
		t.Fatal("expected error for undefined quantity")
	}
}

func TestSphericalHarmonicMagnetic_InsufficientDataFails(t *testing.T) {
	m := SphericalHarmonicMagnetic{MaxDegree: 0}
	if _, err := m.FieldAt(r3.Vector{X: 1}); err == nil {
		t.Fatal("expected error for degree-0 model")
	}
}

func TestLegendreSeries_NegativeDegreeFails(t *testing.T) {
	l := LegendreSeries{GM: EarthGM, MaxDegree: -1}
	if _, err := l.AccelerationAt(r3.Vector{X: EarthEquatorialRadius}); err == nil {
		t.Fatal("expected error for negative max degree")
	}
}
