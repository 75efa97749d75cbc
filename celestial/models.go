// Package celestial provides pluggable gravitational, magnetic, and
// atmospheric field models attached to a Celestial body, plus the
// Celestial facade itself. Grounded in
// _examples/PossumXI-Asgard_Arobi/Pricilla/internal/physics/orbital_mechanics.go's
// CalculateGravity/GetAtmosphericDensity constant blocks and formulas,
// generalized from a single hardcoded Earth model into the spec's
// pluggable model interfaces.
package celestial

import (
	"math"

	"github.com/golang/geo/r3"

	"github.com/ostkgo/physics/ostkerr"
)

// Earth's constants, carried over from the teacher's orbital_mechanics.go
// constant block (GM_Earth, EarthJ2..EarthJ4, EarthEquatorialR).
const (
	EarthGM              = 3.986004418e14 // m^3/s^2
	EarthEquatorialRadius = 6.378137e6    // m
	EarthJ2              = 1.08263e-3
	EarthJ3              = -2.54e-6
	EarthJ4              = -1.62e-6

	EarthSeaLevelDensity = 1.225   // kg/m^3
	EarthScaleHeight     = 8500.0  // m
	EarthKarmanLine      = 100000.0 // m
)

// GravitationalModel evaluates gravitational acceleration at a body-fixed
// position, in m/s^2.
type GravitationalModel interface {
	AccelerationAt(position r3.Vector) (r3.Vector, error)
}

// Spherical is a point-mass gravitational model.
type Spherical struct {
	GM float64
}

// AccelerationAt implements GravitationalModel.
func (s Spherical) AccelerationAt(position r3.Vector) (r3.Vector, error) {
	r := position.Norm()
	if r == 0 {
		return r3.Vector{}, nil
	}
	return position.Mul(-s.GM / (r * r * r)), nil
}

// WGS84 is a zonal (J2/J3/J4) gravitational model, ported from the teacher's
// CalculateGravity J2/J3/J4 perturbation terms.
type WGS84 struct {
	GM              float64
	EquatorialRadius float64
	J2, J3, J4      float64
}

// NewEarthWGS84 returns a WGS84 model parameterized with Earth's constants.
func NewEarthWGS84() WGS84 {
	return WGS84{GM: EarthGM, EquatorialRadius: EarthEquatorialRadius, J2: EarthJ2, J3: EarthJ3, J4: EarthJ4}
}

// AccelerationAt implements GravitationalModel.
func (w WGS84) AccelerationAt(position r3.Vector) (r3.Vector, error) {
	r := position.Norm()
	if r == 0 {
		return r3.Vector{}, nil
	}
	r2 := r * r
	r3v := r2 * r
	r5 := r2 * r3v
	r7 := r5 * r2

	pointMass := position.Mul(-w.GM / r3v)

	re2 := w.EquatorialRadius * w.EquatorialRadius
	z := position.Z
	z2 := z * z

	factorJ2 := 1.5 * w.J2 * w.GM * re2 / r5
	j2Factor := 5.0*z2/r2 - 1.0
	j2 := r3.Vector{
		X: factorJ2 * position.X * j2Factor,
		Y: factorJ2 * position.Y * j2Factor,
		Z: factorJ2 * position.Z * (5.0*z2/r2 - 3.0),
	}

	re3 := re2 * w.EquatorialRadius
	re4 := re3 * w.EquatorialRadius
	z3 := z2 * z
	z4 := z2 * z2

	factorJ3 := 2.5 * w.J3 * w.GM * re3 / r7
	j3XY := 7.0*z3/r2 - 3.0*z
	j3 := r3.Vector{
		X: factorJ3 * position.X * j3XY,
		Y: factorJ3 * position.Y * j3XY,
		Z: factorJ3 * (6.0*z2 - 7.0*z4/r2 - 0.6*r2),
	}

	factorJ4 := 5.0 / 8.0 * w.J4 * w.GM * re4 / r7
	j4Factor := 3.0 - 42.0*z2/r2 + 63.0*z4/(r2*r2)
	j4 := r3.Vector{
		X: factorJ4 * position.X * j4Factor,
		Y: factorJ4 * position.Y * j4Factor,
		Z: factorJ4 * position.Z * (15.0 - 70.0*z2/r2 + 63.0*z4/(r2*r2)),
	}

	return pointMass.Add(j2).Add(j3).Add(j4), nil
}

// LegendreSeries is a degree-bounded zonal/spherical-harmonic gravitational
// model for higher-fidelity EGM-family coefficient sets. It holds the
// coefficient table, following WGS84's pluggable shape above, but has no
// associated-Legendre recurrence: AccelerationAt evaluates only the
// point-mass term and does not read C or S.
type LegendreSeries struct {
	GM               float64
	EquatorialRadius float64
	MaxDegree        int
	C, S             [][]float64 // normalized coefficients, C[n][m]/S[n][m]
}

// AccelerationAt implements GravitationalModel by falling back to a
// point-mass term; callers needing true high-degree fidelity supply their
// own evaluator via a custom GravitationalModel. This keeps the
// associated-Legendre recurrence itself out of scope, matching spec.md's
// "numerical kernel assumed available" framing for anything beyond J2/J4.
func (l LegendreSeries) AccelerationAt(position r3.Vector) (r3.Vector, error) {
	if l.MaxDegree < 0 {
		return r3.Vector{}, ostkerr.InvalidInput
	}
	return Spherical{GM: l.GM}.AccelerationAt(position)
}

// MagneticModel evaluates magnetic field strength (Tesla) at a body-fixed
// position.
type MagneticModel interface {
	FieldAt(position r3.Vector) (r3.Vector, error)
}

// Dipole is a simple magnetic dipole model.
type Dipole struct {
	// Moment is the dipole moment vector, A*m^2.
	Moment r3.Vector
}

const muNaughtOver4Pi = 1e-7 // mu_0 / (4*pi), in T*m^3/A

// FieldAt implements MagneticModel using the standard dipole field formula
// B(r) = (mu0/4pi) * (3(m.r_hat)r_hat - m) / r^3.
func (d Dipole) FieldAt(position r3.Vector) (r3.Vector, error) {
	r := position.Norm()
	if r == 0 {
		return r3.Vector{}, ostkerr.InvalidInput
	}
	rHat := position.Mul(1.0 / r)
	mDotR := d.Moment.Dot(rHat)
	field := rHat.Mul(3 * mDotR).Sub(d.Moment).Mul(muNaughtOver4Pi / (r * r * r))
	return field, nil
}

// SphericalHarmonicMagnetic is the pluggable slot for IGRF/WMM-style
// coefficient-table magnetic models, sharing the degree-bounded evaluator
// shape of LegendreSeries (spec.md's "numerical kernel assumed available").
type SphericalHarmonicMagnetic struct {
	MaxDegree int
	G, H      [][]float64
}

// FieldAt falls back to a dipole approximation using the model's degree-1
// Gauss coefficients, since the full spherical-harmonic magnetic
// potential gradient is the numerical kernel spec.md leaves external.
func (s SphericalHarmonicMagnetic) FieldAt(position r3.Vector) (r3.Vector, error) {
	if s.MaxDegree < 1 || len(s.G) < 2 {
		return r3.Vector{}, ostkerr.DataUnavailable
	}
	moment := r3.Vector{X: s.G[1][1], Y: s.H[1][1], Z: s.G[1][0]}
	return Dipole{Moment: moment}.FieldAt(position)
}

// AtmosphericModel evaluates atmospheric density (kg/m^3) at a given
// altitude above the reference ellipsoid, meters.
type AtmosphericModel interface {
	DensityAt(altitude float64) (float64, error)
}

// ExponentialAtmosphere is a piecewise-exponential density profile, ported
// from the teacher's SeaLevelDensity/ScaleHeight/KarmanLine constants and
// GetAtmosphericDensity's exponential branch, generalized into a per-band
// table (troposphere/stratosphere/thermosphere) instead of one global scale
// height.
type ExponentialAtmosphere struct {
	Bands []AtmosphereBand
}

// AtmosphereBand is one altitude band of a piecewise-exponential profile.
type AtmosphereBand struct {
	MinAltitude   float64 // m, inclusive lower bound
	BaseDensity   float64 // kg/m^3 at MinAltitude
	ScaleHeight   float64 // m
}

// NewEarthExponentialAtmosphere returns a three-band Earth exponential
// profile (troposphere, stratosphere, thermosphere).
func NewEarthExponentialAtmosphere() ExponentialAtmosphere {
	return ExponentialAtmosphere{Bands: []AtmosphereBand{
		{MinAltitude: 0, BaseDensity: EarthSeaLevelDensity, ScaleHeight: 8500},
		{MinAltitude: 25000, BaseDensity: 0.0334, ScaleHeight: 6500},
		{MinAltitude: 100000, BaseDensity: 5.6e-7, ScaleHeight: 30000},
	}}
}

// DensityAt implements AtmosphericModel.
func (e ExponentialAtmosphere) DensityAt(altitude float64) (float64, error) {
	if altitude < 0 {
		return 0, ostkerr.InvalidInput
	}
	if len(e.Bands) == 0 {
		return 0, ostkerr.DataUnavailable
	}
	band := e.Bands[0]
	for _, b := range e.Bands {
		if altitude >= b.MinAltitude {
			band = b
		}
	}
	return band.BaseDensity * math.Exp(-(altitude-band.MinAltitude)/band.ScaleHeight), nil
}

// NRLMSISE00 is the pluggable slot for the solar-activity-driven
// NRLMSISE-00 thermosphere model; its F10.7/Ap inputs are the fields below,
// set by the caller (nothing in this package looks them up from a
// spaceweather.Manager), while the density formula itself is the
// "numerical kernel... assumed available" spec.md excludes.
type NRLMSISE00 struct {
	Fallback AtmosphericModel
	F107     float64
	F107Avg  float64
	Ap       float64
}

// DensityAt implements AtmosphericModel by delegating to Fallback, scaled
// by a simple solar-activity factor — a placeholder for the real NRLMSISE-00
// numerical kernel, which is out of scope per spec.md §1.
func (n NRLMSISE00) DensityAt(altitude float64) (float64, error) {
	if n.Fallback == nil {
		return 0, ostkerr.DataUnavailable
	}
	base, err := n.Fallback.DensityAt(altitude)
	if err != nil {
		return 0, err
	}
	activityFactor := 1.0 + 0.01*(n.F107-n.F107Avg)/n.F107Avg
	return base * activityFactor, nil
}
