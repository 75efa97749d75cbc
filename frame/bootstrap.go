package frame

import (
	"github.com/ostkgo/physics/timekernel"
)

// julianCenturiesTT returns T, Julian centuries from J2000.0 TT, for instant.
func julianCenturiesTT(instant timekernel.Instant) (float64, error) {
	dt, err := instant.DateTime(timekernel.TT, nil)
	if err != nil {
		return 0, err
	}
	jd := dt.JulianDate()
	return (jd - j2000JD) / 36525.0, nil
}

// StandardFrames are the handles RegisterStandardFrames wires up.
type StandardFrames struct {
	GCRF     Handle
	J2000    Handle
	MOD      Handle
	TOD      Handle
	Galactic Handle
	B1950    Handle
}

// RegisterStandardFrames registers the GCRF-rooted analytic frame chain
// (GCRF -> J2000 -> MOD -> TOD via IAU 2006 precession and the IAU 1980
// nutation series) plus the fixed Galactic and B1950 siblings, adapted from
// the teacher's coord/frames.go matrices and coord.go's precession/nutation
// chain (TEMEToICRF, GeodeticToICRF). The EOP-driven CIRF/TIRF/ITRF/TEME
// chain, which needs polar motion and UT1-UTC a caller supplies (typically
// backed by eop.Manager), is registered separately by RegisterEOPFrames —
// see eop_frames.go — and the two are composed by Bootstrap.
func RegisterStandardFrames(reg *Registry, precision NutationPrecision) (StandardFrames, error) {
	var sf StandardFrames
	var err error

	sf.GCRF, err = reg.RegisterRoot("GCRF")
	if err != nil {
		return sf, err
	}

	sf.J2000, err = reg.Register("J2000", sf.GCRF, NewStaticProvider(biasTransform()), ChildToParent)
	if err != nil {
		return sf, err
	}

	sf.Galactic, err = reg.Register("Galactic", sf.GCRF, NewStaticProvider(
		Transform{Orientation: FromRotationMatrix(galacticMatrix)}), ChildToParent)
	if err != nil {
		return sf, err
	}

	sf.B1950, err = reg.Register("B1950", sf.GCRF, NewStaticProvider(
		Transform{Orientation: FromRotationMatrix(b1950Matrix)}), ChildToParent)
	if err != nil {
		return sf, err
	}

	sf.MOD, err = reg.Register("MOD", sf.J2000, NewFuncProvider(func(instant timekernel.Instant) (Transform, error) {
		T, err := julianCenturiesTT(instant)
		if err != nil {
			return Transform{}, err
		}
		return Transform{Orientation: FromRotationMatrix(precessionMatrix(T))}, nil
	}), ChildToParent)
	if err != nil {
		return sf, err
	}

	sf.TOD, err = reg.Register("TOD", sf.MOD, NewFuncProvider(func(instant timekernel.Instant) (Transform, error) {
		T, err := julianCenturiesTT(instant)
		if err != nil {
			return Transform{}, err
		}
		dpsi, deps := nutationAngles(T, precision)
		epsM := meanObliquity(T)
		return Transform{Orientation: FromRotationMatrix(nutationMatrix(dpsi, deps, epsM))}, nil
	}), ChildToParent)
	if err != nil {
		return sf, err
	}

	return sf, nil
}

// galacticMatrix is the rotation from ICRF (J2000) to Galactic System II
// (IAU 1958). Source: SPICE Toolkit / Skyfield, via the teacher's
// coord/frames.go GalacticMatrix.
var galacticMatrix = [3][3]float64{
	{-0.054875539395742523, -0.87343710472759606, -0.48383499177002515},
	{0.49410945362774389, -0.44482959429757496, 0.74698224869989183},
	{-0.86766613568337381, -0.19807638961301985, 0.45598379452141991},
}

// b1950Matrix is the rotation from ICRF (J2000) to the mean equator and
// equinox of B1950 (FK4), via the teacher's coord/frames.go B1950Matrix.
var b1950Matrix = [3][3]float64{
	{0.99992570795236291, 0.011178938126427691, 0.0048590038414544293},
	{-0.011178938137770135, 0.9999375133499887, -2.715792625851078e-05},
	{-0.0048590038153592712, -2.7162594714247048e-05, 0.9999881946023742},
}

// biasTransform returns the fixed frame-bias rotation from ICRS to the
// dynamical mean equator and equinox of J2000 (IERS Conventions 2003,
// Chapter 5), via the teacher's coord/frames.go ICRSToJ2000Matrix init().
func biasTransform() Transform {
	const asec2rad = deg2rad / 3600.0
	xi0 := -0.0166170 * asec2rad
	eta0 := -0.0068192 * asec2rad
	da0 := -0.01460 * asec2rad

	yx := -da0
	zx := xi0
	xy := da0
	zy := eta0
	xz := -xi0
	yz := -eta0

	xx := 1.0 - 0.5*(yx*yx+zx*zx)
	yy := 1.0 - 0.5*(yx*yx+zy*zy)
	zz := 1.0 - 0.5*(zy*zy+zx*zx)

	m := [3][3]float64{
		{xx, xy, xz},
		{yx, yy, yz},
		{zx, zy, zz},
	}
	return Transform{Orientation: FromRotationMatrix(m)}
}
