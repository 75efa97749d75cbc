package frame

import (
	"math"

	"github.com/ostkgo/physics/timekernel"
)

// EOPProvider supplies the Earth Orientation Parameters the ITRF and TEME
// frame providers need: polar motion, in arcseconds. Declared here rather
// than imported from the eop package — which satisfies this interface via
// eop.Manager.GetPolarMotionAt — following the same avoid-the-import
// pattern as timekernel.UT1Provider (see timekernel/scale.go): this
// package's providers consume Earth orientation data without depending on
// a particular source of it.
type EOPProvider interface {
	GetPolarMotionAt(instant timekernel.Instant) (xpArcsec, ypArcsec float64, err error)
}

// EOPFrames are the handles RegisterEOPFrames wires up.
type EOPFrames struct {
	CIRF Handle
	TIRF Handle
	ITRF Handle
	TEME Handle
}

// RegisterEOPFrames registers the Earth-orientation-driven frame chain
// GCRF -> CIRF -> TIRF -> ITRF -> TEME per spec.md §4.D: CIRF folds in
// precession and nutation (approximated here via the same FK5
// precession-nutation product used for TOD, since this package does not
// carry a separate CIO-locator (X, Y, s) series); TIRF adds the Earth
// Rotation Angle, read from ut1; ITRF adds polar motion, read from
// eopSrc; TEME is parented directly to ITRF (the spec's stated default
// wiring, rather than a GCRF-parented TEMEOfEpoch), related to it via
// classical GMST and the same polar motion correction, matching the
// teacher's coord/altaz.go GMST/Earth-rotation plumbing.
func RegisterEOPFrames(reg *Registry, gcrf Handle, eopSrc EOPProvider, ut1 timekernel.UT1Provider) (EOPFrames, error) {
	var ef EOPFrames
	var err error

	ef.CIRF, err = reg.Register("CIRF", gcrf, NewFuncProvider(func(instant timekernel.Instant) (Transform, error) {
		T, err := julianCenturiesTT(instant)
		if err != nil {
			return Transform{}, err
		}
		dpsi, deps := nutationAngles(T, NutationStandard)
		epsM := meanObliquity(T)
		nutation := Transform{Orientation: FromRotationMatrix(nutationMatrix(dpsi, deps, epsM))}
		precession := Transform{Orientation: FromRotationMatrix(precessionMatrix(T))}
		return nutation.Compose(precession).Compose(biasTransform()), nil
	}), ChildToParent)
	if err != nil {
		return ef, err
	}

	ef.TIRF, err = reg.Register("TIRF", ef.CIRF, NewFuncProvider(func(instant timekernel.Instant) (Transform, error) {
		era, err := earthRotationAngleAt(instant, ut1)
		if err != nil {
			return Transform{}, err
		}
		return Transform{Orientation: FromRotationMatrix(rotationZ(-era))}, nil
	}), ChildToParent)
	if err != nil {
		return ef, err
	}

	ef.ITRF, err = reg.Register("ITRF", ef.TIRF, NewFuncProvider(func(instant timekernel.Instant) (Transform, error) {
		xp, yp, err := polarMotionRadiansAt(instant, eopSrc)
		if err != nil {
			return Transform{}, err
		}
		return Transform{Orientation: FromRotationMatrix(polarMotionMatrix(xp, yp))}, nil
	}), ChildToParent)
	if err != nil {
		return ef, err
	}

	ef.TEME, err = reg.Register("TEME", ef.ITRF, NewFuncProvider(func(instant timekernel.Instant) (Transform, error) {
		ut1DT, err := instant.DateTime(timekernel.UT1, ut1)
		if err != nil {
			return Transform{}, err
		}
		tu := (ut1DT.JulianDate() - j2000JD) / 36525.0
		xp, yp, err := polarMotionRadiansAt(instant, eopSrc)
		if err != nil {
			return Transform{}, err
		}
		temeToPEF := Transform{Orientation: FromRotationMatrix(rotationZ(gmst1982(tu)))}
		itrfToTIRF := Transform{Orientation: FromRotationMatrix(polarMotionMatrix(xp, yp))}
		pefToITRF := itrfToTIRF.Inverse()
		return temeToPEF.Compose(pefToITRF), nil
	}), ChildToParent)
	if err != nil {
		return ef, err
	}

	return ef, nil
}

// Frames is the full canonical frame set Bootstrap wires up.
type Frames struct {
	StandardFrames
	EOPFrames
}

// Bootstrap registers the complete canonical frame tree of spec.md §4.D —
// the analytic GCRF/J2000/MOD/TOD/Galactic/B1950 chain plus the
// EOP-driven CIRF/TIRF/ITRF/TEME chain — in a single call, as
// environment.New needs to do exactly once per Environment.
func Bootstrap(reg *Registry, precision NutationPrecision, eopSrc EOPProvider, ut1 timekernel.UT1Provider) (Frames, error) {
	sf, err := RegisterStandardFrames(reg, precision)
	if err != nil {
		return Frames{}, err
	}
	ef, err := RegisterEOPFrames(reg, sf.GCRF, eopSrc, ut1)
	if err != nil {
		return Frames{}, err
	}
	return Frames{StandardFrames: sf, EOPFrames: ef}, nil
}

// earthRotationAngleAt returns the IAU 2000 Earth Rotation Angle, radians,
// in [0, 2*pi), at instant's UT1 reading.
func earthRotationAngleAt(instant timekernel.Instant, ut1 timekernel.UT1Provider) (float64, error) {
	dt, err := instant.DateTime(timekernel.UT1, ut1)
	if err != nil {
		return 0, err
	}
	tu := dt.JulianDate() - j2000JD
	era := 2 * math.Pi * (0.7790572732640 + 1.00273781191135448*tu)
	return wrap2Pi(era), nil
}

// polarMotionRadiansAt reads polar motion (xp, yp) from src at instant and
// converts it from arcseconds to radians.
func polarMotionRadiansAt(instant timekernel.Instant, src EOPProvider) (xpRad, ypRad float64, err error) {
	xpArcsec, ypArcsec, err := src.GetPolarMotionAt(instant)
	if err != nil {
		return 0, 0, err
	}
	return xpArcsec * arcsec2rad, ypArcsec * arcsec2rad, nil
}

// gmst1982 returns the IAU 1982 Greenwich Mean Sidereal Time, radians, for
// TuCenturies Julian centuries of UT1 from J2000.0. Source: Vallado,
// Fundamentals of Astrodynamics and Applications, Eq. 3-45, matching the
// teacher's coord/altaz.go GMST formula.
func gmst1982(tuCenturies float64) float64 {
	seconds := 67310.54841 +
		(876600.0*3600.0+8640184.812866)*tuCenturies +
		0.093104*tuCenturies*tuCenturies -
		6.2e-6*tuCenturies*tuCenturies*tuCenturies
	seconds = math.Mod(seconds, 86400.0)
	if seconds < 0 {
		seconds += 86400.0
	}
	return seconds * (2 * math.Pi / 86400.0)
}

// rotationZ returns the direction-cosine matrix rotating coordinate axes
// by theta about the z axis.
func rotationZ(theta float64) [3][3]float64 {
	s, c := math.Sincos(theta)
	return [3][3]float64{
		{c, s, 0},
		{-s, c, 0},
		{0, 0, 1},
	}
}

// polarMotionMatrix is the standard small-angle polar motion matrix
// mapping ITRS coordinates into TIRS (xpRad, ypRad in radians).
func polarMotionMatrix(xpRad, ypRad float64) [3][3]float64 {
	return [3][3]float64{
		{1, 0, xpRad},
		{0, 1, -ypRad},
		{-xpRad, ypRad, 1},
	}
}

func wrap2Pi(theta float64) float64 {
	r := math.Mod(theta, 2*math.Pi)
	if r < 0 {
		r += 2 * math.Pi
	}
	return r
}
