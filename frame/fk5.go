package frame

import "math"

const (
	deg2rad    = math.Pi / 180.0
	arcsec2rad = deg2rad / 3600.0
	// tenThousandthArcsec2Rad converts 0.0001 arcsec (the IAU 1980 nutation
	// series' native unit) to radians.
	tenThousandthArcsec2Rad = arcsec2rad / 1.0e4
	j2000JD                 = 2451545.0
)

// NutationPrecision names the IAU 1980 luni-solar nutation tier used by the
// TOD frame provider. NutationStandard is the only value; nutationAngles
// always evaluates every row of nutationTerms, whatever precision it is given.
type NutationPrecision int

const (
	// NutationStandard uses the largest-amplitude terms of the IAU 1980
	// series (see nutationTerms below).
	NutationStandard NutationPrecision = iota
)

// fundamentalArgs computes the Delaunay arguments (D, M, M', F, Omega) of
// the IAU 1980 nutation theory (Seidelmann 1982 / Wahr 1981), in radians.
// T is Julian centuries from J2000.0 TT. Source: Meeus, Astronomical
// Algorithms (2nd ed.), Ch. 22, Eq. 22.1 — the formulation IAU 1980's own
// nutation table (Table 21.A there) is tabulated against.
func fundamentalArgs(T float64) (d, m, mp, f, om float64) {
	d = degrees(297.85036+445267.111480*T-0.0019142*T*T+T*T*T/189474.0) * deg2rad
	m = degrees(357.52772+35999.050340*T-0.0001603*T*T-T*T*T/300000.0) * deg2rad
	mp = degrees(134.96298+477198.867398*T+0.0086972*T*T+T*T*T/56250.0) * deg2rad
	f = degrees(93.27191+483202.017538*T-0.0036825*T*T+T*T*T/327270.0) * deg2rad
	om = degrees(125.04452-1934.136261*T+0.0020708*T*T+T*T*T/450000.0) * deg2rad
	return
}

// degrees reduces a degree value into [0, 360).
func degrees(deg float64) float64 {
	r := math.Mod(deg, 360.0)
	if r < 0 {
		r += 360.0
	}
	return r
}

// meanObliquity returns the mean obliquity of the ecliptic at date, radians.
// IAU 1980 formula (Lieske 1979).
func meanObliquity(T float64) float64 {
	return (84381.448 + T*(-46.8150+T*(-0.00059+T*0.001813))) * arcsec2rad
}

// nutationTerm is one row of the IAU 1980 nutation series: multipliers of
// the D, M, M', F, Omega Delaunay arguments, and the longitude (psi) and
// obliquity (eps) coefficients (with their per-century rates), in units of
// 0.0001 arcsec.
type nutationTerm struct {
	nd, nm, nmp, nf, nom int
	psiSin, psiSinT      float64
	epsCos, epsCosT      float64
}

// nutationTerms is a truncation of the IAU 1980 (Wahr) nutation series —
// the 63 largest-amplitude rows of the 106-row table published as
// Seidelmann 1982 (Celestial Mechanics 27) Table 5.1 and reproduced as
// Meeus, Astronomical Algorithms Table 21.A. Rows are ordered by |psiSin|,
// largest first; the rows dropped from the full table each contribute
// under 0.0003" to Delta-psi, well under the accuracy this reduction
// targets. Replaces a prior, mistaken port of the IAU 2000A 30-term
// series, which used a different theory, a different native coefficient
// unit (0.1 microarcsec), and different Delaunay argument formulas.
var nutationTerms = []nutationTerm{
	{0, 0, 0, 0, 1, -171996, -174.2, 92025, 8.9},
	{-2, 0, 0, 2, 2, -13187, -1.6, 5736, -3.1},
	{0, 0, 0, 2, 2, -2274, -0.2, 977, -0.5},
	{0, 0, 0, 0, 2, 2062, 0.2, -895, 0.5},
	{0, 1, 0, 0, 0, 1426, -3.4, 54, -0.1},
	{0, 0, 1, 0, 0, 712, 0.1, -7, 0},
	{-2, 1, 0, 2, 2, -517, 1.2, 224, -0.6},
	{0, 0, 0, 2, 1, -386, -0.4, 200, 0},
	{0, 0, 1, 2, 2, -301, 0, 129, -0.1},
	{-2, -1, 0, 2, 2, 217, -0.5, -95, 0.3},
	{-2, 0, 1, 0, 0, -158, 0, 0, 0},
	{-2, 0, 0, 2, 1, 129, 0.1, -70, 0},
	{0, 0, -1, 2, 2, 123, 0, -53, 0},
	{2, 0, 0, 0, 0, 63, 0, 0, 0},
	{0, 0, 1, 0, 1, 63, 0.1, -33, 0},
	{2, 0, -1, 2, 2, -59, 0, 26, 0},
	{0, 0, -1, 0, 1, -58, -0.1, 32, 0},
	{0, 0, 1, 2, 1, -51, 0, 27, 0},
	{-2, 0, 2, 0, 0, 48, 0, 0, 0},
	{0, 0, -2, 2, 1, 46, 0, -24, 0},
	{2, 0, 0, 2, 2, -38, 0, 18, 0},
	{0, 0, 2, 2, 2, -31, 0, 13, 0},
	{0, 0, 2, 0, 0, 29, 0, 0, 0},
	{-2, 0, 1, 2, 2, 29, 0, -12, 0},
	{0, 0, 0, 2, 0, 26, 0, 0, 0},
	{-2, 0, 0, 2, 0, -22, 0, 0, 0},
	{0, 0, -1, 2, 1, 21, 0, -10, 0},
	{0, 2, 0, 0, 0, 17, -0.1, 0, 0},
	{2, 0, -1, 0, 1, 16, 0, -8, 0},
	{-2, 2, 0, 2, 2, -16, 0.1, 7, 0},
	{0, 1, 0, 0, 1, -15, 0, 9, 0},
	{-2, 0, 1, 0, 1, -13, 0, 7, 0},
	{0, -1, 0, 0, 1, -12, 0, 6, 0},
	{0, 0, 2, -2, 0, 11, 0, 0, 0},
	{2, 0, -1, 2, 1, -10, 0, 5, 0},
	{2, 0, 1, 2, 2, -8, 0, 3, 0},
	{0, 1, 0, 2, 2, 7, 0, -3, 0},
	{-2, 1, 1, 0, 0, -7, 0, 0, 0},
	{0, -1, 0, 2, 2, -7, 0, 3, 0},
	{2, 0, 0, 2, 1, -7, 0, 3, 0},
	{2, 0, 1, 0, 0, 6, 0, 0, 0},
	{-2, 0, 2, 2, 2, 6, 0, -3, 0},
	{-2, 0, 1, 2, 1, 6, 0, -3, 0},
	{2, 0, -2, 0, 1, -6, 0, 3, 0},
	{2, 0, 0, 0, 1, -6, 0, 3, 0},
	{0, -1, 1, 0, 0, 5, 0, 0, 0},
	{-2, -1, 0, 2, 1, -5, 0, 3, 0},
	{-2, 0, 0, 0, 1, -5, 0, 3, 0},
	{0, 0, 2, 2, 1, -5, 0, 3, 0},
	{-2, 0, 2, 0, 1, 4, 0, 0, 0},
	{-2, 1, 0, 2, 1, 4, 0, 0, 0},
	{0, 0, 1, -2, 0, 4, 0, 0, 0},
	{-1, 0, 1, 0, 0, -4, 0, 0, 0},
	{-2, 1, 0, 0, 0, -4, 0, 0, 0},
	{1, 0, 0, 0, 0, -3, 0, 0, 0},
	{0, 0, 1, 2, 0, 3, 0, 0, 0},
	{0, 0, -2, 2, 2, -3, 0, 1, 0},
	{-1, -1, 1, 0, 0, -3, 0, 0, 0},
	{0, 1, 1, 0, 0, -3, 0, 0, 0},
	{0, -1, 1, 2, 2, -3, 0, 1, 0},
	{2, -1, -1, 2, 2, -3, 0, 1, 0},
	{0, 0, 3, 2, 2, -3, 0, 1, 0},
	{2, -1, 0, 2, 2, -3, 0, 1, 0},
}

// nutationAngles returns nutation in longitude (dpsi) and obliquity (deps),
// in radians, for T Julian centuries from J2000 TDB, per the IAU 1980
// series.
func nutationAngles(T float64, precision NutationPrecision) (dpsiRad, depsRad float64) {
	d, m, mp, f, om := fundamentalArgs(T)
	var dpsi, deps float64
	for i := range nutationTerms {
		t := &nutationTerms[i]
		arg := float64(t.nd)*d + float64(t.nm)*m + float64(t.nmp)*mp + float64(t.nf)*f + float64(t.nom)*om
		sinArg, cosArg := math.Sincos(arg)
		dpsi += (t.psiSin + t.psiSinT*T) * sinArg
		deps += (t.epsCos + t.epsCosT*T) * cosArg
	}
	return dpsi * tenThousandthArcsec2Rad, deps * tenThousandthArcsec2Rad
}

// precessionMatrix returns the IAU 2006 precession matrix mapping J2000
// mean equator/equinox to the mean equator/equinox of date, for T Julian
// centuries from J2000 TDB.
func precessionMatrix(T float64) [3][3]float64 {
	zetaA := (2.650545 + 2306.083227*T + 0.2988499*T*T + 0.01801828*T*T*T - 0.000005971*T*T*T*T) * arcsec2rad
	zA := (-2.650545 + 2306.077181*T + 1.0927348*T*T + 0.01826837*T*T*T - 0.000028596*T*T*T*T) * arcsec2rad
	thetaA := (2004.191903*T - 0.4294934*T*T - 0.04182264*T*T*T - 0.000007089*T*T*T*T) * arcsec2rad

	sz, cz := math.Sincos(zetaA)
	sZ, cZ := math.Sincos(zA)
	st, ct := math.Sincos(thetaA)

	return [3][3]float64{
		{cZ*ct*cz - sZ*sz, -cZ*ct*sz - sZ*cz, -cZ * st},
		{sZ*ct*cz + cZ*sz, -sZ*ct*sz + cZ*cz, -sZ * st},
		{st * cz, -st * sz, ct},
	}
}

// nutationMatrix returns the matrix mapping the mean equator/equinox of
// date to the true equator/equinox of date.
func nutationMatrix(dpsiRad, depsRad, epsMRad float64) [3][3]float64 {
	epsTRad := epsMRad + depsRad
	sp, cp := math.Sincos(dpsiRad)
	sEm, cEm := math.Sincos(epsMRad)
	sEt, cEt := math.Sincos(epsTRad)

	return [3][3]float64{
		{cp, -sp * cEm, -sp * sEm},
		{sp * cEt, cp*cEm*cEt + sEm*sEt, cp*sEm*cEt - cEm*sEt},
		{sp * sEt, cp*cEm*sEt - sEm*cEt, cp*sEm*sEt + cEm*cEt},
	}
}
