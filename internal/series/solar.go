package series

import (
	"math"

	"github.com/litescript/ls-ephem/internal/mathx"
)

// EarthSunKm is the mean distance between the Earth and the Sun.
const EarthSunKm = 149597870

// SolarMeanAnomaly returns the mean anomaly of the Earth for T Julian
// centuries from J2000 (Meeus 25.3). The result is not normalized.
func SolarMeanAnomaly(T float64) float64 {
	return mathx.Horner(T, 357.52911, 35999.05029, -0.0001537) * deg
}

// SolarTrueLongitude returns the Sun's true geometric longitude s and true
// anomaly ν, both referred to the mean equinox of date and in [0, 2π).
func SolarTrueLongitude(T float64) (s, ν float64) {
	L0 := mathx.Horner(T, 280.46646, 36000.76983, 0.0003032) * deg
	M := SolarMeanAnomaly(T)
	C := (mathx.Horner(T, 1.914602, -0.004817, -0.000014)*math.Sin(M) +
		(0.019993-0.000101*T)*math.Sin(2*M) +
		0.000289*math.Sin(3*M)) * deg
	return mathx.PMod(L0+C, 2*math.Pi), mathx.PMod(M+C, 2*math.Pi)
}

// SolarNode returns Ω, the longitude of the Moon's ascending node used by the
// low-precision nutation and aberration terms.
func SolarNode(T float64) float64 {
	return (125.04 - 1934.136*T) * deg
}

// SolarApparentLongitude returns the Sun's apparent longitude, referred to
// the true equinox of date, given the node Ω from SolarNode.
func SolarApparentLongitude(T, Ω float64) float64 {
	s, _ := SolarTrueLongitude(T)
	return s - 0.00569*deg - 0.00478*deg*math.Sin(Ω)
}

// SolarRadius returns the distance between the centers of the Earth and the
// Sun in AU (Meeus 25.5).
func SolarRadius(T float64) float64 {
	e := mathx.Horner(T, 0.016708634, -0.000042037, -0.0000001267)
	_, ν := SolarTrueLongitude(T)
	return 1.000001018 * (1 - e*e) / (1 + e*math.Cos(ν))
}
