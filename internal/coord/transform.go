package coord

import (
	"math"

	"github.com/litescript/ls-ephem/internal/mathx"
)

// EquatorialToEcliptic converts equatorial coordinates to ecliptic ones for
// obliquity ε (Meeus 13.1, 13.2). The longitude is left in the atan2 range.
func EquatorialToEcliptic(eq Equatorial, ε float64) Ecliptic {
	sα, cα := math.Sincos(eq.RA)
	sδ, cδ := math.Sincos(eq.Dec)
	sε, cε := math.Sincos(ε)
	return Ecliptic{
		Lon: math.Atan2(sα*cε+(sδ/cδ)*sε, cα),
		Lat: math.Asin(sδ*cε - cδ*sε*sα),
	}
}

// EclipticToEquatorial converts ecliptic coordinates to equatorial ones for
// obliquity ε (Meeus 13.3, 13.4). Right ascension is normalized to [0, 2π).
func EclipticToEquatorial(ecl Ecliptic, ε float64) Equatorial {
	sλ, cλ := math.Sincos(ecl.Lon)
	sβ, cβ := math.Sincos(ecl.Lat)
	sε, cε := math.Sincos(ε)
	α := math.Atan2(sλ*cε-(sβ/cβ)*sε, cλ)
	return Equatorial{
		RA:  mathx.PMod(α, 2*math.Pi),
		Dec: math.Asin(sβ*cε + cβ*sε*sλ),
	}
}

// HourAngle returns the local hour angle of eq for an observer at loc when
// apparent sidereal time at Greenwich is st radians. It is not normalized.
func HourAngle(eq Equatorial, loc Location, st float64) float64 {
	return st - loc.Lng - eq.RA
}

// EquatorialToHorizontal converts equatorial coordinates to horizontal ones
// (Meeus 13.5, 13.6). st is apparent sidereal time at Greenwich in radians.
// Azimuth is measured from the south and left in the atan2 range.
func EquatorialToHorizontal(eq Equatorial, loc Location, st float64) Horizontal {
	sH, cH := math.Sincos(HourAngle(eq, loc, st))
	sφ, cφ := math.Sincos(loc.Lat)
	sδ, cδ := math.Sincos(eq.Dec)
	return Horizontal{
		Az:  math.Atan2(sH, cH*sφ-(sδ/cδ)*cφ),
		Alt: math.Asin(sφ*sδ + cφ*cδ*cH),
	}
}

// ParallacticAngle returns the angle between the direction to the zenith
// and to the celestial pole at the position eq (Meeus 14.1).
func ParallacticAngle(eq Equatorial, loc Location, st float64) float64 {
	sH, cH := math.Sincos(HourAngle(eq, loc, st))
	sδ, cδ := math.Sincos(eq.Dec)
	return math.Atan2(sH, math.Tan(loc.Lat)*cδ-sδ*cH)
}

// AngularSeparation returns the angle between two equatorial positions.
func AngularSeparation(a, b Equatorial) float64 {
	sa, ca := math.Sincos(a.Dec)
	sb, cb := math.Sincos(b.Dec)
	cosSep := sa*sb + ca*cb*math.Cos(a.RA-b.RA)
	// Clamp to handle floating point errors
	if cosSep > 1 {
		cosSep = 1
	} else if cosSep < -1 {
		cosSep = -1
	}
	return math.Acos(cosSep)
}
