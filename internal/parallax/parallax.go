// Package parallax corrects geocentric positions for the observer's place on
// the Earth's surface.
package parallax

import (
	"math"

	"github.com/litescript/ls-ephem/internal/coord"
	"github.com/litescript/ls-ephem/internal/mathx"
)

// EarthSun is the equatorial horizontal parallax of the Sun at 1 AU, in radians.
const EarthSun = 8.794 / 3600 * math.Pi / 180

// Horizontal returns the equatorial horizontal parallax of a body at distance
// Δ astronomical units (Meeus 40.1).
func Horizontal(Δ float64) float64 {
	return EarthSun / Δ
}

// Lunar returns the equatorial horizontal parallax of the Moon at distance
// Δ kilometers.
func Lunar(Δ float64) float64 {
	return math.Asin(EarthRadiusKm / Δ)
}

// Topocentric returns the topocentric position of a body with geocentric
// position eq and horizontal parallax π (Meeus 40.2, 40.3). lng is the
// observer's longitude, west positive, and st is apparent sidereal time at
// Greenwich, both in radians.
func Topocentric(eq coord.Equatorial, π float64, pc Constants, lng, st float64) coord.Equatorial {
	H := mathx.PMod(st-lng-eq.RA, 2*math.Pi)
	sπ := math.Sin(π)
	sH, cH := math.Sincos(H)
	sδ, cδ := math.Sincos(eq.Dec)
	Δα := math.Atan2(-pc.RhoCosLat*sπ*sH, cδ-pc.RhoCosLat*sπ*cH)
	return coord.Equatorial{
		RA:  eq.RA + Δα,
		Dec: math.Atan2((sδ-pc.RhoSinLat*sπ)*math.Cos(Δα), cδ-pc.RhoCosLat*sπ*cH),
	}
}

// TopocentricLinear is the first-order form of Topocentric (Meeus 40.4,
// 40.5), adequate when π is small, as for the Sun.
func TopocentricLinear(eq coord.Equatorial, π float64, pc Constants, lng, st float64) coord.Equatorial {
	H := mathx.PMod(st-lng-eq.RA, 2*math.Pi)
	sH, cH := math.Sincos(H)
	sδ, cδ := math.Sincos(eq.Dec)
	return coord.Equatorial{
		RA:  eq.RA - π*pc.RhoCosLat*sH/cδ,
		Dec: eq.Dec - π*(pc.RhoSinLat*cδ-pc.RhoCosLat*cH*sδ),
	}
}
