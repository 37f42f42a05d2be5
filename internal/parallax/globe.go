package parallax

import "math"

// Reference ellipsoid (IAU 1976).
const (
	EarthRadiusKm = 6378.14
	Flattening    = 1 / 298.257
)

// Constants holds the observer's geocentric position terms ρ·sin φ′ and
// ρ·cos φ′, in Earth equatorial radii.
type Constants struct {
	RhoSinLat float64
	RhoCosLat float64
}

// GlobeConstants returns the parallax constants for geodetic latitude lat
// (radians) and height above sea level h (meters).
func GlobeConstants(lat, h float64) Constants {
	boa := 1 - Flattening
	su, cu := math.Sincos(math.Atan(boa * math.Tan(lat)))
	sφ, cφ := math.Sincos(lat)
	hoa := h * 1e-3 / EarthRadiusKm
	return Constants{
		RhoSinLat: su*boa + hoa*sφ,
		RhoCosLat: cu + hoa*cφ,
	}
}
