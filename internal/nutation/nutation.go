// Package nutation computes nutation in longitude and obliquity (IAU 1980
// theory) and the mean obliquity of the ecliptic.
package nutation

import (
	"math"

	"github.com/litescript/ls-ephem/internal/mathx"
	"github.com/litescript/ls-ephem/internal/timescale"
)

const (
	deg = math.Pi / 180
	// arcsecond in radians
	arcsec = deg / 3600
)

// Nutation returns the nutation in longitude Δψ and in obliquity Δε, in
// radians, for the ephemeris day of m.
func Nutation(m timescale.Moment) (Δψ, Δε float64) {
	T := m.CenturiesJDE()
	D := mathx.Horner(T, 297.85036, 445267.11148, -0.0019142, 1.0/189474) * deg
	M := mathx.Horner(T, 357.52772, 35999.050340, -0.0001603, -1.0/300000) * deg
	N := mathx.Horner(T, 134.96298, 477198.867398, 0.0086972, 1.0/5620) * deg
	F := mathx.Horner(T, 93.27191, 483202.017538, -0.0036825, 1.0/327270) * deg
	Ω := mathx.Horner(T, 125.04452, -1934.136261, 0.0020708, 1.0/450000) * deg

	// smallest terms first
	for i := len(table22A) - 1; i >= 0; i-- {
		row := &table22A[i]
		arg := row.d*D + row.m*M + row.n*N + row.f*F + row.ω*Ω
		s, c := math.Sincos(arg)
		Δψ += s * (row.s0 + row.s1*T)
		Δε += c * (row.c0 + row.c1*T)
	}
	Δψ *= 0.0001 * arcsec
	Δε *= 0.0001 * arcsec
	return
}

// NutationInRA returns the nutation in right ascension, Δψ·cos ε, in radians.
// This is the equation of the equinoxes used for apparent sidereal time.
func NutationInRA(m timescale.Moment) float64 {
	ε0 := MeanObliquityLaskar(m)
	Δψ, Δε := Nutation(m)
	return Δψ * math.Cos(ε0+Δε)
}

// TrueObliquity returns the Laskar mean obliquity plus nutation in obliquity.
func TrueObliquity(m timescale.Moment) float64 {
	ε0 := MeanObliquityLaskar(m)
	_, Δε := Nutation(m)
	return ε0 + Δε
}

// MeanObliquity returns the mean obliquity of the ecliptic using the IAU 1980
// polynomial. Accuracy degrades quickly beyond a few centuries from J2000.
func MeanObliquity(m timescale.Moment) float64 {
	return mathx.Horner(m.CenturiesJDE(),
		84381.448*arcsec,
		-46.815*arcsec,
		-0.00059*arcsec,
		0.001813*arcsec)
}

// MeanObliquityLaskar returns the mean obliquity of the ecliptic using
// Laskar's polynomial, valid over 10000 years either side of J2000.
func MeanObliquityLaskar(m timescale.Moment) float64 {
	return mathx.Horner(m.CenturiesJDE()*0.01,
		84381.448*arcsec,
		-4680.93*arcsec,
		-1.55*arcsec,
		1999.25*arcsec,
		-51.38*arcsec,
		-249.67*arcsec,
		-39.05*arcsec,
		7.12*arcsec,
		27.87*arcsec,
		5.79*arcsec,
		2.45*arcsec)
}
