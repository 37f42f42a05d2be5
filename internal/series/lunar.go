// Package series evaluates the low-term periodic series for the geocentric
// positions of the Moon and the Sun (Meeus chapters 25 and 47).
//
// Results are referred to the mean equinox of date; nutation and aberration
// are left to the caller except where noted.
package series

import (
	"errors"
	"fmt"
	"math"

	"github.com/litescript/ls-ephem/internal/mathx"
	"github.com/litescript/ls-ephem/internal/timescale"
)

// ErrInternalTable is returned when a periodic-term row carries a solar mean
// anomaly multiplier outside -2..2. It means the constant table is corrupt.
var ErrInternalTable = errors.New("series: invalid periodic term")

const deg = math.Pi / 180

// LunarPosition is the geocentric position of the Moon.
type LunarPosition struct {
	Lon   float64 // ecliptic longitude λ, radians
	Lat   float64 // ecliptic latitude β, radians
	Delta float64 // Earth–Moon distance Δ, km
}

// Lunar returns the geocentric position of the Moon at ephemeris time m.
func Lunar(m timescale.Moment) (LunarPosition, error) {
	return lunar(m.CenturiesJDE(), lonDistTerms[:], latTerms[:])
}

func lunar(T float64, ld []lonDistTerm, lt []latTerm) (LunarPosition, error) {
	τ := 2 * math.Pi
	Lʹ := mathx.PMod(mathx.Horner(T, 218.3164477*deg, 481267.88123421*deg,
		-0.0015786*deg, deg/538841, -deg/65194000), τ)
	D := mathx.PMod(mathx.Horner(T, 297.8501921*deg, 445267.1114034*deg,
		-0.0018819*deg, deg/545868, -deg/113065000), τ)
	M := mathx.PMod(mathx.Horner(T, 357.5291092*deg, 35999.0502909*deg,
		-0.0001535*deg, deg/24490000), τ)
	Mʹ := mathx.PMod(mathx.Horner(T, 134.9633964*deg, 477198.8675055*deg,
		0.0087414*deg, deg/69699, -deg/14712000), τ)
	F := mathx.PMod(mathx.Horner(T, 93.272095*deg, 483202.0175233*deg,
		-0.0036539*deg, -deg/3526000, deg/863310000), τ)

	A1 := 119.75*deg + 131.849*deg*T
	A2 := 53.09*deg + 479264.29*deg*T
	A3 := 313.45*deg + 481266.484*deg*T
	E := mathx.Horner(T, 1, -0.002516, -0.0000074)

	Σl := 3958*math.Sin(A1) + 1962*math.Sin(Lʹ-F) + 318*math.Sin(A2)
	Σr := 0.0
	Σb := -2235*math.Sin(Lʹ) + 382*math.Sin(A3) + 175*math.Sin(A1-F) +
		175*math.Sin(A1+F) + 127*math.Sin(Lʹ-Mʹ) - 115*math.Sin(Lʹ+Mʹ)

	for i := range ld {
		r := &ld[i]
		e, err := eccentricity(E, r.m)
		if err != nil {
			return LunarPosition{}, fmt.Errorf("longitude row %d: %w", i, err)
		}
		s, c := math.Sincos(float64(r.d)*D + float64(r.m)*M + float64(r.mʹ)*Mʹ + float64(r.f)*F)
		Σl += r.sl * s * e
		Σr += r.sr * c * e
	}
	for i := range lt {
		r := &lt[i]
		e, err := eccentricity(E, r.m)
		if err != nil {
			return LunarPosition{}, fmt.Errorf("latitude row %d: %w", i, err)
		}
		Σb += r.sb * e * math.Sin(float64(r.d)*D+float64(r.m)*M+float64(r.mʹ)*Mʹ+float64(r.f)*F)
	}

	return LunarPosition{
		Lon:   Lʹ + Σl*1e-6*deg,
		Lat:   Σb * 1e-6 * deg,
		Delta: 385000.56 + Σr*1e-3,
	}, nil
}

// eccentricity returns E^|m|, the correction for the decreasing eccentricity
// of the Earth's orbit applied to terms containing the solar anomaly.
func eccentricity(E float64, m int) (float64, error) {
	switch m {
	case 0:
		return 1, nil
	case 1, -1:
		return E, nil
	case 2, -2:
		return E * E, nil
	}
	return 0, fmt.Errorf("%w: solar anomaly multiplier %d", ErrInternalTable, m)
}
