package body

import (
	"math"

	"github.com/litescript/ls-ephem/internal/coord"
	"github.com/litescript/ls-ephem/internal/timescale"
)

// Illumination describes the lit part of the Moon's disk.
type Illumination struct {
	PhaseAngle    float64 // i, radians
	Fraction      float64 // k, 0 (new) to 1 (full)
	PositionAngle float64 // χ of the bright limb, radians
}

// PhaseAngle returns the phase angle of the Moon from geocentric positions of
// the Moon and the Sun and their distances, in the same unit (Meeus 48.2, 48.3).
func PhaseAngle(moon coord.Equatorial, Δmoon float64, sun coord.Equatorial, Δsun float64) float64 {
	cψ := cosElongation(moon, sun)
	ψ := math.Acos(cψ)
	return math.Atan2(Δsun*math.Sin(ψ), Δmoon-Δsun*cψ)
}

// PhaseAngleApprox returns the phase angle from the elongation alone. It is
// less accurate than PhaseAngle.
func PhaseAngleApprox(moon, sun coord.Equatorial) float64 {
	return math.Acos(-cosElongation(moon, sun))
}

// Illuminated returns the illuminated fraction for phase angle i (Meeus 48.1).
func Illuminated(i float64) float64 {
	return (1 + math.Cos(i)) / 2
}

// PositionAngle returns the position angle of the Moon's bright limb,
// measured eastward from the north point of the disk (Meeus 48.5).
func PositionAngle(moon, sun coord.Equatorial) float64 {
	sδm, cδm := math.Sincos(moon.Dec)
	sδs, cδs := math.Sincos(sun.Dec)
	sΔα, cΔα := math.Sincos(sun.RA - moon.RA)
	return math.Atan2(cδs*sΔα, sδs*cδm-cδs*sδm*cΔα)
}

// cosElongation is clamped to [−1, 1] so that Acos stays defined for
// coincident and opposite positions.
func cosElongation(moon, sun coord.Equatorial) float64 {
	sδm, cδm := math.Sincos(moon.Dec)
	sδs, cδs := math.Sincos(sun.Dec)
	c := sδs*sδm + cδs*cδm*math.Cos(sun.RA-moon.RA)
	return math.Max(-1, math.Min(1, c))
}

// Illumination returns the geocentric illumination of the Moon at m.
func (mo Moon) Illumination(m timescale.Moment) (Illumination, error) {
	meq, Δm, err := mo.ApparentEquatorial(m)
	if err != nil {
		return Illumination{}, err
	}
	var s Sun
	seq := s.ApparentEquatorial(m)
	i := PhaseAngle(meq, Δm, seq, s.Distance(m))
	χ := PositionAngle(meq, seq)
	if χ < 0 {
		χ += 2 * math.Pi
	}
	return Illumination{
		PhaseAngle:    i,
		Fraction:      Illuminated(i),
		PositionAngle: χ,
	}, nil
}
