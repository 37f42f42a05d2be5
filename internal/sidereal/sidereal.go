// Package sidereal computes mean and apparent sidereal time at Greenwich.
//
// Results in seconds are in [0, 86400); results in radians are in [0, 2π).
package sidereal

import (
	"math"

	"github.com/litescript/ls-ephem/internal/mathx"
	"github.com/litescript/ls-ephem/internal/nutation"
	"github.com/litescript/ls-ephem/internal/timescale"
)

// iau82 is the IAU 1982 polynomial for sidereal time at 0h UT, in seconds,
// in Julian centuries from J2000.
var iau82 = []float64{24110.54841, 8640184.812866, 0.093104, 0.0000062}

// siderealRate is the ratio of the sidereal day rate to the solar day rate.
const siderealRate = 1.00273790935

const secondsPerDay = timescale.SecondsPerDay

// radToTimeSec converts an angle of right ascension in radians to seconds of time.
const radToTimeSec = 43200 / math.Pi

// centuryAndFraction splits the JD of m into centuries since J2000 at the
// preceding 0h UT and the fraction of the day elapsed since then.
func centuryAndFraction(m timescale.Moment) (T, f float64) {
	day, f := math.Modf(m.JD() + 0.5)
	return timescale.JDToCenturies(day - 0.5), f
}

// mean0UT returns unwrapped sidereal time at the preceding 0h UT in seconds,
// and the fraction of the day since.
func mean0UT(m timescale.Moment) (s, f float64) {
	T, f := centuryAndFraction(m)
	return mathx.Horner(T, iau82...), f
}

func mean(m timescale.Moment) float64 {
	s, f := mean0UT(m)
	return s + f*siderealRate*secondsPerDay
}

// Mean returns mean sidereal time at Greenwich in seconds.
func Mean(m timescale.Moment) float64 {
	return mathx.PMod(mean(m), secondsPerDay)
}

// MeanInRA returns mean sidereal time at Greenwich as an angle in radians.
func MeanInRA(m timescale.Moment) float64 {
	return mathx.PMod(meanInRA(m), 2*math.Pi)
}

func meanInRA(m timescale.Moment) float64 {
	s, f := mean0UT(m)
	return s/radToTimeSec + f*siderealRate*2*math.Pi
}

// Mean0UT returns mean sidereal time at Greenwich at 0h UT of the day of m,
// in seconds.
func Mean0UT(m timescale.Moment) float64 {
	s, _ := mean0UT(m)
	return mathx.PMod(s, secondsPerDay)
}

// ApparentInRA returns apparent sidereal time at Greenwich in radians. It is
// the hour angle origin used by the horizontal and topocentric transforms.
func ApparentInRA(m timescale.Moment) float64 {
	return mathx.PMod(meanInRA(m)+nutation.NutationInRA(m), 2*math.Pi)
}

// Apparent returns apparent sidereal time at Greenwich in seconds.
func Apparent(m timescale.Moment) float64 {
	ns := nutation.NutationInRA(m) * radToTimeSec
	return mathx.PMod(mean(m)+ns, secondsPerDay)
}

// ApparentLocal returns apparent local sidereal time in seconds for an
// observer at longitude lng, radians positive west.
func ApparentLocal(m timescale.Moment, lng float64) float64 {
	return mathx.PMod(Apparent(m)-lng*radToTimeSec, secondsPerDay)
}

// Apparent0UT returns apparent sidereal time at Greenwich in seconds,
// counting the mean part from 0h UT of the day of m. The nutation term is
// evaluated at the integral JDE that starts that ephemeris day at noon.
func Apparent0UT(m timescale.Moment) float64 {
	day, f := math.Modf(m.JD() + 0.5)
	dayE, _ := math.Modf(m.JDE() + 0.5)

	T := timescale.JDToCenturies(day - 0.5)
	s := mathx.Horner(T, iau82...) + f*siderealRate*secondsPerDay

	nm := m.AddDays(dayE - m.JD())
	ns := nutation.NutationInRA(nm) * radToTimeSec
	return mathx.PMod(s+ns, secondsPerDay)
}
