// Package solstice computes the instants of the equinoxes and solstices
// (Meeus chapter 27). Results are JDE, accurate to about a minute for
// 1951–2050 and usable from −1000 to +3000.
package solstice

import (
	"math"

	"github.com/litescript/ls-ephem/internal/mathx"
	"github.com/litescript/ls-ephem/internal/timescale"
)

// Mean instant polynomials in millennia, for years before 1000 (in y/1000)
// and from 1000 on (in (y−2000)/1000).
var (
	mc0 = []float64{1721139.29189, 365242.13740, 0.06134, 0.00111, -0.00071}
	jc0 = []float64{1721233.25401, 365241.72562, -0.05232, 0.00907, 0.00025}
	sc0 = []float64{1721325.70455, 365242.49558, -0.11677, -0.00297, 0.00074}
	dc0 = []float64{1721414.39987, 365242.88257, -0.00769, -0.00933, -0.00006}

	mc2 = []float64{2451623.80984, 365242.37404, 0.05169, -0.00411, -0.00057}
	jc2 = []float64{2451716.56767, 365241.62603, 0.00325, 0.00888, -0.00030}
	sc2 = []float64{2451810.21715, 365242.01767, -0.11575, 0.00337, 0.00078}
	dc2 = []float64{2451900.05952, 365242.74049, -0.06223, -0.00823, 0.00032}
)

// periodic terms A, B, C of table 27.C
var terms = [...]struct{ a, b, c float64 }{
	{485, 324.96, 1934.136},
	{203, 337.23, 32964.467},
	{199, 342.08, 20.186},
	{182, 27.85, 445267.112},
	{156, 73.14, 45036.886},
	{136, 171.52, 22518.443},
	{77, 222.54, 65928.934},
	{74, 296.72, 3034.906},
	{70, 243.58, 9037.513},
	{58, 119.81, 33718.147},
	{52, 297.17, 150.678},
	{50, 21.02, 2281.226},
	{45, 247.54, 29929.562},
	{44, 325.15, 31555.956},
	{29, 60.93, 4443.417},
	{18, 155.12, 67555.328},
	{17, 288.79, 4562.452},
	{16, 198.04, 62894.029},
	{14, 199.76, 31436.921},
	{12, 95.39, 14577.848},
	{12, 287.11, 31931.756},
	{12, 320.81, 34777.259},
	{9, 227.73, 1222.114},
	{8, 15.45, 16859.074},
}

// March returns the JDE of the March equinox of year y.
func March(y int) float64 { return instant(y, mc0, mc2) }

// June returns the JDE of the June solstice of year y.
func June(y int) float64 { return instant(y, jc0, jc2) }

// September returns the JDE of the September equinox of year y.
func September(y int) float64 { return instant(y, sc0, sc2) }

// December returns the JDE of the December solstice of year y.
func December(y int) float64 { return instant(y, dc0, dc2) }

func instant(y int, c0, c2 []float64) float64 {
	if y < 1000 {
		return correct(mathx.Horner(float64(y)*0.001, c0...))
	}
	return correct(mathx.Horner(float64(y-2000)*0.001, c2...))
}

// correct adds the periodic terms to the mean instant J0.
func correct(J0 float64) float64 {
	const d = math.Pi / 180
	T := timescale.JDToCenturies(J0)
	W := 35999.373*d*T - 2.47*d
	Δλ := 1 + 0.0334*math.Cos(W) + 0.0007*math.Cos(2*W)
	S := 0.0
	for i := len(terms) - 1; i >= 0; i-- {
		t := &terms[i]
		S += t.a * math.Cos((t.b+t.c*T)*d)
	}
	return J0 + 0.00001*S/Δλ
}

// Season names an equinox or solstice.
type Season int

const (
	MarchEquinox Season = iota
	JuneSolstice
	SeptemberEquinox
	DecemberSolstice
)

// Seasons lists the four instants in calendar order.
var Seasons = []Season{MarchEquinox, JuneSolstice, SeptemberEquinox, DecemberSolstice}

func (s Season) String() string {
	switch s {
	case MarchEquinox:
		return "March equinox"
	case JuneSolstice:
		return "June solstice"
	case SeptemberEquinox:
		return "September equinox"
	case DecemberSolstice:
		return "December solstice"
	default:
		return "unknown"
	}
}

// JDE returns the instant of season s in year y.
func (s Season) JDE(y int) float64 {
	switch s {
	case MarchEquinox:
		return March(y)
	case JuneSolstice:
		return June(y)
	case SeptemberEquinox:
		return September(y)
	default:
		return December(y)
	}
}

// Moment returns the instant of season s in year y as a Moment.
func (s Season) Moment(y int) (timescale.Moment, error) {
	return timescale.FromJDE(s.JDE(y))
}
