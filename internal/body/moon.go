package body

import (
	"fmt"

	"github.com/litescript/ls-ephem/internal/coord"
	"github.com/litescript/ls-ephem/internal/nutation"
	"github.com/litescript/ls-ephem/internal/parallax"
	"github.com/litescript/ls-ephem/internal/rise"
	"github.com/litescript/ls-ephem/internal/series"
	"github.com/litescript/ls-ephem/internal/sidereal"
	"github.com/litescript/ls-ephem/internal/timescale"
)

// Moon computes positions and event times of the Moon from the lunar
// periodic series. The zero value is ready to use.
type Moon struct{}

// Name implements Provider.
func (Moon) Name() string { return KindMoon.String() }

// GeocentricPosition returns the geocentric ecliptic position of the Moon
// referred to the mean equinox of date, without nutation.
func (Moon) GeocentricPosition(m timescale.Moment) (series.LunarPosition, error) {
	return series.Lunar(m)
}

// ApparentEquatorial returns the apparent geocentric position of the Moon and
// its distance in km. Nutation and the true obliquity are applied.
func (mo Moon) ApparentEquatorial(m timescale.Moment) (coord.Equatorial, float64, error) {
	p, err := mo.GeocentricPosition(m)
	if err != nil {
		return coord.Equatorial{}, 0, fmt.Errorf("moon position: %w", err)
	}
	Δψ, Δε := nutation.Nutation(m)
	ε := nutation.MeanObliquityLaskar(m) + Δε
	eq := coord.EclipticToEquatorial(coord.Ecliptic{Lon: p.Lon + Δψ, Lat: p.Lat}, ε)
	return eq, p.Delta, nil
}

// ApparentTopocentric returns the apparent position of the Moon seen from loc
// and its geocentric distance in km.
func (mo Moon) ApparentTopocentric(m timescale.Moment, loc coord.Location) (coord.Equatorial, float64, error) {
	return mo.topocentric(m, loc, sidereal.ApparentInRA(m))
}

func (mo Moon) topocentric(m timescale.Moment, loc coord.Location, st float64) (coord.Equatorial, float64, error) {
	eq, Δ, err := mo.ApparentEquatorial(m)
	if err != nil {
		return coord.Equatorial{}, 0, err
	}
	pc := parallax.GlobeConstants(loc.Lat, loc.Height)
	return parallax.Topocentric(eq, parallax.Lunar(Δ), pc, loc.Lng, st), Δ, nil
}

// TopocentricPosition returns the horizontal and equatorial position of the
// Moon seen from loc, with its distance and parallactic angle.
func (mo Moon) TopocentricPosition(m timescale.Moment, loc coord.Location, refraction bool) (Position, error) {
	st := sidereal.ApparentInRA(m)
	eq, Δ, err := mo.topocentric(m, loc, st)
	if err != nil {
		return Position{}, err
	}
	hz := coord.EquatorialToHorizontal(eq, loc, st)
	if refraction {
		hz.Alt += refract(hz.Alt)
	}
	return Position{
		Horizontal:       hz,
		Equatorial:       eq,
		Distance:         Δ,
		ParallacticAngle: coord.ParallacticAngle(eq, loc, st),
	}, nil
}

// Position implements Provider with refraction applied.
func (mo Moon) Position(m timescale.Moment, loc coord.Location) (Position, error) {
	return mo.TopocentricPosition(m, loc, true)
}

// ApproxTransit returns the approximate transit in seconds after 0h UT of the
// day of m. A negative value means the transit fell on the previous day.
func (mo Moon) ApproxTransit(m timescale.Moment, loc coord.Location) (float64, error) {
	m0 := m.StartOfDay()
	eq, _, err := mo.ApparentEquatorial(m0)
	if err != nil {
		return 0, err
	}
	return rise.ApproxTransit(loc, sidereal.Apparent0UT(m0), eq), nil
}

// Event times use geocentric positions: the standard altitude from
// Stdh0Lunar already accounts for the parallax.

// ApproxTimes returns approximate rise, transit and set times for the day
// of m.
func (mo Moon) ApproxTimes(m timescale.Moment, loc coord.Location) (rise.Result, error) {
	m0 := m.StartOfDay()
	eq, Δ, err := mo.ApparentEquatorial(m0)
	if err != nil {
		return rise.Result{}, err
	}
	h0 := rise.Stdh0Lunar(parallax.Lunar(Δ))
	return rise.ApproxTimes(loc, h0, sidereal.Apparent0UT(m0), eq), nil
}

// Times returns refined rise, transit and set times for the day of m.
func (mo Moon) Times(m timescale.Moment, loc coord.Location) (rise.Result, error) {
	m0 := m.StartOfDay()
	var (
		eq3 [3]coord.Equatorial
		Δ   float64
	)
	for i := range eq3 {
		eq, d, err := mo.ApparentEquatorial(m0.AddDays(float64(i - 1)))
		if err != nil {
			return rise.Result{}, err
		}
		eq3[i] = eq
		if i == 1 {
			Δ = d
		}
	}
	h0 := rise.Stdh0Lunar(parallax.Lunar(Δ))
	return rise.Times(loc, m0.DeltaT(), h0, sidereal.Apparent0UT(m0), eq3)
}
