package body

import (
	"math"

	"github.com/litescript/ls-ephem/internal/coord"
	"github.com/litescript/ls-ephem/internal/nutation"
	"github.com/litescript/ls-ephem/internal/parallax"
	"github.com/litescript/ls-ephem/internal/rise"
	"github.com/litescript/ls-ephem/internal/series"
	"github.com/litescript/ls-ephem/internal/sidereal"
	"github.com/litescript/ls-ephem/internal/timescale"
)

// Sun computes positions and event times of the Sun from the low-term
// solar series. The zero value is ready to use.
type Sun struct{}

// Name implements Provider.
func (Sun) Name() string { return KindSun.String() }

// MeanAnomaly returns the mean anomaly of the Earth at m, in radians.
func (Sun) MeanAnomaly(m timescale.Moment) float64 {
	return series.SolarMeanAnomaly(m.Centuries())
}

// TrueLongitude returns the true geometric longitude and true anomaly at m.
func (Sun) TrueLongitude(m timescale.Moment) (s, ν float64) {
	return series.SolarTrueLongitude(m.Centuries())
}

// ApparentLongitude returns the apparent longitude at m, corrected for
// nutation and aberration.
func (Sun) ApparentLongitude(m timescale.Moment) float64 {
	T := m.Centuries()
	return series.SolarApparentLongitude(T, series.SolarNode(T))
}

// Distance returns the Earth–Sun distance at m in km.
func (Sun) Distance(m timescale.Moment) float64 {
	return series.SolarRadius(m.Centuries()) * series.EarthSunKm
}

// ApparentEquatorial returns the apparent geocentric position of the Sun
// (Meeus 25.6, 25.7). Right ascension is left in the atan2 range.
func (Sun) ApparentEquatorial(m timescale.Moment) coord.Equatorial {
	T := m.Centuries()
	Ω := series.SolarNode(T)
	λ := series.SolarApparentLongitude(T, Ω)
	ε := nutation.MeanObliquityLaskar(m) + 0.00256*deg*math.Cos(Ω)

	sλ, cλ := math.Sincos(λ)
	sε, cε := math.Sincos(ε)
	return coord.Equatorial{
		RA:  math.Atan2(cε*sλ, cλ),
		Dec: math.Asin(sε * sλ),
	}
}

// ApparentTopocentric returns the apparent position of the Sun seen from loc.
func (s Sun) ApparentTopocentric(m timescale.Moment, loc coord.Location) coord.Equatorial {
	return s.topocentric(m, loc, sidereal.ApparentInRA(m))
}

func (s Sun) topocentric(m timescale.Moment, loc coord.Location, st float64) coord.Equatorial {
	pc := parallax.GlobeConstants(loc.Lat, loc.Height)
	return parallax.TopocentricLinear(s.ApparentEquatorial(m), parallax.EarthSun, pc, loc.Lng, st)
}

// TopocentricPosition returns the horizontal and equatorial position of the
// Sun seen from loc. With refraction set the altitude is raised by the
// atmospheric refraction for the true altitude.
func (s Sun) TopocentricPosition(m timescale.Moment, loc coord.Location, refraction bool) Position {
	st := sidereal.ApparentInRA(m)
	eq := s.topocentric(m, loc, st)
	hz := coord.EquatorialToHorizontal(eq, loc, st)
	if refraction {
		hz.Alt += refract(hz.Alt)
	}
	return Position{
		Horizontal: hz,
		Equatorial: eq,
		Distance:   s.Distance(m),
	}
}

// Position implements Provider with refraction applied.
func (s Sun) Position(m timescale.Moment, loc coord.Location) (Position, error) {
	return s.TopocentricPosition(m, loc, true), nil
}

// ApproxTransit returns the approximate transit in seconds after 0h UT of the
// day of m. A negative value means the transit fell on the previous day.
func (s Sun) ApproxTransit(m timescale.Moment, loc coord.Location) float64 {
	m0 := m.StartOfDay()
	return rise.ApproxTransit(loc, sidereal.Apparent0UT(m0), s.ApparentTopocentric(m0, loc))
}

// ApproxTimes returns approximate rise, transit and set times for the day
// of m.
func (s Sun) ApproxTimes(m timescale.Moment, loc coord.Location) rise.Result {
	m0 := m.StartOfDay()
	return rise.ApproxTimes(loc, rise.Stdh0Solar, sidereal.Apparent0UT(m0), s.ApparentTopocentric(m0, loc))
}

// Times returns refined rise, transit and set times for the day of m.
func (s Sun) Times(m timescale.Moment, loc coord.Location) (rise.Result, error) {
	m0 := m.StartOfDay()
	eq3 := [3]coord.Equatorial{
		s.ApparentTopocentric(m0.AddDays(-1), loc),
		s.ApparentTopocentric(m0, loc),
		s.ApparentTopocentric(m0.AddDays(1), loc),
	}
	return rise.Times(loc, m0.DeltaT(), rise.Stdh0Solar, sidereal.Apparent0UT(m0), eq3)
}
