// Package rise computes rise, transit and set times of a body for an observer
// (Meeus chapter 15).
//
// Times are seconds of UT after 0h of the day of interest. Positions are
// sampled once a day at 0h. Times refines the approximate estimate with
// exactly one correction step per event; there is no iteration to
// convergence, and no guard against cos δ·cos φ·sin H near zero close to the
// poles. Both limit the precision to roughly a minute at high latitudes.
package rise

import (
	"math"

	"github.com/litescript/ls-ephem/internal/coord"
	"github.com/litescript/ls-ephem/internal/interp"
	"github.com/litescript/ls-ephem/internal/mathx"
)

const (
	deg = math.Pi / 180

	// seconds of time per radian of hour angle
	secPerRad = 43200 / math.Pi

	// sidereal degrees per solar degree, for converting m to sidereal time
	siderealRate = 360.985647 / 360

	secPerDay = 86400
)

// Standard altitudes: the geometric altitude of the center of the body at
// apparent rising or setting.
const (
	MeanRefraction = 0.5667 * deg

	Stdh0Stellar   = -0.5667 * deg
	Stdh0Solar     = -0.8333 * deg
	Stdh0LunarMean = 0.125 * deg
)

// Stdh0Lunar returns the standard altitude of the Moon for horizontal
// parallax π.
func Stdh0Lunar(π float64) float64 {
	return 0.7275*π - MeanRefraction
}

// Result holds UT event times for one day. Each time is in [0, 86400) with a
// day offset relative to the day of interest. When NoEvent is set the body
// does not cross the standard altitude that day and the times are zero;
// Circumpolar then tells whether it stays above that altitude.
type Result struct {
	Rise, Transit, Set          float64
	RiseDay, TransitDay, SetDay int
	NoEvent                     bool
	Circumpolar                 bool
}

// CosHourAngle returns cos H0 for the hour angle at which a body at
// declination dec reaches altitude h0 seen from latitude lat (Meeus 15.1).
// ok is false when the body is circumpolar or never rises.
func CosHourAngle(lat, h0, dec float64) (cosH0 float64, ok bool) {
	sφ, cφ := math.Sincos(lat)
	sδ, cδ := math.Sincos(dec)
	cosH0 = (math.Sin(h0) - sφ*sδ) / (cφ * cδ)
	if cosH0 < -1 || cosH0 > 1 {
		return cosH0, false
	}
	return cosH0, true
}

// ApproxTransit returns the approximate transit time in seconds. Th0 is
// apparent sidereal time at 0h UT at Greenwich in seconds. The result is not
// wrapped: a negative value means the transit fell on the previous day.
func ApproxTransit(loc coord.Location, Th0 float64, eq coord.Equatorial) float64 {
	return (eq.RA+loc.Lng)*secPerRad - Th0
}

// ApproxTimes returns approximate rise, transit and set times for a body at
// position eq (Meeus 15.2).
func ApproxTimes(loc coord.Location, h0, Th0 float64, eq coord.Equatorial) Result {
	cosH0, ok := CosHourAngle(loc.Lat, h0, eq.Dec)
	if !ok {
		return Result{NoEvent: true, Circumpolar: cosH0 < -1}
	}
	H0 := math.Acos(cosH0) * secPerRad
	mt := ApproxTransit(loc, Th0, eq)
	return Result{
		Transit:    mathx.PMod(mt, secPerDay),
		TransitDay: dayOffset(mt),
		Rise:       mathx.PMod(mt-H0, secPerDay),
		RiseDay:    dayOffset(mt - H0),
		Set:        mathx.PMod(mt+H0, secPerDay),
		SetDay:     dayOffset(mt + H0),
	}
}

// unwrapRA returns the three right ascensions shifted by whole turns so the
// outer samples lie within π of the middle one.
func unwrapRA(eq3 [3]coord.Equatorial) []float64 {
	ra := []float64{eq3[0].RA, eq3[1].RA, eq3[2].RA}
	for _, i := range []int{0, 2} {
		for ra[i]-ra[1] > math.Pi {
			ra[i] -= 2 * math.Pi
		}
		for ra[i]-ra[1] < -math.Pi {
			ra[i] += 2 * math.Pi
		}
	}
	return ra
}

func dayOffset(s float64) int {
	return int(math.Floor(s / secPerDay))
}

// Times returns rise, transit and set times refined by interpolating the
// body's position between the previous, current and next day. eq3 holds
// those three positions, ΔT is in seconds and Th0 is apparent sidereal time
// at 0h UT in seconds. Day offsets follow the refined times, so a correction
// that crosses midnight moves the event to the neighboring day.
func Times(loc coord.Location, ΔT, h0, Th0 float64, eq3 [3]coord.Equatorial) (Result, error) {
	r := ApproxTimes(loc, h0, Th0, eq3[1])
	if r.NoEvent {
		return r, nil
	}

	raI, err := interp.NewLen3(-secPerDay, secPerDay, unwrapRA(eq3))
	if err != nil {
		return Result{}, err
	}
	decI, err := interp.NewLen3(-secPerDay, secPerDay, []float64{eq3[0].Dec, eq3[1].Dec, eq3[2].Dec})
	if err != nil {
		return Result{}, err
	}

	// transit: hour angle at the estimate, in seconds
	th0 := Th0 + r.Transit*siderealRate
	α := raI.InterpolateX(r.Transit + ΔT)
	H := th0 - (loc.Lng+α)*secPerRad
	// hour angle in [−12h, 12h)
	H = mathx.PMod(H+secPerDay/2, secPerDay) - secPerDay/2
	r.Transit, r.TransitDay = shift(r.Transit, r.TransitDay, -H)

	sφ, cφ := math.Sincos(loc.Lat)
	correction := func(m float64) float64 {
		th0 := mathx.PMod(Th0+m*siderealRate, secPerDay)
		ut := m + ΔT
		α := raI.InterpolateX(ut)
		δ := decI.InterpolateX(ut)
		H := th0/secPerRad - (loc.Lng + α)
		sδ, cδ := math.Sincos(δ)
		h := sφ*sδ + cφ*cδ*math.Cos(H)
		return (h - h0) / (cδ * cφ * math.Sin(H)) * secPerRad
	}
	r.Rise, r.RiseDay = shift(r.Rise, r.RiseDay, correction(r.Rise))
	r.Set, r.SetDay = shift(r.Set, r.SetDay, correction(r.Set))
	return r, nil
}

// shift moves the event at s seconds of day offset day by Δ seconds and
// returns the new time of day and day offset.
func shift(s float64, day int, Δ float64) (float64, int) {
	u := s + Δ
	t := mathx.PMod(u, secPerDay)
	return t, day + int(math.Round((u-t)/secPerDay))
}
