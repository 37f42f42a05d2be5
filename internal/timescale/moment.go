// Package timescale converts civil timestamps to Julian Days and carries the
// UT/TT offset (ΔT) used throughout the ephemeris.
package timescale

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Epochs and period lengths used by the ephemeris series.
const (
	J2000         = 2451545.0
	JulianCentury = 36525.0
	JMod          = 2400000.5
	J1900         = 2415020.0
	B1900         = 2415020.3135
	B1950         = 2433282.4235
	JulianYear    = 365.25
	BesselianYear = 365.2421988

	SecondsPerDay = 86400.0
)

// ErrInvalidInput is returned when a Julian Day or calendar field is not finite.
var ErrInvalidInput = errors.New("timescale: non-finite input")

// Moment is an instant expressed both as Julian Day (UT) and Julian Day
// Ephemeris (TT). JDE always equals JD + DeltaT/86400.
//
// Moments are immutable; derived instants are new values.
type Moment struct {
	jd     float64
	jde    float64
	deltaT float64
}

// New returns the Moment for jd with ΔT estimated from jd.
func New(jd float64) (Moment, error) {
	if math.IsNaN(jd) || math.IsInf(jd, 0) {
		return Moment{}, fmt.Errorf("%w: jd=%v", ErrInvalidInput, jd)
	}
	return newMoment(jd, EstimateDeltaT(jd)), nil
}

// NewWithDeltaT returns the Moment for jd using a known ΔT in seconds.
func NewWithDeltaT(jd, deltaT float64) (Moment, error) {
	if math.IsNaN(jd) || math.IsInf(jd, 0) || math.IsNaN(deltaT) || math.IsInf(deltaT, 0) {
		return Moment{}, fmt.Errorf("%w: jd=%v deltaT=%v", ErrInvalidInput, jd, deltaT)
	}
	return newMoment(jd, deltaT), nil
}

// FromJDE returns the Moment whose ephemeris day is jde. ΔT is estimated
// from jde itself.
func FromJDE(jde float64) (Moment, error) {
	if math.IsNaN(jde) || math.IsInf(jde, 0) {
		return Moment{}, fmt.Errorf("%w: jde=%v", ErrInvalidInput, jde)
	}
	deltaT := EstimateDeltaT(jde)
	return newMoment(JDEToJD(jde, deltaT), deltaT), nil
}

// FromCivil treats the fields as UT and returns the matching Moment. Dates
// before 1582-10-15 use the Julian calendar.
func FromCivil(y, m, d, h, min int, s float64) (Moment, error) {
	if math.IsNaN(s) || math.IsInf(s, 0) {
		return Moment{}, fmt.Errorf("%w: seconds=%v", ErrInvalidInput, s)
	}
	day := float64(d) + (float64(h)*3600+float64(min)*60+s)/SecondsPerDay
	return New(CalendarToJD(y, m, day))
}

// FromTime returns the Moment for t, read in UTC. Package time counts in the
// proleptic Gregorian calendar, so unlike FromCivil every date is converted
// as a Gregorian one, including those before 1582-10-15.
func FromTime(t time.Time) (Moment, error) {
	t = t.UTC()
	sec := float64(t.Hour()*3600+t.Minute()*60+t.Second()) + float64(t.Nanosecond())/1e9
	return New(CalendarGregorianToJD(t.Year(), int(t.Month()), float64(t.Day())+sec/SecondsPerDay))
}

func newMoment(jd, deltaT float64) Moment {
	return Moment{jd: jd, jde: JDToJDE(jd, deltaT), deltaT: deltaT}
}

// JD returns the Julian Day (UT).
func (m Moment) JD() float64 { return m.jd }

// JDE returns the Julian Day Ephemeris (TT).
func (m Moment) JDE() float64 { return m.jde }

// DeltaT returns TT − UT in seconds.
func (m Moment) DeltaT() float64 { return m.deltaT }

// Centuries returns Julian centuries since J2000 counted in UT.
func (m Moment) Centuries() float64 {
	return JDToCenturies(m.jd)
}

// CenturiesJDE returns Julian centuries since J2000 counted in TT.
func (m Moment) CenturiesJDE() float64 {
	return JDToCenturies(m.jde)
}

// AddDays returns the Moment n days later, keeping ΔT.
func (m Moment) AddDays(n float64) Moment {
	return newMoment(m.jd+n, m.deltaT)
}

// StartOfDay returns the Moment at floor(JDE − 0.5) + 0.5, keeping ΔT.
// The boundary is taken on the ephemeris day and applied as a JD.
func (m Moment) StartOfDay() Moment {
	return newMoment(math.Floor(m.jde-0.5)+0.5, m.deltaT)
}

// Calendar returns the calendar date of the Moment's JD.
func (m Moment) Calendar() Date {
	return JDToCalendar(m.jd)
}

// Time returns the Moment as a UTC time.Time rounded to the second.
func (m Moment) Time() time.Time {
	return JDToTime(m.jd)
}

func (m Moment) String() string {
	return fmt.Sprintf("JD %.6f (ΔT %.1fs)", m.jd, m.deltaT)
}

// JDToCenturies returns Julian centuries since J2000.
func JDToCenturies(jd float64) float64 {
	return (jd - J2000) / JulianCentury
}

// JDToJDE adds ΔT seconds to a Julian Day.
func JDToJDE(jd, deltaT float64) float64 {
	return jd + deltaT/SecondsPerDay
}

// JDEToJD removes ΔT seconds from a Julian Day Ephemeris.
func JDEToJD(jde, deltaT float64) float64 {
	return jde - deltaT/SecondsPerDay
}
