package timescale

import (
	"math"
	"time"
)

// Date is a calendar date whose Day may carry a fraction of a day.
type Date struct {
	Year  int
	Month int
	Day   float64
}

// gregorianStart is the first day of the Gregorian calendar.
var gregorianStart = Date{Year: 1582, Month: 10, Day: 15}

// gregorianStartJD is the first Julian Day number handled by the Gregorian
// branch of JDToCalendar.
const gregorianStartJD = 2299151

func (d Date) before(o Date) bool {
	if d.Year != o.Year {
		return d.Year < o.Year
	}
	if d.Month != o.Month {
		return d.Month < o.Month
	}
	return d.Day < o.Day
}

// CalendarToJD converts a date to a Julian Day, choosing the Julian calendar
// before 1582-10-15 and the Gregorian calendar from then on.
func CalendarToJD(y, m int, d float64) float64 {
	if (Date{Year: y, Month: m, Day: d}).before(gregorianStart) {
		return CalendarJulianToJD(y, m, d)
	}
	return CalendarGregorianToJD(y, m, d)
}

// CalendarGregorianToJD converts a Gregorian calendar date to a Julian Day.
// Negative years are valid back to JD 0.
func CalendarGregorianToJD(y, m int, d float64) float64 {
	yy, mm := shiftJanFeb(y, m)
	a := math.Floor(yy / 100)
	b := 2 - a + math.Floor(a/4)
	return wholeDays(yy, mm) + b + d - 1524.5
}

// CalendarJulianToJD converts a Julian calendar date to a Julian Day.
// Negative years are valid back to JD 0.
func CalendarJulianToJD(y, m int, d float64) float64 {
	yy, mm := shiftJanFeb(y, m)
	return wholeDays(yy, mm) + d - 1524.5
}

// shiftJanFeb counts January and February as months 13 and 14 of the
// previous year.
func shiftJanFeb(y, m int) (float64, float64) {
	if m == 1 || m == 2 {
		y--
		m += 12
	}
	return float64(y), float64(m)
}

func wholeDays(y, m float64) float64 {
	return math.Floor(36525*(y+4716)/100) + math.Floor(306*(m+1)/10)
}

// JDToCalendar converts a Julian Day to a calendar date. Days from
// JD 2299160.5 onward are returned in the Gregorian calendar, earlier ones in
// the Julian calendar.
func JDToCalendar(jd float64) Date {
	z, f := math.Modf(jd + 0.5)

	a := z
	if z >= gregorianStartJD {
		alpha := math.Floor((z*100 - 186721625) / 3652425)
		a = z + 1 + alpha - math.Floor(alpha/4)
	}
	b := a + 1524
	c := math.Floor((b*100 - 12210) / 36525)
	d := math.Floor(36525 * c / 100)
	e := math.Floor((b - d) * 1e4 / 306001)

	day := (b - d) - math.Floor(306001*e/1e4) + f

	month := int(e) - 1
	if e == 14 || e == 15 {
		month = int(e) - 13
	}

	year := int(c) - 4716
	if month == 1 || month == 2 {
		year = int(c) - 4715
	}

	return Date{Year: year, Month: month, Day: day}
}

// unixEpochJD is the Julian Day of 1970-01-01 0h UT.
const unixEpochJD = 2440587.5

// JDToTime converts a Julian Day to a UTC time.Time rounded to the nearest
// second. The result is in the proleptic Gregorian calendar of package time,
// the inverse of FromTime for any date.
func JDToTime(jd float64) time.Time {
	sec := math.Round((jd - unixEpochJD) * SecondsPerDay)
	return time.Unix(int64(sec), 0).UTC()
}

// LeapYearGregorian reports whether y is a leap year in the Gregorian calendar.
func LeapYearGregorian(y int) bool {
	return (y%4 == 0 && y%100 != 0) || y%400 == 0
}

// LeapYearJulian reports whether y is a leap year in the Julian calendar.
func LeapYearJulian(y int) bool {
	return y%4 == 0
}

// DayOfYear returns the day number within the year, 1 for January 1st.
func DayOfYear(y, m, d int, leap bool) int {
	k := 2
	if leap {
		k = 1
	}
	return 275*m/9 - k*((m+9)/12) + d - 30
}
