package coord

import "math"

const deg = math.Pi / 180

// DMSToDeg converts sexagesimal degrees, minutes and seconds to degrees.
// neg applies to the whole angle.
func DMSToDeg(neg bool, d, m int, s float64) float64 {
	v := (float64(d*60+m)*60 + s) / 3600
	if neg {
		return -v
	}
	return v
}

// Angle converts sexagesimal degrees, minutes and seconds to radians.
func Angle(neg bool, d, m int, s float64) float64 {
	return DMSToDeg(neg, d, m, s) * deg
}

// RA converts hours, minutes and seconds of right ascension to radians,
// wrapping at 24h.
func RA(h, m int, s float64) float64 {
	return math.Mod(DMSToDeg(false, h, m, s), 24) * 15 * deg
}

// DegToRad converts degrees to radians.
func DegToRad(d float64) float64 {
	return d * deg
}

// RadToDeg converts radians to degrees.
func RadToDeg(r float64) float64 {
	return r / deg
}
