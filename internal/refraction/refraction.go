// Package refraction estimates atmospheric refraction near the horizon.
package refraction

import "math"

const rad = math.Pi / 180

// Bennett returns the refraction in radians for an apparent altitude h0
// (Meeus 16.3). Negative altitudes are treated as zero.
func Bennett(h0 float64) float64 {
	if h0 < 0 {
		h0 = 0
	}
	const (
		c1   = rad / 60
		c731 = 7.31 * rad * rad
		c44  = 4.4 * rad
	)
	return c1 / math.Tan(h0+c731/(h0+c44))
}

// Bennett2 is Bennett with Sæmundsson's correction applied, good to about
// 0.015″ for a standard atmosphere.
func Bennett2(h0 float64) float64 {
	const (
		cMin = 60 / rad
		c06  = 0.06 / cMin
		c147 = 14.7 * cMin * rad
		c13  = 13 * rad
	)
	R := Bennett(h0)
	return R - c06*math.Sin(c147*R+c13)
}

// Saemundsson returns the refraction in radians for a true altitude h
// (Meeus 16.4). The result is consistent with Bennett to about 4″.
func Saemundsson(h float64) float64 {
	const (
		c102 = 1.02 * rad / 60
		c103 = 10.3 * rad * rad
		c511 = 5.11 * rad
	)
	return c102 / math.Tan(h+c103/(h+c511))
}
