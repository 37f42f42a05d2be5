// Package mathx holds the small numeric helpers shared by the ephemeris packages.
package mathx

import "math"

// Horner evaluates the polynomial with coefficients c at x. The constant
// term is c[0]. It panics when c is empty.
func Horner(x float64, c ...float64) float64 {
	i := len(c) - 1
	y := c[i]
	for i > 0 {
		i--
		y = y*x + c[i]
	}
	return y
}

// PMod returns x mod y in the range [0, y) for positive y.
func PMod(x, y float64) float64 {
	r := math.Mod(x, y)
	if r < 0 {
		r += y
		// a tiny negative x rounds up to y
		if r >= y {
			r = 0
		}
	}
	return r
}

// ModF splits v into integer and fractional parts that sum to v.
// Both parts carry the sign of v.
func ModF(v float64) (whole, frac float64) {
	return math.Modf(v)
}
