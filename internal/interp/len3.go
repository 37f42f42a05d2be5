// Package interp implements three-point interpolation over equally spaced
// samples.
package interp

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned for a malformed Len3 setup.
var ErrInvalidArgument = errors.New("interp: invalid argument")

// Len3 interpolates a function tabulated at three equally spaced abscissae.
// The zero value is not usable; build one with NewLen3.
type Len3 struct {
	x1, x3 float64
	y      [3]float64

	a, b, c    float64 // first differences and second difference
	abSum      float64
	xSum, xDif float64
}

// NewLen3 prepares interpolation of y, sampled at x1, (x1+x3)/2 and x3.
// y must hold exactly three values and x1 must differ from x3.
func NewLen3(x1, x3 float64, y []float64) (*Len3, error) {
	if len(y) != 3 {
		return nil, fmt.Errorf("%w: need 3 samples, got %d", ErrInvalidArgument, len(y))
	}
	if x3 == x1 {
		return nil, fmt.Errorf("%w: x1 == x3 == %v", ErrInvalidArgument, x1)
	}

	d := &Len3{x1: x1, x3: x3}
	copy(d.y[:], y)
	d.a = y[1] - y[0]
	d.b = y[2] - y[1]
	d.c = d.b - d.a
	d.abSum = d.a + d.b
	d.xSum = x3 + x1
	d.xDif = x3 - x1
	return d, nil
}

// InterpolateN returns the value at interpolating factor n, where n = 0 is
// the middle sample and n = ±1 are the outer ones. Values of n outside
// [-1, 1] extrapolate.
func (d *Len3) InterpolateN(n float64) float64 {
	return d.y[1] + n*0.5*(d.abSum+n*d.c)
}

// InterpolateX returns the value at abscissa x.
func (d *Len3) InterpolateX(x float64) float64 {
	return d.InterpolateN((2*x - d.xSum) / d.xDif)
}
