package mathx

import (
	"math"
	"testing"
)

func TestHorner(t *testing.T) {
	tests := []struct {
		name string
		x    float64
		c    []float64
		want float64
	}{
		{"constant", 3, []float64{5}, 5},
		{"linear", 2, []float64{1, 3}, 7},
		{"cubic", -1.5, []float64{1, -2, 0.5, 4}, 1 + 3 + 0.5*2.25 + 4*-3.375},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Horner(tt.x, tt.c...)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Horner(%v, %v) = %v, want %v", tt.x, tt.c, got, tt.want)
			}
		})
	}
}

func TestPMod(t *testing.T) {
	tests := []struct {
		x, y, want float64
	}{
		{370, 360, 10},
		{-10, 360, 350},
		{0, 360, 0},
		{-86400, 86400, 0},
		{-1, 2 * math.Pi, 2*math.Pi - 1},
		{-1e-17, 2 * math.Pi, 0},
		{-1e-12, 86400, 0},
		{-1e-300, 360, 0},
	}

	for _, tt := range tests {
		got := PMod(tt.x, tt.y)
		if math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("PMod(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
		if got < 0 || got >= tt.y {
			t.Errorf("PMod(%v, %v) = %v out of range", tt.x, tt.y, got)
		}
	}
}

func TestModF(t *testing.T) {
	whole, frac := ModF(-2.25)
	if whole != -2 || frac != -0.25 {
		t.Errorf("ModF(-2.25) = %v, %v, want -2, -0.25", whole, frac)
	}

	whole, frac = ModF(2451545.5)
	if whole != 2451545 || frac != 0.5 {
		t.Errorf("ModF(2451545.5) = %v, %v, want 2451545, 0.5", whole, frac)
	}
}
