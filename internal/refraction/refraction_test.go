package refraction

import (
	"math"
	"testing"
)

const arcmin = 60 * 180 / math.Pi

func TestBennettAndSaemundsson(t *testing.T) {
	// Meeus example 16.a: the Sun's lower limb at 0.5°.
	h0 := 0.5 * math.Pi / 180
	R := Bennett(h0)
	if got := R * arcmin; math.Abs(got-28.7537) > 1e-3 {
		t.Errorf("Bennett(0.5°) = %v′, want 28.7537′", got)
	}

	hLower := h0 - R
	hUpper := hLower + 32*math.Pi/(180*60)
	if got := Saemundsson(hUpper) * arcmin; math.Abs(got-24.618) > 1e-3 {
		t.Errorf("Saemundsson(upper limb) = %v′, want 24.618′", got)
	}
}

func TestBennettNegativeAltitude(t *testing.T) {
	want := Bennett(0)
	for _, h := range []float64{-0.001, -0.07679, -0.5} {
		got := Bennett(h)
		if got != want {
			t.Errorf("Bennett(%v) = %v, want Bennett(0) = %v", h, got, want)
		}
		if math.IsInf(got, 0) || math.IsNaN(got) {
			t.Errorf("Bennett(%v) = %v, want finite", h, got)
		}
	}
	// About 34′ at the horizon.
	if got := want * arcmin; math.Abs(got-34.5) > 0.5 {
		t.Errorf("Bennett(0) = %v′, want ~34.5′", got)
	}
}

func TestBennett2(t *testing.T) {
	tests := []float64{0, 0.5, 5, 30, 89}
	for _, hDeg := range tests {
		h := hDeg * math.Pi / 180
		b, b2 := Bennett(h), Bennett2(h)
		// The correction never exceeds 0.06′.
		if d := math.Abs(b-b2) * arcmin; d > 0.061 {
			t.Errorf("h=%v°: Bennett2 differs from Bennett by %v′", hDeg, d)
		}
	}
	// Near the zenith refraction is negligible.
	if got := Bennett2(math.Pi / 2); math.Abs(got)*arcmin > 0.02 {
		t.Errorf("Bennett2(90°) = %v′, want ~0", got*arcmin)
	}
}

func TestRefractionDecreasesWithAltitude(t *testing.T) {
	prev := math.Inf(1)
	for hDeg := 0.0; hDeg <= 80; hDeg += 5 {
		r := Saemundsson(hDeg * math.Pi / 180)
		if r >= prev {
			t.Errorf("Saemundsson(%v°) = %v not below previous %v", hDeg, r, prev)
		}
		prev = r
	}
}
