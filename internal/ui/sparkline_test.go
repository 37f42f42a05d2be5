package ui

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/litescript/ls-ephem/internal/state"
)

func series(vals ...float64) []state.TimeSeries {
	out := make([]state.TimeSeries, len(vals))
	for i, v := range vals {
		out[i] = state.TimeSeries{Timestamp: at.Add(time.Duration(i) * time.Minute), Value: v}
	}
	return out
}

func TestResampleAltitude(t *testing.T) {
	if got := resampleAltitude(nil, 10); got != nil {
		t.Errorf("resample(nil) = %v", got)
	}
	if got := resampleAltitude(series(1, 2, 3), 10); len(got) != 3 || got[2] != 3 {
		t.Errorf("short history = %v, want unchanged", got)
	}

	got := resampleAltitude(series(0, 2, 4, 6, 8, 10), 3)
	want := []float64{1, 5, 9}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("bucket %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSparklineLevel(t *testing.T) {
	tests := []struct{ alt, want float64 }{
		{-10, 0}, {0, 0}, {45, 0.5}, {90, 1}, {120, 1},
	}
	for _, tt := range tests {
		if got := sparklineLevel(tt.alt); got != tt.want {
			t.Errorf("sparklineLevel(%v) = %v, want %v", tt.alt, got, tt.want)
		}
	}
}

func TestInterpolateAltColor(t *testing.T) {
	r, g, b := interpolateAltColor(0)
	if [3]uint8{r, g, b} != altColorLow {
		t.Errorf("t=0 -> %v", [3]uint8{r, g, b})
	}
	r, g, b = interpolateAltColor(1)
	if [3]uint8{r, g, b} != altColorHigh {
		t.Errorf("t=1 -> %v", [3]uint8{r, g, b})
	}
	r, g, b = interpolateAltColor(0.5)
	if [3]uint8{r, g, b} != altColorMid {
		t.Errorf("t=0.5 -> %v", [3]uint8{r, g, b})
	}
}

func TestRenderAltitudeSparkline(t *testing.T) {
	if got := renderAltitudeSparkline(nil); !strings.Contains(got, "no history yet") {
		t.Errorf("empty sparkline = %q", got)
	}
	got := renderAltitudeSparkline(series(-5, 10, 45, 90, 12))
	if !strings.Contains(got, "now: 12.0°") {
		t.Errorf("sparkline missing current value: %q", got)
	}
	if !strings.ContainsRune(got, '▁') || !strings.ContainsRune(got, '█') {
		t.Errorf("sparkline should span low to high blocks: %q", got)
	}
}
