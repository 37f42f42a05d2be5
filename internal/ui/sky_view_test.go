package ui

import (
	"math"
	"strings"
	"testing"

	"github.com/litescript/ls-ephem/internal/state"
)

func TestProjectToScreen(t *testing.T) {
	m := NewSkyViewModel() // camera south
	const width, height = 180, 92

	tests := []struct {
		name        string
		az, el      float64
		wantX       int
		wantY       int
		wantVisible bool
	}{
		{"center", 180, 45, 90, 45, true},
		{"zenith", 180, 90, 90, 0, true},
		{"east horizon", 90, 0, 0, 90, true},
		{"south-west", 225, 45, 135, 45, true},
		{"north is behind", 0, 30, 0, 0, false},
		{"below horizon", 180, -5, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, ok := m.projectToScreen(tt.az, tt.el, width, height)
			if ok != tt.wantVisible {
				t.Fatalf("visible = %v, want %v", ok, tt.wantVisible)
			}
			if ok && (x != tt.wantX || y != tt.wantY) {
				t.Errorf("projectToScreen(%v, %v) = (%d, %d), want (%d, %d)", tt.az, tt.el, x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestNormalizeAz(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{0, 0}, {-15, 345}, {360, 0}, {725, 5},
	}
	for _, tt := range tests {
		if got := normalizeAz(tt.in); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("normalizeAz(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSkyCanvasShowsBodiesAboveHorizon(t *testing.T) {
	snap := state.Snapshot{Observation: testObservation()}
	m := NewSkyViewModel().SetSize(100, 30).UpdateData(snap)

	canvas := m.renderSkyCanvas(100, 27)
	if !strings.ContainsRune(canvas, glyphSun) {
		t.Error("Sun above the horizon should be drawn")
	}
	for _, g := range []rune{'○', '◐', '●'} {
		if strings.ContainsRune(canvas, g) {
			t.Errorf("Moon below the horizon drawn as %q", g)
		}
	}
	if !strings.Contains(m.View(), "sun: az 185.9°") {
		t.Errorf("status missing focused body:\n%s", m.renderStatus())
	}
}

func TestSkyFocusNext(t *testing.T) {
	snap := state.Snapshot{Observation: testObservation()}
	m := NewSkyViewModel().UpdateData(snap).focusNext()
	if m.focus.String() != "moon" {
		t.Errorf("focus = %v, want moon", m.focus)
	}
	if math.Abs(m.camAz-22.1) > 1e-9 {
		t.Errorf("camAz = %v, want 22.1", m.camAz)
	}
	if !strings.Contains(m.renderStatus(), "below the horizon") {
		t.Errorf("status = %q", m.renderStatus())
	}
}

func TestMoonGlyph(t *testing.T) {
	if moonGlyph(0.02) != '○' || moonGlyph(0.5) != '◐' || moonGlyph(0.98) != '●' {
		t.Error("unexpected moon glyphs")
	}
}

func TestSkyViewTooSmall(t *testing.T) {
	m := NewSkyViewModel().SetSize(10, 5)
	if got := m.View(); got != "Sky view requires larger terminal" {
		t.Errorf("View() = %q", got)
	}
}
