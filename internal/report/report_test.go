package report

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/soniakeys/unit"

	"github.com/litescript/ls-ephem/internal/body"
	"github.com/litescript/ls-ephem/internal/coord"
	"github.com/litescript/ls-ephem/internal/state"
)

var at = time.Date(2016, 2, 21, 12, 0, 0, 0, time.UTC)

func zurich(t *testing.T) coord.Location {
	t.Helper()
	loc, err := coord.LocationFromDegrees(47.3667, 8.55, 408)
	if err != nil {
		t.Fatal(err)
	}
	loc.Name = "Zurich"
	return loc
}

// fixture is a hand-built observation with one circumpolar body.
func fixture(t *testing.T) body.Observation {
	t.Helper()
	day := at.Truncate(24 * time.Hour)
	return body.Observation{
		Time:     at,
		Location: zurich(t),
		Sun: body.BodyObservation{
			Kind:     body.KindSun,
			Azimuth:  185.94 * deg,
			Altitude: 32.5 * deg,
			RA:       unit.NewRA(22, 15, 30).Rad(),
			Dec:      unit.NewAngle('-', 10, 30, 0).Rad(),
			Distance: 148000000,
			Rise:     day.Add(6*time.Hour + 21*time.Minute + 58*time.Second),
			Transit:  day.Add(11*time.Hour + 39*time.Minute + 28*time.Second),
			Set:      day.Add(16*time.Hour + 57*time.Minute + 42*time.Second),
		},
		Moon: body.BodyObservation{
			Kind:     body.KindMoon,
			Azimuth:  22.1 * deg,
			Altitude: -20 * deg,
			RA:       unit.NewRA(8, 50, 59.19).Rad(),
			Dec:      unit.NewAngle(' ', 13, 30, 52.1).Rad(),
			Distance: 392575.75,
			NoEvent:  true,
		},
		Illumination: body.Illumination{
			PhaseAngle:    10.4 * deg,
			Fraction:      0.9837,
			PositionAngle: 285 * deg,
		},
	}
}

func TestFormatAngle(t *testing.T) {
	got := FormatAngle(unit.NewAngle('-', 15, 46, 30).Rad(), 0)
	if !strings.HasPrefix(got, "-15°46′") {
		t.Errorf("FormatAngle() = %q, want prefix -15°46′", got)
	}
	got = FormatRA(unit.NewRA(8, 50, 59.19).Rad(), 1)
	if !strings.HasPrefix(got, "8ʰ50ᵐ") {
		t.Errorf("FormatRA() = %q, want prefix 8ʰ50ᵐ", got)
	}
}

func TestFormatDistance(t *testing.T) {
	tests := []struct {
		km   float64
		want string
	}{
		{0, "N/A"},
		{-5, "N/A"},
		{392575.75, "392576 km"},
		{149597870, "1.0000 AU"},
		{147100000, "0.9833 AU"},
	}
	for _, tt := range tests {
		if got := FormatDistance(tt.km); got != tt.want {
			t.Errorf("FormatDistance(%v) = %q, want %q", tt.km, got, tt.want)
		}
	}
}

func TestFormatEventTime(t *testing.T) {
	if got := FormatEventTime(time.Time{}); got != "--" {
		t.Errorf("FormatEventTime(zero) = %q", got)
	}
	if got := FormatEventTime(at.Add(90 * time.Second)); got != "12:01:30" {
		t.Errorf("FormatEventTime() = %q, want 12:01:30", got)
	}
}

func TestGenerateSummaryRows(t *testing.T) {
	rows := GenerateSummaryRows(fixture(t))
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}

	sun, moon := rows[0], rows[1]
	if sun.Body != "sun" || moon.Body != "moon" {
		t.Errorf("bodies = %q, %q", sun.Body, moon.Body)
	}
	if sun.Azimuth != "185.94°" {
		t.Errorf("sun azimuth = %q", sun.Azimuth)
	}
	if sun.Rise != "06:21:58" || sun.Transit != "11:39:28" || sun.Set != "16:57:42" {
		t.Errorf("sun events = %q %q %q", sun.Rise, sun.Transit, sun.Set)
	}
	if moon.Rise != "never up" || moon.Set != "--" {
		t.Errorf("moon events = %q %q", moon.Rise, moon.Set)
	}
	if moon.Distance != "392576 km" {
		t.Errorf("moon distance = %q", moon.Distance)
	}
}

func TestGenerateSummaryRows_NoEventLabel(t *testing.T) {
	tests := []struct {
		name        string
		altDeg      float64
		circumpolar bool
		want        string
	}{
		{"circumpolar low in the sky", 3, true, "always up"},
		{"circumpolar refracted under the horizon", -0.2, true, "always up"},
		{"below the standard altitude all day", 0.1, false, "never up"},
		{"polar night", -12, false, "never up"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs := fixture(t)
			obs.Sun = body.BodyObservation{
				Kind:        body.KindSun,
				Altitude:    tt.altDeg * deg,
				NoEvent:     true,
				Circumpolar: tt.circumpolar,
			}
			if got := GenerateSummaryRows(obs)[0].Rise; got != tt.want {
				t.Errorf("sun rise label = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer
	WriteSummary(&buf, fixture(t))
	output := buf.String()

	for _, want := range []string{
		"Sun & Moon @ 2016-02-21T12:00:00Z",
		"Zurich",
		"sun",
		"moon",
		"98.4% illuminated",
		"bright limb 285.0°",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("summary missing %q:\n%s", want, output)
		}
	}
}

func TestWriteEvents(t *testing.T) {
	events := []state.Event{
		{Type: state.EventRise, Timestamp: at, Body: "sun", Azimuth: 110},
		{Type: state.EventSet, Timestamp: at.Add(time.Hour), Body: "moon", Azimuth: 250},
	}

	var buf bytes.Buffer
	WriteEvents(&buf, events, 1)
	output := buf.String()

	if !strings.Contains(output, "Event Log") {
		t.Error("Should have Event Log header")
	}
	if strings.Contains(output, "RISE") || !strings.Contains(output, "SET") {
		t.Errorf("should show only the last event:\n%s", output)
	}
}

func TestWriteEvents_Empty(t *testing.T) {
	var buf bytes.Buffer
	WriteEvents(&buf, nil, 10)
	if !strings.Contains(buf.String(), "No events") {
		t.Error("Empty events should say no events")
	}
}

func TestWriteSeasons(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSeasons(&buf, 2024); err != nil {
		t.Fatalf("WriteSeasons() error = %v", err)
	}
	output := buf.String()
	for _, want := range []string{"2024-03-20", "2024-06-20", "2024-09-22", "2024-12-21"} {
		if !strings.Contains(output, want) {
			t.Errorf("seasons missing %s:\n%s", want, output)
		}
	}
}

func TestExport(t *testing.T) {
	e := Export(fixture(t))

	if e.Observer.Name != "Zurich" || math.Abs(e.Observer.Longitude-8.55) > 1e-9 {
		t.Errorf("Observer = %+v", e.Observer)
	}
	if len(e.Bodies) != 2 {
		t.Fatalf("got %d bodies, want 2", len(e.Bodies))
	}
	sun := e.Bodies[0]
	if math.Abs(sun.Azimuth-185.94) > 1e-9 || !sun.Above {
		t.Errorf("sun = %+v", sun)
	}
	if sun.Rise == nil || sun.Rise.Hour() != 6 {
		t.Errorf("sun rise = %v", sun.Rise)
	}
	moon := e.Bodies[1]
	if moon.Rise != nil || !moon.NoEvent || moon.Above {
		t.Errorf("moon = %+v", moon)
	}
	if math.Abs(e.Illumination.PositionAngle-285) > 1e-9 {
		t.Errorf("position angle = %v", e.Illumination.PositionAngle)
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Export(fixture(t)).WriteJSON(&buf); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	bodies, ok := decoded["bodies"].([]any)
	if !ok || len(bodies) != 2 {
		t.Fatalf("bodies = %v", decoded["bodies"])
	}
	moon := bodies[1].(map[string]any)
	if _, has := moon["rise"]; has {
		t.Error("moon rise should be omitted when there is no event")
	}
	if !strings.Contains(buf.String(), `"moon_illumination"`) {
		t.Error("missing moon_illumination")
	}
}

func TestExportObserved(t *testing.T) {
	obs, err := body.ObserveMany(t.Context(), at, []coord.Location{zurich(t)}, 1)
	if err != nil {
		t.Fatalf("ObserveMany() error = %v", err)
	}
	out := ExportMany(obs)
	if len(out) != 1 {
		t.Fatalf("ExportMany() returned %d", len(out))
	}
	sun := out[0].Bodies[0]
	if math.Abs(sun.Azimuth-185.94) > 0.05 {
		t.Errorf("sun azimuth = %v, want 185.94", sun.Azimuth)
	}
	if math.Abs(out[0].Illumination.Fraction-0.9837) > 1e-3 {
		t.Errorf("fraction = %v", out[0].Illumination.Fraction)
	}
}
