package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/litescript/ls-ephem/internal/body"
)

// SnapshotExport is the JSON-serializable representation of an observation.
// Angles are degrees.
type SnapshotExport struct {
	Timestamp    time.Time          `json:"timestamp"`
	Observer     ObserverExport     `json:"observer"`
	Bodies       []BodyExport       `json:"bodies"`
	Illumination IlluminationExport `json:"moon_illumination"`
}

// ObserverExport is a JSON-friendly observer location.
type ObserverExport struct {
	Name      string  `json:"name,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"` // east positive
	Height    float64 `json:"height_m"`
}

// BodyExport is a JSON-friendly body position with its event times.
type BodyExport struct {
	Body     string     `json:"body"`
	Azimuth  float64    `json:"azimuth"`
	Altitude float64    `json:"altitude"`
	RA       float64    `json:"ra"`
	Dec      float64    `json:"dec"`
	Distance float64    `json:"distance_km"`
	Rise     *time.Time `json:"rise,omitempty"`
	Transit  *time.Time `json:"transit,omitempty"`
	Set      *time.Time `json:"set,omitempty"`
	NoEvent  bool       `json:"no_event,omitempty"`
	Above    bool       `json:"above_horizon"`

	Circumpolar bool `json:"circumpolar,omitempty"`
}

// IlluminationExport is the Moon's illuminated fraction and angles.
type IlluminationExport struct {
	Fraction      float64 `json:"fraction"`
	PhaseAngle    float64 `json:"phase_angle"`
	PositionAngle float64 `json:"position_angle"`
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// Export converts an observation to an exportable format.
func Export(obs body.Observation) *SnapshotExport {
	loc := obs.Location
	export := &SnapshotExport{
		Timestamp: obs.Time.UTC(),
		Observer: ObserverExport{
			Name:      loc.Name,
			Latitude:  loc.LatDeg(),
			Longitude: loc.LonDeg(),
			Height:    loc.Height,
		},
		Illumination: IlluminationExport{
			Fraction:      obs.Illumination.Fraction,
			PhaseAngle:    obs.Illumination.PhaseAngle / deg,
			PositionAngle: obs.Illumination.PositionAngle / deg,
		},
	}
	for _, k := range body.Kinds {
		b := obs.Body(k)
		export.Bodies = append(export.Bodies, BodyExport{
			Body:     k.String(),
			Azimuth:  b.Azimuth / deg,
			Altitude: b.Altitude / deg,
			RA:       b.RA / deg,
			Dec:      b.Dec / deg,
			Distance: b.Distance,
			Rise:     timePtr(b.Rise),
			Transit:  timePtr(b.Transit),
			Set:      timePtr(b.Set),
			NoEvent:  b.NoEvent,
			Above:    b.AboveHorizon(),

			Circumpolar: b.Circumpolar,
		})
	}
	return export
}

// ExportMany converts several observations, as produced by body.ObserveMany.
func ExportMany(obs []body.Observation) []*SnapshotExport {
	out := make([]*SnapshotExport, len(obs))
	for i, o := range obs {
		out[i] = Export(o)
	}
	return out
}

// WriteJSON writes the snapshot as JSON to the given writer.
func (s *SnapshotExport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
