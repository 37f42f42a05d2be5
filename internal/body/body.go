// Package body combines the ephemeris pipeline into positions and daily
// event times of the Sun and the Moon for an observer.
package body

import (
	"fmt"
	"math"
	"strings"

	"github.com/litescript/ls-ephem/internal/coord"
	"github.com/litescript/ls-ephem/internal/refraction"
	"github.com/litescript/ls-ephem/internal/rise"
	"github.com/litescript/ls-ephem/internal/timescale"
)

const deg = math.Pi / 180

// Position is a topocentric position of a body.
type Position struct {
	Horizontal coord.Horizontal // azimuth from the south
	Equatorial coord.Equatorial
	Distance   float64 // km

	// ParallacticAngle is set for the Moon only.
	ParallacticAngle float64
}

// refract returns the refraction to add to true altitude h. Bodies more than
// a degree below the horizon are left unrefracted.
func refract(h float64) float64 {
	if h < -1*deg {
		return 0
	}
	return refraction.Saemundsson(h)
}

// Provider supplies positions and event times of one body.
type Provider interface {
	// Name returns the body name for display and logging.
	Name() string

	// Position returns the refracted topocentric position at m.
	Position(m timescale.Moment, loc coord.Location) (Position, error)

	// Times returns the refined rise, transit and set times for the day of m.
	Times(m timescale.Moment, loc coord.Location) (rise.Result, error)
}

var (
	_ Provider = Sun{}
	_ Provider = Moon{}
)

// Kind identifies a body.
type Kind int

const (
	KindSun Kind = iota
	KindMoon
)

// Kinds lists every supported body.
var Kinds = []Kind{KindSun, KindMoon}

// String returns the body name.
func (k Kind) String() string {
	switch k {
	case KindSun:
		return "sun"
	case KindMoon:
		return "moon"
	default:
		return "unknown"
	}
}

// ParseKind parses a body name, ignoring case.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sun":
		return KindSun, nil
	case "moon":
		return KindMoon, nil
	default:
		return 0, fmt.Errorf("unknown body %q", s)
	}
}

// ProviderFor returns the Provider for k.
func ProviderFor(k Kind) (Provider, error) {
	switch k {
	case KindSun:
		return Sun{}, nil
	case KindMoon:
		return Moon{}, nil
	default:
		return nil, fmt.Errorf("no provider for body %d", int(k))
	}
}
