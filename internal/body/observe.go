package body

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/litescript/ls-ephem/internal/coord"
	"github.com/litescript/ls-ephem/internal/rise"
	"github.com/litescript/ls-ephem/internal/timescale"
)

// BodyObservation is the state of one body seen by an observer.
type BodyObservation struct {
	Kind     Kind
	Azimuth  float64 // radians from north, [0, 2π)
	Altitude float64 // radians, refracted
	RA       float64 // topocentric right ascension
	Dec      float64 // topocentric declination
	Distance float64 // km

	// Events for the UT day containing the observation; zero when NoEvent.
	Rise, Transit, Set time.Time
	NoEvent            bool
	// Circumpolar is set with NoEvent when the body stays above the
	// standard altitude all day.
	Circumpolar bool
}

// AboveHorizon reports whether the body is above the mathematical horizon.
func (b BodyObservation) AboveHorizon() bool {
	return b.Altitude > 0
}

// Observation is a snapshot of the Sun and the Moon for one observer.
type Observation struct {
	Time         time.Time
	Location     coord.Location
	Sun          BodyObservation
	Moon         BodyObservation
	Illumination Illumination
}

// Body returns the observation of body k.
func (o Observation) Body(k Kind) BodyObservation {
	if k == KindMoon {
		return o.Moon
	}
	return o.Sun
}

// Observe computes positions, event times and lunar illumination at t for an
// observer at loc.
func Observe(t time.Time, loc coord.Location) (Observation, error) {
	t = t.UTC()
	m, err := timescale.FromTime(t)
	if err != nil {
		return Observation{}, err
	}

	obs := Observation{Time: t, Location: loc}
	for _, k := range Kinds {
		p, err := ProviderFor(k)
		if err != nil {
			return Observation{}, err
		}
		bo, err := observeBody(p, k, t, m, loc)
		if err != nil {
			return Observation{}, fmt.Errorf("%s: %w", k, err)
		}
		if k == KindMoon {
			obs.Moon = bo
		} else {
			obs.Sun = bo
		}
	}

	obs.Illumination, err = Moon{}.Illumination(m)
	if err != nil {
		return Observation{}, fmt.Errorf("illumination: %w", err)
	}
	return obs, nil
}

func observeBody(p Provider, k Kind, t time.Time, m timescale.Moment, loc coord.Location) (BodyObservation, error) {
	pos, err := p.Position(m, loc)
	if err != nil {
		return BodyObservation{}, err
	}
	r, day, err := DayTimes(p, t, loc)
	if err != nil {
		return BodyObservation{}, err
	}
	bo := BodyObservation{
		Kind:     k,
		Azimuth:  pos.Horizontal.AzimuthFromNorth(),
		Altitude: pos.Horizontal.Alt,
		RA:       pos.Equatorial.RA,
		Dec:      pos.Equatorial.Dec,
		Distance: pos.Distance,
		NoEvent:  r.NoEvent,

		Circumpolar: r.Circumpolar,
	}
	if !r.NoEvent {
		bo.Rise = EventTime(day, r.Rise)
		bo.Transit = EventTime(day, r.Transit)
		bo.Set = EventTime(day, r.Set)
	}
	return bo, nil
}

// EventTime converts seconds after 0h UT of day into a time, rounded to the
// second.
func EventTime(day time.Time, sec float64) time.Time {
	return day.Add(time.Duration(sec * float64(time.Second))).Round(time.Second)
}

// DayTimes returns the refined event times of p for the UT day containing t,
// as times on that day. The day is looked up from its noon so that the
// ephemeris day boundary matches the UT one whatever the sign of ΔT.
func DayTimes(p Provider, t time.Time, loc coord.Location) (rise.Result, time.Time, error) {
	day := t.UTC().Truncate(24 * time.Hour)
	m0, err := timescale.FromTime(day.Add(12 * time.Hour))
	if err != nil {
		return rise.Result{}, day, err
	}
	r, err := p.Times(m0, loc)
	return r, day, err
}

// ObserveMany runs Observe for each location concurrently with at most
// workers in flight; workers <= 0 means no limit. Results keep the order of
// locs. The first error cancels the remaining work.
func ObserveMany(ctx context.Context, t time.Time, locs []coord.Location, workers int) ([]Observation, error) {
	out := make([]Observation, len(locs))
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, loc := range locs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			o, err := Observe(t, loc)
			if err != nil {
				return fmt.Errorf("observer %d (%s): %w", i, loc, err)
			}
			out[i] = o
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
