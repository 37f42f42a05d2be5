package coord

import (
	"errors"
	"math"
	"testing"

	"github.com/litescript/ls-ephem/internal/sidereal"
	"github.com/litescript/ls-ephem/internal/timescale"
)

func TestEquatorialToEcliptic(t *testing.T) {
	// Pollux, Meeus example 13.a.
	eq := Equatorial{RA: RA(7, 45, 18.946), Dec: Angle(false, 28, 1, 34.26)}
	ε := 23.4392911 * math.Pi / 180

	ecl := EquatorialToEcliptic(eq, ε)
	if got := RadToDeg(ecl.Lon); math.Abs(got-113.21563) > 1e-5 {
		t.Errorf("λ = %v°, want 113.21563°", got)
	}
	if got := RadToDeg(ecl.Lat); math.Abs(got-6.684170) > 1e-5 {
		t.Errorf("β = %v°, want 6.684170°", got)
	}

	back := EclipticToEquatorial(ecl, ε)
	if math.Abs(back.RA-eq.RA) > 1e-5 || math.Abs(back.Dec-eq.Dec) > 1e-5 {
		t.Errorf("round trip = %+v, want %+v", back, eq)
	}
}

func TestEclipticEquatorialRoundTrip(t *testing.T) {
	ε := 23.44 * math.Pi / 180
	for raDeg := 0.0; raDeg < 360; raDeg += 30 {
		for _, decDeg := range []float64{-80, -45, -10, 0, 10, 45, 80} {
			eq := Equatorial{RA: DegToRad(raDeg), Dec: DegToRad(decDeg)}
			got := EclipticToEquatorial(EquatorialToEcliptic(eq, ε), ε)

			dRA := math.Abs(got.RA - eq.RA)
			if dRA > math.Pi {
				dRA = 2*math.Pi - dRA
			}
			if dRA > 1e-5 || math.Abs(got.Dec-eq.Dec) > 1e-5 {
				t.Errorf("round trip (%v°, %v°) = (%v°, %v°)", raDeg, decDeg, RadToDeg(got.RA), RadToDeg(got.Dec))
			}
			if got.RA < 0 || got.RA >= 2*math.Pi {
				t.Errorf("RA %v out of [0, 2π)", got.RA)
			}
		}
	}
}

func TestEclipticToEquatorialRANearZero(t *testing.T) {
	ε := 23.44 * math.Pi / 180
	for _, decDeg := range []float64{-45, 10} {
		eq := Equatorial{RA: 0, Dec: DegToRad(decDeg)}
		got := EclipticToEquatorial(EquatorialToEcliptic(eq, ε), ε)
		if got.RA < 0 || got.RA >= 2*math.Pi {
			t.Errorf("dec %v°: RA %v out of [0, 2π)", decDeg, got.RA)
		}
		if got.RA > 1e-9 && 2*math.Pi-got.RA > 1e-9 {
			t.Errorf("dec %v°: RA %v, want about 0", decDeg, got.RA)
		}
	}
}

func TestEquatorialToHorizontal(t *testing.T) {
	// Saturn from the US Naval Observatory, Meeus example 13.b.
	eq := Equatorial{RA: RA(23, 9, 16.641), Dec: Angle(true, 6, 43, 11.61)}
	loc := Location{Lat: Angle(false, 38, 55, 17), Lng: Angle(false, 77, 3, 56)}

	m, err := timescale.FromCivil(1987, 4, 10, 19, 21, 0)
	if err != nil {
		t.Fatalf("FromCivil() error = %v", err)
	}
	st := sidereal.Apparent(m) * math.Pi / 43200

	hz := EquatorialToHorizontal(eq, loc, st)
	if got := RadToDeg(hz.Az); math.Abs(got-68.0336) > 1e-4 {
		t.Errorf("azimuth = %v°, want 68.0336°", got)
	}
	if got := RadToDeg(hz.Alt); math.Abs(got-15.1249) > 1e-4 {
		t.Errorf("altitude = %v°, want 15.1249°", got)
	}
	if got := RadToDeg(hz.AzimuthFromNorth()); math.Abs(got-248.0336) > 1e-4 {
		t.Errorf("azimuth from north = %v°, want 248.0336°", got)
	}
}

func TestPolarisAltitude(t *testing.T) {
	// Near the celestial pole the altitude tracks the observer's latitude
	// whatever the sidereal time.
	polaris := Equatorial{RA: DegToRad(37.95), Dec: DegToRad(89.26)}
	loc, err := LocationFromDegrees(35, -117, 0)
	if err != nil {
		t.Fatalf("LocationFromDegrees() error = %v", err)
	}

	for st := 0.0; st < 2*math.Pi; st += 0.5 {
		hz := EquatorialToHorizontal(polaris, loc, st)
		if got := RadToDeg(hz.Alt); math.Abs(got-35) > 1 {
			t.Errorf("st=%v: Polaris altitude = %v°, want ~35°", st, got)
		}
	}
}

func TestLocationFromDegrees(t *testing.T) {
	loc, err := LocationFromDegrees(47.3667, 8.5655, 408)
	if err != nil {
		t.Fatalf("LocationFromDegrees() error = %v", err)
	}
	if loc.Lng >= 0 {
		t.Errorf("east longitude should be negative west-positive radians, got %v", loc.Lng)
	}
	if math.Abs(loc.LatDeg()-47.3667) > 1e-12 || math.Abs(loc.LonDeg()-8.5655) > 1e-12 {
		t.Errorf("degrees round trip = %v, %v", loc.LatDeg(), loc.LonDeg())
	}
	if loc.Height != 408 {
		t.Errorf("Height = %v, want 408", loc.Height)
	}
}

func TestInvalidInput(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		name string
		err  error
	}{
		{"location", func() error { _, err := NewLocation(nan, 0, 0); return err }()},
		{"location degrees", func() error { _, err := LocationFromDegrees(0, math.Inf(1), 0); return err }()},
		{"ecliptic", func() error { _, err := NewEcliptic(0, nan); return err }()},
		{"equatorial", func() error { _, err := NewEquatorial(nan, 0); return err }()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, ErrInvalidInput) {
				t.Errorf("error = %v, want ErrInvalidInput", tt.err)
			}
		})
	}
}

func TestAngles(t *testing.T) {
	if got := DMSToDeg(true, 0, 0, 3.788); math.Abs(got-(-3.788/3600)) > 1e-15 {
		t.Errorf("DMSToDeg() = %v", got)
	}
	if got := RadToDeg(RA(2, 46, 55.51)); math.Abs(got-41.73129) > 1e-5 {
		t.Errorf("RA(2h46m55.51s) = %v°, want 41.73129°", got)
	}
	if got := RA(25, 0, 0); math.Abs(got-RA(1, 0, 0)) > 1e-15 {
		t.Errorf("RA(25h) = %v, want RA(1h) = %v", got, RA(1, 0, 0))
	}
}

func TestAngularSeparation(t *testing.T) {
	// Arcturus and Spica, Meeus example 17.a: 32.7930°.
	arcturus := Equatorial{RA: DegToRad(213.9154), Dec: DegToRad(19.1825)}
	spica := Equatorial{RA: DegToRad(201.2983), Dec: DegToRad(-11.1614)}

	if got := RadToDeg(AngularSeparation(arcturus, spica)); math.Abs(got-32.7930) > 1e-3 {
		t.Errorf("AngularSeparation() = %v°, want 32.7930°", got)
	}
	if got := AngularSeparation(spica, spica); got > 1e-7 {
		t.Errorf("AngularSeparation(self) = %v, want 0", got)
	}
}

func TestParallacticAngle(t *testing.T) {
	loc := Location{Lat: DegToRad(45)}
	eq := Equatorial{RA: 0, Dec: DegToRad(10)}

	// On the meridian the pole and zenith lie on the same great circle.
	if q := ParallacticAngle(eq, loc, 0); math.Abs(q) > 1e-12 {
		t.Errorf("ParallacticAngle on meridian = %v, want 0", q)
	}
	// East of the meridian the angle is negative, west positive.
	if q := ParallacticAngle(eq, loc, -0.5); q >= 0 {
		t.Errorf("ParallacticAngle east = %v, want < 0", q)
	}
	if q := ParallacticAngle(eq, loc, 0.5); q <= 0 {
		t.Errorf("ParallacticAngle west = %v, want > 0", q)
	}
}
