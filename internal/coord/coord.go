// Package coord provides the coordinate types of the ephemeris and the
// spherical transforms between the ecliptic, equatorial and horizontal frames.
//
// All angles are radians. Geographic longitude is measured positive west.
package coord

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput is returned when a coordinate component is not finite.
var ErrInvalidInput = errors.New("coord: non-finite component")

// Location is an observer on the Earth's surface.
type Location struct {
	Lat    float64 // geodetic latitude, north positive
	Lng    float64 // longitude, west positive
	Height float64 // meters above sea level
	Name   string  // optional label
}

// Ecliptic is a position in ecliptic coordinates.
type Ecliptic struct {
	Lon float64 // ecliptic longitude λ
	Lat float64 // ecliptic latitude β
}

// Equatorial is a position in equatorial coordinates.
type Equatorial struct {
	RA  float64 // right ascension α
	Dec float64 // declination δ
}

// Horizontal is a position relative to the observer's horizon. Azimuth is
// measured westward from the south.
type Horizontal struct {
	Az  float64
	Alt float64
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// NewLocation returns a Location from radians, longitude positive west.
func NewLocation(lat, lng, height float64) (Location, error) {
	if !finite(lat, lng, height) {
		return Location{}, fmt.Errorf("%w: location (%v, %v, %v)", ErrInvalidInput, lat, lng, height)
	}
	return Location{Lat: lat, Lng: lng, Height: height}, nil
}

// LocationFromDegrees returns a Location from WGS84 degrees with longitude
// positive east, as found on maps and GPS receivers.
func LocationFromDegrees(latDeg, lonDeg, height float64) (Location, error) {
	return NewLocation(latDeg*deg, -lonDeg*deg, height)
}

// LatDeg returns the latitude in degrees.
func (l Location) LatDeg() float64 { return l.Lat / deg }

// LonDeg returns the longitude in degrees, east positive.
func (l Location) LonDeg() float64 { return -l.Lng / deg }

func (l Location) String() string {
	s := fmt.Sprintf("%.4f, %.4f", l.LatDeg(), l.LonDeg())
	if l.Name != "" {
		s = l.Name + " (" + s + ")"
	}
	return s
}

// NewEcliptic returns an Ecliptic coordinate.
func NewEcliptic(lon, lat float64) (Ecliptic, error) {
	if !finite(lon, lat) {
		return Ecliptic{}, fmt.Errorf("%w: ecliptic (%v, %v)", ErrInvalidInput, lon, lat)
	}
	return Ecliptic{Lon: lon, Lat: lat}, nil
}

// NewEquatorial returns an Equatorial coordinate.
func NewEquatorial(ra, dec float64) (Equatorial, error) {
	if !finite(ra, dec) {
		return Equatorial{}, fmt.Errorf("%w: equatorial (%v, %v)", ErrInvalidInput, ra, dec)
	}
	return Equatorial{RA: ra, Dec: dec}, nil
}

// AzimuthFromNorth returns the azimuth measured eastward from north, in
// [0, 2π).
func (h Horizontal) AzimuthFromNorth() float64 {
	az := math.Mod(h.Az+math.Pi, 2*math.Pi)
	if az < 0 {
		az += 2 * math.Pi
	}
	return az
}
