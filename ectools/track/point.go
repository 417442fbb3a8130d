package track

import (
	"time"
)

// Point is a single geolocated measurement of a track.
type Point struct {
	Latitude, Longitude float64
	Elevation           float64
	Time                time.Time

	// Speed in km/h, nil when the measurement has no speed phenomenon.
	Speed *float64

	// NoFix marks a measurement recorded without a GPS fix.
	NoFix bool
}

// Lat returns the latitude in degrees
func (p Point) Lat() float64 {
	return p.Latitude
}

// Lng returns the longitude in degrees
func (p Point) Lng() float64 {
	return p.Longitude
}

// Usable reports whether the point can be drawn on a map.
//
// A coordinate of exactly 0.0 is still treated as "no fix", as recorded tracks
// use it as a sentinel. Legit readings on the equator or the prime meridian are
// dropped as well.
func (p Point) Usable() bool {
	if p.NoFix {
		return false
	}
	return p.Latitude != 0.0 && p.Longitude != 0.0
}
