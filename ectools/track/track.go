package track

import (
	"fmt"
	"math"
	"time"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
	"github.com/tkrajina/gpxgo/gpx"
)

// Track represents an enviroCar track made of an ordered serie of measurements.
// Points are kept in recording order.
type Track struct {
	Name   string
	Points []Point

	polyline *s2.Polyline
	segment  gpx.GPXTrackSegment
}

// LatLng latlng
type LatLng interface {
	Lat() float64
	Lng() float64
}

// Stats track statistics
type Stats struct {
	Duration time.Duration
	Distance float64 // in meters

	MinSpeed float64 // in km/h
	MaxSpeed float64
	AvgSpeed float64
}

const earthRadius = 6378100

// gpxNoFix is the gpx fix type of a point recorded without a GPS fix
const gpxNoFix = "none"

// New creates a track from the given points
func New(pts []Point) *Track {
	pPts := make([]s2.LatLng, len(pts))
	gPts := make([]gpx.GPXPoint, len(pts))
	for i, p := range pts {
		pPts[i] = toS2LatLng(p)
		gPts[i] = gpx.GPXPoint{
			Point: gpx.Point{
				Latitude:  p.Latitude,
				Longitude: p.Longitude,
				Elevation: *gpx.NewNullableFloat64(p.Elevation),
			},
			Timestamp: p.Time,
		}
	}

	points := make([]Point, len(pts))
	copy(points, pts)

	return &Track{
		Points:   points,
		polyline: s2.PolylineFromLatLngs(pPts),
		segment:  gpx.GPXTrackSegment{Points: gPts},
	}
}

// FromGPX creates a track from every segment of the given gpx, in document order
func FromGPX(g *gpx.GPX) *Track {
	pts := []Point{}
	for _, t := range g.Tracks {
		for _, s := range t.Segments {
			for _, p := range s.Points {
				pts = append(pts, Point{
					Latitude:  p.Latitude,
					Longitude: p.Longitude,
					Elevation: p.Elevation.Value(),
					Time:      p.Timestamp,
					NoFix:     p.TypeOfGpsFix == gpxNoFix,
				})
			}
		}
	}

	t := New(pts)
	t.Name = g.Name
	return t
}

// ReadGPX reads a track from a gpx file
func ReadGPX(path string) (*Track, error) {
	g, err := gpx.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse gpx file '%s': %w", path, err)
	}
	return FromGPX(g), nil
}

// Len returns the number of points in the track
func (t *Track) Len() int {
	return len(t.Points)
}

// Usable returns a track made of the points that can be drawn on a map, along
// with the number of points that were left out.
func (t *Track) Usable() (*Track, int) {
	pts := make([]Point, 0, len(t.Points))
	for _, p := range t.Points {
		if p.Usable() {
			pts = append(pts, p)
		}
	}

	u := New(pts)
	u.Name = t.Name
	return u, len(t.Points) - len(pts)
}

// Bounds returns the boundaries of the track
func (t *Track) Bounds() Bounds {
	b := t.segment.Bounds()
	return Bounds{
		MinLat: b.MinLatitude,
		MinLng: b.MinLongitude,
		MaxLat: b.MaxLatitude,
		MaxLng: b.MaxLongitude,
	}
}

// Length returns the length of the track on the Earth surface, in meters
func (t *Track) Length() float64 {
	if len(t.Points) < 2 {
		return 0
	}
	return t.polyline.Length().Radians() * earthRadius
}

// Stats retrieves statistics from the track
func (t *Track) Stats() Stats {
	stats := Stats{
		Distance: t.Length(),
	}
	if len(t.Points) == 0 {
		return stats
	}

	tb := t.segment.TimeBounds()
	stats.Duration = tb.EndTime.Sub(tb.StartTime)

	var sum float64
	n := 0
	stats.MinSpeed = math.MaxFloat64
	for _, p := range t.Points {
		if p.Speed == nil {
			continue
		}
		v := *p.Speed
		stats.MinSpeed = math.Min(stats.MinSpeed, v)
		stats.MaxSpeed = math.Max(stats.MaxSpeed, v)
		sum += v
		n++
	}

	if n == 0 {
		stats.MinSpeed = 0
		return stats
	}
	stats.AvgSpeed = sum / float64(n)

	return stats
}

// Speeds returns the speed values of the track points
func (t *Track) Speeds() []*float64 {
	values := make([]*float64, len(t.Points))
	for i, p := range t.Points {
		values[i] = p.Speed
	}
	return values
}

func toS2LatLng(p LatLng) s2.LatLng {
	return s2.LatLng{
		Lat: s1.Angle(p.Lat()) * s1.Degree,
		Lng: s1.Angle(p.Lng()) * s1.Degree,
	}
}
