// Package render turns a projected track into colored screen-space segments,
// independently of any drawing surface.
package render

import (
	"image/color"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
)

// TileSize is the size in pixels of a map tile
const TileSize = 256

// MaxSpeed is the speed in km/h drawn fully green. Slower speeds fade to red.
const MaxSpeed = 80.0

// minPixelDistance is the manhattan distance under which a point is merged
// into the previous one.
const minPixelDistance = 1.0

var (
	red   = color.RGBA{R: 0xff, A: 0xff}
	green = color.RGBA{G: 0xff, A: 0xff}
	black = color.RGBA{A: 0xff}
)

// ScreenPoint is a point in pixel space, y growing downwards
type ScreenPoint struct {
	X, Y float64
}

// Rect is a pixel space rectangle
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Segment is a colored line between two screen points
type Segment struct {
	From, To ScreenPoint
	Color    color.RGBA
}

// Project converts WGS84 coordinates to pixels at the given zoom level.
func Project(lat, lng float64, zoom uint) ScreenPoint {
	m := project.WGS84.ToMercator(orb.Point{lng, lat})

	worldSize := float64(TileSize) * math.Exp2(float64(zoom))
	halfWorld := math.Pi * orb.EarthRadius

	return ScreenPoint{
		X: (m.X() + halfWorld) / (2 * halfWorld) * worldSize,
		Y: (halfWorld - m.Y()) / (2 * halfWorld) * worldSize,
	}
}

// Segments builds the segments of a projected path. values holds the speed of
// each point and may contain nils; the segment starting at a point takes its
// color. Points closer than one pixel to the last kept point are skipped and
// segments fully outside the viewport are dropped.
func Segments(points []ScreenPoint, values []*float64, viewport Rect) []Segment {
	if len(points) < 2 {
		return nil
	}

	segments := []Segment{}
	from := 0
	for i := 1; i < len(points); i++ {
		p0, p1 := points[from], points[i]

		if math.Abs(p1.X-p0.X)+math.Abs(p1.Y-p0.Y) <= minPixelDistance {
			continue
		}

		if viewport.intersects(p0, p1) {
			var v *float64
			if from < len(values) {
				v = values[from]
			}
			segments = append(segments, Segment{From: p0, To: p1, Color: Color(v)})
		}
		from = i
	}

	return segments
}

// Color returns the color of a speed, interpolated from red at 0 km/h to green
// at MaxSpeed. Missing values are black.
func Color(speed *float64) color.RGBA {
	if speed == nil {
		return black
	}

	f := *speed / MaxSpeed
	if f < 0 || math.IsNaN(f) {
		f = 0
	} else if f > 1 {
		f = 1
	}

	lerp := func(a, b uint8) uint8 {
		return uint8(math.Round(float64(a) + (float64(b)-float64(a))*f))
	}

	return color.RGBA{
		R: lerp(red.R, green.R),
		G: lerp(red.G, green.G),
		B: lerp(red.B, green.B),
		A: 0xff,
	}
}

// intersects rejects segments with both ends on the same outer side of the rectangle.
func (r Rect) intersects(a, b ScreenPoint) bool {
	switch {
	case a.X < r.MinX && b.X < r.MinX:
		return false
	case a.X > r.MaxX && b.X > r.MaxX:
		return false
	case a.Y < r.MinY && b.Y < r.MinY:
		return false
	case a.Y > r.MaxY && b.Y > r.MaxY:
		return false
	}
	return true
}
