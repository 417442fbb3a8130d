// Package overlay derives the map framing of a track: the track bounding box,
// a slightly buffered view box used to zoom on the track and a larger box that
// limits how far the map can be scrolled away from it.
package overlay

import (
	"envirocar-tools/ectools/overlay/render"
	"envirocar-tools/ectools/track"

	"github.com/rs/zerolog/log"
)

const (
	// ViewMargin is the buffer in decimal degrees added around the track for the initial framing
	ViewMargin = 0.01
	// ScrollLimitMargin is the buffer in decimal degrees the map can be scrolled beyond the track
	ScrollLimitMargin = 0.05
)

// fallbackPath is drawn when a track has less than 2 usable measurements so the
// map still has a non-degenerate area to show.
var fallbackPath = []track.Point{
	{Latitude: 51.96057578167202, Longitude: 7.635147738274369},
	{Latitude: 51.96024289279303, Longitude: 7.635078051137631},
}

// SpeedOverlay holds the path of a track and its bounding boxes. It is computed
// once in New and never modified afterwards.
type SpeedOverlay struct {
	path     *track.Track
	fallback bool
	skipped  int

	trackBox  track.Bounds
	viewBox   track.Bounds
	scrollBox track.Bounds
}

// New creates the overlay of the given track.
func New(t *track.Track) *SpeedOverlay {
	o := &SpeedOverlay{}

	var pts []track.Point
	if t != nil {
		pts = make([]track.Point, 0, len(t.Points))
		for i, p := range t.Points {
			if !p.Usable() {
				log.Warn().
					Int("index", i).
					Float64("lat", p.Latitude).
					Float64("lng", p.Longitude).
					Msg("Skipping measurement without a valid coordinate")
				o.skipped++
				continue
			}
			pts = append(pts, p)
		}
	}

	if len(pts) < 2 {
		log.Debug().Int("usable", len(pts)).Msg("Not enough usable measurements, using default path")
		pts = fallbackPath
		o.fallback = true
	}

	o.path = track.New(pts)
	if t != nil {
		o.path.Name = t.Name
	}

	o.trackBox = o.path.Bounds()
	o.viewBox = o.trackBox.Extend(ViewMargin)
	o.scrollBox = o.trackBox.Extend(ScrollLimitMargin)

	return o
}

// TrackBoundingBox returns the bounding box of the track.
func (o *SpeedOverlay) TrackBoundingBox() track.Bounds {
	return o.trackBox
}

// ViewBoundingBox returns the slightly buffered bounding box used to zoom on the track.
func (o *SpeedOverlay) ViewBoundingBox() track.Bounds {
	return o.viewBox
}

// ScrollableLimitBox returns the bounding box that limits the scrolling of the map.
func (o *SpeedOverlay) ScrollableLimitBox() track.Bounds {
	return o.scrollBox
}

// Path returns the drawn path, either the usable measurements or the default path.
func (o *SpeedOverlay) Path() *track.Track {
	return o.path
}

// Fallback reports whether the default path replaced the track.
func (o *SpeedOverlay) Fallback() bool {
	return o.fallback
}

// Skipped returns the number of measurements left out for lack of a valid coordinate.
func (o *SpeedOverlay) Skipped() int {
	return o.skipped
}

// Segments projects the path at the given zoom level and returns its speed
// colored segments visible in the viewport, in pixel space.
func (o *SpeedOverlay) Segments(zoom uint, viewport render.Rect) []render.Segment {
	pts := make([]render.ScreenPoint, len(o.path.Points))
	for i, p := range o.path.Points {
		pts[i] = render.Project(p.Latitude, p.Longitude, zoom)
	}
	return render.Segments(pts, o.path.Speeds(), viewport)
}

// Viewport returns the pixel rectangle of the view box at the given zoom level.
func (o *SpeedOverlay) Viewport(zoom uint) render.Rect {
	nw := render.Project(o.viewBox.North(), o.viewBox.West(), zoom)
	se := render.Project(o.viewBox.South(), o.viewBox.East(), zoom)
	return render.Rect{MinX: nw.X, MinY: nw.Y, MaxX: se.X, MaxY: se.Y}
}
