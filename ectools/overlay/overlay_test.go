package overlay_test

import (
	"bytes"
	"encoding/json"
	"envirocar-tools/ectools/overlay"
	"envirocar-tools/ectools/overlay/render"
	"envirocar-tools/ectools/track"
	"math/rand"
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
)

var fallbackBounds = track.Bounds{
	MinLat: 51.96024289279303,
	MaxLat: 51.96057578167202,
	MinLng: 7.635078051137631,
	MaxLng: 7.635147738274369,
}

func TestTrackBoundingBox(t *testing.T) {
	require := require.New(t)

	pts := []track.Point{
		{Latitude: 51.96057578167202, Longitude: 7.635147738274369},
		{Latitude: 51.96124289279303, Longitude: 7.634078051137631},
		{Latitude: 51.95922336725498, Longitude: 7.6381356239319},
		{Latitude: 51.96581793370288, Longitude: 7.63571090698244},
	}

	o := overlay.New(track.New(pts))

	b := o.TrackBoundingBox()
	require.Equal(51.96581793370288, b.North())
	require.Equal(51.95922336725498, b.South())
	require.Equal(7.6381356239319, b.East())
	require.Equal(7.634078051137631, b.West())
	require.False(o.Fallback())
	require.Equal(0, o.Skipped())
}

func TestMargins(t *testing.T) {
	require := require.New(t)

	o := overlay.New(track.New([]track.Point{
		{Latitude: 10, Longitude: 20},
		{Latitude: 11, Longitude: 21},
	}))

	tb := o.TrackBoundingBox()
	vb := o.ViewBoundingBox()
	sb := o.ScrollableLimitBox()

	require.Equal(tb.North()+0.01, vb.North())
	require.Equal(tb.South()-0.01, vb.South())
	require.Equal(tb.East()+0.01, vb.East())
	require.Equal(tb.West()-0.01, vb.West())

	require.Equal(tb.North()+0.05, sb.North())
	require.Equal(tb.South()-0.05, sb.South())
	require.Equal(tb.East()+0.05, sb.East())
	require.Equal(tb.West()-0.05, sb.West())
}

func TestSkipsZeroCoordinates(t *testing.T) {
	require := require.New(t)

	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)
	defer func() { log.Logger = zerolog.Nop() }()

	withZero := overlay.New(track.New([]track.Point{
		{Latitude: 0, Longitude: 0},
		{Latitude: 10, Longitude: 20},
		{Latitude: 11, Longitude: 21},
	}))
	without := overlay.New(track.New([]track.Point{
		{Latitude: 10, Longitude: 20},
		{Latitude: 11, Longitude: 21},
	}))

	require.Equal(without.TrackBoundingBox(), withZero.TrackBoundingBox())
	require.Equal(without.ViewBoundingBox(), withZero.ViewBoundingBox())
	require.Equal(without.ScrollableLimitBox(), withZero.ScrollableLimitBox())
	require.Equal(1, withZero.Skipped())
	require.Equal(2, withZero.Path().Len())
	require.Equal(1, strings.Count(buf.String(), `"level":"warn"`))
}

func TestFallback(t *testing.T) {
	require := require.New(t)

	tests := map[string]*track.Track{
		"nil":           nil,
		"empty":         track.New(nil),
		"single":        track.New([]track.Point{{Latitude: 10, Longitude: 20}}),
		"single_usable": track.New([]track.Point{{Latitude: 10, Longitude: 20}, {Latitude: 0, Longitude: 21}}),
		"all_zero":      track.New([]track.Point{{}, {}, {}}),
		"no_fix":        track.New([]track.Point{{Latitude: 10, Longitude: 20, NoFix: true}, {Latitude: 11, Longitude: 21, NoFix: true}}),
	}

	for name, tr := range tests {
		t.Run(name, func(t *testing.T) {
			o := overlay.New(tr)
			require.True(o.Fallback())
			require.Equal(fallbackBounds, o.TrackBoundingBox())
			require.Equal(fallbackBounds.Extend(0.01), o.ViewBoundingBox())
			require.Equal(fallbackBounds.Extend(0.05), o.ScrollableLimitBox())
			require.Equal(2, o.Path().Len())
		})
	}
}

func TestIdempotent(t *testing.T) {
	require := require.New(t)

	tr := randomTrack(rand.New(rand.NewSource(42)), 200)

	o1 := overlay.New(tr)
	o2 := overlay.New(tr)

	require.Equal(o1.TrackBoundingBox(), o2.TrackBoundingBox())
	require.Equal(o1.ViewBoundingBox(), o2.ViewBoundingBox())
	require.Equal(o1.ScrollableLimitBox(), o2.ScrollableLimitBox())
}

func TestOrderIndependent(t *testing.T) {
	require := require.New(t)

	r := rand.New(rand.NewSource(7))
	tr := randomTrack(r, 100)
	o := overlay.New(tr)

	for i := 0; i < 10; i++ {
		pts := make([]track.Point, len(tr.Points))
		copy(pts, tr.Points)
		r.Shuffle(len(pts), func(i, j int) { pts[i], pts[j] = pts[j], pts[i] })

		shuffled := overlay.New(track.New(pts))
		require.Equal(o.TrackBoundingBox(), shuffled.TrackBoundingBox())
		require.Equal(o.ViewBoundingBox(), shuffled.ViewBoundingBox())
		require.Equal(o.ScrollableLimitBox(), shuffled.ScrollableLimitBox())
	}
}

func TestMinMaxProperty(t *testing.T) {
	require := require.New(t)

	r := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		tr := randomTrack(r, 2+r.Intn(50))
		b := overlay.New(tr).TrackBoundingBox()

		north, south := tr.Points[0].Latitude, tr.Points[0].Latitude
		east, west := tr.Points[0].Longitude, tr.Points[0].Longitude
		for _, p := range tr.Points {
			if p.Latitude > north {
				north = p.Latitude
			}
			if p.Latitude < south {
				south = p.Latitude
			}
			if p.Longitude > east {
				east = p.Longitude
			}
			if p.Longitude < west {
				west = p.Longitude
			}
		}

		require.Equal(north, b.North())
		require.Equal(south, b.South())
		require.Equal(east, b.East())
		require.Equal(west, b.West())
	}
}

func TestFeatureCollection(t *testing.T) {
	require := require.New(t)

	v := 42.0
	o := overlay.New(track.New([]track.Point{
		{Latitude: 10, Longitude: 20, Speed: &v},
		{Latitude: 11, Longitude: 21},
	}))

	fc := o.FeatureCollection()
	require.Len(fc.Features, 4)

	line, ok := fc.Features[0].Geometry.(orb.LineString)
	require.True(ok)
	require.Equal(orb.LineString{{20, 10}, {21, 11}}, line)
	require.Equal(overlay.KindPath, fc.Features[0].Properties["kind"])
	require.Equal(false, fc.Features[0].Properties["fallback"])

	scroll := fc.Features[3]
	require.Equal(overlay.KindScrollLimit, scroll.Properties["kind"])
	require.Equal(orb.Point{20 - 0.05, 10 - 0.05}, scroll.Geometry.Bound().Min)
	require.Equal(orb.Point{21 + 0.05, 11 + 0.05}, scroll.Geometry.Bound().Max)

	data, err := json.Marshal(fc)
	require.NoError(err)
	require.Contains(string(data), `"bbox":[19.99,9.99,21.01,11.01]`)
}

func randomTrack(r *rand.Rand, n int) *track.Track {
	pts := make([]track.Point, n)
	for i := range pts {
		pts[i] = track.Point{
			Latitude:  51 + r.Float64(),
			Longitude: 7 + r.Float64(),
		}
	}
	return track.New(pts)
}

func TestSegments(t *testing.T) {
	require := require.New(t)

	slow, fast := 0.0, 80.0
	o := overlay.New(track.New([]track.Point{
		{Latitude: 51.96, Longitude: 7.62, Speed: &slow},
		{Latitude: 51.97, Longitude: 7.63, Speed: &fast},
		{Latitude: 51.98, Longitude: 7.64},
	}))

	viewport := o.Viewport(14)
	require.True(viewport.MinX < viewport.MaxX)
	require.True(viewport.MinY < viewport.MaxY)

	segments := o.Segments(14, viewport)
	require.Len(segments, 2)
	require.Equal(render.Color(&slow), segments[0].Color)
	require.Equal(render.Color(&fast), segments[1].Color)
	require.True(segments[0].From.Y > segments[0].To.Y) // heading north
}
