package overlay

import (
	"envirocar-tools/ectools/track"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Feature kinds set in the "kind" property of exported features
const (
	KindPath        = "path"
	KindTrackBox    = "track_box"
	KindViewBox     = "view_box"
	KindScrollLimit = "scroll_limit_box"
)

// FeatureCollection exports the overlay for a GeoJSON map source: the path as a
// line string followed by the three bounding boxes as polygons. The collection
// bbox is the view box.
func (o *SpeedOverlay) FeatureCollection() *geojson.FeatureCollection {
	line := make(orb.LineString, len(o.path.Points))
	for i, p := range o.path.Points {
		line[i] = orb.Point{p.Longitude, p.Latitude}
	}

	fc := geojson.NewFeatureCollection()
	fc.BBox = geojson.NewBBox(toBound(o.viewBox))

	path := geojson.NewFeature(line)
	path.Properties["kind"] = KindPath
	path.Properties["fallback"] = o.fallback
	if o.path.Name != "" {
		path.Properties["name"] = o.path.Name
	}
	if speeds := o.path.Speeds(); hasValue(speeds) {
		path.Properties["speeds"] = speeds
	}
	fc.Append(path)

	for _, b := range []struct {
		kind   string
		bounds track.Bounds
	}{
		{KindTrackBox, o.trackBox},
		{KindViewBox, o.viewBox},
		{KindScrollLimit, o.scrollBox},
	} {
		f := geojson.NewFeature(toBound(b.bounds).ToPolygon())
		f.Properties["kind"] = b.kind
		fc.Append(f)
	}

	return fc
}

func toBound(b track.Bounds) orb.Bound {
	return orb.Bound{
		Min: orb.Point{b.MinLng, b.MinLat},
		Max: orb.Point{b.MaxLng, b.MaxLat},
	}
}

func hasValue(values []*float64) bool {
	for _, v := range values {
		if v != nil {
			return true
		}
	}
	return false
}
