package track

import (
	"fmt"
	"io"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// speedPhenomenon is the phenomenon name enviroCar uses for the vehicle speed
const speedPhenomenon = "Speed"

// ReadGeoJSON reads an enviroCar track, which is a feature collection of
// measurement points with their phenomenons as properties.
func ReadGeoJSON(r io.Reader) (*Track, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse track geojson: %w", err)
	}

	pts := make([]Point, 0, len(fc.Features))
	for i, f := range fc.Features {
		// measurements recorded without a fix have a null geometry
		p := Point{NoFix: f.Geometry == nil}
		if !p.NoFix {
			pt, ok := f.Geometry.(orb.Point)
			if !ok {
				return nil, fmt.Errorf("feature %d is a %s, expected a Point", i, f.Geometry.GeoJSONType())
			}
			p.Longitude = pt.Lon()
			p.Latitude = pt.Lat()
		}

		if ts := f.Properties.MustString("time", ""); ts != "" {
			p.Time, err = time.Parse(time.RFC3339, ts)
			if err != nil {
				return nil, fmt.Errorf("feature %d has an invalid time '%s': %w", i, ts, err)
			}
		}

		p.Speed = phenomenonValue(f.Properties, speedPhenomenon)
		pts = append(pts, p)
	}

	t := New(pts)
	if name, ok := fc.ExtraMembers["properties"].(map[string]interface{}); ok {
		if n, ok := name["name"].(string); ok {
			t.Name = n
		}
	}

	return t, nil
}

func phenomenonValue(props geojson.Properties, name string) *float64 {
	phenomenons, ok := props["phenomenons"].(map[string]interface{})
	if !ok {
		return nil
	}
	phenomenon, ok := phenomenons[name].(map[string]interface{})
	if !ok {
		return nil
	}
	v, ok := phenomenon["value"].(float64)
	if !ok {
		return nil
	}
	return &v
}
