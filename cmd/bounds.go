package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"envirocar-tools/ectools/overlay"
	"envirocar-tools/ectools/terminal"
	"envirocar-tools/ectools/track"

	"github.com/google/subcommands"
)

type boundsCmd struct {
	format     string
	outputFile string
	zoom       uint
}

const (
	textF    = "text"
	jsonF    = "json"
	geojsonF = "geojson"
	svgF     = "svg"
)

func (*boundsCmd) Name() string     { return "bounds" }
func (*boundsCmd) Synopsis() string { return "Print the map bounding boxes of a track." }
func (*boundsCmd) Usage() string {
	return `bounds [-format text|json|geojson|svg] [-output file] <track.gpx|track.json>
	Compute the track, view and scroll limit bounding boxes of a GPX or enviroCar GeoJSON track.
  `
}

func (c *boundsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.format, "format", textF, "output format (text, json, geojson, svg)")
	f.StringVar(&c.outputFile, "output", "", "output file")
	f.UintVar(&c.zoom, "zoom", 14, "zoom level of the svg rendering")
}

func (c *boundsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	switch c.format {
	case textF, jsonF, geojsonF, svgF:
	default:
		terminal.Error(nil, "Invalid format '%s'", c.format)
		return subcommands.ExitUsageError
	}

	if f.NArg() != 1 {
		terminal.Error(nil, "Expected exactly one track file")
		return subcommands.ExitUsageError
	}

	t, err := readTrack(f.Arg(0))
	if err != nil {
		terminal.Error(err, "Failed to read track '%s'", f.Arg(0))
		return subcommands.ExitFailure
	}

	o := overlay.New(t)
	if o.Fallback() {
		terminal.Warn("Track '%s' has less than 2 usable measurements, showing the default area", f.Arg(0))
	} else if o.Skipped() > 0 {
		terminal.Warn("Skipped %d measurement(s) without a valid coordinate", o.Skipped())
	}

	var w io.Writer = os.Stdout
	if c.outputFile != "" {
		out, err := os.Create(c.outputFile)
		if err != nil {
			terminal.Error(err, "Could not open file '%s'", c.outputFile)
			return subcommands.ExitFailure
		}
		defer out.Close()
		w = out
	}

	if err := writeOverlay(w, o, c.format, c.zoom); err != nil {
		terminal.Error(err, "Failed to write bounding boxes")
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}

func readTrack(path string) (*track.Track, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gpx":
		return track.ReadGPX(path)
	case ".json", ".geojson":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return track.ReadGeoJSON(f)
	}
	return nil, fmt.Errorf("unsupported track file extension '%s'", filepath.Ext(path))
}

func writeOverlay(w io.Writer, o *overlay.SpeedOverlay, format string, zoom uint) error {
	boxes := []struct {
		name   string
		bounds track.Bounds
	}{
		{"track", o.TrackBoundingBox()},
		{"view", o.ViewBoundingBox()},
		{"scroll_limit", o.ScrollableLimitBox()},
	}

	switch format {
	case textF:
		for _, b := range boxes {
			_, err := fmt.Fprintf(w, "%-12s north=%.8f south=%.8f east=%.8f west=%.8f\n",
				b.name, b.bounds.North(), b.bounds.South(), b.bounds.East(), b.bounds.West())
			if err != nil {
				return err
			}
		}
		return nil
	case jsonF:
		jsonMap := map[string]interface{}{}
		for _, b := range boxes {
			jsonMap[b.name] = map[string]float64{
				"north": b.bounds.North(),
				"south": b.bounds.South(),
				"east":  b.bounds.East(),
				"west":  b.bounds.West(),
			}
		}
		jsonMap["fallback"] = o.Fallback()
		jsonMap["skipped"] = o.Skipped()
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(jsonMap)
	case geojsonF:
		data, err := o.FeatureCollection().MarshalJSON()
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case svgF:
		return writeSVG(w, o, zoom)
	}

	return fmt.Errorf("unknown format '%s'", format)
}

func writeSVG(w io.Writer, o *overlay.SpeedOverlay, zoom uint) error {
	viewport := o.Viewport(zoom)
	width := viewport.MaxX - viewport.MinX
	height := viewport.MaxY - viewport.MinY

	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.2f %.2f">`+"\n",
		width, height, width, height)
	for _, s := range o.Segments(zoom, viewport) {
		fmt.Fprintf(&sb, `  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="#%02x%02x%02x" stroke-width="5"/>`+"\n",
			s.From.X-viewport.MinX, s.From.Y-viewport.MinY,
			s.To.X-viewport.MinX, s.To.Y-viewport.MinY,
			s.Color.R, s.Color.G, s.Color.B)
	}
	sb.WriteString("</svg>\n")

	_, err := io.WriteString(w, sb.String())
	return err
}
