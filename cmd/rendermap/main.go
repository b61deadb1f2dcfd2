// Command rendermap renders a saved observation snapshot to a PNG without
// running the service. Useful for inspecting analysis output offline and for
// generating documentation images.
//
// Usage:
//
//	go run ./cmd/rendermap \
//	  -in snapshot.json \
//	  -out analysis.png \
//	  -bbox=-125,24,-66,50 -width 1600 -height 1000 \
//	  -overlays isotherms,stations -units imperial -windmode barbs
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/mesowx/mesoanalysis/internal/analysis"
	"github.com/mesowx/mesoanalysis/internal/render"
	"github.com/mesowx/mesoanalysis/internal/store"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	in := flag.String("in", "", "snapshot JSON file (as served by /api/obs/latest)")
	out := flag.String("out", "analysis.png", "output PNG path")
	bbox := flag.String("bbox", "-125,24,-66,50", "west,south,east,north in degrees")
	width := flag.Int("width", 1024, "image width in pixels")
	height := flag.Int("height", 768, "image height in pixels")
	units := flag.String("units", "imperial", "imperial or metric")
	windmode := flag.String("windmode", "barbs", "barbs or arrows")
	density := flag.String("density", "medium", "dense, medium, or sparse")
	overlays := flag.String("overlays", "", "comma-separated layer list; empty enables all")
	flag.Parse()

	if *in == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -in")
	}

	data, err := os.ReadFile(*in)
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}
	var snap store.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}

	opts, err := buildOptions(*units, *windmode, *density, *overlays)
	if err != nil {
		return err
	}

	west, south, east, north, err := parseBBox(*bbox)
	if err != nil {
		return err
	}
	view, err := analysis.NewMercatorView(west, south, east, north, *width, *height)
	if err != nil {
		return err
	}

	canvas := render.NewGGCanvas(*width, *height)
	stats, err := render.DrawOverlay(context.Background(), canvas, snap.Observations, view, float64(*width), float64(*height), opts)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer f.Close()
	if err := canvas.EncodePNG(f); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}

	log.Printf("rendered %s: %d stations, %d contour segments, %d labels, %d wind glyphs",
		*out, stats.StationsPlotted, stats.ContourSegments, stats.LabelsPlaced, stats.WindGlyphs)
	return nil
}

func parseBBox(s string) (west, south, east, north float64, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return 0, 0, 0, 0, fmt.Errorf("bbox must be west,south,east,north")
	}
	vals := make([]float64, 4)
	for i, p := range parts {
		vals[i], err = strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return 0, 0, 0, 0, fmt.Errorf("bbox must be numeric: %w", err)
		}
	}
	return vals[0], vals[1], vals[2], vals[3], nil
}

func buildOptions(units, windmode, density, overlays string) (render.Options, error) {
	opts := render.DefaultOptions()

	switch units {
	case "imperial":
		opts.Units = analysis.Imperial
	case "metric":
		opts.Units = analysis.Metric
	default:
		return opts, fmt.Errorf("unknown units %q", units)
	}

	switch windmode {
	case "barbs":
		opts.WindMode = render.WindBarbs
	case "arrows":
		opts.WindMode = render.WindArrows
	default:
		return opts, fmt.Errorf("unknown windmode %q", windmode)
	}

	switch density {
	case "dense":
		opts.Density = analysis.DensityDense
	case "medium":
		opts.Density = analysis.DensityMedium
	case "sparse":
		opts.Density = analysis.DensitySparse
	default:
		return opts, fmt.Errorf("unknown density %q", density)
	}

	if overlays != "" {
		var ov render.Overlays
		for _, name := range strings.Split(overlays, ",") {
			switch strings.TrimSpace(name) {
			case "isobars":
				ov.Isobars = true
			case "isotherms":
				ov.Isotherms = true
			case "isodrosotherms":
				ov.Isodrosotherms = true
			case "wind":
				ov.WindGrid = true
			case "stations":
				ov.Stations = true
			default:
				return opts, fmt.Errorf("unknown overlay %q", name)
			}
		}
		opts.Overlays = ov
	}

	return opts, nil
}
