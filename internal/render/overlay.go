package render

import (
	"context"
	"image/color"

	"github.com/mesowx/mesoanalysis/internal/analysis"
	"github.com/mesowx/mesoanalysis/internal/domain"
)

// Overlays selects which analysis layers a pass draws.
type Overlays struct {
	Isobars        bool
	Isotherms      bool
	Isodrosotherms bool
	WindGrid       bool
	Stations       bool
}

// AllOverlays enables every layer.
func AllOverlays() Overlays {
	return Overlays{Isobars: true, Isotherms: true, Isodrosotherms: true, WindGrid: true, Stations: true}
}

// Options bundles the per-redraw display preferences.
type Options struct {
	Units    analysis.Units
	WindMode WindMode
	Density  float64 // declutter density multiplier
	Overlays Overlays
	Grid     analysis.Params
}

// DefaultOptions returns medium-density imperial barbs with all layers on.
func DefaultOptions() Options {
	return Options{
		Units:    analysis.Imperial,
		WindMode: WindBarbs,
		Density:  analysis.DensityMedium,
		Overlays: AllOverlays(),
		Grid:     analysis.DefaultParams(),
	}
}

// Stats summarizes what one pass drew, for logging and metrics.
type Stats struct {
	StationsPlotted int
	ContourSegments int
	LabelsPlaced    int
	WindGlyphs      int
}

var labelStyle = TextStyle{
	Color: color.RGBA{R: 0x28, G: 0x28, B: 0x28, A: 0xff},
	Halo:  haloColor,
	Size:  11,
}

// projected pairs an observation with its pixel position for one pass.
type projected struct {
	obs domain.Observation
	at  analysis.Pt
}

// DrawOverlay runs the full analysis pipeline for one redraw: declutter,
// interpolate the enabled fields, contour, label, and plot stations. All
// grid buffers are local to the call; nothing is shared across passes. The
// context is checked between layers so a superseded redraw abandons its
// remaining work.
func DrawOverlay(ctx context.Context, c Canvas, obs []domain.Observation, proj analysis.Projector, width, height float64, opts Options) (Stats, error) {
	var stats Stats

	kept := analysis.Declutter(obs, proj, opts.Density)
	pts := projectAll(kept, proj)

	type field struct {
		kind    analysis.FieldKind
		enabled bool
		value   func(domain.Observation) (float64, bool)
	}
	// Draw order mirrors meteorological chart convention: isobars under
	// isotherms under isodrosotherms.
	fields := []field{
		{analysis.Pressure, opts.Overlays.Isobars, func(o domain.Observation) (float64, bool) {
			if o.PressureMb == nil {
				return 0, false
			}
			return *o.PressureMb, true
		}},
		{analysis.Temperature, opts.Overlays.Isotherms, func(o domain.Observation) (float64, bool) {
			return displayTemp(o.TempC, opts.Units), true
		}},
		{analysis.Dewpoint, opts.Overlays.Isodrosotherms, func(o domain.Observation) (float64, bool) {
			if o.DewpointC == nil {
				return 0, false
			}
			return displayTemp(*o.DewpointC, opts.Units), true
		}},
	}

	for _, f := range fields {
		if !f.enabled {
			continue
		}
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		samples := make([]analysis.Sample, 0, len(pts))
		for _, p := range pts {
			if v, ok := f.value(p.obs); ok {
				samples = append(samples, analysis.Sample{X: p.at.X, Y: p.at.Y, Value: v})
			}
		}

		grid := analysis.InterpolateScalar(samples, width, height, opts.Grid)
		if grid == nil {
			continue
		}

		for _, level := range analysis.SelectLevels(f.kind, opts.Units, grid.Min, grid.Max) {
			segs := analysis.MarchingSquares(grid, level.Value)
			stroke := Stroke{Color: level.Style.Color, Width: level.Style.Width, Dash: level.Style.Dash}
			for _, s := range segs {
				c.Line(s.A, s.B, stroke)
			}
			stats.ContourSegments += len(segs)

			for _, l := range analysis.PlaceLabels(segs, level.Label) {
				c.Text(l.Text, l.At, l.AngleDeg, labelStyle)
				stats.LabelsPlaced++
			}
		}
	}

	if opts.Overlays.WindGrid {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		stats.WindGlyphs += drawWindGrid(c, pts, width, height, opts)
	}

	if opts.Overlays.Stations {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		for _, p := range pts {
			DrawStationPlot(c, p.at, p.obs, opts.Units, opts.WindMode)
			stats.StationsPlotted++
		}
	}

	return stats, nil
}

// projectAll projects each observation for the current view, skipping the
// ones the projector rejects.
func projectAll(obs []domain.Observation, proj analysis.Projector) []projected {
	if proj == nil {
		return nil
	}
	out := make([]projected, 0, len(obs))
	for _, o := range obs {
		p, err := proj.Project(o.Lat, o.Lon)
		if err != nil {
			continue
		}
		out = append(out, projected{obs: o, at: p})
	}
	return out
}

func drawWindGrid(c Canvas, pts []projected, width, height float64, opts Options) int {
	samples := make([]analysis.WindSample, 0, len(pts))
	for _, p := range pts {
		if !p.obs.HasWind() {
			continue
		}
		samples = append(samples, analysis.WindSample{
			X: p.at.X, Y: p.at.Y,
			DirDeg:  *p.obs.WindDirDeg,
			SpeedKt: *p.obs.WindSpeedKt,
		})
	}

	grid := analysis.InterpolateWind(samples, width, height, opts.Grid)
	if grid == nil {
		return 0
	}

	stroke := Stroke{Color: color.RGBA{R: 0x32, G: 0x50, B: 0x78, A: 0xff}, Width: 1}
	drawn := 0
	for j := 0; j < grid.NY; j++ {
		for i := 0; i < grid.NX; i++ {
			speed, dir, ok := grid.WindAt(i, j)
			if !ok {
				continue
			}
			at := grid.NodePos(i, j)
			switch opts.WindMode {
			case WindArrows:
				DrawArrow(c, at, dir, speed, stroke)
			default:
				DrawBarb(c, at, dir, speed, 0, stroke)
			}
			drawn++
		}
	}
	return drawn
}

func displayTemp(tempC float64, units analysis.Units) float64 {
	if units == analysis.Imperial {
		return domain.CelsiusToFahrenheit(tempC)
	}
	return tempC
}
