package render

import (
	"image/color"

	"github.com/mesowx/mesoanalysis/internal/analysis"
)

// Stroke describes how a path is outlined.
type Stroke struct {
	Color color.Color
	Width float64
	Dash  []float64 // empty means solid
}

// TextStyle describes label text. A non-nil Halo is painted behind the fill
// so labels stay legible against arbitrary backgrounds.
type TextStyle struct {
	Color color.Color
	Halo  color.Color
	Size  float64
}

// Canvas is the drawing surface the analysis overlay renders against. The
// engine emits primitives only; what backs them (a raster, a recorder, a
// widget) is the implementation's business.
type Canvas interface {
	// Line strokes a single segment.
	Line(a, b analysis.Pt, s Stroke)

	// Circle strokes a circle outline.
	Circle(center analysis.Pt, r float64, s Stroke)

	// FillPolygon fills the polygon described by pts.
	FillPolygon(pts []analysis.Pt, c color.Color)

	// FillWedge fills a pie slice of the circle at center, sweeping
	// clockwise from startDeg (0 = up, screen convention).
	FillWedge(center analysis.Pt, r, startDeg, sweepDeg float64, c color.Color)

	// Text draws a string centered at the given point, rotated by angleDeg.
	Text(text string, at analysis.Pt, angleDeg float64, ts TextStyle)
}
