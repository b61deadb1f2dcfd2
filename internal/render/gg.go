package render

import (
	"image"
	"image/color"
	"io"

	"github.com/fogleman/gg"

	"github.com/mesowx/mesoanalysis/internal/analysis"
)

// GGCanvas rasterizes primitives into an in-memory RGBA image via fogleman/gg.
type GGCanvas struct {
	dc *gg.Context
}

// NewGGCanvas creates a white-backed raster canvas of the given pixel size.
func NewGGCanvas(width, height int) *GGCanvas {
	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	return &GGCanvas{dc: dc}
}

func (g *GGCanvas) applyStroke(s Stroke) {
	g.dc.SetColor(s.Color)
	g.dc.SetLineWidth(s.Width)
	if len(s.Dash) > 0 {
		g.dc.SetDash(s.Dash...)
	} else {
		g.dc.SetDash()
	}
}

func (g *GGCanvas) Line(a, b analysis.Pt, s Stroke) {
	g.applyStroke(s)
	g.dc.DrawLine(a.X, a.Y, b.X, b.Y)
	g.dc.Stroke()
}

func (g *GGCanvas) Circle(center analysis.Pt, r float64, s Stroke) {
	g.applyStroke(s)
	g.dc.DrawCircle(center.X, center.Y, r)
	g.dc.Stroke()
}

func (g *GGCanvas) FillPolygon(pts []analysis.Pt, c color.Color) {
	if len(pts) < 3 {
		return
	}
	g.dc.SetColor(c)
	g.dc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		g.dc.LineTo(p.X, p.Y)
	}
	g.dc.ClosePath()
	g.dc.Fill()
}

func (g *GGCanvas) FillWedge(center analysis.Pt, r, startDeg, sweepDeg float64, c color.Color) {
	if sweepDeg <= 0 {
		return
	}
	g.dc.SetColor(c)
	if sweepDeg >= 360 {
		g.dc.DrawCircle(center.X, center.Y, r)
		g.dc.Fill()
		return
	}
	// Screen convention: 0° points up, sweep is clockwise. gg's arc angles
	// are standard math radians with 0 at +x.
	a0 := gg.Radians(startDeg - 90)
	a1 := gg.Radians(startDeg - 90 + sweepDeg)
	g.dc.MoveTo(center.X, center.Y)
	g.dc.DrawArc(center.X, center.Y, r, a0, a1)
	g.dc.ClosePath()
	g.dc.Fill()
}

func (g *GGCanvas) Text(text string, at analysis.Pt, angleDeg float64, ts TextStyle) {
	g.dc.Push()
	g.dc.RotateAbout(gg.Radians(angleDeg), at.X, at.Y)
	if ts.Halo != nil {
		g.dc.SetColor(ts.Halo)
		for _, d := range [][2]float64{{-1, 0}, {1, 0}, {0, -1}, {0, 1}, {-1, -1}, {1, -1}, {-1, 1}, {1, 1}} {
			g.dc.DrawStringAnchored(text, at.X+d[0], at.Y+d[1], 0.5, 0.5)
		}
	}
	g.dc.SetColor(ts.Color)
	g.dc.DrawStringAnchored(text, at.X, at.Y, 0.5, 0.5)
	g.dc.Pop()
}

// Image returns the rendered raster.
func (g *GGCanvas) Image() image.Image { return g.dc.Image() }

// EncodePNG writes the rendered raster as PNG.
func (g *GGCanvas) EncodePNG(w io.Writer) error { return g.dc.EncodePNG(w) }
