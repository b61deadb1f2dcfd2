package render

import (
	"image/color"

	"github.com/mesowx/mesoanalysis/internal/analysis"
)

// Op identifies a recorded drawing primitive.
type Op string

const (
	OpLine    Op = "line"
	OpCircle  Op = "circle"
	OpPolygon Op = "polygon"
	OpWedge   Op = "wedge"
	OpText    Op = "text"
)

// Record is one recorded primitive with whichever fields its op populates.
type Record struct {
	Op       Op
	A        analysis.Pt
	B        analysis.Pt
	R        float64
	Pts      []analysis.Pt
	Text     string
	AngleDeg float64
	StartDeg float64
	SweepDeg float64
	Stroke   Stroke
	Color    color.Color
}

// Recorder is a Canvas that captures primitives instead of rasterizing them.
// Tests assert on the recorded stream.
type Recorder struct {
	Ops []Record
}

func (r *Recorder) Line(a, b analysis.Pt, s Stroke) {
	r.Ops = append(r.Ops, Record{Op: OpLine, A: a, B: b, Stroke: s})
}

func (r *Recorder) Circle(center analysis.Pt, radius float64, s Stroke) {
	r.Ops = append(r.Ops, Record{Op: OpCircle, A: center, R: radius, Stroke: s})
}

func (r *Recorder) FillPolygon(pts []analysis.Pt, c color.Color) {
	r.Ops = append(r.Ops, Record{Op: OpPolygon, Pts: pts, Color: c})
}

func (r *Recorder) FillWedge(center analysis.Pt, radius, startDeg, sweepDeg float64, c color.Color) {
	r.Ops = append(r.Ops, Record{
		Op: OpWedge, A: center, R: radius,
		StartDeg: startDeg, SweepDeg: sweepDeg, Color: c,
	})
}

func (r *Recorder) Text(text string, at analysis.Pt, angleDeg float64, ts TextStyle) {
	r.Ops = append(r.Ops, Record{Op: OpText, Text: text, A: at, AngleDeg: angleDeg})
}

// Count returns how many recorded primitives have the given op.
func (r *Recorder) Count(op Op) int {
	n := 0
	for _, rec := range r.Ops {
		if rec.Op == op {
			n++
		}
	}
	return n
}

// Texts returns the recorded label strings in draw order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, rec := range r.Ops {
		if rec.Op == OpText {
			out = append(out, rec.Text)
		}
	}
	return out
}
