package render

import (
	"math"

	"github.com/mesowx/mesoanalysis/internal/analysis"
)

// Wind glyph geometry. Barb layout follows the conventional station-model
// glyph: a staff pointing into the wind with pennants, full barbs, and a
// half barb stacked inward from the tip.
const (
	calmCircleRadius = 3.0
	staffLength      = 30.0
	fullBarbLength   = 10.0
	halfBarbLength   = 5.0
	barbSpacing      = 4.0
	pennantBase      = 4.0

	arrowMinLength  = 10.0
	arrowMaxLength  = 42.0
	arrowSpeedScale = 1.2
	arrowHeadLength = 8.0
	arrowHeadAngle  = math.Pi / 7
)

// BarbCounts decomposes a speed into pennants (50 kt), full barbs (10 kt),
// and half barbs (5 kt) after rounding to the nearest 5 kt.
func BarbCounts(speedKt float64) (n50, n10, n5 int) {
	rounded := int(math.Round(speedKt/5)) * 5
	n50 = rounded / 50
	rem := rounded % 50
	n10 = rem / 10
	n5 = (rem % 10) / 5
	return n50, n10, n5
}

// DrawBarb draws the meteorological wind barb for one direction/speed pair
// at a screen point. attachRadius offsets the staff's base from the point,
// so the glyph can hang off a station circle; pass 0 for detached grid
// points. Speeds below the calm threshold draw a small open circle instead.
func DrawBarb(c Canvas, at analysis.Pt, dirDeg, speedKt, attachRadius float64, s Stroke) {
	if speedKt < analysis.CalmThresholdKt {
		c.Circle(at, calmCircleRadius, s)
		return
	}

	// Unit vector pointing toward where the wind comes from; the staff is
	// drawn outward along it. Screen y grows downward.
	rad := dirDeg * math.Pi / 180
	ux, uy := math.Sin(rad), -math.Cos(rad)
	// Perpendicular on the fixed barb side.
	px, py := -uy, ux

	base := analysis.Pt{X: at.X + attachRadius*ux, Y: at.Y + attachRadius*uy}
	tip := analysis.Pt{X: at.X + (attachRadius+staffLength)*ux, Y: at.Y + (attachRadius+staffLength)*uy}
	c.Line(base, tip, s)

	n50, n10, n5 := BarbCounts(speedKt)
	pos := tip

	step := func(d float64) {
		pos.X -= d * ux
		pos.Y -= d * uy
	}

	for i := 0; i < n50; i++ {
		c.FillPolygon([]analysis.Pt{
			pos,
			{X: pos.X - pennantBase*ux, Y: pos.Y - pennantBase*uy},
			{X: pos.X + fullBarbLength*px, Y: pos.Y + fullBarbLength*py},
		}, s.Color)
		step(pennantBase + barbSpacing)
	}

	for i := 0; i < n10; i++ {
		c.Line(pos, analysis.Pt{X: pos.X + fullBarbLength*px, Y: pos.Y + fullBarbLength*py}, s)
		step(barbSpacing)
	}

	if n5 > 0 {
		// A lone half barb sits one spacing in from the tip so it cannot be
		// mistaken for a full barb.
		if n50 == 0 && n10 == 0 {
			step(barbSpacing)
		}
		c.Line(pos, analysis.Pt{X: pos.X + halfBarbLength*px, Y: pos.Y + halfBarbLength*py}, s)
	}
}

// DrawArrow draws a vector-mode wind glyph: a shaft pointing in the
// direction the wind blows toward, length scaled from speed and clamped,
// terminated by a two-stroke arrowhead.
func DrawArrow(c Canvas, at analysis.Pt, dirDeg, speedKt float64, s Stroke) {
	if speedKt < analysis.CalmThresholdKt {
		c.Circle(at, calmCircleRadius, s)
		return
	}

	length := speedKt * arrowSpeedScale
	if length < arrowMinLength {
		length = arrowMinLength
	}
	if length > arrowMaxLength {
		length = arrowMaxLength
	}

	// Toward direction is the reverse of the "from" direction.
	rad := dirDeg * math.Pi / 180
	dx, dy := -math.Sin(rad), math.Cos(rad)

	head := analysis.Pt{X: at.X + length*dx, Y: at.Y + length*dy}
	c.Line(at, head, s)

	// Arrowhead strokes swept back from the shaft direction.
	shaftAngle := math.Atan2(dy, dx)
	for _, da := range []float64{arrowHeadAngle, -arrowHeadAngle} {
		a := shaftAngle + math.Pi + da
		c.Line(head, analysis.Pt{
			X: head.X + arrowHeadLength*math.Cos(a),
			Y: head.Y + arrowHeadLength*math.Sin(a),
		}, s)
	}
}
