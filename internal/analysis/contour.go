package analysis

import "math"

// Segment is one contour line segment in pixel space. Segments are
// independent; the extractor does not stitch them into polylines, since each
// is stroked on its own.
type Segment struct {
	A Pt
	B Pt
}

// Length returns the chord length of the segment.
func (s Segment) Length() float64 {
	return math.Hypot(s.B.X-s.A.X, s.B.Y-s.A.Y)
}

// interpDenomFloor keeps the edge interpolation finite when two adjacent
// corners tie exactly at the level.
const interpDenomFloor = 1e-9

// crossing linearly interpolates the level crossing between corner values
// va at position a and vb at position b.
func crossing(level, va, vb float64, a, b Pt) Pt {
	denom := vb - va
	if math.Abs(denom) < interpDenomFloor {
		if denom < 0 {
			denom = -interpDenomFloor
		} else {
			denom = interpDenomFloor
		}
	}
	t := (level - va) / denom
	return Pt{
		X: a.X + t*(b.X-a.X),
		Y: a.Y + t*(b.Y-a.Y),
	}
}

// MarchingSquares extracts contour segments for one threshold level from a
// scalar grid. Cells with any no-data corner are skipped entirely, and
// uniform cells (all corners above or all below) never emit a segment.
//
// The two ambiguous saddle configurations (corner codes 5 and 10) are always
// resolved as the same two-diagonal pair rather than by comparing a
// cell-center estimate. Downstream visuals depend on this fixed choice;
// changing it would silently reconnect saddle cells.
func MarchingSquares(g *Grid, level float64) []Segment {
	if g == nil {
		return nil
	}

	var segs []Segment
	for j := 0; j < g.NY-1; j++ {
		for i := 0; i < g.NX-1; i++ {
			// Corners in pixel order: top-left, top-right, bottom-right,
			// bottom-left.
			v0 := g.At(i, j)
			v1 := g.At(i+1, j)
			v2 := g.At(i+1, j+1)
			v3 := g.At(i, j+1)
			if IsNoData(v0) || IsNoData(v1) || IsNoData(v2) || IsNoData(v3) {
				continue
			}

			code := 0
			if v0 >= level {
				code |= 1
			}
			if v1 >= level {
				code |= 2
			}
			if v2 >= level {
				code |= 4
			}
			if v3 >= level {
				code |= 8
			}
			if code == 0 || code == 15 {
				continue
			}

			p0 := g.NodePos(i, j)
			p1 := g.NodePos(i+1, j)
			p2 := g.NodePos(i+1, j+1)
			p3 := g.NodePos(i, j+1)

			top := func() Pt { return crossing(level, v0, v1, p0, p1) }
			right := func() Pt { return crossing(level, v1, v2, p1, p2) }
			bottom := func() Pt { return crossing(level, v3, v2, p3, p2) }
			left := func() Pt { return crossing(level, v0, v3, p0, p3) }

			switch code {
			case 1, 14:
				segs = append(segs, Segment{A: left(), B: top()})
			case 2, 13:
				segs = append(segs, Segment{A: top(), B: right()})
			case 3, 12:
				segs = append(segs, Segment{A: left(), B: right()})
			case 4, 11:
				segs = append(segs, Segment{A: right(), B: bottom()})
			case 6, 9:
				segs = append(segs, Segment{A: top(), B: bottom()})
			case 7, 8:
				segs = append(segs, Segment{A: bottom(), B: left()})
			case 5:
				segs = append(segs,
					Segment{A: left(), B: top()},
					Segment{A: right(), B: bottom()})
			case 10:
				segs = append(segs,
					Segment{A: top(), B: right()},
					Segment{A: bottom(), B: left()})
			}
		}
	}
	return segs
}
