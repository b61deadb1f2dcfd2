package analysis

import "math"

// CalmThresholdKt is the interpolated speed below which a grid point is
// treated as calm and suppressed from wind-glyph rendering.
const CalmThresholdKt = 2.0

// WindSample is one station wind report in pixel space: direction the wind
// blows from (degrees true) and speed in knots.
type WindSample struct {
	X        float64
	Y        float64
	DirDeg   float64
	SpeedKt  float64
}

// WindComponents converts a meteorological direction-from/speed pair to
// u/v components pointing in the direction the wind blows toward.
func WindComponents(dirDeg, speedKt float64) (u, v float64) {
	rad := dirDeg * math.Pi / 180
	return -speedKt * math.Sin(rad), -speedKt * math.Cos(rad)
}

// WindFromComponents recovers speed and direction-from from u/v components.
// Direction is normalized into [0, 360).
func WindFromComponents(u, v float64) (speedKt, dirDeg float64) {
	speedKt = math.Hypot(u, v)
	dirDeg = math.Mod(math.Atan2(-u, -v)*180/math.Pi+360, 360)
	return speedKt, dirDeg
}

// WindGrid holds interpolated wind components on the same lattice geometry
// as a scalar Grid. Nodes without data hold NaN in both components.
type WindGrid struct {
	NX   int
	NY   int
	Step float64
	U    []float64
	V    []float64
}

// NodePos returns the pixel position of lattice node (i, j).
func (g *WindGrid) NodePos(i, j int) Pt {
	return Pt{X: float64(i) * g.Step, Y: float64(j) * g.Step}
}

// WindAt returns the recovered speed/direction at node (i, j). ok is false
// for no-data nodes and for nodes below the calm threshold.
func (g *WindGrid) WindAt(i, j int) (speedKt, dirDeg float64, ok bool) {
	idx := j*g.NX + i
	u, v := g.U[idx], g.V[idx]
	if IsNoData(u) || IsNoData(v) {
		return 0, 0, false
	}
	speedKt, dirDeg = WindFromComponents(u, v)
	if speedKt < CalmThresholdKt {
		return speedKt, dirDeg, false
	}
	return speedKt, dirDeg, true
}

// InterpolateWind builds u and v lattices from station winds using the same
// neighbor search and weighting as the scalar interpolator, applied to each
// component independently. Returns nil when fewer than three samples exist
// or neither component produced a finite node.
func InterpolateWind(samples []WindSample, width, height float64, p Params) *WindGrid {
	if len(samples) < minNodeNeighbors {
		return nil
	}

	us := make([]Sample, len(samples))
	vs := make([]Sample, len(samples))
	for i, s := range samples {
		u, v := WindComponents(s.DirDeg, s.SpeedKt)
		us[i] = Sample{X: s.X, Y: s.Y, Value: u}
		vs[i] = Sample{X: s.X, Y: s.Y, Value: v}
	}

	gu := InterpolateScalar(us, width, height, p)
	gv := InterpolateScalar(vs, width, height, p)
	if gu == nil || gv == nil {
		return nil
	}

	return &WindGrid{NX: gu.NX, NY: gu.NY, Step: gu.Step, U: gu.Values, V: gv.Values}
}
