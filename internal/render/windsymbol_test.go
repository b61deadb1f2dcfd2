package render

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesowx/mesoanalysis/internal/analysis"
)

var testStroke = Stroke{Color: color.Black, Width: 1}

func TestBarbCounts(t *testing.T) {
	tests := []struct {
		speed float64
		n50   int
		n10   int
		n5    int
	}{
		{0, 0, 0, 0},
		{3, 0, 0, 1},   // rounds to 5
		{12, 0, 1, 0},  // rounds to 10
		{47, 0, 4, 1},  // rounds to 45
		{53, 1, 0, 1},  // rounds to 55
		{50, 1, 0, 0},
		{125, 2, 2, 1}, // rounds to 125
	}

	for _, tc := range tests {
		n50, n10, n5 := BarbCounts(tc.speed)
		assert.Equal(t, tc.n50, n50, "speed %v pennants", tc.speed)
		assert.Equal(t, tc.n10, n10, "speed %v barbs", tc.speed)
		assert.Equal(t, tc.n5, n5, "speed %v half barbs", tc.speed)
	}
}

func TestDrawBarbCalm(t *testing.T) {
	rec := &Recorder{}
	DrawBarb(rec, analysis.Pt{X: 50, Y: 50}, 270, 1, 0, testStroke)

	require.Len(t, rec.Ops, 1)
	assert.Equal(t, OpCircle, rec.Ops[0].Op)
	assert.Equal(t, calmCircleRadius, rec.Ops[0].R)
}

func TestDrawBarbPrimitiveCounts(t *testing.T) {
	// 65 kt: one pennant, one full barb, one half barb, plus the staff.
	rec := &Recorder{}
	DrawBarb(rec, analysis.Pt{X: 0, Y: 0}, 180, 65, 0, testStroke)

	assert.Equal(t, 1, rec.Count(OpPolygon), "pennant")
	assert.Equal(t, 3, rec.Count(OpLine), "staff + full barb + half barb")
}

func TestDrawBarbStaffPointsIntoWind(t *testing.T) {
	// A north wind (from 0°) must draw the staff upward on screen.
	rec := &Recorder{}
	DrawBarb(rec, analysis.Pt{X: 100, Y: 100}, 0, 10, 0, testStroke)

	require.NotEmpty(t, rec.Ops)
	staff := rec.Ops[0]
	require.Equal(t, OpLine, staff.Op)
	assert.InDelta(t, 100, staff.A.X, 1e-9)
	assert.InDelta(t, 100, staff.A.Y, 1e-9)
	assert.InDelta(t, 100, staff.B.X, 1e-9)
	assert.InDelta(t, 100-staffLength, staff.B.Y, 1e-9)
}

func TestDrawBarbAttachRadiusOffsetsStaff(t *testing.T) {
	rec := &Recorder{}
	DrawBarb(rec, analysis.Pt{X: 0, Y: 0}, 0, 10, stationCircleRadius, testStroke)

	staff := rec.Ops[0]
	require.Equal(t, OpLine, staff.Op)
	assert.InDelta(t, -stationCircleRadius, staff.A.Y, 1e-9)
	assert.InDelta(t, -(stationCircleRadius + staffLength), staff.B.Y, 1e-9)
}

func TestDrawArrowPointsDownwind(t *testing.T) {
	// Wind from the west (270°) blows east: shaft extends toward +x.
	rec := &Recorder{}
	DrawArrow(rec, analysis.Pt{X: 10, Y: 10}, 270, 20, testStroke)

	require.Equal(t, 3, rec.Count(OpLine), "shaft + two head strokes")
	shaft := rec.Ops[0]
	assert.Greater(t, shaft.B.X, shaft.A.X)
	assert.InDelta(t, 10, shaft.B.Y, 1e-9)
	assert.InDelta(t, 24, shaft.B.X-shaft.A.X, 1e-9) // 20 kt × 1.2
}

func TestDrawArrowLengthClamps(t *testing.T) {
	shaftLen := func(speed float64) float64 {
		rec := &Recorder{}
		DrawArrow(rec, analysis.Pt{}, 270, speed, testStroke)
		s := rec.Ops[0]
		return math.Hypot(s.B.X-s.A.X, s.B.Y-s.A.Y)
	}

	assert.InDelta(t, arrowMinLength, shaftLen(3), 1e-9, "slow winds clamp to minimum")
	assert.InDelta(t, arrowMaxLength, shaftLen(80), 1e-9, "fast winds clamp to maximum")
}

func TestDrawArrowCalm(t *testing.T) {
	rec := &Recorder{}
	DrawArrow(rec, analysis.Pt{}, 0, 0.5, testStroke)

	require.Len(t, rec.Ops, 1)
	assert.Equal(t, OpCircle, rec.Ops[0].Op)
}
