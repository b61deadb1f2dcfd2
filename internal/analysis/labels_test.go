package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func horizontalSeg(y, length float64) Segment {
	return Segment{A: Pt{X: 0, Y: y}, B: Pt{X: length, Y: y}}
}

func TestPlaceLabelsSkipsShortChords(t *testing.T) {
	segs := []Segment{
		horizontalSeg(0, 10),
		horizontalSeg(10, 29.9),
		horizontalSeg(20, 30),
	}

	labels := PlaceLabels(segs, "50°F")
	require.Len(t, labels, 1)
	assert.Equal(t, 20.0, labels[0].At.Y)
	assert.Equal(t, "50°F", labels[0].Text)
}

func TestPlaceLabelsTopFiveByLength(t *testing.T) {
	var segs []Segment
	for i := 0; i < 8; i++ {
		segs = append(segs, horizontalSeg(float64(i), float64(40+i*10)))
	}

	labels := PlaceLabels(segs, "x")
	require.Len(t, labels, 5)

	// Longest first: rows 7,6,5,4,3.
	assert.Equal(t, 7.0, labels[0].At.Y)
	assert.Equal(t, 3.0, labels[4].At.Y)
}

func TestPlaceLabelsMidpoint(t *testing.T) {
	segs := []Segment{{A: Pt{X: 10, Y: 20}, B: Pt{X: 70, Y: 60}}}

	labels := PlaceLabels(segs, "x")
	require.Len(t, labels, 1)
	assert.Equal(t, 40.0, labels[0].At.X)
	assert.Equal(t, 40.0, labels[0].At.Y)
}

func TestChordAngleNeverUpsideDown(t *testing.T) {
	tests := []struct {
		name     string
		seg      Segment
		expected float64
	}{
		{"horizontal", Segment{A: Pt{0, 0}, B: Pt{10, 0}}, 0},
		{"reversed horizontal", Segment{A: Pt{10, 0}, B: Pt{0, 0}}, 0},
		{"vertical maps to +90", Segment{A: Pt{0, 0}, B: Pt{0, 10}}, 90},
		{"upward vertical maps to +90", Segment{A: Pt{0, 10}, B: Pt{0, 0}}, 90},
		{"steep backward slope flips", Segment{A: Pt{0, 0}, B: Pt{-10, 10}}, -45},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := chordAngle(tc.seg)
			assert.InDelta(t, tc.expected, a, 1e-9)
			assert.Greater(t, a, -90.0)
			assert.LessOrEqual(t, a, 90.0)
		})
	}
}
