package analysis

import (
	"math"
	"sort"
)

// Label placement tuning: chords shorter than minLabelChord are too cramped
// to annotate, and more than maxLabelsPerLevel repeats the same number
// without adding information.
const (
	minLabelChord     = 30.0
	maxLabelsPerLevel = 5
)

// Label is one contour annotation: text at a midpoint, rotated to the
// segment's chord angle.
type Label struct {
	Text     string
	At       Pt
	AngleDeg float64 // normalized into (-90, 90] so text is never upside-down
}

// PlaceLabels chooses up to five of the longest segments for one level and
// produces a label at each chosen segment's midpoint. Length is the chord
// between the segment endpoints, not polyline length, since segments are
// never stitched.
func PlaceLabels(segs []Segment, text string) []Label {
	candidates := make([]Segment, 0, len(segs))
	for _, s := range segs {
		if s.Length() >= minLabelChord {
			candidates = append(candidates, s)
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Length() > candidates[j].Length()
	})
	if len(candidates) > maxLabelsPerLevel {
		candidates = candidates[:maxLabelsPerLevel]
	}

	labels := make([]Label, 0, len(candidates))
	for _, s := range candidates {
		labels = append(labels, Label{
			Text: text,
			At: Pt{
				X: (s.A.X + s.B.X) / 2,
				Y: (s.A.Y + s.B.Y) / 2,
			},
			AngleDeg: chordAngle(s),
		})
	}
	return labels
}

// chordAngle returns the segment's angle in degrees normalized into
// (-90, 90].
func chordAngle(s Segment) float64 {
	a := math.Atan2(s.B.Y-s.A.Y, s.B.X-s.A.X) * 180 / math.Pi
	for a <= -90 {
		a += 180
	}
	for a > 90 {
		a -= 180
	}
	return a
}
