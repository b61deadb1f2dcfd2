package analysis

import (
	"fmt"
	"image/color"
	"math"
	"sort"
)

// FieldKind is the tagged variant for the contoured scalar fields. Each kind
// carries its own unit, contour step, and styling, selected by exhaustive
// switching rather than stringly-typed mode checks.
type FieldKind int

const (
	Temperature FieldKind = iota
	Dewpoint
	Pressure
)

func (k FieldKind) String() string {
	switch k {
	case Temperature:
		return "temperature"
	case Dewpoint:
		return "dewpoint"
	case Pressure:
		return "pressure"
	default:
		return "unknown"
	}
}

// Units selects the display unit system for temperature-like fields.
// Pressure is always millibars.
type Units int

const (
	Imperial Units = iota // °F
	Metric                // °C
)

// LineStyle is the stroke for one contour level.
type LineStyle struct {
	Color color.RGBA
	Width float64
	Dash  []float64 // empty means solid
}

// Level is one contour threshold with its stroke style and label text.
type Level struct {
	Value float64
	Style LineStyle
	Label string
}

// levelEps is the tolerance for matching a generated level against the
// freezing point.
const levelEps = 1e-6

var contourDash = []float64{6, 4}

var (
	belowFreezingColor = color.RGBA{R: 0x1e, G: 0x50, B: 0xc8, A: 0xff} // blue
	aboveFreezingColor = color.RGBA{R: 0xc8, G: 0x28, B: 0x1e, A: 0xff} // red
	freezingColor      = color.RGBA{R: 0x64, G: 0x32, B: 0xb4, A: 0xff}
	dewpointColor      = color.RGBA{R: 0x0a, G: 0x64, B: 0x28, A: 0xff} // dark green
	isobarColor        = color.RGBA{R: 0x14, G: 0x14, B: 0x14, A: 0xff}
)

// contourStep returns the level spacing for a field in the display unit.
func contourStep(kind FieldKind, units Units) float64 {
	switch kind {
	case Pressure:
		return 4
	default:
		if units == Imperial {
			return 5
		}
		return 2
	}
}

// FreezingLevel returns the freezing point in the display unit.
func FreezingLevel(units Units) float64 {
	if units == Imperial {
		return 32
	}
	return 0
}

// dewpointFloor is the lowest dewpoint level worth contouring; lower
// isodrosotherms are meteorologically uninteresting clutter.
func dewpointFloor(units Units) float64 {
	if units == Imperial {
		return 45
	}
	return 8
}

// isobarBase anchors isobar levels so the same pressures contour regardless
// of the data range: 1000 mb plus integer multiples of 4 mb.
const isobarBase = 1000.0

// SelectLevels generates the ordered threshold list bracketing [min, max]
// for a field, styled per level. Temperature always includes the freezing
// level even when it is off the regular step grid, since the freezing line
// is meteorologically significant.
func SelectLevels(kind FieldKind, units Units, min, max float64) []Level {
	step := contourStep(kind, units)

	var first, last float64
	if kind == Pressure {
		first = isobarBase + math.Floor((min-isobarBase)/step)*step
		last = isobarBase + math.Ceil((max-isobarBase)/step)*step
	} else {
		first = math.Floor(min/step) * step
		last = math.Ceil(max/step) * step
	}

	var levels []Level
	sawFreezing := false
	freezing := FreezingLevel(units)
	for v := first; v <= last+levelEps; v += step {
		if kind == Dewpoint && v < dewpointFloor(units)-levelEps {
			continue
		}
		if kind == Temperature && math.Abs(v-freezing) < levelEps {
			sawFreezing = true
		}
		levels = append(levels, makeLevel(kind, units, v))
	}

	if kind == Temperature && !sawFreezing {
		at := sort.Search(len(levels), func(i int) bool {
			return levels[i].Value > freezing
		})
		levels = append(levels, Level{})
		copy(levels[at+1:], levels[at:])
		levels[at] = makeLevel(kind, units, freezing)
	}
	return levels
}

func makeLevel(kind FieldKind, units Units, value float64) Level {
	return Level{
		Value: value,
		Style: styleFor(kind, units, value),
		Label: labelFor(kind, units, value),
	}
}

func styleFor(kind FieldKind, units Units, value float64) LineStyle {
	switch kind {
	case Temperature:
		freezing := FreezingLevel(units)
		switch {
		case math.Abs(value-freezing) < levelEps:
			return LineStyle{Color: freezingColor, Width: 2.5}
		case value < freezing:
			return LineStyle{Color: belowFreezingColor, Width: 1.5, Dash: contourDash}
		default:
			return LineStyle{Color: aboveFreezingColor, Width: 1.5, Dash: contourDash}
		}
	case Dewpoint:
		return LineStyle{Color: dewpointColor, Width: 1.5, Dash: contourDash}
	case Pressure:
		return LineStyle{Color: isobarColor, Width: 2}
	default:
		return LineStyle{Color: isobarColor, Width: 1}
	}
}

func labelFor(kind FieldKind, units Units, value float64) string {
	rounded := int(math.Round(value))
	switch kind {
	case Pressure:
		return fmt.Sprintf("%d mb", rounded)
	default:
		if units == Imperial {
			return fmt.Sprintf("%d°F", rounded)
		}
		return fmt.Sprintf("%d°C", rounded)
	}
}
