package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/mesowx/mesoanalysis/internal/analysis"
	"github.com/mesowx/mesoanalysis/internal/domain"
)

// Station model geometry and palette.
const stationCircleRadius = 6.0

var (
	stationOutline = color.RGBA{R: 0x28, G: 0x28, B: 0x28, A: 0xff}
	stationTempCol = color.RGBA{R: 0xc8, G: 0x28, B: 0x1e, A: 0xff}
	stationDewpCol = color.RGBA{R: 0x0a, G: 0x64, B: 0x28, A: 0xff}
	stationPresCol = color.RGBA{R: 0x28, G: 0x28, B: 0x28, A: 0xff}
	haloColor      = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// WindMode selects how wind is drawn.
type WindMode int

const (
	WindBarbs WindMode = iota
	WindArrows
)

// DrawStationPlot draws the full station model at a projected point: circle
// with a sky-cover wedge, temperature and dewpoint digits, the coded
// sea-level pressure, and the wind glyph attached to the circle's rim.
func DrawStationPlot(c Canvas, at analysis.Pt, obs domain.Observation, units analysis.Units, mode WindMode) {
	outline := Stroke{Color: stationOutline, Width: 1.2}

	if frac := obs.SkyCoverFraction(); frac > 0 {
		c.FillWedge(at, stationCircleRadius, 0, 360*frac, stationOutline)
	}
	c.Circle(at, stationCircleRadius, outline)

	digits := TextStyle{Color: stationTempCol, Halo: haloColor, Size: 10}
	c.Text(formatTemp(obs.TempC, units), analysis.Pt{X: at.X - 14, Y: at.Y - 10}, 0, digits)

	if obs.DewpointC != nil {
		digits.Color = stationDewpCol
		c.Text(formatTemp(*obs.DewpointC, units), analysis.Pt{X: at.X - 14, Y: at.Y + 10}, 0, digits)
	}

	if obs.PressureMb != nil {
		digits.Color = stationPresCol
		c.Text(pressureCode(*obs.PressureMb, obs.PressureEstimated),
			analysis.Pt{X: at.X + 14, Y: at.Y - 10}, 0, digits)
	}

	if obs.HasWind() {
		wind := Stroke{Color: stationOutline, Width: 1.2}
		switch mode {
		case WindArrows:
			DrawArrow(c, at, *obs.WindDirDeg, *obs.WindSpeedKt, wind)
		default:
			DrawBarb(c, at, *obs.WindDirDeg, *obs.WindSpeedKt, stationCircleRadius, wind)
		}
	}
}

func formatTemp(tempC float64, units analysis.Units) string {
	if units == analysis.Imperial {
		return fmt.Sprintf("%d", int(math.Round(domain.CelsiusToFahrenheit(tempC))))
	}
	return fmt.Sprintf("%d", int(math.Round(tempC)))
}

// pressureCode renders sea-level pressure in the station-model shorthand:
// tens, units, and tenths of millibars with the leading 9 or 10 dropped,
// so 1013.2 mb becomes "132" and 998.7 mb becomes "987". An estimated
// pressure is suffixed with "E".
func pressureCode(pressureMb float64, estimated bool) string {
	tenths := int(math.Round(pressureMb*10)) % 1000
	if tenths < 0 {
		tenths += 1000
	}
	code := fmt.Sprintf("%03d", tenths)
	if estimated {
		code += "E"
	}
	return code
}
