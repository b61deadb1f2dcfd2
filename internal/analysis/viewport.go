package analysis

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
)

// Pt is a point in viewport pixel space. X grows right, Y grows down.
type Pt struct {
	X float64
	Y float64
}

// Projector maps a geographic coordinate to a viewport pixel coordinate for
// the current view. Implementations must be queried fresh each redraw since
// they depend on pan/zoom state.
type Projector interface {
	// Project converts latitude/longitude to pixel coordinates, returning an
	// error for coordinates the current view cannot represent.
	Project(lat, lon float64) (Pt, error)

	// Zoom returns the current zoom level in web-map terms (world width is
	// 256·2^zoom pixels).
	Zoom() float64
}

// Web Mercator world half-width in meters.
const mercatorMax = 20037508.342789244

// Maximum representable latitude in Web Mercator.
const maxMercatorLat = 85.05112878

// MercatorView is a Projector over a fixed geographic bounding box rendered
// into a width×height pixel viewport using the Web Mercator projection.
type MercatorView struct {
	width  float64
	height float64
	minX   float64 // mercator meters at the west edge
	maxY   float64 // mercator meters at the north edge
	scale  float64 // pixels per mercator meter
	zoom   float64
}

// NewMercatorView builds a view for the box west..east / south..north
// rendered into width×height pixels. Scale is chosen from the horizontal
// extent; the vertical extent follows the projection's aspect.
func NewMercatorView(west, south, east, north float64, width, height int) (*MercatorView, error) {
	if east <= west || north <= south {
		return nil, fmt.Errorf("degenerate bounding box [%v,%v,%v,%v]", west, south, east, north)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid viewport size %dx%d", width, height)
	}

	min := project.WGS84.ToMercator(orb.Point{west, clampLat(south)})
	max := project.WGS84.ToMercator(orb.Point{east, clampLat(north)})

	scale := float64(width) / (max[0] - min[0])
	// Zoom such that the whole mercator world would span 256·2^z pixels at
	// this scale.
	zoom := math.Log2(scale * 2 * mercatorMax / 256)

	return &MercatorView{
		width:  float64(width),
		height: float64(height),
		minX:   min[0],
		maxY:   max[1],
		scale:  scale,
		zoom:   zoom,
	}, nil
}

func clampLat(lat float64) float64 {
	return math.Max(-maxMercatorLat, math.Min(maxMercatorLat, lat))
}

// Project implements Projector.
func (v *MercatorView) Project(lat, lon float64) (Pt, error) {
	if math.IsNaN(lat) || math.IsNaN(lon) || math.Abs(lat) > maxMercatorLat || math.Abs(lon) > 180 {
		return Pt{}, fmt.Errorf("coordinate (%v,%v) outside projectable range", lat, lon)
	}
	p := project.WGS84.ToMercator(orb.Point{lon, lat})
	return Pt{
		X: (p[0] - v.minX) * v.scale,
		Y: (v.maxY - p[1]) * v.scale,
	}, nil
}

// Zoom implements Projector.
func (v *MercatorView) Zoom() float64 { return v.zoom }

// Width returns the viewport width in pixels.
func (v *MercatorView) Width() float64 { return v.width }

// Height returns the viewport height in pixels.
func (v *MercatorView) Height() float64 { return v.height }
