package analysis

import "math"

// Default interpolation parameters. A 1024×768 viewport at step 24 is a
// 44×33 lattice, and the neighbor cap bounds per-node cost regardless of
// station count.
const (
	DefaultStep         = 24.0
	DefaultRadius       = 200.0
	DefaultMaxNeighbors = 10
	DefaultPower        = 2.0
)

// minNodeNeighbors is the minimum qualifying samples for a node to get a
// value, and the minimum total samples for a field to be computed at all.
const minNodeNeighbors = 3

// minDistSq floors the squared distance in the IDW weight so stations closer
// than 3px to a node cannot dominate the estimate or divide by zero.
const minDistSq = 9.0

// Params controls scattered-point-to-grid interpolation.
type Params struct {
	Step         float64 // lattice spacing in pixels
	Radius       float64 // neighbor search radius in pixels
	MaxNeighbors int     // cap on samples contributing to one node
	Power        float64 // inverse-distance exponent
}

// DefaultParams returns the standard interpolation parameters.
func DefaultParams() Params {
	return Params{
		Step:         DefaultStep,
		Radius:       DefaultRadius,
		MaxNeighbors: DefaultMaxNeighbors,
		Power:        DefaultPower,
	}
}

// Sample is one scattered input point in pixel space.
type Sample struct {
	X     float64
	Y     float64
	Value float64
}

// Grid is a regular lattice of interpolated values covering the viewport.
// Nodes with too few qualifying neighbors hold NaN ("no data"). A Grid is
// owned by a single redraw pass and never shared.
type Grid struct {
	NX     int
	NY     int
	Step   float64
	Values []float64 // row-major, NaN where no data
	Min    float64   // finite minimum, valid only when Finite
	Max    float64   // finite maximum, valid only when Finite
	Finite bool      // true when at least one node holds a value
}

// At returns the value at lattice node (i, j); NaN means no data.
func (g *Grid) At(i, j int) float64 {
	return g.Values[j*g.NX+i]
}

// NodePos returns the pixel position of lattice node (i, j).
func (g *Grid) NodePos(i, j int) Pt {
	return Pt{X: float64(i) * g.Step, Y: float64(j) * g.Step}
}

// IsNoData reports whether v is the no-data sentinel.
func IsNoData(v float64) bool { return math.IsNaN(v) }

// neighbor is one candidate sample for a node, kept sorted by distance.
type neighbor struct {
	distSq float64
	value  float64
}

// neighborList is a small fixed-capacity list ordered by distance. Inserts
// keep order and truncate past the cap, so the far tail falls off as closer
// samples arrive.
type neighborList struct {
	cap   int
	items []neighbor
}

func newNeighborList(capacity int) *neighborList {
	return &neighborList{cap: capacity, items: make([]neighbor, 0, capacity+1)}
}

func (l *neighborList) insert(distSq, value float64) {
	if len(l.items) == l.cap && distSq >= l.items[len(l.items)-1].distSq {
		return
	}
	at := len(l.items)
	for i, n := range l.items {
		if distSq < n.distSq {
			at = i
			break
		}
	}
	l.items = append(l.items, neighbor{})
	copy(l.items[at+1:], l.items[at:])
	l.items[at] = neighbor{distSq: distSq, value: value}
	if len(l.items) > l.cap {
		l.items = l.items[:l.cap]
	}
}

func (l *neighborList) reset() { l.items = l.items[:0] }

// InterpolateScalar builds the inverse-distance-weighted lattice for one
// scalar quantity over a width×height viewport. It returns nil when fewer
// than three samples exist or when no node ends up with a finite value; a
// degraded field draws nothing rather than garbage.
func InterpolateScalar(samples []Sample, width, height float64, p Params) *Grid {
	if len(samples) < minNodeNeighbors {
		return nil
	}

	nx := int(math.Ceil(width/p.Step)) + 1
	ny := int(math.Ceil(height/p.Step)) + 1
	g := &Grid{
		NX:     nx,
		NY:     ny,
		Step:   p.Step,
		Values: make([]float64, nx*ny),
		Min:    math.Inf(1),
		Max:    math.Inf(-1),
	}

	radiusSq := p.Radius * p.Radius
	neighbors := newNeighborList(p.MaxNeighbors)

	for j := 0; j < ny; j++ {
		gy := float64(j) * p.Step
		for i := 0; i < nx; i++ {
			gx := float64(i) * p.Step

			neighbors.reset()
			for _, s := range samples {
				dx := s.X - gx
				dy := s.Y - gy
				d2 := dx*dx + dy*dy
				if d2 <= radiusSq {
					neighbors.insert(d2, s.Value)
				}
			}

			idx := j*nx + i
			if len(neighbors.items) < minNodeNeighbors {
				g.Values[idx] = math.NaN()
				continue
			}

			var sumW, sumWV float64
			for _, n := range neighbors.items {
				w := 1 / math.Pow(math.Max(n.distSq, minDistSq), p.Power/2)
				sumW += w
				sumWV += w * n.value
			}
			v := sumWV / sumW
			g.Values[idx] = v
			if v < g.Min {
				g.Min = v
			}
			if v > g.Max {
				g.Max = v
			}
			g.Finite = true
		}
	}

	if !g.Finite {
		return nil
	}
	return g
}
