package analysis

import (
	"math"

	"github.com/mesowx/mesoanalysis/internal/domain"
)

// Density multipliers for the user-facing declutter tiers. The bucket size
// scales with the multiplier, so larger values thin harder.
const (
	DensityDense  = 0.5
	DensityMedium = 2.0
	DensitySparse = 3.0
)

// minBucketPx is the floor on the thinning bucket size; below this the
// filter would keep effectively everything while still paying for hashing.
const minBucketPx = 6

// BucketSize returns the declutter bucket edge in pixels for a zoom level
// and density multiplier. Zero means no thinning.
func BucketSize(zoom, density float64) float64 {
	var base float64
	switch {
	case zoom < 4:
		base = 30
	case zoom < 6:
		base = 22
	case zoom < 8:
		base = 15
	case zoom < 10:
		base = 10
	default:
		return 0
	}

	size := base * density
	if size < minBucketPx {
		size = minBucketPx
	}
	return size
}

type bucketKey struct {
	cx int
	cy int
}

// Declutter thins observations to at most one per spatial bucket for the
// current view, preserving input order and keeping the first observation
// encountered in each bucket. The keep-first policy is deliberate: it makes
// station selection stable across redraws for an unchanged view, at the cost
// of not choosing the most central station in a bucket.
//
// A nil projector (view not ready) returns the input unfiltered. An
// observation whose projection fails is skipped; it does not abort the pass.
func Declutter(obs []domain.Observation, proj Projector, density float64) []domain.Observation {
	if proj == nil {
		return obs
	}

	cell := BucketSize(proj.Zoom(), density)
	if cell <= 0 {
		return obs
	}

	kept := make([]domain.Observation, 0, len(obs))
	seen := make(map[bucketKey]struct{}, len(obs))
	for _, o := range obs {
		p, err := proj.Project(o.Lat, o.Lon)
		if err != nil {
			continue
		}
		key := bucketKey{
			cx: int(math.Floor(p.X / cell)),
			cy: int(math.Floor(p.Y / cell)),
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		kept = append(kept, o)
	}
	return kept
}
