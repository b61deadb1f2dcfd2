package analysis

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesowx/mesoanalysis/internal/domain"
)

// planarProjector maps lat/lon directly to pixels for tests, with a
// configurable zoom and a failure set.
type planarProjector struct {
	zoom float64
	fail map[string]bool
}

func (p *planarProjector) Project(lat, lon float64) (Pt, error) {
	key := fmt.Sprintf("%v,%v", lat, lon)
	if p.fail[key] {
		return Pt{}, fmt.Errorf("unprojectable coordinate %s", key)
	}
	return Pt{X: lon, Y: lat}, nil
}

func (p *planarProjector) Zoom() float64 { return p.zoom }

func obsAt(id string, lat, lon float64) domain.Observation {
	return domain.Observation{ID: id, Lat: lat, Lon: lon, TempC: 10}
}

func TestBucketSize(t *testing.T) {
	tests := []struct {
		name     string
		zoom     float64
		density  float64
		expected float64
	}{
		{"far out", 3, 1, 30},
		{"regional", 5, 1, 22},
		{"state", 7, 1, 15},
		{"metro", 9, 1, 10},
		{"street level disables thinning", 10, 1, 0},
		{"density scales bucket", 5, 2, 44},
		{"floor at six pixels", 9, 0.25, 6},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, BucketSize(tc.zoom, tc.density))
		})
	}
}

func TestDeclutterKeepsFirstPerBucket(t *testing.T) {
	proj := &planarProjector{zoom: 9} // bucket size 10 at density 1
	obs := []domain.Observation{
		obsAt("a", 1, 1),
		obsAt("b", 2, 2), // same 10px bucket as a
		obsAt("c", 55, 55),
		obsAt("d", 58, 51), // same bucket as c
		obsAt("e", 200, 200),
	}

	kept := Declutter(obs, proj, 1)
	require.Len(t, kept, 3)
	assert.Equal(t, "a", kept[0].ID)
	assert.Equal(t, "c", kept[1].ID)
	assert.Equal(t, "e", kept[2].ID)
}

func TestDeclutterOrderIsStable(t *testing.T) {
	proj := &planarProjector{zoom: 3}
	obs := []domain.Observation{
		obsAt("a", 0, 0),
		obsAt("b", 100, 100),
		obsAt("c", 500, 500),
	}

	kept := Declutter(obs, proj, 1)
	require.Len(t, kept, 3)
	for i, o := range kept {
		assert.Equal(t, obs[i].ID, o.ID)
	}
}

func TestDeclutterNilProjectorReturnsAll(t *testing.T) {
	obs := []domain.Observation{obsAt("a", 1, 1), obsAt("b", 1, 1)}
	assert.Equal(t, obs, Declutter(obs, nil, 1))
}

func TestDeclutterHighZoomReturnsAll(t *testing.T) {
	proj := &planarProjector{zoom: 12}
	obs := []domain.Observation{obsAt("a", 1, 1), obsAt("b", 1.5, 1.5)}
	assert.Equal(t, obs, Declutter(obs, proj, 1))
}

func TestDeclutterSkipsFailedProjection(t *testing.T) {
	proj := &planarProjector{zoom: 9, fail: map[string]bool{"55,55": true}}
	obs := []domain.Observation{
		obsAt("a", 1, 1),
		obsAt("bad", 55, 55),
		obsAt("c", 200, 200),
	}

	kept := Declutter(obs, proj, 1)
	require.Len(t, kept, 2)
	assert.Equal(t, "a", kept[0].ID)
	assert.Equal(t, "c", kept[1].ID)
}

func TestDeclutterEmptyInput(t *testing.T) {
	proj := &planarProjector{zoom: 5}
	assert.Empty(t, Declutter(nil, proj, 1))
}
