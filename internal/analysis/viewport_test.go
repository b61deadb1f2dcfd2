package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMercatorViewProject(t *testing.T) {
	// A CONUS-ish box.
	v, err := NewMercatorView(-105, 30, -90, 40, 1000, 800)
	require.NoError(t, err)

	t.Run("west edge maps to x=0", func(t *testing.T) {
		p, err := v.Project(35, -105)
		require.NoError(t, err)
		assert.InDelta(t, 0, p.X, 1e-6)
	})

	t.Run("east edge maps to width", func(t *testing.T) {
		p, err := v.Project(35, -90)
		require.NoError(t, err)
		assert.InDelta(t, 1000, p.X, 1e-6)
	})

	t.Run("north edge maps to y=0", func(t *testing.T) {
		p, err := v.Project(40, -100)
		require.NoError(t, err)
		assert.InDelta(t, 0, p.Y, 1e-6)
	})

	t.Run("y grows southward", func(t *testing.T) {
		north, err := v.Project(39, -100)
		require.NoError(t, err)
		south, err := v.Project(31, -100)
		require.NoError(t, err)
		assert.Greater(t, south.Y, north.Y)
	})

	t.Run("longitude orders x", func(t *testing.T) {
		west, err := v.Project(35, -104)
		require.NoError(t, err)
		east, err := v.Project(35, -91)
		require.NoError(t, err)
		assert.Greater(t, east.X, west.X)
	})
}

func TestMercatorViewRejectsBadCoordinates(t *testing.T) {
	v, err := NewMercatorView(-105, 30, -90, 40, 1000, 800)
	require.NoError(t, err)

	_, err = v.Project(91, -100)
	assert.Error(t, err)

	_, err = v.Project(35, 181)
	assert.Error(t, err)
}

func TestMercatorViewRejectsDegenerateBox(t *testing.T) {
	_, err := NewMercatorView(-90, 30, -105, 40, 1000, 800)
	assert.Error(t, err)

	_, err = NewMercatorView(-105, 30, -90, 40, 0, 800)
	assert.Error(t, err)
}

func TestMercatorViewZoomScalesWithExtent(t *testing.T) {
	wide, err := NewMercatorView(-125, 25, -65, 50, 1000, 800)
	require.NoError(t, err)
	narrow, err := NewMercatorView(-98, 34, -96, 36, 1000, 800)
	require.NoError(t, err)

	assert.Greater(t, narrow.Zoom(), wide.Zoom())
}
