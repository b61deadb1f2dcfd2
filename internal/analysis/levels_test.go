package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bracket asserts that levels fully bracket [min, max], ignoring levels
// appended outside the regular ladder (the forced freezing level).
func bracket(t *testing.T, levels []Level, min, max float64) {
	t.Helper()
	require.NotEmpty(t, levels)
	assert.LessOrEqual(t, levels[0].Value, min)

	top := levels[0].Value
	for _, l := range levels {
		if l.Value > top {
			top = l.Value
		}
	}
	assert.GreaterOrEqual(t, top, max)
}

func TestSelectLevelsTemperatureBracketsRange(t *testing.T) {
	levels := SelectLevels(Temperature, Imperial, 41.3, 78.9)
	bracket(t, levels, 41.3, 78.9)

	for i := 1; i < len(levels)-1; i++ {
		assert.InDelta(t, 5, levels[i].Value-levels[i-1].Value, levelEps)
	}
}

func TestSelectLevelsFreezingAlwaysPresent(t *testing.T) {
	t.Run("off the step ladder", func(t *testing.T) {
		// Metric levels for 5..21 run 4,6,...,22; freezing (0) is outside
		// the range but must still be attempted.
		levels := SelectLevels(Temperature, Metric, 5, 21)
		assert.True(t, hasLevel(levels, 0))
	})

	t.Run("on the ladder", func(t *testing.T) {
		levels := SelectLevels(Temperature, Imperial, 20, 50)
		count := 0
		for _, l := range levels {
			if math.Abs(l.Value-32) < levelEps {
				count++
			}
		}
		// Imperial steps land on 30/35, not 32, so the freezing level is
		// appended exactly once.
		assert.Equal(t, 1, count)
	})

	t.Run("not duplicated when the step hits it", func(t *testing.T) {
		levels := SelectLevels(Temperature, Metric, -6, 6)
		count := 0
		for _, l := range levels {
			if math.Abs(l.Value) < levelEps {
				count++
			}
		}
		assert.Equal(t, 1, count)
	})
}

func TestSelectLevelsAscending(t *testing.T) {
	cases := map[string][]Level{
		"plain ladder":           SelectLevels(Temperature, Imperial, 41.3, 78.9),
		"freezing below range":   SelectLevels(Temperature, Metric, 5, 21),
		"freezing above range":   SelectLevels(Temperature, Imperial, -20, 10),
		"freezing inside ladder": SelectLevels(Temperature, Metric, -6, 6),
	}
	for name, levels := range cases {
		t.Run(name, func(t *testing.T) {
			require.NotEmpty(t, levels)
			for i := 1; i < len(levels); i++ {
				assert.Greater(t, levels[i].Value, levels[i-1].Value,
					"level %d out of order", i)
			}
		})
	}
}

func TestSelectLevelsFreezingStyle(t *testing.T) {
	levels := SelectLevels(Temperature, Metric, -6, 6)
	for _, l := range levels {
		switch {
		case math.Abs(l.Value) < levelEps:
			assert.Empty(t, l.Style.Dash, "freezing contour is solid")
			assert.Greater(t, l.Style.Width, 2.0, "freezing contour is heavier")
		case l.Value < 0:
			assert.Equal(t, belowFreezingColor, l.Style.Color)
			assert.NotEmpty(t, l.Style.Dash)
		default:
			assert.Equal(t, aboveFreezingColor, l.Style.Color)
			assert.NotEmpty(t, l.Style.Dash)
		}
	}
}

func TestSelectLevelsDewpointFloor(t *testing.T) {
	levels := SelectLevels(Dewpoint, Imperial, 20, 70)
	require.NotEmpty(t, levels)
	for _, l := range levels {
		assert.GreaterOrEqual(t, l.Value, 45.0)
		assert.Equal(t, dewpointColor, l.Style.Color)
	}
}

func TestSelectLevelsIsobarsAnchoredTo1000(t *testing.T) {
	levels := SelectLevels(Pressure, Metric, 993.4, 1019.7)
	bracket(t, levels, 993.4, 1019.7)

	for _, l := range levels {
		// Every isobar is base + k·step for integer k.
		k := (l.Value - isobarBase) / 4
		assert.InDelta(t, math.Round(k), k, levelEps, "level %v not anchored", l.Value)
		assert.Empty(t, l.Style.Dash, "isobars are solid")
	}
}

func TestLevelLabels(t *testing.T) {
	assert.Equal(t, "72°F", labelFor(Temperature, Imperial, 72.4))
	assert.Equal(t, "8°C", labelFor(Dewpoint, Metric, 8))
	assert.Equal(t, "1012 mb", labelFor(Pressure, Metric, 1012))
}

func hasLevel(levels []Level, v float64) bool {
	for _, l := range levels {
		if math.Abs(l.Value-v) < levelEps {
			return true
		}
	}
	return false
}
