package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesowx/mesoanalysis/internal/analysis"
	"github.com/mesowx/mesoanalysis/internal/domain"
)

func fp(v float64) *float64 { return &v }

func TestPressureCode(t *testing.T) {
	tests := []struct {
		pressure  float64
		estimated bool
		expected  string
	}{
		{1013.2, false, "132"},
		{998.7, false, "987"},
		{1000.0, false, "000"},
		{1024.8, false, "248"},
		{995.1, true, "951E"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, pressureCode(tc.pressure, tc.estimated), "pressure %v", tc.pressure)
	}
}

func TestDrawStationPlotFullModel(t *testing.T) {
	obs := domain.Observation{
		ID:          "KOKC",
		TempC:       22.0,
		DewpointC:   fp(14.0),
		PressureMb:  fp(1013.2),
		WindDirDeg:  fp(180.0),
		WindSpeedKt: fp(15.0),
		SkyLayers:   []domain.SkyLayer{{Cover: "BKN", BaseFt: fp(4000)}},
	}

	rec := &Recorder{}
	DrawStationPlot(rec, analysis.Pt{X: 100, Y: 100}, obs, analysis.Imperial, WindBarbs)

	assert.Equal(t, 1, rec.Count(OpWedge), "sky cover wedge")
	assert.Equal(t, 1, rec.Count(OpCircle), "station circle")
	assert.GreaterOrEqual(t, rec.Count(OpLine), 2, "wind staff and barbs")

	texts := rec.Texts()
	require.Len(t, texts, 3)
	assert.Equal(t, "72", texts[0], "temperature in °F")
	assert.Equal(t, "57", texts[1], "dewpoint in °F")
	assert.Equal(t, "132", texts[2], "coded pressure")
}

func TestDrawStationPlotSparseObservation(t *testing.T) {
	obs := domain.Observation{ID: "KBARE", TempC: 5}

	rec := &Recorder{}
	DrawStationPlot(rec, analysis.Pt{X: 10, Y: 10}, obs, analysis.Metric, WindBarbs)

	assert.Equal(t, 0, rec.Count(OpWedge), "clear sky draws no wedge")
	assert.Equal(t, 1, rec.Count(OpCircle))
	assert.Equal(t, 0, rec.Count(OpLine), "no wind reported")

	texts := rec.Texts()
	require.Len(t, texts, 1, "temperature only")
	assert.Equal(t, "5", texts[0])
}
