package kafka

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesowx/mesoanalysis/internal/domain"
	"github.com/mesowx/mesoanalysis/internal/store"
)

func TestSerializeSnapshot(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	snap := store.Snapshot{
		Time: now,
		Observations: []domain.Observation{
			{ID: "KOKC", Lat: 35.3889, Lon: -97.6007, TempC: 21.0},
			{ID: "KDFW", Lat: 32.8968, Lon: -97.0380, TempC: 24.0},
		},
	}

	msg, err := serializeSnapshot(snap)
	require.NoError(t, err)

	assert.Equal(t, []byte("2026-03-01T12:00:00Z"), msg.Key)
	assert.Contains(t, string(msg.Value), `"id":"KOKC"`)
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "station_count", msg.Headers[0].Key)
	assert.Equal(t, []byte("2"), msg.Headers[0].Value)
}
