package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRefresher struct {
	calls atomic.Int64
	err   error
}

func (r *countingRefresher) Refresh(_ context.Context) error {
	r.calls.Add(1)
	return r.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestStart_RunsImmediateRefresh(t *testing.T) {
	r := &countingRefresher{}
	s := New(r, 5*time.Minute, time.Second, testLogger())
	defer s.Stop()

	require.NoError(t, s.Start())
	assert.Equal(t, int64(1), r.calls.Load(), "first refresh runs synchronously on start")
}

func TestStart_RefreshErrorDoesNotAbortStart(t *testing.T) {
	r := &countingRefresher{err: errors.New("upstream down")}
	s := New(r, 5*time.Minute, time.Second, testLogger())
	defer s.Stop()

	require.NoError(t, s.Start())
	assert.Equal(t, int64(1), r.calls.Load())
}
