package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoalescerCancelsPreviousGeneration(t *testing.T) {
	var c Coalescer

	ctx1, gen1 := c.Next(context.Background())
	require.NoError(t, ctx1.Err())

	ctx2, gen2 := c.Next(context.Background())
	assert.Greater(t, gen2, gen1)
	assert.Error(t, ctx1.Err(), "older generation must be cancelled")
	assert.NoError(t, ctx2.Err())
}

func TestCoalescerStale(t *testing.T) {
	var c Coalescer

	_, gen1 := c.Next(context.Background())
	assert.False(t, c.Stale(gen1))

	_, gen2 := c.Next(context.Background())
	assert.True(t, c.Stale(gen1), "superseded result must be dropped")
	assert.False(t, c.Stale(gen2))
}

func TestCoalescerInheritsParentCancellation(t *testing.T) {
	var c Coalescer

	parent, cancel := context.WithCancel(context.Background())
	ctx, _ := c.Next(parent)
	cancel()
	assert.Error(t, ctx.Err())
}
