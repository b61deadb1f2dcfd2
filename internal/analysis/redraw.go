package analysis

import (
	"context"
	"sync"
)

// Coalescer serializes redraw requests the way a single UI thread coalesces
// animation frames: each new request supersedes and cancels the previous
// in-flight generation, so only the most recently requested redraw for a
// trigger runs to completion. Field computation checks the returned context
// at cell boundaries and abandons superseded work; a fetch response arriving
// after its generation was cancelled must be discarded, not displayed.
type Coalescer struct {
	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
}

// Next cancels any in-flight generation and returns a context and generation
// number for the new one.
func (c *Coalescer) Next(parent context.Context) (context.Context, uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	c.gen++
	c.cancel = cancel
	return ctx, c.gen
}

// Current returns the latest generation number. A worker holding an older
// generation should drop its result.
func (c *Coalescer) Current() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen
}

// Stale reports whether gen has been superseded by a newer request.
func (c *Coalescer) Stale(gen uint64) bool {
	return c.Current() != gen
}
