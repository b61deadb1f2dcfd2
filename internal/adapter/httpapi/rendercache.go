package httpapi

import (
	"sync"
	"time"
)

// renderCache is a thread-safe LRU cache for rendered PNGs. Entries are keyed
// by the full render request plus the snapshot time, so a refresh naturally
// invalidates stale images.
type renderCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*cacheEntry
	head       *cacheEntry // most recently used
	tail       *cacheEntry // least recently used
}

type cacheEntry struct {
	key  string
	png  []byte
	prev *cacheEntry
	next *cacheEntry
}

func newRenderCache(maxEntries int) *renderCache {
	return &renderCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*cacheEntry),
	}
}

// cacheKey builds the lookup key from the normalized request and the snapshot
// the image would be rendered from.
func cacheKey(query string, snapTime time.Time) string {
	return snapTime.UTC().Format(time.RFC3339) + "|" + query
}

func (c *renderCache) get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.moveToFront(e)
	return e.png, true
}

func (c *renderCache) put(key string, png []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.png = png
		c.moveToFront(e)
		return
	}

	e := &cacheEntry{key: key, png: png}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *renderCache) moveToFront(e *cacheEntry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *renderCache) addToFront(e *cacheEntry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *renderCache) remove(e *cacheEntry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *renderCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
