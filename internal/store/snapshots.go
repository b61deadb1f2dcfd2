// Package store keeps recent observation snapshots in memory so the API can
// serve the latest analysis and step backward through the last few hours.
package store

import (
	"errors"
	"sync"
	"time"

	"github.com/mesowx/mesoanalysis/internal/domain"
)

// ErrNoSnapshot is returned when the history holds nothing usable.
var ErrNoSnapshot = errors.New("no snapshot available")

// Snapshot is one complete fetch cycle: every observation decoded at Time.
type Snapshot struct {
	Time         time.Time            `json:"time"`
	Observations []domain.Observation `json:"observations"`
}

// History is a concurrency-safe ring of snapshots ordered oldest to newest.
// Retention is enforced on insert by count and by age.
type History struct {
	mu sync.RWMutex

	snapshots []Snapshot

	maxItems int           // max snapshots kept; <= 0 means unlimited
	maxAge   time.Duration // max snapshot age; <= 0 disables the age check
}

// NewHistory creates an empty history with the given retention limits.
func NewHistory(maxItems int, maxAge time.Duration) *History {
	return &History{
		maxItems: maxItems,
		maxAge:   maxAge,
	}
}

// Add appends a snapshot and enforces retention. Snapshots are expected to
// arrive in time order; Add does not sort.
func (h *History) Add(snap Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.snapshots = append(h.snapshots, snap)

	if h.maxItems > 0 && len(h.snapshots) > h.maxItems {
		over := len(h.snapshots) - h.maxItems
		h.snapshots = h.snapshots[over:]
	}

	if h.maxAge > 0 {
		cutoff := domain.TimeNow().Add(-h.maxAge)
		i := 0
		for ; i < len(h.snapshots); i++ {
			if !h.snapshots[i].Time.Before(cutoff) {
				break
			}
		}
		if i > 0 {
			h.snapshots = h.snapshots[i:]
		}
	}
}

// Latest returns the most recent snapshot.
func (h *History) Latest() (Snapshot, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.snapshots) == 0 {
		return Snapshot{}, ErrNoSnapshot
	}
	return h.snapshots[len(h.snapshots)-1], nil
}

// Times lists the snapshot times currently held, oldest first. A positive
// window restricts the listing to snapshots at most that old.
func (h *History) Times(window time.Duration) []time.Time {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var cutoff time.Time
	if window > 0 {
		cutoff = domain.TimeNow().Add(-window)
	}

	times := make([]time.Time, 0, len(h.snapshots))
	for _, snap := range h.snapshots {
		if window > 0 && snap.Time.Before(cutoff) {
			continue
		}
		times = append(times, snap.Time)
	}
	return times
}

// At returns the snapshot closest in time to target. Ties go to the earlier
// snapshot.
func (h *History) At(target time.Time) (Snapshot, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.snapshots) == 0 {
		return Snapshot{}, ErrNoSnapshot
	}

	best := h.snapshots[0]
	bestDist := absDuration(best.Time.Sub(target))
	for _, snap := range h.snapshots[1:] {
		if d := absDuration(snap.Time.Sub(target)); d < bestDist {
			best = snap
			bestDist = d
		}
	}
	return best, nil
}

// Len reports the number of snapshots currently retained.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.snapshots)
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
