package interval

import (
	"sort"
	"sync"
	"time"
)

// Interval is a half-open time range [Start, End).
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Overlaps reports whether two half-open intervals intersect.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// IsValid reports whether the interval is well formed (Start strictly before End).
func (i Interval) IsValid() bool {
	return i.Start.Before(i.End)
}

// Equal reports whether both endpoints match to the instant.
func (i Interval) Equal(other Interval) bool {
	return i.Start.Equal(other.Start) && i.End.Equal(other.End)
}

// Entry pairs a confirmed booking with its occupied interval.
type Entry struct {
	BookingID string
	Interval  Interval
}

// Index keeps, per resource, the intervals of confirmed bookings sorted by
// start time. The booking ledger is the sole mutator; it hydrates a resource's
// entries from the persisted store before first use and keeps them in step
// with every admit and cancel. Readers get consistent snapshots through the
// internal RWMutex.
type Index struct {
	mu         sync.RWMutex
	byResource map[string][]Entry
	hydrated   map[string]bool
}

func NewIndex() *Index {
	return &Index{
		byResource: make(map[string][]Entry),
		hydrated:   make(map[string]bool),
	}
}

// Overlapping returns the booking ids whose intervals intersect the given one,
// in start order. Entries are sorted by start, so the scan stops at the first
// entry starting at or after the interval's end. Entries starting earlier are
// scanned linearly; per-resource booking counts are small enough that this is
// the documented fallback over an interval tree.
func (x *Index) Overlapping(resourceID string, iv Interval) []string {
	x.mu.RLock()
	defer x.mu.RUnlock()

	entries := x.byResource[resourceID]
	hi := sort.Search(len(entries), func(i int) bool {
		return !entries[i].Interval.Start.Before(iv.End)
	})

	var ids []string
	for _, e := range entries[:hi] {
		if e.Interval.Overlaps(iv) {
			ids = append(ids, e.BookingID)
		}
	}

	return ids
}

// Insert adds a booking's interval, keeping the resource's entries sorted by
// start time.
func (x *Index) Insert(resourceID string, iv Interval, bookingID string) {
	x.mu.Lock()
	defer x.mu.Unlock()

	entries := x.byResource[resourceID]
	at := sort.Search(len(entries), func(i int) bool {
		return entries[i].Interval.Start.After(iv.Start)
	})

	entries = append(entries, Entry{})
	copy(entries[at+1:], entries[at:])
	entries[at] = Entry{BookingID: bookingID, Interval: iv}

	x.byResource[resourceID] = entries
}

// Remove drops the entry for the given booking. Removing an absent booking is
// a no-op.
func (x *Index) Remove(resourceID, bookingID string) {
	x.mu.Lock()
	defer x.mu.Unlock()

	entries := x.byResource[resourceID]
	for i, e := range entries {
		if e.BookingID == bookingID {
			x.byResource[resourceID] = append(entries[:i], entries[i+1:]...)

			return
		}
	}
}

// Hydrate installs a resource's entries and marks the resource warm. The
// first writer wins: once a resource is warm, later hydrations are no-ops.
// A slow loader carrying a stale store snapshot can therefore never erase
// entries admitted since its read. Entries need not arrive sorted.
func (x *Index) Hydrate(resourceID string, entries []Entry) {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Interval.Start.Before(sorted[j].Interval.Start)
	})

	x.mu.Lock()
	defer x.mu.Unlock()

	if x.hydrated[resourceID] {
		return
	}

	x.byResource[resourceID] = sorted
	x.hydrated[resourceID] = true
}

// Hydrated reports whether the resource's entries have been loaded from the
// store.
func (x *Index) Hydrated(resourceID string) bool {
	x.mu.RLock()
	defer x.mu.RUnlock()

	return x.hydrated[resourceID]
}

// Snapshot returns a copy of the resource's entries in start order.
func (x *Index) Snapshot(resourceID string) []Entry {
	x.mu.RLock()
	defer x.mu.RUnlock()

	entries := x.byResource[resourceID]
	snapshot := make([]Entry, len(entries))
	copy(snapshot, entries)

	return snapshot
}
