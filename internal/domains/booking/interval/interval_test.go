package interval

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(d int) time.Time {
	return time.Date(2024, time.July, d, 0, 0, 0, 0, time.UTC)
}

func span(start, end int) Interval {
	return Interval{Start: day(start), End: day(end)}
}

func TestIntervalOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		a        Interval
		b        Interval
		expected bool
	}{
		{
			name:     "identical intervals overlap",
			a:        span(1, 3),
			b:        span(1, 3),
			expected: true,
		},
		{
			name:     "partial overlap",
			a:        span(1, 4),
			b:        span(3, 6),
			expected: true,
		},
		{
			name:     "containment",
			a:        span(1, 10),
			b:        span(4, 5),
			expected: true,
		},
		{
			name:     "back to back intervals do not overlap",
			a:        span(1, 3),
			b:        span(3, 5),
			expected: false,
		},
		{
			name:     "disjoint intervals do not overlap",
			a:        span(1, 2),
			b:        span(5, 6),
			expected: false,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, test.a.Overlaps(test.b))
			assert.Equal(t, test.expected, test.b.Overlaps(test.a))
		})
	}
}

func TestIntervalIsValid(t *testing.T) {
	assert.True(t, span(1, 2).IsValid())
	assert.False(t, span(2, 2).IsValid())
	assert.False(t, span(3, 2).IsValid())
}

func TestIndexInsertKeepsStartOrder(t *testing.T) {
	index := NewIndex()

	index.Insert("res-1", span(10, 12), "b3")
	index.Insert("res-1", span(1, 3), "b1")
	index.Insert("res-1", span(5, 7), "b2")

	entries := index.Snapshot("res-1")

	assert.Len(t, entries, 3)
	assert.Equal(t, "b1", entries[0].BookingID)
	assert.Equal(t, "b2", entries[1].BookingID)
	assert.Equal(t, "b3", entries[2].BookingID)
}

func TestIndexOverlapping(t *testing.T) {
	index := NewIndex()
	index.Insert("res-1", span(1, 3), "b1")
	index.Insert("res-1", span(3, 5), "b2")
	index.Insert("res-1", span(8, 10), "b3")

	tests := []struct {
		name       string
		resourceID string
		iv         Interval
		expected   []string
	}{
		{
			name:       "spanning request hits both early bookings",
			resourceID: "res-1",
			iv:         span(2, 4),
			expected:   []string{"b1", "b2"},
		},
		{
			name:       "adjacent request is free",
			resourceID: "res-1",
			iv:         span(5, 8),
			expected:   nil,
		},
		{
			name:       "request inside late booking",
			resourceID: "res-1",
			iv:         span(8, 9),
			expected:   []string{"b3"},
		},
		{
			name:       "unknown resource has no conflicts",
			resourceID: "res-unknown",
			iv:         span(1, 30),
			expected:   nil,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, index.Overlapping(test.resourceID, test.iv))
		})
	}
}

func TestIndexRemove(t *testing.T) {
	index := NewIndex()
	index.Insert("res-1", span(1, 3), "b1")
	index.Insert("res-1", span(5, 7), "b2")

	index.Remove("res-1", "b1")

	assert.Empty(t, index.Overlapping("res-1", span(1, 3)))
	assert.Equal(t, []string{"b2"}, index.Overlapping("res-1", span(5, 7)))

	// Removing twice is harmless.
	index.Remove("res-1", "b1")
	assert.Len(t, index.Snapshot("res-1"), 1)
}

func TestIndexHydrate(t *testing.T) {
	index := NewIndex()

	assert.False(t, index.Hydrated("res-1"))

	index.Hydrate("res-1", []Entry{
		{BookingID: "b2", Interval: span(5, 7)},
		{BookingID: "b1", Interval: span(1, 3)},
	})

	assert.True(t, index.Hydrated("res-1"))

	entries := index.Snapshot("res-1")
	assert.Equal(t, "b1", entries[0].BookingID)
	assert.Equal(t, "b2", entries[1].BookingID)

	// A warm resource ignores later hydrations.
	index.Hydrate("res-1", []Entry{{BookingID: "b9", Interval: span(20, 22)}})

	assert.Empty(t, index.Overlapping("res-1", span(19, 23)))
	assert.Equal(t, []string{"b1"}, index.Overlapping("res-1", span(1, 3)))
}

func TestIndexStaleHydrateKeepsAdmittedEntries(t *testing.T) {
	index := NewIndex()

	// A lock-free reader captured the store before any booking existed.
	stale := index.Snapshot("res-1")

	// The admission path warms the resource and admits a booking.
	index.Hydrate("res-1", nil)
	index.Insert("res-1", span(1, 3), "b1")

	// The slow reader's hydration lands afterwards with its stale snapshot.
	index.Hydrate("res-1", stale)

	assert.True(t, index.Hydrated("res-1"))
	assert.Equal(t, []string{"b1"}, index.Overlapping("res-1", span(1, 3)))
}
