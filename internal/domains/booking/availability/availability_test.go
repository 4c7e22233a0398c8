package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"roost/internal/domains/booking/interval"
	resourceModel "roost/internal/domains/resource/model"
)

func day(d int) time.Time {
	return time.Date(2024, time.July, d, 0, 0, 0, 0, time.UTC)
}

func span(start, end int) interval.Interval {
	return interval.Interval{Start: day(start), End: day(end)}
}

func TestCheckerCheckRoom(t *testing.T) {
	now := day(1)
	room := resourceModel.Resource{ID: "room-1", Kind: resourceModel.KindRoom}

	tests := []struct {
		name           string
		iv             interval.Interval
		kind           string
		horizonMonths  int
		seed           []interval.Entry
		expectedResult Result
	}{
		{
			name:           "free interval is available",
			iv:             span(10, 12),
			kind:           resourceModel.KindRoom,
			horizonMonths:  12,
			expectedResult: Result{Available: true},
		},
		{
			name:           "empty interval is malformed",
			iv:             span(10, 10),
			kind:           resourceModel.KindRoom,
			horizonMonths:  12,
			expectedResult: Result{Reason: ReasonMalformedInterval},
		},
		{
			name:           "inverted interval is malformed",
			iv:             span(12, 10),
			kind:           resourceModel.KindRoom,
			horizonMonths:  12,
			expectedResult: Result{Reason: ReasonMalformedInterval},
		},
		{
			name:           "experience request against a room is a kind mismatch",
			iv:             span(10, 12),
			kind:           resourceModel.KindExperience,
			horizonMonths:  12,
			expectedResult: Result{Reason: ReasonKindMismatch},
		},
		{
			name:           "check in before now is rejected",
			iv:             interval.Interval{Start: day(1).Add(-time.Hour), End: day(2)},
			kind:           resourceModel.KindRoom,
			horizonMonths:  12,
			expectedResult: Result{Reason: ReasonPastCheckIn},
		},
		{
			name:           "check in beyond the horizon is rejected",
			iv:             interval.Interval{Start: now.AddDate(0, 2, 1), End: now.AddDate(0, 2, 3)},
			kind:           resourceModel.KindRoom,
			horizonMonths:  2,
			expectedResult: Result{Reason: ReasonOutOfHorizon},
		},
		{
			name:          "overlapping confirmed booking blocks the request",
			iv:            span(10, 13),
			kind:          resourceModel.KindRoom,
			horizonMonths: 12,
			seed:          []interval.Entry{{BookingID: "b1", Interval: span(12, 15)}},
			expectedResult: Result{
				Reason:                ReasonOverlap,
				ConflictingBookingIDs: []string{"b1"},
			},
		},
		{
			name:           "back to back with a confirmed booking is available",
			iv:             span(10, 12),
			kind:           resourceModel.KindRoom,
			horizonMonths:  12,
			seed:           []interval.Entry{{BookingID: "b1", Interval: span(12, 15)}},
			expectedResult: Result{Available: true},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			index := interval.NewIndex()
			index.Hydrate(room.ID, test.seed)

			checker := NewChecker(index, test.horizonMonths, false)

			result := checker.Check(room, nil, test.kind, test.iv, now)

			assert.Equal(t, test.expectedResult, result)
		})
	}
}

func TestCheckerCheckExperienceSlots(t *testing.T) {
	now := day(1)
	experience := resourceModel.Resource{ID: "exp-1", Kind: resourceModel.KindExperience, Capacity: 1}

	slotStart := day(10).Add(9 * time.Hour)
	slots := []resourceModel.ExperienceSlot{
		{ID: "slot-1", ResourceID: experience.ID, StartAt: slotStart, DurationMin: 90},
	}

	index := interval.NewIndex()
	checker := NewChecker(index, 12, false)

	published := interval.Interval{Start: slotStart, End: slotStart.Add(90 * time.Minute)}

	result := checker.Check(experience, slots, resourceModel.KindExperience, published, now)
	assert.True(t, result.Available)

	offSchedule := interval.Interval{Start: slotStart.Add(time.Hour), End: slotStart.Add(2 * time.Hour)}

	result = checker.Check(experience, slots, resourceModel.KindExperience, offSchedule, now)
	assert.Equal(t, ReasonSlotNotPublished, result.Reason)
}

func TestCheckerCheckExperienceCapacity(t *testing.T) {
	now := day(1)
	experience := resourceModel.Resource{ID: "exp-1", Kind: resourceModel.KindExperience, Capacity: 2}

	slotStart := day(10).Add(9 * time.Hour)
	slots := []resourceModel.ExperienceSlot{
		{ID: "slot-1", ResourceID: experience.ID, StartAt: slotStart, DurationMin: 60},
	}
	slotInterval := interval.Interval{Start: slotStart, End: slotStart.Add(time.Hour)}

	index := interval.NewIndex()
	checker := NewChecker(index, 12, false)

	// Two seats, so two admissions pass and the third conflicts.
	result := checker.Check(experience, slots, resourceModel.KindExperience, slotInterval, now)
	assert.True(t, result.Available)
	index.Insert(experience.ID, slotInterval, "b1")

	result = checker.Check(experience, slots, resourceModel.KindExperience, slotInterval, now)
	assert.True(t, result.Available)
	index.Insert(experience.ID, slotInterval, "b2")

	result = checker.Check(experience, slots, resourceModel.KindExperience, slotInterval, now)
	assert.False(t, result.Available)
	assert.Equal(t, ReasonOverlap, result.Reason)
	assert.ElementsMatch(t, []string{"b1", "b2"}, result.ConflictingBookingIDs)
}

func TestCheckerZeroCapacityFallsBackToOne(t *testing.T) {
	now := day(1)
	experience := resourceModel.Resource{ID: "exp-1", Kind: resourceModel.KindExperience}

	slotStart := day(5).Add(10 * time.Hour)
	slots := []resourceModel.ExperienceSlot{
		{ID: "slot-1", ResourceID: experience.ID, StartAt: slotStart, DurationMin: 60},
	}
	slotInterval := interval.Interval{Start: slotStart, End: slotStart.Add(time.Hour)}

	index := interval.NewIndex()
	index.Insert(experience.ID, slotInterval, "b1")

	checker := NewChecker(index, 12, false)

	result := checker.Check(experience, slots, resourceModel.KindExperience, slotInterval, now)

	assert.Equal(t, ReasonOverlap, result.Reason)
}
