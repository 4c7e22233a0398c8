package availability

import (
	"time"

	"roost/internal/domains/booking/interval"
	resourceModel "roost/internal/domains/resource/model"
)

// Reason classifies why an interval is not available. Callers translate
// reasons into user-facing errors; the checker never constructs errors itself.
type Reason string

const (
	ReasonNone              Reason = ""
	ReasonMalformedInterval Reason = "malformed_interval"
	ReasonPastCheckIn       Reason = "past_check_in"
	ReasonOutOfHorizon      Reason = "out_of_horizon"
	ReasonKindMismatch      Reason = "resource_kind_mismatch"
	ReasonSlotNotPublished  Reason = "slot_not_published"
	ReasonOverlap           Reason = "overlap"
)

type Result struct {
	Available             bool
	Reason                Reason
	ConflictingBookingIDs []string
}

func available() Result {
	return Result{Available: true}
}

func unavailable(reason Reason) Result {
	return Result{Reason: reason}
}

// Checker validates a candidate interval against policy rules and the
// confirmed-interval index. It only reads the index; the ledger owns all
// mutation. Outside the ledger's admission path the same Check serves
// lock-free availability previews, where a slightly stale snapshot is fine.
type Checker struct {
	index            *interval.Index
	horizonMonths    int
	allowPastCheckIn bool
}

func NewChecker(index *interval.Index, horizonMonths int, allowPastCheckIn bool) *Checker {
	return &Checker{
		index:            index,
		horizonMonths:    horizonMonths,
		allowPastCheckIn: allowPastCheckIn,
	}
}

// Check answers whether the interval can be admitted for the resource.
// The requested kind must match the resource's kind; experience intervals
// must equal a published slot. Rooms always have capacity 1; experiences
// admit up to the resource's capacity per overlapping range.
func (c *Checker) Check(resource resourceModel.Resource, slots []resourceModel.ExperienceSlot, kind string, iv interval.Interval, now time.Time) Result {
	if !iv.IsValid() {
		return unavailable(ReasonMalformedInterval)
	}

	if kind != resource.Kind {
		return unavailable(ReasonKindMismatch)
	}

	if !c.allowPastCheckIn && iv.Start.Before(now) {
		return unavailable(ReasonPastCheckIn)
	}

	if c.horizonMonths > 0 && iv.Start.After(now.AddDate(0, c.horizonMonths, 0)) {
		return unavailable(ReasonOutOfHorizon)
	}

	if resource.Kind == resourceModel.KindExperience && !slotPublished(slots, iv) {
		return unavailable(ReasonSlotNotPublished)
	}

	conflicting := c.index.Overlapping(resource.ID, iv)
	if len(conflicting) >= c.capacity(resource) {
		res := unavailable(ReasonOverlap)
		res.ConflictingBookingIDs = conflicting

		return res
	}

	return available()
}

func (c *Checker) capacity(resource resourceModel.Resource) int {
	if resource.Kind != resourceModel.KindExperience {
		return 1
	}

	if resource.Capacity < 1 {
		return 1
	}

	return resource.Capacity
}

func slotPublished(slots []resourceModel.ExperienceSlot, iv interval.Interval) bool {
	for _, slot := range slots {
		published := interval.Interval{Start: slot.StartAt, End: slot.End()}
		if published.Equal(iv) {
			return true
		}
	}

	return false
}
