package dto

import (
	"time"

	"github.com/google/uuid"

	"roost/internal/domains/booking/interval"
	"roost/internal/domains/booking/model"
	resourceModel "roost/internal/domains/resource/model"
	"roost/shared"
	"roost/shared/constant"
	gModel "roost/shared/model"
	"roost/shared/timezone"
)

// CreateBookingRequest carries either a room stay (check_in/check_out dates,
// occupying [check_in, check_out) nights) or an experience attendance
// (start_at of a published slot).
type CreateBookingRequest struct {
	ResourceID string `json:"resource_id" validate:"required"`
	CheckIn    string `json:"check_in"    validate:"omitempty"`
	CheckOut   string `json:"check_out"   validate:"omitempty"`
	StartAt    string `json:"start_at"    validate:"omitempty"`
}

// RequestedKind derives the booking kind from which fields the client filled.
func (c *CreateBookingRequest) RequestedKind() string {
	if c.StartAt != constant.Empty {
		return resourceModel.KindExperience
	}

	return resourceModel.KindRoom
}

// RoomInterval parses the date-only stay range. Dates are interpreted as UTC
// midnights so adjacent stays share a boundary instant without overlapping.
func (c *CreateBookingRequest) RoomInterval() (interval.Interval, error) {
	checkIn, err := time.ParseInLocation(constant.DateOnlyFormat, c.CheckIn, time.UTC)
	if err != nil {
		return interval.Interval{}, err //nolint:wrapcheck
	}

	checkOut, err := time.ParseInLocation(constant.DateOnlyFormat, c.CheckOut, time.UTC)
	if err != nil {
		return interval.Interval{}, err //nolint:wrapcheck
	}

	return interval.Interval{Start: checkIn, End: checkOut}, nil
}

// ExperienceStart parses the requested slot start instant.
func (c *CreateBookingRequest) ExperienceStart() (time.Time, error) {
	return time.Parse(constant.DateFormat, c.StartAt) //nolint:wrapcheck
}

// ToModel constructs a Pending booking for the given guest and interval. The
// ledger transitions it to Confirmed at admission.
func (c *CreateBookingRequest) ToModel(guestID, kind string, iv interval.Interval) model.Booking {
	return model.Booking{
		ID:         uuid.NewString(),
		ResourceID: c.ResourceID,
		GuestID:    guestID,
		Kind:       kind,
		CheckIn:    iv.Start,
		CheckOut:   iv.End,
		Status:     model.StatusPending,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  guestID,
			ModifiedBy: guestID,
		},
	}
}

type BookingResponse struct {
	ID         string    `json:"id"`
	ResourceID string    `json:"resource_id"`
	GuestID    string    `json:"guest_id"`
	Kind       string    `json:"kind"`
	CheckIn    time.Time `json:"check_in"`
	CheckOut   time.Time `json:"check_out"`
	Status     string    `json:"status"`
}

func (b *BookingResponse) FromModel(model model.Booking) {
	b.ID = model.ID
	b.ResourceID = model.ResourceID
	b.GuestID = model.GuestID
	b.Kind = model.Kind
	b.CheckIn = model.CheckIn
	b.CheckOut = model.CheckOut
	b.Status = model.Status
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (g *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	g.TotalData = totalData
	g.TotalPage = shared.CalculateTotalPage(totalData, limit)

	g.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		g.Bookings[i].FromModel(mod)
	}
}

type CancelBookingResponse struct {
	ID             string `json:"id"`
	Status         string `json:"status"`
	RefundEligible bool   `json:"refund_eligible"`
}

type AvailabilityResponse struct {
	Available             bool     `json:"available"`
	Reason                string   `json:"reason,omitempty"`
	ConflictingBookingIDs []string `json:"conflicting_booking_ids,omitempty"`
}
