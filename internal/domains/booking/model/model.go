package model

import (
	"time"

	"roost/internal/domains/booking/interval"
	"roost/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID         = "id"
	FieldResourceID = "resource_id"
	FieldGuestID    = "guest_id"
	FieldKind       = "kind"
	FieldCheckIn    = "check_in"
	FieldCheckOut   = "check_out"
	FieldStatus     = "status"
	FieldCreatedAt  = "created_at"
)

// Booking statuses. Pending exists only between construction and the
// admission decision; Cancelled is terminal.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

type Booking struct {
	ID         string    `db:"id"`
	ResourceID string    `db:"resource_id"`
	GuestID    string    `db:"guest_id"`
	Kind       string    `db:"kind"`
	CheckIn    time.Time `db:"check_in"`
	CheckOut   time.Time `db:"check_out"`
	Status     string    `db:"status"`
	model.Metadata
}

// Interval returns the booking's occupancy as a half-open range
// [CheckIn, CheckOut).
func (b Booking) Interval() interval.Interval {
	return interval.Interval{Start: b.CheckIn, End: b.CheckOut}
}
