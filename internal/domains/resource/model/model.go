package model

import (
	"time"

	"roost/shared/model"
)

const (
	TableName  = "resources"
	EntityName = "resource"

	FieldID       = "id"
	FieldOwnerID  = "owner_id"
	FieldKind     = "kind"
	FieldName     = "name"
	FieldLocation = "location"
	FieldCapacity = "capacity"
	FieldImage    = "image"
	FieldActive   = "active"
)

const (
	SlotTableName  = "experience_slots"
	SlotEntityName = "experience_slot"

	SlotFieldID         = "id"
	SlotFieldResourceID = "resource_id"
	SlotFieldStartAt    = "start_at"
)

// Resource kinds. A room is booked per night; an experience is booked per
// published slot.
const (
	KindRoom       = "room"
	KindExperience = "experience"
)

type Resource struct {
	ID       string `db:"id"`
	OwnerID  string `db:"owner_id"`
	Kind     string `db:"kind"`
	Name     string `db:"name"`
	Location string `db:"location"`
	Capacity int    `db:"capacity"`
	Image    string `db:"image"`
	Active   bool   `db:"active"`
	model.Metadata
}

// ExperienceSlot is one entry of an experience resource's published schedule.
type ExperienceSlot struct {
	ID          string    `db:"id"`
	ResourceID  string    `db:"resource_id"`
	StartAt     time.Time `db:"start_at"`
	DurationMin int       `db:"duration_min"`
	model.Metadata
}

// End returns the exclusive end instant of the slot.
func (s ExperienceSlot) End() time.Time {
	return s.StartAt.Add(time.Duration(s.DurationMin) * time.Minute)
}
