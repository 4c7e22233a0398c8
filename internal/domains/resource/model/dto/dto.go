package dto

import (
	"mime/multipart"
	"time"

	"roost/internal/domains/resource/model"
	"roost/shared"
	"roost/shared/constant"
	gDto "roost/shared/dto"
	gModel "roost/shared/model"
	"roost/shared/timezone"

	"github.com/google/uuid"
)

type CreateResourceRequest struct {
	Kind      string                `json:"kind"     validate:"required,oneof=room experience"`
	Name      string                `json:"name"     validate:"required,max=100"`
	Location  string                `json:"location" validate:"omitempty,max=100"`
	Capacity  int                   `json:"capacity" validate:"omitempty,min=0"`
	Image     *multipart.FileHeader `json:"image"    validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile multipart.File        `json:"-"`
	Active    *bool                 `json:"active"   validate:"omitempty"`
}

func (c *CreateResourceRequest) ToModel(owner string, imageURL string) model.Resource {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	capacity := c.Capacity
	if capacity < 1 {
		capacity = 1
	}

	return model.Resource{
		ID:       uuid.NewString(),
		OwnerID:  owner,
		Kind:     c.Kind,
		Name:     c.Name,
		Location: c.Location,
		Capacity: capacity,
		Image:    imageURL,
		Active:   active,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  owner,
			ModifiedBy: owner,
		},
	}
}

type UpdateResourceRequest struct {
	Name      string                `db:"name"     json:"name"                                                                 validate:"omitempty,max=100"`
	Location  string                `db:"location" json:"location"                                                             validate:"omitempty,max=100"`
	Capacity  *int                  `db:"capacity" json:"capacity"                                                             validate:"omitempty,min=1"`
	Image     *multipart.FileHeader `json:"image"  validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile multipart.File        `json:"-"`
	Active    *bool                 `db:"active"   json:"active"                                                               validate:"omitempty"`
}

type PublishSlotRequest struct {
	StartAt     string `json:"start_at"     validate:"required"`
	DurationMin int    `json:"duration_min" validate:"omitempty,min=1"`
}

func (p *PublishSlotRequest) ToModel(resourceID, user string) (model.ExperienceSlot, error) {
	startAt, err := time.Parse(constant.DateFormat, p.StartAt)
	if err != nil {
		return model.ExperienceSlot{}, err //nolint:wrapcheck
	}

	duration := p.DurationMin
	if duration < 1 {
		duration = constant.DefaultExperienceDurationMin
	}

	return model.ExperienceSlot{
		ID:          uuid.NewString(),
		ResourceID:  resourceID,
		StartAt:     startAt,
		DurationMin: duration,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type ResourceResponse struct {
	ID       string `json:"id"`
	OwnerID  string `json:"owner_id"`
	Kind     string `json:"kind"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Capacity int    `json:"capacity"`
	Image    string `json:"image"`
	Active   bool   `json:"active"`
	gDto.Metadata
}

func (r *ResourceResponse) FromModel(model model.Resource) {
	r.ID = model.ID
	r.OwnerID = model.OwnerID
	r.Kind = model.Kind
	r.Name = model.Name
	r.Location = model.Location
	r.Capacity = model.Capacity
	r.Image = model.Image
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetResourcesResponse struct {
	Resources []ResourceResponse `json:"resources"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetResourcesResponse) FromModels(models []model.Resource, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Resources = make([]ResourceResponse, len(models))
	for i, mod := range models {
		r.Resources[i].FromModel(mod)
	}
}

type SlotResponse struct {
	ID          string    `json:"id"`
	ResourceID  string    `json:"resource_id"`
	StartAt     time.Time `json:"start_at"`
	DurationMin int       `json:"duration_min"`
}

func (s *SlotResponse) FromModel(model model.ExperienceSlot) {
	s.ID = model.ID
	s.ResourceID = model.ResourceID
	s.StartAt = model.StartAt
	s.DurationMin = model.DurationMin
}

type GetSlotsResponse struct {
	Slots []SlotResponse `json:"slots"`
}

func (s *GetSlotsResponse) FromModels(models []model.ExperienceSlot) {
	s.Slots = make([]SlotResponse, len(models))
	for i, mod := range models {
		s.Slots[i].FromModel(mod)
	}
}
