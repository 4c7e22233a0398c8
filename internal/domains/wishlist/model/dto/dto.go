package dto

import (
	"github.com/google/uuid"
	"roost/internal/domains/wishlist/model"
	"roost/shared"
	gDto "roost/shared/dto"
	gModel "roost/shared/model"
	"roost/shared/timezone"
)

type CreateWishlistRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

func (c *CreateWishlistRequest) ToModel(user string) model.Wishlist {
	return model.Wishlist{
		ID:     uuid.NewString(),
		UserID: user,
		Name:   c.Name,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateWishlistRequest struct {
	Name string `db:"name" json:"name" validate:"required,max=100"`
}

type WishlistResponse struct {
	ID          string   `json:"id"`
	UserID      string   `json:"user_id"`
	Name        string   `json:"name"`
	ResourceIDs []string `json:"resource_ids"`
	gDto.Metadata
}

func (r *WishlistResponse) FromModel(model model.Wishlist, resourceIDs []string) {
	r.ID = model.ID
	r.UserID = model.UserID
	r.Name = model.Name
	r.ResourceIDs = resourceIDs
	r.Metadata.FromModel(model.Metadata)
}

type GetWishlistsResponse struct {
	Wishlists []WishlistResponse `json:"wishlists"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetWishlistsResponse) FromModels(models []model.Wishlist, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Wishlists = make([]WishlistResponse, len(models))
	for i, mod := range models {
		r.Wishlists[i].FromModel(mod, nil)
	}
}

type ToggleResourceResponse struct {
	WishlistID string `json:"wishlist_id"`
	ResourceID string `json:"resource_id"`
	Saved      bool   `json:"saved"`
}
