package model

import "roost/shared/model"

const (
	TableName  = "wishlists"
	EntityName = "wishlist"

	FieldID        = "id"
	FieldUserID    = "user_id"
	FieldName      = "name"
	FieldCreatedAt = "created_at"

	ItemTableName  = "wishlist_resources"
	ItemEntityName = "wishlist_resource"

	ItemFieldID         = "id"
	ItemFieldWishlistID = "wishlist_id"
	ItemFieldResourceID = "resource_id"
)

type Wishlist struct {
	ID     string `db:"id"`
	UserID string `db:"user_id"`
	Name   string `db:"name"`
	model.Metadata
}

// WishlistResource pins a resource onto a wishlist. One row per saved resource.
type WishlistResource struct {
	ID         string `db:"id"`
	WishlistID string `db:"wishlist_id"`
	ResourceID string `db:"resource_id"`
	model.Metadata
}
