package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"roost/infras/otel"
	"roost/infras/postgres"
	"roost/internal/domains/wishlist/model"
	gDto "roost/shared/dto"
	gRepo "roost/shared/repository"
)

type Wishlist interface {
	Insert(ctx context.Context, model model.Wishlist) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Wishlist, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Wishlist, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type Item interface {
	Insert(ctx context.Context, model model.WishlistResource) error
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	ResourceIDs(ctx context.Context, wishlistID string) ([]string, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Wishlist]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Wishlist {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Wishlist](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

type itemRepositoryImpl struct {
	gRepo.Repository[model.WishlistResource]
	db   *postgres.Connection
	otel otel.Otel
}

func NewItem(db *postgres.Connection, otel otel.Otel) Item {
	return &itemRepositoryImpl{
		Repository: gRepo.NewRepository[model.WishlistResource](model.ItemEntityName, model.ItemTableName, model.ItemFieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// ResourceIDs lists the resources saved on a wishlist, oldest first.
func (repo *itemRepositoryImpl) ResourceIDs(ctx context.Context, wishlistID string) ([]string, error) {
	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.ItemFieldWishlistID,
				Value:    wishlistID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.ItemTableName,
			},
		},
	}

	params := gDto.QueryParams{
		SortBy:  model.FieldCreatedAt,
		SortDir: gDto.SortDirAsc,
	}

	items, err := repo.GetAll(ctx, params, filter)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ResourceID
	}

	return ids, nil
}
