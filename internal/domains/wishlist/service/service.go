package service

import (
	"context"
	"fmt"

	"roost/config"
	"roost/infras/otel"
	resourceModel "roost/internal/domains/resource/model"
	resourceRepo "roost/internal/domains/resource/repository"
	"roost/internal/domains/wishlist/model"
	"roost/internal/domains/wishlist/model/dto"
	"roost/internal/domains/wishlist/repository"
	"roost/shared"
	"roost/shared/cache"
	"roost/shared/constant"
	gDto "roost/shared/dto"
	"roost/shared/failure"
	gModel "roost/shared/model"
	"roost/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetWishlist    = "wishlist:get"
	cacheGetAllWishlist = "wishlist:gets"
	cacheCountWishlist  = "wishlist:count"
)

type Wishlist interface {
	Create(ctx context.Context, req dto.CreateWishlistRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams) (dto.GetWishlistsResponse, error)
	Get(ctx context.Context, id string) (dto.WishlistResponse, error)
	Update(ctx context.Context, req dto.UpdateWishlistRequest, id string) error
	Delete(ctx context.Context, id string) error
	ToggleResource(ctx context.Context, wishlistID, resourceID string) (dto.ToggleResourceResponse, error)
}

type serviceImpl struct {
	repo         repository.Wishlist
	itemRepo     repository.Item
	resourceRepo resourceRepo.Resource
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(repo repository.Wishlist, itemRepo repository.Item, resourceRepo resourceRepo.Resource, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Wishlist {
	return &serviceImpl{
		repo:         repo,
		itemRepo:     itemRepo,
		resourceRepo: resourceRepo,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateWishlistRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = s.repo.Insert(ctx, req.ToModel(user)); err != nil {
		log.Error().Err(err).Msg("failed to create wishlist")

		return fmt.Errorf("failed to create wishlist: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllWishlist)
		shared.InvalidateCaches(c, s.cache, cacheCountWishlist)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams) (res dto.GetWishlistsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(user, model.FieldUserID, model.TableName)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllWishlist, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for wishlists")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count wishlists")

		return res, fmt.Errorf("failed to count wishlists: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get wishlists")

		return res, fmt.Errorf("failed to get wishlists: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save wishlists to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.WishlistResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	wishlist, err := s.getOwned(ctx, id, user)
	if err != nil {
		return res, err
	}

	cacheKey := shared.BuildCacheKey(cacheGetWishlist, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for wishlist")

		return res, nil
	}

	resourceIDs, err := s.itemRepo.ResourceIDs(ctx, wishlist.ID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get wishlist resources")

		return res, fmt.Errorf("failed to get wishlist resources: %w", err)
	}

	res.FromModel(wishlist, resourceIDs)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save wishlist to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateWishlistRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if _, err = s.getOwned(ctx, id, user); err != nil {
		return err
	}

	updatedFields := shared.TransformFields(req, user)
	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update wishlist")

		return fmt.Errorf("failed to update wishlist: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if _, err = s.getOwned(ctx, id, user); err != nil {
		return err
	}

	if err = s.itemRepo.Delete(ctx, shared.FilterByID(id, model.ItemFieldWishlistID, model.ItemTableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete wishlist resources")

		return fmt.Errorf("failed to delete wishlist resources: %w", err)
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete wishlist")

		return fmt.Errorf("failed to delete wishlist: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) ToggleResource(ctx context.Context, wishlistID, resourceID string) (res dto.ToggleResourceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ToggleResource")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	wishlist, err := s.getOwned(ctx, wishlistID, user)
	if err != nil {
		return res, err
	}

	resource, err := s.resourceRepo.Get(ctx, shared.FilterByID(resourceID, resourceModel.FieldID, resourceModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get resource")

		return res, fmt.Errorf("failed to get resource: %w", err)
	}

	if resource.ID == constant.Empty {
		return res, failure.ResourceNotFound("resource not found") // nolint:wrapcheck
	}

	itemFilter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.ItemFieldWishlistID,
				Operator: gDto.FilterOperatorEq,
				Value:    wishlist.ID,
				Table:    model.ItemTableName,
			},
			gDto.Filter{
				Field:    model.ItemFieldResourceID,
				Operator: gDto.FilterOperatorEq,
				Value:    resource.ID,
				Table:    model.ItemTableName,
			},
		},
	}

	saved, err := s.itemRepo.Exist(ctx, itemFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check wishlist resource")

		return res, fmt.Errorf("failed to check wishlist resource: %w", err)
	}

	if saved {
		if err = s.itemRepo.Delete(ctx, itemFilter); err != nil {
			log.Error().Err(err).Msg("failed to remove resource from wishlist")

			return res, fmt.Errorf("failed to remove resource from wishlist: %w", err)
		}
	} else {
		item := model.WishlistResource{
			ID:         uuid.NewString(),
			WishlistID: wishlist.ID,
			ResourceID: resource.ID,
			Metadata: gModel.Metadata{
				CreatedAt:  timezone.Now(),
				ModifiedAt: timezone.Now(),
				CreatedBy:  user,
				ModifiedBy: user,
			},
		}

		if err = s.itemRepo.Insert(ctx, item); err != nil {
			log.Error().Err(err).Msg("failed to add resource to wishlist")

			return res, fmt.Errorf("failed to add resource to wishlist: %w", err)
		}
	}

	s.invalidate(ctx, wishlist.ID)

	res = dto.ToggleResourceResponse{
		WishlistID: wishlist.ID,
		ResourceID: resource.ID,
		Saved:      !saved,
	}

	return res, nil
}

// getOwned loads a wishlist and hides it from everyone but its owner.
func (s *serviceImpl) getOwned(ctx context.Context, id, user string) (model.Wishlist, error) {
	wishlist, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get wishlist")

		return wishlist, fmt.Errorf("failed to get wishlist: %w", err)
	}

	if wishlist.ID == constant.Empty || wishlist.UserID != user {
		return wishlist, failure.NotFound("wishlist not found") // nolint:wrapcheck
	}

	return wishlist, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetWishlist, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete wishlist cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllWishlist)
		shared.InvalidateCaches(c, s.cache, cacheCountWishlist)
	}()
}
