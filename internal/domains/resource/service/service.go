package service

import (
	"context"
	"fmt"
	"strings"

	"roost/config"
	"roost/infras/otel"
	"roost/infras/s3"
	"roost/internal/domains/resource/model"
	"roost/internal/domains/resource/model/dto"
	"roost/internal/domains/resource/repository"
	"roost/shared"
	"roost/shared/cache"
	"roost/shared/constant"
	gDto "roost/shared/dto"
	"roost/shared/failure"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetResource    = "resource:get"
	cacheGetAllResource = "resource:gets"
	cacheCountResource  = "resource:count"
	cacheGetSlots       = "resource:slots"
)

type Resource interface {
	Create(ctx context.Context, req dto.CreateResourceRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetResourcesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.ResourceResponse, error)
	Update(ctx context.Context, req dto.UpdateResourceRequest, id string) error
	Delete(ctx context.Context, id string) error
	PublishSlot(ctx context.Context, resourceID string, req dto.PublishSlotRequest) error
	GetSlots(ctx context.Context, resourceID string) (dto.GetSlotsResponse, error)
}

type serviceImpl struct {
	repo     repository.Resource
	slotRepo repository.Slot
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
	s3       s3.S3
}

func New(repo repository.Resource, slotRepo repository.Slot, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Resource {
	return &serviceImpl{
		repo:     repo,
		slotRepo: slotRepo,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
		s3:       s3,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateResourceRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	imageURL := constant.Empty
	var uploadedObjectName string
	if req.Image != nil {
		bucketName := s.cfg.External.S3.BucketName
		filename := uuid.NewString()

		// Get original extension
		parts := strings.Split(req.Image.Filename, ".")
		if len(parts) > 1 {
			filename = fmt.Sprintf("%s.%s", filename, parts[len(parts)-1])
		}

		url, err := s.s3.UploadFile(ctx, bucketName, model.EntityName, req.ImageFile, req.Image, filename)
		if err != nil {
			log.Error().Err(err).Msg("failed to upload image to S3")

			return fmt.Errorf("failed to upload image: %w", err)
		}
		imageURL = url
		uploadedObjectName = filename
	}

	if err = s.repo.Insert(ctx, req.ToModel(user, imageURL)); err != nil {
		if uploadedObjectName != constant.Empty {
			bucketName := s.cfg.External.S3.BucketName
			_ = s.s3.DeleteFile(ctx, bucketName, model.EntityName, uploadedObjectName)
		}

		return err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllResource)
		shared.InvalidateCaches(c, s.cache, cacheCountResource)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetResourcesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllResource, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for resources")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count resources")

		return res, fmt.Errorf("failed to count resources: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get resources")

		return res, fmt.Errorf("failed to get resources: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save resources to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountResource, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for resource count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count resources")

		return res, fmt.Errorf("failed to count resources: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save resource count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ResourceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetResource, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for resource")

		return res, nil
	}

	resource, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get resource")

		return res, fmt.Errorf("failed to get resource: %w", err)
	}

	if resource.ID == constant.Empty {
		return res, failure.ResourceNotFound("resource not found") // nolint:wrapcheck
	}

	res.FromModel(resource)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save resource to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateResourceRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check resource existence")

		return err
	}

	if current.ID == constant.Empty {
		log.Error().Msg("resource not found")

		return failure.ResourceNotFound("resource not found")
	}

	if err = s.requireOwner(ctx, current, user); err != nil {
		return err
	}

	return s.updateInternal(ctx, req, current, user, filter)
}

func (s *serviceImpl) updateInternal(ctx context.Context, req dto.UpdateResourceRequest, current model.Resource, user string, filter gDto.FilterGroup) error {
	imageURL := constant.Empty
	var uploadedObjectName string
	bucketName := s.cfg.External.S3.BucketName

	if req.Image != nil {
		filename := uuid.NewString()

		// Get original extension
		parts := strings.Split(req.Image.Filename, ".")
		if len(parts) > 1 {
			filename = fmt.Sprintf("%s.%s", filename, parts[len(parts)-1])
		}

		url, err := s.s3.UploadFile(ctx, bucketName, model.EntityName, req.ImageFile, req.Image, filename)
		if err != nil {
			return fmt.Errorf("failed to upload image: %w", err)
		}
		imageURL = url
		uploadedObjectName = filename
	}

	updatedFields := shared.TransformFields(req, user)
	if imageURL != constant.Empty {
		updatedFields[model.FieldImage] = imageURL
	}

	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update resource")

		// Cleanup: delete newly uploaded image if DB update fails
		if uploadedObjectName != constant.Empty {
			_ = s.s3.DeleteFile(ctx, bucketName, model.EntityName, uploadedObjectName)
		}

		return fmt.Errorf("failed to update resource: %w", err)
	}

	// Delete old image if update succeeded and new image was uploaded
	if imageURL != constant.Empty && current.Image != constant.Empty {
		oldObjectName := s.s3.GetObjectNameFromURL(bucketName, current.Image)
		if oldObjectName != constant.Empty {
			_ = s.s3.DeleteFile(ctx, bucketName, model.EntityName, oldObjectName)
		}
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetResource, current.ID)); err != nil {
			log.Error().Err(err).Msg("failed to delete resource cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllResource)
		shared.InvalidateCaches(c, s.cache, cacheCountResource)
	}()

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check resource existence")

		return fmt.Errorf("failed to check resource existence: %w", err)
	}

	if current.ID == constant.Empty {
		log.Error().Msg("resource not found")

		return failure.ResourceNotFound("resource not found") // nolint:wrapcheck
	}

	if err = s.requireOwner(ctx, current, user); err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete resource")

		return fmt.Errorf("failed to delete resource: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetResource, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete resource from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllResource)
		shared.InvalidateCaches(c, s.cache, cacheCountResource)
		shared.InvalidateCaches(c, s.cache, cacheGetSlots)
	}()

	return nil
}

func (s *serviceImpl) PublishSlot(ctx context.Context, resourceID string, req dto.PublishSlotRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".PublishSlot")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	resource, err := s.repo.Get(ctx, shared.FilterByID(resourceID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get resource")

		return fmt.Errorf("failed to get resource: %w", err)
	}

	if resource.ID == constant.Empty {
		return failure.ResourceNotFound("resource not found") // nolint:wrapcheck
	}

	if resource.Kind != model.KindExperience {
		return failure.Unprocessable(failure.KindResourceKindMismatch, "slots can only be published for experience resources") // nolint:wrapcheck
	}

	if err = s.requireOwner(ctx, resource, user); err != nil {
		return err
	}

	slot, err := req.ToModel(resourceID, user)
	if err != nil {
		return failure.BadRequestFromString(fmt.Sprintf("invalid start_at format: %v", err)) // nolint:wrapcheck
	}

	if err = s.slotRepo.Insert(ctx, slot); err != nil {
		log.Error().Err(err).Msg("failed to publish slot")

		return fmt.Errorf("failed to publish slot: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, shared.BuildCacheKey(cacheGetSlots, resourceID))
	}()

	return nil
}

func (s *serviceImpl) GetSlots(ctx context.Context, resourceID string) (res dto.GetSlotsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetSlots")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetSlots, resourceID)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for slots")

		return res, nil
	}

	slots, err := s.slotRepo.GetAll(ctx,
		gDto.QueryParams{SortBy: model.SlotFieldStartAt, SortDir: gDto.SortDirAsc},
		shared.FilterByID(resourceID, model.SlotFieldResourceID, model.SlotTableName),
	)
	if err != nil {
		log.Error().Err(err).Msg("failed to get slots")

		return res, fmt.Errorf("failed to get slots: %w", err)
	}

	res.FromModels(slots)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save slots to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) requireOwner(ctx context.Context, resource model.Resource, user string) error {
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	if role == constant.RoleAdmin || role == constant.RoleSuperAdmin {
		return nil
	}

	if resource.OwnerID != user {
		return failure.Forbidden("only the resource owner can modify this resource") // nolint:wrapcheck
	}

	return nil
}
