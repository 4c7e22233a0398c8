package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"roost/internal/domains/booking/model"
	"roost/internal/domains/booking/model/dto"
	"roost/shared"
	"roost/shared/constant"
	gDto "roost/shared/dto"
	"roost/shared/timezone"
)

// FutureForResource lists a resource's future confirmed bookings ordered by
// check_in ascending. Lock-free read against the committed store; brief
// staleness relative to in-flight admissions is acceptable.
func (s *serviceImpl) FutureForResource(ctx context.Context, resourceID string, params gDto.QueryParams) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".FutureForResource")
	defer scope.End()
	defer scope.TraceIfError(err)

	params.SortBy = model.FieldCheckIn
	params.SortDir = gDto.SortDirAsc

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldResourceID,
				Value:    resourceID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				Value:    model.StatusConfirmed,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldCheckIn,
				Value:    timezone.Now(),
				Operator: gDto.FilterOperatorGreaterEq,
				Table:    model.TableName,
			},
		},
	}

	return s.listBookings(ctx, shared.BuildCacheKey(cacheResourceBookings, resourceID), params, filter)
}

// ForGuest lists the guest's own bookings, any status, newest first.
func (s *serviceImpl) ForGuest(ctx context.Context, actorID string, params gDto.QueryParams) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ForGuest")
	defer scope.End()
	defer scope.TraceIfError(err)

	params.SortBy = model.FieldCreatedAt
	params.SortDir = gDto.SortDirDesc

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldGuestID,
				Value:    actorID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}

	return s.listBookings(ctx, shared.BuildCacheKey(cacheGuestBookings, actorID), params, filter)
}

// CheckAvailability answers the read-only preview path. It takes no lock;
// index hydration is first-writer-wins and the admission decision in Create
// never trusts this result.
func (s *serviceImpl) CheckAvailability(ctx context.Context, req dto.CreateBookingRequest) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckAvailability")
	defer scope.End()
	defer scope.TraceIfError(err)

	resource, err := s.resolveResource(ctx, req.ResourceID)
	if err != nil {
		return res, err
	}

	kind := req.RequestedKind()

	iv, slots, err := s.requestedInterval(ctx, req, resource, kind)
	if err != nil {
		return res, err
	}

	if err = s.ensureHydrated(ctx, resource.ID); err != nil {
		return res, err
	}

	result := s.checker.Check(resource, slots, kind, iv, timezone.Now())

	res = dto.AvailabilityResponse{
		Available:             result.Available,
		Reason:                string(result.Reason),
		ConflictingBookingIDs: result.ConflictingBookingIDs,
	}

	return res, nil
}

func (s *serviceImpl) listBookings(ctx context.Context, cachePrefix string, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cachePrefix, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}
