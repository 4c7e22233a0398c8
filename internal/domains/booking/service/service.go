package service

import (
	"context"
	"time"

	"roost/config"
	"roost/infras/kafka"
	"roost/infras/otel"
	"roost/internal/domains/booking/availability"
	"roost/internal/domains/booking/interval"
	"roost/internal/domains/booking/lock"
	"roost/internal/domains/booking/model/dto"
	"roost/internal/domains/booking/repository"
	resourceRepo "roost/internal/domains/resource/repository"
	"roost/shared/cache"
	"roost/shared/constant"
	gDto "roost/shared/dto"
)

const (
	cacheResourceBookings = "booking:resource"
	cacheGuestBookings    = "booking:guest"
)

// Booking is the reservation engine surface. Create and Cancel serialize per
// resource; the query methods are lock-free reads. Actor ids are explicit
// parameters, never pulled from ambient context inside the engine.
type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest, actorID string) (dto.BookingResponse, error)
	Cancel(ctx context.Context, bookingID, actorID string) (dto.CancelBookingResponse, error)
	CheckAvailability(ctx context.Context, req dto.CreateBookingRequest) (dto.AvailabilityResponse, error)
	FutureForResource(ctx context.Context, resourceID string, params gDto.QueryParams) (dto.GetBookingsResponse, error)
	ForGuest(ctx context.Context, actorID string, params gDto.QueryParams) (dto.GetBookingsResponse, error)
}

type serviceImpl struct {
	repo         repository.Booking
	resourceRepo resourceRepo.Resource
	slotRepo     resourceRepo.Slot
	index        *interval.Index
	locks        *lock.Arena
	checker      *availability.Checker
	cfg          *config.Config
	cache        cache.RedisCache
	kafka        kafka.Client
	otel         otel.Otel
}

func New(
	repo repository.Booking,
	resourceRepo resourceRepo.Resource,
	slotRepo resourceRepo.Slot,
	cfg *config.Config,
	cache cache.RedisCache,
	kafkaClient kafka.Client,
	otl otel.Otel,
) Booking {
	index := interval.NewIndex()

	horizon := cfg.Booking.HorizonMonths
	if horizon <= 0 {
		horizon = constant.DefaultBookingHorizonMonths
	}

	return &serviceImpl{
		repo:         repo,
		resourceRepo: resourceRepo,
		slotRepo:     slotRepo,
		index:        index,
		locks:        lock.NewArena(),
		checker:      availability.NewChecker(index, horizon, cfg.Booking.AllowPastCheckIn),
		cfg:          cfg,
		cache:        cache,
		kafka:        kafkaClient,
		otel:         otl,
	}
}

func (s *serviceImpl) lockWait() time.Duration {
	millis := s.cfg.Booking.LockWaitMillis
	if millis <= 0 {
		millis = constant.DefaultLockWaitMillis
	}

	return time.Duration(millis) * time.Millisecond
}

func (s *serviceImpl) cancelNotice() time.Duration {
	hours := s.cfg.Booking.MinCancelNoticeHours
	if hours <= 0 {
		hours = constant.DefaultCancelNoticeHours
	}

	return time.Duration(hours) * time.Hour
}

func (s *serviceImpl) refundNotice() time.Duration {
	hours := s.cfg.Booking.RefundNoticeHours
	if hours <= 0 {
		hours = constant.DefaultRefundNoticeHours
	}

	return time.Duration(hours) * time.Hour
}
