package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"roost/internal/domains/booking/availability"
	"roost/internal/domains/booking/interval"
	"roost/internal/domains/booking/lock"
	"roost/internal/domains/booking/model"
	"roost/internal/domains/booking/model/dto"
	resourceModel "roost/internal/domains/resource/model"
	"roost/shared"
	"roost/shared/constant"
	gDto "roost/shared/dto"
	"roost/shared/failure"
	"roost/shared/timezone"
)

// Create admits or rejects a booking request. The availability check, the
// index mutation and the persist run under the resource's admission lock so
// concurrent attempts on the same resource serialize; attempts on other
// resources proceed independently. Rejected attempts are discarded and
// logged, never persisted.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest, actorID string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
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

	if err = s.locks.Acquire(ctx, resource.ID, s.lockWait()); err != nil {
		if errors.Is(err, lock.ErrBusy) {
			return res, failure.Busy("resource is busy, retry shortly") // nolint:wrapcheck
		}

		return res, fmt.Errorf("failed to acquire admission lock: %w", err)
	}
	defer s.locks.Release(resource.ID)

	if err = s.ensureHydrated(ctx, resource.ID); err != nil {
		return res, err
	}

	// The admission decision is always made against the index state under
	// the lock; any check performed before acquisition is untrusted.
	result := s.checker.Check(resource, slots, kind, iv, timezone.Now())
	if !result.Available {
		log.Info().
			Str("resource_id", resource.ID).
			Str("guest_id", actorID).
			Time("check_in", iv.Start).
			Time("check_out", iv.End).
			Str("reason", string(result.Reason)).
			Msg("booking attempt rejected")

		return res, admissionFailure(result)
	}

	booking := req.ToModel(actorID, kind, iv)
	booking.Status = model.StatusConfirmed

	s.index.Insert(resource.ID, iv, booking.ID)

	if err = s.repo.Insert(ctx, booking); err != nil {
		// Compensate: the index must never run ahead of durable state.
		s.index.Remove(resource.ID, booking.ID)

		log.Error().Err(err).Str("resource_id", resource.ID).Msg("failed to persist booking")

		return res, fmt.Errorf("failed to persist booking: %w", err)
	}

	s.publishEvent(ctx, constant.BookingEventConfirmed, booking)
	s.invalidateBookingCaches(ctx, booking.ResourceID, booking.GuestID)

	res.FromModel(booking)

	return res, nil
}

// cancel is the ledger core shared by the cancellation policy. It re-reads
// the booking under the same per-resource lock used for creation, so a cancel
// and a create on one resource never interleave unsafely.
func (s *serviceImpl) cancel(ctx context.Context, bookingID, actorID string) (model.Booking, error) {
	booking, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return model.Booking{}, err
	}

	if err = s.locks.Acquire(ctx, booking.ResourceID, s.lockWait()); err != nil {
		if errors.Is(err, lock.ErrBusy) {
			return model.Booking{}, failure.Busy("resource is busy, retry shortly") // nolint:wrapcheck
		}

		return model.Booking{}, fmt.Errorf("failed to acquire admission lock: %w", err)
	}
	defer s.locks.Release(booking.ResourceID)

	if err = s.ensureHydrated(ctx, booking.ResourceID); err != nil {
		return model.Booking{}, err
	}

	// Re-read under the lock; the status may have moved since the unlocked read.
	booking, err = s.loadBooking(ctx, bookingID)
	if err != nil {
		return model.Booking{}, err
	}

	resource, err := s.resourceRepo.Get(ctx, shared.FilterByID(booking.ResourceID, resourceModel.FieldID, resourceModel.TableName))
	if err != nil {
		return model.Booking{}, fmt.Errorf("failed to get resource: %w", err)
	}

	if actorID != booking.GuestID && actorID != resource.OwnerID {
		return model.Booking{}, failure.Forbidden("only the booking guest or the resource owner can cancel") // nolint:wrapcheck
	}

	if booking.Status != model.StatusConfirmed {
		return model.Booking{}, failure.InvalidState("booking is not confirmed") // nolint:wrapcheck
	}

	updatedFields := map[string]any{
		model.FieldStatus:        model.StatusCancelled,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: actorID,
	}

	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(bookingID, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to cancel booking")

		return model.Booking{}, fmt.Errorf("failed to cancel booking: %w", err)
	}

	s.index.Remove(booking.ResourceID, bookingID)

	booking.Status = model.StatusCancelled

	s.publishEvent(ctx, constant.BookingEventCancelled, booking)
	s.invalidateBookingCaches(ctx, booking.ResourceID, booking.GuestID)

	return booking, nil
}

func (s *serviceImpl) resolveResource(ctx context.Context, resourceID string) (resourceModel.Resource, error) {
	resource, err := s.resourceRepo.Get(ctx, shared.FilterByID(resourceID, resourceModel.FieldID, resourceModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("resource_id", resourceID).Msg("failed to get resource")

		return resource, fmt.Errorf("failed to get resource: %w", err)
	}

	if resource.ID == constant.Empty || !resource.Active {
		return resource, failure.ResourceNotFound("resource not found") // nolint:wrapcheck
	}

	return resource, nil
}

// requestedInterval builds the candidate interval from the request and, for
// experiences, loads the published schedule the checker validates against.
func (s *serviceImpl) requestedInterval(ctx context.Context, req dto.CreateBookingRequest, resource resourceModel.Resource, kind string) (interval.Interval, []resourceModel.ExperienceSlot, error) {
	var slots []resourceModel.ExperienceSlot

	if resource.Kind == resourceModel.KindExperience {
		var err error

		slots, err = s.slotRepo.GetAll(ctx,
			gDto.QueryParams{SortBy: resourceModel.SlotFieldStartAt, SortDir: gDto.SortDirAsc},
			shared.FilterByID(resource.ID, resourceModel.SlotFieldResourceID, resourceModel.SlotTableName),
		)
		if err != nil {
			return interval.Interval{}, nil, fmt.Errorf("failed to load published slots: %w", err)
		}
	}

	if kind == resourceModel.KindExperience {
		start, err := req.ExperienceStart()
		if err != nil {
			return interval.Interval{}, slots, failure.Unprocessable(failure.KindMalformedInterval, "invalid start_at format") // nolint:wrapcheck
		}

		return slotInterval(slots, start), slots, nil
	}

	iv, err := req.RoomInterval()
	if err != nil {
		return interval.Interval{}, slots, failure.Unprocessable(failure.KindMalformedInterval, "invalid check_in/check_out date format") // nolint:wrapcheck
	}

	return iv, slots, nil
}

// slotInterval resolves the requested start against the published schedule.
// An unmatched start falls back to the default duration; the checker then
// rejects it as not published.
func slotInterval(slots []resourceModel.ExperienceSlot, start time.Time) interval.Interval {
	for _, slot := range slots {
		if slot.StartAt.Equal(start) {
			return interval.Interval{Start: slot.StartAt, End: slot.End()}
		}
	}

	return interval.Interval{Start: start, End: start.Add(constant.DefaultExperienceDurationMin * time.Minute)}
}

func (s *serviceImpl) loadBooking(ctx context.Context, bookingID string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(bookingID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return booking, nil
}

// ensureHydrated lazily warms the interval index from the persisted store.
// Mutation paths call it under the resource's admission lock; the read-only
// preview calls it without one, which is safe because Index.Hydrate is
// first-writer-wins and cannot displace a warm index.
func (s *serviceImpl) ensureHydrated(ctx context.Context, resourceID string) error {
	if s.index.Hydrated(resourceID) {
		return nil
	}

	confirmed, err := s.repo.ConfirmedForResource(ctx, resourceID)
	if err != nil {
		return fmt.Errorf("failed to hydrate interval index: %w", err)
	}

	entries := make([]interval.Entry, len(confirmed))
	for i, booking := range confirmed {
		entries[i] = interval.Entry{BookingID: booking.ID, Interval: booking.Interval()}
	}

	s.index.Hydrate(resourceID, entries)

	return nil
}

func admissionFailure(result availability.Result) error {
	switch result.Reason {
	case availability.ReasonMalformedInterval:
		return failure.Unprocessable(failure.KindMalformedInterval, "check_in must be strictly before check_out") // nolint:wrapcheck
	case availability.ReasonPastCheckIn:
		return failure.Unprocessable(failure.KindMalformedInterval, "check_in must not be in the past") // nolint:wrapcheck
	case availability.ReasonOutOfHorizon:
		return failure.Unprocessable(failure.KindOutOfHorizon, "check_in is beyond the booking horizon") // nolint:wrapcheck
	case availability.ReasonKindMismatch:
		return failure.Unprocessable(failure.KindResourceKindMismatch, "requested booking kind does not match the resource") // nolint:wrapcheck
	case availability.ReasonSlotNotPublished:
		return failure.Unprocessable(failure.KindSlotNotPublished, "requested slot is not in the published schedule") // nolint:wrapcheck
	case availability.ReasonOverlap:
		return failure.ConflictWithBookings("requested interval overlaps confirmed bookings", result.ConflictingBookingIDs) // nolint:wrapcheck
	default:
		return failure.InternalError(errors.New("unexpected availability result")) // nolint:wrapcheck
	}
}
