package service

import (
	"context"
	"fmt"

	"roost/internal/domains/booking/model"
	"roost/internal/domains/booking/model/dto"
	resourceModel "roost/internal/domains/resource/model"
	"roost/shared"
	"roost/shared/constant"
	"roost/shared/failure"
	"roost/shared/timezone"
)

// Cancel applies the cancellation policy and then drives the ledger's cancel
// core. Ownership is checked before the notice window, so a stranger is
// refused before any timing rule applies; both checks are re-validated under
// the resource lock.
func (s *serviceImpl) Cancel(ctx context.Context, bookingID, actorID string) (res dto.CancelBookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return res, err
	}

	resource, err := s.resourceRepo.Get(ctx, shared.FilterByID(booking.ResourceID, resourceModel.FieldID, resourceModel.TableName))
	if err != nil {
		return res, fmt.Errorf("failed to get resource: %w", err)
	}

	if actorID != booking.GuestID && actorID != resource.OwnerID {
		return res, failure.Forbidden("only the booking guest or the resource owner can cancel") // nolint:wrapcheck
	}

	now := timezone.Now()

	if booking.Status == model.StatusConfirmed && now.Add(s.cancelNotice()).After(booking.CheckIn) {
		return res, failure.InvalidState("cancellation window has closed") // nolint:wrapcheck
	}

	// Informational only; the payment collaborator consumes this flag.
	refundEligible := !now.Add(s.refundNotice()).After(booking.CheckIn)

	cancelled, err := s.cancel(ctx, bookingID, actorID)
	if err != nil {
		return res, err
	}

	res = dto.CancelBookingResponse{
		ID:             cancelled.ID,
		Status:         cancelled.Status,
		RefundEligible: refundEligible,
	}

	return res, nil
}
