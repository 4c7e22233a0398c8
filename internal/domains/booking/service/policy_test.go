package service_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"roost/internal/domains/booking/model"
	resourceModel "roost/internal/domains/resource/model"
	"roost/shared/failure"
	"roost/shared/timezone"
)

func confirmedBooking(checkIn time.Time) model.Booking {
	return model.Booking{
		ID:         "b-1",
		ResourceID: "room-1",
		GuestID:    "guest-1",
		Kind:       resourceModel.KindRoom,
		CheckIn:    checkIn,
		CheckOut:   checkIn.AddDate(0, 0, 2),
		Status:     model.StatusConfirmed,
	}
}

func TestBookingService_Cancel(t *testing.T) {
	room := testRoom()

	tests := []struct {
		name               string
		actorID            string
		setupMock          func(m *bookingServiceMocks)
		wantErr            bool
		wantCode           int
		wantKind           string
		wantRefundEligible bool
	}{
		{
			name:    "guest cancels well before check-in and is refund eligible",
			actorID: "guest-1",
			setupMock: func(m *bookingServiceMocks) {
				booking := confirmedBooking(futureDay(0))

				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booking, nil).
					AnyTimes()

				m.repo.EXPECT().
					ConfirmedForResource(gomock.Any(), booking.ResourceID).
					Return([]model.Booking{booking}, nil)

				m.resourceRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(room, nil).
					AnyTimes()

				m.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantRefundEligible: true,
		},
		{
			name:    "owner cancels on the guest's behalf",
			actorID: "owner-1",
			setupMock: func(m *bookingServiceMocks) {
				booking := confirmedBooking(futureDay(0))

				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booking, nil).
					AnyTimes()

				m.repo.EXPECT().
					ConfirmedForResource(gomock.Any(), booking.ResourceID).
					Return([]model.Booking{booking}, nil)

				m.resourceRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(room, nil).
					AnyTimes()

				m.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantRefundEligible: true,
		},
		{
			name:    "cancelling inside the refund window forfeits the refund",
			actorID: "guest-1",
			setupMock: func(m *bookingServiceMocks) {
				booking := confirmedBooking(timezone.Now().Add(48 * time.Hour))

				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booking, nil).
					AnyTimes()

				m.repo.EXPECT().
					ConfirmedForResource(gomock.Any(), booking.ResourceID).
					Return([]model.Booking{booking}, nil)

				m.resourceRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(room, nil).
					AnyTimes()

				m.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantRefundEligible: false,
		},
		{
			name:    "cancellation window has closed",
			actorID: "guest-1",
			setupMock: func(m *bookingServiceMocks) {
				booking := confirmedBooking(timezone.Now().Add(2 * time.Hour))

				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booking, nil)

				m.resourceRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(room, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
			wantKind: failure.KindInvalidState,
		},
		{
			name:    "actor is neither guest nor owner",
			actorID: "stranger",
			setupMock: func(m *bookingServiceMocks) {
				booking := confirmedBooking(futureDay(0))

				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booking, nil)

				m.resourceRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(room, nil)
			},
			wantErr:  true,
			wantCode: http.StatusForbidden,
			wantKind: failure.KindForbidden,
		},
		{
			name:    "stranger is refused even when the window has closed",
			actorID: "stranger",
			setupMock: func(m *bookingServiceMocks) {
				booking := confirmedBooking(timezone.Now().Add(2 * time.Hour))

				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booking, nil)

				m.resourceRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(room, nil)
			},
			wantErr:  true,
			wantCode: http.StatusForbidden,
			wantKind: failure.KindForbidden,
		},
		{
			name:    "already cancelled booking cannot be cancelled again",
			actorID: "guest-1",
			setupMock: func(m *bookingServiceMocks) {
				booking := confirmedBooking(futureDay(0))
				booking.Status = model.StatusCancelled

				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booking, nil).
					AnyTimes()

				m.repo.EXPECT().
					ConfirmedForResource(gomock.Any(), booking.ResourceID).
					Return(nil, nil)

				m.resourceRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(room, nil).
					AnyTimes()
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
			wantKind: failure.KindInvalidState,
		},
		{
			name:    "unknown booking is not found",
			actorID: "guest-1",
			setupMock: func(m *bookingServiceMocks) {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			svc, m := newBookingService(t, nil)
			test.setupMock(m)

			res, err := svc.Cancel(context.Background(), "b-1", test.actorID)

			if test.wantErr {
				require.Error(t, err)
				assert.Equal(t, test.wantCode, failure.GetCode(err))
				assert.Equal(t, test.wantKind, failure.GetKind(err))
			} else {
				require.NoError(t, err)
				assert.Equal(t, model.StatusCancelled, res.Status)
				assert.Equal(t, test.wantRefundEligible, res.RefundEligible)
			}

			waitAsync()
		})
	}
}
