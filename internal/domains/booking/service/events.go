package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"roost/infras/kafka"
	"roost/internal/domains/booking/model"
	"roost/shared"
	"roost/shared/constant"
	"roost/shared/timezone"
)

// BookingEvent is the lifecycle message published after a booking reaches a
// durable state transition.
type BookingEvent struct {
	Type       string    `json:"type"`
	BookingID  string    `json:"booking_id"`
	ResourceID string    `json:"resource_id"`
	GuestID    string    `json:"guest_id"`
	CheckIn    time.Time `json:"check_in"`
	CheckOut   time.Time `json:"check_out"`
	At         time.Time `json:"at"`
}

func (s *serviceImpl) publishEvent(ctx context.Context, eventType string, booking model.Booking) {
	if !s.cfg.Kafka.Enable {
		return
	}

	event := BookingEvent{
		Type:       eventType,
		BookingID:  booking.ID,
		ResourceID: booking.ResourceID,
		GuestID:    booking.GuestID,
		CheckIn:    booking.CheckIn,
		CheckOut:   booking.CheckOut,
		At:         timezone.Now(),
	}

	go func() {
		c := context.WithoutCancel(ctx)

		message := kafka.Message{Key: booking.ID, Value: event}
		if err := s.kafka.SendMessages(c, constant.KafkaTopicBookingEvents, message); err != nil {
			log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to publish booking event")
		}
	}()
}

func (s *serviceImpl) invalidateBookingCaches(ctx context.Context, resourceID, guestID string) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, shared.BuildCacheKey(cacheResourceBookings, resourceID))
		shared.InvalidateCaches(c, s.cache, shared.BuildCacheKey(cacheGuestBookings, guestID))
	}()
}
