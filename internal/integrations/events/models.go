package events

import (
	"time"

	"github.com/m04kA/fishery-booking/internal/domain"
)

// Ключи маршрутизации в topic exchange
const (
	KeyBookingCreated    = "booking.created"
	KeyBookingCancelled  = "booking.cancelled"
	KeyBookingsCompleted = "booking.completed"
)

// BookingEvent сообщение о создании или отмене бронирования
type BookingEvent struct {
	BookingID  string    `json:"bookingId"`
	MemberID   string    `json:"memberId"`
	LakeID     string    `json:"lakeId"`
	StartAt    time.Time `json:"startAt"`
	EndAt      time.Time `json:"endAt"`
	OccurredAt time.Time `json:"occurredAt"`
}

// SweepEvent сообщение о переводе кэша статусов в completed
type SweepEvent struct {
	Completed  int       `json:"completed"`
	OccurredAt time.Time `json:"occurredAt"`
}

func NewBookingEvent(b *domain.Booking, at time.Time) BookingEvent {
	return BookingEvent{
		BookingID:  b.ID,
		MemberID:   b.MemberID,
		LakeID:     b.LakeID,
		StartAt:    b.StartAt,
		EndAt:      b.EndAt,
		OccurredAt: at.UTC(),
	}
}
