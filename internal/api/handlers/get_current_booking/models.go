package get_current_booking

import (
	"time"

	"github.com/m04kA/fishery-booking/internal/service/bookings/models"
	"github.com/m04kA/fishery-booking/internal/service/projector"
)

// CurrentBookingResponse карточка активного бронирования
type CurrentBookingResponse struct {
	Booking          *models.BookingResponse `json:"booking"`
	Status           string                  `json:"status"`
	RemainingSeconds int64                   `json:"remainingSeconds"`
	Remaining        string                  `json:"remaining"` // "14h 0m", "2 days"
}

func FromProjection(current *projector.CurrentBooking, now time.Time) *CurrentBookingResponse {
	return &CurrentBookingResponse{
		Booking:          models.FromDomainBooking(current.Booking, now),
		Status:           string(current.Status),
		RemainingSeconds: int64(current.Remaining / time.Second),
		Remaining:        current.Label,
	}
}
