package projector

import (
	"time"

	"github.com/m04kA/fishery-booking/internal/domain"
)

// CurrentBooking текущее бронирование участника с вычисленным статусом
type CurrentBooking struct {
	Booking   *domain.Booking
	Status    domain.BookingStatus
	Remaining time.Duration
	Label     string // "Xh Ym", "N days" или "Expired"
}

// LakeOccupancy занятость одного озера на дату
type LakeOccupancy struct {
	Lake         domain.Lake
	Availability domain.Availability
}
