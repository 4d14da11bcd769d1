package get_booking

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/fishery-booking/internal/api/handlers"
	"github.com/m04kA/fishery-booking/internal/api/middleware"
	"github.com/m04kA/fishery-booking/internal/service/bookings"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgNotFound         = "бронирование не найдено"
	msgMissingMemberID  = "отсутствует ID участника"
	msgForbidden        = "доступ запрещен"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем bookingId из URL
	bookingID := strings.TrimSpace(mux.Vars(r)["bookingId"])
	if bookingID == "" {
		h.logger.Warn("GET /bookings/{id} - Invalid booking ID")
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	// Получаем memberID из контекста (через middleware Auth)
	memberID, ok := middleware.GetMemberID(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings/{id} - Missing member ID")
		handlers.RespondUnauthorized(w, msgMissingMemberID)
		return
	}

	booking, err := h.service.GetByID(r.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/{id} - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /bookings/{id} - Failed to get booking: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Участник видит только свои бронирования, чужие смотрят через админский список
	if booking.MemberID != memberID {
		h.logger.Warn("GET /bookings/{id} - Access denied: booking_id=%s, member_id=%s", bookingID, memberID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	h.logger.Info("GET /bookings/{id} - Booking retrieved successfully: booking_id=%s, member_id=%s",
		bookingID, memberID)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
