package cancel_booking

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/fishery-booking/internal/api/handlers"
	"github.com/m04kA/fishery-booking/internal/api/middleware"
	"github.com/m04kA/fishery-booking/internal/service/bookings"
	"github.com/m04kA/fishery-booking/internal/service/bookings/models"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgMissingMemberID  = "отсутствует ID участника"
	msgNotFound         = "бронирование не найдено"
	msgForbidden        = "доступ запрещен"
)

type Handler struct {
	service   BookingService
	ownerOnly bool
	logger    Logger
}

// NewHandler для PATCH /api/v1/bookings/{bookingId}/cancel
// Участник отменяет только своё бронирование, на чужое отвечаем 403
func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service:   service,
		ownerOnly: true,
		logger:    logger,
	}
}

// NewAdminHandler для DELETE /api/v1/admin/bookings/{bookingId}
// Права администратора проверяются снаружи, владелец не сверяется
func NewAdminHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle отмена бронирования, для ядра оба маршрута одна операция
// Повторная отмена отвечает 200 с тем же бронированием
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	op := r.Method + " /bookings/{id}"

	// Извлекаем bookingId из URL
	bookingID := strings.TrimSpace(mux.Vars(r)["bookingId"])
	if bookingID == "" {
		h.logger.Warn("%s - Invalid booking ID", op)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	// Получаем ID инициатора из контекста (через middleware Auth)
	requesterID, ok := middleware.GetMemberID(r.Context())
	if !ok {
		h.logger.Warn("%s - Missing member ID", op)
		handlers.RespondUnauthorized(w, msgMissingMemberID)
		return
	}

	booking, err := h.service.Cancel(r.Context(), &models.CancelBookingRequest{
		BookingID:   bookingID,
		RequesterID: requesterID,
		OwnerOnly:   h.ownerOnly,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("%s - Booking not found: booking_id=%s", op, bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrForbidden):
			h.logger.Warn("%s - Access denied: booking_id=%s, requester_id=%s", op, bookingID, requesterID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("%s - Failed to cancel booking: booking_id=%s, error=%v", op, bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s - Booking cancelled: booking_id=%s, requester_id=%s", op, bookingID, requesterID)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
