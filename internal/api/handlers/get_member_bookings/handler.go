package get_member_bookings

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/fishery-booking/internal/api/handlers"
	"github.com/m04kA/fishery-booking/internal/api/middleware"
)

const (
	msgInvalidMemberID = "некорректный ID участника"
	msgMissingMemberID = "отсутствует ID участника"
	msgForbidden       = "доступ запрещен"
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

// Handle GET /api/v1/members/{memberId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем memberId из URL
	memberID := strings.TrimSpace(mux.Vars(r)["memberId"])
	if memberID == "" {
		h.logger.Warn("GET /members/{memberId}/bookings - Invalid member ID")
		handlers.RespondBadRequest(w, msgInvalidMemberID)
		return
	}

	requesterID, ok := middleware.GetMemberID(r.Context())
	if !ok {
		h.logger.Warn("GET /members/{memberId}/bookings - Missing member ID")
		handlers.RespondUnauthorized(w, msgMissingMemberID)
		return
	}
	if requesterID != memberID {
		h.logger.Warn("GET /members/{memberId}/bookings - Access denied: member_id=%s, requester_id=%s",
			memberID, requesterID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	result, err := h.service.GetMemberBookings(r.Context(), memberID)
	if err != nil {
		h.logger.Error("GET /members/{memberId}/bookings - Failed to get bookings: member_id=%s, error=%v",
			memberID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /members/{memberId}/bookings - Bookings retrieved successfully: member_id=%s, count=%d",
		memberID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
