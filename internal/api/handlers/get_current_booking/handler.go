package get_current_booking

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/fishery-booking/internal/api/handlers"
	"github.com/m04kA/fishery-booking/internal/api/middleware"
	"github.com/m04kA/fishery-booking/internal/service/projector"
)

const (
	msgInvalidMemberID  = "некорректный ID участника"
	msgMissingMemberID  = "отсутствует ID участника"
	msgForbidden        = "доступ запрещен"
	msgNoCurrentBooking = "нет активного бронирования"
)

type Handler struct {
	service      ProjectorService
	timeProvider TimeProvider
	logger       Logger
}

func NewHandler(service ProjectorService, logger Logger) *Handler {
	return &Handler{
		service:      service,
		timeProvider: realTimeProvider{},
		logger:       logger,
	}
}

// Handle GET /api/v1/members/{memberId}/current-booking
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	memberID := strings.TrimSpace(mux.Vars(r)["memberId"])
	if memberID == "" {
		h.logger.Warn("GET /members/{memberId}/current-booking - Invalid member ID")
		handlers.RespondBadRequest(w, msgInvalidMemberID)
		return
	}

	requesterID, ok := middleware.GetMemberID(r.Context())
	if !ok {
		h.logger.Warn("GET /members/{memberId}/current-booking - Missing member ID")
		handlers.RespondUnauthorized(w, msgMissingMemberID)
		return
	}
	if requesterID != memberID {
		h.logger.Warn("GET /members/{memberId}/current-booking - Access denied: member_id=%s, requester_id=%s",
			memberID, requesterID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	now := h.timeProvider.Now().UTC()

	current, err := h.service.MemberCurrentBooking(r.Context(), memberID, now)
	if err != nil {
		switch {
		case errors.Is(err, projector.ErrNoCurrentBooking):
			h.logger.Info("GET /members/{memberId}/current-booking - No current booking: member_id=%s", memberID)
			handlers.RespondNotFound(w, msgNoCurrentBooking)

		default:
			h.logger.Error("GET /members/{memberId}/current-booking - Failed to get current booking: member_id=%s, error=%v",
				memberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromProjection(current, now))
}
