package sweep_statuses

import (
	"net/http"

	"github.com/m04kA/fishery-booking/internal/api/handlers"
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

// Handle POST /api/v1/admin/sweep
// Внеочередной проход синхронизации кэша статусов
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.SweepNow(r.Context())
	if err != nil {
		h.logger.Error("POST /admin/sweep - Sweep failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /admin/sweep - Sweep finished: completed=%d", result.Completed)
	handlers.RespondJSON(w, http.StatusOK, result)
}
