package list_lakes

import (
	"net/http"

	"github.com/m04kA/fishery-booking/internal/api/handlers"
)

type Handler struct {
	registry LakeRegistry
	logger   Logger
}

func NewHandler(registry LakeRegistry, logger Logger) *Handler {
	return &Handler{
		registry: registry,
		logger:   logger,
	}
}

// Handle GET /api/v1/lakes
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	lakes, err := h.registry.List(r.Context())
	if err != nil {
		h.logger.Error("GET /lakes - Failed to list lakes: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	response := make([]LakeResponse, 0, len(lakes))
	for _, l := range lakes {
		response = append(response, FromDomainLake(l))
	}

	handlers.RespondJSON(w, http.StatusOK, response)
}
