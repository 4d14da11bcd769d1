package get_lake

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/fishery-booking/internal/api/handlers"
	"github.com/m04kA/fishery-booking/internal/api/handlers/list_lakes"
	lakeRegistry "github.com/m04kA/fishery-booking/internal/infra/registry/lake"
)

const msgUnknownLake = "озеро не найдено"

type Handler struct {
	registry LakeRegistry
	aliases  LakeAliases
	logger   Logger
}

func NewHandler(registry LakeRegistry, aliases LakeAliases, logger Logger) *Handler {
	return &Handler{
		registry: registry,
		aliases:  aliases,
		logger:   logger,
	}
}

// Handle GET /api/v1/lakes/{lakeId}
// Устаревший ID ("bignor") отдаёт озеро с каноническим ID
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	lakeID := h.aliases.Canonical(mux.Vars(r)["lakeId"])

	lake, err := h.registry.Get(r.Context(), lakeID)
	if err != nil {
		switch {
		case errors.Is(err, lakeRegistry.ErrLakeNotFound):
			h.logger.Warn("GET /lakes/{id} - Lake not found: lake_id=%s", lakeID)
			handlers.RespondNotFound(w, msgUnknownLake)

		default:
			h.logger.Error("GET /lakes/{id} - Failed to get lake: lake_id=%s, error=%v", lakeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, list_lakes.FromDomainLake(*lake))
}
