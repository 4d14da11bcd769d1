package get_availability

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/fishery-booking/internal/api/handlers"
	"github.com/m04kA/fishery-booking/internal/domain"
	checkAvailability "github.com/m04kA/fishery-booking/internal/usecase/check_availability"
)

const (
	msgMissingDate      = "нужен параметр date или пара from и to"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgUnknownLake      = "озеро не найдено"
	msgRangeTooLarge    = "слишком длинный диапазон дат"
	msgInvalidDateRange = "некорректный диапазон дат"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	aliases LakeAliases
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, aliases LakeAliases, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		aliases: aliases,
		logger:  logger,
	}
}

// Handle GET /api/v1/lakes/{lakeId}/availability
// Query params: date (YYYY-MM-DD) или from и to (YYYY-MM-DD, включительно)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	lakeID := h.aliases.Canonical(mux.Vars(r)["lakeId"])

	query := r.URL.Query()
	dateStr, fromStr, toStr := query.Get("date"), query.Get("from"), query.Get("to")

	switch {
	case dateStr != "":
		h.handleDate(w, r, lakeID, dateStr)
	case fromStr != "" && toStr != "":
		h.handleRange(w, r, lakeID, fromStr, toStr)
	default:
		h.logger.Warn("GET /lakes/{id}/availability - Missing date: lake_id=%s", lakeID)
		handlers.RespondBadRequest(w, msgMissingDate)
	}
}

func (h *Handler) handleDate(w http.ResponseWriter, r *http.Request, lakeID, dateStr string) {
	date, err := domain.ParseDate(dateStr)
	if err != nil {
		h.logger.Warn("GET /lakes/{id}/availability - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &checkAvailability.Request{LakeID: lakeID, Date: date})
	if err != nil {
		h.respondError(w, err, lakeID)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

func (h *Handler) handleRange(w http.ResponseWriter, r *http.Request, lakeID, fromStr, toStr string) {
	from, err := domain.ParseDate(fromStr)
	if err != nil {
		h.logger.Warn("GET /lakes/{id}/availability - Invalid from date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	to, err := domain.ParseDate(toStr)
	if err != nil {
		h.logger.Warn("GET /lakes/{id}/availability - Invalid to date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	days, err := h.useCase.ExecuteRange(r.Context(), &checkAvailability.RangeRequest{LakeID: lakeID, From: from, To: to})
	if err != nil {
		h.respondError(w, err, lakeID)
		return
	}

	h.logger.Info("GET /lakes/{id}/availability - Range retrieved successfully: lake_id=%s, days=%d", lakeID, len(days))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseRange(lakeID, fromStr, toStr, days))
}

func (h *Handler) respondError(w http.ResponseWriter, err error, lakeID string) {
	switch {
	case errors.Is(err, checkAvailability.ErrUnknownLake):
		h.logger.Warn("GET /lakes/{id}/availability - Lake not found: lake_id=%s", lakeID)
		handlers.RespondNotFound(w, msgUnknownLake)

	case errors.Is(err, checkAvailability.ErrRangeTooLarge):
		h.logger.Warn("GET /lakes/{id}/availability - Range too large: lake_id=%s", lakeID)
		handlers.RespondBadRequest(w, msgRangeTooLarge)

	case errors.Is(err, checkAvailability.ErrInvalidInput):
		h.logger.Warn("GET /lakes/{id}/availability - Invalid input: lake_id=%s, error=%v", lakeID, err)
		handlers.RespondBadRequest(w, msgInvalidDateRange)

	default:
		h.logger.Error("GET /lakes/{id}/availability - Failed to check availability: lake_id=%s, error=%v", lakeID, err)
		handlers.RespondInternalError(w)
	}
}
