package list_bookings

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/fishery-booking/internal/api/handlers"
	"github.com/m04kA/fishery-booking/internal/domain"
	"github.com/m04kA/fishery-booking/internal/service/bookings"
	"github.com/m04kA/fishery-booking/internal/service/bookings/models"
)

const (
	msgInvalidFrom      = "некорректный формат даты 'from', ожидается YYYY-MM-DD"
	msgInvalidTo        = "некорректный формат даты 'to', ожидается YYYY-MM-DD"
	msgInvalidStatus    = "некорректный статус бронирования"
	msgInvalidTimeRange = "дата 'from' должна быть не позже 'to'"
	msgInvalidFilter    = "некорректные параметры фильтра"
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

// Handle GET /api/v1/admin/bookings?from=YYYY-MM-DD&to=YYYY-MM-DD&status=active
// Все параметры опциональны
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &models.ListBookingsRequest{}

	if v := query.Get("from"); v != "" {
		from, err := domain.ParseDate(v)
		if err != nil {
			h.logger.Warn("GET /admin/bookings - Invalid from date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFrom)
			return
		}
		req.From = &from
	}

	if v := query.Get("to"); v != "" {
		to, err := domain.ParseDate(v)
		if err != nil {
			h.logger.Warn("GET /admin/bookings - Invalid to date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidTo)
			return
		}
		req.To = &to
	}

	if v := query.Get("status"); v != "" {
		req.Status = &v
	}

	result, err := h.service.ListBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidStatus):
			h.logger.Warn("GET /admin/bookings - Invalid status: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, bookings.ErrInvalidTimeRange):
			h.logger.Warn("GET /admin/bookings - Invalid time range: %v", err)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /admin/bookings - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /admin/bookings - Failed to list bookings: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/bookings - Bookings listed: count=%d, from=%s, to=%s",
		len(result.Bookings), formatOptional(req.From), formatOptional(req.To))
	handlers.RespondJSON(w, http.StatusOK, result)
}

func formatOptional(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(domain.DateFormat)
}
