package create_booking

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/m04kA/fishery-booking/internal/api/handlers"
	"github.com/m04kA/fishery-booking/internal/api/middleware"
	"github.com/m04kA/fishery-booking/internal/domain"
	createBooking "github.com/m04kA/fishery-booking/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDate         = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgMissingMemberID     = "отсутствует ID участника"
	msgUnknownLake         = "озеро не найдено"
	msgLakeFull            = "на выбранную дату на озере нет свободных мест"
	msgAlreadyHasBooking   = "у вас уже есть активное бронирование"
	msgCooldownActive      = "новое бронирование можно сделать через %s"
	msgInvalidBookingDate  = "дата бронирования уже прошла"
	msgDateTooFar          = "дата бронирования слишком далеко в будущем"
	msgInvalidBookingInput = "некорректные данные бронирования"
)

type Handler struct {
	useCase CreateBookingUseCase
	aliases LakeAliases
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, aliases LakeAliases, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		aliases: aliases,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем memberID из контекста (через middleware Auth)
	memberID, ok := middleware.GetMemberID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing member ID")
		handlers.RespondUnauthorized(w, msgMissingMemberID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("POST /bookings - Validation failed: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingInput)
		return
	}

	lakeID := h.aliases.Canonical(req.LakeID)

	// Конвертируем HTTP запрос в модель use case (с парсингом даты)
	useCaseReq, err := req.ToUseCaseRequest(memberID, lakeID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		h.respondUseCaseError(w, err, memberID, lakeID)
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, member_id=%s, lake_id=%s",
		result.ID, memberID, lakeID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

func (h *Handler) respondUseCaseError(w http.ResponseWriter, err error, memberID, lakeID string) {
	var (
		cooldownErr *createBooking.CooldownError
		capacityErr *createBooking.CapacityError
	)

	switch {
	case errors.Is(err, createBooking.ErrUnknownLake):
		h.logger.Warn("POST /bookings - Unknown lake: lake_id=%s", lakeID)
		handlers.RespondNotFound(w, msgUnknownLake)

	case errors.As(err, &capacityErr):
		h.logger.Warn("POST /bookings - Lake full: lake_id=%s, date=%s, booked=%d/%d",
			lakeID, capacityErr.Date.Format(domain.DateFormat), capacityErr.Booked, capacityErr.Capacity)
		handlers.RespondErrorWithDetails(w, http.StatusConflict, msgLakeFull, map[string]interface{}{
			"capacity": capacityErr.Capacity,
			"booked":   capacityErr.Booked,
		})

	case errors.Is(err, createBooking.ErrAlreadyHasActiveBooking):
		h.logger.Warn("POST /bookings - Already has active booking: member_id=%s", memberID)
		handlers.RespondConflict(w, msgAlreadyHasBooking)

	case errors.As(err, &cooldownErr):
		remaining := FormatCooldown(cooldownErr.Remaining)
		h.logger.Warn("POST /bookings - Cooldown active: member_id=%s, remaining=%s", memberID, remaining)
		handlers.RespondErrorWithDetails(w, http.StatusTooManyRequests, fmt.Sprintf(msgCooldownActive, remaining),
			map[string]interface{}{
				"remainingSeconds": int64(cooldownErr.Remaining.Round(time.Second) / time.Second),
				"remaining":        remaining,
			})

	case errors.Is(err, createBooking.ErrInvalidDate):
		h.logger.Warn("POST /bookings - Date in the past: member_id=%s", memberID)
		handlers.RespondBadRequest(w, msgInvalidBookingDate)

	case errors.Is(err, createBooking.ErrDateTooFarInFuture):
		h.logger.Warn("POST /bookings - Date too far in future: member_id=%s", memberID)
		handlers.RespondBadRequest(w, msgDateTooFar)

	case errors.Is(err, createBooking.ErrInvalidInput):
		h.logger.Warn("POST /bookings - Invalid input: member_id=%s, error=%v", memberID, err)
		handlers.RespondBadRequest(w, msgInvalidBookingInput)

	default:
		h.logger.Error("POST /bookings - Failed to create booking: member_id=%s, lake_id=%s, error=%v",
			memberID, lakeID, err)
		handlers.RespondInternalError(w)
	}
}

// FormatCooldown "Xh Ym" с округлением минут вверх, чтобы не показывать "0h 0m" до конца ожидания
func FormatCooldown(d time.Duration) string {
	minutes := int64((d + time.Minute - 1) / time.Minute)
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}
