package create_booking

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrUnknownLake возвращается, когда озеро не найдено в реестре
	ErrUnknownLake = errors.New("create_booking: unknown lake")

	// ErrLakeFull возвращается, когда на озеро в эту дату не осталось мест
	ErrLakeFull = errors.New("create_booking: lake is full on this date")

	// ErrAlreadyHasActiveBooking возвращается, когда у участника уже есть предстоящее или текущее бронирование
	ErrAlreadyHasActiveBooking = errors.New("create_booking: member already has an active booking")

	// ErrCooldownActive возвращается, когда с прошлого бронирования участника не прошло окно cooldown
	ErrCooldownActive = errors.New("create_booking: booking cooldown is active")

	// ErrInvalidDate возвращается, когда сессия на эту дату уже закончилась
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advance_booking_days
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// CooldownError несёт оставшееся время ожидания
type CooldownError struct {
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("%s: %s remaining", ErrCooldownActive, e.Remaining.Round(time.Second))
}

func (e *CooldownError) Unwrap() error {
	return ErrCooldownActive
}

// CapacityError несёт занятость озера на момент отказа
type CapacityError struct {
	LakeID   string
	Date     time.Time
	Capacity int
	Booked   int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%s: %s %s %d/%d", ErrLakeFull, e.LakeID, e.Date.Format("2006-01-02"), e.Booked, e.Capacity)
}

func (e *CapacityError) Unwrap() error {
	return ErrLakeFull
}

// isBusinessError ожидаемые отказы, которые не логируются как ошибки и не оборачиваются
func isBusinessError(err error) bool {
	return errors.Is(err, ErrUnknownLake) ||
		errors.Is(err, ErrLakeFull) ||
		errors.Is(err, ErrAlreadyHasActiveBooking) ||
		errors.Is(err, ErrCooldownActive) ||
		errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrDateTooFarInFuture) ||
		errors.Is(err, ErrInvalidInput)
}

// rejectionReason метка для метрики отказов
func rejectionReason(err error) string {
	switch {
	case errors.Is(err, ErrUnknownLake):
		return "unknown_lake"
	case errors.Is(err, ErrLakeFull):
		return "lake_full"
	case errors.Is(err, ErrAlreadyHasActiveBooking):
		return "already_has_active_booking"
	case errors.Is(err, ErrCooldownActive):
		return "cooldown_active"
	case errors.Is(err, ErrInvalidDate), errors.Is(err, ErrDateTooFarInFuture), errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	default:
		return "internal"
	}
}
