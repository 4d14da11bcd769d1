package create_booking

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/fishery-booking/internal/domain"
	"github.com/m04kA/fishery-booking/pkg/ptr"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, maxNotesLength int) error {
	if strings.TrimSpace(req.MemberID) == "" {
		return fmt.Errorf("%w: memberID is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.LakeID) == "" {
		return fmt.Errorf("%w: lakeID is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if maxNotesLength > 0 && utf8.RuneCountInString(ptr.Value(req.Notes)) > maxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, maxNotesLength)
	}

	return nil
}

// validateDate проверяет, что сессия ещё не закончилась и укладывается в advanceBookingDays
// Сегодняшняя (уже идущая) сессия допустима
func validateDate(start, end, now time.Time, advanceBookingDays int) error {
	if !now.Before(end) {
		return ErrInvalidDate
	}

	// Если advanceBookingDays = 0, нет ограничений на дату
	if advanceBookingDays == 0 {
		return nil
	}

	today, _ := domain.SessionBounds(now)
	maxDate := today.AddDate(0, 0, advanceBookingDays)

	if start.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}

// findCurrentBooking возвращает предстоящее или идущее бронирование участника
func findCurrentBooking(bookings []*domain.Booking, now time.Time) *domain.Booking {
	for _, b := range bookings {
		if b.IsCurrent(now) {
			return b
		}
	}
	return nil
}
