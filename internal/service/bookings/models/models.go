package models

import (
	"errors"
	"time"

	"github.com/m04kA/fishery-booking/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidTimeRange возвращается, когда from позже to
	ErrInvalidTimeRange = errors.New("invalid time range")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
// RequesterID участник или администратор, для ядра это один и тот же путь
// OwnerOnly выставляет маршрут участника: отменить можно только своё бронирование
type CancelBookingRequest struct {
	BookingID   string `json:"bookingId"`
	RequesterID string `json:"requesterId"`
	OwnerOnly   bool   `json:"-"`
}

// ListBookingsRequest запрос админского списка бронирований
type ListBookingsRequest struct {
	From   *time.Time `json:"from,omitempty"`   // Первая дата периода включительно (опционально)
	To     *time.Time `json:"to,omitempty"`     // Последняя дата периода включительно (опционально)
	Status *string    `json:"status,omitempty"` // Фильтр по вычисленному статусу (опционально)
}

// ToDomainFilter конвертирует request в domain фильтр
// Без дат берётся окно DefaultListingWindowDays в обе стороны от now
func (r *ListBookingsRequest) ToDomainFilter(now time.Time) (domain.BookingsFilter, error) {
	today, _ := domain.SessionBounds(now.UTC())

	from := today.AddDate(0, 0, -domain.DefaultListingWindowDays)
	if r.From != nil {
		from, _ = domain.SessionBounds(*r.From)
	}

	lastDay := today.AddDate(0, 0, domain.DefaultListingWindowDays)
	if r.To != nil {
		lastDay = *r.To
	}
	_, to := domain.SessionBounds(lastDay)

	filter := domain.BookingsFilter{From: from, To: to}
	if !from.Before(to) {
		return filter, ErrInvalidTimeRange
	}

	// Конвертируем статус если указан
	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID          string    `json:"id"`
	MemberID    string    `json:"memberId"`
	LakeID      string    `json:"lakeId"`
	Date        string    `json:"date"` // "2025-06-01"
	StartAt     time.Time `json:"startAt"`
	EndAt       time.Time `json:"endAt"`
	Status      string    `json:"status"` // вычисляется на момент ответа
	Notes       *string   `json:"notes,omitempty"`
	CancelledAt *string   `json:"cancelledAt,omitempty"` // ISO 8601 format
	CreatedAt   time.Time `json:"createdAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// StatsResponse счётчики для админской панели
type StatsResponse struct {
	ActiveNow   int `json:"activeNow"`
	Upcoming    int `json:"upcoming"`
	Completed   int `json:"completed"`
	Cancelled   int `json:"cancelled"`
	TotalActive int `json:"totalActive"`
	Total       int `json:"total"`
}

// SweepResponse результат синхронизации кэша статусов
type SweepResponse struct {
	Completed int `json:"completed"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO, статус вычисляется на now
func FromDomainBooking(b *domain.Booking, now time.Time) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:        b.ID,
		MemberID:  b.MemberID,
		LakeID:    b.LakeID,
		Date:      b.StartAt.Format(domain.DateFormat),
		StartAt:   b.StartAt,
		EndAt:     b.EndAt,
		Status:    string(b.StatusAt(now)),
		Notes:     b.Notes,
		CreatedAt: b.CreatedAt,
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking, now time.Time) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking, now); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// FromDomainStats конвертирует счётчики в DTO
func FromDomainStats(s domain.BookingStats) *StatsResponse {
	return &StatsResponse{
		ActiveNow:   s.ActiveNow,
		Upcoming:    s.Upcoming,
		Completed:   s.Completed,
		Cancelled:   s.Cancelled,
		TotalActive: s.TotalActive,
		Total:       s.Total,
	}
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
