package projector

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/fishery-booking/internal/domain"
)

// Service read-only проекции для отображения
// Собственного состояния нет, всё пересчитывается из хранилища на каждый вызов
type Service struct {
	bookingRepo BookingRepository
	lakes       LakeRegistry
	logger      Logger
}

// NewService создает новый экземпляр сервиса проекций
func NewService(bookingRepo BookingRepository, lakes LakeRegistry, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		lakes:       lakes,
		logger:      logger,
	}
}

// MemberCurrentBooking предстоящее или идущее бронирование участника на now
// Если такого нет, возвращает ErrNoCurrentBooking
func (s *Service) MemberCurrentBooking(ctx context.Context, memberID string, now time.Time) (*CurrentBooking, error) {
	if memberID == "" {
		return nil, fmt.Errorf("%w: member id is required", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByMember(ctx, memberID)
	if err != nil {
		s.logger.Error("MemberCurrentBooking: repository error for member=%s: %v", memberID, err)
		return nil, fmt.Errorf("%w: MemberCurrentBooking - repository error: %v", ErrInternal, err)
	}

	for _, b := range bookings {
		if !b.IsCurrent(now) {
			continue
		}

		remaining, _ := TimeRemaining(b, now)
		return &CurrentBooking{
			Booking:   b,
			Status:    b.StatusAt(now),
			Remaining: remaining,
			Label:     FormatRemaining(remaining),
		}, nil
	}

	return nil, ErrNoCurrentBooking
}

// OccupancyForDate занятость всех озёр на дату в порядке реестра
func (s *Service) OccupancyForDate(ctx context.Context, date time.Time) ([]LakeOccupancy, error) {
	lakes, err := s.lakes.List(ctx)
	if err != nil {
		s.logger.Error("OccupancyForDate: failed to list lakes: %v", err)
		return nil, fmt.Errorf("%w: OccupancyForDate - failed to list lakes: %v", ErrInternal, err)
	}

	// Один запрос на сутки для всех озёр, NewAvailability сам отбирает своё озеро
	start, end := domain.SessionBounds(date)
	bookings, err := s.bookingRepo.ListByDateRange(ctx, start, end)
	if err != nil {
		s.logger.Error("OccupancyForDate: repository error for date=%s: %v", start.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: OccupancyForDate - repository error: %v", ErrInternal, err)
	}

	result := make([]LakeOccupancy, 0, len(lakes))
	for _, lake := range lakes {
		result = append(result, LakeOccupancy{
			Lake:         lake,
			Availability: domain.NewAvailability(lake, start, bookings),
		})
	}

	return result, nil
}

// LakeOccupancyForDate занятость всех озёр на дату по ID озера
func (s *Service) LakeOccupancyForDate(ctx context.Context, date time.Time) (map[string]domain.Availability, error) {
	occupancy, err := s.OccupancyForDate(ctx, date)
	if err != nil {
		return nil, err
	}

	result := make(map[string]domain.Availability, len(occupancy))
	for _, o := range occupancy {
		result[o.Lake.ID] = o.Availability
	}
	return result, nil
}
