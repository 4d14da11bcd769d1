package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/m04kA/fishery-booking/internal/domain"
	bookingRepo "github.com/m04kA/fishery-booking/internal/infra/storage/booking"
	"github.com/m04kA/fishery-booking/internal/integrations/events"
	"github.com/m04kA/fishery-booking/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo  BookingRepository
	cooldownRepo CooldownRepository
	txManager    TransactionManager
	publisher    EventPublisher
	metrics      Metrics
	timeProvider TimeProvider
	tracer       trace.Tracer
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	cooldownRepo CooldownRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		cooldownRepo: cooldownRepo,
		txManager:    txManager,
		publisher:    publisher,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		tracer:       otel.Tracer("fishery-booking/bookings"),
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking, s.timeProvider.Now().UTC()), nil
}

// GetMemberBookings получает историю бронирований участника, новые сверху
// Перед ответом досинхронизирует кэш статусов у завершившихся сессий
func (s *Service) GetMemberBookings(ctx context.Context, memberID string) (*models.BookingListResponse, error) {
	s.logger.Info("GetMemberBookings: fetching bookings for member=%s", memberID)

	if memberID == "" {
		return nil, fmt.Errorf("%w: member id is required", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByMember(ctx, memberID)
	if err != nil {
		s.logger.Error("GetMemberBookings: repository error for member=%s: %v", memberID, err)
		return nil, fmt.Errorf("%w: GetMemberBookings - repository error: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now().UTC()
	s.completeStale(ctx, "GetMemberBookings", bookings, now)

	s.logger.Info("GetMemberBookings: successfully fetched %d bookings for member=%s", len(bookings), memberID)
	return models.FromDomainBookingList(bookings, now), nil
}

// ListBookings админский список бронирований за период
// Фильтр по статусу применяется к вычисленному статусу, а не к кэшу
func (s *Service) ListBookings(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	now := s.timeProvider.Now().UTC()

	filter, err := req.ToDomainFilter(now)
	if err != nil {
		s.logger.Warn("ListBookings: invalid filter: %v", err)
		switch {
		case errors.Is(err, models.ErrInvalidStatus):
			return nil, fmt.Errorf("%w: %w", ErrInvalidInput, ErrInvalidStatus)
		case errors.Is(err, models.ErrInvalidTimeRange):
			return nil, fmt.Errorf("%w: %w", ErrInvalidInput, ErrInvalidTimeRange)
		default:
			return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
		}
	}

	s.logger.Info("ListBookings: fetching bookings from %s to %s",
		filter.From.Format(domain.DateFormat), filter.To.Format(domain.DateFormat))

	bookings, err := s.bookingRepo.ListByDateRange(ctx, filter.From, filter.To)
	if err != nil {
		s.logger.Error("ListBookings: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListBookings - repository error: %v", ErrInternal, err)
	}

	s.completeStale(ctx, "ListBookings", bookings, now)

	if filter.Status != nil {
		filtered := make([]*domain.Booking, 0, len(bookings))
		for _, b := range bookings {
			if b.StatusAt(now) == *filter.Status {
				filtered = append(filtered, b)
			}
		}
		bookings = filtered
	}

	s.logger.Info("ListBookings: successfully fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings, now), nil
}

// Stats счётчики бронирований на текущий момент
func (s *Service) Stats(ctx context.Context) (*models.StatsResponse, error) {
	bookings, err := s.bookingRepo.All(ctx)
	if err != nil {
		s.logger.Error("Stats: repository error: %v", err)
		return nil, fmt.Errorf("%w: Stats - repository error: %v", ErrInternal, err)
	}

	stats := domain.CollectStats(bookings, s.timeProvider.Now().UTC())
	return models.FromDomainStats(stats), nil
}

// Cancel отменяет бронирование
// Участник и администратор идут одним путём; при первой отмене снимается cooldown
// владельца бронирования. Повторная отмена успешна и ничего не меняет.
// С OwnerOnly чужое бронирование не отменяется (ErrForbidden).
// Транзакция сериализуемая: create берёт блокировки в другом порядке, и дедлок
// с ним повторяется менеджером транзакций, а не уходит наружу.
func (s *Service) Cancel(ctx context.Context, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	ctx, span := s.tracer.Start(ctx, "bookings.Cancel", trace.WithAttributes(
		attribute.String("booking.id", req.BookingID),
		attribute.String("requester.id", req.RequesterID),
	))
	defer span.End()

	s.logger.Info("Cancel: cancelling booking id=%s by requester=%s", req.BookingID, req.RequesterID)

	now := s.timeProvider.Now().UTC()

	var (
		cancelled        *domain.Booking
		alreadyCancelled bool
	)

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Замыкание может выполниться повторно
		cancelled, alreadyCancelled = nil, false

		// 1. Получаем бронирование
		booking, err := s.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: Cancel - get booking: %w", ErrInternal, err)
		}

		if req.OwnerOnly && booking.MemberID != req.RequesterID {
			return ErrForbidden
		}

		// 2. Уже отменено: успешный no-op, cooldown не трогаем
		if booking.IsCancelled() {
			alreadyCancelled = true
			cancelled = booking
			return nil
		}

		// 3. Помечаем отменённым
		cancelled, err = s.bookingRepo.SetCancelled(txCtx, req.BookingID, now)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: Cancel - set cancelled: %w", ErrInternal, err)
		}

		// 4. Снимаем cooldown владельца, он может сразу бронировать снова
		if err := s.cooldownRepo.Clear(txCtx, booking.MemberID); err != nil {
			return fmt.Errorf("%w: Cancel - clear cooldown: %w", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		span.RecordError(err)
		if errors.Is(err, ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%s not found", req.BookingID)
			span.SetStatus(codes.Error, "not_found")
			return nil, ErrBookingNotFound
		}
		if errors.Is(err, ErrForbidden) {
			s.logger.Warn("Cancel: requester=%s does not own booking id=%s", req.RequesterID, req.BookingID)
			span.SetStatus(codes.Error, "forbidden")
			return nil, ErrForbidden
		}
		s.logger.Error("Cancel: failed to cancel booking id=%s: %v", req.BookingID, err)
		span.SetStatus(codes.Error, "internal")
		if errors.Is(err, ErrInternal) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: Cancel - transaction failed: %w", ErrInternal, err)
	}

	if alreadyCancelled {
		s.logger.Info("Cancel: booking id=%s already cancelled", req.BookingID)
		return models.FromDomainBooking(cancelled, now), nil
	}

	s.metrics.BookingCancelled()
	s.logger.Info("Cancel: successfully cancelled booking id=%s, cooldown cleared for member=%s",
		cancelled.ID, cancelled.MemberID)

	if err := s.publisher.PublishJSON(ctx, events.KeyBookingCancelled, events.NewBookingEvent(cancelled, now)); err != nil {
		s.logger.Warn("Cancel: failed to publish %s for booking id=%s: %v",
			events.KeyBookingCancelled, cancelled.ID, err)
	}

	return models.FromDomainBooking(cancelled, now), nil
}

// Sweep переводит кэш статуса завершившихся сессий в completed
// Только синхронизация кэша: вычисленный статус верен и без неё
func (s *Service) Sweep(ctx context.Context, now time.Time) (int, error) {
	bookings, err := s.bookingRepo.All(ctx)
	if err != nil {
		s.logger.Error("Sweep: repository error: %v", err)
		return 0, fmt.Errorf("%w: Sweep - repository error: %v", ErrInternal, err)
	}

	ids := staleIDs(bookings, now.UTC())
	if len(ids) == 0 {
		return 0, nil
	}

	count, err := s.bookingRepo.MarkCompleted(ctx, ids)
	if err != nil {
		s.logger.Error("Sweep: failed to mark %d bookings completed: %v", len(ids), err)
		return 0, fmt.Errorf("%w: Sweep - mark completed: %v", ErrInternal, err)
	}

	if count > 0 {
		s.metrics.BookingsCompleted(count)
		s.logger.Info("Sweep: marked %d bookings completed", count)

		event := events.SweepEvent{Completed: count, OccurredAt: now.UTC()}
		if err := s.publisher.PublishJSON(ctx, events.KeyBookingsCompleted, event); err != nil {
			s.logger.Warn("Sweep: failed to publish %s: %v", events.KeyBookingsCompleted, err)
		}
	}

	return count, nil
}

// SweepNow Sweep на текущий момент по часам сервиса
func (s *Service) SweepNow(ctx context.Context) (*models.SweepResponse, error) {
	count, err := s.Sweep(ctx, s.timeProvider.Now())
	if err != nil {
		return nil, err
	}
	return &models.SweepResponse{Completed: count}, nil
}

// completeStale точечно обновляет кэш статусов перед отображением
// Ошибка не мешает ответу: статус в ответе всё равно вычисляется
func (s *Service) completeStale(ctx context.Context, op string, bookings []*domain.Booking, now time.Time) {
	ids := staleIDs(bookings, now)
	if len(ids) == 0 {
		return
	}

	count, err := s.bookingRepo.MarkCompleted(ctx, ids)
	if err != nil {
		s.logger.Warn("%s: failed to refresh status cache: %v", op, err)
		return
	}

	for _, b := range bookings {
		if b.NeedsCompletion(now) {
			b.CachedStatus = domain.StatusCompleted
		}
	}
	if count > 0 {
		s.metrics.BookingsCompleted(count)
	}
}

func staleIDs(bookings []*domain.Booking, now time.Time) []string {
	ids := make([]string, 0)
	for _, b := range bookings {
		if b.NeedsCompletion(now) {
			ids = append(ids, b.ID)
		}
	}
	return ids
}
