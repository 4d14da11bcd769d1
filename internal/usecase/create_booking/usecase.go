package create_booking

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/m04kA/fishery-booking/internal/domain"
	lakeRegistry "github.com/m04kA/fishery-booking/internal/infra/registry/lake"
	cooldownRepo "github.com/m04kA/fishery-booking/internal/infra/storage/cooldown"
	"github.com/m04kA/fishery-booking/internal/integrations/events"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	cooldownRepo CooldownRepository
	lakes        LakeRegistry
	txManager    TransactionManager
	publisher    EventPublisher
	metrics      Metrics
	settings     Settings
	timeProvider TimeProvider
	tracer       trace.Tracer
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	cooldownRepo CooldownRepository,
	lakes LakeRegistry,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	settings Settings,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		cooldownRepo: cooldownRepo,
		lakes:        lakes,
		txManager:    txManager,
		publisher:    publisher,
		metrics:      metrics,
		settings:     settings,
		timeProvider: &RealTimeProvider{},
		tracer:       otel.Tracer("fishery-booking/create_booking"),
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверки cooldown, активного бронирования и вместимости вместе со вставкой идут
// в одной сериализуемой транзакции и при повторе транзакции выполняются заново
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	ctx, span := uc.tracer.Start(ctx, "create_booking.Execute", trace.WithAttributes(
		attribute.String("member.id", req.MemberID),
		attribute.String("lake.id", req.LakeID),
		attribute.String("booking.date", req.Date.Format(domain.DateFormat)),
	))
	defer span.End()

	uc.logger.Info("CreateBooking: member=%s, lake=%s, date=%s",
		req.MemberID, req.LakeID, req.Date.Format(domain.DateFormat))

	result, err := uc.execute(ctx, req)
	if err != nil {
		uc.metrics.BookingRejected(rejectionReason(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, rejectionReason(err))
		return nil, err
	}

	span.SetAttributes(attribute.String("booking.id", result.ID))
	uc.metrics.BookingCreated(result.LakeID)

	return result, nil
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req, uc.settings.MaxNotesLength); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем озеро
	lake, err := uc.lakes.Get(ctx, req.LakeID)
	if err != nil {
		if errors.Is(err, lakeRegistry.ErrLakeNotFound) {
			uc.logger.Warn("CreateBooking: lake id=%s not found", req.LakeID)
			return nil, ErrUnknownLake
		}
		uc.logger.Error("CreateBooking: failed to get lake id=%s: %v", req.LakeID, err)
		return nil, fmt.Errorf("%w: failed to get lake: %w", ErrInternal, err)
	}

	// 3. Границы сессии: полночь UTC выбранной даты + 24 часа
	start, end := domain.SessionBounds(req.Date)
	now := uc.timeProvider.Now().UTC()

	if err := validateDate(start, end, now, uc.settings.AdvanceBookingDays); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	var result *domain.Booking

	// 4. Все проверки по живым данным хранилища и запись в одной транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Cooldown участника, независимо от озера
		anchor, err := uc.cooldownRepo.Get(txCtx, req.MemberID)
		switch {
		case err == nil:
			if remaining, active := domain.CooldownRemaining(anchor, now, uc.settings.Cooldown); active {
				uc.logger.Warn("CreateBooking: member=%s cooldown active, %s remaining", req.MemberID, remaining)
				return &CooldownError{Remaining: remaining}
			}
		case errors.Is(err, cooldownRepo.ErrAnchorNotFound):
		default:
			uc.logger.Error("CreateBooking: failed to get cooldown anchor: %v", err)
			return fmt.Errorf("%w: failed to get cooldown anchor: %w", ErrInternal, err)
		}

		// 4.2. Не больше одного предстоящего или идущего бронирования на участника
		memberBookings, err := uc.bookingRepo.GetByMember(txCtx, req.MemberID)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get member bookings: %v", err)
			return fmt.Errorf("%w: failed to get member bookings: %w", ErrInternal, err)
		}
		if current := findCurrentBooking(memberBookings, now); current != nil {
			uc.logger.Warn("CreateBooking: member=%s already has booking id=%s", req.MemberID, current.ID)
			return ErrAlreadyHasActiveBooking
		}

		// 4.3. Вместимость озера на дату (строки блокируются FOR UPDATE)
		lakeBookings, err := uc.bookingRepo.GetByLakeAndDate(txCtx, lake.ID, start)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get lake bookings: %v", err)
			return fmt.Errorf("%w: failed to get lake bookings: %w", ErrInternal, err)
		}
		availability := domain.NewAvailability(*lake, start, lakeBookings)
		if availability.IsFull() {
			uc.logger.Warn("CreateBooking: lake=%s full on %s, %d/%d spots taken",
				lake.ID, start.Format(domain.DateFormat), availability.Booked, availability.Capacity)
			return &CapacityError{
				LakeID:   lake.ID,
				Date:     start,
				Capacity: availability.Capacity,
				Booked:   availability.Booked,
			}
		}

		uc.logger.Info("CreateBooking: lake=%s available, %d/%d spots taken",
			lake.ID, availability.Booked, availability.Capacity)

		// 4.4. Сохраняем бронирование
		created, err := uc.bookingRepo.Insert(txCtx, &domain.Booking{
			MemberID:     req.MemberID,
			LakeID:       lake.ID,
			StartAt:      start,
			EndAt:        end,
			CreatedAt:    now,
			Notes:        req.Notes,
			CachedStatus: domain.StatusUpcoming,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to insert booking: %v", err)
			return fmt.Errorf("%w: failed to insert booking: %w", ErrInternal, err)
		}

		// 4.5. Новый якорь cooldown
		if err := uc.cooldownRepo.Set(txCtx, req.MemberID, now); err != nil {
			uc.logger.Error("CreateBooking: failed to set cooldown anchor: %v", err)
			return fmt.Errorf("%w: failed to set cooldown anchor: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if isBusinessError(err) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %w", ErrInternal, err)
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s", result.ID)

	// 5. Событие публикуется после коммита; сбой брокера не отменяет бронирование
	if err := uc.publisher.PublishJSON(ctx, events.KeyBookingCreated, events.NewBookingEvent(result, now)); err != nil {
		uc.logger.Warn("CreateBooking: failed to publish %s for booking id=%s: %v",
			events.KeyBookingCreated, result.ID, err)
	}

	return &Response{
		ID:        result.ID,
		MemberID:  result.MemberID,
		LakeID:    result.LakeID,
		StartAt:   result.StartAt,
		EndAt:     result.EndAt,
		CreatedAt: result.CreatedAt,
		Notes:     result.Notes,
		Status:    result.StatusAt(now),
	}, nil
}
