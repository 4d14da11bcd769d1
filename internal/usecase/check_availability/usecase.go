package check_availability

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/m04kA/fishery-booking/internal/domain"
	lakeRegistry "github.com/m04kA/fishery-booking/internal/infra/registry/lake"
)

// UseCase use case проверки свободных мест на озере
// Только чтение: каждый вызов пересчитывает занятость по хранилищу
type UseCase struct {
	bookingRepo BookingRepository
	lakes       LakeRegistry
	tracer      trace.Tracer
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, lakes LakeRegistry, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		lakes:       lakes,
		tracer:      otel.Tracer("fishery-booking/check_availability"),
		logger:      logger,
	}
}

// Execute возвращает capacity, booked и available для озера на дату
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	ctx, span := uc.tracer.Start(ctx, "check_availability.Execute", trace.WithAttributes(
		attribute.String("lake.id", req.LakeID),
		attribute.String("booking.date", req.Date.Format(domain.DateFormat)),
	))
	defer span.End()

	if strings.TrimSpace(req.LakeID) == "" || req.Date.IsZero() {
		return nil, fmt.Errorf("%w: lakeID and date are required", ErrInvalidInput)
	}

	lake, err := uc.getLake(ctx, req.LakeID)
	if err != nil {
		return nil, err
	}

	bookings, err := uc.bookingRepo.GetByLakeAndDate(ctx, lake.ID, req.Date)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to get bookings for lake=%s: %v", lake.ID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	return toResponse(lake, domain.NewAvailability(*lake, req.Date, bookings)), nil
}

// ExecuteRange возвращает занятость озера по каждому дню диапазона одним запросом к хранилищу
func (uc *UseCase) ExecuteRange(ctx context.Context, req *RangeRequest) ([]*Response, error) {
	ctx, span := uc.tracer.Start(ctx, "check_availability.ExecuteRange", trace.WithAttributes(
		attribute.String("lake.id", req.LakeID),
	))
	defer span.End()

	if strings.TrimSpace(req.LakeID) == "" || req.From.IsZero() || req.To.IsZero() {
		return nil, fmt.Errorf("%w: lakeID, from and to are required", ErrInvalidInput)
	}

	from, _ := domain.SessionBounds(req.From)
	to, _ := domain.SessionBounds(req.To)
	if to.Before(from) {
		return nil, fmt.Errorf("%w: from must not be after to", ErrInvalidInput)
	}

	days := int(to.Sub(from)/(24*time.Hour)) + 1
	if days > domain.MaxAvailabilityRangeDays {
		uc.logger.Warn("CheckAvailability: range of %d days requested for lake=%s", days, req.LakeID)
		return nil, fmt.Errorf("%w: at most %d days", ErrRangeTooLarge, domain.MaxAvailabilityRangeDays)
	}

	lake, err := uc.getLake(ctx, req.LakeID)
	if err != nil {
		return nil, err
	}

	bookings, err := uc.bookingRepo.ListByDateRange(ctx, from, to.AddDate(0, 0, 1))
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to list bookings for lake=%s: %v", lake.ID, err)
		return nil, fmt.Errorf("%w: failed to list bookings: %v", ErrInternal, err)
	}

	result := make([]*Response, 0, days)
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		result = append(result, toResponse(lake, domain.NewAvailability(*lake, day, bookings)))
	}

	return result, nil
}

func (uc *UseCase) getLake(ctx context.Context, id string) (*domain.Lake, error) {
	lake, err := uc.lakes.Get(ctx, id)
	if err != nil {
		if errors.Is(err, lakeRegistry.ErrLakeNotFound) {
			uc.logger.Warn("CheckAvailability: lake id=%s not found", id)
			return nil, ErrUnknownLake
		}
		uc.logger.Error("CheckAvailability: failed to get lake id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get lake: %v", ErrInternal, err)
	}
	return lake, nil
}

func toResponse(lake *domain.Lake, a domain.Availability) *Response {
	return &Response{
		LakeID:    lake.ID,
		LakeName:  lake.Name,
		Date:      a.Date,
		Capacity:  a.Capacity,
		Booked:    a.Booked,
		Available: a.Available,
	}
}
