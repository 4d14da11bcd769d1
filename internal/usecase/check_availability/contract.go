package check_availability

import (
	"context"
	"time"

	"github.com/m04kA/fishery-booking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByLakeAndDate(ctx context.Context, lakeID string, date time.Time) ([]*domain.Booking, error)
	ListByDateRange(ctx context.Context, from, to time.Time) ([]*domain.Booking, error)
}

// LakeRegistry интерфейс реестра озёр
type LakeRegistry interface {
	Get(ctx context.Context, id string) (*domain.Lake, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
