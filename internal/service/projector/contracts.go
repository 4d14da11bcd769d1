package projector

import (
	"context"
	"time"

	"github.com/m04kA/fishery-booking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByMember(ctx context.Context, memberID string) ([]*domain.Booking, error)
	ListByDateRange(ctx context.Context, from, to time.Time) ([]*domain.Booking, error)
}

// LakeRegistry интерфейс реестра озёр
type LakeRegistry interface {
	List(ctx context.Context) ([]domain.Lake, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
