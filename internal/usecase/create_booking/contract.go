package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/fishery-booking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Insert(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByMember(ctx context.Context, memberID string) ([]*domain.Booking, error)
	GetByLakeAndDate(ctx context.Context, lakeID string, date time.Time) ([]*domain.Booking, error)
}

// CooldownRepository интерфейс хранилища якорей cooldown
type CooldownRepository interface {
	Get(ctx context.Context, memberID string) (time.Time, error)
	Set(ctx context.Context, memberID string, at time.Time) error
}

// LakeRegistry интерфейс реестра озёр
type LakeRegistry interface {
	Get(ctx context.Context, id string) (*domain.Lake, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher интерфейс публикации доменных событий
type EventPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

// Metrics бизнес-метрики бронирований
type Metrics interface {
	BookingCreated(lakeID string)
	BookingRejected(reason string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
