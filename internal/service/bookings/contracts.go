package bookings

import (
	"context"
	"time"

	"github.com/m04kA/fishery-booking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	GetByMember(ctx context.Context, memberID string) ([]*domain.Booking, error)
	SetCancelled(ctx context.Context, id string, at time.Time) (*domain.Booking, error)
	All(ctx context.Context) ([]*domain.Booking, error)
	ListByDateRange(ctx context.Context, from, to time.Time) ([]*domain.Booking, error)
	MarkCompleted(ctx context.Context, ids []string) (int, error)
}

// CooldownRepository интерфейс хранилища якорей cooldown
type CooldownRepository interface {
	Clear(ctx context.Context, memberID string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher интерфейс публикации доменных событий
type EventPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

// Metrics бизнес-метрики отмен и sweep
type Metrics interface {
	BookingCancelled()
	BookingsCompleted(count int)
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
