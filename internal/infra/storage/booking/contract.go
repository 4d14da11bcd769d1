package booking

import (
	"context"
	"database/sql"
	"time"

	"github.com/m04kA/fishery-booking/internal/domain"
	"github.com/m04kA/fishery-booking/pkg/dbmetrics"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor
type TxExecutor = dbmetrics.TxExecutor

// TxBeginner интерфейс для начала транзакций
// Поддерживает *dbmetrics.DB
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error)
}

// Store журнал бронирований
// Никакой метод не отфильтровывает отменённые бронирования: бизнес-фильтры применяет вызывающий
type Store interface {
	Insert(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	GetByMember(ctx context.Context, memberID string) ([]*domain.Booking, error)
	GetByLakeAndDate(ctx context.Context, lakeID string, date time.Time) ([]*domain.Booking, error)
	SetCancelled(ctx context.Context, id string, at time.Time) (*domain.Booking, error)
	All(ctx context.Context) ([]*domain.Booking, error)
	ListByDateRange(ctx context.Context, from, to time.Time) ([]*domain.Booking, error)
	MarkCompleted(ctx context.Context, ids []string) (int, error)
}

var (
	_ Store = (*Repository)(nil)
	_ Store = (*MemoryStore)(nil)
)
