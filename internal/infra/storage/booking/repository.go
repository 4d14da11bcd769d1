package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/fishery-booking/internal/domain"
	"github.com/m04kA/fishery-booking/pkg/dbmetrics"
	"github.com/m04kA/fishery-booking/pkg/psqlbuilder"
)

const tableBookings = "bookings"

// pqUniqueViolation код ошибки PostgreSQL для нарушения уникальности
const pqUniqueViolation = "23505"

var bookingColumns = []string{
	"id",
	"member_id",
	"lake_id",
	"start_at",
	"end_at",
	"created_at",
	"notes",
	"cached_status",
	"cancelled_at",
}

// Repository репозиторий бронирований в PostgreSQL
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Insert сохраняет бронирование; ID генерируется, если не задан
func (r *Repository) Insert(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	b := booking.Clone()
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	if b.CachedStatus == "" {
		b.CachedStatus = domain.StatusUpcoming
	}

	query, args, err := psqlbuilder.Insert(tableBookings).
		Columns(bookingColumns...).
		Values(
			b.ID,
			b.MemberID,
			b.LakeID,
			b.StartAt,
			b.EndAt,
			b.CreatedAt,
			b.Notes,
			b.CachedStatus,
			b.CancelledAt,
		).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Insert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return nil, ErrDuplicateID
		}
		return nil, fmt.Errorf("%w: Insert - execute insert: %w", ErrExecQuery, err)
	}

	return b, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"id": id})

	// Внутри транзакции блокируем строку, чтобы отмена не гонялась сама с собой
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// GetByMember получает все бронирования участника, новые сверху
func (r *Repository) GetByMember(ctx context.Context, memberID string) ([]*domain.Booking, error) {
	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"member_id": memberID}).
		OrderBy("start_at DESC", "created_at DESC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	return r.query(ctx, "GetByMember", selectBuilder)
}

// GetByLakeAndDate получает бронирования озера, начинающиеся в UTC-сутки даты date
// Внутри транзакции строки блокируются (FOR UPDATE) для usecase создания бронирования
func (r *Repository) GetByLakeAndDate(ctx context.Context, lakeID string, date time.Time) ([]*domain.Booking, error) {
	start, end := domain.SessionBounds(date)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"lake_id": lakeID}).
		Where(squirrel.GtOrEq{"start_at": start}).
		Where(squirrel.Lt{"start_at": end}).
		OrderBy("created_at ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	return r.query(ctx, "GetByLakeAndDate", selectBuilder)
}

// SetCancelled помечает бронирование отменённым
// Идемпотентно: у уже отменённого бронирования cancelled_at не меняется
func (r *Repository) SetCancelled(ctx context.Context, id string, at time.Time) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableBookings).
		Set("cancelled_at", squirrel.Expr("COALESCE(cancelled_at, ?)", at.UTC())).
		Set("cached_status", domain.StatusCancelled).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(bookingColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: SetCancelled - build update query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: SetCancelled - execute update: %w", ErrExecQuery, err)
	}

	return booking, nil
}

// All возвращает все бронирования (для sweep и статистики)
func (r *Repository) All(ctx context.Context) ([]*domain.Booking, error) {
	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		OrderBy("start_at ASC", "created_at ASC")

	return r.query(ctx, "All", selectBuilder)
}

// ListByDateRange бронирования с началом сессии в [from, to)
func (r *Repository) ListByDateRange(ctx context.Context, from, to time.Time) ([]*domain.Booking, error) {
	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.GtOrEq{"start_at": from.UTC()}).
		Where(squirrel.Lt{"start_at": to.UTC()}).
		OrderBy("start_at ASC", "created_at ASC")

	return r.query(ctx, "ListByDateRange", selectBuilder)
}

// MarkCompleted переводит кэш статуса в completed
// Затрагивает только неотменённые бронирования с кэшем upcoming, возвращает число обновлённых
func (r *Repository) MarkCompleted(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableBookings).
		Set("cached_status", domain.StatusCompleted).
		Where(squirrel.Eq{"id": ids}).
		Where(squirrel.Eq{"cancelled_at": nil}).
		Where(squirrel.Eq{"cached_status": domain.StatusUpcoming}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: MarkCompleted - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: MarkCompleted - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: MarkCompleted - get rows affected: %v", ErrExecQuery, err)
	}

	return int(rowsAffected), nil
}

func (r *Repository) query(ctx context.Context, op string, selectBuilder squirrel.SelectBuilder) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %w", ErrScanRow, op, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}

	return bookings, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking читает строку в порядке bookingColumns и приводит время к UTC
func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking

	err := row.Scan(
		&b.ID,
		&b.MemberID,
		&b.LakeID,
		&b.StartAt,
		&b.EndAt,
		&b.CreatedAt,
		&b.Notes,
		&b.CachedStatus,
		&b.CancelledAt,
	)
	if err != nil {
		return nil, err
	}

	b.StartAt = b.StartAt.UTC()
	b.EndAt = b.EndAt.UTC()
	b.CreatedAt = b.CreatedAt.UTC()
	if b.CancelledAt != nil {
		at := b.CancelledAt.UTC()
		b.CancelledAt = &at
	}

	return &b, nil
}
