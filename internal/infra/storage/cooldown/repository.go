package cooldown

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/fishery-booking/pkg/dbmetrics"
	"github.com/m04kA/fishery-booking/pkg/psqlbuilder"
)

const tableCooldowns = "member_cooldowns"

// Repository якоря cooldown в PostgreSQL, одна строка на участника
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get возвращает якорь участника
// Внутри транзакции строка блокируется, чтобы параллельные создания одного участника шли по очереди
func (r *Repository) Get(ctx context.Context, memberID string) (time.Time, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("anchor_at").
		From(tableCooldowns).
		Where(squirrel.Eq{"member_id": memberID})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var anchor time.Time
	err = executor.QueryRowContext(ctx, query, args...).Scan(&anchor)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, ErrAnchorNotFound
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: Get - scan anchor: %w", ErrExecQuery, err)
	}

	return anchor.UTC(), nil
}

// Set записывает якорь (upsert)
func (r *Repository) Set(ctx context.Context, memberID string, at time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableCooldowns).
		Columns("member_id", "anchor_at").
		Values(memberID, at.UTC()).
		Suffix("ON CONFLICT (member_id) DO UPDATE SET anchor_at = EXCLUDED.anchor_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Set - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Set - execute upsert: %w", ErrExecQuery, err)
	}

	return nil
}

// Clear удаляет якорь; отсутствие якоря не ошибка
func (r *Repository) Clear(ctx context.Context, memberID string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableCooldowns).
		Where(squirrel.Eq{"member_id": memberID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Clear - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Clear - execute delete: %w", ErrExecQuery, err)
	}

	return nil
}
