package cooldown

import (
	"context"
	"time"

	"github.com/m04kA/fishery-booking/pkg/dbmetrics"
)

type DBExecutor = dbmetrics.DBExecutor

// Store хранит момент последнего успешного создания бронирования каждым участником
type Store interface {
	Get(ctx context.Context, memberID string) (time.Time, error)
	Set(ctx context.Context, memberID string, at time.Time) error
	Clear(ctx context.Context, memberID string) error
}

var (
	_ Store = (*Repository)(nil)
	_ Store = (*MemoryStore)(nil)
)
