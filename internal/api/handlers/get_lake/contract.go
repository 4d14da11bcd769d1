package get_lake

import (
	"context"

	"github.com/m04kA/fishery-booking/internal/domain"
)

type LakeRegistry interface {
	Get(ctx context.Context, id string) (*domain.Lake, error)
}

type LakeAliases interface {
	Canonical(id string) string
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
