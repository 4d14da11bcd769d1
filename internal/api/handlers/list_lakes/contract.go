package list_lakes

import (
	"context"

	"github.com/m04kA/fishery-booking/internal/domain"
)

type LakeRegistry interface {
	List(ctx context.Context) ([]domain.Lake, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
