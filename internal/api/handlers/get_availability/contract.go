package get_availability

import (
	"context"

	checkAvailability "github.com/m04kA/fishery-booking/internal/usecase/check_availability"
)

type CheckAvailabilityUseCase interface {
	Execute(ctx context.Context, req *checkAvailability.Request) (*checkAvailability.Response, error)
	ExecuteRange(ctx context.Context, req *checkAvailability.RangeRequest) ([]*checkAvailability.Response, error)
}

type LakeAliases interface {
	Canonical(id string) string
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
