package create_booking

import (
	"context"

	createBooking "github.com/m04kA/fishery-booking/internal/usecase/create_booking"
)

type CreateBookingUseCase interface {
	Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error)
}

// LakeAliases приводит устаревшие ID озёр к каноническим
type LakeAliases interface {
	Canonical(id string) string
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
