package get_current_booking

import (
	"context"
	"time"

	"github.com/m04kA/fishery-booking/internal/service/projector"
)

type ProjectorService interface {
	MemberCurrentBooking(ctx context.Context, memberID string, now time.Time) (*projector.CurrentBooking, error)
}

type TimeProvider interface {
	Now() time.Time
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time { return time.Now() }
