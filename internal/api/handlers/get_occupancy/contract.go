package get_occupancy

import (
	"context"
	"time"

	"github.com/m04kA/fishery-booking/internal/service/projector"
)

type ProjectorService interface {
	OccupancyForDate(ctx context.Context, date time.Time) ([]projector.LakeOccupancy, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
