package get_day_occupancy

import (
	"context"
	"time"

	"github.com/dmarkin/TirePoint-SchedulingService/internal/domain"
)

type AvailabilityCalculator interface {
	DayOccupancy(ctx context.Context, servicePointID int64, date time.Time) (*domain.DayOccupancy, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
