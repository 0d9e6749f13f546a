package get_point_bookings

import (
	"context"

	"github.com/dmarkin/TirePoint-SchedulingService/internal/domain"
)

type BookingService interface {
	GetByPoint(ctx context.Context, filter domain.PointBookingsFilter) ([]*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
