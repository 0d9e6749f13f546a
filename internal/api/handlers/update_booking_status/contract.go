package update_booking_status

import (
	"context"

	"github.com/dmarkin/TirePoint-SchedulingService/internal/domain"
)

type BookingService interface {
	Confirm(ctx context.Context, id int64) (*domain.Booking, error)
	Start(ctx context.Context, id int64) (*domain.Booking, error)
	Complete(ctx context.Context, id int64) (*domain.Booking, error)
	MarkNoShow(ctx context.Context, id int64) (*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
