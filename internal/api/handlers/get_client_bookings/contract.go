package get_client_bookings

import (
	"context"

	"github.com/dmarkin/TirePoint-SchedulingService/internal/domain"
)

type BookingService interface {
	GetByClient(ctx context.Context, clientID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
