package cancel_booking

import (
	"context"

	"github.com/dmarkin/TirePoint-SchedulingService/internal/domain"
)

type BookingService interface {
	CancelByClient(ctx context.Context, id int64, clientID *int64, comment *string) (*domain.Booking, error)
	CancelByPartner(ctx context.Context, id int64, reasonID int64, comment *string) (*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
