package get_cancellation_reasons

import (
	"context"

	"github.com/dmarkin/TirePoint-SchedulingService/internal/domain"
)

type BookingService interface {
	GetCancellationReasons(ctx context.Context) ([]*domain.CancellationReason, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
