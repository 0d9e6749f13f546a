package get_availability

import (
	"context"

	"github.com/dmarkin/TirePoint-SchedulingService/internal/domain"
	"github.com/dmarkin/TirePoint-SchedulingService/internal/service/availability"
)

type AvailabilityCalculator interface {
	CheckAt(ctx context.Context, req availability.CheckRequest) (domain.SlotCheck, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
