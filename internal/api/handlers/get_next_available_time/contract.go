package get_next_available_time

import (
	"context"
	"time"

	"github.com/dmarkin/TirePoint-SchedulingService/internal/service/availability"
)

type AvailabilityCalculator interface {
	NextAvailable(ctx context.Context, servicePointID int64, after time.Time, categoryID *int64, durationMinutes int) (*availability.NextSlot, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
